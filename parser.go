package willowdom

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Sentinel errors returned by graphs and the config loader.
var (
	ErrUnknownField  = errors.New("willowdom: unknown field")
	ErrReadOnly      = errors.New("willowdom: field is read-only")
	ErrUnknownParser = errors.New("willowdom: unknown parser")
	ErrNoTextBlock   = errors.New("willowdom: node has no text block")
)

// Parser converts a field value to and from its attribute text.
//
// Parse must never panic on malformed input: it returns prev unchanged
// instead. Visible reports whether the value is worth showing at all.
type Parser interface {
	Parse(s string, prev any) any
	Stringify(v any) string
	Visible(v any) bool
}

// Point is the value PointParser produces when there is no previous value to
// take a shape from.
type Point struct {
	X, Y float64
}

// NoTint is the neutral tint: white multiplies to no change.
const NoTint uint32 = 0xffffff

// ParserByName returns a built-in parser: "default" (or ""), "point",
// "color" or "resource".
func ParserByName(name string) (Parser, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "default":
		return DefaultParser{}, nil
	case "point":
		return PointParser{}, nil
	case "color", "colour", "tint":
		return ColorParser{Neutral: NoTint}, nil
	case "resource":
		return ResourceParser{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownParser, name)
}

// --- Default ---

// DefaultParser shows scalars as plain text and parses text back into the
// type of the previous value.
type DefaultParser struct{}

func (DefaultParser) Stringify(v any) string {
	if v == nil {
		return ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.String:
		return rv.String()
	}
	if s, err := cast.ToStringE(v); err == nil {
		return s
	}
	return fmt.Sprint(v)
}

func (DefaultParser) Parse(s string, prev any) any {
	if prev == nil {
		return s
	}
	t := reflect.TypeOf(prev)
	var (
		v   any
		err error
	)
	switch t.Kind() {
	case reflect.String:
		v = s
	case reflect.Bool:
		v, err = cast.ToBoolE(strings.TrimSpace(s))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		d, ok := decimal(s)
		if !ok {
			return prev
		}
		v, err = cast.ToInt64E(d)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		d, ok := decimal(s)
		if !ok {
			return prev
		}
		v, err = cast.ToUint64E(d)
	case reflect.Float32, reflect.Float64:
		v, err = cast.ToFloat64E(strings.TrimSpace(s))
	default:
		return prev
	}
	if err != nil {
		return prev
	}
	return convertTo(v, t, prev)
}

func (DefaultParser) Visible(any) bool { return true }

// decimal trims s and strips leading zeros so cast never reads a base
// prefix: "010" is ten, and "0x10" or "1_000" are rejected.
func decimal(s string) (string, bool) {
	s = strings.TrimSpace(s)
	sign := ""
	if s != "" && (s[0] == '-' || s[0] == '+') {
		sign, s = s[:1], s[1:]
	}
	if s == "" {
		return "", false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return "", false
		}
	}
	if s = strings.TrimLeft(s, "0"); s == "" {
		s = "0"
	}
	return sign + s, true
}

// convertTo converts v to t, returning fallback when it cannot or when an
// integer conversion would not round-trip.
func convertTo(v any, t reflect.Type, fallback any) any {
	rv := reflect.ValueOf(v)
	if !rv.CanConvert(t) {
		return fallback
	}
	out := rv.Convert(t)
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if out.Convert(rv.Type()).Interface() != v {
			return fallback
		}
	}
	return out.Interface()
}

// --- Point ---

// PointParser shows values with numeric X and Y fields (or [2]float64) as
// "x,y". Parsing keeps the previous value's type.
type PointParser struct{}

func (PointParser) Stringify(v any) string {
	x, y, ok := pointXY(v)
	if !ok {
		return ""
	}
	return strconv.FormatFloat(x, 'f', -1, 64) + "," + strconv.FormatFloat(y, 'f', -1, 64)
}

func (PointParser) Parse(s string, prev any) any {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return prev
	}
	x, err := cast.ToFloat64E(strings.TrimSpace(parts[0]))
	if err != nil {
		return prev
	}
	y, err := cast.ToFloat64E(strings.TrimSpace(parts[1]))
	if err != nil || !finite(x) || !finite(y) {
		return prev
	}
	if prev == nil {
		return Point{X: x, Y: y}
	}
	out, ok := withXY(prev, x, y)
	if !ok {
		return prev
	}
	return out
}

func (PointParser) Visible(v any) bool {
	_, _, ok := pointXY(v)
	return ok
}

func pointXY(v any) (x, y float64, ok bool) {
	if v == nil {
		return 0, 0, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return 0, 0, false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Struct:
		fx, fy := rv.FieldByName("X"), rv.FieldByName("Y")
		x, okx := numeric(fx)
		y, oky := numeric(fy)
		return x, y, okx && oky
	case reflect.Array:
		if rv.Len() != 2 {
			return 0, 0, false
		}
		x, okx := numeric(rv.Index(0))
		y, oky := numeric(rv.Index(1))
		return x, y, okx && oky
	}
	return 0, 0, false
}

func numeric(v reflect.Value) (float64, bool) {
	if !v.IsValid() {
		return 0, false
	}
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	}
	return 0, false
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// setNumeric stores f in v. Integer fields only take whole values in range.
func setNumeric(v reflect.Value, f float64) bool {
	if !v.IsValid() || !v.CanSet() || !finite(f) {
		return false
	}
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		if v.OverflowFloat(f) {
			return false
		}
		v.SetFloat(f)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 || v.OverflowInt(int64(f)) {
			return false
		}
		v.SetInt(int64(f))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if f != math.Trunc(f) || f < 0 || f >= math.MaxUint64 || v.OverflowUint(uint64(f)) {
			return false
		}
		v.SetUint(uint64(f))
	default:
		return false
	}
	return true
}

// withXY returns a copy of prev with its X and Y replaced. Pointers yield a
// pointer to a fresh copy so prev itself is never modified.
func withXY(prev any, x, y float64) (any, bool) {
	rv := reflect.ValueOf(prev)
	isPtr := rv.Kind() == reflect.Pointer
	if isPtr {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	cp := reflect.New(rv.Type()).Elem()
	cp.Set(rv)
	var ok bool
	switch cp.Kind() {
	case reflect.Struct:
		ok = setNumeric(cp.FieldByName("X"), x) && setNumeric(cp.FieldByName("Y"), y)
	case reflect.Array:
		ok = cp.Len() == 2 && setNumeric(cp.Index(0), x) && setNumeric(cp.Index(1), y)
	}
	if !ok {
		return nil, false
	}
	if isPtr {
		return cp.Addr().Interface(), true
	}
	return cp.Interface(), true
}

// --- Color ---

// ColorParser shows integer 0xRRGGBB colors as six lower-case hex digits.
// Values equal to Neutral are not shown.
type ColorParser struct {
	Neutral uint32
}

func (ColorParser) Stringify(v any) string {
	c, ok := rgb(v)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%06x", c)
}

func (ColorParser) Parse(s string, prev any) any {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "#")
	if len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X") {
		s = s[2:]
	}
	if s == "" || len(s) > 6 {
		return prev
	}
	c, err := strconv.ParseUint(s, 16, 32)
	if err != nil || c > 0xffffff {
		return prev
	}
	if prev == nil {
		return uint32(c)
	}
	return convertTo(c, reflect.TypeOf(prev), prev)
}

func (p ColorParser) Visible(v any) bool {
	c, ok := rgb(v)
	return ok && c != p.Neutral
}

func rgb(v any) (uint32, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if c := rv.Int(); c >= 0 && c <= 0xffffff {
			return uint32(c), true
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if c := rv.Uint(); c <= 0xffffff {
			return uint32(c), true
		}
	}
	return 0, false
}

// --- Resource ---

// ResourceParser shows a resource handle by its display name. It is a
// read-only projection: Parse always returns prev.
type ResourceParser struct{}

func (ResourceParser) Stringify(v any) string {
	switch r := v.(type) {
	case interface{ DisplayName() string }:
		return r.DisplayName()
	case fmt.Stringer:
		return r.String()
	}
	return ""
}

func (ResourceParser) Parse(_ string, prev any) any { return prev }

func (ResourceParser) Visible(any) bool { return true }

// --- Panic guards for third-party parsers ---

func safeParse(p Parser, s string, prev any) (v any) {
	defer func() {
		if recover() != nil {
			v = prev
		}
	}()
	return p.Parse(s, prev)
}

func safeStringify(p Parser, v any) (s string, ok bool) {
	defer func() {
		if recover() != nil {
			s, ok = "", false
		}
	}()
	return p.Stringify(v), true
}

func safeVisible(p Parser, v any) (vis bool) {
	defer func() {
		if recover() != nil {
			vis = false
		}
	}()
	return p.Visible(v)
}
