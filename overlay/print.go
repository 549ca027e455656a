package overlay

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
)

// Printer writes an overlay tree as indented, optionally colored text.
type Printer struct {
	w     io.Writer
	tag   *color.Color
	name  *color.Color
	value *color.Color
	dim   *color.Color
}

// NewPrinter returns a Printer for w. Color is used only when w is a terminal
// and color output is not globally disabled.
func NewPrinter(w io.Writer) *Printer {
	p := &Printer{
		w:     w,
		tag:   color.New(color.FgCyan, color.Bold),
		name:  color.New(color.FgYellow),
		value: color.New(color.FgGreen),
		dim:   color.New(color.Faint),
	}
	if !isTerminal(w) || color.NoColor {
		p.SetColor(false)
	}
	return p
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// SetColor forces color output on or off.
func (p *Printer) SetColor(enabled bool) {
	for _, c := range []*color.Color{p.tag, p.name, p.value, p.dim} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
}

// Print writes root and its subtree.
func (p *Printer) Print(root *Element) error {
	if root == nil {
		return nil
	}
	return p.print(root, 0)
}

func (p *Printer) print(e *Element, depth int) error {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(p.tag.Sprint(e.tag))
	if id := e.ID(); id != "" {
		b.WriteString(p.dim.Sprintf("#%s", id))
	}
	for _, a := range e.attrs {
		b.WriteByte(' ')
		b.WriteString(p.name.Sprint(a.Name))
		b.WriteByte('=')
		b.WriteString(p.value.Sprintf("%q", a.Value))
	}
	if s := e.style; s != nil {
		r := s.Rect
		b.WriteString(p.dim.Sprintf(" [%.2f,%.2f %.2fx%.2f]", r.X, r.Y, r.Width, r.Height))
		if s.Hidden {
			b.WriteString(p.dim.Sprint(" hidden"))
		}
	}
	b.WriteByte('\n')
	if _, err := io.WriteString(p.w, b.String()); err != nil {
		return fmt.Errorf("print overlay: %w", err)
	}
	for _, c := range e.children {
		if err := p.print(c, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// Fprint writes root to w with NewPrinter.
func Fprint(w io.Writer, root *Element) error {
	return NewPrinter(w).Print(root)
}

// Snapshot is a plain-data copy of an overlay subtree. Rectangles are rounded
// to two decimals.
type Snapshot struct {
	Tag        string        `yaml:"tag"`
	ID         string        `yaml:"id,omitempty"`
	Rect       Rect          `yaml:"rect,flow"`
	Hidden     bool          `yaml:"hidden,omitempty"`
	Attributes yaml.MapSlice `yaml:"attributes,omitempty"`
	Children   []Snapshot    `yaml:"children,omitempty"`
}

// Capture copies root and its subtree.
func Capture(root *Element) Snapshot {
	s := Snapshot{Tag: root.tag, ID: root.ID()}
	if root.style != nil {
		r := root.style.Rect
		s.Rect = Rect{X: round2(r.X), Y: round2(r.Y), Width: round2(r.Width), Height: round2(r.Height)}
		s.Hidden = root.style.Hidden
	}
	for _, a := range root.attrs {
		s.Attributes = append(s.Attributes, yaml.MapItem{Key: a.Name, Value: a.Value})
	}
	for _, c := range root.children {
		s.Children = append(s.Children, Capture(c))
	}
	return s
}

// YAML encodes the snapshot.
func (s Snapshot) YAML() ([]byte, error) {
	out, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode overlay snapshot: %w", err)
	}
	return out, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
