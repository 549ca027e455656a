package willowdom

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/phanxgames/willowdom/overlay"
	"github.com/phanxgames/willowdom/scene"
	"github.com/spf13/cast"
)

// Built-in kinds of scene nodes. Every node is a KindNode; the node type adds
// one more specific kind.
const (
	KindNode      Kind = "node"
	KindContainer Kind = "container"
	KindSprite    Kind = "sprite"
	KindMesh      Kind = "mesh"
	KindText      Kind = "text"
)

// KindOf returns the kind that SceneGraph reports for nodes whose UserData
// holds a value of v's named type.
func KindOf(v any) Kind {
	t := userType(v)
	if t == nil {
		return ""
	}
	return Kind(t.Name())
}

func userType(v any) reflect.Type {
	if v == nil {
		return nil
	}
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct || t.Name() == "" {
		return nil
	}
	return t
}

// SceneGraph adapts *scene.Node to Graph.
//
// A node's lineage is its UserData type (when UserData holds a named struct
// or a pointer to one), its node type, then KindNode. Fields are looked up
// case-insensitively: first the virtual fields Scale, Pivot, Tint, Texture
// and Text, then exported Node fields, then exported UserData fields.
type SceneGraph struct{}

var _ interface {
	Graph[*scene.Node]
	TypeNamer[*scene.Node]
	Preparer[*scene.Node]
} = SceneGraph{}

func (SceneGraph) Lineage(n *scene.Node) []Kind {
	out := make([]Kind, 0, 3)
	if k := KindOf(n.UserData); k != "" {
		out = append(out, k)
	}
	return append(out, Kind(n.Type.String()), KindNode)
}

// TypeName names nodes carrying typed UserData after that type. Other nodes
// get "" and are tagged by their built-in kind.
func (SceneGraph) TypeName(n *scene.Node) string {
	return string(KindOf(n.UserData))
}

func (SceneGraph) Children(n *scene.Node) []*scene.Node {
	return n.Children()
}

func (SceneGraph) Bounds(n *scene.Node) overlay.Rect {
	b := n.Bounds()
	return overlay.Rect{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height}
}

// Prepare refreshes world transforms so Bounds is current.
func (SceneGraph) Prepare(root *scene.Node) {
	scene.RefreshTransforms(root)
}

func (SceneGraph) Get(n *scene.Node, field string) (any, error) {
	switch strings.ToLower(field) {
	case "scale":
		return scene.Vec2{X: n.ScaleX, Y: n.ScaleY}, nil
	case "pivot":
		return scene.Vec2{X: n.PivotX, Y: n.PivotY}, nil
	case "tint":
		return n.Color.RGB(), nil
	case "texture":
		return n.TextureRegion, nil
	case "text":
		if n.TextBlock == nil {
			return nil, ErrNoTextBlock
		}
		return n.TextBlock.Content, nil
	}
	if f, ok := nodeField(reflect.ValueOf(n).Elem(), field); ok {
		return f.Interface(), nil
	}
	if f, ok := userField(n.UserData, field); ok {
		return f.Interface(), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownField, field)
}

func (SceneGraph) Set(n *scene.Node, field string, v any) error {
	switch strings.ToLower(field) {
	case "scale":
		x, y, ok := pointXY(v)
		if !ok {
			return fmt.Errorf("set scale: %T is not a point", v)
		}
		n.SetScale(x, y)
		return nil
	case "pivot":
		x, y, ok := pointXY(v)
		if !ok {
			return fmt.Errorf("set pivot: %T is not a point", v)
		}
		n.SetPivot(x, y)
		return nil
	case "tint":
		rgb, err := cast.ToUint32E(v)
		if err != nil {
			return fmt.Errorf("set tint: %w", err)
		}
		n.Color = scene.ColorFromRGB(rgb, n.Color.A)
		return nil
	case "texture", "id", "parent", "type", "userdata":
		return fmt.Errorf("%w: %s", ErrReadOnly, field)
	case "text":
		if n.TextBlock == nil {
			return ErrNoTextBlock
		}
		s, err := cast.ToStringE(v)
		if err != nil {
			return fmt.Errorf("set text: %w", err)
		}
		n.TextBlock.Content = s
		return nil
	}
	if f, ok := nodeField(reflect.ValueOf(n).Elem(), field); ok {
		if err := assign(f, v, field); err != nil {
			return err
		}
		n.MarkDirty()
		return nil
	}
	if f, ok := userField(n.UserData, field); ok {
		if !f.CanSet() {
			return fmt.Errorf("%w: %s (UserData held by value)", ErrReadOnly, field)
		}
		return assign(f, v, field)
	}
	return fmt.Errorf("%w: %s", ErrUnknownField, field)
}

func nodeField(rv reflect.Value, name string) (reflect.Value, bool) {
	f := rv.FieldByNameFunc(func(s string) bool { return strings.EqualFold(s, name) })
	if !f.IsValid() || !f.CanInterface() {
		return reflect.Value{}, false
	}
	return f, true
}

func userField(data any, name string) (reflect.Value, bool) {
	if userType(data) == nil {
		return reflect.Value{}, false
	}
	rv := reflect.ValueOf(data)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return reflect.Value{}, false
		}
		rv = rv.Elem()
	}
	return nodeField(rv, name)
}

func assign(f reflect.Value, v any, field string) error {
	if !f.CanSet() {
		return fmt.Errorf("%w: %s", ErrReadOnly, field)
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || !rv.Type().AssignableTo(f.Type()) {
		return fmt.Errorf("set %s: cannot assign %T to %s", field, v, f.Type())
	}
	f.Set(rv)
	return nil
}
