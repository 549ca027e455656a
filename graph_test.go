package willowdom

import (
	"fmt"
	"slices"
	"strings"

	"github.com/phanxgames/willowdom/overlay"
)

// tnode is a minimal source node for engine tests.
type tnode struct {
	name     string
	lineage  []Kind
	children []*tnode
	fields   map[string]any
	bounds   overlay.Rect
	broken   bool // Children and Bounds panic
	unknown  bool // Lineage panics
}

func tn(name string, lineage ...Kind) *tnode {
	return &tnode{name: name, lineage: lineage, fields: map[string]any{}}
}

func (n *tnode) add(children ...*tnode) *tnode {
	n.children = append(n.children, children...)
	return n
}

func (n *tnode) insert(i int, c *tnode) {
	n.children = slices.Insert(n.children, i, c)
}

func (n *tnode) with(field string, v any) *tnode {
	n.fields[field] = v
	return n
}

// tgraph is a Graph over tnode. Fields named "ro" are read-only and field
// "explode" panics on read.
type tgraph struct {
	sets int
}

func (g *tgraph) Lineage(n *tnode) []Kind {
	if n.unknown {
		panic("lineage: " + n.name)
	}
	return n.lineage
}

func (g *tgraph) Children(n *tnode) []*tnode {
	if n.broken {
		panic("children: " + n.name)
	}
	return n.children
}

func (g *tgraph) Bounds(n *tnode) overlay.Rect {
	if n.broken {
		panic("bounds: " + n.name)
	}
	return n.bounds
}

func (g *tgraph) key(n *tnode, field string) (string, bool) {
	for k := range n.fields {
		if strings.EqualFold(k, field) {
			return k, true
		}
	}
	return "", false
}

func (g *tgraph) Get(n *tnode, field string) (any, error) {
	if strings.EqualFold(field, "explode") {
		panic("explode")
	}
	k, ok := g.key(n, field)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return n.fields[k], nil
}

func (g *tgraph) Set(n *tnode, field string, v any) error {
	if strings.EqualFold(field, "ro") {
		return ErrReadOnly
	}
	k, ok := g.key(n, field)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	g.sets++
	n.fields[k] = v
	return nil
}

// namedGraph names every node after its name field. TypeName panics for
// nodes named "boom".
type namedGraph struct {
	tgraph
}

func (g *namedGraph) TypeName(n *tnode) string {
	if n.name == "boom" {
		panic("type name")
	}
	return n.name
}

// fakeInput is an overlay.Input driven by the test.
type fakeInput struct {
	held    bool
	x, y    int
	pressed overlay.MouseButton
	click   bool
}

func (f *fakeInput) Passthrough() bool          { return f.held }
func (f *fakeInput) CursorPosition() (int, int) { return f.x, f.y }
func (f *fakeInput) JustPressed(b overlay.MouseButton) bool {
	return f.click && b == f.pressed
}
