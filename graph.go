package willowdom

import "github.com/phanxgames/willowdom/overlay"

// Kind names one level of a source node's type hierarchy. Graphs report a
// node's kinds most specific first; the registry keys its metadata by Kind.
type Kind string

// Graph is the read/write view of a source scene graph. N is the graph's node
// handle, usually a pointer.
type Graph[N comparable] interface {
	// Lineage returns the node's kinds, most specific first.
	Lineage(n N) []Kind
	// Children returns the node's ordered children. The engine does not
	// mutate the returned slice.
	Children(n N) []N
	// Bounds returns the node's bounding rectangle in scene coordinates.
	Bounds(n N) overlay.Rect
	// Get reads a named field.
	Get(n N, field string) (any, error)
	// Set writes a named field.
	Set(n N, field string, v any) error
}

// TypeNamer is implemented by graphs that can name a node's concrete type.
// An empty name falls back to the built-in kinds.
type TypeNamer[N comparable] interface {
	TypeName(n N) string
}

// Preparer is implemented by graphs that need work (e.g. refreshing world
// transforms) before their bounds can be read.
type Preparer[N comparable] interface {
	Prepare(root N)
}

// lineageOf calls g.Lineage, reporting a panic as ok == false with no kinds.
func lineageOf[N comparable](g Graph[N], n N) (out []Kind, ok bool) {
	defer func() {
		if recover() != nil {
			out, ok = nil, false
		}
	}()
	return g.Lineage(n), true
}

// typeNameOf returns the TypeNamer name of n, or "" when g has none or
// TypeName panics.
func typeNameOf[N comparable](g Graph[N], n N) (name string) {
	tn, ok := g.(TypeNamer[N])
	if !ok {
		return ""
	}
	defer func() {
		if recover() != nil {
			name = ""
		}
	}()
	return tn.TypeName(n)
}
