package willowdom

import (
	"slices"
	"strings"
	"sync"
)

// Attribute binds a source field to a mirror attribute of the same name.
type Attribute struct {
	Name   string
	Parser Parser
}

// Meta is the resolved metadata of one source node.
type Meta struct {
	Attributes []Attribute
	Leaf       bool
	Hidden     bool
}

// Attribute returns the attribute whose name matches name case-insensitively.
func (m Meta) Attribute(name string) (Attribute, bool) {
	for _, a := range m.Attributes {
		if strings.EqualFold(a.Name, name) {
			return a, true
		}
	}
	return Attribute{}, false
}

type entry struct {
	attrs  []Attribute
	leaf   *bool
	hidden *bool
}

// Registry holds per-kind attribute bindings and leaf/hidden flags. It is
// safe for concurrent use; lookups are never cached so registrations take
// effect on the next pass.
type Registry struct {
	mu      sync.RWMutex
	entries map[Kind]*entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[Kind]*entry)}
}

func (r *Registry) entry(kind Kind) *entry {
	e, ok := r.entries[kind]
	if !ok {
		e = &entry{}
		r.entries[kind] = e
	}
	return e
}

// Register adds attribute bindings to kind. Re-registering a name on the same
// kind replaces its parser in place. A nil parser means DefaultParser.
func (r *Registry) Register(kind Kind, attrs ...Attribute) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := r.entry(kind)
	for _, a := range attrs {
		if a.Parser == nil {
			a.Parser = DefaultParser{}
		}
		if i := indexAttr(e.attrs, a.Name); i >= 0 {
			e.attrs[i] = a
			continue
		}
		e.attrs = append(e.attrs, a)
	}
}

// MarkLeaf stops the reconciler from descending into nodes of kind.
func (r *Registry) MarkLeaf(kind Kind) { r.SetLeaf(kind, true) }

// MarkHidden hides the mirrors of nodes of kind.
func (r *Registry) MarkHidden(kind Kind) { r.SetHidden(kind, true) }

// SetLeaf sets an explicit leaf flag on kind, overriding less specific kinds
// either way.
func (r *Registry) SetLeaf(kind Kind, leaf bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entry(kind).leaf = &leaf
}

// SetHidden sets an explicit hidden flag on kind.
func (r *Registry) SetHidden(kind Kind, hidden bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entry(kind).hidden = &hidden
}

// Resolve merges the metadata of lineage, which is ordered most specific
// first. Attributes of less specific kinds come first; a more specific
// binding with the same name replaces the general one in its position.
func (r *Registry) Resolve(lineage []Kind) Meta {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var m Meta
	var leafSet, hiddenSet bool
	for _, k := range lineage {
		e, ok := r.entries[k]
		if !ok {
			continue
		}
		if !leafSet && e.leaf != nil {
			m.Leaf, leafSet = *e.leaf, true
		}
		if !hiddenSet && e.hidden != nil {
			m.Hidden, hiddenSet = *e.hidden, true
		}
	}
	for i := len(lineage) - 1; i >= 0; i-- {
		e, ok := r.entries[lineage[i]]
		if !ok {
			continue
		}
		for _, a := range e.attrs {
			if j := indexAttr(m.Attributes, a.Name); j >= 0 {
				m.Attributes[j] = a
				continue
			}
			m.Attributes = append(m.Attributes, a)
		}
	}
	return m
}

// Kinds returns the registered kinds in sorted order.
func (r *Registry) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Kind, 0, len(r.entries))
	for k := range r.entries {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

func indexAttr(attrs []Attribute, name string) int {
	for i, a := range attrs {
		if strings.EqualFold(a.Name, name) {
			return i
		}
	}
	return -1
}
