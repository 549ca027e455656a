package willowdom

import (
	"strings"

	"github.com/phanxgames/willowdom/overlay"
	"github.com/rs/zerolog"
)

// Stats describes the most recent reconciliation pass.
type Stats struct {
	Passes   int // total passes since New
	Visited  int // source nodes visited
	Kept     int // mirror children reused in place
	Created  int // elements newly created
	Recycled int // elements taken from the pool
	Rebuilt  int // mirror children replaced because target or tag differed
	Released int // elements returned to the pool
}

func (s Stats) log(e *zerolog.Event) *zerolog.Event {
	return e.Int("pass", s.Passes).
		Int("visited", s.Visited).
		Int("kept", s.Kept).
		Int("created", s.Created).
		Int("recycled", s.Recycled).
		Int("rebuilt", s.Rebuilt).
		Int("released", s.Released)
}

// reconciler walks a source tree and its mirror in lock-step.
type reconciler[N comparable] struct {
	graph    Graph[N]
	registry *Registry
	pool     *pool[N]
	surface  *overlay.Surface
	log      zerolog.Logger

	stats Stats
}

// sync reconciles el against n. When el mirrors another node or carries a
// different tag, a fresh element takes its place and el is released.
func (r *reconciler[N]) sync(n N, el *overlay.Element) *overlay.Element {
	if el != nil && el.Target == any(n) && el.Tag() == r.pool.tagFor(n) {
		r.stats.Kept++
		return r.build(n, el)
	}
	fresh := r.build(n, nil)
	if el != nil {
		if parent := el.Parent(); parent != nil {
			parent.ReplaceChild(fresh, el)
		}
		r.pool.release(el)
		r.stats.Rebuilt++
	}
	return fresh
}

// build projects n onto el (or a pooled element when el is nil) and aligns
// its children.
func (r *reconciler[N]) build(n N, el *overlay.Element) *overlay.Element {
	r.stats.Visited++
	if el == nil {
		el = r.pool.get(n)
	}
	el.Target = n

	meta := r.registry.Resolve(r.lineage(n))
	if st := el.Style(); st != nil {
		st.Rect = r.bounds(n).Offset(r.surface.OriginX, r.surface.OriginY)
		st.Hidden = meta.Hidden
	}
	r.project(n, el, meta)

	if meta.Leaf {
		for el.NumChildren() > 0 {
			r.pool.release(el.LastChild())
		}
		return el
	}

	children := r.children(n)
	overlap := min(len(children), el.NumChildren())
	for i := 0; i < overlap; i++ {
		r.sync(children[i], el.ChildAt(i))
	}
	for el.NumChildren() > len(children) {
		r.pool.release(el.LastChild())
	}
	for _, c := range children[overlap:] {
		el.AppendChild(r.build(c, nil))
	}
	return el
}

// project writes the visible attribute values of n onto el. Attributes whose
// value can no longer be read or shown are removed.
func (r *reconciler[N]) project(n N, el *overlay.Element, meta Meta) {
	for _, a := range meta.Attributes {
		name := strings.ToLower(a.Name)
		v, err := r.get(n, a.Name)
		if err != nil || !safeVisible(a.Parser, v) {
			el.RemoveAttribute(name)
			continue
		}
		s, ok := safeStringify(a.Parser, v)
		if !ok {
			el.RemoveAttribute(name)
			continue
		}
		if cur, had := el.GetAttribute(name); had && cur == s {
			continue
		}
		el.SetAttribute(name, s)
	}
}

// The graph accessors below turn a panicking adapter into an empty answer
// for that node only.

func (r *reconciler[N]) lineage(n N) []Kind {
	out, ok := lineageOf(r.graph, n)
	if !ok {
		r.log.Debug().Msg("lineage failed")
	}
	return out
}

func (r *reconciler[N]) children(n N) (out []N) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Debug().Interface("panic", rec).Msg("children failed")
			out = nil
		}
	}()
	return r.graph.Children(n)
}

func (r *reconciler[N]) bounds(n N) (out overlay.Rect) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Debug().Interface("panic", rec).Msg("bounds failed")
			out = overlay.Rect{}
		}
	}()
	return r.graph.Bounds(n)
}

func (r *reconciler[N]) get(n N, field string) (v any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			v, err = nil, ErrUnknownField
		}
	}()
	return r.graph.Get(n, field)
}

func (r *reconciler[N]) set(n N, field string, v any) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = ErrReadOnly
		}
	}()
	return r.graph.Set(n, field, v)
}
