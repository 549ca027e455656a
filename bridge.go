package willowdom

import (
	"reflect"

	"github.com/phanxgames/willowdom/overlay"
)

// writeBack applies one external attribute edit to the source node its
// element mirrors. Edits that cannot be applied are dropped.
func (r *reconciler[N]) writeBack(m overlay.Mutation) {
	if m.Removed || m.Target == nil {
		return
	}
	n, ok := m.Target.Target.(N)
	if !ok {
		return
	}
	attr, ok := r.registry.Resolve(r.lineage(n)).Attribute(m.Name)
	if !ok {
		r.log.Debug().Str("attr", m.Name).Str("tag", m.Target.Tag()).Msg("edit of unbound attribute ignored")
		return
	}
	value, ok := m.Target.GetAttribute(m.Name)
	if !ok {
		return
	}
	prev, err := r.get(n, attr.Name)
	if err != nil {
		r.log.Debug().Err(err).Str("field", attr.Name).Msg("edit ignored: field unreadable")
		return
	}
	next := safeParse(attr.Parser, value, prev)
	if reflect.DeepEqual(next, prev) {
		return
	}
	if err := r.set(n, attr.Name, next); err != nil {
		r.log.Debug().Err(err).Str("field", attr.Name).Str("value", value).Msg("edit ignored: write failed")
		return
	}
	r.log.Debug().Str("field", attr.Name).Str("value", value).Msg("edit applied")
}

func (r *reconciler[N]) writeBackAll(records []overlay.Mutation) {
	for _, m := range records {
		r.writeBack(m)
	}
}
