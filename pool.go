package willowdom

import (
	"strings"

	"github.com/phanxgames/willowdom/overlay"
)

// tagPrefix is prepended to every mirror tag.
const tagPrefix = "px-"

// fallbackKinds names the built-in kinds used for tags when the graph cannot
// name a node's type. Most derived first.
var fallbackKinds = []Kind{KindText, KindMesh, KindSprite, KindContainer, KindNode}

// pool recycles mirror elements by tag.
type pool[N comparable] struct {
	graph Graph[N]
	doc   *overlay.Document
	sheet *overlay.StyleSheet

	free    map[string][]*overlay.Element
	isFree  map[*overlay.Element]struct{}
	created int
	reused  int
	freed   int
}

func newPool[N comparable](g Graph[N], doc *overlay.Document, sheet *overlay.StyleSheet) *pool[N] {
	return &pool[N]{
		graph:  g,
		doc:    doc,
		sheet:  sheet,
		free:   make(map[string][]*overlay.Element),
		isFree: make(map[*overlay.Element]struct{}),
	}
}

// tagFor returns the mirror tag of n.
func (p *pool[N]) tagFor(n N) string {
	return tagPrefix + strings.ToLower(p.typeName(n))
}

// typeName prefers the graph's own name for n, then the most derived
// built-in kind in its lineage. A panicking graph yields KindNode.
func (p *pool[N]) typeName(n N) string {
	if name := typeNameOf(p.graph, n); name != "" {
		return name
	}
	lineage, _ := lineageOf(p.graph, n)
	for _, k := range fallbackKinds {
		for _, l := range lineage {
			if l == k {
				return string(k)
			}
		}
	}
	return string(KindNode)
}

// get returns a free element tagged for n, creating one when none is free.
func (p *pool[N]) get(n N) *overlay.Element {
	return p.getTag(p.tagFor(n))
}

func (p *pool[N]) getTag(tag string) *overlay.Element {
	if list := p.free[tag]; len(list) > 0 {
		el := list[len(list)-1]
		list[len(list)-1] = nil
		p.free[tag] = list[:len(list)-1]
		delete(p.isFree, el)
		p.reused++
		return el
	}
	el := p.doc.CreateElement(tag)
	el.SetStyle(p.sheet.NewStyle())
	p.created++
	return el
}

// release detaches el, clears it and its subtree, and returns them all to
// the free set. Releasing an element that is already free is a no-op.
func (p *pool[N]) release(el *overlay.Element) {
	if el == nil {
		return
	}
	if _, ok := p.isFree[el]; ok {
		return
	}
	el.Remove()
	el.ClearAttributes()
	el.Target = nil
	if st := el.Style(); st != nil {
		st.Rect = overlay.Rect{}
		st.Hidden = false
	}
	for el.NumChildren() > 0 {
		p.release(el.LastChild())
	}
	p.free[el.Tag()] = append(p.free[el.Tag()], el)
	p.isFree[el] = struct{}{}
	p.freed++
}

// numFree returns how many elements with tag are free.
func (p *pool[N]) numFree(tag string) int {
	return len(p.free[tag])
}
