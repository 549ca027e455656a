package overlay

import "strings"

// Attr is a single element attribute. Names are stored lower-case.
type Attr struct {
	Name  string
	Value string
}

// Element is a tagged node of the overlay tree.
type Element struct {
	doc      *Document
	tag      string
	style    *Style
	attrs    []Attr
	parent   *Element
	children []*Element

	// Target is the object this element stands for. The overlay only compares
	// it, to drop highlights from elements that were reused for another target.
	Target any
}

// Tag returns the element's lower-case tag name.
func (e *Element) Tag() string {
	return e.tag
}

// ID returns the id of the element's style rule, or "" when it has none.
func (e *Element) ID() string {
	if e.style == nil {
		return ""
	}
	return e.style.id
}

// Style returns the element's position rule, or nil.
func (e *Element) Style() *Style {
	return e.style
}

// SetStyle attaches a position rule to the element.
func (e *Element) SetStyle(s *Style) {
	e.style = s
}

// Document returns the document that created the element.
func (e *Element) Document() *Document {
	return e.doc
}

// --- Attributes ---

func (e *Element) attrIndex(name string) int {
	for i := range e.attrs {
		if e.attrs[i].Name == name {
			return i
		}
	}
	return -1
}

// SetAttribute sets name (lower-cased) to value, appending it if new.
// Observers of an enclosing subtree are notified even when the value is unchanged.
func (e *Element) SetAttribute(name, value string) {
	name = strings.ToLower(name)
	old, had := "", false
	if i := e.attrIndex(name); i >= 0 {
		old, had = e.attrs[i].Value, true
		e.attrs[i].Value = value
	} else {
		e.attrs = append(e.attrs, Attr{Name: name, Value: value})
	}
	e.doc.notify(Mutation{Target: e, Name: name, OldValue: old, HadOldValue: had})
}

// GetAttribute returns the value of name and whether it is present.
func (e *Element) GetAttribute(name string) (string, bool) {
	if i := e.attrIndex(strings.ToLower(name)); i >= 0 {
		return e.attrs[i].Value, true
	}
	return "", false
}

// HasAttribute reports whether name is present.
func (e *Element) HasAttribute(name string) bool {
	return e.attrIndex(strings.ToLower(name)) >= 0
}

// RemoveAttribute deletes name. No-op if absent.
func (e *Element) RemoveAttribute(name string) {
	name = strings.ToLower(name)
	i := e.attrIndex(name)
	if i < 0 {
		return
	}
	old := e.attrs[i].Value
	e.attrs = append(e.attrs[:i], e.attrs[i+1:]...)
	e.doc.notify(Mutation{Target: e, Name: name, OldValue: old, HadOldValue: true, Removed: true})
}

// Attributes returns a copy of the attributes in insertion order.
func (e *Element) Attributes() []Attr {
	out := make([]Attr, len(e.attrs))
	copy(out, e.attrs)
	return out
}

// NumAttributes returns the number of attributes.
func (e *Element) NumAttributes() int {
	return len(e.attrs)
}

// ClearAttributes removes every attribute, last first.
func (e *Element) ClearAttributes() {
	for len(e.attrs) > 0 {
		e.RemoveAttribute(e.attrs[len(e.attrs)-1].Name)
	}
}

// --- Tree ---

// Parent returns the parent element, or nil when detached.
func (e *Element) Parent() *Element {
	return e.parent
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (e *Element) Children() []*Element {
	return e.children
}

// NumChildren returns the number of children.
func (e *Element) NumChildren() int {
	return len(e.children)
}

// ChildAt returns the child at index i.
func (e *Element) ChildAt(i int) *Element {
	return e.children[i]
}

// LastChild returns the last child, or nil.
func (e *Element) LastChild() *Element {
	if len(e.children) == 0 {
		return nil
	}
	return e.children[len(e.children)-1]
}

// Empty reports whether the element has no children.
func (e *Element) Empty() bool {
	return len(e.children) == 0
}

// AppendChild adds child as the last child, detaching it from any previous parent.
func (e *Element) AppendChild(child *Element) {
	if child == nil {
		panic("overlay: cannot append nil child")
	}
	if child.Contains(e) {
		panic("overlay: appending child would create a cycle")
	}
	child.Remove()
	child.parent = e
	e.children = append(e.children, child)
}

// ReplaceChild puts child in old's slot. old is detached and returned.
// Panics if old is not a child of e.
func (e *Element) ReplaceChild(child, old *Element) *Element {
	if old.parent != e {
		panic("overlay: replaced element is not a child of this element")
	}
	if child == old {
		return old
	}
	if child.Contains(e) {
		panic("overlay: replacing child would create a cycle")
	}
	child.Remove()
	i := e.indexOf(old)
	e.children[i] = child
	child.parent = e
	old.parent = nil
	return old
}

// RemoveChild detaches child from e. Panics if child is not a child of e.
func (e *Element) RemoveChild(child *Element) {
	if child.parent != e {
		panic("overlay: element is not a child of this element")
	}
	i := e.indexOf(child)
	copy(e.children[i:], e.children[i+1:])
	e.children[len(e.children)-1] = nil
	e.children = e.children[:len(e.children)-1]
	child.parent = nil
}

// Remove detaches e from its parent. No-op when detached.
func (e *Element) Remove() {
	if e.parent != nil {
		e.parent.RemoveChild(e)
	}
}

// Contains reports whether other is e or one of its descendants.
func (e *Element) Contains(other *Element) bool {
	for p := other; p != nil; p = p.parent {
		if p == e {
			return true
		}
	}
	return false
}

// Find returns the element in e's subtree whose style id is id, or nil.
func (e *Element) Find(id string) *Element {
	if e.ID() == id {
		return e
	}
	for _, c := range e.children {
		if found := c.Find(id); found != nil {
			return found
		}
	}
	return nil
}

func (e *Element) indexOf(child *Element) int {
	for i, c := range e.children {
		if c == child {
			return i
		}
	}
	return -1
}
