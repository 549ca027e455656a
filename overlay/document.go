package overlay

import "strings"

// Mutation records one attribute change on an observed element.
type Mutation struct {
	Target      *Element
	Name        string
	OldValue    string
	HadOldValue bool
	Removed     bool
}

// Document creates elements and routes attribute changes to observers.
// It is not safe for concurrent use.
type Document struct {
	created   int
	observers []*Observer
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{}
}

// CreateElement returns a new detached element with the lower-cased tag.
func (d *Document) CreateElement(tag string) *Element {
	d.created++
	return &Element{doc: d, tag: strings.ToLower(tag)}
}

// Created returns how many elements the document has ever created.
func (d *Document) Created() int {
	return d.created
}

// NewObserver registers fn to receive batches of mutations. The observer
// watches nothing until Observe is called.
func (d *Document) NewObserver(fn func([]Mutation)) *Observer {
	o := &Observer{doc: d, fn: fn}
	d.observers = append(d.observers, o)
	return o
}

// Flush delivers every pending record to its observer's callback.
func (d *Document) Flush() {
	for _, o := range d.observers {
		if records := o.TakeRecords(); len(records) > 0 {
			o.fn(records)
		}
	}
}

func (d *Document) notify(m Mutation) {
	for _, o := range d.observers {
		if o.root != nil && o.root.Contains(m.Target) {
			o.pending = append(o.pending, m)
		}
	}
}

// Observer queues attribute mutations made inside one subtree. Records are
// delivered by Document.Flush, never synchronously with the change.
type Observer struct {
	doc     *Document
	fn      func([]Mutation)
	root    *Element
	pending []Mutation
}

// Observe starts watching root and its descendants, replacing any previous root.
func (o *Observer) Observe(root *Element) {
	o.root = root
}

// Disconnect stops watching and drops records that were not yet delivered.
func (o *Observer) Disconnect() {
	o.root = nil
	o.pending = o.pending[:0]
}

// Observing reports whether the observer currently watches a subtree.
func (o *Observer) Observing() bool {
	return o.root != nil
}

// TakeRecords returns and clears the pending records.
func (o *Observer) TakeRecords() []Mutation {
	if len(o.pending) == 0 {
		return nil
	}
	out := make([]Mutation, len(o.pending))
	copy(out, o.pending)
	o.pending = o.pending[:0]
	return out
}
