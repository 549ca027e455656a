package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateElementLowercasesTag(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("PX-Sprite")
	assert.Equal(t, "px-sprite", el.Tag())
	assert.Equal(t, 1, doc.Created())
	assert.Same(t, doc, el.Document())
}

func TestAttributesCaseInsensitive(t *testing.T) {
	el := NewDocument().CreateElement("px-node")
	el.SetAttribute("ScaleX", "2")
	el.SetAttribute("alpha", "1")

	v, ok := el.GetAttribute("scalex")
	require.True(t, ok)
	assert.Equal(t, "2", v)
	assert.True(t, el.HasAttribute("SCALEX"))

	el.SetAttribute("SCALEX", "3")
	assert.Equal(t, []Attr{{"scalex", "3"}, {"alpha", "1"}}, el.Attributes())

	el.RemoveAttribute("ScaleX")
	assert.False(t, el.HasAttribute("scalex"))
	assert.Equal(t, 1, el.NumAttributes())

	el.RemoveAttribute("missing")
	el.ClearAttributes()
	assert.Zero(t, el.NumAttributes())
}

func TestAppendReplaceRemove(t *testing.T) {
	doc := NewDocument()
	root := doc.CreateElement("root")
	a := doc.CreateElement("a")
	b := doc.CreateElement("b")
	c := doc.CreateElement("c")

	root.AppendChild(a)
	root.AppendChild(b)
	require.Equal(t, []*Element{a, b}, root.Children())
	assert.Same(t, b, root.LastChild())

	old := root.ReplaceChild(c, a)
	assert.Same(t, a, old)
	assert.Nil(t, a.Parent())
	assert.Equal(t, []*Element{c, b}, root.Children())

	root.RemoveChild(b)
	assert.Nil(t, b.Parent())
	assert.Equal(t, []*Element{c}, root.Children())

	c.Remove()
	assert.True(t, root.Empty())
	assert.Nil(t, root.LastChild())
}

func TestAppendChildReparents(t *testing.T) {
	doc := NewDocument()
	p1 := doc.CreateElement("p1")
	p2 := doc.CreateElement("p2")
	child := doc.CreateElement("child")

	p1.AppendChild(child)
	p2.AppendChild(child)
	assert.True(t, p1.Empty())
	assert.Same(t, p2, child.Parent())
}

func TestAppendChildCyclePanics(t *testing.T) {
	doc := NewDocument()
	parent := doc.CreateElement("parent")
	child := doc.CreateElement("child")
	parent.AppendChild(child)
	assert.Panics(t, func() { child.AppendChild(parent) })
	assert.Panics(t, func() { parent.AppendChild(parent) })
}

func TestContains(t *testing.T) {
	doc := NewDocument()
	root := doc.CreateElement("root")
	child := doc.CreateElement("child")
	grandchild := doc.CreateElement("grandchild")
	root.AppendChild(child)
	child.AppendChild(grandchild)

	assert.True(t, root.Contains(root))
	assert.True(t, root.Contains(grandchild))
	assert.False(t, child.Contains(root))
}

func TestStyleSheetIDs(t *testing.T) {
	var sheet StyleSheet
	s0 := sheet.NewStyle()
	s1 := sheet.NewStyle()
	assert.Equal(t, "px0", s0.ID())
	assert.Equal(t, "px1", s1.ID())
	assert.Equal(t, 2, sheet.Len())

	el := NewDocument().CreateElement("x")
	assert.Empty(t, el.ID())
	el.SetStyle(s1)
	assert.Equal(t, "px1", el.ID())
}

func TestFind(t *testing.T) {
	var sheet StyleSheet
	doc := NewDocument()
	root := doc.CreateElement("root")
	child := doc.CreateElement("child")
	grandchild := doc.CreateElement("grandchild")
	for _, el := range []*Element{root, child, grandchild} {
		el.SetStyle(sheet.NewStyle())
	}
	root.AppendChild(child)
	child.AppendChild(grandchild)

	assert.Same(t, root, root.Find("px0"))
	assert.Same(t, grandchild, root.Find("px2"))
	assert.Nil(t, child.Find("px0"))
	assert.Nil(t, root.Find("px9"))
}
