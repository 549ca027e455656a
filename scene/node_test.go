package scene

import "testing"

// --- Constructor defaults ---

func TestConstructorDefaults(t *testing.T) {
	cases := []struct {
		node *Node
		typ  NodeType
	}{
		{NewContainer("c"), NodeTypeContainer},
		{NewSprite("s", TextureRegion{Width: 8, Height: 8}), NodeTypeSprite},
		{NewMesh("m", nil, nil, nil), NodeTypeMesh},
		{NewText("t", "hi"), NodeTypeText},
	}
	for _, c := range cases {
		assertNodeDefaults(t, c.node, c.typ)
	}
}

func assertNodeDefaults(t *testing.T, n *Node, typ NodeType) {
	t.Helper()
	if n.ID == 0 {
		t.Error("ID should be non-zero")
	}
	if n.Type != typ {
		t.Errorf("Type = %v, want %v", n.Type, typ)
	}
	if n.ScaleX != 1 || n.ScaleY != 1 {
		t.Errorf("Scale = (%v, %v), want (1, 1)", n.ScaleX, n.ScaleY)
	}
	if n.Alpha != 1 {
		t.Errorf("Alpha = %v, want 1", n.Alpha)
	}
	if n.Color != ColorWhite {
		t.Errorf("Color = %v, want white", n.Color)
	}
	if !n.Visible {
		t.Error("Visible should be true")
	}
	if !n.transformDirty {
		t.Error("transformDirty should be true")
	}
}

func TestNewTextBlock(t *testing.T) {
	n := NewText("t", "hello")
	if n.TextBlock == nil || n.TextBlock.Content != "hello" {
		t.Fatalf("TextBlock = %+v, want content hello", n.TextBlock)
	}
}

// --- AddChild ---

func TestAddChildBasic(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)

	if child.Parent != parent {
		t.Error("child.Parent should be parent")
	}
	if parent.NumChildren() != 1 || parent.ChildAt(0) != child {
		t.Errorf("children = %d, want [child]", parent.NumChildren())
	}
}

func TestAddChildReparent(t *testing.T) {
	p1 := NewContainer("p1")
	p2 := NewContainer("p2")
	child := NewContainer("child")

	p1.AddChild(child)
	p2.AddChild(child)
	if p1.NumChildren() != 0 {
		t.Error("p1 should have 0 children after reparent")
	}
	if child.Parent != p2 || p2.NumChildren() != 1 {
		t.Error("child should belong to p2")
	}
}

func TestAddChildSameParentMovesToEnd(t *testing.T) {
	parent := NewContainer("parent")
	a := NewContainer("a")
	b := NewContainer("b")
	parent.AddChild(a)
	parent.AddChild(b)

	parent.AddChild(a)
	if parent.NumChildren() != 2 {
		t.Fatalf("NumChildren = %d, want 2", parent.NumChildren())
	}
	if parent.ChildAt(0) != b || parent.ChildAt(1) != a {
		t.Error("children order should be [b, a]")
	}
}

func TestAddChildCyclePanic(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for cycle, got none")
		}
	}()
	child.AddChild(parent)
}

func TestAddChildNilPanic(t *testing.T) {
	n := NewContainer("n")
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for nil child, got none")
		}
	}()
	n.AddChild(nil)
}

func TestAddChildAt(t *testing.T) {
	parent := NewContainer("parent")
	a := NewContainer("a")
	b := NewContainer("b")
	c := NewContainer("c")
	parent.AddChild(a)
	parent.AddChild(c)

	parent.AddChildAt(b, 1)

	if parent.NumChildren() != 3 {
		t.Fatalf("NumChildren = %d, want 3", parent.NumChildren())
	}
	if parent.ChildAt(0) != a || parent.ChildAt(1) != b || parent.ChildAt(2) != c {
		t.Error("children order should be [a, b, c]")
	}
}

// --- Removal ---

func TestRemoveChildAt(t *testing.T) {
	parent := NewContainer("parent")
	a := NewContainer("a")
	b := NewContainer("b")
	c := NewContainer("c")
	parent.AddChild(a)
	parent.AddChild(b)
	parent.AddChild(c)

	if removed := parent.RemoveChildAt(1); removed != b {
		t.Error("removed should be b")
	}
	if parent.ChildAt(0) != a || parent.ChildAt(1) != c {
		t.Error("remaining children should be [a, c]")
	}
	if b.Parent != nil {
		t.Error("removed child should have nil Parent")
	}
}

func TestRemoveChildWrongParentPanic(t *testing.T) {
	p1 := NewContainer("p1")
	p2 := NewContainer("p2")
	child := NewContainer("child")
	p1.AddChild(child)

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for wrong parent, got none")
		}
	}()
	p2.RemoveChild(child)
}

func TestRemoveChildren(t *testing.T) {
	parent := NewContainer("parent")
	a := NewContainer("a")
	b := NewContainer("b")
	parent.AddChild(a)
	parent.AddChild(b)
	parent.RemoveChildren()

	if parent.NumChildren() != 0 {
		t.Error("parent should have 0 children")
	}
	if a.Parent != nil || b.Parent != nil {
		t.Error("detached children should have nil Parent")
	}
}

func TestSetChildIndex(t *testing.T) {
	parent := NewContainer("parent")
	a := NewContainer("a")
	b := NewContainer("b")
	c := NewContainer("c")
	parent.AddChild(a)
	parent.AddChild(b)
	parent.AddChild(c)

	parent.SetChildIndex(c, 0)
	if parent.ChildAt(0) != c || parent.ChildAt(1) != a || parent.ChildAt(2) != b {
		t.Errorf("after move to front: got [%s, %s, %s], want [c, a, b]",
			parent.ChildAt(0).Name, parent.ChildAt(1).Name, parent.ChildAt(2).Name)
	}
	parent.SetChildIndex(c, 2)
	if parent.ChildAt(0) != a || parent.ChildAt(1) != b || parent.ChildAt(2) != c {
		t.Errorf("after move to back: got [%s, %s, %s], want [a, b, c]",
			parent.ChildAt(0).Name, parent.ChildAt(1).Name, parent.ChildAt(2).Name)
	}
}

// --- Disposal ---

func TestDispose(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	grandchild := NewText("grandchild", "x")
	parent.AddChild(child)
	child.AddChild(grandchild)

	child.Dispose()

	if !child.IsDisposed() || !grandchild.IsDisposed() {
		t.Error("child and grandchild should be disposed")
	}
	if parent.NumChildren() != 0 {
		t.Error("disposed child should be removed from parent")
	}
	if grandchild.TextBlock != nil {
		t.Error("disposed node should drop its TextBlock")
	}
	child.Dispose() // idempotent
}

func TestDirtyPropagationOnAddChild(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	grandchild := NewContainer("grandchild")
	child.AddChild(grandchild)
	RefreshTransforms(child)
	if grandchild.transformDirty {
		t.Fatal("grandchild should be clean after refresh")
	}

	parent.AddChild(child)
	if !child.transformDirty || !grandchild.transformDirty {
		t.Error("AddChild should mark the whole subtree dirty")
	}
}

func TestColorRGBRoundTrip(t *testing.T) {
	c := ColorFromRGB(0x3366cc, 0.5)
	if got := c.RGB(); got != 0x3366cc {
		t.Errorf("RGB() = %06x, want 3366cc", got)
	}
	if c.A != 0.5 {
		t.Errorf("A = %v, want 0.5", c.A)
	}
	if ColorWhite.RGB() != 0xffffff {
		t.Errorf("white RGB = %06x", ColorWhite.RGB())
	}
}
