package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeInput is an Input driven by the test.
type fakeInput struct {
	held    bool
	x, y    int
	pressed map[MouseButton]bool
}

func (f *fakeInput) Passthrough() bool              { return f.held }
func (f *fakeInput) CursorPosition() (int, int)     { return f.x, f.y }
func (f *fakeInput) JustPressed(b MouseButton) bool { return f.pressed[b] }

// buildOverlay returns root{ group{ a, b }, c } with a, b and c positioned.
func buildOverlay(s *Surface) (root, group, a, b, c *Element) {
	doc := NewDocument()
	mk := func(tag string, r Rect) *Element {
		el := doc.CreateElement(tag)
		st := s.Sheet().NewStyle()
		st.Rect = r
		el.SetStyle(st)
		return el
	}
	root = mk("root", Rect{Width: 200, Height: 200})
	group = mk("group", Rect{Width: 100, Height: 100})
	a = mk("a", Rect{X: 0, Y: 0, Width: 50, Height: 50})
	b = mk("b", Rect{X: 25, Y: 25, Width: 50, Height: 50})
	c = mk("c", Rect{X: 150, Y: 150, Width: 20, Height: 20})
	root.AppendChild(group)
	group.AppendChild(a)
	group.AppendChild(b)
	root.AppendChild(c)
	return
}

func TestElementAtPrefersTopmostEmpty(t *testing.T) {
	s := NewSurface(0, 0)
	root, group, a, b, c := buildOverlay(s)

	assert.Same(t, b, s.ElementAt(root, 30, 30), "later sibling is on top")
	assert.Same(t, a, s.ElementAt(root, 10, 10))
	assert.Same(t, c, s.ElementAt(root, 160, 160))
	assert.Nil(t, s.ElementAt(root, 90, 90), "non-empty elements never receive events")

	b.Style().Hidden = true
	assert.Same(t, a, s.ElementAt(root, 30, 30))
	group.Style().Hidden = true
	assert.Nil(t, s.ElementAt(root, 10, 10), "hidden ancestors hide their subtree")

	s.Sheet().SetDisabled(true)
	assert.Nil(t, s.ElementAt(root, 160, 160))
}

func TestUpdateHoverRequiresPassthrough(t *testing.T) {
	s := NewSurface(0, 0)
	root, _, a, _, _ := buildOverlay(s)
	in := &fakeInput{x: 10, y: 10}

	s.Update(root, in, 1.0/60)
	assert.False(t, s.Passthrough())
	assert.Nil(t, s.Hovered())

	in.held = true
	s.Update(root, in, 1.0/60)
	assert.True(t, s.Passthrough())
	assert.Same(t, a, s.Hovered())
}

func TestHoverHighlightFadesIn(t *testing.T) {
	s := NewSurface(0, 0)
	root, _, _, _, _ := buildOverlay(s)
	in := &fakeInput{held: true, x: 10, y: 10}

	s.Update(root, in, 0.05)
	first := s.highlight
	assert.Greater(t, first, float32(0))
	assert.Less(t, first, float32(1))

	s.Update(root, in, 1)
	assert.Equal(t, float32(1), s.highlight)
}

func TestPickReportsButtons(t *testing.T) {
	s := NewSurface(0, 0)
	root, _, _, _, c := buildOverlay(s)

	var picks []MouseButton
	s.OnPick = func(el *Element, b MouseButton) {
		assert.Same(t, c, el)
		picks = append(picks, b)
	}
	in := &fakeInput{held: true, x: 160, y: 160, pressed: map[MouseButton]bool{MouseButtonRight: true}}
	s.Update(root, in, 1.0/60)

	require.Equal(t, []MouseButton{MouseButtonRight}, picks)
	assert.Same(t, c, s.Picked())

	c.Remove()
	in.pressed = nil
	s.Update(root, in, 1.0/60)
	assert.Nil(t, s.Picked(), "detached picks are forgotten")
}

func TestClickWithoutPassthroughDoesNotPick(t *testing.T) {
	s := NewSurface(0, 0)
	root, _, _, _, _ := buildOverlay(s)
	s.OnPick = func(*Element, MouseButton) { t.Fatal("unexpected pick") }
	s.Update(root, &fakeInput{x: 10, y: 10, pressed: map[MouseButton]bool{MouseButtonLeft: true}}, 1.0/60)
}

func TestRecycledElementLosesHighlight(t *testing.T) {
	s := NewSurface(0, 0)
	root, _, a, _, _ := buildOverlay(s)
	a.Target = "first"
	in := &fakeInput{held: true, x: 10, y: 10, pressed: map[MouseButton]bool{MouseButtonLeft: true}}
	s.Update(root, in, 1)
	require.Same(t, a, s.Picked())
	require.Equal(t, float32(1), s.highlight)

	// The same element now mirrors another node.
	a.Target = "second"
	hovered, picked := s.current(root)
	assert.Nil(t, hovered)
	assert.Nil(t, picked)

	in.pressed = nil
	s.Update(root, in, 0.05)
	assert.Nil(t, s.Picked(), "pick does not follow the element to its new target")
	assert.Same(t, a, s.Hovered())
	assert.Less(t, s.highlight, float32(1), "hover restarts for the new target")

	hovered, _ = s.current(root)
	assert.Same(t, a, hovered)
}
