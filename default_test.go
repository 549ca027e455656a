package willowdom

import (
	"testing"

	"github.com/phanxgames/willowdom/overlay"
	"github.com/phanxgames/willowdom/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDemoScene() (*scene.Scene, *scene.Node, *scene.Node) {
	s := scene.NewScene()
	hero := scene.NewSprite("hero", scene.TextureRegion{Name: "hero_idle", Width: 16, Height: 16})
	hero.SetPosition(4, 8)
	hero.UserData = &Player{Health: 5}
	label := scene.NewText("label", "hp")
	label.Color = scene.ColorFromRGB(0x336699, 1)
	s.Root().AddChild(hero)
	s.Root().AddChild(label)
	return s, hero, label
}

func TestNewDefaultProjectsStandardFields(t *testing.T) {
	s, hero, _ := newDemoScene()
	insp := NewDefault(s, overlay.NewSurface(0, 0))

	m := insp.Root()
	assert.Equal(t, "px-container", m.Tag())
	require.Equal(t, 2, m.NumChildren())

	h := m.ChildAt(0)
	assert.Equal(t, "px-player", h.Tag())
	assert.Same(t, hero, h.Target)
	assert.Equal(t, []overlay.Attr{
		{Name: "x", Value: "4"},
		{Name: "y", Value: "8"},
		{Name: "scale", Value: "1,1"},
		{Name: "rotation", Value: "0"},
		{Name: "alpha", Value: "1"},
		{Name: "texture", Value: "hero_idle"},
		{Name: "pivot", Value: "0,0"},
	}, h.Attributes())
	assert.Equal(t, overlay.Rect{X: 4, Y: 8, Width: 16, Height: 16}, h.Style().Rect)

	l := m.ChildAt(1)
	assert.Equal(t, "px-text", l.Tag())
	text, _ := l.GetAttribute("text")
	assert.Equal(t, "hp", text)
	tint, _ := l.GetAttribute("tint")
	assert.Equal(t, "336699", tint)
}

func TestNewDefaultEditRoundTrip(t *testing.T) {
	s, hero, label := newDemoScene()
	insp := NewDefault(s, nil)
	insp.Bind(KindOf(Player{}), "Health", nil)

	h := insp.Root().ChildAt(0)
	h.SetAttribute("scale", "2,3")
	h.SetAttribute("x", "40")
	h.SetAttribute("texture", "other")
	insp.Root().ChildAt(1).SetAttribute("text", "hello")
	insp.Update()

	assert.Equal(t, 2.0, hero.ScaleX)
	assert.Equal(t, 3.0, hero.ScaleY)
	assert.Equal(t, 40.0, hero.X)
	assert.Equal(t, "hero_idle", hero.TextureRegion.Name, "textures are read-only")
	assert.Equal(t, "hello", label.TextBlock.Content)

	assert.Equal(t, overlay.Rect{X: 40, Y: 8, Width: 32, Height: 48}, h.Style().Rect)
	v, _ := h.GetAttribute("texture")
	assert.Equal(t, "hero_idle", v)
	v, _ = h.GetAttribute("health")
	assert.Equal(t, "5", v)

	h.SetAttribute("health", "9")
	insp.Update()
	assert.Equal(t, 9, hero.UserData.(*Player).Health)
}

func TestNewDefaultHonoursLaterRegistry(t *testing.T) {
	s, _, _ := newDemoScene()
	reg := NewRegistry()
	reg.Register(KindNode, Attribute{Name: "Name"})
	insp := NewDefault(s, nil, WithRegistry(reg))

	assert.Equal(t, []overlay.Attr{{Name: "name", Value: "hero"}}, insp.Root().ChildAt(0).Attributes())
}
