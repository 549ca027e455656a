package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/willowdom/scene"
)

const (
	screenW = 640
	screenH = 480
	boxW    = 40
	boxH    = 40
)

// Crate is game data attached to some demo sprites. The inspector shows
// crates with their own tag and binds Weight.
type Crate struct {
	Weight int
	Label  string
}

type bouncer struct {
	node   *scene.Node
	dx, dy float64
}

func (b *bouncer) step() {
	b.node.X += b.dx
	b.node.Y += b.dy
	b.node.MarkDirty()

	if b.node.X < 0 || b.node.X+boxW > screenW {
		b.dx = -b.dx
	}
	if b.node.Y < 0 || b.node.Y+boxH > screenH {
		b.dy = -b.dy
	}
}

// demo is the scene shown by run and dump.
type demo struct {
	scene    *scene.Scene
	bouncers []*bouncer
	spinner  *scene.Node
}

func newDemo() *demo {
	s := scene.NewScene()
	s.ClearColor = scene.Color{R: 0.118, G: 0.118, B: 0.157, A: 1}
	d := &demo{scene: s}

	boxes := scene.NewContainer("boxes")
	s.Root().AddChild(boxes)
	colors := []uint32{0x50b4ff, 0xffffff, 0xff7050}
	for i, c := range colors {
		box := scene.NewSprite("box", scene.TextureRegion{Name: "pixel"})
		box.SetScale(boxW, boxH)
		box.Color = scene.ColorFromRGB(c, 1)
		box.SetPosition(100+float64(i)*120, 100+float64(i)*60)
		boxes.AddChild(box)
		d.bouncers = append(d.bouncers, &bouncer{node: box, dx: 2 - float64(i), dy: 1.5})
	}

	crate := scene.NewSprite("crate", scene.TextureRegion{Name: "crate"})
	crate.SetScale(48, 32)
	crate.SetPosition(480, 360)
	crate.Color = scene.ColorFromRGB(0xb08040, 1)
	crate.UserData = &Crate{Weight: 12, Label: "supplies"}
	s.Root().AddChild(crate)

	d.spinner = scene.NewMesh("spinner", nil, []ebiten.Vertex{
		{DstX: -20, DstY: -20, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		{DstX: 20, DstY: -20, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		{DstX: 0, DstY: 20, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
	}, []uint16{0, 1, 2})
	d.spinner.SetPosition(560, 80)
	d.spinner.Color = scene.ColorFromRGB(0x9cff70, 1)
	s.Root().AddChild(d.spinner)

	hud := scene.NewText("hud", "hold ctrl and click a box")
	hud.SetPosition(8, 8)
	s.Root().AddChild(hud)
	return d
}

// step advances the animation by one frame.
func (d *demo) step() {
	for _, b := range d.bouncers {
		b.step()
	}
	d.spinner.SetRotation(math.Mod(d.spinner.Rotation+0.03, 2*math.Pi))
}
