package scene

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Scene is the top-level object that owns the node tree.
type Scene struct {
	root *Node

	// ClearColor fills the screen before drawing when its alpha is non-zero.
	ClearColor Color

	updateFunc func() error
	overlays   []func(screen *ebiten.Image)
}

// NewScene creates a new scene with a pre-created root container.
func NewScene() *Scene {
	return &Scene{root: NewContainer("root")}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// SetUpdateFunc registers a callback invoked at the start of every Update.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// AddOverlay registers a function drawn on top of the scene every frame,
// in registration order.
func (s *Scene) AddOverlay(fn func(screen *ebiten.Image)) {
	s.overlays = append(s.overlays, fn)
}

// Update runs the update callback and refreshes world transforms.
func (s *Scene) Update() error {
	if s.updateFunc != nil {
		if err := s.updateFunc(); err != nil {
			return err
		}
	}
	RefreshTransforms(s.root)
	return nil
}

// Draw renders the tree and then every overlay onto screen.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}
	s.drawNode(screen, s.root)
	for _, fn := range s.overlays {
		fn(screen)
	}
}

// whitePixel is the 1x1 image scaled up for solid-color sprites. Created on
// first draw so importing the package never touches the graphics driver.
var whitePixel *ebiten.Image

func ensureWhitePixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(ColorWhite.toRGBA())
	}
	return whitePixel
}

// drawNode renders n and its children in tree order. This is a debug
// renderer: no batching, culling or blend modes.
func (s *Scene) drawNode(screen *ebiten.Image, n *Node) {
	if !n.Visible {
		return
	}
	m := n.worldTransform
	var geom ebiten.GeoM
	geom.SetElement(0, 0, m[0])
	geom.SetElement(1, 0, m[1])
	geom.SetElement(0, 1, m[2])
	geom.SetElement(1, 1, m[3])
	geom.SetElement(0, 2, m[4])
	geom.SetElement(1, 2, m[5])

	a := float32(n.worldAlpha)
	switch n.Type {
	case NodeTypeSprite:
		img := ensureWhitePixel()
		if r := n.TextureRegion; r.Image != nil {
			img = r.Image
			if r.Width > 0 && r.Height > 0 {
				img = subImage(r.Image, r.X, r.Y, r.Width, r.Height)
			}
		}
		var op ebiten.DrawImageOptions
		op.GeoM = geom
		op.ColorScale.Scale(float32(n.Color.R)*a, float32(n.Color.G)*a, float32(n.Color.B)*a, a)
		screen.DrawImage(img, &op)
	case NodeTypeMesh:
		if len(n.Vertices) > 0 && len(n.Indices) > 0 {
			verts := make([]ebiten.Vertex, len(n.Vertices))
			for i, v := range n.Vertices {
				x, y := transformPoint(m, float64(v.DstX), float64(v.DstY))
				v.DstX, v.DstY = float32(x), float32(y)
				v.ColorR *= float32(n.Color.R) * a
				v.ColorG *= float32(n.Color.G) * a
				v.ColorB *= float32(n.Color.B) * a
				v.ColorA *= a
				verts[i] = v
			}
			img := n.MeshImage
			if img == nil {
				img = ensureWhitePixel()
			}
			screen.DrawTriangles(verts, n.Indices, img, nil)
		}
	case NodeTypeText:
		if n.TextBlock != nil && n.TextBlock.Content != "" {
			x, y := transformPoint(m, 0, 0)
			ebitenutil.DebugPrintAt(screen, n.TextBlock.Content, int(x), int(y))
		}
	}
	for _, child := range n.children {
		s.drawNode(screen, child)
	}
}

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title         string
	Width, Height int
}

type game struct {
	scene *Scene
	w, h  int
}

func (g *game) Update() error              { return g.scene.Update() }
func (g *game) Draw(screen *ebiten.Image)  { g.scene.Draw(screen) }
func (g *game) Layout(_, _ int) (int, int) { return g.w, g.h }

// Run opens a window and drives the scene until the window closes or an
// update callback returns an error.
func Run(s *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("scene: invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	return ebiten.RunGame(&game{scene: s, w: cfg.Width, h: cfg.Height})
}
