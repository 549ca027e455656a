package scene

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// RGB packs the color channels into 0xRRGGBB, ignoring alpha.
func (c Color) RGB() uint32 {
	return uint32(to8(c.R))<<16 | uint32(to8(c.G))<<8 | uint32(to8(c.B))
}

// ColorFromRGB unpacks 0xRRGGBB into a Color with the given alpha.
func ColorFromRGB(rgb uint32, alpha float64) Color {
	return Color{
		R: float64(rgb>>16&0xff) / 255,
		G: float64(rgb>>8&0xff) / 255,
		B: float64(rgb&0xff) / 255,
		A: alpha,
	}
}

// toRGBA converts a Color to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func to8(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector used for positions, offsets, sizes, and pivots.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 && r.Height <= 0
}

// Union returns the smallest rectangle containing both r and other.
// An empty rectangle does not contribute.
func (r Rect) Union(other Rect) Rect {
	if r.Empty() {
		return other
	}
	if other.Empty() {
		return r
	}
	minX := math.Min(r.X, other.X)
	minY := math.Min(r.Y, other.Y)
	maxX := math.Max(r.X+r.Width, other.X+other.Width)
	maxY := math.Max(r.Y+r.Height, other.Y+other.Height)
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// NodeType distinguishes rendering behavior for a Node.
type NodeType uint8

const (
	NodeTypeContainer NodeType = iota // group node with no visual output
	NodeTypeSprite                    // renders a TextureRegion or a solid color
	NodeTypeMesh                      // renders arbitrary triangles via DrawTriangles
	NodeTypeText                      // renders a TextBlock
)

func (t NodeType) String() string {
	switch t {
	case NodeTypeContainer:
		return "container"
	case NodeTypeSprite:
		return "sprite"
	case NodeTypeMesh:
		return "mesh"
	case NodeTypeText:
		return "text"
	default:
		return "unknown"
	}
}

// TextureRegion describes a named sub-rectangle of an image.
// A zero-value region renders as a 1x1 solid pixel, scaled by the node.
type TextureRegion struct {
	Name          string
	Image         *ebiten.Image
	X, Y          int
	Width, Height int
}

// DisplayName returns the region's name, used when the region is shown to a user.
func (r TextureRegion) DisplayName() string {
	return r.Name
}

// size returns the drawn size of the region; 1x1 for the solid-pixel fallback.
func (r TextureRegion) size() (w, h float64) {
	if r.Width == 0 && r.Height == 0 {
		return 1, 1
	}
	return float64(r.Width), float64(r.Height)
}

func subImage(img *ebiten.Image, x, y, w, h int) *ebiten.Image {
	return img.SubImage(image.Rect(x, y, x+w, y+h)).(*ebiten.Image)
}

// Glyph metrics of ebitenutil's debug font, used to measure text.
const (
	debugGlyphWidth = 6
	debugLineHeight = 16
)

// TextBlock holds text content and its cached measurement.
type TextBlock struct {
	Content string
	Color   Color

	measured    bool
	measuredFor string
	measuredW   float64
	measuredH   float64
}

// Measure returns the laid-out size of the content in the debug font.
func (tb *TextBlock) Measure() (w, h float64) {
	if tb.measured && tb.measuredFor == tb.Content {
		return tb.measuredW, tb.measuredH
	}
	tb.measured = true
	tb.measuredFor = tb.Content
	if tb.Content == "" {
		tb.measuredW, tb.measuredH = 0, 0
		return 0, 0
	}
	lines, widest, cur := 1, 0, 0
	for _, r := range tb.Content {
		if r == '\n' {
			lines++
			cur = 0
			continue
		}
		cur++
		if cur > widest {
			widest = cur
		}
	}
	tb.measuredW = float64(widest * debugGlyphWidth)
	tb.measuredH = float64(lines * debugLineHeight)
	return tb.measuredW, tb.measuredH
}
