package overlay

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// hoverFadeSeconds is how long the hover highlight takes to fade in.
const hoverFadeSeconds = 0.15

var (
	hoverColor  = color.RGBA{255, 255, 255, 255}
	pickedColor = color.RGBA{0, 200, 255, 255}
)

// Surface is the visual area an overlay tree is laid over. It owns the style
// sheet positioning the elements, and turns pointer input into hover and pick
// events while passthrough is held.
type Surface struct {
	// OriginX and OriginY offset element rules from scene coordinates.
	OriginX, OriginY float64

	// OnPick is called when an element is clicked during passthrough.
	OnPick func(el *Element, button MouseButton)

	sheet       StyleSheet
	passthrough bool
	hovered     *Element
	picked      *Element
	hoveredFor  any // hovered.Target when hovered was set
	pickedFor   any // picked.Target when picked was set
	fade        *gween.Tween
	highlight   float32
}

// NewSurface returns a surface whose scene origin sits at (originX, originY).
func NewSurface(originX, originY float64) *Surface {
	return &Surface{OriginX: originX, OriginY: originY}
}

// Sheet returns the surface's style sheet.
func (s *Surface) Sheet() *StyleSheet {
	return &s.sheet
}

// Passthrough reports whether the overlay received pointer events last Update.
func (s *Surface) Passthrough() bool {
	return s.passthrough
}

// Hovered returns the element under the pointer, or nil.
func (s *Surface) Hovered() *Element {
	return s.hovered
}

// Picked returns the most recently picked element, or nil.
func (s *Surface) Picked() *Element {
	return s.picked
}

// ElementAt returns the topmost element under (x, y) that can receive pointer
// events: childless, not hidden, and not inside a hidden element.
func (s *Surface) ElementAt(root *Element, x, y float64) *Element {
	if root == nil || s.sheet.disabled {
		return nil
	}
	var hit *Element
	var walk func(e *Element)
	walk = func(e *Element) {
		if e.style != nil && e.style.Hidden {
			return
		}
		if e.Empty() {
			if e.style != nil && e.style.Rect.Contains(x, y) {
				hit = e
			}
			return
		}
		for _, c := range e.children {
			walk(c)
		}
	}
	walk(root)
	return hit
}

// Update reads one frame of input. dt is the frame time in seconds.
func (s *Surface) Update(root *Element, in Input, dt float32) {
	s.passthrough = in.Passthrough()
	if _, picked := s.current(root); picked == nil {
		s.picked, s.pickedFor = nil, nil
	}
	if !s.passthrough {
		s.hovered, s.hoveredFor = nil, nil
		s.fade = nil
		return
	}

	cx, cy := in.CursorPosition()
	el := s.ElementAt(root, float64(cx), float64(cy))
	if el != s.hovered || (el != nil && !sameTarget(el.Target, s.hoveredFor)) {
		s.hovered = el
		s.hoveredFor = nil
		if el != nil {
			s.hoveredFor = el.Target
		}
		s.highlight = 0
		s.fade = gween.New(0, 1, hoverFadeSeconds, ease.OutQuad)
	}
	if s.fade != nil {
		v, done := s.fade.Update(dt)
		s.highlight = v
		if done {
			s.fade = nil
		}
	}

	if s.hovered == nil {
		return
	}
	for _, b := range []MouseButton{MouseButtonLeft, MouseButtonRight} {
		if !in.JustPressed(b) {
			continue
		}
		s.picked, s.pickedFor = s.hovered, s.hovered.Target
		if s.OnPick != nil {
			s.OnPick(s.hovered, b)
		}
	}
}

// pixel is the 1x1 image scaled into rectangles. Created lazily so the
// package can be used without a graphics driver.
var pixel *ebiten.Image

func ensurePixel() *ebiten.Image {
	if pixel == nil {
		pixel = ebiten.NewImage(1, 1)
		pixel.Fill(color.White)
	}
	return pixel
}

// Draw paints the hover highlight and the picked element's outline.
func (s *Surface) Draw(screen *ebiten.Image, root *Element) {
	if s.sheet.disabled || root == nil {
		return
	}
	hovered, picked := s.current(root)
	if picked != nil && picked.style != nil {
		strokeRect(screen, picked.style.Rect, pickedColor, 1)
	}
	if hovered != nil && hovered.style != nil {
		r := hovered.style.Rect
		fillRect(screen, r, hoverColor, 0.2*s.highlight)
		strokeRect(screen, r, hoverColor, s.highlight)
	}
}

// current returns the hovered and picked elements that are still under root
// and still mirror the target they had when hovered or picked. A recycled
// element fails the second check.
func (s *Surface) current(root *Element) (hovered, picked *Element) {
	if root == nil {
		return nil, nil
	}
	if s.hovered != nil && root.Contains(s.hovered) && sameTarget(s.hovered.Target, s.hoveredFor) {
		hovered = s.hovered
	}
	if s.picked != nil && root.Contains(s.picked) && sameTarget(s.picked.Target, s.pickedFor) {
		picked = s.picked
	}
	return hovered, picked
}

// sameTarget compares two targets, treating incomparable values as different.
func sameTarget(a, b any) (same bool) {
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}

func fillRect(dst *ebiten.Image, r Rect, c color.RGBA, alpha float32) {
	if r.Width <= 0 || r.Height <= 0 || alpha <= 0 {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(r.Width, r.Height)
	op.GeoM.Translate(r.X, r.Y)
	op.ColorScale.Scale(float32(c.R)/255*alpha, float32(c.G)/255*alpha, float32(c.B)/255*alpha, alpha)
	dst.DrawImage(ensurePixel(), &op)
}

func strokeRect(dst *ebiten.Image, r Rect, c color.RGBA, alpha float32) {
	fillRect(dst, Rect{X: r.X, Y: r.Y, Width: r.Width, Height: 1}, c, alpha)
	fillRect(dst, Rect{X: r.X, Y: r.Y + r.Height - 1, Width: r.Width, Height: 1}, c, alpha)
	fillRect(dst, Rect{X: r.X, Y: r.Y, Width: 1, Height: r.Height}, c, alpha)
	fillRect(dst, Rect{X: r.X + r.Width - 1, Y: r.Y, Width: 1, Height: r.Height}, c, alpha)
}
