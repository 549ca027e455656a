package overlay

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// MouseButton identifies a mouse button that can pick an element.
type MouseButton uint8

const (
	MouseButtonLeft  MouseButton = iota // primary (left) mouse button
	MouseButtonRight                    // secondary (right) mouse button
)

// Input is the pointer and keyboard state a Surface reads each frame.
type Input interface {
	// Passthrough reports whether the key that routes pointer events to the
	// overlay is held.
	Passthrough() bool
	CursorPosition() (x, y int)
	JustPressed(b MouseButton) bool
}

// EbitenInput reads Input from Ebitengine. Holding any of Keys enables
// passthrough; with no keys, Control does.
type EbitenInput struct {
	Keys []ebiten.Key
}

var defaultPassthroughKeys = []ebiten.Key{ebiten.KeyControl, ebiten.KeyControlLeft, ebiten.KeyControlRight}

func (e EbitenInput) Passthrough() bool {
	keys := e.Keys
	if len(keys) == 0 {
		keys = defaultPassthroughKeys
	}
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func (EbitenInput) CursorPosition() (int, int) {
	return ebiten.CursorPosition()
}

func (EbitenInput) JustPressed(b MouseButton) bool {
	switch b {
	case MouseButtonLeft:
		return inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	case MouseButtonRight:
		return inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)
	}
	return false
}
