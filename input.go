package storycam

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// FrameInput is everything the core reads from input devices in one frame.
type FrameInput struct {
	// Wheel is the signed depth delta: positive scrolls forward (the
	// autoscroll direction), negative scrolls back.
	Wheel float64
	// ZoomHeld is the hold-to-zoom key state.
	ZoomHeld bool
	// Interact fires the arbiter (click/tap or the interact key).
	Interact bool
	// PointerX and PointerY are normalized device coordinates of the
	// pointer, valid when HasPointer is true.
	PointerX, PointerY float64
	HasPointer         bool
}

// InputSource produces one FrameInput per frame.
type InputSource interface {
	Poll() FrameInput
}

// EbitenInput reads input from ebiten. Wheel-down (toward the player)
// scrolls forward through the story, wheel-up scrolls back.
type EbitenInput struct {
	// ZoomKey is held for hold-to-zoom.
	ZoomKey ebiten.Key
	// InteractKey and InteractButton fire the arbiter when just pressed.
	InteractKey    ebiten.Key
	InteractButton ebiten.MouseButton
	// WheelScale converts ebiten wheel ticks to depth-delta units before
	// the coordinator's sensitivity is applied.
	WheelScale float64
	// Width and Height are the layout size used to normalize the cursor.
	Width, Height int
}

// NewEbitenInput returns the default bindings: space to zoom, E or left
// click to interact.
func NewEbitenInput(width, height int) *EbitenInput {
	return &EbitenInput{
		ZoomKey:        ebiten.KeySpace,
		InteractKey:    ebiten.KeyE,
		InteractButton: ebiten.MouseButtonLeft,
		WheelScale:     100,
		Width:          width,
		Height:         height,
	}
}

// Poll implements InputSource.
func (in *EbitenInput) Poll() FrameInput {
	_, dy := ebiten.Wheel()
	fi := FrameInput{
		Wheel:    -dy * in.WheelScale,
		ZoomHeld: ebiten.IsKeyPressed(in.ZoomKey),
		Interact: inpututil.IsKeyJustPressed(in.InteractKey) ||
			inpututil.IsMouseButtonJustPressed(in.InteractButton),
	}
	if in.Width > 0 && in.Height > 0 {
		cx, cy := ebiten.CursorPosition()
		fi.PointerX, fi.PointerY = screenToNDC(float64(cx), float64(cy), float64(in.Width), float64(in.Height))
		fi.HasPointer = true
	}
	return fi
}

// screenToNDC converts top-left origin screen pixels to normalized device
// coordinates with Y up.
func screenToNDC(sx, sy, w, h float64) (float64, float64) {
	return sx/w*2 - 1, -(sy/h*2 - 1)
}
