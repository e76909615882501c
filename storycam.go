package storycam

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is a 3D vector used for positions, sizes, and directions throughout
// the API. X is lateral, Y is height, Z is narrative depth.
type Vec3 = mgl64.Vec3

// Box is an axis-aligned box described by its center and full size.
type Box struct {
	Center Vec3
	Size   Vec3
}

// Degenerate reports whether any axis has a zero or negative size. A
// degenerate box contains nothing.
func (b Box) Degenerate() bool {
	return b.Size[0] <= 0 || b.Size[1] <= 0 || b.Size[2] <= 0
}

// Min returns the minimum corner.
func (b Box) Min() Vec3 {
	return b.Center.Sub(b.Size.Mul(0.5))
}

// Max returns the maximum corner.
func (b Box) Max() Vec3 {
	return b.Center.Add(b.Size.Mul(0.5))
}

// Contains reports whether p lies inside the box. Points on a face are
// considered inside.
func (b Box) Contains(p Vec3) bool {
	if b.Degenerate() {
		return false
	}
	lo, hi := b.Min(), b.Max()
	for i := 0; i < 3; i++ {
		if p[i] < lo[i] || p[i] > hi[i] {
			return false
		}
	}
	return true
}

// Mode is the autoscroll state machine mode.
type Mode uint8

const (
	ModeAutoscroll Mode = iota // depth advances on its own
	ModeControlled             // depth follows wheel input
)

func (m Mode) String() string {
	switch m {
	case ModeAutoscroll:
		return "autoscroll"
	case ModeControlled:
		return "controlled"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// FiringPolicy selects how a TriggerVolume fires its OnTrigger callback.
type FiringPolicy uint8

const (
	PolicyNone  FiringPolicy = iota // never fires; enter/exit only
	PolicyDwell                     // fires once after staying inside for a duration
	PolicyClick                     // fires on an external interact while arbiter owner
)

func (p FiringPolicy) String() string {
	switch p {
	case PolicyNone:
		return "none"
	case PolicyDwell:
		return "dwell"
	case PolicyClick:
		return "click"
	default:
		return fmt.Sprintf("FiringPolicy(%d)", uint8(p))
	}
}

// TriggerEventType identifies a trigger volume event.
type TriggerEventType uint8

const (
	TriggerEnter TriggerEventType = iota // position entered the volume
	TriggerExit                          // position left the volume, or the volume was released while inside
	TriggerFire                          // OnTrigger was invoked
)

func (t TriggerEventType) String() string {
	switch t {
	case TriggerEnter:
		return "enter"
	case TriggerExit:
		return "exit"
	case TriggerFire:
		return "fire"
	default:
		return fmt.Sprintf("TriggerEventType(%d)", uint8(t))
	}
}

// TriggerEvent carries trigger edges for an EventSink.
type TriggerEvent struct {
	Type     TriggerEventType
	VolumeID string
	Policy   FiringPolicy
	Position Vec3
}

// EventSink receives trigger events. See the ecs sub-module for a donburi
// backed implementation.
type EventSink interface {
	EmitTriggerEvent(event TriggerEvent)
}

// WorldPositionProvider supplies the tracked, already-smoothed world
// position sampled once per frame by every trigger volume.
type WorldPositionProvider interface {
	WorldPosition() Vec3
}

// Renderer receives the final camera state once per frame.
type Renderer interface {
	Present(state CameraState)
}

// Overlay receives the arbiter state once per frame for on-screen prompts.
type Overlay interface {
	Show(state ArbiterState)
}

// StaticPosition is a WorldPositionProvider that always returns the same
// point. Useful for tests and for scripted playback.
type StaticPosition struct {
	P Vec3
}

// WorldPosition implements WorldPositionProvider.
func (s *StaticPosition) WorldPosition() Vec3 {
	return s.P
}

// ptr returns a pointer to a copy of v.
func ptr[T any](v T) *T {
	return &v
}
