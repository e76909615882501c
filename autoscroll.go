package storycam

import "math"

// AutoscrollEffectID is the ID of the effect the coordinator publishes.
const AutoscrollEffectID = "autoscroll"

// depthEpsilon absorbs float accumulation error when snapping to the end of
// the content.
const depthEpsilon = 1e-9

// Content describes the narrative the camera travels through.
type Content interface {
	// ContentMax is the greatest reachable depth.
	ContentMax() float64
	// LateralOffsetAt returns the branch X offset for the given depth row.
	LateralOffsetAt(row int) float64
}

// AutoscrollState is a snapshot of the coordinator.
type AutoscrollState struct {
	Mode            Mode    `yaml:"-"`
	Depth           float64 `yaml:"depth"`
	RememberedDepth float64 `yaml:"rememberedDepth"`
	LateralOffset   float64 `yaml:"lateralOffset"`
}

// AutoscrollCoordinator owns the Autoscroll/Controlled state machine.
//
// In Autoscroll it advances depth by a fixed step every tick and publishes
// the lowest-priority "autoscroll" effect. A forward (scroll-down) wheel
// delta hands control to the player (Controlled); backward deltas are
// ignored while autoscrolling. Each frame the compositor reports the
// resolved depth back through Observe, which switches to Autoscroll once
// the resolved depth is at or below the remembered depth and ratchets the
// remembered depth up. The player can therefore jump ahead, and autoscroll
// picks up from there once the camera settles.
type AutoscrollCoordinator struct {
	cfg     AutoscrollConfig
	stack   *EffectStack
	content Content
	state   AutoscrollState

	onMode func(from, to Mode)
}

// NewAutoscrollCoordinator creates a coordinator in Autoscroll mode at
// depth zero. content may be nil, in which case depth is pinned to zero
// until SetContent is called.
func NewAutoscrollCoordinator(cfg AutoscrollConfig, stack *EffectStack, content Content) *AutoscrollCoordinator {
	return &AutoscrollCoordinator{cfg: cfg, stack: stack, content: content}
}

// SetContent replaces the narrative content, e.g. when history grows.
func (a *AutoscrollCoordinator) SetContent(c Content) {
	a.content = c
	a.state.Depth = a.clamp(a.state.Depth)
	a.state.LateralOffset = a.lateral()
}

// OnModeChange registers fn to be called on every mode switch.
func (a *AutoscrollCoordinator) OnModeChange(fn func(from, to Mode)) {
	a.onMode = fn
}

// State returns a snapshot.
func (a *AutoscrollCoordinator) State() AutoscrollState {
	return a.state
}

// Mode returns the current mode.
func (a *AutoscrollCoordinator) Mode() Mode {
	return a.state.Mode
}

// Depth returns the coordinator depth.
func (a *AutoscrollCoordinator) Depth() float64 {
	return a.state.Depth
}

// Baseline returns the focus point used when no effect supplies a target.
func (a *AutoscrollCoordinator) Baseline() Vec3 {
	return Vec3{a.state.LateralOffset, 0, a.state.Depth}
}

// SeedDepth places the coordinator at z, typically the camera's depth on
// first mount.
func (a *AutoscrollCoordinator) SeedDepth(z float64) {
	a.state.Depth = a.clamp(z)
	a.state.LateralOffset = a.lateral()
}

// Tick runs one frame of the state machine with the frame's wheel delta
// (positive is forward, the autoscroll direction).
func (a *AutoscrollCoordinator) Tick(wheel float64) {
	if wheel != 0 {
		a.Scroll(wheel)
	}
	if a.state.Mode == ModeAutoscroll {
		a.advance()
	}
}

// Scroll applies one wheel delta. While autoscrolling, backward deltas are
// ignored and a forward delta switches to Controlled. While Controlled,
// every delta moves depth by delta*Sensitivity.
func (a *AutoscrollCoordinator) Scroll(delta float64) {
	if a.state.Mode == ModeAutoscroll {
		if delta <= 0 {
			return
		}
		a.setMode(ModeControlled)
	}
	a.state.Depth = a.clamp(a.state.Depth + delta*a.cfg.Sensitivity)
	a.state.LateralOffset = a.lateral()
}

// Observe feeds back the camera's resolved depth. It runs the mode-exit
// check first and then the hysteresis ratchet, once per frame.
func (a *AutoscrollCoordinator) Observe(resolved float64) {
	if a.state.Mode == ModeControlled && resolved <= a.state.RememberedDepth {
		a.setMode(ModeAutoscroll)
	}
	if resolved > a.state.RememberedDepth {
		a.state.RememberedDepth = a.clamp(resolved)
	}
}

// Resume hands control back to autoscroll immediately.
func (a *AutoscrollCoordinator) Resume() {
	if a.state.Mode == ModeControlled {
		a.setMode(ModeAutoscroll)
	}
}

// Reset returns to Autoscroll at depth zero and drops the effect.
func (a *AutoscrollCoordinator) Reset() {
	prev := a.state.Mode
	a.state = AutoscrollState{}
	a.state.LateralOffset = a.lateral()
	a.stack.Remove(AutoscrollEffectID)
	if prev != ModeAutoscroll && a.onMode != nil {
		a.onMode(prev, ModeAutoscroll)
	}
}

// advance moves depth one step and refreshes the autoscroll effect at the
// bottom of the stack.
func (a *AutoscrollCoordinator) advance() {
	a.state.Depth = a.clamp(a.state.Depth + a.cfg.Step)
	a.state.LateralOffset = a.lateral()
	a.stack.Add(TargetEffect(AutoscrollEffectID, a.Baseline()), AtIndex(0))
}

func (a *AutoscrollCoordinator) setMode(m Mode) {
	prev := a.state.Mode
	if prev == m {
		return
	}
	a.state.Mode = m
	if m == ModeControlled {
		a.stack.Remove(AutoscrollEffectID)
	}
	if a.onMode != nil {
		a.onMode(prev, m)
	}
}

func (a *AutoscrollCoordinator) contentMax() float64 {
	if a.content == nil {
		return 0
	}
	return a.content.ContentMax()
}

func (a *AutoscrollCoordinator) clamp(d float64) float64 {
	hi := a.contentMax()
	if d >= hi-depthEpsilon {
		return hi
	}
	return max(d, 0)
}

func (a *AutoscrollCoordinator) lateral() float64 {
	if a.content == nil {
		return 0
	}
	return a.content.LateralOffsetAt(int(math.Floor(a.state.Depth)))
}
