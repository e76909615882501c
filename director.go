package storycam

import (
	"io"
	"log/slog"
)

// Options wires a Director to its collaborators. Only Config is required;
// nil collaborators are skipped.
type Options struct {
	Config Config
	// Content is the narrative the camera travels through.
	Content Content
	// Position is sampled once per frame by every trigger volume. Defaults
	// to a CursorTracker built from Config.Cursor.
	Position WorldPositionProvider
	Input    InputSource
	Renderer Renderer
	Overlay  Overlay
	Events   EventSink
	// Logger receives structured logs. Defaults to a discarding logger.
	Logger *slog.Logger
}

// pointerAimer is implemented by position providers that pick from the
// pointer, such as CursorTracker.
type pointerAimer interface {
	AimScreen(cam *Camera, ndcX, ndcY float64)
}

// positionUpdater is implemented by position providers that need to
// advance every frame before volumes sample them.
type positionUpdater interface {
	Update(dt float64)
}

// Director owns the effect stack, the trigger arbiter, the autoscroll
// coordinator, and the compositor, and runs them in a fixed order each
// frame:
//
//  1. input is sampled and the position provider advances
//  2. every trigger volume samples the position and mutates the stack
//  3. an interact action fires the arbiter
//  4. hold-to-zoom updates its top-priority effect
//  5. the coordinator ticks (autoscroll or wheel input)
//  6. the compositor resolves the stack once, smooths, applies, and
//     feeds the resolved depth back to the coordinator
//  7. the renderer and overlay receive the frame's state
type Director struct {
	cfg    Config
	log    *slog.Logger
	debug  debugState
	frame  uint64
	state  CameraState
	events EventSink

	stack      *EffectStack
	arbiter    *TriggerArbiter
	scroll     *AutoscrollCoordinator
	compositor *CameraCompositor
	holdZoom   *HoldZoom

	volumes []*TriggerVolume
	volBuf  []*TriggerVolume

	position WorldPositionProvider
	input    InputSource
	renderer Renderer
	overlay  Overlay

	injectQueue   []FrameInput
	runner        *ScriptRunner
	snapshotQueue []string
	snapshots     []Snapshot
}

// NewDirector creates a Director and its singletons.
func NewDirector(opts Options) *Director {
	cfg := opts.Config
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	pos := opts.Position
	if pos == nil {
		pos = NewCursorTracker(cfg.Cursor)
	}

	stack := NewEffectStack()
	scroll := NewAutoscrollCoordinator(cfg.Autoscroll, stack, opts.Content)
	d := &Director{
		cfg:        cfg,
		log:        log,
		events:     opts.Events,
		stack:      stack,
		arbiter:    NewTriggerArbiter(),
		scroll:     scroll,
		compositor: NewCameraCompositor(cfg.Camera, cfg.Spring, stack, scroll),
		holdZoom:   NewHoldZoom(cfg.HoldZoom, cfg.Camera.Zoom, stack),
		position:   pos,
		input:      opts.Input,
		renderer:   opts.Renderer,
		overlay:    opts.Overlay,
	}
	scroll.OnModeChange(d.modeChanged)
	return d
}

// Stack returns the effect stack.
func (d *Director) Stack() *EffectStack { return d.stack }

// Arbiter returns the trigger arbiter.
func (d *Director) Arbiter() *TriggerArbiter { return d.arbiter }

// Autoscroll returns the autoscroll coordinator.
func (d *Director) Autoscroll() *AutoscrollCoordinator { return d.scroll }

// Compositor returns the camera compositor.
func (d *Director) Compositor() *CameraCompositor { return d.compositor }

// Camera returns the driven camera.
func (d *Director) Camera() *Camera { return d.compositor.Camera() }

// HoldZoom returns the hold-to-zoom controller.
func (d *Director) HoldZoom() *HoldZoom { return d.holdZoom }

// Position returns the world position provider.
func (d *Director) Position() WorldPositionProvider { return d.position }

// Frame returns the number of completed Update calls since creation.
func (d *Director) Frame() uint64 { return d.frame }

// State returns the camera state presented by the last Update.
func (d *Director) State() CameraState { return d.state }

// SetContent replaces the narrative content, e.g. after history grows.
func (d *Director) SetContent(c Content) {
	d.scroll.SetContent(c)
}

// AddVolume registers a trigger volume. The returned volume is its own
// release handle: Release undoes anything it holds and unregisters it.
func (d *Director) AddVolume(cfg VolumeConfig) *TriggerVolume {
	v := NewTriggerVolume(cfg, d.stack, d.arbiter)
	v.emit = d.emitTrigger
	v.onRelease = d.unlink
	d.volumes = append(d.volumes, v)
	return v
}

// Volumes returns the registered volumes in registration order.
func (d *Director) Volumes() []*TriggerVolume {
	out := make([]*TriggerVolume, len(d.volumes))
	copy(out, d.volumes)
	return out
}

// Interact fires the arbiter's active trigger. It is the entry point for
// the overlay's click/tap action. Returns true if a callback ran.
func (d *Director) Interact() bool {
	owner := d.arbiter.Owner()
	ran := d.arbiter.Fire()
	if owner != "" {
		d.log.Debug("storycam: interact", "owner", owner, "fired", ran)
	}
	return ran
}

// Update runs one frame of dt seconds and returns the presented state.
func (d *Director) Update(dt float64) CameraState {
	if d.runner != nil {
		d.runner.step(d)
	}

	in := d.nextInput()
	if a, ok := d.position.(pointerAimer); ok && in.HasPointer {
		a.AimScreen(d.Camera(), in.PointerX, in.PointerY)
	}
	if u, ok := d.position.(positionUpdater); ok {
		u.Update(dt)
	}

	// Volumes may release themselves or register new volumes from their
	// callbacks, so iterate a snapshot.
	pos := d.position.WorldPosition()
	d.volBuf = append(d.volBuf[:0], d.volumes...)
	for _, v := range d.volBuf {
		v.Sample(pos, dt)
	}
	clear(d.volBuf)

	if in.Interact {
		d.Interact()
	}
	d.holdZoom.Update(in.ZoomHeld, dt)
	d.scroll.Tick(in.Wheel)
	d.state = d.compositor.Update(dt)

	if d.renderer != nil {
		d.renderer.Present(d.state)
	}
	if d.overlay != nil {
		d.overlay.Show(d.arbiter.State())
	}
	d.flushSnapshots()
	d.debugCheck()
	d.frame++
	return d.state
}

// Reset starts a new narrative session. Every volume is released (running
// its exit path if inside), and the stack, arbiter, coordinator,
// hold-to-zoom, and springs return to their initial state.
func (d *Director) Reset() {
	for len(d.volumes) > 0 {
		d.volumes[len(d.volumes)-1].Release()
	}
	d.holdZoom.Reset()
	d.scroll.Reset()
	d.stack.Reset()
	d.arbiter.Reset()
	d.compositor.Reset()
	d.injectQueue = d.injectQueue[:0]
	d.debug = debugState{}
	d.log.Info("storycam: session reset", "frame", d.frame)
}

func (d *Director) unlink(v *TriggerVolume) {
	for i, w := range d.volumes {
		if w == v {
			copy(d.volumes[i:], d.volumes[i+1:])
			d.volumes[len(d.volumes)-1] = nil
			d.volumes = d.volumes[:len(d.volumes)-1]
			return
		}
	}
}

func (d *Director) emitTrigger(ev TriggerEvent) {
	d.log.Debug("storycam: trigger", "event", ev.Type, "volume", ev.VolumeID, "policy", ev.Policy)
	if d.events != nil {
		d.events.EmitTriggerEvent(ev)
	}
}

func (d *Director) modeChanged(from, to Mode) {
	st := d.scroll.State()
	d.log.Debug("storycam: mode change",
		"from", from, "to", to,
		"depth", st.Depth, "remembered", st.RememberedDepth)
}
