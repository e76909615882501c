package storycam

// VolumeConfig describes a trigger volume.
type VolumeConfig struct {
	// ID names the volume. It is also the ID of the focus effect the volume
	// publishes and the owner ID it claims the arbiter with.
	ID string
	// Center and Size describe the box. A zero or negative size on any
	// axis makes the volume permanently non-containing.
	Center Vec3
	Size   Vec3

	// Zoom and Target, when set, are published as a smooth effect with the
	// volume's ID while the position is inside.
	Zoom   *float64
	Target *Vec3

	// Policy selects how OnTrigger fires.
	Policy FiringPolicy
	// Duration is the dwell time in seconds for PolicyDwell.
	Duration float64
	// Label is the overlay prompt. A labeled volume claims the arbiter on
	// enter even under PolicyDwell, without an interact callback.
	Label string

	OnEnter   func()
	OnExit    func()
	OnInside  func()
	OnTrigger func()
}

// interactive reports whether the volume claims the arbiter on enter.
func (c *VolumeConfig) interactive() bool {
	return c.Policy == PolicyClick || c.Label != ""
}

// TriggerVolume is an axis-aligned box that raises edge-triggered
// enter/exit events against a sampled world position. On enter it
// publishes its focus effect and claims the arbiter when interactive; on
// exit, or on Release while inside, it undoes both.
type TriggerVolume struct {
	cfg     VolumeConfig
	box     Box
	stack   *EffectStack
	arbiter *TriggerArbiter

	inside   bool
	dwell    float64
	fired    bool
	released bool
	last     Vec3

	emit      func(TriggerEvent)
	onRelease func(*TriggerVolume)
}

// NewTriggerVolume creates a volume bound to the given stack and arbiter.
// Most callers use Director.AddVolume instead.
func NewTriggerVolume(cfg VolumeConfig, stack *EffectStack, arbiter *TriggerArbiter) *TriggerVolume {
	return &TriggerVolume{
		cfg:     cfg,
		box:     Box{Center: cfg.Center, Size: cfg.Size},
		stack:   stack,
		arbiter: arbiter,
	}
}

// ID returns the volume ID.
func (v *TriggerVolume) ID() string {
	return v.cfg.ID
}

// Box returns the volume bounds.
func (v *TriggerVolume) Box() Box {
	return v.box
}

// Policy returns the firing policy.
func (v *TriggerVolume) Policy() FiringPolicy {
	return v.cfg.Policy
}

// Inside reports whether the last sample was inside the volume.
func (v *TriggerVolume) Inside() bool {
	return v.inside
}

// Released reports whether Release has been called.
func (v *TriggerVolume) Released() bool {
	return v.released
}

// Progress returns the dwell progress in [0, 1]. It is 1 once the dwell
// trigger has fired and 0 for other policies or while outside.
func (v *TriggerVolume) Progress() float64 {
	if v.cfg.Policy != PolicyDwell || !v.inside {
		return 0
	}
	if v.fired || v.cfg.Duration <= 0 {
		return 1
	}
	return min(v.dwell/v.cfg.Duration, 1)
}

// Sample tests containment of pos and runs the edge callbacks. dt is the
// frame time in seconds, used for dwell accumulation. No-op once released.
func (v *TriggerVolume) Sample(pos Vec3, dt float64) {
	if v.released {
		return
	}
	v.last = pos
	in := v.box.Contains(pos)

	switch {
	case in && !v.inside:
		v.enter()
	case !in && v.inside:
		v.exit()
	}

	// OnEnter may release the volume.
	if !in || v.released {
		return
	}

	if v.cfg.Policy == PolicyDwell && v.cfg.OnTrigger != nil && !v.fired {
		v.dwell += dt
		if v.dwell >= v.cfg.Duration {
			v.fired = true
			v.fire()
		}
	}

	// The dwell callback may release the volume.
	if !v.released && v.cfg.OnInside != nil {
		v.cfg.OnInside()
	}
}

// Release destroys the volume. If the position is inside, the exit path
// runs synchronously: the focus effect is removed, arbiter ownership is
// released, and OnExit is invoked. Only the first call has any effect.
func (v *TriggerVolume) Release() {
	if v.released {
		return
	}
	if v.inside {
		v.exit()
	}
	v.released = true
	if v.onRelease != nil {
		v.onRelease(v)
	}
}

func (v *TriggerVolume) enter() {
	v.inside = true
	v.dwell = 0
	v.fired = false

	if v.cfg.Zoom != nil || v.cfg.Target != nil {
		v.stack.Add(Effect{ID: v.cfg.ID, Zoom: v.cfg.Zoom, Target: v.cfg.Target, Smooth: true})
	}
	if v.cfg.interactive() {
		var cb func()
		if v.cfg.Policy == PolicyClick {
			cb = v.interact
		}
		v.arbiter.Claim(v.cfg.ID, v.cfg.Label, cb)
	}

	v.notify(TriggerEnter)
	if v.cfg.OnEnter != nil {
		v.cfg.OnEnter()
	}
}

func (v *TriggerVolume) exit() {
	v.inside = false
	v.dwell = 0
	v.fired = false

	v.stack.Remove(v.cfg.ID)
	v.arbiter.Release(v.cfg.ID)

	v.notify(TriggerExit)
	if v.cfg.OnExit != nil {
		v.cfg.OnExit()
	}
}

// interact is the arbiter callback for PolicyClick. It fires only while
// this volume is still inside and still owns the arbiter.
func (v *TriggerVolume) interact() {
	if v.released || !v.inside || v.arbiter.Owner() != v.cfg.ID {
		return
	}
	v.fire()
}

func (v *TriggerVolume) fire() {
	v.notify(TriggerFire)
	if v.cfg.OnTrigger != nil {
		v.cfg.OnTrigger()
	}
}

func (v *TriggerVolume) notify(t TriggerEventType) {
	if v.emit == nil {
		return
	}
	v.emit(TriggerEvent{Type: t, VolumeID: v.cfg.ID, Policy: v.cfg.Policy, Position: v.last})
}
