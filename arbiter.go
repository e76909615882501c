package storycam

// ArbiterState is the overlay-facing view of the TriggerArbiter.
type ArbiterState struct {
	Active bool   `yaml:"active"`
	Label  string `yaml:"label,omitempty"`
	Owner  string `yaml:"owner,omitempty"`
}

// TriggerArbiter holds the single interactable trigger exposed to the
// player. Claims overwrite unconditionally (last entrant wins); only the
// current owner can release.
type TriggerArbiter struct {
	active   bool
	label    string
	owner    string
	callback func()
}

// NewTriggerArbiter creates an inactive arbiter.
func NewTriggerArbiter() *TriggerArbiter {
	return &TriggerArbiter{}
}

// Claim makes owner the active trigger with the given prompt label and
// interact callback. Any previous owner is replaced.
func (a *TriggerArbiter) Claim(owner, label string, callback func()) {
	a.active = true
	a.owner = owner
	a.label = label
	a.callback = callback
}

// Release clears the arbiter if owner is the current owner. A release from
// any other owner is ignored, so a stale exit cannot clobber a newer claim.
func (a *TriggerArbiter) Release(owner string) {
	if !a.active || a.owner != owner {
		return
	}
	a.Reset()
}

// Fire invokes the active callback, if any, then clears the arbiter.
// Returns true if a callback ran.
func (a *TriggerArbiter) Fire() bool {
	if !a.active {
		return false
	}
	fn := a.callback
	ran := false
	if fn != nil {
		fn()
		ran = true
	}
	a.Reset()
	return ran
}

// Owner returns the current owner ID, or "" when inactive.
func (a *TriggerArbiter) Owner() string {
	return a.owner
}

// Active reports whether a trigger currently owns the arbiter.
func (a *TriggerArbiter) Active() bool {
	return a.active
}

// State returns a snapshot for overlays.
func (a *TriggerArbiter) State() ArbiterState {
	return ArbiterState{Active: a.active, Label: a.label, Owner: a.owner}
}

// Reset clears the arbiter unconditionally.
func (a *TriggerArbiter) Reset() {
	a.active = false
	a.label = ""
	a.owner = ""
	a.callback = nil
}
