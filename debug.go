package storycam

// debugMaxEffects is the effect stack size above which a debug Director
// warns. A healthy scene holds the autoscroll effect plus the few volumes
// the position is inside; a growing stack usually means a volume was
// dropped without Release.
const debugMaxEffects = 32

// debugState tracks which warnings have fired so each is logged once per
// crossing rather than every frame.
type debugState struct {
	stackWarned bool
	lastOwner   string
}

// debugCheck logs frame diagnostics. Only active when Config.Debug is set.
func (d *Director) debugCheck() {
	if !d.cfg.Debug {
		return
	}
	n := d.stack.Len()
	switch {
	case n > debugMaxEffects && !d.debug.stackWarned:
		d.debug.stackWarned = true
		d.log.Warn("storycam: effect stack exceeds threshold",
			"effects", n, "threshold", debugMaxEffects, "volumes", len(d.volumes))
	case n <= debugMaxEffects:
		d.debug.stackWarned = false
	}

	if owner := d.arbiter.Owner(); owner != d.debug.lastOwner {
		d.log.Debug("storycam: arbiter owner", "from", d.debug.lastOwner, "to", owner, "frame", d.frame)
		d.debug.lastOwner = owner
	}
	d.log.Debug("storycam: frame",
		"frame", d.frame,
		"effects", n,
		"depth", d.compositor.ResolvedDepth(),
		"zoom", d.state.Zoom,
		"mode", d.scroll.Mode())
}
