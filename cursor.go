package storycam

// CursorTracker turns raw pointer picks on the floor into the smoothed
// world position trigger volumes sample. It implements
// WorldPositionProvider.
//
// A new raw point is accepted only when it is farther than the threshold
// from the smoothed point, which keeps small pointer jitter from
// retargeting the springs.
type CursorTracker struct {
	threshold float64
	raw       Vec3
	springs   [3]*Spring
	smoothed  Vec3
}

// NewCursorTracker creates a tracker resting at the origin.
func NewCursorTracker(cfg CursorConfig) *CursorTracker {
	t := &CursorTracker{threshold: cfg.Threshold}
	for i := range t.springs {
		t.springs[i] = NewSpring(cfg.Spring)
		t.springs[i].Snap(0)
	}
	return t
}

// WorldPosition implements WorldPositionProvider.
func (t *CursorTracker) WorldPosition() Vec3 {
	return t.smoothed
}

// Raw returns the last accepted raw point.
func (t *CursorTracker) Raw() Vec3 {
	return t.raw
}

// Point offers a raw world point. It is ignored when within the threshold
// of the smoothed position.
func (t *CursorTracker) Point(p Vec3) {
	if p.Sub(t.smoothed).Len() > t.threshold {
		t.raw = p
	}
}

// Aim casts a ray onto the floor plane and offers the hit point. Rays that
// miss the floor are ignored.
func (t *CursorTracker) Aim(origin, dir Vec3) {
	if hit, ok := FloorHit(origin, dir); ok {
		t.Point(hit)
	}
}

// AimScreen picks through cam at normalized device coordinates.
func (t *CursorTracker) AimScreen(cam *Camera, ndcX, ndcY float64) {
	t.Aim(cam.ScreenRay(ndcX, ndcY))
}

// Teleport jumps both the raw and smoothed positions to p. This is the
// explicit reset signal; without it the tracked position is continuous.
func (t *CursorTracker) Teleport(p Vec3) {
	t.raw = p
	for i, s := range t.springs {
		s.Snap(p[i])
	}
	t.smoothed = p
}

// Update advances the springs by dt seconds.
func (t *CursorTracker) Update(dt float64) {
	for i, s := range t.springs {
		t.smoothed[i] = s.Step(t.raw[i], dt)
	}
}
