package storycam

// Effect is a named request to override the camera zoom and/or focus
// position. A nil Zoom or Target means the effect leaves that field alone.
type Effect struct {
	ID     string
	Zoom   *float64
	Target *Vec3
	// Smooth eases the camera toward the effect. When false the compositor
	// snaps the scalars this effect wins.
	Smooth bool
	// TopPriority effects are kept at the end of the stack and override
	// every other effect.
	TopPriority bool
}

// ZoomEffect returns a smooth zoom-only effect.
func ZoomEffect(id string, zoom float64) Effect {
	return Effect{ID: id, Zoom: ptr(zoom), Smooth: true}
}

// FocusEffect returns a smooth effect that zooms and recenters on target.
func FocusEffect(id string, zoom float64, target Vec3) Effect {
	return Effect{ID: id, Zoom: ptr(zoom), Target: ptr(target), Smooth: true}
}

// TargetEffect returns a smooth recenter-only effect.
func TargetEffect(id string, target Vec3) Effect {
	return Effect{ID: id, Target: ptr(target), Smooth: true}
}

// clone returns e with its own copies of Zoom and Target, so the stack
// never shares storage with callers.
func (e Effect) clone() Effect {
	if e.Zoom != nil {
		e.Zoom = ptr(*e.Zoom)
	}
	if e.Target != nil {
		e.Target = ptr(*e.Target)
	}
	return e
}

// EffectPatch holds the fields merged into an existing effect by
// EffectStack.Update. Nil fields are left unchanged. TopPriority cannot be
// patched; re-Add the effect to move it in or out of the top group.
type EffectPatch struct {
	Zoom   *float64
	Target *Vec3
	Smooth *bool
}

// addOptions collects AddOption values.
type addOptions struct {
	atIndex     int
	hasIndex    bool
	topPriority bool
}

// AddOption configures EffectStack.Add.
type AddOption func(*addOptions)

// AtIndex inserts the effect at index i verbatim, ignoring priority groups.
// Out-of-range indices are clamped to the stack bounds.
func AtIndex(i int) AddOption {
	return func(o *addOptions) {
		o.atIndex = i
		o.hasIndex = true
	}
}

// TopPriority marks the effect top priority and appends it to the end.
func TopPriority() AddOption {
	return func(o *addOptions) {
		o.topPriority = true
	}
}

// EffectStack is an ordered collection of effects. The last entry wins,
// except that top-priority entries, which always form a trailing group,
// win over everything else.
//
// The stack is not safe for concurrent use; it is mutated from the frame
// loop only.
type EffectStack struct {
	effects []Effect
}

// NewEffectStack creates an empty stack.
func NewEffectStack() *EffectStack {
	return &EffectStack{}
}

// Add upserts e. Any entry with the same ID is removed first, then e is
// inserted according to opts: at an explicit index, at the end when top
// priority, or just before the first top-priority entry otherwise.
func (s *EffectStack) Add(e Effect, opts ...AddOption) {
	var o addOptions
	for _, fn := range opts {
		fn(&o)
	}
	e = e.clone()
	if o.topPriority {
		e.TopPriority = true
	}

	s.removeID(e.ID)

	switch {
	case o.hasIndex:
		s.insert(clampIndex(o.atIndex, len(s.effects)), e)
	case e.TopPriority:
		s.effects = append(s.effects, e)
	default:
		i := s.firstTopPriority()
		if i < 0 {
			s.effects = append(s.effects, e)
		} else {
			s.insert(i, e)
		}
	}
}

// Remove deletes the effect with the given ID. No-op if absent.
func (s *EffectStack) Remove(id string) {
	s.removeID(id)
}

// Update merges patch into the effect with the given ID. No-op if absent;
// Update never creates an entry.
func (s *EffectStack) Update(id string, patch EffectPatch) {
	i := s.indexOf(id)
	if i < 0 {
		return
	}
	e := &s.effects[i]
	if patch.Zoom != nil {
		e.Zoom = ptr(*patch.Zoom)
	}
	if patch.Target != nil {
		e.Target = ptr(*patch.Target)
	}
	if patch.Smooth != nil {
		e.Smooth = *patch.Smooth
	}
}

// Has reports whether an effect with the given ID is present.
func (s *EffectStack) Has(id string) bool {
	return s.indexOf(id) >= 0
}

// Get returns a copy of the effect with the given ID.
func (s *EffectStack) Get(id string) (Effect, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return Effect{}, false
	}
	return s.effects[i].clone(), true
}

// Len returns the number of effects in the stack.
func (s *EffectStack) Len() int {
	return len(s.effects)
}

// Effects returns a deep copy of the stack, lowest priority first.
func (s *EffectStack) Effects() []Effect {
	out := make([]Effect, len(s.effects))
	for i, e := range s.effects {
		out[i] = e.clone()
	}
	return out
}

// Reset removes every effect.
func (s *EffectStack) Reset() {
	clear(s.effects)
	s.effects = s.effects[:0]
}

// ResolveZoom returns the zoom of the last top-priority entry that sets a
// zoom, or failing that the last entry that sets one. ok is false when no
// entry sets a zoom.
//
// ResolveZoom and ResolveTarget select independently, so in one frame the
// zoom and the target may come from two different effects: a zoom-only
// top-priority effect leaves the target to the entries below it.
func (s *EffectStack) ResolveZoom() (zoom float64, smooth bool, ok bool) {
	e := s.winner(func(e *Effect) bool { return e.Zoom != nil })
	if e == nil {
		return 0, false, false
	}
	return *e.Zoom, e.Smooth, true
}

// ResolveTarget returns the target position, selected the same way as
// ResolveZoom.
func (s *EffectStack) ResolveTarget() (target Vec3, smooth bool, ok bool) {
	e := s.winner(func(e *Effect) bool { return e.Target != nil })
	if e == nil {
		return Vec3{}, false, false
	}
	return *e.Target, e.Smooth, true
}

// Acquire adds e and returns a handle whose Release removes it. Use it when
// the effect's lifetime is tied to an owning scope.
func (s *EffectStack) Acquire(e Effect, opts ...AddOption) *EffectHandle {
	s.Add(e, opts...)
	return &EffectHandle{stack: s, id: e.ID}
}

// winner returns the entry a selector reads from: the last top-priority
// entry for which has returns true, else the last such entry of any kind.
func (s *EffectStack) winner(has func(*Effect) bool) *Effect {
	last := -1
	for i := len(s.effects) - 1; i >= 0; i-- {
		e := &s.effects[i]
		if !has(e) {
			continue
		}
		if e.TopPriority {
			return e
		}
		if last < 0 {
			last = i
		}
	}
	if last < 0 {
		return nil
	}
	return &s.effects[last]
}

func (s *EffectStack) indexOf(id string) int {
	for i := range s.effects {
		if s.effects[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *EffectStack) firstTopPriority() int {
	for i := range s.effects {
		if s.effects[i].TopPriority {
			return i
		}
	}
	return -1
}

func (s *EffectStack) removeID(id string) {
	i := s.indexOf(id)
	if i < 0 {
		return
	}
	copy(s.effects[i:], s.effects[i+1:])
	s.effects[len(s.effects)-1] = Effect{}
	s.effects = s.effects[:len(s.effects)-1]
}

func (s *EffectStack) insert(i int, e Effect) {
	s.effects = append(s.effects, Effect{})
	copy(s.effects[i+1:], s.effects[i:])
	s.effects[i] = e
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

// EffectHandle releases an effect acquired with EffectStack.Acquire.
type EffectHandle struct {
	stack    *EffectStack
	id       string
	released bool
}

// ID returns the effect ID this handle owns.
func (h *EffectHandle) ID() string {
	return h.id
}

// Update merges patch into the owned effect. No-op after Release.
func (h *EffectHandle) Update(patch EffectPatch) {
	if h == nil || h.released {
		return
	}
	h.stack.Update(h.id, patch)
}

// Release removes the owned effect. Only the first call has any effect.
func (h *EffectHandle) Release() {
	if h == nil || h.released {
		return
	}
	h.released = true
	h.stack.Remove(h.id)
}
