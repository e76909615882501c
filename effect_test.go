package storycam

import "testing"

func ids(s *EffectStack) []string {
	var out []string
	for _, e := range s.Effects() {
		out = append(out, e.ID)
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestEffectStackAddAppends(t *testing.T) {
	s := NewEffectStack()
	s.Add(ZoomEffect("a", 1))
	s.Add(ZoomEffect("b", 2))
	s.Add(ZoomEffect("c", 3))
	if got, want := ids(s), []string{"a", "b", "c"}; !equalIDs(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestEffectStackUpsertMovesToEnd(t *testing.T) {
	s := NewEffectStack()
	s.Add(ZoomEffect("a", 1))
	s.Add(ZoomEffect("b", 2))
	s.Add(ZoomEffect("a", 5))

	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}
	if got, want := ids(s), []string{"b", "a"}; !equalIDs(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
	zoom, _, ok := s.ResolveZoom()
	if !ok || zoom != 5 {
		t.Errorf("ResolveZoom = %v, %v, want 5, true", zoom, ok)
	}
}

func TestEffectStackTopPriorityWins(t *testing.T) {
	s := NewEffectStack()
	s.Add(ZoomEffect("top", 0.3), TopPriority())
	s.Add(ZoomEffect("a", 1))
	s.Add(ZoomEffect("b", 2))

	if got, want := ids(s), []string{"a", "b", "top"}; !equalIDs(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
	zoom, _, _ := s.ResolveZoom()
	if zoom != 0.3 {
		t.Errorf("ResolveZoom = %v, want 0.3", zoom)
	}

	s.Remove("top")
	zoom, _, _ = s.ResolveZoom()
	if zoom != 2 {
		t.Errorf("ResolveZoom after remove = %v, want 2", zoom)
	}
}

func TestEffectStackLastTopPriorityWins(t *testing.T) {
	s := NewEffectStack()
	s.Add(ZoomEffect("t1", 0.1), TopPriority())
	s.Add(ZoomEffect("t2", 0.2), TopPriority())
	s.Add(ZoomEffect("a", 1))
	zoom, _, _ := s.ResolveZoom()
	if zoom != 0.2 {
		t.Errorf("ResolveZoom = %v, want 0.2", zoom)
	}
	if got, want := ids(s), []string{"a", "t1", "t2"}; !equalIDs(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestEffectStackAtIndexZeroStaysLowest(t *testing.T) {
	s := NewEffectStack()
	s.Add(ZoomEffect("a", 1))
	s.Add(ZoomEffect("b", 2))
	s.Add(TargetEffect(AutoscrollEffectID, Vec3{0, 0, 1}), AtIndex(0))
	s.Add(TargetEffect(AutoscrollEffectID, Vec3{0, 0, 2}), AtIndex(0))

	got := ids(s)
	if got[0] != AutoscrollEffectID {
		t.Errorf("order = %v, want %s first", got, AutoscrollEffectID)
	}
	if s.Len() != 3 {
		t.Errorf("Len = %d, want 3", s.Len())
	}
	e, _ := s.Get(AutoscrollEffectID)
	if e.Target.Z() != 2 {
		t.Errorf("autoscroll target z = %v, want 2", e.Target.Z())
	}

	s.Add(ZoomEffect("c", 3))
	if got, want := ids(s), []string{AutoscrollEffectID, "a", "b", "c"}; !equalIDs(got, want) {
		t.Errorf("order after later default add = %v, want %v", got, want)
	}
}

func TestEffectStackAtIndexClamped(t *testing.T) {
	s := NewEffectStack()
	s.Add(ZoomEffect("a", 1))
	s.Add(ZoomEffect("low", 2), AtIndex(-3))
	s.Add(ZoomEffect("high", 3), AtIndex(99))
	if got, want := ids(s), []string{"low", "a", "high"}; !equalIDs(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestEffectStackUpdate(t *testing.T) {
	s := NewEffectStack()
	s.Add(FocusEffect("a", 1, Vec3{1, 0, 1}))
	s.Add(ZoomEffect("b", 2))

	s.Update("a", EffectPatch{Zoom: ptr(0.5)})
	e, _ := s.Get("a")
	if *e.Zoom != 0.5 {
		t.Errorf("zoom = %v, want 0.5", *e.Zoom)
	}
	if *e.Target != (Vec3{1, 0, 1}) {
		t.Errorf("target changed to %v", *e.Target)
	}
	if got, want := ids(s), []string{"a", "b"}; !equalIDs(got, want) {
		t.Errorf("Update reordered stack: %v", got)
	}

	s.Update("missing", EffectPatch{Zoom: ptr(3.0)})
	if s.Has("missing") || s.Len() != 2 {
		t.Error("Update created an entry")
	}
}

func TestEffectStackUpdateDoesNotAlias(t *testing.T) {
	s := NewEffectStack()
	z := 1.0
	s.Add(Effect{ID: "a", Zoom: &z})
	patch := 2.0
	s.Update("a", EffectPatch{Zoom: &patch})
	patch = 9
	zoom, _, _ := s.ResolveZoom()
	if zoom != 2 {
		t.Errorf("ResolveZoom = %v, want 2", zoom)
	}
}

func TestEffectStackDoesNotShareStorage(t *testing.T) {
	s := NewEffectStack()
	z := 0.6
	target := Vec3{1, 0, 2}
	s.Add(Effect{ID: "a", Zoom: &z, Target: &target})

	z = 5
	target[2] = 9
	if zoom, _, _ := s.ResolveZoom(); zoom != 0.6 {
		t.Errorf("ResolveZoom after caller write = %v, want 0.6", zoom)
	}
	if got, _, _ := s.ResolveTarget(); got != (Vec3{1, 0, 2}) {
		t.Errorf("ResolveTarget after caller write = %v, want (1,0,2)", got)
	}

	e, _ := s.Get("a")
	*e.Zoom = 5
	*e.Target = Vec3{}
	for _, e := range s.Effects() {
		*e.Zoom = 7
	}
	if zoom, _, _ := s.ResolveZoom(); zoom != 0.6 {
		t.Errorf("ResolveZoom after writing through a read copy = %v, want 0.6", zoom)
	}
	if got, _, _ := s.ResolveTarget(); got != (Vec3{1, 0, 2}) {
		t.Errorf("ResolveTarget after writing through Get = %v, want (1,0,2)", got)
	}
}

func TestEffectStackRemoveMissing(t *testing.T) {
	s := NewEffectStack()
	s.Add(ZoomEffect("a", 1))
	s.Remove("nope")
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestEffectStackEmptyResolve(t *testing.T) {
	s := NewEffectStack()
	if _, _, ok := s.ResolveZoom(); ok {
		t.Error("ResolveZoom on empty stack reported ok")
	}
	if _, _, ok := s.ResolveTarget(); ok {
		t.Error("ResolveTarget on empty stack reported ok")
	}
}

func TestEffectStackSelectorsIndependent(t *testing.T) {
	s := NewEffectStack()
	s.Add(TargetEffect(AutoscrollEffectID, Vec3{0, 0, 5}))
	s.Add(FocusEffect("trigger-A", 0.6, Vec3{2, 0, 10}))

	zoom, _, _ := s.ResolveZoom()
	target, _, _ := s.ResolveTarget()
	if zoom != 0.6 || target != (Vec3{2, 0, 10}) {
		t.Errorf("resolved zoom %v target %v, want 0.6 (2,0,10)", zoom, target)
	}

	s.Add(Effect{ID: "spacebar-zoom", Zoom: ptr(0.3)}, TopPriority())
	zoom, _, _ = s.ResolveZoom()
	target, _, ok := s.ResolveTarget()
	if zoom != 0.3 {
		t.Errorf("ResolveZoom = %v, want 0.3", zoom)
	}
	if !ok || target != (Vec3{2, 0, 10}) {
		t.Errorf("ResolveTarget = %v, %v, want (2,0,10) from trigger-A", target, ok)
	}
}

func TestEffectStackZoomFallsThroughTargetOnly(t *testing.T) {
	s := NewEffectStack()
	s.Add(ZoomEffect("far", 0.8))
	s.Add(TargetEffect("pan", Vec3{1, 0, 1}))

	zoom, _, ok := s.ResolveZoom()
	if !ok || zoom != 0.8 {
		t.Errorf("ResolveZoom = %v, %v, want 0.8, true", zoom, ok)
	}
}

func TestEffectStackTopPrioritySmoothFlag(t *testing.T) {
	s := NewEffectStack()
	s.Add(FocusEffect("a", 1, Vec3{}))
	s.Add(Effect{ID: "snap", Zoom: ptr(0.2), Smooth: false}, TopPriority())

	_, smooth, _ := s.ResolveZoom()
	if smooth {
		t.Error("zoom smooth = true, want the top-priority entry's false")
	}
	_, smooth, _ = s.ResolveTarget()
	if !smooth {
		t.Error("target smooth = false, want the focus entry's true")
	}
}

func TestEffectStackPriorityGroupsStayOrdered(t *testing.T) {
	s := NewEffectStack()
	steps := []func(){
		func() { s.Add(ZoomEffect("a", 1)) },
		func() { s.Add(ZoomEffect("t", 0.3), TopPriority()) },
		func() { s.Add(ZoomEffect("b", 1)) },
		func() { s.Add(ZoomEffect("a", 2)) },
		func() { s.Add(ZoomEffect("u", 0.2), TopPriority()) },
		func() { s.Remove("t") },
		func() { s.Add(ZoomEffect("c", 1)) },
	}
	for i, step := range steps {
		step()
		seenTop := false
		for _, e := range s.Effects() {
			if e.TopPriority {
				seenTop = true
			} else if seenTop {
				t.Fatalf("step %d: non-top effect %q after top group: %v", i, e.ID, ids(s))
			}
		}
	}
}

func TestEffectHandleRelease(t *testing.T) {
	s := NewEffectStack()
	h := s.Acquire(ZoomEffect("scoped", 0.5))
	if !s.Has("scoped") {
		t.Fatal("Acquire did not add the effect")
	}
	h.Update(EffectPatch{Zoom: ptr(0.7)})
	zoom, _, _ := s.ResolveZoom()
	if zoom != 0.7 {
		t.Errorf("ResolveZoom = %v, want 0.7", zoom)
	}

	h.Release()
	if s.Has("scoped") {
		t.Error("Release did not remove the effect")
	}

	// A later effect with the same ID must survive a second Release.
	s.Add(ZoomEffect("scoped", 1))
	h.Release()
	h.Update(EffectPatch{Zoom: ptr(2.0)})
	e, ok := s.Get("scoped")
	if !ok || *e.Zoom != 1 {
		t.Errorf("second Release or Update touched a newer effect: %+v", e)
	}
}

func TestEffectStackReset(t *testing.T) {
	s := NewEffectStack()
	s.Add(ZoomEffect("a", 1))
	s.Add(ZoomEffect("b", 1), TopPriority())
	s.Reset()
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
}
