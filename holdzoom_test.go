package storycam

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func TestHoldZoomRamp(t *testing.T) {
	stack := NewEffectStack()
	h := NewHoldZoom(HoldZoomConfig{Zoom: 0.3, RampSeconds: 0.35}, 1, stack)

	h.Update(true, frame)
	e, ok := stack.Get(HoldZoomEffectID)
	if !ok {
		t.Fatal("hold zoom effect missing after press")
	}
	if !e.TopPriority {
		t.Error("hold zoom effect is not top priority")
	}
	if *e.Zoom != 1 {
		t.Errorf("zoom on press = %v, want base 1", *e.Zoom)
	}

	h.Update(true, 0.1)
	mid := h.Value()
	if mid <= 0.3 || mid >= 1 {
		t.Errorf("zoom mid ramp = %v, want strictly between 0.3 and 1", mid)
	}
	e, _ = stack.Get(HoldZoomEffectID)
	if *e.Zoom != mid {
		t.Errorf("published zoom %v, want %v", *e.Zoom, mid)
	}

	for range 10 {
		h.Update(true, 0.1)
	}
	if h.Value() != 0.3 {
		t.Errorf("zoom after ramp = %v, want 0.3", h.Value())
	}

	h.Update(false, frame)
	if stack.Has(HoldZoomEffectID) {
		t.Error("effect survived release")
	}
	if h.Held() || h.Value() != 1 {
		t.Errorf("Held = %v Value = %v after release", h.Held(), h.Value())
	}
}

func TestHoldZoomNoRamp(t *testing.T) {
	stack := NewEffectStack()
	h := NewHoldZoom(HoldZoomConfig{Zoom: 0.3}, 1, stack)
	h.Update(true, frame)
	zoom, _, _ := stack.ResolveZoom()
	if zoom != 0.3 {
		t.Errorf("ResolveZoom = %v, want 0.3", zoom)
	}
}

func TestHoldZoomOverridesFocus(t *testing.T) {
	stack := NewEffectStack()
	h := NewHoldZoom(HoldZoomConfig{Zoom: 0.3}, 1, stack)
	h.Update(true, frame)
	stack.Add(FocusEffect("trigger", 0.6, Vec3{0, 0, 12}))

	zoom, _, _ := stack.ResolveZoom()
	if zoom != 0.3 {
		t.Errorf("ResolveZoom = %v, want hold zoom 0.3", zoom)
	}
	target, _, _ := stack.ResolveTarget()
	if target != (Vec3{0, 0, 12}) {
		t.Errorf("ResolveTarget = %v, want the trigger target", target)
	}
}

func TestHoldZoomEase(t *testing.T) {
	linear := NewHoldZoom(HoldZoomConfig{Zoom: 0, RampSeconds: 1}, 1, NewEffectStack())
	linear.SetEase(ease.Linear)
	linear.Update(true, frame)
	linear.Update(true, 0.5)
	if !approxEqual(linear.Value(), 0.5, 1e-4) {
		t.Errorf("linear ramp at half time = %v, want 0.5", linear.Value())
	}
}

func TestHoldZoomReset(t *testing.T) {
	stack := NewEffectStack()
	h := NewHoldZoom(HoldZoomConfig{Zoom: 0.3, RampSeconds: 1}, 1, stack)
	h.Update(true, frame)
	h.Reset()
	if stack.Has(HoldZoomEffectID) || h.Held() {
		t.Error("Reset left the hold active")
	}
	// Still holding after a reset counts as a fresh press.
	h.Update(true, frame)
	if !stack.Has(HoldZoomEffectID) {
		t.Error("press after Reset did not republish")
	}
}

func TestHoldZoomStartsFromActiveFocus(t *testing.T) {
	stack := NewEffectStack()
	stack.Add(FocusEffect("trigger", 0.6, Vec3{0, 0, 12}))
	h := NewHoldZoom(HoldZoomConfig{Zoom: 0.3, RampSeconds: 0.35}, 1, stack)

	h.Update(true, frame)
	zoom, _, _ := stack.ResolveZoom()
	if zoom != 0.6 {
		t.Errorf("zoom on press = %v, want the focus zoom 0.6", zoom)
	}

	prev := zoom
	for i := range 30 {
		h.Update(true, frame)
		zoom, _, _ = stack.ResolveZoom()
		if zoom > prev+1e-6 {
			t.Fatalf("frame %d: zoom rose from %v to %v", i, prev, zoom)
		}
		prev = zoom
	}
	if zoom != 0.3 {
		t.Errorf("zoom after ramp = %v, want 0.3", zoom)
	}
}
