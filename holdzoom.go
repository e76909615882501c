package storycam

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// HoldZoomEffectID is the ID of the top-priority hold-to-zoom effect.
const HoldZoomEffectID = "hold-zoom"

// HoldZoom keeps a top-priority zoom effect in the stack while a key is
// held. The zoom eases from the zoom in effect at the press (the baseline
// when no effect sets one) to the hold zoom; releasing the key removes
// the effect and the compositor springs back.
type HoldZoom struct {
	cfg   HoldZoomConfig
	base  float64
	stack *EffectStack
	ease  ease.TweenFunc

	held  bool
	tween *gween.Tween
	value float64
}

// NewHoldZoom creates a hold-to-zoom controller. base is the zoom the ramp
// starts from when no other effect sets one.
func NewHoldZoom(cfg HoldZoomConfig, base float64, stack *EffectStack) *HoldZoom {
	return &HoldZoom{cfg: cfg, base: base, stack: stack, ease: ease.OutCubic}
}

// SetEase replaces the ramp easing function.
func (h *HoldZoom) SetEase(fn ease.TweenFunc) {
	h.ease = fn
}

// Held reports whether the key was held on the last Update.
func (h *HoldZoom) Held() bool {
	return h.held
}

// Value returns the zoom currently published, or the base when released.
func (h *HoldZoom) Value() float64 {
	if !h.held {
		return h.base
	}
	return h.value
}

// Update applies this frame's key state and advances the ramp by dt
// seconds.
func (h *HoldZoom) Update(held bool, dt float64) {
	switch {
	case held && !h.held:
		h.held = true
		h.value = h.start()
		if h.cfg.RampSeconds > 0 {
			h.tween = gween.New(float32(h.value), float32(h.cfg.Zoom), float32(h.cfg.RampSeconds), h.ease)
		} else {
			h.value = h.cfg.Zoom
		}
		h.stack.Add(ZoomEffect(HoldZoomEffectID, h.value), TopPriority())
		return
	case !held && h.held:
		h.Reset()
		return
	case !held:
		return
	}

	if h.tween != nil {
		v, done := h.tween.Update(float32(dt))
		h.value = float64(v)
		if done {
			h.value = h.cfg.Zoom
			h.tween = nil
		}
		h.stack.Update(HoldZoomEffectID, EffectPatch{Zoom: ptr(h.value)})
	}
}

// start is the zoom the ramp begins from: whatever the stack resolves
// before the hold effect goes in, or the base when nothing sets a zoom.
func (h *HoldZoom) start() float64 {
	if z, _, ok := h.stack.ResolveZoom(); ok {
		return z
	}
	return h.base
}

// Reset releases the hold and removes the effect.
func (h *HoldZoom) Reset() {
	h.held = false
	h.tween = nil
	h.stack.Remove(HoldZoomEffectID)
}
