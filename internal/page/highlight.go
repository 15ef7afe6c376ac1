package page

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const highlightDuration = 0.25

// highlight eases a card's hover glow between 0 and 1.
type highlight struct {
	tween *gween.Tween
	value float64
	on    bool
}

func (h *highlight) set(on bool) {
	if h.tween != nil && h.on == on {
		return
	}
	h.on = on
	to := float32(0)
	if on {
		to = 1
	}
	h.tween = gween.New(float32(h.value), to, highlightDuration, ease.OutQuad)
}

func (h *highlight) update(dt float32) {
	if h.tween == nil {
		return
	}
	v, done := h.tween.Update(dt)
	h.value = float64(v)
	if done {
		h.tween = nil
	}
}
