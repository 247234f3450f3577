package components

import (
	cfg "github.com/automoto/proxyfeedback/config"
	"github.com/kvartborg/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
)

// TooltipPlacement is where a tooltip sits relative to its affordance, in
// proxy-local space.
type TooltipPlacement struct {
	Offset vector.Vector
	Align  string
	Facing cfg.FacingDirection
}

// PlacementFor converts an authored placement for a facing direction.
func PlacementFor(p cfg.TooltipPlacement, facing cfg.FacingDirection) TooltipPlacement {
	return TooltipPlacement{
		Offset: vector.Vector{p.Offset[0], p.Offset[1], p.Offset[2]},
		Align:  p.Align,
		Facing: facing,
	}
}

// TooltipData is the tooltip attached to one affordance. The display owns
// presentation; this only tracks what is shown, where, and for how long.
type TooltipData struct {
	Control cfg.Control
	Text    string
	Active  bool

	// Unscaled seconds before the display hides the tooltip on its own
	Remaining float64

	Placement TooltipPlacement
	// Current offset, trailing Placement.Offset while a slide runs
	Offset vector.Vector

	slide     *gween.Tween
	slideFrom vector.Vector
}

var Tooltip = donburi.NewComponentType[TooltipData]()

// Show marks the tooltip active at placement p. The offset jumps there.
func (t *TooltipData) Show(text string, duration float64, p TooltipPlacement) {
	t.Text = text
	t.Active = true
	t.Remaining = duration
	t.Placement = p
	t.Offset = p.Offset.Clone()
	t.slide = nil
}

// Hide clears the tooltip
func (t *TooltipData) Hide() {
	t.Active = false
	t.Text = ""
	t.Remaining = 0
	t.slide = nil
}

// SlideTo retargets an active tooltip, easing from its current offset.
func (t *TooltipData) SlideTo(p TooltipPlacement) {
	t.slideFrom = t.Offset.Clone()
	if len(t.slideFrom) != len(p.Offset) {
		t.slideFrom = p.Offset.Clone()
	}
	t.Placement = p
	if cfg.Tooltip.SlideDuration <= 0 {
		t.Offset = p.Offset.Clone()
		t.slide = nil
		return
	}
	t.slide = gween.New(0, 1, float32(cfg.Tooltip.SlideDuration), ease.InOutQuad)
}

// Sliding reports whether a placement slide is in flight
func (t *TooltipData) Sliding() bool {
	return t.slide != nil
}

// Tick counts down the display time and advances the slide. Reports true on
// the tick the display time runs out.
func (t *TooltipData) Tick(dt float64) (expired bool) {
	if !t.Active {
		return false
	}
	if t.Remaining > 0 {
		t.Remaining = max(t.Remaining-dt, 0)
		expired = t.Remaining == 0
	}
	if t.slide == nil {
		return expired
	}
	k, done := t.slide.Update(float32(dt))
	if done {
		t.Offset = t.Placement.Offset.Clone()
		t.slide = nil
		return expired
	}
	to := t.Placement.Offset
	off := make(vector.Vector, len(to))
	for i := range to {
		off[i] = t.slideFrom[i] + (to[i]-t.slideFrom[i])*float64(k)
	}
	t.Offset = off
	return expired
}
