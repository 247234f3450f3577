package systems

import (
	"math"

	"github.com/automoto/proxyfeedback/components"
	cfg "github.com/automoto/proxyfeedback/config"
	"github.com/kvartborg/vector"
	"github.com/yohamta/donburi"
)

// DominantFacing returns the local axis of t that points most directly at
// viewer. ok is false when the viewer sits on the proxy origin.
func DominantFacing(t components.Transform, viewer vector.Vector) (facing cfg.FacingDirection, ok bool) {
	dir := viewer.Clone().Sub(t.Position)
	if dir.Magnitude() == 0 {
		return facing, false
	}
	dir = dir.Unit()

	right := dir.Dot(t.Right)
	up := dir.Dot(t.Up)
	forward := dir.Dot(t.Forward)

	switch {
	case math.Abs(forward) >= math.Abs(right) && math.Abs(forward) >= math.Abs(up):
		if forward >= 0 {
			return cfg.FacingFront, true
		}
		return cfg.FacingBack, true
	case math.Abs(right) >= math.Abs(up):
		if right >= 0 {
			return cfg.FacingRight, true
		}
		return cfg.FacingLeft, true
	default:
		if up >= 0 {
			return cfg.FacingTop, true
		}
		return cfg.FacingBottom, true
	}
}

// UpdateFacing recomputes the facing of proxy. On change every active tooltip
// is re-placed for the new facing and keeps its remaining display time.
func UpdateFacing(proxy *donburi.Entry) {
	p := components.Proxy.Get(proxy)
	if p.Viewer == nil {
		return
	}
	facing, ok := DominantFacing(p.Transform, p.Viewer.ViewerPosition())
	if !ok {
		return
	}
	f := components.Facing.Get(proxy)
	if facing == f.Direction {
		return
	}
	f.Direction = facing
	f.Changes++

	for _, entry := range p.Affordances {
		if !entry.Valid() {
			continue
		}
		t := components.Tooltip.Get(entry)
		if !t.Active {
			continue
		}
		placement := components.Affordance.Get(entry).Placement(facing)
		t.SlideTo(placement)
		if p.Tooltips != nil {
			p.Tooltips.ShowTooltip(t, cfg.Feedback.ShowTooltips, t.Remaining, placement)
		}
	}
}
