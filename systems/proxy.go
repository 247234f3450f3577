package systems

import (
	"github.com/automoto/proxyfeedback/components"
	cfg "github.com/automoto/proxyfeedback/config"
	"github.com/automoto/proxyfeedback/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateProxies advances every proxy by the unscaled clock delta.
// Must run after UpdateClock.
func UpdateProxies(ecs *ecs.ECS) {
	dt := ClockDelta(ecs)
	tags.Proxy.Each(ecs.World, func(entry *donburi.Entry) {
		StepProxy(entry, dt)
	})
}

// StepProxy runs one tick of a proxy: request lifespans, facing, fades and
// tooltip timers, in that order.
func StepProxy(proxy *donburi.Entry, dt float64) {
	if !usable(proxy) {
		return
	}
	p := components.Proxy.Get(proxy)

	if p.Active {
		updateLifespans(proxy, dt)
	}
	UpdateFacing(proxy)

	for _, entry := range p.Affordances {
		if !entry.Valid() {
			continue
		}
		components.Affordance.Get(entry).Tick(dt)
		updateTooltip(proxy, entry, dt)
	}
	components.Body.Get(proxy).Tick(dt)
}

// updateLifespans drops requests whose timers ran out and re-arbitrates
// their controls, so the next visible request takes over.
func updateLifespans(proxy *donburi.Entry, dt float64) {
	p := components.Proxy.Get(proxy)
	q := components.FeedbackQueue.Get(proxy)

	expired := q.Tick(dt, p.ExpiredBuffer())
	for _, r := range expired {
		forEachAffordance(proxy, r.Control, func(entry *donburi.Entry) {
			setHighlight(proxy, entry, false, r.DisplayDuration())
			hideTooltip(proxy, entry)
		})
		recompute(proxy, r.Control)
	}
	if len(expired) > 0 {
		UpdateVisibility(proxy)
	}
	p.KeepExpiredBuffer(expired)
}

func updateTooltip(proxy, entry *donburi.Entry, dt float64) {
	t := components.Tooltip.Get(entry)
	if !t.Tick(dt) {
		return
	}
	t.Hide()
	if p := components.Proxy.Get(proxy); p.Tooltips != nil {
		p.Tooltips.HideTooltip(t, cfg.Feedback.ShowTooltips)
	}
}
