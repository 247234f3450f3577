package systems

import (
	"log"

	"github.com/automoto/proxyfeedback/components"
	cfg "github.com/automoto/proxyfeedback/config"
	"github.com/automoto/proxyfeedback/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// AddFeedbackRequest queues r on proxy, applies the highlight and tooltip of
// the winning request for r.Control and refreshes aggregate visibility.
func AddFeedbackRequest(proxy *donburi.Entry, r *components.FeedbackRequest) {
	if r == nil || !usable(proxy) {
		return
	}
	p := components.Proxy.Get(proxy)
	q := components.FeedbackQueue.Get(proxy)
	if q.Contains(r) {
		log.Printf("Warning: feedback request for %s is already queued", r.Control)
		return
	}
	if !components.Comparable(r.Caller) {
		log.Printf("Warning: %s request caller of type %T is not comparable, dropping", r.Control, r.Caller)
		return
	}

	q.Add(r, p.Active)
	recompute(proxy, r.Control)
	UpdateVisibility(proxy)
}

// RemoveFeedbackRequest clears the highlight and tooltip of r.Control, drops
// r and re-arbitrates. Removing a request that is not queued does nothing.
func RemoveFeedbackRequest(proxy *donburi.Entry, r *components.FeedbackRequest) {
	if r == nil || !usable(proxy) {
		return
	}
	q := components.FeedbackQueue.Get(proxy)
	if !q.Contains(r) {
		return
	}

	forEachAffordance(proxy, r.Control, func(entry *donburi.Entry) {
		setHighlight(proxy, entry, false, r.DisplayDuration())
		hideTooltip(proxy, entry)
	})
	q.Remove(r)
	recompute(proxy, r.Control)
	UpdateVisibility(proxy)
}

// ClearFeedbackRequests removes every request queued by caller, in queue order.
func ClearFeedbackRequests(proxy *donburi.Entry, caller any) {
	if !usable(proxy) {
		return
	}
	p := components.Proxy.Get(proxy)
	q := components.FeedbackQueue.Get(proxy)

	buf := q.ByCaller(caller, p.ScratchBuffer())
	for _, r := range buf {
		RemoveFeedbackRequest(proxy, r)
	}
	p.KeepScratchBuffer(buf)
}

// AddShakeRequest submits the canonical "device shaken" request unless a
// request already holds the shake lock. Returns the queued request, or nil
// when the call was dropped.
func AddShakeRequest(proxy *donburi.Entry) *components.FeedbackRequest {
	if !usable(proxy) {
		return nil
	}
	if components.FeedbackQueue.Get(proxy).ShakeLocked() {
		return nil
	}
	p := components.Proxy.Get(proxy)
	r := &components.FeedbackRequest{
		Node:     p.Node,
		Control:  cfg.Feedback.ShakeControl,
		Priority: cfg.Feedback.ShakePriority,
		ShowBody: true,
		Caller:   proxy,
	}
	AddFeedbackRequest(proxy, r)
	return r
}

// UpdateVisibility recomputes the aggregate flags of proxy and pushes them to
// the affordance and body visual states. Idempotent.
func UpdateVisibility(proxy *donburi.Entry) {
	if !usable(proxy) {
		return
	}
	p := components.Proxy.Get(proxy)
	q := components.FeedbackQueue.Get(proxy)

	shake := q.ShakeLocked()
	p.AffordancesVisible = shake || q.AnyVisibleAtAll()
	p.BodyVisible = shake

	for _, entry := range p.Affordances {
		if !entry.Valid() {
			continue
		}
		a := components.Affordance.Get(entry)
		a.SetVisible(p.AffordancesVisible && (a.Visible || shake))
	}
	components.Body.Get(proxy).SetVisible(p.BodyVisible)
}

// SubmitFeedbackRequest routes r to the first live proxy bound to r.Node.
// Reports whether a proxy took the request.
func SubmitFeedbackRequest(e *ecs.ECS, r *components.FeedbackRequest) bool {
	if r == nil {
		return false
	}
	proxy := findProxy(e, r.Node)
	if proxy == nil {
		log.Printf("Warning: no proxy for node %s, dropping %s request", r.Node, r.Control)
		return false
	}
	AddFeedbackRequest(proxy, r)
	return true
}

// RetractFeedbackRequest removes r from whichever proxy holds it.
func RetractFeedbackRequest(e *ecs.ECS, r *components.FeedbackRequest) {
	if r == nil {
		return
	}
	tags.Proxy.Each(e.World, func(entry *donburi.Entry) {
		if components.FeedbackQueue.Get(entry).Contains(r) {
			RemoveFeedbackRequest(entry, r)
		}
	})
}

// Queued reports whether any proxy still holds r. Expired requests are not
// held.
func Queued(e *ecs.ECS, r *components.FeedbackRequest) bool {
	if r == nil {
		return false
	}
	held := false
	tags.Proxy.Each(e.World, func(entry *donburi.Entry) {
		if components.FeedbackQueue.Get(entry).Contains(r) {
			held = true
		}
	})
	return held
}

// ClearCallerFeedback removes every request from caller on every proxy.
func ClearCallerFeedback(e *ecs.ECS, caller any) {
	tags.Proxy.Each(e.World, func(entry *donburi.Entry) {
		ClearFeedbackRequests(entry, caller)
	})
}

// ShakeNode submits a shake request to the proxy bound to node.
func ShakeNode(e *ecs.ECS, node cfg.Node) *components.FeedbackRequest {
	proxy := findProxy(e, node)
	if proxy == nil {
		return nil
	}
	return AddShakeRequest(proxy)
}

func findProxy(e *ecs.ECS, node cfg.Node) *donburi.Entry {
	var found *donburi.Entry
	tags.Proxy.Each(e.World, func(entry *donburi.Entry) {
		if found != nil {
			return
		}
		p := components.Proxy.Get(entry)
		if p.Node == node && !p.Released && !p.Invalid {
			found = entry
		}
	})
	return found
}

// RecomputeControl re-arbitrates control on proxy without changing its queue.
func RecomputeControl(proxy *donburi.Entry, control cfg.Control) {
	if !usable(proxy) {
		return
	}
	recompute(proxy, control)
}

// recompute re-arbitrates one control: its affordances show the
// highest-priority currently visible request, and a control with nothing
// queued loses its tooltip.
func recompute(proxy *donburi.Entry, control cfg.Control) {
	q := components.FeedbackQueue.Get(proxy)
	visible := q.AnyVisible(control)
	winner := q.Winner(control)

	forEachAffordance(proxy, control, func(entry *donburi.Entry) {
		components.Affordance.Get(entry).Visible = visible
		if winner == nil {
			hideTooltip(proxy, entry)
			return
		}
		setHighlight(proxy, entry, !winner.SuppressExisting, winner.DisplayDuration())
		if winner.TooltipText != "" || winner.SuppressExisting {
			showTooltip(proxy, entry, winner.TooltipText, winner.DisplayDuration())
		}
	})
}

func forEachAffordance(proxy *donburi.Entry, control cfg.Control, fn func(entry *donburi.Entry)) {
	p := components.Proxy.Get(proxy)
	for _, entry := range p.Affordances {
		if !entry.Valid() {
			continue
		}
		if components.Affordance.Get(entry).Control == control {
			fn(entry)
		}
	}
}

func setHighlight(proxy, entry *donburi.Entry, enabled bool, duration float64) {
	p := components.Proxy.Get(proxy)
	a := components.Affordance.Get(entry)
	enabled = enabled && cfg.Feedback.ShowHighlights
	a.Highlighted = enabled
	if p.Highlighter == nil || a.Renderer == nil {
		return
	}
	p.Highlighter.SetHighlight(a.Renderer, enabled, proxy, p.HighlightMaterial, duration)
}

func showTooltip(proxy, entry *donburi.Entry, text string, duration float64) {
	p := components.Proxy.Get(proxy)
	a := components.Affordance.Get(entry)
	t := components.Tooltip.Get(entry)

	placement := a.Placement(components.Facing.Get(proxy).Direction)
	t.Show(text, duration, placement)
	if p.Tooltips != nil {
		p.Tooltips.ShowTooltip(t, cfg.Feedback.ShowTooltips, duration, placement)
	}
}

func hideTooltip(proxy, entry *donburi.Entry) {
	p := components.Proxy.Get(proxy)
	t := components.Tooltip.Get(entry)
	if !t.Active {
		return
	}
	t.Hide()
	if p.Tooltips != nil {
		p.Tooltips.HideTooltip(t, cfg.Feedback.ShowTooltips)
	}
}

// usable reports whether proxy can take feedback. Invalid and released
// proxies stay inert.
func usable(proxy *donburi.Entry) bool {
	if proxy == nil || !proxy.Valid() || !proxy.HasComponent(components.Proxy) {
		return false
	}
	p := components.Proxy.Get(proxy)
	return !p.Invalid && !p.Released
}
