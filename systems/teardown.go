package systems

import (
	"github.com/automoto/proxyfeedback/components"
	"github.com/yohamta/donburi"
)

// TeardownProxy drops every queued request, hands every owned surface back
// to the cloner and removes the affordance entities. The proxy entity itself
// stays, marked released, so late callers fail quietly. Safe to call twice.
func TeardownProxy(proxy *donburi.Entry) {
	if proxy == nil || !proxy.Valid() || !proxy.HasComponent(components.Proxy) {
		return
	}
	p := components.Proxy.Get(proxy)
	if p.Released {
		return
	}

	q := components.FeedbackQueue.Get(proxy)
	for i := len(q.Requests) - 1; i >= 0; i-- {
		RemoveFeedbackRequest(proxy, q.Requests[i])
	}
	// Invalid proxies never ran their requests through the controller
	q.Requests = nil
	q.ShakeHolder = nil

	for _, entry := range p.Affordances {
		if !entry.Valid() {
			continue
		}
		a := components.Affordance.Get(entry)
		if a.Highlighted {
			setHighlight(proxy, entry, false, 0)
		}
		hideTooltip(proxy, entry)
		a.Release(p.Cloner)
		entry.Remove()
	}
	p.Affordances = nil

	body := components.Body.Get(proxy)
	body.Release(p.Cloner)
	body.Materials = nil
	p.Active = false
	p.Released = true
	p.AffordancesVisible = false
	p.BodyVisible = false
}
