package components

import "github.com/yohamta/donburi"

// HighlightData is the highlight state of one piece of proxy geometry
type HighlightData struct {
	Enabled   bool
	Source    any
	Override  Material
	Remaining float64 // unscaled seconds; 0 means no expiry
	Elapsed   float64 // drives the pulse
}

// Tick counts down the highlight and reports true when it just ran out.
func (h *HighlightData) Tick(dt float64) (expired bool) {
	if !h.Enabled {
		return false
	}
	h.Elapsed += dt
	if h.Remaining <= 0 {
		return false
	}
	h.Remaining -= dt
	if h.Remaining <= 0 {
		h.Remaining = 0
		h.Enabled = false
		return true
	}
	return false
}

// ShakeData wobbles the demo proxy while a shake request holds the body lock
type ShakeData struct {
	Intensity float64 // max offset in pixels
	Remaining float64 // seconds
	Elapsed   float64
}

var Shake = donburi.NewComponentType[ShakeData]()
