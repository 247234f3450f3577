package components

import (
	cfg "github.com/automoto/proxyfeedback/config"
	"github.com/yohamta/donburi"
)

// AffordanceData is the per-proxy instance of one physical affordance: a
// private copy of its definition plus the channels it fades.
type AffordanceData struct {
	VisualState

	Proxy      *donburi.Entry
	Control    cfg.Control
	Renderer   Renderer
	Definition cfg.AffordanceDefinition

	// Visible is true while at least one visible request supports Control.
	Visible bool
	// Highlighted mirrors the last highlight state pushed to the highlighter
	Highlighted bool
}

var Affordance = donburi.NewComponentType[AffordanceData]()

// Placement returns the tooltip placement for a facing direction
func (a *AffordanceData) Placement(facing cfg.FacingDirection) TooltipPlacement {
	return PlacementFor(a.Definition.Placement(facing), facing)
}
