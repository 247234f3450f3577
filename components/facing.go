package components

import (
	cfg "github.com/automoto/proxyfeedback/config"
	"github.com/yohamta/donburi"
)

// FacingData tracks which local axis of the proxy points at the viewer.
type FacingData struct {
	Direction cfg.FacingDirection
	// Changes counts facing changes, for diagnostics
	Changes int
}

var Facing = donburi.NewComponentType[FacingData]()
