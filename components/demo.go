package components

import (
	cfg "github.com/automoto/proxyfeedback/config"
	"github.com/yohamta/donburi"
)

// DemoData is the state of the interactive viewer: the pose shared by both
// proxies and the requests the viewer holds on to.
type DemoData struct {
	Yaw   float64
	Pitch float64

	// Hand that receives requests from the viewer keys
	Target cfg.Node

	// Outstanding grab request per hand, retracted on demand
	Grab map[cfg.Node]*FeedbackRequest

	// Preferences panel shown; viewer keys other than the panel toggle
	// are ignored while it is open
	PreferencesOpen bool

	Status          string
	StatusRemaining float64
}

var Demo = donburi.NewComponentType[DemoData]()

// Flash shows a status line for a couple of seconds
func (d *DemoData) Flash(msg string) {
	d.Status = msg
	d.StatusRemaining = 2.0
}
