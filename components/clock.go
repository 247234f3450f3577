package components

import (
	"time"

	"github.com/yohamta/donburi"
)

// ClockData is the singleton frame clock. Feedback timing runs on unscaled
// time so it keeps going while the host slows or pauses simulation.
type ClockData struct {
	Unscaled float64 // seconds since the previous tick
	Elapsed  float64 // unscaled seconds since the clock started
	Ticks    int

	Last time.Time
}

var Clock = donburi.NewComponentType[ClockData]()
