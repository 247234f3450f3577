package systems

import (
	"time"

	"github.com/automoto/proxyfeedback/components"
	"github.com/yohamta/donburi/ecs"
)

var clockNow = time.Now

// UpdateClock measures unscaled wall-clock time since the previous tick.
// Must run before UpdateProxies.
func UpdateClock(ecs *ecs.ECS) {
	c := getOrCreateClock(ecs)
	now := clockNow()
	if c.Last.IsZero() {
		c.Last = now
		c.Unscaled = 0
		return
	}
	dt := now.Sub(c.Last).Seconds()
	c.Last = now
	c.Unscaled = max(dt, 0)
	c.Elapsed += c.Unscaled
	c.Ticks++
}

// getOrCreateClock returns the singleton Clock component, creating if needed
func getOrCreateClock(ecs *ecs.ECS) *components.ClockData {
	entry, ok := components.Clock.First(ecs.World)
	if !ok {
		entry = ecs.World.Entry(ecs.World.Create(components.Clock))
	}
	return components.Clock.Get(entry)
}

// ClockDelta returns the unscaled delta of the current tick
func ClockDelta(ecs *ecs.ECS) float64 {
	return getOrCreateClock(ecs).Unscaled
}
