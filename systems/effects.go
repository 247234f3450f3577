package systems

import (
	"math"

	"github.com/automoto/proxyfeedback/components"
	"github.com/automoto/proxyfeedback/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// highlightTicker is proxy geometry that runs its own highlight timer
type highlightTicker interface {
	TickHighlight(dt float64) bool
}

// UpdateEffects advances highlight pulses and the shake wobble.
// Must run after UpdateClock.
func UpdateEffects(ecs *ecs.ECS) {
	dt := ClockDelta(ecs)
	updateHighlights(ecs, dt)
	updateShakes(ecs, dt)
}

// updateHighlights ticks the highlight of every affordance renderer
func updateHighlights(ecs *ecs.ECS, dt float64) {
	tags.Affordance.Each(ecs.World, func(e *donburi.Entry) {
		a := components.Affordance.Get(e)
		h, ok := a.Renderer.(highlightTicker)
		if !ok {
			return
		}
		if h.TickHighlight(dt) {
			a.Highlighted = false
		}
	})
}

// updateShakes counts down shake wobbles and removes the finished ones
func updateShakes(ecs *ecs.ECS, dt float64) {
	var toRemove []*donburi.Entry

	components.Shake.Each(ecs.World, func(e *donburi.Entry) {
		s := components.Shake.Get(e)
		s.Elapsed += dt
		s.Remaining -= dt
		if s.Remaining <= 0 {
			toRemove = append(toRemove, e)
		}
	})

	for _, e := range toRemove {
		e.RemoveComponent(components.Shake)
	}
}

// StartShake starts or restarts the wobble on a proxy entity
func StartShake(e *donburi.Entry, intensity, duration float64) {
	if !e.HasComponent(components.Shake) {
		e.AddComponent(components.Shake)
	}
	components.Shake.SetValue(e, components.ShakeData{
		Intensity: intensity,
		Remaining: duration,
	})
}

// ShakeOffset returns the current wobble offset in pixels, damped as the
// shake runs out.
func ShakeOffset(e *donburi.Entry) (dx, dy float64) {
	if !e.HasComponent(components.Shake) {
		return 0, 0
	}
	s := components.Shake.Get(e)
	damp := math.Min(s.Remaining, 1)
	dx = math.Sin(s.Elapsed*40) * s.Intensity * damp
	dy = math.Cos(s.Elapsed*33) * s.Intensity * 0.5 * damp
	return dx, dy
}
