package archetypes

import (
	"github.com/automoto/proxyfeedback/components"
	cfg "github.com/automoto/proxyfeedback/config"
	"github.com/automoto/proxyfeedback/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	Proxy = newArchetype(
		tags.Proxy,
		components.Proxy,
		components.FeedbackQueue,
		components.Facing,
		components.Body,
	)
	Affordance = newArchetype(
		tags.Affordance,
		components.Affordance,
		components.Tooltip,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		cfg.Default,
		append(a.components, cs...)...,
	))
	return e
}
