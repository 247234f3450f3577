package factory

import (
	"errors"
	"fmt"
	"log"

	"github.com/automoto/proxyfeedback/archetypes"
	"github.com/automoto/proxyfeedback/components"
	cfg "github.com/automoto/proxyfeedback/config"
	"github.com/automoto/proxyfeedback/systems"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	// ErrSetupInvalid means the proxy was given no affordances, no map or no
	// resource cloner. The proxy stays inert.
	ErrSetupInvalid = errors.New("proxy setup invalid")
	// ErrDuplicateSetup means setup already ran; the first setup is kept.
	ErrDuplicateSetup = errors.New("proxy already set up")
)

// AffordanceBinding ties one physical affordance on the proxy geometry to a
// control. Two bindings may share a control.
type AffordanceBinding struct {
	Control  cfg.Control
	Renderer components.Renderer
}

// ProxySetup is everything SetupProxy binds.
type ProxySetup struct {
	Map         *cfg.AffordanceMap
	Affordances []AffordanceBinding
	Body        []components.Renderer
	// Hidden materials for MaterialSwap definitions, by hiddenMaterial name
	HiddenMaterials map[string]components.Material
}

// CreateProxy spawns an inert proxy for node. Requests may be queued right
// away; their lifespans start once SetupProxy succeeds.
func CreateProxy(ecs *ecs.ECS, node cfg.Node, t components.Transform, collab components.Collaborators) *donburi.Entry {
	proxy := archetypes.Proxy.Spawn(ecs)

	if t.Position == nil {
		t = components.IdentityTransform()
	}
	components.Proxy.SetValue(proxy, components.ProxyData{
		Node:          node,
		Transform:     t,
		Collaborators: collab,
	})
	components.Facing.SetValue(proxy, components.FacingData{
		Direction: cfg.Facing.Initial,
	})
	return proxy
}

// SetupProxy binds affordances and body geometry to proxy and activates it.
func SetupProxy(ecs *ecs.ECS, proxy *donburi.Entry, setup ProxySetup) error {
	p := components.Proxy.Get(proxy)
	if p.SetUp {
		log.Printf("Warning: proxy %s is already set up, ignoring second setup", p.Node)
		return ErrDuplicateSetup
	}
	if p.Invalid || p.Released {
		return ErrSetupInvalid
	}

	var reason string
	switch {
	case setup.Map == nil:
		reason = "no affordance map"
	case len(setup.Affordances) == 0:
		reason = "no affordances"
	case p.Cloner == nil:
		reason = "no resource cloner"
	}
	if reason != "" {
		p.Invalid = true
		log.Printf("Warning: proxy %s setup aborted: %s", p.Node, reason)
		return fmt.Errorf("%w: %s", ErrSetupInvalid, reason)
	}

	p.Map = setup.Map
	p.BodyRenderers = setup.Body

	for _, b := range setup.Affordances {
		p.Affordances = append(p.Affordances, createAffordance(ecs, proxy, b, setup))
	}
	setupBody(proxy, setup)

	p.SetUp = true
	p.Active = true

	q := components.FeedbackQueue.Get(proxy)
	q.StartTimers()
	for c := cfg.ControlNone; c < cfg.ControlCount; c++ {
		if q.Winner(c) != nil {
			systems.RecomputeControl(proxy, c)
		}
	}
	systems.UpdateVisibility(proxy)
	return nil
}

// createAffordance spawns the affordance entity for one binding with a
// private copy of its definition and one owned clone per material.
func createAffordance(ecs *ecs.ECS, proxy *donburi.Entry, b AffordanceBinding, setup ProxySetup) *donburi.Entry {
	p := components.Proxy.Get(proxy)
	def, _ := setup.Map.Lookup(b.Control)

	entry := archetypes.Affordance.Spawn(ecs)
	a := components.AffordanceData{
		Proxy:      proxy,
		Control:    b.Control,
		Renderer:   b.Renderer,
		Definition: def,
	}
	a.Strategy = def.Strategy
	a.FadeInSpeed = def.FadeInSpeed
	a.FadeOutSpeed = def.FadeOutSpeed

	if b.Renderer == nil {
		log.Printf("Warning: %s affordance has no renderer, it will not animate", b.Control)
	} else {
		for _, m := range b.Renderer.Materials() {
			if m == nil {
				log.Printf("Warning: %s affordance has a nil material, skipping", b.Control)
				continue
			}
			ch := newChannel(p.Cloner, m, def, setup.HiddenMaterials)
			if ch != nil {
				a.Channels = append(a.Channels, ch)
			}
		}
	}
	a.Snap(false)

	components.Affordance.SetValue(entry, a)
	components.Tooltip.SetValue(entry, components.TooltipData{Control: b.Control})
	return entry
}

// setupBody clones every distinct body material once and fades the clones
// with the map's body definition.
func setupBody(proxy *donburi.Entry, setup ProxySetup) {
	p := components.Proxy.Get(proxy)
	body := components.Body.Get(proxy)
	def := setup.Map.Body

	body.Renderers = setup.Body
	body.Strategy = def.Strategy
	body.FadeInSpeed = def.FadeInSpeed
	body.FadeOutSpeed = def.FadeOutSpeed

	for i, r := range setup.Body {
		if r == nil {
			log.Printf("Warning: body renderer %d is nil, skipping", i)
			continue
		}
		for _, m := range r.Materials() {
			if m == nil {
				log.Printf("Warning: body renderer %d has a nil material, skipping", i)
				continue
			}
			if !components.Comparable(m) {
				log.Printf("Warning: body renderer %d material of type %T is not comparable, skipping", i, m)
				continue
			}
			if body.ChannelFor(m) != nil {
				continue
			}
			if ch := newChannel(p.Cloner, m, def, setup.HiddenMaterials); ch != nil {
				body.Bind(m, ch)
			}
		}
	}
	body.Snap(false)
}

func newChannel(cloner components.ResourceCloner, m components.Material, def cfg.AffordanceDefinition, hidden map[string]components.Material) *components.VisibilityChannel {
	var swapTo components.Material
	if def.Strategy == cfg.MaterialSwap {
		var ok bool
		if swapTo, ok = hidden[def.HiddenMaterial]; !ok || swapTo == nil {
			log.Printf("Warning: %s hidden material %q is missing, skipping", def.Control, def.HiddenMaterial)
			return nil
		}
	}

	s := cloner.CloneRenderResource(m)
	if s == nil {
		log.Printf("Warning: %s material could not be cloned, skipping", def.Control)
		return nil
	}

	switch def.Strategy {
	case cfg.AlphaFade:
		return components.NewAlphaChannel(s, def.HiddenAlpha)
	case cfg.MaterialSwap:
		return components.NewSwapChannel(s, swapTo)
	default:
		return components.NewColorChannel(s, def.HiddenRGBA())
	}
}
