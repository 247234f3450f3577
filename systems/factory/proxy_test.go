package factory_test

import (
	"errors"
	"testing"

	"github.com/automoto/proxyfeedback/components"
	cfg "github.com/automoto/proxyfeedback/config"
	"github.com/automoto/proxyfeedback/systems"
	"github.com/automoto/proxyfeedback/systems/factory"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

type surface struct {
	color    ebiten.ColorScale
	material components.Material
}

func (s *surface) Color() ebiten.ColorScale          { return s.color }
func (s *surface) SetColor(cs ebiten.ColorScale)     { s.color = cs }
func (s *surface) Material() components.Material     { return s.material }
func (s *surface) SetMaterial(m components.Material) { s.material = m }

type material struct {
	name string
}

type renderer []components.Material

func (r renderer) Materials() []components.Material { return r }

type cloner struct {
	clones   []*surface
	released map[components.Surface]int
}

func (c *cloner) CloneRenderResource(m components.Material) components.Surface {
	s := &surface{material: m}
	c.clones = append(c.clones, s)
	return s
}

func (c *cloner) ReleaseResource(s components.Surface) {
	if c.released == nil {
		c.released = make(map[components.Surface]int)
	}
	c.released[s]++
}

func newProxy(c *cloner) (*ecs.ECS, *donburi.Entry) {
	e := ecs.NewECS(donburi.NewWorld())
	proxy := factory.CreateProxy(e, cfg.RightHand, components.Transform{}, components.Collaborators{Cloner: c})
	return e, proxy
}

func TestSetupInvalid(t *testing.T) {
	tests := []struct {
		name  string
		setup factory.ProxySetup
	}{
		{"no map", factory.ProxySetup{
			Affordances: []factory.AffordanceBinding{{Control: cfg.Trigger, Renderer: renderer{&material{}}}},
		}},
		{"no affordances", factory.ProxySetup{Map: cfg.DefaultAffordanceMap()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, proxy := newProxy(&cloner{})
			err := factory.SetupProxy(e, proxy, tt.setup)
			if !errors.Is(err, factory.ErrSetupInvalid) {
				t.Fatalf("expected ErrSetupInvalid, got %v", err)
			}
			p := components.Proxy.Get(proxy)
			if p.Active || p.SetUp || !p.Invalid {
				t.Error("expected an inert proxy")
			}

			// inert: requests are ignored, retries are rejected
			r := &components.FeedbackRequest{Control: cfg.Trigger}
			systems.AddFeedbackRequest(proxy, r)
			if components.FeedbackQueue.Get(proxy).Contains(r) {
				t.Error("expected an invalid proxy to ignore requests")
			}
			if err := factory.SetupProxy(e, proxy, tt.setup); !errors.Is(err, factory.ErrSetupInvalid) {
				t.Errorf("expected retry rejected, got %v", err)
			}
		})
	}
}

func TestSetupWithoutCloner(t *testing.T) {
	e := ecs.NewECS(donburi.NewWorld())
	proxy := factory.CreateProxy(e, cfg.LeftHand, components.IdentityTransform(), components.Collaborators{})
	err := factory.SetupProxy(e, proxy, factory.ProxySetup{
		Map:         cfg.DefaultAffordanceMap(),
		Affordances: []factory.AffordanceBinding{{Control: cfg.Grip}},
	})
	if !errors.Is(err, factory.ErrSetupInvalid) {
		t.Errorf("expected ErrSetupInvalid, got %v", err)
	}
}

func TestDuplicateSetupKeepsState(t *testing.T) {
	c := &cloner{}
	e, proxy := newProxy(c)
	setup := factory.ProxySetup{
		Map:         cfg.DefaultAffordanceMap(),
		Affordances: []factory.AffordanceBinding{{Control: cfg.Trigger, Renderer: renderer{&material{"t"}}}},
	}
	if err := factory.SetupProxy(e, proxy, setup); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	first := components.Proxy.Get(proxy).Affordances

	setup.Affordances = append(setup.Affordances, factory.AffordanceBinding{Control: cfg.Grip, Renderer: renderer{&material{"g"}}})
	if err := factory.SetupProxy(e, proxy, setup); !errors.Is(err, factory.ErrDuplicateSetup) {
		t.Fatalf("expected ErrDuplicateSetup, got %v", err)
	}
	p := components.Proxy.Get(proxy)
	if len(p.Affordances) != 1 || p.Affordances[0] != first[0] {
		t.Error("expected the original affordances retained")
	}
	if len(c.clones) != 1 {
		t.Errorf("expected no clones from the rejected setup, got %d", len(c.clones))
	}
}

func TestSharedControlGetsIndependentChannels(t *testing.T) {
	c := &cloner{}
	e, proxy := newProxy(c)
	shared := &material{"grip"}
	err := factory.SetupProxy(e, proxy, factory.ProxySetup{
		Map: cfg.DefaultAffordanceMap(),
		Affordances: []factory.AffordanceBinding{
			{Control: cfg.Grip, Renderer: renderer{shared}},
			{Control: cfg.Grip, Renderer: renderer{shared}},
		},
	})
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	p := components.Proxy.Get(proxy)
	a := components.Affordance.Get(p.Affordances[0])
	b := components.Affordance.Get(p.Affordances[1])
	if a.Channels[0] == b.Channels[0] || a.Channels[0].Surface == b.Channels[0].Surface {
		t.Error("expected each affordance to own its channel")
	}

	a.Definition.FadeInSpeed = 99
	if b.Definition.FadeInSpeed == 99 {
		t.Error("expected definitions to be private copies")
	}
}

func TestBodyChannelsKeyedByMaterial(t *testing.T) {
	c := &cloner{}
	e, proxy := newProxy(c)
	shell := &material{"shell"}
	glass := &material{"glass"}
	err := factory.SetupProxy(e, proxy, factory.ProxySetup{
		Map:         cfg.DefaultAffordanceMap(),
		Affordances: []factory.AffordanceBinding{{Control: cfg.Trigger, Renderer: renderer{&material{"t"}}}},
		Body: []components.Renderer{
			renderer{shell, glass},
			renderer{shell, nil},
			nil,
		},
	})
	if err != nil {
		t.Fatalf("nil body resources must not abort setup: %v", err)
	}

	body := components.Body.Get(proxy)
	if len(body.Channels) != 2 {
		t.Fatalf("expected one channel per distinct material, got %d", len(body.Channels))
	}
	if body.ChannelFor(shell) == nil || body.ChannelFor(glass) == nil {
		t.Error("expected channels for shell and glass")
	}
	if body.Strategy != cfg.AlphaFade {
		t.Errorf("expected body to use the map's body strategy, got %s", body.Strategy)
	}
	if body.Visible() {
		t.Error("expected body hidden after setup")
	}
}

func TestBodySkipsUncomparableMaterial(t *testing.T) {
	c := &cloner{}
	e, proxy := newProxy(c)
	shell := &material{"shell"}
	err := factory.SetupProxy(e, proxy, factory.ProxySetup{
		Map:         cfg.DefaultAffordanceMap(),
		Affordances: []factory.AffordanceBinding{{Control: cfg.Trigger, Renderer: renderer{&material{"t"}}}},
		Body: []components.Renderer{
			renderer{[]string{"skin"}, shell},
			renderer{[]string{"skin"}},
		},
	})
	if err != nil {
		t.Fatalf("an uncomparable material must not abort setup: %v", err)
	}

	body := components.Body.Get(proxy)
	if len(body.Channels) != 1 || body.ChannelFor(shell) == nil {
		t.Fatalf("expected only the shell channel, got %d channels", len(body.Channels))
	}
	if body.ChannelFor([]string{"skin"}) != nil {
		t.Error("expected no channel for an uncomparable material")
	}
}

func TestMaterialSwapMissingHiddenMaterial(t *testing.T) {
	m, err := cfg.ParseAffordanceMap([]byte(`
affordances:
  - control: menu
    strategy: materialSwap
    hiddenMaterial: ghost
`))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	c := &cloner{}
	e, proxy := newProxy(c)
	menu := &material{"menu"}
	ghost := &material{"ghost"}
	err = factory.SetupProxy(e, proxy, factory.ProxySetup{
		Map: m,
		Affordances: []factory.AffordanceBinding{
			{Control: cfg.Menu, Renderer: renderer{menu}},
		},
		HiddenMaterials: map[string]components.Material{"ghost": ghost},
	})
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	a := components.Affordance.Get(components.Proxy.Get(proxy).Affordances[0])
	if len(a.Channels) != 1 {
		t.Fatalf("expected one swap channel, got %d", len(a.Channels))
	}
	if got := a.Channels[0].Surface.Material(); got != ghost {
		t.Errorf("expected affordance to start on the hidden material, got %v", got)
	}

	systems.AddFeedbackRequest(proxy, &components.FeedbackRequest{Control: cfg.Menu})
	if got := a.Channels[0].Surface.Material(); got != menu {
		t.Errorf("expected the swap to show the original material at once, got %v", got)
	}
}

func TestTeardownReleasesOnce(t *testing.T) {
	c := &cloner{}
	e, proxy := newProxy(c)
	err := factory.SetupProxy(e, proxy, factory.ProxySetup{
		Map: cfg.DefaultAffordanceMap(),
		Affordances: []factory.AffordanceBinding{
			{Control: cfg.Trigger, Renderer: renderer{&material{"t"}}},
			{Control: cfg.Grip, Renderer: renderer{&material{"g"}, &material{"g2"}}},
		},
		Body: []components.Renderer{renderer{&material{"shell"}}},
	})
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	systems.AddFeedbackRequest(proxy, &components.FeedbackRequest{Control: cfg.Trigger, TooltipText: "Fire"})
	affordances := components.Proxy.Get(proxy).Affordances

	systems.TeardownProxy(proxy)
	systems.TeardownProxy(proxy)

	if len(c.clones) != 4 {
		t.Fatalf("expected 4 clones, got %d", len(c.clones))
	}
	for _, s := range c.clones {
		if n := c.released[s]; n != 1 {
			t.Errorf("expected clone of %v released once, got %d", s.material, n)
		}
	}
	for _, entry := range affordances {
		if entry.Valid() {
			t.Error("expected affordance entities removed")
		}
	}

	p := components.Proxy.Get(proxy)
	if !p.Released || p.Active {
		t.Error("expected a released, inactive proxy")
	}
	r := &components.FeedbackRequest{Control: cfg.Trigger}
	systems.AddFeedbackRequest(proxy, r)
	if components.FeedbackQueue.Get(proxy).Contains(r) {
		t.Error("expected a released proxy to ignore requests")
	}
}

func TestTeardownOfInvalidProxyDropsQueuedRequests(t *testing.T) {
	e, proxy := newProxy(&cloner{})
	systems.AddFeedbackRequest(proxy, &components.FeedbackRequest{Control: cfg.Trigger})
	systems.AddShakeRequest(proxy)

	if err := factory.SetupProxy(e, proxy, factory.ProxySetup{}); !errors.Is(err, factory.ErrSetupInvalid) {
		t.Fatalf("expected ErrSetupInvalid, got %v", err)
	}
	systems.TeardownProxy(proxy)

	q := components.FeedbackQueue.Get(proxy)
	if len(q.Requests) != 0 || q.ShakeLocked() {
		t.Errorf("expected an empty queue after teardown, got %d requests", len(q.Requests))
	}
}

func TestSetupAfterTeardownIsRejected(t *testing.T) {
	e, proxy := newProxy(&cloner{})
	systems.TeardownProxy(proxy)

	err := factory.SetupProxy(e, proxy, factory.ProxySetup{
		Map:         cfg.DefaultAffordanceMap(),
		Affordances: []factory.AffordanceBinding{{Control: cfg.Trigger, Renderer: renderer{&material{}}}},
	})
	if !errors.Is(err, factory.ErrSetupInvalid) {
		t.Fatalf("expected ErrSetupInvalid, got %v", err)
	}
	if components.Proxy.Get(proxy).Active {
		t.Error("expected a released proxy to stay inactive")
	}
}
