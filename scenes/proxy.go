package scenes

import (
	"log"
	"sync"

	"github.com/automoto/proxyfeedback/assets"
	"github.com/automoto/proxyfeedback/components"
	cfg "github.com/automoto/proxyfeedback/config"
	"github.com/automoto/proxyfeedback/systems"
	"github.com/automoto/proxyfeedback/systems/factory"
	"github.com/automoto/proxyfeedback/ui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/kvartborg/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// Seconds the left hand waits before its model is bound, so requests queued
// in the meantime show up once it activates.
const lateSetupDelay = 1.5

type pendingSetup struct {
	proxy *donburi.Entry
	setup factory.ProxySetup
	delay float64
}

// ProxyScene shows both hand proxies and drives them from the keyboard or a
// gamepad.
type ProxyScene struct {
	ecs     *ecs.ECS
	library *assets.Library
	pending []pendingSetup
	prefsUI *ui.PreferencesUI
	once    sync.Once
}

func NewProxyScene() *ProxyScene {
	return &ProxyScene{}
}

func (ps *ProxyScene) Update() {
	ps.once.Do(ps.configure)
	ps.ecs.Update()
	ps.runPendingSetups(systems.ClockDelta(ps.ecs))

	if ps.preferencesOpen() {
		ps.prefsUI.Update()
	}
}

// preferencesOpen reports whether the viewer opened the preferences panel
func (ps *ProxyScene) preferencesOpen() bool {
	entry, ok := components.Demo.First(ps.ecs.World)
	return ok && components.Demo.Get(entry).PreferencesOpen
}

func (ps *ProxyScene) Draw(screen *ebiten.Image) {
	// Always clear screen to prevent white flashes from OS window background
	screen.Fill(cfg.Demo.BackgroundColor)

	if ps.ecs == nil {
		return
	}
	ps.ecs.Draw(screen)

	if ps.preferencesOpen() {
		ps.prefsUI.Draw(screen)
	}
}

// Close tears down every proxy and hands its surfaces back to the library.
func (ps *ProxyScene) Close() {
	if ps.ecs == nil {
		return
	}
	var proxies []*donburi.Entry
	components.Proxy.Each(ps.ecs.World, func(e *donburi.Entry) {
		proxies = append(proxies, e)
	})
	for _, e := range proxies {
		systems.TeardownProxy(e)
	}
	if live := ps.library.Live(); live != 0 {
		log.Printf("Warning: %d surfaces still live after teardown", live)
	}
}

func (ps *ProxyScene) configure() {
	if err := assets.LoadShaders(); err != nil {
		log.Printf("Warning: highlight shader unavailable, using outlines: %v", err)
	}

	affordanceMap, err := assets.LoadControllerMap(cfg.Demo.AffordanceMap)
	if err != nil {
		log.Printf("Warning: could not load affordance map %q, using defaults: %v", cfg.Demo.AffordanceMap, err)
		affordanceMap = cfg.DefaultAffordanceMap()
	}

	ecs := ecs.NewECS(donburi.NewWorld())

	ecs.AddSystem(systems.UpdateInput)
	ecs.AddSystem(systems.UpdateClock)
	ecs.AddSystem(systems.UpdateDemo)
	ecs.AddSystem(systems.UpdateProxies)
	ecs.AddSystem(systems.UpdateEffects)

	ecs.AddRenderer(cfg.Default, systems.DrawProxies)
	ecs.AddRenderer(cfg.Overlay, systems.DrawTooltips)
	ecs.AddRenderer(cfg.Overlay, systems.DrawHUD)

	ps.ecs = ecs
	ps.library = assets.NewLibrary()
	ps.prefsUI = ui.NewPreferencesUI(func() {
		if entry, ok := components.Demo.First(ps.ecs.World); ok {
			components.Demo.Get(entry).PreferencesOpen = false
		}
	})

	viewer := &systems.FixedViewer{Pos: vector.Vector{0, 0, -cfg.Demo.ViewerDistance}}
	board := systems.NewTooltipBoard()

	for _, node := range []cfg.Node{cfg.LeftHand, cfg.RightHand} {
		x := cfg.Demo.HandSpacing
		if node == cfg.LeftHand {
			x = -x
		}
		model := assets.NewControllerModel(ps.library, cfg.Demo.ProxyWidth, cfg.Demo.ProxyHeight, cfg.Demo.AffordanceSize)
		collab := components.Collaborators{
			Cloner:            ps.library,
			Highlighter:       assets.PartHighlighter{},
			Tooltips:          board,
			Viewer:            viewer,
			HighlightMaterial: ps.library.Get("shell"),
		}
		proxy := factory.CreateProxy(ps.ecs, node, systems.TransformFromAngles(vector.Vector{x, 0, 0}, 0, 0), collab)

		setup := factory.ProxySetup{
			Map:             affordanceMap,
			Body:            bodyRenderers(model),
			HiddenMaterials: ps.library.Named(),
		}
		for c := cfg.Trigger; c < cfg.ControlCount; c++ {
			if part, ok := model.Buttons[c]; ok {
				setup.Affordances = append(setup.Affordances, factory.AffordanceBinding{Control: c, Renderer: part})
			}
		}

		if node == cfg.LeftHand {
			ps.pending = append(ps.pending, pendingSetup{proxy: proxy, setup: setup, delay: lateSetupDelay})
			continue
		}
		if err := factory.SetupProxy(ps.ecs, proxy, setup); err != nil {
			log.Printf("Warning: %s proxy setup failed: %v", node, err)
		}
	}
}

// runPendingSetups binds the models whose delay ran out
func (ps *ProxyScene) runPendingSetups(dt float64) {
	kept := ps.pending[:0]
	for _, p := range ps.pending {
		p.delay -= dt
		if p.delay > 0 {
			kept = append(kept, p)
			continue
		}
		if err := factory.SetupProxy(ps.ecs, p.proxy, p.setup); err != nil {
			log.Printf("Warning: delayed proxy setup failed: %v", err)
		}
	}
	ps.pending = kept
}

func bodyRenderers(m *assets.ControllerModel) []components.Renderer {
	out := make([]components.Renderer, 0, len(m.Body))
	for _, p := range m.Body {
		out = append(out, p)
	}
	return out
}
