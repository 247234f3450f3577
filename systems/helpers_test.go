package systems_test

import (
	"math"
	"testing"

	"github.com/automoto/proxyfeedback/components"
	cfg "github.com/automoto/proxyfeedback/config"
	"github.com/automoto/proxyfeedback/systems"
	"github.com/automoto/proxyfeedback/systems/factory"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/kvartborg/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

type fakeSurface struct {
	color    ebiten.ColorScale
	material components.Material
}

func (s *fakeSurface) Color() ebiten.ColorScale          { return s.color }
func (s *fakeSurface) SetColor(cs ebiten.ColorScale)     { s.color = cs }
func (s *fakeSurface) Material() components.Material     { return s.material }
func (s *fakeSurface) SetMaterial(m components.Material) { s.material = m }

type fakeMaterial struct {
	name string
}

type fakeRenderer struct {
	materials []components.Material
}

func (r *fakeRenderer) Materials() []components.Material { return r.materials }

type fakeCloner struct {
	cloned   int
	released map[components.Surface]int
}

func (c *fakeCloner) CloneRenderResource(m components.Material) components.Surface {
	c.cloned++
	return &fakeSurface{material: m}
}

func (c *fakeCloner) ReleaseResource(s components.Surface) {
	if c.released == nil {
		c.released = make(map[components.Surface]int)
	}
	c.released[s]++
}

type highlightCall struct {
	target   components.Renderer
	enabled  bool
	duration float64
}

type fakeHighlighter struct {
	calls []highlightCall
	state map[components.Renderer]bool
}

func (h *fakeHighlighter) SetHighlight(target components.Renderer, enabled bool, source any, override components.Material, duration float64) {
	if h.state == nil {
		h.state = make(map[components.Renderer]bool)
	}
	h.calls = append(h.calls, highlightCall{target: target, enabled: enabled, duration: duration})
	h.state[target] = enabled
}

type tooltipCall struct {
	text      string
	duration  float64
	placement components.TooltipPlacement
}

type fakeTooltips struct {
	shows []tooltipCall
	hides int
	shown map[*components.TooltipData]string
}

func (d *fakeTooltips) ShowTooltip(t *components.TooltipData, enabled bool, duration float64, p components.TooltipPlacement) {
	if d.shown == nil {
		d.shown = make(map[*components.TooltipData]string)
	}
	d.shows = append(d.shows, tooltipCall{text: t.Text, duration: duration, placement: p})
	d.shown[t] = t.Text
}

func (d *fakeTooltips) HideTooltip(t *components.TooltipData, enabled bool) {
	d.hides++
	delete(d.shown, t)
}

// text returns the tooltip text currently shown for control, or "".
func (d *fakeTooltips) text(f *fixture, control cfg.Control) string {
	for _, entry := range components.Proxy.Get(f.proxy).Affordances {
		if components.Affordance.Get(entry).Control == control {
			return d.shown[components.Tooltip.Get(entry)]
		}
	}
	return ""
}

type fakeViewer struct {
	pos vector.Vector
}

func (v *fakeViewer) ViewerPosition() vector.Vector { return v.pos }

type fixture struct {
	ecs     *ecs.ECS
	proxy   *donburi.Entry
	cloner  *fakeCloner
	high    *fakeHighlighter
	tips    *fakeTooltips
	viewer  *fakeViewer
	trigger *fakeRenderer
	grip    *fakeRenderer
	body    []components.Renderer
	shell   *fakeMaterial
}

// newFixture creates a left-hand proxy with trigger and grip affordances and
// a two-part body sharing one material. The proxy is not set up yet.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		ecs:     ecs.NewECS(donburi.NewWorld()),
		cloner:  &fakeCloner{},
		high:    &fakeHighlighter{},
		tips:    &fakeTooltips{},
		viewer:  &fakeViewer{pos: vector.Vector{0, 0, -1}},
		trigger: &fakeRenderer{materials: []components.Material{&fakeMaterial{"trigger"}}},
		grip:    &fakeRenderer{materials: []components.Material{&fakeMaterial{"grip"}}},
		shell:   &fakeMaterial{"shell"},
	}
	f.body = []components.Renderer{
		&fakeRenderer{materials: []components.Material{f.shell}},
		&fakeRenderer{materials: []components.Material{f.shell, nil}},
	}
	f.proxy = factory.CreateProxy(f.ecs, cfg.LeftHand, components.IdentityTransform(), components.Collaborators{
		Cloner:      f.cloner,
		Highlighter: f.high,
		Tooltips:    f.tips,
		Viewer:      f.viewer,
	})
	return f
}

func (f *fixture) setup(t *testing.T) {
	t.Helper()
	err := factory.SetupProxy(f.ecs, f.proxy, factory.ProxySetup{
		Map: cfg.DefaultAffordanceMap(),
		Affordances: []factory.AffordanceBinding{
			{Control: cfg.Trigger, Renderer: f.trigger},
			{Control: cfg.Grip, Renderer: f.grip},
		},
		Body: f.body,
	})
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}
}

func newSetUpFixture(t *testing.T) *fixture {
	t.Helper()
	f := newFixture(t)
	f.setup(t)
	return f
}

func (f *fixture) affordance(control cfg.Control) *components.AffordanceData {
	for _, entry := range components.Proxy.Get(f.proxy).Affordances {
		if a := components.Affordance.Get(entry); a.Control == control {
			return a
		}
	}
	return nil
}

func (f *fixture) proxyData() *components.ProxyData {
	return components.Proxy.Get(f.proxy)
}

// advance steps the proxy in fixed increments of dt for about seconds.
func (f *fixture) advance(seconds, dt float64) {
	n := int(math.Round(seconds / dt))
	for i := 0; i < n; i++ {
		systems.StepProxy(f.proxy, dt)
	}
}
