package assets

import (
	"github.com/automoto/proxyfeedback/components"
	cfg "github.com/automoto/proxyfeedback/config"
)

// Part is one piece of the demo controller model, laid out in screen pixels
// relative to the proxy center.
type Part struct {
	Name       string
	X, Y, W, H float64
	Mats       []components.Material

	Highlight components.HighlightData
}

func (p *Part) Materials() []components.Material {
	return p.Mats
}

// ControllerModel is the flat demo model: a body made of shell parts and the
// affordance parts bound to controls.
type ControllerModel struct {
	Body    []*Part
	Buttons map[cfg.Control]*Part
}

// NewControllerModel lays out the demo controller using materials from lib.
func NewControllerModel(lib *Library, width, height, button float64) *ControllerModel {
	shell := lib.Add("shell", cfg.Demo.BodyColor)
	rubber := lib.Add("rubber", cfg.Demo.RubberColor)
	lib.Add("ghost", cfg.Demo.GhostColor)

	m := &ControllerModel{
		Body: []*Part{
			{Name: "shell", X: -width / 2, Y: -height / 2, W: width, H: height * 0.6, Mats: []components.Material{shell}},
			{Name: "handle", X: -width / 4, Y: height * 0.1, W: width / 2, H: height * 0.4, Mats: []components.Material{shell, rubber}},
		},
		Buttons: make(map[cfg.Control]*Part),
	}

	add := func(c cfg.Control, x, y, w, h float64) {
		name := c.String()
		mat := lib.Add(name, cfg.Demo.ButtonColors[c])
		m.Buttons[c] = &Part{Name: name, X: x, Y: y, W: w, H: h, Mats: []components.Material{mat}}
	}
	add(cfg.Trigger, width/2-button/2, -height/2+button/2, button/2, button*1.5)
	add(cfg.Grip, -width/2-button/4, height*0.15, button/2, button*2)
	add(cfg.PrimaryButton, -button*1.2, -height/2+button*2.4, button, button)
	add(cfg.SecondaryButton, button*0.2, -height/2+button*2.4, button, button)
	add(cfg.Joystick, -button/2, -height/2+button*0.6, button, button)
	add(cfg.Menu, -button/4, -height/2+button*3.8, button/2, button/2)
	return m
}

// TickHighlight advances the highlight pulse and expiry of the part
func (p *Part) TickHighlight(dt float64) bool {
	return p.Highlight.Tick(dt)
}

// PartHighlighter highlights demo parts by flagging them for the outline
// shader. Targets that are not parts are ignored.
type PartHighlighter struct{}

func (PartHighlighter) SetHighlight(target components.Renderer, enabled bool, source any, override components.Material, duration float64) {
	part, ok := target.(*Part)
	if !ok || part == nil {
		return
	}
	if !enabled {
		part.Highlight = components.HighlightData{}
		return
	}
	part.Highlight = components.HighlightData{
		Enabled:   true,
		Source:    source,
		Override:  override,
		Remaining: duration,
	}
}
