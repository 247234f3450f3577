package components

import (
	"image/color"

	cfg "github.com/automoto/proxyfeedback/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// ChannelValue holds up to four scalar components: RGBA for ColorFade, a lone
// alpha in slot 0 for AlphaFade.
type ChannelValue [4]float32

// VisibilityChannel is the fade state of one owned surface.
type VisibilityChannel struct {
	Surface  Surface
	Strategy cfg.VisibilityStrategy

	Original ChannelValue
	Hidden   ChannelValue
	Current  ChannelValue

	// MaterialSwap endpoints
	OriginalMaterial Material
	HiddenMaterial   Material
	showing          bool
}

// NewColorChannel binds a ColorFade channel to s, starting at its current color.
func NewColorChannel(s Surface, hidden color.RGBA) *VisibilityChannel {
	cs := s.Color()
	orig := ChannelValue{cs.R(), cs.G(), cs.B(), cs.A()}
	return &VisibilityChannel{
		Surface:  s,
		Strategy: cfg.ColorFade,
		Original: orig,
		Hidden: ChannelValue{
			float32(hidden.R) / 255,
			float32(hidden.G) / 255,
			float32(hidden.B) / 255,
			float32(hidden.A) / 255,
		},
		Current: orig,
		showing: true,
	}
}

// NewAlphaChannel binds an AlphaFade channel to s, starting at its current alpha.
func NewAlphaChannel(s Surface, hidden float32) *VisibilityChannel {
	a := s.Color().A()
	return &VisibilityChannel{
		Surface:  s,
		Strategy: cfg.AlphaFade,
		Original: ChannelValue{a},
		Hidden:   ChannelValue{hidden},
		Current:  ChannelValue{a},
		showing:  true,
	}
}

// NewSwapChannel binds a MaterialSwap channel to s. The surface's current
// material is the visible endpoint.
func NewSwapChannel(s Surface, hidden Material) *VisibilityChannel {
	return &VisibilityChannel{
		Surface:          s,
		Strategy:         cfg.MaterialSwap,
		OriginalMaterial: s.Material(),
		HiddenMaterial:   hidden,
		showing:          true,
	}
}

func (c *VisibilityChannel) size() int {
	if c.Strategy == cfg.AlphaFade {
		return 1
	}
	return 4
}

func (c *VisibilityChannel) target(visible bool) ChannelValue {
	if visible {
		return c.Original
	}
	return c.Hidden
}

// StepToward moves every component toward the visible or hidden endpoint by
// speed*dt without overshooting it, and writes the surface only if something
// moved. MaterialSwap channels swap immediately.
func (c *VisibilityChannel) StepToward(visible bool, fadeInSpeed, fadeOutSpeed, dt float32) (changed bool) {
	if c.Strategy == cfg.MaterialSwap {
		return c.ApplyTarget(visible)
	}

	speed := fadeOutSpeed
	if visible {
		speed = fadeInSpeed
	}
	step := speed * dt
	target := c.target(visible)

	for i := 0; i < c.size(); i++ {
		cur := c.Current[i]
		switch {
		case cur < target[i]:
			cur = min(cur+step, target[i])
		case cur > target[i]:
			cur = max(cur-step, target[i])
		}
		if cur != c.Current[i] {
			c.Current[i] = cur
			changed = true
		}
	}

	if changed {
		c.write()
	}
	return changed
}

// ApplyTarget jumps straight to the visible or hidden endpoint.
func (c *VisibilityChannel) ApplyTarget(visible bool) (changed bool) {
	if c.Strategy == cfg.MaterialSwap {
		if c.showing == visible {
			return false
		}
		c.showing = visible
		if c.Surface != nil {
			if visible {
				c.Surface.SetMaterial(c.OriginalMaterial)
			} else {
				c.Surface.SetMaterial(c.HiddenMaterial)
			}
		}
		return true
	}

	target := c.target(visible)
	if c.Current == target {
		return false
	}
	c.Current = target
	c.write()
	return true
}

// Converged reports whether the channel sits exactly on the given endpoint.
func (c *VisibilityChannel) Converged(visible bool) bool {
	if c.Strategy == cfg.MaterialSwap {
		return c.showing == visible
	}
	return c.Current == c.target(visible)
}

// write pushes Current to the surface
func (c *VisibilityChannel) write() {
	if c.Surface == nil {
		return
	}
	switch c.Strategy {
	case cfg.ColorFade:
		var cs ebiten.ColorScale
		cs.SetR(c.Current[0])
		cs.SetG(c.Current[1])
		cs.SetB(c.Current[2])
		cs.SetA(c.Current[3])
		c.Surface.SetColor(cs)
	case cfg.AlphaFade:
		cs := c.Surface.Color()
		cs.SetA(c.Current[0])
		c.Surface.SetColor(cs)
	}
}

// FadeProcess is a resumable fade toward one endpoint, advanced once per tick.
type FadeProcess struct {
	visible bool
	fadeIn  float32
	fadeOut float32

	// Progress runs from 0 to cfg.Fade.Overshoot at the fade speed; nil means
	// the fade is instantaneous.
	progress *gween.Tween
	done     bool
}

func newFadeProcess(visible bool, fadeIn, fadeOut float64) *FadeProcess {
	p := &FadeProcess{
		visible: visible,
		fadeIn:  float32(fadeIn),
		fadeOut: float32(fadeOut),
	}
	speed := p.fadeOut
	if visible {
		speed = p.fadeIn
	}
	if speed > 0 {
		p.progress = gween.New(0, cfg.Fade.Overshoot, cfg.Fade.Overshoot/speed, ease.Linear)
	}
	return p
}

// Step advances the fade by dt seconds and reports whether it has finished.
func (p *FadeProcess) Step(channels []*VisibilityChannel, dt float64) bool {
	if p.done {
		return true
	}

	finished := true
	if p.progress != nil {
		_, finished = p.progress.Update(float32(dt))
	}

	converged := true
	for _, ch := range channels {
		if p.progress != nil {
			ch.StepToward(p.visible, p.fadeIn, p.fadeOut, float32(dt))
		}
		if !ch.Converged(p.visible) {
			converged = false
		}
	}

	if !converged && finished {
		for _, ch := range channels {
			ch.ApplyTarget(p.visible)
		}
		converged = true
	}

	p.done = converged
	return p.done
}

// VisualState owns the channels of one affordance (or of the body) and the
// single fade process currently driving them.
type VisualState struct {
	Strategy     cfg.VisibilityStrategy
	Channels     []*VisibilityChannel
	FadeInSpeed  float64
	FadeOutSpeed float64

	visible     bool
	initialized bool
	fade        *FadeProcess
}

// Visible returns the endpoint the state is showing or moving toward
func (s *VisualState) Visible() bool {
	return s.visible
}

// Fading reports whether a fade process is in flight
func (s *VisualState) Fading() bool {
	return s.fade != nil
}

// SetVisible retargets the state. An in-flight fade is dropped and replaced,
// never queued behind the new one.
func (s *VisualState) SetVisible(v bool) {
	if s.initialized && s.visible == v {
		return
	}
	s.visible = v
	s.initialized = true
	s.fade = nil

	if len(s.Channels) == 0 {
		return
	}

	if s.Strategy == cfg.MaterialSwap {
		for _, ch := range s.Channels {
			ch.ApplyTarget(v)
		}
		return
	}

	scale := cfg.Feedback.FadeSpeedScale
	if scale <= 0 {
		scale = 1
	}
	s.fade = newFadeProcess(v, s.FadeInSpeed*scale, s.FadeOutSpeed*scale)
}

// Snap jumps straight to an endpoint with no fade. Used at setup.
func (s *VisualState) Snap(v bool) {
	s.visible = v
	s.initialized = true
	s.fade = nil
	for _, ch := range s.Channels {
		ch.ApplyTarget(v)
	}
}

// Tick advances the in-flight fade, if any.
func (s *VisualState) Tick(dt float64) {
	if s.fade == nil {
		return
	}
	if s.fade.Step(s.Channels, dt) {
		s.fade = nil
	}
}

// Release hands every owned surface back to the cloner. Safe to call twice.
func (s *VisualState) Release(cloner ResourceCloner) {
	s.fade = nil
	for _, ch := range s.Channels {
		if ch.Surface != nil && cloner != nil {
			cloner.ReleaseResource(ch.Surface)
		}
		ch.Surface = nil
	}
	s.Channels = nil
}
