package components

import (
	"image/color"
	"testing"

	cfg "github.com/automoto/proxyfeedback/config"
	"github.com/hajimehoshi/ebiten/v2"
)

type fakeSurface struct {
	color    ebiten.ColorScale
	material Material
	writes   int
}

func newFakeSurface(r, g, b, a float32) *fakeSurface {
	s := &fakeSurface{}
	s.color.SetR(r)
	s.color.SetG(g)
	s.color.SetB(b)
	s.color.SetA(a)
	return s
}

func (s *fakeSurface) Color() ebiten.ColorScale      { return s.color }
func (s *fakeSurface) SetColor(cs ebiten.ColorScale) { s.color = cs; s.writes++ }
func (s *fakeSurface) Material() Material            { return s.material }
func (s *fakeSurface) SetMaterial(m Material)        { s.material = m; s.writes++ }

func TestStepTowardConvergesAndStops(t *testing.T) {
	s := newFakeSurface(1, 1, 1, 1)
	ch := NewColorChannel(s, color.RGBA{})

	steps := 0
	for ch.StepToward(false, 4, 0.5, 0.25) {
		steps++
		if steps > 100 {
			t.Fatal("channel never converged")
		}
	}
	// 1.0 at 0.125 per step
	if steps != 8 {
		t.Errorf("expected 8 steps to converge, got %d", steps)
	}
	if !ch.Converged(false) {
		t.Fatalf("expected channel at hidden endpoint, got %v", ch.Current)
	}

	writes := s.writes
	for i := 0; i < 5; i++ {
		if ch.StepToward(false, 4, 0.5, 0.25) {
			t.Fatal("step after convergence reported a change")
		}
	}
	if s.writes != writes {
		t.Errorf("expected no surface writes after convergence, got %d more", s.writes-writes)
	}
	if ch.Current != (ChannelValue{}) {
		t.Errorf("expected transparent black, got %v", ch.Current)
	}
}

func TestStepTowardNeverOvershoots(t *testing.T) {
	s := newFakeSurface(1, 1, 1, 0.3)
	ch := NewAlphaChannel(s, 0)

	ch.StepToward(false, 1, 1, 0.25)
	if got := ch.Current[0]; got != 0.05 && (got < 0.0499 || got > 0.0501) {
		t.Fatalf("expected alpha near 0.05, got %v", got)
	}
	ch.StepToward(false, 1, 1, 0.25)
	if ch.Current[0] != 0 {
		t.Errorf("expected alpha clamped at 0, got %v", ch.Current[0])
	}
	if s.color.A() != 0 {
		t.Errorf("expected surface alpha 0, got %v", s.color.A())
	}
}

func TestAlphaChannelKeepsColor(t *testing.T) {
	s := newFakeSurface(0.5, 0.25, 1, 1)
	ch := NewAlphaChannel(s, 0)
	ch.ApplyTarget(false)

	if s.color.R() != 0.5 || s.color.G() != 0.25 || s.color.B() != 1 {
		t.Errorf("expected rgb untouched, got %v %v %v", s.color.R(), s.color.G(), s.color.B())
	}
	if s.color.A() != 0 {
		t.Errorf("expected alpha 0, got %v", s.color.A())
	}
}

func TestSwapChannel(t *testing.T) {
	s := newFakeSurface(1, 1, 1, 1)
	s.material = "lit"
	ch := NewSwapChannel(s, "ghost")

	if !ch.ApplyTarget(false) {
		t.Fatal("expected swap to report a change")
	}
	if s.material != "ghost" {
		t.Errorf("expected hidden material, got %v", s.material)
	}
	if ch.ApplyTarget(false) {
		t.Error("expected second swap to be a no-op")
	}
	ch.StepToward(true, 1, 1, 0.01)
	if s.material != "lit" {
		t.Errorf("expected original material, got %v", s.material)
	}
}

func TestColorFadeOutOverTwoUnits(t *testing.T) {
	s := newFakeSurface(1, 1, 1, 1)
	vs := VisualState{
		Strategy:     cfg.ColorFade,
		Channels:     []*VisibilityChannel{NewColorChannel(s, color.RGBA{})},
		FadeInSpeed:  4,
		FadeOutSpeed: 0.5,
	}
	vs.Snap(true)
	vs.SetVisible(false)

	for i := 0; i < 8; i++ {
		vs.Tick(0.25)
	}
	if got := 1 - s.color.A(); got != 1 {
		t.Errorf("expected alpha to drop by exactly 1.0, dropped by %v", got)
	}
	if vs.Channels[0].Current != (ChannelValue{}) {
		t.Errorf("expected hidden endpoint, got %v", vs.Channels[0].Current)
	}
}

func TestSetVisibleUnchangedIsNoop(t *testing.T) {
	s := newFakeSurface(1, 1, 1, 1)
	vs := VisualState{
		Strategy:     cfg.ColorFade,
		Channels:     []*VisibilityChannel{NewColorChannel(s, color.RGBA{})},
		FadeInSpeed:  1,
		FadeOutSpeed: 1,
	}
	vs.Snap(true)
	vs.SetVisible(true)
	if vs.Fading() {
		t.Error("expected no fade for an unchanged target")
	}
}

func TestSetVisibleReplacesFade(t *testing.T) {
	s := newFakeSurface(1, 1, 1, 1)
	vs := VisualState{
		Strategy:     cfg.ColorFade,
		Channels:     []*VisibilityChannel{NewColorChannel(s, color.RGBA{})},
		FadeInSpeed:  1,
		FadeOutSpeed: 1,
	}
	vs.Snap(true)
	vs.SetVisible(false)
	vs.Tick(0.5)
	first := vs.fade

	vs.SetVisible(true)
	if vs.fade == first {
		t.Fatal("expected the in-flight fade to be replaced")
	}
	vs.Tick(0.25)
	if got := vs.Channels[0].Current[3]; got != 0.75 {
		t.Errorf("expected the new fade to move alpha back up to 0.75, got %v", got)
	}
	for i := 0; i < 10; i++ {
		vs.Tick(0.25)
	}
	if vs.Fading() {
		t.Error("expected fade to finish")
	}
	if !vs.Channels[0].Converged(true) {
		t.Errorf("expected visible endpoint, got %v", vs.Channels[0].Current)
	}
}

func TestEmptyChannelsConvergeImmediately(t *testing.T) {
	vs := VisualState{Strategy: cfg.ColorFade, FadeInSpeed: 1, FadeOutSpeed: 1}
	vs.SetVisible(false)
	if vs.Fading() {
		t.Error("expected no fade without channels")
	}
	vs.SetVisible(true)
	vs.Tick(1)
	if !vs.Visible() {
		t.Error("expected visible target")
	}
}

func TestMaterialSwapHasNoFade(t *testing.T) {
	s := newFakeSurface(1, 1, 1, 1)
	s.material = "lit"
	vs := VisualState{
		Strategy: cfg.MaterialSwap,
		Channels: []*VisibilityChannel{NewSwapChannel(s, "ghost")},
	}
	vs.SetVisible(false)
	if vs.Fading() {
		t.Error("expected swap to apply without a fade")
	}
	if s.material != "ghost" {
		t.Errorf("expected hidden material, got %v", s.material)
	}
}

func TestZeroSpeedFadesInstantly(t *testing.T) {
	s := newFakeSurface(1, 1, 1, 1)
	vs := VisualState{
		Strategy: cfg.ColorFade,
		Channels: []*VisibilityChannel{NewColorChannel(s, color.RGBA{})},
	}
	vs.Snap(true)
	vs.SetVisible(false)
	vs.Tick(0.016)
	if vs.Fading() {
		t.Error("expected zero-speed fade to finish in one tick")
	}
	if s.color.A() != 0 {
		t.Errorf("expected alpha 0, got %v", s.color.A())
	}
}

type countingCloner struct {
	released int
}

func (c *countingCloner) CloneRenderResource(m Material) Surface { return newFakeSurface(1, 1, 1, 1) }
func (c *countingCloner) ReleaseResource(s Surface)              { c.released++ }

func TestReleaseOnce(t *testing.T) {
	c := &countingCloner{}
	vs := VisualState{
		Strategy: cfg.ColorFade,
		Channels: []*VisibilityChannel{
			NewColorChannel(newFakeSurface(1, 1, 1, 1), color.RGBA{}),
			NewColorChannel(newFakeSurface(1, 1, 1, 1), color.RGBA{}),
		},
	}
	vs.Release(c)
	vs.Release(c)
	if c.released != 2 {
		t.Errorf("expected 2 releases, got %d", c.released)
	}
}
