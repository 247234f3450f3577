package systems

import (
	"math"

	"github.com/automoto/proxyfeedback/assets"
	"github.com/automoto/proxyfeedback/components"
	cfg "github.com/automoto/proxyfeedback/config"
	"github.com/automoto/proxyfeedback/fonts"
	"github.com/automoto/proxyfeedback/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	drawOp   = &ebiten.DrawImageOptions{}
	shaderOp = &ebiten.DrawRectShaderOptions{}
)

// Outline width of the highlight shader in pixels
const highlightBorder = 3.0

// screenFrame maps proxy-local pixel coordinates onto the screen. Scale
// foreshortens the flat model as the proxy turns away from the viewer.
type screenFrame struct {
	cx, cy float64
	sx, sy float64
}

func (f screenFrame) rect(p *assets.Part) (x, y, w, h float64) {
	return f.cx + p.X*f.sx, f.cy + p.Y*f.sy, p.W * f.sx, p.H * f.sy
}

func proxyFrame(e *donburi.Entry, screen *ebiten.Image) screenFrame {
	p := components.Proxy.Get(e)
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	dx, dy := ShakeOffset(e)

	f := screenFrame{
		cx: float64(w)/2 + dx,
		cy: float64(h)/2 + dy,
		sx: 1,
		sy: 1,
	}
	if len(p.Position) == 3 {
		f.cx += p.Position[0] * cfg.Demo.PixelsPerUnit
		f.cy -= p.Position[1] * cfg.Demo.PixelsPerUnit
	}
	if len(p.Right) == 3 && len(p.Up) == 3 {
		f.sx = math.Max(math.Abs(p.Right[0]), 0.2)
		f.sy = math.Max(math.Abs(p.Up[1]), 0.2)
	}
	return f
}

// DrawProxies renders the body, the affordances and the highlight outlines
// of every proxy.
func DrawProxies(ecs *ecs.ECS, screen *ebiten.Image) {
	tags.Proxy.Each(ecs.World, func(e *donburi.Entry) {
		p := components.Proxy.Get(e)
		if !p.SetUp || p.Released {
			return
		}
		f := proxyFrame(e, screen)

		body := components.Body.Get(e)
		for _, r := range p.BodyRenderers {
			part, ok := r.(*assets.Part)
			if !ok {
				continue
			}
			for i, m := range part.Mats {
				if ch := body.ChannelFor(m); ch != nil {
					drawBand(screen, f, part, i, ch.Surface)
				}
			}
		}

		for _, entry := range p.Affordances {
			if !entry.Valid() {
				continue
			}
			a := components.Affordance.Get(entry)
			part, ok := a.Renderer.(*assets.Part)
			if !ok {
				continue
			}
			for i, ch := range a.Channels {
				drawBand(screen, f, part, i, ch.Surface)
			}
			if part.Highlight.Enabled {
				drawHighlight(screen, f, part)
			}
		}
	})
}

// drawBand draws material i of part as one horizontal band of the part,
// tinted by the owned surface.
func drawBand(screen *ebiten.Image, f screenFrame, part *assets.Part, i int, rs components.Surface) {
	s, ok := rs.(*assets.Surface)
	if !ok || s == nil || s.Current() == nil {
		return
	}
	n := max(len(part.Mats), 1)
	x, y, w, h := f.rect(part)
	bandH := h / float64(n)

	c := s.Color()
	drawOp.GeoM.Reset()
	drawOp.ColorScale.Reset()
	drawOp.GeoM.Scale(w, bandH)
	drawOp.GeoM.Translate(x, y+bandH*float64(i))
	// Surface colors are straight alpha; draw colors are premultiplied
	drawOp.ColorScale.Scale(c.R()*c.A(), c.G()*c.A(), c.B()*c.A(), c.A())
	screen.DrawImage(s.Current().Image(), drawOp)
}

func drawHighlight(screen *ebiten.Image, f screenFrame, part *assets.Part) {
	x, y, w, h := f.rect(part)
	x -= highlightBorder
	y -= highlightBorder
	w += 2 * highlightBorder
	h += 2 * highlightBorder

	if assets.HighlightShader == nil {
		hc := cfg.Highlight.Color
		vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), highlightBorder, hc, false)
		return
	}

	hc := cfg.Highlight.Color
	shaderOp.GeoM.Reset()
	shaderOp.GeoM.Translate(x, y)
	shaderOp.Uniforms = map[string]any{
		"Time":   float32(part.Highlight.Elapsed * cfg.Highlight.PulseSpeed),
		"Color":  []float32{float32(hc.R) / 255, float32(hc.G) / 255, float32(hc.B) / 255, float32(hc.A) / 255},
		"Border": float32(highlightBorder),
		"Origin": []float32{float32(x), float32(y)},
		"Size":   []float32{float32(w), float32(h)},
	}
	screen.DrawRectShader(int(math.Ceil(w)), int(math.Ceil(h)), assets.HighlightShader, shaderOp)
}

// DrawTooltips renders the tooltips the display was asked to show with
// tooltips enabled, at their current (possibly sliding) offset.
func DrawTooltips(ecs *ecs.ECS, screen *ebiten.Image) {
	face := fonts.Tooltip.Get()

	tags.Proxy.Each(ecs.World, func(e *donburi.Entry) {
		p := components.Proxy.Get(e)
		board, ok := p.Tooltips.(*TooltipBoard)
		if !ok || !p.SetUp || p.Released {
			return
		}
		f := proxyFrame(e, screen)

		for _, entry := range p.Affordances {
			if !entry.Valid() {
				continue
			}
			t := components.Tooltip.Get(entry)
			if !board.Drawn(t) || t.Text == "" {
				continue
			}
			part, ok := components.Affordance.Get(entry).Renderer.(*assets.Part)
			if !ok {
				continue
			}

			x, y, w, h := f.rect(part)
			ax, ay := x+w/2, y+h/2
			if len(t.Offset) == 3 {
				ax += t.Offset[0] * cfg.Demo.PixelsPerUnit
				ay -= t.Offset[1] * cfg.Demo.PixelsPerUnit
			}

			bounds := text.BoundString(face, t.Text) //nolint:staticcheck // TODO: migrate to text/v2
			tw := float64(bounds.Dx())
			th := float64(bounds.Dy())
			switch t.Placement.Align {
			case "left":
			case "right":
				ax -= tw
			default:
				ax -= tw / 2
			}

			const pad = 4
			vector.DrawFilledRect(screen, float32(ax-pad), float32(ay-th-pad), float32(tw+2*pad), float32(th+2*pad), cfg.Demo.TooltipBgColor, false)
			text.Draw(screen, t.Text, face, int(ax), int(ay), cfg.Demo.TooltipColor) //nolint:staticcheck // TODO: migrate to text/v2
		}
	})
}
