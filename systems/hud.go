package systems

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/automoto/proxyfeedback/components"
	cfg "github.com/automoto/proxyfeedback/config"
	"github.com/automoto/proxyfeedback/fonts"
	"github.com/automoto/proxyfeedback/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"golang.org/x/image/font"
)

const (
	hudMargin     = 10
	hudLineHeight = 13
	hudQueueLimit = 6
)

var hudBuilder strings.Builder

// DrawHUD renders the per-proxy diagnostics, the preference status and the
// key hints.
func DrawHUD(ecs *ecs.ECS, screen *ebiten.Image) {
	small := fonts.Small.Get()
	width := float64(screen.Bounds().Dx())
	height := float64(screen.Bounds().Dy())
	demo := getOrCreateDemo(ecs)

	tags.Proxy.Each(ecs.World, func(e *donburi.Entry) {
		p := components.Proxy.Get(e)
		x := float64(hudMargin)
		if p.Node == cfg.RightHand {
			x = width/2 + hudMargin
		}
		drawProxyStatus(screen, small, e, x, hudMargin+hudLineHeight, p.Node == demo.Target)
	})

	regular := fonts.Regular.Get()
	prefs := fmt.Sprintf("tooltips %s  highlights %s  fade x%.1f",
		onOff(cfg.Feedback.ShowTooltips), onOff(cfg.Feedback.ShowHighlights), cfg.Feedback.FadeSpeedScale)
	text.Draw(screen, prefs, small, hudMargin, int(height)-hudMargin-2*hudLineHeight, cfg.White)

	hint := getHint(getOrCreateInput(ecs).LastInputMethod)
	text.Draw(screen, hint, small, hudMargin, int(height)-hudMargin, cfg.White)

	if demo.Status != "" {
		text.Draw(screen, demo.Status, regular, centerTextX(demo.Status, regular, width), int(height)/2+130, cfg.Orange)
	}
}

func drawProxyStatus(screen *ebiten.Image, face font.Face, e *donburi.Entry, x, y float64, targeted bool) {
	p := components.Proxy.Get(e)
	q := components.FeedbackQueue.Get(e)
	facing := components.Facing.Get(e)

	if targeted {
		vector.DrawFilledRect(screen, float32(x-4), float32(y-hudLineHeight+2), 4, hudLineHeight, cfg.Orange, false)
	}

	hudBuilder.Reset()
	fmt.Fprintf(&hudBuilder, "%s  facing %s", p.Node, facing.Direction)
	switch {
	case p.Invalid:
		hudBuilder.WriteString("  INVALID")
	case p.Released:
		hudBuilder.WriteString("  released")
	case !p.SetUp:
		hudBuilder.WriteString("  waiting for setup")
	}
	text.Draw(screen, hudBuilder.String(), face, int(x)+4, int(y), cfg.White)

	y += hudLineHeight
	status := fmt.Sprintf("affordances %s  body %s", shownHidden(p.AffordancesVisible), shownHidden(p.BodyVisible))
	if q.ShakeLocked() {
		status += "  (shaken)"
	}
	text.Draw(screen, status, face, int(x)+4, int(y), cfg.LightBlue)

	for i, r := range q.Requests {
		if i == hudQueueLimit {
			y += hudLineHeight
			text.Draw(screen, fmt.Sprintf("... %d more", len(q.Requests)-i), face, int(x)+4, int(y), cfg.Gray)
			break
		}
		y += hudLineHeight
		text.Draw(screen, describeRequest(r), face, int(x)+4, int(y), requestColor(r))
	}
}

func describeRequest(r *components.FeedbackRequest) string {
	hudBuilder.Reset()
	if r.ShowBody {
		hudBuilder.WriteString("shake")
	} else {
		hudBuilder.WriteString(r.Control.String())
	}
	fmt.Fprintf(&hudBuilder, " p%d", r.Priority)
	if r.TooltipText != "" {
		fmt.Fprintf(&hudBuilder, " %q", r.TooltipText)
	}
	if r.SuppressExisting {
		hudBuilder.WriteString(" suppress")
	}
	if r.Visible() {
		fmt.Fprintf(&hudBuilder, " %.1fs", r.Remaining())
	} else {
		hudBuilder.WriteString(" expired")
	}
	return hudBuilder.String()
}

func requestColor(r *components.FeedbackRequest) color.RGBA {
	if r.Visible() {
		return cfg.White
	}
	return cfg.Gray
}

func shownHidden(v bool) string {
	if v {
		return "shown"
	}
	return "hidden"
}

// centerTextX calculates the X position to center text on screen
func centerTextX(s string, face font.Face, screenWidth float64) int {
	bounds := text.BoundString(face, s) //nolint:staticcheck // TODO: migrate to text/v2
	return int((screenWidth - float64(bounds.Dx())) / 2)
}

// getHint returns the key hint for the last used input method
func getHint(method components.InputMethod) string {
	if method == components.InputGamepad {
		return "A select  X grab  B retract  Y shake  LB switch hand  L-stick rotate"
	}
	return "1 select  2 grab  3 grip  R retract  Space shake  C clear  T/H/F prefs  Tab hand  arrows rotate"
}
