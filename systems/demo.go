package systems

import (
	"fmt"
	"math"

	"github.com/automoto/proxyfeedback/components"
	cfg "github.com/automoto/proxyfeedback/config"
	"github.com/automoto/proxyfeedback/tags"
	"github.com/kvartborg/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// Callers the viewer submits requests as. Clearing DemoCaller leaves grip
// requests in place.
const (
	DemoCaller = "viewer"
	GripCaller = "grip"
)

// Pixels the proxy wobbles while its shake wobble runs
const shakeIntensity = 6.0

// FixedViewer is a viewer that never moves
type FixedViewer struct {
	Pos vector.Vector
}

func (v *FixedViewer) ViewerPosition() vector.Vector {
	return v.Pos
}

// TooltipBoard is the tooltip display of the viewer. It remembers whether
// each tooltip was shown with tooltips enabled; disabled tooltips are
// tracked but not drawn.
type TooltipBoard struct {
	shown map[*components.TooltipData]bool
}

func NewTooltipBoard() *TooltipBoard {
	return &TooltipBoard{shown: make(map[*components.TooltipData]bool)}
}

func (b *TooltipBoard) ShowTooltip(t *components.TooltipData, enabled bool, duration float64, p components.TooltipPlacement) {
	b.shown[t] = enabled
}

func (b *TooltipBoard) HideTooltip(t *components.TooltipData, enabled bool) {
	delete(b.shown, t)
}

// Drawn reports whether t should be drawn
func (b *TooltipBoard) Drawn(t *components.TooltipData) bool {
	return t.Active && b.shown[t]
}

// TransformFromAngles returns the pose at pos rotated by yaw about the world
// up axis, then by pitch about the local right axis.
func TransformFromAngles(pos vector.Vector, yaw, pitch float64) components.Transform {
	sy, cy := math.Sincos(yaw)
	sp, cp := math.Sincos(pitch)
	return components.Transform{
		Position: pos.Clone(),
		Right:    vector.Vector{cy, 0, -sy},
		Up:       vector.Vector{sy * sp, cp, cy * sp},
		Forward:  vector.Vector{sy * cp, -sp, cy * cp},
	}
}

// UpdateDemo turns viewer actions into feedback requests and rotates the
// proxies. Must run after UpdateInput and UpdateClock.
func UpdateDemo(ecs *ecs.ECS) {
	demo := getOrCreateDemo(ecs)
	input := getOrCreateInput(ecs)
	dt := ClockDelta(ecs)

	if demo.StatusRemaining > 0 {
		demo.StatusRemaining -= dt
		if demo.StatusRemaining <= 0 {
			demo.Status = ""
		}
	}

	pressed := func(id cfg.ActionID) bool {
		return GetAction(input, id).JustPressed
	}

	if pressed(cfg.ActionPreferences) {
		demo.PreferencesOpen = !demo.PreferencesOpen
	}
	if demo.PreferencesOpen {
		return
	}

	rotateProxies(ecs, demo, input, dt)

	if pressed(cfg.ActionSwitchNode) {
		if demo.Target == cfg.LeftHand {
			demo.Target = cfg.RightHand
		} else {
			demo.Target = cfg.LeftHand
		}
		demo.Flash(fmt.Sprintf("Targeting %s", demo.Target))
	}

	if pressed(cfg.ActionRequestSelect) {
		SubmitFeedbackRequest(ecs, &components.FeedbackRequest{
			Node:        demo.Target,
			Control:     cfg.Trigger,
			TooltipText: "Select",
			Caller:      DemoCaller,
		})
	}
	if pressed(cfg.ActionRequestGrab) && !Queued(ecs, demo.Grab[demo.Target]) {
		r := &components.FeedbackRequest{
			Node:        demo.Target,
			Control:     cfg.Trigger,
			Priority:    1,
			TooltipText: "Grab",
			Caller:      DemoCaller,
		}
		if SubmitFeedbackRequest(ecs, r) {
			demo.Grab[demo.Target] = r
		}
	}
	if pressed(cfg.ActionRequestGrip) {
		SubmitFeedbackRequest(ecs, &components.FeedbackRequest{
			Node:             demo.Target,
			Control:          cfg.Grip,
			Priority:         2,
			TooltipText:      "Squeeze",
			SuppressExisting: true,
			Caller:           GripCaller,
		})
	}
	if pressed(cfg.ActionRetractGrab) {
		if r := demo.Grab[demo.Target]; r != nil {
			RetractFeedbackRequest(ecs, r)
			delete(demo.Grab, demo.Target)
		}
	}
	if pressed(cfg.ActionShake) {
		if ShakeNode(ecs, demo.Target) != nil {
			if proxy := findProxy(ecs, demo.Target); proxy != nil {
				StartShake(proxy, shakeIntensity, 0.6)
			}
		} else {
			demo.Flash("Shake ignored, body already showing")
		}
	}
	if pressed(cfg.ActionClearCaller) {
		ClearCallerFeedback(ecs, DemoCaller)
		clear(demo.Grab)
		demo.Flash("Cleared viewer requests")
	}

	if pressed(cfg.ActionToggleTooltips) {
		demo.Flash(fmt.Sprintf("Tooltips %s", onOff(ToggleTooltips())))
	}
	if pressed(cfg.ActionToggleHighlights) {
		demo.Flash(fmt.Sprintf("Highlights %s", onOff(ToggleHighlights())))
	}
	if pressed(cfg.ActionCycleFadeSpeed) {
		demo.Flash(fmt.Sprintf("Fade speed x%.1f", CycleFadeSpeed()))
	}
}

func rotateProxies(ecs *ecs.ECS, demo *components.DemoData, input *components.InputData, dt float64) {
	var yaw, pitch float64
	if GetAction(input, cfg.ActionRotateLeft).Pressed {
		yaw--
	}
	if GetAction(input, cfg.ActionRotateRight).Pressed {
		yaw++
	}
	if GetAction(input, cfg.ActionTiltUp).Pressed {
		pitch--
	}
	if GetAction(input, cfg.ActionTiltDown).Pressed {
		pitch++
	}
	yaw += input.AxisX
	pitch += input.AxisY
	if yaw == 0 && pitch == 0 {
		return
	}

	step := cfg.Demo.RotateSpeed * dt
	demo.Yaw = math.Mod(demo.Yaw+yaw*step, 2*math.Pi)
	demo.Pitch = math.Max(-math.Pi/2, math.Min(math.Pi/2, demo.Pitch+pitch*step))

	tags.Proxy.Each(ecs.World, func(e *donburi.Entry) {
		p := components.Proxy.Get(e)
		p.Transform = TransformFromAngles(p.Position, demo.Yaw, demo.Pitch)
	})
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

// getOrCreateDemo returns the singleton Demo component, creating if needed
func getOrCreateDemo(ecs *ecs.ECS) *components.DemoData {
	entry, ok := components.Demo.First(ecs.World)
	if !ok {
		entry = ecs.World.Entry(ecs.World.Create(components.Demo))
		components.Demo.SetValue(entry, components.DemoData{
			Target: cfg.RightHand,
			Grab:   make(map[cfg.Node]*components.FeedbackRequest),
		})
	}
	return components.Demo.Get(entry)
}
