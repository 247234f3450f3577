package config

import "github.com/hajimehoshi/ebiten/v2"

// ActionID represents a logical demo viewer action
type ActionID int

const (
	ActionNone ActionID = iota
	ActionRotateLeft
	ActionRotateRight
	ActionTiltUp
	ActionTiltDown
	ActionRequestSelect // low-priority trigger request with a tooltip
	ActionRequestGrab   // higher-priority trigger request
	ActionRequestGrip   // grip request that suppresses existing feedback
	ActionRetractGrab
	ActionShake
	ActionClearCaller
	ActionToggleTooltips
	ActionToggleHighlights
	ActionCycleFadeSpeed
	ActionSwitchNode // retarget demo requests to the other hand
	ActionPreferences
	ActionCount // Must be last - used for array sizing
)

// InputBinding represents a single key or button binding for an action
type InputBinding struct {
	Keys                   []ebiten.Key
	StandardGamepadButtons []ebiten.StandardGamepadButton
}

// InputConfig holds all input mappings
type InputConfig struct {
	Bindings map[ActionID]InputBinding
	// Deadzone for analog stick input (0.0 to 1.0)
	AnalogDeadzone float64
}

// Input is the global input configuration
var Input InputConfig

func init() {
	Input = InputConfig{
		AnalogDeadzone: 0.25,
		Bindings: map[ActionID]InputBinding{
			ActionRotateLeft: {
				Keys: []ebiten.Key{ebiten.KeyLeft, ebiten.KeyA},
				StandardGamepadButtons: []ebiten.StandardGamepadButton{
					ebiten.StandardGamepadButtonLeftLeft,
				},
			},
			ActionRotateRight: {
				Keys: []ebiten.Key{ebiten.KeyRight, ebiten.KeyD},
				StandardGamepadButtons: []ebiten.StandardGamepadButton{
					ebiten.StandardGamepadButtonLeftRight,
				},
			},
			ActionTiltUp: {
				Keys: []ebiten.Key{ebiten.KeyUp, ebiten.KeyW},
				StandardGamepadButtons: []ebiten.StandardGamepadButton{
					ebiten.StandardGamepadButtonLeftTop,
				},
			},
			ActionTiltDown: {
				Keys: []ebiten.Key{ebiten.KeyDown, ebiten.KeyS},
				StandardGamepadButtons: []ebiten.StandardGamepadButton{
					ebiten.StandardGamepadButtonLeftBottom,
				},
			},
			ActionRequestSelect: {
				Keys: []ebiten.Key{ebiten.Key1},
				// A / Cross button
				StandardGamepadButtons: []ebiten.StandardGamepadButton{
					ebiten.StandardGamepadButtonRightBottom,
				},
			},
			ActionRequestGrab: {
				Keys: []ebiten.Key{ebiten.Key2},
				// X / Square button
				StandardGamepadButtons: []ebiten.StandardGamepadButton{
					ebiten.StandardGamepadButtonRightLeft,
				},
			},
			ActionRequestGrip: {
				Keys: []ebiten.Key{ebiten.Key3},
				StandardGamepadButtons: []ebiten.StandardGamepadButton{
					ebiten.StandardGamepadButtonFrontBottomLeft,
				},
			},
			ActionRetractGrab: {
				Keys: []ebiten.Key{ebiten.KeyR},
				// B / Circle button
				StandardGamepadButtons: []ebiten.StandardGamepadButton{
					ebiten.StandardGamepadButtonRightRight,
				},
			},
			ActionShake: {
				Keys: []ebiten.Key{ebiten.KeySpace},
				// Y / Triangle button
				StandardGamepadButtons: []ebiten.StandardGamepadButton{
					ebiten.StandardGamepadButtonRightTop,
				},
			},
			ActionClearCaller: {
				Keys: []ebiten.Key{ebiten.KeyC, ebiten.KeyBackspace},
				// Back / Share button
				StandardGamepadButtons: []ebiten.StandardGamepadButton{
					ebiten.StandardGamepadButtonCenterLeft,
				},
			},
			ActionToggleTooltips: {
				Keys: []ebiten.Key{ebiten.KeyT},
				// Start / Options button
				StandardGamepadButtons: []ebiten.StandardGamepadButton{
					ebiten.StandardGamepadButtonCenterRight,
				},
			},
			ActionToggleHighlights: {
				Keys: []ebiten.Key{ebiten.KeyH},
			},
			ActionCycleFadeSpeed: {
				Keys: []ebiten.Key{ebiten.KeyF},
				StandardGamepadButtons: []ebiten.StandardGamepadButton{
					ebiten.StandardGamepadButtonFrontTopRight,
				},
			},
			ActionPreferences: {
				Keys: []ebiten.Key{ebiten.KeyEscape, ebiten.KeyP},
			},
			ActionSwitchNode: {
				Keys: []ebiten.Key{ebiten.KeyTab},
				StandardGamepadButtons: []ebiten.StandardGamepadButton{
					ebiten.StandardGamepadButtonFrontTopLeft,
				},
			},
		},
	}
}
