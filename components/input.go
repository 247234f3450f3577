package components

import (
	cfg "github.com/automoto/proxyfeedback/config"
	"github.com/yohamta/donburi"
)

// InputMethod represents the type of input device being used
type InputMethod int

const (
	InputKeyboard InputMethod = iota
	InputGamepad
)

// ActionState represents the temporal state of an action
type ActionState struct {
	Pressed      bool // Currently held down
	JustPressed  bool // Pressed this frame
	JustReleased bool // Released this frame
}

// InputData stores the current and previous frame's pressed state for all
// demo viewer actions. JustPressed/JustReleased are computed on demand.
type InputData struct {
	Current         [cfg.ActionCount]bool
	Previous        [cfg.ActionCount]bool
	LastInputMethod InputMethod
	// Analog rotation from the left stick, after the deadzone
	AxisX, AxisY float64
}

var Input = donburi.NewComponentType[InputData]()
