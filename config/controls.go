package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Control identifies one physical input on a tracked device.
type Control int

const (
	ControlNone Control = iota
	Trigger
	Grip
	PrimaryButton
	SecondaryButton
	Joystick
	Touchpad
	Menu
	ControlCount // Must be last - used for array sizing
)

var controlNames = map[Control]string{
	ControlNone:     "none",
	Trigger:         "trigger",
	Grip:            "grip",
	PrimaryButton:   "primaryButton",
	SecondaryButton: "secondaryButton",
	Joystick:        "joystick",
	Touchpad:        "touchpad",
	Menu:            "menu",
}

func (c Control) String() string {
	if name, ok := controlNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Control(%d)", int(c))
}

func (c *Control) UnmarshalYAML(value *yaml.Node) error {
	v, err := lookupName(value, controlNames)
	if err != nil {
		return fmt.Errorf("control: %w", err)
	}
	*c = v
	return nil
}

// Node identifies which tracked device a proxy represents.
type Node int

const (
	LeftHand Node = iota
	RightHand
)

var nodeNames = map[Node]string{
	LeftHand:  "leftHand",
	RightHand: "rightHand",
}

func (n Node) String() string {
	if name, ok := nodeNames[n]; ok {
		return name
	}
	return fmt.Sprintf("Node(%d)", int(n))
}

func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	v, err := lookupName(value, nodeNames)
	if err != nil {
		return fmt.Errorf("node: %w", err)
	}
	*n = v
	return nil
}

// FacingDirection is the proxy's dominant local axis pointing at the viewer.
type FacingDirection int

const (
	FacingFront FacingDirection = iota
	FacingBack
	FacingLeft
	FacingRight
	FacingTop
	FacingBottom
)

var facingNames = map[FacingDirection]string{
	FacingFront:  "front",
	FacingBack:   "back",
	FacingLeft:   "left",
	FacingRight:  "right",
	FacingTop:    "top",
	FacingBottom: "bottom",
}

func (f FacingDirection) String() string {
	if name, ok := facingNames[f]; ok {
		return name
	}
	return fmt.Sprintf("FacingDirection(%d)", int(f))
}

func (f *FacingDirection) UnmarshalYAML(value *yaml.Node) error {
	v, err := lookupName(value, facingNames)
	if err != nil {
		return fmt.Errorf("facing direction: %w", err)
	}
	*f = v
	return nil
}

// VisibilityStrategy selects how an affordance moves between shown and hidden.
// It is chosen once when the affordance is built.
type VisibilityStrategy int

const (
	ColorFade VisibilityStrategy = iota
	AlphaFade
	MaterialSwap
)

var strategyNames = map[VisibilityStrategy]string{
	ColorFade:    "colorFade",
	AlphaFade:    "alphaFade",
	MaterialSwap: "materialSwap",
}

func (s VisibilityStrategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("VisibilityStrategy(%d)", int(s))
}

func (s *VisibilityStrategy) UnmarshalYAML(value *yaml.Node) error {
	v, err := lookupName(value, strategyNames)
	if err != nil {
		return fmt.Errorf("visibility strategy: %w", err)
	}
	*s = v
	return nil
}

// lookupName resolves a scalar node against a name table, case-insensitively.
func lookupName[T comparable](value *yaml.Node, names map[T]string) (T, error) {
	var zero T
	if value.Kind != yaml.ScalarNode {
		return zero, fmt.Errorf("line %d: expected a name", value.Line)
	}
	for k, name := range names {
		if strings.EqualFold(name, value.Value) {
			return k, nil
		}
	}
	return zero, fmt.Errorf("line %d: unknown name %q", value.Line, value.Value)
}
