package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"
)

// AffordanceDefinition is the authored template for one control's affordance.
// Instances are always copied out of a map with Clone, never shared, because
// fade state lives per proxy.
type AffordanceDefinition struct {
	Control        Control                              `yaml:"control"`
	Strategy       VisibilityStrategy                   `yaml:"strategy"`
	FadeInSpeed    float64                              `yaml:"fadeInSpeed"`
	FadeOutSpeed   float64                              `yaml:"fadeOutSpeed"`
	HiddenColor    [4]uint8                             `yaml:"hiddenColor"`
	HiddenAlpha    float32                              `yaml:"hiddenAlpha"`
	HiddenMaterial string                               `yaml:"hiddenMaterial"` // MaterialSwap only
	Placements     map[FacingDirection]TooltipPlacement `yaml:"placements"`
}

// Clone returns a deep copy of the definition.
func (d AffordanceDefinition) Clone() AffordanceDefinition {
	c := d
	if d.Placements != nil {
		c.Placements = make(map[FacingDirection]TooltipPlacement, len(d.Placements))
		for k, v := range d.Placements {
			c.Placements[k] = v
		}
	}
	return c
}

// HiddenRGBA returns the hidden color as a color.RGBA
func (d AffordanceDefinition) HiddenRGBA() color.RGBA {
	return color.RGBA{R: d.HiddenColor[0], G: d.HiddenColor[1], B: d.HiddenColor[2], A: d.HiddenColor[3]}
}

// Placement returns the tooltip placement for a facing direction, falling
// back to the global tooltip configuration.
func (d AffordanceDefinition) Placement(facing FacingDirection) TooltipPlacement {
	if p, ok := d.Placements[facing]; ok {
		return p
	}
	if p, ok := Tooltip.FacingPlacements[facing]; ok {
		return p
	}
	return Tooltip.DefaultPlacement
}

func (d AffordanceDefinition) validate() error {
	if d.FadeInSpeed < 0 || d.FadeOutSpeed < 0 {
		return fmt.Errorf("%s: fade speeds must not be negative", d.Control)
	}
	if d.Strategy == MaterialSwap && d.HiddenMaterial == "" {
		return fmt.Errorf("%s: materialSwap needs a hiddenMaterial", d.Control)
	}
	return nil
}

// AffordanceMap binds controls to affordance definitions. Controls without an
// explicit entry get a copy of Default.
type AffordanceMap struct {
	Default AffordanceDefinition
	Entries []AffordanceDefinition
	Body    AffordanceDefinition
}

// Lookup returns a private copy of the definition for a control. explicit is
// false when the default template was used.
func (m *AffordanceMap) Lookup(control Control) (def AffordanceDefinition, explicit bool) {
	for _, e := range m.Entries {
		if e.Control == control {
			return e.Clone(), true
		}
	}
	def = m.Default.Clone()
	def.Control = control
	return def, false
}

// DefaultAffordanceMap returns a map with no explicit entries
func DefaultAffordanceMap() *AffordanceMap {
	def := AffordanceDefinition{
		Strategy:     ColorFade,
		FadeInSpeed:  Fade.DefaultFadeInSpeed,
		FadeOutSpeed: Fade.DefaultFadeOutSpeed,
		HiddenColor:  [4]uint8{Fade.HiddenColor.R, Fade.HiddenColor.G, Fade.HiddenColor.B, Fade.HiddenColor.A},
		HiddenAlpha:  Fade.HiddenAlpha,
	}
	body := def.Clone()
	body.Strategy = AlphaFade
	return &AffordanceMap{Default: def, Body: body}
}

type affordanceMapFile struct {
	Default     yaml.Node   `yaml:"default"`
	Body        yaml.Node   `yaml:"body"`
	Affordances []yaml.Node `yaml:"affordances"`
}

// LoadAffordanceMap reads and parses a YAML affordance map file.
func LoadAffordanceMap(path string) (*AffordanceMap, error) {
	if path == "" {
		return nil, errors.New("affordance map path is empty")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read affordance map: %w", err)
	}
	m, err := ParseAffordanceMap(b)
	if err != nil {
		return nil, fmt.Errorf("affordance map %s: %w", path, err)
	}
	return m, nil
}

// ErrDuplicateControl is returned when a map lists the same control twice.
var ErrDuplicateControl = errors.New("duplicate affordance control")

// ParseAffordanceMap decodes a YAML affordance map.
//
// Every field left out of an entry (or of the body section) inherits the
// value of the default section, which in turn starts from
// DefaultAffordanceMap. Unknown fields are rejected.
func ParseAffordanceMap(b []byte) (*AffordanceMap, error) {
	var file affordanceMapFile
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode affordance map yaml: %w", err)
	}

	m := DefaultAffordanceMap()
	if err := decodeOnto(&file.Default, &m.Default); err != nil {
		return nil, fmt.Errorf("default: %w", err)
	}

	body := m.Default.Clone()
	body.Strategy = m.Body.Strategy
	if err := decodeOnto(&file.Body, &body); err != nil {
		return nil, fmt.Errorf("body: %w", err)
	}
	m.Body = body

	seen := make(map[Control]int, len(file.Affordances))
	for i := range file.Affordances {
		def := m.Default.Clone()
		def.Control = ControlNone
		if err := decodeOnto(&file.Affordances[i], &def); err != nil {
			return nil, fmt.Errorf("affordance %d: %w", i, err)
		}
		if def.Control == ControlNone {
			return nil, fmt.Errorf("affordance %d: missing control", i)
		}
		if first, dup := seen[def.Control]; dup {
			return nil, fmt.Errorf("affordance %d: %s already defined by affordance %d: %w", i, def.Control, first, ErrDuplicateControl)
		}
		seen[def.Control] = i
		m.Entries = append(m.Entries, def)
	}

	if err := m.Default.validate(); err != nil {
		return nil, fmt.Errorf("default: %w", err)
	}
	if err := m.Body.validate(); err != nil {
		return nil, fmt.Errorf("body: %w", err)
	}
	for _, e := range m.Entries {
		if err := e.validate(); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// decodeOnto decodes node over an already populated definition. A missing
// section (zero node) leaves def untouched.
func decodeOnto(node *yaml.Node, def *AffordanceDefinition) error {
	if node.Kind == 0 {
		return nil
	}
	b, err := yaml.Marshal(node)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	return dec.Decode(def)
}
