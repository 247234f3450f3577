package config

import "image/color"

// FeedbackConfig contains request queue and lifespan configuration values
type FeedbackConfig struct {
	// Display duration handed to highlights/tooltips when a request sets none
	DefaultDuration float64
	// Fraction of the display duration a normal request stays visible
	LifespanScale float64
	// Seconds a body (shake) request stays visible
	ShakeDuration float64

	// Canonical "device shaken" request
	ShakeControl  Control
	ShakePriority int

	// Player preferences (persisted, see systems/persistence.go)
	ShowTooltips   bool
	ShowHighlights bool
	FadeSpeedScale float64 // multiplies every fade speed (1.0 = authored speed)
}

// FadeConfig contains visibility channel defaults
type FadeConfig struct {
	// Completion threshold for a fade process. Slightly above 1.0 so every
	// channel reaches its exact endpoint before the process stops.
	Overshoot float32

	DefaultFadeInSpeed  float64 // units per second
	DefaultFadeOutSpeed float64 // units per second

	HiddenColor color.RGBA
	HiddenAlpha float32
}

// TooltipPlacement positions a tooltip relative to its affordance
type TooltipPlacement struct {
	Offset [3]float64 `yaml:"offset"`
	Align  string     `yaml:"align"` // "center", "left" or "right"
}

// TooltipConfig contains tooltip placement configuration
type TooltipConfig struct {
	SlideDuration    float64 // seconds to slide to a new placement after a facing change
	DefaultPlacement TooltipPlacement
	// Placements used when an affordance defines none for a facing direction
	FacingPlacements map[FacingDirection]TooltipPlacement
}

// FacingConfig contains facing-direction tracking configuration
type FacingConfig struct {
	Initial FacingDirection
}

// HighlightConfig contains renderer highlight configuration
type HighlightConfig struct {
	Color      color.RGBA
	PulseSpeed float64 // radians per second for the demo highlight shader
}

// DemoConfig holds demo viewer configuration
type DemoConfig struct {
	Width  int
	Height int

	ProxyWidth      float64
	ProxyHeight     float64
	AffordanceSize  float64
	RotateSpeed     float64 // radians per second while a rotate key is held
	ViewerDistance  float64
	PixelsPerUnit   float64 // world meters to screen pixels
	HandSpacing     float64 // world distance of each hand from the center
	BackgroundColor color.RGBA
	BodyColor       color.RGBA
	RubberColor     color.RGBA
	GhostColor      color.RGBA // hidden material for MaterialSwap affordances
	ButtonColors    map[Control]color.RGBA
	TooltipColor    color.RGBA
	TooltipBgColor  color.RGBA
	AffordanceMap   string // optional YAML affordance map path
}

// Global configuration instances
var Feedback FeedbackConfig
var Fade FadeConfig
var Tooltip TooltipConfig
var Facing FacingConfig
var Highlight HighlightConfig
var Demo DemoConfig

// Shared RGBA color constants
var (
	White            = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	TransparentBlack = color.RGBA{R: 0, G: 0, B: 0, A: 0}
	Orange           = color.RGBA{R: 255, G: 140, B: 0, A: 255}
	LightBlue        = color.RGBA{R: 100, G: 180, B: 255, A: 255}
	DarkBlue         = color.RGBA{R: 60, G: 100, B: 160, A: 255}
	Gray             = color.RGBA{R: 90, G: 90, B: 100, A: 255}
	BlackOverlay     = color.RGBA{R: 0, G: 0, B: 0, A: 180}
)

func init() {
	Feedback = FeedbackConfig{
		DefaultDuration: 5.0,
		LifespanScale:   0.125,
		ShakeDuration:   5.0,

		ShakeControl:  ControlNone,
		ShakePriority: 0,

		ShowTooltips:   true,
		ShowHighlights: true,
		FadeSpeedScale: 1.0,
	}

	Fade = FadeConfig{
		Overshoot:           1.01,
		DefaultFadeInSpeed:  4.0, // 0.25s to fully show
		DefaultFadeOutSpeed: 0.5, // 2s to fully hide
		HiddenColor:         TransparentBlack,
		HiddenAlpha:         0,
	}

	Tooltip = TooltipConfig{
		SlideDuration: 0.25,
		DefaultPlacement: TooltipPlacement{
			Offset: [3]float64{0, 0.05, 0},
			Align:  "center",
		},
		FacingPlacements: map[FacingDirection]TooltipPlacement{
			FacingFront:  {Offset: [3]float64{0, 0.05, 0.03}, Align: "center"},
			FacingBack:   {Offset: [3]float64{0, 0.05, -0.03}, Align: "center"},
			FacingLeft:   {Offset: [3]float64{-0.05, 0.02, 0}, Align: "right"},
			FacingRight:  {Offset: [3]float64{0.05, 0.02, 0}, Align: "left"},
			FacingTop:    {Offset: [3]float64{0, 0.06, 0}, Align: "center"},
			FacingBottom: {Offset: [3]float64{0, -0.06, 0}, Align: "center"},
		},
	}

	Facing = FacingConfig{
		Initial: FacingBack,
	}

	Highlight = HighlightConfig{
		Color:      Orange,
		PulseSpeed: 6.0,
	}

	Demo = DemoConfig{
		Width:           640,
		Height:          360,
		ProxyWidth:      120,
		ProxyHeight:     220,
		AffordanceSize:  28,
		RotateSpeed:     1.5,
		ViewerDistance:  1.0,
		PixelsPerUnit:   640,
		HandSpacing:     0.25,
		BackgroundColor: color.RGBA{R: 15, G: 25, B: 50, A: 255},
		BodyColor:       Gray,
		RubberColor:     color.RGBA{R: 45, G: 45, B: 50, A: 255},
		GhostColor:      color.RGBA{R: 120, G: 120, B: 140, A: 60},
		ButtonColors: map[Control]color.RGBA{
			Trigger:         LightBlue,
			Grip:            DarkBlue,
			PrimaryButton:   color.RGBA{R: 80, G: 200, B: 120, A: 255},
			SecondaryButton: color.RGBA{R: 220, G: 80, B: 80, A: 255},
			Joystick:        White,
			Menu:            Orange,
		},
		TooltipColor:   White,
		TooltipBgColor: BlackOverlay,
	}
}
