package systems

import (
	"encoding/json"
	"log"

	cfg "github.com/automoto/proxyfeedback/config"
	"github.com/quasilyte/gdata"
)

const preferencesKey = "preferences"

// SavedPreferences represents the feedback preferences stored on disk
type SavedPreferences struct {
	ShowTooltips   bool    `json:"showTooltips"`
	ShowHighlights bool    `json:"showHighlights"`
	FadeSpeedScale float64 `json:"fadeSpeedScale"`
}

var gdataManager *gdata.Manager
var gdataInitialized bool

// InitPersistence initializes the gdata manager for preference storage
func InitPersistence() error {
	m, err := gdata.Open(gdata.Config{
		AppName: "proxyfeedback",
	})
	if err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
		return err
	}
	gdataManager = m
	gdataInitialized = true
	return nil
}

// LoadPreferences loads preferences from disk. Returns nil, nil when nothing
// was saved yet or persistence is unavailable.
func LoadPreferences() (*SavedPreferences, error) {
	if !gdataInitialized || gdataManager == nil {
		return nil, nil
	}

	data, err := gdataManager.LoadItem(preferencesKey)
	if err != nil {
		log.Printf("Warning: Could not load preferences: %v", err)
		return nil, nil
	}
	if len(data) == 0 {
		return nil, nil
	}
	return DecodePreferences(data)
}

// DecodePreferences parses stored preferences
func DecodePreferences(data []byte) (*SavedPreferences, error) {
	var prefs SavedPreferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		log.Printf("Warning: Could not parse saved preferences: %v", err)
		return nil, err
	}
	return &prefs, nil
}

// SavePreferences saves preferences to disk
func SavePreferences(p *SavedPreferences) error {
	if !gdataInitialized || gdataManager == nil {
		return nil
	}

	data, err := json.Marshal(p)
	if err != nil {
		log.Printf("Warning: Could not serialize preferences: %v", err)
		return err
	}

	if err := gdataManager.SaveItem(preferencesKey, data); err != nil {
		log.Printf("Warning: Could not save preferences: %v", err)
		return err
	}
	return nil
}

// CurrentPreferences snapshots the live feedback configuration
func CurrentPreferences() *SavedPreferences {
	return &SavedPreferences{
		ShowTooltips:   cfg.Feedback.ShowTooltips,
		ShowHighlights: cfg.Feedback.ShowHighlights,
		FadeSpeedScale: cfg.Feedback.FadeSpeedScale,
	}
}

// SaveCurrentPreferences saves the live feedback configuration
func SaveCurrentPreferences() {
	_ = SavePreferences(CurrentPreferences())
}

// ApplySavedPreferences copies loaded preferences into the feedback
// configuration. A non-positive fade scale keeps the current one.
func ApplySavedPreferences(saved *SavedPreferences) {
	if saved == nil {
		return
	}
	cfg.Feedback.ShowTooltips = saved.ShowTooltips
	cfg.Feedback.ShowHighlights = saved.ShowHighlights
	if saved.FadeSpeedScale > 0 {
		cfg.Feedback.FadeSpeedScale = saved.FadeSpeedScale
	}
}

// fadeSpeedSteps are the scales CycleFadeSpeed walks through
var fadeSpeedSteps = []float64{0.5, 1, 2}

// CycleFadeSpeed moves the fade speed scale to the next step and saves it.
func CycleFadeSpeed() float64 {
	next := fadeSpeedSteps[0]
	for i, s := range fadeSpeedSteps {
		if s == cfg.Feedback.FadeSpeedScale && i+1 < len(fadeSpeedSteps) {
			next = fadeSpeedSteps[i+1]
		}
	}
	cfg.Feedback.FadeSpeedScale = next
	SaveCurrentPreferences()
	return next
}

// ToggleTooltips flips the tooltip preference and saves it.
func ToggleTooltips() bool {
	cfg.Feedback.ShowTooltips = !cfg.Feedback.ShowTooltips
	SaveCurrentPreferences()
	return cfg.Feedback.ShowTooltips
}

// ToggleHighlights flips the highlight preference and saves it.
func ToggleHighlights() bool {
	cfg.Feedback.ShowHighlights = !cfg.Feedback.ShowHighlights
	SaveCurrentPreferences()
	return cfg.Feedback.ShowHighlights
}
