package ui

import (
	"bytes"
	"fmt"
	"image/color"

	cfg "github.com/automoto/proxyfeedback/config"
	"github.com/automoto/proxyfeedback/systems"
	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// PreferencesUI is the mouse-driven panel for the persisted feedback
// preferences.
type PreferencesUI struct {
	UI *ebitenui.UI

	OnClose func()

	tooltipsButton   *widget.Button
	highlightsButton *widget.Button
	fadeButton       *widget.Button

	titleFace  text.Face
	normalFace text.Face
}

// NewPreferencesUI creates the preferences panel
func NewPreferencesUI(onClose func()) *PreferencesUI {
	pui := &PreferencesUI{OnClose: onClose}
	pui.loadFonts()
	pui.buildUI()
	return pui
}

func (pui *PreferencesUI) loadFonts() {
	fontSource, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic(err)
	}
	pui.titleFace = &text.GoTextFace{Source: fontSource, Size: 16}
	pui.normalFace = &text.GoTextFace{Source: fontSource, Size: 12}
}

func (pui *PreferencesUI) buildUI() {
	rootContainer := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)

	padding := widget.Insets{Top: 8, Bottom: 8, Left: 12, Right: 12}
	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(color.RGBA{20, 20, 30, 230})),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(&padding),
			widget.RowLayoutOpts.Spacing(6),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)

	panel.AddChild(widget.NewLabel(
		widget.LabelOpts.Text("FEEDBACK PREFERENCES", &pui.titleFace, &widget.LabelColor{
			Idle: color.RGBA{255, 255, 255, 255},
		}),
	))

	pui.tooltipsButton = pui.newButton(tooltipsLabel(), func() {
		systems.ToggleTooltips()
		pui.UpdateUI()
	})
	panel.AddChild(pui.tooltipsButton)

	pui.highlightsButton = pui.newButton(highlightsLabel(), func() {
		systems.ToggleHighlights()
		pui.UpdateUI()
	})
	panel.AddChild(pui.highlightsButton)

	pui.fadeButton = pui.newButton(fadeLabel(), func() {
		systems.CycleFadeSpeed()
		pui.UpdateUI()
	})
	panel.AddChild(pui.fadeButton)

	panel.AddChild(pui.newButton("Close", func() {
		if pui.OnClose != nil {
			pui.OnClose()
		}
	}))

	rootContainer.AddChild(panel)

	pui.UI = &ebitenui.UI{
		Container: rootContainer,
	}
}

func (pui *PreferencesUI) newButton(label string, onClick func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(180, 22),
		),
		widget.ButtonOpts.Image(buttonImage()),
		widget.ButtonOpts.Text(label, &pui.normalFace, &widget.ButtonTextColor{
			Idle:    color.RGBA{255, 255, 255, 255},
			Hover:   color.RGBA{255, 255, 200, 255},
			Pressed: color.RGBA{200, 200, 200, 255},
		}),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)
}

func buttonImage() *widget.ButtonImage {
	return &widget.ButtonImage{
		Idle:     image.NewNineSliceColor(color.RGBA{60, 60, 80, 255}),
		Hover:    image.NewNineSliceColor(color.RGBA{80, 80, 100, 255}),
		Pressed:  image.NewNineSliceColor(color.RGBA{40, 40, 60, 255}),
		Disabled: image.NewNineSliceColor(color.RGBA{40, 40, 40, 255}),
	}
}

// UpdateUI refreshes the button labels from the live preferences, which the
// keyboard shortcuts may have changed.
func (pui *PreferencesUI) UpdateUI() {
	setLabel(pui.tooltipsButton, tooltipsLabel())
	setLabel(pui.highlightsButton, highlightsLabel())
	setLabel(pui.fadeButton, fadeLabel())
}

func setLabel(b *widget.Button, label string) {
	if b == nil {
		return
	}
	if textWidget := b.Text(); textWidget != nil {
		textWidget.Label = label
	}
}

func tooltipsLabel() string {
	return fmt.Sprintf("Tooltips: %s", onOff(cfg.Feedback.ShowTooltips))
}

func highlightsLabel() string {
	return fmt.Sprintf("Highlights: %s", onOff(cfg.Feedback.ShowHighlights))
}

func fadeLabel() string {
	return fmt.Sprintf("Fade speed: x%.1f", cfg.Feedback.FadeSpeedScale)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

// Update processes UI input. Labels refresh after the widgets validate.
func (pui *PreferencesUI) Update() {
	pui.UI.Update()
	pui.UpdateUI()
}

// Draw renders the panel
func (pui *PreferencesUI) Draw(screen *ebiten.Image) {
	pui.UI.Draw(screen)
}
