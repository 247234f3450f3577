package main

import (
	"flag"
	"log"

	"github.com/automoto/proxyfeedback/config"
	"github.com/automoto/proxyfeedback/fonts"
	"github.com/automoto/proxyfeedback/scenes"
	"github.com/automoto/proxyfeedback/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	scene Scene
}

func NewGame(scene Scene) *Game {
	return &Game{scene: scene}
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	return config.Demo.Width, config.Demo.Height
}

func main() {
	flag.StringVar(&config.Demo.AffordanceMap, "map", "", "affordance map YAML (defaults to the embedded controller map)")
	flag.Parse()

	if err := fonts.LoadDefaults(); err != nil {
		log.Fatalf("Failed to load fonts: %v", err)
	}

	ebiten.SetWindowSize(config.Demo.Width*2, config.Demo.Height*2)
	ebiten.SetWindowTitle("Proxy feedback")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	// Initialize persistence and load saved preferences
	if err := systems.InitPersistence(); err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
	}
	if saved, err := systems.LoadPreferences(); err == nil && saved != nil {
		systems.ApplySavedPreferences(saved)
	}

	scene := scenes.NewProxyScene()
	defer scene.Close()

	if err := ebiten.RunGame(NewGame(scene)); err != nil {
		log.Fatal(err)
	}
}
