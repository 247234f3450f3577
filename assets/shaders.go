package assets

import (
	"embed"

	"github.com/hajimehoshi/ebiten/v2"
)

//go:embed shaders/*.kage
var shaderFS embed.FS

var (
	// HighlightShader draws the pulsing outline around highlighted affordances
	HighlightShader *ebiten.Shader
)

// LoadShaders compiles and caches all shaders
func LoadShaders() error {
	src, err := shaderFS.ReadFile("shaders/highlight.kage")
	if err != nil {
		return err
	}
	HighlightShader, err = ebiten.NewShader(src)
	if err != nil {
		return err
	}
	return nil
}
