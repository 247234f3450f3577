package components

import (
	"reflect"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/kvartborg/vector"
)

// Material is an opaque render resource handle (a shared material, texture
// or shader binding owned by whoever renders the proxy).
type Material any

// Comparable reports whether v can be used as a map key or compared with ==.
// Callers and materials are matched by identity, so they must be.
func Comparable(v any) bool {
	return v == nil || reflect.TypeOf(v).Comparable()
}

// Surface is an owned, writable material instance bound to proxy geometry.
type Surface interface {
	Color() ebiten.ColorScale
	SetColor(cs ebiten.ColorScale)
	Material() Material
	SetMaterial(m Material)
}

// Renderer is one piece of proxy geometry drawn with one or more materials.
type Renderer interface {
	Materials() []Material
}

// ResourceCloner hands out owned surfaces and takes them back on teardown.
type ResourceCloner interface {
	CloneRenderResource(m Material) Surface
	ReleaseResource(s Surface)
}

// Highlighter toggles the highlight overlay on proxy geometry.
type Highlighter interface {
	SetHighlight(target Renderer, enabled bool, source any, override Material, duration float64)
}

// TooltipDisplay shows and hides tooltips. duration is in unscaled seconds.
type TooltipDisplay interface {
	ShowTooltip(t *TooltipData, enabled bool, duration float64, placement TooltipPlacement)
	HideTooltip(t *TooltipData, enabled bool)
}

// Viewer reports the position of the viewer's head/camera in world space.
type Viewer interface {
	ViewerPosition() vector.Vector
}
