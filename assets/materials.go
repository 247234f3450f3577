package assets

import (
	"image/color"
	"log"

	"github.com/automoto/proxyfeedback/components"
	"github.com/hajimehoshi/ebiten/v2"
)

// Material is a shared, flat-colored render resource. Surfaces reference it
// and tint it with their own color scale.
type Material struct {
	Name  string
	Color color.RGBA

	image *ebiten.Image
}

// Image returns a 1x1 image of the material color, created on first use.
func (m *Material) Image() *ebiten.Image {
	if m.image == nil {
		m.image = ebiten.NewImage(1, 1)
		m.image.Fill(m.Color)
	}
	return m.image
}

// Surface is an owned instance of a material with its own color scale.
type Surface struct {
	source   *Material
	material *Material
	color    ebiten.ColorScale
	released bool
}

func (s *Surface) Color() ebiten.ColorScale {
	return s.color
}

func (s *Surface) SetColor(cs ebiten.ColorScale) {
	s.color = cs
}

func (s *Surface) Material() components.Material {
	return s.material
}

func (s *Surface) SetMaterial(m components.Material) {
	mat, ok := m.(*Material)
	if !ok || mat == nil {
		log.Printf("Warning: surface of %s cannot use material %v", s.source.Name, m)
		return
	}
	s.material = mat
}

// Current returns the material the surface draws with
func (s *Surface) Current() *Material {
	return s.material
}

// Library owns the demo materials and hands out surfaces. It implements the
// resource cloner the feedback engine uses.
type Library struct {
	materials map[string]*Material
	live      map[*Surface]struct{}
}

func NewLibrary() *Library {
	return &Library{
		materials: make(map[string]*Material),
		live:      make(map[*Surface]struct{}),
	}
}

// Add registers a material under name and returns it. A name that is
// already registered keeps its material, so models built from one library
// share their materials.
func (l *Library) Add(name string, c color.RGBA) *Material {
	if m, ok := l.materials[name]; ok {
		return m
	}
	m := &Material{Name: name, Color: c}
	l.materials[name] = m
	return m
}

// Get returns a registered material, or nil.
func (l *Library) Get(name string) *Material {
	return l.materials[name]
}

// Named returns every material keyed by name, for MaterialSwap lookups.
func (l *Library) Named() map[string]components.Material {
	out := make(map[string]components.Material, len(l.materials))
	for name, m := range l.materials {
		out[name] = m
	}
	return out
}

func (l *Library) CloneRenderResource(m components.Material) components.Surface {
	mat, ok := m.(*Material)
	if !ok || mat == nil {
		log.Printf("Warning: cannot clone render resource %v", m)
		return nil
	}
	s := &Surface{source: mat, material: mat}
	l.live[s] = struct{}{}
	return s
}

func (l *Library) ReleaseResource(rs components.Surface) {
	s, ok := rs.(*Surface)
	if !ok || s == nil {
		return
	}
	if s.released {
		log.Printf("Warning: surface of %s released twice", s.source.Name)
		return
	}
	s.released = true
	delete(l.live, s)
}

// Live returns the number of surfaces handed out and not yet released
func (l *Library) Live() int {
	return len(l.live)
}
