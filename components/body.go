package components

import "github.com/yohamta/donburi"

// BodyData is the visual state of the proxy body. It shows only while a
// request holds the shake lock.
type BodyData struct {
	VisualState

	Renderers []Renderer
	// Materials[i] is the source material of Channels[i]
	Materials []Material
}

var Body = donburi.NewComponentType[BodyData]()

// ChannelFor returns the channel owning the clone of m, or nil.
func (b *BodyData) ChannelFor(m Material) *VisibilityChannel {
	if !Comparable(m) {
		return nil
	}
	for i, src := range b.Materials {
		if src == m {
			return b.Channels[i]
		}
	}
	return nil
}

// Bind records a channel for source material m.
func (b *BodyData) Bind(m Material, ch *VisibilityChannel) {
	b.Materials = append(b.Materials, m)
	b.Channels = append(b.Channels, ch)
}
