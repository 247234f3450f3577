package components

import (
	cfg "github.com/automoto/proxyfeedback/config"
	"github.com/kvartborg/vector"
	"github.com/yohamta/donburi"
)

// Transform is the world-space pose of a proxy as a position and three
// orthonormal local axes.
type Transform struct {
	Position vector.Vector
	Right    vector.Vector
	Up       vector.Vector
	Forward  vector.Vector
}

// IdentityTransform returns a pose at the origin aligned with world axes.
func IdentityTransform() Transform {
	return Transform{
		Position: vector.Vector{0, 0, 0},
		Right:    vector.Vector{1, 0, 0},
		Up:       vector.Vector{0, 1, 0},
		Forward:  vector.Vector{0, 0, 1},
	}
}

// Collaborators are the external services a proxy drives.
type Collaborators struct {
	Cloner      ResourceCloner
	Highlighter Highlighter
	Tooltips    TooltipDisplay
	Viewer      Viewer

	// Handed to the highlighter as the override resource
	HighlightMaterial Material
}

// ProxyData is the feedback controller state of one device proxy.
type ProxyData struct {
	Node cfg.Node
	Transform
	Collaborators

	Map           *cfg.AffordanceMap
	BodyRenderers []Renderer
	Affordances   []*donburi.Entry
	Active        bool // set once setup succeeds; lifespans only run while active
	SetUp         bool
	Invalid       bool // setup failed; the proxy stays inert
	Released      bool

	// Aggregate visibility, readable for diagnostics
	AffordancesVisible bool
	BodyVisible        bool

	expired []*FeedbackRequest
	scratch []*FeedbackRequest
}

var Proxy = donburi.NewComponentType[ProxyData]()

// ExpiredBuffer returns the reusable expiry buffer, emptied.
func (p *ProxyData) ExpiredBuffer() []*FeedbackRequest {
	return p.expired[:0]
}

// KeepExpiredBuffer stores buf for reuse on the next tick.
func (p *ProxyData) KeepExpiredBuffer(buf []*FeedbackRequest) {
	clear(buf)
	p.expired = buf[:0]
}

// ScratchBuffer returns the reusable caller lookup buffer, emptied.
func (p *ProxyData) ScratchBuffer() []*FeedbackRequest {
	return p.scratch[:0]
}

// KeepScratchBuffer stores buf for reuse.
func (p *ProxyData) KeepScratchBuffer(buf []*FeedbackRequest) {
	clear(buf)
	p.scratch = buf[:0]
}
