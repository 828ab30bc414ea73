// Package scene provides the renderable scene graph: a camera plus a tree of
// positioned models. The pipeline walks the tree depth-first, accumulating
// each Position's matrix into the current transformation matrix.
package scene

import (
	"github.com/google/uuid"

	"github.com/Faultbox/prism/internal/engine/camera"
	"github.com/Faultbox/prism/internal/engine/model"
	"github.com/Faultbox/prism/pkg/math"
)

// Position is a node in the scene tree. It places an optional model with a
// 4x4 transform and owns an ordered list of child positions. Child order is
// deterministic; with the depth buffer resolving occlusion, it does not
// affect the rendered result.
type Position struct {
	Name    string
	Model   *model.Model
	Matrix  math.Mat4
	Visible bool

	children []*Position
}

// NewPosition creates a visible position holding the given model (which may
// be nil for pure grouping nodes) and the identity transform. When name is
// empty a unique one is generated.
func NewPosition(name string, m *model.Model) *Position {
	if name == "" {
		name = uuid.NewString()
	}
	return &Position{
		Name:    name,
		Model:   m,
		Matrix:  math.Identity(),
		Visible: true,
	}
}

// Add appends child positions and returns the receiver.
func (p *Position) Add(children ...*Position) *Position {
	p.children = append(p.children, children...)
	return p
}

// Children returns the ordered child list.
func (p *Position) Children() []*Position {
	return p.children
}

// Transform sets the node's matrix and returns the receiver.
func (p *Position) Transform(m math.Mat4) *Position {
	p.Matrix = m
	return p
}

// Scene owns a camera and the root positions of the scene tree.
type Scene struct {
	Camera    *camera.Camera
	Positions []*Position
}

// New creates an empty scene for the given camera.
func New(cam *camera.Camera) *Scene {
	return &Scene{Camera: cam}
}

// Add appends root positions and returns the scene.
func (s *Scene) Add(positions ...*Position) *Scene {
	s.Positions = append(s.Positions, positions...)
	return s
}

// Validate checks every model reachable from a visible or invisible
// position. Rendering a scene that fails validation is a fatal error.
func (s *Scene) Validate() error {
	for _, p := range s.Positions {
		if err := p.validate(); err != nil {
			return err
		}
	}
	return nil
}

func (p *Position) validate() error {
	if p.Model != nil {
		if err := p.Model.Validate(); err != nil {
			return err
		}
	}
	for _, c := range p.children {
		if err := c.validate(); err != nil {
			return err
		}
	}
	return nil
}
