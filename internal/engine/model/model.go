// Package model provides the scene-graph leaf data: vertex, color, texture,
// and texture-coordinate arenas plus the primitives that index into them.
// Models are built once by geometry code and read, never mutated, by the
// rendering pipeline.
package model

import (
	"github.com/pkg/errors"

	"github.com/Faultbox/prism/internal/engine/framebuffer"
	"github.com/Faultbox/prism/internal/engine/texture"
	"github.com/Faultbox/prism/pkg/math"
)

// Vertex is a homogeneous point. AddVertex stores w = 1; only the
// projection stages of the pipeline ever work with other w values.
type Vertex = math.Vec4

// Nested pairs a child model with the transform that places it relative to
// its parent.
type Nested struct {
	Model  *Model
	Matrix math.Mat4
}

// Model owns vertex, primitive, color, texture, and texture-coordinate
// arenas, plus nested child models. Primitives reference the arenas by
// plain integer index.
type Model struct {
	Name string

	Vertices   []Vertex
	Primitives []*Primitive
	Colors     []framebuffer.Color
	Textures   []*texture.Texture
	TexCoords  []math.Vec2
	Nested     []Nested

	// CullBackFaces drops back-facing polygonal primitives.
	CullBackFaces bool
	// FrontIsCCW selects the winding convention: with it set, a polygon is
	// front-facing when its projected vertices wind counterclockwise.
	FrontIsCCW bool
	// TwoSided keeps back-facing polygons (when culling is off) but shades
	// them with their back-face colors.
	TwoSided bool
}

// New creates an empty model. Culling defaults on with CCW front faces,
// matching the usual orientation of generated geometry.
func New(name string) *Model {
	return &Model{
		Name:          name,
		CullBackFaces: true,
		FrontIsCCW:    true,
	}
}

// AddVertex appends the point (x, y, z, 1) and returns its index.
func (m *Model) AddVertex(x, y, z float32) int {
	m.Vertices = append(m.Vertices, math.NewPoint(x, y, z))
	return len(m.Vertices) - 1
}

// AddPrimitive appends primitives to the model.
func (m *Model) AddPrimitive(ps ...*Primitive) {
	m.Primitives = append(m.Primitives, ps...)
}

// AddColor appends a color and returns its index.
func (m *Model) AddColor(c framebuffer.Color) int {
	m.Colors = append(m.Colors, c)
	return len(m.Colors) - 1
}

// AddTexture appends a texture and returns its index.
func (m *Model) AddTexture(t *texture.Texture) int {
	m.Textures = append(m.Textures, t)
	return len(m.Textures) - 1
}

// AddTexCoord appends the texture coordinate (s, t) and returns its index.
func (m *Model) AddTexCoord(s, t float32) int {
	m.TexCoords = append(m.TexCoords, math.Vec2{X: s, Y: t})
	return len(m.TexCoords) - 1
}

// AddNested attaches a child model positioned by the given matrix.
func (m *Model) AddNested(child *Model, matrix math.Mat4) {
	m.Nested = append(m.Nested, Nested{Model: child, Matrix: matrix})
}

// minVertices maps each kind to the smallest legal vertex-index count.
var minVertices = map[Kind]int{
	Point:         1,
	Points:        1,
	LineSegment:   2,
	Lines:         2,
	LineStrip:     2,
	LineLoop:      2,
	LineFan:       2,
	Face:          3,
	Triangle:      3,
	Triangles:     3,
	TriangleStrip: 3,
	TriangleFan:   3,
}

// Validate checks every primitive's index lists against the model's arenas.
// An out-of-range index is a builder bug, so rendering a model that fails
// validation is a fatal error, not a recoverable condition.
func (m *Model) Validate() error {
	for pi, p := range m.Primitives {
		if err := m.validatePrimitive(p); err != nil {
			return errors.Wrapf(err, "model %q: primitive %d (%s)", m.Name, pi, p.Kind)
		}
	}
	for _, n := range m.Nested {
		if n.Model == nil {
			return errors.Errorf("model %q: nested entry with nil model", m.Name)
		}
		if err := n.Model.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (m *Model) validatePrimitive(p *Primitive) error {
	n := len(p.Vertices)
	min, ok := minVertices[p.Kind]
	if !ok {
		return errors.Errorf("unknown kind %d", p.Kind)
	}
	if n < min {
		return errors.Errorf("%d vertex indices, need at least %d", n, min)
	}
	switch p.Kind {
	case Point:
		if n != 1 {
			return errors.Errorf("Point holds %d indices, want exactly 1", n)
		}
	case LineSegment:
		if n != 2 {
			return errors.Errorf("LineSegment holds %d indices, want exactly 2", n)
		}
	case Triangle:
		if n != 3 {
			return errors.Errorf("Triangle holds %d indices, want exactly 3", n)
		}
	case Lines:
		if n%2 != 0 {
			return errors.Errorf("Lines holds %d indices, want an even count", n)
		}
	case Triangles:
		if n%3 != 0 {
			return errors.Errorf("Triangles holds %d indices, want a multiple of 3", n)
		}
	}

	for _, vi := range p.Vertices {
		if vi < 0 || vi >= len(m.Vertices) {
			return errors.Errorf("vertex index %d out of range [0,%d)", vi, len(m.Vertices))
		}
	}

	if len(p.FrontColors) == 0 {
		if len(m.Colors) == 0 {
			return errors.New("flat-shaded primitive but the model has no colors")
		}
	} else if len(p.FrontColors) != n {
		return errors.Errorf("%d front colors for %d vertices", len(p.FrontColors), n)
	}
	for _, ci := range p.FrontColors {
		if ci < 0 || ci >= len(m.Colors) {
			return errors.Errorf("front color index %d out of range [0,%d)", ci, len(m.Colors))
		}
	}
	if len(p.BackColors) != 0 && len(p.BackColors) != n {
		return errors.Errorf("%d back colors for %d vertices", len(p.BackColors), n)
	}
	for _, ci := range p.BackColors {
		if ci < 0 || ci >= len(m.Colors) {
			return errors.Errorf("back color index %d out of range [0,%d)", ci, len(m.Colors))
		}
	}

	if p.Texture >= 0 {
		if p.Texture >= len(m.Textures) {
			return errors.Errorf("texture index %d out of range [0,%d)", p.Texture, len(m.Textures))
		}
		if len(p.TexCoords) != n {
			return errors.Errorf("%d texture coordinates for %d vertices", len(p.TexCoords), n)
		}
		for _, ti := range p.TexCoords {
			if ti < 0 || ti >= len(m.TexCoords) {
				return errors.Errorf("texture coordinate index %d out of range [0,%d)", ti, len(m.TexCoords))
			}
		}
	}
	return nil
}
