// Package debug provides debug visualization models: reference grids and
// wireframe bounding boxes that can be added to a scene like any other model.
package debug

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/prism/internal/engine/framebuffer"
	"github.com/Faultbox/prism/internal/engine/model"
	"github.com/Faultbox/prism/pkg/math"
)

// Grid builds a square line grid on the plane y = height, spanning
// [-extent, extent] on x and z with the given line spacing.
func Grid(extent, step, height float32, c framebuffer.Color) *model.Model {
	m := model.New("debug-grid")
	m.CullBackFaces = false
	m.AddColor(c)

	if step <= 0 {
		step = 1
	}
	for v := -extent; v <= extent+step/2; v += step {
		a := m.AddVertex(v, height, -extent)
		b := m.AddVertex(v, height, extent)
		m.AddPrimitive(model.NewPrimitive(model.LineSegment, a, b))

		a = m.AddVertex(-extent, height, v)
		b = m.AddVertex(extent, height, v)
		m.AddPrimitive(model.NewPrimitive(model.LineSegment, a, b))
	}
	return m
}

// BoundingBox builds a 12-edge wireframe box enclosing every vertex of m,
// including nested children under their local matrices. Returns nil for a
// model with no vertices anywhere.
func BoundingBox(m *model.Model, c framebuffer.Color) *model.Model {
	min := math.Vec3{X: math32.Inf(1), Y: math32.Inf(1), Z: math32.Inf(1)}
	max := math.Vec3{X: math32.Inf(-1), Y: math32.Inf(-1), Z: math32.Inf(-1)}
	if !accumulateBounds(m, math.Identity(), &min, &max) {
		return nil
	}
	return box(min, max, c)
}

func accumulateBounds(m *model.Model, ctm math.Mat4, min, max *math.Vec3) bool {
	found := len(m.Vertices) > 0
	for _, v := range m.Vertices {
		p := ctm.MulVec4(v).Vec3()
		min.X = math32.Min(min.X, p.X)
		min.Y = math32.Min(min.Y, p.Y)
		min.Z = math32.Min(min.Z, p.Z)
		max.X = math32.Max(max.X, p.X)
		max.Y = math32.Max(max.Y, p.Y)
		max.Z = math32.Max(max.Z, p.Z)
	}
	for _, n := range m.Nested {
		if accumulateBounds(n.Model, ctm.Mul(n.Matrix), min, max) {
			found = true
		}
	}
	return found
}

func box(min, max math.Vec3, c framebuffer.Color) *model.Model {
	m := model.New("debug-bbox")
	m.CullBackFaces = false
	m.AddColor(c)

	var idx [8]int
	i := 0
	for _, y := range [2]float32{min.Y, max.Y} {
		for _, z := range [2]float32{min.Z, max.Z} {
			for _, x := range [2]float32{min.X, max.X} {
				idx[i] = m.AddVertex(x, y, z)
				i++
			}
		}
	}

	// Corner layout: bit 0 = x, bit 1 = z, bit 2 = y.
	edges := [12][2]int{
		{0, 1}, {1, 3}, {3, 2}, {2, 0}, // bottom
		{4, 5}, {5, 7}, {7, 6}, {6, 4}, // top
		{0, 4}, {1, 5}, {2, 6}, {3, 7}, // verticals
	}
	for _, e := range edges {
		m.AddPrimitive(model.NewPrimitive(model.LineSegment, idx[e[0]], idx[e[1]]))
	}
	return m
}
