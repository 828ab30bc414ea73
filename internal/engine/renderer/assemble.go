package renderer

import (
	"github.com/Faultbox/prism/internal/engine/model"
	"github.com/Faultbox/prism/internal/engine/texture"
	"github.com/Faultbox/prism/pkg/math"
)

// assemble decomposes a model's primitives into atomic points, segments, and
// triangles with resolved colors and texture bindings. verts holds the
// model's vertices already transformed into view space.
//
// Culling happens at two depths with the same orientation test: once on Face
// primitives before decomposition, and once on every assembled triangle.
func (r *run) assemble(m *model.Model, verts []math.Vec4) []atom {
	var out []atom
	for _, p := range m.Primitives {
		out = r.assemblePrimitive(out, m, p, verts)
	}
	return out
}

func (r *run) assemblePrimitive(out []atom, m *model.Model, p *model.Primitive, verts []math.Vec4) []atom {
	var tex *texture.Texture
	if p.Texture >= 0 {
		tex = m.Textures[p.Texture]
	}

	// vertexAt builds the attribute-carrying vertex for primitive slot i,
	// selecting back-face colors when a two-sided polygon is seen from
	// behind.
	vertexAt := func(i int, useBack bool) vertex {
		ci := p.FrontColorIndex(i)
		if useBack {
			ci = p.BackColorIndex(i)
		}
		v := vertex{
			pos:   verts[p.Vertices[i]],
			color: m.Colors[ci],
		}
		if tex != nil {
			v.uv = m.TexCoords[p.TexCoords[i]]
		}
		return v
	}

	point := func(i int) atom {
		return atom{kind: atomPoint, v: [3]vertex{vertexAt(i, false)}, tex: tex}
	}
	segment := func(i, j int) atom {
		return atom{kind: atomSegment, v: [3]vertex{vertexAt(i, false), vertexAt(j, false)}, tex: tex}
	}

	// triangle applies the post-assembly culling pass: the assembled
	// triangle's own orientation decides culling and two-sided shading,
	// regardless of which higher-order primitive produced it.
	triangle := func(i, j, k int) (atom, bool) {
		tri := [3]math.Vec4{verts[p.Vertices[i]], verts[p.Vertices[j]], verts[p.Vertices[k]]}
		front := frontFacing(facing(tri[:], r.persp), m.FrontIsCCW)
		if !front && m.CullBackFaces {
			r.st.culled++
			return atom{}, false
		}
		useBack := !front && m.TwoSided
		return atom{
			kind: atomTriangle,
			v:    [3]vertex{vertexAt(i, useBack), vertexAt(j, useBack), vertexAt(k, useBack)},
			tex:  tex,
		}, true
	}

	n := len(p.Vertices)
	switch p.Kind {
	case model.Point, model.Points:
		for i := 0; i < n; i++ {
			out = append(out, point(i))
		}

	case model.LineSegment:
		out = append(out, segment(0, 1))

	case model.Lines:
		for i := 0; i+1 < n; i += 2 {
			out = append(out, segment(i, i+1))
		}

	case model.LineStrip:
		for i := 0; i+1 < n; i++ {
			out = append(out, segment(i, i+1))
		}

	case model.LineLoop:
		for i := 0; i+1 < n; i++ {
			out = append(out, segment(i, i+1))
		}
		out = append(out, segment(n-1, 0))

	case model.LineFan:
		for i := 1; i < n; i++ {
			out = append(out, segment(0, i))
		}

	case model.Face:
		// Pre-assembly culling pass on the whole n-gon.
		poly := make([]math.Vec4, n)
		for i := 0; i < n; i++ {
			poly[i] = verts[p.Vertices[i]]
		}
		front := frontFacing(facing(poly, r.persp), m.FrontIsCCW)
		if !front && m.CullBackFaces {
			r.st.culled++
			return out
		}
		for i := 1; i+1 < n; i++ {
			if a, ok := triangle(0, i, i+1); ok {
				out = append(out, a)
			}
		}

	case model.Triangle:
		if a, ok := triangle(0, 1, 2); ok {
			out = append(out, a)
		}

	case model.Triangles:
		for i := 0; i+2 < n; i += 3 {
			if a, ok := triangle(i, i+1, i+2); ok {
				out = append(out, a)
			}
		}

	case model.TriangleStrip:
		// Alternate the winding every other triangle so the strip keeps a
		// single front-facing orientation.
		for i := 0; i+2 < n; i++ {
			var a atom
			var ok bool
			if i%2 == 0 {
				a, ok = triangle(i, i+1, i+2)
			} else {
				a, ok = triangle(i+1, i, i+2)
			}
			if ok {
				out = append(out, a)
			}
		}

	case model.TriangleFan:
		for i := 1; i+1 < n; i++ {
			if a, ok := triangle(0, i, i+1); ok {
				out = append(out, a)
			}
		}
	}
	return out
}
