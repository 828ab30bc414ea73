package model

// Wireframe returns a copy of the model with every polygonal primitive
// replaced by a line loop over the same indices, so the mesh renders as
// edges only. Line and point primitives are kept as they are. The arenas
// are shared with the original; only the primitive list is new.
func (m *Model) Wireframe() *Model {
	out := m.shallowCopy(m.Name + "-wireframe")
	for _, p := range m.Primitives {
		if !p.Kind.Polygonal() {
			out.Primitives = append(out.Primitives, p)
			continue
		}
		loop := &Primitive{
			Kind:        LineLoop,
			Vertices:    p.Vertices,
			FrontColors: p.FrontColors,
			Texture:     -1,
		}
		out.Primitives = append(out.Primitives, loop)
	}
	for _, n := range m.Nested {
		out.Nested = append(out.Nested, Nested{Model: n.Model.Wireframe(), Matrix: n.Matrix})
	}
	// Edges have no facing, so culling flags are meaningless on the copy.
	out.CullBackFaces = false
	return out
}

// PointCloud returns a copy of the model with every primitive replaced by a
// point cloud over the same vertex indices.
func (m *Model) PointCloud() *Model {
	out := m.shallowCopy(m.Name + "-points")
	for _, p := range m.Primitives {
		pts := &Primitive{
			Kind:        Points,
			Vertices:    p.Vertices,
			FrontColors: p.FrontColors,
			Texture:     -1,
		}
		out.Primitives = append(out.Primitives, pts)
	}
	for _, n := range m.Nested {
		out.Nested = append(out.Nested, Nested{Model: n.Model.PointCloud(), Matrix: n.Matrix})
	}
	out.CullBackFaces = false
	return out
}

// shallowCopy shares the arenas but starts with empty primitive and nested
// lists.
func (m *Model) shallowCopy(name string) *Model {
	return &Model{
		Name:          name,
		Vertices:      m.Vertices,
		Colors:        m.Colors,
		Textures:      m.Textures,
		TexCoords:     m.TexCoords,
		CullBackFaces: m.CullBackFaces,
		FrontIsCCW:    m.FrontIsCCW,
		TwoSided:      m.TwoSided,
	}
}
