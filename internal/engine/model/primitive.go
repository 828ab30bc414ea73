package model

// Kind identifies a primitive variant. Higher-order kinds are decomposed by
// the pipeline into points, line segments, and triangles before clipping.
type Kind uint8

// Primitive kinds.
const (
	Point Kind = iota
	Points
	LineSegment
	Lines
	LineStrip
	LineLoop
	LineFan
	Face
	Triangle
	Triangles
	TriangleStrip
	TriangleFan
)

var kindNames = [...]string{
	"Point", "Points", "LineSegment", "Lines", "LineStrip", "LineLoop",
	"LineFan", "Face", "Triangle", "Triangles", "TriangleStrip", "TriangleFan",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// Polygonal reports whether the kind is orientable (has a front and a back
// face and participates in back-face culling).
func (k Kind) Polygonal() bool {
	return k >= Face
}

// Primitive references vertices, colors, and texture coordinates by index
// into the owning Model's arenas. The index slices are parallel: entry i of
// FrontColors (and BackColors and TexCoords, when present) belongs to entry i
// of Vertices.
type Primitive struct {
	Kind     Kind
	Vertices []int

	// FrontColors holds color-list indices parallel to Vertices. When empty
	// the primitive is flat-shaded with color 0.
	FrontColors []int

	// BackColors holds the color-list indices used when a two-sided polygonal
	// primitive is seen from behind. When empty the front colors are used.
	BackColors []int

	// Texture is a texture-list index, or -1 when the primitive is untextured.
	Texture int

	// TexCoords holds texture-coordinate-list indices parallel to Vertices.
	// Required when Texture >= 0.
	TexCoords []int
}

// NewPrimitive creates an untextured primitive over the given vertex indices.
func NewPrimitive(kind Kind, vertices ...int) *Primitive {
	return &Primitive{Kind: kind, Vertices: vertices, Texture: -1}
}

// WithColors sets the front-face color indices.
func (p *Primitive) WithColors(indices ...int) *Primitive {
	p.FrontColors = indices
	return p
}

// WithBackColors sets the back-face color indices.
func (p *Primitive) WithBackColors(indices ...int) *Primitive {
	p.BackColors = indices
	return p
}

// WithTexture binds a texture and its per-vertex coordinate indices.
func (p *Primitive) WithTexture(texture int, texCoords ...int) *Primitive {
	p.Texture = texture
	p.TexCoords = texCoords
	return p
}

// FrontColorIndex returns the color-list index for vertex slot i.
// Flat-shaded primitives (no explicit colors) use color 0.
func (p *Primitive) FrontColorIndex(i int) int {
	if len(p.FrontColors) == 0 {
		return 0
	}
	return p.FrontColors[i]
}

// BackColorIndex returns the back-face color-list index for vertex slot i,
// falling back to the front color when no back colors are set.
func (p *Primitive) BackColorIndex(i int) int {
	if len(p.BackColors) == 0 {
		return p.FrontColorIndex(i)
	}
	return p.BackColors[i]
}
