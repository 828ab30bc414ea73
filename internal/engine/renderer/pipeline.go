// Package renderer implements the CPU rendering pipeline: scene-tree
// traversal with an accumulated transformation matrix, back-face culling,
// primitive assembly, near-plane and view-volume clipping, projection, and
// scanline rasterization into a framebuffer viewport.
package renderer

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Faultbox/prism/internal/engine/framebuffer"
	"github.com/Faultbox/prism/internal/engine/model"
	"github.com/Faultbox/prism/internal/engine/scene"
	"github.com/Faultbox/prism/internal/engine/texture"
	"github.com/Faultbox/prism/pkg/math"
)

// vertex is a camera-space vertex carrying its shading attributes through
// assembly and near clipping.
type vertex struct {
	pos   math.Vec4
	color framebuffer.Color
	uv    math.Vec2
}

func lerpVertex(a, b vertex, t float32) vertex {
	return vertex{
		pos:   a.pos.Lerp(b.pos, t),
		color: a.color.Lerp(b.color, t),
		uv:    a.uv.Lerp(b.uv, t),
	}
}

type atomKind uint8

const (
	atomPoint atomKind = iota
	atomSegment
	atomTriangle
)

// atom is an assembled rendering unit: a point, a line segment, or a
// triangle, with resolved colors and an optional texture binding.
type atom struct {
	kind atomKind
	v    [3]vertex
	tex  *texture.Texture
}

// stats collects per-render counters for debug logging.
type stats struct {
	models    int
	culled    int
	atoms     int
	clipped   int
	fragments int
}

// run holds the per-render state shared by the pipeline stages.
type run struct {
	cfg   Config
	vp    *framebuffer.Viewport
	persp bool
	near  float32
	norm  math.Mat4
	st    stats
}

// Render draws the scene into the viewport, mutating its color and depth
// planes in place. Scene and model data are treated as immutable for the
// duration of the call; malformed index data is reported as an error before
// any pixel is touched.
func Render(s *scene.Scene, vp *framebuffer.Viewport, cfg Config) error {
	if s.Camera == nil {
		return errors.New("renderer: scene has no camera")
	}
	if err := s.Validate(); err != nil {
		return errors.Wrap(err, "renderer: invalid scene")
	}

	r := &run{
		cfg:   cfg,
		vp:    vp,
		persp: s.Camera.Perspective(),
		near:  s.Camera.Near(),
		norm:  s.Camera.NormalizeMatrix(),
	}

	view := s.Camera.View()
	for _, p := range s.Positions {
		r.position(p, view)
	}

	if cfg.gammaEnabled() {
		r.applyGamma()
	}

	cfg.logger().Debug("render complete",
		zap.Int("models", r.st.models),
		zap.Int("atoms", r.st.atoms),
		zap.Int("culled", r.st.culled),
		zap.Int("clipped_away", r.st.clipped),
		zap.Int("fragments", r.st.fragments),
	)
	return nil
}

// position walks one scene-tree node. ctm maps the node's parent frame to
// view space; the node's own matrix is folded in before its model and
// children are visited. Invisible subtrees are skipped entirely.
func (r *run) position(p *scene.Position, ctm math.Mat4) {
	if !p.Visible {
		return
	}
	ctm = ctm.Mul(p.Matrix)
	if p.Model != nil {
		r.model(p.Model, ctm)
	}
	for _, c := range p.Children() {
		r.position(c, ctm)
	}
}

// model transforms one model's vertices into view space, assembles and culls
// its primitives, and pushes the resulting atoms through clip, projection,
// and rasterization. Nested models inherit the accumulated matrix.
func (r *run) model(m *model.Model, ctm math.Mat4) {
	r.st.models++

	verts := make([]math.Vec4, len(m.Vertices))
	for i, v := range m.Vertices {
		verts[i] = ctm.MulVec4(v)
	}

	for _, a := range r.assemble(m, verts) {
		r.draw(a)
	}

	for _, n := range m.Nested {
		r.model(n.Model, ctm.Mul(n.Matrix))
	}
}

// draw clips one atom against the near plane, projects it, clips it against
// the view-volume sides, and rasterizes whatever survives.
func (r *run) draw(a atom) {
	r.st.atoms++
	switch a.kind {
	case atomPoint:
		r.drawPoint(a)
	case atomSegment:
		r.drawSegment(a)
	case atomTriangle:
		r.drawTriangle(a)
	}
}

func (r *run) drawPoint(a atom) {
	p := a.v[0]
	if r.cfg.NearClip && p.pos.Z > -r.near {
		r.st.clipped++
		return
	}
	s, ok := r.project(p)
	if !ok {
		r.st.clipped++
		return
	}
	if s.x < -1 || s.x > 1 || s.y < -1 || s.y > 1 {
		r.st.clipped++
		return
	}
	r.toPixels(&s)
	r.rasterPoint(s, a.tex)
}

func (r *run) drawSegment(a atom) {
	seg := []vertex{a.v[0], a.v[1]}
	if r.cfg.NearClip {
		seg = clipSeg(seg[0], seg[1], r.nearDist, lerpVertex)
		if len(seg) < 2 {
			r.st.clipped++
			return
		}
	}

	sv := make([]svtx, 0, 2)
	for _, v := range seg {
		s, ok := r.project(v)
		if !ok {
			r.st.clipped++
			return
		}
		sv = append(sv, s)
	}

	for _, plane := range ndcPlanes {
		sv = clipSeg(sv[0], sv[1], plane, lerpSvtx)
		if len(sv) < 2 {
			r.st.clipped++
			return
		}
	}

	for i := range sv {
		r.toPixels(&sv[i])
	}
	r.rasterLine(sv[0], sv[1], a.tex)
}

func (r *run) drawTriangle(a atom) {
	poly := []vertex{a.v[0], a.v[1], a.v[2]}
	if r.cfg.NearClip {
		poly = clipPoly(poly, r.nearDist, lerpVertex)
		if len(poly) < 3 {
			r.st.clipped++
			return
		}
	}

	sv := make([]svtx, 0, len(poly))
	for _, v := range poly {
		s, ok := r.project(v)
		if !ok {
			r.st.clipped++
			return
		}
		sv = append(sv, s)
	}

	// Each side plane can grow the polygon by one vertex.
	for _, plane := range ndcPlanes {
		sv = clipPoly(sv, plane, lerpSvtx)
		if len(sv) < 3 {
			r.st.clipped++
			return
		}
	}

	for i := range sv {
		r.toPixels(&sv[i])
	}
	// Fan re-triangulation of the clipped polygon.
	for i := 1; i < len(sv)-1; i++ {
		r.rasterTriangle(sv[0], sv[i], sv[i+1], a.tex)
	}
}

// nearDist is the signed distance to the near plane z = -near; points with
// z <= -near are inside (in front of the plane).
func (r *run) nearDist(v vertex) float32 {
	return -r.near - v.pos.Z
}
