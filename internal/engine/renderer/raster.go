package renderer

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/prism/internal/engine/framebuffer"
	"github.com/Faultbox/prism/internal/engine/texture"
)

// svtx is a projected vertex. After project() the position is in image-plane
// coordinates; toPixels() rescales it to viewport pixels. For perspective
// cameras the shading attributes are pre-divided by w (stored as iw = 1/-z),
// so plain linear interpolation of an svtx, both in the side-plane clipper
// and in the rasterizer, is perspective-correct. Orthographic vertices keep
// iw = 1 and plain attributes, and carry the exact view-space z.
type svtx struct {
	x, y       float32
	z          float32 // view-space z; exact under orthographic projection
	iw         float32 // 1/(-z) under perspective, 1 under orthographic
	r, g, b, a float32
	s, t       float32
}

func lerpSvtx(a, b svtx, t float32) svtx {
	return svtx{
		x:  a.x + (b.x-a.x)*t,
		y:  a.y + (b.y-a.y)*t,
		z:  a.z + (b.z-a.z)*t,
		iw: a.iw + (b.iw-a.iw)*t,
		r:  a.r + (b.r-a.r)*t,
		g:  a.g + (b.g-a.g)*t,
		b:  a.b + (b.b-a.b)*t,
		a:  a.a + (b.a-a.a)*t,
		s:  a.s + (b.s-a.s)*t,
		t:  a.t + (b.t-a.t)*t,
	}
}

// project maps a camera-space vertex into image-plane coordinates, applying
// the camera's view-volume normalization and, for perspective cameras, the
// divide by -z. Reports false for perspective vertices at or behind the
// camera plane, which can only be reached with near clipping disabled.
func (r *run) project(v vertex) (svtx, bool) {
	p := r.norm.MulVec4(v.pos)

	if r.persp {
		if p.Z >= -1e-6 {
			return svtx{}, false
		}
		iw := 1 / -p.Z
		return svtx{
			x: p.X * iw, y: p.Y * iw,
			z: p.Z, iw: iw,
			r: v.color.R * iw, g: v.color.G * iw, b: v.color.B * iw, a: v.color.A * iw,
			s: v.uv.X * iw, t: v.uv.Y * iw,
		}, true
	}

	return svtx{
		x: p.X, y: p.Y,
		z: p.Z, iw: 1,
		r: v.color.R, g: v.color.G, b: v.color.B, a: v.color.A,
		s: v.uv.X, t: v.uv.Y,
	}, true
}

// toPixels rescales image-plane coordinates in [-1, 1] to viewport pixel
// coordinates, flipping y so row 0 is the top of the image. The corners of
// the view volume land exactly on the corner pixels.
func (r *run) toPixels(v *svtx) {
	w, h := r.vp.Size()
	v.x = (v.x + 1) * 0.5 * float32(w-1)
	v.y = (1 - v.y) * 0.5 * float32(h-1)
}

// viewZ recovers the fragment's view-space z from interpolated fields.
func (r *run) viewZ(v svtx) float32 {
	if r.persp {
		return -1 / v.iw
	}
	return v.z
}

// shade resolves the fragment color: the perspective divide of the
// interpolated attributes, then texture sampling when a texture is bound.
// Textured fragments take the texel color; the texel's alpha later blends
// them over whatever the framebuffer already holds.
func (r *run) shade(v svtx, tex *texture.Texture) framebuffer.Color {
	inv := 1 / v.iw
	if tex != nil {
		return tex.Sample(v.s*inv, v.t*inv, r.cfg.Bilinear)
	}
	return framebuffer.Color{R: v.r * inv, G: v.g * inv, B: v.b * inv, A: v.a * inv}
}

// fragment performs the depth test and commits one pixel. coverage below 1
// (anti-aliased edges) attenuates the fragment's alpha; the depth plane is
// only written for fragments at half coverage or more, so AA fringes do not
// occlude later opaque geometry.
func (r *run) fragment(x, y int, z float32, c framebuffer.Color, coverage float32) {
	if !r.vp.Contains(x, y) {
		return
	}
	// Closer wins: depth is view-space z, larger is nearer. Ties lose.
	if z <= r.vp.Depth(x, y) {
		return
	}

	if coverage < 1 {
		c.A *= coverage
	}
	if c.A <= 0 {
		return
	}

	out := c
	if c.A < 1 {
		out = c.Over(r.vp.Pixel(x, y))
	} else {
		out.A = 1
	}

	r.vp.SetPixel(x, y, out)
	if coverage >= 0.5 {
		r.vp.SetDepth(x, y, z)
	}
	r.st.fragments++
}

// applyGamma converts the finished viewport to display space. The buffer
// stays linear throughout rasterization so alpha compositing blends linear
// values; correction happens exactly once per pixel, background included.
func (r *run) applyGamma() {
	inv := 1 / r.cfg.Gamma
	w, h := r.vp.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := r.vp.Pixel(x, y)
			p.R = math32.Pow(p.R, inv)
			p.G = math32.Pow(p.G, inv)
			p.B = math32.Pow(p.B, inv)
			r.vp.SetPixel(x, y, p)
		}
	}
}

// edge is the standard edge function: positive when (x, y) lies to the left
// of the directed edge a -> b.
func edge(a, b svtx, x, y float32) float32 {
	return (b.x-a.x)*(y-a.y) - (b.y-a.y)*(x-a.x)
}

// aaOffsets are the 2x2 supersampling positions around a pixel center.
var aaOffsets = [4][2]float32{
	{-0.25, -0.25}, {0.25, -0.25}, {-0.25, 0.25}, {0.25, 0.25},
}

// rasterTriangle fills one screen-space triangle with barycentric
// interpolation and the z-buffer test.
func (r *run) rasterTriangle(a, b, c svtx, tex *texture.Texture) {
	area := edge(a, b, c.x, c.y)
	if area == 0 {
		return
	}
	// Orient so the edge functions are positive inside; culling may be off,
	// so both windings reach the rasterizer.
	if area < 0 {
		b, c = c, b
		area = -area
	}

	w, h := r.vp.Size()
	minX := int(math32.Floor(math32.Min(a.x, math32.Min(b.x, c.x))))
	maxX := int(math32.Ceil(math32.Max(a.x, math32.Max(b.x, c.x))))
	minY := int(math32.Floor(math32.Min(a.y, math32.Min(b.y, c.y))))
	maxY := int(math32.Ceil(math32.Max(a.y, math32.Max(b.y, c.y))))
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX > w-1 {
		maxX = w - 1
	}
	if maxY > h-1 {
		maxY = h - 1
	}

	invArea := 1 / area
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			px, py := float32(x), float32(y)

			coverage := float32(1)
			if r.cfg.AntiAlias {
				hits := 0
				for _, off := range aaOffsets {
					if r.insideTriangle(a, b, c, px+off[0], py+off[1]) {
						hits++
					}
				}
				if hits == 0 {
					continue
				}
				coverage = float32(hits) / 4
			} else if !r.insideTriangle(a, b, c, px, py) {
				continue
			}

			// Barycentric weights at the pixel center, clamped for AA
			// fringe pixels whose center lies just outside.
			l0 := edge(b, c, px, py) * invArea
			l1 := edge(c, a, px, py) * invArea
			l2 := edge(a, b, px, py) * invArea
			if l0 < 0 || l1 < 0 || l2 < 0 {
				l0 = math32.Max(0, l0)
				l1 = math32.Max(0, l1)
				l2 = math32.Max(0, l2)
				sum := l0 + l1 + l2
				if sum == 0 {
					continue
				}
				l0, l1, l2 = l0/sum, l1/sum, l2/sum
			}

			f := svtx{
				z:  l0*a.z + l1*b.z + l2*c.z,
				iw: l0*a.iw + l1*b.iw + l2*c.iw,
				r:  l0*a.r + l1*b.r + l2*c.r,
				g:  l0*a.g + l1*b.g + l2*c.g,
				b:  l0*a.b + l1*b.b + l2*c.b,
				a:  l0*a.a + l1*b.a + l2*c.a,
				s:  l0*a.s + l1*b.s + l2*c.s,
				t:  l0*a.t + l1*b.t + l2*c.t,
			}
			r.fragment(x, y, r.viewZ(f), r.shade(f, tex), coverage)
		}
	}
}

func (r *run) insideTriangle(a, b, c svtx, x, y float32) bool {
	return edge(a, b, x, y) >= 0 && edge(b, c, x, y) >= 0 && edge(c, a, x, y) >= 0
}

// rasterLine steps a segment with DDA, interpolating all attributes. With
// anti-aliasing on, each step splits its intensity between the two pixels
// straddling the minor axis.
func (r *run) rasterLine(a, b svtx, tex *texture.Texture) {
	dx := b.x - a.x
	dy := b.y - a.y
	steps := int(math32.Ceil(math32.Max(math32.Abs(dx), math32.Abs(dy))))
	if steps == 0 {
		r.rasterPoint(a, tex)
		return
	}

	xMajor := math32.Abs(dx) >= math32.Abs(dy)
	for i := 0; i <= steps; i++ {
		t := float32(i) / float32(steps)
		v := lerpSvtx(a, b, t)
		z := r.viewZ(v)
		c := r.shade(v, tex)

		if !r.cfg.AntiAlias {
			r.fragment(int(math32.Round(v.x)), int(math32.Round(v.y)), z, c, 1)
			continue
		}

		// Wu-style intensity split across the minor axis.
		if xMajor {
			x := int(math32.Round(v.x))
			y0 := int(math32.Floor(v.y))
			f := v.y - float32(y0)
			r.fragment(x, y0, z, c, 1-f)
			r.fragment(x, y0+1, z, c, f)
		} else {
			y := int(math32.Round(v.y))
			x0 := int(math32.Floor(v.x))
			f := v.x - float32(x0)
			r.fragment(x0, y, z, c, 1-f)
			r.fragment(x0+1, y, z, c, f)
		}
	}
}

// rasterPoint writes a single fragment at the rounded position.
func (r *run) rasterPoint(v svtx, tex *texture.Texture) {
	r.fragment(int(math32.Round(v.x)), int(math32.Round(v.y)), r.viewZ(v), r.shade(v, tex), 1)
}
