package renderer

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/prism/internal/engine/camera"
	"github.com/Faultbox/prism/internal/engine/framebuffer"
	"github.com/Faultbox/prism/internal/engine/model"
	"github.com/Faultbox/prism/internal/engine/scene"
	"github.com/Faultbox/prism/internal/engine/texture"
	"github.com/Faultbox/prism/pkg/math"
)

func orthoCam(t *testing.T) *camera.Camera {
	t.Helper()
	cam, err := camera.NewOrthographic(-1, 1, -1, 1, 0.1)
	if err != nil {
		t.Fatalf("NewOrthographic: %v", err)
	}
	return cam
}

func perspCam(t *testing.T) *camera.Camera {
	t.Helper()
	cam, err := camera.NewPerspective(-1, 1, -1, 1, 0.1)
	if err != nil {
		t.Fatalf("NewPerspective: %v", err)
	}
	return cam
}

// quadModel builds a counterclockwise square of half-extent half on the plane
// z = z, filled with a single flat color.
func quadModel(c framebuffer.Color, half, z float32) *model.Model {
	m := model.New("quad")
	m.AddColor(c)
	v0 := m.AddVertex(-half, -half, z)
	v1 := m.AddVertex(half, -half, z)
	v2 := m.AddVertex(half, half, z)
	v3 := m.AddVertex(-half, half, z)
	m.AddPrimitive(model.NewPrimitive(model.Face, v0, v1, v2, v3))
	return m
}

func renderInto(t *testing.T, s *scene.Scene, cfg Config) *framebuffer.FrameBuffer {
	t.Helper()
	fb := framebuffer.New(64, 64, framebuffer.RGB(0, 0, 0))
	if err := Render(s, fb.FullViewport(), cfg); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return fb
}

func sameColor(a, b framebuffer.Color) bool {
	return nearf(a.R, b.R) && nearf(a.G, b.G) && nearf(a.B, b.B)
}

func TestRenderOrthographicQuad(t *testing.T) {
	red := framebuffer.RGB(1, 0, 0)
	s := scene.New(orthoCam(t)).Add(scene.NewPosition("", quadModel(red, 0.5, -5)))

	fb := renderInto(t, s, DefaultConfig())

	// The quad spans half the view volume; its interior pixels take the flat
	// color, everything outside keeps the background.
	if got := fb.PixelAt(32, 32); !sameColor(got, red) {
		t.Errorf("center pixel = %v, want red", got)
	}
	if got := fb.PixelAt(10, 32); !sameColor(got, framebuffer.RGB(0, 0, 0)) {
		t.Errorf("pixel left of the quad = %v, want background", got)
	}
	if got := fb.PixelAt(0, 0); !sameColor(got, framebuffer.RGB(0, 0, 0)) {
		t.Errorf("corner pixel = %v, want background", got)
	}
	if z := fb.DepthAt(32, 32); !nearf(z, -5) {
		t.Errorf("center depth = %g, want -5", z)
	}
}

func TestRenderDepthOrderIndependent(t *testing.T) {
	red := framebuffer.RGB(1, 0, 0)
	green := framebuffer.RGB(0, 1, 0)

	build := func(nearFirst bool) *scene.Scene {
		far := scene.NewPosition("far", quadModel(red, 0.9, -5))
		near := scene.NewPosition("near", quadModel(green, 0.3, -2))
		s := scene.New(orthoCam(t))
		if nearFirst {
			return s.Add(near, far)
		}
		return s.Add(far, near)
	}

	for _, nearFirst := range []bool{false, true} {
		fb := renderInto(t, build(nearFirst), DefaultConfig())
		if got := fb.PixelAt(32, 32); !sameColor(got, green) {
			t.Errorf("nearFirst=%t: overlap pixel = %v, want green", nearFirst, got)
		}
		if got := fb.PixelAt(10, 32); !sameColor(got, red) {
			t.Errorf("nearFirst=%t: far-only pixel = %v, want red", nearFirst, got)
		}
		if z := fb.DepthAt(32, 32); !nearf(z, -2) {
			t.Errorf("nearFirst=%t: overlap depth = %g, want -2", nearFirst, z)
		}
	}
}

func TestRenderAlphaBlending(t *testing.T) {
	red := framebuffer.RGB(1, 0, 0)
	halfBlue := framebuffer.Color{B: 1, A: 0.5}

	s := scene.New(orthoCam(t)).Add(
		scene.NewPosition("base", quadModel(red, 0.9, -5)),
		scene.NewPosition("glass", quadModel(halfBlue, 0.3, -2)),
	)

	fb := renderInto(t, s, DefaultConfig())
	if got := fb.PixelAt(32, 32); !sameColor(got, framebuffer.RGB(0.5, 0, 0.5)) {
		t.Errorf("blended pixel = %v, want half red half blue", got)
	}
}

func TestRenderSkipsInvisibleFragments(t *testing.T) {
	clear := framebuffer.Color{R: 1, G: 1, B: 1, A: 0}
	s := scene.New(orthoCam(t)).Add(scene.NewPosition("", quadModel(clear, 0.5, -5)))

	fb := renderInto(t, s, DefaultConfig())
	if got := fb.PixelAt(32, 32); !sameColor(got, framebuffer.RGB(0, 0, 0)) {
		t.Errorf("pixel = %v, want untouched background", got)
	}
	if z := fb.DepthAt(32, 32); !math32.IsInf(z, -1) {
		t.Errorf("depth = %g, want untouched", z)
	}
}

func TestRenderNearClipDropsForeground(t *testing.T) {
	// Entirely between the camera and the near plane: nothing survives.
	s := scene.New(orthoCam(t)).Add(scene.NewPosition("", quadModel(framebuffer.RGB(1, 0, 0), 0.5, -0.05)))

	fb := renderInto(t, s, DefaultConfig())
	for _, p := range [][2]int{{32, 32}, {20, 20}, {45, 45}} {
		if got := fb.PixelAt(p[0], p[1]); !sameColor(got, framebuffer.RGB(0, 0, 0)) {
			t.Fatalf("pixel (%d,%d) = %v, want background", p[0], p[1], got)
		}
	}
}

func TestRenderPerspectivePoint(t *testing.T) {
	white := framebuffer.RGB(1, 1, 1)
	m := model.New("dot")
	m.AddColor(white)
	v := m.AddVertex(1, 0, -2)
	m.AddPrimitive(model.NewPrimitive(model.Point, v))

	s := scene.New(perspCam(t)).Add(scene.NewPosition("", m))

	// x/-z = 0.5 on the view plane, so the point lands right of center.
	fb := renderInto(t, s, DefaultConfig())
	if got := fb.PixelAt(47, 32); !sameColor(got, white) {
		t.Errorf("pixel (47,32) = %v, want white", got)
	}
}

func TestRenderCameraTranslate(t *testing.T) {
	white := framebuffer.RGB(1, 1, 1)
	m := model.New("dot")
	m.AddColor(white)
	m.AddPrimitive(model.NewPrimitive(model.Point, m.AddVertex(1, 0, -2)))

	cam := perspCam(t)
	cam.Translate(1, 0, 0)
	s := scene.New(cam).Add(scene.NewPosition("", m))

	// Moving the camera onto the point's x puts it in the view center.
	fb := renderInto(t, s, DefaultConfig())
	if got := fb.PixelAt(32, 32); !sameColor(got, white) {
		t.Errorf("center pixel = %v, want white", got)
	}
}

func TestRenderLineSegment(t *testing.T) {
	white := framebuffer.RGB(1, 1, 1)
	m := model.New("line")
	m.AddColor(white)
	a := m.AddVertex(-0.5, 0, -5)
	b := m.AddVertex(0.5, 0, -5)
	m.AddPrimitive(model.NewPrimitive(model.LineSegment, a, b))

	s := scene.New(orthoCam(t)).Add(scene.NewPosition("", m))
	fb := renderInto(t, s, DefaultConfig())

	if got := fb.PixelAt(32, 32); !sameColor(got, white) {
		t.Errorf("midpoint pixel = %v, want white", got)
	}
	if got := fb.PixelAt(2, 32); !sameColor(got, framebuffer.RGB(0, 0, 0)) {
		t.Errorf("pixel beyond the endpoint = %v, want background", got)
	}
}

func TestRenderNestedModels(t *testing.T) {
	red := framebuffer.RGB(1, 0, 0)
	blue := framebuffer.RGB(0, 0, 1)

	parent := quadModel(red, 0.2, -5)
	parent.AddNested(quadModel(blue, 0.2, -5), math.Translate(0.6, 0, 0))

	s := scene.New(orthoCam(t)).Add(
		scene.NewPosition("", parent).Transform(math.Translate(-0.6, 0, 0)),
	)
	fb := renderInto(t, s, DefaultConfig())

	// Parent at x = -0.6, nested child back at the origin.
	if got := fb.PixelAt(12, 32); !sameColor(got, red) {
		t.Errorf("parent pixel = %v, want red", got)
	}
	if got := fb.PixelAt(32, 32); !sameColor(got, blue) {
		t.Errorf("nested pixel = %v, want blue", got)
	}
}

func TestRenderSkipsInvisiblePositions(t *testing.T) {
	s := scene.New(orthoCam(t))
	p := scene.NewPosition("", quadModel(framebuffer.RGB(1, 0, 0), 0.9, -5))
	p.Visible = false
	s.Add(p)

	fb := renderInto(t, s, DefaultConfig())
	if got := fb.PixelAt(32, 32); !sameColor(got, framebuffer.RGB(0, 0, 0)) {
		t.Errorf("pixel = %v, want background", got)
	}
}

func TestRenderGamma(t *testing.T) {
	gray := framebuffer.RGB(0.25, 0.25, 0.25)
	s := scene.New(orthoCam(t)).Add(scene.NewPosition("", quadModel(gray, 0.5, -5)))

	cfg := DefaultConfig()
	cfg.Gamma = 2
	fb := renderInto(t, s, cfg)

	// 0.25^(1/2) = 0.5
	if got := fb.PixelAt(32, 32); !nearf(got.R, 0.5) {
		t.Errorf("gamma-corrected pixel = %v, want 0.5 gray", got)
	}
}

func TestRenderGammaAfterBlending(t *testing.T) {
	gray := framebuffer.RGB(0.25, 0.25, 0.25)
	halfRed := framebuffer.Color{R: 1, A: 0.5}

	s := scene.New(orthoCam(t)).Add(
		scene.NewPosition("base", quadModel(gray, 0.5, -5)),
		scene.NewPosition("tint", quadModel(halfRed, 0.3, -2)),
	)

	cfg := DefaultConfig()
	cfg.Gamma = 2
	fb := renderInto(t, s, cfg)

	// Compositing happens on linear values and gamma applies exactly once:
	// 0.5*1 + 0.5*0.25 = 0.625 -> sqrt = 0.79057 on red,
	// 0.5*0 + 0.5*0.25 = 0.125 -> sqrt = 0.35355 on green and blue.
	got := fb.PixelAt(32, 32)
	if !nearf(got.R, 0.79057) || !nearf(got.G, 0.35355) || !nearf(got.B, 0.35355) {
		t.Errorf("blended pixel = %v, want (0.79057, 0.35355, 0.35355)", got)
	}

	// An unblended pixel of the base quad corrects the same way.
	if got := fb.PixelAt(20, 32); !nearf(got.R, 0.5) {
		t.Errorf("base pixel = %v, want 0.5 gray", got)
	}
}

func TestRenderTransparentTextureKeepsUnderlying(t *testing.T) {
	red := framebuffer.RGB(1, 0, 0)

	tri := model.New("under")
	tri.AddColor(red)
	v0 := tri.AddVertex(-0.8, -0.8, -5)
	v1 := tri.AddVertex(0.8, -0.8, -5)
	v2 := tri.AddVertex(0, 0.8, -5)
	tri.AddPrimitive(model.NewPrimitive(model.Triangle, v0, v1, v2))

	// Every texel fully transparent.
	tex := texture.New(2, 2)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			tex.Set(x, y, framebuffer.RGB(0, 0, 1))
			tex.SetAlpha(x, y, 0)
		}
	}

	over := model.New("glass")
	over.AddColor(framebuffer.RGB(1, 1, 1))
	ti := over.AddTexture(tex)
	uv00 := over.AddTexCoord(0, 0)
	uv10 := over.AddTexCoord(1, 0)
	uv11 := over.AddTexCoord(1, 1)
	uv01 := over.AddTexCoord(0, 1)
	q0 := over.AddVertex(-0.5, -0.5, -2)
	q1 := over.AddVertex(0.5, -0.5, -2)
	q2 := over.AddVertex(0.5, 0.5, -2)
	q3 := over.AddVertex(-0.5, 0.5, -2)
	over.AddPrimitive(model.NewPrimitive(model.Face, q0, q1, q2, q3).
		WithTexture(ti, uv00, uv10, uv11, uv01))

	s := scene.New(orthoCam(t)).Add(
		scene.NewPosition("under", tri),
		scene.NewPosition("glass", over),
	)
	fb := renderInto(t, s, DefaultConfig())

	// The transparent texture leaves both color and depth alone.
	if got := fb.PixelAt(32, 32); !sameColor(got, red) {
		t.Errorf("overlap pixel = %v, want the underlying red", got)
	}
	if z := fb.DepthAt(32, 32); !nearf(z, -5) {
		t.Errorf("overlap depth = %g, want -5", z)
	}
}

func TestRenderTexturedQuad(t *testing.T) {
	tex := texture.New(1, 1)
	tex.Set(0, 0, framebuffer.RGB(0, 1, 0))

	m := model.New("textured")
	m.AddColor(framebuffer.RGB(1, 0, 0)) // texture must win over vertex color
	ti := m.AddTexture(tex)
	uv00 := m.AddTexCoord(0, 0)
	uv10 := m.AddTexCoord(1, 0)
	uv11 := m.AddTexCoord(1, 1)
	uv01 := m.AddTexCoord(0, 1)

	v0 := m.AddVertex(-0.5, -0.5, -5)
	v1 := m.AddVertex(0.5, -0.5, -5)
	v2 := m.AddVertex(0.5, 0.5, -5)
	v3 := m.AddVertex(-0.5, 0.5, -5)
	m.AddPrimitive(model.NewPrimitive(model.Face, v0, v1, v2, v3).
		WithTexture(ti, uv00, uv10, uv11, uv01))

	s := scene.New(orthoCam(t)).Add(scene.NewPosition("", m))
	fb := renderInto(t, s, DefaultConfig())

	if got := fb.PixelAt(32, 32); !sameColor(got, framebuffer.RGB(0, 1, 0)) {
		t.Errorf("textured pixel = %v, want texel green", got)
	}
}

func TestRenderAntiAliasedEdge(t *testing.T) {
	// A slanted edge must produce at least one partial-intensity pixel in the
	// row it crosses.
	m := model.New("slant")
	m.AddColor(framebuffer.RGB(1, 0, 0))
	v0 := m.AddVertex(-1, -1, -5)
	v1 := m.AddVertex(1, -1, -5)
	v2 := m.AddVertex(1, 0.9, -5)
	m.AddPrimitive(model.NewPrimitive(model.Triangle, v0, v1, v2))

	s := scene.New(orthoCam(t)).Add(scene.NewPosition("", m))
	cfg := DefaultConfig()
	cfg.AntiAlias = true
	fb := renderInto(t, s, cfg)

	partial := false
	for x := 0; x < 64; x++ {
		r := fb.PixelAt(x, 32).R
		if r > 0.05 && r < 0.95 {
			partial = true
			break
		}
	}
	if !partial {
		t.Fatal("no partial-coverage pixel found along the slanted edge")
	}
}

func TestRenderRejectsInvalidScene(t *testing.T) {
	m := model.New("broken")
	m.AddColor(framebuffer.RGB(1, 1, 1))
	m.AddVertex(0, 0, -5)
	m.AddPrimitive(model.NewPrimitive(model.Triangle, 0, 1, 2))

	s := scene.New(orthoCam(t)).Add(scene.NewPosition("", m))
	fb := framebuffer.New(8, 8, framebuffer.RGB(0, 0, 0))
	if err := Render(s, fb.FullViewport(), DefaultConfig()); err == nil {
		t.Fatal("expected an error for out-of-range vertex indices")
	}
}

func TestRenderRequiresCamera(t *testing.T) {
	fb := framebuffer.New(8, 8, framebuffer.RGB(0, 0, 0))
	if err := Render(&scene.Scene{}, fb.FullViewport(), DefaultConfig()); err == nil {
		t.Fatal("expected an error for a scene without a camera")
	}
}
