// Package main renders a demonstration scene and writes it to an image file.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/prism/internal/config"
	"github.com/Faultbox/prism/internal/engine/camera"
	"github.com/Faultbox/prism/internal/engine/debug"
	"github.com/Faultbox/prism/internal/engine/framebuffer"
	"github.com/Faultbox/prism/internal/engine/model"
	"github.com/Faultbox/prism/internal/engine/renderer"
	"github.com/Faultbox/prism/internal/engine/scene"
	"github.com/Faultbox/prism/internal/engine/texture"
	"github.com/Faultbox/prism/internal/logger"
	"github.com/Faultbox/prism/pkg/math"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Log.Info("=== Prism demo ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Log.Error("render failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	s, err := buildScene(cfg.Renderer.Overlay)
	if err != nil {
		return err
	}

	bg := framebuffer.RGB(cfg.Graphics.Background[0], cfg.Graphics.Background[1], cfg.Graphics.Background[2])
	fb := framebuffer.New(cfg.Graphics.Width, cfg.Graphics.Height, bg)

	rcfg := renderer.Config{
		NearClip:  cfg.Renderer.NearClip,
		AntiAlias: cfg.Renderer.AntiAlias,
		Gamma:     cfg.Renderer.Gamma,
		Bilinear:  cfg.Renderer.Bilinear,
		Logger:    logger.Log,
	}

	start := time.Now()
	if err := renderer.Render(s, fb.FullViewport(), rcfg); err != nil {
		return err
	}
	logger.Log.Info("frame rendered",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Duration("took", time.Since(start)),
	)

	return writeFrame(fb, cfg.Output.Format, cfg.Output.Path)
}

// buildScene assembles the demo: a checkerboard floor, a colored cube with a
// nested satellite cube, and a wireframe copy hovering beside them. With
// overlay set, a reference grid and the cube's bounding box are added.
func buildScene(overlay bool) (*scene.Scene, error) {
	cam, err := camera.NewPerspective(-1, 1, -0.75, 0.75, 0.1)
	if err != nil {
		return nil, err
	}
	cam.LookAt(
		math.Vec3{X: 3, Y: 2.5, Z: 4},
		math.Vec3{Y: 0.5},
		math.Vec3{Y: 1},
	)

	cube := coloredCube()
	cube.AddNested(coloredCube(), math.Translate(0, 1.2, 0).Mul(math.Scale(0.4, 0.4, 0.4)))

	wire := coloredCube().Wireframe()

	s := scene.New(cam).Add(
		scene.NewPosition("floor", floorModel()),
		scene.NewPosition("cube", cube).Transform(math.Translate(0, 0.5, 0)),
		scene.NewPosition("wire", wire).Transform(
			math.Translate(-1.8, 0.5, -0.5).Mul(math.RotateY(0.6)),
		),
	)

	if overlay {
		s.Add(scene.NewPosition("grid", debug.Grid(3, 0.5, 0.01, framebuffer.RGB(0.4, 0.4, 0.4))))
		if bbox := debug.BoundingBox(cube, framebuffer.RGB(1, 1, 0)); bbox != nil {
			s.Add(scene.NewPosition("cube-bbox", bbox).Transform(math.Translate(0, 0.5, 0)))
		}
	}
	return s, nil
}

// floorModel is a textured ground quad on y = 0.
func floorModel() *model.Model {
	m := model.New("floor")
	m.AddColor(framebuffer.RGB(1, 1, 1))
	ti := m.AddTexture(texture.Checkerboard(128, 128, 16,
		framebuffer.RGB(0.9, 0.9, 0.9), framebuffer.RGB(0.25, 0.25, 0.3)))

	v0 := m.AddVertex(-3, 0, 3)
	v1 := m.AddVertex(3, 0, 3)
	v2 := m.AddVertex(3, 0, -3)
	v3 := m.AddVertex(-3, 0, -3)
	uv0 := m.AddTexCoord(0, 0)
	uv1 := m.AddTexCoord(4, 0)
	uv2 := m.AddTexCoord(4, 4)
	uv3 := m.AddTexCoord(0, 4)

	m.AddPrimitive(model.NewPrimitive(model.Face, v0, v1, v2, v3).
		WithTexture(ti, uv0, uv1, uv2, uv3))
	m.CullBackFaces = false
	return m
}

// coloredCube is a unit cube centered on the origin with one flat color per
// face, wound counterclockwise seen from outside.
func coloredCube() *model.Model {
	m := model.New("cube")

	// 8 corners
	var idx [8]int
	corners := [8][3]float32{
		{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5},
		{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5},
	}
	for i, c := range corners {
		idx[i] = m.AddVertex(c[0], c[1], c[2])
	}

	faces := []struct {
		v [4]int
		c framebuffer.Color
	}{
		{[4]int{0, 1, 2, 3}, framebuffer.RGB(0.9, 0.2, 0.2)}, // front
		{[4]int{5, 4, 7, 6}, framebuffer.RGB(0.2, 0.9, 0.2)}, // back
		{[4]int{4, 0, 3, 7}, framebuffer.RGB(0.2, 0.2, 0.9)}, // left
		{[4]int{1, 5, 6, 2}, framebuffer.RGB(0.9, 0.9, 0.2)}, // right
		{[4]int{3, 2, 6, 7}, framebuffer.RGB(0.2, 0.9, 0.9)}, // top
		{[4]int{4, 5, 1, 0}, framebuffer.RGB(0.9, 0.2, 0.9)}, // bottom
	}
	for _, f := range faces {
		ci := m.AddColor(f.c)
		m.AddPrimitive(model.NewPrimitive(model.Face, idx[f.v[0]], idx[f.v[1]], idx[f.v[2]], idx[f.v[3]]).
			WithColors(ci, ci, ci, ci))
	}
	return m
}

func writeFrame(fb *framebuffer.FrameBuffer, format, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch format {
	case "ppm":
		err = fb.WritePPM(f)
	default:
		err = fb.WritePNG(f)
	}
	if err != nil {
		return err
	}

	logger.Log.Info("frame written", zap.String("path", path), zap.String("format", format))
	return f.Close()
}
