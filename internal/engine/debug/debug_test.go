package debug

import (
	"testing"

	"github.com/Faultbox/prism/internal/engine/framebuffer"
	"github.com/Faultbox/prism/internal/engine/model"
	"github.com/Faultbox/prism/pkg/math"
)

func TestGridLineCount(t *testing.T) {
	// extent 2, step 1: lines at -2, -1, 0, 1, 2 in both directions.
	g := Grid(2, 1, 0, framebuffer.RGB(0.5, 0.5, 0.5))
	if got := len(g.Primitives); got != 10 {
		t.Fatalf("primitive count = %d, want 10", got)
	}
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if g.CullBackFaces {
		t.Error("grid should not cull")
	}
}

func TestBoundingBox(t *testing.T) {
	m := model.New("m")
	m.AddColor(framebuffer.RGB(1, 1, 1))
	m.AddVertex(-1, 0, 2)
	m.AddVertex(3, -2, 0)
	m.AddVertex(1, 1, -4)

	b := BoundingBox(m, framebuffer.RGB(1, 1, 0))
	if b == nil {
		t.Fatal("expected a box")
	}
	if got := len(b.Primitives); got != 12 {
		t.Fatalf("edge count = %d, want 12", got)
	}
	if err := b.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	// Every corner must lie on the hull of the accumulated bounds.
	for _, v := range b.Vertices {
		if v.X < -1 || v.X > 3 || v.Y < -2 || v.Y > 1 || v.Z < -4 || v.Z > 2 {
			t.Errorf("corner %v outside expected bounds", v)
		}
	}
}

func TestBoundingBoxIncludesNested(t *testing.T) {
	parent := model.New("parent")
	parent.AddColor(framebuffer.RGB(1, 1, 1))
	parent.AddVertex(0, 0, 0)

	child := model.New("child")
	child.AddColor(framebuffer.RGB(1, 1, 1))
	child.AddVertex(1, 1, 1)
	parent.AddNested(child, math.Translate(5, 0, 0))

	b := BoundingBox(parent, framebuffer.RGB(1, 1, 0))
	if b == nil {
		t.Fatal("expected a box")
	}

	maxX := float32(-100)
	for _, v := range b.Vertices {
		if v.X > maxX {
			maxX = v.X
		}
	}
	if maxX != 6 {
		t.Fatalf("max x = %g, want 6 (nested child at +5 offset)", maxX)
	}
}

func TestBoundingBoxEmpty(t *testing.T) {
	if b := BoundingBox(model.New("empty"), framebuffer.RGB(1, 1, 0)); b != nil {
		t.Fatal("expected nil for a model without vertices")
	}
}
