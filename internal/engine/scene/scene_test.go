package scene

import (
	"testing"

	"github.com/Faultbox/prism/internal/engine/camera"
	"github.com/Faultbox/prism/internal/engine/framebuffer"
	"github.com/Faultbox/prism/internal/engine/model"
	"github.com/Faultbox/prism/pkg/math"
)

func TestNewPositionDefaults(t *testing.T) {
	p := NewPosition("", nil)
	if p.Name == "" {
		t.Error("empty name should be replaced with a generated one")
	}
	if !p.Visible {
		t.Error("positions should start visible")
	}
	if p.Matrix != math.Identity() {
		t.Error("positions should start with the identity transform")
	}

	q := NewPosition("root", nil)
	if q.Name != "root" {
		t.Errorf("explicit name: got %q", q.Name)
	}
}

func TestChildOrderIsStable(t *testing.T) {
	p := NewPosition("parent", nil)
	a := NewPosition("a", nil)
	b := NewPosition("b", nil)
	c := NewPosition("c", nil)
	p.Add(a, b).Add(c)

	kids := p.Children()
	if len(kids) != 3 || kids[0] != a || kids[1] != b || kids[2] != c {
		t.Error("children should keep insertion order")
	}
}

func TestSceneValidate(t *testing.T) {
	cam, err := camera.NewOrthographic(-1, 1, -1, 1, 1)
	if err != nil {
		t.Fatal(err)
	}

	good := model.New("good")
	good.AddVertex(0, 0, 0)
	good.AddColor(framebuffer.RGB(1, 1, 1))
	good.AddPrimitive(model.NewPrimitive(model.Point, 0))

	s := New(cam).Add(NewPosition("root", good))
	if err := s.Validate(); err != nil {
		t.Fatalf("valid scene rejected: %v", err)
	}

	bad := model.New("bad")
	bad.AddColor(framebuffer.RGB(1, 1, 1))
	bad.AddPrimitive(model.NewPrimitive(model.Point, 7))
	child := NewPosition("child", bad)
	s.Positions[0].Add(child)

	if err := s.Validate(); err == nil {
		t.Error("scene holding an invalid nested model should fail validation")
	}
}
