package renderer

import (
	"testing"

	"github.com/Faultbox/prism/pkg/math"
)

const eps = 1e-4

func nearf(a, b float32) bool {
	d := a - b
	return d < eps && d > -eps
}

func camVertex(x, y, z float32) vertex {
	return vertex{pos: math.NewPoint(x, y, z)}
}

func TestClipPolyInsideUnchanged(t *testing.T) {
	r := &run{near: 0.1}
	poly := []vertex{camVertex(0, 0, -1), camVertex(1, 0, -2), camVertex(0, 1, -3)}

	got := clipPoly(poly, r.nearDist, lerpVertex)
	if len(got) != 3 {
		t.Fatalf("vertex count = %d, want 3", len(got))
	}
	for i := range got {
		if got[i].pos != poly[i].pos {
			t.Errorf("vertex %d moved: %v", i, got[i].pos)
		}
	}
}

func TestClipPolyAllOutside(t *testing.T) {
	r := &run{near: 0.1}
	poly := []vertex{camVertex(0, 0, -0.05), camVertex(1, 0, -0.02), camVertex(0, 1, 0.5)}

	if got := clipPoly(poly, r.nearDist, lerpVertex); len(got) != 0 {
		t.Fatalf("vertex count = %d, want 0", len(got))
	}
}

func TestClipPolyNearSplitsTriangle(t *testing.T) {
	// One vertex in front of the near plane; the other two survive, and the
	// crossing edges gain interpolated vertices at z = -near.
	r := &run{near: 0.1}
	poly := []vertex{camVertex(0, 0, -1), camVertex(1, 0, -1), camVertex(0, 1, -0.05)}

	got := clipPoly(poly, r.nearDist, lerpVertex)
	if len(got) != 4 {
		t.Fatalf("vertex count = %d, want 4", len(got))
	}
	for _, v := range got {
		if v.pos.Z > -r.near+eps {
			t.Errorf("vertex at z = %g is in front of the near plane", v.pos.Z)
		}
	}

	// Clipping the result again must not change it.
	again := clipPoly(got, r.nearDist, lerpVertex)
	if len(again) != len(got) {
		t.Fatalf("second clip changed vertex count: %d -> %d", len(got), len(again))
	}
}

func TestClipPolyExactCrossing(t *testing.T) {
	// Edge from z = -0.2 to z = 0 crosses z = -0.1 at its midpoint; the
	// interpolated vertex carries midpoint attributes.
	r := &run{near: 0.1}
	a := vertex{pos: math.NewPoint(0, 0, -0.2)}
	b := vertex{pos: math.NewPoint(2, 0, 0)}

	got := clipSeg(a, b, r.nearDist, lerpVertex)
	if len(got) != 2 {
		t.Fatalf("endpoint count = %d, want 2", len(got))
	}
	m := got[1]
	if !nearf(m.pos.Z, -0.1) || !nearf(m.pos.X, 1) {
		t.Fatalf("crossing = (%g, %g), want (1, -0.1)", m.pos.X, m.pos.Z)
	}
}

func TestClipSegCases(t *testing.T) {
	r := &run{near: 0.1}
	tests := []struct {
		name string
		a, b vertex
		want int
	}{
		{"both inside", camVertex(0, 0, -1), camVertex(0, 0, -2), 2},
		{"both outside", camVertex(0, 0, -0.01), camVertex(0, 0, 1), 0},
		{"a inside", camVertex(0, 0, -1), camVertex(0, 0, 0), 2},
		{"b inside", camVertex(0, 0, 0), camVertex(0, 0, -1), 2},
		{"on the plane", camVertex(0, 0, -0.1), camVertex(0, 0, -1), 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := clipSeg(tc.a, tc.b, r.nearDist, lerpVertex)
			if len(got) != tc.want {
				t.Fatalf("endpoint count = %d, want %d", len(got), tc.want)
			}
			for _, v := range got {
				if v.pos.Z > -r.near+eps {
					t.Errorf("endpoint at z = %g survived in front of the plane", v.pos.Z)
				}
			}
		})
	}
}

func TestClipPolySidePlanes(t *testing.T) {
	// A square twice the width of the view volume keeps four vertices after
	// the x planes trim both sides.
	poly := []svtx{
		{x: -2, y: -0.5, iw: 1},
		{x: 2, y: -0.5, iw: 1},
		{x: 2, y: 0.5, iw: 1},
		{x: -2, y: 0.5, iw: 1},
	}
	for _, plane := range ndcPlanes {
		poly = clipPoly(poly, plane, lerpSvtx)
	}
	if len(poly) != 4 {
		t.Fatalf("vertex count = %d, want 4", len(poly))
	}
	for _, v := range poly {
		if v.x < -1-eps || v.x > 1+eps {
			t.Errorf("vertex at x = %g escaped the view volume", v.x)
		}
	}
}
