package renderer

import (
	"github.com/Faultbox/prism/pkg/math"
)

// facing returns a signed measure of how a polygon faces the camera in view
// space: positive when its counterclockwise side is toward the camera,
// negative when away, zero for degenerate geometry. The polygon normal is
// computed with Newell's method, which stays stable for near-degenerate and
// slightly non-planar polygons, and is compared against the viewing
// direction (toward the camera origin for perspective, +z for orthographic).
func facing(verts []math.Vec4, perspective bool) float32 {
	var n math.Vec3
	var centroid math.Vec3
	count := len(verts)
	for i := 0; i < count; i++ {
		a := verts[i]
		b := verts[(i+1)%count]
		n.X += (a.Y - b.Y) * (a.Z + b.Z)
		n.Y += (a.Z - b.Z) * (a.X + b.X)
		n.Z += (a.X - b.X) * (a.Y + b.Y)
		centroid = centroid.Add(a.Vec3())
	}

	if perspective {
		// Ray from the polygon back to the camera at the origin.
		toEye := centroid.Scale(-1 / float32(count))
		return n.Dot(toEye)
	}
	return n.Z
}

// frontFacing applies the model's winding convention to the facing measure.
// Degenerate polygons (zero measure) count as back-facing, so they are
// culled rather than rasterized.
func frontFacing(measure float32, frontIsCCW bool) bool {
	if frontIsCCW {
		return measure > 0
	}
	return measure < 0
}
