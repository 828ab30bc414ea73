// Package camera provides the viewing transform and view-volume description
// consumed by the rendering pipeline.
package camera

import (
	"github.com/pkg/errors"

	"github.com/Faultbox/prism/pkg/math"
)

// Camera holds the projection kind, the view-volume bounds on the view plane
// z = -1 (perspective) or the xy-plane (orthographic), the near-plane
// distance, and the world-to-view matrix.
//
// The view matrix is maintained as the inverse of the camera's placement
// transform: moving the camera left-multiplies the inverse of the requested
// transform onto the existing matrix. Keep that contract; composing direct
// transforms instead flips the direction the camera appears to move.
type Camera struct {
	perspective              bool
	left, right, bottom, top float32
	near                     float32
	view                     math.Mat4
}

func newCamera(perspective bool, left, right, bottom, top, near float32) (*Camera, error) {
	if right <= left || top <= bottom {
		return nil, errors.Errorf("camera: degenerate view volume [%g,%g]x[%g,%g]", left, right, bottom, top)
	}
	if near <= 0 {
		return nil, errors.Errorf("camera: near-plane distance %g is not positive", near)
	}
	return &Camera{
		perspective: perspective,
		left:        left,
		right:       right,
		bottom:      bottom,
		top:         top,
		near:        near,
		view:        math.Identity(),
	}, nil
}

// NewPerspective creates a perspective camera. The bounds describe the view
// rectangle on the plane z = -1; near is the distance to the near clipping
// plane z = -near.
func NewPerspective(left, right, bottom, top, near float32) (*Camera, error) {
	return newCamera(true, left, right, bottom, top, near)
}

// NewOrthographic creates an orthographic camera with the given view-volume
// cross-section and near-plane distance.
func NewOrthographic(left, right, bottom, top, near float32) (*Camera, error) {
	return newCamera(false, left, right, bottom, top, near)
}

// Perspective reports whether the camera projects perspectively.
func (c *Camera) Perspective() bool { return c.perspective }

// Near returns the near-plane distance. The near plane is z = -Near().
func (c *Camera) Near() float32 { return c.near }

// Bounds returns the view-volume cross-section.
func (c *Camera) Bounds() (left, right, bottom, top float32) {
	return c.left, c.right, c.bottom, c.top
}

// View returns the world-to-view matrix.
func (c *Camera) View() math.Mat4 { return c.view }

// SetView overwrites the world-to-view matrix.
func (c *Camera) SetView(m math.Mat4) { c.view = m }

// Reset places the camera back at the world origin looking down -z.
func (c *Camera) Reset() { c.view = math.Identity() }

// Translate moves the camera by (dx, dy, dz) in its current frame. The
// inverse translation is left-multiplied onto the view matrix.
func (c *Camera) Translate(dx, dy, dz float32) {
	c.view = math.Translate(-dx, -dy, -dz).Mul(c.view)
}

// Rotate turns the camera by angle radians around the given axis. The
// inverse rotation is left-multiplied onto the view matrix.
func (c *Camera) Rotate(axis math.Vec3, angle float32) {
	c.view = math.RotateAxis(axis, -angle).Mul(c.view)
}

// RotateX turns the camera around the x axis.
func (c *Camera) RotateX(angle float32) { c.Rotate(math.Vec3{X: 1}, angle) }

// RotateY turns the camera around the y axis.
func (c *Camera) RotateY(angle float32) { c.Rotate(math.Vec3{Y: 1}, angle) }

// RotateZ turns the camera around the z axis.
func (c *Camera) RotateZ(angle float32) { c.Rotate(math.Vec3{Z: 1}, angle) }

// LookAt sets the view matrix to look from eye toward center.
func (c *Camera) LookAt(eye, center, up math.Vec3) {
	f := center.Sub(eye).Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)

	c.view = math.Mat4{
		s.X, s.Y, s.Z, -s.Dot(eye),
		u.X, u.Y, u.Z, -u.Dot(eye),
		-f.X, -f.Y, -f.Z, f.Dot(eye),
		0, 0, 0, 1,
	}
}

// NormalizeMatrix returns the view-to-camera transform that maps the
// configured view volume onto the symmetric standard volume. For a
// perspective camera that is a shear centering the volume on the z axis
// followed by a scale onto the x = ±(-z), y = ±(-z) pyramid; for an
// orthographic camera a translation followed by a scale onto [-1, 1]².
// z is unchanged in both cases.
func (c *Camera) NormalizeMatrix() math.Mat4 {
	cx := (c.right + c.left) / 2
	cy := (c.top + c.bottom) / 2
	sx := 2 / (c.right - c.left)
	sy := 2 / (c.top - c.bottom)

	if c.perspective {
		shear := math.Mat4{
			1, 0, cx, 0,
			0, 1, cy, 0,
			0, 0, 1, 0,
			0, 0, 0, 1,
		}
		scale := math.Scale(sx, sy, 1)
		return scale.Mul(shear)
	}

	return math.Scale(sx, sy, 1).Mul(math.Translate(-cx, -cy, 0))
}
