// Package framebuffer provides the CPU render target: a color plane and a
// depth plane, plus viewport sub-rectangles that the rasterizer writes into.
package framebuffer

import (
	"github.com/chewxy/math32"
	"github.com/pkg/errors"
)

// Color is a linear RGBA color with float32 channels in [0, 1].
// Alpha is coverage/opacity; 1 is fully opaque.
type Color struct {
	R, G, B, A float32
}

// RGB returns an opaque color.
func RGB(r, g, b float32) Color {
	return Color{r, g, b, 1}
}

// Lerp returns the componentwise linear interpolation toward other at t.
func (c Color) Lerp(other Color, t float32) Color {
	return Color{
		c.R + (other.R-c.R)*t,
		c.G + (other.G-c.G)*t,
		c.B + (other.B-c.B)*t,
		c.A + (other.A-c.A)*t,
	}
}

// Over composites c over dst using c's alpha:
// result = c*alpha + dst*(1-alpha). The result is opaque.
func (c Color) Over(dst Color) Color {
	a := c.A
	return Color{
		c.R*a + dst.R*(1-a),
		c.G*a + dst.G*(1-a),
		c.B*a + dst.B*(1-a),
		1,
	}
}

// farDepth is the cleared depth value. Depth is view-space z (negative in
// front of the camera); larger values are nearer, so -Inf is "nothing here".
var farDepth = math32.Inf(-1)

// FrameBuffer holds a color plane and a parallel depth plane.
type FrameBuffer struct {
	width, height int
	pix           []Color
	depth         []float32
	background    Color
}

// New creates a framebuffer with the given dimensions and background color.
// Both planes start cleared. Dimensions below 1 are clamped to 1.
func New(width, height int, background Color) *FrameBuffer {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	fb := &FrameBuffer{
		width:      width,
		height:     height,
		pix:        make([]Color, width*height),
		depth:      make([]float32, width*height),
		background: background,
	}
	fb.Clear()
	return fb
}

// Size returns the framebuffer dimensions.
func (fb *FrameBuffer) Size() (width, height int) {
	return fb.width, fb.height
}

// Background returns the clear color.
func (fb *FrameBuffer) Background() Color {
	return fb.background
}

// Clear resets the whole color plane to the background color and the depth
// plane to the far value.
func (fb *FrameBuffer) Clear() {
	for i := range fb.pix {
		fb.pix[i] = fb.background
		fb.depth[i] = farDepth
	}
}

// PixelAt returns the color at framebuffer coordinates (x, y).
func (fb *FrameBuffer) PixelAt(x, y int) Color {
	return fb.pix[y*fb.width+x]
}

// DepthAt returns the depth at framebuffer coordinates (x, y).
func (fb *FrameBuffer) DepthAt(x, y int) float32 {
	return fb.depth[y*fb.width+x]
}

// Viewport is a sub-rectangle of a framebuffer with its own background color.
// Rasterizer writes are addressed in viewport-local coordinates with the
// origin at the top-left corner.
type Viewport struct {
	fb            *FrameBuffer
	x, y          int
	width, height int
	background    Color
}

// NewViewport creates a viewport over the rectangle (x, y, width, height)
// of fb. The rectangle must lie entirely inside the framebuffer.
func (fb *FrameBuffer) NewViewport(x, y, width, height int, background Color) (*Viewport, error) {
	if width < 1 || height < 1 {
		return nil, errors.Errorf("framebuffer: viewport size %dx%d is not positive", width, height)
	}
	if x < 0 || y < 0 || x+width > fb.width || y+height > fb.height {
		return nil, errors.Errorf("framebuffer: viewport (%d,%d %dx%d) outside %dx%d framebuffer",
			x, y, width, height, fb.width, fb.height)
	}
	return &Viewport{fb: fb, x: x, y: y, width: width, height: height, background: background}, nil
}

// FullViewport returns a viewport covering the whole framebuffer, keeping
// the framebuffer's background color.
func (fb *FrameBuffer) FullViewport() *Viewport {
	return &Viewport{fb: fb, width: fb.width, height: fb.height, background: fb.background}
}

// Size returns the viewport dimensions.
func (vp *Viewport) Size() (width, height int) {
	return vp.width, vp.height
}

// Background returns the viewport clear color.
func (vp *Viewport) Background() Color {
	return vp.background
}

// Clear resets the viewport's pixels to its background color and its depth
// values to the far value. Pixels outside the viewport are untouched.
func (vp *Viewport) Clear() {
	for row := 0; row < vp.height; row++ {
		base := (vp.y+row)*vp.fb.width + vp.x
		for col := 0; col < vp.width; col++ {
			vp.fb.pix[base+col] = vp.background
			vp.fb.depth[base+col] = farDepth
		}
	}
}

// Contains reports whether the viewport-local coordinates are in range.
func (vp *Viewport) Contains(x, y int) bool {
	return x >= 0 && x < vp.width && y >= 0 && y < vp.height
}

// Pixel returns the color at viewport-local (x, y).
func (vp *Viewport) Pixel(x, y int) Color {
	return vp.fb.pix[(vp.y+y)*vp.fb.width+vp.x+x]
}

// SetPixel writes the color at viewport-local (x, y).
func (vp *Viewport) SetPixel(x, y int, c Color) {
	vp.fb.pix[(vp.y+y)*vp.fb.width+vp.x+x] = c
}

// Depth returns the depth at viewport-local (x, y).
func (vp *Viewport) Depth(x, y int) float32 {
	return vp.fb.depth[(vp.y+y)*vp.fb.width+vp.x+x]
}

// SetDepth writes the depth at viewport-local (x, y).
func (vp *Viewport) SetDepth(x, y int, z float32) {
	vp.fb.depth[(vp.y+y)*vp.fb.width+vp.x+x] = z
}
