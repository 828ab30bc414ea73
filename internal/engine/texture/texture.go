// Package texture provides texel buffers and sampling for the rasterizer.
package texture

import (
	"image"

	"github.com/chewxy/math32"
	xdraw "golang.org/x/image/draw"

	"github.com/Faultbox/prism/internal/engine/framebuffer"
)

// Texture is a 2D texel buffer: an RGB array plus a parallel alpha array,
// both indexed [y*width+x] with row 0 at the top.
type Texture struct {
	width, height int
	rgb           [][3]float32
	alpha         []float32
}

// New creates a texture of the given size with opaque black texels.
// Dimensions below 1 are clamped to 1.
func New(width, height int) *Texture {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	t := &Texture{
		width:  width,
		height: height,
		rgb:    make([][3]float32, width*height),
		alpha:  make([]float32, width*height),
	}
	for i := range t.alpha {
		t.alpha[i] = 1
	}
	return t
}

// FromImage converts any image.Image into a texture.
func FromImage(img image.Image) *Texture {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Copy(rgba, image.Point{}, img, b, xdraw.Src, nil)

	t := New(b.Dx(), b.Dy())
	for y := 0; y < t.height; y++ {
		for x := 0; x < t.width; x++ {
			i := rgba.PixOffset(x, y)
			t.Set(x, y, framebuffer.Color{
				R: float32(rgba.Pix[i]) / 255,
				G: float32(rgba.Pix[i+1]) / 255,
				B: float32(rgba.Pix[i+2]) / 255,
				A: float32(rgba.Pix[i+3]) / 255,
			})
		}
	}
	return t
}

// Resized returns a copy resampled to the given size with a bilinear kernel.
func (t *Texture) Resized(width, height int) *Texture {
	src := t.image()
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return FromImage(dst)
}

func (t *Texture) image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, t.width, t.height))
	for y := 0; y < t.height; y++ {
		for x := 0; x < t.width; x++ {
			c := t.At(x, y)
			i := img.PixOffset(x, y)
			img.Pix[i] = uint8(math32.Min(1, math32.Max(0, c.R))*255 + 0.5)
			img.Pix[i+1] = uint8(math32.Min(1, math32.Max(0, c.G))*255 + 0.5)
			img.Pix[i+2] = uint8(math32.Min(1, math32.Max(0, c.B))*255 + 0.5)
			img.Pix[i+3] = uint8(math32.Min(1, math32.Max(0, c.A))*255 + 0.5)
		}
	}
	return img
}

// Size returns the texture dimensions.
func (t *Texture) Size() (width, height int) {
	return t.width, t.height
}

// At returns the texel at integer coordinates (x, y).
func (t *Texture) At(x, y int) framebuffer.Color {
	i := y*t.width + x
	return framebuffer.Color{R: t.rgb[i][0], G: t.rgb[i][1], B: t.rgb[i][2], A: t.alpha[i]}
}

// Set writes the texel at integer coordinates (x, y).
func (t *Texture) Set(x, y int, c framebuffer.Color) {
	i := y*t.width + x
	t.rgb[i] = [3]float32{c.R, c.G, c.B}
	t.alpha[i] = c.A
}

// SetAlpha overwrites the alpha plane at (x, y) without touching RGB.
func (t *Texture) SetAlpha(x, y int, a float32) {
	t.alpha[y*t.width+x] = a
}

// wrap maps a coordinate into [0, 1) with repeat addressing.
func wrap(v float32) float32 {
	v -= math32.Floor(v)
	if v < 0 {
		v = 0
	}
	return v
}

// Sample returns the texture color at texture coordinates (s, t).
// Coordinates repeat outside [0, 1]; (0, 0) is the bottom-left corner of the
// image. With bilinear set, the four nearest texels are blended, otherwise
// the nearest texel is returned.
func (t *Texture) Sample(s, tc float32, bilinear bool) framebuffer.Color {
	s = wrap(s)
	tc = wrap(tc)

	// Flip t: texel row 0 is the top of the image.
	fx := s * float32(t.width)
	fy := (1 - tc) * float32(t.height)

	if !bilinear {
		x := int(fx)
		y := int(fy)
		if x >= t.width {
			x = t.width - 1
		}
		if y >= t.height {
			y = t.height - 1
		}
		return t.At(x, y)
	}

	// Bilinear: sample on texel centers.
	fx -= 0.5
	fy -= 0.5
	x0 := int(math32.Floor(fx))
	y0 := int(math32.Floor(fy))
	dx := fx - float32(x0)
	dy := fy - float32(y0)

	c00 := t.At(t.clampX(x0), t.clampY(y0))
	c10 := t.At(t.clampX(x0+1), t.clampY(y0))
	c01 := t.At(t.clampX(x0), t.clampY(y0+1))
	c11 := t.At(t.clampX(x0+1), t.clampY(y0+1))

	top := c00.Lerp(c10, dx)
	bottom := c01.Lerp(c11, dx)
	return top.Lerp(bottom, dy)
}

func (t *Texture) clampX(x int) int {
	if x < 0 {
		return 0
	}
	if x >= t.width {
		return t.width - 1
	}
	return x
}

func (t *Texture) clampY(y int) int {
	if y < 0 {
		return 0
	}
	if y >= t.height {
		return t.height - 1
	}
	return y
}
