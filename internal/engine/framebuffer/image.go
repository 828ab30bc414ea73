package framebuffer

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/chewxy/math32"
)

// channelByte clamps a linear float channel to [0, 1] and quantizes to 8 bits.
func channelByte(v float32) uint8 {
	v = math32.Min(1, math32.Max(0, v))
	return uint8(v*255 + 0.5)
}

// Image converts the color plane to an image.RGBA.
func (fb *FrameBuffer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
	for y := 0; y < fb.height; y++ {
		for x := 0; x < fb.width; x++ {
			c := fb.pix[y*fb.width+x]
			img.SetRGBA(x, y, color.RGBA{
				R: channelByte(c.R),
				G: channelByte(c.G),
				B: channelByte(c.B),
				A: channelByte(c.A),
			})
		}
	}
	return img
}

// WritePNG encodes the color plane as PNG.
func (fb *FrameBuffer) WritePNG(w io.Writer) error {
	return png.Encode(w, fb.Image())
}

// WritePPM encodes the color plane as a binary PPM (P6) image.
func (fb *FrameBuffer) WritePPM(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", fb.width, fb.height); err != nil {
		return err
	}
	for _, c := range fb.pix {
		if _, err := bw.Write([]byte{channelByte(c.R), channelByte(c.G), channelByte(c.B)}); err != nil {
			return err
		}
	}
	return bw.Flush()
}
