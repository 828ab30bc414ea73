package texture

import (
	"bufio"
	"io"

	"github.com/pkg/errors"

	"github.com/Faultbox/prism/internal/engine/framebuffer"
)

// DecodePPM decodes a PPM image (ASCII P3 or binary P6) into a texture.
// The alpha plane is fully opaque; callers can carve transparency into it
// afterwards with SetAlpha.
func DecodePPM(r io.Reader) (*Texture, error) {
	br := bufio.NewReader(r)

	magic, err := ppmToken(br)
	if err != nil {
		return nil, errors.Wrap(err, "texture: reading PPM magic")
	}
	if magic != "P3" && magic != "P6" {
		return nil, errors.Errorf("texture: unsupported PPM magic %q", magic)
	}

	width, err := ppmInt(br)
	if err != nil {
		return nil, errors.Wrap(err, "texture: reading PPM width")
	}
	height, err := ppmInt(br)
	if err != nil {
		return nil, errors.Wrap(err, "texture: reading PPM height")
	}
	maxVal, err := ppmInt(br)
	if err != nil {
		return nil, errors.Wrap(err, "texture: reading PPM max value")
	}
	if width < 1 || height < 1 {
		return nil, errors.Errorf("texture: bad PPM dimensions %dx%d", width, height)
	}
	if maxVal < 1 || maxVal > 255 {
		return nil, errors.Errorf("texture: unsupported PPM max value %d", maxVal)
	}

	t := New(width, height)
	scale := 1 / float32(maxVal)

	if magic == "P3" {
		for i := 0; i < width*height; i++ {
			var rgb [3]int
			for c := 0; c < 3; c++ {
				v, err := ppmInt(br)
				if err != nil {
					return nil, errors.Wrapf(err, "texture: reading PPM sample %d", i)
				}
				rgb[c] = v
			}
			t.rgb[i] = [3]float32{
				float32(rgb[0]) * scale,
				float32(rgb[1]) * scale,
				float32(rgb[2]) * scale,
			}
		}
		return t, nil
	}

	// P6: one whitespace byte after the max value, then raw samples.
	buf := make([]byte, width*height*3)
	if _, err := io.ReadFull(br, buf); err != nil {
		return nil, errors.Wrap(err, "texture: reading PPM pixel data")
	}
	for i := 0; i < width*height; i++ {
		t.rgb[i] = [3]float32{
			float32(buf[i*3]) * scale,
			float32(buf[i*3+1]) * scale,
			float32(buf[i*3+2]) * scale,
		}
	}
	return t, nil
}

// ppmToken reads the next whitespace-delimited token, skipping '#' comments.
func ppmToken(br *bufio.Reader) (string, error) {
	var tok []byte
	for {
		b, err := br.ReadByte()
		if err != nil {
			if err == io.EOF && len(tok) > 0 {
				return string(tok), nil
			}
			return "", err
		}
		switch {
		case b == '#' && len(tok) == 0:
			if _, err := br.ReadString('\n'); err != nil && err != io.EOF {
				return "", err
			}
		case b == ' ' || b == '\t' || b == '\n' || b == '\r':
			if len(tok) > 0 {
				return string(tok), nil
			}
		default:
			tok = append(tok, b)
		}
	}
}

func ppmInt(br *bufio.Reader) (int, error) {
	tok, err := ppmToken(br)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, c := range []byte(tok) {
		if c < '0' || c > '9' {
			return 0, errors.Errorf("bad integer %q", tok)
		}
		n = n*10 + int(c-'0')
	}
	return n, nil
}

// Checkerboard returns a two-color test texture with the given cell size.
func Checkerboard(width, height, cell int, a, b framebuffer.Color) *Texture {
	if cell < 1 {
		cell = 1
	}
	t := New(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if (x/cell+y/cell)%2 == 0 {
				t.Set(x, y, a)
			} else {
				t.Set(x, y, b)
			}
		}
	}
	return t
}
