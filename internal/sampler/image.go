// Package sampler reduces full image buffers to bounded candidate pixel
// sets for the quantizers.
package sampler

import "fmt"

// Pixel is one sampled image location with its raw RGBA value.
// Pixels with alpha below 128 are treated as transparent and never
// appear in sampler output.
type Pixel struct {
	X int
	Y int
	R uint8
	G uint8
	B uint8
	A uint8
}

// transparentAlpha is the cutoff below which a pixel is excluded.
const transparentAlpha = 128

// Image is a raw RGBA pixel buffer. Data holds Width*Height*4 bytes in
// row-major order.
type Image struct {
	Width  int
	Height int
	Data   []byte
}

// NewImage validates dimensions against the buffer length and wraps the
// buffer. Malformed input is a caller error and fails immediately.
func NewImage(width, height int, data []byte) (*Image, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("invalid image dimensions: %dx%d", width, height)
	}
	if len(data) != width*height*4 {
		return nil, fmt.Errorf("buffer length %d does not match %dx%d RGBA (want %d)",
			len(data), width, height, width*height*4)
	}
	return &Image{Width: width, Height: height, Data: data}, nil
}

// At returns the RGBA bytes at (x, y). Coordinates must be in bounds.
func (img *Image) At(x, y int) (r, g, b, a uint8) {
	i := (y*img.Width + x) * 4
	return img.Data[i], img.Data[i+1], img.Data[i+2], img.Data[i+3]
}

// PixelAt returns the Pixel at (x, y).
func (img *Image) PixelAt(x, y int) Pixel {
	r, g, b, a := img.At(x, y)
	return Pixel{X: x, Y: y, R: r, G: g, B: b, A: a}
}

// Opaque reports whether the pixel at (x, y) counts as non-transparent.
func (img *Image) Opaque(x, y int) bool {
	return img.Data[(y*img.Width+x)*4+3] >= transparentAlpha
}
