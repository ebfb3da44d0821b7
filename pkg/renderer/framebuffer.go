package renderer

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
)

// MaxFramebufferBytes caps the size of a single framebuffer allocation
const MaxFramebufferBytes int64 = 1 << 31

var (
	// ErrInvalidDimensions is returned for non-positive image sizes
	ErrInvalidDimensions = errors.New("invalid framebuffer dimensions")
	// ErrFramebufferTooLarge is returned when width*height*3 cannot be allocated
	ErrFramebufferTooLarge = errors.New("framebuffer too large")
)

// Framebuffer holds width*height RGB pixels, 3 bytes each, row-major with
// row 0 at the top of the image
type Framebuffer struct {
	Width  int
	Height int
	Pix    []byte
}

// NewFramebuffer allocates a zeroed framebuffer
func NewFramebuffer(width, height int) (*Framebuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if width > math.MaxInt/3/height || int64(width*height*3) > MaxFramebufferBytes {
		return nil, fmt.Errorf("%w: %dx%d", ErrFramebufferTooLarge, width, height)
	}

	return &Framebuffer{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*3),
	}, nil
}

// offset returns the index of the first byte of pixel (x, row)
func (fb *Framebuffer) offset(x, row int) int {
	return (row*fb.Width + x) * 3
}

// SetPixel stores a tone-mapped pixel
func (fb *Framebuffer) SetPixel(x, row int, rgb [3]byte) {
	copy(fb.Pix[fb.offset(x, row):], rgb[:])
}

// Pixel returns the RGB bytes at (x, row)
func (fb *Framebuffer) Pixel(x, row int) [3]byte {
	o := fb.offset(x, row)
	return [3]byte{fb.Pix[o], fb.Pix[o+1], fb.Pix[o+2]}
}

// Row returns the bytes of one image row
func (fb *Framebuffer) Row(row int) []byte {
	start := fb.offset(0, row)
	return fb.Pix[start : start+fb.Width*3]
}

// ColorModel implements image.Image
func (fb *Framebuffer) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements image.Image
func (fb *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, fb.Width, fb.Height)
}

// At implements image.Image
func (fb *Framebuffer) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(fb.Bounds())) {
		return color.RGBA{}
	}
	p := fb.Pixel(x, y)
	return color.RGBA{R: p[0], G: p[1], B: p[2], A: 255}
}
