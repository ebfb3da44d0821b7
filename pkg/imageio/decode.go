package imageio

import (
	"bufio"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Importing this package links github.com/ftrvxmtrx/tga, which registers
// itself with image.RegisterFormat under an empty magic string. That matches
// any input, so image.Decode in the same binary may hand PNG or WebP data to
// the TGA decoder. Use Decode or Load, which pick the decoder by format.

// Decode reads an image of a known format from r
func Decode(r io.Reader, format Format) (image.Image, error) {
	switch format {
	case FormatPNG:
		return png.Decode(r)
	case FormatJPEG:
		return jpeg.Decode(r)
	case FormatTGA:
		return tga.Decode(r)
	case FormatWebP:
		return nativewebp.Decode(r)
	case FormatBMP:
		return bmp.Decode(r)
	case FormatTIFF:
		return tiff.Decode(r)
	default:
		return nil, fmt.Errorf("%w: no decoder for %q", ErrUnsupportedFormat, format)
	}
}

// Load reads an image file, choosing the decoder from the file extension
func Load(path string) (image.Image, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	img, err := Decode(bufio.NewReader(file), format)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}
