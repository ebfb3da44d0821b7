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

// DefaultJPEGQuality matches the quality the renderer has always written JPEGs with
const DefaultJPEGQuality = 100

// Options controls how an image is encoded
type Options struct {
	Format      Format
	JPEGQuality int // 1-100, 0 means DefaultJPEGQuality
}

// Encode writes img to w in the requested format
func Encode(w io.Writer, img image.Image, opts Options) error {
	switch opts.Format {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatJPEG:
		quality := opts.JPEGQuality
		if quality <= 0 {
			quality = DefaultJPEGQuality
		}
		return jpeg.Encode(w, img, &jpeg.Options{Quality: min(quality, 100)})
	case FormatTGA:
		return tga.Encode(w, img)
	case FormatWebP:
		return nativewebp.Encode(w, img, nil)
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case FormatPPM:
		return EncodePPM(w, img)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, opts.Format)
	}
}

// Save encodes img into the file at path. An empty opts.Format is taken from the extension.
func Save(path string, img image.Image, opts Options) (err error) {
	if opts.Format == "" {
		if opts.Format, err = FormatFromPath(path); err != nil {
			return err
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	w := bufio.NewWriter(file)
	if err := Encode(w, img, opts); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return w.Flush()
}
