package imageio

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Format identifies an output image encoding
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatTGA  Format = "tga"
	FormatWebP Format = "webp"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
	FormatPPM  Format = "ppm"
)

// ErrUnsupportedFormat is returned for unknown extensions or format names
var ErrUnsupportedFormat = errors.New("unsupported image format")

var extensions = map[string]Format{
	".png":  FormatPNG,
	".jpg":  FormatJPEG,
	".jpeg": FormatJPEG,
	".tga":  FormatTGA,
	".webp": FormatWebP,
	".bmp":  FormatBMP,
	".tif":  FormatTIFF,
	".tiff": FormatTIFF,
	".ppm":  FormatPPM,
}

// FormatFromPath picks the format from a file extension
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extensions[ext]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedFormat, ext, strings.Join(SupportedExtensions(), ", "))
}

// ParseFormat accepts a format name such as "png" or "jpg"
func ParseFormat(name string) (Format, error) {
	return FormatFromPath("." + strings.TrimPrefix(name, "."))
}

// Extension returns the canonical file extension, including the dot
func (f Format) Extension() string {
	switch f {
	case FormatJPEG:
		return ".jpg"
	case FormatTIFF:
		return ".tiff"
	default:
		return "." + string(f)
	}
}

// ContentType returns the MIME type used when serving the encoded image
func (f Format) ContentType() string {
	switch f {
	case FormatPPM:
		return "image/x-portable-pixmap"
	case FormatTGA:
		return "image/x-tga"
	default:
		return "image/" + string(f)
	}
}

// SupportedExtensions lists every recognised extension
func SupportedExtensions() []string {
	exts := make([]string, 0, len(extensions))
	for ext := range extensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
