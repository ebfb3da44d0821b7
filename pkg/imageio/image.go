package imageio

import (
	"image"

	"github.com/df07/go-pathtracer/pkg/renderer"
	"golang.org/x/image/draw"
)

// FramebufferImage copies a rendered framebuffer into an opaque RGBA image
func FramebufferImage(fb *renderer.Framebuffer) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		src := fb.Row(y)
		dst := img.Pix[img.PixOffset(0, y):]
		for x := 0; x < fb.Width; x++ {
			dst[x*4] = src[x*3]
			dst[x*4+1] = src[x*3+1]
			dst[x*4+2] = src[x*3+2]
			dst[x*4+3] = 255
		}
	}
	return img
}

// ToRGBA returns img as *image.RGBA, converting only when necessary
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	if fb, ok := img.(*renderer.Framebuffer); ok {
		return FramebufferImage(fb)
	}
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)
	return rgba
}

// Downsample scales a supersampled render down to width x height with a
// Catmull-Rom filter. Rendered images are opaque, so no alpha handling is needed.
func Downsample(img image.Image, width, height int) *image.RGBA {
	b := img.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return ToRGBA(img)
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
