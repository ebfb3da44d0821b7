package imageio

import (
	"fmt"
	"image"
	"io"
)

// EncodePPM writes img as a binary PPM (P6), 8 bits per channel
func EncodePPM(w io.Writer, img image.Image) error {
	rgba := ToRGBA(img)
	b := rgba.Bounds()

	if _, err := fmt.Fprintf(w, "P6\n%d %d\n255\n", b.Dx(), b.Dy()); err != nil {
		return err
	}

	row := make([]byte, b.Dx()*3)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		src := rgba.Pix[rgba.PixOffset(b.Min.X, y):]
		for x := 0; x < b.Dx(); x++ {
			copy(row[x*3:x*3+3], src[x*4:x*4+3])
		}
		if _, err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
