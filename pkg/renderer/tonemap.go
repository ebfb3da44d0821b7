package renderer

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// maxChannel keeps 256*value strictly below 256
const maxChannel = 0.999

// ToneMap converts a linear color sum of the given number of samples into
// 8-bit RGB: average, gamma 2 (square root), clamp, then scale by 256 and truncate.
// Averaging happens before the gamma curve; applying it per sample would bias the result.
func ToneMap(sum core.Color, samples int) [3]byte {
	if samples <= 0 {
		return [3]byte{}
	}
	c := sum.Multiply(1.0 / float64(samples)).Sqrt()
	return [3]byte{quantize(c.X), quantize(c.Y), quantize(c.Z)}
}

func quantize(v float64) byte {
	if math.IsNaN(v) {
		return 0
	}
	return byte(256 * math.Max(0, math.Min(maxChannel, v)))
}
