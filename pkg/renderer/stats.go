package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int           // Total number of pixels rendered
	TotalSamples    int           // Camera rays traced (pixels * samples per pixel)
	TotalRays       int           // All ray segments traced, including bounces
	SamplesPerPixel int           // Samples taken for every pixel
	MaxDepth        int           // Bounce budget per camera ray
	NumWorkers      int           // Workers that rendered bands
	Duration        time.Duration // Wall-clock render time
}

// Merge adds the counters of another partial result to this one
func (s *RenderStats) Merge(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.TotalSamples += other.TotalSamples
	s.TotalRays += other.TotalRays
}

// AverageRaysPerSample returns the mean path length of a camera ray
func (s RenderStats) AverageRaysPerSample() float64 {
	if s.TotalSamples == 0 {
		return 0
	}
	return float64(s.TotalRays) / float64(s.TotalSamples)
}

// RaysPerSecond returns the throughput of the render
func (s RenderStats) RaysPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.TotalRays) / s.Duration.Seconds()
}
