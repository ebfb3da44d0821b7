package renderer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/scene"
)

var (
	// ErrInvalidSamples is returned when fewer than one sample per pixel is requested
	ErrInvalidSamples = errors.New("samples per pixel must be positive")
	// ErrInvalidDepth is returned for a negative bounce budget
	ErrInvalidDepth = errors.New("max depth must not be negative")
)

// RenderConfig contains everything needed to render a scene
type RenderConfig struct {
	Width            int           // Image width in pixels
	Height           int           // Image height in pixels
	SamplesPerPixel  int           // Number of rays per pixel
	MaxDepth         int           // Maximum ray bounce depth
	NumWorkers       int           // Parallel workers (0 = auto-detect CPU count)
	Seed             int64         // Base seed for per-band random sources
	ProgressInterval time.Duration // Progress log period (0 = no progress output)
}

// ConfigFromScene returns a render configuration using the scene's preferred settings
func ConfigFromScene(s *scene.Scene) RenderConfig {
	return RenderConfig{
		Width:            s.SamplingConfig.Width,
		Height:           s.SamplingConfig.Height,
		SamplesPerPixel:  s.SamplingConfig.SamplesPerPixel,
		MaxDepth:         s.SamplingConfig.MaxDepth,
		ProgressInterval: 2 * time.Second,
	}
}

// Validate checks the configuration before any allocation happens
func (c RenderConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, c.Width, c.Height)
	}
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSamples, c.SamplesPerPixel)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidDepth, c.MaxDepth)
	}
	return nil
}

// SamplerFactory creates the random source for one band. Every band gets its
// own sampler so workers never share mutable random state.
type SamplerFactory func(bandIndex int) core.Sampler

// SeededSamplerFactory returns a factory seeding band i with seed+i, which
// makes renders reproducible for a given seed and worker count
func SeededSamplerFactory(seed int64) SamplerFactory {
	return func(bandIndex int) core.Sampler {
		return core.NewSeededSampler(seed + int64(bandIndex))
	}
}

// Raytracer renders a scene into a framebuffer using a pool of band workers
type Raytracer struct {
	scene      *scene.Scene
	config     RenderConfig
	integrator integrator.Integrator
	logger     core.Logger
	newSampler SamplerFactory
}

// NewRaytracer creates a new raytracer. A nil integrator selects path tracing
// with the configured depth; a nil logger discards output.
func NewRaytracer(s *scene.Scene, config RenderConfig, integ integrator.Integrator, logger core.Logger) (*Raytracer, error) {
	if s == nil || s.Camera == nil {
		return nil, errors.New("scene with a camera is required")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if integ == nil {
		integ = integrator.NewPathTracingIntegrator(config.MaxDepth)
	}
	if logger == nil {
		logger = core.NopLogger{}
	}

	return &Raytracer{
		scene:      s,
		config:     config,
		integrator: integ,
		logger:     logger,
		newSampler: SeededSamplerFactory(config.Seed),
	}, nil
}

// SetSamplerFactory replaces the per-band random source
func (rt *Raytracer) SetSamplerFactory(factory SamplerFactory) {
	rt.newSampler = factory
}

// Config returns the render configuration
func (rt *Raytracer) Config() RenderConfig {
	return rt.config
}

// Render renders the whole image and blocks until every band is finished.
// Cancelling ctx stops workers at the next scanline and returns ctx.Err().
func (rt *Raytracer) Render(ctx context.Context) (*Framebuffer, RenderStats, error) {
	startTime := time.Now()

	fb, err := NewFramebuffer(rt.config.Width, rt.config.Height)
	if err != nil {
		return nil, RenderStats{}, err
	}

	bands := PartitionBands(rt.config.Height, rt.config.NumWorkers)

	rt.logger.Printf("Rendering %dx%d at %d samples/pixel, depth %d (using %d workers)...\n",
		rt.config.Width, rt.config.Height, rt.config.SamplesPerPixel, rt.config.MaxDepth, len(bands))

	progress := newProgressReporter(rt.config.Height, rt.config.ProgressInterval, rt.logger)
	progress.start()
	defer progress.close()

	pool := NewWorkerPool(rt, fb, len(bands), progress)
	pool.Start(ctx)

	for i, band := range bands {
		pool.SubmitTask(BandTask{Band: band, TaskID: i})
	}

	// Wait for every band before returning so no worker is still writing
	stats := RenderStats{
		SamplesPerPixel: rt.config.SamplesPerPixel,
		MaxDepth:        rt.config.MaxDepth,
		NumWorkers:      len(bands),
	}
	var firstErr error
	for range bands {
		result, ok := pool.GetResult()
		if !ok {
			firstErr = errors.New("worker pool closed unexpectedly")
			break
		}
		if result.Error != nil && firstErr == nil {
			firstErr = result.Error
		}
		stats.Merge(result.Stats)
	}
	pool.Stop()

	stats.Duration = time.Since(startTime)
	if firstErr != nil {
		rt.logger.Printf("Render stopped: %v\n", firstErr)
		return nil, stats, firstErr
	}

	rt.logger.Printf("Render completed in %v (%d rays, %.1f rays/sample)\n",
		stats.Duration, stats.TotalRays, stats.AverageRaysPerSample())

	return fb, stats, nil
}

// RenderBand renders the framebuffer rows of one band. Rows are written only
// inside the band, so bands may be rendered concurrently into the same buffer.
func (rt *Raytracer) RenderBand(ctx context.Context, fb *Framebuffer, band Band, sampler core.Sampler, progress *progressReporter) (RenderStats, error) {
	var stats RenderStats

	for row := band.Start; row < band.End; row++ {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		// Row 0 is the top of the image, i.e. scanline height-1
		j := fb.Height - 1 - row
		for i := 0; i < fb.Width; i++ {
			rgb, rays := rt.renderPixel(i, j, sampler)
			fb.SetPixel(i, row, rgb)
			stats.TotalRays += rays
		}

		stats.TotalPixels += fb.Width
		stats.TotalSamples += fb.Width * rt.config.SamplesPerPixel
		if progress != nil {
			progress.rowDone()
		}
	}

	return stats, nil
}

// renderPixel accumulates all samples for pixel (i, j), where j counts scanlines from the bottom
func (rt *Raytracer) renderPixel(i, j int, sampler core.Sampler) ([3]byte, int) {
	camera := rt.scene.Camera
	sDenom := float64(max(1, rt.config.Width-1))
	tDenom := float64(max(1, rt.config.Height-1))

	colorAccum := core.Color{}
	totalRays := 0
	for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
		// Jitter inside the pixel
		s := (float64(i) + sampler.Get1D()) / sDenom
		t := (float64(j) + sampler.Get1D()) / tDenom

		ray := camera.GetRay(s, t, sampler)
		color, rays := rt.integrator.RayColor(ray, rt.scene, sampler)
		colorAccum = colorAccum.Add(color)
		totalRays += rays
	}

	return ToneMap(colorAccum, rt.config.SamplesPerPixel), totalRays
}
