package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/imageio"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

const (
	DefaultScene       = "default"
	DefaultSeed        = 42
	DefaultSupersample = 1
	MaxSupersample     = 8
)

// ErrInvalidConfig is returned when resolved settings are out of range
var ErrInvalidConfig = errors.New("invalid config")

// Config holds render settings loaded from a JSON file and overridden by CLI flags.
// Zero values mean "use the scene's preference" or the package default.
// MaxDepth and Seed are pointers because 0 is a meaningful value for both.
type Config struct {
	Scene           string `json:"scene"`
	Width           int    `json:"width"`
	Height          int    `json:"height"`
	SamplesPerPixel int    `json:"samples_per_pixel"`
	MaxDepth        *int   `json:"max_depth,omitempty"`
	Workers         int    `json:"workers"`
	Seed            *int64 `json:"seed,omitempty"`

	// Output
	Output      string `json:"output"`
	Format      string `json:"format"`
	JPEGQuality int    `json:"jpeg_quality"`
	Supersample int    `json:"supersample"`

	Camera *Camera `json:"camera,omitempty"`
}

// Camera overrides parts of a scene's default camera
type Camera struct {
	Center        *[3]float64 `json:"center,omitempty"`
	LookAt        *[3]float64 `json:"look_at,omitempty"`
	Up            *[3]float64 `json:"up,omitempty"`
	VFov          float64     `json:"vfov,omitempty"`
	Aperture      float64     `json:"aperture,omitempty"`
	FocusDistance float64     `json:"focus_distance,omitempty"`
}

// Flags holds CLI flag values that override config file settings.
// Depth and Seed are nil unless the flag was given.
type Flags struct {
	Scene       string
	Width       int
	Height      int
	Samples     int
	Depth       *int
	Workers     int
	Seed        *int64
	Output      string
	Quality     int
	Supersample int
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve applies CLI flags, which take priority when non-zero/non-empty,
// then fills the remaining scene-independent defaults.
func (c *Config) Resolve(flags Flags) {
	if flags.Scene != "" {
		c.Scene = flags.Scene
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Samples > 0 {
		c.SamplesPerPixel = flags.Samples
	}
	if flags.Depth != nil {
		c.MaxDepth = ptr(*flags.Depth)
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Seed != nil {
		c.Seed = ptr(*flags.Seed)
	}
	if flags.Output != "" {
		c.Output = flags.Output
	}
	if flags.Quality > 0 {
		c.JPEGQuality = flags.Quality
	}
	if flags.Supersample > 0 {
		c.Supersample = flags.Supersample
	}

	if c.Scene == "" {
		c.Scene = DefaultScene
	}
	if c.Seed == nil {
		c.Seed = ptr(int64(DefaultSeed))
	}
	if c.Supersample <= 0 {
		c.Supersample = DefaultSupersample
	}
	if c.JPEGQuality <= 0 {
		c.JPEGQuality = imageio.DefaultJPEGQuality
	}
	// An unusable output extension is left for Validate to report
	if c.Format == "" && c.Output != "" {
		if f, err := imageio.FormatFromPath(c.Output); err == nil {
			c.Format = string(f)
		}
	}
	if c.Format == "" && c.Output == "" {
		c.Format = string(imageio.FormatPNG)
	}
}

// Validate checks ranges that the renderer itself does not
func (c *Config) Validate() error {
	if c.Width < 0 || c.Height < 0 || c.SamplesPerPixel < 0 || (c.MaxDepth != nil && *c.MaxDepth < 0) {
		return fmt.Errorf("%w: sizes, samples and depth must not be negative", ErrInvalidConfig)
	}
	if c.Supersample < 1 || c.Supersample > MaxSupersample {
		return fmt.Errorf("%w: supersample %d out of range [1,%d]", ErrInvalidConfig, c.Supersample, MaxSupersample)
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("%w: jpeg quality %d out of range [1,100]", ErrInvalidConfig, c.JPEGQuality)
	}
	// An explicit output path must name a supported format by its extension
	var outputFormat imageio.Format
	if c.Output != "" {
		f, err := imageio.FormatFromPath(c.Output)
		if err != nil {
			return fmt.Errorf("%w: output %s: %w", ErrInvalidConfig, c.Output, err)
		}
		outputFormat = f
	}
	format, err := imageio.ParseFormat(c.Format)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Output != "" && outputFormat != format {
		return fmt.Errorf("%w: output %s is %s but format is %s", ErrInvalidConfig, c.Output, outputFormat, format)
	}
	return nil
}

// ApplySceneDefaults fills size, samples and depth from the scene's sampling
// config. When only one dimension is set the other follows the camera aspect ratio.
func (c *Config) ApplySceneDefaults(s *scene.Scene) {
	aspect := s.CameraConfig.AspectRatio
	if aspect <= 0 {
		aspect = 1
	}

	switch {
	case c.Width <= 0 && c.Height <= 0:
		c.Width = s.SamplingConfig.Width
		c.Height = s.SamplingConfig.Height
	case c.Height <= 0:
		c.Height = max(1, int(math.Round(float64(c.Width)/aspect)))
	case c.Width <= 0:
		c.Width = max(1, int(math.Round(float64(c.Height)*aspect)))
	}

	if c.SamplesPerPixel <= 0 {
		c.SamplesPerPixel = s.SamplingConfig.SamplesPerPixel
	}
	if c.MaxDepth == nil {
		c.MaxDepth = ptr(s.SamplingConfig.MaxDepth)
	}
}

// CameraOverride returns the camera settings to merge into the scene's camera.
// The aspect ratio always follows the output size so pixels stay square.
func (c *Config) CameraOverride() geometry.CameraConfig {
	override := geometry.CameraConfig{}
	if c.Width > 0 && c.Height > 0 {
		override.AspectRatio = float64(c.Width) / float64(c.Height)
	}
	if c.Camera == nil {
		return override
	}

	if c.Camera.Center != nil {
		override.Center = vec(*c.Camera.Center)
	}
	if c.Camera.LookAt != nil {
		override.LookAt = vec(*c.Camera.LookAt)
	}
	if c.Camera.Up != nil {
		override.Up = vec(*c.Camera.Up)
	}
	override.VFov = c.Camera.VFov
	override.Aperture = c.Camera.Aperture
	override.FocusDistance = c.Camera.FocusDistance
	return override
}

// RenderConfig returns the renderer settings; supersampled renders are
// traced at Supersample times the output size
func (c *Config) RenderConfig() renderer.RenderConfig {
	return renderer.RenderConfig{
		Width:            c.Width * c.Supersample,
		Height:           c.Height * c.Supersample,
		SamplesPerPixel:  c.SamplesPerPixel,
		MaxDepth:         deref(c.MaxDepth),
		NumWorkers:       c.Workers,
		Seed:             deref(c.Seed),
		ProgressInterval: 2 * time.Second,
	}
}

// EncodeOptions returns the image encoding options
func (c *Config) EncodeOptions() imageio.Options {
	format, _ := imageio.ParseFormat(c.Format)
	return imageio.Options{Format: format, JPEGQuality: c.JPEGQuality}
}

// OutputPath returns the explicit output path, or output/<scene>/render_<timestamp>.<ext>
func (c *Config) OutputPath(now time.Time) string {
	if c.Output != "" {
		return c.Output
	}
	ext := c.EncodeOptions().Format.Extension()
	return filepath.Join("output", c.Scene, fmt.Sprintf("render_%s%s", now.Format("20060102_150405"), ext))
}

func ptr[T any](v T) *T {
	return &v
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func vec(v [3]float64) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}
