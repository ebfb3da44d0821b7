package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/imageio"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `{
		"scene": "random",
		"width": 640,
		"samples_per_pixel": 16,
		"max_depth": 20,
		"workers": 4,
		"seed": 7,
		"format": "webp",
		"supersample": 2,
		"camera": {"center": [1, 2, 3], "vfov": 35, "aperture": 0.2}
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "random", cfg.Scene)
	assert.Equal(t, 640, cfg.Width)
	assert.Equal(t, 0, cfg.Height)
	assert.Equal(t, 16, cfg.SamplesPerPixel)
	require.NotNil(t, cfg.MaxDepth)
	assert.Equal(t, 20, *cfg.MaxDepth)
	assert.Equal(t, 4, cfg.Workers)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, int64(7), *cfg.Seed)
	assert.Equal(t, "webp", cfg.Format)
	assert.Equal(t, 2, cfg.Supersample)
	require.NotNil(t, cfg.Camera)
	assert.Equal(t, &[3]float64{1, 2, 3}, cfg.Camera.Center)
	assert.Nil(t, cfg.Camera.LookAt)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	_, err = Load(writeConfig(t, `{"width": "wide"}`))
	assert.ErrorContains(t, err, "config: parse")
}

func TestResolve_FlagsOverrideFile(t *testing.T) {
	cfg := Config{Scene: "random", Width: 640, SamplesPerPixel: 16, Seed: ptr(int64(7)), JPEGQuality: 80}
	cfg.Resolve(Flags{Scene: "simple", Samples: 4, Output: "out/render.jpg"})

	assert.Equal(t, "simple", cfg.Scene)
	assert.Equal(t, 640, cfg.Width, "unset flags keep file values")
	assert.Equal(t, 4, cfg.SamplesPerPixel)
	assert.Equal(t, int64(7), *cfg.Seed)
	assert.Equal(t, 80, cfg.JPEGQuality)
	assert.Equal(t, "jpeg", cfg.Format, "format follows the output extension")
	require.NoError(t, cfg.Validate())
}

func TestResolve_Defaults(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{})

	assert.Equal(t, DefaultScene, cfg.Scene)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, int64(DefaultSeed), *cfg.Seed)
	assert.Nil(t, cfg.MaxDepth, "depth stays unset until scene defaults apply")
	assert.Equal(t, DefaultSupersample, cfg.Supersample)
	assert.Equal(t, imageio.DefaultJPEGQuality, cfg.JPEGQuality)
	assert.Equal(t, "png", cfg.Format)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"supersample too large", func(c *Config) { c.Supersample = 9 }},
		{"jpeg quality too large", func(c *Config) { c.JPEGQuality = 101 }},
		{"unknown format", func(c *Config) { c.Format = "gif" }},
		{"negative samples", func(c *Config) { c.SamplesPerPixel = -1 }},
		{"negative depth", func(c *Config) { c.MaxDepth = ptr(-1) }},
		{"unknown output extension", func(c *Config) { c.Output = "render.xyz"; c.Format = "png" }},
		{"output without extension", func(c *Config) { c.Output = "render"; c.Format = "png" }},
		{"format conflicts with output", func(c *Config) { c.Output = "render.jpg"; c.Format = "png" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg Config
			cfg.Resolve(Flags{})
			tt.mutate(&cfg)
			assert.True(t, errors.Is(cfg.Validate(), ErrInvalidConfig))
		})
	}
}

func TestApplySceneDefaults(t *testing.T) {
	s := scene.NewDefaultScene() // 400x225, 16:9

	tests := []struct {
		name                 string
		width, height        int
		expectedW, expectedH int
	}{
		{"scene size", 0, 0, 400, 225},
		{"height from aspect", 800, 0, 800, 450},
		{"width from aspect", 0, 90, 160, 90},
		{"both explicit", 100, 100, 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Width: tt.width, Height: tt.height}
			cfg.ApplySceneDefaults(s)
			assert.Equal(t, tt.expectedW, cfg.Width)
			assert.Equal(t, tt.expectedH, cfg.Height)
			assert.Equal(t, s.SamplingConfig.SamplesPerPixel, cfg.SamplesPerPixel)
			require.NotNil(t, cfg.MaxDepth)
			assert.Equal(t, s.SamplingConfig.MaxDepth, *cfg.MaxDepth)
		})
	}
}

func TestCameraOverride(t *testing.T) {
	cfg := Config{
		Width:  300,
		Height: 100,
		Camera: &Camera{LookAt: &[3]float64{0, 1, -2}, VFov: 25},
	}

	override := cfg.CameraOverride()
	assert.Equal(t, 3.0, override.AspectRatio)
	assert.Equal(t, core.NewVec3(0, 1, -2), override.LookAt)
	assert.Equal(t, 25.0, override.VFov)
	assert.Equal(t, core.Vec3{}, override.Center, "unset fields stay zero so the scene default wins")

	s, err := scene.Create("simple", override)
	require.NoError(t, err)
	assert.Equal(t, core.NewVec3(0, 0, 0), s.CameraConfig.Center)
	assert.Equal(t, core.NewVec3(0, 1, -2), s.CameraConfig.LookAt)
}

func TestRenderConfig_Supersample(t *testing.T) {
	cfg := Config{Width: 100, Height: 50, SamplesPerPixel: 8, MaxDepth: ptr(10), Workers: 2}
	cfg.Resolve(Flags{Supersample: 3})

	rc := cfg.RenderConfig()
	assert.Equal(t, 300, rc.Width)
	assert.Equal(t, 150, rc.Height)
	assert.Equal(t, 8, rc.SamplesPerPixel)
	assert.Equal(t, 10, rc.MaxDepth)
	assert.Equal(t, 2, rc.NumWorkers)
	assert.Equal(t, int64(DefaultSeed), rc.Seed)
	assert.NoError(t, rc.Validate())
}

func TestOutputPath(t *testing.T) {
	now := time.Date(2024, 3, 9, 14, 5, 6, 0, time.UTC)

	cfg := Config{Scene: "random", Format: "jpeg"}
	assert.Equal(t, filepath.Join("output", "random", "render_20240309_140506.jpg"), cfg.OutputPath(now))

	cfg.Output = "custom.tga"
	assert.Equal(t, "custom.tga", cfg.OutputPath(now))
}

func TestResolve_ZeroDepthAndSeed(t *testing.T) {
	cfg := Config{MaxDepth: ptr(12), Seed: ptr(int64(5))}
	cfg.Resolve(Flags{Depth: ptr(0), Seed: ptr(int64(0))})
	require.NoError(t, cfg.Validate())

	cfg.ApplySceneDefaults(scene.NewSimpleScene())
	rc := cfg.RenderConfig()
	assert.Equal(t, 0, rc.MaxDepth, "explicit depth 0 is kept, not replaced by the scene default")
	assert.Equal(t, int64(0), rc.Seed, "explicit seed 0 is kept, not replaced by the default seed")
	assert.NoError(t, rc.Validate())
}

func TestLoad_ZeroDepthAndSeed(t *testing.T) {
	cfg, err := Load(writeConfig(t, `{"max_depth": 0, "seed": 0}`))
	require.NoError(t, err)
	cfg.Resolve(Flags{})

	require.NotNil(t, cfg.MaxDepth)
	assert.Equal(t, 0, *cfg.MaxDepth)
	assert.Equal(t, int64(0), *cfg.Seed)
}

func TestResolve_OutputSelectsFormat(t *testing.T) {
	tests := []struct {
		name      string
		file      Config
		output    string
		format    string
		wantValid bool
	}{
		{"extension picks format", Config{}, "out.webp", "webp", true},
		{"jpg alias", Config{}, "out.jpg", "jpeg", true},
		{"matching file format", Config{Format: "jpg"}, "out.jpeg", "jpg", true},
		{"conflicting file format", Config{Format: "png"}, "out.jpg", "png", false},
		{"unknown extension", Config{}, "out.xyz", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.file
			cfg.Resolve(Flags{Output: tt.output})
			assert.Equal(t, tt.format, cfg.Format)
			assert.Equal(t, tt.output, cfg.OutputPath(time.Now()))

			err := cfg.Validate()
			if tt.wantValid {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, ErrInvalidConfig))
			}
		})
	}
}
