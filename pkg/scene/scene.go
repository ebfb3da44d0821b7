package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Scene contains all the elements needed for rendering. It is built once and
// only read while rendering, so it is shared across workers without locking.
type Scene struct {
	Camera         *geometry.Camera
	Shapes         geometry.ShapeList // Objects in the scene
	TopColor       core.Color         // Sky color straight up
	BottomColor    core.Color         // Sky color straight down
	SamplingConfig SamplingConfig
	CameraConfig   geometry.CameraConfig
}

// SamplingConfig contains the scene's preferred rendering configuration
type SamplingConfig struct {
	Width           int // Image width
	Height          int // Image height
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// Default sky gradient
var (
	DefaultTopColor    = core.NewVec3(0.5, 0.7, 1.0)
	DefaultBottomColor = core.NewVec3(1.0, 1.0, 1.0)
)

// NewScene creates an empty scene with the default sky and the given camera
func NewScene(cameraConfig geometry.CameraConfig, samplingConfig SamplingConfig) *Scene {
	return &Scene{
		Camera:         geometry.NewCamera(cameraConfig),
		Shapes:         make(geometry.ShapeList, 0),
		TopColor:       DefaultTopColor,
		BottomColor:    DefaultBottomColor,
		SamplingConfig: samplingConfig,
		CameraConfig:   cameraConfig,
	}
}

// Hit returns the nearest intersection with any shape in the scene
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return s.Shapes.Hit(ray, tMin, tMax)
}

// Background returns the sky color seen along a ray that escapes the scene
func (s *Scene) Background(ray core.Ray) core.Color {
	unitDirection := ray.Direction.Normalize()
	t := 0.5 * (unitDirection.Y + 1.0)
	return s.BottomColor.Multiply(1.0 - t).Add(s.TopColor.Multiply(t))
}

// AddSphere adds a sphere to the scene
func (s *Scene) AddSphere(center core.Point3, radius float64, mat material.Material) {
	s.Shapes.Add(geometry.NewSphere(center, radius, mat))
}

// SetCamera rebuilds the camera, e.g. to match a different output aspect ratio
func (s *Scene) SetCamera(config geometry.CameraConfig) {
	s.CameraConfig = config
	s.Camera = geometry.NewCamera(config)
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Shapes)
}

// mergeCamera applies the first override, if any, to a scene's default camera
func mergeCamera(defaults geometry.CameraConfig, overrides []geometry.CameraConfig) geometry.CameraConfig {
	if len(overrides) > 0 {
		return geometry.MergeCameraConfig(defaults, overrides[0])
	}
	return defaults
}
