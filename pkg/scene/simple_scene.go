package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewSimpleScene creates a single diffuse sphere resting above a large ground sphere,
// viewed through a pinhole camera at the origin
func NewSimpleScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	defaultCameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: 16.0 / 9.0,
		VFov:        90.0,
	}
	cameraConfig := mergeCamera(defaultCameraConfig, cameraOverrides)

	s := NewScene(cameraConfig, SamplingConfig{
		Width:           1920,
		Height:          1080,
		SamplesPerPixel: 8,
		MaxDepth:        50,
	})

	gray := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, gray)
	s.AddSphere(core.NewVec3(0, -110, -2), 100, gray)

	return s
}
