package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewDefaultScene creates a default scene with spheres, ground, and camera
func NewDefaultScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	defaultCameraConfig := geometry.CameraConfig{
		Center:        core.NewVec3(0, 0.75, 2), // Position camera higher and farther back
		LookAt:        core.NewVec3(0, 0.5, -1), // Look at the sphere center
		Up:            core.NewVec3(0, 1, 0),
		AspectRatio:   16.0 / 9.0,
		VFov:          40.0, // Narrower field of view for focus effect
		Aperture:      0.05, // Strong depth of field blur
		FocusDistance: 0.0,  // Auto-calculate focus distance
	}
	cameraConfig := mergeCamera(defaultCameraConfig, cameraOverrides)

	s := NewScene(cameraConfig, SamplingConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	})

	lambertianGreen := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0).Multiply(0.6))
	lambertianBlue := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	lambertianRed := material.NewLambertian(core.NewVec3(0.65, 0.25, 0.2))
	metalSilver := material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.0)
	metalGold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)
	materialGlass := material.NewDielectric(1.5)

	// Ground is a huge sphere whose top touches y=0
	s.AddSphere(core.NewVec3(0, -1000, -1), 1000, lambertianGreen)

	s.AddSphere(core.NewVec3(0, 0.5, -1), 0.5, lambertianRed)
	s.AddSphere(core.NewVec3(-1, 0.5, -1), 0.5, metalSilver)
	s.AddSphere(core.NewVec3(1, 0.5, -1), 0.5, metalGold)
	s.AddSphere(core.NewVec3(0.5, 0.25, -0.5), 0.25, materialGlass)

	// Hollow glass sphere with a blue sphere inside
	s.AddSphere(core.NewVec3(-0.5, 0.25, -0.5), 0.25, materialGlass)
	s.AddSphere(core.NewVec3(-0.5, 0.25, -0.5), -0.24, materialGlass)
	s.AddSphere(core.NewVec3(-0.5, 0.25, -0.5), 0.20, lambertianBlue)

	return s
}
