package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// randomSceneSeed fixes the layout so every render of the scene matches
const randomSceneSeed = 1337

// NewRandomScene creates a field of small random spheres around three large feature spheres
func NewRandomScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	defaultCameraConfig := geometry.CameraConfig{
		Center:        core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		AspectRatio:   3.0 / 2.0,
		VFov:          20.0,
		Aperture:      0.1,
		FocusDistance: 10.0,
	}
	cameraConfig := mergeCamera(defaultCameraConfig, cameraOverrides)

	s := NewScene(cameraConfig, SamplingConfig{
		Width:           600,
		Height:          400,
		SamplesPerPixel: 50,
		MaxDepth:        50,
	})

	s.AddSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))

	sampler := core.NewSeededSampler(randomSceneSeed)
	clearing := core.NewVec3(4, 0.2, 0)

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := sampler.Get1D()
			center := core.NewVec3(float64(a)+0.9*sampler.Get1D(), 0.2, float64(b)+0.9*sampler.Get1D())

			// Keep the area around the metal feature sphere clear
			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			var mat material.Material
			switch {
			case chooseMat < 0.8:
				albedo := sampler.Get3D().MultiplyVec(sampler.Get3D())
				mat = material.NewLambertian(albedo)
			case chooseMat < 0.95:
				albedo := sampler.Get3D().Multiply(0.5).Add(core.NewVec3(0.5, 0.5, 0.5))
				mat = material.NewMetal(albedo, 0.5*sampler.Get1D())
			default:
				mat = material.NewDielectric(1.5)
			}
			s.AddSphere(center, 0.2, mat)
		}
	}

	s.AddSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5))
	s.AddSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1)))
	s.AddSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0))

	return s
}
