package integrator

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the color carried back along a camera ray.
	// Returns (color, number of ray segments traced)
	RayColor(ray core.Ray, scene *scene.Scene, sampler core.Sampler) (core.Color, int)
}
