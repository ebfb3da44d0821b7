package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// ShadowEpsilon is the minimum hit distance; it keeps scattered rays from
// re-hitting the surface they left because of floating point error.
const ShadowEpsilon = 0.001

// PathTracingIntegrator implements unidirectional path tracing where the sky is the only light
type PathTracingIntegrator struct {
	maxDepth int
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(maxDepth int) *PathTracingIntegrator {
	return &PathTracingIntegrator{maxDepth: maxDepth}
}

// MaxDepth returns the bounce budget given to each camera ray
func (pt *PathTracingIntegrator) MaxDepth() int {
	return pt.maxDepth
}

// RayColor computes the color for a single camera ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, scene *scene.Scene, sampler core.Sampler) (core.Color, int) {
	rays := 0
	color := pt.rayColor(ray, scene, sampler, pt.maxDepth, &rays)
	return color, rays
}

func (pt *PathTracingIntegrator) rayColor(ray core.Ray, scene *scene.Scene, sampler core.Sampler, depth int, rays *int) core.Color {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Color{}
	}
	*rays++

	hit, isHit := scene.Hit(ray, ShadowEpsilon, math.Inf(1))
	if !isHit {
		return scene.Background(ray)
	}

	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		// Absorbed
		return core.Color{}
	}

	return scatter.Attenuation.MultiplyVec(pt.rayColor(scatter.Scattered, scene, sampler, depth-1, rays))
}
