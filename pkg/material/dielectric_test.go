package material

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDielectric_AlwaysScattersWithoutTint(t *testing.T) {
	glass := NewDielectric(1.5)
	sampler := core.NewSeededSampler(42)

	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(1, -1, 0))
	hit := HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		T:         1.0,
		FrontFace: true,
		Material:  glass,
	}

	hasReflection, hasRefraction := false, false
	for i := 0; i < 1000; i++ {
		result, scattered := glass.Scatter(ray, hit, sampler)
		require.True(t, scattered, "Dielectric should always scatter")
		assert.Equal(t, core.NewVec3(1, 1, 1), result.Attenuation)

		if result.Scattered.Direction.Y > 0 {
			hasReflection = true
		} else {
			hasRefraction = true
		}
	}

	assert.True(t, hasReflection, "expected some Schlick reflections")
	assert.True(t, hasRefraction, "expected some refractions")
}

func TestDielectric_NormalIncidence(t *testing.T) {
	glass := NewDielectric(1.5)
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	hit := HitRecord{Normal: core.NewVec3(0, 1, 0), FrontFace: true}

	t.Run("high draw refracts straight through", func(t *testing.T) {
		result, ok := glass.Scatter(ray, hit, fixedSampler{one: 0.99})
		require.True(t, ok)
		assertVecNear(t, core.NewVec3(0, -1, 0), result.Scattered.Direction)
	})

	t.Run("low draw reflects back", func(t *testing.T) {
		result, ok := glass.Scatter(ray, hit, fixedSampler{one: 0.0})
		require.True(t, ok)
		assertVecNear(t, core.NewVec3(0, 1, 0), result.Scattered.Direction)
	})
}

func TestDielectric_TotalInternalReflection(t *testing.T) {
	glass := NewDielectric(1.5)

	// Leaving glass at a grazing angle: sin(1.2)*1.5 > 1
	dir := core.NewVec3(math.Sin(1.2), -math.Cos(1.2), 0)
	ray := core.NewRay(core.NewVec3(0, 1, 0), dir)
	hit := HitRecord{Normal: core.NewVec3(0, 1, 0), FrontFace: false}

	// A draw of 0.999 would refract if refraction were possible
	result, ok := glass.Scatter(ray, hit, fixedSampler{one: 0.999})
	require.True(t, ok)
	assertVecNear(t, core.Reflect(dir, hit.Normal), result.Scattered.Direction)
}

func TestDielectric_RefractionRatioByFace(t *testing.T) {
	glass := NewDielectric(1.5)
	in := core.NewVec3(math.Sin(0.4), -math.Cos(0.4), 0)
	ray := core.NewRay(core.NewVec3(0, 1, 0), in)
	normal := core.NewVec3(0, 1, 0)

	entering, _ := glass.Scatter(ray, HitRecord{Normal: normal, FrontFace: true}, fixedSampler{one: 0.999})
	leaving, _ := glass.Scatter(ray, HitRecord{Normal: normal, FrontFace: false}, fixedSampler{one: 0.999})

	sinEnter := math.Abs(entering.Scattered.Direction.Normalize().X)
	sinLeave := math.Abs(leaving.Scattered.Direction.Normalize().X)

	assert.InDelta(t, math.Sin(0.4)/1.5, sinEnter, 1e-9, "entering bends toward the normal")
	assert.InDelta(t, math.Sin(0.4)*1.5, sinLeave, 1e-9, "leaving bends away from the normal")
}

func TestReflectance(t *testing.T) {
	tests := []struct {
		name     string
		cosine   float64
		ratio    float64
		expected float64
	}{
		{"normal incidence air to glass", 1.0, 1.0 / 1.5, 0.04},
		{"normal incidence glass to air", 1.0, 1.5, 0.04},
		{"grazing incidence", 0.0, 1.0 / 1.5, 1.0},
		{"matched media", 0.5, 1.0, 1.0 / 32.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Reflectance(tt.cosine, tt.ratio), 1e-9)
		})
	}
}
