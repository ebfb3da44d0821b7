package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapeList_NearestHit(t *testing.T) {
	near := NewSphere(core.NewVec3(0, 0, -2), 0.5, nil)
	far := NewSphere(core.NewVec3(0, 0, -5), 0.5, nil)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	tests := []struct {
		name  string
		order ShapeList
	}{
		{"near first", ShapeList{near, far}},
		{"far first", ShapeList{far, near}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := tt.order.Hit(ray, 0.001, math.Inf(1))
			require.True(t, ok)
			assert.InDelta(t, 1.5, hit.T, 1e-9, "order must not change the nearest hit")
		})
	}
}

func TestShapeList_Empty(t *testing.T) {
	var list ShapeList
	hit, ok := list.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), 0.001, math.Inf(1))
	assert.False(t, ok)
	assert.Nil(t, hit)
}

func TestShapeList_RespectsTMax(t *testing.T) {
	var list ShapeList
	list.Add(NewSphere(core.NewVec3(0, 0, -5), 0.5, nil))
	require.Len(t, list, 1)

	_, ok := list.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), 0.001, 4.0)
	assert.False(t, ok)
}
