package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-9

func assertVecInDelta(t *testing.T, expected, actual Vec3, delta float64) {
	t.Helper()
	assert.InDelta(t, expected.X, actual.X, delta, "X of %v", actual)
	assert.InDelta(t, expected.Y, actual.Y, delta, "Y of %v", actual)
	assert.InDelta(t, expected.Z, actual.Z, delta, "Z of %v", actual)
}

func TestVec3_Arithmetic(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	assert.Equal(t, NewVec3(5, -3, 9), a.Add(b))
	assert.Equal(t, NewVec3(-3, 7, -3), a.Subtract(b))
	assert.Equal(t, NewVec3(2, 4, 6), a.Multiply(2))
	assert.Equal(t, NewVec3(4, -10, 18), a.MultiplyVec(b))
	assert.Equal(t, NewVec3(-1, -2, -3), a.Negate())
	assert.InDelta(t, 12.0, a.Dot(b), tolerance)
	assert.InDelta(t, 14.0, a.LengthSquared(), tolerance)
	assert.InDelta(t, math.Sqrt(14), a.Length(), tolerance)

	// Values are immutable: operations never modify the receiver
	assert.Equal(t, NewVec3(1, 2, 3), a)
}

func TestVec3_Cross(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Vec3
		expected Vec3
	}{
		{"x cross y", NewVec3(1, 0, 0), NewVec3(0, 1, 0), NewVec3(0, 0, 1)},
		{"y cross z", NewVec3(0, 1, 0), NewVec3(0, 0, 1), NewVec3(1, 0, 0)},
		{"z cross x", NewVec3(0, 0, 1), NewVec3(1, 0, 0), NewVec3(0, 1, 0)},
		{"parallel", NewVec3(2, 2, 2), NewVec3(1, 1, 1), NewVec3(0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertVecInDelta(t, tt.expected, tt.a.Cross(tt.b), tolerance)
		})
	}
}

func TestVec3_Normalize(t *testing.T) {
	n := NewVec3(3, 0, 4).Normalize()
	assertVecInDelta(t, NewVec3(0.6, 0, 0.8), n, tolerance)
	assert.InDelta(t, 1.0, n.Length(), tolerance)

	// Zero vector stays zero instead of producing NaN
	assert.Equal(t, Vec3{}, Vec3{}.Normalize())
}

func TestVec3_NearZero(t *testing.T) {
	assert.True(t, NewVec3(1e-9, -1e-9, 0).NearZero())
	assert.False(t, NewVec3(1e-9, 1e-3, 0).NearZero())
}

func TestVec3_SqrtAndClamp(t *testing.T) {
	assertVecInDelta(t, NewVec3(0.5, 1, 0), NewVec3(0.25, 1, -4).Sqrt(), tolerance)
	assert.Equal(t, NewVec3(0, 0.5, 0.999), NewVec3(-1, 0.5, 3).Clamp(0, 0.999))
}

func TestReflect(t *testing.T) {
	v := NewVec3(1, -1, 0)
	n := NewVec3(0, 1, 0)
	assertVecInDelta(t, NewVec3(1, 1, 0), Reflect(v, n), tolerance)
}

func TestRefract(t *testing.T) {
	n := NewVec3(0, 1, 0)

	t.Run("normal incidence passes straight through", func(t *testing.T) {
		out, ok := Refract(NewVec3(0, -1, 0), n, 1.0/1.5)
		require.True(t, ok)
		assertVecInDelta(t, NewVec3(0, -1, 0), out, tolerance)
	})

	t.Run("index ratio of one keeps direction", func(t *testing.T) {
		in := NewVec3(1, -1, 0).Normalize()
		out, ok := Refract(in, n, 1.0)
		require.True(t, ok)
		assertVecInDelta(t, in, out, tolerance)
	})

	t.Run("snell's law holds", func(t *testing.T) {
		in := NewVec3(math.Sin(0.5), -math.Cos(0.5), 0)
		ratio := 1.0 / 1.5
		out, ok := Refract(in, n, ratio)
		require.True(t, ok)
		sinOut := math.Abs(out.X) / out.Length()
		assert.InDelta(t, ratio*math.Sin(0.5), sinOut, 1e-9)
		assert.InDelta(t, 1.0, out.Length(), 1e-9)
	})

	t.Run("total internal reflection fails", func(t *testing.T) {
		// Grazing angle leaving glass into air
		in := NewVec3(math.Sin(1.2), -math.Cos(1.2), 0)
		_, ok := Refract(in, n, 1.5)
		assert.False(t, ok)
	})
}

func TestRay_At(t *testing.T) {
	r := NewRay(NewVec3(1, 1, 1), NewVec3(0, 0, -2))
	assert.Equal(t, NewVec3(1, 1, 1), r.At(0))
	assert.Equal(t, NewVec3(1, 1, -2), r.At(1.5))
}
