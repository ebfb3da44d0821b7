package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/go-gl/mathgl/mgl64"
)

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	Center        core.Point3 `json:"center"`        // Eye position
	LookAt        core.Point3 `json:"lookAt"`        // Point the camera looks at
	Up            core.Vec3   `json:"up"`            // Up direction
	VFov          float64     `json:"vfov"`          // Vertical field of view in degrees
	AspectRatio   float64     `json:"aspectRatio"`   // Width / height
	Aperture      float64     `json:"aperture"`      // Lens diameter, 0 = pinhole
	FocusDistance float64     `json:"focusDistance"` // 0 = auto-focus on LookAt
}

// DefaultCameraConfig returns the camera used when a scene does not specify one
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90.0,
		AspectRatio: 16.0 / 9.0,
	}
}

// MergeCameraConfig overlays the non-zero fields of override onto base
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	zero := core.Vec3{}
	result := base
	if override.Center != zero {
		result.Center = override.Center
	}
	if override.LookAt != zero {
		result.LookAt = override.LookAt
	}
	if override.Up != zero {
		result.Up = override.Up
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.Aperture != 0 {
		result.Aperture = override.Aperture
	}
	if override.FocusDistance != 0 {
		result.FocusDistance = override.FocusDistance
	}
	return result
}

// Camera generates rays for rendering with depth of field
type Camera struct {
	origin          core.Point3
	lowerLeftCorner core.Point3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3 // Camera basis vectors
	lensRadius      float64
	config          CameraConfig
}

// NewCamera creates a camera from the configuration. The basis and viewport
// are computed once; the camera is immutable afterwards.
func NewCamera(config CameraConfig) *Camera {
	if config.AspectRatio <= 0 {
		config.AspectRatio = 1.0
	}
	vfov := mgl64.Clamp(config.VFov, 1e-3, 179.0)

	theta := mgl64.DegToRad(vfov)
	h := math.Tan(theta / 2)
	viewportHeight := 2.0 * h
	viewportWidth := config.AspectRatio * viewportHeight

	// Orthonormal basis: w points backwards, u right, v up
	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	focusDist := config.FocusDistance
	if focusDist <= 0 {
		focusDist = config.Center.Subtract(config.LookAt).Length()
	}

	horizontal := u.Multiply(focusDist * viewportWidth)
	vertical := v.Multiply(focusDist * viewportHeight)
	lowerLeftCorner := config.Center.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(focusDist))

	return &Camera{
		origin:          config.Center,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
		config:          config,
	}
}

// GetRay generates a ray for screen coordinates (s, t) where 0 <= s,t <= 1.
// With a non-zero aperture the origin is jittered across the lens disk.
func (c *Camera) GetRay(s, t float64, sampler core.Sampler) core.Ray {
	origin := c.origin
	if c.lensRadius > 0 {
		rd := core.RandomInUnitDisk(sampler).Multiply(c.lensRadius)
		offset := c.u.Multiply(rd.X).Add(c.v.Multiply(rd.Y))
		origin = origin.Add(offset)
	}

	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(origin)

	return core.NewRay(origin, direction)
}

// Origin returns the eye position
func (c *Camera) Origin() core.Point3 {
	return c.origin
}

// LensRadius returns half the aperture
func (c *Camera) LensRadius() float64 {
	return c.lensRadius
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}
