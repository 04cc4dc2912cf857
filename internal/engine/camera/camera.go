// Package camera provides the orbiting view used to inspect the terrain.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// OrbitCamera circles the world origin at a fixed elevation ratio.
// The eye sits at (sin(a)*d, d/2, cos(a)*d).
type OrbitCamera struct {
	Angle    float32 // Yaw around +Y (radians)
	Distance float32 // Horizontal radius; height is half of this

	// Constraints
	MinDistance float32

	// Per-update steps
	RotationStep float32
	ZoomStep     float32

	// Projection
	FovY float32 // radians
	Near float32
	Far  float32
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Angle:        0,
		Distance:     50,
		MinDistance:  20,
		RotationStep: 0.01,
		ZoomStep:     2,
		FovY:         math32.Pi / 4,
		Near:         1.5,
		Far:          5000,
	}
}

// Advance rotates the camera by one step.
func (c *OrbitCamera) Advance() {
	c.Angle += c.RotationStep
}

// ZoomIn moves one step closer, unless already at or inside MinDistance.
func (c *OrbitCamera) ZoomIn() {
	if c.Distance > c.MinDistance {
		c.Distance -= c.ZoomStep
	}
}

// ZoomOut moves one step away.
func (c *OrbitCamera) ZoomOut() {
	c.Distance += c.ZoomStep
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() mgl32.Vec3 {
	return mgl32.Vec3{
		math32.Sin(c.Angle) * c.Distance,
		c.Distance / 2,
		math32.Cos(c.Angle) * c.Distance,
	}
}

// ViewMatrix returns the view matrix looking at the origin with +Y up.
func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})
}

// ProjectionMatrix returns the perspective projection for the given
// width/height ratio.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(c.FovY, aspect, c.Near, c.Far)
}
