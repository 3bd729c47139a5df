// Package camera provides camera implementations for 3D rendering.
package camera

import (
	"github.com/Faultbox/detailfx/pkg/math"
)

// Perspective is a camera looking down -Z from a fixed position.
type Perspective struct {
	FOV      float32 // vertical field of view, degrees
	Aspect   float32 // width / height
	Near     float32
	Far      float32
	Position math.Vec3
}

// NewPerspective creates a camera at (0, 0, z).
func NewPerspective(fov, aspect, near, far, z float32) *Perspective {
	return &Perspective{
		FOV:      fov,
		Aspect:   aspect,
		Near:     near,
		Far:      far,
		Position: math.Vec3{Z: z},
	}
}

// SetAspect updates the aspect ratio after a viewport resize. Degenerate
// sizes keep the previous ratio.
func (c *Perspective) SetAspect(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

// ProjectionMatrix returns the perspective projection.
func (c *Perspective) ProjectionMatrix() math.Mat4 {
	return math.Perspective(math.Radians(c.FOV), c.Aspect, c.Near, c.Far)
}

// ViewMatrix returns the world-to-camera transform.
func (c *Perspective) ViewMatrix() math.Mat4 {
	return math.Translate(-c.Position.X, -c.Position.Y, -c.Position.Z)
}

// ViewProjection returns projection * view.
func (c *Perspective) ViewProjection() math.Mat4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}
