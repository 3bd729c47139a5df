package particles

import (
	"github.com/Faultbox/detailfx/internal/engine/signal"
	"github.com/Faultbox/detailfx/pkg/math"
)

// MotionParams are the coefficients of the per-frame update.
type MotionParams struct {
	PointerFactor float64 // radians of target rotation per pixel of pointer offset
	Easing        float64 // fraction of the remaining rotation covered each frame
	AmbientSpin   float64 // constant Z rotation per frame
	ScrollSpin    float64 // extra Z rotation per frame per unit of scroll signal
	Parallax      float64 // vertical offset per unit of scroll signal
}

// DefaultMotion returns the site's motion coefficients.
func DefaultMotion() MotionParams {
	return MotionParams{
		PointerFactor: 0.001,
		Easing:        0.05,
		AmbientSpin:   0.001,
		ScrollSpin:    0.0005,
		Parallax:      0.002,
	}
}

// Input is one frame's sample of the signal cells.
type Input struct {
	Pointer signal.Pointer
	Scroll  float64
}

// Motion is the mutable transform of the point cloud.
// The easing is deliberately per frame with no delta time.
type Motion struct {
	RotationX float64
	RotationY float64
	RotationZ float64
	PositionY float64
}

// Step advances the motion by one frame.
func (m *Motion) Step(in Input, p MotionParams) {
	targetY := in.Pointer.X * p.PointerFactor
	targetX := in.Pointer.Y * p.PointerFactor

	m.RotationY += p.Easing * (targetY - m.RotationY)
	m.RotationX += p.Easing * (targetX - m.RotationX)

	m.RotationZ += p.AmbientSpin + in.Scroll*p.ScrollSpin
	m.PositionY = -in.Scroll * p.Parallax
}

// Model returns the object-to-world matrix for the current motion.
func (m Motion) Model() math.Mat4 {
	return math.Compose(
		math.Vec3{Y: float32(m.PositionY)},
		math.Euler{X: float32(m.RotationX), Y: float32(m.RotationY), Z: float32(m.RotationZ)},
	)
}
