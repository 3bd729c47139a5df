package particles

import (
	"github.com/Faultbox/detailfx/pkg/math"
)

// Material describes how points are shaded.
type Material struct {
	Size       float32 // world units, attenuated with distance
	Opacity    float32
	Color      [3]float32
	FogColor   [3]float32
	FogDensity float32
	SpriteSize int // texture edge in pixels
}

// DefaultMaterial returns the additive glow material of the site.
func DefaultMaterial() Material {
	return Material{
		Size:       0.05,
		Opacity:    0.6,
		Color:      [3]float32{1, 1, 1},
		FogColor:   [3]float32{0.027, 0.035, 0.051},
		FogDensity: 0.05,
		SpriteSize: 64,
	}
}

// Frame is everything a surface needs for one draw call.
type Frame struct {
	Model      math.Mat4
	View       math.Mat4
	Projection math.Mat4
}

// Surface is a render target owned by one Renderer: it is attached to the
// page container on mount and released on unmount. Implementations blend
// additively and never write depth.
type Surface interface {
	// Resize sets the drawing buffer to width*ratio x height*ratio.
	Resize(width, height int, pixelRatio float64)
	// Render issues one draw call of the field.
	Render(f Frame) error
	// Release frees every GPU or terminal resource. It must tolerate
	// being called once after a failed Render.
	Release()
}

// SurfaceFactory creates the surface for a field. It is called once per mount.
type SurfaceFactory func(field *Field, mat Material) (Surface, error)
