package term

import (
	stdmath "math"

	"github.com/Faultbox/detailfx/internal/engine/particles"
	"github.com/Faultbox/detailfx/pkg/math"
)

// PointsLayer draws the particle field one pixel per point. It implements
// particles.Surface. Fog toward the background colour gives the depth cue
// the sprite size gives on a GPU.
type PointsLayer struct {
	field    *particles.Field
	material particles.Material
	canvas   *Canvas
	released bool
}

// NewPointsSurface is a particles.SurfaceFactory for terminal hosts.
func NewPointsSurface(field *particles.Field, mat particles.Material) (particles.Surface, error) {
	return &PointsLayer{field: field, material: mat, canvas: NewCanvas(0, 0)}, nil
}

// Resize maps the logical viewport onto the pixel grid. The pixel ratio has
// no meaning in a terminal.
func (l *PointsLayer) Resize(width, height int, _ float64) {
	l.canvas.Resize(width/PixelSize, height/PixelSize)
}

// Render projects every point of the field into the canvas.
func (l *PointsLayer) Render(f particles.Frame) error {
	l.canvas.Clear()
	w, h := l.canvas.Size()
	if w == 0 || h == 0 {
		return nil
	}

	modelView := f.View.Mul(f.Model)
	mvp := f.Projection.Mul(modelView)
	m := l.material

	for i := 0; i < l.field.Len(); i++ {
		p := l.field.At(i)
		ndc, _, ok := mvp.Project(p)
		if !ok || ndc.X < -1 || ndc.X > 1 || ndc.Y < -1 || ndc.Y > 1 || ndc.Z < -1 || ndc.Z > 1 {
			continue
		}
		eye := modelView.MulVec4(math.Vec4{p.X, p.Y, p.Z, 1})
		fog := fogFactor(-eye[2], m.FogDensity)

		a := m.Opacity
		x := int((ndc.X + 1) / 2 * float32(w))
		y := int((1 - ndc.Y) / 2 * float32(h))
		l.canvas.Add(x, y, RGBA{
			R: math.Lerp(m.Color[0], m.FogColor[0], fog) * a,
			G: math.Lerp(m.Color[1], m.FogColor[1], fog) * a,
			B: math.Lerp(m.Color[2], m.FogColor[2], fog) * a,
			A: a,
		})
	}
	return nil
}

// fogFactor is the exponential-squared fog amount at distance d.
func fogFactor(d, density float32) float32 {
	f := 1 - float32(stdmath.Exp(-float64(density*density*d*d)))
	return min(max(f, 0), 1)
}

// Canvas returns the layer's pixels.
func (l *PointsLayer) Canvas() *Canvas {
	return l.canvas
}

// Blend reports additive blending.
func (l *PointsLayer) Blend() Blend {
	return BlendAdditive
}

// Release drops the pixel buffer.
func (l *PointsLayer) Release() {
	if l.released {
		return
	}
	l.released = true
	l.canvas.Resize(0, 0)
}
