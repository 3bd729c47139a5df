package term

import (
	stdmath "math"

	"github.com/gogpu/gg"

	"github.com/Faultbox/detailfx/internal/engine/reveal"
)

// PathLayer draws the revealed prefix of the path as a one pixel line. It
// implements reveal.Surface.
type PathLayer struct {
	path   *reveal.Path
	color  RGBA
	canvas *Canvas

	length float64
	offset float64
	dashed bool
}

// NewPathSurface returns a reveal.SurfaceFactory for terminal hosts. The
// stroke width of style is ignored.
func NewPathSurface(style reveal.Style) reveal.SurfaceFactory {
	c := style.Color
	return func(path *reveal.Path) (reveal.Surface, error) {
		return &PathLayer{
			path: path,
			color: RGBA{
				R: float32(c.R * c.A),
				G: float32(c.G * c.A),
				B: float32(c.B * c.A),
				A: float32(c.A),
			},
			canvas: NewCanvas(0, 0),
		}, nil
	}
}

// Resize maps the logical viewport onto the pixel grid and redraws.
func (l *PathLayer) Resize(width, height int, _ float64) {
	l.canvas.Resize(width/PixelSize, height/PixelSize)
	if l.dashed {
		l.draw()
	}
}

// SetDash redraws with a [length, length] dash shifted by offset.
func (l *PathLayer) SetDash(length, offset float64) error {
	l.length, l.offset, l.dashed = length, offset, true
	l.draw()
	return nil
}

func (l *PathLayer) draw() {
	l.canvas.Clear()
	w, h := l.canvas.Size()
	if w == 0 || h == 0 {
		return
	}
	fraction := reveal.VisibleFraction(l.length, l.offset)
	if fraction <= 0 {
		return
	}
	lines, _ := l.path.Visible(fraction, float64(w), float64(h))
	for _, line := range lines {
		for i := 1; i < len(line); i++ {
			l.segment(line[i-1], line[i])
		}
		if len(line) == 1 {
			l.plot(line[0])
		}
	}
}

// segment plots a line with half-pixel steps so no pixel along it is skipped.
func (l *PathLayer) segment(a, b gg.Point) {
	dx, dy := b.X-a.X, b.Y-a.Y
	steps := int(stdmath.Ceil(stdmath.Max(stdmath.Abs(dx), stdmath.Abs(dy)) * 2))
	if steps == 0 {
		l.plot(a)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		l.plot(gg.Point{X: a.X + dx*t, Y: a.Y + dy*t})
	}
}

func (l *PathLayer) plot(p gg.Point) {
	x, y := int(stdmath.Floor(p.X)), int(stdmath.Floor(p.Y))
	// The canvas is cleared before each draw, so a set pixel is this line's.
	if l.canvas.At(x, y) != (RGBA{}) {
		return
	}
	l.canvas.Over(x, y, l.color)
}

// Dash returns the last applied dash.
func (l *PathLayer) Dash() (length, offset float64) {
	return l.length, l.offset
}

// Canvas returns the layer's pixels.
func (l *PathLayer) Canvas() *Canvas {
	return l.canvas
}

// Blend reports source-over blending.
func (l *PathLayer) Blend() Blend {
	return BlendAlpha
}

// Release drops the pixel buffer.
func (l *PathLayer) Release() {
	l.canvas.Resize(0, 0)
	l.dashed = false
}
