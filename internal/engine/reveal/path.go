package reveal

import (
	"math"

	"github.com/gogpu/gg"
)

// lengthAccuracy is the arc length tolerance in view-box units.
const lengthAccuracy = 0.01

// ViewBox is the user coordinate system of a path.
type ViewBox struct {
	MinX, MinY    float64
	Width, Height float64
}

// Fit returns the transform mapping the view box into a width x height
// raster, uniformly scaled and centred on both axes ("xMidYMid meet").
func (vb ViewBox) Fit(width, height float64) gg.Matrix {
	if vb.Width <= 0 || vb.Height <= 0 || width <= 0 || height <= 0 {
		return gg.Identity()
	}
	s := vb.Scale(width, height)
	tx := (width-vb.Width*s)/2 - vb.MinX*s
	ty := (height-vb.Height*s)/2 - vb.MinY*s
	return gg.Translate(tx, ty).Multiply(gg.Scale(s, s))
}

// Scale returns the uniform scale factor used by Fit.
func (vb ViewBox) Scale(width, height float64) float64 {
	if vb.Width <= 0 || vb.Height <= 0 {
		return 1
	}
	return math.Min(width/vb.Width, height/vb.Height)
}

// Path is a reveal path: parsed geometry, its view box and its total arc
// length in view-box units.
type Path struct {
	geom    *gg.Path
	viewBox ViewBox
	length  float64
}

// NewPath parses path data and measures it.
func NewPath(data string, vb ViewBox) (*Path, error) {
	geom, err := ParsePathData(data)
	if err != nil {
		return nil, err
	}
	length := geom.Length(lengthAccuracy)
	if math.IsNaN(length) || math.IsInf(length, 0) || length < 0 {
		length = 0
	}
	return &Path{geom: geom, viewBox: vb, length: length}, nil
}

// Length returns the total arc length.
func (p *Path) Length() float64 {
	return p.length
}

// ViewBox returns the user coordinate system.
func (p *Path) ViewBox() ViewBox {
	return p.viewBox
}

// Geometry returns the path in view-box units. Callers must not modify it.
func (p *Path) Geometry() *gg.Path {
	return p.geom
}

// Fitted returns the path transformed into a width x height raster and the
// scale factor applied to lengths.
func (p *Path) Fitted(width, height float64) (*gg.Path, float64) {
	return p.geom.Transform(p.viewBox.Fit(width, height)), p.viewBox.Scale(width, height)
}

// flattenTolerance is the curve flattening tolerance in raster pixels.
const flattenTolerance = 0.25

// Polylines flattens p into one polyline per subpath.
func Polylines(p *gg.Path, tolerance float64) [][]gg.Point {
	var (
		lines      [][]gg.Point
		line       []gg.Point
		cur, start gg.Point
	)
	flush := func() {
		if len(line) > 1 {
			lines = append(lines, line)
		}
		line = nil
	}
	flatten := func(seg *gg.Path) {
		pts := seg.Flatten(tolerance)
		if len(pts) > 1 {
			line = append(line, pts[1:]...)
		}
	}

	for _, el := range p.Elements() {
		switch e := el.(type) {
		case gg.MoveTo:
			flush()
			cur, start = e.Point, e.Point
			line = []gg.Point{cur}
		case gg.LineTo:
			cur = e.Point
			line = append(line, cur)
		case gg.QuadTo:
			seg := gg.NewPath()
			seg.MoveTo(cur.X, cur.Y)
			seg.QuadraticTo(e.Control.X, e.Control.Y, e.Point.X, e.Point.Y)
			flatten(seg)
			cur = e.Point
		case gg.CubicTo:
			seg := gg.NewPath()
			seg.MoveTo(cur.X, cur.Y)
			seg.CubicTo(e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.Point.X, e.Point.Y)
			flatten(seg)
			cur = e.Point
		case gg.Close:
			line = append(line, start)
			cur = start
		}
	}
	flush()
	return lines
}

// polylineLength returns the summed segment length of lines.
func polylineLength(lines [][]gg.Point) float64 {
	total := 0.0
	for _, line := range lines {
		for i := 1; i < len(line); i++ {
			total += math.Hypot(line[i].X-line[i-1].X, line[i].Y-line[i-1].Y)
		}
	}
	return total
}

// TrimPolylines keeps the leading fraction of the total length of lines,
// splitting the segment the cut falls in.
func TrimPolylines(lines [][]gg.Point, fraction float64) [][]gg.Point {
	if !(fraction > 0) {
		return nil
	}
	if fraction >= 1 {
		return lines
	}
	remaining := polylineLength(lines) * fraction

	var out [][]gg.Point
	for _, line := range lines {
		kept := []gg.Point{line[0]}
		for i := 1; i < len(line); i++ {
			a, b := line[i-1], line[i]
			seg := math.Hypot(b.X-a.X, b.Y-a.Y)
			if seg >= remaining {
				t := 0.0
				if seg > 0 {
					t = remaining / seg
				}
				kept = append(kept, gg.Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t})
				return append(out, kept)
			}
			remaining -= seg
			kept = append(kept, b)
		}
		out = append(out, kept)
	}
	return out
}

// Visible returns the leading fraction of the path fitted into a
// width x height raster, together with the fit scale.
func (p *Path) Visible(fraction, width, height float64) ([][]gg.Point, float64) {
	fitted, scale := p.Fitted(width, height)
	return TrimPolylines(Polylines(fitted, flattenTolerance), fraction), scale
}
