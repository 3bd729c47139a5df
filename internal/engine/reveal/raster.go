package reveal

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	"github.com/gogpu/gg"
	"go.uber.org/zap"
	xdraw "golang.org/x/image/draw"
)

// Style is the stroke appearance. Width is in view-box units.
type Style struct {
	Color gg.RGBA
	Width float64
}

// Raster is a CPU surface that strokes the dashed path into an RGBA image.
// With a single dash as long as the path only a leading part is ever drawn,
// so the raster strokes that part directly. The path is drawn at logical
// size and resampled to the device pixel ratio.
type Raster struct {
	path  *Path
	style Style

	width, height int
	ratio         float64

	ctx    *gg.Context
	img    *image.RGBA
	length float64
	offset float64
	dashed bool

	version  uint64
	released bool

	log *zap.Logger
}

// NewRaster creates an empty raster for path.
func NewRaster(path *Path, style Style) *Raster {
	return &Raster{path: path, style: style, ratio: 1, log: zap.NewNop()}
}

// SetLogger sets where redraw failures during Resize are reported.
func (r *Raster) SetLogger(log *zap.Logger) {
	if log != nil {
		r.log = log
	}
}

// Resize changes the raster size and redraws with the last dash.
func (r *Raster) Resize(width, height int, pixelRatio float64) {
	if pixelRatio < 1 {
		pixelRatio = 1
	}
	r.width, r.height, r.ratio = width, height, pixelRatio
	if !r.dashed {
		return
	}
	if err := r.draw(); err != nil {
		r.log.Error("redraw reveal raster", zap.Error(err),
			zap.Int("width", width), zap.Int("height", height))
	}
}

// SetDash sets a dash array of [length, length] starting at offset and
// redraws.
func (r *Raster) SetDash(length, offset float64) error {
	r.length, r.offset, r.dashed = length, offset, true
	return r.draw()
}

func (r *Raster) draw() error {
	if r.released || r.width <= 0 || r.height <= 0 {
		return nil
	}
	if r.path == nil {
		return fmt.Errorf("draw reveal raster: no path")
	}
	if r.ctx == nil || r.ctx.Width() != r.width || r.ctx.Height() != r.height {
		if r.ctx != nil {
			_ = r.ctx.Close()
		}
		r.ctx = gg.NewContext(r.width, r.height)
	}
	r.ctx.Clear()

	if r.length > 0 && r.offset < r.length {
		lines, scale := r.path.Visible(VisibleFraction(r.length, r.offset), float64(r.width), float64(r.height))
		for _, line := range lines {
			r.ctx.MoveTo(line[0].X, line[0].Y)
			for _, pt := range line[1:] {
				r.ctx.LineTo(pt.X, pt.Y)
			}
		}
		r.ctx.SetRGBA(r.style.Color.R, r.style.Color.G, r.style.Color.B, r.style.Color.A)
		r.ctx.SetLineWidth(r.style.Width * scale)
		r.ctx.SetLineCap(gg.LineCapButt)
		r.ctx.SetLineJoin(gg.LineJoinRound)
		if err := r.ctx.Stroke(); err != nil {
			return fmt.Errorf("stroke reveal path: %w", err)
		}
	}

	r.img = r.scaled(toRGBA(r.ctx.Image()))
	r.version++
	return nil
}

func (r *Raster) scaled(src *image.RGBA) *image.RGBA {
	if r.ratio <= 1 {
		return src
	}
	w := int(math.Round(float64(r.width) * r.ratio))
	h := int(math.Round(float64(r.height) * r.ratio))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// Image returns the last drawn image at device size, or nil.
func (r *Raster) Image() *image.RGBA {
	return r.img
}

// Version increments on every redraw.
func (r *Raster) Version() uint64 {
	return r.version
}

// Dash returns the current dash length and offset.
func (r *Raster) Dash() (length, offset float64) {
	return r.length, r.offset
}

// SavePNG writes the logical-size raster to a file.
func (r *Raster) SavePNG(path string) error {
	if r.ctx == nil {
		return fmt.Errorf("save %s: nothing drawn", path)
	}
	return r.ctx.SavePNG(path)
}

// Release frees the drawing context.
func (r *Raster) Release() {
	if r.released {
		return
	}
	r.released = true
	if r.ctx != nil {
		_ = r.ctx.Close()
		r.ctx = nil
	}
	r.img = nil
}
