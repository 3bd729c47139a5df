// Package term renders the landing page into a terminal with tcell. Every
// cell shows two stacked square pixels drawn with an upper half block, so a
// cols x rows terminal is a cols x 2*rows canvas.
package term

import (
	"github.com/gdamore/tcell/v2"
)

const (
	// CellWidth and CellHeight are the logical pixels one terminal cell
	// stands for. The page lays out and scrolls in these units.
	CellWidth  = 8
	CellHeight = 16

	// PixelSize is the logical size of one canvas pixel.
	PixelSize = CellWidth
)

const halfBlock = '▀'

// RGBA is a premultiplied colour with components in [0, 1].
type RGBA struct {
	R, G, B, A float32
}

// Canvas is a premultiplied pixel grid.
type Canvas struct {
	w, h int
	pix  []RGBA
}

// NewCanvas creates a transparent canvas of w x h pixels.
func NewCanvas(w, h int) *Canvas {
	c := &Canvas{}
	c.Resize(w, h)
	return c
}

// Resize changes the canvas size and clears it.
func (c *Canvas) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c.w, c.h = w, h
	if cap(c.pix) >= w*h {
		c.pix = c.pix[:w*h]
	} else {
		c.pix = make([]RGBA, w*h)
	}
	c.Clear()
}

// Size returns the canvas size in pixels.
func (c *Canvas) Size() (int, int) {
	return c.w, c.h
}

// Clear makes every pixel transparent.
func (c *Canvas) Clear() {
	clear(c.pix)
}

// At returns the pixel at (x, y), transparent when out of range.
func (c *Canvas) At(x, y int) RGBA {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return RGBA{}
	}
	return c.pix[y*c.w+x]
}

// Add accumulates src into the pixel at (x, y).
func (c *Canvas) Add(x, y int, src RGBA) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	p := &c.pix[y*c.w+x]
	p.R += src.R
	p.G += src.G
	p.B += src.B
	p.A = min(1, p.A+src.A)
}

// Over draws src over the pixel at (x, y).
func (c *Canvas) Over(x, y int, src RGBA) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	p := &c.pix[y*c.w+x]
	*p = over(src, *p)
}

func over(src, dst RGBA) RGBA {
	k := 1 - src.A
	return RGBA{
		R: src.R + dst.R*k,
		G: src.G + dst.G*k,
		B: src.B + dst.B*k,
		A: src.A + dst.A*k,
	}
}

// Blend selects how a layer combines with what is below it.
type Blend int

const (
	// BlendAlpha is premultiplied source-over.
	BlendAlpha Blend = iota
	// BlendAdditive adds the layer's colour.
	BlendAdditive
)

// Composite combines src into c with the given blend. Both canvases must
// be the same size; extra pixels of src are ignored.
func (c *Canvas) Composite(src *Canvas, blend Blend) {
	w, h := min(c.w, src.w), min(c.h, src.h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			s := src.pix[y*src.w+x]
			if s == (RGBA{}) {
				continue
			}
			if blend == BlendAdditive {
				c.Add(x, y, s)
			} else {
				c.Over(x, y, s)
			}
		}
	}
}

// Fill sets every pixel to an opaque colour.
func (c *Canvas) Fill(rgb [3]float32) {
	for i := range c.pix {
		c.pix[i] = RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 1}
	}
}

// Blit writes the canvas to the screen, two pixel rows per cell row.
func (c *Canvas) Blit(s tcell.Screen) {
	for row := 0; row*2 < c.h; row++ {
		for x := 0; x < c.w; x++ {
			top := c.At(x, row*2)
			bottom := c.At(x, row*2+1)
			style := tcell.StyleDefault.
				Foreground(toColor(top)).
				Background(toColor(bottom))
			s.SetContent(x, row, halfBlock, nil, style)
		}
	}
}

func toColor(p RGBA) tcell.Color {
	return tcell.NewRGBColor(channel(p.R), channel(p.G), channel(p.B))
}

func channel(v float32) int32 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return int32(v*255 + 0.5)
}
