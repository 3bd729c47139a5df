// Package page models the scrolling document the renderers live in: the
// viewport, the section layout used for anchor lookups, the scroll offset and
// the containers render surfaces are attached to.
package page

import (
	"strings"

	"github.com/Faultbox/detailfx/internal/engine/events"
	"github.com/Faultbox/detailfx/pkg/math"
)

// Viewport is the visible area in logical pixels.
type Viewport struct {
	Width      int
	Height     int
	PixelRatio float64
}

// CappedRatio returns the pixel ratio limited to max. Ratios below 1 count as 1.
func (v Viewport) CappedRatio(max float64) float64 {
	r := v.PixelRatio
	if r < 1 {
		r = 1
	}
	if max > 0 && r > max {
		r = max
	}
	return r
}

// Aspect returns width/height, or 1 for an empty viewport.
func (v Viewport) Aspect() float32 {
	if v.Width <= 0 || v.Height <= 0 {
		return 1
	}
	return float32(v.Width) / float32(v.Height)
}

// Length is a section height, either in pixels or in viewport-height units.
type Length struct {
	Value float64
	VH    bool
}

// Px returns the length in pixels for the given viewport height.
func (l Length) Px(viewportHeight int) float64 {
	if l.VH {
		return l.Value * float64(viewportHeight) / 100
	}
	return l.Value
}

// Section is one block of the document, addressable as "#ID".
type Section struct {
	ID     string
	Height Length
}

// Document owns the layout and the scroll offset and dispatches scroll and
// resize events on its event target.
type Document struct {
	target   *events.Target
	viewport Viewport
	sections []Section
	tops     []float64
	height   float64
	scrollY  float64
}

// NewDocument lays out sections for the viewport.
func NewDocument(target *events.Target, vp Viewport, sections []Section) *Document {
	d := &Document{
		target:   target,
		viewport: vp,
		sections: append([]Section(nil), sections...),
	}
	d.layout()
	return d
}

func (d *Document) layout() {
	d.tops = d.tops[:0]
	top := 0.0
	for _, s := range d.sections {
		d.tops = append(d.tops, top)
		top += s.Height.Px(d.viewport.Height)
	}
	d.height = top
}

// Events returns the window-level event target.
func (d *Document) Events() *events.Target {
	return d.target
}

// Viewport returns the current viewport.
func (d *Document) Viewport() Viewport {
	return d.viewport
}

// Resize updates the viewport, re-lays out the sections and dispatches a
// resize event. If the new layout shortens the page the scroll offset is
// clamped and a scroll event follows.
func (d *Document) Resize(vp Viewport) {
	d.viewport = vp
	d.layout()
	d.target.Dispatch(events.Event{
		Kind:       events.Resize,
		Width:      vp.Width,
		Height:     vp.Height,
		PixelRatio: vp.PixelRatio,
	})
	d.ScrollTo(d.scrollY)
}

// ScrollHeight returns the full document height in pixels.
func (d *Document) ScrollHeight() float64 {
	return d.height
}

// MaxScroll returns the largest reachable scroll offset.
func (d *Document) MaxScroll() float64 {
	m := d.height - float64(d.viewport.Height)
	if m < 0 {
		return 0
	}
	return m
}

// ScrollY returns the current scroll offset.
func (d *Document) ScrollY() float64 {
	return d.scrollY
}

// ScrollTo moves to y, clamped to the scrollable range, and dispatches a
// scroll event when the offset changes.
func (d *Document) ScrollTo(y float64) {
	y = math.Clamp(y, 0, d.MaxScroll())
	if y == d.scrollY {
		return
	}
	d.scrollY = y
	d.target.Dispatch(events.Event{Kind: events.Scroll, ScrollY: y})
}

// ScrollBy scrolls relative to the current offset.
func (d *Document) ScrollBy(dy float64) {
	d.ScrollTo(d.scrollY + dy)
}

// Lookup resolves an "#id" selector to the section's offset from the top of
// the document.
func (d *Document) Lookup(selector string) (float64, bool) {
	id, ok := strings.CutPrefix(selector, "#")
	if !ok || id == "" {
		return 0, false
	}
	for i, s := range d.sections {
		if s.ID == id {
			return d.tops[i], true
		}
	}
	return 0, false
}
