// Package reveal draws a vector path progressively as the page scrolls:
// the stroke is dashed with a single dash as long as the path and the dash
// offset shrinks from the full length to zero between the top of the page
// and the point where the anchor section reaches the bottom of the viewport.
package reveal

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/detailfx/internal/engine/anim"
	"github.com/Faultbox/detailfx/internal/engine/events"
	"github.com/Faultbox/detailfx/internal/engine/page"
)

// Surface receives the computed dash.
type Surface interface {
	Resize(width, height int, pixelRatio float64)
	// SetDash sets the dash array to [length, length] and the dash offset.
	SetDash(length, offset float64) error
	Release()
}

// SurfaceFactory creates the overlay surface for a path.
type SurfaceFactory func(path *Path) (Surface, error)

// Document is the scrolling page the path is synchronised with.
type Document interface {
	ScrollY() float64
	ScrollHeight() float64
	Lookup(selector string) (top float64, ok bool)
}

// Options configures the reveal.
type Options struct {
	// Anchor is the section whose top ends the reveal.
	Anchor string
	// RecomputeOnResize re-measures and re-applies the offset after a
	// viewport resize. Off, the offset only changes on scroll.
	RecomputeOnResize bool
}

// DefaultOptions returns the booking anchored reveal.
func DefaultOptions() Options {
	return Options{Anchor: "#booking"}
}

// Deps are the collaborators a Renderer mounts into.
type Deps struct {
	Container  *page.Container
	Window     events.Source
	Document   Document
	Viewport   func() page.Viewport
	Path       *Path
	NewSurface SurfaceFactory
	Log        *zap.Logger
}

// Sample is the layout state one update reads.
type Sample struct {
	ScrollY        float64
	AnchorTop      float64
	ViewportHeight float64
}

// TotalDistance is the scroll distance over which the path is revealed.
func (s Sample) TotalDistance() float64 {
	return s.AnchorTop - s.ViewportHeight
}

// Renderer is the scroll path reveal attached to one container.
type Renderer struct {
	opts Options
	deps Deps
	log  *zap.Logger

	m *mount
}

type mount struct {
	surface   Surface
	length    float64
	offset    float64
	listeners []events.ListenerID
	driven    *anim.Driven[Sample]
}

// New creates an unmounted renderer.
func New(opts Options, deps Deps) *Renderer {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{opts: opts, deps: deps, log: log}
}

// Mount measures the path, attaches the surface, registers the scroll
// listener and applies the current offset immediately.
func (r *Renderer) Mount() error {
	if r.m != nil {
		return nil
	}
	if r.deps.Path == nil || !r.deps.Container.Connected() {
		r.log.Debug("reveal path or container missing, skipping mount")
		return nil
	}

	m := &mount{length: r.deps.Path.Length()}
	m.offset = m.length
	r.m = m

	surface, err := r.deps.NewSurface(r.deps.Path)
	if err != nil {
		r.Unmount()
		return fmt.Errorf("create reveal surface: %w", err)
	}
	m.surface = surface
	vp := r.deps.Viewport()
	surface.Resize(vp.Width, vp.Height, vp.PixelRatio)
	r.deps.Container.Append(surface)

	m.driven = anim.NewDriven(r.sample, func(s Sample) {
		m.offset = StrokeOffset(m.length, s.ScrollY, s.TotalDistance())
		if err := m.surface.SetDash(m.length, m.offset); err != nil {
			r.log.Error("apply reveal dash", zap.Error(err))
		}
	})

	m.listeners = append(m.listeners, r.deps.Window.AddListener(events.Scroll, func(events.Event) {
		m.driven.Step()
	}))
	if r.opts.RecomputeOnResize {
		m.listeners = append(m.listeners, r.deps.Window.AddListener(events.Resize, func(e events.Event) {
			m.length = r.deps.Path.Length()
			m.surface.Resize(e.Width, e.Height, e.PixelRatio)
			m.driven.Step()
		}))
	}

	m.driven.Step()
	r.log.Info("reveal path mounted",
		zap.Float64("length", m.length),
		zap.String("anchor", r.opts.Anchor),
		zap.Bool("recompute_on_resize", r.opts.RecomputeOnResize))
	return nil
}

func (r *Renderer) sample() Sample {
	top, ok := r.deps.Document.Lookup(r.opts.Anchor)
	if !ok {
		top = r.deps.Document.ScrollHeight()
	}
	return Sample{
		ScrollY:        r.deps.Document.ScrollY(),
		AnchorTop:      top,
		ViewportHeight: float64(r.deps.Viewport().Height),
	}
}

// Unmount removes the listeners, detaches the surface and releases it.
// It is safe to call more than once.
func (r *Renderer) Unmount() {
	m := r.m
	if m == nil {
		return
	}
	r.m = nil

	for _, id := range m.listeners {
		r.deps.Window.RemoveListener(id)
	}
	if m.surface != nil {
		if err := r.deps.Container.Remove(m.surface); err != nil && !errors.Is(err, page.ErrNotChild) {
			r.log.Warn("detach reveal surface", zap.Error(err))
		}
		m.surface.Release()
	}
	r.log.Info("reveal path unmounted")
}

// Active reports whether the renderer is mounted.
func (r *Renderer) Active() bool {
	return r.m != nil
}

// Length returns the measured path length, or 0 when unmounted.
func (r *Renderer) Length() float64 {
	if r.m == nil {
		return 0
	}
	return r.m.length
}

// Offset returns the current dash offset, or 0 when unmounted.
func (r *Renderer) Offset() float64 {
	if r.m == nil {
		return 0
	}
	return r.m.offset
}

// Progress returns the revealed fraction in [0, 1].
func (r *Renderer) Progress() float64 {
	if r.m == nil || r.m.length <= 0 {
		return 0
	}
	return 1 - r.m.offset/r.m.length
}
