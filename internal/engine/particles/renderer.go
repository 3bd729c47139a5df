package particles

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/detailfx/internal/engine/anim"
	"github.com/Faultbox/detailfx/internal/engine/camera"
	"github.com/Faultbox/detailfx/internal/engine/events"
	"github.com/Faultbox/detailfx/internal/engine/frame"
	"github.com/Faultbox/detailfx/internal/engine/page"
	"github.com/Faultbox/detailfx/internal/engine/signal"
	"github.com/Faultbox/detailfx/internal/engine/smoothscroll"
)

// Options configures the particle field.
type Options struct {
	Count    int
	Spread   float32
	Seed     uint64
	FOV      float32
	Near     float32
	Far      float32
	CameraZ  float32
	MaxRatio float64
	Signal   SignalKind
	Motion   MotionParams
	Material Material
}

// DefaultOptions returns the hero background configuration.
func DefaultOptions() Options {
	return Options{
		Count:    700,
		Spread:   15,
		Seed:     1,
		FOV:      75,
		Near:     0.1,
		Far:      1000,
		CameraZ:  5,
		MaxRatio: 2,
		Signal:   SignalScroll,
		Motion:   DefaultMotion(),
		Material: DefaultMaterial(),
	}
}

// Deps are the collaborators a Renderer mounts into.
type Deps struct {
	Container  *page.Container
	Window     events.Source
	Viewport   func() page.Viewport
	Scroll     ScrollSource // optional
	Frames     frame.Scheduler
	NewSurface SurfaceFactory
	Log        *zap.Logger
}

// Renderer is the particle field attached to one container. All methods
// must be called from the goroutine that owns the page.
type Renderer struct {
	opts Options
	deps Deps
	log  *zap.Logger

	m *mount
}

// mount holds everything created by one Mount call.
type mount struct {
	pointer *signal.Cell[signal.Pointer]
	scroll  *signal.Cell[float64]
	camera  *camera.Perspective
	field   *Field
	surface Surface
	motion  Motion

	// viewport is the size last seen by this mount's resize listener.
	viewport page.Viewport

	listeners []events.ListenerID
	sub       smoothscroll.SubscriptionID
	driven    *anim.Driven[Input]
}

// New creates an unmounted renderer.
func New(opts Options, deps Deps) *Renderer {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{opts: opts, deps: deps, log: log}
}

// Mount builds the scene, attaches the surface and starts the frame loop.
// Mounting twice is a no-op, and so is mounting into a detached container.
// If the surface cannot be created every partial resource is released and
// the error is returned.
func (r *Renderer) Mount() error {
	if r.m != nil {
		return nil
	}
	if !r.deps.Container.Connected() {
		r.log.Debug("container not connected, skipping mount")
		return nil
	}

	vp := r.deps.Viewport()
	m := &mount{
		pointer: signal.NewCell(signal.Pointer{}),
		scroll:  signal.NewCell(0.0),
		camera:  camera.NewPerspective(r.opts.FOV, vp.Aspect(), r.opts.Near, r.opts.Far, r.opts.CameraZ),
		field:   NewField(r.opts.Count, r.opts.Spread, r.opts.Seed),

		viewport: vp,
	}
	r.m = m

	surface, err := r.deps.NewSurface(m.field, r.opts.Material)
	if err != nil {
		r.Unmount()
		return fmt.Errorf("create particle surface: %w", err)
	}
	m.surface = surface
	surface.Resize(vp.Width, vp.Height, vp.CappedRatio(r.opts.MaxRatio))
	r.deps.Container.Append(surface)

	m.listeners = append(m.listeners,
		r.deps.Window.AddListener(events.PointerMove, func(e events.Event) {
			m.pointer.Store(signal.PointerFromClient(e.X, e.Y, m.viewport.Width, m.viewport.Height))
		}),
		r.deps.Window.AddListener(events.Resize, func(e events.Event) {
			m.viewport = page.Viewport{Width: e.Width, Height: e.Height, PixelRatio: e.PixelRatio}
			m.camera.SetAspect(e.Width, e.Height)
			m.surface.Resize(e.Width, e.Height, m.viewport.CappedRatio(r.opts.MaxRatio))
		}),
	)

	if r.deps.Scroll != nil {
		kind := r.opts.Signal
		m.sub = r.deps.Scroll.On(smoothscroll.EventScroll, func(e smoothscroll.Event) {
			m.scroll.Store(kind.Value(e))
		})
	}

	m.driven = anim.NewDriven(
		func() Input {
			return Input{Pointer: m.pointer.Load(), Scroll: m.scroll.Load()}
		},
		func(in Input) {
			m.motion.Step(in, r.opts.Motion)
			err := m.surface.Render(Frame{
				Model:      m.motion.Model(),
				View:       m.camera.ViewMatrix(),
				Projection: m.camera.ProjectionMatrix(),
			})
			if err != nil {
				r.log.Error("render particles", zap.Error(err))
				m.driven.Stop()
			}
		},
	)
	m.driven.Run(r.deps.Frames)

	r.log.Info("particle field mounted",
		zap.Int("points", m.field.Len()),
		zap.Int("width", vp.Width),
		zap.Int("height", vp.Height))
	return nil
}

// Unmount stops the loop, removes every listener and subscription, detaches
// the surface and releases it. It is safe after a partial Mount and safe to
// call more than once.
func (r *Renderer) Unmount() {
	m := r.m
	if m == nil {
		return
	}
	r.m = nil

	if m.driven != nil {
		m.driven.Stop()
	}
	for _, id := range m.listeners {
		r.deps.Window.RemoveListener(id)
	}
	if m.sub != 0 && r.deps.Scroll != nil {
		r.deps.Scroll.Off(smoothscroll.EventScroll, m.sub)
	}
	if m.surface != nil {
		if err := r.deps.Container.Remove(m.surface); err != nil && !errors.Is(err, page.ErrNotChild) {
			r.log.Warn("detach particle surface", zap.Error(err))
		}
		m.surface.Release()
	}
	r.log.Info("particle field unmounted")
}

// Active reports whether the renderer is mounted.
func (r *Renderer) Active() bool {
	return r.m != nil
}

// Running reports whether the frame loop is scheduled.
func (r *Renderer) Running() bool {
	return r.m != nil && r.m.driven != nil && r.m.driven.Running()
}

// Motion returns the current transform of the point cloud.
func (r *Renderer) Motion() Motion {
	if r.m == nil {
		return Motion{}
	}
	return r.m.motion
}

// Field returns the mounted field, or nil.
func (r *Renderer) Field() *Field {
	if r.m == nil {
		return nil
	}
	return r.m.field
}

// Viewport returns the viewport the mounted field is sized for.
func (r *Renderer) Viewport() page.Viewport {
	if r.m == nil {
		return page.Viewport{}
	}
	return r.m.viewport
}

// Camera returns the mounted camera, or nil.
func (r *Renderer) Camera() *camera.Perspective {
	if r.m == nil {
		return nil
	}
	return r.m.camera
}
