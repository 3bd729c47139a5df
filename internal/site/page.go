// Package site assembles the landing page: the scrolling document, its
// event target and frame queue, the optional smooth-scroll controller and
// the two scroll-driven effects. Hosts feed it events and frames and present
// its layers.
package site

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/gg"
	"go.uber.org/zap"

	"github.com/Faultbox/detailfx/internal/config"
	"github.com/Faultbox/detailfx/internal/engine/events"
	"github.com/Faultbox/detailfx/internal/engine/frame"
	"github.com/Faultbox/detailfx/internal/engine/page"
	"github.com/Faultbox/detailfx/internal/engine/particles"
	"github.com/Faultbox/detailfx/internal/engine/reveal"
	"github.com/Faultbox/detailfx/internal/engine/smoothscroll"
	"github.com/Faultbox/detailfx/internal/logger"
)

// pageStep is the share of the viewport PageUp, PageDown and Space scroll.
const pageStep = 0.9

// Surfaces creates the host-specific render surfaces.
type Surfaces struct {
	Particles particles.SurfaceFactory
	Reveal    func(style reveal.Style) reveal.SurfaceFactory
}

// Page is the mounted landing page.
type Page struct {
	cfg *config.Config
	log *zap.Logger

	target *events.Target
	doc    *page.Document
	frames *frame.Queue
	scroll *smoothscroll.Controller

	background *page.Container
	overlay    *page.Container

	particles *particles.Renderer
	reveal    *reveal.Renderer
}

// New builds the page for a viewport. Effects disabled in cfg are not
// created.
func New(cfg *config.Config, vp page.Viewport, surfaces Surfaces) (*Page, error) {
	sections, err := Sections(cfg.Page.Sections)
	if err != nil {
		return nil, err
	}

	p := &Page{
		cfg:        cfg,
		log:        logger.Named("site"),
		target:     events.NewTarget(),
		frames:     frame.NewQueue(),
		background: page.NewContainer("background"),
		overlay:    page.NewContainer("overlay"),
	}
	p.doc = page.NewDocument(p.target, vp, sections)

	if cfg.Scroll.Smooth {
		p.scroll = smoothscroll.New(p.doc, smoothscroll.Options{
			FPS:             60,
			Frequency:       cfg.Scroll.Frequency,
			Damping:         cfg.Scroll.Damping,
			WheelMultiplier: cfg.Scroll.WheelMultiplier,
		}, logger.Named("smoothscroll"))
	}

	if cfg.Particles.Enabled && surfaces.Particles != nil {
		deps := particles.Deps{
			Container:  p.background,
			Window:     p.target,
			Viewport:   p.doc.Viewport,
			Frames:     p.frames,
			NewSurface: surfaces.Particles,
			Log:        logger.Named("particles"),
		}
		if p.scroll != nil {
			deps.Scroll = p.scroll
		}
		p.particles = particles.New(ParticleOptions(cfg), deps)
	}

	if cfg.Reveal.Enabled && surfaces.Reveal != nil {
		vb := cfg.Reveal.ViewBox
		path, err := reveal.NewPath(cfg.Reveal.Path, reveal.ViewBox{
			MinX: vb[0], MinY: vb[1], Width: vb[2], Height: vb[3],
		})
		if err != nil {
			return nil, fmt.Errorf("reveal path: %w", err)
		}
		style := reveal.Style{
			Color: gg.Hex(cfg.Reveal.StrokeColor),
			Width: cfg.Reveal.StrokeWidth,
		}
		p.reveal = reveal.New(reveal.Options{
			Anchor:            cfg.Reveal.Anchor,
			RecomputeOnResize: cfg.Reveal.RecomputeOnResize,
		}, reveal.Deps{
			Container:  p.overlay,
			Window:     p.target,
			Document:   p.doc,
			Viewport:   p.doc.Viewport,
			Path:       path,
			NewSurface: surfaces.Reveal(style),
			Log:        logger.Named("reveal"),
		})
	}

	return p, nil
}

// Sections converts configured sections into document sections.
func Sections(cfgs []config.SectionConfig) ([]page.Section, error) {
	sections := make([]page.Section, 0, len(cfgs))
	for _, s := range cfgs {
		v, unit, err := config.ParseLength(s.Height)
		if err != nil {
			return nil, fmt.Errorf("section %q: %w", s.ID, err)
		}
		sections = append(sections, page.Section{
			ID:     s.ID,
			Height: page.Length{Value: v, VH: unit == config.UnitViewportHeight},
		})
	}
	return sections, nil
}

// ParticleOptions maps the particle config onto renderer options.
func ParticleOptions(cfg *config.Config) particles.Options {
	c := cfg.Particles
	opts := particles.DefaultOptions()
	opts.Count = c.Count
	opts.Spread = c.Spread
	opts.Seed = uint64(c.Seed)
	if c.Seed == 0 {
		opts.Seed = uint64(time.Now().UnixNano())
	}
	opts.FOV = c.FOV
	opts.Near = c.Near
	opts.Far = c.Far
	opts.CameraZ = c.CameraZ
	opts.MaxRatio = cfg.Window.MaxPixelRatio
	opts.Signal = particles.ParseSignalKind(cfg.Scroll.Signal)
	opts.Material.Size = c.Size
	opts.Material.Opacity = c.Opacity
	opts.Material.Color = RGB(c.Color)
	opts.Material.FogColor = RGB(c.FogColor)
	opts.Material.FogDensity = c.FogDensity
	return opts
}

// RGB parses a hex colour into linear float components.
func RGB(hex string) [3]float32 {
	c := gg.Hex(hex)
	return [3]float32{float32(c.R), float32(c.G), float32(c.B)}
}

// Mount mounts both effects. A failing effect is left unmounted and its
// error returned; the other one still runs.
func (p *Page) Mount() error {
	var errs []error
	if p.particles != nil {
		if err := p.particles.Mount(); err != nil {
			p.log.Warn("particle field disabled", zap.Error(err))
			errs = append(errs, err)
		}
	}
	if p.reveal != nil {
		if err := p.reveal.Mount(); err != nil {
			p.log.Warn("reveal path disabled", zap.Error(err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Unmount tears both effects down. Safe to call twice.
func (p *Page) Unmount() {
	if p.reveal != nil {
		p.reveal.Unmount()
	}
	if p.particles != nil {
		p.particles.Unmount()
	}
}

// Dispatch routes a host event. It returns false for Quit.
func (p *Page) Dispatch(e events.Event) bool {
	switch e.Kind {
	case events.Quit:
		return false
	case events.PointerMove:
		p.target.Dispatch(e)
	case events.Resize:
		p.doc.Resize(page.Viewport{Width: e.Width, Height: e.Height, PixelRatio: e.PixelRatio})
		if p.scroll != nil {
			p.scroll.Resize()
		}
	case events.Wheel:
		p.scrollBy(e.DeltaY)
	case events.Key:
		return p.key(e.Key)
	}
	return true
}

func (p *Page) key(k events.KeyCode) bool {
	vh := float64(p.doc.Viewport().Height)
	switch k {
	case events.KeyEscape:
		return false
	case events.KeyUp:
		p.scrollBy(-p.cfg.Page.KeyStep)
	case events.KeyDown:
		p.scrollBy(p.cfg.Page.KeyStep)
	case events.KeyPageUp:
		p.scrollBy(-vh * pageStep)
	case events.KeyPageDown, events.KeySpace:
		p.scrollBy(vh * pageStep)
	case events.KeyHome:
		p.scrollTo(0)
	case events.KeyEnd:
		p.scrollTo(p.doc.MaxScroll())
	}
	return true
}

func (p *Page) scrollBy(dy float64) {
	if p.scroll != nil {
		p.scroll.Wheel(dy)
		return
	}
	p.doc.ScrollBy(dy)
}

func (p *Page) scrollTo(y float64) {
	if p.scroll != nil {
		p.scroll.ScrollTo(y, false)
		return
	}
	p.doc.ScrollTo(y)
}

// Frame advances the smooth scroll and runs the frame callbacks.
func (p *Page) Frame(now time.Time) {
	if p.scroll != nil {
		p.scroll.Advance()
	}
	p.frames.Flush(now)
}

// Layers returns the mounted surfaces in paint order.
func (p *Page) Layers() []page.Node {
	return append(p.background.Children(), p.overlay.Children()...)
}

// Document returns the scrolling document.
func (p *Page) Document() *page.Document {
	return p.doc
}

// Events returns the window event target.
func (p *Page) Events() *events.Target {
	return p.target
}

// Controller returns the smooth-scroll controller, or nil.
func (p *Page) Controller() *smoothscroll.Controller {
	return p.scroll
}

// Particles returns the particle renderer, or nil when disabled.
func (p *Page) Particles() *particles.Renderer {
	return p.particles
}

// Reveal returns the reveal renderer, or nil when disabled.
func (p *Page) Reveal() *reveal.Renderer {
	return p.reveal
}
