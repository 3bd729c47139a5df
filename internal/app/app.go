// Package app runs the landing page in an SDL2 window with OpenGL layers.
package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/Faultbox/detailfx/internal/config"
	"github.com/Faultbox/detailfx/internal/engine/debug"
	"github.com/Faultbox/detailfx/internal/engine/events"
	"github.com/Faultbox/detailfx/internal/engine/input"
	"github.com/Faultbox/detailfx/internal/engine/renderer"
	"github.com/Faultbox/detailfx/internal/engine/window"
	"github.com/Faultbox/detailfx/internal/site"
)

// settleFrames is how many frames a one-shot capture waits before checking
// that the scroll has come to rest.
const settleFrames = 3

// Options holds host settings that are not part of the page config.
type Options struct {
	// ScreenshotDir receives F12 captures.
	ScreenshotDir string
	// CaptureOnce, when set, saves the first settled frame there and exits.
	CaptureOnce string
}

// App is the windowed host.
type App struct {
	cfg  *config.Config
	opts Options

	window     *window.Window
	compositor *renderer.Compositor
	input      *input.Input
	page       *site.Page
	shots      *debug.ScreenshotCapture

	running bool
}

// New creates the window, the GL compositor and the page, and mounts it.
func New(cfg *config.Config, opts Options) (*App, error) {
	slog.Info("initializing app",
		"title", cfg.Window.Title,
		"width", cfg.Window.Width,
		"height", cfg.Window.Height,
	)

	a := &App{cfg: cfg, opts: opts}

	var err error
	a.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
		HighDPI:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The compositor needs the GL context the window just created.
	a.compositor, err = renderer.New(renderer.Config{Background: site.RGB(cfg.Window.Background)})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	a.compositor.Resize(a.window.DrawableSize())

	a.input = input.New(input.Config{
		WheelStep:  cfg.Page.WheelStep,
		PixelRatio: a.window.PixelRatio,
	})

	a.page, err = site.New(cfg, a.window.Viewport(), site.Surfaces{
		Particles: renderer.NewPointsSurface,
		Reveal:    renderer.NewPathSurface,
	})
	if err != nil {
		a.compositor.Close()
		a.window.Close()
		return nil, fmt.Errorf("failed to build page: %w", err)
	}
	if err := a.page.Mount(); err != nil {
		// A failed effect leaves the rest of the page running.
		slog.Warn("page mounted with errors", "error", err)
	}

	shotDir := opts.ScreenshotDir
	if opts.CaptureOnce != "" {
		shotDir = opts.CaptureOnce
	}
	a.shots = debug.NewScreenshotCapture(shotDir, "detailfx")

	slog.Info("app initialized successfully")
	return a, nil
}

// Run drives the frame loop until the window closes or Escape is pressed.
func (a *App) Run() error {
	a.running = true

	frameCount := 0
	frames := 0
	fpsTimer := time.Now()

	slog.Info("starting frame loop")

	for a.running {
		capture := false

		// 1. Process input
		quit := a.input.Update()
		for _, e := range a.input.Events() {
			if e.Kind == events.Resize {
				a.compositor.Resize(a.window.DrawableSize())
			}
			if e.Kind == events.Key && e.Key == events.KeyScreenshot {
				capture = true
				continue
			}
			if !a.page.Dispatch(e) {
				quit = true
			}
		}
		if quit {
			a.running = false
			break
		}

		// 2. Advance scroll and run the frame callbacks
		now := time.Now()
		a.page.Frame(now)

		// 3. Compose
		a.compositor.Present(a.page.Layers())

		frames++
		if a.opts.CaptureOnce != "" && frames >= settleFrames && !a.scrolling() {
			capture = true
			a.running = false
		}
		if capture {
			if err := a.screenshot(); err != nil {
				if a.opts.CaptureOnce != "" {
					return err
				}
				slog.Error("screenshot failed", "error", err)
			}
		}

		a.window.SwapBuffers()

		// FPS counter
		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			slog.Debug("fps",
				"fps", frameCount,
				"scrollY", a.page.Document().ScrollY(),
			)
			if a.cfg.Logging.Level == "debug" {
				a.window.SetTitle(fmt.Sprintf("%s (%d fps)", a.cfg.Window.Title, frameCount))
			}
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	slog.Info("frame loop ended")
	return nil
}

func (a *App) scrolling() bool {
	c := a.page.Controller()
	return c != nil && c.Animating()
}

func (a *App) screenshot() error {
	img := a.compositor.Snapshot()
	path, err := a.shots.Capture(img, a.page.Document().ScrollY())
	if err != nil {
		return fmt.Errorf("capturing frame: %w", err)
	}
	slog.Info("screenshot saved", "path", path)
	return nil
}

// Close unmounts the page and releases GL and SDL resources.
func (a *App) Close() {
	slog.Info("shutting down app")
	if a.page != nil {
		a.page.Unmount()
	}
	if a.compositor != nil {
		a.compositor.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
