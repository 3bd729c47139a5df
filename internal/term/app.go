package term

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/detailfx/internal/config"
	"github.com/Faultbox/detailfx/internal/engine/events"
	"github.com/Faultbox/detailfx/internal/engine/page"
	"github.com/Faultbox/detailfx/internal/logger"
	"github.com/Faultbox/detailfx/internal/site"
)

// frameInterval paces the frame ticker at about 60 frames per second.
const frameInterval = 16 * time.Millisecond

// App runs the page on a terminal screen.
type App struct {
	cfg        *config.Config
	screen     tcell.Screen
	compositor *Compositor
	page       *site.Page
	log        *zap.Logger
}

// New initializes screen, builds the page for its size and mounts it.
// The caller owns screen creation so tests can pass a simulation screen.
func New(cfg *config.Config, screen tcell.Screen) (*App, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse()
	screen.HideCursor()

	a := &App{
		cfg:        cfg,
		screen:     screen,
		compositor: NewCompositor(screen, site.RGB(cfg.Window.Background)),
		log:        logger.Named("term"),
	}

	p, err := site.New(cfg, a.Viewport(), site.Surfaces{
		Particles: NewPointsSurface,
		Reveal:    NewPathSurface,
	})
	if err != nil {
		screen.Fini()
		return nil, fmt.Errorf("build page: %w", err)
	}
	a.page = p
	if err := p.Mount(); err != nil {
		a.log.Warn("page mounted with errors", zap.Error(err))
	}
	return a, nil
}

// Viewport returns the screen size in logical pixels.
func (a *App) Viewport() page.Viewport {
	cols, rows := a.screen.Size()
	return page.Viewport{Width: cols * CellWidth, Height: rows * CellHeight, PixelRatio: 1}
}

// Page returns the mounted page.
func (a *App) Page() *site.Page {
	return a.page
}

// Compositor returns the terminal compositor.
func (a *App) Compositor() *Compositor {
	return a.compositor
}

// Handle dispatches one terminal event. It returns false when the app
// should quit.
func (a *App) Handle(ev tcell.Event) bool {
	if _, ok := ev.(*tcell.EventResize); ok {
		a.screen.Sync()
	}
	for _, e := range Translate(ev, a.cfg.Page.WheelStep, a.Viewport) {
		if !a.page.Dispatch(e) {
			return false
		}
	}
	return true
}

// Step advances the page one frame and presents it.
func (a *App) Step(now time.Time) {
	a.page.Frame(now)
	a.compositor.Present(a.page.Layers())
}

// Run pumps terminal events and frames until ctx ends or the user quits.
func (a *App) Run(ctx context.Context) error {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-done:
				return
			}
		}
	}()

	a.log.Info("starting frame loop")
	a.Step(time.Now())
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-eventChan:
			if !a.Handle(ev) {
				a.log.Info("quit requested")
				return nil
			}
		case now := <-ticker.C:
			a.Step(now)
		}
	}
}

// Close unmounts the page and restores the terminal.
func (a *App) Close() {
	a.page.Unmount()
	a.screen.Fini()
}

// Translate converts a terminal event into page events. viewport supplies
// the size reported with resize events.
func Translate(ev tcell.Event, wheelStep float64, viewport func() page.Viewport) []events.Event {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		key := keyCode(ev)
		if key == events.KeyUnknown {
			return nil
		}
		return []events.Event{{Kind: events.Key, Key: key}}

	case *tcell.EventMouse:
		x, y := ev.Position()
		out := []events.Event{{
			Kind: events.PointerMove,
			X:    float64(x*CellWidth + CellWidth/2),
			Y:    float64(y*CellHeight + CellHeight/2),
		}}
		buttons := ev.Buttons()
		if buttons&tcell.WheelUp != 0 {
			out = append(out, events.Event{Kind: events.Wheel, DeltaY: -wheelStep})
		}
		if buttons&tcell.WheelDown != 0 {
			out = append(out, events.Event{Kind: events.Wheel, DeltaY: wheelStep})
		}
		return out

	case *tcell.EventResize:
		vp := viewport()
		return []events.Event{{
			Kind:       events.Resize,
			Width:      vp.Width,
			Height:     vp.Height,
			PixelRatio: vp.PixelRatio,
		}}
	}
	return nil
}

func keyCode(ev *tcell.EventKey) events.KeyCode {
	switch ev.Key() {
	case tcell.KeyUp:
		return events.KeyUp
	case tcell.KeyDown:
		return events.KeyDown
	case tcell.KeyPgUp:
		return events.KeyPageUp
	case tcell.KeyPgDn:
		return events.KeyPageDown
	case tcell.KeyHome:
		return events.KeyHome
	case tcell.KeyEnd:
		return events.KeyEnd
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return events.KeyEscape
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			return events.KeySpace
		case 'q':
			return events.KeyEscape
		case 'j':
			return events.KeyDown
		case 'k':
			return events.KeyUp
		}
	}
	return events.KeyUnknown
}
