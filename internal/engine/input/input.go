// Package input translates SDL2 events into page events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/detailfx/internal/engine/events"
)

// Config tunes the translation.
type Config struct {
	// WheelStep is the scroll distance in pixels of one wheel notch.
	WheelStep float64
	// PixelRatio reports the current device pixel ratio for resize events.
	PixelRatio func() float64
}

// Input polls SDL and buffers translated events.
type Input struct {
	config Config
	events []events.Event
}

// New creates a new input handler.
func New(cfg Config) *Input {
	if cfg.PixelRatio == nil {
		cfg.PixelRatio = func() float64 { return 1 }
	}
	return &Input{
		config: cfg,
		events: make([]events.Event, 0, 16),
	}
}

// Update polls SDL events and translates them.
// Returns true if the application should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	quit := false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, events.Event{Kind: events.Quit})
			quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.events = append(i.events, events.Event{
					Kind:       events.Resize,
					Width:      int(e.Data1),
					Height:     int(e.Data2),
					PixelRatio: i.config.PixelRatio(),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN {
				continue
			}
			key := keyCode(e.Keysym.Scancode)
			if key == events.KeyUnknown {
				continue
			}
			i.events = append(i.events, events.Event{Kind: events.Key, Key: key})
			if key == events.KeyEscape {
				quit = true
			}

		case *sdl.MouseMotionEvent:
			i.events = append(i.events, events.Event{
				Kind: events.PointerMove,
				X:    float64(e.X),
				Y:    float64(e.Y),
			})

		case *sdl.MouseWheelEvent:
			dy := float64(e.Y)
			if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
				dy = -dy
			}
			// SDL reports positive Y away from the user, which scrolls up.
			i.events = append(i.events, events.Event{
				Kind:   events.Wheel,
				DeltaY: -dy * i.config.WheelStep,
			})
		}
	}

	return quit
}

// Events returns the events from the last Update.
func (i *Input) Events() []events.Event {
	return i.events
}

func keyCode(sc sdl.Scancode) events.KeyCode {
	switch sc {
	case sdl.SCANCODE_UP:
		return events.KeyUp
	case sdl.SCANCODE_DOWN:
		return events.KeyDown
	case sdl.SCANCODE_PAGEUP:
		return events.KeyPageUp
	case sdl.SCANCODE_PAGEDOWN:
		return events.KeyPageDown
	case sdl.SCANCODE_HOME:
		return events.KeyHome
	case sdl.SCANCODE_END:
		return events.KeyEnd
	case sdl.SCANCODE_SPACE:
		return events.KeySpace
	case sdl.SCANCODE_ESCAPE:
		return events.KeyEscape
	case sdl.SCANCODE_F12:
		return events.KeyScreenshot
	}
	return events.KeyUnknown
}
