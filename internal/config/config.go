// Package config handles application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalid is returned by Validate for impossible settings.
var ErrInvalid = errors.New("invalid config")

// Config holds all application settings.
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Page      PageConfig      `yaml:"page"`
	Scroll    ScrollConfig    `yaml:"scroll"`
	Particles ParticlesConfig `yaml:"particles"`
	Reveal    RevealConfig    `yaml:"reveal"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title         string  `yaml:"title"`
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	Fullscreen    bool    `yaml:"fullscreen"`
	VSync         bool    `yaml:"vsync"`
	MaxPixelRatio float64 `yaml:"max_pixel_ratio"`
	Background    string  `yaml:"background"`
}

// PageConfig describes the scrolling document.
type PageConfig struct {
	Sections  []SectionConfig `yaml:"sections"`
	WheelStep float64         `yaml:"wheel_step"` // pixels per wheel notch
	KeyStep   float64         `yaml:"key_step"`   // pixels per arrow key press
}

// SectionConfig is one block of the page. Height is "<n>px" or "<n>vh".
type SectionConfig struct {
	ID     string `yaml:"id"`
	Height string `yaml:"height"`
}

// ScrollConfig controls the smooth-scroll controller.
type ScrollConfig struct {
	Smooth          bool    `yaml:"smooth"`
	Frequency       float64 `yaml:"frequency"`
	Damping         float64 `yaml:"damping"`
	WheelMultiplier float64 `yaml:"wheel_multiplier"`
	// Signal selects the controller value fed to the particle field:
	// "scroll" (pixels), "progress" (0..1) or "velocity".
	Signal string `yaml:"signal"`
}

// ParticlesConfig controls the ambient particle field.
type ParticlesConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Count      int     `yaml:"count"`
	Spread     float32 `yaml:"spread"`
	Seed       int64   `yaml:"seed"` // 0 picks a time-based seed
	Size       float32 `yaml:"size"`
	Opacity    float32 `yaml:"opacity"`
	Color      string  `yaml:"color"`
	FogColor   string  `yaml:"fog_color"`
	FogDensity float32 `yaml:"fog_density"`
	FOV        float32 `yaml:"fov"`
	Near       float32 `yaml:"near"`
	Far        float32 `yaml:"far"`
	CameraZ    float32 `yaml:"camera_z"`
}

// RevealConfig controls the scroll-driven path reveal.
type RevealConfig struct {
	Enabled           bool       `yaml:"enabled"`
	Anchor            string     `yaml:"anchor"`
	Path              string     `yaml:"path"`
	ViewBox           [4]float64 `yaml:"view_box"`
	StrokeColor       string     `yaml:"stroke_color"`
	StrokeWidth       float64    `yaml:"stroke_width"`
	RecomputeOnResize bool       `yaml:"recompute_on_resize"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// DefaultPath is the decorative route drawn alongside the page: a ribbon
// that sweeps from the hero down to the booking section.
const DefaultPath = "M 500 0 C 500 180 820 260 820 520 S 180 820 180 1120 " +
	"S 760 1420 760 1720 S 300 2020 300 2320 S 520 2620 500 2900"

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:         "Detail Studio",
			Width:         1280,
			Height:        720,
			Fullscreen:    false,
			VSync:         true,
			MaxPixelRatio: 2,
			Background:    "#07090d",
		},
		Page: PageConfig{
			Sections: []SectionConfig{
				{ID: "hero", Height: "100vh"},
				{ID: "services", Height: "1400px"},
				{ID: "gallery", Height: "900px"},
				{ID: "booking", Height: "1000px"},
				{ID: "footer", Height: "320px"},
			},
			WheelStep: 100,
			KeyStep:   40,
		},
		Scroll: ScrollConfig{
			Smooth:          true,
			Frequency:       6.0,
			Damping:         1.0,
			WheelMultiplier: 1.0,
			Signal:          "scroll",
		},
		Particles: ParticlesConfig{
			Enabled:    true,
			Count:      700,
			Spread:     15,
			Seed:       0,
			Size:       0.05,
			Opacity:    0.6,
			Color:      "#ffffff",
			FogColor:   "#07090d",
			FogDensity: 0.05,
			FOV:        75,
			Near:       0.1,
			Far:        1000,
			CameraZ:    5,
		},
		Reveal: RevealConfig{
			Enabled:           true,
			Anchor:            "#booking",
			Path:              DefaultPath,
			ViewBox:           [4]float64{0, 0, 1000, 2900},
			StrokeColor:       "#38bdf8",
			StrokeWidth:       4,
			RecomputeOnResize: false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports the first impossible setting.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if c.Window.MaxPixelRatio < 1 {
		return fmt.Errorf("%w: max_pixel_ratio %v must be at least 1", ErrInvalid, c.Window.MaxPixelRatio)
	}
	for _, s := range c.Page.Sections {
		if s.ID == "" {
			return fmt.Errorf("%w: section without id", ErrInvalid)
		}
		if _, _, err := ParseLength(s.Height); err != nil {
			return fmt.Errorf("%w: section %q: %v", ErrInvalid, s.ID, err)
		}
	}
	switch c.Scroll.Signal {
	case "scroll", "progress", "velocity":
	default:
		return fmt.Errorf("%w: scroll.signal %q", ErrInvalid, c.Scroll.Signal)
	}
	if c.Scroll.Smooth && (c.Scroll.Frequency <= 0 || c.Scroll.Damping <= 0) {
		return fmt.Errorf("%w: smooth scroll needs positive frequency and damping", ErrInvalid)
	}
	p := c.Particles
	if p.Count < 0 {
		return fmt.Errorf("%w: particles.count %d", ErrInvalid, p.Count)
	}
	if p.FOV <= 0 || p.FOV >= 180 {
		return fmt.Errorf("%w: particles.fov %v", ErrInvalid, p.FOV)
	}
	if p.Near <= 0 || p.Far <= p.Near {
		return fmt.Errorf("%w: particles near/far %v/%v", ErrInvalid, p.Near, p.Far)
	}
	if p.Opacity < 0 || p.Opacity > 1 {
		return fmt.Errorf("%w: particles.opacity %v", ErrInvalid, p.Opacity)
	}
	if c.Reveal.Enabled {
		if !strings.HasPrefix(c.Reveal.Anchor, "#") {
			return fmt.Errorf("%w: reveal.anchor %q must be an #id selector", ErrInvalid, c.Reveal.Anchor)
		}
		if c.Reveal.ViewBox[2] <= 0 || c.Reveal.ViewBox[3] <= 0 {
			return fmt.Errorf("%w: reveal.view_box %v", ErrInvalid, c.Reveal.ViewBox)
		}
	}
	return nil
}

// Unit is a length unit accepted in section heights.
type Unit int

const (
	UnitPixels Unit = iota
	UnitViewportHeight
)

// ParseLength parses "120px", "100vh" or a bare pixel number.
func ParseLength(s string) (float64, Unit, error) {
	s = strings.TrimSpace(s)
	unit := UnitPixels
	switch {
	case strings.HasSuffix(s, "vh"):
		unit = UnitViewportHeight
		s = strings.TrimSuffix(s, "vh")
	case strings.HasSuffix(s, "px"):
		s = strings.TrimSuffix(s, "px")
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, unit, fmt.Errorf("length %q: %w", s, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, unit, fmt.Errorf("length %q is not finite", s)
	}
	if v < 0 {
		return 0, unit, fmt.Errorf("length %q is negative", s)
	}
	return v, unit, nil
}
