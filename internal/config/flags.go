package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagSeed       = flag.Int64("seed", 0, "Particle field seed (0 = random)")
	flagNoSmooth   = flag.Bool("no-smooth", false, "Disable smooth scrolling and use native scroll")
	flagResize     = flag.Bool("reveal-resize", false, "Recompute the path reveal on window resize")
	flagScreenshot = flag.String("screenshot", "", "Save a PNG of the first settled frame to this directory and exit")
	flagShotDir    = flag.String("screenshot-dir", "screenshots", "Directory F12 screenshots are written to")
	flagWrite      = flag.String("write-config", "", "Write the effective config to this path and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// ScreenshotOnce returns the directory for a one-shot capture, or "".
func ScreenshotOnce() string {
	return *flagScreenshot
}

// ScreenshotDir returns the directory F12 captures are written to.
func ScreenshotDir() string {
	return *flagShotDir
}

// WriteConfigPath returns the --write-config target, or "".
func WriteConfigPath() string {
	return *flagWrite
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWindowed {
		cfg.Window.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	if *flagSeed != 0 {
		cfg.Particles.Seed = *flagSeed
	}
	if *flagNoSmooth {
		cfg.Scroll.Smooth = false
	}
	if *flagResize {
		cfg.Reveal.RecomputeOnResize = true
	}
}
