// Package main is the entry point for the windowed landing page.
package main

import (
	"fmt"
	"os"

	"github.com/gogpu/gg"
	"go.uber.org/zap"

	"github.com/Faultbox/detailfx/internal/app"
	"github.com/Faultbox/detailfx/internal/config"
	"github.com/Faultbox/detailfx/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if path := config.WriteConfigPath(); path != "" {
		if err := cfg.SaveTo(path); err != nil {
			fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("wrote %s\n", path)
		return
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	gg.SetLogger(logger.Slog("gg"))

	logger.Info("=== DetailFX ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	a, err := app.New(cfg, app.Options{
		ScreenshotDir: config.ScreenshotDir(),
		CaptureOnce:   config.ScreenshotOnce(),
	})
	if err != nil {
		logger.Error("failed to create app", zap.Error(err))
		os.Exit(1)
	}

	if err := a.Run(); err != nil {
		a.Close()
		logger.Error("app error", zap.Error(err))
		os.Exit(1)
	}
	a.Close()

	logger.Info("app closed normally")
}
