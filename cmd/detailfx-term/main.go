// Package main runs the landing page in a terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/gogpu/gg"
	"go.uber.org/zap"

	"github.com/Faultbox/detailfx/internal/config"
	"github.com/Faultbox/detailfx/internal/logger"
	"github.com/Faultbox/detailfx/internal/term"
)

func main() {
	config.ParseFlags()

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

	// The screen owns stdout, so logs only go to a file.
	logFile := cfg.Logging.LogFile
	if logFile == "" {
		logFile = filepath.Join(os.TempDir(), "detailfx-term.log")
	}
	if err := logger.InitWithFileConfig(cfg.Logging.Level, logger.DefaultFileConfig(logFile), false); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	gg.SetLogger(logger.Slog("gg"))

	logger.Info("=== DetailFX (terminal) ===", zap.String("log", logFile))
	logger.Debug("config loaded",
		zap.String("level", cfg.Logging.Level),
		zap.Int("sections", len(cfg.Page.Sections)))

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	a, err := term.New(cfg, screen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = a.Run(ctx)
	a.Close()
	if errors.Is(err, context.Canceled) {
		logger.Warn("interrupted by signal")
		return
	}
	if err != nil {
		logger.Error("app error", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("app closed normally")
}
