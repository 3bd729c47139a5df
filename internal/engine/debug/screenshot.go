// Package debug provides capture helpers used while tuning the effects.
package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// ScreenshotCapture writes composed frames to PNG files.
type ScreenshotCapture struct {
	outputDir string
	prefix    string
	now       func() time.Time
	count     int
}

// NewScreenshotCapture creates a capture handler writing to outputDir.
func NewScreenshotCapture(outputDir, prefix string) *ScreenshotCapture {
	return &ScreenshotCapture{
		outputDir: outputDir,
		prefix:    prefix,
		now:       time.Now,
	}
}

// Count returns the number of frames written so far.
func (sc *ScreenshotCapture) Count() int {
	return sc.count
}

// Capture encodes img and returns the path it was written to. The scroll
// offset is part of the name so captures along one page can be told apart.
func (sc *ScreenshotCapture) Capture(img image.Image, scrollY float64) (string, error) {
	if img == nil || img.Bounds().Empty() {
		return "", fmt.Errorf("empty frame")
	}
	if sc.outputDir != "" {
		if err := os.MkdirAll(sc.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := sc.GenerateFilename(scrollY)
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("closing file: %w", err)
	}
	sc.count++
	return filename, nil
}

// GenerateFilename returns the path the next capture will use.
func (sc *ScreenshotCapture) GenerateFilename(scrollY float64) string {
	timestamp := sc.now().Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("%s_%s_y%04d_%d.png", sc.prefix, timestamp, int(scrollY), sc.count)
	if sc.outputDir != "" {
		filename = filepath.Join(sc.outputDir, filename)
	}
	return filename
}
