package debug

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCaptureWritesPNG(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	sc := NewScreenshotCapture(dir, "detailfx")
	sc.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.SetRGBA(1, 2, color.RGBA{R: 255, A: 255})

	path, err := sc.Capture(img, 600)
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	want := filepath.Join(dir, "detailfx_2026-01-02_03-04-05_y0600_0.png")
	if path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
	if sc.Count() != 1 {
		t.Errorf("Count = %d, want 1", sc.Count())
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Bounds().Dx() != 4 || decoded.Bounds().Dy() != 3 {
		t.Errorf("bounds = %v", decoded.Bounds())
	}
	if r, _, _, a := decoded.At(1, 2).RGBA(); r>>8 != 255 || a>>8 != 255 {
		t.Errorf("pixel (1,2) = %v", decoded.At(1, 2))
	}

	if next := sc.GenerateFilename(600); next == path {
		t.Errorf("second capture reuses %q", next)
	}
}

func TestCaptureRejectsEmptyFrame(t *testing.T) {
	sc := NewScreenshotCapture(t.TempDir(), "x")
	if _, err := sc.Capture(image.NewRGBA(image.Rect(0, 0, 0, 0)), 0); err == nil {
		t.Error("expected error for empty frame")
	}
	if _, err := sc.Capture(nil, 0); err == nil {
		t.Error("expected error for nil frame")
	}
}
