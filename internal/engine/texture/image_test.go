package texture

import (
	"image"
	"image/color"
	"testing"
)

func TestToRGBAPremultiplies(t *testing.T) {
	src := image.NewNRGBA(image.Rect(2, 3, 4, 5))
	src.SetNRGBA(2, 3, color.NRGBA{R: 255, G: 255, B: 255, A: 128})

	got := ToRGBA(src)
	if got.Bounds() != image.Rect(0, 0, 2, 2) {
		t.Fatalf("bounds = %v, want origin-based 2x2", got.Bounds())
	}
	px := got.RGBAAt(0, 0)
	if px.A != 128 || px.R != 128 {
		t.Errorf("pixel = %v, want premultiplied white at alpha 128", px)
	}
}

func TestToRGBAPassesThroughPacked(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 3))
	if ToRGBA(src) != src {
		t.Error("packed RGBA image was copied")
	}
}

func TestFlipRows(t *testing.T) {
	pixels := []byte{
		1, 2, 3, 4, // bottom row
		5, 6, 7, 8, // top row
	}
	img := FlipRows(pixels, 1, 2)

	if got := img.RGBAAt(0, 0); got.R != 5 || got.A != 8 {
		t.Errorf("top pixel = %v, want the last GL row", got)
	}
	if got := img.RGBAAt(0, 1); got.R != 1 || got.A != 4 {
		t.Errorf("bottom pixel = %v, want the first GL row", got)
	}
}
