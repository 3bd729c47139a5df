package particles

import (
	"image"

	"github.com/gogpu/gg"
)

// Sprite renders the soft round point texture: an opaque core fading to
// transparent at the rim.
func Sprite(size int) *image.NRGBA {
	if size < 2 {
		size = 2
	}
	c := float64(size) / 2
	brush := gg.NewRadialGradientBrush(c, c, 0, c).
		AddColorStop(0, gg.RGBA2(1, 1, 1, 1)).
		AddColorStop(0.35, gg.RGBA2(1, 1, 1, 0.8)).
		AddColorStop(1, gg.RGBA2(1, 1, 1, 0))

	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.Set(x, y, brush.ColorAt(float64(x)+0.5, float64(y)+0.5).Color())
		}
	}
	return img
}
