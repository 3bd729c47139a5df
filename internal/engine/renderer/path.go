package renderer

import (
	"github.com/Faultbox/detailfx/internal/engine/reveal"
	"github.com/Faultbox/detailfx/internal/logger"
)

// PathLayer presents a reveal raster as a texture. It implements
// reveal.Surface; the raster is re-uploaded only after it changed.
type PathLayer struct {
	raster *reveal.Raster

	tex      uint32
	uploaded uint64
	texW     int
	texH     int
}

// NewPathSurface returns a reveal.SurfaceFactory creating path layers with
// the given stroke style.
func NewPathSurface(style reveal.Style) reveal.SurfaceFactory {
	return func(path *reveal.Path) (reveal.Surface, error) {
		raster := reveal.NewRaster(path, style)
		raster.SetLogger(logger.Named("reveal"))
		return &PathLayer{raster: raster}, nil
	}
}

// Resize resizes the raster.
func (l *PathLayer) Resize(width, height int, pixelRatio float64) {
	l.raster.Resize(width, height, pixelRatio)
}

// SetDash redraws the raster with the new dash.
func (l *PathLayer) SetDash(length, offset float64) error {
	return l.raster.SetDash(length, offset)
}

// Texture uploads pending raster changes and presents them source-over.
func (l *PathLayer) Texture() LayerTexture {
	img := l.raster.Image()
	if img == nil {
		return LayerTexture{}
	}
	if v := l.raster.Version(); v != l.uploaded || l.tex == 0 {
		l.tex = uploadRGBA(l.tex, img, l.texW, l.texH)
		l.texW, l.texH = img.Bounds().Dx(), img.Bounds().Dy()
		l.uploaded = v
	}
	return LayerTexture{ID: l.tex, Blend: BlendAlpha, FlipY: true}
}

// Release frees the texture and the raster.
func (l *PathLayer) Release() {
	if l.tex != 0 {
		deleteTexture(&l.tex)
	}
	l.raster.Release()
}
