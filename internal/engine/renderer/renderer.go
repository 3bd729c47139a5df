// Package renderer presents the page's render surfaces with OpenGL. Each
// surface is a layer owning a colour texture; the compositor draws the
// layers of a container over the page background in paint order.
package renderer

import (
	"fmt"
	"image"

	"go.uber.org/zap"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/detailfx/internal/engine/page"
	"github.com/Faultbox/detailfx/internal/engine/shader"
	"github.com/Faultbox/detailfx/internal/engine/texture"
	"github.com/Faultbox/detailfx/internal/logger"
)

// Blend selects how a layer combines with what is below it.
type Blend int

const (
	// BlendAlpha is premultiplied source-over.
	BlendAlpha Blend = iota
	// BlendAdditive adds the layer's colour.
	BlendAdditive
)

// LayerTexture describes the texture a layer presents.
type LayerTexture struct {
	ID    uint32
	Blend Blend
	// FlipY is set for textures uploaded top row first.
	FlipY bool
}

// Layer is a render surface the compositor can present.
type Layer interface {
	Texture() LayerTexture
}

// Config holds compositor configuration.
type Config struct {
	Background [3]float32
}

// Compositor draws layers onto the default framebuffer.
type Compositor struct {
	config Config
	log    *zap.Logger

	quad *shader.Program
	vao  uint32

	width  int32
	height int32
}

// New initializes OpenGL and creates the compositor.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func New(cfg Config) (*Compositor, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	c := &Compositor{config: cfg, log: logger.Named("renderer")}
	c.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	quad, err := shader.New(quadVertexSource, quadFragmentSource)
	if err != nil {
		return nil, fmt.Errorf("failed to create compositor program: %w", err)
	}
	c.quad = quad

	// The fullscreen triangle is generated from gl_VertexID, but core
	// profiles still need a bound VAO to draw.
	gl.GenVertexArrays(1, &c.vao)
	return c, nil
}

// Close cleans up compositor resources.
func (c *Compositor) Close() {
	c.log.Info("closing renderer")
	if c.vao != 0 {
		gl.DeleteVertexArrays(1, &c.vao)
		c.vao = 0
	}
	if c.quad != nil {
		c.quad.Delete()
	}
}

// Resize sets the drawable size in device pixels.
func (c *Compositor) Resize(width, height int) {
	c.width = int32(width)
	c.height = int32(height)
	c.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Present clears to the background and draws every layer among nodes.
// Nodes that are not layers are skipped.
func (c *Compositor) Present(nodes []page.Node) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, c.width, c.height)
	bg := c.config.Background
	gl.ClearColor(bg[0], bg[1], bg[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	c.quad.Use()
	gl.Uniform1i(c.quad.Uniform("uTexture"), 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindVertexArray(c.vao)

	for _, n := range nodes {
		l, ok := n.(Layer)
		if !ok {
			continue
		}
		tex := l.Texture()
		if tex.ID == 0 {
			continue
		}
		switch tex.Blend {
		case BlendAdditive:
			gl.BlendFunc(gl.ONE, gl.ONE)
		default:
			gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
		}
		flip := int32(0)
		if tex.FlipY {
			flip = 1
		}
		gl.Uniform1i(c.quad.Uniform("uFlipY"), flip)
		gl.BindTexture(gl.TEXTURE_2D, tex.ID)
		gl.DrawArrays(gl.TRIANGLES, 0, 3)
	}

	gl.BindVertexArray(0)
	gl.Disable(gl.BLEND)
}

// Snapshot reads the composed frame back. Call it before swapping buffers.
func (c *Compositor) Snapshot() *image.RGBA {
	w, h := int(c.width), int(c.height)
	pixels := make([]byte, w*h*4)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, c.width, c.height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return texture.FlipRows(pixels, w, h)
}

// uploadRGBA creates a texture from img, or replaces the contents of tex when
// it is non-zero and the size is unchanged.
func uploadRGBA(tex uint32, img *image.RGBA, prevW, prevH int) uint32 {
	w, h := int32(img.Bounds().Dx()), int32(img.Bounds().Dy())
	if w == 0 || h == 0 {
		return tex
	}
	if tex == 0 {
		gl.GenTextures(1, &tex)
		gl.BindTexture(gl.TEXTURE_2D, tex)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
		prevW, prevH = 0, 0
	} else {
		gl.BindTexture(gl.TEXTURE_2D, tex)
	}
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	if int(w) == prevW && int(h) == prevH {
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, w, h, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	} else {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, w, h, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	}
	return tex
}

// glError returns the first pending GL error, if any.
func glError(op string) error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("%s: GL error 0x%x", op, code)
	}
	return nil
}

func deleteTexture(tex *uint32) {
	gl.DeleteTextures(1, tex)
	*tex = 0
}
