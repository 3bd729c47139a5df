package renderer

import (
	"fmt"
	"math"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/detailfx/internal/engine/framebuffer"
	"github.com/Faultbox/detailfx/internal/engine/particles"
	"github.com/Faultbox/detailfx/internal/engine/shader"
	"github.com/Faultbox/detailfx/internal/engine/texture"
)

// PointsLayer draws a particle field into its own framebuffer with additive
// blending and no depth writes. It implements particles.Surface.
type PointsLayer struct {
	material particles.Material
	count    int32

	program *shader.Program
	vao     uint32
	vbo     uint32
	sprite  uint32
	fb      *framebuffer.Framebuffer
}

// NewPointsLayer uploads the field and the sprite texture.
func NewPointsLayer(field *particles.Field, mat particles.Material) (*PointsLayer, error) {
	l := &PointsLayer{material: mat, count: int32(field.Len())}

	program, err := shader.New(pointsVertexSource, pointsFragmentSource)
	if err != nil {
		return nil, fmt.Errorf("points program: %w", err)
	}
	l.program = program

	fb, err := framebuffer.New(1, 1)
	if err != nil {
		l.Release()
		return nil, err
	}
	l.fb = fb

	vertices := field.Interleaved()
	gl.GenVertexArrays(1, &l.vao)
	gl.BindVertexArray(l.vao)
	gl.GenBuffers(1, &l.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, l.vbo)
	if len(vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)
	}
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	l.sprite = uploadRGBA(0, texture.ToRGBA(particles.Sprite(mat.SpriteSize)), 0, 0)

	if err := glError("create points layer"); err != nil {
		l.Release()
		return nil, err
	}
	return l, nil
}

// NewPointsSurface adapts NewPointsLayer to particles.SurfaceFactory.
func NewPointsSurface(field *particles.Field, mat particles.Material) (particles.Surface, error) {
	return NewPointsLayer(field, mat)
}

// Resize sizes the backing framebuffer to the device pixel size.
func (l *PointsLayer) Resize(width, height int, pixelRatio float64) {
	if l.fb == nil {
		return
	}
	l.fb.Resize(
		int32(math.Round(float64(width)*pixelRatio)),
		int32(math.Round(float64(height)*pixelRatio)),
	)
}

// Render draws the field with one draw call.
func (l *PointsLayer) Render(f particles.Frame) error {
	if l.fb == nil {
		return fmt.Errorf("points layer released")
	}
	restore := l.fb.BindWithViewport()
	defer restore()
	l.fb.Clear(0, 0, 0, 0)

	_, h := l.fb.Size()
	mat := l.material
	model, view, proj := f.Model, f.View, f.Projection

	l.program.Use()
	gl.UniformMatrix4fv(l.program.Uniform("uModel"), 1, false, model.Ptr())
	gl.UniformMatrix4fv(l.program.Uniform("uView"), 1, false, view.Ptr())
	gl.UniformMatrix4fv(l.program.Uniform("uProjection"), 1, false, proj.Ptr())
	gl.Uniform1f(l.program.Uniform("uSize"), mat.Size)
	gl.Uniform1f(l.program.Uniform("uScale"), float32(h)/2)
	gl.Uniform1f(l.program.Uniform("uOpacity"), mat.Opacity)
	gl.Uniform3f(l.program.Uniform("uColor"), mat.Color[0], mat.Color[1], mat.Color[2])
	gl.Uniform3f(l.program.Uniform("uFogColor"), mat.FogColor[0], mat.FogColor[1], mat.FogColor[2])
	gl.Uniform1f(l.program.Uniform("uFogDensity"), mat.FogDensity)
	gl.Uniform1i(l.program.Uniform("uSprite"), 0)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, l.sprite)

	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.Disable(gl.DEPTH_TEST)
	gl.DepthMask(false)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)

	gl.BindVertexArray(l.vao)
	gl.DrawArrays(gl.POINTS, 0, l.count)
	gl.BindVertexArray(0)

	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
	return glError("draw points")
}

// Texture presents the framebuffer additively.
func (l *PointsLayer) Texture() LayerTexture {
	if l.fb == nil {
		return LayerTexture{}
	}
	return LayerTexture{ID: l.fb.ColorTexture(), Blend: BlendAdditive}
}

// Release frees every GL object. Safe after a partial construction and
// safe to call twice.
func (l *PointsLayer) Release() {
	if l.vao != 0 {
		gl.DeleteVertexArrays(1, &l.vao)
		l.vao = 0
	}
	if l.vbo != 0 {
		gl.DeleteBuffers(1, &l.vbo)
		l.vbo = 0
	}
	if l.sprite != 0 {
		gl.DeleteTextures(1, &l.sprite)
		l.sprite = 0
	}
	if l.fb != nil {
		l.fb.Destroy()
		l.fb = nil
	}
	if l.program != nil {
		l.program.Delete()
		l.program = nil
	}
}
