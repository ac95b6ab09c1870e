package scene

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/showroom/internal/engine/scene/shaders"
	"github.com/Faultbox/showroom/internal/engine/shader"
	"github.com/Faultbox/showroom/internal/engine/texture"
	"github.com/Faultbox/showroom/pkg/math"
)

// SkyRenderer draws an equirectangular panorama behind the scene and owns
// the matching blurred reflection texture.
type SkyRenderer struct {
	program *shader.Program
	vao     uint32

	background uint32
	reflection uint32
}

// NewSkyRenderer compiles the sky shader.
func NewSkyRenderer() (*SkyRenderer, error) {
	p, err := shader.NewProgram("sky", shaders.SkyVertexShader, shaders.SkyFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("sky shader: %w", err)
	}
	sr := &SkyRenderer{program: p}
	// The fullscreen triangle is generated from gl_VertexID.
	gl.GenVertexArrays(1, &sr.vao)
	return sr, nil
}

// SetPanorama replaces the background and reflection textures.
func (sr *SkyRenderer) SetPanorama(background, reflection image.Image) {
	texture.Delete(&sr.background)
	texture.Delete(&sr.reflection)
	if background != nil {
		sr.background = texture.Upload(background, texture.Options{RepeatS: true})
	}
	if reflection != nil {
		sr.reflection = texture.Upload(reflection, texture.Options{RepeatS: true})
	}
}

// Reflection returns the reflection texture, or 0.
func (sr *SkyRenderer) Reflection() uint32 {
	return sr.reflection
}

// Render draws the panorama at the far plane.
func (sr *SkyRenderer) Render(viewProj math.Mat4) {
	if sr.background == 0 {
		return
	}
	inv := viewProj.Inverse()

	gl.Disable(gl.DEPTH_TEST)
	gl.DepthMask(false)
	gl.Disable(gl.BLEND)

	sr.program.Use()
	sr.program.SetMat4("uInvViewProj", inv)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, sr.background)
	sr.program.SetInt("uPanorama", 0)

	gl.BindVertexArray(sr.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	gl.BindVertexArray(0)

	gl.DepthMask(true)
	gl.Enable(gl.DEPTH_TEST)
}

// Destroy releases GPU resources.
func (sr *SkyRenderer) Destroy() {
	texture.Delete(&sr.background)
	texture.Delete(&sr.reflection)
	if sr.vao != 0 {
		gl.DeleteVertexArrays(1, &sr.vao)
	}
	sr.program.Delete()
}
