// Package renderer initializes OpenGL and prepares the default framebuffer
// for each frame.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/showroom/internal/logger"
)

// Info describes the active GL implementation.
type Info struct {
	Version  string
	Renderer string
	Vendor   string
	GLSL     string
}

// Renderer owns the default framebuffer state.
type Renderer struct {
	Info Info

	width, height int32
	clear         [4]float32
}

// New loads the GL function pointers. Must be called after the window has
// created its context.
func New(width, height int32) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}

	r := &Renderer{
		width:  width,
		height: height,
		clear:  [4]float32{0, 0, 0, 1},
		Info: Info{
			Version:  gl.GoStr(gl.GetString(gl.VERSION)),
			Renderer: gl.GoStr(gl.GetString(gl.RENDERER)),
			Vendor:   gl.GoStr(gl.GetString(gl.VENDOR)),
			GLSL:     gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)),
		},
	}
	logger.Info("OpenGL initialized",
		zap.String("version", r.Info.Version),
		zap.String("renderer", r.Info.Renderer),
		zap.String("glsl", r.Info.GLSL))

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.MULTISAMPLE)
	return r, nil
}

// Resize updates the drawable size.
func (r *Renderer) Resize(width, height int32) {
	r.width, r.height = width, height
}

// Size returns the drawable size.
func (r *Renderer) Size() (int32, int32) {
	return r.width, r.height
}

// BeginFrame binds and clears the default framebuffer.
func (r *Renderer) BeginFrame() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, r.width, r.height)
	gl.ClearColor(r.clear[0], r.clear[1], r.clear[2], r.clear[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// ReadPixels returns the default framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() []byte {
	pixels := make([]byte, int(r.width)*int(r.height)*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, r.width, r.height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}
