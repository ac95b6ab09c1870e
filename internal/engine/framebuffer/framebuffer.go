// Package framebuffer wraps offscreen GL render targets.
package framebuffer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Format is the color attachment storage.
type Format int

const (
	RGBA8   Format = iota // display-referred color
	RGBA16F               // unclamped HDR color
)

func (f Format) storage() (internalFormat int32, pixelType uint32) {
	switch f {
	case RGBA16F:
		return gl.RGBA16F, gl.HALF_FLOAT
	default:
		return gl.RGBA8, gl.UNSIGNED_BYTE
	}
}

// Options selects the attachments of a framebuffer.
type Options struct {
	Format Format
	Depth  bool // 24-bit depth renderbuffer
}

// Framebuffer is a color texture plus an optional depth renderbuffer.
// Sizes are clamped to at least 1x1.
type Framebuffer struct {
	opts          Options
	width, height int32

	fbo   uint32
	color uint32
	depth uint32
}

// NewWithOptions allocates a width x height target.
func NewWithOptions(width, height int32, opts Options) (*Framebuffer, error) {
	fb := &Framebuffer{opts: opts, width: max(width, 1), height: max(height, 1)}

	gl.GenFramebuffers(1, &fb.fbo)
	gl.GenTextures(1, &fb.color)
	gl.BindTexture(gl.TEXTURE_2D, fb.color)
	for _, p := range [][2]int32{
		{gl.TEXTURE_MIN_FILTER, gl.LINEAR},
		{gl.TEXTURE_MAG_FILTER, gl.LINEAR},
		{gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE},
		{gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE},
	} {
		gl.TexParameteri(gl.TEXTURE_2D, uint32(p[0]), p[1])
	}
	if opts.Depth {
		gl.GenRenderbuffers(1, &fb.depth)
	}
	fb.allocate()

	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, fb.color, 0)
	if fb.depth != 0 {
		gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, fb.depth)
	}
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	if status != gl.FRAMEBUFFER_COMPLETE {
		fb.Destroy()
		return nil, fmt.Errorf("creating framebuffer: incomplete (0x%x)", status)
	}
	return fb, nil
}

// allocate (re)specifies attachment storage at the current size.
func (fb *Framebuffer) allocate() {
	internalFormat, pixelType := fb.opts.Format.storage()
	gl.BindTexture(gl.TEXTURE_2D, fb.color)
	gl.TexImage2D(gl.TEXTURE_2D, 0, internalFormat, fb.width, fb.height, 0, gl.RGBA, pixelType, nil)
	if fb.depth != 0 {
		gl.BindRenderbuffer(gl.RENDERBUFFER, fb.depth)
		gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, fb.width, fb.height)
	}
}

// BindWithViewport makes fb the render target and returns a func that
// restores the previous target and viewport.
func (fb *Framebuffer) BindWithViewport() (restore func()) {
	var prev int32
	var vp [4]int32
	gl.GetIntegerv(gl.FRAMEBUFFER_BINDING, &prev)
	gl.GetIntegerv(gl.VIEWPORT, &vp[0])

	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)
	gl.Viewport(0, 0, fb.width, fb.height)
	return func() {
		gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(prev))
		gl.Viewport(vp[0], vp[1], vp[2], vp[3])
	}
}

// Clear fills the bound target with the color and resets depth if present.
func (fb *Framebuffer) Clear(r, g, b, a float32) {
	mask := uint32(gl.COLOR_BUFFER_BIT)
	if fb.depth != 0 {
		mask |= gl.DEPTH_BUFFER_BIT
	}
	gl.ClearColor(r, g, b, a)
	gl.Clear(mask)
}

func (fb *Framebuffer) ColorTexture() uint32 { return fb.color }

func (fb *Framebuffer) Size() (width, height int32) { return fb.width, fb.height }

// Resize reallocates storage when the size changes. Contents are lost.
func (fb *Framebuffer) Resize(width, height int32) {
	width, height = max(width, 1), max(height, 1)
	if width == fb.width && height == fb.height {
		return
	}
	fb.width, fb.height = width, height
	fb.allocate()
}

// Destroy releases the GL objects. It is safe to call twice.
func (fb *Framebuffer) Destroy() {
	if fb.fbo != 0 {
		gl.DeleteFramebuffers(1, &fb.fbo)
	}
	if fb.color != 0 {
		gl.DeleteTextures(1, &fb.color)
	}
	if fb.depth != 0 {
		gl.DeleteRenderbuffers(1, &fb.depth)
	}
	fb.fbo, fb.color, fb.depth = 0, 0, 0
}
