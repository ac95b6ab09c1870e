// Package ui2d is an immediate-mode 2D UI drawn with batched OpenGL quads.
package ui2d

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/showroom/internal/engine/shader"
	"github.com/Faultbox/showroom/pkg/math"
)

// Floats per vertex.
const (
	solidStride = 2 + 4     // xy rgba
	textStride  = 2 + 2 + 4 // xy uv rgba
)

const solidVS = `#version 410 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec4 aColor;
uniform mat4 uProjection;
out vec4 vColor;
void main() {
	vColor = aColor;
	gl_Position = uProjection * vec4(aPos, 0.0, 1.0);
}
`

const solidFS = `#version 410 core
in vec4 vColor;
out vec4 FragColor;
void main() { FragColor = vColor; }
`

const textVS = `#version 410 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec2 aUV;
layout (location = 2) in vec4 aColor;
uniform mat4 uProjection;
out vec2 vUV;
out vec4 vColor;
void main() {
	vUV = aUV;
	vColor = aColor;
	gl_Position = uProjection * vec4(aPos, 0.0, 1.0);
}
`

const textFS = `#version 410 core
uniform sampler2D uAtlas;
in vec2 vUV;
in vec4 vColor;
out vec4 FragColor;
void main() {
	FragColor = vec4(vColor.rgb, vColor.a * texture(uAtlas, vUV).a);
}
`

// batch is one shader plus the triangles queued for it this frame.
type batch struct {
	program  *shader.Program
	locProj  int32
	vao, vbo uint32
	stride   int
	verts    []float32
}

func newBatch(name, vs, fs string, layout ...int32) (batch, error) {
	p, err := shader.NewProgram(name, vs, fs)
	if err != nil {
		return batch{}, err
	}
	b := batch{program: p, locProj: p.Uniform("uProjection"), verts: make([]float32, 0, 4096)}

	gl.GenVertexArrays(1, &b.vao)
	gl.GenBuffers(1, &b.vbo)
	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	for _, n := range layout {
		b.stride += int(n)
	}
	offset := 0
	for i, n := range layout {
		gl.VertexAttribPointerWithOffset(uint32(i), n, gl.FLOAT, false, int32(b.stride*4), uintptr(offset*4))
		gl.EnableVertexAttribArray(uint32(i))
		offset += int(n)
	}
	gl.BindVertexArray(0)
	return b, nil
}

func (b *batch) flush(proj *math.Mat4) {
	if len(b.verts) == 0 {
		return
	}
	b.program.Use()
	gl.UniformMatrix4fv(b.locProj, 1, false, proj.Ptr())
	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(b.verts)*4, unsafe.Pointer(&b.verts[0]), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(b.verts)/b.stride))
}

func (b *batch) destroy() {
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
		gl.DeleteBuffers(1, &b.vbo)
	}
	if b.program != nil {
		b.program.Delete()
	}
	*b = batch{}
}

// Renderer queues solid and text quads in screen points, origin top-left,
// and draws them on End.
type Renderer struct {
	width, height int
	solid, text   batch
	font          *Font
}

// New creates a renderer for a width x height screen. Requires a GL context.
func New(width, height int) (*Renderer, error) {
	r := &Renderer{width: width, height: height}
	var err error
	if r.solid, err = newBatch("ui-solid", solidVS, solidFS, 2, 4); err != nil {
		return nil, fmt.Errorf("ui solid batch: %w", err)
	}
	if r.text, err = newBatch("ui-text", textVS, textFS, 2, 2, 4); err != nil {
		r.solid.destroy()
		return nil, fmt.Errorf("ui text batch: %w", err)
	}
	r.font = NewFont()
	return r, nil
}

func (r *Renderer) Resize(width, height int) { r.width, r.height = width, height }

// GetScreenSize returns the screen size in points.
func (r *Renderer) GetScreenSize() (int, int) { return r.width, r.height }

// Begin drops last frame's geometry.
func (r *Renderer) Begin() {
	r.solid.verts = r.solid.verts[:0]
	r.text.verts = r.text.verts[:0]
}

// End draws the queued quads over whatever is bound, with blending on and
// depth testing and culling off. Those three states are restored.
func (r *Renderer) End() {
	restore := pushState(gl.BLEND, gl.DEPTH_TEST, gl.CULL_FACE)
	defer restore()

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)

	proj := math.Ortho(0, float32(r.width), float32(r.height), 0, -1, 1)
	r.solid.flush(&proj)
	if r.font != nil && len(r.text.verts) > 0 {
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, r.font.TextureID())
		r.text.program.Use()
		r.text.program.SetInt("uAtlas", 0)
		r.text.flush(&proj)
		gl.BindTexture(gl.TEXTURE_2D, 0)
	}
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// pushState records whether each capability is enabled and returns a func
// that puts them back.
func pushState(caps ...uint32) func() {
	was := make([]bool, len(caps))
	for i, c := range caps {
		was[i] = gl.IsEnabled(c)
	}
	return func() {
		for i, c := range caps {
			if was[i] {
				gl.Enable(c)
			} else {
				gl.Disable(c)
			}
		}
	}
}

// Close releases the batches and the font atlas.
func (r *Renderer) Close() {
	r.solid.destroy()
	r.text.destroy()
	if r.font != nil {
		r.font.Close()
	}
}

// DrawRect queues a filled rectangle.
func (r *Renderer) DrawRect(x, y, w, h float32, c Color) {
	x1, y1 := x+w, y+h
	r.solid.verts = append(r.solid.verts,
		x, y, c.R, c.G, c.B, c.A,
		x1, y, c.R, c.G, c.B, c.A,
		x1, y1, c.R, c.G, c.B, c.A,
		x, y, c.R, c.G, c.B, c.A,
		x1, y1, c.R, c.G, c.B, c.A,
		x, y1, c.R, c.G, c.B, c.A,
	)
}

// DrawRectOutline queues four edge strips of the given thickness.
func (r *Renderer) DrawRectOutline(x, y, w, h, t float32, c Color) {
	r.DrawRect(x, y, w, t, c)
	r.DrawRect(x, y+h-t, w, t, c)
	r.DrawRect(x, y+t, t, h-2*t, c)
	r.DrawRect(x+w-t, y+t, t, h-2*t, c)
}

// DrawPanel queues a filled rectangle with a 1pt border.
func (r *Renderer) DrawPanel(x, y, w, h float32, bg, border Color) {
	r.DrawRect(x, y, w, h, bg)
	r.DrawRectOutline(x, y, w, h, 1, border)
}

// DrawText queues text with its top-left corner at (x, y). Newlines return
// to x; spaces advance without geometry.
func (r *Renderer) DrawText(x, y float32, text string, scale float32, c Color) {
	if r.font == nil {
		return
	}
	gw, gh := r.font.GlyphSize()
	cw, ch := float32(gw)*scale, float32(gh)*scale

	penX := x
	for _, g := range text {
		switch g {
		case '\n':
			penX = x
			y += ch
			continue
		case ' ':
		default:
			u0, v0, u1, v1 := r.font.GetGlyphUV(g)
			x1, y1 := penX+cw, y+ch
			r.text.verts = append(r.text.verts,
				penX, y, u0, v0, c.R, c.G, c.B, c.A,
				x1, y, u1, v0, c.R, c.G, c.B, c.A,
				x1, y1, u1, v1, c.R, c.G, c.B, c.A,
				penX, y, u0, v0, c.R, c.G, c.B, c.A,
				x1, y1, u1, v1, c.R, c.G, c.B, c.A,
				penX, y1, u0, v1, c.R, c.G, c.B, c.A,
			)
		}
		penX += cw
	}
}

// MeasureText returns the size text would occupy at scale.
func (r *Renderer) MeasureText(text string, scale float32) (float32, float32) {
	if r.font == nil {
		return 0, 0
	}
	return r.font.MeasureText(text, scale)
}
