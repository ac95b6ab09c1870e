package scene

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/showroom/internal/engine/scene/shaders"
	"github.com/Faultbox/showroom/internal/engine/shader"
	"github.com/Faultbox/showroom/pkg/math"
)

// DebugLines draws world-space line segments on top of the scene.
type DebugLines struct {
	Color [3]float32

	program  *shader.Program
	vao, vbo uint32
	verts    int32
}

// NewDebugLines creates an empty line set.
func NewDebugLines() (*DebugLines, error) {
	program, err := shader.NewProgram("debug lines", shaders.LinesVertexShader, shaders.LinesFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("debug lines: %w", err)
	}
	d := &DebugLines{Color: [3]float32{1, 0.85, 0.2}, program: program}
	d.vao, d.vbo = newPositionBuffer()
	return d, nil
}

// Set replaces the segments. verts holds xyz pairs, two per segment.
func (d *DebugLines) Set(verts []float32) {
	streamFloats(d.vbo, verts)
	d.verts = int32(len(verts) / 3)
}

// Render draws the segments without depth testing.
func (d *DebugLines) Render(viewProj math.Mat4) {
	if d.verts == 0 {
		return
	}
	gl.Disable(gl.DEPTH_TEST)
	d.program.Use()
	d.program.SetMat4("uViewProj", viewProj)
	d.program.SetVec3("uColor", d.Color)
	d.program.SetFloat("uOpacity", 1)
	gl.BindVertexArray(d.vao)
	gl.DrawArrays(gl.LINES, 0, d.verts)
	gl.BindVertexArray(0)
	gl.UseProgram(0)
	gl.Enable(gl.DEPTH_TEST)
}

// Destroy releases GPU resources.
func (d *DebugLines) Destroy() {
	gl.DeleteVertexArrays(1, &d.vao)
	gl.DeleteBuffers(1, &d.vbo)
	d.program.Delete()
}
