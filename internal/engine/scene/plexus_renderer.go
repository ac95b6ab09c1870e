package scene

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/showroom/internal/engine/scene/shaders"
	"github.com/Faultbox/showroom/internal/engine/shader"
	"github.com/Faultbox/showroom/internal/plexus"
	"github.com/Faultbox/showroom/pkg/math"
)

// PlexusStyle sets how points and connections look.
type PlexusStyle struct {
	PointSize    float32 // world units
	PointColor   [3]float32
	PointOpacity float32
	LineColor    [3]float32
	LineOpacity  float32
}

// PlexusRenderer draws a plexus.System as GL_POINTS and GL_LINES.
type PlexusRenderer struct {
	Style PlexusStyle

	points *shader.Program
	lines  *shader.Program

	pointsVAO, pointsVBO uint32
	linesVAO, linesVBO   uint32

	pointCount  int32
	lineVerts   int32
	lineVersion int
	pointBuf    []float32
}

// NewPlexusRenderer compiles the point and line programs.
func NewPlexusRenderer(style PlexusStyle) (*PlexusRenderer, error) {
	points, err := shader.NewProgram("points", shaders.PointsVertexShader, shaders.PointsFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("plexus renderer: %w", err)
	}
	lines, err := shader.NewProgram("lines", shaders.LinesVertexShader, shaders.LinesFragmentShader)
	if err != nil {
		points.Delete()
		return nil, fmt.Errorf("plexus renderer: %w", err)
	}

	r := &PlexusRenderer{Style: style, points: points, lines: lines}
	r.pointsVAO, r.pointsVBO = newPositionBuffer()
	r.linesVAO, r.linesVBO = newPositionBuffer()
	return r, nil
}

func newPositionBuffer() (vao, vbo uint32) {
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return vao, vbo
}

// flattenPoints packs positions as xyz triples into dst.
func flattenPoints(dst []float32, pts []math.Vec3) []float32 {
	dst = dst[:0]
	for _, p := range pts {
		dst = append(dst, p.X, p.Y, p.Z)
	}
	return dst
}

// Sync uploads the rotated points every call and the segment buffer only
// when the graph has been rebuilt since the last upload.
func (r *PlexusRenderer) Sync(sys *plexus.System) {
	r.pointBuf = flattenPoints(r.pointBuf, sys.Field().Positions())
	r.pointCount = int32(len(r.pointBuf) / 3)
	streamFloats(r.pointsVBO, r.pointBuf)

	if sys.Version() == r.lineVersion {
		return
	}
	r.lineVersion = sys.Version()
	segments := sys.Graph().Segments
	r.lineVerts = int32(len(segments) / 3)
	streamFloats(r.linesVBO, segments)
}

func streamFloats(vbo uint32, data []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.DYNAMIC_DRAW)
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.DYNAMIC_DRAW)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Render draws lines then points with alpha blending.
func (r *PlexusRenderer) Render(view, proj math.Mat4, viewportHeight int32) {
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	if r.lineVerts > 0 {
		r.lines.Use()
		r.lines.SetMat4("uViewProj", proj.Mul(view))
		r.lines.SetVec3("uColor", r.Style.LineColor)
		r.lines.SetFloat("uOpacity", r.Style.LineOpacity)
		gl.BindVertexArray(r.linesVAO)
		gl.DrawArrays(gl.LINES, 0, r.lineVerts)
	}

	if r.pointCount > 0 {
		gl.Enable(gl.PROGRAM_POINT_SIZE)
		r.points.Use()
		r.points.SetMat4("uView", view)
		r.points.SetMat4("uProjection", proj)
		r.points.SetFloat("uPointSize", r.Style.PointSize)
		r.points.SetFloat("uViewportHeight", float32(viewportHeight))
		r.points.SetVec3("uColor", r.Style.PointColor)
		r.points.SetFloat("uOpacity", r.Style.PointOpacity)
		gl.BindVertexArray(r.pointsVAO)
		gl.DrawArrays(gl.POINTS, 0, r.pointCount)
		gl.Disable(gl.PROGRAM_POINT_SIZE)
	}

	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// Destroy releases GPU resources.
func (r *PlexusRenderer) Destroy() {
	gl.DeleteVertexArrays(1, &r.pointsVAO)
	gl.DeleteBuffers(1, &r.pointsVBO)
	gl.DeleteVertexArrays(1, &r.linesVAO)
	gl.DeleteBuffers(1, &r.linesVBO)
	r.points.Delete()
	r.lines.Delete()
}
