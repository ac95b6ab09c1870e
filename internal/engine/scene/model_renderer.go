package scene

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/showroom/internal/engine/lighting"
	"github.com/Faultbox/showroom/internal/engine/scene/shaders"
	"github.com/Faultbox/showroom/internal/engine/shader"
	"github.com/Faultbox/showroom/internal/engine/shadow"
	"github.com/Faultbox/showroom/internal/model"
	"github.com/Faultbox/showroom/pkg/math"
)

// Frame carries the per-frame state shared by the model passes.
type Frame struct {
	ViewProj math.Mat4
	Eye      math.Vec3
	Rig      *lighting.Rig

	LightViewProj math.Mat4
	Shadow        *shadow.Map // nil disables shadows
	ShadowBias    float32

	Reflection uint32 // 0 disables environment reflections
}

// ModelRenderer draws model.Node trees with a metal/roughness shader.
type ModelRenderer struct {
	program uint32
	meshes  *MeshCache

	// Uniform locations
	locViewProj      int32
	locModel         int32
	locNormalMatrix  int32
	locLightViewProj int32

	locBaseColor    int32
	locMetalness    int32
	locRoughness    int32
	locTransmission int32
	locEmissive     int32

	locCameraPos int32
	locAmbient   int32

	locDirLightDirs   int32
	locDirLightColors int32
	locDirLightCount  int32

	locPointLightPositions int32
	locPointLightColors    int32
	locPointLightRanges    int32
	locPointLightCount     int32

	locShadowMap         int32
	locShadowsEnabled    int32
	locShadowBias        int32
	locReflection        int32
	locReflectionEnabled int32
}

// NewModelRenderer compiles the model shader.
func NewModelRenderer() (*ModelRenderer, error) {
	program, err := shader.CompileProgram(shaders.ModelVertexShader, shaders.ModelFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("model shader: %w", err)
	}
	mr := &ModelRenderer{program: program, meshes: NewMeshCache()}

	mr.locViewProj = shader.GetUniform(program, "uViewProj")
	mr.locModel = shader.GetUniform(program, "uModel")
	mr.locNormalMatrix = shader.GetUniform(program, "uNormalMatrix")
	mr.locLightViewProj = shader.GetUniform(program, "uLightViewProj")

	mr.locBaseColor = shader.GetUniform(program, "uBaseColor")
	mr.locMetalness = shader.GetUniform(program, "uMetalness")
	mr.locRoughness = shader.GetUniform(program, "uRoughness")
	mr.locTransmission = shader.GetUniform(program, "uTransmission")
	mr.locEmissive = shader.GetUniform(program, "uEmissive")

	mr.locCameraPos = shader.GetUniform(program, "uCameraPos")
	mr.locAmbient = shader.GetUniform(program, "uAmbient")

	mr.locDirLightDirs = shader.GetUniform(program, "uDirLightDirs")
	mr.locDirLightColors = shader.GetUniform(program, "uDirLightColors")
	mr.locDirLightCount = shader.GetUniform(program, "uDirLightCount")

	mr.locPointLightPositions = shader.GetUniform(program, "uPointLightPositions")
	mr.locPointLightColors = shader.GetUniform(program, "uPointLightColors")
	mr.locPointLightRanges = shader.GetUniform(program, "uPointLightRanges")
	mr.locPointLightCount = shader.GetUniform(program, "uPointLightCount")

	mr.locShadowMap = shader.GetUniform(program, "uShadowMap")
	mr.locShadowsEnabled = shader.GetUniform(program, "uShadowsEnabled")
	mr.locShadowBias = shader.GetUniform(program, "uShadowBias")
	mr.locReflection = shader.GetUniform(program, "uReflection")
	mr.locReflectionEnabled = shader.GetUniform(program, "uReflectionEnabled")

	return mr, nil
}

// Meshes returns the GPU mesh cache.
func (mr *ModelRenderer) Meshes() *MeshCache {
	return mr.meshes
}

// Render draws root: opaque meshes first, then transparent ones back to front.
func (mr *ModelRenderer) Render(root *model.Node, f Frame) {
	opaque, transparent := collectDraws(root, f.Eye)
	if len(opaque)+len(transparent) == 0 {
		return
	}

	gl.UseProgram(mr.program)
	gl.UniformMatrix4fv(mr.locViewProj, 1, false, &f.ViewProj[0])
	gl.UniformMatrix4fv(mr.locLightViewProj, 1, false, &f.LightViewProj[0])
	gl.Uniform3f(mr.locCameraPos, f.Eye.X, f.Eye.Y, f.Eye.Z)
	mr.setLights(f.Rig)

	if f.Shadow.IsValid() {
		f.Shadow.BindTexture(gl.TEXTURE1)
		gl.Uniform1i(mr.locShadowMap, 1)
		gl.Uniform1i(mr.locShadowsEnabled, 1)
		gl.Uniform1f(mr.locShadowBias, f.ShadowBias)
	} else {
		gl.Uniform1i(mr.locShadowsEnabled, 0)
	}

	if f.Reflection != 0 {
		gl.ActiveTexture(gl.TEXTURE2)
		gl.BindTexture(gl.TEXTURE_2D, f.Reflection)
		gl.Uniform1i(mr.locReflection, 2)
		gl.Uniform1i(mr.locReflectionEnabled, 1)
	} else {
		gl.Uniform1i(mr.locReflectionEnabled, 0)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Disable(gl.BLEND)
	for _, d := range opaque {
		mr.draw(d)
	}

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.DepthMask(false)
	for _, d := range transparent {
		mr.draw(d)
	}
	gl.DepthMask(true)

	gl.BindVertexArray(0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.UseProgram(0)
}

func (mr *ModelRenderer) setLights(rig *lighting.Rig) {
	if rig == nil {
		gl.Uniform3f(mr.locAmbient, 0.3, 0.3, 0.3)
		gl.Uniform1i(mr.locDirLightCount, 0)
		gl.Uniform1i(mr.locPointLightCount, 0)
		return
	}
	a := rig.AmbientIntensity
	gl.Uniform3f(mr.locAmbient, rig.Ambient[0]*a, rig.Ambient[1]*a, rig.Ambient[2]*a)

	dirs, colors, n := rig.DirectionalArrays()
	gl.Uniform3fv(mr.locDirLightDirs, lighting.MaxDirectionalLights, &dirs[0])
	gl.Uniform3fv(mr.locDirLightColors, lighting.MaxDirectionalLights, &colors[0])
	gl.Uniform1i(mr.locDirLightCount, int32(n))

	count := int32(rig.Points.Len())
	if count == 0 {
		gl.Uniform1i(mr.locPointLightCount, 0)
		return
	}
	positions, pointColors, ranges := rig.Points.Pack()
	gl.Uniform3fv(mr.locPointLightPositions, count, &positions[0])
	gl.Uniform3fv(mr.locPointLightColors, count, &pointColors[0])
	gl.Uniform1fv(mr.locPointLightRanges, count, &ranges[0])
	gl.Uniform1i(mr.locPointLightCount, count)
}

func (mr *ModelRenderer) draw(d drawItem) {
	mat := d.mesh.Material
	normal := d.world.NormalMatrix()
	gl.UniformMatrix4fv(mr.locModel, 1, false, &d.world[0])
	gl.UniformMatrix3fv(mr.locNormalMatrix, 1, false, &normal[0])
	gl.Uniform4f(mr.locBaseColor, mat.BaseColor[0], mat.BaseColor[1], mat.BaseColor[2], mat.BaseColor[3])
	gl.Uniform1f(mr.locMetalness, mat.Metalness)
	gl.Uniform1f(mr.locRoughness, max(mat.Roughness, 0.04))
	gl.Uniform1f(mr.locTransmission, mat.Transmission)
	gl.Uniform3f(mr.locEmissive, mat.Emissive[0], mat.Emissive[1], mat.Emissive[2])

	if mat.DoubleSided || mat.Transparent() {
		gl.Disable(gl.CULL_FACE)
	} else {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
	}
	mr.meshes.Get(d.mesh).draw()
}

// RenderShadow draws opaque geometry into the bound shadow map.
func (mr *ModelRenderer) RenderShadow(root *model.Node, locModel int32) {
	opaque, _ := collectDraws(root, math.Vec3{})
	gl.Disable(gl.CULL_FACE)
	for _, d := range opaque {
		gl.UniformMatrix4fv(locModel, 1, false, &d.world[0])
		mr.meshes.Get(d.mesh).draw()
	}
	gl.BindVertexArray(0)
}

// Destroy releases GPU resources.
func (mr *ModelRenderer) Destroy() {
	mr.meshes.Destroy()
	if mr.program != 0 {
		gl.DeleteProgram(mr.program)
		mr.program = 0
	}
}
