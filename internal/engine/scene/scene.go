// Package scene renders the showroom car and the plexus field into
// offscreen HDR framebuffers.
package scene

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/showroom/internal/engine/framebuffer"
	"github.com/Faultbox/showroom/internal/engine/lighting"
	"github.com/Faultbox/showroom/internal/engine/scene/shaders"
	"github.com/Faultbox/showroom/internal/engine/shader"
	"github.com/Faultbox/showroom/internal/engine/shadow"
	"github.com/Faultbox/showroom/internal/model"
	"github.com/Faultbox/showroom/pkg/math"
)

// Camera supplies the matrices a scene is rendered with.
type Camera interface {
	ViewMatrix() math.Mat4
	ProjectionMatrix() math.Mat4
}

// Config contains scene configuration options.
type Config struct {
	Width            int32
	Height           int32
	ShadowResolution int32
	ShadowsEnabled   bool
}

// DefaultConfig returns a default scene configuration.
func DefaultConfig() Config {
	return Config{
		Width:            1280,
		Height:           720,
		ShadowResolution: shadow.DefaultResolution,
		ShadowsEnabled:   true,
	}
}

// Scene renders a model tree over an environment panorama with the
// showroom light rig and sun shadows.
type Scene struct {
	config Config

	framebuffer *framebuffer.Framebuffer

	models *ModelRenderer
	sky    *SkyRenderer
	debug  *DebugLines

	shadowMap              *shadow.Map
	shadowProgram          uint32
	locShadowLightViewProj int32
	locShadowModel         int32

	Rig            *lighting.Rig
	Frustum        shadow.Frustum
	ShadowsEnabled bool
	// ClearColor shows until a panorama is set.
	ClearColor [3]float32

	lightViewProj math.Mat4
}

// New creates a scene with an RGBA16F target.
func New(cfg Config) (*Scene, error) {
	s := &Scene{
		config:         cfg,
		Rig:            lighting.ShowroomRig(),
		Frustum:        shadow.DefaultFrustum(),
		ShadowsEnabled: cfg.ShadowsEnabled,
		ClearColor:     [3]float32{0.13, 0.13, 0.13},
	}

	var err error
	s.framebuffer, err = framebuffer.NewWithOptions(cfg.Width, cfg.Height, framebuffer.Options{
		Format: framebuffer.RGBA16F,
		Depth:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("creating framebuffer: %w", err)
	}

	if cfg.ShadowsEnabled {
		s.shadowMap, err = shadow.NewMap(cfg.ShadowResolution)
		if err != nil {
			// Shadows are optional
			s.ShadowsEnabled = false
		}
	}

	if err := s.createShadowShader(); err != nil {
		s.Destroy()
		return nil, fmt.Errorf("creating shadow shader: %w", err)
	}

	s.models, err = NewModelRenderer()
	if err != nil {
		s.Destroy()
		return nil, fmt.Errorf("creating model renderer: %w", err)
	}

	s.sky, err = NewSkyRenderer()
	if err != nil {
		s.Destroy()
		return nil, fmt.Errorf("creating sky renderer: %w", err)
	}

	s.debug, err = NewDebugLines()
	if err != nil {
		s.Destroy()
		return nil, fmt.Errorf("creating debug lines: %w", err)
	}

	return s, nil
}

func (s *Scene) createShadowShader() error {
	program, err := shader.CompileProgram(shaders.ShadowVertexShader, shaders.ShadowFragmentShader)
	if err != nil {
		return fmt.Errorf("shadow shader: %w", err)
	}
	s.shadowProgram = program
	s.locShadowLightViewProj = shader.GetUniform(program, "uLightViewProj")
	s.locShadowModel = shader.GetUniform(program, "uModel")
	return nil
}

// SetPanorama installs the environment background and reflection images.
func (s *Scene) SetPanorama(background, reflection image.Image) {
	s.sky.SetPanorama(background, reflection)
}

// SetDebugLines replaces the overlay segments drawn after the models.
func (s *Scene) SetDebugLines(verts []float32) {
	s.debug.Set(verts)
}

// Forget releases GPU meshes that are no longer under root.
func (s *Scene) Forget(root *model.Node) {
	s.models.Meshes().Retain(root)
}

// Render draws root from cam and returns the HDR color texture.
func (s *Scene) Render(root *model.Node, cam Camera) uint32 {
	view := cam.ViewMatrix()
	viewProj := cam.ProjectionMatrix().Mul(view)
	eye := view.Inverse().Translation()

	sun, hasSun := s.Rig.Sun()
	shadows := s.ShadowsEnabled && hasSun && s.shadowMap.IsValid() && root != nil
	if shadows {
		if b := root.Bounds(); b.Valid() {
			s.lightViewProj = shadow.FitLightMatrix(sun.Direction(), b)
		} else {
			s.lightViewProj = shadow.LightMatrix(sun.Position, math.Vec3{}, s.Frustum)
		}
		s.renderShadowPass(root)
	}

	restore := s.framebuffer.BindWithViewport()
	defer restore()

	s.framebuffer.Clear(s.ClearColor[0], s.ClearColor[1], s.ClearColor[2], 1)
	s.sky.Render(viewProj)

	frame := Frame{
		ViewProj:      viewProj,
		Eye:           eye,
		Rig:           s.Rig,
		LightViewProj: s.lightViewProj,
		ShadowBias:    s.Frustum.Bias,
		Reflection:    s.sky.Reflection(),
	}
	if shadows {
		frame.Shadow = s.shadowMap
	}
	s.models.Render(root, frame)
	s.debug.Render(viewProj)

	return s.framebuffer.ColorTexture()
}

func (s *Scene) renderShadowPass(root *model.Node) {
	restore := s.shadowMap.Bind()
	defer restore()

	gl.UseProgram(s.shadowProgram)
	gl.UniformMatrix4fv(s.locShadowLightViewProj, 1, false, &s.lightViewProj[0])
	s.models.RenderShadow(root, s.locShadowModel)
	gl.UseProgram(0)
}

// Resize updates the scene dimensions.
func (s *Scene) Resize(width, height int32) {
	if width == s.config.Width && height == s.config.Height {
		return
	}
	s.config.Width = width
	s.config.Height = height
	s.framebuffer.Resize(width, height)
}

// Size returns the render target size.
func (s *Scene) Size() (int32, int32) {
	return s.config.Width, s.config.Height
}

// ColorTexture returns the rendered color texture.
func (s *Scene) ColorTexture() uint32 {
	return s.framebuffer.ColorTexture()
}

// Destroy releases all resources.
func (s *Scene) Destroy() {
	if s.models != nil {
		s.models.Destroy()
	}
	if s.sky != nil {
		s.sky.Destroy()
	}
	if s.debug != nil {
		s.debug.Destroy()
	}
	if s.shadowMap != nil {
		s.shadowMap.Destroy()
	}
	if s.shadowProgram != 0 {
		gl.DeleteProgram(s.shadowProgram)
	}
	if s.framebuffer != nil {
		s.framebuffer.Destroy()
	}
}
