// Package postfx implements the HDR bloom chain and the final tone-mapped
// composite to the window.
package postfx

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/showroom/internal/engine/framebuffer"
	"github.com/Faultbox/showroom/internal/engine/postfx/shaders"
	"github.com/Faultbox/showroom/internal/engine/shader"
	"github.com/Faultbox/showroom/internal/logger"
)

// Levels is the depth of the blur mip chain.
const Levels = 5

// kernelRadii are the per-level blur half widths in texels.
var kernelRadii = [Levels]int{3, 5, 7, 9, 11}

// baseFactors weight the levels before radius is applied.
var baseFactors = [Levels]float32{1.0, 0.8, 0.6, 0.4, 0.2}

const smoothWidth = 0.01

// Settings configures bloom and the composite.
type Settings struct {
	Enabled   bool
	Strength  float32
	Radius    float32 // 0..1, spreads weight toward the wider levels
	Threshold float32 // luminance where bloom starts
	Exposure  float32
	ToneMap   bool
}

// DefaultSettings matches the plexus background look.
func DefaultSettings() Settings {
	return Settings{
		Enabled:   true,
		Strength:  1.2,
		Radius:    0.2,
		Threshold: 0.8,
		Exposure:  1,
	}
}

// bloomFactors returns the per-level weights for radius.
func bloomFactors(radius float32) [Levels]float32 {
	var out [Levels]float32
	for i, f := range baseFactors {
		// Mirror toward 1.2-f as radius grows.
		out[i] = f + (1.2-f-f)*radius
	}
	return out
}

// gaussianWeights returns normalized one-sided weights for a separable blur
// with the given half width; index 0 is the center tap.
func gaussianWeights(radius int) []float32 {
	if radius < 1 {
		return []float32{1}
	}
	sigma := float32(radius)
	w := make([]float32, radius)
	var sum float32
	for i := range w {
		x := float32(i)
		w[i] = 0.39894 * math32.Exp(-0.5*x*x/(sigma*sigma)) / sigma
		if i == 0 {
			sum += w[i]
		} else {
			sum += 2 * w[i]
		}
	}
	for i := range w {
		w[i] /= sum
	}
	return w
}

// levelSize returns the size of mip level i, starting at half resolution.
func levelSize(width, height int32, i int) (int32, int32) {
	w, h := width, height
	for j := 0; j <= i; j++ {
		w, h = max(w/2, 1), max(h/2, 1)
	}
	return w, h
}

type level struct {
	horizontal *framebuffer.Framebuffer
	vertical   *framebuffer.Framebuffer
}

// Bloom extracts bright areas, blurs them across a mip chain and composites
// them over the scene with exposure, tone mapping and sRGB encoding.
type Bloom struct {
	Settings

	bright    *shader.Program
	blur      *shader.Program
	composite *shader.Program
	vao       uint32

	brightFB *framebuffer.Framebuffer
	levels   [Levels]level

	width, height int32
	log           *zap.Logger
}

// New creates the bloom chain for a width x height scene.
func New(width, height int32, s Settings) (*Bloom, error) {
	b := &Bloom{Settings: s, log: logger.Named("postfx")}

	var err error
	if b.bright, err = shader.NewProgram("bright", shaders.FullscreenVertexShader, shaders.BrightFragmentShader); err != nil {
		return nil, err
	}
	if b.blur, err = shader.NewProgram("blur", shaders.FullscreenVertexShader, shaders.BlurFragmentShader); err != nil {
		b.Destroy()
		return nil, err
	}
	if b.composite, err = shader.NewProgram("composite", shaders.FullscreenVertexShader, shaders.CompositeFragmentShader); err != nil {
		b.Destroy()
		return nil, err
	}
	gl.GenVertexArrays(1, &b.vao)

	if err := b.allocate(width, height); err != nil {
		b.Destroy()
		return nil, err
	}
	return b, nil
}

func (b *Bloom) allocate(width, height int32) error {
	b.width, b.height = width, height
	opts := framebuffer.Options{Format: framebuffer.RGBA16F}

	w, h := levelSize(width, height, 0)
	var err error
	if b.brightFB, err = framebuffer.NewWithOptions(w, h, opts); err != nil {
		return fmt.Errorf("bright pass target: %w", err)
	}
	for i := range b.levels {
		w, h := levelSize(width, height, i)
		if b.levels[i].horizontal, err = framebuffer.NewWithOptions(w, h, opts); err != nil {
			return fmt.Errorf("bloom level %d: %w", i, err)
		}
		if b.levels[i].vertical, err = framebuffer.NewWithOptions(w, h, opts); err != nil {
			return fmt.Errorf("bloom level %d: %w", i, err)
		}
	}
	b.log.Debug("bloom chain allocated", zap.Int32("width", width), zap.Int32("height", height))
	return nil
}

// Resize reallocates the chain for a new scene size.
func (b *Bloom) Resize(width, height int32) {
	if width == b.width && height == b.height {
		return
	}
	b.width, b.height = width, height
	w, h := levelSize(width, height, 0)
	b.brightFB.Resize(w, h)
	for i := range b.levels {
		w, h := levelSize(width, height, i)
		b.levels[i].horizontal.Resize(w, h)
		b.levels[i].vertical.Resize(w, h)
	}
}

// Apply composites sceneTex to the currently bound framebuffer, which must
// cover viewportW x viewportH.
func (b *Bloom) Apply(sceneTex uint32, viewportW, viewportH int32) {
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.BLEND)
	gl.Disable(gl.CULL_FACE)
	gl.BindVertexArray(b.vao)

	if b.Enabled {
		b.renderBright(sceneTex)
		b.renderBlur()
	}

	gl.Viewport(0, 0, viewportW, viewportH)
	b.composite.Use()
	bindTexture(0, sceneTex)
	b.composite.SetInt("uScene", 0)
	for i := range b.levels {
		bindTexture(uint32(i+1), b.levels[i].vertical.ColorTexture())
		b.composite.SetInt(fmt.Sprintf("uBloom%d", i), int32(i+1))
	}
	factors := bloomFactors(b.Radius)
	gl.Uniform1fv(b.composite.Uniform("uFactors"), Levels, &factors[0])
	b.composite.SetFloat("uStrength", b.Strength)
	b.composite.SetInt("uBloomEnabled", boolInt(b.Enabled))
	b.composite.SetFloat("uExposure", b.Exposure)
	b.composite.SetInt("uToneMap", boolInt(b.ToneMap))
	gl.DrawArrays(gl.TRIANGLES, 0, 3)

	gl.BindVertexArray(0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.UseProgram(0)
}

func (b *Bloom) renderBright(sceneTex uint32) {
	restore := b.brightFB.BindWithViewport()
	b.bright.Use()
	bindTexture(0, sceneTex)
	b.bright.SetInt("uScene", 0)
	b.bright.SetFloat("uThreshold", b.Threshold)
	b.bright.SetFloat("uSmoothWidth", smoothWidth)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	restore()
}

func (b *Bloom) renderBlur() {
	b.blur.Use()
	b.blur.SetInt("uSource", 0)

	src := b.brightFB.ColorTexture()
	for i, lv := range b.levels {
		weights := gaussianWeights(kernelRadii[i])
		gl.Uniform1fv(b.blur.Uniform("uWeights"), int32(len(weights)), &weights[0])
		b.blur.SetInt("uTaps", int32(len(weights)))

		w, h := lv.horizontal.Size()
		b.pass(lv.horizontal, src, 1/float32(w), 0)
		b.pass(lv.vertical, lv.horizontal.ColorTexture(), 0, 1/float32(h))
		src = lv.vertical.ColorTexture()
	}
}

func (b *Bloom) pass(dst *framebuffer.Framebuffer, src uint32, dx, dy float32) {
	restore := dst.BindWithViewport()
	bindTexture(0, src)
	b.blur.SetVec2("uDirection", dx, dy)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	restore()
}

func bindTexture(unit, tex uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, tex)
}

func boolInt(v bool) int32 {
	if v {
		return 1
	}
	return 0
}

// Destroy releases GPU resources.
func (b *Bloom) Destroy() {
	for _, p := range []*shader.Program{b.bright, b.blur, b.composite} {
		if p != nil {
			p.Delete()
		}
	}
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
	}
	if b.brightFB != nil {
		b.brightFB.Destroy()
	}
	for _, lv := range b.levels {
		if lv.horizontal != nil {
			lv.horizontal.Destroy()
		}
		if lv.vertical != nil {
			lv.vertical.Destroy()
		}
	}
}
