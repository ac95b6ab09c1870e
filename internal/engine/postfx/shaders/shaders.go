// Package shaders embeds the post-processing GLSL sources.
package shaders

import _ "embed"

var (
	//go:embed fullscreen.vert
	FullscreenVertexShader string
	//go:embed bright.frag
	BrightFragmentShader string
	//go:embed blur.frag
	BlurFragmentShader string
	//go:embed composite.frag
	CompositeFragmentShader string
)
