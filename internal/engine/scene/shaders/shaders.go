// Package shaders embeds the GLSL sources of the scene renderers.
package shaders

import _ "embed"

// Plexus points and lines.
var (
	//go:embed points.vert
	PointsVertexShader string
	//go:embed points.frag
	PointsFragmentShader string
	//go:embed lines.vert
	LinesVertexShader string
	//go:embed lines.frag
	LinesFragmentShader string
)

// Car model and its shadow depth pass.
var (
	//go:embed model.vert
	ModelVertexShader string
	//go:embed model.frag
	ModelFragmentShader string
	//go:embed shadow.vert
	ShadowVertexShader string
	//go:embed shadow.frag
	ShadowFragmentShader string
)

// Equirectangular environment background.
var (
	//go:embed sky.vert
	SkyVertexShader string
	//go:embed sky.frag
	SkyFragmentShader string
)
