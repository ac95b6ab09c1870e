package ui2d

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an RGBA color with float components in [0, 1].
type Color struct {
	R, G, B, A float32
}

// Theme colors. Dark glass panels with the showroom's violet accent.
var (
	ColorTransparent = Color{0, 0, 0, 0}
	ColorWhite       = Color{1, 1, 1, 1}
	ColorBlack       = Color{0, 0, 0, 1}

	ColorPanelBg      = Color{0.06, 0.06, 0.09, 0.85}
	ColorPanelBorder  = Color{0.28, 0.28, 0.36, 1}
	ColorTitleBar     = Color{0.12, 0.12, 0.17, 1}
	ColorButtonNormal = Color{0.14, 0.14, 0.19, 0.9}
	ColorButtonHover  = Color{0.24, 0.22, 0.32, 0.95}
	ColorButtonActive = Color{0.55, 0.36, 0.62, 1}
	ColorTrack        = Color{0.04, 0.04, 0.06, 0.9}
	ColorText         = Color{0.92, 0.92, 0.94, 1}
	ColorTextDim      = Color{0.55, 0.55, 0.62, 1}
	ColorHighlight    = Color{0.89, 0.6, 0.89, 1}
	ColorError        = Color{0.75, 0.16, 0.2, 0.95}
	ColorWarning      = Color{0.8, 0.55, 0.12, 0.95}
)

// RGBA creates a color from 8-bit components.
func RGBA(r, g, b, a uint8) Color {
	return Color{
		R: float32(r) / 255.0,
		G: float32(g) / 255.0,
		B: float32(b) / 255.0,
		A: float32(a) / 255.0,
	}
}

// RGB creates an opaque color from 8-bit components.
func RGB(r, g, b uint8) Color {
	return RGBA(r, g, b, 255)
}

// FromColor converts any image/color value.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA(n.R, n.G, n.B, n.A)
}

// Hex parses "#rrggbb". Invalid input yields opaque white.
func Hex(s string) Color {
	c, err := colorful.Hex(s)
	if err != nil {
		return ColorWhite
	}
	return Color{float32(c.R), float32(c.G), float32(c.B), 1}
}

// WithAlpha returns a copy of the color with a different alpha.
func (c Color) WithAlpha(a float32) Color {
	return Color{c.R, c.G, c.B, a}
}

// Darken scales the color toward black.
func (c Color) Darken(factor float32) Color {
	return Color{
		R: c.R * (1 - factor),
		G: c.G * (1 - factor),
		B: c.B * (1 - factor),
		A: c.A,
	}
}
