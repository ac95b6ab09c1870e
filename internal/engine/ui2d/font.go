package ui2d

import (
	"image"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/Faultbox/showroom/internal/engine/texture"
)

const (
	firstGlyph  = ' '
	lastGlyph   = '~'
	atlasCols   = 16
	glyphCount  = lastGlyph - firstGlyph + 2 // printable ASCII plus replacement
	replacement = glyphCount - 1
)

// glyphAtlas is a fixed-cell bitmap font laid out in a grid.
type glyphAtlas struct {
	img        *image.RGBA
	cellW      int
	cellH      int
	cols, rows int
}

// newGlyphAtlas rasterizes the basicfont 7x13 face, white on transparent.
func newGlyphAtlas() *glyphAtlas {
	face := basicfont.Face7x13
	a := &glyphAtlas{
		cellW: face.Advance,
		cellH: face.Height,
		cols:  atlasCols,
		rows:  (glyphCount + atlasCols - 1) / atlasCols,
	}
	a.img = image.NewRGBA(image.Rect(0, 0, a.cols*a.cellW, a.rows*a.cellH))

	d := font.Drawer{Dst: a.img, Src: image.White, Face: face}
	for i := 0; i < glyphCount; i++ {
		r := firstGlyph + rune(i)
		if i == replacement {
			r = utf8.RuneError
		}
		col, row := i%a.cols, i/a.cols
		d.Dot = fixed.P(col*a.cellW, row*a.cellH+face.Ascent)
		d.DrawString(string(r))
	}
	return a
}

func (a *glyphAtlas) index(r rune) int {
	if r < firstGlyph || r > lastGlyph {
		return replacement
	}
	return int(r - firstGlyph)
}

// GetGlyphUV returns the texture coordinates of r's cell.
func (a *glyphAtlas) GetGlyphUV(r rune) (u0, v0, u1, v1 float32) {
	i := a.index(r)
	col, row := i%a.cols, i/a.cols
	w, h := float32(a.img.Rect.Dx()), float32(a.img.Rect.Dy())
	u0 = float32(col*a.cellW) / w
	v0 = float32(row*a.cellH) / h
	u1 = float32((col+1)*a.cellW) / w
	v1 = float32((row+1)*a.cellH) / h
	return u0, v0, u1, v1
}

// GlyphSize returns the cell size in pixels.
func (a *glyphAtlas) GlyphSize() (int, int) {
	return a.cellW, a.cellH
}

// MeasureText returns the size of text at scale, honoring newlines.
func (a *glyphAtlas) MeasureText(text string, scale float32) (float32, float32) {
	if text == "" {
		return 0, 0
	}
	lines, longest, cur := 1, 0, 0
	for _, r := range text {
		if r == '\n' {
			lines++
			cur = 0
			continue
		}
		cur++
		longest = max(longest, cur)
	}
	return float32(longest*a.cellW) * scale, float32(lines*a.cellH) * scale
}

// Font is a glyph atlas uploaded to the GPU.
type Font struct {
	*glyphAtlas
	tex uint32
}

// NewFont builds and uploads the UI font. Requires a GL context.
func NewFont() *Font {
	a := newGlyphAtlas()
	return &Font{
		glyphAtlas: a,
		tex:        texture.UploadLinear(a.img, texture.Options{Nearest: true}),
	}
}

// TextureID returns the atlas texture.
func (f *Font) TextureID() uint32 {
	return f.tex
}

// Close releases the atlas texture.
func (f *Font) Close() {
	texture.Delete(&f.tex)
}

