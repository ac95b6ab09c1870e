// Package texture uploads images to OpenGL textures.
package texture

import (
	"image"

	"github.com/anthonynsimon/bild/clone"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Options controls sampling of an uploaded texture.
type Options struct {
	Mipmaps bool
	// Repeat wraps horizontally (panoramas); otherwise edges clamp.
	RepeatS bool
	Nearest bool
}

// ToRGBA returns img as tightly packed RGBA, copying only when needed.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Stride == rgba.Rect.Dx()*4 && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	c := clone.AsRGBA(img)
	// AsRGBA keeps the source bounds; rebase so Pix starts at (0, 0).
	c.Rect = image.Rect(0, 0, c.Rect.Dx(), c.Rect.Dy())
	return c
}

// Upload creates a texture from img.
func Upload(img image.Image, opts Options) uint32 {
	rgba := ToRGBA(img)
	w, h := int32(rgba.Rect.Dx()), int32(rgba.Rect.Dy())

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.SRGB8_ALPHA8, w, h, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))

	minFilter, magFilter := int32(gl.LINEAR), int32(gl.LINEAR)
	if opts.Nearest {
		minFilter, magFilter = gl.NEAREST, gl.NEAREST
	}
	if opts.Mipmaps {
		gl.GenerateMipmap(gl.TEXTURE_2D)
		minFilter = gl.LINEAR_MIPMAP_LINEAR
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, minFilter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, magFilter)

	wrapS := int32(gl.CLAMP_TO_EDGE)
	if opts.RepeatS {
		wrapS = gl.REPEAT
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrapS)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

// UploadLinear creates a texture holding data rather than color (no sRGB
// decode), e.g. glyph coverage.
func UploadLinear(img image.Image, opts Options) uint32 {
	rgba := ToRGBA(img)
	w, h := int32(rgba.Rect.Dx()), int32(rgba.Rect.Dy())

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, w, h, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))
	filter := int32(gl.LINEAR)
	if opts.Nearest {
		filter = gl.NEAREST
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

// Delete releases a texture.
func Delete(tex *uint32) {
	if *tex != 0 {
		gl.DeleteTextures(1, tex)
		*tex = 0
	}
}
