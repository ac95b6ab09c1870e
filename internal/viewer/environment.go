package viewer

import (
	"fmt"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/transform"
	"github.com/chewxy/math32"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/showroom/pkg/formats"
)

// Environment is the panorama used as scene background and as the
// reflection source for materials.
type Environment struct {
	Background *image.RGBA
	Reflection *image.RGBA
	Fallback   bool
}

// DefaultSkyStops are the sky, horizon and ground colors of the fallback
// panorama.
var DefaultSkyStops = []string{"#87CEEB", "#B0E0E6", "#F5F5DC"}

// ParseStops parses hex colors.
func ParseStops(hex []string) ([]colorful.Color, error) {
	stops := make([]colorful.Color, 0, len(hex))
	for _, h := range hex {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("sky stop %q: %w", h, err)
		}
		stops = append(stops, c)
	}
	return stops, nil
}

// GradientPanorama paints a vertical gradient through evenly spaced stops,
// first stop at the top row. Each call allocates a new image.
func GradientPanorama(width, height int, stops []colorful.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if len(stops) == 0 {
		return img
	}

	for y := 0; y < height; y++ {
		t := 0.0
		if height > 1 {
			t = float64(y) / float64(height-1)
		}
		c := sampleStops(stops, t)
		r, g, b := c.Clamped().RGB255()
		px := color.RGBA{R: r, G: g, B: b, A: 255}

		row := img.Pix[y*img.Stride : y*img.Stride+width*4]
		for x := 0; x < width; x++ {
			row[x*4+0] = px.R
			row[x*4+1] = px.G
			row[x*4+2] = px.B
			row[x*4+3] = px.A
		}
	}
	return img
}

func sampleStops(stops []colorful.Color, t float64) colorful.Color {
	if len(stops) == 1 || t <= 0 {
		return stops[0]
	}
	if t >= 1 {
		return stops[len(stops)-1]
	}
	seg := t * float64(len(stops)-1)
	i := int(seg)
	return stops[i].BlendRgb(stops[i+1], seg-float64(i))
}

// FallbackEnvironment builds the gradient environment. It cannot fail:
// unparsable stops fall back to DefaultSkyStops.
func FallbackEnvironment(width, height int, hexStops []string) *Environment {
	stops, err := ParseStops(hexStops)
	if err != nil || len(stops) == 0 {
		stops, _ = ParseStops(DefaultSkyStops)
	}
	if width <= 0 || height <= 0 {
		width, height = 2048, 1024
	}
	bg := GradientPanorama(width, height, stops)
	return &Environment{
		Background: bg,
		Reflection: reflectionMap(bg),
		Fallback:   true,
	}
}

// FromHDR tone-maps a linear panorama with the ACES filmic curve at the
// given exposure and encodes it to sRGB.
func FromHDR(img *formats.HDRImage, exposure float32) *Environment {
	bg := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			s := img.At(x, y)
			c := colorful.LinearRgb(
				float64(acesFilm(s[0]*exposure)),
				float64(acesFilm(s[1]*exposure)),
				float64(acesFilm(s[2]*exposure)),
			)
			r, g, b := c.Clamped().RGB255()
			i := bg.PixOffset(x, y)
			bg.Pix[i+0], bg.Pix[i+1], bg.Pix[i+2], bg.Pix[i+3] = r, g, b, 255
		}
	}
	return &Environment{
		Background: bg,
		Reflection: reflectionMap(bg),
	}
}

// acesFilm is Narkowicz's fit of the ACES filmic curve.
func acesFilm(x float32) float32 {
	if x <= 0 {
		return 0
	}
	v := (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
	return math32.Min(v, 1)
}

// reflectionMap downsamples and blurs the background into a cheap
// glossy reflection source.
func reflectionMap(bg *image.RGBA) *image.RGBA {
	w, h := bg.Bounds().Dx()/8, bg.Bounds().Dy()/8
	if w < 1 || h < 1 {
		w, h = max(bg.Bounds().Dx(), 1), max(bg.Bounds().Dy(), 1)
	}
	small := transform.Resize(bg, w, h, transform.Linear)
	return blur.Gaussian(small, 2)
}
