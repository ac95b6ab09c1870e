package formats

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/codec/rgbe"
)

// Radiance format errors.
var (
	ErrInvalidRadianceMagic = errors.New("invalid Radiance header: expected '#?'")
	ErrNotHDRImage          = errors.New("decoded image carries no HDR samples")
)

// HDRImage is a linear floating point RGB image, rows top to bottom.
type HDRImage struct {
	Width  int
	Height int
	Pix    []float32 // RGB triplets
}

// At returns the linear RGB sample at (x, y).
func (h *HDRImage) At(x, y int) [3]float32 {
	i := (y*h.Width + x) * 3
	return [3]float32{h.Pix[i], h.Pix[i+1], h.Pix[i+2]}
}

// MaxLuminance returns the brightest sample's luminance.
func (h *HDRImage) MaxLuminance() float32 {
	var peak float32
	for i := 0; i+2 < len(h.Pix); i += 3 {
		l := 0.2126*h.Pix[i] + 0.7152*h.Pix[i+1] + 0.0722*h.Pix[i+2]
		if l > peak {
			peak = l
		}
	}
	return peak
}

// LoadRadiance loads a Radiance .hdr file from disk.
func LoadRadiance(path string) (*HDRImage, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return ParseRadiance(data)
}

// ParseRadiance decodes Radiance RGBE data.
func ParseRadiance(data []byte) (*HDRImage, error) {
	if !bytes.HasPrefix(data, []byte("#?")) {
		return nil, ErrInvalidRadianceMagic
	}

	img, err := rgbe.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding radiance: %w", err)
	}
	src, ok := img.(hdr.Image)
	if !ok {
		return nil, ErrNotHDRImage
	}

	b := src.Bounds()
	out := &HDRImage{
		Width:  b.Dx(),
		Height: b.Dy(),
		Pix:    make([]float32, 0, b.Dx()*b.Dy()*3),
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := src.HDRAt(x, y).HDRRGBA()
			out.Pix = append(out.Pix, float32(r), float32(g), float32(bl))
		}
	}
	return out, nil
}
