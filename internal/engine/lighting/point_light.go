// Package lighting describes the showroom light rig and packs it for GPU upload.
package lighting

// Shader array sizes.
const (
	MaxPointLights       = 4
	MaxDirectionalLights = 4
)

// defaultRange applies to point lights created without one.
const defaultRange = 20

// PointLight is an omnidirectional light whose contribution falls to zero
// at Range.
type PointLight struct {
	Position  [3]float32
	Color     [3]float32 // linear RGB
	Range     float32
	Intensity float32
}

// PointLights is a bounded set of point lights.
type PointLights struct {
	lights []PointLight
}

// Add appends l, clamping its color and defaulting its range. It reports
// false once MaxPointLights are held.
func (p *PointLights) Add(l PointLight) bool {
	if len(p.lights) >= MaxPointLights {
		return false
	}
	if l.Range <= 0 {
		l.Range = defaultRange
	}
	for i, c := range l.Color {
		l.Color[i] = min(max(c, 0), 1)
	}
	p.lights = append(p.lights, l)
	return true
}

// Len returns the number of lights.
func (p *PointLights) Len() int {
	if p == nil {
		return 0
	}
	return len(p.lights)
}

// At returns light i.
func (p *PointLights) At(i int) PointLight {
	return p.lights[i]
}

// Pack flattens the lights into shader-sized arrays: xyz positions,
// intensity-scaled colors and ranges. Unused slots are zero.
func (p *PointLights) Pack() (positions, colors, ranges []float32) {
	positions = make([]float32, MaxPointLights*3)
	colors = make([]float32, MaxPointLights*3)
	ranges = make([]float32, MaxPointLights)
	for i := 0; i < p.Len(); i++ {
		l := p.lights[i]
		copy(positions[i*3:], l.Position[:])
		for c := 0; c < 3; c++ {
			colors[i*3+c] = l.Color[c] * l.Intensity
		}
		ranges[i] = l.Range
	}
	return positions, colors, ranges
}
