package lighting

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/showroom/pkg/math"
)

// DirectionalLight shines along -Direction from infinitely far away.
type DirectionalLight struct {
	// Position is only used to orient the light and its shadow camera.
	Position  math.Vec3
	Color     [3]float32
	Intensity float32
	Shadow    bool
}

// Direction returns the unit vector pointing toward the light.
func (l DirectionalLight) Direction() math.Vec3 {
	return l.Position.Normalize()
}

// Rig is the complete scene lighting.
type Rig struct {
	Ambient          [3]float32
	AmbientIntensity float32
	Directional      []DirectionalLight
	Points           *PointLights
}

// Hex converts a "#rrggbb" color to linear RGB, falling back to white.
func Hex(s string) [3]float32 {
	c, err := colorful.Hex(s)
	if err != nil {
		return [3]float32{1, 1, 1}
	}
	r, g, b := c.LinearRgb()
	return [3]float32{float32(r), float32(g), float32(b)}
}

// ShowroomRig returns the car showroom lighting: a shadow-casting white
// sun, white ambient, a cool and a warm fill, and a magenta accent point
// light in front of the car.
func ShowroomRig() *Rig {
	points := &PointLights{}
	points.Add(PointLight{
		Position:  [3]float32{0, 3, 5},
		Color:     Hex("#e499e4"),
		Range:     20,
		Intensity: 1.5,
	})
	return &Rig{
		Ambient:          Hex("#ffffff"),
		AmbientIntensity: 0.6,
		Directional: []DirectionalLight{
			{Position: math.V3(10, 20, 10), Color: Hex("#ffffff"), Intensity: 1.5, Shadow: true},
			{Position: math.V3(-10, 5, -10), Color: Hex("#4466ff"), Intensity: 0.3},
			{Position: math.V3(5, 3, 10), Color: Hex("#ff8866"), Intensity: 0.2},
		},
		Points: points,
	}
}

// Sun returns the first shadow-casting directional light.
func (r *Rig) Sun() (DirectionalLight, bool) {
	for _, l := range r.Directional {
		if l.Shadow {
			return l, true
		}
	}
	return DirectionalLight{}, false
}

// DirectionalArrays packs up to MaxDirectionalLights lights as flat
// direction and intensity-scaled color arrays.
func (r *Rig) DirectionalArrays() (dirs, colors []float32, count int) {
	dirs = make([]float32, MaxDirectionalLights*3)
	colors = make([]float32, MaxDirectionalLights*3)
	for i, l := range r.Directional {
		if i >= MaxDirectionalLights {
			break
		}
		d := l.Direction()
		copy(dirs[i*3:], []float32{d.X, d.Y, d.Z})
		colors[i*3+0] = l.Color[0] * l.Intensity
		colors[i*3+1] = l.Color[1] * l.Intensity
		colors[i*3+2] = l.Color[2] * l.Intensity
		count++
	}
	return dirs, colors, count
}
