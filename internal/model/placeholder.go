package model

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/showroom/pkg/math"
)

// Door labels carried by the placeholder car. They match the names used
// by the production model so door classification behaves the same.
const (
	LabelLeftFront  = "Puerta-izquierda"
	LabelRightFront = "Puerta-derecha"
	LabelLeftRear   = "puertatraseraizquierda"
	LabelRightRear  = "puertatraseraerecha"
)

func hexColor(rgb uint32, alpha float32) [4]float32 {
	srgb := func(v uint32) float32 {
		c := float32(v&0xff) / 255
		// sRGB to linear
		if c <= 0.04045 {
			return c / 12.92
		}
		return math32.Pow((c+0.055)/1.055, 2.4)
	}
	return [4]float32{srgb(rgb >> 16), srgb(rgb >> 8), srgb(rgb), alpha}
}

// PlaceholderCar builds a simple car from primitives. It never fails and
// each call returns an independent graph.
func PlaceholderCar() *Node {
	paint := Material{Name: "paint", BaseColor: hexColor(0x2c3e50, 1), Metalness: 0.8, Roughness: 0.2}
	glass := Material{Name: "glass", BaseColor: hexColor(0x1a1a1a, 0.3), Metalness: 0.9, Roughness: 0.05, Transmission: 0.9}
	rubber := Material{Name: "tyre", BaseColor: hexColor(0x111111, 1), Metalness: 0.8, Roughness: 0.2}
	doorPaint := Material{Name: "door", BaseColor: hexColor(0x3498db, 1), Metalness: 0.9, Roughness: 0.1}

	root := NewNode("placeholder-car")

	body := root.Add(NewNode("body"))
	body.Translation = math.V3(0, -0.6, 0)
	body.AddMesh(Box(math.V3(3, 1.2, 5), math.Vec3{}, paint))

	roof := root.Add(NewNode("roof"))
	roof.Translation = math.V3(0, 0.2, -0.8)
	roof.AddMesh(Box(math.V3(2.6, 0.8, 2.5), math.Vec3{}, paint))

	windshield := root.Add(NewNode("windshield"))
	windshield.Translation = math.V3(0, 0.1, -2.2)
	windshield.BaseRotation = AxisAngle(AxisX, math32.Pi/12)
	windshield.AddMesh(Plane(2.5, 0.8, math.Vec3{}, glass))

	wheel := Cylinder(0.4, 0.3, 16, math.Vec3{}, rubber)
	for i, p := range []math.Vec3{
		{X: -1.2, Y: -0.8, Z: -1.5}, {X: 1.2, Y: -0.8, Z: -1.5},
		{X: -1.2, Y: -0.8, Z: 1.5}, {X: 1.2, Y: -0.8, Z: 1.5},
	} {
		n := root.Add(NewNode(wheelName(i)))
		n.Translation = p
		n.BaseRotation = AxisAngle(AxisZ, math32.Pi/2)
		n.AddMesh(wheel)
	}

	// Door nodes sit on the hinge line; the panel extends backwards from it
	// so opening swings around the front edge.
	doors := []struct {
		label string
		pos   math.Vec3
	}{
		{LabelLeftFront, math.V3(1.5, -0.1, -1.8)},
		{LabelRightFront, math.V3(-1.5, -0.1, -1.8)},
		{LabelLeftRear, math.V3(1.5, -0.1, 0.1)},
		{LabelRightRear, math.V3(-1.5, -0.1, 0.1)},
	}
	for _, d := range doors {
		n := root.Add(NewNode(d.label))
		n.Translation = d.pos
		n.AddMesh(Box(math.V3(0.1, 1.2, 1.2), math.V3(0, 0, 0.6), doorPaint))
	}

	return root
}

func wheelName(i int) string {
	return [...]string{"wheel-front-left", "wheel-front-right", "wheel-rear-left", "wheel-rear-right"}[i]
}
