package model

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/showroom/pkg/math"
)

type boxFace struct {
	n, u, v math.Vec3
}

// u x v == n for every face, so (0,1,2) (0,2,3) winds counter-clockwise
// seen from outside.
var boxFaces = [6]boxFace{
	{math.V3(1, 0, 0), math.V3(0, 1, 0), math.V3(0, 0, 1)},
	{math.V3(-1, 0, 0), math.V3(0, 0, 1), math.V3(0, 1, 0)},
	{math.V3(0, 1, 0), math.V3(0, 0, 1), math.V3(1, 0, 0)},
	{math.V3(0, -1, 0), math.V3(1, 0, 0), math.V3(0, 0, 1)},
	{math.V3(0, 0, 1), math.V3(1, 0, 0), math.V3(0, 1, 0)},
	{math.V3(0, 0, -1), math.V3(0, 1, 0), math.V3(1, 0, 0)},
}

func mulComp(a, b math.Vec3) math.Vec3 {
	return math.V3(a.X*b.X, a.Y*b.Y, a.Z*b.Z)
}

// Box builds a box of the given size centred on center.
func Box(size, center math.Vec3, mat Material) *Mesh {
	half := size.Scale(0.5)
	m := &Mesh{Name: "box", Material: mat}
	corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

	for _, f := range boxFaces {
		base := uint32(len(m.Vertices))
		for _, c := range corners {
			dir := f.n.Add(f.u.Scale(c[0])).Add(f.v.Scale(c[1]))
			p := center.Add(mulComp(dir, half))
			m.Vertices = append(m.Vertices, Vertex{Position: p.Array(), Normal: f.n.Array()})
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	m.ComputeBounds()
	return m
}

// Cylinder builds a capped cylinder along Y.
func Cylinder(radius, height float32, segments int, center math.Vec3, mat Material) *Mesh {
	if segments < 3 {
		segments = 3
	}
	m := &Mesh{Name: "cylinder", Material: mat}
	h := height / 2

	ring := func(i int) (float32, float32) {
		theta := 2 * math32.Pi * float32(i) / float32(segments)
		return math32.Sin(theta), math32.Cos(theta)
	}

	// Side.
	for i := 0; i <= segments; i++ {
		s, c := ring(i)
		n := [3]float32{s, 0, c}
		m.Vertices = append(m.Vertices,
			Vertex{Position: center.Add(math.V3(radius*s, -h, radius*c)).Array(), Normal: n},
			Vertex{Position: center.Add(math.V3(radius*s, h, radius*c)).Array(), Normal: n},
		)
	}
	for i := 0; i < segments; i++ {
		b0, t0 := uint32(2*i), uint32(2*i+1)
		b1, t1 := b0+2, t0+2
		m.Indices = append(m.Indices, b0, b1, t1, b0, t1, t0)
	}

	// Caps.
	for _, y := range []float32{h, -h} {
		n := [3]float32{0, 1, 0}
		if y < 0 {
			n[1] = -1
		}
		mid := uint32(len(m.Vertices))
		m.Vertices = append(m.Vertices, Vertex{Position: center.Add(math.V3(0, y, 0)).Array(), Normal: n})
		for i := 0; i <= segments; i++ {
			s, c := ring(i)
			m.Vertices = append(m.Vertices, Vertex{Position: center.Add(math.V3(radius*s, y, radius*c)).Array(), Normal: n})
		}
		for i := uint32(0); i < uint32(segments); i++ {
			a, b := mid+1+i, mid+2+i
			if y > 0 {
				m.Indices = append(m.Indices, mid, a, b)
			} else {
				m.Indices = append(m.Indices, mid, b, a)
			}
		}
	}
	m.ComputeBounds()
	return m
}

// Plane builds a double-sided rectangle in the XY plane facing +Z.
func Plane(width, height float32, center math.Vec3, mat Material) *Mesh {
	mat.DoubleSided = true
	w, h := width/2, height/2
	n := [3]float32{0, 0, 1}
	m := &Mesh{Name: "plane", Material: mat}
	for _, c := range [4][2]float32{{-w, -h}, {w, -h}, {w, h}, {-w, h}} {
		m.Vertices = append(m.Vertices, Vertex{Position: center.Add(math.V3(c[0], c[1], 0)).Array(), Normal: n})
	}
	m.Indices = []uint32{0, 1, 2, 0, 2, 3}
	m.ComputeBounds()
	return m
}

// AxisAngle returns the quaternion (x, y, z, w) rotating angle radians
// around axis.
func AxisAngle(axis Axis, angle float32) [4]float32 {
	s, c := math32.Sincos(angle / 2)
	switch axis {
	case AxisX:
		return [4]float32{s, 0, 0, c}
	case AxisY:
		return [4]float32{0, s, 0, c}
	default:
		return [4]float32{0, 0, s, c}
	}
}
