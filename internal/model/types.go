// Package model holds the renderer-independent scene graph used for the
// car: nodes with animatable rotation, triangle meshes and materials.
package model

import "github.com/Faultbox/showroom/pkg/math"

// Vertex is a mesh vertex with position and normal.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
}

// Material is a small physically based material description.
type Material struct {
	Name         string
	BaseColor    [4]float32 // linear RGB, alpha is opacity
	Metalness    float32
	Roughness    float32
	Transmission float32
	Emissive     [3]float32
	DoubleSided  bool
}

// Transparent reports whether the material needs blending.
func (m Material) Transparent() bool {
	return m.BaseColor[3] < 1 || m.Transmission > 0
}

// DefaultMaterial is used for primitives without a material.
func DefaultMaterial() Material {
	return Material{
		Name:      "default",
		BaseColor: [4]float32{0.8, 0.8, 0.8, 1},
		Roughness: 0.5,
	}
}

// Mesh is an indexed triangle list with a single material.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
	Material Material
	Bounds   Bounds
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// ComputeBounds recomputes Bounds from the vertices.
func (m *Mesh) ComputeBounds() {
	b := EmptyBounds()
	for _, v := range m.Vertices {
		b = b.Extend(math.V3(v.Position[0], v.Position[1], v.Position[2]))
	}
	m.Bounds = b
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// EmptyBounds returns an inverted box that any point extends.
func EmptyBounds() Bounds {
	return Bounds{
		Min: math.V3(1e30, 1e30, 1e30),
		Max: math.V3(-1e30, -1e30, -1e30),
	}
}

// Valid reports whether the box contains at least one point.
func (b Bounds) Valid() bool {
	return b.Min.X <= b.Max.X && b.Min.Y <= b.Max.Y && b.Min.Z <= b.Max.Z
}

// Extend grows the box to include p.
func (b Bounds) Extend(p math.Vec3) Bounds {
	return Bounds{
		Min: math.V3(min(b.Min.X, p.X), min(b.Min.Y, p.Y), min(b.Min.Z, p.Z)),
		Max: math.V3(max(b.Max.X, p.X), max(b.Max.Y, p.Y), max(b.Max.Z, p.Z)),
	}
}

// Union returns the box enclosing both.
func (b Bounds) Union(o Bounds) Bounds {
	if !o.Valid() {
		return b
	}
	return b.Extend(o.Min).Extend(o.Max)
}

// Transform returns the box enclosing b's corners after m.
func (b Bounds) Transform(m math.Mat4) Bounds {
	if !b.Valid() {
		return b
	}
	out := EmptyBounds()
	for i := 0; i < 8; i++ {
		c := b.Min
		if i&1 != 0 {
			c.X = b.Max.X
		}
		if i&2 != 0 {
			c.Y = b.Max.Y
		}
		if i&4 != 0 {
			c.Z = b.Max.Z
		}
		out = out.Extend(m.TransformPoint(c))
	}
	return out
}

// Center returns the box center.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the box extents.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Radius returns half the diagonal.
func (b Bounds) Radius() float32 {
	return b.Size().Length() * 0.5
}
