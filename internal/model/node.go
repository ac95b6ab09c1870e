package model

import (
	"fmt"
	"strings"

	"github.com/Faultbox/showroom/pkg/math"
)

// Axis selects a rotation axis.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// ParseAxis parses "x", "y" or "z".
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(s) {
	case "x":
		return AxisX, nil
	case "y":
		return AxisY, nil
	case "z":
		return AxisZ, nil
	}
	return 0, fmt.Errorf("unknown axis %q", s)
}

// Node is a scene graph node.
//
// The local transform is T * R(BaseRotation) * R(Rotation) * S, where
// BaseRotation is the rest orientation from the source file and Rotation
// holds the XYZ Euler angles driven by animations. Rotation starts at zero.
type Node struct {
	Name         string
	Translation  math.Vec3
	BaseRotation [4]float32 // quaternion x, y, z, w
	Rotation     math.Vec3
	Scale        math.Vec3

	Meshes   []*Mesh
	Children []*Node
	Parent   *Node
}

// NewNode returns a node with identity transform.
func NewNode(name string) *Node {
	return &Node{
		Name:         name,
		BaseRotation: [4]float32{0, 0, 0, 1},
		Scale:        math.V3(1, 1, 1),
	}
}

// Add attaches child to n and returns child.
func (n *Node) Add(child *Node) *Node {
	child.Parent = n
	n.Children = append(n.Children, child)
	return child
}

// AddMesh attaches a mesh to n and returns n.
func (n *Node) AddMesh(m *Mesh) *Node {
	n.Meshes = append(n.Meshes, m)
	return n
}

// Angle returns the animated rotation around axis.
func (n *Node) Angle(axis Axis) float32 {
	switch axis {
	case AxisX:
		return n.Rotation.X
	case AxisY:
		return n.Rotation.Y
	default:
		return n.Rotation.Z
	}
}

// SetAngle sets the animated rotation around axis.
func (n *Node) SetAngle(axis Axis, v float32) {
	switch axis {
	case AxisX:
		n.Rotation.X = v
	case AxisY:
		n.Rotation.Y = v
	default:
		n.Rotation.Z = v
	}
}

// LocalMatrix returns the node transform relative to its parent.
func (n *Node) LocalMatrix() math.Mat4 {
	r := math.FromQuat(n.BaseRotation).Mul(math.RotateEuler(n.Rotation))
	return math.Compose(n.Translation, r, n.Scale)
}

// WorldMatrix returns the transform from node space to world space.
func (n *Node) WorldMatrix() math.Mat4 {
	m := n.LocalMatrix()
	for p := n.Parent; p != nil; p = p.Parent {
		m = p.LocalMatrix().Mul(m)
	}
	return m
}

// Walk visits n and its descendants depth-first, parents before children.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// WalkWorld is like Walk but also passes each node's world matrix,
// computed incrementally from parent.
func (n *Node) WalkWorld(parent math.Mat4, fn func(n *Node, world math.Mat4)) {
	world := parent.Mul(n.LocalMatrix())
	fn(n, world)
	for _, c := range n.Children {
		c.WalkWorld(world, fn)
	}
}

// Find returns the first node named name, or nil.
func (n *Node) Find(name string) *Node {
	var found *Node
	n.Walk(func(c *Node) {
		if found == nil && c.Name == name {
			found = c
		}
	})
	return found
}

// Bounds returns the world-space box of every mesh under n.
func (n *Node) Bounds() Bounds {
	b := EmptyBounds()
	parent := math.Identity()
	if n.Parent != nil {
		parent = n.Parent.WorldMatrix()
	}
	n.WalkWorld(parent, func(c *Node, world math.Mat4) {
		for _, m := range c.Meshes {
			b = b.Union(m.Bounds.Transform(world))
		}
	})
	return b
}

// Stats counts nodes, meshes and triangles under n.
func (n *Node) Stats() (nodes, meshes, triangles int) {
	n.Walk(func(c *Node) {
		nodes++
		meshes += len(c.Meshes)
		for _, m := range c.Meshes {
			triangles += m.TriangleCount()
		}
	})
	return
}
