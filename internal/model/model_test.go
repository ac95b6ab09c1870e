package model

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/showroom/pkg/math"
)

func near(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < 1e-4
}

func nearVec(a, b math.Vec3) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z)
}

func TestBoxGeometry(t *testing.T) {
	m := Box(math.V3(2, 4, 6), math.V3(1, 0, 0), DefaultMaterial())
	if len(m.Vertices) != 24 || len(m.Indices) != 36 {
		t.Fatalf("box has %d vertices, %d indices", len(m.Vertices), len(m.Indices))
	}
	if !nearVec(m.Bounds.Min, math.V3(0, -2, -3)) || !nearVec(m.Bounds.Max, math.V3(2, 2, 3)) {
		t.Errorf("bounds = %+v", m.Bounds)
	}
	assertOutwardWinding(t, m, math.V3(1, 0, 0))
}

func TestCylinderGeometry(t *testing.T) {
	m := Cylinder(0.4, 0.3, 16, math.Vec3{}, DefaultMaterial())
	if m.TriangleCount() != 16*4 {
		t.Errorf("triangles = %d, want 64", m.TriangleCount())
	}
	if !near(m.Bounds.Max.Y, 0.15) || !near(m.Bounds.Max.X, 0.4) {
		t.Errorf("bounds = %+v", m.Bounds)
	}
	assertOutwardWinding(t, m, math.Vec3{})
}

func TestPlaneIsDoubleSided(t *testing.T) {
	m := Plane(2.5, 0.8, math.Vec3{}, DefaultMaterial())
	if !m.Material.DoubleSided {
		t.Error("plane material should be double sided")
	}
	if m.TriangleCount() != 2 {
		t.Errorf("triangles = %d, want 2", m.TriangleCount())
	}
}

// assertOutwardWinding checks every triangle's geometric normal points away
// from the solid's center.
func assertOutwardWinding(t *testing.T, m *Mesh, center math.Vec3) {
	t.Helper()
	pos := func(i uint32) math.Vec3 {
		p := m.Vertices[i].Position
		return math.V3(p[0], p[1], p[2])
	}
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := pos(m.Indices[i]), pos(m.Indices[i+1]), pos(m.Indices[i+2])
		n := b.Sub(a).Cross(c.Sub(a))
		mid := a.Add(b).Add(c).Scale(1.0 / 3)
		if n.Dot(mid.Sub(center)) <= 0 {
			t.Fatalf("triangle %d winds inward", i/3)
		}
	}
}

func TestNodeTransforms(t *testing.T) {
	root := NewNode("root")
	root.Translation = math.V3(0, -0.8, 0)
	child := root.Add(NewNode("child"))
	child.Translation = math.V3(1, 0, 0)

	got := child.WorldMatrix().TransformPoint(math.Vec3{})
	if !nearVec(got, math.V3(1, -0.8, 0)) {
		t.Errorf("child origin = %v, want (1, -0.8, 0)", got)
	}

	child.SetAngle(AxisY, float32(gomath.Pi/2))
	if child.Angle(AxisY) != float32(gomath.Pi/2) || child.Rotation.X != 0 || child.Rotation.Z != 0 {
		t.Errorf("SetAngle touched other axes: %v", child.Rotation)
	}
	p := child.WorldMatrix().TransformPoint(math.V3(1, 0, 0))
	if !nearVec(p, math.V3(1, -0.8, -1)) {
		t.Errorf("rotated point = %v, want (1, -0.8, -1)", p)
	}
}

func TestBaseRotationComposesWithAnimatedRotation(t *testing.T) {
	n := NewNode("door")
	n.BaseRotation = AxisAngle(AxisY, float32(gomath.Pi/2))
	n.SetAngle(AxisY, float32(gomath.Pi/2))

	p := n.LocalMatrix().TransformPoint(math.V3(1, 0, 0))
	if !nearVec(p, math.V3(-1, 0, 0)) {
		t.Errorf("combined rotation = %v, want (-1, 0, 0)", p)
	}
}

func TestWalkAndFind(t *testing.T) {
	car := PlaceholderCar()

	var names []string
	car.Walk(func(n *Node) { names = append(names, n.Name) })
	if names[0] != "placeholder-car" {
		t.Errorf("walk should start at root, got %q", names[0])
	}

	for _, label := range []string{LabelLeftFront, LabelRightFront, LabelLeftRear, LabelRightRear} {
		if car.Find(label) == nil {
			t.Errorf("placeholder missing door %q", label)
		}
	}
	if car.Find("nope") != nil {
		t.Error("Find returned a node for an unknown name")
	}
}

func TestPlaceholderCar(t *testing.T) {
	a, b := PlaceholderCar(), PlaceholderCar()
	if a == b || a.Find(LabelLeftFront) == b.Find(LabelLeftFront) {
		t.Fatal("placeholder calls must return independent graphs")
	}

	nodes, meshes, tris := a.Stats()
	if nodes != 12 || meshes != 11 || tris == 0 {
		t.Errorf("stats = %d nodes, %d meshes, %d triangles", nodes, meshes, tris)
	}

	bounds := a.Bounds()
	if !bounds.Valid() {
		t.Fatal("placeholder bounds invalid")
	}
	size := bounds.Size()
	if size.X < 3 || size.Z < 5 || size.Y < 1.2 {
		t.Errorf("placeholder size = %v", size)
	}

	for _, n := range []*Node{a.Find(LabelLeftFront), a.Find(LabelRightRear)} {
		if n.Rotation != (math.Vec3{}) {
			t.Errorf("door %s starts rotated: %v", n.Name, n.Rotation)
		}
	}
}

func TestBoundsTransform(t *testing.T) {
	b := Bounds{Min: math.V3(-1, -1, -1), Max: math.V3(1, 1, 1)}
	moved := b.Transform(math.Translate(5, 0, 0))
	if !nearVec(moved.Center(), math.V3(5, 0, 0)) {
		t.Errorf("center = %v", moved.Center())
	}
	if EmptyBounds().Valid() {
		t.Error("empty bounds should be invalid")
	}
	if got := b.Union(EmptyBounds()); got != b {
		t.Errorf("union with empty = %+v", got)
	}
}

func TestParseAxis(t *testing.T) {
	for in, want := range map[string]Axis{"x": AxisX, "Y": AxisY, "z": AxisZ} {
		got, err := ParseAxis(in)
		if err != nil || got != want {
			t.Errorf("ParseAxis(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseAxis("w"); err == nil {
		t.Error("expected error for unknown axis")
	}
}
