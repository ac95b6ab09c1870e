package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/showroom/internal/model"
	"github.com/Faultbox/showroom/pkg/math"
)

// GLB format errors.
var (
	ErrInvalidGLBMagic       = errors.New("invalid GLB magic: expected 'glTF'")
	ErrUnsupportedGLBVersion = errors.New("unsupported GLB version")
	ErrTruncatedGLBData      = errors.New("truncated GLB data")
	ErrEmptyScene            = errors.New("glTF scene has no nodes")
	ErrCyclicNodes           = errors.New("glTF node hierarchy contains a cycle")
	ErrMissingPositions      = errors.New("glTF primitive has no POSITION attribute")
)

const glbHeaderSize = 12

// LoadGLB loads a binary glTF file from disk.
func LoadGLB(path string) (*model.Node, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return ParseGLB(data)
}

// ParseGLB decodes a binary glTF 2.0 file into a scene graph rooted at a
// node named after the scene. Node names are kept verbatim.
func ParseGLB(data []byte) (*model.Node, error) {
	if len(data) < glbHeaderSize {
		return nil, ErrTruncatedGLBData
	}
	if !bytes.Equal(data[:4], []byte("glTF")) {
		return nil, ErrInvalidGLBMagic
	}
	if v := binary.LittleEndian.Uint32(data[4:8]); v != 2 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedGLBVersion, v)
	}
	if n := binary.LittleEndian.Uint32(data[8:12]); int(n) > len(data) {
		return nil, fmt.Errorf("%w: header declares %d bytes, have %d", ErrTruncatedGLBData, n, len(data))
	}

	doc := new(gltf.Document)
	if err := gltf.NewDecoder(bytes.NewReader(data)).Decode(doc); err != nil {
		return nil, fmt.Errorf("decoding glTF: %w", err)
	}

	b := &sceneBuilder{
		doc:     doc,
		meshes:  make(map[int][]*model.Mesh),
		visited: make(map[int]bool),
	}
	return b.build()
}

type sceneBuilder struct {
	doc     *gltf.Document
	meshes  map[int][]*model.Mesh
	visited map[int]bool
}

func (b *sceneBuilder) build() (*model.Node, error) {
	doc := b.doc

	var roots []int
	name := "scene"
	if len(doc.Scenes) > 0 {
		idx := 0
		if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
			idx = *doc.Scene
		}
		roots = doc.Scenes[idx].Nodes
		if doc.Scenes[idx].Name != "" {
			name = doc.Scenes[idx].Name
		}
	} else {
		roots = topLevelNodes(doc)
	}
	if len(roots) == 0 {
		return nil, ErrEmptyScene
	}

	root := model.NewNode(name)
	for _, idx := range roots {
		child, err := b.node(idx)
		if err != nil {
			return nil, err
		}
		root.Add(child)
	}
	return root, nil
}

// topLevelNodes returns nodes no other node lists as a child.
func topLevelNodes(doc *gltf.Document) []int {
	isChild := make(map[int]bool)
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			isChild[c] = true
		}
	}
	var out []int
	for i := range doc.Nodes {
		if !isChild[i] {
			out = append(out, i)
		}
	}
	return out
}

func (b *sceneBuilder) node(idx int) (*model.Node, error) {
	if idx < 0 || idx >= len(b.doc.Nodes) {
		return nil, fmt.Errorf("node index %d out of range", idx)
	}
	if b.visited[idx] {
		return nil, fmt.Errorf("%w at node %d", ErrCyclicNodes, idx)
	}
	b.visited[idx] = true

	gn := b.doc.Nodes[idx]
	n := model.NewNode(gn.Name)
	applyTransform(n, gn)

	if gn.Mesh != nil {
		meshes, err := b.mesh(*gn.Mesh)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", gn.Name, err)
		}
		n.Meshes = meshes
	}

	for _, c := range gn.Children {
		child, err := b.node(c)
		if err != nil {
			return nil, err
		}
		n.Add(child)
	}
	return n, nil
}

// applyTransform copies either the TRS properties or a decomposed matrix.
func applyTransform(n *model.Node, gn *gltf.Node) {
	var m mgl32.Mat4
	hasMatrix := false
	for i, v := range gn.Matrix {
		m[i] = float32(v)
		if v != 0 {
			hasMatrix = true
		}
	}
	if hasMatrix && m != mgl32.Ident4() {
		t, q, s := decompose(m)
		n.Translation, n.BaseRotation, n.Scale = t, q, s
		return
	}

	n.Translation = math.V3(float32(gn.Translation[0]), float32(gn.Translation[1]), float32(gn.Translation[2]))
	n.BaseRotation = [4]float32{
		float32(gn.Rotation[0]), float32(gn.Rotation[1]),
		float32(gn.Rotation[2]), float32(gn.Rotation[3]),
	}
	s := math.V3(float32(gn.Scale[0]), float32(gn.Scale[1]), float32(gn.Scale[2]))
	if s == (math.Vec3{}) {
		s = math.V3(1, 1, 1)
	}
	n.Scale = s
}

func decompose(m mgl32.Mat4) (math.Vec3, [4]float32, math.Vec3) {
	t := math.V3(m[12], m[13], m[14])
	s := math.V3(m.Col(0).Vec3().Len(), m.Col(1).Vec3().Len(), m.Col(2).Vec3().Len())

	r := mgl32.Ident4()
	for col, sc := range []float32{s.X, s.Y, s.Z} {
		if sc == 0 {
			continue
		}
		c := m.Col(col).Vec3().Mul(1 / sc)
		r.SetCol(col, c.Vec4(0))
	}
	q := mgl32.Mat4ToQuat(r).Normalize()
	return t, [4]float32{q.V[0], q.V[1], q.V[2], q.W}, s
}

func (b *sceneBuilder) mesh(idx int) ([]*model.Mesh, error) {
	if cached, ok := b.meshes[idx]; ok {
		return cached, nil
	}
	if idx < 0 || idx >= len(b.doc.Meshes) {
		return nil, fmt.Errorf("mesh index %d out of range", idx)
	}

	gm := b.doc.Meshes[idx]
	var out []*model.Mesh
	for i, p := range gm.Primitives {
		if p.Mode != gltf.PrimitiveTriangles {
			continue
		}
		m, err := b.primitive(p)
		if err != nil {
			return nil, fmt.Errorf("mesh %q primitive %d: %w", gm.Name, i, err)
		}
		m.Name = gm.Name
		out = append(out, m)
	}
	b.meshes[idx] = out
	return out, nil
}

func (b *sceneBuilder) primitive(p *gltf.Primitive) (*model.Mesh, error) {
	doc := b.doc

	posIdx, ok := p.Attributes["POSITION"]
	if !ok {
		return nil, ErrMissingPositions
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("reading positions: %w", err)
	}

	var normals [][3]float32
	if nIdx, ok := p.Attributes["NORMAL"]; ok {
		normals, err = modeler.ReadNormal(doc, doc.Accessors[nIdx], nil)
		if err != nil {
			return nil, fmt.Errorf("reading normals: %w", err)
		}
	}

	var indices []uint32
	if p.Indices != nil {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*p.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("reading indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	for _, ix := range indices {
		if int(ix) >= len(positions) {
			return nil, fmt.Errorf("index %d out of range (%d vertices)", ix, len(positions))
		}
	}

	if len(normals) != len(positions) {
		normals = smoothNormals(positions, indices)
	}

	m := &model.Mesh{
		Vertices: make([]model.Vertex, len(positions)),
		Indices:  indices,
		Material: model.DefaultMaterial(),
	}
	for i := range positions {
		m.Vertices[i] = model.Vertex{Position: positions[i], Normal: normals[i]}
	}
	if p.Material != nil && *p.Material < len(doc.Materials) {
		m.Material = convertMaterial(doc.Materials[*p.Material])
	}
	m.ComputeBounds()
	return m, nil
}

func convertMaterial(gm *gltf.Material) model.Material {
	mat := model.Material{
		Name:        gm.Name,
		BaseColor:   [4]float32{1, 1, 1, 1},
		Metalness:   1,
		Roughness:   1,
		DoubleSided: gm.DoubleSided,
	}
	if pbr := gm.PBRMetallicRoughness; pbr != nil {
		c := pbr.BaseColorFactorOrDefault()
		mat.BaseColor = [4]float32{float32(c[0]), float32(c[1]), float32(c[2]), float32(c[3])}
		mat.Metalness = float32(pbr.MetallicFactorOrDefault())
		mat.Roughness = float32(pbr.RoughnessFactorOrDefault())
	}
	if gm.AlphaMode != gltf.AlphaBlend {
		mat.BaseColor[3] = 1
	}
	for i, e := range gm.EmissiveFactor {
		mat.Emissive[i] = float32(e)
	}
	return mat
}

// smoothNormals averages face normals into vertex normals.
func smoothNormals(positions [][3]float32, indices []uint32) [][3]float32 {
	acc := make([]math.Vec3, len(positions))
	at := func(i uint32) math.Vec3 {
		p := positions[i]
		return math.V3(p[0], p[1], p[2])
	}
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		n := at(b).Sub(at(a)).Cross(at(c).Sub(at(a)))
		acc[a] = acc[a].Add(n)
		acc[b] = acc[b].Add(n)
		acc[c] = acc[c].Add(n)
	}
	out := make([][3]float32, len(positions))
	for i, n := range acc {
		n = n.Normalize()
		if n == (math.Vec3{}) {
			n = math.V3(0, 1, 0)
		}
		out[i] = n.Array()
	}
	return out
}
