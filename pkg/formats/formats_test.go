package formats

import (
	"errors"
	gomath "math"
	"os"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// writeTestGLB builds a two-node GLB: a body with a door child.
func writeTestGLB(t *testing.T) []byte {
	t.Helper()

	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0}})
	idx := modeler.WriteIndices(doc, []uint16{0, 1, 2, 2, 1, 3})

	doc.Materials = append(doc.Materials, &gltf.Material{Name: "paint", DoubleSided: true})
	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name: "panel",
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(idx),
			Attributes: map[string]int{"POSITION": pos},
			Material:   gltf.Index(0),
		}},
	})
	doc.Nodes = append(doc.Nodes,
		&gltf.Node{
			Name:        "Body",
			Mesh:        gltf.Index(0),
			Children:    []int{1},
			Translation: [3]float64{0, -0.5, 0},
			Rotation:    [4]float64{0, 0, 0, 1},
			Scale:       [3]float64{1, 1, 1},
		},
		&gltf.Node{
			Name:        "Puerta-izquierda",
			Mesh:        gltf.Index(0),
			Translation: [3]float64{1.5, 0, -1},
			Rotation:    [4]float64{0, gomath.Sqrt2 / 2, 0, gomath.Sqrt2 / 2},
			Scale:       [3]float64{2, 2, 2},
		},
	)
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	path := filepath.Join(t.TempDir(), "car.glb")
	if err := gltf.SaveBinary(doc, path); err != nil {
		t.Fatalf("SaveBinary: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestParseGLB(t *testing.T) {
	root, err := ParseGLB(writeTestGLB(t))
	if err != nil {
		t.Fatalf("ParseGLB: %v", err)
	}

	body := root.Find("Body")
	door := root.Find("Puerta-izquierda")
	if body == nil || door == nil {
		t.Fatal("expected Body and Puerta-izquierda nodes")
	}
	if door.Parent != body {
		t.Error("door should be parented to body")
	}
	if door.Translation.X != 1.5 || door.Scale.Y != 2 {
		t.Errorf("door TRS = %v / %v", door.Translation, door.Scale)
	}
	if door.Rotation.Y != 0 {
		t.Error("animated rotation should start at zero")
	}

	if len(body.Meshes) != 1 {
		t.Fatalf("body has %d meshes, want 1", len(body.Meshes))
	}
	m := body.Meshes[0]
	if len(m.Vertices) != 4 || len(m.Indices) != 6 {
		t.Errorf("mesh has %d vertices, %d indices", len(m.Vertices), len(m.Indices))
	}
	if m.Material.Name != "paint" || !m.Material.DoubleSided {
		t.Errorf("material = %+v", m.Material)
	}
	// Missing normals are generated facing +Z for this quad.
	if n := m.Vertices[0].Normal; n[2] < 0.99 {
		t.Errorf("generated normal = %v, want +Z", n)
	}
	if body.Meshes[0] != door.Meshes[0] {
		t.Error("nodes referencing the same mesh should share it")
	}

	_, meshes, tris := root.Stats()
	if meshes != 2 || tris != 4 {
		t.Errorf("stats: %d meshes, %d triangles", meshes, tris)
	}
}

func TestParseGLBErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"short", []byte("glT"), ErrTruncatedGLBData},
		{"magic", []byte("GRSM\x02\x00\x00\x00\x0c\x00\x00\x00"), ErrInvalidGLBMagic},
		{"version", []byte("glTF\x01\x00\x00\x00\x0c\x00\x00\x00"), ErrUnsupportedGLBVersion},
		{"length", []byte("glTF\x02\x00\x00\x00\xff\x00\x00\x00"), ErrTruncatedGLBData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseGLB(tt.data); !errors.Is(err, tt.want) {
				t.Errorf("ParseGLB() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoadGLBMissing(t *testing.T) {
	if _, err := LoadGLB(filepath.Join(t.TempDir(), "none.glb")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadGLB error = %v, want ErrNotExist", err)
	}
}

func TestLoadRadianceMissing(t *testing.T) {
	if _, err := LoadRadiance(filepath.Join(t.TempDir(), "none.hdr")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadRadiance error = %v, want ErrNotExist", err)
	}
}

// flatRadiance builds an uncompressed 2x2 RGBE image.
func flatRadiance() []byte {
	header := "#?RADIANCE\nFORMAT=32-bit_rle_rgbe\n\n-Y 2 +X 2\n"
	pixels := []byte{
		128, 64, 32, 129, // ~(1, 0.5, 0.25)
		128, 128, 128, 129,
		0, 0, 0, 0,
		128, 0, 0, 131, // ~(4, 0, 0)
	}
	return append([]byte(header), pixels...)
}

func TestParseRadiance(t *testing.T) {
	img, err := ParseRadiance(flatRadiance())
	if err != nil {
		t.Fatalf("ParseRadiance: %v", err)
	}
	if img.Width != 2 || img.Height != 2 {
		t.Fatalf("size = %dx%d, want 2x2", img.Width, img.Height)
	}

	near := func(a, b float32) bool { return gomath.Abs(float64(a-b)) < 0.02 }

	p := img.At(0, 0)
	if !near(p[0], 1) || !near(p[1], 0.5) || !near(p[2], 0.25) {
		t.Errorf("pixel (0,0) = %v", p)
	}
	if p := img.At(0, 1); p != [3]float32{} {
		t.Errorf("zero exponent pixel = %v, want black", p)
	}
	if peak := img.MaxLuminance(); peak < 0.8 {
		t.Errorf("MaxLuminance() = %f, want bright red sample", peak)
	}
}

func TestParseRadianceInvalid(t *testing.T) {
	if _, err := ParseRadiance([]byte("\x89PNG....")); !errors.Is(err, ErrInvalidRadianceMagic) {
		t.Errorf("error = %v, want ErrInvalidRadianceMagic", err)
	}
}
