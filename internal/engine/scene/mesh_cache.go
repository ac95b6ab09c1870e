package scene

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/showroom/internal/model"
)

// gpuMesh is an uploaded model.Mesh.
type gpuMesh struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
}

// MeshCache uploads meshes on first use and keeps them keyed by identity.
type MeshCache struct {
	meshes map[*model.Mesh]*gpuMesh
}

// NewMeshCache creates an empty cache.
func NewMeshCache() *MeshCache {
	return &MeshCache{meshes: make(map[*model.Mesh]*gpuMesh)}
}

// Get returns the GPU copy of m, uploading it if needed.
func (c *MeshCache) Get(m *model.Mesh) *gpuMesh {
	if g, ok := c.meshes[m]; ok {
		return g
	}
	g := upload(m)
	c.meshes[m] = g
	return g
}

// Len returns the number of uploaded meshes.
func (c *MeshCache) Len() int {
	return len(c.meshes)
}

// Retain drops every mesh not reachable from root.
func (c *MeshCache) Retain(root *model.Node) {
	live := make(map[*model.Mesh]bool)
	if root != nil {
		root.Walk(func(n *model.Node) {
			for _, m := range n.Meshes {
				live[m] = true
			}
		})
	}
	for m, g := range c.meshes {
		if !live[m] {
			g.destroy()
			delete(c.meshes, m)
		}
	}
}

// Destroy releases every mesh.
func (c *MeshCache) Destroy() {
	for m, g := range c.meshes {
		g.destroy()
		delete(c.meshes, m)
	}
}

const vertexSize = int(unsafe.Sizeof(model.Vertex{}))

func upload(m *model.Mesh) *gpuMesh {
	g := &gpuMesh{indexCount: int32(len(m.Indices))}
	if len(m.Vertices) == 0 || len(m.Indices) == 0 {
		return g
	}

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*vertexSize, unsafe.Pointer(&m.Vertices[0]), gl.STATIC_DRAW)

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(vertexSize), 3*4)
	gl.EnableVertexAttribArray(1)

	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	return g
}

func (g *gpuMesh) draw() {
	if g.vao == 0 {
		return
	}
	gl.BindVertexArray(g.vao)
	gl.DrawElements(gl.TRIANGLES, g.indexCount, gl.UNSIGNED_INT, nil)
}

func (g *gpuMesh) destroy() {
	if g.vao != 0 {
		gl.DeleteVertexArrays(1, &g.vao)
	}
	if g.vbo != 0 {
		gl.DeleteBuffers(1, &g.vbo)
	}
	if g.ebo != 0 {
		gl.DeleteBuffers(1, &g.ebo)
	}
}
