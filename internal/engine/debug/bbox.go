package debug

import (
	"github.com/Faultbox/showroom/internal/model"
)

// BBoxWireframeVertexCount is the number of vertices for a bbox wireframe (12 edges × 2).
const BBoxWireframeVertexCount = 24

// DefaultBBoxPadding is the default padding for highlighted door boxes.
const DefaultBBoxPadding = 0.02

// BBoxWireframe returns line vertices for the edges of b expanded by
// padding, as [x, y, z] per vertex.
func BBoxWireframe(b model.Bounds, padding float32) []float32 {
	if !b.Valid() {
		return nil
	}
	minX, minY, minZ := b.Min.X-padding, b.Min.Y-padding, b.Min.Z-padding
	maxX, maxY, maxZ := b.Max.X+padding, b.Max.Y+padding, b.Max.Z+padding

	return []float32{
		// Bottom face
		minX, minY, minZ, maxX, minY, minZ,
		maxX, minY, minZ, maxX, minY, maxZ,
		maxX, minY, maxZ, minX, minY, maxZ,
		minX, minY, maxZ, minX, minY, minZ,
		// Top face
		minX, maxY, minZ, maxX, maxY, minZ,
		maxX, maxY, minZ, maxX, maxY, maxZ,
		maxX, maxY, maxZ, minX, maxY, maxZ,
		minX, maxY, maxZ, minX, maxY, minZ,
		// Vertical edges
		minX, minY, minZ, minX, maxY, minZ,
		maxX, minY, minZ, maxX, maxY, minZ,
		maxX, minY, maxZ, maxX, maxY, maxZ,
		minX, minY, maxZ, minX, maxY, maxZ,
	}
}

// NodeWireframes returns the world-space wireframes of the given nodes,
// concatenated. Nil nodes are skipped.
func NodeWireframes(nodes []*model.Node, padding float32) []float32 {
	var out []float32
	for _, n := range nodes {
		if n == nil {
			continue
		}
		out = append(out, BBoxWireframe(n.Bounds(), padding)...)
	}
	return out
}
