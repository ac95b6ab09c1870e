package plexus

import "github.com/Faultbox/showroom/pkg/math"

// FloatsPerEdge is the number of floats one edge occupies in a segment
// buffer: two xyz endpoints.
const FloatsPerEdge = 6

// Edge is an unordered pair of point indices, stored with I < J.
type Edge struct {
	I, J int
}

// Graph is a proximity graph snapshot. It is derived wholesale from the
// point positions and carries no identity between rebuilds.
type Graph struct {
	Edges []Edge

	// Segments holds both endpoints of every edge, ready for a GL_LINES
	// vertex buffer.
	Segments []float32
}

// BuildGraph returns every pair i<j whose distance is strictly below
// maxDistance.
func BuildGraph(points []math.Vec3, maxDistance float32) Graph {
	var g Graph
	g.Rebuild(points, maxDistance)
	return g
}

// Rebuild replaces the graph contents, reusing its storage.
//
// Distances are compared squared. Rebuilding twice from the same points
// produces identical output.
func (g *Graph) Rebuild(points []math.Vec3, maxDistance float32) {
	g.Edges = g.Edges[:0]
	g.Segments = g.Segments[:0]

	limit := maxDistance * maxDistance
	for i := 0; i < len(points); i++ {
		a := points[i]
		for j := i + 1; j < len(points); j++ {
			b := points[j]
			dx, dy, dz := a.X-b.X, a.Y-b.Y, a.Z-b.Z
			if dx*dx+dy*dy+dz*dz >= limit {
				continue
			}
			g.Edges = append(g.Edges, Edge{I: i, J: j})
			g.Segments = append(g.Segments, a.X, a.Y, a.Z, b.X, b.Y, b.Z)
		}
	}
}

// Len returns the number of edges.
func (g *Graph) Len() int {
	return len(g.Edges)
}
