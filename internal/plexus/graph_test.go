package plexus

import (
	"math/rand/v2"
	"reflect"
	"testing"

	"github.com/Faultbox/showroom/pkg/math"
)

func randomPoints(n int, seed uint64) []math.Vec3 {
	rng := rand.New(rand.NewPCG(seed, seed))
	pts := make([]math.Vec3, n)
	for i := range pts {
		pts[i] = math.V3((rng.Float32()-0.5)*12, (rng.Float32()-0.5)*12, (rng.Float32()-0.5)*12)
	}
	return pts
}

// bruteForce computes the expected pair set with true Euclidean distance.
func bruteForce(pts []math.Vec3, maxDistance float32) map[Edge]bool {
	want := make(map[Edge]bool)
	for i := range pts {
		for j := range pts {
			if i != j && pts[i].Distance(pts[j]) < maxDistance {
				a, b := min(i, j), max(i, j)
				want[Edge{a, b}] = true
			}
		}
	}
	return want
}

func TestBuildGraphMatchesBruteForce(t *testing.T) {
	for _, seed := range []uint64{1, 2, 3, 42} {
		pts := randomPoints(120, seed)
		g := BuildGraph(pts, 2.5)
		want := bruteForce(pts, 2.5)

		seen := make(map[Edge]bool)
		for _, e := range g.Edges {
			if e.I >= e.J {
				t.Fatalf("seed %d: edge %v not ordered", seed, e)
			}
			if seen[e] {
				t.Fatalf("seed %d: edge %v emitted twice", seed, e)
			}
			seen[e] = true
			if !want[e] {
				t.Errorf("seed %d: unexpected edge %v (distance %f)", seed, e, pts[e.I].Distance(pts[e.J]))
			}
		}
		if len(seen) != len(want) {
			t.Errorf("seed %d: got %d edges, want %d", seed, len(seen), len(want))
		}
		if len(g.Segments) != len(g.Edges)*FloatsPerEdge {
			t.Errorf("seed %d: %d floats for %d edges", seed, len(g.Segments), len(g.Edges))
		}
	}
}

func TestBuildGraphThresholdIsStrict(t *testing.T) {
	tests := []struct {
		name string
		pts  []math.Vec3
		want int
	}{
		{"exactly at threshold", []math.Vec3{math.V3(0, 0, 0), math.V3(2, 0, 0)}, 0},
		{"just inside", []math.Vec3{math.V3(0, 0, 0), math.V3(1.999, 0, 0)}, 1},
		{"outside", []math.Vec3{math.V3(0, 0, 0), math.V3(0, 3, 0)}, 0},
		{"coincident", []math.Vec3{math.V3(1, 1, 1), math.V3(1, 1, 1)}, 1},
		{"empty", nil, 0},
		{"single", []math.Vec3{math.V3(0, 0, 0)}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := BuildGraph(tt.pts, 2)
			if g.Len() != tt.want {
				t.Errorf("got %d edges, want %d", g.Len(), tt.want)
			}
		})
	}
}

func TestBuildGraphSegmentsCarryEndpoints(t *testing.T) {
	pts := []math.Vec3{math.V3(0, 0, 0), math.V3(5, 5, 5), math.V3(1, 0, 0)}
	g := BuildGraph(pts, 2)
	if g.Len() != 1 || g.Edges[0] != (Edge{0, 2}) {
		t.Fatalf("edges = %v, want [{0 2}]", g.Edges)
	}
	want := []float32{0, 0, 0, 1, 0, 0}
	if !reflect.DeepEqual(g.Segments, want) {
		t.Errorf("segments = %v, want %v", g.Segments, want)
	}
}

func TestRebuildIsDeterministic(t *testing.T) {
	pts := randomPoints(120, 7)
	first := BuildGraph(pts, 2.5)

	var g Graph
	g.Rebuild(pts, 2.5)
	g.Rebuild(pts, 2.5)

	if !reflect.DeepEqual(first.Edges, g.Edges) || !reflect.DeepEqual(first.Segments, g.Segments) {
		t.Error("rebuilding from identical points changed the output")
	}
}

func TestRebuildReplacesPrevious(t *testing.T) {
	var g Graph
	g.Rebuild([]math.Vec3{math.V3(0, 0, 0), math.V3(1, 0, 0), math.V3(0, 1, 0)}, 5)
	if g.Len() != 3 {
		t.Fatalf("expected 3 edges, got %d", g.Len())
	}
	g.Rebuild([]math.Vec3{math.V3(0, 0, 0), math.V3(10, 0, 0)}, 5)
	if g.Len() != 0 || len(g.Segments) != 0 {
		t.Errorf("stale edges survived rebuild: %v", g.Edges)
	}
}

func BenchmarkBuildGraph120(b *testing.B) {
	pts := randomPoints(120, 1)
	var g Graph
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.Rebuild(pts, 2.5)
	}
}
