package picking

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/showroom/pkg/math"
)

func near(a, b float32) bool {
	return math32.Abs(a-b) < 1e-3
}

func TestIntersectAABB(t *testing.T) {
	box := AABB{Min: math.V3(-1, -1, -1), Max: math.V3(1, 1, 1)}

	tests := []struct {
		name  string
		ray   Ray
		hit   bool
		wantT float32
	}{
		{"front", Ray{math.V3(0, 0, 5), math.V3(0, 0, -1)}, true, 4},
		{"inside", Ray{math.V3(0, 0, 0), math.V3(1, 0, 0)}, true, 1},
		{"behind", Ray{math.V3(0, 0, 5), math.V3(0, 0, 1)}, false, 0},
		{"miss", Ray{math.V3(3, 0, 5), math.V3(0, 0, -1)}, false, 0},
		{"parallel outside", Ray{math.V3(0, 2, 5), math.V3(0, 0, -1)}, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.ray.IntersectAABB(box)
			if ok != tt.hit {
				t.Fatalf("hit = %v, want %v", ok, tt.hit)
			}
			if ok && !near(got, tt.wantT) {
				t.Errorf("t = %v, want %v", got, tt.wantT)
			}
		})
	}
}

func TestNearest(t *testing.T) {
	r := Ray{Origin: math.V3(0, 0, 10), Direction: math.V3(0, 0, -1)}
	boxes := []AABB{
		{Min: math.V3(-1, -1, -1), Max: math.V3(1, 1, 1)},
		{Min: math.V3(-1, -1, 3), Max: math.V3(1, 1, 4)},
		{Min: math.V3(5, 5, 5), Max: math.V3(6, 6, 6)},
	}

	i, d, ok := r.Nearest(boxes)
	if !ok || i != 1 || !near(d, 6) {
		t.Errorf("Nearest = %d, %v, %v; want 1, 6, true", i, d, ok)
	}

	if _, _, ok := r.Nearest(boxes[2:]); ok {
		t.Error("expected no hit")
	}
}

func TestScreenToRayCenter(t *testing.T) {
	view := math.LookAt(math.V3(0, 0, 5), math.V3(0, 0, 0), math.V3(0, 1, 0))
	proj := math.Perspective(math32.Pi/3, 1, 0.1, 100)
	inv := proj.Mul(view).Inverse()

	r := ScreenToRay(400, 400, 800, 800, inv)
	if !near(r.Direction.X, 0) || !near(r.Direction.Y, 0) || math32.Abs(r.Direction.Z+1) > 1e-2 {
		t.Errorf("direction = %+v, want (0,0,-1)", r.Direction)
	}
	if r.Origin.Z < 4.8 || r.Origin.Z > 5 {
		t.Errorf("origin z = %v, want near plane at 4.9", r.Origin.Z)
	}

	// Upper half of the screen points up.
	up := ScreenToRay(400, 100, 800, 800, inv)
	if up.Direction.Y <= 0 {
		t.Errorf("top of screen direction = %+v", up.Direction)
	}
}
