// Package picking casts rays from the screen into the scene.
package picking

import (
	gomath "math"

	"github.com/Faultbox/showroom/pkg/math"
)

// Ray is a half-line with a normalized direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// AABB is an axis-aligned box.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// ScreenToRay converts a cursor position to a world-space ray. x and y are
// measured from the top-left corner of a width x height viewport.
func ScreenToRay(x, y, width, height float32, invViewProj math.Mat4) Ray {
	ndcX := 2*x/width - 1
	ndcY := 1 - 2*y/height

	near := invViewProj.TransformPoint(math.V3(ndcX, ndcY, -1))
	far := invViewProj.TransformPoint(math.V3(ndcX, ndcY, 1))

	return Ray{Origin: near, Direction: far.Sub(near).Normalize()}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// IntersectAABB returns the distance to the first hit. A ray starting
// inside the box hits at its exit.
func (r Ray) IntersectAABB(box AABB) (float32, bool) {
	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)

	o := r.Origin.Array()
	d := r.Direction.Array()
	lo := box.Min.Array()
	hi := box.Max.Array()

	for i := 0; i < 3; i++ {
		if d[i] == 0 {
			if o[i] < lo[i] || o[i] > hi[i] {
				return 0, false
			}
			continue
		}
		t1 := (lo[i] - o[i]) / d[i]
		t2 := (hi[i] - o[i]) / d[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// Nearest returns the index of the closest box the ray hits.
func (r Ray) Nearest(boxes []AABB) (int, float32, bool) {
	best, bestT := -1, float32(0)
	for i, b := range boxes {
		t, ok := r.IntersectAABB(b)
		if ok && (best < 0 || t < bestT) {
			best, bestT = i, t
		}
	}
	return best, bestT, best >= 0
}
