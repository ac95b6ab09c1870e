// Package plexus implements the animated point cloud and the proximity
// graph drawn between nearby points.
package plexus

import (
	"math/rand/v2"

	"github.com/Faultbox/showroom/pkg/math"
)

// Field is a fixed-size point cloud rotated as a whole.
//
// Positions are recomputed from the immutable base layout every tick, so
// long sessions do not accumulate rotation drift.
type Field struct {
	base      []math.Vec3
	positions []math.Vec3

	// Spin is the angular velocity around X and Y, in rad/s.
	Spin math.Vec3

	angle math.Vec3
}

// NewField scatters count points uniformly inside a cube of the given edge
// length centred on the origin. The same seed always yields the same layout.
func NewField(count int, spread float32, seed int64) *Field {
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))

	f := &Field{
		base:      make([]math.Vec3, count),
		positions: make([]math.Vec3, count),
	}
	for i := range f.base {
		f.base[i] = math.Vec3{
			X: (rng.Float32() - 0.5) * spread,
			Y: (rng.Float32() - 0.5) * spread,
			Z: (rng.Float32() - 0.5) * spread,
		}
	}
	copy(f.positions, f.base)
	return f
}

// NewFieldFrom builds a field over an explicit layout.
func NewFieldFrom(points []math.Vec3) *Field {
	f := &Field{
		base:      append([]math.Vec3(nil), points...),
		positions: make([]math.Vec3, len(points)),
	}
	copy(f.positions, f.base)
	return f
}

// Len returns the fixed point count.
func (f *Field) Len() int {
	return len(f.base)
}

// Positions returns the current, rotated positions. The slice is owned by
// the field and overwritten by Rotate.
func (f *Field) Positions() []math.Vec3 {
	return f.positions
}

// Angle returns the accumulated rotation.
func (f *Field) Angle() math.Vec3 {
	return f.angle
}

// Rotate advances the whole set by Spin*dt and refreshes positions.
func (f *Field) Rotate(dt float32) {
	f.angle = f.angle.Add(f.Spin.Scale(dt))
	rot := math.RotateEuler(f.angle)
	for i, p := range f.base {
		f.positions[i] = rot.TransformPoint(p)
	}
}
