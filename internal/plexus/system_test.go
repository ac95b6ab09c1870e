package plexus

import (
	"testing"
	"time"

	"github.com/Faultbox/showroom/pkg/math"
)

func TestCadence(t *testing.T) {
	c := NewCadence(500 * time.Millisecond)

	steps := []struct {
		dt   time.Duration
		want bool
	}{
		{200 * time.Millisecond, false},
		{200 * time.Millisecond, false},
		{100 * time.Millisecond, true},  // 500 reached exactly
		{499 * time.Millisecond, false}, // carry is zero
		{1 * time.Millisecond, true},
		{2 * time.Second, true}, // stall fires once
		{0, false},
		{-time.Second, false},
	}
	for i, s := range steps {
		if got := c.Advance(s.dt); got != s.want {
			t.Errorf("step %d: Advance(%v) = %v, want %v", i, s.dt, got, s.want)
		}
	}
}

func TestCadenceFrameRateIndependent(t *testing.T) {
	count := func(frame time.Duration) int {
		c := NewCadence(500 * time.Millisecond)
		fired := 0
		for elapsed := time.Duration(0); elapsed < 10*time.Second; elapsed += frame {
			if c.Advance(frame) {
				fired++
			}
		}
		return fired
	}
	at60, at144 := count(time.Second/60), count(time.Second/144)
	if at60 < 19 || at60 > 20 || at144 < 19 || at144 > 20 {
		t.Errorf("fires over 10s: 60fps=%d 144fps=%d, want ~20 each", at60, at144)
	}
}

func TestFieldDeterministicLayout(t *testing.T) {
	a := NewField(120, 12, 5)
	b := NewField(120, 12, 5)
	if a.Len() != 120 {
		t.Fatalf("Len() = %d, want 120", a.Len())
	}
	for i := range a.Positions() {
		p := a.Positions()[i]
		if p != b.Positions()[i] {
			t.Fatalf("point %d differs between identical seeds", i)
		}
		if p.X < -6 || p.X > 6 || p.Y < -6 || p.Y > 6 || p.Z < -6 || p.Z > 6 {
			t.Errorf("point %d = %v outside spread", i, p)
		}
	}
}

func TestFieldRotatePreservesDistances(t *testing.T) {
	f := NewFieldFrom([]math.Vec3{math.V3(1, 0, 0), math.V3(0, 2, 0), math.V3(0, 0, 3)})
	f.Spin = math.V3(0.3, 0.6, 0)

	before := f.Positions()[0].Distance(f.Positions()[2])
	for i := 0; i < 100; i++ {
		f.Rotate(0.016)
	}
	after := f.Positions()[0].Distance(f.Positions()[2])
	if d := before - after; d > 1e-4 || d < -1e-4 {
		t.Errorf("pairwise distance drifted from %f to %f", before, after)
	}
	if f.Positions()[0] == math.V3(1, 0, 0) {
		t.Error("positions did not rotate")
	}
	if f.Len() != 3 {
		t.Errorf("point count changed to %d", f.Len())
	}
}

func TestSystemTick(t *testing.T) {
	cfg := DefaultConfig()
	s := NewSystem(cfg)

	if !s.Tick(16 * time.Millisecond) {
		t.Fatal("first tick should build the graph")
	}
	if s.Version() != 1 {
		t.Fatalf("Version() = %d, want 1", s.Version())
	}

	rebuilds := 0
	for i := 0; i < 60; i++ { // ~1s at 60fps
		if s.Tick(time.Second / 60) {
			rebuilds++
		}
	}
	if rebuilds != 2 {
		t.Errorf("rebuilds in 1s = %d, want 2", rebuilds)
	}
}

func TestSystemGraphMatchesRenderedPositions(t *testing.T) {
	s := NewSystem(DefaultConfig())
	s.Tick(16 * time.Millisecond)

	want := BuildGraph(s.Field().Positions(), s.MaxDistance())
	if want.Len() != s.Graph().Len() {
		t.Errorf("graph built from stale positions: %d edges vs %d", s.Graph().Len(), want.Len())
	}
}
