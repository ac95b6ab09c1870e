package camera

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/showroom/pkg/math"
)

func near(a, b, eps float32) bool {
	return math32.Abs(a-b) < eps
}

func TestOrbitSetPositionRoundTrip(t *testing.T) {
	target := math.V3(0, 0.2, 0)
	eye := math.V3(1, 1.5, 3)
	c := NewOrbitCamera(eye, target)

	got := c.Position()
	if got.Distance(eye) > 1e-4 {
		t.Errorf("Position() = %v, want %v", got, eye)
	}
}

func TestOrbitPolarLimits(t *testing.T) {
	c := NewOrbitCamera(math.V3(0, 0.4, 4), math.V3(0, 0.2, 0))
	c.Damping = 0

	c.HandleDrag(0, 100000)
	c.Update()
	if !near(c.Polar, c.MinPolar, 1e-6) {
		t.Errorf("Polar = %v, want min %v", c.Polar, c.MinPolar)
	}

	c.HandleDrag(0, -100000)
	c.Update()
	if !near(c.Polar, c.MaxPolar, 1e-6) {
		t.Errorf("Polar = %v, want max %v", c.Polar, c.MaxPolar)
	}
	if c.Position().Y < c.Target.Y-1e-4 {
		t.Error("camera went below the target plane")
	}
}

func TestOrbitDampingConverges(t *testing.T) {
	c := NewOrbitCamera(math.V3(0, 1, 4), math.V3(0, 0, 0))
	start := c.Azimuth

	c.HandleDrag(-100, 0)
	want := start + 100*c.DragSensitivity

	c.Update()
	first := c.Azimuth - start
	if !near(first, 100*c.DragSensitivity*c.Damping, 1e-6) {
		t.Errorf("first step = %v", first)
	}
	if !c.Moving() {
		t.Error("camera should still be moving")
	}

	for i := 0; i < 1000; i++ {
		c.Update()
	}
	if !near(c.Azimuth, want, 1e-4) {
		t.Errorf("Azimuth = %v, want %v", c.Azimuth, want)
	}
	if c.Moving() {
		t.Error("camera should have settled")
	}
}

func TestOrbitZoomDisabled(t *testing.T) {
	c := NewOrbitCamera(math.V3(0, 0.4, 4), math.V3(0, 0.2, 0))
	r := c.Radius
	c.HandleZoom(5)
	if c.Radius != r {
		t.Errorf("Radius changed to %v with zoom disabled", c.Radius)
	}

	c.EnableZoom = true
	c.HandleZoom(1)
	if c.Radius >= r {
		t.Errorf("Radius = %v, want < %v", c.Radius, r)
	}
}

func TestPerspectiveAspect(t *testing.T) {
	p := DefaultPerspective()
	p.SetAspect(800, 400)
	if p.Aspect != 2 {
		t.Errorf("Aspect = %v, want 2", p.Aspect)
	}
	p.SetAspect(0, 400)
	if p.Aspect != 2 {
		t.Error("zero width should be ignored")
	}
}
