// Package camera provides camera implementations for 3D rendering.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/showroom/pkg/math"
)

// Perspective holds projection parameters shared by the cameras.
type Perspective struct {
	FOV    float32 // vertical, degrees
	Aspect float32
	Near   float32
	Far    float32
}

// DefaultPerspective matches a 75 degree lens with a 0.1..1000 range.
func DefaultPerspective() Perspective {
	return Perspective{FOV: 75, Aspect: 16.0 / 9.0, Near: 0.1, Far: 1000}
}

// SetAspect updates the aspect ratio from a viewport size.
func (p *Perspective) SetAspect(width, height int) {
	if width > 0 && height > 0 {
		p.Aspect = float32(width) / float32(height)
	}
}

// ProjectionMatrix returns the projection matrix.
func (p *Perspective) ProjectionMatrix() math.Mat4 {
	return math.Perspective(p.FOV*math32.Pi/180, p.Aspect, p.Near, p.Far)
}

// FixedCamera looks from a fixed position toward a target.
type FixedCamera struct {
	Perspective
	Eye    math.Vec3
	Target math.Vec3
}

// NewFixedCamera creates a camera at eye looking at target.
func NewFixedCamera(eye, target math.Vec3) *FixedCamera {
	return &FixedCamera{Perspective: DefaultPerspective(), Eye: eye, Target: target}
}

// ViewMatrix returns the view matrix.
func (c *FixedCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Eye, c.Target, math.V3(0, 1, 0))
}

// OrbitCamera orbits around a target point. Input accumulates into
// pending deltas that Update applies a fraction at a time, giving the
// camera inertia after the mouse is released.
type OrbitCamera struct {
	Perspective

	Target math.Vec3

	// Spherical coordinates relative to Target. Polar is measured from
	// +Y, Azimuth around Y starting at +Z.
	Radius  float32
	Polar   float32
	Azimuth float32

	MinPolar float32
	MaxPolar float32

	EnableZoom bool
	EnablePan  bool

	// Damping is the fraction of the pending motion applied per update;
	// zero applies input immediately.
	Damping float32

	DragSensitivity float32 // radians per pixel
	ZoomSensitivity float32
	MinRadius       float32
	MaxRadius       float32

	deltaAzimuth float32
	deltaPolar   float32
	panOffset    math.Vec3
}

// NewOrbitCamera creates a camera at eye orbiting target with the
// showroom defaults: damping 0.05, zoom disabled, polar range [π/6, π/2].
func NewOrbitCamera(eye, target math.Vec3) *OrbitCamera {
	c := &OrbitCamera{
		Perspective:     DefaultPerspective(),
		Target:          target,
		MinPolar:        math32.Pi / 6,
		MaxPolar:        math32.Pi / 2,
		EnablePan:       true,
		Damping:         0.05,
		DragSensitivity: 2 * math32.Pi / 1000,
		ZoomSensitivity: 0.1,
		MinRadius:       1,
		MaxRadius:       50,
	}
	c.SetPosition(eye)
	return c
}

// SetPosition places the camera at eye, keeping the target.
func (c *OrbitCamera) SetPosition(eye math.Vec3) {
	off := eye.Sub(c.Target)
	c.Radius = off.Length()
	if c.Radius == 0 {
		c.Polar, c.Azimuth = 0, 0
		return
	}
	c.Azimuth = math32.Atan2(off.X, off.Z)
	c.Polar = math32.Acos(clamp(off.Y/c.Radius, -1, 1))
	c.Polar = clamp(c.Polar, c.MinPolar, c.MaxPolar)
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	sinP := math32.Sin(c.Polar)
	off := math.V3(
		c.Radius*sinP*math32.Sin(c.Azimuth),
		c.Radius*math32.Cos(c.Polar),
		c.Radius*sinP*math32.Cos(c.Azimuth),
	)
	return c.Target.Add(off)
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Target, math.V3(0, 1, 0))
}

// HandleDrag queues a rotation from a mouse drag in pixels.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.deltaAzimuth -= deltaX * c.DragSensitivity
	c.deltaPolar -= deltaY * c.DragSensitivity
}

// HandlePan queues a target translation from a mouse drag in pixels.
func (c *OrbitCamera) HandlePan(deltaX, deltaY float32) {
	if !c.EnablePan {
		return
	}
	// Scale so the point under the cursor follows it at the target depth.
	scale := c.Radius * math32.Tan(c.FOV*math32.Pi/360) / 500
	right := math.V3(math32.Cos(c.Azimuth), 0, -math32.Sin(c.Azimuth))
	up := math.V3(0, 1, 0)
	c.panOffset = c.panOffset.Add(right.Scale(-deltaX * scale)).Add(up.Scale(deltaY * scale))
}

// HandleZoom changes the radius if zoom is enabled.
func (c *OrbitCamera) HandleZoom(delta float32) {
	if !c.EnableZoom {
		return
	}
	c.Radius = clamp(c.Radius-delta*c.Radius*c.ZoomSensitivity, c.MinRadius, c.MaxRadius)
}

// Update applies pending motion. Call once per frame.
func (c *OrbitCamera) Update() {
	f := c.Damping
	if f <= 0 || f > 1 {
		f = 1
	}
	c.Azimuth += c.deltaAzimuth * f
	c.Polar = clamp(c.Polar+c.deltaPolar*f, c.MinPolar, c.MaxPolar)
	c.Target = c.Target.Add(c.panOffset.Scale(f))

	keep := 1 - f
	c.deltaAzimuth *= keep
	c.deltaPolar *= keep
	c.panOffset = c.panOffset.Scale(keep)
}

// Moving reports whether pending motion remains.
func (c *OrbitCamera) Moving() bool {
	const eps = 1e-5
	return math32.Abs(c.deltaAzimuth) > eps || math32.Abs(c.deltaPolar) > eps || c.panOffset.LengthSquared() > eps*eps
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
