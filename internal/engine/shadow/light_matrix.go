package shadow

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/showroom/internal/model"
	"github.com/Faultbox/showroom/pkg/math"
)

// Frustum is the orthographic volume of a directional light's shadow camera.
type Frustum struct {
	HalfSize float32
	Near     float32
	Far      float32
	// Bias is subtracted from the compared depth to avoid acne.
	Bias float32
}

// DefaultFrustum covers a 20x20 area up to 50 units from the light.
func DefaultFrustum() Frustum {
	return Frustum{HalfSize: 10, Near: 0.5, Far: 50, Bias: 0.0001}
}

func upFor(dir math.Vec3) math.Vec3 {
	// Avoid an up vector parallel to the light direction
	if math32.Abs(dir.Y) > 0.99 {
		return math.V3(0, 0, 1)
	}
	return math.V3(0, 1, 0)
}

// LightMatrix returns the view-projection of a directional light placed at
// lightPos looking at target with the given frustum.
func LightMatrix(lightPos, target math.Vec3, f Frustum) math.Mat4 {
	dir := lightPos.Sub(target).Normalize()
	view := math.LookAt(lightPos, target, upFor(dir))
	proj := math.Ortho(-f.HalfSize, f.HalfSize, -f.HalfSize, f.HalfSize, f.Near, f.Far)
	return proj.Mul(view)
}

// FitLightMatrix computes a light matrix that encloses bounds. lightDir
// points toward the light.
func FitLightMatrix(lightDir math.Vec3, bounds model.Bounds) math.Mat4 {
	center := bounds.Center()
	radius := bounds.Radius()
	if radius <= 0 {
		radius = 1
	}

	// Far enough to encompass the whole model
	dist := radius * 2
	dir := lightDir.Normalize()
	lightPos := center.Add(dir.Scale(dist))

	padding := radius * 0.1
	return LightMatrix(lightPos, center, Frustum{
		HalfSize: radius + padding,
		Near:     0.1,
		Far:      dist + radius + padding,
	})
}
