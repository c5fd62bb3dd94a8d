// Package camera implements the pinhole/thin-lens camera that the core
// light-transport engine consumes through core.Camera.
package camera

import (
	"math"

	"github.com/kjhall/pathlight/pkg/core"
)

// Config describes a camera's placement and lens parameters.
type Config struct {
	Center        core.Vec3
	LookAt        core.Vec3
	Up            core.Vec3
	VFov          float64 // vertical field of view, degrees
	AspectRatio   float64
	Aperture      float64 // lens diameter; 0 disables depth of field
	FocusDistance float64 // distance to the focal plane; ignored when Aperture is 0
}

// Camera generates primary rays from normalized image coordinates. It
// implements core.Camera.
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3 // orthonormal basis: u=right, v=up, w=back
	lensRadius      float64
}

// New builds a camera from config. VFov/AspectRatio determine the
// viewport size at FocusDistance (or 1.0 if unset); Aperture>0 enables
// a thin lens for depth-of-field sampling.
func New(config Config) *Camera {
	theta := config.VFov * math.Pi / 180.0
	h := math.Tan(theta / 2)

	focusDistance := config.FocusDistance
	if focusDistance <= 0 {
		focusDistance = 1.0
	}

	viewportHeight := 2.0 * h * focusDistance
	viewportWidth := config.AspectRatio * viewportHeight

	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	horizontal := u.Multiply(viewportWidth)
	vertical := v.Multiply(viewportHeight)
	lowerLeftCorner := config.Center.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(focusDistance))

	return &Camera{
		origin:          config.Center,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
	}
}

// Sample generates a primary ray through normalized image coordinate
// offset ∈ [0,1)²; offset is used as given, with no further jitter.
// When the camera has a nonzero aperture, the ray origin is jittered
// over the lens disk, using the two components of pixelSize as the
// lens sample (thin-lens depth-of-field model). With zero aperture
// pixelSize is ignored.
func (c *Camera) Sample(offset core.Vec2, pixelSize core.Vec2) core.Ray {
	s, t := offset.X, offset.Y

	origin := c.origin
	if c.lensRadius > 0 {
		rd := randomInUnitDisk(pixelSize).Multiply(c.lensRadius)
		offsetLens := c.u.Multiply(rd.X).Add(c.v.Multiply(rd.Y))
		origin = origin.Add(offsetLens)
	}

	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(origin)

	return core.NewRay(origin, direction.Normalize())
}

// GetCameraForward returns the unit vector the camera looks along.
func (c *Camera) GetCameraForward() core.Vec3 {
	return c.w.Negate()
}

// randomInUnitDisk maps a 2D sample to a point on the unit disk via
// concentric mapping, avoiding the rejection-sampling pattern that
// would need an unbounded number of StateSequence draws.
func randomInUnitDisk(sample core.Vec2) core.Vec3 {
	sx := 2*sample.X - 1
	sy := 2*sample.Y - 1

	if sx == 0 && sy == 0 {
		return core.Vec3{}
	}

	var r, theta float64
	if math.Abs(sx) > math.Abs(sy) {
		r = sx
		theta = (math.Pi / 4) * (sy / sx)
	} else {
		r = sy
		theta = (math.Pi / 2) - (math.Pi/4)*(sx/sy)
	}

	return core.NewVec3(r*math.Cos(theta), r*math.Sin(theta), 0)
}
