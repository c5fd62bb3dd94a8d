package material

import "github.com/kjhall/pathlight/pkg/core"

// BSDF is the bidirectional scattering distribution function at a single
// surface hit. The path integrator constructs one per intersection (via
// a material's AtHit method) and only ever calls through this interface,
// so delta (specular) and non-delta (diffuse/glossy) materials are
// interchangeable from the integrator's point of view.
type BSDF interface {
	// Sample draws a scattered direction given the outgoing (toward-camera)
	// direction out and two uniform samples, returning the sampled
	// direction, the BSDF value f at that direction, its probability
	// density (1 for a delta lobe, whose f already carries the full
	// weight) and whether the lobe sampled is a delta function.
	Sample(out core.Vec3, u1, u2 float64) (dir core.Vec3, f core.Vec3, pdf float64, delta bool)

	// Evaluate returns the BSDF value for a pair of directions (used to
	// recompute f along a light-sampled direction), or, for an emissive
	// BSDF, the emitted radiance towards dir regardless of a (the emissive
	// surface is diffuse, so only the caller's front/back test matters).
	Evaluate(a, dir core.Vec3) core.Vec3

	// ProbabilityDensity returns the PDF of sampling dir given in via
	// Sample; 0 for a delta BSDF since delta directions have zero measure.
	ProbabilityDensity(in, dir core.Vec3) float64

	// IsEmissive reports whether this BSDF also emits radiance.
	IsEmissive() bool

	// IsDelta reports whether this BSDF is a pure delta distribution
	// (mirror, dielectric): next-event estimation has zero probability of
	// connecting to it and must be skipped.
	IsDelta() bool
}

// Material constructs the BSDF seen at a specific hit point; scene
// loading binds one Material per triangle.
type Material interface {
	AtHit(normal core.Vec3, point core.Vec3) BSDF
}
