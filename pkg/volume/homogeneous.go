package volume

import (
	"math"

	"github.com/kjhall/pathlight/pkg/core"
)

// Homogeneous is a participating medium with spatially-constant
// absorption and scattering coefficients, the simplest non-trivial
// core.Volume: free-flight distances follow an exponential distribution
// with rate sigmaT = sigmaA + sigmaS, and events are classified
// scattering/absorption by the ratio sigmaS/sigmaT.
type Homogeneous struct {
	SigmaA core.Vec3 // absorption coefficient per channel
	SigmaS core.Vec3 // scattering coefficient per channel
	sigmaT float64   // scalar extinction used to drive distance sampling
}

// NewHomogeneous creates a homogeneous medium from absorption and
// scattering coefficients. The scalar extinction used for free-flight
// sampling is the luminance of SigmaA+SigmaS, matching how the rest of
// the core treats color as a Monte Carlo estimator target via luminance.
func NewHomogeneous(sigmaA, sigmaS core.Vec3) *Homogeneous {
	return &Homogeneous{
		SigmaA: sigmaA,
		SigmaS: sigmaS,
		sigmaT: sigmaA.Add(sigmaS).Luminance(),
	}
}

// SampleFreeDistance draws a free-flight distance along ray from the
// exponential distribution with rate sigmaT. A vacuum (sigmaT==0)
// returns +Inf so the integrator always prefers a surface hit.
func (h *Homogeneous) SampleFreeDistance(ray core.Ray, sampler core.Sampler) float64 {
	if h.sigmaT <= 0 {
		return math.Inf(1)
	}
	u := sampler.Next()
	return -math.Log(1-u) / h.sigmaT
}

// SampleEvent classifies the interaction at the sampled free-flight
// distance as scattering or absorption, weighted by sigmaS/sigmaT.
func (h *Homogeneous) SampleEvent(sampler core.Sampler) core.VolumeEvent {
	if h.sigmaT <= 0 {
		return core.VolumeAbsorption
	}
	albedo := h.SigmaS.Luminance() / h.sigmaT
	if sampler.Next() < albedo {
		return core.VolumeScattering
	}
	return core.VolumeAbsorption
}

// SamplePhase draws a new direction from the isotropic phase function.
func (h *Homogeneous) SamplePhase(out core.Vec3, sampler core.Sampler) core.Vec3 {
	return core.SampleOnUnitSphere(sampler.Get2D())
}

// GetAttenuation returns the Beer-Lambert transmittance over dist.
func (h *Homogeneous) GetAttenuation(dist float64) core.Vec3 {
	return core.NewVec3(
		math.Exp(-h.SigmaA.X*dist-h.SigmaS.X*dist),
		math.Exp(-h.SigmaA.Y*dist-h.SigmaS.Y*dist),
		math.Exp(-h.SigmaA.Z*dist-h.SigmaS.Z*dist),
	)
}
