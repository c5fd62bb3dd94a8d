package material

import "github.com/kjhall/pathlight/pkg/core"

// Emissive is a light-emitting material. It does not scatter: emissive
// surfaces terminate the path (see the integrator), so their only
// BSDF method that matters is Evaluate, used both for the depth==1 hit
// and for evaluating emission during next-event estimation.
type Emissive struct {
	Emission core.Vec3
}

// NewEmissive creates an emissive material with the given radiance.
func NewEmissive(emission core.Vec3) *Emissive {
	return &Emissive{Emission: emission}
}

func (e *Emissive) AtHit(normal core.Vec3, point core.Vec3) BSDF {
	return &emissiveBSDF{emission: e.Emission}
}

type emissiveBSDF struct {
	emission core.Vec3
}

func (b *emissiveBSDF) Sample(out core.Vec3, u1, u2 float64) (core.Vec3, core.Vec3, float64, bool) {
	return core.Vec3{}, core.Vec3{}, 0, false
}

func (b *emissiveBSDF) Evaluate(a, dir core.Vec3) core.Vec3 {
	return b.emission
}

func (b *emissiveBSDF) ProbabilityDensity(in, dir core.Vec3) float64 { return 0 }
func (b *emissiveBSDF) IsEmissive() bool                             { return true }
func (b *emissiveBSDF) IsDelta() bool                                { return false }
