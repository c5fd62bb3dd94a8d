package material

import "github.com/kjhall/pathlight/pkg/core"

// Mirror is a perfect specular reflector: a delta BSDF, so next-event
// estimation never connects to it and its only contribution comes
// through the BSDF-sampling branch.
type Mirror struct {
	Albedo core.Vec3
}

// NewMirror creates a perfect-mirror material with the given tint.
func NewMirror(albedo core.Vec3) *Mirror {
	return &Mirror{Albedo: albedo}
}

func (m *Mirror) AtHit(normal core.Vec3, point core.Vec3) BSDF {
	return &mirrorBSDF{albedo: m.Albedo, normal: normal}
}

type mirrorBSDF struct {
	albedo core.Vec3
	normal core.Vec3
}

func (b *mirrorBSDF) Sample(out core.Vec3, u1, u2 float64) (core.Vec3, core.Vec3, float64, bool) {
	dir := reflect(out, b.normal)
	return dir, b.albedo, 1.0, true
}

func (b *mirrorBSDF) Evaluate(a, dir core.Vec3) core.Vec3    { return core.Vec3{} }
func (b *mirrorBSDF) ProbabilityDensity(in, dir core.Vec3) float64 { return 0 }
func (b *mirrorBSDF) IsEmissive() bool                             { return false }
func (b *mirrorBSDF) IsDelta() bool                                { return true }

// reflect returns the reflection of v off a surface with normal n, where
// v points away from the surface (towards the incoming light).
func reflect(v, n core.Vec3) core.Vec3 {
	return n.Multiply(2 * v.Dot(n)).Subtract(v)
}
