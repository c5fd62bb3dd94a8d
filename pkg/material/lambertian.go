package material

import (
	"math"

	"github.com/kjhall/pathlight/pkg/core"
)

// Lambertian is a perfectly diffuse material: constant BRDF albedo/pi and
// cosine-weighted hemisphere sampling.
type Lambertian struct {
	Albedo core.Vec3
}

// NewLambertian creates a diffuse material with the given reflectance.
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// AtHit builds the BSDF at a surface point with the given normal.
func (l *Lambertian) AtHit(normal core.Vec3, point core.Vec3) BSDF {
	return &lambertianBSDF{albedo: l.Albedo, normal: normal, point: point}
}

type lambertianBSDF struct {
	albedo core.Vec3
	normal core.Vec3
	point  core.Vec3
}

func (b *lambertianBSDF) Sample(out core.Vec3, u1, u2 float64) (core.Vec3, core.Vec3, float64, bool) {
	dir := core.SampleCosineHemisphere(b.normal, core.NewVec2(u1, u2))
	pdf, _ := b.pdf(dir)
	return dir, b.brdf(dir), pdf, false
}

func (b *lambertianBSDF) Evaluate(a, dir core.Vec3) core.Vec3 {
	return b.brdf(dir)
}

func (b *lambertianBSDF) ProbabilityDensity(in, dir core.Vec3) float64 {
	pdf, _ := b.pdf(dir)
	return pdf
}

func (b *lambertianBSDF) IsEmissive() bool { return false }
func (b *lambertianBSDF) IsDelta() bool    { return false }

func (b *lambertianBSDF) brdf(dir core.Vec3) core.Vec3 {
	if dir.Dot(b.normal) <= 0 {
		return core.Vec3{}
	}
	return b.albedo.Multiply(1.0 / math.Pi)
}

func (b *lambertianBSDF) pdf(dir core.Vec3) (float64, bool) {
	cosTheta := dir.Dot(b.normal)
	if cosTheta <= 0 {
		return 0, false
	}
	return cosTheta / math.Pi, false
}
