package material

import (
	"math"

	"github.com/kjhall/pathlight/pkg/core"
)

// Dielectric is a transparent material (glass, water) that reflects or
// refracts according to Fresnel/Snell's law; a delta BSDF like Mirror.
type Dielectric struct {
	RefractiveIndex float64
}

// NewDielectric creates a dielectric material with the given index of
// refraction (e.g. 1.5 for glass).
func NewDielectric(refractiveIndex float64) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex}
}

func (d *Dielectric) AtHit(normal core.Vec3, point core.Vec3) BSDF {
	return &dielectricBSDF{ior: d.RefractiveIndex, normal: normal}
}

type dielectricBSDF struct {
	ior    float64
	normal core.Vec3
}

func (b *dielectricBSDF) Sample(out core.Vec3, u1, u2 float64) (core.Vec3, core.Vec3, float64, bool) {
	// out points away from the surface towards the previous vertex; the
	// incoming ray direction is its negation.
	rayDir := out.Negate().Normalize()
	normal := b.normal
	frontFace := rayDir.Dot(normal) < 0
	if !frontFace {
		normal = normal.Negate()
	}

	var refractionRatio float64
	if frontFace {
		refractionRatio = 1.0 / b.ior
	} else {
		refractionRatio = b.ior
	}

	cosTheta := math.Min(-rayDir.Dot(normal), 1.0)
	sinTheta := math.Sqrt(math.Max(0, 1.0-cosTheta*cosTheta))
	cannotRefract := refractionRatio*sinTheta > 1.0

	var dir core.Vec3
	if cannotRefract || schlickReflectance(cosTheta, refractionRatio) > u1 {
		dir = reflect(rayDir.Negate(), normal)
	} else {
		dir = refract(rayDir, normal, refractionRatio)
	}

	return dir, core.NewVec3(1, 1, 1), 1.0, true
}

func (b *dielectricBSDF) Evaluate(a, dir core.Vec3) core.Vec3    { return core.Vec3{} }
func (b *dielectricBSDF) ProbabilityDensity(in, dir core.Vec3) float64 { return 0 }
func (b *dielectricBSDF) IsEmissive() bool                             { return false }
func (b *dielectricBSDF) IsDelta() bool                                { return true }

// refract applies Snell's law to a unit incoming direction uv about a
// unit normal n, given the ratio of refractive indices.
func refract(uv, n core.Vec3, etaiOverEtat float64) core.Vec3 {
	cosTheta := math.Min(-uv.Dot(n), 1.0)
	rOutPerp := uv.Add(n.Multiply(cosTheta)).Multiply(etaiOverEtat)
	rOutParallel := n.Multiply(-math.Sqrt(math.Abs(1.0 - rOutPerp.LengthSquared())))
	return rOutPerp.Add(rOutParallel)
}

// schlickReflectance is Schlick's approximation to the Fresnel
// reflectance at the given angle of incidence.
func schlickReflectance(cosine, refractionRatio float64) float64 {
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
