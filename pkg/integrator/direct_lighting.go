package integrator

import (
	"github.com/kjhall/pathlight/pkg/core"
	"github.com/kjhall/pathlight/pkg/geometry"
	"github.com/kjhall/pathlight/pkg/material"
)

// sceneQuery is what the direct-lighting estimator needs from a scene:
// geometry to shoot shadow rays against, BSDF resolution at a hit, and
// the emissive-triangle bookkeeping light sampling draws from.
type sceneQuery interface {
	Query(ray core.Ray) core.IntersectionInfo
	BSDFAt(info core.IntersectionInfo) material.BSDF
	EmissiveTriangles() []*geometry.Triangle
	SampleTriangleLightEmission(u float64) (*geometry.Triangle, float64)
}

// DirectLightingEstimator implements next-event estimation with
// multiple importance sampling between BSDF and light sampling
// strategies, per the two-sample-count MIS estimator every path vertex
// other than the primary camera ray evaluates.
type DirectLightingEstimator struct {
	Scene sceneQuery

	BSDFSamples  int
	LightSamples int
	Full         bool // sum every emitter instead of picking one
}

// Estimate returns the MIS-weighted direct-lighting contribution at a
// surface hit, given the direction back toward the previous vertex
// (inDir) and the BSDF at the hit. vol is the medium currently
// containing info.Pos (nil for vacuum), whose transmittance attenuates
// every shadow ray the same way the surrounding medium attenuates any
// other ray segment.
func (d *DirectLightingEstimator) Estimate(inDir core.Vec3, info core.IntersectionInfo, bsdf material.BSDF, sampler core.Sampler, vol core.Volume) core.Vec3 {
	if d.Full {
		var acc core.Vec3
		for _, tri := range d.Scene.EmissiveTriangles() {
			if tri.RelativeLocationToPlane(info.Pos) > 0 {
				acc = acc.Add(d.estimateAgainst(inDir, info, bsdf, sampler, tri, vol))
			}
		}
		return acc
	}

	tri, pdf := d.Scene.SampleTriangleLightEmission(sampler.Next())
	if tri == nil || pdf <= 0 {
		return core.Vec3{}
	}
	if tri.RelativeLocationToPlane(info.Pos) <= 0 {
		return core.Vec3{}
	}
	return d.estimateAgainst(inDir, info, bsdf, sampler, tri, vol).Multiply(1 / pdf)
}

// estimateAgainst runs the BSDF-sampling and light-sampling branches
// against one specific emissive triangle and combines them with the
// balance heuristic, matching spec.md §4.3.1's two-strategy MIS
// estimator.
func (d *DirectLightingEstimator) estimateAgainst(inDir core.Vec3, info core.IntersectionInfo, bsdf material.BSDF, sampler core.Sampler, tri *geometry.Triangle, vol core.Volume) core.Vec3 {
	var acc core.Vec3
	samples := d.BSDFSamples + d.LightSamples
	if samples == 0 {
		return acc
	}

	for i := 0; i < samples; i++ {
		sampleBSDF := i < d.BSDFSamples

		var outDir core.Vec3
		var f core.Vec3
		var bsdfPDF float64
		var delta bool

		if sampleBSDF {
			outDir, f, bsdfPDF, delta = bsdf.Sample(inDir, sampler.Next(), sampler.Next())
		} else {
			pos, _ := tri.SamplePoint(sampler.Get2D())
			outDir = pos.Subtract(info.Pos).Normalize()
		}

		ray := core.Ray{Origin: info.Pos, Direction: outDir, TMin: 0}
		test := d.Scene.Query(ray)
		if !test.Intersected || test.TriangleID != tri.ID {
			continue
		}

		if !sampleBSDF {
			f = bsdf.Evaluate(inDir, outDir)
			bsdfPDF = bsdf.ProbabilityDensity(inDir, outDir)
		}

		co := absDot(outDir, info.Normal)
		c := absDot(outDir, tri.Normal())
		dist := test.Pos.Subtract(info.Pos)
		lightPDF := dist.Dot(dist) / (tri.Area() * c)

		lightBSDF := d.Scene.BSDFAt(test)
		emission := lightBSDF.Evaluate(test.Normal, outDir.Negate())
		throughput := emission.MultiplyVec(f).Multiply(co)
		if vol != nil {
			throughput = throughput.MultiplyVec(vol.GetAttenuation(test.Dist))
		}

		var weight float64
		if sampleBSDF && delta {
			weight = 1.0 / (float64(d.BSDFSamples) * bsdfPDF)
		} else {
			weight = core.BalanceHeuristic(d.BSDFSamples, bsdfPDF, d.LightSamples, lightPDF)
		}
		acc = acc.Add(throughput.Multiply(weight))
	}
	return acc
}

// EstimateVolumetric implements spec.md §4.3.2's one-bounce volumetric
// direct-lighting estimate: a single phase-function-sampled shadow ray,
// with no MIS since the phase function is the only sampling strategy
// available from inside a medium.
func (d *DirectLightingEstimator) EstimateVolumetric(orig core.Vec3, vol core.Volume, sampler core.Sampler) core.Vec3 {
	outDir := vol.SamplePhase(core.Vec3{}, sampler)
	ray := core.Ray{Origin: orig, Direction: outDir, TMin: 1e-5}
	test := d.Scene.Query(ray)
	if !test.Intersected || !test.Front {
		return core.Vec3{}
	}
	lightBSDF := d.Scene.BSDFAt(test)
	emission := lightBSDF.Evaluate(test.Normal, outDir.Negate())
	return emission.MultiplyVec(vol.GetAttenuation(test.Dist))
}

func absDot(a, b core.Vec3) float64 {
	d := a.Dot(b)
	if d < 0 {
		return -d
	}
	return d
}
