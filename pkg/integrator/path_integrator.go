// Package integrator implements unidirectional path tracing with next-
// event estimation, the core Trace walk both the independent-sample
// renderer and the PSSMLT renderer drive through a core.Sampler.
package integrator

import (
	"github.com/kjhall/pathlight/pkg/core"
)

// Config bundles the per-trace options the path walk consults, mirroring
// spec.md §6's configuration table.
type Config struct {
	DirectLighting     bool
	FullDirectLighting bool
	RussianRoulette    bool
	MinPathLength      int
	MaxPathLength      int
}

func (c Config) pathLengthInRange(length int) bool {
	return length >= c.MinPathLength && length <= c.MaxPathLength
}

// PathIntegrator walks a camera ray through the scene, accumulating
// radiance via BSDF sampling, next-event estimation and, inside a
// participating medium, free-flight scattering/absorption events.
type PathIntegrator struct {
	Scene  sceneQuery
	Direct *DirectLightingEstimator
	Config Config
}

// Trace returns the radiance carried back along ray, per spec.md §4.2's
// unidirectional path walk.
func (pi *PathIntegrator) Trace(ray core.Ray, atmosphere core.Volume, sampler core.Sampler) core.Vec3 {
	var ret core.Vec3
	importance := core.NewVec3(1, 1, 1)
	stack := core.NewVolumeStack(atmosphere)

	for depth := 1; depth <= pi.Config.MaxPathLength; depth++ {
		vol := stack.Top()
		info := pi.Scene.Query(ray)

		var safeDistance float64
		if vol != nil {
			safeDistance = vol.SampleFreeDistance(ray, sampler)
		} else {
			safeDistance = infinity
		}

		var outRay core.Ray
		var f core.Vec3

		switch {
		case info.Intersected && info.Dist < safeDistance:
			bsdf := pi.Scene.BSDFAt(info)
			inDir := ray.Direction.Negate()

			if bsdf.IsEmissive() {
				count := info.Front && (depth == 1 || !pi.Config.DirectLighting)
				if count && pi.Config.pathLengthInRange(depth) {
					ret = ret.Add(importance.MultiplyVec(bsdf.Evaluate(info.Normal, inDir)))
				}
				return ret
			}

			if pi.Config.DirectLighting && !bsdf.IsDelta() && pi.Config.pathLengthInRange(depth+1) {
				ret = ret.Add(importance.MultiplyVec(pi.Direct.Estimate(inDir, info, bsdf, sampler, vol)))
			}

			var pdf float64
			var outDir core.Vec3
			outDir, f, pdf, _ = bsdf.Sample(inDir, sampler.Next(), sampler.Next())
			if pdf < minPDF {
				return ret
			}
			outRay = core.NewRay(info.Pos, outDir)
			c := absDot(outDir, info.Normal)
			f = f.Multiply(c / pdf)

		case vol != nil && vol.SampleEvent(sampler) == core.VolumeScattering:
			orig := ray.At(safeDistance)
			inDir := ray.Direction.Negate()

			if pi.Config.DirectLighting && pi.Config.pathLengthInRange(depth+1) {
				ret = ret.Add(importance.MultiplyVec(pi.Direct.EstimateVolumetric(orig, vol, sampler)))
			}

			outDir := vol.SamplePhase(inDir, sampler)
			outRay = core.NewRay(orig, outDir)
			f = core.NewVec3(1, 1, 1)

		default:
			return ret
		}

		ray = outRay
		importance = importance.MultiplyVec(f)

		if pi.Config.RussianRoulette {
			p := importance.Luminance()
			if p <= 1 {
				if sampler.Next() < p {
					importance = importance.Multiply(1 / p)
				} else {
					return ret
				}
			}
		}
	}
	return ret
}

const (
	infinity = 1e18
	minPDF   = 1e-20
)
