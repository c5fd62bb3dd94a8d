package renderer

import (
	"fmt"
	"math"

	"github.com/kjhall/pathlight/pkg/config"
	"github.com/kjhall/pathlight/pkg/core"
	"github.com/kjhall/pathlight/pkg/integrator"
	"github.com/kjhall/pathlight/pkg/scene"
)

// PathTracingRenderer drives independent unidirectional path tracing,
// per spec.md §4.5: render_stage runs exactly width*height independent
// paths, each with its own StateSequence seeded by (sampler, global
// path index), and writes each resulting PathContribution into a
// shared accumulator.
type PathTracingRenderer struct {
	Scene       *scene.Scene
	Integrator  *integrator.PathIntegrator
	Accumulator *ImageAccumulator
	Logger      core.Logger

	Config     config.Config
	NumWorkers int // 0 selects runtime.NumCPU()

	index int64
}

// NewPathTracingRenderer builds a renderer from a validated scene and
// config. The caller must have already called scene.Preprocess.
func NewPathTracingRenderer(s *scene.Scene, cfg config.Config, logger core.Logger) *PathTracingRenderer {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	direct := &integrator.DirectLightingEstimator{
		Scene:        s,
		BSDFSamples:  cfg.DirectLightingBSDF,
		LightSamples: cfg.DirectLightingLight,
		Full:         cfg.FullDirectLighting,
	}
	return &PathTracingRenderer{
		Scene: s,
		Integrator: &integrator.PathIntegrator{
			Scene:  s,
			Direct: direct,
			Config: integrator.Config{
				DirectLighting:     cfg.DirectLighting,
				FullDirectLighting: cfg.FullDirectLighting,
				RussianRoulette:    cfg.RussianRoulette,
				MinPathLength:      cfg.MinPathLength,
				MaxPathLength:      cfg.MaxPathLength,
			},
		},
		Accumulator: NewImageAccumulator(s.Width, s.Height),
		Logger:      logger,
		Config:      cfg,
	}
}

// RenderStage runs one stage of width*height independent paths,
// advancing the renderer's global path index across stages so repeated
// calls keep refining the same image instead of resampling it from
// scratch.
func (r *PathTracingRenderer) RenderStage() {
	width, height := r.Scene.Width, r.Scene.Height
	n := width * height
	base := r.index

	parallelFor(n, r.NumWorkers, func(i int) {
		contribution := r.pathContribution(base + int64(i))
		r.writeContribution(contribution)
	})

	r.index += int64(n)
	r.Logger.Printf("stage complete: %d paths traced (%d total)\n", n, r.index)
}

// pathContribution traces one independent path, matching pt.cpp's
// get_path_contribution: sample a primary ray from two fresh uniform
// draws, trace it, then clamp its luminance if configured.
func (r *PathTracingRenderer) pathContribution(globalIndex int64) core.PathContribution {
	seed := core.PathSeed(r.Config.Sampler, globalIndex)
	sampler := core.NewIndependentSampler(seed)

	offset := sampler.Get2D()
	pixelSize := core.NewVec2(1.0/float64(r.Scene.Width), 1.0/float64(r.Scene.Height))
	ray := r.Scene.Camera.Sample(offset, pixelSize)

	color := r.Integrator.Trace(ray, r.Scene.Atmosphere, sampler)
	if r.Config.LuminanceClamping > 0 {
		if l := color.Luminance(); l > r.Config.LuminanceClamping {
			color = color.Multiply(r.Config.LuminanceClamping / l)
		}
	}
	return core.PathContribution{X: offset.X, Y: offset.Y, C: color}
}

// writeContribution splats a path contribution into the accumulator at
// unit scale, dropping out-of-range or non-finite coordinates per
// spec.md §7's boundary policy.
func (r *PathTracingRenderer) writeContribution(pc core.PathContribution) {
	if math.IsNaN(pc.C.X) || math.IsNaN(pc.C.Y) || math.IsNaN(pc.C.Z) {
		return
	}
	ix, iy, ok := PixelFromNormalized(pc.X, pc.Y, r.Scene.Width, r.Scene.Height)
	if !ok {
		return
	}
	r.Accumulator.Accumulate(ix, iy, pc.C)
	r.Accumulator.AddSamples(1)
}

// Output returns the current averaged image.
func (r *PathTracingRenderer) Output() []core.Vec3 {
	return r.Accumulator.Averaged()
}

// ValidateConfig surfaces a configuration error before RenderStage runs,
// matching spec.md §7's "reported at initialization; fatal" policy.
func (r *PathTracingRenderer) ValidateConfig() error {
	if err := r.Config.Validate(); err != nil {
		return fmt.Errorf("pathtracing_renderer: %w", err)
	}
	return nil
}
