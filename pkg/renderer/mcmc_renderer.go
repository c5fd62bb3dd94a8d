package renderer

import (
	"fmt"
	"math/rand"

	"github.com/kjhall/pathlight/pkg/config"
	"github.com/kjhall/pathlight/pkg/core"
	"github.com/kjhall/pathlight/pkg/integrator"
	"github.com/kjhall/pathlight/pkg/mcmc"
	"github.com/kjhall/pathlight/pkg/scene"
)

// mcmcState is one step of the Metropolis chain: the PSS coordinates
// that produced it, the path contribution they traced, and that
// contribution's scalar weight.
type mcmcState struct {
	chain *mcmc.Chain
	pc    core.PathContribution
	sc    float64
}

// MCMCRenderer implements PSSMLT per spec.md §4.7: a normalization
// constant b is estimated from independent samples in phase 1, then
// phase 2 runs Metropolis-Hastings iterations over primary sample
// space with expected-value (Veach) splatting.
type MCMCRenderer struct {
	Scene       *scene.Scene
	Integrator  *integrator.PathIntegrator
	Accumulator *ImageAccumulator
	Logger      core.Logger
	Config      config.Config

	b            float64
	current      mcmcState
	sampleCount  float64
	phase1Done   bool
	chainCoinRNG func() float64
}

// NewMCMCRenderer builds a renderer from a validated scene and config.
func NewMCMCRenderer(s *scene.Scene, cfg config.Config, logger core.Logger) *MCMCRenderer {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	direct := &integrator.DirectLightingEstimator{
		Scene:        s,
		BSDFSamples:  cfg.DirectLightingBSDF,
		LightSamples: cfg.DirectLightingLight,
		Full:         cfg.FullDirectLighting,
	}
	return &MCMCRenderer{
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
		Accumulator:  NewImageAccumulator(s.Width, s.Height),
		Logger:       logger,
		Config:       cfg,
		chainCoinRNG: rand.New(rand.NewSource(1)).Float64,
	}
}

// ValidateConfig surfaces a configuration error before RenderStage runs.
func (r *MCMCRenderer) ValidateConfig() error {
	if err := r.Config.Validate(); err != nil {
		return fmt.Errorf("mcmc_renderer: %w", err)
	}
	if r.Config.MutationStrength <= 0 {
		return fmt.Errorf("mcmc_renderer: mutation_strength must be > 0")
	}
	return nil
}

func (r *MCMCRenderer) scalarContribution(pc core.PathContribution) float64 {
	return pc.C.Luminance()
}

// pathContributionFromChain traces one path driven by a Markov-chain
// replay sampler, mirroring PathTracingRenderer.pathContribution but
// sourcing its uniform draws from the chain instead of an independent
// stream.
func (r *MCMCRenderer) pathContributionFromChain(chain *mcmc.Chain) core.PathContribution {
	sampler := mcmc.NewChainSampler(chain, r.chainCoinRNG)

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

// estimateNormalization runs phase 1: estimation_rounds*W*H independent
// PT samples, averaging their scalar contribution into b, then seeds
// the Metropolis chain's first state.
func (r *MCMCRenderer) estimateNormalization() {
	width, height := r.Scene.Width, r.Scene.Height
	numSamples := width * height * r.Config.EstimationRounds

	var total float64
	for i := 0; i < numSamples; i++ {
		seed := core.PathSeed(r.Config.Sampler, int64(i))
		sampler := core.NewIndependentSampler(seed)
		offset := sampler.Get2D()
		pixelSize := core.NewVec2(1.0/float64(width), 1.0/float64(height))
		ray := r.Scene.Camera.Sample(offset, pixelSize)
		color := r.Integrator.Trace(ray, r.Scene.Atmosphere, sampler)
		pc := core.PathContribution{X: offset.X, Y: offset.Y, C: color}
		total += r.scalarContribution(pc)
	}
	r.b = total / float64(numSamples)

	chain := mcmc.NewChain(width, height)
	pc := r.pathContributionFromChain(chain)
	r.current = mcmcState{chain: chain, pc: pc, sc: r.scalarContribution(pc)}
	r.phase1Done = true
	r.Logger.Printf("phase 1 complete: b = %v\n", r.b)
}

// writeWeighted splats scale*width*height*pc.c into the accumulator,
// matching pt.cpp's MCMCPTRenderer::write_path_contribution.
func (r *MCMCRenderer) writeWeighted(pc core.PathContribution, scale float64) {
	ix, iy, ok := PixelFromNormalized(pc.X, pc.Y, r.Scene.Width, r.Scene.Height)
	if !ok {
		return
	}
	total := float64(r.Scene.Width * r.Scene.Height)
	r.Accumulator.Accumulate(ix, iy, pc.C.Multiply(total*scale))
}

// RenderStage runs one stage of width*height Metropolis iterations
// (after lazily running phase 1 on the first call), per spec.md §4.7.
func (r *MCMCRenderer) RenderStage() {
	if !r.phase1Done {
		r.estimateNormalization()
	}

	width, height := r.Scene.Width, r.Scene.Height
	n := width * height

	for k := 0; k < n; k++ {
		var newChain *mcmc.Chain
		isLargeStep := 0.0
		if r.chainCoinRNG() <= r.Config.LargeStepProb {
			newChain = r.current.chain.LargeStep()
			isLargeStep = 1.0
		} else {
			newChain = r.current.chain.Mutate(r.Config.MutationStrength, r.chainCoinRNG)
		}

		newPC := r.pathContributionFromChain(newChain)
		newSC := r.scalarContribution(newPC)
		newState := mcmcState{chain: newChain, pc: newPC, sc: newSC}

		a := 1.0
		if r.current.sc > 0 {
			a = newSC / r.current.sc
			if a > 1 {
				a = 1
			} else if a < 0 {
				a = 0
			}
		}

		if newSC > 0 {
			r.writeWeighted(newPC, (a+isLargeStep)/(newSC/r.b+r.Config.LargeStepProb))
		}
		if r.current.sc > 0 {
			r.writeWeighted(r.current.pc, (1-a)/(r.current.sc/r.b+r.Config.LargeStepProb))
		}

		if r.chainCoinRNG() <= a {
			r.current = newState
		}
		r.sampleCount++
	}
	r.Accumulator.AddSamples(float64(n))
	r.Logger.Printf("stage complete: %d Metropolis iterations (%d total)\n", n, int64(r.sampleCount))
}

// Output returns the current averaged image.
func (r *MCMCRenderer) Output() []core.Vec3 {
	return r.Accumulator.Averaged()
}
