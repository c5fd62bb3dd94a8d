// Package mcmc implements the Primary-Sample-Space Metropolis Light
// Transport Markov chain: a mutable vector of coordinates in [0,1)
// that drives a PathIntegrator the same way an independent sampler
// would, but can be perturbed to concentrate sampling on
// high-contribution paths.
package mcmc

import "math"

// Chain holds the ordered coordinates of a PSSMLT state. States[0] and
// States[1] are reserved for the pixel-location dimensions; the rest
// are consumed by the path integrator in draw order. It knows the
// target image resolution so pixel mutations can be scaled to it.
type Chain struct {
	States      []float64
	ResolutionX float64
	ResolutionY float64
}

// NewChain creates an empty chain for the given image resolution. Its
// states are populated lazily as a replaying StateSequence consumes them.
func NewChain(resolutionX, resolutionY int) *Chain {
	return &Chain{ResolutionX: float64(resolutionX), ResolutionY: float64(resolutionY)}
}

// LargeStep produces a fresh chain with no retained coordinates: the
// PSSMLT "resample everything" mutation, equivalent to starting an
// independent path from scratch.
func (c *Chain) LargeStep() *Chain {
	return NewChain(int(c.ResolutionX), int(c.ResolutionY))
}

// Mutate returns a copy of c with every existing coordinate perturbed
// by a small Kelemen-style step: the two pixel-location coordinates
// scale with the image resolution, every other coordinate uses a
// fixed small/large window. rng supplies the uniform draws the
// perturbation and any lazy extension need.
func (c *Chain) Mutate(strength float64, rng func() float64) *Chain {
	result := &Chain{
		States:      append([]float64(nil), c.States...),
		ResolutionX: c.ResolutionX,
		ResolutionY: c.ResolutionY,
	}
	for len(result.States) < 2 {
		result.States = append(result.States, rng())
	}

	deltaPixel := 2.0 / (c.ResolutionX + c.ResolutionY)
	result.States[0] = perturb(result.States[0], deltaPixel*strength, 0.1*strength, rng)
	result.States[1] = perturb(result.States[1], deltaPixel*strength, 0.1*strength, rng)
	for i := 2; i < len(result.States); i++ {
		result.States[i] = perturb(result.States[i], strength/1024.0, strength/64.0, rng)
	}
	return result
}

// Get returns state i, lazily extending the chain with fresh uniform
// draws from rng if i falls beyond the chain's current length.
func (c *Chain) Get(i int, rng func() float64) float64 {
	for len(c.States) <= i {
		c.States = append(c.States, rng())
	}
	return c.States[i]
}

// perturb draws a new value near value using an exponential kernel
// that favors small steps (scale s1) but occasionally takes a larger
// one (scale s2), wrapping around [0,1).
func perturb(value, s1, s2 float64, rng func() float64) float64 {
	r := rng()
	var result float64
	if r < 0.5 {
		r *= 2
		result = value + s2*math.Exp(-math.Log(s2/s1)*r)
	} else {
		r = (r - 0.5) * 2
		result = value - s2*math.Exp(-math.Log(s2/s1)*r)
	}
	result -= math.Floor(result)
	return result
}
