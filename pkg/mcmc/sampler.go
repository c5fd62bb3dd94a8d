package mcmc

import "github.com/kjhall/pathlight/pkg/core"

// ChainSampler implements core.Sampler by replaying a Chain's existing
// coordinates in order and lazily extending it with fresh draws from
// rng when the path requests a coordinate beyond the chain's current
// length. Two ChainSamplers over the same chain with the same rng
// produce the same sequence, which is what makes the Markov-chain
// replay deterministic within a single accept/reject comparison.
type ChainSampler struct {
	chain *Chain
	rng   func() float64
	index int
}

// NewChainSampler builds a sampler over chain using rng for any lazy extension.
func NewChainSampler(chain *Chain, rng func() float64) *ChainSampler {
	return &ChainSampler{chain: chain, rng: rng}
}

// Next returns the next coordinate in the chain, extending it if needed.
func (s *ChainSampler) Next() float64 {
	v := s.chain.Get(s.index, s.rng)
	s.index++
	return v
}

// Get2D draws two consecutive coordinates as a 2D sample.
func (s *ChainSampler) Get2D() core.Vec2 {
	return core.NewVec2(s.Next(), s.Next())
}
