// SPDX-License-Identifier: MIT
// Package: stgnn/builder
//
// options.go - functional options and the resolved builder configuration.
//
// Contract:
//   - Option constructors validate and panic on meaningless inputs.
//   - Defaults are deterministic: no RNG, unit weights.
//   - newBuilderConfig applies options in order (later overrides earlier).

package builder

import "math/rand"

// BuilderOption customizes a constructor by mutating builderConfig.
type BuilderOption func(*builderConfig)

// builderConfig is passed by value to constructors.
type builderConfig struct {
	// RNG for stochastic choices and weight draws; nil means no randomness.
	rng *rand.Rand
	// Weight generator; nil means unit weights (Graph.Weights left nil).
	weightFn func(*rand.Rand) float64
}

func newBuilderConfig(opts ...BuilderOption) builderConfig {
	var cfg builderConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithRand provides an explicit RNG. Panics on nil.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) { c.rng = r }
}

// WithSeed installs a fresh *rand.Rand seeded with seed.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithWeightFn sets the per-edge weight generator. The function receives the
// configured RNG, which may be nil. Panics on nil.
func WithWeightFn(fn func(*rand.Rand) float64) BuilderOption {
	if fn == nil {
		panic("builder: WithWeightFn(nil)")
	}
	return func(c *builderConfig) { c.weightFn = fn }
}

// WithUnitWeights drops any weight generator set earlier.
func WithUnitWeights() BuilderOption {
	return func(c *builderConfig) { c.weightFn = nil }
}

// UniformWeight returns a weight generator drawing from [lo, hi). It falls
// back to the midpoint when no RNG is configured. Panics unless lo < hi.
func UniformWeight(lo, hi float64) func(*rand.Rand) float64 {
	if !(lo < hi) {
		panic("builder: UniformWeight requires lo < hi")
	}
	return func(r *rand.Rand) float64 {
		if r == nil {
			return (lo + hi) / 2
		}
		return lo + (hi-lo)*r.Float64()
	}
}
