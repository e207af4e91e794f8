// SPDX-License-Identifier: MIT

package nn

import (
	"math"
	"math/rand"
)

// DefaultSeed seeds the initializer when neither WithSeed nor WithRand is given.
const DefaultSeed int64 = 1

// Default range of the uniform draw for rank-1 parameters.
const (
	DefaultBiasLow  = -0.1
	DefaultBiasHigh = 0.1
)

// Option configures Init.
type Option func(*initConfig)

type initConfig struct {
	rng            *rand.Rand
	biasLo, biasHi float64
}

func newInitConfig(opts ...Option) initConfig {
	cfg := initConfig{biasLo: DefaultBiasLow, biasHi: DefaultBiasHigh}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.rng == nil {
		cfg.rng = rand.New(rand.NewSource(DefaultSeed))
	}

	return cfg
}

// WithSeed seeds a fresh RNG for the initializer.
func WithSeed(seed int64) Option {
	return func(c *initConfig) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithRand shares an existing RNG. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("nn: WithRand(nil)")
	}
	return func(c *initConfig) { c.rng = r }
}

// WithBiasRange sets the [lo, hi) range of the uniform draw for rank-1
// parameters. Panics unless lo < hi and both are finite.
func WithBiasRange(lo, hi float64) Option {
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) || !(lo < hi) {
		panic("nn: WithBiasRange requires finite lo < hi")
	}
	return func(c *initConfig) { c.biasLo, c.biasHi = lo, hi }
}
