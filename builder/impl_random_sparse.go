// SPDX-License-Identifier: MIT
// Package: stgnn/builder
//
// impl_random_sparse.go - Erdős–Rényi G(n,p) constructor.
//
// Contract:
//   - n ≥ 1, p ∈ [0,1], a configured RNG (WithSeed/WithRand).
//   - Pairs (i,j), i<j, are visited in lexicographic order; each is linked
//     with probability p. The weight draw, if any, follows the Bernoulli draw.

package builder

import "fmt"

const methodRandomSparse = "RandomSparse"

// RandomSparse returns a seeded G(n,p) random undirected graph.
func RandomSparse(n int, p float64) Constructor {
	return func(b *edgeBuffer, cfg builderConfig) error {
		if n < 1 {
			return tooFew(methodRandomSparse, "n", n, 1)
		}
		if p < 0 || p > 1 {
			return builderErrorf(methodRandomSparse, fmt.Errorf("p=%v: %w", p, ErrInvalidProbability))
		}
		if cfg.rng == nil {
			return builderErrorf(methodRandomSparse, ErrNeedRandSource)
		}
		b.numNodes = n
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if cfg.rng.Float64() < p {
					b.link(i, j, cfg)
				}
			}
		}

		return nil
	}
}
