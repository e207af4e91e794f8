// SPDX-License-Identifier: MIT
// Package: stgnn/builder
//
// impl_topologies.go - deterministic constructors.
//
// Determinism:
//   - Nodes are 0..n-1 (Grid: row-major r*cols+c).
//   - Every undirected link is emitted as (u,v) then (v,u).
//   - Link order is documented per constructor and stable across runs.
//
// Complexity: O(V + E) for every constructor.

package builder

import "fmt"

const (
	methodCycle    = "Cycle"
	methodPath     = "Path"
	methodStar     = "Star"
	methodComplete = "Complete"
	methodGrid     = "Grid"

	minCycleNodes    = 3
	minPathNodes     = 2
	minStarNodes     = 2
	minCompleteNodes = 1
	minGridDim       = 1
)

// tooFew builds the uniform size error.
func tooFew(method, param string, got, min int) error {
	return builderErrorf(method, fmt.Errorf("%s=%d (min %d): %w", param, got, min, ErrTooFewVertices))
}

// Cycle returns the ring C_n: links (i, i+1 mod n) for i = 0..n-1.
func Cycle(n int) Constructor {
	return func(b *edgeBuffer, cfg builderConfig) error {
		if n < minCycleNodes {
			return tooFew(methodCycle, "n", n, minCycleNodes)
		}
		b.numNodes = n
		for i := 0; i < n; i++ {
			b.link(i, (i+1)%n, cfg)
		}

		return nil
	}
}

// Path returns P_n: links (i, i+1) for i = 0..n-2.
func Path(n int) Constructor {
	return func(b *edgeBuffer, cfg builderConfig) error {
		if n < minPathNodes {
			return tooFew(methodPath, "n", n, minPathNodes)
		}
		b.numNodes = n
		for i := 0; i+1 < n; i++ {
			b.link(i, i+1, cfg)
		}

		return nil
	}
}

// Star returns S_n with hub 0: links (0, i) for i = 1..n-1.
func Star(n int) Constructor {
	return func(b *edgeBuffer, cfg builderConfig) error {
		if n < minStarNodes {
			return tooFew(methodStar, "n", n, minStarNodes)
		}
		b.numNodes = n
		for i := 1; i < n; i++ {
			b.link(0, i, cfg)
		}

		return nil
	}
}

// Complete returns K_n: links (i, j) for i < j in lexicographic order.
// K_1 is a single isolated node.
func Complete(n int) Constructor {
	return func(b *edgeBuffer, cfg builderConfig) error {
		if n < minCompleteNodes {
			return tooFew(methodComplete, "n", n, minCompleteNodes)
		}
		b.numNodes = n
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				b.link(i, j, cfg)
			}
		}

		return nil
	}
}

// Grid returns a rows×cols 4-neighbour lattice. For each cell in row-major
// order it links the right neighbour, then the bottom one.
func Grid(rows, cols int) Constructor {
	return func(b *edgeBuffer, cfg builderConfig) error {
		if rows < minGridDim || cols < minGridDim {
			return builderErrorf(methodGrid, fmt.Errorf("rows=%d, cols=%d (each min %d): %w", rows, cols, minGridDim, ErrTooFewVertices))
		}
		b.numNodes = rows * cols
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				u := r*cols + c
				if c+1 < cols {
					b.link(u, u+1, cfg)
				}
				if r+1 < rows {
					b.link(u, u+cols, cfg)
				}
			}
		}

		return nil
	}
}

// Isolated returns n nodes and no edges.
func Isolated(n int) Constructor {
	return func(b *edgeBuffer, _ builderConfig) error {
		if n < 1 {
			return tooFew("Isolated", "n", n, 1)
		}
		b.numNodes = n

		return nil
	}
}
