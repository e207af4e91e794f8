// SPDX-License-Identifier: MIT

package graph

import (
	"fmt"
	"math"
)

// Edge is a directed (Src, Dst) pair of 0-based node indices.
type Edge struct {
	Src, Dst int
}

// Graph is a weighted directed edge list over NumNodes nodes.
// Weights is either nil (every edge has weight 1) or aligned with Edges.
type Graph struct {
	NumNodes int
	Edges    []Edge
	Weights  []float64
}

// New returns a graph with unit weights over the given edges.
func New(numNodes int, edges ...Edge) Graph {
	return Graph{NumNodes: numNodes, Edges: edges}
}

// NumEdges returns len(g.Edges).
func (g Graph) NumEdges() int { return len(g.Edges) }

// Weight returns the weight of edge e, 1 when g carries no weights.
func (g Graph) Weight(e int) float64 {
	if g.Weights == nil {
		return 1
	}

	return g.Weights[e]
}

// Validate checks the structural invariants of g.
func (g Graph) Validate() error {
	if g.NumNodes < 1 {
		return graphErrorf(opValidate, fmt.Errorf("num_nodes=%d: %w", g.NumNodes, ErrInvalidGraph))
	}
	if g.Weights != nil && len(g.Weights) != len(g.Edges) {
		return graphErrorf(opValidate, fmt.Errorf("%d weights for %d edges: %w", len(g.Weights), len(g.Edges), ErrInvalidGraph))
	}
	for i, e := range g.Edges {
		if e.Src < 0 || e.Src >= g.NumNodes || e.Dst < 0 || e.Dst >= g.NumNodes {
			return graphErrorf(opValidate, fmt.Errorf("edge %d (%d,%d) with %d nodes: %w", i, e.Src, e.Dst, g.NumNodes, ErrInvalidGraph))
		}
	}
	for i, w := range g.Weights {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return graphErrorf(opValidate, fmt.Errorf("weight %d=%v: %w", i, w, ErrInvalidGraph))
		}
	}

	return nil
}
