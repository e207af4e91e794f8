// SPDX-License-Identifier: MIT
// Package: stgnn/builder
//
// api.go - Constructor type, Build and BuildBatch.

package builder

import (
	"fmt"

	"github.com/katalvlaran/stgnn/graph"
)

// Constructor emits one topology into an edge buffer under a resolved config.
type Constructor func(b *edgeBuffer, cfg builderConfig) error

// edgeBuffer accumulates nodes and edges for one constructor.
type edgeBuffer struct {
	numNodes int
	edges    []graph.Edge
	weights  []float64
}

// link appends (u,v) and (v,u) sharing one weight draw.
func (b *edgeBuffer) link(u, v int, cfg builderConfig) {
	w := 1.0
	if cfg.weightFn != nil {
		w = cfg.weightFn(cfg.rng)
	}
	b.edges = append(b.edges, graph.Edge{Src: u, Dst: v}, graph.Edge{Src: v, Dst: u})
	b.weights = append(b.weights, w, w)
}

// Build runs cons and returns the resulting graph. Without WithWeightFn the
// graph carries no weight slice (unit weights).
func Build(cons Constructor, opts ...BuilderOption) (graph.Graph, error) {
	g, _, err := BuildBatch(opts, cons)
	if err != nil {
		return graph.Graph{}, err
	}

	return g, nil
}

// BuildBatch runs every constructor and joins the results into a disjoint
// union: constructor i's nodes are shifted past those of constructors 0..i-1.
// batch[v] is the index of the constructor that produced node v.
func BuildBatch(opts []BuilderOption, cons ...Constructor) (graph.Graph, []int, error) {
	if len(cons) == 0 {
		return graph.Graph{}, nil, fmt.Errorf("BuildBatch: no constructors: %w", ErrConstructFailed)
	}
	cfg := newBuilderConfig(opts...)

	var out graph.Graph
	var batch []int
	for i, fn := range cons {
		if fn == nil {
			return graph.Graph{}, nil, fmt.Errorf("BuildBatch: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		var b edgeBuffer
		if err := fn(&b, cfg); err != nil {
			return graph.Graph{}, nil, fmt.Errorf("BuildBatch: %w", err)
		}
		off := out.NumNodes
		for _, e := range b.edges {
			out.Edges = append(out.Edges, graph.Edge{Src: e.Src + off, Dst: e.Dst + off})
		}
		out.Weights = append(out.Weights, b.weights...)
		for v := 0; v < b.numNodes; v++ {
			batch = append(batch, i)
		}
		out.NumNodes += b.numNodes
	}
	if cfg.weightFn == nil {
		out.Weights = nil
	}
	if err := out.Validate(); err != nil {
		return graph.Graph{}, nil, fmt.Errorf("BuildBatch: %v: %w", err, ErrConstructFailed)
	}

	return out, batch, nil
}
