// SPDX-License-Identifier: MIT

// Package graph - connected components & per-graph splitting.
//
// Components labels nodes with a breadth-first walk over the undirected view
// of the edge list. Its labels are a valid batch vector for ScaledLaplacian,
// so a disjoint union of sensor networks can be split back into its graphs
// and given one λmax each.

package graph

import "fmt"

// Components returns a per-node component id and the number of components.
// Ids are assigned in order of each component's smallest node, and edge
// direction is ignored.
func Components(g Graph) ([]int, int, error) {
	if err := g.Validate(); err != nil {
		return nil, 0, err
	}
	adj := make([][]int, g.NumNodes)
	for _, e := range g.Edges {
		if e.Src == e.Dst {
			continue
		}
		adj[e.Src] = append(adj[e.Src], e.Dst)
		adj[e.Dst] = append(adj[e.Dst], e.Src)
	}

	label := make([]int, g.NumNodes)
	for i := range label {
		label[i] = -1
	}
	queue := make([]int, 0, g.NumNodes)
	count := 0
	for start := 0; start < g.NumNodes; start++ {
		if label[start] >= 0 {
			continue
		}
		label[start] = count
		queue = append(queue[:0], start)
		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			for _, v := range adj[u] {
				if label[v] < 0 {
					label[v] = count
					queue = append(queue, v)
				}
			}
		}
		count++
	}

	return label, count, nil
}

// Split cuts g into numGraphs subgraphs along batch. Nodes keep their
// relative order; edges crossing graphs are rejected.
// Errors: ErrBatchAssignment, ErrInvalidGraph.
func Split(g Graph, batch []int, numGraphs int) ([]Graph, error) {
	if err := g.Validate(); err != nil {
		return nil, graphErrorf(opSplit, err)
	}
	if err := validateBatch(batch, g.NumNodes, numGraphs); err != nil {
		return nil, graphErrorf(opSplit, err)
	}

	local := make([]int, g.NumNodes)
	out := make([]Graph, numGraphs)
	for v, b := range batch {
		local[v] = out[b].NumNodes
		out[b].NumNodes++
	}
	for i := range out {
		if out[i].NumNodes == 0 {
			return nil, graphErrorf(opSplit, fmt.Errorf("graph %d has no nodes: %w", i, ErrBatchAssignment))
		}
	}
	for e, ed := range g.Edges {
		b := batch[ed.Src]
		if batch[ed.Dst] != b {
			return nil, graphErrorf(opSplit, fmt.Errorf("edge %d joins graphs %d and %d: %w", e, b, batch[ed.Dst], ErrBatchAssignment))
		}
		out[b].Edges = append(out[b].Edges, Edge{Src: local[ed.Src], Dst: local[ed.Dst]})
		if g.Weights != nil {
			out[b].Weights = append(out[b].Weights, g.Weights[e])
		}
	}

	return out, nil
}

// EstimateLambdaMaxBatch estimates λmax for every graph of a batched
// disjoint union and returns them as a per-graph LambdaMax.
func EstimateLambdaMaxBatch(g Graph, batch []int, numGraphs int) (LambdaMax, error) {
	parts, err := Split(g, batch, numGraphs)
	if err != nil {
		return LambdaMax{}, graphErrorf(opBatchLmax, err)
	}
	vs := make([]float64, len(parts))
	for i, p := range parts {
		if vs[i], err = EstimateLambdaMax(p); err != nil {
			return LambdaMax{}, graphErrorf(opBatchLmax, fmt.Errorf("graph %d: %w", i, err))
		}
	}

	return PerGraph(vs...), nil
}
