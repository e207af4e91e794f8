// SPDX-License-Identifier: MIT

// Package graph - conversion to and from gonum graphs.

package graph

import (
	"fmt"
	"sort"

	gonum "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

// ToGonum returns g as a gonum weighted directed graph whose node IDs are
// 0..NumNodes-1. Self-loops are skipped (gonum simple graphs reject them) and
// repeated (Src, Dst) pairs are merged by summing their weights.
func ToGonum(g Graph) (*simple.WeightedDirectedGraph, error) {
	dg, err := toGonum(g, func(from, to gonum.Node, w float64) gonum.WeightedEdge {
		return simple.WeightedEdge{F: from, T: to, W: w}
	})
	if err != nil {
		return nil, graphErrorf(opToGonum, err)
	}

	return dg, nil
}

// toGonum fills a fresh gonum graph using mk to build every edge.
func toGonum(g Graph, mk func(from, to gonum.Node, w float64) gonum.WeightedEdge) (*simple.WeightedDirectedGraph, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	dg := simple.NewWeightedDirectedGraph(0, 0)
	for i := 0; i < g.NumNodes; i++ {
		dg.AddNode(simple.Node(int64(i)))
	}
	for e, ed := range g.Edges {
		if ed.Src == ed.Dst {
			continue
		}
		w := g.Weight(e)
		if prev := dg.WeightedEdge(int64(ed.Src), int64(ed.Dst)); prev != nil {
			w += prev.Weight()
		}
		dg.SetWeightedEdge(mk(simple.Node(int64(ed.Src)), simple.Node(int64(ed.Dst)), w))
	}

	return dg, nil
}

// FromGonum converts any gonum weighted graph into a Graph. Nodes are
// renumbered 0..n-1 in ascending ID order; the returned ids slice maps each
// new index back to the gonum node ID. Edges are emitted per source node in
// ascending (source, target) ID order; undirected graphs yield both
// directions.
func FromGonum(wg gonum.Weighted) (Graph, []int64, error) {
	nodes := gonum.NodesOf(wg.Nodes())
	if len(nodes) == 0 {
		return Graph{}, nil, graphErrorf(opFromGonum, fmt.Errorf("no nodes: %w", ErrInvalidGraph))
	}
	ids := make([]int64, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID()
	}
	sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })
	index := make(map[int64]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}

	g := Graph{NumNodes: len(ids)}
	for _, uid := range ids {
		succ := gonum.NodesOf(wg.From(uid))
		sort.Slice(succ, func(a, b int) bool { return succ[a].ID() < succ[b].ID() })
		for _, v := range succ {
			w, ok := wg.Weight(uid, v.ID())
			if !ok {
				continue
			}
			g.Edges = append(g.Edges, Edge{Src: index[uid], Dst: index[v.ID()]})
			g.Weights = append(g.Weights, w)
		}
	}
	if len(g.Edges) == 0 {
		g.Weights = nil
	}

	return g, ids, nil
}
