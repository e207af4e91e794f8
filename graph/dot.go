// SPDX-License-Identifier: MIT

// Package graph - Graphviz DOT encoding.
//
// Contract:
//   - WriteDOT emits a strict digraph: nodes 0..n-1 in ID order, then one
//     edge statement per distinct (Src, Dst) pair carrying a "weight"
//     attribute. Self-loops are dropped and duplicate pairs summed, as in
//     ToGonum.
//   - ReadDOT accepts "digraph" and "graph" sources. Nodes are numbered in
//     order of first appearance; an undirected edge a -- b yields both a->b
//     and b->a sharing one weight. A missing weight attribute means 1.
//   - WriteDOT followed by ReadDOT reproduces the edge set and weights.
//
// Complexity: O(V + E log E) each way (gonum sorts successors).

package graph

import (
	"fmt"
	"strconv"

	gonum "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	dotfmt "gonum.org/v1/gonum/graph/formats/dot"
	"gonum.org/v1/gonum/graph/simple"
)

const dotWeightKey = "weight"

// dotEdge is a weighted edge whose weight is settable from DOT attributes.
// Both directions of an undirected DOT edge share w.
type dotEdge struct {
	f, t gonum.Node
	w    *float64
}

func newDotEdge(from, to gonum.Node, w float64) *dotEdge {
	return &dotEdge{f: from, t: to, w: &w}
}

func (e *dotEdge) From() gonum.Node { return e.f }
func (e *dotEdge) To() gonum.Node { return e.t }
func (e *dotEdge) Weight() float64 { return *e.w }
func (e *dotEdge) ReversedEdge() gonum.Edge { return &dotEdge{f: e.t, t: e.f, w: e.w} }

func (e *dotEdge) Attributes() []encoding.Attribute {
	return []encoding.Attribute{{Key: dotWeightKey, Value: strconv.FormatFloat(*e.w, 'g', -1, 64)}}
}

// SetAttribute reads "weight"; other attributes are ignored.
func (e *dotEdge) SetAttribute(a encoding.Attribute) error {
	if a.Key != dotWeightKey {
		return nil
	}
	v, err := strconv.ParseFloat(a.Value, 64)
	if err != nil {
		return fmt.Errorf("weight %q: %w", a.Value, err)
	}
	*e.w = v

	return nil
}

// dotBuilder adapts a weighted directed graph to gonum's DOT decoder.
type dotBuilder struct {
	*simple.WeightedDirectedGraph
	undirected bool
}

func (b dotBuilder) NewEdge(from, to gonum.Node) gonum.Edge { return newDotEdge(from, to, 1) }

// SetEdge stores e; self-loops are dropped since ScaledLaplacian strips them.
func (b dotBuilder) SetEdge(e gonum.Edge) {
	if e.From().ID() == e.To().ID() {
		return
	}
	de := e.(*dotEdge)
	b.SetWeightedEdge(de)
	if b.undirected {
		b.SetWeightedEdge(de.ReversedEdge().(*dotEdge))
	}
}

// WriteDOT encodes g as a Graphviz digraph named name.
func WriteDOT(g Graph, name string) ([]byte, error) {
	dg, err := toGonum(g, func(from, to gonum.Node, w float64) gonum.WeightedEdge {
		return newDotEdge(from, to, w)
	})
	if err != nil {
		return nil, graphErrorf(opWriteDOT, err)
	}
	out, err := dot.Marshal(dg, name, "", "\t")
	if err != nil {
		return nil, graphErrorf(opWriteDOT, err)
	}

	return out, nil
}

// ReadDOT decodes a single Graphviz graph. The returned ids map each node
// index to the gonum ID it was decoded under.
// Errors: ErrInvalidGraph for unparsable input or a graph without nodes.
func ReadDOT(data []byte) (Graph, []int64, error) {
	file, err := dotfmt.ParseBytes(data)
	if err != nil {
		return Graph{}, nil, graphErrorf(opReadDOT, fmt.Errorf("%v: %w", err, ErrInvalidGraph))
	}
	if len(file.Graphs) != 1 {
		return Graph{}, nil, graphErrorf(opReadDOT, fmt.Errorf("%d graphs in input: %w", len(file.Graphs), ErrInvalidGraph))
	}
	b := dotBuilder{
		WeightedDirectedGraph: simple.NewWeightedDirectedGraph(0, 0),
		undirected:            !file.Graphs[0].Directed,
	}
	if err = dot.Unmarshal(data, b); err != nil {
		return Graph{}, nil, graphErrorf(opReadDOT, fmt.Errorf("%v: %w", err, ErrInvalidGraph))
	}
	g, ids, err := FromGonum(b)
	if err != nil {
		return Graph{}, nil, graphErrorf(opReadDOT, err)
	}

	return g, ids, nil
}
