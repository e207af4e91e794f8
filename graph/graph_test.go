// SPDX-License-Identifier: MIT

package graph_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/katalvlaran/stgnn/graph"
)

// ring returns the bidirectional n-cycle.
func ring(n int) graph.Graph {
	g := graph.Graph{NumNodes: n}
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		g.Edges = append(g.Edges, graph.Edge{Src: i, Dst: j}, graph.Edge{Src: j, Dst: i})
	}

	return g
}

// selfLoops returns the weights of (i,i) entries keyed by node.
func selfLoops(l graph.EdgeList) map[int][]float64 {
	out := map[int][]float64{}
	for e, ed := range l.Edges {
		if ed.Src == ed.Dst {
			out[ed.Src] = append(out[ed.Src], l.Weights[e])
		}
	}

	return out
}

func TestGraph_Validate(t *testing.T) {
	cases := []struct {
		name string
		g    graph.Graph
	}{
		{"no nodes", graph.Graph{}},
		{"endpoint out of range", graph.New(2, graph.Edge{Src: 0, Dst: 2})},
		{"negative endpoint", graph.New(2, graph.Edge{Src: -1, Dst: 0})},
		{"misaligned weights", graph.Graph{NumNodes: 2, Edges: []graph.Edge{{Src: 0, Dst: 1}}, Weights: []float64{1, 2}}},
		{"nan weight", graph.Graph{NumNodes: 2, Edges: []graph.Edge{{Src: 0, Dst: 1}}, Weights: []float64{math.NaN()}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, tc.g.Validate(), graph.ErrInvalidGraph)
		})
	}
	require.NoError(t, ring(4).Validate())
	require.NoError(t, graph.New(3).Validate())
}

func TestParseNormalization(t *testing.T) {
	for in, want := range map[string]graph.Normalization{
		"": graph.None, "none": graph.None, "SYM": graph.Sym, " rw ": graph.RW,
	} {
		got, err := graph.ParseNormalization(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := graph.ParseNormalization("laplace")
	require.ErrorIs(t, err, graph.ErrInvalidNormalization)
	assert.Equal(t, "sym", graph.Sym.String())
}

func TestScaledLaplacian_SymSelfLoopsExactlyMinusOne(t *testing.T) {
	g := ring(5)
	g.Weights = []float64{0.5, 3, 7, 1, 2, 2, 9, 0.1, 4, 4}
	// an input self-loop must be stripped
	g.Edges = append(g.Edges, graph.Edge{Src: 2, Dst: 2})
	g.Weights = append(g.Weights, 11)

	for _, lam := range []graph.LambdaMax{{}, graph.Scalar(1.3), graph.Scalar(0)} {
		l, err := graph.ScaledLaplacian(g, graph.Sym, lam, nil)
		require.NoError(t, err)
		loops := selfLoops(l)
		require.Len(t, loops, 5)
		for i := 0; i < 5; i++ {
			assert.Equal(t, []float64{-1}, loops[i], "node %d", i)
		}
		assert.Equal(t, 10+5, l.Len())
	}
}

func TestScaledLaplacian_SymRing(t *testing.T) {
	// ring degree 2: off-diagonal -1/2, scaled by 2/2 -> -1/2
	l, err := graph.ScaledLaplacian(ring(4), graph.Sym, graph.LambdaMax{}, nil)
	require.NoError(t, err)
	for e, ed := range l.Edges {
		if ed.Src != ed.Dst {
			assert.InDelta(t, -0.5, l.Weights[e], 1e-12)
		}
	}
}

func TestScaledLaplacian_NoneAndRW(t *testing.T) {
	g := graph.Graph{
		NumNodes: 3,
		Edges:    []graph.Edge{{Src: 0, Dst: 1}, {Src: 0, Dst: 2}, {Src: 1, Dst: 0}},
		Weights:  []float64{2, 6, 4},
	}
	l, err := graph.ScaledLaplacian(g, graph.None, graph.Scalar(4), nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{-1, -3, -2, -1, -1, -1}, l.Weights)

	// deg[0]=8, deg[1]=4
	l, err = graph.ScaledLaplacian(g, graph.RW, graph.Scalar(2), nil)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{-0.25, -0.75, -1, -1, -1, -1}, l.Weights, 1e-12)
}

func TestScaledLaplacian_LambdaRequired(t *testing.T) {
	for _, norm := range []graph.Normalization{graph.None, graph.RW} {
		_, err := graph.ScaledLaplacian(ring(4), norm, graph.LambdaMax{}, nil)
		require.ErrorIs(t, err, graph.ErrLambdaMaxRequired)
	}
	_, err := graph.ScaledLaplacian(ring(4), graph.Normalization(9), graph.Scalar(1), nil)
	require.ErrorIs(t, err, graph.ErrInvalidNormalization)
}

func TestScaledLaplacian_ZeroLambdaClampsToZero(t *testing.T) {
	for _, norm := range []graph.Normalization{graph.None, graph.Sym, graph.RW} {
		l, err := graph.ScaledLaplacian(ring(4), norm, graph.Scalar(0), nil)
		require.NoError(t, err)
		for e, ed := range l.Edges {
			require.False(t, math.IsInf(l.Weights[e], 0) || math.IsNaN(l.Weights[e]))
			if ed.Src != ed.Dst {
				assert.Equal(t, 0.0, l.Weights[e])
			}
		}
	}
}

func TestScaledLaplacian_PerGraphLambda(t *testing.T) {
	// two disjoint 2-node graphs: nodes {0,1} in graph 0, {2,3} in graph 1
	g := graph.New(4,
		graph.Edge{Src: 0, Dst: 1}, graph.Edge{Src: 1, Dst: 0},
		graph.Edge{Src: 2, Dst: 3}, graph.Edge{Src: 3, Dst: 2},
	)
	batch := []int{0, 0, 1, 1}
	l, err := graph.ScaledLaplacian(g, graph.None, graph.PerGraph(1, 4), batch)
	require.NoError(t, err)
	assert.Equal(t, []float64{-2, -2, -0.5, -0.5, -1, -1, -1, -1}, l.Weights)

	_, err = graph.ScaledLaplacian(g, graph.None, graph.PerGraph(1, 4), nil)
	require.ErrorIs(t, err, graph.ErrBatchAssignment)
	_, err = graph.ScaledLaplacian(g, graph.None, graph.PerGraph(1, 4), []int{0, 0, 1, 2})
	require.ErrorIs(t, err, graph.ErrBatchAssignment)

	// a single-entry PerGraph acts as a scalar and needs no batch
	_, err = graph.ScaledLaplacian(g, graph.None, graph.PerGraph(2), nil)
	require.NoError(t, err)
}

func TestEdgeList_ToDenseDiagonal(t *testing.T) {
	// only the inserted self-loops reach the diagonal
	l, err := graph.ScaledLaplacian(ring(6), graph.Sym, graph.Scalar(2), nil)
	require.NoError(t, err)
	d, err := l.ToDense()
	require.NoError(t, err)
	for i := 0; i < 6; i++ {
		v, err := d.At(i, i)
		require.NoError(t, err)
		assert.Equal(t, -1.0, v)
	}
}

func TestEstimateLambdaMax(t *testing.T) {
	// 4-cycle Laplacian eigenvalues {0,2,2,4}
	lmax, err := graph.EstimateLambdaMax(ring(4))
	require.NoError(t, err)
	assert.InDelta(t, 4.0, lmax, 1e-9)

	// isolated nodes: L = 0
	lmax, err = graph.EstimateLambdaMax(graph.New(3))
	require.NoError(t, err)
	assert.Equal(t, 0.0, lmax)

	// directed 3-cycle: eigenvalues 1 - ω^k, dominant real part 1.5
	lmax, err = graph.EstimateLambdaMax(graph.New(3,
		graph.Edge{Src: 0, Dst: 1}, graph.Edge{Src: 1, Dst: 2}, graph.Edge{Src: 2, Dst: 0}))
	require.NoError(t, err)
	assert.InDelta(t, 1.5, lmax, 1e-9)

	_, err = graph.EstimateLambdaMax(graph.Graph{})
	require.ErrorIs(t, err, graph.ErrInvalidGraph)
}

func TestTopology_Validate(t *testing.T) {
	g := ring(4)
	require.NoError(t, graph.Static(g).Validate(4, 7))
	require.ErrorIs(t, graph.Static(g).Validate(5, 7), graph.ErrNodeCountMismatch)
	require.ErrorIs(t, graph.Topology{}.Validate(4, 1), graph.ErrInvalidGraph)

	seq := graph.Sequence(g, ring(4), graph.New(4))
	assert.True(t, seq.IsSequence())
	require.NoError(t, seq.Validate(4, 3))
	require.ErrorIs(t, seq.Validate(4, 2), graph.ErrSequenceLength)
	assert.Equal(t, 0, seq.At(2).NumEdges())
	assert.Equal(t, 8, graph.Static(g).At(5).NumEdges())

	strided := seq.Strided(2, 2)
	require.NoError(t, strided.Validate(4, 2))
	assert.Equal(t, 8, strided.At(0).NumEdges())
	assert.Equal(t, 0, strided.At(1).NumEdges())
	assert.False(t, graph.Static(g).Strided(3, 1).IsSequence())
}

func TestGonumRoundTrip(t *testing.T) {
	g := ring(4)
	g.Weights = []float64{1, 2, 3, 4, 5, 6, 7, 8}
	g.Edges = append(g.Edges, graph.Edge{Src: 1, Dst: 1}, graph.Edge{Src: 0, Dst: 1})
	g.Weights = append(g.Weights, 100, 10)

	dg, err := graph.ToGonum(g)
	require.NoError(t, err)
	assert.Equal(t, 4, dg.Nodes().Len())
	w, ok := dg.Weight(0, 1)
	require.True(t, ok)
	assert.Equal(t, 11.0, w)

	back, ids, err := graph.FromGonum(dg)
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 1, 2, 3}, ids)
	assert.Equal(t, 4, back.NumNodes)
	assert.Equal(t, 8, back.NumEdges())
	assert.Equal(t, graph.Edge{Src: 0, Dst: 1}, back.Edges[0])
	assert.Equal(t, 11.0, back.Weights[0])
}

func TestFromGonum_Undirected(t *testing.T) {
	ug := simple.NewWeightedUndirectedGraph(0, 0)
	ug.SetWeightedEdge(ug.NewWeightedEdge(simple.Node(10), simple.Node(20), 2.5))
	g, ids, err := graph.FromGonum(ug)
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 20}, ids)
	assert.Equal(t, []graph.Edge{{Src: 0, Dst: 1}, {Src: 1, Dst: 0}}, g.Edges)
	assert.Equal(t, []float64{2.5, 2.5}, g.Weights)

	_, _, err = graph.FromGonum(simple.NewWeightedUndirectedGraph(0, 0))
	require.ErrorIs(t, err, graph.ErrInvalidGraph)
}

func TestComponents_AndSplit(t *testing.T) {
	// ring(3) on 0..2, a directed edge 4->3, node 5 isolated
	g := ring(3)
	g.NumNodes = 6
	g.Edges = append(g.Edges, graph.Edge{Src: 4, Dst: 3})

	labels, n, err := graph.Components(g)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []int{0, 0, 0, 1, 1, 2}, labels)

	parts, err := graph.Split(g, labels, n)
	require.NoError(t, err)
	require.Len(t, parts, 3)
	assert.Equal(t, 3, parts[0].NumNodes)
	assert.Len(t, parts[0].Edges, 6)
	assert.Equal(t, []graph.Edge{{Src: 1, Dst: 0}}, parts[1].Edges)
	assert.Equal(t, 1, parts[2].NumNodes)
	assert.Empty(t, parts[2].Edges)

	_, err = graph.Split(g, []int{0, 0, 1, 1, 1, 2}, 3)
	require.ErrorIs(t, err, graph.ErrBatchAssignment)
	_, err = graph.Split(g, labels, 4)
	require.ErrorIs(t, err, graph.ErrBatchAssignment)
}

func TestEstimateLambdaMaxBatch(t *testing.T) {
	// two rings of 4: the 4-cycle Laplacian has λmax = 4
	g := graph.Graph{NumNodes: 8}
	for _, off := range []int{0, 4} {
		for _, e := range ring(4).Edges {
			g.Edges = append(g.Edges, graph.Edge{Src: e.Src + off, Dst: e.Dst + off})
		}
	}
	labels, n, err := graph.Components(g)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	l, err := graph.EstimateLambdaMaxBatch(g, labels, n)
	require.NoError(t, err)
	require.Equal(t, 2, l.Len())
	for _, v := range l.Values() {
		assert.InDelta(t, 4, v, 1e-9)
	}

	_, err = graph.ScaledLaplacian(g, graph.RW, l, labels)
	require.NoError(t, err)
}

// edgeWeights flattens g into (src, dst) → weight.
func edgeWeights(g graph.Graph) map[graph.Edge]float64 {
	out := map[graph.Edge]float64{}
	for e, ed := range g.Edges {
		out[ed] += g.Weight(e)
	}

	return out
}

func TestDOT_RoundTrip(t *testing.T) {
	g := ring(4)
	g.Weights = []float64{1, 1, 0.5, 0.5, 2.25, 2.25, 3, 3}
	g.Edges = append(g.Edges, graph.Edge{Src: 2, Dst: 2})
	g.Weights = append(g.Weights, 9)

	data, err := graph.WriteDOT(g, "ring")
	require.NoError(t, err)
	assert.Contains(t, string(data), "digraph ring")
	assert.Contains(t, string(data), "weight=2.25")

	back, ids, err := graph.ReadDOT(data)
	require.NoError(t, err)
	assert.Equal(t, 4, back.NumNodes)
	assert.Equal(t, []int64{0, 1, 2, 3}, ids)
	want := edgeWeights(ring(4))
	for k := range want {
		want[k] = 0
	}
	for e, ed := range g.Edges {
		if ed.Src != ed.Dst {
			want[ed] += g.Weights[e]
		}
	}
	assert.Equal(t, want, edgeWeights(back))
}

func TestReadDOT_Undirected(t *testing.T) {
	src := []byte(`graph sensors {
	a -- b [weight=0.5];
	b -- c;
	c -- c;
}`)
	g, _, err := graph.ReadDOT(src)
	require.NoError(t, err)
	assert.Equal(t, 3, g.NumNodes)
	assert.Equal(t, map[graph.Edge]float64{
		{Src: 0, Dst: 1}: 0.5, {Src: 1, Dst: 0}: 0.5,
		{Src: 1, Dst: 2}: 1, {Src: 2, Dst: 1}: 1,
	}, edgeWeights(g))

	_, _, err = graph.ReadDOT([]byte("digraph { a -> b [weight=x] }"))
	require.ErrorIs(t, err, graph.ErrInvalidGraph)
	_, _, err = graph.ReadDOT([]byte("not dot"))
	require.ErrorIs(t, err, graph.ErrInvalidGraph)
}
