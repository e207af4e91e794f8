// SPDX-License-Identifier: MIT

package astgcn_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/stgnn/astgcn"
	"github.com/katalvlaran/stgnn/graph"
	"github.com/katalvlaran/stgnn/nn"
	"github.com/katalvlaran/stgnn/tensor"
)

func TestPropagate_ReversedDirection(t *testing.T) {
	// edge (0 → 1): node 0 receives node 1's features
	edges := []graph.Edge{{Src: 0, Dst: 1}}
	x, err := tensor.FromSlice([]float64{1, 2, 10, 20}, 1, 2, 2)
	require.NoError(t, err)
	out, err := astgcn.Propagate(edges, astgcn.SharedWeights{0.5}, x)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 10, 0, 0}, out.Data())
}

func TestPropagate_ZeroWeightKeepsNonFinite(t *testing.T) {
	edges := []graph.Edge{{Src: 0, Dst: 1}}
	x, err := tensor.FromSlice([]float64{1, math.Inf(1)}, 1, 2, 1)
	require.NoError(t, err)
	out, err := astgcn.Propagate(edges, astgcn.SharedWeights{0}, x)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(out.Data()[0]))
	assert.Equal(t, 0.0, out.Data()[1])

	out, err = astgcn.Propagate(edges, astgcn.BatchedWeights{Batch: 1, Values: []float64{0}}, x)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(out.Data()[0]))
}

func TestPropagate_SharedEqualsBatchedRows(t *testing.T) {
	g := ring(5)
	w := make(astgcn.SharedWeights, g.NumEdges())
	for i := range w {
		w[i] = float64(i+1) / 10
	}
	bw := astgcn.BatchedWeights{Batch: 3}
	for b := 0; b < 3; b++ {
		bw.Values = append(bw.Values, w...)
	}
	x := randomTensor(t, 4, 3, 5, 2)
	a, err := astgcn.Propagate(g.Edges, w, x)
	require.NoError(t, err)
	b, err := astgcn.Propagate(g.Edges, bw, x)
	require.NoError(t, err)
	assert.True(t, tensor.AllClose(a, b, 0, 0))

	_, err = astgcn.Propagate(g.Edges, astgcn.SharedWeights{1}, x)
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)
	_, err = astgcn.Propagate(g.Edges, astgcn.BatchedWeights{Batch: 2, Values: bw.Values}, x)
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)
	_, err = astgcn.Propagate([]graph.Edge{{Src: 0, Dst: 9}}, astgcn.SharedWeights{1}, x)
	require.ErrorIs(t, err, graph.ErrInvalidGraph)
}

func TestChebConv_KOneIgnoresEdges(t *testing.T) {
	cfg := astgcn.ChebConfig{InChannels: 3, OutChannels: 4, K: 1, Normalization: graph.Sym, Bias: true}
	c, err := astgcn.NewChebConvAttention(cfg, nn.WithSeed(3))
	require.NoError(t, err)
	x := randomTensor(t, 7, 2, 5, 3)
	att := attention(t, 8, 2, 5)

	var outs []*tensor.Tensor
	for _, g := range []graph.Graph{ring(5), complete(5), graph.New(5)} {
		out, err := c.Forward(x, g, att, graph.LambdaMax{}, nil)
		require.NoError(t, err)
		require.Equal(t, []int{2, 5, 4}, out.Shape())
		outs = append(outs, out)
	}
	assert.True(t, tensor.AllClose(outs[0], outs[1], 0, 1e-12))
	assert.True(t, tensor.AllClose(outs[0], outs[2], 0, 1e-12))

	// out[b,i,o] = bias[o] + Σ_f att[b,i,i]·x[b,i,f]·W[0,f,o]
	w := paramByName(t, c.Params(), "weight").Tensor
	bias := paramByName(t, c.Params(), "bias").Tensor
	for b := 0; b < 2; b++ {
		for i := 0; i < 5; i++ {
			gate := at(t, att, b, i, i)
			for o := 0; o < 4; o++ {
				want := at(t, bias, o)
				for f := 0; f < 3; f++ {
					want += gate * at(t, x, b, i, f) * at(t, w, 0, f, o)
				}
				assert.InDelta(t, want, at(t, outs[2], b, i, o), 1e-12)
			}
		}
	}
}

// extendK copies src's parameters into a layer with one more Chebyshev term
// whose weight slice is zero.
func extendK(t *testing.T, src *astgcn.ChebConvAttention) *astgcn.ChebConvAttention {
	t.Helper()
	cfg := src.Config()
	cfg.K++
	dst, err := astgcn.NewChebConvAttention(cfg, nn.WithSeed(99))
	require.NoError(t, err)

	sw := paramByName(t, src.Params(), "weight").Tensor
	dw := paramByName(t, dst.Params(), "weight").Tensor
	for i := range dw.Data() {
		dw.Data()[i] = 0
	}
	copy(dw.Data(), sw.Data()) // leading K slices, row-major
	if cfg.Bias {
		require.NoError(t, paramByName(t, dst.Params(), "bias").CopyFrom(paramByName(t, src.Params(), "bias").Tensor))
	}

	return dst
}

func TestChebConv_ZeroExtraOrderLeavesOutput(t *testing.T) {
	x := randomTensor(t, 21, 2, 6, 2)
	att := attention(t, 22, 2, 6)
	g := ring(6)
	g.Weights = []float64{1, 2, 0.5, 1, 3, 1, 1, 1, 2, 2, 0.25, 4}

	for _, k := range []int{1, 2, 3, 4} {
		for _, norm := range []graph.Normalization{graph.Sym, graph.RW, graph.None} {
			cfg := astgcn.ChebConfig{InChannels: 2, OutChannels: 3, K: k, Normalization: norm, Bias: true}
			c, err := astgcn.NewChebConvAttention(cfg, nn.WithSeed(int64(k)))
			require.NoError(t, err)
			lam := graph.Scalar(3.5)

			base, err := c.Forward(x, g, att, lam, nil)
			require.NoError(t, err)
			ext, err := extendK(t, c).Forward(x, g, att, lam, nil)
			require.NoError(t, err)
			assert.True(t, tensor.AllClose(base, ext, 0, 1e-12), "K=%d norm=%v", k, norm)
		}
	}
}

func TestChebConv_KTwoMatchesManualPropagation(t *testing.T) {
	// path 0-1, sym, λ=2: off-diagonal -1, self-loops -1
	g := graph.New(2, graph.Edge{Src: 0, Dst: 1}, graph.Edge{Src: 1, Dst: 0})
	cfg := astgcn.ChebConfig{InChannels: 1, OutChannels: 1, K: 2, Normalization: graph.Sym}
	c, err := astgcn.NewChebConvAttention(cfg)
	require.NoError(t, err)
	require.NoError(t, paramByName(t, c.Params(), "weight").CopyFrom(mustTensor(t, []float64{1, 1}, 2, 1, 1)))

	x := mustTensor(t, []float64{2, 3}, 1, 2, 1)
	att := mustTensor(t, []float64{0.25, 0.5, 0.75, 0.5}, 1, 2, 2)
	out, err := c.Forward(x, g, att, graph.LambdaMax{}, nil)
	require.NoError(t, err)

	// T0 = diag(att)·x = [0.5, 1.5]
	// T1[0] = ŵ(0,1)·att[0,1]·T0[1] + ŵ(0,0)·att[0,0]·T0[0] = -0.75 - 0.125
	// T1[1] = ŵ(1,0)·att[1,0]·T0[0] + ŵ(1,1)·att[1,1]·T0[1] = -0.375 - 0.75
	assert.InDeltaSlice(t, []float64{0.5 - 0.875, 1.5 - 1.125}, out.Data(), 1e-12)
}

func TestChebConv_LambdaRequired(t *testing.T) {
	for _, norm := range []graph.Normalization{graph.None, graph.RW} {
		c, err := astgcn.NewChebConvAttention(astgcn.ChebConfig{InChannels: 1, OutChannels: 2, K: 2, Normalization: norm})
		require.NoError(t, err)
		_, err = c.Forward(randomTensor(t, 1, 2, 4, 1), ring(4), attention(t, 2, 2, 4), graph.LambdaMax{}, nil)
		require.ErrorIs(t, err, graph.ErrLambdaMaxRequired)
	}
}

func TestChebConv_ZeroLambdaIsFinite(t *testing.T) {
	c, err := astgcn.NewChebConvAttention(astgcn.ChebConfig{InChannels: 2, OutChannels: 2, K: 3, Normalization: graph.None, Bias: true})
	require.NoError(t, err)
	out, err := c.Forward(randomTensor(t, 3, 2, 4, 2), ring(4), attention(t, 4, 2, 4), graph.Scalar(0), nil)
	require.NoError(t, err)
	assert.True(t, out.AllFinite())
}

func TestChebConv_PerGraphLambda(t *testing.T) {
	// two disjoint rings batched into one graph
	g := ring(3)
	for _, e := range ring(3).Edges {
		g.Edges = append(g.Edges, graph.Edge{Src: e.Src + 3, Dst: e.Dst + 3})
	}
	g.NumNodes = 6
	batch := []int{0, 0, 0, 1, 1, 1}

	c, err := astgcn.NewChebConvAttention(astgcn.ChebConfig{InChannels: 1, OutChannels: 1, K: 2, Normalization: graph.None})
	require.NoError(t, err)
	x := randomTensor(t, 5, 1, 6, 1)
	att := attention(t, 6, 1, 6)

	same, err := c.Forward(x, g, att, graph.PerGraph(3, 3), batch)
	require.NoError(t, err)
	scalar, err := c.Forward(x, g, att, graph.Scalar(3), nil)
	require.NoError(t, err)
	assert.True(t, tensor.AllClose(same, scalar, 0, 1e-12))

	diff, err := c.Forward(x, g, att, graph.PerGraph(3, 1.5), batch)
	require.NoError(t, err)
	// graph 0 unchanged, graph 1 differs
	for i := 0; i < 3; i++ {
		assert.InDelta(t, at(t, scalar, 0, i, 0), at(t, diff, 0, i, 0), 1e-12)
	}
	assert.NotEqual(t, at(t, scalar, 0, 4, 0), at(t, diff, 0, 4, 0))
}

func TestChebConv_ShapeErrors(t *testing.T) {
	c, err := astgcn.NewChebConvAttention(astgcn.ChebConfig{InChannels: 2, OutChannels: 2, K: 2, Normalization: graph.Sym})
	require.NoError(t, err)
	att := attention(t, 1, 2, 4)

	_, err = c.Forward(randomTensor(t, 1, 2, 4, 3), ring(4), att, graph.LambdaMax{}, nil)
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)
	_, err = c.Forward(randomTensor(t, 1, 2, 4, 2), ring(5), att, graph.LambdaMax{}, nil)
	require.ErrorIs(t, err, graph.ErrNodeCountMismatch)
	_, err = c.Forward(randomTensor(t, 1, 3, 4, 2), ring(4), att, graph.LambdaMax{}, nil)
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)
}

func TestChebConfig_Validate(t *testing.T) {
	for _, cfg := range []astgcn.ChebConfig{
		{InChannels: 0, OutChannels: 1, K: 1},
		{InChannels: 1, OutChannels: 0, K: 1},
		{InChannels: 1, OutChannels: 1, K: 0},
		{InChannels: 1, OutChannels: 1, K: 1, Normalization: graph.Normalization(7)},
	} {
		_, err := astgcn.NewChebConvAttention(cfg)
		require.ErrorIs(t, err, astgcn.ErrInvalidConfig)
	}
}
