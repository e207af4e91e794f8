// SPDX-License-Identifier: MIT

package astgcn_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/stgnn/graph"
	"github.com/katalvlaran/stgnn/nn"
	"github.com/katalvlaran/stgnn/tensor"
)

// randomTensor fills a tensor with seeded values in [-1, 1).
func randomTensor(t *testing.T, seed int64, dims ...int) *tensor.Tensor {
	t.Helper()
	x, err := tensor.New(dims...)
	require.NoError(t, err)
	r := rand.New(rand.NewSource(seed))
	for i := range x.Data() {
		x.Data()[i] = r.Float64()*2 - 1
	}

	return x
}

// ring returns the bidirectional n-cycle.
func ring(n int) graph.Graph {
	g := graph.Graph{NumNodes: n}
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		g.Edges = append(g.Edges, graph.Edge{Src: i, Dst: j}, graph.Edge{Src: j, Dst: i})
	}

	return g
}

// complete returns K_n with both directions.
func complete(n int) graph.Graph {
	g := graph.Graph{NumNodes: n}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j {
				g.Edges = append(g.Edges, graph.Edge{Src: i, Dst: j})
			}
		}
	}

	return g
}

// attention returns a (B, N, N) tensor whose columns sum to 1.
func attention(t *testing.T, seed int64, b, n int) *tensor.Tensor {
	t.Helper()
	s, err := randomTensor(t, seed, b, n, n).SoftmaxAxis(1)
	require.NoError(t, err)

	return s
}

// paramByName finds a parameter or fails the test.
func paramByName(t *testing.T, params []nn.Param, name string) nn.Param {
	t.Helper()
	m, err := nn.Index(params)
	require.NoError(t, err)
	p, ok := m[name]
	require.True(t, ok, "param %q", name)

	return p
}

// at reads x at idx or fails the test.
func at(t *testing.T, x *tensor.Tensor, idx ...int) float64 {
	t.Helper()
	v, err := x.At(idx...)
	require.NoError(t, err)

	return v
}

// expNeg returns e^-v.
func expNeg(v float64) float64 { return math.Exp(-v) }

// mustTensor wraps tensor.FromSlice.
func mustTensor(t *testing.T, data []float64, dims ...int) *tensor.Tensor {
	t.Helper()
	x, err := tensor.FromSlice(data, dims...)
	require.NoError(t, err)

	return x
}
