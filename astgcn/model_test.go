// SPDX-License-Identifier: MIT

package astgcn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/stgnn/astgcn"
	"github.com/katalvlaran/stgnn/graph"
	"github.com/katalvlaran/stgnn/nn"
	"github.com/katalvlaran/stgnn/tensor"
)

func smallModelConfig() astgcn.ModelConfig {
	return astgcn.ModelConfig{
		NumBlocks:     2,
		InputSize:     2,
		OutputSize:    3,
		K:             3,
		ChebFilters:   4,
		TimeFilters:   4,
		TimeStrides:   2,
		PredLen:       2,
		SeqLen:        6,
		NumNodes:      5,
		Normalization: graph.Sym,
		Bias:          true,
	}
}

func TestModelConfig_BlockConfigs(t *testing.T) {
	cfg := smallModelConfig()
	bcs := cfg.BlockConfigs()
	require.Len(t, bcs, 2)
	assert.Equal(t, 2, bcs[0].InChannels)
	assert.Equal(t, 2, bcs[0].TimeStrides)
	assert.Equal(t, 6, bcs[0].NumTimesteps)
	assert.Equal(t, 4, bcs[1].InChannels)
	assert.Equal(t, 1, bcs[1].TimeStrides)
	assert.Equal(t, 3, bcs[1].NumTimesteps)
	assert.Equal(t, 3, cfg.OutTimesteps())

	cfg.SeqLen = 7
	assert.Equal(t, 4, cfg.OutTimesteps())
}

func TestModel_OutputShape(t *testing.T) {
	cfg := smallModelConfig()
	m, err := astgcn.NewModel(cfg, nn.WithSeed(1))
	require.NoError(t, err)
	y, err := m.Forward(randomTensor(t, 2, 3, 5, 2, 6), graph.Static(ring(5)))
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 5, 3}, y.Shape())
	assert.True(t, y.AllFinite())
}

func TestModel_FinalProjectionLayout(t *testing.T) {
	cfg := smallModelConfig()
	m, err := astgcn.NewModel(cfg, nn.WithSeed(3))
	require.NoError(t, err)
	x := randomTensor(t, 4, 2, 5, 2, 6)
	topo := graph.Static(ring(5))

	y, err := m.Forward(x, topo)
	require.NoError(t, err)

	h := x
	for _, blk := range m.Blocks() {
		h, err = blk.Forward(h, topo)
		require.NoError(t, err)
	}
	w := paramByName(t, m.Params(), "final_conv.weight").Tensor
	bias := paramByName(t, m.Params(), "final_conv.bias").Tensor
	require.Equal(t, []int{cfg.PredLen * cfg.OutputSize, cfg.OutTimesteps(), 1, cfg.TimeFilters}, w.Shape())

	// Y[p,b,n,o] = bias[q] + Σ_t Σ_c W[q,t,0,c]·H[b,n,c,t], q = p·O + o
	for p := 0; p < cfg.PredLen; p++ {
		for b := 0; b < 2; b++ {
			for n := 0; n < cfg.NumNodes; n++ {
				for o := 0; o < cfg.OutputSize; o++ {
					q := p*cfg.OutputSize + o
					want := at(t, bias, q)
					for tt := 0; tt < cfg.OutTimesteps(); tt++ {
						for c := 0; c < cfg.TimeFilters; c++ {
							want += at(t, w, q, tt, 0, c) * at(t, h, b, n, c, tt)
						}
					}
					assert.InDelta(t, want, at(t, y, p, b, n, o), 1e-10)
				}
			}
		}
	}
}

func TestModel_SequenceTopologyIsStrided(t *testing.T) {
	cfg := smallModelConfig()
	cfg.Normalization = graph.RW
	m, err := astgcn.NewModel(cfg, nn.WithSeed(5))
	require.NoError(t, err)
	seq := make([]graph.Graph, cfg.SeqLen)
	for i := range seq {
		seq[i] = ring(5)
	}
	x := randomTensor(t, 6, 1, 5, 2, 6)

	ys, err := m.Forward(x, graph.Sequence(seq...))
	require.NoError(t, err)
	yr, err := m.Forward(x, graph.Static(ring(5)))
	require.NoError(t, err)
	assert.True(t, tensor.AllClose(ys, yr, 0, 1e-10))
}

func TestModel_Errors(t *testing.T) {
	cfg := smallModelConfig()
	cfg.PredLen = 0
	_, err := astgcn.NewModel(cfg)
	require.ErrorIs(t, err, astgcn.ErrInvalidConfig)

	m, err := astgcn.NewModel(smallModelConfig())
	require.NoError(t, err)
	_, err = m.Forward(randomTensor(t, 1, 1, 5, 2, 5), graph.Static(ring(5)))
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)
	_, err = m.Forward(randomTensor(t, 1, 1, 5, 2, 6), graph.Static(ring(4)))
	require.ErrorIs(t, err, graph.ErrNodeCountMismatch)
}
