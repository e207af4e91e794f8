// SPDX-License-Identifier: MIT

package astgcn

import (
	"fmt"

	"github.com/katalvlaran/stgnn/graph"
	"github.com/katalvlaran/stgnn/nn"
	"github.com/katalvlaran/stgnn/tensor"
)

// Model chains NumBlocks blocks and projects the last block's
// (channel, time) slab onto PredLen × OutputSize values per node.
type Model struct {
	cfg    ModelConfig
	blocks []*Block
	final  *nn.Conv
}

// NewModel builds every block and the final projection, then initializes
// the whole parameter list in one pass.
// Errors: ErrInvalidConfig.
func NewModel(cfg ModelConfig, opts ...nn.Option) (*Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, astgcnErrorf(opNew, err)
	}
	m := &Model{cfg: cfg}
	for _, bc := range cfg.BlockConfigs() {
		blk, err := newBlock(bc)
		if err != nil {
			return nil, err
		}
		m.blocks = append(m.blocks, blk)
	}
	// time is read as channels, channels as the kernel width
	final, err := nn.NewConv(cfg.OutTimesteps(), cfg.PredLen*cfg.OutputSize, cfg.TimeFilters, 1, 0, true)
	if err != nil {
		return nil, astgcnErrorf(opNew, err)
	}
	m.final = final
	if err = nn.Init(m.Params(), opts...); err != nil {
		return nil, astgcnErrorf(opNew, err)
	}

	return m, nil
}

// Config returns the model's configuration.
func (m *Model) Config() ModelConfig { return m.cfg }

// Blocks returns the block chain.
func (m *Model) Blocks() []*Block { return append([]*Block(nil), m.blocks...) }

// Params lists block parameters in order, then the final projection.
func (m *Model) Params() []nn.Param {
	var ps []nn.Param
	for i, blk := range m.blocks {
		ps = append(ps, nn.Prefixed(fmt.Sprintf("blocks.%d", i), blk.Params())...)
	}

	return append(ps, nn.Prefixed("final_conv", m.final.Params())...)
}

// Forward maps X (B, N, InputSize, SeqLen) to (PredLen, B, N, OutputSize).
//
// Implementation:
//   - Stage 1: run the blocks in order. A Sequence topology is strided along
//     with the time axis after the first block, so later blocks see the
//     graphs of the timesteps they keep.
//   - Stage 2: move T' onto the channel axis and apply the final 1×TimeFilters
//     convolution, giving PredLen·OutputSize channels per node.
//   - Stage 3: split channels into (PredLen, OutputSize) and put the horizon first.
//
// Errors: tensor.ErrShapeMismatch plus any block error, wrapped with its index.
//
// Determinism: output depends only on X, topo and the parameters.
func (m *Model) Forward(x *tensor.Tensor, topo graph.Topology) (*tensor.Tensor, error) {
	c := m.cfg
	if err := checkFeatures(x, c.NumNodes, c.InputSize, c.SeqLen); err != nil {
		return nil, astgcnErrorf(opModel, err)
	}
	bsz := x.Dim(0)
	var err error
	for i, blk := range m.blocks {
		if x, err = blk.Forward(x, topo); err != nil {
			return nil, astgcnErrorf(opModel, fmt.Errorf("block %d: %w", i, err))
		}
		if i == 0 {
			topo = topo.Strided(c.TimeStrides, c.OutTimesteps())
		}
	}

	// (B, N, C, T') → (B, N, T', C): T' becomes the channel axis
	xp, err := x.Permute(0, 1, 3, 2)
	if err != nil {
		return nil, astgcnErrorf(opModel, err)
	}
	z, err := m.final.Forward(xp)
	if err != nil {
		return nil, astgcnErrorf(opModel, err)
	}
	// z is (B, N, P·O, 1); channel q = p·O + o
	if z, err = z.Reshape(bsz, c.NumNodes, c.PredLen, c.OutputSize); err != nil {
		return nil, astgcnErrorf(opModel, err)
	}
	y, err := z.Permute(2, 0, 1, 3)
	if err != nil {
		return nil, astgcnErrorf(opModel, err)
	}

	return y, nil
}
