// SPDX-License-Identifier: MIT

package astgcn

import (
	"fmt"

	"github.com/katalvlaran/stgnn/graph"
	"github.com/katalvlaran/stgnn/nn"
	"github.com/katalvlaran/stgnn/tensor"
)

// Time convolution geometry.
const (
	timeKernel  = 3
	timePadding = 1
)

// Block is one spatio-temporal block: (B, N, F, T) → (B, N, TimeFilters, T').
type Block struct {
	cfg BlockConfig

	temporal *TemporalAttention
	spatial  *SpatialAttention
	cheb     *ChebConvAttention
	timeConv *nn.Conv
	timeGate *nn.Conv // nil unless cfg.Gated
	residual *nn.Conv
	norm     *nn.LayerNorm
}

// NewBlock builds and initializes a block.
// Errors: ErrInvalidConfig.
func NewBlock(cfg BlockConfig, opts ...nn.Option) (*Block, error) {
	b, err := newBlock(cfg)
	if err != nil {
		return nil, err
	}
	if err = nn.Init(b.Params(), opts...); err != nil {
		return nil, astgcnErrorf(opNew, err)
	}

	return b, nil
}

func newBlock(cfg BlockConfig) (*Block, error) {
	if err := cfg.Validate(); err != nil {
		return nil, astgcnErrorf(opNew, err)
	}
	att := AttentionConfig{InChannels: cfg.InChannels, NumNodes: cfg.NumNodes, NumTimesteps: cfg.NumTimesteps}
	b := &Block{cfg: cfg}
	var err error
	if b.temporal, err = newTemporalAttention(att); err != nil {
		return nil, err
	}
	if b.spatial, err = newSpatialAttention(att); err != nil {
		return nil, err
	}
	if b.cheb, err = newChebConvAttention(ChebConfig{
		InChannels:    cfg.InChannels,
		OutChannels:   cfg.ChebFilters,
		K:             cfg.K,
		Normalization: cfg.Normalization,
		Bias:          cfg.Bias,
	}); err != nil {
		return nil, err
	}
	if b.timeConv, err = nn.NewConv(cfg.ChebFilters, cfg.TimeFilters, timeKernel, cfg.TimeStrides, timePadding, true); err != nil {
		return nil, astgcnErrorf(opNew, err)
	}
	if cfg.Gated {
		if b.timeGate, err = nn.NewConv(cfg.ChebFilters, cfg.TimeFilters, timeKernel, cfg.TimeStrides, timePadding, true); err != nil {
			return nil, astgcnErrorf(opNew, err)
		}
	}
	if b.residual, err = nn.NewConv(cfg.InChannels, cfg.TimeFilters, 1, cfg.TimeStrides, 0, true); err != nil {
		return nil, astgcnErrorf(opNew, err)
	}
	if b.norm, err = nn.NewLayerNorm(cfg.TimeFilters); err != nil {
		return nil, astgcnErrorf(opNew, err)
	}

	return b, nil
}

// Config returns the block's configuration.
func (b *Block) Config() BlockConfig { return b.cfg }

// Params lists every learnable tensor, prefixed by sub-layer.
func (b *Block) Params() []nn.Param {
	var ps []nn.Param
	ps = append(ps, nn.Prefixed("temporal_attention", b.temporal.Params())...)
	ps = append(ps, nn.Prefixed("spatial_attention", b.spatial.Params())...)
	ps = append(ps, nn.Prefixed("chebconv_attention", b.cheb.Params())...)
	ps = append(ps, nn.Prefixed("time_convolution", b.timeConv.Params())...)
	if b.timeGate != nil {
		ps = append(ps, nn.Prefixed("time_gate", b.timeGate.Params())...)
	}
	ps = append(ps, nn.Prefixed("residual_convolution", b.residual.Params())...)
	ps = append(ps, nn.Prefixed("layer_norm", b.norm.Params())...)

	return ps
}

// Forward runs the block on X (B, N, F, T) over topo.
//
// Implementation:
//   - Stage 1: E = TemporalAttention(X), (B, T, T).
//   - Stage 2: X̃ = X·E over the time axis, (B, N, F, T).
//   - Stage 3: S = SpatialAttention(X̃), (B, N, N).
//   - Stage 4: for each t, Ĥ[..., t] = ChebConvAttention(X[..., t], G_t, S).
//     The raw X is convolved here; X̃ only feeds S.
//   - Stage 5: Ĥ = ReLU(Ĥ), (B, N, ChebFilters, T).
//   - Stage 6: H = Conv_t(Ĥ), gated by σ(Gate_t(Ĥ)) when Gated.
//   - Stage 7: out = LayerNorm_channels(ReLU(H + Conv_1×1(X))).
//
// Contract:
//   - Output is (B, N, TimeFilters, T') with T' = (T−1)/TimeStrides + 1.
//   - Under a non-symmetric normalization λmax is estimated from each graph's
//     unnormalized Laplacian, so a Block never needs it from the caller.
//
// Errors: tensor.ErrShapeMismatch, graph.ErrNodeCountMismatch,
// graph.ErrSequenceLength, graph.ErrInvalidGraph.
//
// Complexity:
//   - Time O(T·ChebForward + B·N·T·(F + N·F + ChebFilters·TimeFilters)).
//   - Space O(B·N·T·(F + ChebFilters + TimeFilters)).
func (b *Block) Forward(x *tensor.Tensor, topo graph.Topology) (*tensor.Tensor, error) {
	n, f, t := b.cfg.NumNodes, b.cfg.InChannels, b.cfg.NumTimesteps
	if err := checkFeatures(x, n, f, t); err != nil {
		return nil, astgcnErrorf(opBlock, err)
	}
	if err := topo.Validate(n, t); err != nil {
		return nil, astgcnErrorf(opBlock, err)
	}
	bsz := x.Dim(0)

	// Stages 1-3: attention
	e, err := b.temporal.Forward(x)
	if err != nil {
		return nil, astgcnErrorf(opBlock, err)
	}
	flat, err := x.Reshape(bsz, n*f, t)
	if err != nil {
		return nil, astgcnErrorf(opBlock, err)
	}
	xe, err := tensor.MatMul(flat, e)
	if err != nil {
		return nil, astgcnErrorf(opBlock, err)
	}
	if xe, err = xe.Reshape(bsz, n, f, t); err != nil {
		return nil, astgcnErrorf(opBlock, err)
	}
	s, err := b.spatial.Forward(xe)
	if err != nil {
		return nil, astgcnErrorf(opBlock, err)
	}

	// Stage 4: per-step graph convolution
	lambdas, err := b.lambdas(topo, t)
	if err != nil {
		return nil, astgcnErrorf(opBlock, err)
	}
	steps := make([]*tensor.Tensor, t)
	for step := 0; step < t; step++ {
		xs, err := x.Select(3, step)
		if err != nil {
			return nil, astgcnErrorf(opBlock, err)
		}
		li := 0
		if topo.IsSequence() {
			li = step
		}
		if steps[step], err = b.cheb.Forward(xs, topo.At(step), s, lambdas[li], nil); err != nil {
			return nil, astgcnErrorf(opBlock, fmt.Errorf("step %d: %w", step, err))
		}
	}
	xhat, err := tensor.Stack(steps)
	if err != nil {
		return nil, astgcnErrorf(opBlock, err)
	}
	xhat = xhat.ReLU()

	// Stage 6
	h, err := b.timeConv.Forward(xhat)
	if err != nil {
		return nil, astgcnErrorf(opBlock, err)
	}
	if b.timeGate != nil {
		q, err := b.timeGate.Forward(xhat)
		if err != nil {
			return nil, astgcnErrorf(opBlock, err)
		}
		if h, err = tensor.Hadamard(h, q.Sigmoid()); err != nil {
			return nil, astgcnErrorf(opBlock, err)
		}
	}
	// Stage 7
	r, err := b.residual.Forward(x)
	if err != nil {
		return nil, astgcnErrorf(opBlock, err)
	}
	sum, err := tensor.Add(h, r)
	if err != nil {
		return nil, astgcnErrorf(opBlock, err)
	}
	out, err := b.norm.Forward(sum.ReLU(), 2)
	if err != nil {
		return nil, astgcnErrorf(opBlock, err)
	}

	return out, nil
}

// lambdas returns one λmax per distinct graph of topo: absent under Sym,
// estimated from D − A otherwise.
func (b *Block) lambdas(topo graph.Topology, steps int) ([]graph.LambdaMax, error) {
	count := 1
	if topo.IsSequence() {
		count = steps
	}
	out := make([]graph.LambdaMax, count)
	if b.cfg.Normalization == graph.Sym {
		return out, nil
	}
	for i := range out {
		lmax, err := graph.EstimateLambdaMax(topo.At(i))
		if err != nil {
			return nil, err
		}
		out[i] = graph.Scalar(lmax)
	}

	return out, nil
}
