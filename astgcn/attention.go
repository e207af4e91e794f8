// SPDX-License-Identifier: MIT

package astgcn

import (
	"fmt"

	"github.com/katalvlaran/stgnn/nn"
	"github.com/katalvlaran/stgnn/tensor"
)

// SpatialAttention scores how strongly each node attends to every other node.
//
//	lhs = (X·W1)·W2          (B, N, T)
//	rhs = W3·X               (B, N, T)
//	S   = softmax₁(Vs · σ(lhs·rhsᵀ + bs))
//
// Parameters: W1 (T), W2 (F, T), W3 (F), bs (1, N, N), Vs (N, N).
type SpatialAttention struct {
	cfg AttentionConfig

	w1, w2, w3, bs, vs nn.Param
}

// NewSpatialAttention builds and initializes the layer.
func NewSpatialAttention(cfg AttentionConfig, opts ...nn.Option) (*SpatialAttention, error) {
	a, err := newSpatialAttention(cfg)
	if err != nil {
		return nil, err
	}
	if err = nn.Init(a.Params(), opts...); err != nil {
		return nil, astgcnErrorf(opNew, err)
	}

	return a, nil
}

func newSpatialAttention(cfg AttentionConfig) (*SpatialAttention, error) {
	if err := cfg.Validate(); err != nil {
		return nil, astgcnErrorf(opNew, err)
	}
	n, f, t := cfg.NumNodes, cfg.InChannels, cfg.NumTimesteps
	a := &SpatialAttention{cfg: cfg}
	var err error
	for _, p := range []struct {
		dst  *nn.Param
		name string
		dims []int
	}{
		{&a.w1, "W1", []int{t}},
		{&a.w2, "W2", []int{f, t}},
		{&a.w3, "W3", []int{f}},
		{&a.bs, "bs", []int{1, n, n}},
		{&a.vs, "Vs", []int{n, n}},
	} {
		if *p.dst, err = nn.NewParam(p.name, p.dims...); err != nil {
			return nil, astgcnErrorf(opNew, err)
		}
	}

	return a, nil
}

// Params lists W1, W2, W3, bs, Vs.
func (a *SpatialAttention) Params() []nn.Param {
	return []nn.Param{a.w1, a.w2, a.w3, a.bs, a.vs}
}

// Forward maps X (B, N, F, T) to S (B, N, N).
//
// Implementation:
//   - Stage 1: lhs = (X·W1)·W2, contracting time then channels.
//   - Stage 2: rhs = W3·X, contracting channels; transposed to (B, T, N).
//   - Stage 3: S = softmax over axis 1 of Vs·σ(lhs·rhs + bs).
//
// Contract:
//   - S[b,:,j] sums to 1 for every b and j.
//   - X is read only; S is a fresh tensor.
//
// Errors:
//   - tensor.ErrShapeMismatch when X is not (B, N, F, T) for the layer's sizes.
//
// Determinism:
//   - Pure function of X and the parameters; fixed loop order.
//
// Complexity:
//   - Time O(B·N·F·T + B·N²·T + B·N³), Space O(B·N² + B·N·T).
func (a *SpatialAttention) Forward(x *tensor.Tensor) (*tensor.Tensor, error) {
	n, f, t := a.cfg.NumNodes, a.cfg.InChannels, a.cfg.NumTimesteps
	if err := checkFeatures(x, n, f, t); err != nil {
		return nil, astgcnErrorf(opSpatial, err)
	}
	b := x.Dim(0)
	s, err := attentionScores(
		// Stage 1
		func() (*tensor.Tensor, error) {
			// (B·N·F, T)·(T, 1) → (B·N, F)·(F, T) → (B, N, T)
			flat, err := x.Reshape(b*n*f, t)
			if err != nil {
				return nil, err
			}
			w1, _ := a.w1.Tensor.Reshape(t, 1)
			xw, err := tensor.MatMul(flat, w1)
			if err != nil {
				return nil, err
			}
			if xw, err = xw.Reshape(b*n, f); err != nil {
				return nil, err
			}
			lhs, err := tensor.MatMul(xw, a.w2.Tensor)
			if err != nil {
				return nil, err
			}
			return lhs.Reshape(b, n, t)
		},
		// Stage 2
		func() (*tensor.Tensor, error) {
			// W3·X, transposed to (B, T, N)
			rhs, err := contractChannels(x, a.w3.Tensor)
			if err != nil {
				return nil, err
			}
			return rhs.Permute(0, 2, 1)
		},
		a.bs.Tensor, a.vs.Tensor, n,
	)
	if err != nil {
		return nil, astgcnErrorf(opSpatial, err)
	}

	return s, nil
}

// TemporalAttention scores how strongly each timestep attends to every other.
//
//	lhs = (Xᵀ·U1)·U2         (B, T, N)
//	rhs = U3·X               (B, N, T)
//	E   = softmax₁(Ve · σ(lhs·rhs + be))
//
// Parameters: U1 (N), U2 (F, N), U3 (F), be (1, T, T), Ve (T, T).
type TemporalAttention struct {
	cfg AttentionConfig

	u1, u2, u3, be, ve nn.Param
}

// NewTemporalAttention builds and initializes the layer.
func NewTemporalAttention(cfg AttentionConfig, opts ...nn.Option) (*TemporalAttention, error) {
	a, err := newTemporalAttention(cfg)
	if err != nil {
		return nil, err
	}
	if err = nn.Init(a.Params(), opts...); err != nil {
		return nil, astgcnErrorf(opNew, err)
	}

	return a, nil
}

func newTemporalAttention(cfg AttentionConfig) (*TemporalAttention, error) {
	if err := cfg.Validate(); err != nil {
		return nil, astgcnErrorf(opNew, err)
	}
	n, f, t := cfg.NumNodes, cfg.InChannels, cfg.NumTimesteps
	a := &TemporalAttention{cfg: cfg}
	var err error
	for _, p := range []struct {
		dst  *nn.Param
		name string
		dims []int
	}{
		{&a.u1, "U1", []int{n}},
		{&a.u2, "U2", []int{f, n}},
		{&a.u3, "U3", []int{f}},
		{&a.be, "be", []int{1, t, t}},
		{&a.ve, "Ve", []int{t, t}},
	} {
		if *p.dst, err = nn.NewParam(p.name, p.dims...); err != nil {
			return nil, astgcnErrorf(opNew, err)
		}
	}

	return a, nil
}

// Params lists U1, U2, U3, be, Ve.
func (a *TemporalAttention) Params() []nn.Param {
	return []nn.Param{a.u1, a.u2, a.u3, a.be, a.ve}
}

// Forward maps X (B, N, F, T) to E (B, T, T); E[b,:,j] sums to 1.
// It mirrors SpatialAttention.Forward with the node and time axes swapped.
//
// Complexity: O(B·N·F·T + B·T²·N + B·T³).
func (a *TemporalAttention) Forward(x *tensor.Tensor) (*tensor.Tensor, error) {
	n, f, t := a.cfg.NumNodes, a.cfg.InChannels, a.cfg.NumTimesteps
	if err := checkFeatures(x, n, f, t); err != nil {
		return nil, astgcnErrorf(opTemporal, err)
	}
	b := x.Dim(0)
	e, err := attentionScores(
		func() (*tensor.Tensor, error) {
			// X as (B, T, F, N); (B·T·F, N)·(N, 1) → (B·T, F)·(F, N) → (B, T, N)
			xp, err := x.Permute(0, 3, 2, 1)
			if err != nil {
				return nil, err
			}
			if xp, err = xp.Reshape(b*t*f, n); err != nil {
				return nil, err
			}
			u1, _ := a.u1.Tensor.Reshape(n, 1)
			xu, err := tensor.MatMul(xp, u1)
			if err != nil {
				return nil, err
			}
			if xu, err = xu.Reshape(b*t, f); err != nil {
				return nil, err
			}
			lhs, err := tensor.MatMul(xu, a.u2.Tensor)
			if err != nil {
				return nil, err
			}
			return lhs.Reshape(b, t, n)
		},
		func() (*tensor.Tensor, error) {
			return contractChannels(x, a.u3.Tensor)
		},
		a.be.Tensor, a.ve.Tensor, t,
	)
	if err != nil {
		return nil, astgcnErrorf(opTemporal, err)
	}

	return e, nil
}

// attentionScores evaluates softmax₁(V · σ(lhs·rhs + bias)) for a square
// score matrix of side m.
func attentionScores(lhsFn, rhsFn func() (*tensor.Tensor, error), bias, v *tensor.Tensor, m int) (*tensor.Tensor, error) {
	lhs, err := lhsFn()
	if err != nil {
		return nil, err
	}
	rhs, err := rhsFn()
	if err != nil {
		return nil, err
	}
	// (B, m, ·)·(B, ·, m) → (B, m, m)
	prod, err := tensor.MatMul(lhs, rhs)
	if err != nil {
		return nil, err
	}
	// the (1, m, m) bias broadcasts over the batch
	b2, err := bias.Reshape(m, m)
	if err != nil {
		return nil, err
	}
	if prod, err = tensor.AddTrailing(prod, b2); err != nil {
		return nil, err
	}
	// V is shared by every batch element
	mixed, err := tensor.MatMul(v, prod.Sigmoid())
	if err != nil {
		return nil, err
	}

	// normalize columns
	return mixed.SoftmaxAxis(1)
}

// contractChannels returns Σ_f w[f]·X[b,n,f,t] as (B, N, T).
func contractChannels(x, w *tensor.Tensor) (*tensor.Tensor, error) {
	b, n, f, t := x.Dim(0), x.Dim(1), x.Dim(2), x.Dim(3)
	xp, err := x.Permute(0, 1, 3, 2)
	if err != nil {
		return nil, err
	}
	if xp, err = xp.Reshape(b*n*t, f); err != nil {
		return nil, err
	}
	wc, err := w.Reshape(f, 1)
	if err != nil {
		return nil, err
	}
	out, err := tensor.MatMul(xp, wc)
	if err != nil {
		return nil, err
	}

	return out.Reshape(b, n, t)
}

// checkFeatures verifies that x is (B, n, f, t).
func checkFeatures(x *tensor.Tensor, n, f, t int) error {
	if x.NDim() != 4 || x.Dim(1) != n || x.Dim(2) != f || x.Dim(3) != t {
		return fmt.Errorf("input %v, want (B,%d,%d,%d): %w", x.Shape(), n, f, t, tensor.ErrShapeMismatch)
	}

	return nil
}
