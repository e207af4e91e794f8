// SPDX-License-Identifier: MIT

package astgcn

import (
	"fmt"

	"github.com/katalvlaran/stgnn/graph"
	"github.com/katalvlaran/stgnn/nn"
	"github.com/katalvlaran/stgnn/tensor"
)

// ChebConvAttention is a K-term Chebyshev graph convolution over one
// timestep whose first propagation is reweighted by spatial attention.
//
// Parameters: weight (K, In, Out), bias (Out) when cfg.Bias.
type ChebConvAttention struct {
	cfg ChebConfig

	weight nn.Param
	bias   *nn.Param
}

// NewChebConvAttention builds and initializes the layer.
// Errors: ErrInvalidConfig.
func NewChebConvAttention(cfg ChebConfig, opts ...nn.Option) (*ChebConvAttention, error) {
	c, err := newChebConvAttention(cfg)
	if err != nil {
		return nil, err
	}
	if err = nn.Init(c.Params(), opts...); err != nil {
		return nil, astgcnErrorf(opNew, err)
	}

	return c, nil
}

func newChebConvAttention(cfg ChebConfig) (*ChebConvAttention, error) {
	if err := cfg.Validate(); err != nil {
		return nil, astgcnErrorf(opNew, err)
	}
	w, err := nn.NewParam("weight", cfg.K, cfg.InChannels, cfg.OutChannels)
	if err != nil {
		return nil, astgcnErrorf(opNew, err)
	}
	c := &ChebConvAttention{cfg: cfg, weight: w}
	if cfg.Bias {
		b, err := nn.NewParam("bias", cfg.OutChannels)
		if err != nil {
			return nil, astgcnErrorf(opNew, err)
		}
		c.bias = &b
	}

	return c, nil
}

// Config returns the layer's configuration.
func (c *ChebConvAttention) Config() ChebConfig { return c.cfg }

// Params lists weight, then bias if present.
func (c *ChebConvAttention) Params() []nn.Param {
	ps := []nn.Param{c.weight}
	if c.bias != nil {
		ps = append(ps, *c.bias)
	}

	return ps
}

// Forward convolves x (B, N, In) over g under the spatial attention
// att (B, N, N) and returns (B, N, Out).
//
// Implementation:
//   - Stage 1: (Ê, ŵ) = ScaledLaplacian(g, normalization, lambda, batch).
//   - Stage 2: Att[b,e] = ŵ[e]·att[b, src(e), dst(e)].
//   - Stage 3: T0[b,i] = att[b,i,i]·x[b,i] (diagonal of att only);
//     out = T0·W[0].
//   - Stage 4: K > 1: T1 = Propagate(Ê, Att, T0); out += T1·W[1].
//   - Stage 5: k = 2..K-1: Tk = 2·Propagate(Ê, ŵ, T(k-1)) − T(k-2);
//     out += Tk·W[k].
//   - Stage 6: add bias.
//
// lambda may be absent only under symmetric normalization (λ = 2 is then
// assumed). batch is the per-node graph id, required only for a multi-valued
// lambda.
//
// Errors: tensor.ErrShapeMismatch, graph.ErrNodeCountMismatch,
// graph.ErrLambdaMaxRequired, graph.ErrInvalidGraph, graph.ErrBatchAssignment.
//
// Determinism:
//   - Edges are visited in Ê order, so equal inputs give bit-identical output.
//
// Complexity: O(B·(N·In·Out·K + |E|·In·K)).
func (c *ChebConvAttention) Forward(x *tensor.Tensor, g graph.Graph, att *tensor.Tensor, lambda graph.LambdaMax, batch []int) (*tensor.Tensor, error) {
	if x.NDim() != 3 || x.Dim(2) != c.cfg.InChannels {
		return nil, astgcnErrorf(opCheb, fmt.Errorf("input %v, want (B,N,%d): %w", x.Shape(), c.cfg.InChannels, tensor.ErrShapeMismatch))
	}
	bsz, n := x.Dim(0), x.Dim(1)
	if g.NumNodes != n {
		return nil, astgcnErrorf(opCheb, fmt.Errorf("graph has %d nodes, input %d: %w", g.NumNodes, n, graph.ErrNodeCountMismatch))
	}
	if !att.HasShape(bsz, n, n) {
		return nil, astgcnErrorf(opCheb, fmt.Errorf("attention %v, want (%d,%d,%d): %w", att.Shape(), bsz, n, n, tensor.ErrShapeMismatch))
	}

	lap, err := graph.ScaledLaplacian(g, c.cfg.Normalization, lambda, batch)
	if err != nil {
		return nil, astgcnErrorf(opCheb, err)
	}

	ad := att.Data()
	ne := lap.Len()
	attNorm := BatchedWeights{Batch: bsz, Values: make([]float64, bsz*ne)}
	for b := 0; b < bsz; b++ {
		for e, ed := range lap.Edges {
			attNorm.Values[b*ne+e] = lap.Weights[e] * ad[(b*n+ed.Src)*n+ed.Dst]
		}
	}

	t0, err := tensor.New(bsz, n, c.cfg.InChannels)
	if err != nil {
		return nil, astgcnErrorf(opCheb, err)
	}
	f := c.cfg.InChannels
	xd, td := x.Data(), t0.Data()
	for b := 0; b < bsz; b++ {
		for i := 0; i < n; i++ {
			gate := ad[(b*n+i)*n+i]
			for k := 0; k < f; k++ {
				td[(b*n+i)*f+k] = gate * xd[(b*n+i)*f+k]
			}
		}
	}

	out, err := c.project(t0, 0)
	if err != nil {
		return nil, astgcnErrorf(opCheb, err)
	}
	if c.cfg.K > 1 {
		t1, err := Propagate(lap.Edges, attNorm, t0)
		if err != nil {
			return nil, astgcnErrorf(opCheb, err)
		}
		if out, err = c.accumulate(out, t1, 1); err != nil {
			return nil, astgcnErrorf(opCheb, err)
		}
		shared := SharedWeights(lap.Weights)
		prev, cur := t0, t1
		for k := 2; k < c.cfg.K; k++ {
			p, err := Propagate(lap.Edges, shared, cur)
			if err != nil {
				return nil, astgcnErrorf(opCheb, err)
			}
			next, err := tensor.Sub(p.Scale(2), prev)
			if err != nil {
				return nil, astgcnErrorf(opCheb, err)
			}
			if out, err = c.accumulate(out, next, k); err != nil {
				return nil, astgcnErrorf(opCheb, err)
			}
			prev, cur = cur, next
		}
	}

	if c.bias != nil {
		if out, err = tensor.AddTrailing(out, c.bias.Tensor); err != nil {
			return nil, astgcnErrorf(opCheb, err)
		}
	}

	return out, nil
}

// project returns tk·W[k] as (B, N, Out).
func (c *ChebConvAttention) project(tk *tensor.Tensor, k int) (*tensor.Tensor, error) {
	wk, err := c.weight.Tensor.Select(0, k)
	if err != nil {
		return nil, err
	}

	return tensor.MatMul(tk, wk)
}

// accumulate returns out + tk·W[k].
func (c *ChebConvAttention) accumulate(out, tk *tensor.Tensor, k int) (*tensor.Tensor, error) {
	term, err := c.project(tk, k)
	if err != nil {
		return nil, err
	}

	return tensor.Add(out, term)
}
