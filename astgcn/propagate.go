// SPDX-License-Identifier: MIT

package astgcn

import (
	"fmt"

	"github.com/katalvlaran/stgnn/graph"
	"github.com/katalvlaran/stgnn/tensor"
)

// EdgeWeights scales the messages of Propagate. It is either SharedWeights
// (one value per edge, shared by the whole batch) or BatchedWeights (one
// value per batch element and edge).
type EdgeWeights interface {
	edgeWeights()
}

// SharedWeights holds one weight per edge.
type SharedWeights []float64

// BatchedWeights holds a (Batch, E) row-major weight matrix.
type BatchedWeights struct {
	Batch  int
	Values []float64
}

func (SharedWeights) edgeWeights()  {}
func (BatchedWeights) edgeWeights() {}

// Propagate aggregates messages over the reversed edges: for every edge
// e = (src, dst) it adds w[e]·x[b, dst, :] into out[b, src, :].
// x is (B, N, F); the result has the same shape.
//
// Contract:
//   - Every weight is applied, zeros included, so non-finite inputs reach
//     the output under IEEE rules.
//   - Duplicate edges accumulate.
//
// Errors: tensor.ErrShapeMismatch, graph.ErrInvalidGraph, ErrInvalidConfig.
//
// Determinism:
//   - Batch-major, then edge order; summation order is fixed.
//
// Complexity:
//   - Time O(B·|E|·F), Space O(B·N·F).
func Propagate(edges []graph.Edge, w EdgeWeights, x *tensor.Tensor) (*tensor.Tensor, error) {
	if x.NDim() != 3 {
		return nil, astgcnErrorf(opProp, fmt.Errorf("input %v, want (B,N,F): %w", x.Shape(), tensor.ErrShapeMismatch))
	}
	bsz, n, f := x.Dim(0), x.Dim(1), x.Dim(2)
	for i, ed := range edges {
		if ed.Src < 0 || ed.Src >= n || ed.Dst < 0 || ed.Dst >= n {
			return nil, astgcnErrorf(opProp, fmt.Errorf("edge %d (%d,%d) with %d nodes: %w", i, ed.Src, ed.Dst, n, graph.ErrInvalidGraph))
		}
	}
	out, err := tensor.New(bsz, n, f)
	if err != nil {
		return nil, astgcnErrorf(opProp, err)
	}
	xd, od := x.Data(), out.Data()

	switch w := w.(type) {
	case SharedWeights:
		if len(w) != len(edges) {
			return nil, astgcnErrorf(opProp, fmt.Errorf("%d weights for %d edges: %w", len(w), len(edges), tensor.ErrShapeMismatch))
		}
		for b := 0; b < bsz; b++ {
			base := b * n * f
			for e, ed := range edges {
				axpy(od[base+ed.Src*f:base+(ed.Src+1)*f], w[e], xd[base+ed.Dst*f:base+(ed.Dst+1)*f])
			}
		}
	case BatchedWeights:
		if w.Batch != bsz || len(w.Values) != bsz*len(edges) {
			return nil, astgcnErrorf(opProp, fmt.Errorf("weights (%d, %d values) for batch %d and %d edges: %w",
				w.Batch, len(w.Values), bsz, len(edges), tensor.ErrShapeMismatch))
		}
		ne := len(edges)
		for b := 0; b < bsz; b++ {
			base := b * n * f
			for e, ed := range edges {
				axpy(od[base+ed.Src*f:base+(ed.Src+1)*f], w.Values[b*ne+e], xd[base+ed.Dst*f:base+(ed.Dst+1)*f])
			}
		}
	default:
		return nil, astgcnErrorf(opProp, fmt.Errorf("edge weights %T: %w", w, ErrInvalidConfig))
	}

	return out, nil
}

// axpy computes dst += a·src. A zero a is applied like any other weight so
// non-finite inputs propagate.
func axpy(dst []float64, a float64, src []float64) {
	for i, v := range src {
		dst[i] += a * v
	}
}
