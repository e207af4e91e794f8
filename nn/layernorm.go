// SPDX-License-Identifier: MIT

package nn

import (
	"fmt"
	"math"

	"github.com/katalvlaran/stgnn/tensor"
)

// DefaultLayerNormEps is added to the variance before the square root.
const DefaultLayerNormEps = 1e-5

// LayerNorm normalizes a tensor over one axis of length Dim using the biased
// variance, then applies the affine map γ·x̂ + β.
type LayerNorm struct {
	Dim int
	Eps float64

	gamma, beta Param
}

// NewLayerNorm returns a LayerNorm with γ = 1 and β = 0.
func NewLayerNorm(dim int) (*LayerNorm, error) {
	if dim < 1 {
		return nil, nnErrorf(opNewNorm, fmt.Errorf("dim=%d: %w", dim, ErrInvalidLayer))
	}
	g, err := NewParam("weight", dim)
	if err != nil {
		return nil, nnErrorf(opNewNorm, err)
	}
	for i := range g.Tensor.Data() {
		g.Tensor.Data()[i] = 1
	}
	b, err := NewParam("bias", dim)
	if err != nil {
		return nil, nnErrorf(opNewNorm, err)
	}

	return &LayerNorm{Dim: dim, Eps: DefaultLayerNormEps, gamma: g, beta: b}, nil
}

// Params lists γ then β.
func (l *LayerNorm) Params() []Param { return []Param{l.gamma, l.beta} }

// Forward normalizes x along axis, which must have length Dim. Negative
// axis counts from the end.
//
// Complexity: O(size of x), three passes per normalized fibre.
func (l *LayerNorm) Forward(x *tensor.Tensor, axis int) (*tensor.Tensor, error) {
	nd := x.NDim()
	if axis < 0 {
		axis += nd
	}
	if axis < 0 || axis >= nd || x.Dim(axis) != l.Dim {
		return nil, nnErrorf(opNorm, fmt.Errorf("axis %d of %v, want length %d: %w", axis, x.Shape(), l.Dim, tensor.ErrShapeMismatch))
	}
	shape := x.Shape()
	outer, inner := 1, 1
	for a := 0; a < axis; a++ {
		outer *= shape[a]
	}
	for a := axis + 1; a < nd; a++ {
		inner *= shape[a]
	}

	out := x.Clone()
	xd, od := x.Data(), out.Data()
	gd, bd := l.gamma.Tensor.Data(), l.beta.Tensor.Data()
	n := float64(l.Dim)
	var base, k int
	var mean, v, d, inv float64
	for o := 0; o < outer; o++ {
		for in := 0; in < inner; in++ {
			// fibre x[o, :, in] has stride inner
			base = o*l.Dim*inner + in
			mean = 0
			for k = 0; k < l.Dim; k++ {
				mean += xd[base+k*inner]
			}
			mean /= n
			v = 0
			for k = 0; k < l.Dim; k++ {
				d = xd[base+k*inner] - mean
				v += d * d
			}
			inv = 1 / math.Sqrt(v/n+l.Eps)
			for k = 0; k < l.Dim; k++ {
				od[base+k*inner] = gd[k]*(xd[base+k*inner]-mean)*inv + bd[k]
			}
		}
	}

	return out, nil
}
