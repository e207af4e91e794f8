// SPDX-License-Identifier: MIT

package nn

import (
	"fmt"

	"github.com/katalvlaran/stgnn/tensor"
)

// Conv is a 1×Kernel convolution sliding along the last axis of a
// (batch, node, in, time) tensor, with zero padding Pad on both ends and
// step Stride. Nodes are convolved independently.
//
// Weight has shape (out, in, 1, Kernel) so that Xavier fan sizes match a
// 2-D convolution of the same geometry.
type Conv struct {
	In, Out, Kernel, Stride, Pad int

	weight Param
	bias   *Param
}

// NewConv allocates a zero-initialized convolution. Call Init on Params()
// before use.
func NewConv(in, out, kernel, stride, pad int, bias bool) (*Conv, error) {
	if in < 1 || out < 1 || kernel < 1 || stride < 1 || pad < 0 {
		return nil, nnErrorf(opNewConv, fmt.Errorf("in=%d out=%d kernel=%d stride=%d pad=%d: %w",
			in, out, kernel, stride, pad, ErrInvalidLayer))
	}
	w, err := NewParam("weight", out, in, 1, kernel)
	if err != nil {
		return nil, nnErrorf(opNewConv, err)
	}
	c := &Conv{In: in, Out: out, Kernel: kernel, Stride: stride, Pad: pad, weight: w}
	if bias {
		b, err := NewParam("bias", out)
		if err != nil {
			return nil, nnErrorf(opNewConv, err)
		}
		c.bias = &b
	}

	return c, nil
}

// OutLen returns the number of output timesteps for t input timesteps.
func (c *Conv) OutLen(t int) int {
	span := t + 2*c.Pad - c.Kernel
	if span < 0 {
		return 0
	}

	return span/c.Stride + 1
}

// Params lists weight, then bias if present.
func (c *Conv) Params() []Param {
	ps := []Param{c.weight}
	if c.bias != nil {
		ps = append(ps, *c.bias)
	}

	return ps
}

// Forward maps (B, N, In, T) to (B, N, Out, OutLen(T)):
//
//	y[b,n,o,t] = bias[o] + Σ_c Σ_k W[o,c,0,k] · x[b,n,c, t·Stride + k − Pad]
//
// with out-of-range time indices reading zero.
//
// Contract:
//   - x is read only; the result is a fresh tensor.
//   - Every output element is written exactly once.
//
// Errors:
//   - tensor.ErrShapeMismatch when x is not 4-D or its channel axis is not In.
//   - ErrEmptyOutput when T is too short for Kernel after padding.
//
// Determinism:
//   - Accumulation order is fixed: channel, then kernel tap.
//
// Complexity:
//   - Time O(B·N·Out·T'·In·Kernel), Space O(B·N·Out·T').
func (c *Conv) Forward(x *tensor.Tensor) (*tensor.Tensor, error) {
	if x.NDim() != 4 || x.Dim(2) != c.In {
		return nil, nnErrorf(opConv, fmt.Errorf("input %v, want (B,N,%d,T): %w", x.Shape(), c.In, tensor.ErrShapeMismatch))
	}
	bsz, n, t := x.Dim(0), x.Dim(1), x.Dim(3)
	tOut := c.OutLen(t)
	if tOut < 1 {
		return nil, nnErrorf(opConv, fmt.Errorf("T=%d kernel=%d pad=%d: %w", t, c.Kernel, c.Pad, ErrEmptyOutput))
	}
	out, err := tensor.New(bsz, n, c.Out, tOut)
	if err != nil {
		return nil, nnErrorf(opConv, err)
	}

	xd, wd, od := x.Data(), c.weight.Tensor.Data(), out.Data()
	var bd []float64
	if c.bias != nil {
		bd = c.bias.Tensor.Data()
	}
	var o, ci, k, to, ti, xo, oo, wo int
	var acc float64
	// batch and node share the outer loop: both are independent rows
	for bn := 0; bn < bsz*n; bn++ {
		xo = bn * c.In * t
		oo = bn * c.Out * tOut
		for o = 0; o < c.Out; o++ {
			for to = 0; to < tOut; to++ {
				acc = 0
				if bd != nil {
					acc = bd[o]
				}
				for ci = 0; ci < c.In; ci++ {
					wo = (o*c.In + ci) * c.Kernel
					for k = 0; k < c.Kernel; k++ {
						ti = to*c.Stride + k - c.Pad
						if ti < 0 || ti >= t {
							continue // padding
						}
						acc += wd[wo+k] * xd[xo+ci*t+ti]
					}
				}
				od[oo+o*tOut+to] = acc
			}
		}
	}

	return out, nil
}
