// SPDX-License-Identifier: MIT

// Package tensor - axis, element-wise and reduction kernels.
//
// Notes:
//   - Every kernel validates shapes first and allocates exactly one result.
//   - Loop orders are fixed (row-major walks) for reproducible results.

package tensor

import (
	"fmt"
	"math"
)

// Permute returns a copy of t with axes reordered: out axis i is t's axis
// axes[i]. axes must be a permutation of 0..NDim()-1.
func (t *Tensor) Permute(axes ...int) (*Tensor, error) {
	nd := len(t.shape)
	if len(axes) != nd {
		return nil, tensorErrorf(opPermute, fmt.Errorf("perm %v for %d axes: %w", axes, nd, ErrAxisOutOfRange))
	}
	seen := make([]bool, nd)
	for _, a := range axes {
		if a < 0 || a >= nd || seen[a] {
			return nil, tensorErrorf(opPermute, fmt.Errorf("perm %v: %w", axes, ErrAxisOutOfRange))
		}
		seen[a] = true
	}

	outShape := make([]int, nd)
	for i, a := range axes {
		outShape[i] = t.shape[a]
	}
	inStrides := strides(t.shape)
	// srcStep[i] is the input stride travelled when out axis i advances.
	srcStep := make([]int, nd)
	for i, a := range axes {
		srcStep[i] = inStrides[a]
	}

	out := &Tensor{shape: outShape, data: make([]float64, len(t.data))}
	idx := make([]int, nd)
	src := 0
	for o := range out.data {
		out.data[o] = t.data[src]
		// odometer increment over the output index
		for i := nd - 1; i >= 0; i-- {
			idx[i]++
			src += srcStep[i]
			if idx[i] < outShape[i] {
				break
			}
			src -= srcStep[i] * outShape[i]
			idx[i] = 0
		}
	}

	return out, nil
}

// Select returns the slice of t at position index along axis, dropping that
// axis. For a (B,N,F,T) tensor, Select(3, t) yields the (B,N,F) timestep t.
func (t *Tensor) Select(axis, index int) (*Tensor, error) {
	nd := len(t.shape)
	if axis < 0 {
		axis += nd
	}
	if axis < 0 || axis >= nd || nd < 2 {
		return nil, tensorErrorf(opSelect, fmt.Errorf("axis %d of %d: %w", axis, nd, ErrAxisOutOfRange))
	}
	if index < 0 || index >= t.shape[axis] {
		return nil, tensorErrorf(opSelect, fmt.Errorf("index %d on axis %d: %w", index, axis, ErrAxisOutOfRange))
	}

	outer := 1
	for a := 0; a < axis; a++ {
		outer *= t.shape[a]
	}
	inner := 1
	for a := axis + 1; a < nd; a++ {
		inner *= t.shape[a]
	}
	outShape := make([]int, 0, nd-1)
	outShape = append(outShape, t.shape[:axis]...)
	outShape = append(outShape, t.shape[axis+1:]...)

	out := &Tensor{shape: outShape, data: make([]float64, outer*inner)}
	span := t.shape[axis] * inner
	for o := 0; o < outer; o++ {
		copy(out.data[o*inner:(o+1)*inner], t.data[o*span+index*inner:o*span+(index+1)*inner])
	}

	return out, nil
}

// Stack joins same-shaped tensors along a new trailing axis:
// k tensors of shape S yield one tensor of shape S ++ [k].
func Stack(ts []*Tensor) (*Tensor, error) {
	if len(ts) == 0 {
		return nil, tensorErrorf(opStack, ErrBadShape)
	}
	base := ts[0]
	for i, x := range ts[1:] {
		if !x.HasShape(base.shape...) {
			return nil, tensorErrorf(opStack, fmt.Errorf("item %d %v vs %v: %w", i+1, x.shape, base.shape, ErrShapeMismatch))
		}
	}
	k := len(ts)
	outShape := append(append([]int(nil), base.shape...), k)
	out := &Tensor{shape: outShape, data: make([]float64, len(base.data)*k)}
	for j, x := range ts {
		for i, v := range x.data {
			out.data[i*k+j] = v
		}
	}

	return out, nil
}

// binary applies f element-wise over two same-shaped tensors.
func binary(a, b *Tensor, f func(x, y float64) float64) (*Tensor, error) {
	if !a.HasShape(b.shape...) {
		return nil, tensorErrorf(opBinary, fmt.Errorf("%v vs %v: %w", a.shape, b.shape, ErrShapeMismatch))
	}
	out := zerosLike(a)
	for i := range a.data {
		out.data[i] = f(a.data[i], b.data[i])
	}

	return out, nil
}

// Add returns a + b (same shape).
func Add(a, b *Tensor) (*Tensor, error) {
	return binary(a, b, func(x, y float64) float64 { return x + y })
}

// Sub returns a - b (same shape).
func Sub(a, b *Tensor) (*Tensor, error) {
	return binary(a, b, func(x, y float64) float64 { return x - y })
}

// Hadamard returns the element-wise product a ⊙ b (same shape).
func Hadamard(a, b *Tensor) (*Tensor, error) {
	return binary(a, b, func(x, y float64) float64 { return x * y })
}

// AddTrailing returns t + b where b's shape equals t's trailing axes; b is
// broadcast over the leading ones. (B,N,N) + (N,N) and (B,N,O) + (O) are the
// typical uses.
func AddTrailing(t, b *Tensor) (*Tensor, error) {
	nb, nt := len(b.shape), len(t.shape)
	if nb > nt {
		return nil, tensorErrorf(opBinary, fmt.Errorf("%v + %v: %w", t.shape, b.shape, ErrShapeMismatch))
	}
	for i := 0; i < nb; i++ {
		if t.shape[nt-nb+i] != b.shape[i] {
			return nil, tensorErrorf(opBinary, fmt.Errorf("%v + %v: %w", t.shape, b.shape, ErrShapeMismatch))
		}
	}
	out := zerosLike(t)
	m := len(b.data)
	for i, v := range t.data {
		out.data[i] = v + b.data[i%m]
	}

	return out, nil
}

// Scale returns alpha * t.
func (t *Tensor) Scale(alpha float64) *Tensor {
	return t.Apply(func(v float64) float64 { return alpha * v })
}

// Apply returns f mapped over every element.
func (t *Tensor) Apply(f func(float64) float64) *Tensor {
	out := zerosLike(t)
	for i, v := range t.data {
		out.data[i] = f(v)
	}

	return out
}

// ReLU returns max(t, 0).
func (t *Tensor) ReLU() *Tensor {
	return t.Apply(func(v float64) float64 {
		if v > 0 {
			return v
		}
		return 0
	})
}

// Sigmoid returns the logistic function 1/(1+e^-v) of every element.
func (t *Tensor) Sigmoid() *Tensor {
	return t.Apply(func(v float64) float64 {
		if v >= 0 {
			return 1 / (1 + math.Exp(-v))
		}
		// e^v/(1+e^v) keeps large negative inputs from overflowing exp(-v)
		e := math.Exp(v)
		return e / (1 + e)
	})
}

// SoftmaxAxis returns the softmax of t taken along axis: for every fixed
// position of the other axes, the values along axis sum to 1.
// The running maximum is subtracted before exponentiation.
func (t *Tensor) SoftmaxAxis(axis int) (*Tensor, error) {
	nd := len(t.shape)
	if axis < 0 {
		axis += nd
	}
	if axis < 0 || axis >= nd {
		return nil, tensorErrorf(opSoftmax, fmt.Errorf("axis %d of %d: %w", axis, nd, ErrAxisOutOfRange))
	}
	outer := 1
	for a := 0; a < axis; a++ {
		outer *= t.shape[a]
	}
	inner := 1
	for a := axis + 1; a < nd; a++ {
		inner *= t.shape[a]
	}
	n := t.shape[axis]

	out := zerosLike(t)
	var base, off, k int
	var maxV, sum float64
	for o := 0; o < outer; o++ {
		for in := 0; in < inner; in++ {
			base = o*n*inner + in
			maxV = math.Inf(-1)
			for k = 0; k < n; k++ {
				if v := t.data[base+k*inner]; v > maxV {
					maxV = v
				}
			}
			sum = 0
			for k = 0; k < n; k++ {
				off = base + k*inner
				out.data[off] = math.Exp(t.data[off] - maxV)
				sum += out.data[off]
			}
			for k = 0; k < n; k++ {
				out.data[base+k*inner] /= sum
			}
		}
	}

	return out, nil
}

// MatMul computes the matrix product over the last two axes.
//
// Supported forms:
//   - (M,K) x (K,N)      -> (M,N)
//   - (B,M,K) x (B,K,N)  -> (B,M,N)
//   - (M,K) x (B,K,N)    -> (B,M,N)  (left operand broadcast over B)
//   - (B,M,K) x (K,N)    -> (B,M,N)  (right operand broadcast over B)
//
// Errors: ErrShapeMismatch on inner or batch mismatch, ErrBadShape for other ranks.
// Complexity: O(B*M*K*N).
func MatMul(a, b *Tensor) (*Tensor, error) {
	ra, rb := len(a.shape), len(b.shape)
	if ra < 2 || ra > 3 || rb < 2 || rb > 3 {
		return nil, tensorErrorf(opMatMul, fmt.Errorf("ranks %d x %d: %w", ra, rb, ErrBadShape))
	}
	m, k := a.shape[ra-2], a.shape[ra-1]
	kb, n := b.shape[rb-2], b.shape[rb-1]
	if k != kb {
		return nil, tensorErrorf(opMatMul, fmt.Errorf("%v x %v: %w", a.shape, b.shape, ErrShapeMismatch))
	}
	batch := 1
	var aStep, bStep int // per-batch offsets (0 when broadcast)
	switch {
	case ra == 3 && rb == 3:
		if a.shape[0] != b.shape[0] {
			return nil, tensorErrorf(opMatMul, fmt.Errorf("%v x %v: %w", a.shape, b.shape, ErrShapeMismatch))
		}
		batch, aStep, bStep = a.shape[0], m*k, k*n
	case ra == 3:
		batch, aStep = a.shape[0], m*k
	case rb == 3:
		batch, bStep = b.shape[0], k*n
	}

	var out *Tensor
	if ra == 2 && rb == 2 {
		out = &Tensor{shape: []int{m, n}, data: make([]float64, m*n)}
	} else {
		out = &Tensor{shape: []int{batch, m, n}, data: make([]float64, batch*m*n)}
	}

	var i, p, j, ao, bo, co int
	var av float64
	for bi := 0; bi < batch; bi++ {
		ao, bo, co = bi*aStep, bi*bStep, bi*m*n
		for i = 0; i < m; i++ {
			for p = 0; p < k; p++ {
				// zeros are multiplied through so 0·Inf yields NaN
				av = a.data[ao+i*k+p]
				for j = 0; j < n; j++ {
					out.data[co+i*n+j] += av * b.data[bo+p*n+j]
				}
			}
		}
	}

	return out, nil
}

// Sum returns the sum of all elements.
func (t *Tensor) Sum() float64 {
	s := 0.0
	for _, v := range t.data {
		s += v
	}

	return s
}

// Mean returns the arithmetic mean of all elements.
func (t *Tensor) Mean() float64 { return t.Sum() / float64(len(t.data)) }

// MaxAbs returns max |v| over all elements.
func (t *Tensor) MaxAbs() float64 {
	m := 0.0
	for _, v := range t.data {
		if a := math.Abs(v); a > m {
			m = a
		}
	}

	return m
}

// AllFinite reports whether no element is NaN or ±Inf.
func (t *Tensor) AllFinite() bool {
	for _, v := range t.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}

// AllClose reports whether a and b share a shape and satisfy
// |a-b| <= atol + rtol*|b| element-wise.
func AllClose(a, b *Tensor, rtol, atol float64) bool {
	if !a.HasShape(b.shape...) {
		return false
	}
	for i := range a.data {
		if math.Abs(a.data[i]-b.data[i]) > atol+rtol*math.Abs(b.data[i]) {
			return false
		}
	}

	return true
}
