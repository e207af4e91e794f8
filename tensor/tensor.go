// SPDX-License-Identifier: MIT

// Package tensor - row-major storage & safe accessors.
//
// Purpose:
//   - Keep a flat []float64 buffer plus an explicit shape; the flat offset of
//     (i0, i1, ..., ik) is Σ i_a * stride_a with strides derived from the shape.
//   - Guarantee safety at the public surface: At/Set return errors.
//   - Reshape shares the buffer; every other operation allocates its result.
//
// Complexity quicksheet:
//   - New: O(volume) zero-init; At/Set: O(ndim); Clone: O(volume); Reshape: O(ndim).

package tensor

import (
	"fmt"
	"strings"
)

// Tensor is a dense row-major N-dimensional array of float64 values.
type Tensor struct {
	shape []int     // axis lengths, every entry > 0
	data  []float64 // len(data) == volume(shape)
}

// volume returns the product of dims, or an error if dims is empty or has a
// non-positive axis.
func volume(dims []int) (int, error) {
	if len(dims) == 0 {
		return 0, ErrBadShape
	}
	n := 1
	for _, d := range dims {
		if d <= 0 {
			return 0, ErrBadShape
		}
		n *= d
	}

	return n, nil
}

// strides returns row-major strides for dims.
func strides(dims []int) []int {
	st := make([]int, len(dims))
	acc := 1
	for a := len(dims) - 1; a >= 0; a-- {
		st[a] = acc
		acc *= dims[a]
	}

	return st
}

// New allocates a zero tensor with the given shape.
// Errors: ErrBadShape when dims is empty or any axis is <= 0.
func New(dims ...int) (*Tensor, error) {
	n, err := volume(dims)
	if err != nil {
		return nil, tensorErrorf(opNew, fmt.Errorf("shape %v: %w", dims, err))
	}

	return &Tensor{shape: append([]int(nil), dims...), data: make([]float64, n)}, nil
}

// FromSlice builds a tensor that owns a copy of data.
// Errors: ErrBadShape, ErrDataLength.
func FromSlice(data []float64, dims ...int) (*Tensor, error) {
	n, err := volume(dims)
	if err != nil {
		return nil, tensorErrorf(opFrom, fmt.Errorf("shape %v: %w", dims, err))
	}
	if len(data) != n {
		return nil, tensorErrorf(opFrom, fmt.Errorf("len=%d, shape %v: %w", len(data), dims, ErrDataLength))
	}
	buf := make([]float64, n)
	copy(buf, data)

	return &Tensor{shape: append([]int(nil), dims...), data: buf}, nil
}

// Full allocates a tensor with every element set to v.
func Full(v float64, dims ...int) (*Tensor, error) {
	t, err := New(dims...)
	if err != nil {
		return nil, err
	}
	for i := range t.data {
		t.data[i] = v
	}

	return t, nil
}

// zerosLike allocates a zero tensor with t's shape. Shapes held by a Tensor
// are always valid, so this cannot fail.
func zerosLike(t *Tensor) *Tensor {
	return &Tensor{shape: append([]int(nil), t.shape...), data: make([]float64, len(t.data))}
}

// Shape returns a copy of the axis lengths.
func (t *Tensor) Shape() []int { return append([]int(nil), t.shape...) }

// NDim returns the number of axes.
func (t *Tensor) NDim() int { return len(t.shape) }

// Dim returns the length of axis a; negative a counts from the end.
// Out-of-range axes return 0.
func (t *Tensor) Dim(a int) int {
	if a < 0 {
		a += len(t.shape)
	}
	if a < 0 || a >= len(t.shape) {
		return 0
	}

	return t.shape[a]
}

// Size returns the total number of elements.
func (t *Tensor) Size() int { return len(t.data) }

// Data returns the backing slice. Mutations are visible to t and to every
// tensor reshaped from it.
func (t *Tensor) Data() []float64 { return t.data }

// HasShape reports whether t has exactly the given shape.
func (t *Tensor) HasShape(dims ...int) bool {
	if len(dims) != len(t.shape) {
		return false
	}
	for a, d := range dims {
		if t.shape[a] != d {
			return false
		}
	}

	return true
}

// offset resolves a multi-index into a flat offset.
func (t *Tensor) offset(idx []int) (int, error) {
	if len(idx) != len(t.shape) {
		return 0, fmt.Errorf("got %d indices for %d axes: %w", len(idx), len(t.shape), ErrAxisOutOfRange)
	}
	off := 0
	for a, i := range idx {
		if i < 0 || i >= t.shape[a] {
			return 0, fmt.Errorf("index %d on axis %d (len %d): %w", i, a, t.shape[a], ErrAxisOutOfRange)
		}
		off = off*t.shape[a] + i
	}

	return off, nil
}

// At returns the element at idx.
func (t *Tensor) At(idx ...int) (float64, error) {
	off, err := t.offset(idx)
	if err != nil {
		return 0, tensorErrorf(opAt, err)
	}

	return t.data[off], nil
}

// Set writes v at idx.
func (t *Tensor) Set(v float64, idx ...int) error {
	off, err := t.offset(idx)
	if err != nil {
		return tensorErrorf(opSet, err)
	}
	t.data[off] = v

	return nil
}

// Clone returns a deep copy.
func (t *Tensor) Clone() *Tensor {
	c := zerosLike(t)
	copy(c.data, t.data)

	return c
}

// Reshape returns a tensor that shares t's buffer under a new shape.
// Errors: ErrBadShape, ErrDataLength (volume differs).
func (t *Tensor) Reshape(dims ...int) (*Tensor, error) {
	n, err := volume(dims)
	if err != nil {
		return nil, tensorErrorf(opReshape, fmt.Errorf("shape %v: %w", dims, err))
	}
	if n != len(t.data) {
		return nil, tensorErrorf(opReshape, fmt.Errorf("%v -> %v: %w", t.shape, dims, ErrDataLength))
	}

	return &Tensor{shape: append([]int(nil), dims...), data: t.data}, nil
}

// String renders the shape and, for small tensors, the flat data.
func (t *Tensor) String() string {
	var sb strings.Builder
	sb.WriteString("Tensor")
	sb.WriteString(fmt.Sprint(t.shape))
	if len(t.data) <= 32 {
		sb.WriteString(fmt.Sprint(t.data))
	}

	return sb.String()
}
