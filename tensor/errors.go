// SPDX-License-Identifier: MIT
// Package tensor: sentinel error set.
//
// All kernels return these sentinels (wrapped with an operation tag via %w);
// callers branch with errors.Is.

package tensor

import (
	"errors"
	"fmt"
)

var (
	// ErrBadShape is returned when a shape is empty or has an axis <= 0.
	ErrBadShape = errors.New("tensor: invalid shape")

	// ErrShapeMismatch indicates operands with incompatible shapes.
	ErrShapeMismatch = errors.New("tensor: shape mismatch")

	// ErrAxisOutOfRange indicates an axis, index or permutation outside bounds.
	ErrAxisOutOfRange = errors.New("tensor: axis or index out of range")

	// ErrDataLength indicates a backing slice whose length differs from the
	// product of the shape.
	ErrDataLength = errors.New("tensor: data length does not match shape")
)

// Operation tags for error wrapping.
const (
	opNew     = "New"
	opFrom    = "FromSlice"
	opAt      = "At"
	opSet     = "Set"
	opReshape = "Reshape"
	opPermute = "Permute"
	opSelect  = "Select"
	opStack   = "Stack"
	opBinary  = "Elementwise"
	opSoftmax = "SoftmaxAxis"
	opMatMul  = "MatMul"
)

// tensorErrorf wraps err with an operation tag, preserving it for errors.Is.
func tensorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
