// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// All routines return these sentinels wrapped with an operation tag; tests and
// callers match them via errors.Is. No routine panics on user input.

package matrix

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible operand dimensions,
	// e.g. Mul where a.Cols != b.Rows, or a non-square input to Eigen.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrAsymmetry signals that a matrix expected to be symmetric violated symmetry
	// within the configured epsilon.
	ErrAsymmetry = errors.New("matrix: matrix is not symmetric within eps")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil Matrix was passed.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrEigenFailed indicates that an eigen routine failed to converge.
	ErrEigenFailed = errors.New("matrix: eigen decomposition failed")
)

// Operation name constants for unified error wrapping.
const (
	opAt       = "At"
	opSet      = "Set"
	opMul      = "Mul"
	opTrans    = "Transpose"
	opEigen    = "Eigen"
	opSpectral = "SpectralRadius"
	opSym      = "ValidateSymmetric"
	opSquare   = "ValidateSquare"
)

// matrixErrorf wraps err with an operation tag, preserving it for errors.Is.
// Call only with a non-nil err.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
