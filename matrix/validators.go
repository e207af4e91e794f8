// SPDX-License-Identifier: MIT

// Package matrix - shared validators for shape & structure.
//
// Validators return sentinels wrapped with a uniform "<Op>: <detail>: %w"
// context. They never mutate inputs and never panic.

package matrix

import (
	"fmt"
	"math"
)

// ValidateNotNil ensures m is non-nil.
func ValidateNotNil(m *Dense) error {
	if m == nil {
		return ErrNilMatrix
	}

	return nil
}

// ValidateSquare ensures m is square.
func ValidateSquare(m *Dense) error {
	if err := ValidateNotNil(m); err != nil {
		return matrixErrorf(opSquare, err)
	}
	if m.r != m.c {
		return matrixErrorf(opSquare, fmt.Errorf("%dx%d: %w", m.r, m.c, ErrDimensionMismatch))
	}

	return nil
}

// ValidateSymmetric ensures m is square and |m[i,j]-m[j,i]| <= tol for all i<j.
// Complexity: O(n²).
func ValidateSymmetric(m *Dense, tol float64) error {
	if err := ValidateSquare(m); err != nil {
		return err
	}
	n := m.r
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if math.Abs(m.data[i*n+j]-m.data[j*n+i]) > tol {
				return matrixErrorf(opSym, fmt.Errorf("(%d,%d): %w", i, j, ErrAsymmetry))
			}
		}
	}

	return nil
}

// ValidateMulCompatible ensures a.Cols == b.Rows.
func ValidateMulCompatible(a, b *Dense) error {
	if a == nil || b == nil {
		return matrixErrorf(opMul, ErrNilMatrix)
	}
	if a.c != b.r {
		return matrixErrorf(opMul, fmt.Errorf("%dx%d * %dx%d: %w", a.r, a.c, b.r, b.c, ErrDimensionMismatch))
	}

	return nil
}

// ValidateFinite ensures every entry of m is finite.
func ValidateFinite(m *Dense) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	for k, v := range m.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("(%d,%d)=%v: %w", k/m.c, k%m.c, v, ErrNaNInf)
		}
	}

	return nil
}
