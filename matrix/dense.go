// SPDX-License-Identifier: MIT

// Package matrix - row-major Dense storage & safe accessors.
//
// Purpose:
//   - Keep a compact row-major []float64 buffer (index = i*cols + j).
//   - Guarantee safety at the public surface: At/Set return errors, never panic.
//   - Optionally reject NaN/Inf on Set (validateNaNInf policy flag).
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); Clone: O(r*c).

package matrix

import (
	"fmt"
	"math"
	"strings"
)

// Dense is a concrete row-major matrix of float64 values.
type Dense struct {
	r, c           int
	data           []float64
	validateNaNInf bool // when true, Set rejects NaN/±Inf with ErrNaNInf
}

// NewDense creates an r×c zero matrix.
// Errors: ErrInvalidDimensions when r<=0 or c<=0.
func NewDense(r, c int) (*Dense, error) {
	if r <= 0 || c <= 0 {
		return nil, fmt.Errorf("NewDense(%d,%d): %w", r, c, ErrInvalidDimensions)
	}

	return &Dense{r: r, c: c, data: make([]float64, r*c)}, nil
}

// NewIdentity returns the n×n identity matrix.
func NewIdentity(n int) (*Dense, error) {
	m, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}

	return m, nil
}

// NewPreparedDense is NewDense with Set rejecting NaN/±Inf.
func NewPreparedDense(r, c int) (*Dense, error) {
	m, err := NewDense(r, c)
	if err != nil {
		return nil, err
	}
	m.validateNaNInf = true

	return m, nil
}

// Rows returns the number of rows.
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns.
func (m *Dense) Cols() int { return m.c }

// indexOf maps (i,j) into the flat buffer.
func (m *Dense) indexOf(i, j int) (int, error) {
	if i < 0 || i >= m.r || j < 0 || j >= m.c {
		return 0, fmt.Errorf("(%d,%d) in %dx%d: %w", i, j, m.r, m.c, ErrOutOfRange)
	}

	return i*m.c + j, nil
}

// At returns m[i,j].
func (m *Dense) At(i, j int) (float64, error) {
	k, err := m.indexOf(i, j)
	if err != nil {
		return 0, matrixErrorf(opAt, err)
	}

	return m.data[k], nil
}

// Set writes v at (i,j).
func (m *Dense) Set(i, j int, v float64) error {
	k, err := m.indexOf(i, j)
	if err != nil {
		return matrixErrorf(opSet, err)
	}
	if m.validateNaNInf && (math.IsNaN(v) || math.IsInf(v, 0)) {
		return matrixErrorf(opSet, fmt.Errorf("(%d,%d)=%v: %w", i, j, v, ErrNaNInf))
	}
	m.data[k] = v

	return nil
}

// Add accumulates v into (i,j).
func (m *Dense) Add(i, j int, v float64) error {
	k, err := m.indexOf(i, j)
	if err != nil {
		return matrixErrorf(opSet, err)
	}

	return m.Set(i, j, m.data[k]+v)
}

// Clone returns a deep copy.
func (m *Dense) Clone() *Dense {
	buf := make([]float64, len(m.data))
	copy(buf, m.data)

	return &Dense{r: m.r, c: m.c, data: buf, validateNaNInf: m.validateNaNInf}
}

// RawData returns a copy of the row-major buffer.
func (m *Dense) RawData() []float64 {
	return append([]float64(nil), m.data...)
}

// String renders the matrix one row per line.
func (m *Dense) String() string {
	var sb strings.Builder
	for i := 0; i < m.r; i++ {
		sb.WriteString(fmt.Sprint(m.data[i*m.c : (i+1)*m.c]))
		sb.WriteByte('\n')
	}

	return sb.String()
}
