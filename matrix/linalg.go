// SPDX-License-Identifier: MIT

// Package matrix - products, transpose and the symmetric Jacobi eigen solver.

package matrix

import (
	"fmt"
	"math"
)

// Mul returns a×b.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(r·k·c).
func Mul(a, b *Dense) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, err
	}
	out, err := NewDense(a.r, b.c)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	var i, p, j int
	var av float64
	for i = 0; i < a.r; i++ {
		for p = 0; p < a.c; p++ {
			av = a.data[i*a.c+p]
			if av == 0 {
				continue
			}
			for j = 0; j < b.c; j++ {
				out.data[i*b.c+j] += av * b.data[p*b.c+j]
			}
		}
	}

	return out, nil
}

// Transpose returns mᵀ.
func Transpose(m *Dense) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTrans, err)
	}
	out := &Dense{r: m.c, c: m.r, data: make([]float64, len(m.data))}
	for i := 0; i < m.r; i++ {
		for j := 0; j < m.c; j++ {
			out.data[j*m.r+i] = m.data[i*m.c+j]
		}
	}

	return out, nil
}

// Eigen computes all eigenvalues and the orthonormal eigenvectors of a
// symmetric matrix with the cyclic-max Jacobi rotation method.
//
// Implementation:
//   - Stage 1: Validate squareness and symmetry within eps.
//   - Stage 2: Repeatedly pick the largest off-diagonal |A[p,q]| and rotate it
//     to zero, accumulating the rotations into Q.
//   - Stage 3: Stop when max |A[p,q]| < eps; fail if maxSweeps is exhausted.
//
// Returns eigenvalues (diagonal of the rotated A, unsorted) and Q whose
// column k is the eigenvector for value k.
// Errors: ErrDimensionMismatch, ErrAsymmetry, ErrEigenFailed.
// Complexity: O(maxSweeps·n) per rotation scan plus O(n) per rotation.
func Eigen(m *Dense, opts ...Option) ([]float64, *Dense, error) {
	o := gatherOptions(opts...)
	if err := ValidateSymmetric(m, o.eps); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	n := m.r
	a := m.Clone()
	q, _ := NewIdentity(n) // n > 0 is guaranteed by the Dense invariant

	var p, r, i, j int
	var maxOff, v, app, aqq, apq, theta, t, c, s float64
	converged := false
	for sweep := 0; ; sweep++ {
		maxOff, p, r = 0, 0, 0
		for i = 0; i < n; i++ {
			for j = i + 1; j < n; j++ {
				if v = math.Abs(a.data[i*n+j]); v > maxOff {
					maxOff, p, r = v, i, j
				}
			}
		}
		if maxOff < o.eps {
			converged = true
			break
		}
		if sweep == o.maxSweeps {
			break
		}

		app, aqq, apq = a.data[p*n+p], a.data[r*n+r], a.data[p*n+r]
		theta = (aqq - app) / (2 * apq)
		t = math.Copysign(1/(math.Abs(theta)+math.Hypot(theta, 1)), theta)
		c = 1 / math.Sqrt(t*t+1)
		s = t * c

		for k := 0; k < n; k++ {
			if k == p || k == r {
				continue
			}
			akp, akq := a.data[k*n+p], a.data[k*n+r]
			a.data[k*n+p] = c*akp - s*akq
			a.data[p*n+k] = a.data[k*n+p]
			a.data[k*n+r] = s*akp + c*akq
			a.data[r*n+k] = a.data[k*n+r]
		}
		a.data[p*n+p] = app - t*apq
		a.data[r*n+r] = aqq + t*apq
		a.data[p*n+r], a.data[r*n+p] = 0, 0

		for k := 0; k < n; k++ {
			qkp, qkq := q.data[k*n+p], q.data[k*n+r]
			q.data[k*n+p] = c*qkp - s*qkq
			q.data[k*n+r] = s*qkp + c*qkq
		}
	}
	if !converged {
		return nil, nil, matrixErrorf(opEigen, fmt.Errorf("%d sweeps: %w", o.maxSweeps, ErrEigenFailed))
	}

	vals := make([]float64, n)
	for i = 0; i < n; i++ {
		vals[i] = a.data[i*n+i]
	}

	return vals, q, nil
}
