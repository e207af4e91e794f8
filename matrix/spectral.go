// SPDX-License-Identifier: MIT

// Package matrix - spectral radius of graph Laplacians.

package matrix

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// SpectralRadius returns the real part of the eigenvalue of m with the
// largest modulus. For a graph Laplacian L = D - A this is λmax, the value
// used to rescale L into [-1, 1] for Chebyshev filtering.
//
// Symmetric matrices are solved with Eigen (Jacobi). Other square matrices
// go through gonum's general eigen decomposition (mat.Eigen); the returned
// value is the real part of the dominant, possibly complex, eigenvalue.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf, ErrEigenFailed.
func SpectralRadius(m *Dense, opts ...Option) (float64, error) {
	if err := ValidateSquare(m); err != nil {
		return 0, matrixErrorf(opSpectral, err)
	}
	if err := ValidateFinite(m); err != nil {
		return 0, matrixErrorf(opSpectral, err)
	}
	o := gatherOptions(opts...)

	if ValidateSymmetric(m, o.eps) == nil {
		vals, _, err := Eigen(m, opts...)
		if err != nil && !errors.Is(err, ErrEigenFailed) {
			return 0, matrixErrorf(opSpectral, err)
		}
		if err == nil {
			best := 0.0
			for _, v := range vals {
				if math.Abs(v) > math.Abs(best) {
					best = v
				}
			}
			return best, nil
		}
		// Jacobi ran out of sweeps; fall through to the general solver.
	}

	return generalRadius(m)
}

// generalRadius runs gonum's non-symmetric eigen solver.
func generalRadius(m *Dense) (float64, error) {
	g := mat.NewDense(m.r, m.c, m.RawData())
	var eig mat.Eigen
	if ok := eig.Factorize(g, mat.EigenNone); !ok {
		return 0, matrixErrorf(opSpectral, fmt.Errorf("gonum factorize: %w", ErrEigenFailed))
	}
	best := complex(0, 0)
	for _, v := range eig.Values(nil) {
		if cmplx.Abs(v) > cmplx.Abs(best) {
			best = v
		}
	}

	return real(best), nil
}
