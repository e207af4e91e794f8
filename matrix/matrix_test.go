// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/stgnn/matrix"
)

func TestNewDense_InvalidDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 1}, {1, 0}, {-2, 3}} {
		_, err := matrix.NewDense(dims[0], dims[1])
		require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
	}
}

func TestDense_AtSetBounds(t *testing.T) {
	m, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	require.NoError(t, m.Set(1, 2, 4.5))
	assert.Equal(t, 4.5, MustAt(t, m, 1, 2))
	require.NoError(t, m.Add(1, 2, 0.5))
	assert.Equal(t, 5.0, MustAt(t, m, 1, 2))

	_, err = m.At(2, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	require.ErrorIs(t, m.Set(0, -1, 1), matrix.ErrOutOfRange)
}

func TestPreparedDense_RejectsNaN(t *testing.T) {
	m, err := matrix.NewPreparedDense(2, 2)
	require.NoError(t, err)
	require.ErrorIs(t, m.Set(0, 0, math.NaN()), matrix.ErrNaNInf)
	require.ErrorIs(t, m.Set(0, 0, math.Inf(1)), matrix.ErrNaNInf)
}

func TestMulTranspose(t *testing.T) {
	a := MustFromRows(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	at, err := matrix.Transpose(a)
	require.NoError(t, err)
	assert.Equal(t, 3, at.Rows())
	assert.Equal(t, 2, at.Cols())

	p, err := matrix.Mul(a, at)
	require.NoError(t, err)
	assert.Equal(t, []float64{14, 32, 32, 77}, p.RawData())

	_, err = matrix.Mul(a, a)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestValidateSymmetric(t *testing.T) {
	require.NoError(t, matrix.ValidateSymmetric(cycleLaplacian(t, 5), 1e-12))

	asym := MustFromRows(t, [][]float64{{1, 2}, {0, 1}})
	require.ErrorIs(t, matrix.ValidateSymmetric(asym, 1e-12), matrix.ErrAsymmetry)

	rect := MustFromRows(t, [][]float64{{1, 2, 3}})
	require.ErrorIs(t, matrix.ValidateSymmetric(rect, 1e-12), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, matrix.ValidateSquare(nil), matrix.ErrNilMatrix)
}

func TestEigen_CycleLaplacian(t *testing.T) {
	// eigenvalues of the n-cycle Laplacian are 2 - 2cos(2πk/n)
	const n = 6
	vals, q, err := matrix.Eigen(cycleLaplacian(t, n))
	require.NoError(t, err)
	require.Len(t, vals, n)

	want := make([]float64, n)
	for k := 0; k < n; k++ {
		want[k] = 2 - 2*math.Cos(2*math.Pi*float64(k)/n)
	}
	sort.Float64s(vals)
	sort.Float64s(want)
	assert.InDeltaSlice(t, want, vals, 1e-8)

	// Q is orthonormal
	qt, err := matrix.Transpose(q)
	require.NoError(t, err)
	id, err := matrix.Mul(qt, q)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			exp := 0.0
			if i == j {
				exp = 1
			}
			assert.InDelta(t, exp, MustAt(t, id, i, j), 1e-8)
		}
	}
}

func TestEigen_RejectsAsymmetric(t *testing.T) {
	_, _, err := matrix.Eigen(MustFromRows(t, [][]float64{{0, 1}, {0, 0}}))
	require.ErrorIs(t, err, matrix.ErrAsymmetry)
}

func TestEigen_SweepLimit(t *testing.T) {
	m := MustFromRows(t, [][]float64{{2, 1, 1}, {1, 2, 1}, {1, 1, 2}})
	_, _, err := matrix.Eigen(m, matrix.WithMaxSweeps(1))
	require.ErrorIs(t, err, matrix.ErrEigenFailed)
}

func TestSpectralRadius_Symmetric(t *testing.T) {
	// 4-cycle: eigenvalues {0, 2, 2, 4}
	lmax, err := matrix.SpectralRadius(cycleLaplacian(t, 4))
	require.NoError(t, err)
	assert.InDelta(t, 4.0, lmax, 1e-9)
}

func TestSpectralRadius_Directed(t *testing.T) {
	// directed 3-cycle 0→1→2→0, L = I - A, eigenvalues 1 - ω^k
	// |1 - ω| = √3 for the complex pair, real part 1.5
	l := MustFromRows(t, [][]float64{
		{1, -1, 0},
		{0, 1, -1},
		{-1, 0, 1},
	})
	lmax, err := matrix.SpectralRadius(l)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, lmax, 1e-9)
}

func TestSpectralRadius_Errors(t *testing.T) {
	_, err := matrix.SpectralRadius(MustFromRows(t, [][]float64{{1, 2}}))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.SpectralRadius(MustFromRows(t, [][]float64{{math.NaN()}}))
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}

func TestOptions_Panic(t *testing.T) {
	assert.Panics(t, func() { matrix.WithEpsilon(0) })
	assert.Panics(t, func() { matrix.WithEpsilon(math.NaN()) })
	assert.Panics(t, func() { matrix.WithMaxSweeps(0) })
}
