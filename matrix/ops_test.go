// SPDX-License-Identifier: MIT
// Package matrix_test: kernel tests, including the interface-fallback path
// (a wrapper hiding the concrete *Dense forces the generic loops).

package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hodgeflow/matrix"
)

// hide wraps a Matrix to defeat the *Dense type assertion in kernels.
type hide struct{ matrix.Matrix }

func mustDense(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFromRows(rows)
	require.NoError(t, err)

	return m
}

func requireEqualMat(t *testing.T, want [][]float64, got matrix.Matrix) {
	t.Helper()
	require.Equal(t, len(want), got.Rows())
	require.Equal(t, len(want[0]), got.Cols())
	for i := range want {
		for j := range want[i] {
			v, err := got.At(i, j)
			require.NoError(t, err)
			require.InDelta(t, want[i][j], v, 1e-12, "at (%d,%d)", i, j)
		}
	}
}

func TestAddSub(t *testing.T) {
	a := mustDense(t, [][]float64{{1, 2}, {3, 4}})
	b := mustDense(t, [][]float64{{10, 20}, {30, 40}})

	sum, err := matrix.Add(a, b)
	require.NoError(t, err)
	requireEqualMat(t, [][]float64{{11, 22}, {33, 44}}, sum)

	diff, err := matrix.Sub(b, a)
	require.NoError(t, err)
	requireEqualMat(t, [][]float64{{9, 18}, {27, 36}}, diff)

	_, err = matrix.Add(a, mustDense(t, [][]float64{{1, 2, 3}}))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.Add(nil, a)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestMul(t *testing.T) {
	a := mustDense(t, [][]float64{{1, 2, 0}, {0, 1, -1}})
	b := mustDense(t, [][]float64{{1, 0}, {2, 1}, {0, 3}})

	c, err := matrix.Mul(a, b)
	require.NoError(t, err)
	requireEqualMat(t, [][]float64{{5, 2}, {2, -2}}, c)

	_, err = matrix.Mul(a, mustDense(t, [][]float64{{1, 2}}))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestMulFallbackMatchesFastPath(t *testing.T) {
	a := mustDense(t, [][]float64{{1, -1}, {2, 0.5}})
	b := mustDense(t, [][]float64{{3, 1}, {0, -2}})

	fast, err := matrix.Mul(a, b)
	require.NoError(t, err)
	slow, err := matrix.Mul(hide{a}, b)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			fv, err := fast.At(i, j)
			require.NoError(t, err)
			sv, err := slow.At(i, j)
			require.NoError(t, err)
			require.Equal(t, fv, sv)
		}
	}
}

func TestScaleTranspose(t *testing.T) {
	a := mustDense(t, [][]float64{{1, -2}, {3, 4}})

	s, err := matrix.Scale(a, -0.5)
	require.NoError(t, err)
	requireEqualMat(t, [][]float64{{-0.5, 1}, {-1.5, -2}}, s)

	tr, err := matrix.Transpose(mustDense(t, [][]float64{{1, 2, 3}, {4, 5, 6}}))
	require.NoError(t, err)
	requireEqualMat(t, [][]float64{{1, 4}, {2, 5}, {3, 6}}, tr)
}

func TestMatVec(t *testing.T) {
	a := mustDense(t, [][]float64{{1, 2}, {3, 4}, {5, 6}})

	y, err := matrix.MatVec(a, []float64{1, -1})
	require.NoError(t, err)
	require.Equal(t, []float64{-1, -1, -1}, y)

	_, err = matrix.MatVec(a, []float64{1})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.MatVec(a, nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestPow(t *testing.T) {
	a := mustDense(t, [][]float64{{0, 1}, {1, 1}}) // Fibonacci companion

	p0, err := matrix.Pow(a, 0)
	require.NoError(t, err)
	requireEqualMat(t, [][]float64{{1, 0}, {0, 1}}, p0)

	p1, err := matrix.Pow(a, 1)
	require.NoError(t, err)
	requireEqualMat(t, [][]float64{{0, 1}, {1, 1}}, p1)

	p5, err := matrix.Pow(a, 5)
	require.NoError(t, err)
	requireEqualMat(t, [][]float64{{3, 5}, {5, 8}}, p5)

	// Pow must not mutate its input.
	requireEqualMat(t, [][]float64{{0, 1}, {1, 1}}, a)

	_, err = matrix.Pow(a, -1)
	require.ErrorIs(t, err, matrix.ErrNegativePower)
	_, err = matrix.Pow(mustDense(t, [][]float64{{1, 2, 3}}), 2)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}
