// SPDX-License-Identifier: MIT
package shift_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hodgeflow/matrix"
	"github.com/katalvlaran/hodgeflow/shift"
	"github.com/katalvlaran/hodgeflow/simplex"
)

// filledTriangle: triangle {0,1,2} plus a tail node 3.
// Edges sort to {0,1},{0,2},{1,2},{1,3},{2,3}.
func filledTriangle(t *testing.T) *simplex.Complex {
	t.Helper()
	c, err := simplex.New(4,
		[][2]int{{0, 1}, {0, 2}, {1, 2}, {1, 3}, {2, 3}},
		[][3]int{{0, 1, 2}},
	)
	require.NoError(t, err)

	return c
}

// cycle4: 4-node cycle, no triangles.
func cycle4(t *testing.T) *simplex.Complex {
	t.Helper()
	c, err := simplex.New(4, [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}}, nil)
	require.NoError(t, err)

	return c
}

func requireMatEqual(t *testing.T, want, got matrix.Matrix) {
	t.Helper()
	require.Equal(t, want.Rows(), got.Rows())
	require.Equal(t, want.Cols(), got.Cols())
	for i := 0; i < want.Rows(); i++ {
		for j := 0; j < want.Cols(); j++ {
			wv, err := want.At(i, j)
			require.NoError(t, err)
			gv, err := got.At(i, j)
			require.NoError(t, err)
			require.InDelta(t, wv, gv, 1e-12, "entry (%d,%d)", i, j)
		}
	}
}

func TestLookup_UnknownFamily(t *testing.T) {
	_, err := shift.Lookup("fourier")
	require.ErrorIs(t, err, shift.ErrUnknownFamily)
}

func TestBuild_NilComplex(t *testing.T) {
	_, err := shift.Build(nil, shift.Base)
	require.ErrorIs(t, err, shift.ErrNilComplex)
}

func TestBuild_OperatorCountsAndShapes(t *testing.T) {
	c := filledTriangle(t)
	e := c.EdgeCount()

	cases := []struct {
		family shift.Family
		count  int
	}{
		{shift.Base, 2},
		{shift.Order2, 4},
		{shift.Order3, 6},
		{shift.Order4, 8},
		{shift.CombinedSum, 3},
	}
	for _, tc := range cases {
		t.Run(string(tc.family), func(t *testing.T) {
			set, err := shift.Build(c, tc.family)
			require.NoError(t, err)
			require.Equal(t, tc.count, set.Descriptor.OperatorCount())
			require.Equal(t, 1, set.Descriptor.Tracks)
			require.Len(t, set.Operators, tc.count)
			for _, op := range set.Operators {
				require.Equal(t, e, op.Rows())
				require.Equal(t, e, op.Cols())
			}
		})
	}
}

func TestBuild_PowersAreRepeatedProducts(t *testing.T) {
	c := filledTriangle(t)
	set, err := shift.Build(c, shift.Order3)
	require.NoError(t, err)

	lower := c.Lower()
	upper := c.Upper()
	l2, err := matrix.Mul(lower, lower)
	require.NoError(t, err)
	l3, err := matrix.Mul(l2, lower)
	require.NoError(t, err)
	u2, err := matrix.Mul(upper, upper)
	require.NoError(t, err)

	requireMatEqual(t, lower, set.Operators[0])
	requireMatEqual(t, l2, set.Operators[1])
	requireMatEqual(t, l3, set.Operators[2])
	requireMatEqual(t, upper, set.Operators[3])
	requireMatEqual(t, u2, set.Operators[4])
}

func TestBuild_CombinedSumUsesFullHodge(t *testing.T) {
	c := filledTriangle(t)
	set, err := shift.Build(c, shift.CombinedSum)
	require.NoError(t, err)

	s, err := matrix.Add(c.Lower(), c.Upper())
	require.NoError(t, err)
	s2, err := matrix.Mul(s, s)
	require.NoError(t, err)
	s3, err := matrix.Mul(s2, s)
	require.NoError(t, err)

	requireMatEqual(t, s, set.Operators[0])
	requireMatEqual(t, s2, set.Operators[1])
	requireMatEqual(t, s3, set.Operators[2])
}

func TestBuild_Decomposition_Shapes(t *testing.T) {
	c := filledTriangle(t)
	set, err := shift.Build(c, shift.Decomposition)
	require.NoError(t, err)
	require.Equal(t, 3, set.Descriptor.Tracks)
	require.Len(t, set.Operators, 7)

	n, e, tri := c.Nodes(), c.EdgeCount(), c.TriangleCount()
	shapes := [][2]int{
		{n, n},     // S00
		{n, e},     // S10
		{e, n},     // S01
		{e, e},     // S11
		{e, tri},   // S21
		{tri, e},   // S12
		{tri, tri}, // S22
	}
	for i, want := range shapes {
		require.Equal(t, want[0], set.Operators[i].Rows(), "operator %d rows", i)
		require.Equal(t, want[1], set.Operators[i].Cols(), "operator %d cols", i)
	}
}

func TestBuild_Decomposition_CouplingsAreBoundaries(t *testing.T) {
	c := filledTriangle(t)
	set, err := shift.Build(c, shift.Decomposition)
	require.NoError(t, err)

	b1 := c.B1()
	b1t, err := matrix.Transpose(b1)
	require.NoError(t, err)
	b2 := c.B2()
	b2t, err := matrix.Transpose(b2)
	require.NoError(t, err)

	requireMatEqual(t, b1t, set.Operators[1]) // S10
	requireMatEqual(t, b1, set.Operators[2])  // S01
	requireMatEqual(t, b2t, set.Operators[4]) // S21
	requireMatEqual(t, b2, set.Operators[5])  // S12
}

func TestBuild_Decomposition_DiffusionIsScaledLaplacian(t *testing.T) {
	c := filledTriangle(t)
	set, err := shift.Build(c, shift.Decomposition)
	require.NoError(t, err)

	// S11 = I - (lower+upper)/ν where ν is the largest diagonal entry.
	l1, err := matrix.Add(c.Lower(), c.Upper())
	require.NoError(t, err)
	nu := 0.0
	for i := 0; i < l1.Rows(); i++ {
		v, aerr := l1.At(i, i)
		require.NoError(t, aerr)
		if v > nu {
			nu = v
		}
	}
	require.Greater(t, nu, 0.0)

	s11 := set.Operators[3]
	for i := 0; i < l1.Rows(); i++ {
		for j := 0; j < l1.Cols(); j++ {
			lv, aerr := l1.At(i, j)
			require.NoError(t, aerr)
			gv, aerr := s11.At(i, j)
			require.NoError(t, aerr)
			want := -lv / nu
			if i == j {
				want++
			}
			require.InDelta(t, want, gv, 1e-12)
		}
	}
}

func TestBuild_Decomposition_RequiresTriangles(t *testing.T) {
	_, err := shift.Build(cycle4(t), shift.Decomposition)
	require.ErrorIs(t, err, shift.ErrNoTriangles)
}

func TestBuild_OperatorsAreFresh(t *testing.T) {
	c := cycle4(t)
	a, err := shift.Build(c, shift.Base)
	require.NoError(t, err)
	require.NoError(t, a.Operators[0].Set(0, 0, 99))

	b, err := shift.Build(c, shift.Base)
	require.NoError(t, err)
	v, err := b.Operators[0].At(0, 0)
	require.NoError(t, err)
	require.NotEqual(t, 99.0, v)
}
