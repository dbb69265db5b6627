// SPDX-License-Identifier: MIT
// Package simplex_test: structural tests for the Complex.

package simplex_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hodgeflow/matrix"
	"github.com/katalvlaran/hodgeflow/simplex"
)

// cycle4 returns the 4-node cycle 0-1-2-3-0 (no triangles).
func cycle4(t *testing.T) *simplex.Complex {
	t.Helper()
	c, err := simplex.New(4, [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}}, nil)
	require.NoError(t, err)

	return c
}

// filledTriangle returns a complex with one filled triangle (0,1,2) plus a
// tail node 3 hanging off nodes 1 and 2.
func filledTriangle(t *testing.T) *simplex.Complex {
	t.Helper()
	edges := [][2]int{{0, 1}, {0, 2}, {1, 2}, {1, 3}, {2, 3}}
	c, err := simplex.New(4, edges, [][3]int{{0, 1, 2}})
	require.NoError(t, err)

	return c
}

func TestNewCanonicalEdgeOrder(t *testing.T) {
	// Edges given unsorted and reversed; construction canonicalizes low→high
	// and lexicographic row order.
	c, err := simplex.New(4, [][2]int{{3, 0}, {2, 1}, {0, 1}, {3, 2}}, nil)
	require.NoError(t, err)

	want := []simplex.Edge{{Tail: 0, Head: 1}, {Tail: 0, Head: 3}, {Tail: 1, Head: 2}, {Tail: 2, Head: 3}}
	require.Equal(t, want, c.Edges())
}

func TestNewRejectsMalformedInput(t *testing.T) {
	_, err := simplex.New(0, [][2]int{{0, 1}}, nil)
	require.ErrorIs(t, err, simplex.ErrBadSimplices)

	_, err = simplex.New(3, [][2]int{{0, 0}}, nil)
	require.ErrorIs(t, err, simplex.ErrBadSimplices)

	_, err = simplex.New(3, [][2]int{{0, 1}, {1, 0}}, nil)
	require.ErrorIs(t, err, simplex.ErrBadSimplices, "duplicate edge under reversal")

	_, err = simplex.New(4, [][2]int{{0, 1}, {1, 2}}, [][3]int{{0, 1, 2}})
	require.ErrorIs(t, err, simplex.ErrBadSimplices, "triangle over missing edge")

	_, err = simplex.New(4, [][2]int{{0, 1}, {1, 2}, {0, 2}}, [][3]int{{2, 1, 0}})
	require.ErrorIs(t, err, simplex.ErrBadSimplices, "unsorted triangle")
}

func TestB1Shape(t *testing.T) {
	c := cycle4(t)
	b1 := c.B1()
	require.Equal(t, 4, b1.Rows())
	require.Equal(t, 4, b1.Cols())

	// Every row: exactly one -1 and one +1.
	for i := 0; i < b1.Rows(); i++ {
		neg, pos := 0, 0
		for j := 0; j < b1.Cols(); j++ {
			v, err := b1.At(i, j)
			require.NoError(t, err)
			switch v {
			case -1:
				neg++
			case 1:
				pos++
			default:
				require.Zero(t, v)
			}
		}
		require.Equal(t, 1, neg, "row %d", i)
		require.Equal(t, 1, pos, "row %d", i)
	}
}

func TestBoundaryOfBoundaryIsZero(t *testing.T) {
	c := filledTriangle(t)
	prod, err := matrix.Mul(c.B2(), c.B1())
	require.NoError(t, err)
	for i := 0; i < prod.Rows(); i++ {
		for j := 0; j < prod.Cols(); j++ {
			v, err := prod.At(i, j)
			require.NoError(t, err)
			require.Zero(t, v, "(B2·B1)[%d,%d]", i, j)
		}
	}
}

func TestFromBoundariesRoundTrip(t *testing.T) {
	orig := filledTriangle(t)
	re, err := simplex.FromBoundaries(orig.B1(), orig.B2())
	require.NoError(t, err)
	require.Equal(t, orig.Edges(), re.Edges())
	require.Equal(t, orig.TriangleCount(), re.TriangleCount())
}

func TestFromBoundariesRejectsBadRows(t *testing.T) {
	b1, err := matrix.NewDenseFromRows([][]float64{{-1, 1, 0}, {0, 1, 1}}) // second row: two +1
	require.NoError(t, err)
	_, err = simplex.FromBoundaries(b1, nil)
	require.ErrorIs(t, err, simplex.ErrBadEdgeRow)

	_, err = simplex.FromBoundaries(nil, nil)
	require.ErrorIs(t, err, simplex.ErrNilBoundary)
}

// Lower and upper must be symmetric positive-semidefinite (spec property):
// symmetry checked entrywise, PSD probed with random quadratic forms.
func TestShiftOperatorsSymmetricPSD(t *testing.T) {
	c := filledTriangle(t)
	rng := rand.New(rand.NewSource(7))

	for name, op := range map[string]*matrix.Dense{"lower": c.Lower(), "upper": c.Upper()} {
		n := op.Rows()
		require.Equal(t, c.EdgeCount(), n)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				vij, err := op.At(i, j)
				require.NoError(t, err)
				vji, err := op.At(j, i)
				require.NoError(t, err)
				require.Equal(t, vij, vji, "%s symmetry at (%d,%d)", name, i, j)
			}
		}
		for trial := 0; trial < 32; trial++ {
			x := make([]float64, n)
			for k := range x {
				x[k] = rng.NormFloat64()
			}
			y, err := matrix.MatVec(op, x)
			require.NoError(t, err)
			quad := 0.0
			for k := range x {
				quad += x[k] * y[k]
			}
			require.GreaterOrEqual(t, quad, -1e-9, "%s must be PSD", name)
		}
	}
}

func TestEdgeBetweenSigns(t *testing.T) {
	c := cycle4(t)

	id, sign, err := c.EdgeBetween(0, 1)
	require.NoError(t, err)
	require.Equal(t, 0, id)
	require.Equal(t, 1.0, sign)

	id, sign, err = c.EdgeBetween(1, 0)
	require.NoError(t, err)
	require.Equal(t, 0, id)
	require.Equal(t, -1.0, sign)

	// (3,0) canonicalizes to 0→3: traversing 3→0 runs against orientation.
	_, sign, err = c.EdgeBetween(3, 0)
	require.NoError(t, err)
	require.Equal(t, -1.0, sign)

	_, _, err = c.EdgeBetween(0, 2)
	require.ErrorIs(t, err, simplex.ErrUnknownEdge)
	_, _, err = c.EdgeBetween(-1, 2)
	require.ErrorIs(t, err, simplex.ErrUnknownNode)
}

func TestNeighborhoodTablePadding(t *testing.T) {
	c := filledTriangle(t) // degrees: 0→2, 1→3, 2→3, 3→2
	nt := c.NeighborhoodTable()
	require.Equal(t, 3, nt.Width())
	require.Equal(t, 4, nt.Len())

	row, err := nt.Row(0)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, simplex.PadNode}, row)

	row, err = nt.Row(1)
	require.NoError(t, err)
	require.Equal(t, []int{0, 2, 3}, row)

	deg, err := nt.Degree(3)
	require.NoError(t, err)
	require.Equal(t, 2, deg)

	wide, err := c.NeighborhoodTableWidth(5)
	require.NoError(t, err)
	row, err = wide.Row(3)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, simplex.PadNode, simplex.PadNode, simplex.PadNode}, row)

	_, err = c.NeighborhoodTableWidth(2)
	require.ErrorIs(t, err, simplex.ErrBadWidth)
}
