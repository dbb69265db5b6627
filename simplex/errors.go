// SPDX-License-Identifier: MIT
// Package simplex: sentinel error set.

package simplex

import "errors"

var (
	// ErrNilBoundary indicates a nil boundary matrix was passed to a constructor.
	ErrNilBoundary = errors.New("simplex: nil boundary matrix")

	// ErrBadEdgeRow indicates a B1 row that does not hold exactly one -1 and
	// one +1 entry.
	ErrBadEdgeRow = errors.New("simplex: malformed B1 edge row")

	// ErrBadTriangleRow indicates a B2 row that does not hold exactly three
	// ±1 entries.
	ErrBadTriangleRow = errors.New("simplex: malformed B2 triangle row")

	// ErrBoundarySquare indicates that B2·B1 != 0, i.e. the two boundary
	// matrices do not describe the same complex.
	ErrBoundarySquare = errors.New("simplex: boundary-of-boundary identity violated")

	// ErrUnknownNode indicates a node id outside [0, Nodes).
	ErrUnknownNode = errors.New("simplex: unknown node id")

	// ErrUnknownEdge indicates an (u,v) pair with no edge in the complex.
	ErrUnknownEdge = errors.New("simplex: unknown edge")

	// ErrBadFlip indicates a flip sign vector with wrong length or entries
	// other than ±1.
	ErrBadFlip = errors.New("simplex: flip signs must be ±1 with one entry per edge")

	// ErrBadSimplices indicates an invalid edge or triangle list handed to
	// the high-level builder (duplicate edge, out-of-range endpoint, triangle
	// over a missing edge, and so on).
	ErrBadSimplices = errors.New("simplex: invalid simplex list")

	// ErrBadWidth indicates a neighborhood padding width below the complex's
	// maximum degree.
	ErrBadWidth = errors.New("simplex: padding width below max degree")
)
