// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// All kernels MUST return these sentinels (optionally wrapped with
// fmt.Errorf("ctx: %w", ErrX) at call sites) and tests MUST check them via
// errors.Is. Panics are reserved for programmer errors in private helpers.

package matrix

import "errors"

var (
	// ErrInvalidDimensions is returned when a requested shape is non-positive.
	// Constructors must validate before allocation.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that a row or column index is outside valid
	// bounds. Public indexers (At/Set) return this, they never panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g. Add with different shapes, or Mul where a.Cols != b.Rows.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrNegativePower is returned by Pow for exponents < 0; the simplicial
	// operators have no inverses worth chasing here.
	ErrNegativePower = errors.New("matrix: negative power")
)
