// SPDX-License-Identifier: MIT
// Package shift: sentinel error set.

package shift

import "errors"

var (
	// ErrUnknownFamily indicates a model-family identifier outside the
	// descriptor table. A caller configuration mistake; always fatal.
	ErrUnknownFamily = errors.New("shift: unknown model family")

	// ErrNilComplex indicates a nil *simplex.Complex was passed to Build.
	ErrNilComplex = errors.New("shift: nil complex")

	// ErrNoTriangles indicates the decomposition family was requested over a
	// complex without filled triangles; its triangle-level operators would be
	// empty.
	ErrNoTriangles = errors.New("shift: decomposition family requires triangles")
)
