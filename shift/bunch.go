// SPDX-License-Identifier: MIT
// Package shift: the seven cross-dimensional operators of the decomposition
// family, linking node-, edge- and triangle-level signals.
//
// Operator layout (order is load-bearing, the forward pass pairs weights
// positionally):
//
//	S00 (N×N)  node diffusion        I - L0/ν0,  L0 = B1ᵗ·B1
//	S10 (N×E)  edge→node coupling    B1ᵗ
//	S01 (E×N)  node→edge coupling    B1
//	S11 (E×E)  edge diffusion        I - (lower+upper)/ν1
//	S21 (E×T)  triangle→edge         B2ᵗ
//	S12 (T×E)  edge→triangle         B2
//	S22 (T×T)  triangle diffusion    I - L2/ν2,  L2 = B2·B2ᵗ
//
// Each diffusion block is the identity minus the level Laplacian scaled by
// its largest diagonal entry ν, keeping the spectrum inside [-1, 1]-ish so
// repeated layers stay well-conditioned. The couplings are the raw signed
// boundary maps.

package shift

import (
	"fmt"

	"github.com/katalvlaran/hodgeflow/matrix"
	"github.com/katalvlaran/hodgeflow/simplex"
)

// buildDecomposition assembles [S00, S10, S01, S11, S21, S12, S22].
// Errors: ErrNoTriangles when the complex has no 2-simplices.
// Complexity: O(E²·N + T·E²).
func buildDecomposition(c *simplex.Complex) ([]*matrix.Dense, error) {
	if c.TriangleCount() == 0 {
		return nil, ErrNoTriangles
	}

	b1 := c.B1()
	b2 := c.B2()
	b1t, err := matrix.Transpose(b1)
	if err != nil {
		return nil, fmt.Errorf("buildDecomposition: %w", err)
	}
	b2t, err := matrix.Transpose(b2)
	if err != nil {
		return nil, fmt.Errorf("buildDecomposition: %w", err)
	}

	// Node-level Laplacian L0 = B1ᵗ·B1 and its diffusion block.
	l0, err := matrix.Mul(b1t, b1)
	if err != nil {
		return nil, fmt.Errorf("buildDecomposition: L0: %w", err)
	}
	s00, err := diffusionBlock(l0)
	if err != nil {
		return nil, fmt.Errorf("buildDecomposition: S00: %w", err)
	}

	// Edge-level diffusion over the full Hodge Laplacian lower+upper.
	l1, err := matrix.Add(c.Lower(), c.Upper())
	if err != nil {
		return nil, fmt.Errorf("buildDecomposition: L1: %w", err)
	}
	s11, err := diffusionBlock(l1)
	if err != nil {
		return nil, fmt.Errorf("buildDecomposition: S11: %w", err)
	}

	// Triangle-level Laplacian L2 = B2·B2ᵗ and its diffusion block.
	l2, err := matrix.Mul(b2, b2t)
	if err != nil {
		return nil, fmt.Errorf("buildDecomposition: L2: %w", err)
	}
	s22, err := diffusionBlock(l2)
	if err != nil {
		return nil, fmt.Errorf("buildDecomposition: S22: %w", err)
	}

	return []*matrix.Dense{
		s00,
		b1t.(*matrix.Dense), // S10
		b1,                  // S01
		s11,
		b2t.(*matrix.Dense), // S21
		b2,                  // S12
		s22,
	}, nil
}

// diffusionBlock returns I - L/ν for a square Laplacian L, with ν its largest
// diagonal entry (clamped to 1 for an all-zero Laplacian).
// Complexity: O(n²).
func diffusionBlock(l matrix.Matrix) (*matrix.Dense, error) {
	n := l.Rows()
	nu := 1.0
	for i := 0; i < n; i++ {
		v, err := l.At(i, i)
		if err != nil {
			return nil, err
		}
		if v > nu {
			nu = v
		}
	}

	scaled, err := matrix.Scale(l, -1.0/nu)
	if err != nil {
		return nil, err
	}
	id, err := matrix.Identity(n)
	if err != nil {
		return nil, err
	}
	out, err := matrix.Add(id, scaled)
	if err != nil {
		return nil, err
	}

	return out.(*matrix.Dense), nil
}
