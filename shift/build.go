// SPDX-License-Identifier: MIT
// Package shift: operator assembly.

package shift

import (
	"fmt"

	"github.com/katalvlaran/hodgeflow/matrix"
	"github.com/katalvlaran/hodgeflow/simplex"
)

// Set is the ordered operator list a forward pass consumes, together with the
// descriptor that tells it how. Operators are freshly derived per Build and
// treated as immutable for the lifetime of a training run.
type Set struct {
	Descriptor Descriptor
	Operators  []*matrix.Dense
}

// Build derives the shift-operator set for a family from a complex.
//
// Implementation:
//   - Stage 1 (Validate): non-nil complex, known family; the decomposition
//     family additionally requires at least one filled triangle.
//   - Stage 2 (Execute): for power families, walk the descriptor's term list
//     keeping one running product per base operator, so L² is L·L computed
//     right after L, L³ is L²·L, and so on, in the stated order. The
//     decomposition family delegates to buildDecomposition.
//
// Powers are never carried between Build calls; a new complex always yields
// freshly computed operators.
//
// Errors: ErrNilComplex, ErrUnknownFamily, ErrNoTriangles.
// Complexity: O(maxPower · E³) for power families.
func Build(c *simplex.Complex, id Family) (*Set, error) {
	if c == nil {
		return nil, fmt.Errorf("Build: %w", ErrNilComplex)
	}
	d, err := Lookup(id)
	if err != nil {
		return nil, fmt.Errorf("Build: %w", err)
	}

	if d.ID == Decomposition {
		ops, derr := buildDecomposition(c)
		if derr != nil {
			return nil, fmt.Errorf("Build: %w", derr)
		}

		return &Set{Descriptor: d, Operators: ops}, nil
	}

	// Resolve the base operators once.
	lower := c.Lower()
	upper := c.Upper()
	var combined *matrix.Dense
	if needsCombined(d) {
		sum, serr := matrix.Add(lower, upper)
		if serr != nil {
			return nil, fmt.Errorf("Build: combined: %w", serr)
		}
		combined = sum.(*matrix.Dense)
	}

	// Cumulative powers: running[base] holds base^(powerSoFar[base]).
	running := map[baseOp]matrix.Matrix{}
	powerOf := map[baseOp]int{}
	baseOf := map[baseOp]*matrix.Dense{opLower: lower, opUpper: upper, opCombined: combined}

	ops := make([]*matrix.Dense, 0, len(d.terms))
	for _, term := range d.terms {
		root := baseOf[term.base]
		cur, started := running[term.base]
		if !started {
			cur = root.Clone()
			powerOf[term.base] = 1
		}
		for powerOf[term.base] < term.power {
			next, merr := matrix.Mul(cur, root)
			if merr != nil {
				return nil, fmt.Errorf("Build: power %d: %w", powerOf[term.base]+1, merr)
			}
			cur = next
			powerOf[term.base]++
		}
		running[term.base] = cur
		ops = append(ops, cur.Clone().(*matrix.Dense))
	}

	return &Set{Descriptor: d, Operators: ops}, nil
}

func needsCombined(d Descriptor) bool {
	for _, t := range d.terms {
		if t.base == opCombined {
			return true
		}
	}

	return false
}
