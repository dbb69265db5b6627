// SPDX-License-Identifier: MIT
// Package simplex: conditional incidence selector.
// Restricts model output to the edges incident to a node's neighbors,
// implementing "predict only among legal next hops".

package simplex

import (
	"fmt"

	"github.com/katalvlaran/hodgeflow/matrix"
)

// CondIncidence serves, for a given current node, the incidence rows of each
// of its padded neighbor slots.
//
// Internally it holds the bias-augmented node-incidence view of B1: a
// (nodes+1)×edges matrix whose row v is column v of B1 (the signed incidence
// of node v on every edge) and whose final row is all zeros. The PadNode
// sentinel indexes that zero row, so padded slots resolve to the same bias
// for every node and can be uniformly batched; callers must exclude padded
// slots from loss and accuracy.
type CondIncidence struct {
	aug   *matrix.Dense // (nodes+1) × edges
	table *NeighborhoodTable
}

// NewCondIncidence builds the selector over a complex and its padded table.
// The table may be wider than the max degree; output shape follows the table.
// Complexity: O(N·E).
func NewCondIncidence(c *Complex, table *NeighborhoodTable) (*CondIncidence, error) {
	if table == nil {
		table = c.NeighborhoodTable()
	}
	edges := c.EdgeCount()
	aug, err := matrix.NewDense(c.nodes+1, edges)
	if err != nil {
		return nil, fmt.Errorf("NewCondIncidence: %w", err)
	}
	// Row v of the augmented view is column v of B1; the appended row stays 0.
	var v float64
	for e := 0; e < edges; e++ {
		for n := 0; n < c.nodes; n++ {
			if v, err = c.b1.At(e, n); err != nil {
				return nil, fmt.Errorf("NewCondIncidence: %w", err)
			}
			if v != 0 {
				if err = aug.Set(n, e, v); err != nil {
					return nil, fmt.Errorf("NewCondIncidence: %w", err)
				}
			}
		}
	}

	return &CondIncidence{aug: aug, table: table}, nil
}

// Rows returns the fixed-shape (width × edges) selector matrix for node n:
// one incidence row per padded neighbor slot, with sentinel slots mapped to
// the zero bias row.
// Errors: ErrUnknownNode.
// Complexity: O(width·E).
func (s *CondIncidence) Rows(n int) (*matrix.Dense, error) {
	padded, err := s.table.Row(n)
	if err != nil {
		return nil, fmt.Errorf("CondIncidence.Rows: %w", err)
	}
	out, err := matrix.NewDense(s.table.Width(), s.aug.Cols())
	if err != nil {
		return nil, fmt.Errorf("CondIncidence.Rows: %w", err)
	}
	zeroRow := s.aug.Rows() - 1
	for slot, nbr := range padded {
		src := nbr
		if nbr == PadNode {
			src = zeroRow
		}
		row, rerr := s.aug.Row(src)
		if rerr != nil {
			return nil, fmt.Errorf("CondIncidence.Rows: %w", rerr)
		}
		if err = out.SetRow(slot, row); err != nil {
			return nil, fmt.Errorf("CondIncidence.Rows: %w", err)
		}
	}

	return out, nil
}

// Table exposes the padded neighborhood table backing the selector.
func (s *CondIncidence) Table() *NeighborhoodTable { return s.table }
