// SPDX-License-Identifier: MIT
// Package simplex: padded neighborhood table.
// Deterministic neighbor enumeration (sorted ascending) padded to the graph
// maximum degree so that every node can be batched with a uniform shape.

package simplex

import "fmt"

// PadNode is the sentinel filling unused neighbor slots. The conditional
// incidence selector resolves it to an all-zero bias row, so padded slots stay
// well-defined but carry no signal.
const PadNode = -1

// NeighborhoodTable maps node id → fixed-width row of sorted neighbor ids,
// padded with PadNode. Built once per complex; immutable afterwards.
type NeighborhoodTable struct {
	width   int
	degrees []int
	rows    []int // nodes × width, flattened row-major
}

// NeighborhoodTable builds the padded table at the complex's max degree.
// Complexity: O(N·maxDegree).
func (c *Complex) NeighborhoodTable() *NeighborhoodTable {
	return c.buildNeighborhoodTable(c.MaxDegree())
}

// NeighborhoodTableWidth builds the table padded to an explicit width, which
// must be at least the max degree. Widening the padding must never change
// model accuracy; tests rely on this constructor to prove it.
// Errors: ErrBadWidth. Complexity: O(N·width).
func (c *Complex) NeighborhoodTableWidth(width int) (*NeighborhoodTable, error) {
	if width < c.MaxDegree() {
		return nil, fmt.Errorf("NeighborhoodTableWidth(%d): max degree %d: %w", width, c.MaxDegree(), ErrBadWidth)
	}

	return c.buildNeighborhoodTable(width), nil
}

func (c *Complex) buildNeighborhoodTable(width int) *NeighborhoodTable {
	nt := &NeighborhoodTable{
		width:   width,
		degrees: make([]int, c.nodes),
		rows:    make([]int, c.nodes*width),
	}
	for n := 0; n < c.nodes; n++ {
		nbrs := c.adjacency[n]
		nt.degrees[n] = len(nbrs)
		base := n * width
		for s := 0; s < width; s++ {
			if s < len(nbrs) {
				nt.rows[base+s] = nbrs[s]
			} else {
				nt.rows[base+s] = PadNode
			}
		}
	}

	return nt
}

// Width returns the padded row width. Complexity: O(1).
func (nt *NeighborhoodTable) Width() int { return nt.width }

// Len returns the number of nodes in the table. Complexity: O(1).
func (nt *NeighborhoodTable) Len() int { return len(nt.degrees) }

// Degree returns the true (unpadded) degree of node n.
// Errors: ErrUnknownNode. Complexity: O(1).
func (nt *NeighborhoodTable) Degree(n int) (int, error) {
	if n < 0 || n >= len(nt.degrees) {
		return 0, fmt.Errorf("Degree(%d): %w", n, ErrUnknownNode)
	}

	return nt.degrees[n], nil
}

// Row returns a copy of the padded neighbor row for node n.
// Errors: ErrUnknownNode. Complexity: O(width).
func (nt *NeighborhoodTable) Row(n int) ([]int, error) {
	if n < 0 || n >= len(nt.degrees) {
		return nil, fmt.Errorf("Row(%d): %w", n, ErrUnknownNode)
	}
	out := make([]int, nt.width)
	copy(out, nt.rows[n*nt.width:(n+1)*nt.width])

	return out, nil
}
