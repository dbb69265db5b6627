// SPDX-License-Identifier: MIT
// Package simplex: orientation flips.
// A diagonal ±1 matrix F conjugates the whole complex consistently:
// B1' = F·B1, B2' = B2·F, lower' = F·lower·F, upper' = F·upper·F, and every
// flow picks up the same per-edge sign. Models that are equivariant to the
// edge-orientation choice must produce identical logits on the flipped
// complex with flipped flows.

package simplex

import "fmt"

// OrientationFlip returns a new Complex whose edge orientations are reversed
// wherever signs[e] == -1. signs must have one ±1 entry per edge.
//
// The flipped complex is rebuilt from the conjugated boundary matrices, so
// the lower/upper operators come out conjugated automatically and every
// structural invariant is re-validated.
//
// Errors: ErrBadFlip.
// Complexity: O(E·N + T·E + E²·N).
func (c *Complex) OrientationFlip(signs []float64) (*Complex, error) {
	if len(signs) != len(c.edges) {
		return nil, fmt.Errorf("OrientationFlip: %d signs for %d edges: %w", len(signs), len(c.edges), ErrBadFlip)
	}
	for e, s := range signs {
		if s != 1 && s != -1 {
			return nil, fmt.Errorf("OrientationFlip: signs[%d]=%g: %w", e, s, ErrBadFlip)
		}
	}

	// B1' = F·B1: scale edge rows.
	b1f := c.B1()
	for e := 0; e < b1f.Rows(); e++ {
		if signs[e] == 1 {
			continue
		}
		row, err := b1f.Row(e)
		if err != nil {
			return nil, fmt.Errorf("OrientationFlip: %w", err)
		}
		for j := range row {
			row[j] = -row[j]
		}
		if err = b1f.SetRow(e, row); err != nil {
			return nil, fmt.Errorf("OrientationFlip: %w", err)
		}
	}

	// B2' = B2·F: scale edge columns.
	b2f := c.B2()
	if b2f != nil {
		for t := 0; t < b2f.Rows(); t++ {
			for e := 0; e < b2f.Cols(); e++ {
				if signs[e] == 1 {
					continue
				}
				v, err := b2f.At(t, e)
				if err != nil {
					return nil, fmt.Errorf("OrientationFlip: %w", err)
				}
				if v != 0 {
					if err = b2f.Set(t, e, -v); err != nil {
						return nil, fmt.Errorf("OrientationFlip: %w", err)
					}
				}
			}
		}
	}

	flipped, err := FromBoundaries(b1f, b2f)
	if err != nil {
		return nil, fmt.Errorf("OrientationFlip: rebuild: %w", err)
	}

	return flipped, nil
}

// FlipFlow returns flow·F: the elementwise product of a flow vector with the
// flip signs. Both slices must have one entry per edge.
// Errors: ErrBadFlip.
// Complexity: O(E).
func FlipFlow(signs, flow []float64) ([]float64, error) {
	if len(signs) != len(flow) {
		return nil, fmt.Errorf("FlipFlow: %d signs for %d flow entries: %w", len(signs), len(flow), ErrBadFlip)
	}
	out := make([]float64, len(flow))
	for e := range flow {
		out[e] = signs[e] * flow[e]
	}

	return out, nil
}
