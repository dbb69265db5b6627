// SPDX-License-Identifier: MIT
package model

import (
	"fmt"

	"github.com/katalvlaran/hodgeflow/matrix"
	"github.com/katalvlaran/hodgeflow/shift"
	"github.com/katalvlaran/hodgeflow/simplex"
)

// Forward runs one full forward pass and returns log-probabilities over the
// padded candidate slots of lastNode.
//
// Implementation:
//   - Stage 1 (Validate): non-nil set and selector; the weight list must hold
//     one or more whole layers plus a single-column terminal projection; the
//     flow length must equal the edge count. All checks run before any matrix
//     arithmetic.
//   - Stage 2 (Propagate): the edge signal starts as the flow column; each
//     layer computes act(X·W₀ + Σ_k S_k·X·W_{k+1}) with the descriptor's
//     nonlinearity. Descriptors with more than one track instead propagate
//     three coupled signals (see forwardDecomposition).
//   - Stage 3 (Readout): project through the terminal weight, restrict the
//     edge scores to lastNode's candidate slots via the selector, and return
//     the stable log-softmax over those slots. Padded slots map to the zero
//     bias row and yield finite, ignorable values.
//
// Forward never mutates its arguments.
// Errors: ErrNilOperatorSet, ErrNilSelector, ErrWeightCount, ErrWeightShape,
// ErrFlowLength, matrix.ErrDimensionMismatch (wrapped) on mismatched weight
// shapes, simplex.ErrUnknownNode on an out-of-range lastNode.
// Complexity: O(layers · E² · hidden) for single-track families.
func Forward(set *shift.Set, sel *simplex.CondIncidence, weights []*matrix.Dense, lastNode int, flow []float64) ([]float64, error) {
	if set == nil {
		return nil, fmt.Errorf("Forward: %w", ErrNilOperatorSet)
	}
	if sel == nil {
		return nil, fmt.Errorf("Forward: %w", ErrNilSelector)
	}
	d := set.Descriptor
	if len(weights) <= d.WeightsPerLayer || (len(weights)-1)%d.WeightsPerLayer != 0 {
		return nil, fmt.Errorf("Forward(%s): %d weights: %w", d.ID, len(weights), ErrWeightCount)
	}
	terminal := weights[len(weights)-1]
	if terminal == nil || terminal.Cols() != 1 {
		return nil, fmt.Errorf("Forward(%s): %w", d.ID, ErrWeightShape)
	}

	if d.Tracks > 1 {
		return forwardDecomposition(set, sel, weights, lastNode, flow)
	}

	edges := set.Operators[0].Rows()
	if len(flow) != edges {
		return nil, fmt.Errorf("Forward(%s): flow length %d, edges %d: %w",
			d.ID, len(flow), edges, ErrFlowLength)
	}

	x, err := columnOf(flow)
	if err != nil {
		return nil, fmt.Errorf("Forward: %w", err)
	}

	layers := (len(weights) - 1) / d.WeightsPerLayer
	for l := 0; l < layers; l++ {
		base := l * d.WeightsPerLayer
		acc, lerr := matrix.Mul(x, weights[base])
		if lerr != nil {
			return nil, fmt.Errorf("Forward: layer %d identity term: %w", l, lerr)
		}
		for k, op := range set.Operators {
			shifted, merr := matrix.Mul(op, x)
			if merr != nil {
				return nil, fmt.Errorf("Forward: layer %d operator %d: %w", l, k, merr)
			}
			term, merr := matrix.Mul(shifted, weights[base+1+k])
			if merr != nil {
				return nil, fmt.Errorf("Forward: layer %d operator %d: %w", l, k, merr)
			}
			if acc, merr = matrix.Add(acc, term); merr != nil {
				return nil, fmt.Errorf("Forward: layer %d operator %d: %w", l, k, merr)
			}
		}
		x = acc.(*matrix.Dense)
		if err = activate(d.Activation, x); err != nil {
			return nil, fmt.Errorf("Forward: layer %d: %w", l, err)
		}
	}

	projected, err := matrix.Mul(x, terminal)
	if err != nil {
		return nil, fmt.Errorf("Forward: terminal projection: %w", err)
	}

	return readout(sel, lastNode, projected.(*matrix.Dense))
}

// forwardDecomposition propagates the three coupled signals of the
// decomposition family. The node and triangle signals start at zero; only the
// edge signal carries the observed flow. Per layer, with the operator order
// [S00, S10, S01, S11, S21, S12, S22] and weights paired positionally:
//
//	x0 ← relu(S00·x0·W₀ + S10·x1·W₁)
//	x1 ← relu(S01·x0·W₂ + S11·x1·W₃ + S21·x2·W₄)
//	x2 ← relu(S12·x1·W₅ + S22·x2·W₆)
//
// The readout projects the node signal through the terminal weight and
// indexes it by lastNode's padded neighborhood (padded slots score zero).
func forwardDecomposition(set *shift.Set, sel *simplex.CondIncidence, weights []*matrix.Dense, lastNode int, flow []float64) ([]float64, error) {
	d := set.Descriptor
	nodes := set.Operators[0].Rows()
	edges := set.Operators[3].Rows()
	tris := set.Operators[6].Rows()
	if len(flow) != edges {
		return nil, fmt.Errorf("Forward(%s): flow length %d, edges %d: %w",
			d.ID, len(flow), edges, ErrFlowLength)
	}

	x1, err := columnOf(flow)
	if err != nil {
		return nil, fmt.Errorf("Forward: %w", err)
	}
	x0, err := matrix.NewDense(nodes, 1)
	if err != nil {
		return nil, fmt.Errorf("Forward: %w", err)
	}
	x2, err := matrix.NewDense(tris, 1)
	if err != nil {
		return nil, fmt.Errorf("Forward: %w", err)
	}

	layers := (len(weights) - 1) / d.WeightsPerLayer
	for l := 0; l < layers; l++ {
		w := weights[l*d.WeightsPerLayer:]

		n0, lerr := sumTerms(l,
			term{set.Operators[0], x0, w[0]},
			term{set.Operators[1], x1, w[1]})
		if lerr != nil {
			return nil, lerr
		}
		n1, lerr := sumTerms(l,
			term{set.Operators[2], x0, w[2]},
			term{set.Operators[3], x1, w[3]},
			term{set.Operators[4], x2, w[4]})
		if lerr != nil {
			return nil, lerr
		}
		n2, lerr := sumTerms(l,
			term{set.Operators[5], x1, w[5]},
			term{set.Operators[6], x2, w[6]})
		if lerr != nil {
			return nil, lerr
		}

		x0, x1, x2 = n0, n1, n2
		for _, x := range []*matrix.Dense{x0, x1, x2} {
			if err = activate(d.Activation, x); err != nil {
				return nil, fmt.Errorf("Forward: layer %d: %w", l, err)
			}
		}
	}

	projected, err := matrix.Mul(x0, weights[len(weights)-1])
	if err != nil {
		return nil, fmt.Errorf("Forward: terminal projection: %w", err)
	}
	proj := projected.(*matrix.Dense)

	// Index the node scores by the padded neighborhood instead of the edge
	// selector; padded slots keep the zero bias score.
	padded, err := sel.Table().Row(lastNode)
	if err != nil {
		return nil, fmt.Errorf("Forward: %w", err)
	}
	scores := make([]float64, len(padded))
	for slot, nbr := range padded {
		if nbr == simplex.PadNode {
			continue
		}
		if scores[slot], err = proj.At(nbr, 0); err != nil {
			return nil, fmt.Errorf("Forward: %w", err)
		}
	}

	return logSoftmax(scores), nil
}

// term is one S·X·W product of a coupled layer update.
type term struct {
	op *matrix.Dense
	x  *matrix.Dense
	w  *matrix.Dense
}

func sumTerms(layer int, terms ...term) (*matrix.Dense, error) {
	var acc matrix.Matrix
	for k, t := range terms {
		shifted, err := matrix.Mul(t.op, t.x)
		if err != nil {
			return nil, fmt.Errorf("Forward: layer %d term %d: %w", layer, k, err)
		}
		prod, err := matrix.Mul(shifted, t.w)
		if err != nil {
			return nil, fmt.Errorf("Forward: layer %d term %d: %w", layer, k, err)
		}
		if acc == nil {
			acc = prod
			continue
		}
		if acc, err = matrix.Add(acc, prod); err != nil {
			return nil, fmt.Errorf("Forward: layer %d term %d: %w", layer, k, err)
		}
	}

	return acc.(*matrix.Dense), nil
}

// readout restricts edge scores to lastNode's candidate slots and normalizes.
func readout(sel *simplex.CondIncidence, lastNode int, projected *matrix.Dense) ([]float64, error) {
	rows, err := sel.Rows(lastNode)
	if err != nil {
		return nil, fmt.Errorf("Forward: %w", err)
	}
	z := make([]float64, projected.Rows())
	for i := range z {
		if z[i], err = projected.At(i, 0); err != nil {
			return nil, fmt.Errorf("Forward: %w", err)
		}
	}
	scores, err := matrix.MatVec(rows, z)
	if err != nil {
		return nil, fmt.Errorf("Forward: %w", err)
	}

	return logSoftmax(scores), nil
}

// columnOf copies a vector into a fresh n×1 column.
func columnOf(v []float64) (*matrix.Dense, error) {
	col, err := matrix.NewDense(len(v), 1)
	if err != nil {
		return nil, err
	}
	for i, x := range v {
		if err = col.Set(i, 0, x); err != nil {
			return nil, err
		}
	}

	return col, nil
}
