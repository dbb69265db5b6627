// SPDX-License-Identifier: MIT
package train

import (
	"fmt"

	"github.com/katalvlaran/hodgeflow/eval"
	"github.com/katalvlaran/hodgeflow/matrix"
	"github.com/katalvlaran/hodgeflow/model"
	"github.com/katalvlaran/hodgeflow/shift"
	"github.com/katalvlaran/hodgeflow/simplex"
)

// Loss computes the mean negative log-likelihood of the true next hop over
// the masked subset. Targets are resolved to candidate slots through the
// selector's neighborhood table; a target that is not a neighbor of its
// example's position is a data fault, not a model miss.
// Errors: ErrNoTrainExamples, ErrTargetNotCandidate, eval.ErrMaskLength,
// plus anything model.Forward reports.
// Complexity: O(active · Forward).
func Loss(set *shift.Set, sel *simplex.CondIncidence, weights []*matrix.Dense, batch []eval.Example, mask []bool) (float64, error) {
	if mask != nil && len(mask) != len(batch) {
		return 0, fmt.Errorf("Loss: %w", eval.ErrMaskLength)
	}
	table := sel.Table()

	active := 0
	total := 0.0
	for i, ex := range batch {
		if mask != nil && !mask[i] {
			continue
		}
		active++

		logProbs, err := model.Forward(set, sel, weights, ex.LastNode, ex.Flow)
		if err != nil {
			return 0, fmt.Errorf("Loss: example %d: %w", i, err)
		}
		slot, err := targetSlot(table, ex.LastNode, ex.Target)
		if err != nil {
			return 0, fmt.Errorf("Loss: example %d: %w", i, err)
		}
		total -= logProbs[slot]
	}
	if active == 0 {
		return 0, fmt.Errorf("Loss: %w", ErrNoTrainExamples)
	}

	return total / float64(active), nil
}

// targetSlot resolves a target node id to its padded-slot index at position.
func targetSlot(table *simplex.NeighborhoodTable, position, target int) (int, error) {
	nbrs, err := table.Row(position)
	if err != nil {
		return 0, err
	}
	deg, err := table.Degree(position)
	if err != nil {
		return 0, err
	}
	for slot := 0; slot < deg; slot++ {
		if nbrs[slot] == target {
			return slot, nil
		}
	}

	return 0, fmt.Errorf("node %d from position %d: %w", target, position, ErrTargetNotCandidate)
}
