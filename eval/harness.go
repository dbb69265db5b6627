// SPDX-License-Identifier: MIT
package eval

import (
	"fmt"
	"math"

	"github.com/katalvlaran/hodgeflow/matrix"
	"github.com/katalvlaran/hodgeflow/model"
	"github.com/katalvlaran/hodgeflow/shift"
	"github.com/katalvlaran/hodgeflow/simplex"
)

// NoTarget marks an absent 2-hop label.
const NoTarget = -1

// Example is one evaluation triple: the walker's position, the signed flow
// observed so far, and the labels. Targets are node ids, not slot indices;
// the harness resolves slots through the padded neighborhood table.
type Example struct {
	LastNode int
	Flow     []float64
	Target   int
	Target2  int // NoTarget when the trajectory ends one hop ahead
}

// Harness binds a complex, an operator set and a selector for repeated
// metric evaluation. It is read-only after New and safe for concurrent use.
type Harness struct {
	c   *simplex.Complex
	set *shift.Set
	sel *simplex.CondIncidence
}

// New builds a harness. The selector may be nil, in which case the complex's
// default-width selector is derived.
func New(c *simplex.Complex, set *shift.Set, sel *simplex.CondIncidence) (*Harness, error) {
	if sel == nil {
		var err error
		if sel, err = simplex.NewCondIncidence(c, nil); err != nil {
			return nil, fmt.Errorf("eval.New: %w", err)
		}
	}

	return &Harness{c: c, set: set, sel: sel}, nil
}

// Accuracy computes 1-hop top-1 accuracy over the masked subset: the
// fraction of active examples whose best valid candidate slot resolves to the
// true next node. A nil mask means the whole batch.
// Errors: ErrMaskLength, ErrNoExamples, plus anything model.Forward reports.
// Complexity: O(active · Forward).
func (h *Harness) Accuracy(weights []*matrix.Dense, batch []Example, mask []bool) (float64, error) {
	return h.TopK(weights, batch, mask, 1)
}

// TopK computes 1-hop top-k accuracy: the true next node must rank among the
// k best valid candidate slots.
// Errors: ErrBadTopK, ErrMaskLength, ErrNoExamples.
func (h *Harness) TopK(weights []*matrix.Dense, batch []Example, mask []bool, k int) (float64, error) {
	if k < 1 {
		return 0, fmt.Errorf("TopK(%d): %w", k, ErrBadTopK)
	}
	if mask != nil && len(mask) != len(batch) {
		return 0, fmt.Errorf("TopK: %w", ErrMaskLength)
	}

	active, hits := 0, 0
	for i, ex := range batch {
		if mask != nil && !mask[i] {
			continue
		}
		active++

		logProbs, err := model.Forward(h.set, h.sel, weights, ex.LastNode, ex.Flow)
		if err != nil {
			return 0, fmt.Errorf("TopK: example %d: %w", i, err)
		}
		ok, err := h.targetInTopK(ex.LastNode, logProbs, ex.Target, k)
		if err != nil {
			return 0, fmt.Errorf("TopK: example %d: %w", i, err)
		}
		if ok {
			hits++
		}
	}
	if active == 0 {
		return 0, fmt.Errorf("TopK: %w", ErrNoExamples)
	}

	return float64(hits) / float64(active), nil
}

// TwoHop computes compound 2-hop accuracy. For each active example the first
// pass scores every valid candidate intermediate; the flow is advanced along
// each candidate edge and the forward pass re-run from that candidate with a
// freshly resolved slot set. The prediction is the final node of the best
// log-probability sum over all (intermediate, final) pairs.
// Examples with Target2 == NoTarget are skipped.
// Errors: ErrMaskLength, ErrNoExamples.
// Complexity: O(active · maxDegree · Forward).
func (h *Harness) TwoHop(weights []*matrix.Dense, batch []Example, mask []bool) (float64, error) {
	if mask != nil && len(mask) != len(batch) {
		return 0, fmt.Errorf("TwoHop: %w", ErrMaskLength)
	}
	table := h.sel.Table()

	active, hits := 0, 0
	for i, ex := range batch {
		if (mask != nil && !mask[i]) || ex.Target2 == NoTarget {
			continue
		}
		active++

		first, err := model.Forward(h.set, h.sel, weights, ex.LastNode, ex.Flow)
		if err != nil {
			return 0, fmt.Errorf("TwoHop: example %d: %w", i, err)
		}
		nbrs, err := table.Row(ex.LastNode)
		if err != nil {
			return 0, fmt.Errorf("TwoHop: example %d: %w", i, err)
		}
		deg, err := table.Degree(ex.LastNode)
		if err != nil {
			return 0, fmt.Errorf("TwoHop: example %d: %w", i, err)
		}

		bestScore := math.Inf(-1)
		bestFinal := NoTarget
		for slot := 0; slot < deg; slot++ {
			mid := nbrs[slot]
			advanced, aerr := h.advanceFlow(ex.Flow, ex.LastNode, mid)
			if aerr != nil {
				return 0, fmt.Errorf("TwoHop: example %d: %w", i, aerr)
			}
			second, ferr := model.Forward(h.set, h.sel, weights, mid, advanced)
			if ferr != nil {
				return 0, fmt.Errorf("TwoHop: example %d: %w", i, ferr)
			}
			midNbrs, nerr := table.Row(mid)
			if nerr != nil {
				return 0, fmt.Errorf("TwoHop: example %d: %w", i, nerr)
			}
			midDeg, derr := table.Degree(mid)
			if derr != nil {
				return 0, fmt.Errorf("TwoHop: example %d: %w", i, derr)
			}
			for s2 := 0; s2 < midDeg; s2++ {
				score := first[slot] + second[s2]
				if score > bestScore {
					bestScore = score
					bestFinal = midNbrs[s2]
				}
			}
		}
		if bestFinal == ex.Target2 {
			hits++
		}
	}
	if active == 0 {
		return 0, fmt.Errorf("TwoHop: %w", ErrNoExamples)
	}

	return float64(hits) / float64(active), nil
}

// NegateFlows returns a copy of the batch with every flow entry negated, the
// encoding of walking the recorded trajectories backwards. Positions and
// targets must come from a matching pre-reversed label set; this helper only
// mirrors the flow tensor.
// Complexity: O(len(batch) · E).
func NegateFlows(batch []Example) []Example {
	out := make([]Example, len(batch))
	for i, ex := range batch {
		flow := make([]float64, len(ex.Flow))
		for e, v := range ex.Flow {
			flow[e] = -v
		}
		out[i] = Example{LastNode: ex.LastNode, Flow: flow, Target: ex.Target, Target2: ex.Target2}
	}

	return out
}

// advanceFlow appends one signed hop from u to v onto a copy of the flow.
func (h *Harness) advanceFlow(flow []float64, u, v int) ([]float64, error) {
	edge, sign, err := h.c.EdgeBetween(u, v)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(flow))
	copy(out, flow)
	out[edge] += sign

	return out, nil
}

// targetInTopK ranks the valid slots of lastNode by log-probability and
// checks whether the target node sits within the best k.
func (h *Harness) targetInTopK(lastNode int, logProbs []float64, target, k int) (bool, error) {
	table := h.sel.Table()
	nbrs, err := table.Row(lastNode)
	if err != nil {
		return false, err
	}
	deg, err := table.Degree(lastNode)
	if err != nil {
		return false, err
	}

	targetSlot := -1
	for slot := 0; slot < deg; slot++ {
		if nbrs[slot] == target {
			targetSlot = slot
			break
		}
	}
	if targetSlot == -1 {
		return false, nil // target is not a legal next hop
	}

	// Rank of the target among valid slots; ties resolve in slot order so the
	// result is deterministic.
	rank := 0
	for slot := 0; slot < deg; slot++ {
		if slot == targetSlot {
			continue
		}
		if logProbs[slot] > logProbs[targetSlot] ||
			(logProbs[slot] == logProbs[targetSlot] && slot < targetSlot) {
			rank++
		}
	}

	return rank < k, nil
}
