// SPDX-License-Identifier: MIT
package model

import (
	"fmt"
	"math"

	"github.com/katalvlaran/hodgeflow/matrix"
	"github.com/katalvlaran/hodgeflow/shift"
)

// activate applies the family nonlinearity element-wise, in place.
// Complexity: O(r·c).
func activate(a shift.Act, m *matrix.Dense) error {
	var f func(float64) float64
	switch a {
	case shift.ActTanh:
		f = math.Tanh
	case shift.ActReLU:
		f = relu
	default:
		return fmt.Errorf("activate: unknown activation %d", a)
	}

	var v float64
	var err error
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			if v, err = m.At(i, j); err != nil {
				return fmt.Errorf("activate: %w", err)
			}
			if err = m.Set(i, j, f(v)); err != nil {
				return fmt.Errorf("activate: %w", err)
			}
		}
	}

	return nil
}

func relu(v float64) float64 {
	if v < 0 {
		return 0
	}

	return v
}

// logSoftmax turns raw slot scores into log-probabilities using the
// log-sum-exp shift. Never computes softmax first; the subtraction keeps the
// result finite for any finite input.
// Complexity: O(n).
func logSoftmax(scores []float64) []float64 {
	maxScore := math.Inf(-1)
	for _, v := range scores {
		if v > maxScore {
			maxScore = v
		}
	}

	sum := 0.0
	for _, v := range scores {
		sum += math.Exp(v - maxScore)
	}
	logSum := maxScore + math.Log(sum)

	out := make([]float64, len(scores))
	for i, v := range scores {
		out[i] = v - logSum
	}

	return out
}
