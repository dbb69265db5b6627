// SPDX-License-Identifier: MIT
package train

import (
	"fmt"

	"github.com/katalvlaran/hodgeflow/matrix"
)

// DefaultFDStep is the central-difference perturbation size.
const DefaultFDStep = 1e-5

// LossFn scores a candidate weight list. Implementations must be pure;
// the gradient estimator calls it twice per parameter.
type LossFn func(weights []*matrix.Dense) (float64, error)

// Gradient estimates dLoss/dW by central differences: each entry is perturbed
// by ±h in turn and the loss difference divided by 2h. The weights are
// restored exactly after each probe, so the input list is unchanged on
// return.
// Errors: ErrBadStep, plus anything the loss function reports.
// Complexity: O(parameters · lossFn).
func Gradient(lossFn LossFn, weights []*matrix.Dense, h float64) ([]*matrix.Dense, error) {
	if h <= 0 {
		return nil, fmt.Errorf("Gradient(h=%g): %w", h, ErrBadStep)
	}

	grads := make([]*matrix.Dense, len(weights))
	for wi, w := range weights {
		g, err := matrix.NewDense(w.Rows(), w.Cols())
		if err != nil {
			return nil, fmt.Errorf("Gradient: weight %d: %w", wi, err)
		}
		for i := 0; i < w.Rows(); i++ {
			for j := 0; j < w.Cols(); j++ {
				orig, aerr := w.At(i, j)
				if aerr != nil {
					return nil, fmt.Errorf("Gradient: weight %d: %w", wi, aerr)
				}

				if aerr = w.Set(i, j, orig+h); aerr != nil {
					return nil, fmt.Errorf("Gradient: weight %d: %w", wi, aerr)
				}
				up, lerr := lossFn(weights)
				if lerr != nil {
					return nil, fmt.Errorf("Gradient: weight %d: %w", wi, lerr)
				}

				if aerr = w.Set(i, j, orig-h); aerr != nil {
					return nil, fmt.Errorf("Gradient: weight %d: %w", wi, aerr)
				}
				down, lerr := lossFn(weights)
				if lerr != nil {
					return nil, fmt.Errorf("Gradient: weight %d: %w", wi, lerr)
				}

				if aerr = w.Set(i, j, orig); aerr != nil {
					return nil, fmt.Errorf("Gradient: weight %d: %w", wi, aerr)
				}
				if aerr = g.Set(i, j, (up-down)/(2*h)); aerr != nil {
					return nil, fmt.Errorf("Gradient: weight %d: %w", wi, aerr)
				}
			}
		}
		grads[wi] = g
	}

	return grads, nil
}
