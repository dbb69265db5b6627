// SPDX-License-Identifier: MIT
package train

import (
	"fmt"
	"math"

	"github.com/katalvlaran/hodgeflow/matrix"
)

// Adam defaults; single source of truth for config resolution.
const (
	DefaultLearningRate = 1e-3
	DefaultBeta1        = 0.9
	DefaultBeta2        = 0.999
	DefaultEpsilon      = 1e-8
)

// Adam holds first/second moment estimates per weight entry. State shapes are
// fixed by the first Step call; feeding differently shaped gradients later is
// a programmer error reported as ErrShapeMismatch.
type Adam struct {
	lr, beta1, beta2, eps float64
	decay                 float64
	step                  int
	m, v                  []*matrix.Dense
}

// AdamOption adjusts one optimizer knob.
type AdamOption func(*Adam)

// WithLearningRate overrides the step size.
func WithLearningRate(lr float64) AdamOption { return func(a *Adam) { a.lr = lr } }

// WithWeightDecay adds decoupled L2 decay applied before the moment update.
func WithWeightDecay(d float64) AdamOption { return func(a *Adam) { a.decay = d } }

// WithBetas overrides the moment decay rates.
func WithBetas(b1, b2 float64) AdamOption {
	return func(a *Adam) { a.beta1, a.beta2 = b1, b2 }
}

// NewAdam builds an optimizer with bias-corrected moment updates.
// Errors: ErrBadStep on a non-positive resolved learning rate.
func NewAdam(opts ...AdamOption) (*Adam, error) {
	a := &Adam{lr: DefaultLearningRate, beta1: DefaultBeta1, beta2: DefaultBeta2, eps: DefaultEpsilon}
	for _, opt := range opts {
		opt(a)
	}
	if a.lr <= 0 {
		return nil, fmt.Errorf("NewAdam(lr=%g): %w", a.lr, ErrBadStep)
	}

	return a, nil
}

// Step applies one in-place Adam update to weights from grads.
// Errors: ErrShapeMismatch.
// Complexity: O(total parameters).
func (a *Adam) Step(weights, grads []*matrix.Dense) error {
	if len(weights) != len(grads) {
		return fmt.Errorf("Adam.Step: %d weights, %d grads: %w", len(weights), len(grads), ErrShapeMismatch)
	}
	if a.m == nil {
		a.m = make([]*matrix.Dense, len(weights))
		a.v = make([]*matrix.Dense, len(weights))
		for i, w := range weights {
			var err error
			if a.m[i], err = matrix.NewDense(w.Rows(), w.Cols()); err != nil {
				return fmt.Errorf("Adam.Step: %w", err)
			}
			if a.v[i], err = matrix.NewDense(w.Rows(), w.Cols()); err != nil {
				return fmt.Errorf("Adam.Step: %w", err)
			}
		}
	}

	a.step++
	corr1 := 1 - math.Pow(a.beta1, float64(a.step))
	corr2 := 1 - math.Pow(a.beta2, float64(a.step))

	for wi, w := range weights {
		g := grads[wi]
		if g.Rows() != w.Rows() || g.Cols() != w.Cols() {
			return fmt.Errorf("Adam.Step: weight %d: %w", wi, ErrShapeMismatch)
		}
		for i := 0; i < w.Rows(); i++ {
			for j := 0; j < w.Cols(); j++ {
				wv, err := w.At(i, j)
				if err != nil {
					return fmt.Errorf("Adam.Step: %w", err)
				}
				gv, err := g.At(i, j)
				if err != nil {
					return fmt.Errorf("Adam.Step: %w", err)
				}
				if a.decay != 0 {
					gv += a.decay * wv
				}

				mv, err := a.m[wi].At(i, j)
				if err != nil {
					return fmt.Errorf("Adam.Step: %w", err)
				}
				vv, err := a.v[wi].At(i, j)
				if err != nil {
					return fmt.Errorf("Adam.Step: %w", err)
				}
				mv = a.beta1*mv + (1-a.beta1)*gv
				vv = a.beta2*vv + (1-a.beta2)*gv*gv
				if err = a.m[wi].Set(i, j, mv); err != nil {
					return fmt.Errorf("Adam.Step: %w", err)
				}
				if err = a.v[wi].Set(i, j, vv); err != nil {
					return fmt.Errorf("Adam.Step: %w", err)
				}

				update := a.lr * (mv / corr1) / (math.Sqrt(vv/corr2) + a.eps)
				if err = w.Set(i, j, wv-update); err != nil {
					return fmt.Errorf("Adam.Step: %w", err)
				}
			}
		}
	}

	return nil
}
