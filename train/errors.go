// SPDX-License-Identifier: MIT
package train

import "errors"

var (
	// ErrBadSchedule reports a non-positive layer count or hidden width.
	ErrBadSchedule = errors.New("train: layers and hidden width must be positive")

	// ErrTargetNotCandidate reports a training target that is not a neighbor
	// of the example's position; the label cannot be scored.
	ErrTargetNotCandidate = errors.New("train: target is not a candidate next hop")

	// ErrShapeMismatch reports optimizer state and weights drifting apart.
	ErrShapeMismatch = errors.New("train: gradient shape does not match weights")

	// ErrBadStep reports a non-positive learning rate or step size.
	ErrBadStep = errors.New("train: step size must be positive")

	// ErrNoTrainExamples reports an empty training subset.
	ErrNoTrainExamples = errors.New("train: no active training examples")
)
