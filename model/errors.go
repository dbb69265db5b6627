// SPDX-License-Identifier: MIT
package model

import "errors"

var (
	// ErrNilOperatorSet reports a nil shift-operator set.
	ErrNilOperatorSet = errors.New("model: nil operator set")

	// ErrNilSelector reports a nil conditional-incidence selector.
	ErrNilSelector = errors.New("model: nil selector")

	// ErrWeightCount reports a weight list whose length does not decompose
	// into whole layers plus the terminal projection. This is a configuration
	// fault and is detected before any matrix work.
	ErrWeightCount = errors.New("model: weight count does not fit family layout")

	// ErrWeightShape reports a terminal weight that does not project to a
	// single output channel.
	ErrWeightShape = errors.New("model: terminal weight must have one column")

	// ErrFlowLength reports a flow vector whose length differs from the edge
	// count of the operator set.
	ErrFlowLength = errors.New("model: flow length does not match edge count")
)
