// SPDX-License-Identifier: MIT
package dataset

import "errors"

var (
	// ErrBadGrid reports a grid too small to host trajectories.
	ErrBadGrid = errors.New("dataset: grid must be at least 3x3")

	// ErrBadTrajectories reports a non-positive trajectory count.
	ErrBadTrajectories = errors.New("dataset: trajectory count must be positive")

	// ErrNoRoute reports an unreachable waypoint or destination, typically a
	// hole layout that disconnects the grid.
	ErrNoRoute = errors.New("dataset: no route between sampled endpoints")

	// ErrShortPath reports a trajectory too short to split into
	// prefix/target/2-hop target.
	ErrShortPath = errors.New("dataset: trajectory shorter than three nodes")

	// ErrBadFraction reports a train fraction outside (0, 1).
	ErrBadFraction = errors.New("dataset: train fraction must lie in (0, 1)")
)
