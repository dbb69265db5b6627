// SPDX-License-Identifier: MIT
// Package model implements the shared forward pass of every trajectory model
// family.
//
// One routine serves all families: the family descriptor supplies the
// operator list, the per-layer weight count and the nonlinearity, so layer
// propagation never branches on a family name. A layer computes
//
//	X ← act(X·W₀ + Σ_k S_k·X·W_k)
//
// over the edge signal (or, for the decomposition family, over three coupled
// node/edge/triangle signals), and the terminal step projects to one channel
// and restricts the result to the padded candidate slots of the current node
// before a numerically stable log-softmax.
//
// Forward is a pure function over its inputs. It holds no state, so callers
// may evaluate batches concurrently as long as each goroutine passes its own
// flow slice.
package model
