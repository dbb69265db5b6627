// SPDX-License-Identifier: MIT
// Package train owns parameter optimization for the forward-pass families.
//
// The forward pass stays an opaque pure scorer: training composes it into a
// batch negative-log-likelihood, estimates gradients by central differences
// (exact enough for the small dense weight sets involved, and free of any
// autodiff machinery), and applies Adam updates. Every stochastic choice is
// seeded, so a run is reproducible from its config alone.
//
// Structured progress logging goes through zap; the numeric kernels below
// this package never log.
package train
