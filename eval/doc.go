// SPDX-License-Identifier: MIT
// Package eval measures trained forward-pass accuracy over example batches.
//
// The harness treats the forward pass as an opaque pure scorer: every metric
// is a fold over per-example log-probability vectors. Supported protocols:
// 1-hop top-1 and top-k accuracy over the valid (non-padded) candidate slots,
// compound 2-hop accuracy with a full fan-out over candidate intermediates,
// reversed-direction accuracy over a negated-flow example set, and regional
// transfer splits driven by an index rule instead of random sampling.
package eval
