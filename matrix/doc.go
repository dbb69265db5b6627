// SPDX-License-Identifier: MIT

// Package matrix provides the dense linear-algebra substrate for the
// simplicial pipeline: a row-major float64 Dense type plus deterministic
// kernels (Add, Sub, Mul, Scale, Transpose, MatVec, Pow).
//
// Design:
//   - All kernels validate fail-fast through centralized validators and
//     return package-level sentinel errors matchable via errors.Is.
//   - Every kernel has a *Dense fast path (flat-slice loops) and a generic
//     At/Set fallback for foreign Matrix implementations.
//   - Loop orders are fixed, so results are bit-for-bit reproducible.
//   - Matrix powers are computed by repeated multiplication only; spectral
//     shortcuts are intentionally absent because the Hodge operators fed to
//     Pow can be near-defective.
//
// Nothing in this package mutates its inputs; every kernel allocates a fresh
// result. That property is what makes the forward passes built on top of it
// safe to evaluate in parallel.
package matrix
