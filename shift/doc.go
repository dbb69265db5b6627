// SPDX-License-Identifier: MIT

// Package shift derives the algebraic shift operators each model family
// propagates over, from a complex's boundary matrices.
//
// The six families differ only in which operators they consume and in their
// activation; that difference is expressed as data (a Descriptor table), not
// as per-family code. Build assembles the ordered operator list for a family:
//
//	base         [lower, upper]
//	order-2      [L, L², U, U²]
//	order-3      [L, L², L³, U, U², U³]
//	order-4      [L, L², L³, L⁴, U, U², U³, U⁴]
//	combined-sum [S, S², S³]            with S = lower + upper
//	decomposition seven cross-dimensional operators (see bunch.go)
//
// Powers are produced by cumulative repeated multiplication in the stated
// order; no spectral shortcut is ever taken. Operators are derived fresh per
// Build call, so a changed complex or family can never serve stale matrices.
package shift
