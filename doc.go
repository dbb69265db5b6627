// Package hodgeflow predicts the next node(s) of a trajectory walking a
// simplicial complex, using neural forward-pass families built on Hodge
// shift operators, plus an order-k Markov baseline.
//
// 🚀 What is hodgeflow?
//
//	A pure-Go trajectory-prediction toolkit that brings together:
//		• Simplicial complexes: signed boundary matrices B1/B2, Hodge operators
//		• Shift-operator families: Laplacian powers, combined sums, and the
//		  seven-operator Bunch decomposition
//		• One generic forward pass: families as data, stable log-softmax
//		• Evaluation protocols: 1-hop, top-k, compound 2-hop, reversed
//		  direction, regional transfer
//		• Deterministic synthetic corpora: triangulated grids with holes,
//		  seeded shortest-path trajectories
//		• Training: Adam over central-difference gradients, with a SQLite
//		  experiment store and a cobra CLI
//
// Everything is organized under focused subpackages:
//
//	matrix/        — dense row-major float64 kernels (deterministic, no BLAS)
//	simplex/       — complexes, neighborhoods, the conditional-incidence selector
//	shift/         — family descriptors and operator assembly
//	model/         — the shared layered forward pass
//	eval/          — accuracy harness and regional masks
//	markov/        — the order-k Markov baseline
//	dataset/       — corpus generation, flow encoding, serialization
//	train/         — weight init, loss, gradients, Adam, checkpoints
//	config/        — YAML run configuration, validated once
//	store/         — SQLite experiment records
//	cmd/hodgeflow/ — the generate / train / eval CLI
//
// Determinism is a contract throughout: fixed loop orders, seeded RNG only,
// and identical inputs always reproduce identical operators, corpora and
// training runs.
package hodgeflow
