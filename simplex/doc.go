// SPDX-License-Identifier: MIT

// Package simplex models the simplicial complex a trajectory moves over:
// an undirected graph plus a set of filled triangles, represented by two
// signed boundary matrices.
//
// Conventions (fixed across the whole module):
//   - Nodes are 0-based consecutive integers.
//   - Edges are oriented low→high and sorted lexicographically by (u, v);
//     the edge row of B1 carries -1 at u and +1 at v.
//   - B1 has shape edges×nodes with exactly two nonzero entries per row.
//   - Triangles are sorted triples (a < b < c); the triangle row of B2
//     carries +1 on (a,b), +1 on (b,c) and -1 on (a,c).
//   - B2 has shape triangles×edges with exactly three nonzero entries per row.
//
// A Complex is immutable once constructed. Construction validates the
// structural invariants, including the boundary-of-boundary identity
// B2·B1 = 0, and precomputes the two Hodge shift operators
//
//	lower = B1·B1ᵗ   (edges sharing a node)
//	upper = B2ᵗ·B2   (edges sharing a triangle)
//
// both square on the edge space. OrientationFlip conjugates every operator
// and the boundary matrices consistently with a diagonal ±1 matrix, which is
// how edge-orientation equivariance of the models is exercised.
package simplex
