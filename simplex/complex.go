// SPDX-License-Identifier: MIT
// Package simplex: the immutable Complex and its boundary/shift matrices.

package simplex

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/hodgeflow/matrix"
)

// Edge is an oriented 1-simplex. Under the canonical construction Tail < Head;
// after an orientation flip the pair may be reversed, which is exactly what
// the flip experiments probe.
type Edge struct {
	Tail int
	Head int
}

// Triangle is a sorted 2-simplex (A < B < C).
type Triangle struct {
	A, B, C int
}

// pairKey is the unordered (min,max) form used for edge lookup.
type pairKey struct {
	u, v int
}

func keyOf(a, b int) pairKey {
	if a < b {
		return pairKey{a, b}
	}

	return pairKey{b, a}
}

// Complex is an immutable simplicial complex: nodes, oriented edges, filled
// triangles, their boundary matrices and the two precomputed Hodge shift
// operators. All accessors return copies; nothing leaks mutable state.
type Complex struct {
	nodes     int
	edges     []Edge
	triangles []Triangle
	edgeIndex map[pairKey]int
	adjacency [][]int // per node: sorted neighbor node ids

	b1 *matrix.Dense // edges×nodes, two ±1 entries per row
	b2 *matrix.Dense // triangles×edges; nil when the complex has no triangles

	lower *matrix.Dense // B1·B1ᵗ, edges×edges
	upper *matrix.Dense // B2ᵗ·B2, edges×edges (zero matrix when b2 == nil)
}

// New builds a Complex from explicit simplex lists.
//
// Implementation:
//   - Stage 1 (Validate): endpoints in range, no loops, no duplicates,
//     triangles sorted over existing edges.
//   - Stage 2 (Prepare): canonical low→high edge orientation, lexicographic
//     edge order, adjacency lists.
//   - Stage 3 (Execute): assemble B1/B2 and precompute lower/upper operators.
//
// Errors: ErrBadSimplices on any malformed input.
// Complexity: O(E log E + T + E²·N) dominated by the operator products.
func New(nodes int, edges [][2]int, triangles [][3]int) (*Complex, error) {
	if nodes <= 0 {
		return nil, fmt.Errorf("New: %d nodes: %w", nodes, ErrBadSimplices)
	}
	if len(edges) == 0 {
		return nil, fmt.Errorf("New: no edges: %w", ErrBadSimplices)
	}

	// Canonicalize and sort edges low→high, lexicographically.
	canon := make([]Edge, 0, len(edges))
	seen := make(map[pairKey]struct{}, len(edges))
	for _, e := range edges {
		u, v := e[0], e[1]
		if u < 0 || u >= nodes || v < 0 || v >= nodes {
			return nil, fmt.Errorf("New: edge (%d,%d): %w", u, v, ErrBadSimplices)
		}
		if u == v {
			return nil, fmt.Errorf("New: loop at %d: %w", u, ErrBadSimplices)
		}
		k := keyOf(u, v)
		if _, dup := seen[k]; dup {
			return nil, fmt.Errorf("New: duplicate edge (%d,%d): %w", u, v, ErrBadSimplices)
		}
		seen[k] = struct{}{}
		canon = append(canon, Edge{Tail: k.u, Head: k.v})
	}
	sort.Slice(canon, func(i, j int) bool {
		if canon[i].Tail != canon[j].Tail {
			return canon[i].Tail < canon[j].Tail
		}

		return canon[i].Head < canon[j].Head
	})

	idx := make(map[pairKey]int, len(canon))
	for i, e := range canon {
		idx[pairKey{e.Tail, e.Head}] = i
	}

	// Validate triangles against the edge set.
	tris := make([]Triangle, 0, len(triangles))
	for _, tr := range triangles {
		a, b, c := tr[0], tr[1], tr[2]
		if !(a < b && b < c) {
			return nil, fmt.Errorf("New: triangle (%d,%d,%d) not sorted: %w", a, b, c, ErrBadSimplices)
		}
		for _, k := range []pairKey{{a, b}, {b, c}, {a, c}} {
			if _, ok := idx[k]; !ok {
				return nil, fmt.Errorf("New: triangle (%d,%d,%d) over missing edge (%d,%d): %w",
					a, b, c, k.u, k.v, ErrBadSimplices)
			}
		}
		tris = append(tris, Triangle{A: a, B: b, C: c})
	}

	// Assemble B1: row per edge, -1 at tail, +1 at head.
	b1, err := matrix.NewDense(len(canon), nodes)
	if err != nil {
		return nil, fmt.Errorf("New: B1: %w", err)
	}
	for i, e := range canon {
		if err = b1.Set(i, e.Tail, -1); err != nil {
			return nil, fmt.Errorf("New: B1: %w", err)
		}
		if err = b1.Set(i, e.Head, +1); err != nil {
			return nil, fmt.Errorf("New: B1: %w", err)
		}
	}

	// Assemble B2: row per triangle; ∂[a,b,c] = [b,c] - [a,c] + [a,b].
	var b2 *matrix.Dense
	if len(tris) > 0 {
		if b2, err = matrix.NewDense(len(tris), len(canon)); err != nil {
			return nil, fmt.Errorf("New: B2: %w", err)
		}
		for t, tr := range tris {
			entries := []struct {
				k    pairKey
				sign float64
			}{
				{pairKey{tr.A, tr.B}, +1},
				{pairKey{tr.B, tr.C}, +1},
				{pairKey{tr.A, tr.C}, -1},
			}
			for _, en := range entries {
				if err = b2.Set(t, idx[en.k], en.sign); err != nil {
					return nil, fmt.Errorf("New: B2: %w", err)
				}
			}
		}
	}

	return assemble(nodes, canon, tris, idx, b1, b2)
}

// FromBoundaries builds a Complex directly from boundary matrices supplied by
// a dataset collaborator. Edge endpoints and triangle membership are recovered
// from the matrix entries; every structural invariant from the package doc is
// re-validated, including B2·B1 = 0.
//
// b2 may be nil for a triangle-free complex.
// Errors: ErrNilBoundary, ErrBadEdgeRow, ErrBadTriangleRow, ErrBoundarySquare.
// Complexity: O(E·N + T·E + E²·N).
func FromBoundaries(b1, b2 *matrix.Dense) (*Complex, error) {
	if b1 == nil {
		return nil, fmt.Errorf("FromBoundaries: B1: %w", ErrNilBoundary)
	}
	nodes, edgeCount := b1.Cols(), b1.Rows()

	// Recover oriented edges; enforce exactly one -1 and one +1 per row.
	edges := make([]Edge, edgeCount)
	idx := make(map[pairKey]int, edgeCount)
	for i := 0; i < edgeCount; i++ {
		tail, head := -1, -1
		for j := 0; j < nodes; j++ {
			v, err := b1.At(i, j)
			if err != nil {
				return nil, fmt.Errorf("FromBoundaries: %w", err)
			}
			switch v {
			case 0:
			case -1:
				if tail >= 0 {
					return nil, fmt.Errorf("FromBoundaries: row %d: %w", i, ErrBadEdgeRow)
				}
				tail = j
			case +1:
				if head >= 0 {
					return nil, fmt.Errorf("FromBoundaries: row %d: %w", i, ErrBadEdgeRow)
				}
				head = j
			default:
				return nil, fmt.Errorf("FromBoundaries: row %d entry %g: %w", i, v, ErrBadEdgeRow)
			}
		}
		if tail < 0 || head < 0 {
			return nil, fmt.Errorf("FromBoundaries: row %d: %w", i, ErrBadEdgeRow)
		}
		edges[i] = Edge{Tail: tail, Head: head}
		k := keyOf(tail, head)
		if _, dup := idx[k]; dup {
			return nil, fmt.Errorf("FromBoundaries: duplicate edge row %d: %w", i, ErrBadEdgeRow)
		}
		idx[k] = i
	}

	// Recover triangles; enforce exactly three ±1 entries per row.
	var tris []Triangle
	if b2 != nil {
		if b2.Cols() != edgeCount {
			return nil, fmt.Errorf("FromBoundaries: B2 has %d columns, want %d: %w",
				b2.Cols(), edgeCount, ErrBadTriangleRow)
		}
		for t := 0; t < b2.Rows(); t++ {
			var members []int
			for j := 0; j < edgeCount; j++ {
				v, err := b2.At(t, j)
				if err != nil {
					return nil, fmt.Errorf("FromBoundaries: %w", err)
				}
				if v == 0 {
					continue
				}
				if v != 1 && v != -1 {
					return nil, fmt.Errorf("FromBoundaries: row %d entry %g: %w", t, v, ErrBadTriangleRow)
				}
				members = append(members, j)
			}
			if len(members) != 3 {
				return nil, fmt.Errorf("FromBoundaries: row %d has %d entries: %w", t, len(members), ErrBadTriangleRow)
			}
			nodesOf := map[int]struct{}{}
			for _, e := range members {
				nodesOf[edges[e].Tail] = struct{}{}
				nodesOf[edges[e].Head] = struct{}{}
			}
			if len(nodesOf) != 3 {
				return nil, fmt.Errorf("FromBoundaries: row %d: %w", t, ErrBadTriangleRow)
			}
			verts := make([]int, 0, 3)
			for n := range nodesOf {
				verts = append(verts, n)
			}
			sort.Ints(verts)
			tris = append(tris, Triangle{A: verts[0], B: verts[1], C: verts[2]})
		}
	}

	return assemble(nodes, edges, tris, idx, b1, b2)
}

// assemble finishes construction: checks B2·B1 = 0, builds adjacency lists and
// precomputes both shift operators.
func assemble(nodes int, edges []Edge, tris []Triangle, idx map[pairKey]int, b1, b2 *matrix.Dense) (*Complex, error) {
	// Boundary-of-boundary precondition on fixture data.
	if b2 != nil {
		prod, err := matrix.Mul(b2, b1)
		if err != nil {
			return nil, fmt.Errorf("assemble: B2·B1: %w", err)
		}
		for i := 0; i < prod.Rows(); i++ {
			for j := 0; j < prod.Cols(); j++ {
				v, _ := prod.At(i, j)
				if v != 0 {
					return nil, fmt.Errorf("assemble: (B2·B1)[%d,%d]=%g: %w", i, j, v, ErrBoundarySquare)
				}
			}
		}
	}

	// Sorted adjacency per node (deterministic neighbor enumeration).
	adj := make([][]int, nodes)
	for _, e := range edges {
		adj[e.Tail] = append(adj[e.Tail], e.Head)
		adj[e.Head] = append(adj[e.Head], e.Tail)
	}
	for n := range adj {
		sort.Ints(adj[n])
	}

	// Precompute the Hodge operators once; the complex is immutable afterwards.
	b1t, err := matrix.Transpose(b1)
	if err != nil {
		return nil, fmt.Errorf("assemble: %w", err)
	}
	lowerM, err := matrix.Mul(b1, b1t)
	if err != nil {
		return nil, fmt.Errorf("assemble: lower: %w", err)
	}

	var upperM matrix.Matrix
	if b2 != nil {
		b2t, terr := matrix.Transpose(b2)
		if terr != nil {
			return nil, fmt.Errorf("assemble: %w", terr)
		}
		if upperM, err = matrix.Mul(b2t, b2); err != nil {
			return nil, fmt.Errorf("assemble: upper: %w", err)
		}
	} else {
		if upperM, err = matrix.NewDense(len(edges), len(edges)); err != nil {
			return nil, fmt.Errorf("assemble: upper: %w", err)
		}
	}

	return &Complex{
		nodes:     nodes,
		edges:     edges,
		triangles: tris,
		edgeIndex: idx,
		adjacency: adj,
		b1:        b1.Clone().(*matrix.Dense),
		b2:        cloneOrNil(b2),
		lower:     lowerM.Clone().(*matrix.Dense),
		upper:     upperM.Clone().(*matrix.Dense),
	}, nil
}

func cloneOrNil(m *matrix.Dense) *matrix.Dense {
	if m == nil {
		return nil
	}

	return m.Clone().(*matrix.Dense)
}

// Nodes returns the node count. Complexity: O(1).
func (c *Complex) Nodes() int { return c.nodes }

// EdgeCount returns the edge count. Complexity: O(1).
func (c *Complex) EdgeCount() int { return len(c.edges) }

// TriangleCount returns the filled-triangle count. Complexity: O(1).
func (c *Complex) TriangleCount() int { return len(c.triangles) }

// Edges returns a copy of the oriented edge list in row order.
// Complexity: O(E).
func (c *Complex) Edges() []Edge {
	out := make([]Edge, len(c.edges))
	copy(out, c.edges)

	return out
}

// Triangles returns a copy of the oriented triangle list in row order.
// Complexity: O(T).
func (c *Complex) Triangles() []Triangle {
	out := make([]Triangle, len(c.triangles))
	copy(out, c.triangles)

	return out
}

// EdgeBetween returns the row index of the edge joining u and v along with
// the traversal sign: +1 when going u→v follows the stored orientation,
// -1 when it runs against it.
// Errors: ErrUnknownNode, ErrUnknownEdge.
// Complexity: O(1).
func (c *Complex) EdgeBetween(u, v int) (int, float64, error) {
	if u < 0 || u >= c.nodes || v < 0 || v >= c.nodes {
		return 0, 0, fmt.Errorf("EdgeBetween(%d,%d): %w", u, v, ErrUnknownNode)
	}
	i, ok := c.edgeIndex[keyOf(u, v)]
	if !ok {
		return 0, 0, fmt.Errorf("EdgeBetween(%d,%d): %w", u, v, ErrUnknownEdge)
	}
	sign := +1.0
	if c.edges[i].Tail != u {
		sign = -1.0
	}

	return i, sign, nil
}

// Neighbors returns the sorted neighbor ids of node n (a fresh slice).
// Errors: ErrUnknownNode.
// Complexity: O(d).
func (c *Complex) Neighbors(n int) ([]int, error) {
	if n < 0 || n >= c.nodes {
		return nil, fmt.Errorf("Neighbors(%d): %w", n, ErrUnknownNode)
	}
	out := make([]int, len(c.adjacency[n]))
	copy(out, c.adjacency[n])

	return out, nil
}

// Degree returns the degree of node n.
// Errors: ErrUnknownNode. Complexity: O(1).
func (c *Complex) Degree(n int) (int, error) {
	if n < 0 || n >= c.nodes {
		return 0, fmt.Errorf("Degree(%d): %w", n, ErrUnknownNode)
	}

	return len(c.adjacency[n]), nil
}

// MaxDegree returns the maximum node degree across the complex.
// Complexity: O(N).
func (c *Complex) MaxDegree() int {
	maxDeg := 0
	for _, nbrs := range c.adjacency {
		if len(nbrs) > maxDeg {
			maxDeg = len(nbrs)
		}
	}

	return maxDeg
}

// B1 returns a copy of the edges×nodes boundary matrix. Complexity: O(E·N).
func (c *Complex) B1() *matrix.Dense { return c.b1.Clone().(*matrix.Dense) }

// B2 returns a copy of the triangles×edges boundary matrix, or nil when the
// complex carries no triangles. Complexity: O(T·E).
func (c *Complex) B2() *matrix.Dense { return cloneOrNil(c.b2) }

// Lower returns a copy of the lower Hodge operator B1·B1ᵗ. Complexity: O(E²).
func (c *Complex) Lower() *matrix.Dense { return c.lower.Clone().(*matrix.Dense) }

// Upper returns a copy of the upper Hodge operator B2ᵗ·B2. Complexity: O(E²).
func (c *Complex) Upper() *matrix.Dense { return c.upper.Clone().(*matrix.Dense) }
