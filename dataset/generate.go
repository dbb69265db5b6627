// SPDX-License-Identifier: MIT
package dataset

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/hodgeflow/simplex"
)

// Default generation knobs; single source of truth for the CLI defaults.
const (
	DefaultRows         = 8
	DefaultCols         = 8
	DefaultTrajectories = 200
	DefaultSeed         = 1729
)

// Config drives Generate. Zero holes is valid; holes name grid cells (r, c)
// whose node and every incident simplex are removed.
type Config struct {
	Rows         int
	Cols         int
	Holes        [][2]int
	Trajectories int
	Seed         int64
}

// Dataset is a generated corpus: the complex and the full node trajectories.
// Examples, flows and masks are all derived views; see examples.go.
type Dataset struct {
	Complex *simplex.Complex
	Paths   [][]int
}

// Generate builds the triangulated grid and samples the trajectory corpus.
//
// Implementation:
//   - Stage 1 (Grid): alive cells get compact node ids in row-major order;
//     right, down and down-right diagonal edges connect alive neighbors, and
//     each unit square contributes its two diagonal-split triangles when all
//     member edges survived the holes.
//   - Stage 2 (Routes): per trajectory, sample a start in the left third, a
//     waypoint in the middle third and a destination in the right third (its
//     vertical half chosen by index mod 3), then chain two uniformly sampled
//     shortest paths.
//
// Errors: ErrBadGrid, ErrBadTrajectories, ErrNoRoute, plus simplex
// construction errors on a malformed hole layout.
// Complexity: O(Rows·Cols) grid work plus O(Trajectories · E) routing.
func Generate(cfg Config) (*Dataset, error) {
	if cfg.Rows < 3 || cfg.Cols < 3 {
		return nil, fmt.Errorf("Generate: %dx%d: %w", cfg.Rows, cfg.Cols, ErrBadGrid)
	}
	if cfg.Trajectories < 1 {
		return nil, fmt.Errorf("Generate: %d trajectories: %w", cfg.Trajectories, ErrBadTrajectories)
	}

	g, err := buildGrid(cfg)
	if err != nil {
		return nil, fmt.Errorf("Generate: %w", err)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	paths := make([][]int, 0, cfg.Trajectories)
	for i := 0; i < cfg.Trajectories; i++ {
		p, perr := g.sampleRoute(rng, i)
		if perr != nil {
			return nil, fmt.Errorf("Generate: trajectory %d: %w", i, perr)
		}
		paths = append(paths, p)
	}

	return &Dataset{Complex: g.complex, Paths: paths}, nil
}

// grid is the intermediate construction state.
type grid struct {
	cfg     Config
	nodeID  []int // rows*cols → compact id or -1
	nodeRow []int // compact id → row
	nodeCol []int // compact id → col
	complex *simplex.Complex
}

func buildGrid(cfg Config) (*grid, error) {
	holes := make(map[[2]int]bool, len(cfg.Holes))
	for _, h := range cfg.Holes {
		holes[h] = true
	}

	g := &grid{cfg: cfg, nodeID: make([]int, cfg.Rows*cfg.Cols)}
	for r := 0; r < cfg.Rows; r++ {
		for c := 0; c < cfg.Cols; c++ {
			if holes[[2]int{r, c}] {
				g.nodeID[r*cfg.Cols+c] = -1
				continue
			}
			g.nodeID[r*cfg.Cols+c] = len(g.nodeRow)
			g.nodeRow = append(g.nodeRow, r)
			g.nodeCol = append(g.nodeCol, c)
		}
	}

	var edges [][2]int
	edgeSeen := make(map[[2]int]bool)
	addEdge := func(a, b int) {
		if a < 0 || b < 0 {
			return
		}
		if a > b {
			a, b = b, a
		}
		if edgeSeen[[2]int{a, b}] {
			return
		}
		edgeSeen[[2]int{a, b}] = true
		edges = append(edges, [2]int{a, b})
	}
	id := func(r, c int) int {
		if r < 0 || r >= cfg.Rows || c < 0 || c >= cfg.Cols {
			return -1
		}

		return g.nodeID[r*cfg.Cols+c]
	}

	for r := 0; r < cfg.Rows; r++ {
		for c := 0; c < cfg.Cols; c++ {
			addEdge(id(r, c), id(r, c+1))   // right
			addEdge(id(r, c), id(r+1, c))   // down
			addEdge(id(r, c), id(r+1, c+1)) // diagonal
		}
	}

	// Each unit square splits along its tl→br diagonal into two triangles.
	var triangles [][3]int
	hasEdge := func(a, b int) bool {
		if a > b {
			a, b = b, a
		}

		return edgeSeen[[2]int{a, b}]
	}
	for r := 0; r+1 < cfg.Rows; r++ {
		for c := 0; c+1 < cfg.Cols; c++ {
			tl, tr := id(r, c), id(r, c+1)
			bl, br := id(r+1, c), id(r+1, c+1)
			if tl >= 0 && tr >= 0 && br >= 0 && hasEdge(tl, tr) && hasEdge(tr, br) && hasEdge(tl, br) {
				triangles = append(triangles, [3]int{tl, tr, br})
			}
			if tl >= 0 && bl >= 0 && br >= 0 && hasEdge(tl, bl) && hasEdge(bl, br) && hasEdge(tl, br) {
				triangles = append(triangles, [3]int{tl, bl, br})
			}
		}
	}

	complexe, err := simplex.New(len(g.nodeRow), edges, triangles)
	if err != nil {
		return nil, err
	}
	g.complex = complexe

	return g, nil
}

// sampleRoute draws start/waypoint/destination nodes from the three vertical
// bands and chains two uniform shortest paths. The destination's vertical
// half follows idx mod 3: residue 1 keeps the upper half, residue 2 the lower
// half, residue 0 the whole band.
func (g *grid) sampleRoute(rng *rand.Rand, idx int) ([]int, error) {
	third := g.cfg.Cols / 3
	start := g.sampleNode(rng, 0, third, 0, g.cfg.Rows)
	waypoint := g.sampleNode(rng, third, 2*third, 0, g.cfg.Rows)

	rowLo, rowHi := 0, g.cfg.Rows
	switch idx % 3 {
	case 1:
		rowHi = g.cfg.Rows / 2 // upper half
	case 2:
		rowLo = g.cfg.Rows / 2 // lower half
	}
	dest := g.sampleNode(rng, 2*third, g.cfg.Cols, rowLo, rowHi)
	if start < 0 || waypoint < 0 || dest < 0 {
		return nil, ErrNoRoute
	}

	first, err := g.shortestPath(rng, start, waypoint)
	if err != nil {
		return nil, err
	}
	second, err := g.shortestPath(rng, waypoint, dest)
	if err != nil {
		return nil, err
	}

	route := append(first, second[1:]...)
	if len(route) < 3 {
		return nil, ErrShortPath
	}

	return route, nil
}

// sampleNode picks a uniformly random alive node inside the cell window, or
// -1 when the window holds none.
func (g *grid) sampleNode(rng *rand.Rand, colLo, colHi, rowLo, rowHi int) int {
	var pool []int
	for n := range g.nodeRow {
		if g.nodeCol[n] >= colLo && g.nodeCol[n] < colHi && g.nodeRow[n] >= rowLo && g.nodeRow[n] < rowHi {
			pool = append(pool, n)
		}
	}
	if len(pool) == 0 {
		return -1
	}

	return pool[rng.Intn(len(pool))]
}

// shortestPath samples uniformly among shortest src→dst paths: a reverse BFS
// labels every node with its hop distance to dst, then a forward walk picks
// uniformly among neighbors one hop closer.
// Errors: ErrNoRoute.
// Complexity: O(N + E).
func (g *grid) shortestPath(rng *rand.Rand, src, dst int) ([]int, error) {
	const unreached = -1
	dist := make([]int, g.complex.Nodes())
	for i := range dist {
		dist[i] = unreached
	}
	dist[dst] = 0
	queue := []int{dst}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		nbrs, err := g.complex.Neighbors(u)
		if err != nil {
			return nil, err
		}
		for _, v := range nbrs {
			if dist[v] == unreached {
				dist[v] = dist[u] + 1
				queue = append(queue, v)
			}
		}
	}
	if dist[src] == unreached {
		return nil, fmt.Errorf("shortestPath(%d,%d): %w", src, dst, ErrNoRoute)
	}

	path := []int{src}
	for u := src; u != dst; {
		nbrs, err := g.complex.Neighbors(u)
		if err != nil {
			return nil, err
		}
		var closer []int
		for _, v := range nbrs {
			if dist[v] == dist[u]-1 {
				closer = append(closer, v)
			}
		}
		u = closer[rng.Intn(len(closer))]
		path = append(path, u)
	}

	return path, nil
}
