// SPDX-License-Identifier: MIT
package dataset

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/katalvlaran/hodgeflow/simplex"
)

// fileForm is the on-disk shape: flat arrays only, no matrix payloads. The
// complex is stored by its simplex lists and rebuilt (and re-validated) on
// load.
type fileForm struct {
	Nodes     int      `json:"nodes"`
	Edges     [][2]int `json:"edges"`
	Triangles [][3]int `json:"triangles"`
	Paths     [][]int  `json:"paths"`
}

// Save writes the dataset as JSON.
// Complexity: O(size of the dataset).
func Save(d *Dataset, path string) error {
	edges := make([][2]int, 0, d.Complex.EdgeCount())
	for _, e := range d.Complex.Edges() {
		edges = append(edges, [2]int{e.Tail, e.Head})
	}
	triangles := make([][3]int, 0, d.Complex.TriangleCount())
	for _, tr := range d.Complex.Triangles() {
		triangles = append(triangles, [3]int{tr.A, tr.B, tr.C})
	}

	blob, err := json.Marshal(fileForm{
		Nodes:     d.Complex.Nodes(),
		Edges:     edges,
		Triangles: triangles,
		Paths:     d.Paths,
	})
	if err != nil {
		return fmt.Errorf("dataset.Save: %w", err)
	}
	if err = os.WriteFile(path, blob, 0o644); err != nil {
		return fmt.Errorf("dataset.Save: %w", err)
	}

	return nil
}

// Load reads a dataset back, rebuilding the complex so every structural
// invariant is checked again.
// Complexity: O(size of the file) plus complex assembly.
func Load(path string) (*Dataset, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dataset.Load: %w", err)
	}
	var f fileForm
	if err = json.Unmarshal(blob, &f); err != nil {
		return nil, fmt.Errorf("dataset.Load: %w", err)
	}

	c, err := simplex.New(f.Nodes, f.Edges, f.Triangles)
	if err != nil {
		return nil, fmt.Errorf("dataset.Load: %w", err)
	}

	return &Dataset{Complex: c, Paths: f.Paths}, nil
}

// LoadFlowCache is a capability check on a persisted flow table: it returns
// the cached flows and true when a readable, well-formed cache exists, and
// (nil, false) otherwise. Absence is not an error; callers fall back to
// recomputing via Flows.
// Complexity: O(size of the cache).
func LoadFlowCache(path string) ([][]float64, bool) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	var flows [][]float64
	if err = json.Unmarshal(blob, &flows); err != nil {
		return nil, false
	}

	return flows, true
}

// SaveFlowCache persists a flow table as a JSON array of arrays.
func SaveFlowCache(path string, flows [][]float64) error {
	blob, err := json.Marshal(flows)
	if err != nil {
		return fmt.Errorf("dataset.SaveFlowCache: %w", err)
	}
	if err = os.WriteFile(path, blob, 0o644); err != nil {
		return fmt.Errorf("dataset.SaveFlowCache: %w", err)
	}

	return nil
}

// Flows recomputes the prefix flow of every trajectory, the designated
// fallback when LoadFlowCache reports no cache.
// Errors: ErrShortPath.
// Complexity: O(paths · E).
func (d *Dataset) Flows() ([][]float64, error) {
	out := make([][]float64, 0, len(d.Paths))
	for i, p := range d.Paths {
		if len(p) < 3 {
			return nil, fmt.Errorf("Flows: trajectory %d: %w", i, ErrShortPath)
		}
		flow, err := EncodeFlow(d.Complex, p[:len(p)-2])
		if err != nil {
			return nil, fmt.Errorf("Flows: trajectory %d: %w", i, err)
		}
		out = append(out, flow)
	}

	return out, nil
}

// FlowsWithCache serves flows from the cache at cachePath when present and
// falls back to recomputation, refreshing the cache on the way out.
func (d *Dataset) FlowsWithCache(cachePath string) ([][]float64, error) {
	if cached, ok := LoadFlowCache(cachePath); ok && len(cached) == len(d.Paths) {
		return cached, nil
	}
	flows, err := d.Flows()
	if err != nil {
		return nil, err
	}
	if err = SaveFlowCache(cachePath, flows); err != nil {
		return nil, err
	}

	return flows, nil
}
