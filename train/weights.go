// SPDX-License-Identifier: MIT
package train

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/hodgeflow/matrix"
	"github.com/katalvlaran/hodgeflow/shift"
)

// InitWeights builds a freshly initialized weight list for a family: `layers`
// hidden layers of width `hidden` (each consuming the family's per-layer
// weight count) plus the single-column terminal projection. Entries are drawn
// Xavier-uniform in ±sqrt(6/(fanIn+fanOut)) from a seeded source.
// Errors: ErrBadSchedule.
// Complexity: O(total parameters).
func InitWeights(d shift.Descriptor, layers, hidden int, seed int64) ([]*matrix.Dense, error) {
	if layers < 1 || hidden < 1 {
		return nil, fmt.Errorf("InitWeights(layers=%d, hidden=%d): %w", layers, hidden, ErrBadSchedule)
	}

	rng := rand.New(rand.NewSource(seed))
	ws := make([]*matrix.Dense, 0, layers*d.WeightsPerLayer+1)

	in := 1
	for l := 0; l < layers; l++ {
		for k := 0; k < d.WeightsPerLayer; k++ {
			w, err := xavier(rng, in, hidden)
			if err != nil {
				return nil, fmt.Errorf("InitWeights: layer %d weight %d: %w", l, k, err)
			}
			ws = append(ws, w)
		}
		in = hidden
	}

	terminal, err := xavier(rng, hidden, 1)
	if err != nil {
		return nil, fmt.Errorf("InitWeights: terminal: %w", err)
	}

	return append(ws, terminal), nil
}

func xavier(rng *rand.Rand, rows, cols int) (*matrix.Dense, error) {
	w, err := matrix.NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	limit := math.Sqrt(6.0 / float64(rows+cols))
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if err = w.Set(i, j, (rng.Float64()*2-1)*limit); err != nil {
				return nil, err
			}
		}
	}

	return w, nil
}

// cloneWeights deep-copies a weight list; the trainer snapshots through it.
func cloneWeights(ws []*matrix.Dense) []*matrix.Dense {
	out := make([]*matrix.Dense, len(ws))
	for i, w := range ws {
		out[i] = w.Clone().(*matrix.Dense)
	}

	return out
}
