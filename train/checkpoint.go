// SPDX-License-Identifier: MIT
package train

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/katalvlaran/hodgeflow/matrix"
)

// Checkpoints are plain JSON arrays-of-arrays: one entry per weight, each a
// row-major nested array. No shapes are stored separately; the nesting is the
// shape.

// SaveCheckpoint writes the weight list to path.
// Complexity: O(total parameters).
func SaveCheckpoint(path string, weights []*matrix.Dense) error {
	payload := make([][][]float64, len(weights))
	for wi, w := range weights {
		rows := make([][]float64, w.Rows())
		for i := range rows {
			row, err := w.Row(i)
			if err != nil {
				return fmt.Errorf("SaveCheckpoint: weight %d: %w", wi, err)
			}
			rows[i] = row
		}
		payload[wi] = rows
	}

	blob, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("SaveCheckpoint: %w", err)
	}
	if err = os.WriteFile(path, blob, 0o644); err != nil {
		return fmt.Errorf("SaveCheckpoint: %w", err)
	}

	return nil
}

// LoadCheckpoint reads a weight list back from path.
// Errors: matrix.ErrInvalidDimensions on ragged or empty nested arrays.
// Complexity: O(total parameters).
func LoadCheckpoint(path string) ([]*matrix.Dense, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadCheckpoint: %w", err)
	}
	var payload [][][]float64
	if err = json.Unmarshal(blob, &payload); err != nil {
		return nil, fmt.Errorf("LoadCheckpoint: %w", err)
	}

	weights := make([]*matrix.Dense, len(payload))
	for wi, rows := range payload {
		if weights[wi], err = matrix.NewDenseFromRows(rows); err != nil {
			return nil, fmt.Errorf("LoadCheckpoint: weight %d: %w", wi, err)
		}
	}

	return weights, nil
}
