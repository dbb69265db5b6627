// SPDX-License-Identifier: MIT
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/hodgeflow/dataset"
)

func newGenerateCmd() *cobra.Command {
	var (
		rows, cols   int
		trajectories int
		seed         int64
		holes        []int
		out          string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a synthetic trajectory corpus over a triangulated grid",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger()
			if err != nil {
				return err
			}
			defer log.Sync()

			if len(holes)%2 != 0 {
				return fmt.Errorf("generate: --hole takes row,col pairs, got %d values", len(holes))
			}
			cfg := dataset.Config{
				Rows:         rows,
				Cols:         cols,
				Trajectories: trajectories,
				Seed:         seed,
			}
			for i := 0; i+1 < len(holes); i += 2 {
				cfg.Holes = append(cfg.Holes, [2]int{holes[i], holes[i+1]})
			}

			d, err := dataset.Generate(cfg)
			if err != nil {
				return fmt.Errorf("generate: %w", err)
			}
			if err = dataset.Save(d, out); err != nil {
				return fmt.Errorf("generate: %w", err)
			}

			log.Info("corpus written",
				zap.String("path", out),
				zap.Int("nodes", d.Complex.Nodes()),
				zap.Int("edges", d.Complex.EdgeCount()),
				zap.Int("triangles", d.Complex.TriangleCount()),
				zap.Int("trajectories", len(d.Paths)),
			)

			return nil
		},
	}

	cmd.Flags().IntVar(&rows, "rows", dataset.DefaultRows, "grid rows")
	cmd.Flags().IntVar(&cols, "cols", dataset.DefaultCols, "grid columns")
	cmd.Flags().IntVar(&trajectories, "trajectories", dataset.DefaultTrajectories, "number of trajectories")
	cmd.Flags().Int64Var(&seed, "seed", dataset.DefaultSeed, "generation seed")
	cmd.Flags().IntSliceVar(&holes, "hole", nil, "grid cell to remove, as row,col (repeatable)")
	cmd.Flags().StringVar(&out, "out", "corpus.json", "output path")

	return cmd
}
