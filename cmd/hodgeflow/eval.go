// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/hodgeflow/dataset"
	"github.com/katalvlaran/hodgeflow/eval"
	"github.com/katalvlaran/hodgeflow/markov"
	"github.com/katalvlaran/hodgeflow/shift"
	"github.com/katalvlaran/hodgeflow/simplex"
	"github.com/katalvlaran/hodgeflow/train"
)

func newEvalCmd(configPath *string) *cobra.Command {
	var (
		checkpointPath string
		topK           int
	)

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate a trained checkpoint on a corpus",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			log, err := newLogger()
			if err != nil {
				return err
			}
			defer log.Sync()

			d, err := dataset.Load(cfg.DatasetPath)
			if err != nil {
				return fmt.Errorf("eval: %w", err)
			}
			weights, err := train.LoadCheckpoint(checkpointPath)
			if err != nil {
				return fmt.Errorf("eval: %w", err)
			}

			c := d.Complex
			if cfg.Experiments.FlipEdges {
				// Re-randomize every edge orientation; an equivariant model's
				// metrics must not move.
				rng := rand.New(rand.NewSource(cfg.Seed))
				signs := make([]float64, c.EdgeCount())
				for e := range signs {
					signs[e] = 1
					if rng.Intn(2) == 0 {
						signs[e] = -1
					}
				}
				if c, err = c.OrientationFlip(signs); err != nil {
					return fmt.Errorf("eval: %w", err)
				}
				d = &dataset.Dataset{Complex: c, Paths: d.Paths}
			}

			set, err := shift.Build(c, cfg.Family)
			if err != nil {
				return fmt.Errorf("eval: %w", err)
			}
			sel, err := simplex.NewCondIncidence(c, nil)
			if err != nil {
				return fmt.Errorf("eval: %w", err)
			}
			harness, err := eval.New(c, set, sel)
			if err != nil {
				return fmt.Errorf("eval: %w", err)
			}

			batch, err := d.Examples()
			if err != nil {
				return fmt.Errorf("eval: %w", err)
			}
			_, testMask, err := dataset.TrainTestMasks(len(batch), cfg.TrainFrac, cfg.Seed)
			if err != nil {
				return fmt.Errorf("eval: %w", err)
			}

			acc, err := harness.Accuracy(weights, batch, testMask)
			if err != nil {
				return fmt.Errorf("eval: %w", err)
			}
			topk, err := harness.TopK(weights, batch, testMask, topK)
			if err != nil {
				return fmt.Errorf("eval: %w", err)
			}
			twoHop, err := harness.TwoHop(weights, batch, testMask)
			if err != nil {
				return fmt.Errorf("eval: %w", err)
			}
			log.Info("forward evaluation",
				zap.Float64("top1", acc),
				zap.Int("k", topK),
				zap.Float64("topk", topk),
				zap.Float64("two_hop", twoHop),
			)

			if cfg.Experiments.Reverse {
				reversed, rerr := d.ReversedExamples()
				if rerr != nil {
					return fmt.Errorf("eval: %w", rerr)
				}
				revAcc, rerr := harness.Accuracy(weights, reversed, testMask)
				if rerr != nil {
					return fmt.Errorf("eval: %w", rerr)
				}
				log.Info("reversed evaluation", zap.Float64("top1", revAcc))
			}

			if cfg.Experiments.Regional {
				regTrain, regTest := eval.RegionalMasks(len(batch))
				trainAcc, rerr := harness.Accuracy(weights, batch, regTrain)
				if rerr != nil {
					return fmt.Errorf("eval: %w", rerr)
				}
				testAcc, rerr := harness.Accuracy(weights, batch, regTest)
				if rerr != nil {
					return fmt.Errorf("eval: %w", rerr)
				}
				log.Info("regional transfer",
					zap.Float64("upper_region", trainAcc),
					zap.Float64("lower_region", testAcc),
				)
			}

			if cfg.Experiments.Markov {
				if err = runMarkovBaseline(log, d, cfg.MarkovOrder, cfg.Seed); err != nil {
					return fmt.Errorf("eval: %w", err)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&checkpointPath, "checkpoint", "weights.json", "trained weights path")
	cmd.Flags().IntVar(&topK, "top-k", 2, "rank for top-k accuracy")

	return cmd
}

func runMarkovBaseline(log *zap.Logger, d *dataset.Dataset, order int, seed int64) error {
	m, err := markov.New(d.Complex, order, seed)
	if err != nil {
		return err
	}
	m.Train(d.Paths)

	acc, err := m.Accuracy(d.Paths)
	if err != nil {
		return err
	}
	twoHop, err := m.TwoHopAccuracy(d.Paths)
	if err != nil {
		return err
	}
	log.Info("markov baseline",
		zap.Int("order", order),
		zap.Float64("top1", acc),
		zap.Float64("two_hop", twoHop),
	)

	return nil
}
