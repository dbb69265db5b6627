// SPDX-License-Identifier: MIT
package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/hodgeflow/dataset"
	"github.com/katalvlaran/hodgeflow/shift"
	"github.com/katalvlaran/hodgeflow/simplex"
	"github.com/katalvlaran/hodgeflow/store"
	"github.com/katalvlaran/hodgeflow/train"
)

func newTrainCmd(configPath *string) *cobra.Command {
	var checkpointOut string

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train a model family on a generated corpus",
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
				return fmt.Errorf("train: %w", err)
			}
			set, err := shift.Build(d.Complex, cfg.Family)
			if err != nil {
				return fmt.Errorf("train: %w", err)
			}
			sel, err := simplex.NewCondIncidence(d.Complex, nil)
			if err != nil {
				return fmt.Errorf("train: %w", err)
			}

			batch, err := d.Examples()
			if err != nil {
				return fmt.Errorf("train: %w", err)
			}
			trainMask, testMask, err := dataset.TrainTestMasks(len(batch), cfg.TrainFrac, cfg.Seed)
			if err != nil {
				return fmt.Errorf("train: %w", err)
			}

			weights, err := train.InitWeights(set.Descriptor, cfg.Layers, cfg.Hidden, cfg.Seed)
			if err != nil {
				return fmt.Errorf("train: %w", err)
			}
			trainer, err := train.New(d.Complex, set, sel, log, train.Options{
				Epochs:    cfg.Epochs,
				BatchSize: cfg.BatchSize,
				LearnRate: cfg.LearnRate,
				Decay:     cfg.WeightDecay,
				Seed:      cfg.Seed,
			})
			if err != nil {
				return fmt.Errorf("train: %w", err)
			}

			res, err := trainer.Run(weights, batch, trainMask, testMask)
			if err != nil {
				return fmt.Errorf("train: %w", err)
			}

			if cfg.StorePath != "" {
				if err = persistRun(cfg.StorePath, string(cfg.Family), cfg, res); err != nil {
					return fmt.Errorf("train: %w", err)
				}
			}
			if checkpointOut != "" {
				if err = train.SaveCheckpoint(checkpointOut, res.Weights); err != nil {
					return fmt.Errorf("train: %w", err)
				}
			}

			last := res.History[len(res.History)-1]
			log.Info("training complete",
				zap.String("family", string(cfg.Family)),
				zap.Int("epochs", len(res.History)),
				zap.Float64("final_loss", last.Loss),
				zap.Float64("final_test_acc", last.TestAcc),
			)

			return nil
		},
	}

	cmd.Flags().StringVar(&checkpointOut, "checkpoint", "weights.json", "trained weights output path")

	return cmd
}

func persistRun(storePath, family string, cfg any, res *train.Result) error {
	s, err := store.Open(storePath)
	if err != nil {
		return err
	}
	defer s.Close()

	snapshot, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	runID, err := s.CreateRun(family, string(snapshot))
	if err != nil {
		return err
	}
	for _, row := range res.History {
		if err = s.LogMetric(runID, store.Metric{
			Epoch:    row.Epoch,
			Loss:     row.Loss,
			TrainAcc: row.TrainAcc,
			TestAcc:  row.TestAcc,
		}); err != nil {
			return err
		}
	}

	return s.SaveCheckpoint(runID, res.Weights)
}
