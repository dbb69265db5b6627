// SPDX-License-Identifier: MIT
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/hodgeflow/config"
)

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "hodgeflow",
		Short:         "Trajectory prediction over simplicial complexes",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML run configuration (defaults apply when empty)")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newTrainCmd(&configPath))
	root.AddCommand(newEvalCmd(&configPath))

	return root
}

// loadConfig resolves the run configuration: the file when given, otherwise
// the package defaults.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("loading config: %w", err)
	}

	return cfg, nil
}

// newLogger builds the CLI logger; training progress and results go through
// it, never through raw prints.
func newLogger() (*zap.Logger, error) {
	log, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}

	return log, nil
}
