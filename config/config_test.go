// SPDX-License-Identifier: MIT
package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hodgeflow/config"
	"github.com/katalvlaran/hodgeflow/shift"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	return path
}

func TestDefault_IsValid(t *testing.T) {
	require.NoError(t, config.Default().Validate())
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeYAML(t, `
family: combined-sum
hidden: 32
learn_rate: 0.01
experiments:
  reverse: true
  markov: true
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	require.Equal(t, shift.CombinedSum, cfg.Family)
	require.Equal(t, 32, cfg.Hidden)
	require.InDelta(t, 0.01, cfg.LearnRate, 1e-12)
	require.True(t, cfg.Experiments.Reverse)
	require.True(t, cfg.Experiments.Markov)
	require.False(t, cfg.Experiments.Regional)

	// Untouched fields keep their defaults.
	require.Equal(t, config.DefaultLayers, cfg.Layers)
	require.Equal(t, config.DefaultEpochs, cfg.Epochs)
}

func TestLoad_UnknownFamily(t *testing.T) {
	_, err := config.Load(writeYAML(t, "family: spectral\n"))
	require.ErrorIs(t, err, shift.ErrUnknownFamily)
}

func TestValidate_RejectsBadValues(t *testing.T) {
	cases := map[string]func(*config.Config){
		"layers":       func(c *config.Config) { c.Layers = 0 },
		"hidden":       func(c *config.Config) { c.Hidden = -1 },
		"epochs":       func(c *config.Config) { c.Epochs = 0 },
		"learn_rate":   func(c *config.Config) { c.LearnRate = 0 },
		"weight_decay": func(c *config.Config) { c.WeightDecay = -0.1 },
		"batch_size":   func(c *config.Config) { c.BatchSize = 0 },
		"train_frac":   func(c *config.Config) { c.TrainFrac = 1 },
		"markov_order": func(c *config.Config) { c.MarkovOrder = 0 },
	}
	for name, corrupt := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := config.Default()
			corrupt(&cfg)
			require.ErrorIs(t, cfg.Validate(), config.ErrBadConfig)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
