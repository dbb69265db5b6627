// SPDX-License-Identifier: MIT
package store_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hodgeflow/shift"
	"github.com/katalvlaran/hodgeflow/store"
	"github.com/katalvlaran/hodgeflow/train"
)

func openTemp(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, s.Close()) })

	return s
}

func TestCreateRunAndMetrics(t *testing.T) {
	s := openTemp(t)

	id, err := s.CreateRun("base", `{"hidden":16}`)
	require.NoError(t, err)
	require.Positive(t, id)

	for epoch := 1; epoch <= 3; epoch++ {
		require.NoError(t, s.LogMetric(id, store.Metric{
			Epoch:    epoch,
			Loss:     1.0 / float64(epoch),
			TrainAcc: 0.5,
			TestAcc:  0.4,
		}))
	}

	got, err := s.Metrics(id)
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, 1, got[0].Epoch)
	require.Equal(t, 3, got[2].Epoch)
	require.InDelta(t, 0.5, got[1].Loss, 1e-12)
}

func TestMetrics_EmptyRun(t *testing.T) {
	s := openTemp(t)

	id, err := s.CreateRun("order-2", "{}")
	require.NoError(t, err)

	got, err := s.Metrics(id)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestCheckpointRoundTripAndReplace(t *testing.T) {
	s := openTemp(t)

	id, err := s.CreateRun("combined-sum", "{}")
	require.NoError(t, err)

	d, err := shift.Lookup(shift.CombinedSum)
	require.NoError(t, err)
	ws, err := train.InitWeights(d, 1, 4, 3)
	require.NoError(t, err)
	require.NoError(t, s.SaveCheckpoint(id, ws))

	back, err := s.LoadCheckpoint(id)
	require.NoError(t, err)
	require.Len(t, back, len(ws))
	for i := range ws {
		require.Equal(t, ws[i].String(), back[i].String())
	}

	// Replacing overwrites in place.
	ws2, err := train.InitWeights(d, 1, 4, 99)
	require.NoError(t, err)
	require.NoError(t, s.SaveCheckpoint(id, ws2))
	back2, err := s.LoadCheckpoint(id)
	require.NoError(t, err)
	require.Equal(t, ws2[0].String(), back2[0].String())
}

func TestLoadCheckpoint_Missing(t *testing.T) {
	s := openTemp(t)

	id, err := s.CreateRun("base", "{}")
	require.NoError(t, err)

	_, err = s.LoadCheckpoint(id)
	require.ErrorIs(t, err, store.ErrNotFound)
}
