// SPDX-License-Identifier: MIT
// Package store persists experiment runs in SQLite via the pure-Go driver.
//
// Three tables: runs (one row per training invocation), metrics (per-epoch
// loss and accuracy) and checkpoints (JSON-serialized weight lists). The
// trainer and CLI write; anything can query afterwards. All statements are
// parameterized, and the schema is created on Open, so a fresh path is a
// valid store.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/katalvlaran/hodgeflow/matrix"
)

// ErrNotFound reports a missing run or checkpoint.
var ErrNotFound = errors.New("store: not found")

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	family     TEXT    NOT NULL,
	config     TEXT    NOT NULL,
	started_at TEXT    NOT NULL
);
CREATE TABLE IF NOT EXISTS metrics (
	run_id    INTEGER NOT NULL REFERENCES runs(id),
	epoch     INTEGER NOT NULL,
	loss      REAL    NOT NULL,
	train_acc REAL    NOT NULL,
	test_acc  REAL    NOT NULL,
	PRIMARY KEY (run_id, epoch)
);
CREATE TABLE IF NOT EXISTS checkpoints (
	run_id   INTEGER PRIMARY KEY REFERENCES runs(id),
	weights  TEXT    NOT NULL,
	saved_at TEXT    NOT NULL
);`

// Store wraps the experiment database. Safe for concurrent use; database/sql
// serializes access to the single SQLite file.
type Store struct {
	db *sql.DB
}

// Metric is one epoch row of a run.
type Metric struct {
	Epoch    int
	Loss     float64
	TrainAcc float64
	TestAcc  float64
}

// Open creates or opens the store at path and ensures the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store.Open: %w", err)
	}
	if _, err = db.Exec(schema); err != nil {
		db.Close()

		return nil, fmt.Errorf("store.Open: schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// CreateRun registers a training invocation and returns its id. config is an
// opaque serialized snapshot of the run configuration.
func (s *Store) CreateRun(family, config string) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO runs (family, config, started_at) VALUES (?, ?, ?)`,
		family, config, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("CreateRun: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateRun: %w", err)
	}

	return id, nil
}

// LogMetric appends one epoch row to a run.
func (s *Store) LogMetric(runID int64, m Metric) error {
	_, err := s.db.Exec(
		`INSERT INTO metrics (run_id, epoch, loss, train_acc, test_acc) VALUES (?, ?, ?, ?, ?)`,
		runID, m.Epoch, m.Loss, m.TrainAcc, m.TestAcc,
	)
	if err != nil {
		return fmt.Errorf("LogMetric: run %d epoch %d: %w", runID, m.Epoch, err)
	}

	return nil
}

// Metrics returns every epoch row of a run in epoch order.
func (s *Store) Metrics(runID int64) ([]Metric, error) {
	rows, err := s.db.Query(
		`SELECT epoch, loss, train_acc, test_acc FROM metrics WHERE run_id = ? ORDER BY epoch`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("Metrics: run %d: %w", runID, err)
	}
	defer rows.Close()

	var out []Metric
	for rows.Next() {
		var m Metric
		if err = rows.Scan(&m.Epoch, &m.Loss, &m.TrainAcc, &m.TestAcc); err != nil {
			return nil, fmt.Errorf("Metrics: run %d: %w", runID, err)
		}
		out = append(out, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("Metrics: run %d: %w", runID, err)
	}

	return out, nil
}

// SaveCheckpoint stores (or replaces) the weight list of a run as JSON.
func (s *Store) SaveCheckpoint(runID int64, weights []*matrix.Dense) error {
	payload := make([][][]float64, len(weights))
	for wi, w := range weights {
		rows := make([][]float64, w.Rows())
		for i := range rows {
			row, err := w.Row(i)
			if err != nil {
				return fmt.Errorf("SaveCheckpoint: run %d weight %d: %w", runID, wi, err)
			}
			rows[i] = row
		}
		payload[wi] = rows
	}
	blob, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("SaveCheckpoint: run %d: %w", runID, err)
	}

	_, err = s.db.Exec(
		`INSERT INTO checkpoints (run_id, weights, saved_at) VALUES (?, ?, ?)
		 ON CONFLICT(run_id) DO UPDATE SET weights = excluded.weights, saved_at = excluded.saved_at`,
		runID, string(blob), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("SaveCheckpoint: run %d: %w", runID, err)
	}

	return nil
}

// LoadCheckpoint restores a run's weight list.
// Errors: ErrNotFound when the run has no checkpoint.
func (s *Store) LoadCheckpoint(runID int64) ([]*matrix.Dense, error) {
	var blob string
	err := s.db.QueryRow(`SELECT weights FROM checkpoints WHERE run_id = ?`, runID).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("LoadCheckpoint: run %d: %w", runID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("LoadCheckpoint: run %d: %w", runID, err)
	}

	var payload [][][]float64
	if err = json.Unmarshal([]byte(blob), &payload); err != nil {
		return nil, fmt.Errorf("LoadCheckpoint: run %d: %w", runID, err)
	}
	weights := make([]*matrix.Dense, len(payload))
	for wi, rows := range payload {
		if weights[wi], err = matrix.NewDenseFromRows(rows); err != nil {
			return nil, fmt.Errorf("LoadCheckpoint: run %d weight %d: %w", runID, wi, err)
		}
	}

	return weights, nil
}
