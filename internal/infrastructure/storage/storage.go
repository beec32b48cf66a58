// Package storage records reconcile run history in SQLite.
//
// Run history is observability, not ledger state: the ledger CSV and the
// JSON snapshot remain the only data files, and a nil *Store disables
// recording entirely.
package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS reconcile_runs (
	id TEXT PRIMARY KEY,
	started_at TIMESTAMP NOT NULL,
	finished_at TIMESTAMP NOT NULL,
	status TEXT NOT NULL,
	new_count INTEGER NOT NULL DEFAULT 0,
	total_count INTEGER NOT NULL DEFAULT 0,
	ledger_rewritten BOOLEAN NOT NULL DEFAULT 0,
	error_message TEXT NOT NULL DEFAULT ''
);
`

// Store provides SQLite access to the run history.
type Store struct {
	db *sql.DB
}

// NewStore opens (creating if necessary) the run-history database.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize run-history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun persists one run record.
func (s *Store) SaveRun(run *RunRecord) error {
	query := `
	INSERT OR REPLACE INTO reconcile_runs
	(id, started_at, finished_at, status, new_count, total_count, ledger_rewritten, error_message)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.Exec(query,
		run.ID,
		run.StartedAt,
		run.FinishedAt,
		run.Status,
		run.NewCount,
		run.TotalCount,
		run.LedgerRewritten,
		run.ErrorMessage,
	)
	return err
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
	SELECT id, started_at, finished_at, status, new_count, total_count, ledger_rewritten, error_message
	FROM reconcile_runs
	ORDER BY started_at DESC
	LIMIT ?
	`
	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var run RunRecord
		if err := rows.Scan(
			&run.ID,
			&run.StartedAt,
			&run.FinishedAt,
			&run.Status,
			&run.NewCount,
			&run.TotalCount,
			&run.LedgerRewritten,
			&run.ErrorMessage,
		); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetStats returns aggregate run statistics.
func (s *Store) GetStats() (*RunStats, error) {
	query := `
	SELECT
		COUNT(*),
		COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(new_count), 0),
		COALESCE(SUM(CASE WHEN ledger_rewritten THEN 1 ELSE 0 END), 0)
	FROM reconcile_runs
	`
	stats := &RunStats{}
	err := s.db.QueryRow(query, StatusSuccess, StatusFailed).Scan(
		&stats.TotalRuns,
		&stats.SuccessCount,
		&stats.FailedCount,
		&stats.TotalNewRecords,
		&stats.RewriteCount,
	)
	if err != nil {
		return nil, err
	}
	return stats, nil
}
