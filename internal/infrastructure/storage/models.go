package storage

import "time"

// Run status values.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// RunRecord is one recorded reconcile run.
type RunRecord struct {
	ID              string    `json:"id"`
	StartedAt       time.Time `json:"started_at"`
	FinishedAt      time.Time `json:"finished_at"`
	Status          string    `json:"status"`
	NewCount        int       `json:"new_count"`
	TotalCount      int       `json:"total_count"`
	LedgerRewritten bool      `json:"ledger_rewritten"`
	ErrorMessage    string    `json:"error_message,omitempty"`
}

// RunStats aggregates the run history.
type RunStats struct {
	TotalRuns       int `json:"total_runs"`
	SuccessCount    int `json:"success_count"`
	FailedCount     int `json:"failed_count"`
	TotalNewRecords int `json:"total_new_records"`
	RewriteCount    int `json:"rewrite_count"`
}
