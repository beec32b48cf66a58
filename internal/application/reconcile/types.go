// Package reconcile runs the ledger reconciliation pipeline: locate files,
// read the ledger, deduplicate export rows by fingerprint, classify new
// expenses, merge, sort, and rewrite the outputs.
//
// The pipeline is a single-shot, single-threaded batch: it either runs to
// completion or aborts on the first fatal error, and every read and all
// merge logic finish before the first destructive write.
package reconcile

import (
	"log/slog"

	"github.com/quietbooks/ledgersync/internal/infrastructure/config"
	"github.com/quietbooks/ledgersync/internal/infrastructure/storage"
)

// Result summarizes a completed run.
type Result struct {
	LedgerFile      string `json:"ledger_file"`
	NewCount        int    `json:"new_count"`
	TotalCount      int    `json:"total_count"`
	LedgerRewritten bool   `json:"ledger_rewritten"`
}

// Pipeline runs the reconciliation. The store may be nil, which disables
// run-history recording.
type Pipeline struct {
	cfg    *config.Config
	store  *storage.Store
	logger *slog.Logger
}

// New creates a pipeline.
func New(cfg *config.Config, store *storage.Store, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		cfg:    cfg,
		store:  store,
		logger: logger,
	}
}
