package tabular

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/quietbooks/ledgersync/internal/domain/ledger"
)

// WriteSnapshot fully regenerates the JSON snapshot: a pretty-printed array
// of all records, keyed by the ledger's original field spellings. Downstream
// dashboard consumers read this file; it is rewritten on every run, even
// when the tabular ledger is not.
func WriteSnapshot(path string, records []ledger.Record) error {
	if records == nil {
		// An empty ledger snapshots as [], not null.
		records = []ledger.Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return errors.Wrap(err, "unable to marshal snapshot")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "unable to write snapshot %s", path)
	}
	return nil
}

// ReadSnapshot loads a previously written snapshot. Used by the API server;
// the batch pipeline never reads it back.
func ReadSnapshot(path string) ([]ledger.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read snapshot %s", path)
	}
	var records []ledger.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.Wrapf(err, "malformed snapshot %s", path)
	}
	return records, nil
}
