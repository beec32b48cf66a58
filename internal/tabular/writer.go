package tabular

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/quietbooks/ledgersync/internal/domain/ledger"
)

// WriteLedger serializes records as the tabular ledger: the fixed
// seven-column header, then one row per record in input order.
func WriteLedger(w io.Writer, records []ledger.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ledger.Columns); err != nil {
		return errors.Wrap(err, "unable to write ledger header")
	}
	for _, rec := range records {
		if err := cw.Write(rec.Row()); err != nil {
			return errors.Wrap(err, "unable to write ledger row")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "unable to flush ledger")
}

// WriteLedgerFile overwrites the ledger file in place with the given
// records. The whole file is rewritten from memory; there are no
// incremental writes.
func WriteLedgerFile(path string, records []ledger.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "unable to overwrite ledger %s", path)
	}
	if err := WriteLedger(f, records); err != nil {
		f.Close()
		return err
	}
	return errors.Wrapf(f.Close(), "unable to close ledger %s", path)
}
