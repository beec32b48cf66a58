package reconcile

import (
	"sort"
	"time"

	"github.com/quietbooks/ledgersync/internal/domain/ledger"
)

// sortByDate orders records ascending by calendar date, reparsed from the
// long-form 购买日期 text. The stored text is never rewritten; only record
// order changes. Ties break by insertion order (existing rows before new
// rows, each keeping input order) via the stable sort; there is no
// secondary key.
func sortByDate(records []ledger.Record) error {
	dates := make([]time.Time, len(records))
	for i, rec := range records {
		t, err := ledger.ParseDate(rec.PurchaseDate)
		if err != nil {
			return err
		}
		dates[i] = t
	}

	idx := make([]int, len(records))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return dates[idx[i]].Before(dates[idx[j]])
	})

	sorted := make([]ledger.Record, len(records))
	for out, in := range idx {
		sorted[out] = records[in]
	}
	copy(records, sorted)
	return nil
}
