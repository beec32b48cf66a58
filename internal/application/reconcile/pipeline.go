package reconcile

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/quietbooks/ledgersync/internal/domain/classifier"
	"github.com/quietbooks/ledgersync/internal/domain/fingerprint"
	"github.com/quietbooks/ledgersync/internal/domain/ledger"
	"github.com/quietbooks/ledgersync/internal/infrastructure/logging"
	"github.com/quietbooks/ledgersync/internal/infrastructure/storage"
	"github.com/quietbooks/ledgersync/internal/tabular"
)

// Run executes one reconciliation. The run log is opened (truncating) at
// the start and closed when the run finishes, success or not. The outcome
// is recorded in the run history when a store is configured; a history
// write failure never fails the run itself.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	started := time.Now()

	runlog, err := logging.OpenRunLog(p.workspacePath(p.cfg.Output.RunLogFile))
	if err != nil {
		return nil, err
	}
	defer runlog.Close()

	runlog.Printf("--- Starting Execution ---")
	res, err := p.run(runlog)

	p.recordRun(started, res, err)

	if err != nil {
		runlog.Fail(err)
		return nil, err
	}
	return res, nil
}

// run is the pipeline body. Any error returned here aborts the run before
// the ledger file is touched.
func (p *Pipeline) run(runlog *logging.RunLog) (*Result, error) {
	ws := p.cfg.Workspace

	ledgerPath, err := LocateLedger(ws.Dir, ws.LedgerPrefix)
	if err != nil {
		return nil, err
	}
	runlog.Printf("- Found main ledger file: %s", filepath.Base(ledgerPath))

	rules, err := classifier.LoadRules(p.workspacePath(ws.RulesFile))
	if err != nil {
		return nil, err
	}

	existing, seen, err := p.readLedger(ledgerPath)
	if err != nil {
		return nil, err
	}
	runlog.Printf("- Loaded %d existing records (%d fingerprints)", len(existing), len(seen))

	exportFiles, err := LocateExports(ws.Dir, ws.ExportPrefix)
	if err != nil {
		return nil, err
	}

	snapshotPath := p.workspacePath(p.cfg.Output.SnapshotFile)
	if len(exportFiles) == 0 {
		p.logger.Info("No new export files to process")
		runlog.Printf("- No export files found; refreshing snapshot only")
		if err := tabular.WriteSnapshot(snapshotPath, existing); err != nil {
			return nil, err
		}
		return &Result{LedgerFile: ledgerPath, TotalCount: len(existing)}, nil
	}

	var fresh []ledger.Record
	for _, file := range exportFiles {
		added, err := p.readExport(file, rules, seen)
		if err != nil {
			return nil, err
		}
		runlog.Printf("- Processed %s: %d new transactions", filepath.Base(file), len(added))
		fresh = append(fresh, added...)
	}

	if len(fresh) == 0 {
		p.logger.Info("No new transactions found")
		runlog.Printf("- All export rows already in ledger; refreshing snapshot only")
		if err := tabular.WriteSnapshot(snapshotPath, existing); err != nil {
			return nil, err
		}
		return &Result{LedgerFile: ledgerPath, TotalCount: len(existing)}, nil
	}

	combined := make([]ledger.Record, 0, len(existing)+len(fresh))
	combined = append(combined, existing...)
	combined = append(combined, fresh...)
	if err := sortByDate(combined); err != nil {
		return nil, err
	}

	// All reads and merge logic are done; the destructive writes start here.
	if err := tabular.WriteLedgerFile(ledgerPath, combined); err != nil {
		return nil, err
	}
	runlog.Printf("- Overwrote %s with sorted data", filepath.Base(ledgerPath))

	if err := tabular.WriteSnapshot(snapshotPath, combined); err != nil {
		return nil, err
	}
	runlog.Printf("- Generated %s with %d total records", p.cfg.Output.SnapshotFile, len(combined))

	return &Result{
		LedgerFile:      ledgerPath,
		NewCount:        len(fresh),
		TotalCount:      len(combined),
		LedgerRewritten: true,
	}, nil
}

// readLedger loads all existing records into memory and seeds the
// fingerprint set from them. The merchant for fingerprinting comes from
// 备注, falling back to 所购商品 for older ledger schemas.
func (p *Pipeline) readLedger(path string) ([]ledger.Record, fingerprint.Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "unable to open ledger %s", path)
	}
	defer f.Close()

	seen := fingerprint.NewSet()
	var records []ledger.Record

	sc := tabular.NewScanner(f)
	for sc.Next() {
		row := sc.Row()
		amount, err := ledger.ParseAmount(row[ledger.ColAmount])
		if err != nil {
			return nil, nil, errors.Wrapf(err, "ledger row %d", len(records)+1)
		}
		records = append(records, ledger.Record{
			Product:      row[ledger.ColProduct],
			Quantity:     row[ledger.ColQuantity],
			PurchaseDate: row[ledger.ColDate],
			Amount:       amount,
			Category:     row[ledger.ColCategory],
			Note:         row[ledger.ColNote],
			Platform:     row[ledger.ColPlatform],
		})

		merchant := row[ledger.ColNote]
		if merchant == "" {
			merchant = row[ledger.ColProduct]
		}
		seen.Add(fingerprint.Key(row[ledger.ColDate], amount.Decimal(), merchant))
	}
	if err := sc.Err(); err != nil {
		return nil, nil, errors.Wrapf(err, "unable to read ledger %s", path)
	}
	return records, seen, nil
}

// readExport parses one WeChat export, keeps expense rows that are not in
// the fingerprint set yet, classifies them, and adds their keys to the set
// so duplicates across export files collapse too.
func (p *Pipeline) readExport(path string, rules []classifier.Rule, seen fingerprint.Set) ([]ledger.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open export %s", path)
	}
	defer f.Close()

	sc, err := tabular.NewFixedScanner(f, wechatSchema())
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read export %s", path)
	}

	var fresh []ledger.Record
	for sc.Next() {
		row := sc.Row()
		// The embedded header line and non-expense rows (income, transfers)
		// fall out here.
		if row[exportColTime] == "" || row[exportColDirection] != directionExpense {
			continue
		}

		amount, err := ledger.ParseAmount(row[exportColAmount])
		if err != nil {
			return nil, errors.Wrapf(err, "export %s", path)
		}
		when, err := ledger.ParseExportTime(row[exportColTime])
		if err != nil {
			return nil, errors.Wrapf(err, "export %s", path)
		}
		date := ledger.FormatDate(when)
		merchant := row[exportColMerchant]

		key := fingerprint.Key(date, amount.Decimal(), merchant)
		if seen.Has(key) {
			p.logger.Debug("Skipping duplicate transaction",
				"date", date,
				"amount", amount.String(),
				"merchant", merchant,
			)
			continue
		}
		seen.Add(key)

		labels := classifier.Classify(rules, merchant, row[exportColItem])
		fresh = append(fresh, ledger.Record{
			Product:      labels.Product,
			Quantity:     "",
			PurchaseDate: date,
			Amount:       amount.Abs(),
			Category:     labels.Category,
			Note:         merchant,
			Platform:     labels.Platform,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "unable to read export %s", path)
	}
	return fresh, nil
}

// recordRun persists the run outcome to the run history, best effort.
func (p *Pipeline) recordRun(started time.Time, res *Result, runErr error) {
	if p.store == nil {
		return
	}
	run := &storage.RunRecord{
		ID:         uuid.NewString(),
		StartedAt:  started,
		FinishedAt: time.Now(),
		Status:     storage.StatusSuccess,
	}
	if runErr != nil {
		run.Status = storage.StatusFailed
		run.ErrorMessage = runErr.Error()
	}
	if res != nil {
		run.NewCount = res.NewCount
		run.TotalCount = res.TotalCount
		run.LedgerRewritten = res.LedgerRewritten
	}
	if err := p.store.SaveRun(run); err != nil {
		p.logger.Warn("Failed to record run history", "error", err)
	}
}

// workspacePath resolves a configured file name against the workspace dir.
func (p *Pipeline) workspacePath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(p.cfg.Workspace.Dir, name)
}
