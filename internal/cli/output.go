// Package cli holds console output helpers shared by the commands.
package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/quietbooks/ledgersync/internal/application/reconcile"
)

// PrintRunSummary prints the end-of-run summary for a successful run.
func PrintRunSummary(res *reconcile.Result) {
	fmt.Println(strings.Repeat("-", 60))
	if res.NewCount == 0 {
		fmt.Println("Processing complete. No new transactions were found to add.")
		fmt.Printf("  - %s left untouched.\n", filepath.Base(res.LedgerFile))
	} else {
		fmt.Println("Processing complete.")
		fmt.Printf("  - Added %d new transactions.\n", res.NewCount)
		fmt.Printf("  - %s has been updated and sorted.\n", filepath.Base(res.LedgerFile))
	}
	fmt.Printf("  - Total records are now %d.\n", res.TotalCount)
}

// PrintRunError prints the user-facing error summary. Full detail lives in
// the run log.
func PrintRunError(err error, runLogFile string) {
	fmt.Printf("An error occurred: %v\n", err)
	fmt.Printf("Full detail written to %s.\n", runLogFile)
}
