package reconcile

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// LocateLedger finds the single ledger file in dir matching prefix*.csv.
// Zero candidates or more than one is an error; the pipeline refuses to
// guess which file is the ledger.
func LocateLedger(dir, prefix string) (string, error) {
	matches, err := matchCSV(dir, prefix)
	if err != nil {
		return "", err
	}
	switch len(matches) {
	case 0:
		return "", errors.Errorf("no ledger file found starting with %q in %s", prefix, dir)
	case 1:
		return matches[0], nil
	default:
		return "", errors.Errorf("found %d ledger files starting with %q in %s; keep exactly one", len(matches), prefix, dir)
	}
}

// LocateExports finds the provider export files in dir matching prefix*.csv,
// in directory-listing order. Zero matches is a valid degenerate run.
func LocateExports(dir, prefix string) ([]string, error) {
	return matchCSV(dir, prefix)
}

func matchCSV(dir, prefix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to list directory %s", dir)
	}
	var matches []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, prefix) && strings.HasSuffix(name, ".csv") {
			matches = append(matches, filepath.Join(dir, name))
		}
	}
	return matches, nil
}
