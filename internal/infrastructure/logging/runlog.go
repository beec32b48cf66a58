package logging

import (
	"fmt"
	"os"
	"sync"

	"github.com/pkg/errors"
)

// RunLog is the per-run trace file: truncated when the run starts, appended
// to at each major step, and closed when the run finishes regardless of
// outcome. It is a scoped resource handed to the pipeline, not process-wide
// state; callers own the Open/Close lifecycle.
//
// The file is human-readable prose, not machine-parsed. On failure it
// receives the full error detail, including the stack carried by wrapped
// errors.
type RunLog struct {
	mu sync.Mutex
	f  *os.File
}

// OpenRunLog creates (or truncates) the run log at path.
func OpenRunLog(path string) (*RunLog, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open run log %s", path)
	}
	return &RunLog{f: f}, nil
}

// Printf appends one formatted line. A nil RunLog discards the line, so
// components can log unconditionally.
func (l *RunLog) Printf(format string, args ...any) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.f, format+"\n", args...)
}

// Fail records full error detail, including the stack trace of wrapped
// errors, under an error banner.
func (l *RunLog) Fail(err error) {
	if l == nil || err == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.f, "\n--- ERROR ---\n%+v\n", err)
}

// Close flushes and closes the log file.
func (l *RunLog) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.f.Close()
}
