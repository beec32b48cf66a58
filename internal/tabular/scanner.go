// Package tabular reads and writes the delimited text formats the ledger
// pipeline deals with: the self-describing ledger CSV, the fixed-layout
// WeChat export CSV, and the JSON snapshot.
package tabular

import (
	"bufio"
	"encoding/csv"
	"io"

	"github.com/pkg/errors"
)

// Row maps column names to field values for a single data row.
type Row map[string]string

// FixedSchema describes a non-self-describing export layout: a fixed count
// of preamble lines to discard, then data rows whose columns are named
// positionally. Version bumps when the provider changes the layout.
type FixedSchema struct {
	Version   int
	SkipLines int
	Columns   []string
}

// Scanner yields rows one at a time, bufio.Scanner style. The sequence is
// lazy, finite, and non-restartable; callers consume it exactly once.
//
//	sc := tabular.NewScanner(f)
//	for sc.Next() {
//	    row := sc.Row()
//	    ...
//	}
//	if err := sc.Err(); err != nil { ... }
type Scanner struct {
	r       *csv.Reader
	headers []string
	strict  bool // fixed-schema mode: every row must match the column count
	row     Row
	err     error
	done    bool
}

// NewScanner reads header-first tabular data: the first row is the
// authoritative column list, each following row is one record.
func NewScanner(src io.Reader) *Scanner {
	r := csv.NewReader(src)
	r.FieldsPerRecord = -1
	return &Scanner{r: r}
}

// NewFixedScanner reads fixed-layout data: exactly schema.SkipLines raw
// lines are discarded, then schema.Columns is applied positionally to every
// remaining row. A row whose field count differs from the schema is an
// error rather than a silent misalignment.
func NewFixedScanner(src io.Reader, schema FixedSchema) (*Scanner, error) {
	br := bufio.NewReader(src)
	if err := skipLines(br, schema.SkipLines); err != nil {
		return nil, err
	}
	r := csv.NewReader(br)
	r.FieldsPerRecord = -1
	return &Scanner{r: r, headers: schema.Columns, strict: true}, nil
}

func skipLines(br *bufio.Reader, n int) error {
	for i := 0; i < n; i++ {
		if _, err := br.ReadString('\n'); err != nil {
			if err == io.EOF {
				return errors.Errorf("input ended inside the %d-line preamble (line %d)", n, i+1)
			}
			return errors.Wrap(err, "unable to skip preamble")
		}
	}
	return nil
}

// Next advances to the next data row. It returns false at the end of input
// or on the first error; check Err afterwards.
func (s *Scanner) Next() bool {
	if s.done || s.err != nil {
		return false
	}
	fields, err := s.r.Read()
	if err == io.EOF {
		s.done = true
		return false
	}
	if err != nil {
		s.err = errors.Wrap(err, "unable to read row")
		return false
	}

	if s.headers == nil {
		// Header-first mode: first row names the columns.
		s.headers = fields
		return s.Next()
	}
	if s.strict && len(fields) != len(s.headers) {
		s.err = errors.Errorf("row has %d fields, schema expects %d", len(fields), len(s.headers))
		return false
	}

	row := make(Row, len(s.headers))
	for i, name := range s.headers {
		if i < len(fields) {
			row[name] = fields[i]
		}
	}
	s.row = row
	return true
}

// Row returns the current row. Valid only after a true Next.
func (s *Scanner) Row() Row {
	return s.row
}

// Err returns the first error encountered, if any.
func (s *Scanner) Err() error {
	return s.err
}
