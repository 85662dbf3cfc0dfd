/*
Package tabular reads and writes the delimiter-separated files that back
every ledger table and derived report.

PURPOSE:
  One codec for all tables. Reading yields raw rows with their 1-based line
  numbers so callers can produce useful diagnostics and skip bad rows without
  aborting the whole file. Writing always emits a header row and exactly the
  rows it is given - deterministic ordering is the caller's job (see SortRows).

HEADER DETECTION:
  A header is optional on input. The first row is treated as a header only if
  it matches the expected column names exactly, case-insensitively. Otherwise
  every row, the first included, is data.

STRUCTURAL VALIDATION:
  Row.Require(n) checks the column count for a single row and returns a
  *StructureError naming the offending line and its content. The check is
  per-row on purpose: a load can skip the bad row and keep the rest.

SEE ALSO:
  - ledger: uses this codec for table persistence
  - schedule: uses this codec for the schedule file and report outputs
*/
package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// ErrStructure is the sentinel for column-count mismatches.
var ErrStructure = errors.New("wrong column count")

// StructureError identifies a row whose shape does not match the table.
type StructureError struct {
	Line   int
	Fields []string
	Want   int
	Got    int
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("line %d: expected %d columns, got %d -> %v", e.Line, e.Want, e.Got, e.Fields)
}

func (e *StructureError) Unwrap() error { return ErrStructure }

// Row is a raw data row with its position in the source file.
type Row struct {
	Line   int
	Fields []string
}

// Require validates the column count of the row.
func (r Row) Require(n int) error {
	if len(r.Fields) != n {
		return &StructureError{Line: r.Line, Fields: r.Fields, Want: n, Got: len(r.Fields)}
	}
	return nil
}

// Codec reads and writes one delimited file format.
type Codec struct {
	Delimiter rune
}

// Comma is the codec for the entity tables (clientes/eventos/ventas).
var Comma = Codec{Delimiter: ','}

// Semicolon is the codec for the schedule file and its derived reports.
var Semicolon = Codec{Delimiter: ';'}

// ReadRows reads every non-empty row of the file, trimming cell whitespace.
// Rows may have ragged widths; width validation is per-row via Require.
func (c Codec) ReadRows(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = c.Delimiter
	r.FieldsPerRecord = -1 // widths checked per row, not by the reader

	var rows []Row
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		line, _ := r.FieldPos(0)

		fields := make([]string, len(rec))
		empty := true
		for j, cell := range rec {
			fields[j] = strings.TrimSpace(cell)
			if fields[j] != "" {
				empty = false
			}
		}
		if empty {
			continue
		}
		rows = append(rows, Row{Line: line, Fields: fields})
	}
	return rows, nil
}

// DetectHeader reports whether the first row is a header for the given
// columns. Match is exact and case-insensitive; a matching header should be
// skipped by the caller.
func DetectHeader(rows []Row, columns []string) bool {
	if len(rows) == 0 || len(rows[0].Fields) != len(columns) {
		return false
	}
	for i, col := range columns {
		if !strings.EqualFold(rows[0].Fields[i], col) {
			return false
		}
	}
	return true
}

// Write replaces the file with a header row followed by the given rows.
func (c Codec) Write(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	w.Comma = c.Delimiter

	if err := w.Write(header); err != nil {
		f.Close()
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// SortRows orders rows case-insensitively by the given column, with the raw
// cell value as tiebreaker. Reports depend on this for reproducible output.
func SortRows(rows [][]string, keyIndex int) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i][keyIndex], rows[j][keyIndex]
		la, lb := strings.ToLower(a), strings.ToLower(b)
		if la != lb {
			return la < lb
		}
		return a < b
	})
}
