/*
table.go - One in-memory table with an id index and a CSV backing file

PURPOSE:
  A Table owns the authoritative in-memory collection for one entity kind:
  an ordered slice (insertion order preserved for listing) plus an id index.
  All file I/O for the kind goes through here.

PERSISTENCE CONTRACT:
  - Load: missing file is NOT an error, it yields an empty table with a
    diagnostic. Rows are decoded independently; a row that fails
    validation is logged and skipped - partial-failure semantics, never
    all-or-nothing.
  - Add: assigns the next id, appends, then immediately rewrites the FULL
    file, so after any successful Add the file matches memory. O(n) per
    insertion, accepted for this store's scale.
  - Save: full rewrite with a header, fixed column order and a
    deterministic case-insensitive sort by the entity's label (id as
    tiebreaker).

CONCURRENCY:
  Single process, single goroutine. Concurrent writers would race on
  NextID and on the rewrite; that is a documented precondition, not a
  defect this store defends against.
*/
package ledger

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/warp/ledger-engine/tabular"
)

// Kind tags one entity table. Dispatch is by typed constant, never by raw
// string comparison.
type Kind string

const (
	KindClient Kind = "clientes"
	KindEvent  Kind = "eventos"
	KindSale   Kind = "ventas"
)

// File returns the backing file name for the kind.
func (k Kind) File() string { return string(k) + ".csv" }

// Spec describes how one entity kind maps onto its table: column layout,
// codec callbacks and the optional insertion-time validation hook.
type Spec[E any] struct {
	Kind    Kind
	Columns []string

	ID     func(E) int
	WithID func(E, int) E
	Label  func(E) string

	Encode func(E) []string
	Decode func(tabular.Row) (E, error)

	// CheckAdd runs before an id is assigned; existing holds the current
	// table contents. Used for the client email uniqueness rule.
	CheckAdd func(candidate E, existing []E) error
}

// Table is the in-memory table for one entity kind.
type Table[E any] struct {
	spec   Spec[E]
	path   string
	logger *slog.Logger

	items []E
	index map[int]E
}

// NewTable builds an empty table backed by dir/<kind>.csv.
func NewTable[E any](dir string, spec Spec[E], logger *slog.Logger) *Table[E] {
	return &Table[E]{
		spec:   spec,
		path:   filepath.Join(dir, spec.Kind.File()),
		logger: logger,
		index:  make(map[int]E),
	}
}

// Kind returns the table's entity kind.
func (t *Table[E]) Kind() Kind { return t.spec.Kind }

// Load replaces the in-memory table with the file contents. Each row is
// decoded independently: bad rows are logged and skipped.
func (t *Table[E]) Load() error {
	t.items = nil
	t.index = make(map[int]E)

	rows, err := tabular.Comma.ReadRows(t.path)
	if os.IsNotExist(err) {
		t.logger.Info("backing file not found, table starts empty", "kind", string(t.spec.Kind), "file", t.path)
		return nil
	}
	if err != nil {
		return err
	}
	if tabular.DetectHeader(rows, t.spec.Columns) {
		rows = rows[1:]
	}

	for _, row := range rows {
		e, err := t.spec.Decode(row)
		if err != nil {
			t.logger.Warn("row skipped", "kind", string(t.spec.Kind), "line", row.Line, "row", row.Fields, "err", err)
			continue
		}
		t.items = append(t.items, e)
		t.index[t.spec.ID(e)] = e
	}
	return nil
}

// All returns the entities in insertion order.
func (t *Table[E]) All() []E {
	out := make([]E, len(t.items))
	copy(out, t.items)
	return out
}

// Get looks an entity up by id.
func (t *Table[E]) Get(id int) (E, bool) {
	e, ok := t.index[id]
	return e, ok
}

// Len returns the number of entities in the table.
func (t *Table[E]) Len() int { return len(t.items) }

// NextID returns 1 for an empty table, max(existing ids)+1 otherwise.
func (t *Table[E]) NextID() int {
	max := 0
	for id := range t.index {
		if id > max {
			max = id
		}
	}
	return max + 1
}

// Add assigns an id to the candidate, appends it and immediately persists
// the full table. The returned entity carries the assigned id.
func (t *Table[E]) Add(candidate E) (E, error) {
	var zero E
	if t.spec.CheckAdd != nil {
		if err := t.spec.CheckAdd(candidate, t.items); err != nil {
			return zero, err
		}
	}

	e := t.spec.WithID(candidate, t.NextID())
	t.items = append(t.items, e)
	t.index[t.spec.ID(e)] = e

	if err := t.Save(); err != nil {
		return zero, fmt.Errorf("persisting %s: %w", t.spec.Kind, err)
	}
	return e, nil
}

// Save rewrites the backing file from memory: header, fixed column order,
// rows sorted case-insensitively by label with id as tiebreaker.
func (t *Table[E]) Save() error {
	ordered := make([]E, len(t.items))
	copy(ordered, t.items)
	sort.SliceStable(ordered, func(i, j int) bool {
		a := strings.ToLower(t.spec.Label(ordered[i]))
		b := strings.ToLower(t.spec.Label(ordered[j]))
		if a != b {
			return a < b
		}
		return t.spec.ID(ordered[i]) < t.spec.ID(ordered[j])
	})

	rows := make([][]string, len(ordered))
	for i, e := range ordered {
		rows[i] = t.spec.Encode(e)
	}
	return tabular.Comma.Write(t.path, t.spec.Columns, rows)
}
