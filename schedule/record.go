/*
Package schedule holds the schedule ledger: immutable shift records, the
per-employee aggregation used by the summary reports, and the report engine
that derives grouped and filtered views from a record sequence.

PURPOSE:
  A Record is one shift of one employee on one labelled day. Records are
  validated at construction (exit strictly after entry, minute-aware) and
  never mutated afterwards. Everything derived - totals, groups, filters -
  is recomputed from the record sequence, never cached.

SEE ALSO:
  - report.go: pure derivations over []Record
  - file.go: CSV load and report writers
  - roster.go: the menu-variant table keyed by employee name
*/
package schedule

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrShiftOrder is returned when a shift would end at or before it starts.
	ErrShiftOrder = errors.New("shift exit must be after entry")

	// ErrWrongEmployee is returned when a record is attached to an employee
	// it does not belong to.
	ErrWrongEmployee = errors.New("record does not belong to this employee")
)

// =============================================================================
// CLOCK - Hour/minute pair within a day
// =============================================================================

// Clock is a wall-clock instant within a day. The zero minute covers the
// hour-only schedule files.
type Clock struct {
	Hour   int
	Minute int
}

func (c Clock) Before(o Clock) bool {
	if c.Hour != o.Hour {
		return c.Hour < o.Hour
	}
	return c.Minute < o.Minute
}

func (c Clock) String() string { return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute) }

// =============================================================================
// RECORD - One shift, immutable once constructed
// =============================================================================

// Record is a single schedule entry. Construct through NewRecord so the
// entry/exit invariant always holds.
type Record struct {
	Employee string
	Day      string
	In       Clock
	Out      Clock
}

// NewRecord builds a validated record. The exit must be strictly after the
// entry, minutes included.
func NewRecord(employee, day string, in, out Clock) (Record, error) {
	if !in.Before(out) {
		return Record{}, fmt.Errorf("%s %s-%s: %w", employee, in, out, ErrShiftOrder)
	}
	return Record{Employee: employee, Day: day, In: in, Out: out}, nil
}

// Duration returns the shift length in whole hours. The schedule data
// tracks durations at hour granularity; minutes only refine comparisons.
func (r Record) Duration() int { return r.Out.Hour - r.In.Hour }

// =============================================================================
// EMPLOYEE - Aggregation of one employee's records
// =============================================================================

// Employee groups the records of a single employee for the summary report.
type Employee struct {
	Name    string
	Records []Record
}

// Add attaches a record, rejecting records that belong to someone else.
func (e *Employee) Add(r Record) error {
	if r.Employee != e.Name {
		return fmt.Errorf("%q on %q: %w", r.Employee, e.Name, ErrWrongEmployee)
	}
	e.Records = append(e.Records, r)
	return nil
}

// TotalHours sums the duration of every record.
func (e *Employee) TotalHours() int {
	total := 0
	for _, r := range e.Records {
		total += r.Duration()
	}
	return total
}

// DaysWorked counts distinct day labels.
func (e *Employee) DaysWorked() int {
	days := make(map[string]struct{}, len(e.Records))
	for _, r := range e.Records {
		days[r.Day] = struct{}{}
	}
	return len(days)
}

// Row projects the employee summary as an exportable row:
// name, days worked, total hours.
func (e *Employee) Row() []string {
	return []string{e.Name, fmt.Sprint(e.DaysWorked()), fmt.Sprint(e.TotalHours())}
}

// GroupByEmployee partitions records into per-employee aggregates, ordered
// case-insensitively by name.
func GroupByEmployee(records []Record) []*Employee {
	byName := make(map[string]*Employee)
	for _, r := range records {
		emp, ok := byName[r.Employee]
		if !ok {
			emp = &Employee{Name: r.Employee}
			byName[r.Employee] = emp
		}
		// Add cannot fail here: the map key is the record's employee.
		_ = emp.Add(r)
	}

	out := make([]*Employee, 0, len(byName))
	for _, emp := range byName {
		out = append(out, emp)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}
