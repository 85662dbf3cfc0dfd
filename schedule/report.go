/*
report.go - Derived views over a record sequence

PURPOSE:
  Pure functions only. Each one traverses a []Record (or groups derived from
  it) and returns a new structure; nothing here mutates records or touches
  the filesystem.

DETERMINISM:
  Wherever an ordered result is returned, names sort case-insensitively so
  report output is reproducible run to run.

BOUNDARY RULE:
  WorkingAt uses the containment rule of the source data, which is
  asymmetric on purpose: the open interior compares hours only, while each
  endpoint is inclusive with its own minute comparison. Do not "fix" it to a
  symmetric interval - downstream reports depend on the observed behavior.
*/
package schedule

import (
	"sort"
	"strings"
)

// EmployeeSet is a set of employee names.
type EmployeeSet map[string]struct{}

// Sorted returns the members ordered case-insensitively.
func (s EmployeeSet) Sorted() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := strings.ToLower(names[i]), strings.ToLower(names[j])
		if a != b {
			return a < b
		}
		return names[i] < names[j]
	})
	return names
}

// Intersect returns the employees present in both sets.
func Intersect(a, b EmployeeSet) EmployeeSet {
	out := EmployeeSet{}
	for n := range a {
		if _, ok := b[n]; ok {
			out[n] = struct{}{}
		}
	}
	return out
}

// Diff returns the employees present in a but not in b.
func Diff(a, b EmployeeSet) EmployeeSet {
	out := EmployeeSet{}
	for n := range a {
		if _, ok := b[n]; !ok {
			out[n] = struct{}{}
		}
	}
	return out
}

// Union returns the employees present in either set.
func Union(a, b EmployeeSet) EmployeeSet {
	out := EmployeeSet{}
	for n := range a {
		out[n] = struct{}{}
	}
	for n := range b {
		out[n] = struct{}{}
	}
	return out
}

// =============================================================================
// GROUPING
// =============================================================================

// EmployeesByDay partitions records into day label -> employees present.
func EmployeesByDay(records []Record) map[string]EmployeeSet {
	groups := make(map[string]EmployeeSet)
	for _, r := range records {
		set, ok := groups[r.Day]
		if !ok {
			set = EmployeeSet{}
			groups[r.Day] = set
		}
		set[r.Employee] = struct{}{}
	}
	return groups
}

// PresentEveryDay intersects all day groups: the employees present on every
// day that appears in the data. Empty input yields an empty set.
func PresentEveryDay(groups map[string]EmployeeSet) EmployeeSet {
	out := EmployeeSet{}
	first := true
	for _, set := range groups {
		if first {
			for n := range set {
				out[n] = struct{}{}
			}
			first = false
			continue
		}
		out = Intersect(out, set)
	}
	return out
}

// =============================================================================
// PER-EMPLOYEE AGGREGATES
// =============================================================================

// HoursByEmployee sums shift durations per employee.
func HoursByEmployee(records []Record) map[string]int {
	totals := make(map[string]int)
	for _, r := range records {
		totals[r.Employee] += r.Duration()
	}
	return totals
}

// DaysByEmployee counts distinct day labels per employee.
func DaysByEmployee(records []Record) map[string]int {
	days := make(map[string]map[string]struct{})
	for _, r := range records {
		if days[r.Employee] == nil {
			days[r.Employee] = make(map[string]struct{})
		}
		days[r.Employee][r.Day] = struct{}{}
	}
	counts := make(map[string]int, len(days))
	for name, set := range days {
		counts[name] = len(set)
	}
	return counts
}

// SummaryRow combines the per-employee aggregates for the weekly report.
type SummaryRow struct {
	Employee string
	Days     int
	Hours    int
}

// WeeklySummary returns one row per employee, sorted case-insensitively by
// name for deterministic output.
func WeeklySummary(records []Record) []SummaryRow {
	hours := HoursByEmployee(records)
	days := DaysByEmployee(records)

	names := make(EmployeeSet, len(hours))
	for n := range hours {
		names[n] = struct{}{}
	}
	for n := range days {
		names[n] = struct{}{}
	}

	rows := make([]SummaryRow, 0, len(names))
	for _, n := range names.Sorted() {
		rows = append(rows, SummaryRow{Employee: n, Days: days[n], Hours: hours[n]})
	}
	return rows
}

// =============================================================================
// FILTERS
// =============================================================================

// Arrival is an employee with an entry hour, for the early-arrivals report.
type Arrival struct {
	Employee string
	Hour     int
}

// EarlyArrivals returns the employees whose entry is strictly before the
// reference hour. An employee appearing several times keeps the first-seen
// entry hour. Sorted case-insensitively by name.
func EarlyArrivals(records []Record, refHour int) []Arrival {
	seen := make(map[string]int)
	order := EmployeeSet{}
	for _, r := range records {
		if r.In.Hour >= refHour {
			continue
		}
		if _, ok := seen[r.Employee]; !ok {
			seen[r.Employee] = r.In.Hour
			order[r.Employee] = struct{}{}
		}
	}

	out := make([]Arrival, 0, len(seen))
	for _, n := range order.Sorted() {
		out = append(out, Arrival{Employee: n, Hour: seen[n]})
	}
	return out
}

// WorkingAt returns the records whose shift contains the reference instant.
//
// Containment: entry.Hour < ref.Hour < exit.Hour, or the reference sits on
// the entry hour with entry minutes <= reference minutes, or on the exit
// hour with exit minutes >= reference minutes. Both endpoints inclusive,
// interior compared on hours alone.
func WorkingAt(records []Record, ref Clock) []Record {
	var out []Record
	for _, r := range records {
		switch {
		case r.In.Hour < ref.Hour && ref.Hour < r.Out.Hour:
			out = append(out, r)
		case ref.Hour == r.In.Hour && r.In.Minute <= ref.Minute:
			out = append(out, r)
		case ref.Hour == r.Out.Hour && r.Out.Minute >= ref.Minute:
			out = append(out, r)
		}
	}
	return out
}

// AllShiftsAtLeast returns the employees all of whose shifts last at least
// the given number of hours. Employees with no records are not included.
func AllShiftsAtLeast(records []Record, hours int) EmployeeSet {
	failed := EmployeeSet{}
	seen := EmployeeSet{}
	for _, r := range records {
		seen[r.Employee] = struct{}{}
		if r.Duration() < hours {
			failed[r.Employee] = struct{}{}
		}
	}
	return Diff(seen, failed)
}

// CountInAtOrBefore counts records whose entry hour is at or before the
// reference hour.
func CountInAtOrBefore(records []Record, refHour int) int {
	count := 0
	for _, r := range records {
		if r.In.Hour <= refHour {
			count++
		}
	}
	return count
}

// EarliestOut returns the record with the earliest exit, minute-aware.
// ok is false when there are no records.
func EarliestOut(records []Record) (Record, bool) {
	if len(records) == 0 {
		return Record{}, false
	}
	best := records[0]
	for _, r := range records[1:] {
		if r.Out.Before(best.Out) {
			best = r
		}
	}
	return best, true
}
