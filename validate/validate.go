/*
Package validate contains the pure input validators shared by the ledger
and the schedule engine.

PURPOSE:
  Every raw value entering the system (CSV cell or interactive input) passes
  through one of these functions before a record is constructed. Validators
  never loop, never prompt, never retry - they return a typed error and the
  caller decides what to do with it.

ERROR CONTRACT:
  - Hour/Minute/Clock fail with *RangeError (unwraps ErrRange)
  - Date fails with *FormatError (unwraps ErrFormat)
  - Email is a pure predicate, no error

SEE ALSO:
  - tabular: structural (column count) validation
  - ledger: uniqueness validation at insertion time
*/
package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the canonical calendar date format used by every CSV table.
const DateLayout = "2006-01-02"

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrRange is returned when a numeric value falls outside its domain
	// (hour outside 0-23, minute outside 0-59) or cannot be parsed at all.
	ErrRange = errors.New("value out of range")

	// ErrFormat is returned when a value does not match its expected format
	// (dates, clock strings).
	ErrFormat = errors.New("malformed value")
)

// RangeError reports a value outside its allowed domain.
type RangeError struct {
	Field string
	Value string
	Min   int
	Max   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %q: must be an integer in [%d,%d]", e.Field, e.Value, e.Min, e.Max)
}

func (e *RangeError) Unwrap() error { return ErrRange }

// FormatError reports a value that does not parse under the expected layout.
type FormatError struct {
	Field  string
	Value  string
	Layout string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s %q: expected format %s", e.Field, e.Value, e.Layout)
}

func (e *FormatError) Unwrap() error { return ErrFormat }

// =============================================================================
// TEMPORAL VALIDATORS
// =============================================================================

// Hour parses a raw hour value into [0,23]. Accepts a bare integer ("8")
// or a clock string ("08:30"), in which case the minutes are ignored.
func Hour(raw string) (int, error) {
	v := strings.TrimSpace(raw)
	if i := strings.IndexByte(v, ':'); i >= 0 {
		v = v[:i]
	}
	return bounded("hour", v, 0, 23)
}

// Minute parses a raw minute value into [0,59].
func Minute(raw string) (int, error) {
	return bounded("minute", strings.TrimSpace(raw), 0, 59)
}

// Clock parses "H" or "HH:MM" into an hour and minute pair.
// A missing minute component defaults to zero.
func Clock(raw string) (hour, minute int, err error) {
	v := strings.TrimSpace(raw)
	hpart, mpart, found := strings.Cut(v, ":")
	hour, err = bounded("hour", hpart, 0, 23)
	if err != nil {
		return 0, 0, err
	}
	if !found {
		return hour, 0, nil
	}
	minute, err = bounded("minute", mpart, 0, 59)
	if err != nil {
		return 0, 0, err
	}
	return hour, minute, nil
}

func bounded(field, raw string, min, max int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < min || n > max {
		return 0, &RangeError{Field: field, Value: raw, Min: min, Max: max}
	}
	return n, nil
}

// Date parses a naive calendar date in YYYY-MM-DD. No timezone handling:
// the result is midnight UTC.
func Date(raw string) (time.Time, error) {
	v := strings.TrimSpace(raw)
	t, err := time.Parse(DateLayout, v)
	if err != nil {
		return time.Time{}, &FormatError{Field: "date", Value: raw, Layout: DateLayout}
	}
	return t, nil
}

// =============================================================================
// IDENTITY VALIDATORS
// =============================================================================

// emailPattern is a deliberately simple syntactic check: local@domain.tld.
// It does not verify deliverability.
var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// Email reports whether raw is syntactically a plausible email address.
func Email(raw string) bool {
	return emailPattern.MatchString(strings.TrimSpace(raw))
}

// =============================================================================
// DAY LABELS
// =============================================================================

// The schedule data uses Spanish day names as labels.
var weekdayNames = [7]string{"Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado", "Domingo"}

var dayAliases = map[string]string{
	"lunes":     "Lunes",
	"martes":    "Martes",
	"miercoles": "Miércoles",
	"miércoles": "Miércoles",
	"jueves":    "Jueves",
	"viernes":   "Viernes",
	"sabado":    "Sábado",
	"sábado":    "Sábado",
	"domingo":   "Domingo",
}

// DayLabel normalizes a raw day cell into a canonical day name.
// A value that parses as YYYY-MM-DD maps to its weekday name; a known day
// name (with or without accent, any case) maps to its canonical spelling;
// anything else passes through unchanged.
func DayLabel(raw string) string {
	s := strings.TrimSpace(raw)
	if t, err := time.Parse(DateLayout, s); err == nil {
		// time.Weekday starts on Sunday; the label table starts on Monday.
		return weekdayNames[(int(t.Weekday())+6)%7]
	}
	if canonical, ok := dayAliases[strings.ToLower(s)]; ok {
		return canonical
	}
	return s
}
