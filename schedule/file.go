/*
file.go - Schedule CSV ingestion and derived report output

PURPOSE:
  The schedule file is semicolon-delimited with columns
  nombre_empleado;dia;hora_entrada;hora_salida. Hours accept "8" or "08:30"
  forms. The header row is optional. Rows that fail structural or value
  validation are skipped with a diagnostic; the load never aborts on a bad
  row.

  The writers produce the derived report files: every report has a fixed
  header and rows sorted case-insensitively by employee name.
*/
package schedule

import (
	"fmt"
	"log/slog"

	"github.com/warp/ledger-engine/tabular"
	"github.com/warp/ledger-engine/validate"
)

// Columns is the expected schedule file header.
var Columns = []string{"nombre_empleado", "dia", "hora_entrada", "hora_salida"}

// Load reads and validates the schedule file. Each row is parsed
// independently: a bad row is logged and skipped, the rest still load.
func Load(path string, logger *slog.Logger) ([]Record, error) {
	rows, err := tabular.Semicolon.ReadRows(path)
	if err != nil {
		return nil, err
	}
	if tabular.DetectHeader(rows, Columns) {
		rows = rows[1:]
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		r, err := decodeRow(row)
		if err != nil {
			logger.Warn("schedule row skipped", "file", path, "line", row.Line, "row", row.Fields, "err", err)
			continue
		}
		records = append(records, r)
	}
	return records, nil
}

func decodeRow(row tabular.Row) (Record, error) {
	if err := row.Require(len(Columns)); err != nil {
		return Record{}, err
	}

	inHour, inMin, err := validate.Clock(row.Fields[2])
	if err != nil {
		return Record{}, fmt.Errorf("hora_entrada: %w", err)
	}
	outHour, outMin, err := validate.Clock(row.Fields[3])
	if err != nil {
		return Record{}, fmt.Errorf("hora_salida: %w", err)
	}

	return NewRecord(
		row.Fields[0],
		validate.DayLabel(row.Fields[1]),
		Clock{Hour: inHour, Minute: inMin},
		Clock{Hour: outHour, Minute: outMin},
	)
}

// =============================================================================
// REPORT WRITERS
// =============================================================================

// WriteHoursSummary writes empleado;horas_totales.
func WriteHoursSummary(records []Record, path string) error {
	totals := HoursByEmployee(records)
	rows := make([][]string, 0, len(totals))
	for name, hours := range totals {
		rows = append(rows, []string{name, fmt.Sprint(hours)})
	}
	tabular.SortRows(rows, 0)
	return tabular.Semicolon.Write(path, []string{"empleado", "horas_totales"}, rows)
}

// WriteEarlyArrivals writes empleado;hora_entrada for entries strictly
// before the reference hour.
func WriteEarlyArrivals(records []Record, refHour int, path string) error {
	arrivals := EarlyArrivals(records, refHour)
	rows := make([][]string, 0, len(arrivals))
	for _, a := range arrivals {
		rows = append(rows, []string{a.Employee, fmt.Sprint(a.Hour)})
	}
	return tabular.Semicolon.Write(path, []string{"empleado", "hora_entrada"}, rows)
}

// WriteNameList writes a single-column list of names under the given header.
func WriteNameList(names EmployeeSet, header, path string) error {
	rows := make([][]string, 0, len(names))
	for _, n := range names.Sorted() {
		rows = append(rows, []string{n})
	}
	return tabular.Semicolon.Write(path, []string{header}, rows)
}

// WriteWeeklySummary writes empleado;dias_trabajados;horas_totales.
func WriteWeeklySummary(records []Record, path string) error {
	rows := make([][]string, 0)
	for _, s := range WeeklySummary(records) {
		rows = append(rows, []string{s.Employee, fmt.Sprint(s.Days), fmt.Sprint(s.Hours)})
	}
	return tabular.Semicolon.Write(path, []string{"empleado", "dias_trabajados", "horas_totales"}, rows)
}

// WriteEmployeeSummary writes the per-employee aggregate rows
// (empleado;dias_trabajados;horas_totales) computed through the Employee
// aggregation rather than the flat maps.
func WriteEmployeeSummary(records []Record, path string) error {
	employees := GroupByEmployee(records)
	rows := make([][]string, 0, len(employees))
	for _, e := range employees {
		rows = append(rows, e.Row())
	}
	return tabular.Semicolon.Write(path, []string{"empleado", "dias_trabajados", "horas_totales"}, rows)
}
