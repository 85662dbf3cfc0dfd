package schedule_test

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/ledger-engine/schedule"
	"github.com/warp/ledger-engine/tabular"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoad_HeaderOptionalAndBadRowsSkipped(t *testing.T) {
	// GIVEN: a schedule file with a header, one malformed row, one
	//        out-of-range hour and one inverted shift among valid rows
	content := "nombre_empleado;dia;hora_entrada;hora_salida\n" +
		"María;Lunes;8;16\n" +
		"Juan;Martes;9\n" + // wrong column count
		"Lucía;2025-03-10;07:30;15:00\n" +
		"Diego;Lunes;25;30\n" + // hour out of range
		"Raúl;Lunes;18;10\n" + // exit before entry
		"Ana;miercoles;10;18\n"
	path := filepath.Join(t.TempDir(), "horarios.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	// WHEN: loading
	records, err := schedule.Load(path, discard())

	// THEN: the three valid rows load, the bad ones are skipped
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "María", records[0].Employee)

	// Day labels are normalized: date to weekday name, alias to canonical.
	assert.Equal(t, "Lunes", records[1].Day)
	assert.Equal(t, schedule.Clock{Hour: 7, Minute: 30}, records[1].In)
	assert.Equal(t, "Miércoles", records[2].Day)
}

func TestLoad_NoHeaderTreatsFirstRowAsData(t *testing.T) {
	content := "María;Lunes;8;16\nJuan;Martes;9;17\n"
	path := filepath.Join(t.TempDir(), "horarios.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	records, err := schedule.Load(path, discard())
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestWriteHoursSummary_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resumen_horarios.csv")

	records := []schedule.Record{
		mustRecord(t, "juan", "Lunes", 9, 17),
		mustRecord(t, "Ana", "Lunes", 8, 16),
		mustRecord(t, "Ana", "Martes", 8, 12),
	}
	require.NoError(t, schedule.WriteHoursSummary(records, path))

	rows, err := tabular.Semicolon.ReadRows(path)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"empleado", "horas_totales"}, rows[0].Fields)
	assert.Equal(t, []string{"Ana", "12"}, rows[1].Fields)
	assert.Equal(t, []string{"juan", "8"}, rows[2].Fields)
}

func TestWriteWeeklySummaryAndNameList(t *testing.T) {
	dir := t.TempDir()
	records := week(t)

	weekly := filepath.Join(dir, "resumen_semanal.csv")
	require.NoError(t, schedule.WriteWeeklySummary(records, weekly))
	rows, err := tabular.Semicolon.ReadRows(weekly)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"empleado", "dias_trabajados", "horas_totales"}, rows[0].Fields)
	assert.Equal(t, []string{"Lucía", "3", "20"}, rows[3].Fields)

	list := filepath.Join(dir, "exclusivos_sabado.csv")
	groups := schedule.EmployeesByDay(records)
	require.NoError(t, schedule.WriteNameList(schedule.Diff(groups["Sábado"], groups["Domingo"]), "empleado", list))
	rows, err = tabular.Semicolon.ReadRows(list)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Lucía"}, rows[1].Fields)
}

func TestWriteEmployeeSummary_MatchesWeeklySummary(t *testing.T) {
	dir := t.TempDir()
	records := week(t)

	a := filepath.Join(dir, "a.csv")
	b := filepath.Join(dir, "b.csv")
	require.NoError(t, schedule.WriteWeeklySummary(records, a))
	require.NoError(t, schedule.WriteEmployeeSummary(records, b))

	rowsA, err := tabular.Semicolon.ReadRows(a)
	require.NoError(t, err)
	rowsB, err := tabular.Semicolon.ReadRows(b)
	require.NoError(t, err)
	assert.Equal(t, rowsA, rowsB)
}
