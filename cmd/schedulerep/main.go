/*
main.go - Schedule report pipeline

PURPOSE:
  Batch companion to ticketctl. Reads the weekly schedule CSV, prints the
  attendance analysis to stdout and writes the derived report files into
  the report directory.

PIPELINE:
  1. Parse command-line flags (defaults come from package config)
  2. Load the schedule CSV, skipping rows that fail validation
  3. Print attendance groupings and shift queries
  4. Write the report CSVs

COMMAND-LINE FLAGS:
  -in      schedule CSV path (default: config ScheduleFile)
  -out     report directory (default: config ReportDir)
  -ref     reference hour for the early-arrivals report (default: config
           ReferenceHour)
  -roster  JSON roster path (default: config RosterFile)
  -at      "HH:MM" instant; when set, the run only answers who in the
           roster is working at that instant and skips the CSV pipeline

OUTPUT FILES:
  resumen_horarios.csv    hours per employee
  madrugadores.csv        arrivals strictly before the reference hour
  en_dos_dias.csv         employees present on both Lunes and Viernes
  exclusivos_sabado.csv   employees on Sábado but not Domingo
  resumen_semanal.csv     days and hours per employee

SEE ALSO:
  - schedule/report.go: Set algebra and shift queries
  - schedule/file.go: CSV decoding and report writers
*/
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/warp/ledger-engine/config"
	"github.com/warp/ledger-engine/schedule"
	"github.com/warp/ledger-engine/validate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Flags
	in := flag.String("in", cfg.ScheduleFile, "schedule CSV path")
	out := flag.String("out", cfg.ReportDir, "report directory")
	ref := flag.Int("ref", cfg.ReferenceHour, "reference hour for early arrivals")
	rosterPath := flag.String("roster", cfg.RosterFile, "JSON roster path")
	at := flag.String("at", "", `instant "HH:MM" to query the roster instead of running the pipeline`)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if *at != "" {
		if err := queryRoster(*rosterPath, *at, logger); err != nil {
			logger.Error("roster query", "err", err)
			os.Exit(1)
		}
		return
	}

	records, err := schedule.Load(*in, logger)
	if err != nil {
		logger.Error("loading schedule", "path", *in, "err", err)
		os.Exit(1)
	}
	if len(records) == 0 {
		logger.Warn("no usable schedule rows", "path", *in)
	}

	printAnalysis(records, *ref)

	if err := os.MkdirAll(*out, 0o755); err != nil {
		logger.Error("creating report directory", "err", err)
		os.Exit(1)
	}
	if err := writeReports(records, *ref, *out); err != nil {
		logger.Error("writing reports", "err", err)
		os.Exit(1)
	}
	logger.Info("reports written", "dir", *out)
}

// queryRoster answers "who is working at HH:MM" from the JSON roster.
func queryRoster(path, at string, logger *slog.Logger) error {
	h, m, err := validate.Clock(at)
	if err != nil {
		return err
	}
	roster, err := schedule.LoadRoster(path, logger)
	if err != nil {
		return err
	}
	ref := schedule.Clock{Hour: h, Minute: m}
	working := roster.WorkingAt(ref)
	if len(working) == 0 {
		fmt.Printf("Nadie está trabajando a las %s\n", ref)
		return nil
	}
	fmt.Printf("Trabajando a las %s:\n", ref)
	for _, e := range working {
		fmt.Printf("%s (%s - %s)\n", e.Name, e.Shift.In, e.Shift.Out)
	}
	return nil
}

func printAnalysis(records []schedule.Record, refHour int) {
	groups := schedule.EmployeesByDay(records)

	fmt.Println("=== Empleados por día ===")
	for _, day := range []string{"Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado", "Domingo"} {
		if set, ok := groups[day]; ok {
			fmt.Printf("%s: %s\n", day, strings.Join(set.Sorted(), ", "))
		}
	}

	fmt.Println("\n=== Presentes todos los días ===")
	printSet(schedule.PresentEveryDay(groups))

	fmt.Println("\n=== Lunes y Viernes ===")
	printSet(schedule.Intersect(groups["Lunes"], groups["Viernes"]))

	fmt.Println("\n=== Sábado pero no Domingo ===")
	printSet(schedule.Diff(groups["Sábado"], groups["Domingo"]))

	fmt.Println("\n=== Fin de semana (Sábado o Domingo) ===")
	printSet(schedule.Union(groups["Sábado"], groups["Domingo"]))

	fmt.Println("\n=== Todos sus turnos de 6 horas o más ===")
	printSet(schedule.AllShiftsAtLeast(records, 6))

	fmt.Printf("\n=== Madrugadores (antes de las %02d:00) ===\n", refHour)
	for _, a := range schedule.EarlyArrivals(records, refHour) {
		fmt.Printf("%s (entrada a las %02d:00)\n", a.Employee, a.Hour)
	}

	fmt.Printf("\nEntradas a las %02d:00 o antes: %d\n", refHour, schedule.CountInAtOrBefore(records, refHour))
	if r, ok := schedule.EarliestOut(records); ok {
		fmt.Printf("Salida más temprana: %s el %s a las %s\n", r.Employee, r.Day, r.Out)
	}
}

func printSet(set schedule.EmployeeSet) {
	names := set.Sorted()
	if len(names) == 0 {
		fmt.Println("(ninguno)")
		return
	}
	for _, n := range names {
		fmt.Println(n)
	}
}

func writeReports(records []schedule.Record, refHour int, dir string) error {
	groups := schedule.EmployeesByDay(records)

	if err := schedule.WriteHoursSummary(records, filepath.Join(dir, "resumen_horarios.csv")); err != nil {
		return err
	}
	if err := schedule.WriteEarlyArrivals(records, refHour, filepath.Join(dir, "madrugadores.csv")); err != nil {
		return err
	}
	both := schedule.Intersect(groups["Lunes"], groups["Viernes"])
	if err := schedule.WriteNameList(both, "nombre_empleado", filepath.Join(dir, "en_dos_dias.csv")); err != nil {
		return err
	}
	saturdayOnly := schedule.Diff(groups["Sábado"], groups["Domingo"])
	if err := schedule.WriteNameList(saturdayOnly, "nombre_empleado", filepath.Join(dir, "exclusivos_sabado.csv")); err != nil {
		return err
	}
	return schedule.WriteWeeklySummary(records, filepath.Join(dir, "resumen_semanal.csv"))
}
