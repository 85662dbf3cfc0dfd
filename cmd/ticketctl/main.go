/*
main.go - Menu-driven ticketing ledger CLI

PURPOSE:
  The interactive shell around the ledger store and the report engine.
  This layer owns all prompting, retry-on-invalid-input loops and text
  rendering; the core packages only ever see already-parsed arguments and
  answer with values or typed errors.

MENU:
  1) reload the CSV tables
  2) list a table
  3) add a client
  4) add an event
  5) add a sale
  6) filter sales by date range
  7) statistics
  8) export the per-event revenue report
  9) archive a snapshot into SQLite
  0) quit

CONFIGURATION:
  Environment (LEDGER_* variables) or a YAML file via CONFIG_PATH, see
  package config.
*/
package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/ledger-engine/config"
	"github.com/warp/ledger-engine/ledger"
	"github.com/warp/ledger-engine/store/sqlite"
	"github.com/warp/ledger-engine/ticket"
	"github.com/warp/ledger-engine/validate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := newLogger(cfg.LogLevel)

	store, err := ledger.Open(cfg.DataDir, logger)
	if err != nil {
		logger.Error("opening store", "err", err)
		os.Exit(1)
	}
	if err := store.LoadAll(); err != nil {
		logger.Error("loading tables", "err", err)
		os.Exit(1)
	}
	logger.Info("tables loaded",
		"clients", store.Clients().Len(),
		"events", store.Events().Len(),
		"sales", store.Sales().Len())

	app := &app{
		cfg:    cfg,
		store:  store,
		logger: logger,
		in:     bufio.NewScanner(os.Stdin),
	}
	app.run()
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "warn", "warning":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}

type app struct {
	cfg    config.Config
	store  *ledger.Store
	logger *slog.Logger
	in     *bufio.Scanner
}

func (a *app) run() {
	for {
		fmt.Println(`
=========================
 Gestión de Eventos
=========================
1) Recargar CSV
2) Listar tabla (clientes | eventos | ventas)
3) Alta de cliente
4) Alta de evento
5) Alta de venta
6) Filtro de ventas por rango de fechas
7) Estadísticas
8) Exportar informe (totales por evento)
9) Archivar snapshot (SQLite)
0) Salir`)

		switch a.prompt("Elige una opción: ") {
		case "1":
			a.reload()
		case "2":
			a.list()
		case "3":
			a.addClient()
		case "4":
			a.addEvent()
		case "5":
			a.addSale()
		case "6":
			a.filterSales()
		case "7":
			a.stats()
		case "8":
			a.exportReport()
		case "9":
			a.archive()
		case "0":
			fmt.Println("Cerrando programa")
			return
		default:
			fmt.Println("Opción no válida. Intenta de nuevo.")
		}
	}
}

// prompt reads one trimmed line. EOF behaves like quitting.
func (a *app) prompt(label string) string {
	fmt.Print(label)
	if !a.in.Scan() {
		fmt.Println()
		os.Exit(0)
	}
	return strings.TrimSpace(a.in.Text())
}

// promptDate re-prompts until the input parses; the core never loops.
func (a *app) promptDate(label string) time.Time {
	for {
		d, err := validate.Date(a.prompt(label))
		if err == nil {
			return d
		}
		fmt.Println(err)
	}
}

func (a *app) promptInt(label string) int {
	for {
		n, err := strconv.Atoi(a.prompt(label))
		if err == nil {
			return n
		}
		fmt.Println("Introduce un número entero.")
	}
}

func (a *app) promptAmount(label string) decimal.Decimal {
	for {
		d, err := decimal.NewFromString(a.prompt(label))
		if err == nil {
			return d
		}
		fmt.Println("Importe no válido.")
	}
}

func (a *app) reload() {
	if err := a.store.LoadAll(); err != nil {
		a.logger.Error("reload failed", "err", err)
		return
	}
	fmt.Println("Carga completada.")
}

func (a *app) list() {
	today := time.Now().UTC()
	switch a.prompt("¿Qué tabla quieres listar? (clientes/eventos/ventas): ") {
	case "clientes":
		fmt.Println("\n=== CLIENTES ===")
		for _, c := range a.store.Clients().All() {
			fmt.Printf("%s (%d días)\n", c, c.AgeDays(today))
		}
		fmt.Printf("Total: %d\n", a.store.Clients().Len())
	case "eventos":
		fmt.Println("\n=== EVENTOS ===")
		for _, e := range a.store.Events().All() {
			fmt.Printf("%s (en %d días)\n", e, e.DaysUntil(today))
		}
		fmt.Printf("Total: %d\n", a.store.Events().Len())
	case "ventas":
		fmt.Println("\n=== VENTAS ===")
		for _, s := range a.store.Sales().All() {
			fmt.Println(s)
		}
		fmt.Printf("Total: %d\n", a.store.Sales().Len())
	default:
		fmt.Println("Tabla no reconocida. Usa: clientes | eventos | ventas")
	}
}

func (a *app) addClient() {
	fmt.Println("\n-- Alta de cliente --")
	name := a.prompt("Nombre: ")
	email := a.prompt("Email: ")
	signup := a.promptDate("Fecha de alta (YYYY-MM-DD): ")

	c, err := a.store.AddClient(name, email, signup)
	if err != nil {
		if ledger.IsClientError(err) {
			fmt.Println("Operación cancelada:", err)
		} else {
			a.logger.Error("add client", "err", err)
		}
		return
	}
	fmt.Println("Cliente creado:", c)
}

func (a *app) addEvent() {
	fmt.Println("\n-- Alta de evento --")
	name := a.prompt("Nombre: ")
	date := a.promptDate("Fecha del evento (YYYY-MM-DD): ")
	category := a.prompt("Categoría: ")
	price := a.promptAmount("Precio: ")

	e, err := a.store.AddEvent(name, date, category, price)
	if err != nil {
		fmt.Println("Operación cancelada:", err)
		return
	}
	fmt.Println("Evento creado:", e)
}

func (a *app) addSale() {
	fmt.Println("\n-- Alta de venta --")
	clientID := a.promptInt("ID de cliente: ")
	eventID := a.promptInt("ID de evento: ")
	date := a.promptDate("Fecha de venta (YYYY-MM-DD): ")
	amount := a.promptAmount("Importe: ")

	s, err := a.store.AddSale(clientID, eventID, date, amount)
	if err != nil {
		fmt.Println("Operación cancelada:", err)
		return
	}
	fmt.Println("Venta creada:", s)
}

func (a *app) filterSales() {
	fmt.Println("\n-- Filtro de ventas por rango de fechas --")
	start := a.promptDate("Fecha inicio (YYYY-MM-DD): ")
	end := a.promptDate("Fecha fin (YYYY-MM-DD): ")

	sales, err := ticket.SalesBetween(a.store.Sales().All(), start, end)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("\nVentas entre %s y %s (ambas inclusive):\n",
		start.Format(validate.DateLayout), end.Format(validate.DateLayout))
	for _, s := range sales {
		fmt.Println(s)
	}
	fmt.Printf("Total ventas encontradas: %d — Ingresos: %s\n",
		len(sales), ticket.TotalRevenue(sales).StringFixed(2))
}

func (a *app) stats() {
	today := time.Now().UTC()
	sales := a.store.Sales().All()
	events := a.store.Events().All()

	fmt.Println("\n=== ESTADÍSTICAS ===")
	fmt.Printf("Ingresos totales: %s\n", ticket.TotalRevenue(sales).StringFixed(2))

	fmt.Println("Ingresos por evento:")
	for _, item := range ticket.RevenueByEvent(sales, events) {
		fmt.Printf("  %d - %s: %s (%d ventas)\n", item.EventID, item.Name, item.Total.StringFixed(2), item.Sales)
	}

	fmt.Printf("Categorías: %v\n", ticket.Categories(events))

	if days, ok := ticket.DaysToNextEvent(events, today); ok {
		fmt.Printf("Días hasta el evento más próximo: %d\n", days)
	} else {
		fmt.Println("Días hasta el evento más próximo: n/d (no hay eventos futuros)")
	}

	if stats, ok := ticket.Prices(events); ok {
		fmt.Printf("Precios de eventos (min, max, media): (%s, %s, %s)\n",
			stats.Min.StringFixed(2), stats.Max.StringFixed(2), stats.Mean.StringFixed(2))
	} else {
		fmt.Println("Precios de eventos (min, max, media): n/d")
	}
}

func (a *app) exportReport() {
	path := filepath.Join(a.cfg.DataDir, "informe_resumen.csv")
	if err := ticket.WriteRevenueReport(a.store.Sales().All(), a.store.Events().All(), path); err != nil {
		a.logger.Error("export failed", "err", err)
		return
	}
	fmt.Println("Informe exportado en:", path)
}

func (a *app) archive() {
	archive, err := sqlite.New(a.cfg.ArchivePath)
	if err != nil {
		a.logger.Error("opening archive", "err", err)
		return
	}
	defer archive.Close()

	if err := archive.Snapshot(a.store); err != nil {
		a.logger.Error("snapshot failed", "err", err)
		return
	}
	clients, events, sales, err := archive.Counts()
	if err != nil {
		a.logger.Error("counting archive", "err", err)
		return
	}
	fmt.Printf("Snapshot en %s: %d clientes, %d eventos, %d ventas\n",
		a.cfg.ArchivePath, clients, events, sales)
}
