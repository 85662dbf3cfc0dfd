/*
Package sqlite archives the ledger tables into a SQLite database.

PURPOSE:
  The CSV files stay authoritative; this store is a reporting/backup
  mirror. Each snapshot replaces the previous one inside a single
  transaction, so the archive always reflects one consistent state of the
  ledger.

SCHEMA:
  clients, events, sales - one table per entity kind, same columns as the
  CSV files. Dates as TEXT (YYYY-MM-DD), money as TEXT with two decimals
  to keep exact values.

USAGE:
  archive, err := sqlite.New("./data/ledger.db")
  if err != nil { ... }
  defer archive.Close()
  err = archive.Snapshot(store)
*/
package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/ledger-engine/ledger"
	"github.com/warp/ledger-engine/ticket"
	"github.com/warp/ledger-engine/validate"
)

// Archive is a SQLite mirror of the ledger tables.
type Archive struct {
	db *sql.DB
}

// New opens (or creates) the archive database at the given path.
// Use ":memory:" for an in-memory archive.
func New(dbPath string) (*Archive, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	a := &Archive{db: db}
	if err := a.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate archive: %w", err)
	}
	return a, nil
}

// Close closes the database connection.
func (a *Archive) Close() error {
	return a.db.Close()
}

func (a *Archive) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS clients (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		signup_date TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		event_date TEXT NOT NULL,
		category TEXT NOT NULL,
		price TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS sales (
		id INTEGER PRIMARY KEY,
		client_id INTEGER NOT NULL,
		event_id INTEGER NOT NULL,
		sale_date TEXT NOT NULL,
		amount TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sales_event ON sales(event_id);
	CREATE INDEX IF NOT EXISTS idx_sales_date ON sales(sale_date);
	`
	_, err := a.db.Exec(schema)
	return err
}

// Snapshot replaces the archive contents with the store's current tables,
// atomically: either the whole snapshot lands or none of it.
func (a *Archive) Snapshot(store *ledger.Store) error {
	tx, err := a.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() // no-op once committed

	for _, table := range []string{"sales", "events", "clients"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	for _, c := range store.Clients().All() {
		_, err := tx.Exec(
			"INSERT INTO clients (id, name, email, signup_date) VALUES (?, ?, ?, ?)",
			c.ID, c.Name, c.Email, c.SignupDate.Format(validate.DateLayout),
		)
		if err != nil {
			return fmt.Errorf("archiving client %d: %w", c.ID, err)
		}
	}

	for _, e := range store.Events().All() {
		_, err := tx.Exec(
			"INSERT INTO events (id, name, event_date, category, price) VALUES (?, ?, ?, ?, ?)",
			e.ID, e.Name, e.Date.Format(validate.DateLayout), e.Category, e.Price.StringFixed(2),
		)
		if err != nil {
			return fmt.Errorf("archiving event %d: %w", e.ID, err)
		}
	}

	for _, s := range store.Sales().All() {
		_, err := tx.Exec(
			"INSERT INTO sales (id, client_id, event_id, sale_date, amount) VALUES (?, ?, ?, ?, ?)",
			s.ID, s.ClientID, s.EventID, s.Date.Format(validate.DateLayout), s.Amount.StringFixed(2),
		)
		if err != nil {
			return fmt.Errorf("archiving sale %d: %w", s.ID, err)
		}
	}

	return tx.Commit()
}

// Counts returns the number of archived rows per entity kind, for the CLI
// confirmation line.
func (a *Archive) Counts() (clients, events, sales int, err error) {
	count := func(table string) (int, error) {
		var n int
		err := a.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n)
		return n, err
	}
	if clients, err = count("clients"); err != nil {
		return 0, 0, 0, err
	}
	if events, err = count("events"); err != nil {
		return 0, 0, 0, err
	}
	if sales, err = count("sales"); err != nil {
		return 0, 0, 0, err
	}
	return clients, events, sales, nil
}

// Events reads the archived events back, ordered by id.
func (a *Archive) Events() ([]ticket.Event, error) {
	rows, err := a.db.Query("SELECT id, name, event_date, category, price FROM events ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ticket.Event
	for rows.Next() {
		var e ticket.Event
		var date, price string
		if err := rows.Scan(&e.ID, &e.Name, &date, &e.Category, &price); err != nil {
			return nil, err
		}
		if e.Date, err = validate.Date(date); err != nil {
			return nil, err
		}
		if e.Price, err = decimal.NewFromString(price); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
