/*
store.go - The ledger store owning the three entity tables

PURPOSE:
  The Store is the single owner of the client, event and sale tables and
  the only component that touches their backing files. It is an explicit
  value handed to every operation - no package-level state, no singletons.

LIFECYCLE:
  Open prepares the data directory and the empty tables; LoadAll replaces
  every table from disk (a reload fully replaces the in-memory state).
  Entities enter through bulk load or through a typed Add operation that
  persists the whole table at once. Nothing is ever deleted or mutated in
  place.
*/
package ledger

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/ledger-engine/ticket"
	"github.com/warp/ledger-engine/validate"
)

// Store owns the in-memory tables for every entity kind.
type Store struct {
	dir    string
	logger *slog.Logger

	clients *Table[ticket.Client]
	events  *Table[ticket.Event]
	sales   *Table[ticket.Sale]
}

// Open prepares the data directory and the (still empty) tables.
func Open(dir string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("data directory %s: %w", dir, err)
	}
	return &Store{
		dir:     dir,
		logger:  logger,
		clients: NewTable(dir, ClientSpec(), logger),
		events:  NewTable(dir, EventSpec(), logger),
		sales:   NewTable(dir, SaleSpec(), logger),
	}, nil
}

// Dir returns the data directory the store persists into.
func (s *Store) Dir() string { return s.dir }

// LoadAll reloads every table from its backing file, fully replacing the
// in-memory state.
func (s *Store) LoadAll() error {
	if err := s.clients.Load(); err != nil {
		return err
	}
	if err := s.events.Load(); err != nil {
		return err
	}
	return s.sales.Load()
}

// Clients returns the client table.
func (s *Store) Clients() *Table[ticket.Client] { return s.clients }

// Events returns the event table.
func (s *Store) Events() *Table[ticket.Event] { return s.events }

// Sales returns the sale table.
func (s *Store) Sales() *Table[ticket.Sale] { return s.sales }

// AddClient validates the email syntactically, enforces its uniqueness
// case-insensitively within the table, assigns an id and persists.
func (s *Store) AddClient(name, email string, signup time.Time) (ticket.Client, error) {
	if !validate.Email(email) {
		return ticket.Client{}, fmt.Errorf("email %q: %w", email, ErrInvalidEmail)
	}
	return s.clients.Add(ticket.Client{Name: name, Email: email, SignupDate: signup})
}

// AddEvent assigns an id to the event and persists. Price must not be
// negative.
func (s *Store) AddEvent(name string, date time.Time, category string, price decimal.Decimal) (ticket.Event, error) {
	if price.IsNegative() {
		return ticket.Event{}, fmt.Errorf("precio %s: must not be negative", price)
	}
	return s.events.Add(ticket.Event{Name: name, Date: date, Category: category, Price: price})
}

// AddSale assigns an id to the sale and persists. The client and event ids
// are recorded as given - referential gaps surface in the reports, not
// here.
func (s *Store) AddSale(clientID, eventID int, date time.Time, amount decimal.Decimal) (ticket.Sale, error) {
	if clientID <= 0 || eventID <= 0 {
		return ticket.Sale{}, fmt.Errorf("cliente_id %d / evento_id %d: must be positive", clientID, eventID)
	}
	return s.sales.Add(ticket.Sale{ClientID: clientID, EventID: eventID, Date: date, Amount: amount})
}
