/*
Package ticket defines the ticketing ledger entities - clients, events and
sales - and the financial reports derived from them.

PURPOSE:
  Entities are plain immutable values constructed from validated input.
  Monetary fields use decimal.Decimal so revenue aggregation never loses
  cents to floating point.

REFERENTIAL INTEGRITY:
  A Sale references a client and an event by id but nothing enforces that
  those ids exist. Reports degrade gracefully: an unknown event id renders
  as a synthesized placeholder label instead of failing.
*/
package ticket

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/ledger-engine/validate"
)

// Client is a registered buyer.
type Client struct {
	ID         int
	Name       string
	Email      string
	SignupDate time.Time
}

// AgeDays returns whole days since signup as of the given day.
func (c Client) AgeDays(today time.Time) int {
	return daysBetween(c.SignupDate, today)
}

func (c Client) String() string {
	return fmt.Sprintf("Cliente(%d) %s <%s> — alta: %s", c.ID, c.Name, c.Email, c.SignupDate.Format(validate.DateLayout))
}

// Event is a priced, dated occasion tickets are sold for.
type Event struct {
	ID       int
	Name     string
	Date     time.Time
	Category string
	Price    decimal.Decimal
}

// DaysUntil returns whole days from today to the event date, negative when
// the event is already past.
func (e Event) DaysUntil(today time.Time) int {
	return daysBetween(today, e.Date)
}

func (e Event) String() string {
	return fmt.Sprintf("Evento(%d) %s — %s — fecha: %s — precio: %s",
		e.ID, e.Name, e.Category, e.Date.Format(validate.DateLayout), e.Price.StringFixed(2))
}

// Sale is one ticket purchase. ClientID and EventID are unchecked
// references.
type Sale struct {
	ID       int
	ClientID int
	EventID  int
	Date     time.Time
	Amount   decimal.Decimal
}

func (s Sale) String() string {
	return fmt.Sprintf("Venta(%d) cliente=%d evento=%d fecha=%s importe=%s",
		s.ID, s.ClientID, s.EventID, s.Date.Format(validate.DateLayout), s.Amount.StringFixed(2))
}

// daysBetween counts whole days from a to b on naive (UTC midnight) dates.
func daysBetween(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
