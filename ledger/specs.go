/*
specs.go - Per-kind table specifications

PURPOSE:
  The lookup table that replaces string-keyed dispatch: each entity kind
  declares its columns, codec callbacks and insertion rules once, and the
  generic Table does the rest.

COLUMN ORDER (fixed, matches the on-disk files):
  clientes: id,nombre,email,fecha_alta
  eventos:  id,nombre,fecha_evento,categoria,precio
  ventas:   id,cliente_id,evento_id,fecha_venta,importe
*/
package ledger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/warp/ledger-engine/tabular"
	"github.com/warp/ledger-engine/ticket"
	"github.com/warp/ledger-engine/validate"
)

func parseID(field, raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s %q: must be a positive integer", field, raw)
	}
	return n, nil
}

func parseAmount(field, raw string, allowNegative bool) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s %q: not a number", field, raw)
	}
	if !allowNegative && d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%s %q: must not be negative", field, raw)
	}
	return d, nil
}

// ClientSpec maps ticket.Client onto the clientes table.
func ClientSpec() Spec[ticket.Client] {
	columns := []string{"id", "nombre", "email", "fecha_alta"}
	return Spec[ticket.Client]{
		Kind:    KindClient,
		Columns: columns,
		ID:      func(c ticket.Client) int { return c.ID },
		WithID:  func(c ticket.Client, id int) ticket.Client { c.ID = id; return c },
		Label:   func(c ticket.Client) string { return c.Name },
		Encode: func(c ticket.Client) []string {
			return []string{
				strconv.Itoa(c.ID),
				c.Name,
				c.Email,
				c.SignupDate.Format(validate.DateLayout),
			}
		},
		Decode: func(row tabular.Row) (ticket.Client, error) {
			if err := row.Require(len(columns)); err != nil {
				return ticket.Client{}, err
			}
			id, err := parseID("id", row.Fields[0])
			if err != nil {
				return ticket.Client{}, err
			}
			if !validate.Email(row.Fields[2]) {
				return ticket.Client{}, fmt.Errorf("email %q: %w", row.Fields[2], ErrInvalidEmail)
			}
			signup, err := validate.Date(row.Fields[3])
			if err != nil {
				return ticket.Client{}, err
			}
			return ticket.Client{ID: id, Name: row.Fields[1], Email: row.Fields[2], SignupDate: signup}, nil
		},
		CheckAdd: func(candidate ticket.Client, existing []ticket.Client) error {
			for _, c := range existing {
				if strings.EqualFold(c.Email, candidate.Email) {
					return &UniquenessError{Field: "email", Value: candidate.Email, ExistingID: c.ID}
				}
			}
			return nil
		},
	}
}

// EventSpec maps ticket.Event onto the eventos table.
func EventSpec() Spec[ticket.Event] {
	columns := []string{"id", "nombre", "fecha_evento", "categoria", "precio"}
	return Spec[ticket.Event]{
		Kind:    KindEvent,
		Columns: columns,
		ID:      func(e ticket.Event) int { return e.ID },
		WithID:  func(e ticket.Event, id int) ticket.Event { e.ID = id; return e },
		Label:   func(e ticket.Event) string { return e.Name },
		Encode: func(e ticket.Event) []string {
			return []string{
				strconv.Itoa(e.ID),
				e.Name,
				e.Date.Format(validate.DateLayout),
				e.Category,
				e.Price.StringFixed(2),
			}
		},
		Decode: func(row tabular.Row) (ticket.Event, error) {
			if err := row.Require(len(columns)); err != nil {
				return ticket.Event{}, err
			}
			id, err := parseID("id", row.Fields[0])
			if err != nil {
				return ticket.Event{}, err
			}
			date, err := validate.Date(row.Fields[2])
			if err != nil {
				return ticket.Event{}, err
			}
			price, err := parseAmount("precio", row.Fields[4], false)
			if err != nil {
				return ticket.Event{}, err
			}
			return ticket.Event{ID: id, Name: row.Fields[1], Date: date, Category: row.Fields[3], Price: price}, nil
		},
	}
}

// SaleSpec maps ticket.Sale onto the ventas table. Sales have no natural
// label, so the sale date orders the file.
func SaleSpec() Spec[ticket.Sale] {
	columns := []string{"id", "cliente_id", "evento_id", "fecha_venta", "importe"}
	return Spec[ticket.Sale]{
		Kind:    KindSale,
		Columns: columns,
		ID:      func(s ticket.Sale) int { return s.ID },
		WithID:  func(s ticket.Sale, id int) ticket.Sale { s.ID = id; return s },
		Label:   func(s ticket.Sale) string { return s.Date.Format(validate.DateLayout) },
		Encode: func(s ticket.Sale) []string {
			return []string{
				strconv.Itoa(s.ID),
				strconv.Itoa(s.ClientID),
				strconv.Itoa(s.EventID),
				s.Date.Format(validate.DateLayout),
				s.Amount.StringFixed(2),
			}
		},
		Decode: func(row tabular.Row) (ticket.Sale, error) {
			if err := row.Require(len(columns)); err != nil {
				return ticket.Sale{}, err
			}
			id, err := parseID("id", row.Fields[0])
			if err != nil {
				return ticket.Sale{}, err
			}
			// Foreign ids are parsed but never checked against their
			// tables: dangling references degrade in the reports instead.
			clientID, err := parseID("cliente_id", row.Fields[1])
			if err != nil {
				return ticket.Sale{}, err
			}
			eventID, err := parseID("evento_id", row.Fields[2])
			if err != nil {
				return ticket.Sale{}, err
			}
			date, err := validate.Date(row.Fields[3])
			if err != nil {
				return ticket.Sale{}, err
			}
			amount, err := parseAmount("importe", row.Fields[4], true)
			if err != nil {
				return ticket.Sale{}, err
			}
			return ticket.Sale{ID: id, ClientID: clientID, EventID: eventID, Date: date, Amount: amount}, nil
		},
	}
}
