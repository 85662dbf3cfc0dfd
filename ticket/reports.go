/*
reports.go - Financial aggregates over the ticketing ledger

PURPOSE:
  Pure derivations: every function takes entity slices and returns a new
  structure. No I/O, no mutation. The ledger store or the CLI decides what
  to do with the results.

UNKNOWN REFERENCES:
  RevenueByEvent resolves event names through the events it is given. Sales
  pointing at an id with no matching event keep their revenue under a
  placeholder label - a dangling reference is data to report, not an error.
*/
package ticket

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInvalidRange is returned when a date window ends before it starts.
var ErrInvalidRange = errors.New("invalid range: start after end")

// TotalRevenue sums the amount of every sale.
func TotalRevenue(sales []Sale) decimal.Decimal {
	total := decimal.Zero
	for _, s := range sales {
		total = total.Add(s.Amount)
	}
	return total
}

// EventRevenue is the per-event slice of the revenue report.
type EventRevenue struct {
	EventID int
	Name    string
	Sales   int
	Total   decimal.Decimal
}

// PlaceholderName is the label used for sales whose event id has no
// matching event.
func PlaceholderName(eventID int) string {
	return fmt.Sprintf("Evento %d (desconocido)", eventID)
}

// RevenueByEvent groups sale revenue by event id, ordered by id. Event
// names are resolved from events; unknown ids get a placeholder label.
func RevenueByEvent(sales []Sale, events []Event) []EventRevenue {
	names := make(map[int]string, len(events))
	for _, e := range events {
		names[e.ID] = e.Name
	}

	byID := make(map[int]*EventRevenue)
	for _, s := range sales {
		item, ok := byID[s.EventID]
		if !ok {
			name, known := names[s.EventID]
			if !known {
				name = PlaceholderName(s.EventID)
			}
			item = &EventRevenue{EventID: s.EventID, Name: name, Total: decimal.Zero}
			byID[s.EventID] = item
		}
		item.Sales++
		item.Total = item.Total.Add(s.Amount)
	}

	out := make([]EventRevenue, 0, len(byID))
	for _, item := range byID {
		out = append(out, *item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EventID < out[j].EventID })
	return out
}

// Categories returns the distinct event categories, sorted
// case-insensitively.
func Categories(events []Event) []string {
	set := make(map[string]struct{}, len(events))
	for _, e := range events {
		set[e.Category] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := strings.ToLower(out[i]), strings.ToLower(out[j])
		if a != b {
			return a < b
		}
		return out[i] < out[j]
	})
	return out
}

// PriceStats holds the min/max/mean of event prices.
type PriceStats struct {
	Min  decimal.Decimal
	Max  decimal.Decimal
	Mean decimal.Decimal
}

// Prices computes price statistics across events. ok is false when there
// are no events.
func Prices(events []Event) (PriceStats, bool) {
	if len(events) == 0 {
		return PriceStats{}, false
	}
	stats := PriceStats{Min: events[0].Price, Max: events[0].Price}
	sum := decimal.Zero
	for _, e := range events {
		if e.Price.LessThan(stats.Min) {
			stats.Min = e.Price
		}
		if e.Price.GreaterThan(stats.Max) {
			stats.Max = e.Price
		}
		sum = sum.Add(e.Price)
	}
	stats.Mean = sum.Div(decimal.NewFromInt(int64(len(events))))
	return stats, true
}

// DaysToNextEvent returns the days until the nearest event dated today or
// later. ok is false when no such event exists - callers render "n/d"
// rather than treating it as an error.
func DaysToNextEvent(events []Event, today time.Time) (int, bool) {
	best := 0
	found := false
	for _, e := range events {
		d := e.DaysUntil(today)
		if d < 0 {
			continue // strictly past events are excluded
		}
		if !found || d < best {
			best = d
			found = true
		}
	}
	return best, found
}

// SalesBetween filters sales to the inclusive [start, end] window. The
// window is validated before any row is scanned.
func SalesBetween(sales []Sale, start, end time.Time) ([]Sale, error) {
	if start.After(end) {
		return nil, fmt.Errorf("%s > %s: %w", start.Format("2006-01-02"), end.Format("2006-01-02"), ErrInvalidRange)
	}
	var out []Sale
	for _, s := range sales {
		if s.Date.Before(start) || s.Date.After(end) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}
