package ticket_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/ledger-engine/ticket"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleEvents() []ticket.Event {
	return []ticket.Event{
		{ID: 1, Name: "Concierto", Date: date(2025, time.June, 1), Category: "Música", Price: dec("30.00")},
		{ID: 2, Name: "Teatro", Date: date(2025, time.July, 15), Category: "Teatro", Price: dec("22.50")},
		{ID: 3, Name: "Festival", Date: date(2025, time.May, 1), Category: "Música", Price: dec("55.00")},
	}
}

func TestTotalRevenueAndRevenueByEvent(t *testing.T) {
	sales := []ticket.Sale{
		{ID: 1, EventID: 1, Date: date(2025, time.April, 1), Amount: dec("100.0")},
		{ID: 2, EventID: 1, Date: date(2025, time.April, 2), Amount: dec("50.0")},
		{ID: 3, EventID: 2, Date: date(2025, time.April, 3), Amount: dec("30.0")},
	}

	assert.True(t, ticket.TotalRevenue(sales).Equal(dec("180.0")))

	byEvent := ticket.RevenueByEvent(sales, sampleEvents())
	require.Len(t, byEvent, 2)
	assert.Equal(t, 1, byEvent[0].EventID)
	assert.Equal(t, "Concierto", byEvent[0].Name)
	assert.Equal(t, 2, byEvent[0].Sales)
	assert.True(t, byEvent[0].Total.Equal(dec("150.0")))
	assert.True(t, byEvent[1].Total.Equal(dec("30.0")))
}

func TestRevenueByEvent_DanglingReferenceGetsPlaceholder(t *testing.T) {
	// GIVEN: a sale pointing at an event id that does not exist
	sales := []ticket.Sale{
		{ID: 1, EventID: 99, Date: date(2025, time.April, 1), Amount: dec("10.0")},
	}

	// WHEN: grouping revenue
	byEvent := ticket.RevenueByEvent(sales, sampleEvents())

	// THEN: the revenue is kept under a placeholder label, not dropped
	require.Len(t, byEvent, 1)
	assert.Equal(t, "Evento 99 (desconocido)", byEvent[0].Name)
	assert.True(t, byEvent[0].Total.Equal(dec("10.0")))
}

func TestCategories(t *testing.T) {
	assert.Equal(t, []string{"Música", "Teatro"}, ticket.Categories(sampleEvents()))
	assert.Empty(t, ticket.Categories(nil))
}

func TestPrices(t *testing.T) {
	stats, ok := ticket.Prices(sampleEvents())
	require.True(t, ok)
	assert.True(t, stats.Min.Equal(dec("22.50")))
	assert.True(t, stats.Max.Equal(dec("55.00")))
	assert.True(t, stats.Mean.Round(4).Equal(dec("35.8333")), "mean = (30+22.5+55)/3, got %s", stats.Mean)

	_, ok = ticket.Prices(nil)
	assert.False(t, ok)
}

func TestDaysToNextEvent(t *testing.T) {
	today := date(2025, time.May, 20)

	// Festival (May 1) is past; Concierto (June 1) is the nearest future event.
	days, ok := ticket.DaysToNextEvent(sampleEvents(), today)
	require.True(t, ok)
	assert.Equal(t, 12, days)

	// An event today counts as zero days away.
	days, ok = ticket.DaysToNextEvent([]ticket.Event{{ID: 9, Date: today}}, today)
	require.True(t, ok)
	assert.Equal(t, 0, days)

	// No future events is an explicit "not available", not an error.
	_, ok = ticket.DaysToNextEvent([]ticket.Event{{ID: 9, Date: date(2024, time.May, 1)}}, today)
	assert.False(t, ok)
}

func TestSalesBetween(t *testing.T) {
	sales := []ticket.Sale{
		{ID: 1, Date: date(2025, time.April, 1), Amount: dec("10")},
		{ID: 2, Date: date(2025, time.April, 15), Amount: dec("20")},
		{ID: 3, Date: date(2025, time.May, 1), Amount: dec("30")},
	}

	got, err := ticket.SalesBetween(sales, date(2025, time.April, 1), date(2025, time.April, 30))
	require.NoError(t, err)
	require.Len(t, got, 2, "window is inclusive on both ends")
	assert.Equal(t, 1, got[0].ID)

	// The window is validated before any row is scanned.
	_, err = ticket.SalesBetween(sales, date(2025, time.May, 2), date(2025, time.May, 1))
	assert.ErrorIs(t, err, ticket.ErrInvalidRange)
}

func TestClientAgeAndEventCountdown(t *testing.T) {
	today := date(2025, time.May, 20)

	c := ticket.Client{ID: 1, Name: "Ana", Email: "ana@x.com", SignupDate: date(2025, time.May, 10)}
	assert.Equal(t, 10, c.AgeDays(today))

	e := ticket.Event{ID: 1, Date: date(2025, time.May, 1)}
	assert.Equal(t, -19, e.DaysUntil(today), "past events count negative")
}
