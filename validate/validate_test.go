package validate_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/ledger-engine/validate"
)

func TestHour_AcceptsBareAndClockForms(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"8", 8},
		{"08", 8},
		{"0", 0},
		{"23", 23},
		{"08:00", 8},
		{"16:30", 16}, // minutes ignored
		{" 9 ", 9},
	}
	for _, tt := range tests {
		got, err := validate.Hour(tt.raw)
		require.NoError(t, err, "raw=%q", tt.raw)
		assert.Equal(t, tt.want, got, "raw=%q", tt.raw)
	}
}

func TestHour_RejectsOutOfRangeAndGarbage(t *testing.T) {
	for _, raw := range []string{"24", "-1", "99", "abc", "", "8h"} {
		_, err := validate.Hour(raw)
		assert.ErrorIs(t, err, validate.ErrRange, "raw=%q", raw)
	}
}

func TestMinute_Bounds(t *testing.T) {
	got, err := validate.Minute("59")
	require.NoError(t, err)
	assert.Equal(t, 59, got)

	_, err = validate.Minute("60")
	assert.ErrorIs(t, err, validate.ErrRange)
}

func TestClock(t *testing.T) {
	h, m, err := validate.Clock("16:30")
	require.NoError(t, err)
	assert.Equal(t, 16, h)
	assert.Equal(t, 30, m)

	// Missing minute component defaults to zero.
	h, m, err = validate.Clock("7")
	require.NoError(t, err)
	assert.Equal(t, 7, h)
	assert.Equal(t, 0, m)

	_, _, err = validate.Clock("16:75")
	assert.ErrorIs(t, err, validate.ErrRange)
}

func TestDate(t *testing.T) {
	d, err := validate.Date("2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), d)

	for _, raw := range []string{"10/03/2025", "2025-3-10", "not-a-date", ""} {
		_, err := validate.Date(raw)
		assert.ErrorIs(t, err, validate.ErrFormat, "raw=%q", raw)
	}
}

func TestEmail(t *testing.T) {
	valid := []string{"a.b@c.com", "user+tag@example.org", "x_9%@sub.domain.es"}
	for _, raw := range valid {
		assert.True(t, validate.Email(raw), "raw=%q", raw)
	}

	invalid := []string{"not-an-email", "@no-local.com", "user@domain", "user@.com", "a b@c.com"}
	for _, raw := range invalid {
		assert.False(t, validate.Email(raw), "raw=%q", raw)
	}
}

func TestDayLabel(t *testing.T) {
	// 2025-03-10 is a Monday.
	assert.Equal(t, "Lunes", validate.DayLabel("2025-03-10"))
	assert.Equal(t, "Domingo", validate.DayLabel("2025-03-16"))

	assert.Equal(t, "Miércoles", validate.DayLabel("miercoles"))
	assert.Equal(t, "Sábado", validate.DayLabel("SÁBADO"))
	assert.Equal(t, "Lunes", validate.DayLabel("  lunes "))

	// Unknown labels pass through unchanged.
	assert.Equal(t, "Feriado", validate.DayLabel("Feriado"))
}
