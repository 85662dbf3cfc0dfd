package schedule_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/ledger-engine/schedule"
)

func week(t *testing.T) []schedule.Record {
	t.Helper()
	return []schedule.Record{
		mustRecord(t, "María", "Lunes", 8, 16),
		mustRecord(t, "Juan", "Lunes", 9, 17),
		mustRecord(t, "Lucía", "Lunes", 7, 15),
		mustRecord(t, "María", "Viernes", 8, 14),
		mustRecord(t, "Lucía", "Viernes", 7, 15),
		mustRecord(t, "Diego", "Sábado", 10, 18),
		mustRecord(t, "Lucía", "Sábado", 9, 13),
		mustRecord(t, "Diego", "Domingo", 10, 18),
	}
}

func TestEmployeesByDay(t *testing.T) {
	groups := schedule.EmployeesByDay(week(t))

	require.Len(t, groups, 4)
	assert.Equal(t, []string{"Juan", "Lucía", "María"}, groups["Lunes"].Sorted())
	assert.Equal(t, []string{"Lucía", "María"}, groups["Viernes"].Sorted())
}

func TestPresentEveryDay(t *testing.T) {
	// GIVEN: only Lucía appears on Lunes, Viernes and Sábado, nobody on all four days
	groups := schedule.EmployeesByDay(week(t))
	assert.Empty(t, schedule.PresentEveryDay(groups).Sorted())

	// WHEN: restricting to the days Lucía worked
	delete(groups, "Domingo")
	assert.Equal(t, []string{"Lucía"}, schedule.PresentEveryDay(groups).Sorted())

	// Empty input yields an empty set, not an error.
	assert.Empty(t, schedule.PresentEveryDay(nil))
}

func TestSetAlgebraBetweenDays(t *testing.T) {
	groups := schedule.EmployeesByDay(week(t))

	both := schedule.Intersect(groups["Lunes"], groups["Viernes"])
	assert.Equal(t, []string{"Lucía", "María"}, both.Sorted())

	saturdayOnly := schedule.Diff(groups["Sábado"], groups["Domingo"])
	assert.Equal(t, []string{"Lucía"}, saturdayOnly.Sorted())
}

func TestWeeklySummary(t *testing.T) {
	rows := schedule.WeeklySummary(week(t))

	require.Len(t, rows, 4)
	assert.Equal(t, schedule.SummaryRow{Employee: "Diego", Days: 2, Hours: 16}, rows[0])
	assert.Equal(t, schedule.SummaryRow{Employee: "Juan", Days: 1, Hours: 8}, rows[1])
	assert.Equal(t, schedule.SummaryRow{Employee: "Lucía", Days: 3, Hours: 20}, rows[2])
	assert.Equal(t, schedule.SummaryRow{Employee: "María", Days: 2, Hours: 14}, rows[3])
}

func TestEarlyArrivals_DedupKeepsFirstSeen(t *testing.T) {
	records := []schedule.Record{
		mustRecord(t, "Lucía", "Lunes", 7, 15),
		mustRecord(t, "Lucía", "Martes", 6, 14), // later record, earlier hour: ignored
		mustRecord(t, "Juan", "Lunes", 9, 17),   // not early
		mustRecord(t, "Ana", "Lunes", 7, 13),
	}

	arrivals := schedule.EarlyArrivals(records, 8)
	assert.Equal(t, []schedule.Arrival{
		{Employee: "Ana", Hour: 7},
		{Employee: "Lucía", Hour: 7},
	}, arrivals)
}

func TestWorkingAt_BoundaryRule(t *testing.T) {
	shift := []schedule.Record{mustRecord(t, "Ana", "Lunes", 8, 16)}

	tests := []struct {
		name      string
		ref       schedule.Clock
		contained bool
	}{
		{"interior", schedule.Clock{Hour: 12}, true},
		{"start boundary inclusive", schedule.Clock{Hour: 8, Minute: 0}, true},
		{"end boundary inclusive", schedule.Clock{Hour: 16, Minute: 0}, true},
		{"minute before start", schedule.Clock{Hour: 7, Minute: 59}, false},
		{"start hour, later minute", schedule.Clock{Hour: 8, Minute: 30}, true},
		{"end hour, later minute", schedule.Clock{Hour: 16, Minute: 1}, false},
		{"after shift", schedule.Clock{Hour: 17}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := schedule.WorkingAt(shift, tt.ref)
			if tt.contained {
				assert.Len(t, got, 1)
			} else {
				assert.Empty(t, got)
			}
		})
	}
}

func TestWorkingAt_MinuteAwareEndpoints(t *testing.T) {
	// Shift 08:30-16:45. On the entry hour the entry minute must not exceed
	// the reference minute; on the exit hour the exit minute must reach it.
	shift, err := schedule.NewRecord("Ana", "Lunes",
		schedule.Clock{Hour: 8, Minute: 30}, schedule.Clock{Hour: 16, Minute: 45})
	require.NoError(t, err)
	records := []schedule.Record{shift}

	assert.Empty(t, schedule.WorkingAt(records, schedule.Clock{Hour: 8, Minute: 15}), "before entry minute")
	assert.Len(t, schedule.WorkingAt(records, schedule.Clock{Hour: 8, Minute: 30}), 1)
	assert.Len(t, schedule.WorkingAt(records, schedule.Clock{Hour: 16, Minute: 45}), 1)
	assert.Empty(t, schedule.WorkingAt(records, schedule.Clock{Hour: 16, Minute: 46}), "past exit minute")
}

func TestAllShiftsAtLeast(t *testing.T) {
	records := []schedule.Record{
		mustRecord(t, "María", "Lunes", 8, 16),  // 8h
		mustRecord(t, "María", "Viernes", 8, 14), // 6h
		mustRecord(t, "Diego", "Lunes", 10, 18),  // 8h
		mustRecord(t, "Diego", "Martes", 16, 19), // 3h: disqualifies Diego
	}

	assert.Equal(t, []string{"María"}, schedule.AllShiftsAtLeast(records, 6).Sorted())
}

func TestCountInAtOrBefore(t *testing.T) {
	assert.Equal(t, 6, schedule.CountInAtOrBefore(week(t), 9))
	assert.Equal(t, 0, schedule.CountInAtOrBefore(nil, 9))
}

func TestEarliestOut(t *testing.T) {
	r, ok := schedule.EarliestOut(week(t))
	require.True(t, ok)
	assert.Equal(t, "Lucía", r.Employee)
	assert.Equal(t, 13, r.Out.Hour)

	_, ok = schedule.EarliestOut(nil)
	assert.False(t, ok)
}
