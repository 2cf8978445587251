package shifts

import (
	"testing"
	"time"

	"fichaje.app/fichaje/core/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testWeek = WeekRules{StartDay: time.Monday, StartHour: 7}

func TestWeekStartBoundary(t *testing.T) {
	// Monday 2024-03-04
	monday := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		ref      time.Time
		expected time.Time
	}{
		{"wednesday noon", monday.AddDate(0, 0, 2).Add(12 * time.Hour), monday.Add(7 * time.Hour)},
		{"monday at 07:00 exactly", monday.Add(7 * time.Hour), monday.Add(7 * time.Hour)},
		{"sunday night", monday.AddDate(0, 0, 6).Add(23 * time.Hour), monday.Add(7 * time.Hour)},
		{"next monday 06:59 still previous calendar week", monday.AddDate(0, 0, 7).Add(6*time.Hour + 59*time.Minute), monday.AddDate(0, 0, 7).Add(7 * time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, testWeek.WeekStart(tt.ref))
		})
	}
}

func TestWindowMembership(t *testing.T) {
	monday := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	now := monday.AddDate(0, 0, 9) // wednesday of the following week

	current := testWeek.Window(now, 0)
	previous := testWeek.Window(now, -1)

	// an entry on Monday 06:59 belongs to the previous custom week
	early := monday.AddDate(0, 0, 7).Add(6*time.Hour + 59*time.Minute)
	assert.False(t, current.Contains(early))
	assert.True(t, previous.Contains(early))

	// Monday 07:00 sharp opens the current week
	sharp := monday.AddDate(0, 0, 7).Add(7 * time.Hour)
	assert.True(t, current.Contains(sharp))
	assert.False(t, previous.Contains(sharp))

	// the windows tile exactly
	assert.Equal(t, previous.End, current.Start)
}

func TestNewWeekNavigatorClampsFutureOffsets(t *testing.T) {
	assert.Equal(t, 0, NewWeekNavigator(3).Offset())
	assert.Equal(t, 0, NewWeekNavigator(0).Offset())
	assert.Equal(t, -4, NewWeekNavigator(-4).Offset())
}

func TestWeekNavigatorClampsAtPresent(t *testing.T) {
	var nav WeekNavigator

	nav.Next()
	assert.Equal(t, 0, nav.Offset(), "cannot navigate into the future")

	nav.Previous()
	nav.Previous()
	assert.Equal(t, -2, nav.Offset())

	nav.Next()
	assert.Equal(t, -1, nav.Offset())
	nav.Next()
	nav.Next()
	assert.Equal(t, 0, nav.Offset())
}

func rate(v float64) *float64 { return &v }

func TestSummarizeSingleClosedShift(t *testing.T) {
	// Scenario: clock in 09:00, out 17:00 same day -> 8h, not anomalous
	monday := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	now := monday.Add(20 * time.Hour)
	window := testWeek.Window(now, 0)

	employees := []models.Employee{
		{ID: "ana", FullName: "Ana García", HourlyRate: rate(12.5), IsActive: true},
	}
	exit := monday.Add(17 * time.Hour)
	all := []Shift{{
		ID: "e1", EmployeeID: "ana", EmployeeName: "Ana García",
		Entry: monday.Add(9 * time.Hour), Exit: &exit, Duration: 8 * time.Hour,
	}}

	result := Summarize(all, employees, window)
	require.Len(t, result, 1)
	assert.InDelta(t, 8.0, result[0].TotalHours, 1e-9)
	assert.InDelta(t, 100.0, result[0].EstimatedPay, 1e-9)
	assert.False(t, result[0].HasAnomalousShift)
	assert.Len(t, result[0].Shifts, 1)
}

func TestSummarizeExcludesOpenShifts(t *testing.T) {
	monday := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	now := monday.Add(30 * time.Hour)
	window := testWeek.Window(now, 0)

	employees := []models.Employee{{ID: "ana", FullName: "Ana García", IsActive: true}}
	all := []Shift{{
		ID: "e1", EmployeeID: "ana", EmployeeName: "Ana García",
		Entry: monday.Add(9 * time.Hour), IsOpen: true, IsAnomalous: true,
	}}

	// entry is inside the window, but the shift is open: no totals at all
	assert.Empty(t, Summarize(all, employees, window))
}

func TestSummarizeKeepsDeactivatedEmployeeHours(t *testing.T) {
	monday := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	now := monday.Add(20 * time.Hour)
	window := testWeek.Window(now, 0)

	// deactivated mid-week: the roster row stays and so do the hours
	employees := []models.Employee{
		{ID: "ana", FullName: "Ana García", HourlyRate: rate(10), IsActive: false},
	}
	exit := monday.Add(15 * time.Hour)
	all := []Shift{{
		ID: "e1", EmployeeID: "ana", EmployeeName: "Ana García",
		Entry: monday.Add(9 * time.Hour), Exit: &exit, Duration: 6 * time.Hour,
	}}

	result := Summarize(all, employees, window)
	require.Len(t, result, 1)
	assert.InDelta(t, 6.0, result[0].TotalHours, 1e-9)
	assert.InDelta(t, 60.0, result[0].EstimatedPay, 1e-9)
}

func TestSummarizeOrdersByTotalHours(t *testing.T) {
	monday := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	now := monday.Add(50 * time.Hour)
	window := testWeek.Window(now, 0)

	employees := []models.Employee{
		{ID: "ana", FullName: "Ana García", HourlyRate: rate(20), IsActive: true},
		{ID: "ben", FullName: "Ben López", HourlyRate: rate(50), IsActive: true},
	}

	closed := func(id, emp string, start time.Time, length time.Duration) Shift {
		exit := start.Add(length)
		return Shift{ID: id, EmployeeID: emp, Entry: start, Exit: &exit, Duration: length}
	}

	all := []Shift{
		closed("1", "ben", monday.Add(9*time.Hour), 4*time.Hour),
		closed("2", "ana", monday.Add(9*time.Hour), 8*time.Hour),
	}

	result := Summarize(all, employees, window)
	require.Len(t, result, 2)

	// ana worked more hours even though ben earns more in total pay terms
	assert.Equal(t, "ana", result[0].Employee.ID)
	assert.Equal(t, "ben", result[1].Employee.ID)
}

func TestSummarizeFlagsAnomalousWeek(t *testing.T) {
	monday := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	now := monday.AddDate(0, 0, 4)
	window := testWeek.Window(now, 0)

	employees := []models.Employee{{ID: "ana", FullName: "Ana García", IsActive: true}}

	longExit := monday.Add(9*time.Hour + 19*time.Hour)
	normalExit := monday.AddDate(0, 0, 1).Add(17 * time.Hour)
	all := []Shift{
		{ID: "1", EmployeeID: "ana", Entry: monday.Add(9 * time.Hour), Exit: &longExit, Duration: 19 * time.Hour, IsAnomalous: true},
		{ID: "2", EmployeeID: "ana", Entry: monday.AddDate(0, 0, 1).Add(9 * time.Hour), Exit: &normalExit, Duration: 8 * time.Hour},
	}

	result := Summarize(all, employees, window)
	require.Len(t, result, 1)
	assert.True(t, result[0].HasAnomalousShift)
	assert.InDelta(t, 27.0, result[0].TotalHours, 1e-9)
	assert.Zero(t, result[0].EstimatedPay, "missing hourly rate pays nothing")
}
