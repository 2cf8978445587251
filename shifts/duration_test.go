package shifts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		name     string
		d        time.Duration
		expected string
	}{
		{"zero", 0, "00:00:00"},
		{"seconds only", 42 * time.Second, "00:00:42"},
		{"minutes and seconds", 5*time.Minute + 3*time.Second, "00:05:03"},
		{"hours", 9*time.Hour + 30*time.Minute, "09:30:00"},
		{"past a day", 26*time.Hour + 5*time.Second, "26:00:05"},
		{"negative clamps to zero", -time.Minute, "00:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatElapsed(tt.d))
		})
	}
}

func TestLiveViews(t *testing.T) {
	now := time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)
	exit := now.Add(-time.Hour)

	all := []Shift{
		{ID: "open", EmployeeID: "ana", Entry: now.Add(-90 * time.Minute), IsOpen: true},
		{ID: "closed", EmployeeID: "ben", Entry: exit.Add(-8 * time.Hour), Exit: &exit},
	}

	views := LiveViews(all, now)
	require.Len(t, views, 1)
	assert.Equal(t, "open", views[0].ID)
	assert.Equal(t, "01:30:00", views[0].LiveDuration)

	// a later tick recomputes without touching the shift
	later := LiveViews(all, now.Add(time.Second))
	assert.Equal(t, "01:30:01", later[0].LiveDuration)
	assert.Equal(t, all[0], views[0].Shift)
}
