package shifts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsAnomalousClosedShiftBoundary(t *testing.T) {
	policy := Policy{MaxShiftDuration: 18 * time.Hour}
	entry := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	now := entry.Add(72 * time.Hour)

	tests := []struct {
		name     string
		length   time.Duration
		expected bool
	}{
		{"well under the limit", 8 * time.Hour, false},
		{"exactly at the limit", 18 * time.Hour, false},
		{"one second over", 18*time.Hour + time.Second, true},
		{"far over", 30 * time.Hour, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exit := entry.Add(tt.length)
			s := Shift{Entry: entry, Exit: &exit, Duration: tt.length}
			assert.Equal(t, tt.expected, policy.IsAnomalous(s, now))
		})
	}
}

func TestIsAnomalousOpenShiftTracksNow(t *testing.T) {
	policy := Policy{MaxShiftDuration: 18 * time.Hour}
	entry := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	s := Shift{Entry: entry, IsOpen: true}

	assert.False(t, policy.IsAnomalous(s, entry.Add(17*time.Hour)))
	assert.False(t, policy.IsAnomalous(s, entry.Add(18*time.Hour)))
	assert.True(t, policy.IsAnomalous(s, entry.Add(18*time.Hour+time.Second)))

	// Scenario: clock-in Monday 09:00, now Wednesday 09:01
	assert.True(t, policy.IsAnomalous(s, entry.Add(48*time.Hour+time.Minute)))
}
