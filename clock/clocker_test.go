package clock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fichaje.app/fichaje/core/models"
	"fichaje.app/fichaje/shifts"
)

// fakeStore keeps entries in memory and mirrors the real store's toggle
// semantics closely enough for the kiosk flow.
type fakeStore struct {
	mu      sync.Mutex
	entries map[string]*models.TimeEntry
}

func newFakeStore() *fakeStore {
	return &fakeStore{entries: make(map[string]*models.TimeEntry)}
}

func (f *fakeStore) ClockEmployee(_ context.Context, employeeID, companyID string, now time.Time) (*models.TimeEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.entries {
		if e.EmployeeID == employeeID && e.EndTime == nil {
			t := now
			e.EndTime = &t
			copied := *e
			return &copied, nil
		}
	}
	entry := &models.TimeEntry{
		ID:         uuid.NewString(),
		EmployeeID: employeeID,
		CompanyID:  companyID,
		StartTime:  now,
		Source:     models.SourceAutomatic,
	}
	f.entries[entry.ID] = entry
	copied := *entry
	return &copied, nil
}

func (f *fakeStore) DeleteTimeEntry(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.entries[id]; !ok {
		return &shifts.NotFoundError{Resource: "time entry", ID: id}
	}
	delete(f.entries, id)
	return nil
}

func (f *fakeStore) ListTimeEntriesForEmployee(_ context.Context, employeeID string) ([]models.TimeEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.TimeEntry
	for _, e := range f.entries {
		if e.EmployeeID == employeeID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}

var testGuard = shifts.ClockGuard{
	MaxShiftDuration:     18 * time.Hour,
	MinTimeBetweenShifts: 5 * time.Minute,
}

func newTestClocker(st EntryStore, window time.Duration) *Clocker {
	return New(st, testGuard, "c1", window)
}

func TestClockToggles(t *testing.T) {
	st := newFakeStore()
	c := newTestClocker(st, time.Minute)
	base := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }

	in, err := c.Clock(context.Background(), "ana", false)
	require.NoError(t, err)
	assert.True(t, in.IsOpen())

	// toggle again well clear of the fast re-entry window
	c.now = func() time.Time { return base.Add(8 * time.Hour) }
	out, err := c.Clock(context.Background(), "ana", false)
	require.NoError(t, err)
	require.NotNil(t, out.EndTime)
	assert.Equal(t, in.ID, out.ID)
	assert.Equal(t, base.Add(8*time.Hour), *out.EndTime)
}

func TestClockRejectsWhilePending(t *testing.T) {
	st := newFakeStore()
	c := newTestClocker(st, time.Minute)

	_, err := c.Clock(context.Background(), "ana", false)
	require.NoError(t, err)
	require.True(t, c.Pending("ana"))

	_, err = c.Clock(context.Background(), "ana", false)
	assert.True(t, shifts.IsConflict(err))
}

func TestCancelWithinWindowDeletesEntry(t *testing.T) {
	st := newFakeStore()
	c := newTestClocker(st, time.Minute)

	_, err := c.Clock(context.Background(), "ana", false)
	require.NoError(t, err)
	require.Equal(t, 1, st.count())

	require.NoError(t, c.CancelPending(context.Background(), "ana"))
	assert.Equal(t, 0, st.count())
	assert.False(t, c.Pending("ana"))

	// a second cancel has nothing to undo
	assert.True(t, shifts.IsConflict(c.CancelPending(context.Background(), "ana")))
}

func TestWindowExpiryCommitsClockIn(t *testing.T) {
	st := newFakeStore()
	c := newTestClocker(st, 20*time.Millisecond)

	_, err := c.Clock(context.Background(), "ana", false)
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return !c.Pending("ana") }, time.Second, 5*time.Millisecond)

	// committed: cancellation refused, entry stays
	assert.True(t, shifts.IsConflict(c.CancelPending(context.Background(), "ana")))
	assert.Equal(t, 1, st.count())
}

func TestFastReentryNeedsForce(t *testing.T) {
	st := newFakeStore()
	c := newTestClocker(st, time.Minute)
	base := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)

	c.now = func() time.Time { return base }
	_, err := c.Clock(context.Background(), "ana", false)
	require.NoError(t, err)
	require.NoError(t, c.CancelPending(context.Background(), "ana")) // clear pending state

	// work a shift and clock out
	c.now = func() time.Time { return base }
	_, err = c.Clock(context.Background(), "ana", true)
	require.NoError(t, err)
	c.pendingClear("ana")
	c.now = func() time.Time { return base.Add(8 * time.Hour) }
	_, err = c.Clock(context.Background(), "ana", false)
	require.NoError(t, err)

	// two minutes later the double tap is challenged
	c.now = func() time.Time { return base.Add(8*time.Hour + 2*time.Minute) }
	_, err = c.Clock(context.Background(), "ana", false)
	assert.True(t, shifts.IsConflict(err))

	// confirming goes through
	_, err = c.Clock(context.Background(), "ana", true)
	assert.NoError(t, err)
}

func TestClockOutOfOverlongShiftIsRefused(t *testing.T) {
	st := newFakeStore()
	c := newTestClocker(st, time.Minute)
	base := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)

	c.now = func() time.Time { return base }
	_, err := c.Clock(context.Background(), "ana", false)
	require.NoError(t, err)
	c.pendingClear("ana")

	// 19 hours later the shift needs a manual correction, not a clock-out
	c.now = func() time.Time { return base.Add(19 * time.Hour) }
	_, err = c.Clock(context.Background(), "ana", false)
	assert.True(t, shifts.IsValidation(err))
}

// pendingClear drops the undo state without deleting the entry, standing in
// for the window timer in tests that need determinism.
func (c *Clocker) pendingClear(employeeID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if p, ok := c.pending[employeeID]; ok {
		p.timer.Stop()
		delete(c.pending, employeeID)
	}
}
