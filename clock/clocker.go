// Package clock drives the employee-facing kiosk: the clock toggle, the
// guards that run before it, and the short undo window after a clock-in.
package clock

import (
	"context"
	"sync"
	"time"

	"fichaje.app/fichaje/core/models"
	"fichaje.app/fichaje/shifts"
)

// EntryStore is the slice of the persistence layer the kiosk needs.
type EntryStore interface {
	ClockEmployee(ctx context.Context, employeeID, companyID string, now time.Time) (*models.TimeEntry, error)
	DeleteTimeEntry(ctx context.Context, id string) error
	ListTimeEntriesForEmployee(ctx context.Context, employeeID string) ([]models.TimeEntry, error)
}

type pendingClockIn struct {
	entryID string
	at      time.Time
	timer   *time.Timer
}

type Clocker struct {
	store        EntryStore
	guard        shifts.ClockGuard
	policy       shifts.Policy
	companyID    string
	cancelWindow time.Duration

	now func() time.Time

	mu      sync.Mutex
	pending map[string]*pendingClockIn
}

func New(st EntryStore, guard shifts.ClockGuard, companyID string, cancelWindow time.Duration) *Clocker {
	return &Clocker{
		store:        st,
		guard:        guard,
		policy:       shifts.Policy{MaxShiftDuration: guard.MaxShiftDuration},
		companyID:    companyID,
		cancelWindow: cancelWindow,
		now:          time.Now,
		pending:      make(map[string]*pendingClockIn),
	}
}

// Clock runs the guards and toggles the employee's clock state. force skips
// the fast re-entry confirmation (the kiosk sets it after the employee
// confirms the warning dialog). A clock-in stays cancellable for the
// configured window; the timer firing makes it final.
func (c *Clocker) Clock(ctx context.Context, employeeID string, force bool) (*models.TimeEntry, error) {
	c.mu.Lock()
	if _, waiting := c.pending[employeeID]; waiting {
		c.mu.Unlock()
		return nil, &shifts.ConflictError{Reason: "a clock-in is still pending for this employee"}
	}
	c.mu.Unlock()

	now := c.now()
	last, err := c.lastShift(ctx, employeeID, now)
	if err != nil {
		return nil, err
	}

	clockingOut := last != nil && last.IsOpen
	if clockingOut {
		if err := c.guard.CheckClockOut(last, now); err != nil {
			return nil, err
		}
	} else if !force {
		if err := c.guard.CheckClockIn(last, now); err != nil {
			return nil, err
		}
	}

	entry, err := c.store.ClockEmployee(ctx, employeeID, c.companyID, now)
	if err != nil {
		return nil, err
	}

	if entry.IsOpen() {
		c.registerPending(employeeID, entry.ID, now)
	}
	return entry, nil
}

// CancelPending undoes a clock-in while its window is still open. The
// corresponding entry is deleted as if it never happened.
func (c *Clocker) CancelPending(ctx context.Context, employeeID string) error {
	c.mu.Lock()
	p, ok := c.pending[employeeID]
	if ok {
		p.timer.Stop()
		delete(c.pending, employeeID)
	}
	c.mu.Unlock()

	if !ok {
		return &shifts.ConflictError{Reason: "no cancellable clock-in for this employee"}
	}
	return c.store.DeleteTimeEntry(ctx, p.entryID)
}

// Pending reports whether the employee still has an undoable clock-in.
func (c *Clocker) Pending(employeeID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.pending[employeeID]
	return ok
}

func (c *Clocker) registerPending(employeeID, entryID string, at time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := &pendingClockIn{entryID: entryID, at: at}
	p.timer = time.AfterFunc(c.cancelWindow, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		// committed now; cancellation no longer possible
		if current, ok := c.pending[employeeID]; ok && current == p {
			delete(c.pending, employeeID)
		}
	})
	c.pending[employeeID] = p
}

func (c *Clocker) lastShift(ctx context.Context, employeeID string, now time.Time) (*shifts.Shift, error) {
	entries, err := c.store.ListTimeEntriesForEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	all := shifts.FromEntries(entries, nil, c.policy, now)
	if len(all) == 0 {
		return nil, nil
	}
	return &all[0], nil
}
