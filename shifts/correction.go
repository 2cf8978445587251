package shifts

import "time"

// Correction validation. All rules run before any mutation is attempted: a
// failed validation means the store is never touched.

// ManualExitBounds computes the allowed exit range for closing an anomalous
// open shift: no earlier than the entry, no later than entry+max, and never
// in the future.
func ManualExitBounds(entry, now time.Time, max time.Duration) (minDate, maxDate time.Time) {
	minDate = entry
	maxDate = entry.Add(max)
	if maxDate.After(now) {
		maxDate = now
	}
	return minDate, maxDate
}

// ValidateManualExit checks an exit time supplied to close an open shift.
func ValidateManualExit(exit *time.Time, entry, now time.Time, max time.Duration) error {
	if exit == nil {
		return NewValidationError("an exit time is required")
	}
	if exit.After(now) {
		return NewValidationError("exit time cannot be in the future")
	}
	minDate, maxDate := ManualExitBounds(entry, now, max)
	if exit.Before(minDate) || exit.After(maxDate) {
		return NewValidationError("exit time must fall between the shift start and %s later", max)
	}
	return nil
}

// ValidateEditShift checks new boundaries for an already closed shift. The
// entry may be arbitrarily old; only the exit is held to the no-future rule.
func ValidateEditShift(entry, exit *time.Time, now time.Time, max time.Duration) error {
	if entry == nil || exit == nil {
		return NewValidationError("both entry and exit times are required")
	}
	if !exit.After(*entry) {
		return NewValidationError("exit time must be after the entry time")
	}
	if exit.Sub(*entry) > max {
		return NewValidationError("shift cannot exceed %s", max)
	}
	if exit.After(now) {
		return NewValidationError("exit time cannot be in the future")
	}
	return nil
}

// ValidateAddShift checks an admin-created past shift. Manual creation always
// produces a closed entry, so both boundaries are mandatory and neither may
// be in the future.
func ValidateAddShift(employeeID string, entry, exit *time.Time, now time.Time, max time.Duration) error {
	if employeeID == "" || entry == nil || exit == nil {
		return NewValidationError("employee, entry time and exit time are all required")
	}
	if entry.After(now) || exit.After(now) {
		return NewValidationError("shift times cannot be in the future")
	}
	if !exit.After(*entry) {
		return NewValidationError("exit time must be after the entry time")
	}
	if exit.Sub(*entry) > max {
		return NewValidationError("shift cannot exceed %s", max)
	}
	return nil
}

// ClockGuard carries the thresholds consulted before a kiosk clock action.
type ClockGuard struct {
	MaxShiftDuration     time.Duration
	MinTimeBetweenShifts time.Duration
}

// CheckClockOut guards a SALIDA. last is the employee's most recent shift,
// nil when they have none.
func (g ClockGuard) CheckClockOut(last *Shift, now time.Time) error {
	if last == nil || !last.IsOpen {
		return &ConflictError{Reason: "no open entry to close"}
	}
	if now.Sub(last.Entry) > g.MaxShiftDuration {
		return NewValidationError("open shift exceeds %s and needs a manual correction", g.MaxShiftDuration)
	}
	return nil
}

// CheckClockIn guards an ENTRADA. A clock-in right after a clock-out is
// suspicious (usually a double tap) and is rejected so the kiosk can ask for
// confirmation.
func (g ClockGuard) CheckClockIn(last *Shift, now time.Time) error {
	if last != nil && last.IsOpen {
		return &ConflictError{Reason: "employee already has an open entry"}
	}
	if last != nil && last.Exit != nil && now.Sub(*last.Exit) < g.MinTimeBetweenShifts {
		return &ConflictError{Reason: "clocked out moments ago, confirm before re-entering"}
	}
	return nil
}
