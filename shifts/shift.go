package shifts

import (
	"sort"
	"time"

	"fichaje.app/fichaje/core/models"
	"fichaje.app/fichaje/utils"
)

// Shift is a derived entry/exit interval for one employee. It is rebuilt from
// the store on every read and never mutated in place; corrections go through
// the store and produce a fresh read cycle.
type Shift struct {
	ID           string
	EmployeeID   string
	EmployeeName string
	Entry        time.Time
	Exit         *time.Time
	Duration     time.Duration
	IsOpen       bool
	IsAnomalous  bool
}

// OpenShift is the kiosk-facing view of an open Shift with a live elapsed
// duration, recomputed on every tick.
type OpenShift struct {
	Shift
	LiveDuration string
}

// EmployeeNames builds the id -> display name lookup used when projecting
// shifts for the admin tables.
func EmployeeNames(employees []models.Employee) map[string]string {
	names := make(map[string]string, len(employees))
	for _, e := range employees {
		names[e.ID] = e.FullName
	}
	return names
}

// FromEntries projects unified time entries into shifts. Each entry carries
// its own start and end, so this is a 1:1 mapping; the pairing machinery in
// reconstruct.go only exists for the legacy log-row shape.
//
// The result is ordered by entry time descending (most recent first).
func FromEntries(entries []models.TimeEntry, names map[string]string, policy Policy, now time.Time) []Shift {
	result := make([]Shift, 0, len(entries))
	for _, te := range entries {
		s := Shift{
			ID:           te.ID,
			EmployeeID:   te.EmployeeID,
			EmployeeName: names[te.EmployeeID],
			Entry:        te.StartTime,
			Exit:         te.EndTime,
			IsOpen:       te.EndTime == nil,
		}
		if s.EmployeeName == "" {
			s.EmployeeName = te.EmployeeID
		}
		if te.EndTime != nil {
			s.Duration = te.EndTime.Sub(te.StartTime)
		}
		s.IsAnomalous = policy.IsAnomalous(s, now)
		result = append(result, s)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Entry.After(result[j].Entry)
	})
	return result
}

// Open filters to the shifts that are still running.
func Open(shifts []Shift) []Shift {
	return utils.Filter(shifts, func(s Shift) bool { return s.IsOpen })
}
