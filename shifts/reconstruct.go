package shifts

import (
	"fmt"
	"log"
	"sort"
	"time"

	"fichaje.app/fichaje/core/models"
)

// RebuildFromLogs reconstructs shifts from the legacy append-only log rows,
// where entry and exit are independent ENTRADA/SALIDA events that have to be
// paired per employee.
//
// Rows are sorted by timestamp first, so out-of-order storage is tolerated.
// A second ENTRADA while one is already open orphans the first: it is emitted
// immediately as an open anomalous shift (a missed clock-out). A SALIDA with
// no open ENTRADA has nothing to pair with and is dropped, logged only.
func RebuildFromLogs(logs []models.ClockLog, names map[string]string, policy Policy, now time.Time) []Shift {
	if len(logs) == 0 {
		return []Shift{}
	}

	sorted := make([]models.ClockLog, len(logs))
	copy(sorted, logs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	// at most one open ENTRADA per employee
	open := make(map[string]models.ClockLog)
	var shifts []Shift

	for _, row := range sorted {
		switch row.Kind {
		case models.KindEntrada:
			if prior, ok := open[row.EmployeeID]; ok {
				shifts = append(shifts, orphanShift(prior, names))
			}
			open[row.EmployeeID] = row

		case models.KindSalida:
			entry, ok := open[row.EmployeeID]
			if !ok {
				log.Printf("dropping orphan SALIDA for employee %s at %s", row.EmployeeID, row.Timestamp.Format(time.RFC3339))
				continue
			}
			exit := row.Timestamp
			s := Shift{
				ID:           pairID(entry),
				EmployeeID:   entry.EmployeeID,
				EmployeeName: displayName(names, entry.EmployeeID),
				Entry:        entry.Timestamp,
				Exit:         &exit,
				Duration:     exit.Sub(entry.Timestamp),
			}
			s.IsAnomalous = policy.IsAnomalous(s, now)
			shifts = append(shifts, s)
			delete(open, row.EmployeeID)

		default:
			log.Printf("dropping log row with unknown kind %q for employee %s", row.Kind, row.EmployeeID)
		}
	}

	// whoever is still open yields one open shift
	for _, entry := range open {
		s := Shift{
			ID:           pairID(entry),
			EmployeeID:   entry.EmployeeID,
			EmployeeName: displayName(names, entry.EmployeeID),
			Entry:        entry.Timestamp,
			IsOpen:       true,
		}
		s.IsAnomalous = policy.IsAnomalous(s, now)
		shifts = append(shifts, s)
	}

	sort.SliceStable(shifts, func(i, j int) bool {
		return shifts[i].Entry.After(shifts[j].Entry)
	})
	return shifts
}

// orphanShift emits the superseded ENTRADA as an open shift. It is always
// anomalous: a newer ENTRADA proves the clock-out was missed.
func orphanShift(entry models.ClockLog, names map[string]string) Shift {
	return Shift{
		ID:           pairID(entry),
		EmployeeID:   entry.EmployeeID,
		EmployeeName: displayName(names, entry.EmployeeID),
		Entry:        entry.Timestamp,
		IsOpen:       true,
		IsAnomalous:  true,
	}
}

func pairID(entry models.ClockLog) string {
	if entry.ID != "" {
		return entry.ID
	}
	// legacy sheet rows have no id of their own
	return fmt.Sprintf("%s-%s", entry.EmployeeID, entry.Timestamp.Format(time.RFC3339))
}

func displayName(names map[string]string, employeeID string) string {
	if name, ok := names[employeeID]; ok && name != "" {
		return name
	}
	return employeeID
}
