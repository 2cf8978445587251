// Package store is the persistence boundary: everything above it works on
// projections rebuilt from the rows it returns, nothing above it caches
// authoritative state.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fichaje.app/fichaje/core"
	"fichaje.app/fichaje/core/models"
	"fichaje.app/fichaje/shifts"
)

// StoreError wraps an underlying persistence failure. No retry happens here;
// retry policy, if any, belongs to the caller.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

type Store struct {
	dm *core.DatabaseManager
}

func New(dm *core.DatabaseManager) *Store {
	return &Store{dm: dm}
}

func (s *Store) db(ctx context.Context) *gorm.DB {
	return s.dm.GetDB(ctx)
}

// ListTimeEntries returns every entry for the company, newest first.
func (s *Store) ListTimeEntries(ctx context.Context, companyID string) ([]models.TimeEntry, error) {
	var entries []models.TimeEntry
	if err := s.db(ctx).
		Where("company_id = ?", companyID).
		Order("start_time DESC").
		Find(&entries).Error; err != nil {
		return nil, &StoreError{Op: "list time entries", Err: err}
	}
	return entries, nil
}

func (s *Store) ListTimeEntriesForEmployee(ctx context.Context, employeeID string) ([]models.TimeEntry, error) {
	var entries []models.TimeEntry
	if err := s.db(ctx).
		Where("employee_id = ?", employeeID).
		Order("start_time DESC").
		Find(&entries).Error; err != nil {
		return nil, &StoreError{Op: "list employee time entries", Err: err}
	}
	return entries, nil
}

func (s *Store) GetTimeEntry(ctx context.Context, id string) (*models.TimeEntry, error) {
	var entry models.TimeEntry
	if err := s.db(ctx).First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &shifts.NotFoundError{Resource: "time entry", ID: id}
		}
		return nil, &StoreError{Op: "get time entry", Err: err}
	}
	return &entry, nil
}

// CreateTimeEntry persists a manually created entry. Validation happens in
// the caller before this is reached.
func (s *Store) CreateTimeEntry(ctx context.Context, entry *models.TimeEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Source == "" {
		entry.Source = models.SourceManual
	}
	if err := s.db(ctx).Create(entry).Error; err != nil {
		return &StoreError{Op: "create time entry", Err: err}
	}
	return nil
}

// TimeEntryUpdate carries the new boundaries for a correction. Both fields
// are written in a single statement so a partial write cannot happen.
type TimeEntryUpdate struct {
	StartTime *time.Time
	EndTime   *time.Time
	Source    string
}

func (s *Store) UpdateTimeEntry(ctx context.Context, id string, upd TimeEntryUpdate) (*models.TimeEntry, error) {
	fields := map[string]any{}
	if upd.StartTime != nil {
		fields["start_time"] = *upd.StartTime
	}
	if upd.EndTime != nil {
		fields["end_time"] = *upd.EndTime
	}
	if upd.Source != "" {
		fields["source"] = upd.Source
	}
	if len(fields) == 0 {
		return s.GetTimeEntry(ctx, id)
	}

	res := s.db(ctx).Model(&models.TimeEntry{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, &StoreError{Op: "update time entry", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return nil, &shifts.NotFoundError{Resource: "time entry", ID: id}
	}
	return s.GetTimeEntry(ctx, id)
}

// DeleteTimeEntry removes the record entirely. Shifts have no soft delete.
func (s *Store) DeleteTimeEntry(ctx context.Context, id string) error {
	res := s.db(ctx).Delete(&models.TimeEntry{}, "id = ?", id)
	if res.Error != nil {
		return &StoreError{Op: "delete time entry", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return &shifts.NotFoundError{Resource: "time entry", ID: id}
	}
	return nil
}

// ClockEmployee toggles the employee's clock state in one transaction: close
// the open entry if there is one, otherwise open a new one. The open-entry
// row is locked for the duration of the transaction so two rapid clock
// actions cannot both observe "nothing open" and double-open.
func (s *Store) ClockEmployee(ctx context.Context, employeeID, companyID string, now time.Time) (*models.TimeEntry, error) {
	var result models.TimeEntry

	err := s.db(ctx).Transaction(func(tx *gorm.DB) error {
		var open models.TimeEntry
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("employee_id = ? AND end_time IS NULL", employeeID).
			Order("start_time DESC").
			First(&open).Error

		switch {
		case err == nil:
			// clock-out
			if err := tx.Model(&open).Update("end_time", now).Error; err != nil {
				return fmt.Errorf("close entry: %w", err)
			}
			open.EndTime = &now
			result = open
			return nil

		case errors.Is(err, gorm.ErrRecordNotFound):
			// clock-in
			entry := models.TimeEntry{
				ID:         uuid.NewString(),
				EmployeeID: employeeID,
				CompanyID:  companyID,
				StartTime:  now,
				Source:     models.SourceAutomatic,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return fmt.Errorf("open entry: %w", err)
			}
			result = entry
			return nil

		default:
			return fmt.Errorf("find open entry: %w", err)
		}
	})
	if err != nil {
		return nil, &StoreError{Op: "clock employee", Err: err}
	}
	return &result, nil
}

// CreateClockLogs bulk-inserts imported legacy rows.
func (s *Store) CreateClockLogs(ctx context.Context, logs []models.ClockLog) error {
	if len(logs) == 0 {
		return nil
	}
	if err := s.db(ctx).Create(&logs).Error; err != nil {
		return &StoreError{Op: "create clock logs", Err: err}
	}
	return nil
}

// ListClockLogs reads the legacy append-only rows still present in old
// installations, for the reconstructor's pairing path.
func (s *Store) ListClockLogs(ctx context.Context, companyID string) ([]models.ClockLog, error) {
	var logs []models.ClockLog
	if err := s.db(ctx).
		Where("company_id = ?", companyID).
		Order("timestamp ASC").
		Find(&logs).Error; err != nil {
		return nil, &StoreError{Op: "list clock logs", Err: err}
	}
	return logs, nil
}
