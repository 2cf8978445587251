package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fichaje.app/fichaje/core/models"
	"fichaje.app/fichaje/shifts"
)

// ListEmployees returns the company's active employees. Soft-deleted ones are
// kept in the table (their historical entries still reference them) but are
// hidden from every listing.
func (s *Store) ListEmployees(ctx context.Context, companyID string) ([]models.Employee, error) {
	var employees []models.Employee
	if err := s.db(ctx).
		Where("company_id = ? AND is_active = ?", companyID, true).
		Order("created_at ASC").
		Find(&employees).Error; err != nil {
		return nil, &StoreError{Op: "list employees", Err: err}
	}
	return employees, nil
}

// ListAllEmployees includes soft-deleted employees. Shift projections and
// payroll summaries read through this one: deactivating an employee mid-week
// must not erase the hours they already worked.
func (s *Store) ListAllEmployees(ctx context.Context, companyID string) ([]models.Employee, error) {
	var employees []models.Employee
	if err := s.db(ctx).
		Where("company_id = ?", companyID).
		Order("created_at ASC").
		Find(&employees).Error; err != nil {
		return nil, &StoreError{Op: "list all employees", Err: err}
	}
	return employees, nil
}

func (s *Store) GetEmployee(ctx context.Context, id string) (*models.Employee, error) {
	var emp models.Employee
	if err := s.db(ctx).First(&emp, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &shifts.NotFoundError{Resource: "employee", ID: id}
		}
		return nil, &StoreError{Op: "get employee", Err: err}
	}
	return &emp, nil
}

func (s *Store) CreateEmployee(ctx context.Context, emp *models.Employee) error {
	if emp.ID == "" {
		emp.ID = uuid.NewString()
	}
	emp.IsActive = true
	if err := s.db(ctx).Create(emp).Error; err != nil {
		return &StoreError{Op: "create employee", Err: err}
	}
	return nil
}

type EmployeeUpdate struct {
	FullName   *string
	HourlyRate *float64
}

func (s *Store) UpdateEmployee(ctx context.Context, id string, upd EmployeeUpdate) (*models.Employee, error) {
	fields := map[string]any{}
	if upd.FullName != nil {
		fields["full_name"] = *upd.FullName
	}
	if upd.HourlyRate != nil {
		fields["hourly_rate"] = *upd.HourlyRate
	}
	if len(fields) == 0 {
		return s.GetEmployee(ctx, id)
	}

	res := s.db(ctx).Model(&models.Employee{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, &StoreError{Op: "update employee", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return nil, &shifts.NotFoundError{Resource: "employee", ID: id}
	}
	return s.GetEmployee(ctx, id)
}

// DeactivateEmployee soft-deletes: the row stays so old shifts keep their
// name and rate, but the employee disappears from the kiosk and the admin
// tables.
func (s *Store) DeactivateEmployee(ctx context.Context, id string) error {
	res := s.db(ctx).Model(&models.Employee{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return &StoreError{Op: "deactivate employee", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return &shifts.NotFoundError{Resource: "employee", ID: id}
	}
	return nil
}
