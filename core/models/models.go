package models

import "time"

type Employee struct {
	ID         string   `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	CompanyID  string   `gorm:"column:company_id;type:varchar(36);not null;index" json:"companyId"`
	FullName   string   `gorm:"column:full_name;type:varchar(255);not null" json:"fullName"`
	HourlyRate *float64 `gorm:"column:hourly_rate;type:decimal(10,2)" json:"hourlyRate"`
	IsActive   bool     `gorm:"column:is_active;not null;default:true" json:"isActive"`

	CreatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create" json:"-"`
	UpdatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP on update CURRENT_TIMESTAMP" json:"-"`
}

func (Employee) TableName() string {
	return "employees"
}

// TimeEntry is the unified clock record: start and end live on the same row.
// A NULL end_time means the employee is still clocked in.
type TimeEntry struct {
	ID         string     `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	EmployeeID string     `gorm:"column:employee_id;type:varchar(36);not null;index" json:"employeeId"`
	CompanyID  string     `gorm:"column:company_id;type:varchar(36);not null;index" json:"companyId"`
	StartTime  time.Time  `gorm:"column:start_time;type:datetime;not null" json:"start_time"`
	EndTime    *time.Time `gorm:"column:end_time;type:datetime" json:"end_time"`
	Source     string     `gorm:"column:source;type:varchar(50);not null;default:'Automático'" json:"source"`

	Employee Employee `gorm:"foreignKey:EmployeeID;references:ID" json:"-"`

	CreatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create" json:"-"`
	UpdatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP on update CURRENT_TIMESTAMP" json:"-"`
}

func (TimeEntry) TableName() string {
	return "time_entries"
}

func (t *TimeEntry) IsOpen() bool {
	return t.EndTime == nil
}

// Entry sources, kept for parity with the historical sheet column.
const (
	SourceAutomatic  = "Automático"
	SourceManual     = "Manual"
	SourceManualEdit = "Manual Edit"
)

// ClockLog is the legacy append-only representation: one row per ENTRADA or
// SALIDA event. Still present in old installations; new writes always go to
// time_entries.
type ClockLog struct {
	ID         string    `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	EmployeeID string    `gorm:"column:employee_id;type:varchar(36);not null;index" json:"employeeId"`
	CompanyID  string    `gorm:"column:company_id;type:varchar(36);not null;index" json:"companyId"`
	Kind       string    `gorm:"column:kind;type:varchar(10);not null" json:"type"`
	Timestamp  time.Time `gorm:"column:timestamp;type:datetime;not null" json:"timestamp"`
	Source     string    `gorm:"column:source;type:varchar(50);not null;default:'Automático'" json:"source"`
}

func (ClockLog) TableName() string {
	return "clock_logs"
}

const (
	KindEntrada = "ENTRADA"
	KindSalida  = "SALIDA"
)
