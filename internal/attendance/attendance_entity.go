package attendance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StatusPresent = "PRESENT"
	StatusAbsent  = "ABSENT"
	StatusHalfDay = "HALF_DAY"
	StatusLate    = "LATE"
	StatusOnLeave = "ON_LEAVE"
	StatusHoliday = "HOLIDAY"
	StatusWeekend = "WEEKEND"
)

// Attendance is one row per (employee, date); the unique index backs the
// duplicate check-in guard.
type Attendance struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	EmployeeID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_employee_date"`
	AttendanceDate time.Time       `gorm:"type:date;not null;uniqueIndex:uq_attendance_employee_date"`
	CheckIn        *time.Time      `gorm:"type:timestamptz"`
	CheckOut       *time.Time      `gorm:"type:timestamptz"`
	TotalHours     decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	OvertimeHours  decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	Status         string          `gorm:"type:varchar(20);not null;default:'PRESENT'"`
	Location       string          `gorm:"type:varchar(255)"`
	Notes          string          `gorm:"type:text"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (Attendance) TableName() string { return "attendances" }

type Holiday struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"size:255;not null"`
	HolidayDate time.Time `gorm:"type:date;not null;uniqueIndex"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Holiday) TableName() string { return "holidays" }

// MonthlySummary aggregates one employee's month for payroll and reporting.
type MonthlySummary struct {
	EmployeeID    string          `json:"employee_id"`
	Month         int             `json:"month"`
	Year          int             `json:"year"`
	PresentDays   int             `json:"present_days"`
	AbsentDays    int             `json:"absent_days"`
	LeaveDays     int             `json:"leave_days"`
	HalfDays      int             `json:"half_days"`
	TotalHours    decimal.Decimal `json:"total_hours"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
}
