package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	EmploymentTypePermanent = "PERMANENT"
	EmploymentTypeContract  = "CONTRACT"
	EmploymentTypePartTime  = "PART_TIME"
	EmploymentTypeIntern    = "INTERN"
	EmploymentTypeProbation = "PROBATION"
	EmploymentTypeMTO       = "MTO"

	CategoryOvertime    = "OT"
	CategoryNonOvertime = "NON_OT"
)

// Employee binds a User identity to an organizational placement. The chain
// columns hold one node per hierarchy level, root first; department is the
// anchor used by authorization scoping.
type Employee struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	EmployeeNumber string    `gorm:"size:20;not null;uniqueIndex:uq_employee_number"`
	FullName       string    `gorm:"size:255;not null"`
	Email          string    `gorm:"size:255;not null;uniqueIndex:uq_employee_email"`
	Phone          string    `gorm:"size:50"`

	GroupID       *uuid.UUID `gorm:"type:uuid"`
	CompanyUnitID *uuid.UUID `gorm:"type:uuid;index"`
	DivisionID    *uuid.UUID `gorm:"type:uuid"`
	DepartmentID  *uuid.UUID `gorm:"type:uuid;index"`
	SectionID     *uuid.UUID `gorm:"type:uuid"`
	SubSectionID  *uuid.UUID `gorm:"type:uuid"`
	FloorID       *uuid.UUID `gorm:"type:uuid"`
	LineID        *uuid.UUID `gorm:"type:uuid"`
	DesignationID *uuid.UUID `gorm:"type:uuid"`

	EmploymentType     string     `gorm:"size:20;not null;default:'PERMANENT'"`
	EmployeeCategory   string     `gorm:"size:10;not null;default:'NON_OT'"`
	WorkShift          string     `gorm:"size:50"`
	WeekendDay         string     `gorm:"size:20"`
	JoiningDate        time.Time  `gorm:"not null"`
	ConfirmationDate   *time.Time
	ReportingManagerID *uuid.UUID `gorm:"type:uuid"`

	BankName          string `gorm:"size:255"`
	BankAccountNumber string `gorm:"size:50"`

	IsActive   bool `gorm:"not null;default:true"`
	ExitDate   *time.Time
	ExitReason string `gorm:"size:255"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
