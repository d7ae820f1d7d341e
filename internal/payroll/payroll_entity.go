package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SalaryStructure struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_salary_structures_employee"`

	BasicSalary      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	HouseRent        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Medical          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Conveyance       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	FoodAllowance    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	SpecialAllowance decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	MobileAllowance  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	OtherAllowance   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	GrossSalary      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	EffectiveDate time.Time `gorm:"type:date;not null"`
	IsActive      bool      `gorm:"not null;default:true;index:idx_salary_structures_employee"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

type Payroll struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID        uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_payroll_employee_period"`
	SalaryStructureID *uuid.UUID `gorm:"type:uuid"`

	Month int `gorm:"type:int;not null;uniqueIndex:uq_payroll_employee_period"`
	Year  int `gorm:"type:int;not null;uniqueIndex:uq_payroll_employee_period"`

	WorkingDays   int             `gorm:"type:int;not null;default:30"`
	PresentDays   int             `gorm:"type:int;not null;default:0"`
	AbsentDays    int             `gorm:"type:int;not null;default:0"`
	LeaveDays     int             `gorm:"type:int;not null;default:0"`
	OvertimeHours decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`

	BasicSalary     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Allowances      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	GrossEarnings   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PFDeduction     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	LoanDeduction   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	OtherDeductions decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalDeductions decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	NetSalary       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	Status      string     `gorm:"type:varchar(20);not null;default:'DRAFT';index:idx_payrolls_status"`
	GeneratedBy uuid.UUID  `gorm:"type:uuid;not null"`
	ApprovedBy  *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt  *time.Time
	PaidAt      *time.Time

	Employee *PayrollEmployee `gorm:"foreignKey:EmployeeID;references:ID"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

type PayrollEmployee struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeNumber string    `gorm:"column:employee_number"`
	FullName       string    `gorm:"column:full_name"`
}

func (PayrollEmployee) TableName() string {
	return "employees"
}
