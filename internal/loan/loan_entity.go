package loan

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type LoanType struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name            string          `gorm:"type:varchar(100);not null;uniqueIndex:uq_loan_type_name"`
	MaxAmount       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	InterestRate    decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	MaxTenureMonths int             `gorm:"type:int;not null"`
	Description     string          `gorm:"type:text"`
	IsActive        bool            `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

type Loan struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_loans_employee"`
	LoanTypeID uuid.UUID `gorm:"type:uuid;not null"`

	LoanAmount         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	InterestRate       decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	TenureMonths       int             `gorm:"type:int;not null"`
	MonthlyInstallment decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TotalPayable       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PaidAmount         decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	RemainingAmount    decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	ApplicationDate  time.Time  `gorm:"type:date;not null"`
	ApprovalDate     *time.Time `gorm:"type:date"`
	DisbursementDate *time.Time `gorm:"type:date"`

	Purpose string `gorm:"type:text"`
	Status  string `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_loans_status"`

	ApprovedBy *uuid.UUID `gorm:"type:uuid"`

	LoanType *LoanType     `gorm:"foreignKey:LoanTypeID"`
	Employee *LoanEmployee `gorm:"foreignKey:EmployeeID"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// LoanEmployee is a read-only projection of the employees table used for
// response enrichment.
type LoanEmployee struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeNumber string    `gorm:"column:employee_number"`
	FullName       string    `gorm:"column:full_name"`
}

func (LoanEmployee) TableName() string {
	return "employees"
}
