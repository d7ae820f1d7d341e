package settlement

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type EmployeeSettlement struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SettlementID string    `gorm:"type:varchar(50);not null;uniqueIndex:uq_settlement_number"`
	EmployeeID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_settlement_employee"`

	ExitReason        string     `gorm:"type:varchar(30);not null;default:'RESIGNATION'"`
	ExitReasonDetails string     `gorm:"type:text"`
	ResignationDate   *time.Time `gorm:"type:date"`
	LastWorkingDate   time.Time  `gorm:"type:date;not null"`
	SettlementDate    time.Time  `gorm:"type:date;not null;index"`

	RequiredNoticeDays int  `gorm:"type:int;not null;default:30"`
	ActualNoticeDays   int  `gorm:"type:int;not null;default:0"`
	NoticeShortfall    int  `gorm:"type:int;not null;default:0"`
	NoticePeriodServed bool `gorm:"not null;default:false"`

	PendingSalary       decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	LeaveEncashment     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Gratuity            decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	NoticePay           decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	BonusPayable        decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	OvertimePay         decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Reimbursements      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	ProvidentFundAmount decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	OtherPayments       decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`

	NoticeRecovery      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	LoanRecovery        decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	AdvanceRecovery     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	AssetRecovery       decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	TrainingBondPenalty decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	DamageCompensation  decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	TaxDeduction        decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	OtherDeductions     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`

	TotalPayable        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalDeductible     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	NetSettlementAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	EncashableLeaveDays decimal.Decimal `gorm:"type:decimal(5,1);not null;default:0"`

	Status string `gorm:"type:varchar(20);not null;default:'INITIATED';index:idx_settlements_status"`

	CalculatedBy *uuid.UUID `gorm:"type:uuid"`
	CalculatedAt *time.Time
	ApprovedBy   *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt   *time.Time

	PaymentMode      string     `gorm:"type:varchar(50)"`
	PaymentReference string     `gorm:"type:varchar(100)"`
	PaymentDate      *time.Time `gorm:"type:date"`

	Remarks string `gorm:"type:text"`

	Employee *SettlementEmployee `gorm:"foreignKey:EmployeeID;references:ID"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

type SettlementEmployee struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeNumber string    `gorm:"column:employee_number"`
	FullName       string    `gorm:"column:full_name"`
}

func (SettlementEmployee) TableName() string {
	return "employees"
}
