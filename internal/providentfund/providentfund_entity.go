package providentfund

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProvidentFund struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_provident_fund_employee"`

	EmployeeContributionPercent decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	EmployerContributionPercent decimal.Decimal `gorm:"type:decimal(5,2);not null"`

	TotalEmployeeContribution decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalEmployerContribution decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalBalance              decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	IsActive bool `gorm:"not null;default:true"`

	Employee *FundEmployee `gorm:"foreignKey:EmployeeID"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (ProvidentFund) TableName() string {
	return "provident_funds"
}

type FundEmployee struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeNumber string    `gorm:"column:employee_number"`
	FullName       string    `gorm:"column:full_name"`
}

func (FundEmployee) TableName() string {
	return "employees"
}
