package performance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PerformanceReview struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_performance_reviews_employee"`
	ReviewerID uuid.UUID `gorm:"type:uuid;not null"`

	ReviewType        string    `gorm:"type:varchar(20);not null"`
	ReviewPeriodStart time.Time `gorm:"type:date;not null"`
	ReviewPeriodEnd   time.Time `gorm:"type:date;not null"`
	ReviewDate        time.Time `gorm:"type:date;not null"`

	QualityOfWork int `gorm:"type:int;not null"`
	Productivity  int `gorm:"type:int;not null"`
	Communication int `gorm:"type:int;not null"`
	Teamwork      int `gorm:"type:int;not null"`
	Initiative    int `gorm:"type:int;not null"`
	Punctuality   int `gorm:"type:int;not null"`

	OverallRating decimal.Decimal `gorm:"type:decimal(3,2);not null"`

	Strengths          string `gorm:"type:text"`
	AreasOfImprovement string `gorm:"type:text"`
	GoalsForNextPeriod string `gorm:"type:text"`
	Comments           string `gorm:"type:text"`

	Employee *ReviewEmployee `gorm:"foreignKey:EmployeeID"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

type ReviewEmployee struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeNumber string    `gorm:"column:employee_number"`
	FullName       string    `gorm:"column:full_name"`
}

func (ReviewEmployee) TableName() string {
	return "employees"
}
