package recruitment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type JobPosting struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title   string    `gorm:"type:varchar(200);not null"`
	JobCode string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_job_posting_code"`

	DepartmentID *uuid.UUID `gorm:"type:uuid;index"`
	Vacancies    int        `gorm:"not null;default:1"`
	Description  string     `gorm:"type:text;not null"`
	Requirements string     `gorm:"type:text"`

	SalaryRangeMin decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	SalaryRangeMax decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	EmploymentType string          `gorm:"type:varchar(20);not null"`
	Location       string          `gorm:"type:varchar(100)"`
	Deadline       time.Time       `gorm:"type:date;not null"`

	Status   string     `gorm:"type:varchar(20);not null;default:'OPEN';index:idx_job_postings_status"`
	PostedBy *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (JobPosting) TableName() string {
	return "job_postings"
}

type Candidate struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	JobPostingID uuid.UUID `gorm:"type:uuid;not null;index:idx_candidates_posting"`

	FirstName string `gorm:"type:varchar(100);not null"`
	LastName  string `gorm:"type:varchar(100);not null"`
	Email     string `gorm:"type:varchar(255);not null"`
	Phone     string `gorm:"type:varchar(15);not null"`

	CoverLetter      string           `gorm:"type:text"`
	CurrentCTC       *decimal.Decimal `gorm:"type:decimal(10,2)"`
	ExpectedCTC      *decimal.Decimal `gorm:"type:decimal(10,2)"`
	NoticePeriodDays int              `gorm:"not null;default:0"`

	Status      string    `gorm:"type:varchar(20);not null;default:'APPLIED';index:idx_candidates_status"`
	AppliedDate time.Time `gorm:"not null"`

	JobPosting *JobPosting `gorm:"foreignKey:JobPostingID"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Candidate) TableName() string {
	return "candidates"
}
