package grievance

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Grievance struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	GrievanceID string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_grievance_number"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;not null;index:idx_grievances_employee"`

	Subject          string     `gorm:"type:varchar(200);not null"`
	Description      string     `gorm:"type:text;not null"`
	AgainstPerson    string     `gorm:"type:varchar(200)"`
	IncidentDate     *time.Time `gorm:"type:date"`
	IncidentLocation string     `gorm:"type:varchar(200)"`

	Priority    string `gorm:"type:varchar(20);not null;default:'MEDIUM'"`
	Status      string `gorm:"type:varchar(20);not null;default:'SUBMITTED';index:idx_grievances_status"`
	IsAnonymous bool   `gorm:"not null;default:false"`

	AssignedTo *uuid.UUID `gorm:"type:uuid"`
	AssignedAt *time.Time

	InvestigationSummary string `gorm:"type:text"`
	Resolution           string `gorm:"type:text"`
	ActionTaken          string `gorm:"type:text"`

	AcknowledgedAt *time.Time
	ResolvedAt     *time.Time
	ClosedAt       *time.Time

	Employee *GrievanceEmployee `gorm:"foreignKey:EmployeeID"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

type GrievanceEmployee struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeNumber string    `gorm:"column:employee_number"`
	FullName       string    `gorm:"column:full_name"`
}

func (GrievanceEmployee) TableName() string {
	return "employees"
}
