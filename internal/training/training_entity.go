package training

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TrainingProgram struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name            string          `gorm:"type:varchar(200);not null"`
	Code            string          `gorm:"type:varchar(20);not null;uniqueIndex:uq_training_program_code"`
	Description     string          `gorm:"type:text"`
	TrainerName     string          `gorm:"type:varchar(100);not null"`
	DurationHours   int             `gorm:"type:int;not null"`
	StartDate       time.Time       `gorm:"type:date;not null"`
	EndDate         time.Time       `gorm:"type:date;not null"`
	Location        string          `gorm:"type:varchar(200)"`
	MaxParticipants int             `gorm:"type:int;not null;default:20"`
	Budget          decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	IsActive        bool            `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

type TrainingParticipant struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProgramID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_training_participant"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_training_participant"`

	EnrollmentDate time.Time        `gorm:"type:date;not null"`
	CompletionDate *time.Time       `gorm:"type:date"`
	Status         string           `gorm:"type:varchar(20);not null;default:'ENROLLED'"`
	Score          *decimal.Decimal `gorm:"type:decimal(5,2)"`
	Feedback       string           `gorm:"type:text"`

	Program  *TrainingProgram     `gorm:"foreignKey:ProgramID"`
	Employee *ParticipantEmployee `gorm:"foreignKey:EmployeeID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type ParticipantEmployee struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeNumber string    `gorm:"column:employee_number"`
	FullName       string    `gorm:"column:full_name"`
}

func (ParticipantEmployee) TableName() string {
	return "employees"
}
