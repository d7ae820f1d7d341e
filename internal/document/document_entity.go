package document

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentCategory struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name           string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_document_category_name"`
	Code           string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_document_category_code"`
	Description    string    `gorm:"type:text"`
	RequiresExpiry bool      `gorm:"not null;default:false"`
	IsMandatory    bool      `gorm:"not null;default:false"`
	IsActive       bool      `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (DocumentCategory) TableName() string {
	return "document_categories"
}

type Document struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_documents_employee"`
	CategoryID uuid.UUID `gorm:"type:uuid;not null;index:idx_documents_category"`

	Title            string     `gorm:"type:varchar(200);not null"`
	DocumentNumber   string     `gorm:"type:varchar(100)"`
	Description      string     `gorm:"type:text"`
	IssuingAuthority string     `gorm:"type:varchar(200)"`
	IssueDate        *time.Time `gorm:"type:date"`
	ExpiryDate       *time.Time `gorm:"type:date;index:idx_documents_expiry"`

	Status            string     `gorm:"type:varchar(30);not null;default:'PENDING_VERIFICATION';index:idx_documents_status"`
	IsConfidential    bool       `gorm:"not null;default:false"`
	VerifiedBy        *uuid.UUID `gorm:"type:uuid"`
	VerifiedAt        *time.Time
	VerificationNotes string `gorm:"type:text"`

	Category *DocumentCategory `gorm:"foreignKey:CategoryID"`
	Employee *DocumentEmployee `gorm:"foreignKey:EmployeeID"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Document) TableName() string {
	return "documents"
}

type DocumentEmployee struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeNumber string    `gorm:"column:employee_number"`
	FullName       string    `gorm:"column:full_name"`
}

func (DocumentEmployee) TableName() string {
	return "employees"
}
