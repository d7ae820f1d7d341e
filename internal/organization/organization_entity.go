package organization

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Node is one entry of a hierarchy level table. Every level shares this
// shape; the Level passed to the repository selects the table. ParentID is
// nil only at the root level (group).
type Node struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name      string         `gorm:"size:255;not null;uniqueIndex:uq_node_parent_name"`
	Code      string         `gorm:"size:50;not null"`
	ParentID  *uuid.UUID     `gorm:"type:uuid;index;uniqueIndex:uq_node_parent_name"`
	IsActive  bool           `gorm:"not null;default:true"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

type Designation struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Title        string          `gorm:"size:255;not null"`
	Code         string          `gorm:"size:50;not null"`
	DepartmentID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Level        int             `gorm:"not null;default:1"`
	MinSalary    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	MaxSalary    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	IsActive     bool            `gorm:"not null;default:true"`
	CreatedAt    time.Time       `gorm:"autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt  `gorm:"index"`
}

func (Designation) TableName() string { return "designations" }
