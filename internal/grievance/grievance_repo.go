package grievance

import (
	"context"

	"go-hrm/internal/authz"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, g *Grievance) error
	FindByID(ctx context.Context, id string) (*Grievance, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]Grievance, error)
	FindAll(ctx context.Context, scope authz.Scope, status string) ([]Grievance, error)
	Update(ctx context.Context, g *Grievance) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, g *Grievance) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Grievance, error) {
	var g Grievance
	err := r.db.WithContext(ctx).
		Preload("Employee").
		First(&g, "id = ?", id).Error
	return &g, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]Grievance, error) {
	var grievances []Grievance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&grievances).Error
	return grievances, err
}

func (r *repository) FindAll(ctx context.Context, scope authz.Scope, status string) ([]Grievance, error) {
	db := r.db.WithContext(ctx).
		Preload("Employee").
		Scopes(scope.Apply("grievances.employee_id"))
	if status != "" {
		db = db.Where("status = ?", status)
	}

	var grievances []Grievance
	err := db.Order("created_at DESC").Find(&grievances).Error
	return grievances, err
}

func (r *repository) Update(ctx context.Context, g *Grievance) error {
	return r.db.WithContext(ctx).Save(g).Error
}
