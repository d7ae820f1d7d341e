package performance

import (
	"context"

	"go-hrm/internal/authz"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, r *PerformanceReview) error
	FindByID(ctx context.Context, id string) (*PerformanceReview, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]PerformanceReview, error)
	FindAll(ctx context.Context, scope authz.Scope, reviewType string) ([]PerformanceReview, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, review *PerformanceReview) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*PerformanceReview, error) {
	var review PerformanceReview
	err := r.db.WithContext(ctx).
		Preload("Employee").
		First(&review, "id = ?", id).Error
	return &review, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]PerformanceReview, error) {
	var reviews []PerformanceReview
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("review_date DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *repository) FindAll(ctx context.Context, scope authz.Scope, reviewType string) ([]PerformanceReview, error) {
	db := r.db.WithContext(ctx).
		Preload("Employee").
		Scopes(scope.Apply("performance_reviews.employee_id"))
	if reviewType != "" {
		db = db.Where("review_type = ?", reviewType)
	}

	var reviews []PerformanceReview
	err := db.Order("review_date DESC").Find(&reviews).Error
	return reviews, err
}
