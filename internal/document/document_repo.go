package document

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	CreateCategory(ctx context.Context, c *DocumentCategory) error
	FindCategories(ctx context.Context, activeOnly bool) ([]DocumentCategory, error)
	FindCategoryByID(ctx context.Context, id string) (*DocumentCategory, error)
	UpdateCategory(ctx context.Context, c *DocumentCategory) error

	Create(ctx context.Context, d *Document) error
	FindByID(ctx context.Context, id string) (*Document, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]Document, error)
	FindExpiring(ctx context.Context, before time.Time) ([]Document, error)
	Update(ctx context.Context, d *Document) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateCategory(ctx context.Context, c *DocumentCategory) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) FindCategories(ctx context.Context, activeOnly bool) ([]DocumentCategory, error) {
	db := r.db.WithContext(ctx)
	if activeOnly {
		db = db.Where("is_active = ?", true)
	}

	var categories []DocumentCategory
	if err := db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *repository) FindCategoryByID(ctx context.Context, id string) (*DocumentCategory, error) {
	var c DocumentCategory
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) UpdateCategory(ctx context.Context, c *DocumentCategory) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *repository) Create(ctx context.Context, d *Document) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Document, error) {
	var d Document
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Employee").
		First(&d, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]Document, error) {
	var docs []Document
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *repository) FindExpiring(ctx context.Context, before time.Time) ([]Document, error) {
	var docs []Document
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Employee").
		Where("expiry_date IS NOT NULL AND expiry_date <= ?", before).
		Where("status NOT IN ?", []string{StatusExpired, StatusRejected}).
		Order("expiry_date ASC").
		Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *repository) Update(ctx context.Context, d *Document) error {
	return r.db.WithContext(ctx).Save(d).Error
}
