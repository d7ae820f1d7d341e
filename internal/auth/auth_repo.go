package auth

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, hashed string) error
	Update(ctx context.Context, user *User) error

	// FindDepartmentID resolves the employee's department without importing
	// the employee package; empty when the user has no employee profile.
	FindDepartmentID(ctx context.Context, employeeID uuid.UUID) (string, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, user *User) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			INSERT INTO users (id, employee_id, name, email, password, role, is_active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		`, user.ID, user.EmployeeID, user.Name, user.Email, user.Password, user.Role, user.IsActive)
		return err
	}
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repository) UpdatePassword(ctx context.Context, id uuid.UUID, hashed string) error {
	return r.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", id).
		Update("password", hashed).Error
}

func (r *repository) Update(ctx context.Context, user *User) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			UPDATE users SET name = $2, email = $3, is_active = $4, updated_at = NOW()
			WHERE id = $1 AND deleted_at IS NULL
		`, user.ID, user.Name, user.Email, user.IsActive)
		return err
	}
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *repository) FindDepartmentID(ctx context.Context, employeeID uuid.UUID) (string, error) {
	var departmentID sql.NullString
	err := r.db.WithContext(ctx).
		Table("employees").
		Select("department_id").
		Where("id = ? AND deleted_at IS NULL", employeeID).
		Scan(&departmentID).Error
	if err != nil {
		return "", err
	}
	return departmentID.String, nil
}
