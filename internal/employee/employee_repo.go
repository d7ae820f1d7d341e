package employee

import (
	"context"
	"database/sql"

	"go-hrm/internal/authz"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	FindAll(ctx context.Context, scope authz.Scope) ([]Employee, error)
	FindActive(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindByUserID(ctx context.Context, userID string) (*Employee, error)
	FindOptions(ctx context.Context) ([]Employee, error)
	Update(ctx context.Context, empl *Employee) error
	Deactivate(ctx context.Context, empl *Employee) error
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

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			INSERT INTO employees (
				id, user_id, employee_number, full_name, email, phone,
				group_id, company_unit_id, division_id, department_id,
				section_id, sub_section_id, floor_id, line_id, designation_id,
				employment_type, employee_category, work_shift, weekend_day,
				joining_date, confirmation_date, reporting_manager_id,
				bank_name, bank_account_number, is_active, created_at, updated_at
			) VALUES (
				$1, $2, $3, $4, $5, $6,
				$7, $8, $9, $10,
				$11, $12, $13, $14, $15,
				$16, $17, $18, $19,
				$20, $21, $22,
				$23, $24, $25, NOW(), NOW()
			)
		`,
			empl.ID, empl.UserID, empl.EmployeeNumber, empl.FullName, empl.Email, empl.Phone,
			empl.GroupID, empl.CompanyUnitID, empl.DivisionID, empl.DepartmentID,
			empl.SectionID, empl.SubSectionID, empl.FloorID, empl.LineID, empl.DesignationID,
			empl.EmploymentType, empl.EmployeeCategory, empl.WorkShift, empl.WeekendDay,
			empl.JoiningDate, empl.ConfirmationDate, empl.ReportingManagerID,
			empl.BankName, empl.BankAccountNumber, empl.IsActive,
		)
		return err
	}
	return r.db.WithContext(ctx).Create(empl).Error
}

func (r *repository) FindAll(ctx context.Context, scope authz.Scope) ([]Employee, error) {
	var out []Employee
	err := r.db.WithContext(ctx).
		Scopes(scope.Apply("employees.id")).
		Order("employee_number ASC").
		Find(&out).Error
	return out, err
}

func (r *repository) FindActive(ctx context.Context) ([]Employee, error) {
	var out []Employee
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("employee_number ASC").
		Find(&out).Error
	return out, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).First(&empl, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) FindByUserID(ctx context.Context, userID string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).First(&empl, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) FindOptions(ctx context.Context) ([]Employee, error) {
	var out []Employee
	err := r.db.WithContext(ctx).
		Select("id", "employee_number", "full_name").
		Where("is_active = ?", true).
		Order("full_name ASC").
		Find(&out).Error
	return out, err
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			UPDATE employees SET
				full_name = $2, email = $3, phone = $4,
				group_id = $5, company_unit_id = $6, division_id = $7, department_id = $8,
				section_id = $9, sub_section_id = $10, floor_id = $11, line_id = $12,
				designation_id = $13, employment_type = $14, employee_category = $15,
				work_shift = $16, weekend_day = $17, confirmation_date = $18,
				reporting_manager_id = $19, bank_name = $20, bank_account_number = $21,
				updated_at = NOW()
			WHERE id = $1 AND deleted_at IS NULL
		`,
			empl.ID, empl.FullName, empl.Email, empl.Phone,
			empl.GroupID, empl.CompanyUnitID, empl.DivisionID, empl.DepartmentID,
			empl.SectionID, empl.SubSectionID, empl.FloorID, empl.LineID,
			empl.DesignationID, empl.EmploymentType, empl.EmployeeCategory,
			empl.WorkShift, empl.WeekendDay, empl.ConfirmationDate,
			empl.ReportingManagerID, empl.BankName, empl.BankAccountNumber,
		)
		return err
	}
	return r.db.WithContext(ctx).Save(empl).Error
}

func (r *repository) Deactivate(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("id = ?", empl.ID).
		Updates(map[string]interface{}{
			"is_active":   false,
			"exit_date":   empl.ExitDate,
			"exit_reason": empl.ExitReason,
		}).Error
}
