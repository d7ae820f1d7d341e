package providentfund

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository

	Create(ctx context.Context, pf *ProvidentFund) error
	FindByEmployee(ctx context.Context, employeeID string) (*ProvidentFund, error)
	FindAll(ctx context.Context) ([]ProvidentFund, error)
	FindForUpdate(ctx context.Context, employeeID string) (*ProvidentFund, error)
	UpdateTotals(ctx context.Context, pf *ProvidentFund) error
	UpdatePercents(ctx context.Context, pf *ProvidentFund) error
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

func (r *repository) Create(ctx context.Context, pf *ProvidentFund) error {
	return r.db.WithContext(ctx).Create(pf).Error
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) (*ProvidentFund, error) {
	var pf ProvidentFund
	err := r.db.WithContext(ctx).
		Preload("Employee").
		First(&pf, "employee_id = ?", employeeID).Error
	return &pf, err
}

func (r *repository) FindAll(ctx context.Context) ([]ProvidentFund, error) {
	var funds []ProvidentFund
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Order("created_at DESC").
		Find(&funds).Error
	return funds, err
}

func (r *repository) FindForUpdate(ctx context.Context, employeeID string) (*ProvidentFund, error) {
	if r.tx != nil {
		pf := &ProvidentFund{}
		row := r.tx.QueryRowContext(ctx, `
			SELECT id, employee_id,
			       employee_contribution_percent, employer_contribution_percent,
			       total_employee_contribution, total_employer_contribution,
			       total_balance, is_active
			FROM provident_funds
			WHERE employee_id = $1 AND deleted_at IS NULL
			FOR UPDATE`, employeeID)
		err := row.Scan(
			&pf.ID, &pf.EmployeeID,
			&pf.EmployeeContributionPercent, &pf.EmployerContributionPercent,
			&pf.TotalEmployeeContribution, &pf.TotalEmployerContribution,
			&pf.TotalBalance, &pf.IsActive,
		)
		if err == sql.ErrNoRows {
			return nil, gorm.ErrRecordNotFound
		}
		return pf, err
	}

	var pf ProvidentFund
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&pf, "employee_id = ?", employeeID).Error
	return &pf, err
}

func (r *repository) UpdateTotals(ctx context.Context, pf *ProvidentFund) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			UPDATE provident_funds
			SET total_employee_contribution = $1,
			    total_employer_contribution = $2,
			    total_balance = $3, updated_at = NOW()
			WHERE id = $4`,
			pf.TotalEmployeeContribution, pf.TotalEmployerContribution,
			pf.TotalBalance, pf.ID)
		return err
	}
	return r.db.WithContext(ctx).
		Model(pf).
		Select("total_employee_contribution", "total_employer_contribution",
			"total_balance", "updated_at").
		Updates(pf).Error
}

func (r *repository) UpdatePercents(ctx context.Context, pf *ProvidentFund) error {
	return r.db.WithContext(ctx).
		Model(pf).
		Select("employee_contribution_percent", "employer_contribution_percent",
			"is_active", "updated_at").
		Updates(pf).Error
}
