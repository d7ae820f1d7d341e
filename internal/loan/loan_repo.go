package loan

import (
	"context"
	"database/sql"

	"go-hrm/internal/authz"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreateType(ctx context.Context, t *LoanType) error
	FindTypes(ctx context.Context) ([]LoanType, error)
	FindTypeByID(ctx context.Context, id string) (*LoanType, error)
	UpdateType(ctx context.Context, t *LoanType) error

	Create(ctx context.Context, l *Loan) error
	FindByID(ctx context.Context, id string) (*Loan, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]Loan, error)
	FindAll(ctx context.Context, scope authz.Scope, status string) ([]Loan, error)
	FindForUpdate(ctx context.Context, id string) (*Loan, error)
	UpdateStatus(ctx context.Context, l *Loan) error
	UpdateRepayment(ctx context.Context, l *Loan) error

	SumActiveInstallments(ctx context.Context, employeeID string) (decimal.Decimal, error)
	SumOutstanding(ctx context.Context, employeeID string) (decimal.Decimal, error)
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

func (r *repository) CreateType(ctx context.Context, t *LoanType) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *repository) FindTypes(ctx context.Context) ([]LoanType, error) {
	var types []LoanType
	err := r.db.WithContext(ctx).Order("name ASC").Find(&types).Error
	return types, err
}

func (r *repository) FindTypeByID(ctx context.Context, id string) (*LoanType, error) {
	var t LoanType
	err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error
	return &t, err
}

func (r *repository) UpdateType(ctx context.Context, t *LoanType) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *repository) Create(ctx context.Context, l *Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Loan, error) {
	var l Loan
	err := r.db.WithContext(ctx).
		Preload("LoanType").
		Preload("Employee").
		First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]Loan, error) {
	var loans []Loan
	err := r.db.WithContext(ctx).
		Preload("LoanType").
		Where("employee_id = ?", employeeID).
		Order("application_date DESC").
		Find(&loans).Error
	return loans, err
}

func (r *repository) FindAll(ctx context.Context, scope authz.Scope, status string) ([]Loan, error) {
	db := r.db.WithContext(ctx).
		Preload("LoanType").
		Preload("Employee").
		Scopes(scope.Apply("loans.employee_id"))
	if status != "" {
		db = db.Where("status = ?", status)
	}

	var loans []Loan
	err := db.Order("application_date DESC").Find(&loans).Error
	return loans, err
}

func (r *repository) FindForUpdate(ctx context.Context, id string) (*Loan, error) {
	if r.tx != nil {
		l := &Loan{}
		row := r.tx.QueryRowContext(ctx, `
			SELECT id, employee_id, loan_type_id, loan_amount, interest_rate,
			       tenure_months, monthly_installment, total_payable,
			       paid_amount, remaining_amount, status
			FROM loans
			WHERE id = $1 AND deleted_at IS NULL
			FOR UPDATE`, id)
		err := row.Scan(
			&l.ID, &l.EmployeeID, &l.LoanTypeID, &l.LoanAmount, &l.InterestRate,
			&l.TenureMonths, &l.MonthlyInstallment, &l.TotalPayable,
			&l.PaidAmount, &l.RemainingAmount, &l.Status,
		)
		if err == sql.ErrNoRows {
			return nil, gorm.ErrRecordNotFound
		}
		return l, err
	}

	var l Loan
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) UpdateStatus(ctx context.Context, l *Loan) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			UPDATE loans
			SET status = $1, approved_by = $2, approval_date = $3,
			    disbursement_date = $4, updated_at = NOW()
			WHERE id = $5`,
			l.Status, l.ApprovedBy, l.ApprovalDate, l.DisbursementDate, l.ID)
		return err
	}
	return r.db.WithContext(ctx).
		Model(l).
		Select("status", "approved_by", "approval_date", "disbursement_date", "updated_at").
		Updates(l).Error
}

func (r *repository) UpdateRepayment(ctx context.Context, l *Loan) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			UPDATE loans
			SET paid_amount = $1, remaining_amount = $2, status = $3,
			    updated_at = NOW()
			WHERE id = $4`,
			l.PaidAmount, l.RemainingAmount, l.Status, l.ID)
		return err
	}
	return r.db.WithContext(ctx).
		Model(l).
		Select("paid_amount", "remaining_amount", "status", "updated_at").
		Updates(l).Error
}

func (r *repository) SumActiveInstallments(ctx context.Context, employeeID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&Loan{}).
		Select("COALESCE(SUM(monthly_installment), 0)").
		Where("employee_id = ? AND status = ?", employeeID, StatusActive).
		Scan(&total).Error
	return total, err
}

func (r *repository) SumOutstanding(ctx context.Context, employeeID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&Loan{}).
		Select("COALESCE(SUM(remaining_amount), 0)").
		Where("employee_id = ? AND status IN ?", employeeID, []string{StatusApproved, StatusActive}).
		Scan(&total).Error
	return total, err
}
