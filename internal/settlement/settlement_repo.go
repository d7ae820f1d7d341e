package settlement

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository

	Create(ctx context.Context, s *EmployeeSettlement) error
	FindByID(ctx context.Context, id string) (*EmployeeSettlement, error)
	FindByEmployee(ctx context.Context, employeeID string) (*EmployeeSettlement, error)
	FindAll(ctx context.Context, status string) ([]EmployeeSettlement, error)
	FindForUpdate(ctx context.Context, id string) (*EmployeeSettlement, error)
	UpdateComponents(ctx context.Context, s *EmployeeSettlement) error
	UpdateCalculation(ctx context.Context, s *EmployeeSettlement) error
	UpdateStatus(ctx context.Context, s *EmployeeSettlement) error
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

func (r *repository) Create(ctx context.Context, s *EmployeeSettlement) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*EmployeeSettlement, error) {
	var s EmployeeSettlement
	err := r.db.WithContext(ctx).
		Preload("Employee").
		First(&s, "id = ?", id).Error
	return &s, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) (*EmployeeSettlement, error) {
	var s EmployeeSettlement
	err := r.db.WithContext(ctx).
		Preload("Employee").
		First(&s, "employee_id = ?", employeeID).Error
	return &s, err
}

func (r *repository) FindAll(ctx context.Context, status string) ([]EmployeeSettlement, error) {
	db := r.db.WithContext(ctx).Preload("Employee")
	if status != "" {
		db = db.Where("status = ?", status)
	}

	var settlements []EmployeeSettlement
	err := db.Order("settlement_date DESC").Find(&settlements).Error
	return settlements, err
}

func (r *repository) FindForUpdate(ctx context.Context, id string) (*EmployeeSettlement, error) {
	if r.tx != nil {
		s := &EmployeeSettlement{}
		row := r.tx.QueryRowContext(ctx, `
			SELECT id, settlement_id, employee_id, status,
			       required_notice_days, actual_notice_days,
			       pending_salary, leave_encashment, gratuity, notice_pay,
			       bonus_payable, overtime_pay, reimbursements,
			       provident_fund_amount, other_payments,
			       notice_recovery, loan_recovery, advance_recovery,
			       asset_recovery, training_bond_penalty, damage_compensation,
			       tax_deduction, other_deductions, encashable_leave_days
			FROM employee_settlements
			WHERE id = $1 AND deleted_at IS NULL
			FOR UPDATE`, id)
		err := row.Scan(
			&s.ID, &s.SettlementID, &s.EmployeeID, &s.Status,
			&s.RequiredNoticeDays, &s.ActualNoticeDays,
			&s.PendingSalary, &s.LeaveEncashment, &s.Gratuity, &s.NoticePay,
			&s.BonusPayable, &s.OvertimePay, &s.Reimbursements,
			&s.ProvidentFundAmount, &s.OtherPayments,
			&s.NoticeRecovery, &s.LoanRecovery, &s.AdvanceRecovery,
			&s.AssetRecovery, &s.TrainingBondPenalty, &s.DamageCompensation,
			&s.TaxDeduction, &s.OtherDeductions, &s.EncashableLeaveDays,
		)
		if err == sql.ErrNoRows {
			return nil, gorm.ErrRecordNotFound
		}
		return s, err
	}

	var s EmployeeSettlement
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&s, "id = ?", id).Error
	return &s, err
}

func (r *repository) UpdateComponents(ctx context.Context, s *EmployeeSettlement) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			UPDATE employee_settlements
			SET pending_salary = $1, notice_pay = $2, bonus_payable = $3,
			    overtime_pay = $4, reimbursements = $5, provident_fund_amount = $6,
			    other_payments = $7, advance_recovery = $8, asset_recovery = $9,
			    training_bond_penalty = $10, damage_compensation = $11,
			    tax_deduction = $12, other_deductions = $13,
			    encashable_leave_days = $14, updated_at = NOW()
			WHERE id = $15`,
			s.PendingSalary, s.NoticePay, s.BonusPayable,
			s.OvertimePay, s.Reimbursements, s.ProvidentFundAmount,
			s.OtherPayments, s.AdvanceRecovery, s.AssetRecovery,
			s.TrainingBondPenalty, s.DamageCompensation,
			s.TaxDeduction, s.OtherDeductions,
			s.EncashableLeaveDays, s.ID)
		return err
	}
	return r.db.WithContext(ctx).
		Model(s).
		Select("pending_salary", "notice_pay", "bonus_payable", "overtime_pay",
			"reimbursements", "provident_fund_amount", "other_payments",
			"advance_recovery", "asset_recovery", "training_bond_penalty",
			"damage_compensation", "tax_deduction", "other_deductions",
			"encashable_leave_days", "updated_at").
		Updates(s).Error
}

func (r *repository) UpdateCalculation(ctx context.Context, s *EmployeeSettlement) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			UPDATE employee_settlements
			SET notice_shortfall = $1, notice_period_served = $2,
			    leave_encashment = $3, gratuity = $4, notice_recovery = $5,
			    loan_recovery = $6, total_payable = $7, total_deductible = $8,
			    net_settlement_amount = $9, status = $10,
			    calculated_by = $11, calculated_at = $12, updated_at = NOW()
			WHERE id = $13`,
			s.NoticeShortfall, s.NoticePeriodServed,
			s.LeaveEncashment, s.Gratuity, s.NoticeRecovery,
			s.LoanRecovery, s.TotalPayable, s.TotalDeductible,
			s.NetSettlementAmount, s.Status,
			s.CalculatedBy, s.CalculatedAt, s.ID)
		return err
	}
	return r.db.WithContext(ctx).
		Model(s).
		Select("notice_shortfall", "notice_period_served", "leave_encashment",
			"gratuity", "notice_recovery", "loan_recovery", "total_payable",
			"total_deductible", "net_settlement_amount", "status",
			"calculated_by", "calculated_at", "updated_at").
		Updates(s).Error
}

func (r *repository) UpdateStatus(ctx context.Context, s *EmployeeSettlement) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			UPDATE employee_settlements
			SET status = $1, approved_by = $2, approved_at = $3,
			    payment_mode = $4, payment_reference = $5, payment_date = $6,
			    updated_at = NOW()
			WHERE id = $7`,
			s.Status, s.ApprovedBy, s.ApprovedAt,
			s.PaymentMode, s.PaymentReference, s.PaymentDate, s.ID)
		return err
	}
	return r.db.WithContext(ctx).
		Model(s).
		Select("status", "approved_by", "approved_at", "payment_mode",
			"payment_reference", "payment_date", "updated_at").
		Updates(s).Error
}
