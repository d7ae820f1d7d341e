package payroll

import (
	"context"
	"database/sql"

	"go-hrm/internal/authz"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PeriodStats struct {
	EmployeeCount  int64
	TotalGross     decimal.Decimal
	TotalDeduction decimal.Decimal
	TotalNet       decimal.Decimal
}

type StatusCount struct {
	Status string
	Count  int
}

type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreateStructure(ctx context.Context, s *SalaryStructure) error
	DeactivateStructures(ctx context.Context, employeeID string) error
	FindStructures(ctx context.Context, employeeID string) ([]SalaryStructure, error)
	FindActiveStructure(ctx context.Context, employeeID string) (*SalaryStructure, error)

	PayrollExists(ctx context.Context, employeeID string, month, year int) (bool, error)
	CreatePayroll(ctx context.Context, p *Payroll) error
	FindPayrollByID(ctx context.Context, id string) (*Payroll, error)
	FindPayrollForUpdate(ctx context.Context, id string) (*Payroll, error)
	FindAllPayrolls(ctx context.Context, scope authz.Scope, month, year int, status string) ([]Payroll, error)
	FindPayrollsByEmployee(ctx context.Context, employeeID string) ([]Payroll, error)
	UpdatePayrollStatus(ctx context.Context, p *Payroll) error

	PeriodStatistics(ctx context.Context, month, year int) (PeriodStats, []StatusCount, error)
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

func (r *repository) CreateStructure(ctx context.Context, s *SalaryStructure) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			INSERT INTO salary_structures (
				id, employee_id, basic_salary, house_rent, medical, conveyance,
				food_allowance, special_allowance, mobile_allowance, other_allowance,
				gross_salary, effective_date, is_active, created_at, updated_at
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW()
			)`,
			s.ID, s.EmployeeID, s.BasicSalary, s.HouseRent, s.Medical, s.Conveyance,
			s.FoodAllowance, s.SpecialAllowance, s.MobileAllowance, s.OtherAllowance,
			s.GrossSalary, s.EffectiveDate, s.IsActive)
		return err
	}
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) DeactivateStructures(ctx context.Context, employeeID string) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			UPDATE salary_structures
			SET is_active = FALSE, updated_at = NOW()
			WHERE employee_id = $1 AND is_active = TRUE AND deleted_at IS NULL`,
			employeeID)
		return err
	}
	return r.db.WithContext(ctx).
		Model(&SalaryStructure{}).
		Where("employee_id = ? AND is_active = ?", employeeID, true).
		Update("is_active", false).Error
}

func (r *repository) FindStructures(ctx context.Context, employeeID string) ([]SalaryStructure, error) {
	var structures []SalaryStructure
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("effective_date DESC").
		Find(&structures).Error
	return structures, err
}

func (r *repository) FindActiveStructure(ctx context.Context, employeeID string) (*SalaryStructure, error) {
	var s SalaryStructure
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND is_active = ?", employeeID, true).
		Order("effective_date DESC").
		First(&s).Error
	return &s, err
}

func (r *repository) PayrollExists(ctx context.Context, employeeID string, month, year int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Payroll{}).
		Where("employee_id = ? AND month = ? AND year = ?", employeeID, month, year).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) CreatePayroll(ctx context.Context, p *Payroll) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindPayrollByID(ctx context.Context, id string) (*Payroll, error) {
	var p Payroll
	err := r.db.WithContext(ctx).
		Preload("Employee").
		First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) FindPayrollForUpdate(ctx context.Context, id string) (*Payroll, error) {
	if r.tx != nil {
		p := &Payroll{}
		row := r.tx.QueryRowContext(ctx, `
			SELECT id, employee_id, month, year, net_salary, status
			FROM payrolls
			WHERE id = $1 AND deleted_at IS NULL
			FOR UPDATE`, id)
		err := row.Scan(&p.ID, &p.EmployeeID, &p.Month, &p.Year, &p.NetSalary, &p.Status)
		if err == sql.ErrNoRows {
			return nil, gorm.ErrRecordNotFound
		}
		return p, err
	}

	var p Payroll
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) FindAllPayrolls(ctx context.Context, scope authz.Scope, month, year int, status string) ([]Payroll, error) {
	db := r.db.WithContext(ctx).
		Preload("Employee").
		Scopes(scope.Apply("payrolls.employee_id"))
	if month > 0 {
		db = db.Where("month = ?", month)
	}
	if year > 0 {
		db = db.Where("year = ?", year)
	}
	if status != "" {
		db = db.Where("status = ?", status)
	}

	var payrolls []Payroll
	err := db.Order("year DESC, month DESC").Find(&payrolls).Error
	return payrolls, err
}

func (r *repository) FindPayrollsByEmployee(ctx context.Context, employeeID string) ([]Payroll, error) {
	var payrolls []Payroll
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("year DESC, month DESC").
		Find(&payrolls).Error
	return payrolls, err
}

func (r *repository) UpdatePayrollStatus(ctx context.Context, p *Payroll) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			UPDATE payrolls
			SET status = $1, approved_by = $2, approved_at = $3, paid_at = $4, updated_at = NOW()
			WHERE id = $5`,
			p.Status, p.ApprovedBy, p.ApprovedAt, p.PaidAt, p.ID)
		return err
	}
	return r.db.WithContext(ctx).
		Model(p).
		Select("status", "approved_by", "approved_at", "paid_at", "updated_at").
		Updates(p).Error
}

func (r *repository) PeriodStatistics(ctx context.Context, month, year int) (PeriodStats, []StatusCount, error) {
	var stats PeriodStats
	err := r.db.WithContext(ctx).
		Model(&Payroll{}).
		Select(`COUNT(*) AS employee_count,
			COALESCE(SUM(gross_earnings), 0) AS total_gross,
			COALESCE(SUM(total_deductions), 0) AS total_deduction,
			COALESCE(SUM(net_salary), 0) AS total_net`).
		Where("month = ? AND year = ?", month, year).
		Scan(&stats).Error
	if err != nil {
		return PeriodStats{}, nil, err
	}

	var byStatus []StatusCount
	err = r.db.WithContext(ctx).
		Model(&Payroll{}).
		Select("status, COUNT(*) AS count").
		Where("month = ? AND year = ?", month, year).
		Group("status").
		Scan(&byStatus).Error
	return stats, byStatus, err
}
