package payroll_test

import (
	"context"
	"database/sql"
	"testing"

	"go-hrm/internal/attendance"
	"go-hrm/internal/employee"
	"go-hrm/internal/payroll"
	payrollerrors "go-hrm/internal/payroll/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakePayrollRepo struct {
	payroll.Repository

	payrollExists       func(ctx context.Context, employeeID string, month, year int) (bool, error)
	findActiveStructure func(ctx context.Context, employeeID string) (*payroll.SalaryStructure, error)
	createPayroll       func(ctx context.Context, p *payroll.Payroll) error
}

func (f *fakePayrollRepo) PayrollExists(ctx context.Context, employeeID string, month, year int) (bool, error) {
	return f.payrollExists(ctx, employeeID, month, year)
}

func (f *fakePayrollRepo) FindActiveStructure(ctx context.Context, employeeID string) (*payroll.SalaryStructure, error) {
	return f.findActiveStructure(ctx, employeeID)
}

func (f *fakePayrollRepo) CreatePayroll(ctx context.Context, p *payroll.Payroll) error {
	return f.createPayroll(ctx, p)
}

type fakeDirectory struct {
	employees []employee.Employee
}

func (f *fakeDirectory) FindActive(ctx context.Context) ([]employee.Employee, error) {
	return f.employees, nil
}

type fakeAttendanceSource struct {
	summaries map[string]attendance.MonthlySummary
}

func (f *fakeAttendanceSource) Summary(ctx context.Context, employeeID string, month, year int) (attendance.MonthlySummary, error) {
	return f.summaries[employeeID], nil
}

type fakeFund struct {
	contribution decimal.Decimal
}

func (f *fakeFund) MonthlyContribution(ctx context.Context, employeeID string, basicSalary decimal.Decimal) (decimal.Decimal, error) {
	return f.contribution, nil
}

type fakeLoans struct {
	installments decimal.Decimal
}

func (f *fakeLoans) MonthlyInstallments(ctx context.Context, employeeID string) (decimal.Decimal, error) {
	return f.installments, nil
}

func structureOf(basic, gross int64) *payroll.SalaryStructure {
	return &payroll.SalaryStructure{
		ID:          uuid.New(),
		BasicSalary: decimal.NewFromInt(basic),
		GrossSalary: decimal.NewFromInt(gross),
		IsActive:    true,
	}
}

func TestGenerateMonthly_ProratesBasicByPayableDays(t *testing.T) {
	empID := uuid.New()
	var created *payroll.Payroll

	repo := &fakePayrollRepo{
		payrollExists: func(ctx context.Context, employeeID string, month, year int) (bool, error) {
			return false, nil
		},
		findActiveStructure: func(ctx context.Context, employeeID string) (*payroll.SalaryStructure, error) {
			return structureOf(30000, 40000), nil
		},
		createPayroll: func(ctx context.Context, p *payroll.Payroll) error {
			created = p
			return nil
		},
	}
	svc := payroll.NewService(
		nil,
		repo,
		&fakeDirectory{employees: []employee.Employee{{ID: empID, EmployeeNumber: "EMP-000001"}}},
		&fakeAttendanceSource{summaries: map[string]attendance.MonthlySummary{
			empID.String(): {PresentDays: 25, LeaveDays: 2, AbsentDays: 3},
		}},
		&fakeFund{contribution: decimal.Zero},
		&fakeLoans{installments: decimal.Zero},
		30,
	)

	result, err := svc.GenerateMonthly(context.Background(), 3, 2025, uuid.NewString())

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Generated)
	assert.Empty(t, result.Errors)
	assert.Equal(t, "27000.00", created.BasicSalary.StringFixed(2))
	assert.Equal(t, "10000.00", created.Allowances.StringFixed(2))
	assert.Equal(t, "37000.00", created.GrossEarnings.StringFixed(2))
	assert.Equal(t, "37000.00", created.NetSalary.StringFixed(2))
	assert.Equal(t, payroll.StatusDraft, created.Status)
}

func TestGenerateMonthly_DeductionsReduceNet(t *testing.T) {
	empID := uuid.New()
	var created *payroll.Payroll

	repo := &fakePayrollRepo{
		payrollExists: func(ctx context.Context, employeeID string, month, year int) (bool, error) {
			return false, nil
		},
		findActiveStructure: func(ctx context.Context, employeeID string) (*payroll.SalaryStructure, error) {
			return structureOf(30000, 40000), nil
		},
		createPayroll: func(ctx context.Context, p *payroll.Payroll) error {
			created = p
			return nil
		},
	}
	svc := payroll.NewService(
		nil,
		repo,
		&fakeDirectory{employees: []employee.Employee{{ID: empID}}},
		&fakeAttendanceSource{summaries: map[string]attendance.MonthlySummary{
			empID.String(): {PresentDays: 30},
		}},
		&fakeFund{contribution: decimal.NewFromInt(2400)},
		&fakeLoans{installments: decimal.NewFromInt(1500)},
		30,
	)

	_, err := svc.GenerateMonthly(context.Background(), 3, 2025, uuid.NewString())

	assert.NoError(t, err)
	assert.Equal(t, "2400.00", created.PFDeduction.StringFixed(2))
	assert.Equal(t, "1500.00", created.LoanDeduction.StringFixed(2))
	assert.Equal(t, "3900.00", created.TotalDeductions.StringFixed(2))
	assert.Equal(t, "36100.00", created.NetSalary.StringFixed(2))
}

func TestGenerateMonthly_MissingStructureCollectedNotFatal(t *testing.T) {
	withStructure := uuid.New()
	withoutStructure := uuid.New()

	repo := &fakePayrollRepo{
		payrollExists: func(ctx context.Context, employeeID string, month, year int) (bool, error) {
			return false, nil
		},
		findActiveStructure: func(ctx context.Context, employeeID string) (*payroll.SalaryStructure, error) {
			if employeeID == withoutStructure.String() {
				return nil, gorm.ErrRecordNotFound
			}
			return structureOf(20000, 25000), nil
		},
		createPayroll: func(ctx context.Context, p *payroll.Payroll) error { return nil },
	}
	svc := payroll.NewService(
		nil,
		repo,
		&fakeDirectory{employees: []employee.Employee{
			{ID: withoutStructure, EmployeeNumber: "EMP-000007"},
			{ID: withStructure, EmployeeNumber: "EMP-000008"},
		}},
		&fakeAttendanceSource{summaries: map[string]attendance.MonthlySummary{
			withStructure.String(): {PresentDays: 30},
		}},
		nil,
		nil,
		30,
	)

	result, err := svc.GenerateMonthly(context.Background(), 3, 2025, uuid.NewString())

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Generated)
	assert.Len(t, result.Errors, 1)
	assert.Equal(t, "EMP-000007", result.Errors[0].EmployeeNumber)
	assert.Equal(t, "no active salary structure", result.Errors[0].Reason)
}

func TestGenerateMonthly_ExistingRowSkipped(t *testing.T) {
	empID := uuid.New()

	repo := &fakePayrollRepo{
		payrollExists: func(ctx context.Context, employeeID string, month, year int) (bool, error) {
			return true, nil
		},
	}
	svc := payroll.NewService(
		nil,
		repo,
		&fakeDirectory{employees: []employee.Employee{{ID: empID}}},
		&fakeAttendanceSource{},
		nil,
		nil,
		30,
	)

	result, err := svc.GenerateMonthly(context.Background(), 3, 2025, uuid.NewString())

	assert.NoError(t, err)
	assert.Equal(t, 0, result.Generated)
	assert.Equal(t, 1, result.Skipped)
}

func TestGenerateMonthly_InvalidPeriod(t *testing.T) {
	svc := payroll.NewService(nil, &fakePayrollRepo{}, &fakeDirectory{}, &fakeAttendanceSource{}, nil, nil, 30)

	_, err := svc.GenerateMonthly(context.Background(), 13, 2025, uuid.NewString())

	assert.ErrorIs(t, err, payrollerrors.ErrInvalidPeriod)
}

func newTransitionDeps(t *testing.T) (*sql.DB, sqlmock.Sqlmock, payroll.Service) {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	svc := payroll.NewService(db, payroll.NewRepository(nil), &fakeDirectory{}, &fakeAttendanceSource{}, nil, nil, 30)
	return db, mock, svc
}

func payrollRow(id uuid.UUID, status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "employee_id", "month", "year", "net_salary", "status"}).
		AddRow(id, uuid.New(), 3, 2025, decimal.NewFromInt(36000), status)
}

func TestApprove_FromProcessed(t *testing.T) {
	db, mock, svc := newTransitionDeps(t)
	defer db.Close()

	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM payrolls").
		WillReturnRows(payrollRow(id, payroll.StatusProcessed))
	mock.ExpectExec("UPDATE payrolls").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	resp, err := svc.Approve(context.Background(), id.String(), uuid.NewString())

	assert.NoError(t, err)
	assert.Equal(t, payroll.StatusApproved, resp.Status)
	assert.NotNil(t, resp.ApprovedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApprove_FromDraft(t *testing.T) {
	db, mock, svc := newTransitionDeps(t)
	defer db.Close()

	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM payrolls").
		WillReturnRows(payrollRow(id, payroll.StatusDraft))
	mock.ExpectExec("UPDATE payrolls").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	resp, err := svc.Approve(context.Background(), id.String(), uuid.NewString())

	assert.NoError(t, err)
	assert.Equal(t, payroll.StatusApproved, resp.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApprove_FromPaidRefused(t *testing.T) {
	db, mock, svc := newTransitionDeps(t)
	defer db.Close()

	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM payrolls").
		WillReturnRows(payrollRow(id, payroll.StatusPaid))
	mock.ExpectRollback()

	_, err := svc.Approve(context.Background(), id.String(), uuid.NewString())

	assert.ErrorIs(t, err, payrollerrors.ErrInvalidStatusTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkPaid_RequiresApproved(t *testing.T) {
	db, mock, svc := newTransitionDeps(t)
	defer db.Close()

	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM payrolls").
		WillReturnRows(payrollRow(id, payroll.StatusProcessed))
	mock.ExpectRollback()

	_, err := svc.MarkPaid(context.Background(), id.String())

	assert.ErrorIs(t, err, payrollerrors.ErrPayrollNotApproved)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkPaid_FromApproved(t *testing.T) {
	db, mock, svc := newTransitionDeps(t)
	defer db.Close()

	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM payrolls").
		WillReturnRows(payrollRow(id, payroll.StatusApproved))
	mock.ExpectExec("UPDATE payrolls").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	resp, err := svc.MarkPaid(context.Background(), id.String())

	assert.NoError(t, err)
	assert.Equal(t, payroll.StatusPaid, resp.Status)
	assert.NotNil(t, resp.PaidAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancel_TerminalStatusRefused(t *testing.T) {
	db, mock, svc := newTransitionDeps(t)
	defer db.Close()

	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM payrolls").
		WillReturnRows(payrollRow(id, payroll.StatusPaid))
	mock.ExpectRollback()

	_, err := svc.Cancel(context.Background(), id.String())

	assert.ErrorIs(t, err, payrollerrors.ErrInvalidStatusTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateStructure_DeactivatesPriorInSameTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	svc := payroll.NewService(db, payroll.NewRepository(nil), &fakeDirectory{}, &fakeAttendanceSource{}, nil, nil, 30)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE salary_structures").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO salary_structures").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	resp, err := svc.CreateStructure(context.Background(), payroll.CreateStructureRequest{
		EmployeeID:    uuid.NewString(),
		BasicSalary:   "30000",
		HouseRent:     "6000",
		Medical:       "2000",
		Conveyance:    "2000",
		EffectiveDate: "2025-01-01",
	})

	assert.NoError(t, err)
	assert.Equal(t, "40000.00", resp.GrossSalary)
	assert.True(t, resp.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateStructure_NegativeAmountRejected(t *testing.T) {
	svc := payroll.NewService(nil, &fakePayrollRepo{}, &fakeDirectory{}, &fakeAttendanceSource{}, nil, nil, 30)

	_, err := svc.CreateStructure(context.Background(), payroll.CreateStructureRequest{
		EmployeeID:    uuid.NewString(),
		BasicSalary:   "-1",
		EffectiveDate: "2025-01-01",
	})

	assert.ErrorIs(t, err, payrollerrors.ErrInvalidSalaryAmount)
}
