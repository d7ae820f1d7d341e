package loan_test

import (
	"context"
	"database/sql"
	"testing"

	"go-hrm/internal/loan"
	loanerrors "go-hrm/internal/loan/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type fakeLoanRepo struct {
	loan.Repository

	findTypeByID func(ctx context.Context, id string) (*loan.LoanType, error)
	create       func(ctx context.Context, l *loan.Loan) error
}

func (f *fakeLoanRepo) FindTypeByID(ctx context.Context, id string) (*loan.LoanType, error) {
	return f.findTypeByID(ctx, id)
}

func (f *fakeLoanRepo) Create(ctx context.Context, l *loan.Loan) error {
	return f.create(ctx, l)
}

func activeLoanType(maxAmount int64, rate string, maxTenure int) *loan.LoanType {
	r, _ := decimal.NewFromString(rate)
	return &loan.LoanType{
		ID:              uuid.New(),
		Name:            "Personal Loan",
		MaxAmount:       decimal.NewFromInt(maxAmount),
		InterestRate:    r,
		MaxTenureMonths: maxTenure,
		IsActive:        true,
	}
}

func TestInstallmentPlan_FlatInterest(t *testing.T) {
	installment, total := loan.InstallmentPlan(decimal.NewFromInt(12000), decimal.NewFromInt(10), 12)

	assert.Equal(t, "13200.00", total.StringFixed(2))
	assert.Equal(t, "1100.00", installment.StringFixed(2))
}

func TestInstallmentPlan_ZeroRate(t *testing.T) {
	installment, total := loan.InstallmentPlan(decimal.NewFromInt(9000), decimal.Zero, 6)

	assert.Equal(t, "9000.00", total.StringFixed(2))
	assert.Equal(t, "1500.00", installment.StringFixed(2))
}

func TestApply_PricesLoanFromType(t *testing.T) {
	var created *loan.Loan
	repo := &fakeLoanRepo{
		findTypeByID: func(ctx context.Context, id string) (*loan.LoanType, error) {
			return activeLoanType(50000, "10", 24), nil
		},
		create: func(ctx context.Context, l *loan.Loan) error {
			created = l
			return nil
		},
	}
	svc := loan.NewService(nil, repo)

	resp, err := svc.Apply(context.Background(), uuid.NewString(), loan.ApplyLoanRequest{
		LoanTypeID:   uuid.NewString(),
		LoanAmount:   "12000",
		TenureMonths: 12,
		Purpose:      "home repairs",
	})

	assert.NoError(t, err)
	assert.Equal(t, loan.StatusPending, resp.Status)
	assert.Equal(t, "1100.00", resp.MonthlyInstallment)
	assert.Equal(t, "13200.00", resp.TotalPayable)
	assert.Equal(t, "13200.00", resp.RemainingAmount)
	assert.Equal(t, "0.00", created.PaidAmount.StringFixed(2))
}

func TestApply_AmountAboveTypeLimitRefused(t *testing.T) {
	repo := &fakeLoanRepo{
		findTypeByID: func(ctx context.Context, id string) (*loan.LoanType, error) {
			return activeLoanType(10000, "10", 24), nil
		},
	}
	svc := loan.NewService(nil, repo)

	_, err := svc.Apply(context.Background(), uuid.NewString(), loan.ApplyLoanRequest{
		LoanTypeID:   uuid.NewString(),
		LoanAmount:   "12000",
		TenureMonths: 12,
		Purpose:      "home repairs",
	})

	assert.ErrorIs(t, err, loanerrors.ErrAmountExceedsLimit)
}

func TestApply_TenureAboveTypeLimitRefused(t *testing.T) {
	repo := &fakeLoanRepo{
		findTypeByID: func(ctx context.Context, id string) (*loan.LoanType, error) {
			return activeLoanType(50000, "10", 12), nil
		},
	}
	svc := loan.NewService(nil, repo)

	_, err := svc.Apply(context.Background(), uuid.NewString(), loan.ApplyLoanRequest{
		LoanTypeID:   uuid.NewString(),
		LoanAmount:   "12000",
		TenureMonths: 24,
		Purpose:      "home repairs",
	})

	assert.ErrorIs(t, err, loanerrors.ErrTenureExceedsLimit)
}

func newLoanDeps(t *testing.T) (*sql.DB, sqlmock.Sqlmock, loan.Service) {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	svc := loan.NewService(db, loan.NewRepository(nil))
	return db, mock, svc
}

func loanRow(id uuid.UUID, status string, total, paid int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "employee_id", "loan_type_id", "loan_amount", "interest_rate",
		"tenure_months", "monthly_installment", "total_payable",
		"paid_amount", "remaining_amount", "status",
	}).AddRow(
		id, uuid.New(), uuid.New(), decimal.NewFromInt(12000), decimal.NewFromInt(10),
		12, decimal.NewFromInt(1100), decimal.NewFromInt(total),
		decimal.NewFromInt(paid), decimal.NewFromInt(total-paid), status,
	)
}

func TestApprove_FromPending(t *testing.T) {
	db, mock, svc := newLoanDeps(t)
	defer db.Close()

	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM loans").
		WillReturnRows(loanRow(id, loan.StatusPending, 13200, 0))
	mock.ExpectExec("UPDATE loans").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	resp, err := svc.Approve(context.Background(), id.String(), uuid.NewString())

	assert.NoError(t, err)
	assert.Equal(t, loan.StatusApproved, resp.Status)
	assert.NotNil(t, resp.ApprovalDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDisburse_FromPendingRefused(t *testing.T) {
	db, mock, svc := newLoanDeps(t)
	defer db.Close()

	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM loans").
		WillReturnRows(loanRow(id, loan.StatusPending, 13200, 0))
	mock.ExpectRollback()

	_, err := svc.Disburse(context.Background(), id.String())

	assert.ErrorIs(t, err, loanerrors.ErrInvalidStatusTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepay_ClosesLoanAtZeroRemaining(t *testing.T) {
	db, mock, svc := newLoanDeps(t)
	defer db.Close()

	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM loans").
		WillReturnRows(loanRow(id, loan.StatusActive, 13200, 12100))
	mock.ExpectExec("UPDATE loans").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	resp, err := svc.Repay(context.Background(), id.String(), loan.RepayLoanRequest{Amount: "1100"})

	assert.NoError(t, err)
	assert.Equal(t, loan.StatusClosed, resp.Status)
	assert.Equal(t, "0.00", resp.RemainingAmount)
	assert.Equal(t, "13200.00", resp.PaidAmount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepay_BeforeDisbursementRefused(t *testing.T) {
	db, mock, svc := newLoanDeps(t)
	defer db.Close()

	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM loans").
		WillReturnRows(loanRow(id, loan.StatusApproved, 13200, 0))
	mock.ExpectRollback()

	_, err := svc.Repay(context.Background(), id.String(), loan.RepayLoanRequest{Amount: "1100"})

	assert.ErrorIs(t, err, loanerrors.ErrLoanNotActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}
