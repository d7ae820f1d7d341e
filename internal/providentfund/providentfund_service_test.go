package providentfund_test

import (
	"context"
	"database/sql"
	"testing"

	"go-hrm/internal/providentfund"
	providentfunderrors "go-hrm/internal/providentfund/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeFundRepo struct {
	providentfund.Repository

	create         func(ctx context.Context, pf *providentfund.ProvidentFund) error
	findByEmployee func(ctx context.Context, employeeID string) (*providentfund.ProvidentFund, error)
}

func (f *fakeFundRepo) Create(ctx context.Context, pf *providentfund.ProvidentFund) error {
	return f.create(ctx, pf)
}

func (f *fakeFundRepo) FindByEmployee(ctx context.Context, employeeID string) (*providentfund.ProvidentFund, error) {
	return f.findByEmployee(ctx, employeeID)
}

func TestContribution(t *testing.T) {
	got := providentfund.Contribution(decimal.NewFromInt(27000), decimal.NewFromInt(12))
	assert.Equal(t, "3240.00", got.StringFixed(2))
}

func TestEnroll_OpensAccountWithDefaults(t *testing.T) {
	var created *providentfund.ProvidentFund
	repo := &fakeFundRepo{
		create: func(ctx context.Context, pf *providentfund.ProvidentFund) error {
			created = pf
			return nil
		},
	}
	svc := providentfund.NewService(nil, repo)

	err := svc.Enroll(context.Background(), uuid.NewString())

	assert.NoError(t, err)
	assert.Equal(t, "12.00", created.EmployeeContributionPercent.StringFixed(2))
	assert.Equal(t, "12.00", created.EmployerContributionPercent.StringFixed(2))
	assert.True(t, created.IsActive)
}

func TestEnroll_RedeliveryIsNoOp(t *testing.T) {
	repo := &fakeFundRepo{
		create: func(ctx context.Context, pf *providentfund.ProvidentFund) error {
			return &pgconn.PgError{Code: "23505"}
		},
	}
	svc := providentfund.NewService(nil, repo)

	err := svc.Enroll(context.Background(), uuid.NewString())

	assert.NoError(t, err)
}

func TestMonthlyContribution_EmployeeShare(t *testing.T) {
	repo := &fakeFundRepo{
		findByEmployee: func(ctx context.Context, employeeID string) (*providentfund.ProvidentFund, error) {
			return &providentfund.ProvidentFund{
				EmployeeContributionPercent: decimal.NewFromInt(12),
				IsActive:                    true,
			}, nil
		},
	}
	svc := providentfund.NewService(nil, repo)

	got, err := svc.MonthlyContribution(context.Background(), uuid.NewString(), decimal.NewFromInt(27000))

	assert.NoError(t, err)
	assert.Equal(t, "3240.00", got.StringFixed(2))
}

func TestMonthlyContribution_NotEnrolledContributesNothing(t *testing.T) {
	repo := &fakeFundRepo{
		findByEmployee: func(ctx context.Context, employeeID string) (*providentfund.ProvidentFund, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := providentfund.NewService(nil, repo)

	got, err := svc.MonthlyContribution(context.Background(), uuid.NewString(), decimal.NewFromInt(27000))

	assert.NoError(t, err)
	assert.True(t, got.IsZero())
}

func newFundDeps(t *testing.T) (*sql.DB, sqlmock.Sqlmock, providentfund.Service) {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	svc := providentfund.NewService(db, providentfund.NewRepository(nil))
	return db, mock, svc
}

func fundRow(active bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "employee_id",
		"employee_contribution_percent", "employer_contribution_percent",
		"total_employee_contribution", "total_employer_contribution",
		"total_balance", "is_active",
	}).AddRow(
		uuid.New(), uuid.New(),
		decimal.NewFromInt(12), decimal.NewFromInt(12),
		decimal.NewFromInt(6480), decimal.NewFromInt(6480),
		decimal.NewFromInt(12960), active,
	)
}

func TestPostContribution_AccumulatesBothShares(t *testing.T) {
	db, mock, svc := newFundDeps(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM provident_funds").
		WillReturnRows(fundRow(true))
	mock.ExpectExec("UPDATE provident_funds").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	resp, err := svc.PostContribution(context.Background(), uuid.NewString(), providentfund.PostContributionRequest{
		BasicSalary: "27000",
	})

	assert.NoError(t, err)
	assert.Equal(t, "9720.00", resp.TotalEmployeeContribution)
	assert.Equal(t, "9720.00", resp.TotalEmployerContribution)
	assert.Equal(t, "19440.00", resp.TotalBalance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostContribution_InactiveAccountRefused(t *testing.T) {
	db, mock, svc := newFundDeps(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM provident_funds").
		WillReturnRows(fundRow(false))
	mock.ExpectRollback()

	_, err := svc.PostContribution(context.Background(), uuid.NewString(), providentfund.PostContributionRequest{
		BasicSalary: "27000",
	})

	assert.ErrorIs(t, err, providentfunderrors.ErrAccountInactive)
	assert.NoError(t, mock.ExpectationsWereMet())
}
