package settlement_test

import (
	"context"
	"database/sql"
	"testing"

	"go-hrm/internal/settlement"
	settlementerrors "go-hrm/internal/settlement/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type fakeSettlementRepo struct {
	settlement.Repository

	create func(ctx context.Context, s *settlement.EmployeeSettlement) error
}

func (f *fakeSettlementRepo) Create(ctx context.Context, s *settlement.EmployeeSettlement) error {
	return f.create(ctx, s)
}

type fakeCounter struct {
	next int64
}

func (f *fakeCounter) GetNextValue(ctx context.Context, scope string, counterType string) (int64, error) {
	return f.next, nil
}

type fakeLoanOutstanding struct {
	outstanding decimal.Decimal
}

func (f *fakeLoanOutstanding) OutstandingForEmployee(ctx context.Context, employeeID string) (decimal.Decimal, error) {
	return f.outstanding, nil
}

func TestGratuity(t *testing.T) {
	got := settlement.Gratuity(6, decimal.NewFromInt(20000))
	assert.Equal(t, "69230.77", got.StringFixed(2))
}

func TestGratuity_BelowFiveYearsPaysNothing(t *testing.T) {
	got := settlement.Gratuity(4, decimal.NewFromInt(50000))
	assert.True(t, got.IsZero())
}

func TestNoticeRecovery(t *testing.T) {
	got := settlement.NoticeRecovery(20, decimal.NewFromInt(1000))
	assert.Equal(t, "20000.00", got.StringFixed(2))

	assert.True(t, settlement.NoticeRecovery(0, decimal.NewFromInt(1000)).IsZero())
}

func TestLeaveEncashment(t *testing.T) {
	got := settlement.LeaveEncashment(decimal.NewFromFloat(12.5), decimal.NewFromInt(1000))
	assert.Equal(t, "12500.00", got.StringFixed(2))
}

func TestInitiate_AssignsNumberAndShortfall(t *testing.T) {
	var created *settlement.EmployeeSettlement
	repo := &fakeSettlementRepo{
		create: func(ctx context.Context, s *settlement.EmployeeSettlement) error {
			created = s
			return nil
		},
	}
	svc := settlement.NewService(nil, repo, &fakeCounter{next: 42}, nil)

	resp, err := svc.Initiate(context.Background(), settlement.InitiateSettlementRequest{
		EmployeeID:       uuid.NewString(),
		ExitReason:       "RESIGNATION",
		LastWorkingDate:  "2025-03-31",
		SettlementDate:   "2025-04-15",
		ActualNoticeDays: 20,
	})

	assert.NoError(t, err)
	assert.Equal(t, "STL202500042", resp.SettlementID)
	assert.Equal(t, settlement.StatusInitiated, resp.Status)
	assert.Equal(t, 30, created.RequiredNoticeDays)
	assert.Equal(t, 10, created.NoticeShortfall)
	assert.False(t, created.NoticePeriodServed)
}

func TestInitiate_SecondSettlementRefused(t *testing.T) {
	repo := &fakeSettlementRepo{
		create: func(ctx context.Context, s *settlement.EmployeeSettlement) error {
			return &pgconn.PgError{Code: "23505"}
		},
	}
	svc := settlement.NewService(nil, repo, &fakeCounter{next: 1}, nil)

	_, err := svc.Initiate(context.Background(), settlement.InitiateSettlementRequest{
		EmployeeID:      uuid.NewString(),
		ExitReason:      "TERMINATION",
		LastWorkingDate: "2025-03-31",
		SettlementDate:  "2025-04-15",
	})

	assert.ErrorIs(t, err, settlementerrors.ErrSettlementExists)
}

func newSettlementDeps(t *testing.T, loans settlement.LoanOutstanding) (*sql.DB, sqlmock.Sqlmock, settlement.Service) {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	svc := settlement.NewService(db, settlement.NewRepository(nil), &fakeCounter{next: 1}, loans)
	return db, mock, svc
}

func settlementColumns() []string {
	return []string{
		"id", "settlement_id", "employee_id", "status",
		"required_notice_days", "actual_notice_days",
		"pending_salary", "leave_encashment", "gratuity", "notice_pay",
		"bonus_payable", "overtime_pay", "reimbursements",
		"provident_fund_amount", "other_payments",
		"notice_recovery", "loan_recovery", "advance_recovery",
		"asset_recovery", "training_bond_penalty", "damage_compensation",
		"tax_deduction", "other_deductions", "encashable_leave_days",
	}
}

func settlementRow(id uuid.UUID, status string) *sqlmock.Rows {
	zero := decimal.Zero
	return sqlmock.NewRows(settlementColumns()).AddRow(
		id, "STL202500001", uuid.New(), status,
		30, 20,
		decimal.NewFromInt(15000), zero, zero, zero,
		zero, zero, zero,
		zero, zero,
		zero, zero, zero,
		zero, zero, zero,
		zero, zero, decimal.NewFromInt(10),
	)
}

func expectCalculate(mock sqlmock.Sqlmock, id uuid.UUID, status string) {
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM employee_settlements").
		WillReturnRows(settlementRow(id, status))
	mock.ExpectExec("UPDATE employee_settlements").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
}

func TestCalculate_DerivesComponentsAndNet(t *testing.T) {
	db, mock, svc := newSettlementDeps(t, &fakeLoanOutstanding{outstanding: decimal.NewFromInt(5000)})
	defer db.Close()

	id := uuid.New()
	expectCalculate(mock, id, settlement.StatusInitiated)

	resp, err := svc.Calculate(context.Background(), id.String(), uuid.NewString(), settlement.CalculateRequest{
		YearsOfService: 6,
		LastSalary:     "20000",
		PerDaySalary:   "1000",
	})

	assert.NoError(t, err)
	assert.Equal(t, settlement.StatusCalculated, resp.Status)
	assert.Equal(t, 10, resp.NoticeShortfall)
	assert.Equal(t, "69230.77", resp.Gratuity)
	assert.Equal(t, "10000.00", resp.LeaveEncashment)
	assert.Equal(t, "10000.00", resp.NoticeRecovery)
	assert.Equal(t, "5000.00", resp.LoanRecovery)
	assert.Equal(t, "94230.77", resp.TotalPayable)
	assert.Equal(t, "15000.00", resp.TotalDeductible)
	assert.Equal(t, "79230.77", resp.NetSettlementAmount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCalculate_RecalculationLandsOnSameNet(t *testing.T) {
	db, mock, svc := newSettlementDeps(t, &fakeLoanOutstanding{outstanding: decimal.NewFromInt(5000)})
	defer db.Close()

	id := uuid.New()
	req := settlement.CalculateRequest{YearsOfService: 6, LastSalary: "20000", PerDaySalary: "1000"}

	expectCalculate(mock, id, settlement.StatusInitiated)
	expectCalculate(mock, id, settlement.StatusCalculated)

	first, err := svc.Calculate(context.Background(), id.String(), uuid.NewString(), req)
	assert.NoError(t, err)
	second, err := svc.Calculate(context.Background(), id.String(), uuid.NewString(), req)
	assert.NoError(t, err)

	assert.Equal(t, first.NetSettlementAmount, second.NetSettlementAmount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCalculate_AfterApprovalRefused(t *testing.T) {
	db, mock, svc := newSettlementDeps(t, nil)
	defer db.Close()

	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM employee_settlements").
		WillReturnRows(settlementRow(id, settlement.StatusApproved))
	mock.ExpectRollback()

	_, err := svc.Calculate(context.Background(), id.String(), uuid.NewString(), settlement.CalculateRequest{})

	assert.ErrorIs(t, err, settlementerrors.ErrInvalidStatusTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApprove_FromCalculated(t *testing.T) {
	db, mock, svc := newSettlementDeps(t, nil)
	defer db.Close()

	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM employee_settlements").
		WillReturnRows(settlementRow(id, settlement.StatusCalculated))
	mock.ExpectExec("UPDATE employee_settlements").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	resp, err := svc.Approve(context.Background(), id.String(), uuid.NewString())

	assert.NoError(t, err)
	assert.Equal(t, settlement.StatusApproved, resp.Status)
	assert.NotNil(t, resp.ApprovedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApprove_FromInitiatedRefused(t *testing.T) {
	db, mock, svc := newSettlementDeps(t, nil)
	defer db.Close()

	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM employee_settlements").
		WillReturnRows(settlementRow(id, settlement.StatusInitiated))
	mock.ExpectRollback()

	_, err := svc.Approve(context.Background(), id.String(), uuid.NewString())

	assert.ErrorIs(t, err, settlementerrors.ErrInvalidStatusTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkPaid_RequiresApproval(t *testing.T) {
	db, mock, svc := newSettlementDeps(t, nil)
	defer db.Close()

	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM employee_settlements").
		WillReturnRows(settlementRow(id, settlement.StatusCalculated))
	mock.ExpectRollback()

	_, err := svc.MarkPaid(context.Background(), id.String(), settlement.MarkPaidRequest{PaymentMode: "BANK_TRANSFER"})

	assert.ErrorIs(t, err, settlementerrors.ErrInvalidStatusTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestComplete_FromPaid(t *testing.T) {
	db, mock, svc := newSettlementDeps(t, nil)
	defer db.Close()

	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM employee_settlements").
		WillReturnRows(settlementRow(id, settlement.StatusPaid))
	mock.ExpectExec("UPDATE employee_settlements").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	resp, err := svc.Complete(context.Background(), id.String())

	assert.NoError(t, err)
	assert.Equal(t, settlement.StatusCompleted, resp.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancel_FromPaidRefused(t *testing.T) {
	db, mock, svc := newSettlementDeps(t, nil)
	defer db.Close()

	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM employee_settlements").
		WillReturnRows(settlementRow(id, settlement.StatusPaid))
	mock.ExpectRollback()

	_, err := svc.Cancel(context.Background(), id.String())

	assert.ErrorIs(t, err, settlementerrors.ErrInvalidStatusTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateComponents_ImmutableAfterApproval(t *testing.T) {
	db, mock, svc := newSettlementDeps(t, nil)
	defer db.Close()

	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM employee_settlements").
		WillReturnRows(settlementRow(id, settlement.StatusApproved))
	mock.ExpectRollback()

	_, err := svc.UpdateComponents(context.Background(), id.String(), settlement.UpdateComponentsRequest{
		BonusPayable: "5000",
	})

	assert.ErrorIs(t, err, settlementerrors.ErrSettlementImmutable)
	assert.NoError(t, mock.ExpectationsWereMet())
}
