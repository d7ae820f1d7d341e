package leave_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-hrm/internal/leave"
	leaveerrors "go-hrm/internal/leave/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeLeaveRepo struct {
	leave.Repository

	findTypeByID          func(ctx context.Context, id string) (*leave.LeaveType, error)
	findActiveTypes       func(ctx context.Context) ([]leave.LeaveType, error)
	hasOverlappingRequest func(ctx context.Context, employeeID string, startDate, endDate time.Time) (bool, error)
	createRequest         func(ctx context.Context, r *leave.LeaveRequest) error
	createBalance         func(ctx context.Context, b *leave.LeaveBalance) error
}

func (f *fakeLeaveRepo) FindTypeByID(ctx context.Context, id string) (*leave.LeaveType, error) {
	return f.findTypeByID(ctx, id)
}

func (f *fakeLeaveRepo) FindActiveTypes(ctx context.Context) ([]leave.LeaveType, error) {
	return f.findActiveTypes(ctx)
}

func (f *fakeLeaveRepo) HasOverlappingRequest(ctx context.Context, employeeID string, startDate, endDate time.Time) (bool, error) {
	return f.hasOverlappingRequest(ctx, employeeID, startDate, endDate)
}

func (f *fakeLeaveRepo) CreateRequest(ctx context.Context, r *leave.LeaveRequest) error {
	return f.createRequest(ctx, r)
}

func (f *fakeLeaveRepo) CreateBalance(ctx context.Context, b *leave.LeaveBalance) error {
	return f.createBalance(ctx, b)
}

func activeType(id uuid.UUID, daysAllowed int) *leave.LeaveType {
	return &leave.LeaveType{ID: id, Name: "Annual", Code: "ANNUAL", DaysAllowed: daysAllowed, IsActive: true}
}

func TestCountWeekdays(t *testing.T) {
	// Mon 2025-03-03 through Sun 2025-03-09: five working days.
	start := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 5, leave.CountWeekdays(start, end))

	// Saturday only.
	sat := time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, leave.CountWeekdays(sat, sat))

	// Two full weeks spanning weekends.
	assert.Equal(t, 10, leave.CountWeekdays(start, start.AddDate(0, 0, 13)))
}

func TestApply_WeekdayCountStored(t *testing.T) {
	typeID := uuid.New()
	var created *leave.LeaveRequest
	repo := &fakeLeaveRepo{
		findTypeByID: func(ctx context.Context, id string) (*leave.LeaveType, error) {
			return activeType(typeID, 20), nil
		},
		hasOverlappingRequest: func(ctx context.Context, employeeID string, startDate, endDate time.Time) (bool, error) {
			return false, nil
		},
		createRequest: func(ctx context.Context, r *leave.LeaveRequest) error {
			created = r
			return nil
		},
	}
	svc := leave.NewService(nil, repo)

	resp, err := svc.Apply(context.Background(), uuid.NewString(), leave.ApplyLeaveRequest{
		LeaveTypeID: typeID.String(),
		StartDate:   "2025-03-03",
		EndDate:     "2025-03-09",
		Reason:      "family event",
	})

	assert.NoError(t, err)
	assert.Equal(t, 5, resp.TotalDays)
	assert.Equal(t, leave.StatusPending, created.Status)
}

func TestApply_WeekendOnlyRangeRejected(t *testing.T) {
	svc := leave.NewService(nil, &fakeLeaveRepo{})

	_, err := svc.Apply(context.Background(), uuid.NewString(), leave.ApplyLeaveRequest{
		LeaveTypeID: uuid.NewString(),
		StartDate:   "2025-03-08",
		EndDate:     "2025-03-09",
	})

	assert.ErrorIs(t, err, leaveerrors.ErrNoWorkingDays)
}

func TestApply_OverlapRejected(t *testing.T) {
	typeID := uuid.New()
	repo := &fakeLeaveRepo{
		findTypeByID: func(ctx context.Context, id string) (*leave.LeaveType, error) {
			return activeType(typeID, 20), nil
		},
		hasOverlappingRequest: func(ctx context.Context, employeeID string, startDate, endDate time.Time) (bool, error) {
			return true, nil
		},
	}
	svc := leave.NewService(nil, repo)

	_, err := svc.Apply(context.Background(), uuid.NewString(), leave.ApplyLeaveRequest{
		LeaveTypeID: typeID.String(),
		StartDate:   "2025-03-03",
		EndDate:     "2025-03-05",
	})

	assert.ErrorIs(t, err, leaveerrors.ErrLeaveOverlap)
}

func newApproveDeps(t *testing.T) (*sql.DB, sqlmock.Sqlmock, leave.Service) {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	return db, mock, leave.NewService(db, leave.NewRepository(nil))
}

func requestRows(id, employeeID, typeID uuid.UUID, totalDays int, status string) *sqlmock.Rows {
	start := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	return sqlmock.NewRows([]string{
		"id", "employee_id", "leave_type_id", "start_date", "end_date",
		"total_days", "reason", "status",
	}).AddRow(id, employeeID, typeID, start, start.AddDate(0, 0, totalDays-1), totalDays, "", status)
}

func TestApprove_ChargesBalanceOnce(t *testing.T) {
	db, mock, svc := newApproveDeps(t)
	defer db.Close()

	requestID := uuid.New()
	employeeID := uuid.New()
	typeID := uuid.New()
	balanceID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM leave_requests").
		WillReturnRows(requestRows(requestID, employeeID, typeID, 3, leave.StatusPending))
	mock.ExpectQuery("SELECT (.+) FROM leave_balances").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "employee_id", "leave_type_id", "year", "total_days", "used_days", "remaining_days",
		}).AddRow(balanceID, employeeID, typeID, 2025, 20, 5, 15))
	mock.ExpectExec("UPDATE leave_balances").
		WithArgs(8, 12, balanceID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE leave_requests").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	resp, err := svc.Approve(context.Background(), requestID.String(), uuid.NewString())

	assert.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, resp.Status)
	assert.NotNil(t, resp.ApprovedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApprove_NonPendingRefused(t *testing.T) {
	db, mock, svc := newApproveDeps(t)
	defer db.Close()

	requestID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM leave_requests").
		WillReturnRows(requestRows(requestID, uuid.New(), uuid.New(), 3, leave.StatusApproved))
	mock.ExpectRollback()

	_, err := svc.Approve(context.Background(), requestID.String(), uuid.NewString())

	assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApprove_InsufficientBalanceRefused(t *testing.T) {
	db, mock, svc := newApproveDeps(t)
	defer db.Close()

	requestID := uuid.New()
	employeeID := uuid.New()
	typeID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM leave_requests").
		WillReturnRows(requestRows(requestID, employeeID, typeID, 10, leave.StatusPending))
	mock.ExpectQuery("SELECT (.+) FROM leave_balances").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "employee_id", "leave_type_id", "year", "total_days", "used_days", "remaining_days",
		}).AddRow(uuid.New(), employeeID, typeID, 2025, 20, 15, 5))
	mock.ExpectRollback()

	_, err := svc.Approve(context.Background(), requestID.String(), uuid.NewString())

	assert.ErrorIs(t, err, leaveerrors.ErrInsufficientBalance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApprove_MissingBalanceRefused(t *testing.T) {
	db, mock, svc := newApproveDeps(t)
	defer db.Close()

	requestID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM leave_requests").
		WillReturnRows(requestRows(requestID, uuid.New(), uuid.New(), 3, leave.StatusPending))
	mock.ExpectQuery("SELECT (.+) FROM leave_balances").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := svc.Approve(context.Background(), requestID.String(), uuid.NewString())

	assert.ErrorIs(t, err, leaveerrors.ErrBalanceNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReject_RequiresReason(t *testing.T) {
	svc := leave.NewService(nil, &fakeLeaveRepo{})

	_, err := svc.Reject(context.Background(), uuid.NewString(), uuid.NewString(), "")

	assert.ErrorIs(t, err, leaveerrors.ErrRejectionReasonRequired)
}

func TestReject_LeavesBalanceUntouched(t *testing.T) {
	db, mock, svc := newApproveDeps(t)
	defer db.Close()

	requestID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM leave_requests").
		WillReturnRows(requestRows(requestID, uuid.New(), uuid.New(), 3, leave.StatusPending))
	mock.ExpectExec("UPDATE leave_requests").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	resp, err := svc.Reject(context.Background(), requestID.String(), uuid.NewString(), "coverage gap on the line")

	assert.NoError(t, err)
	assert.Equal(t, leave.StatusRejected, resp.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancel_OnlyOwnerAllowed(t *testing.T) {
	db, mock, svc := newApproveDeps(t)
	defer db.Close()

	requestID := uuid.New()
	owner := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM leave_requests").
		WillReturnRows(requestRows(requestID, owner, uuid.New(), 3, leave.StatusPending))
	mock.ExpectRollback()

	_, err := svc.Cancel(context.Background(), requestID.String(), uuid.NewString())

	assert.ErrorIs(t, err, leaveerrors.ErrNotRequestOwner)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedBalances_OneRowPerActiveType(t *testing.T) {
	annual := uuid.New()
	sick := uuid.New()
	repo := &fakeLeaveRepo{
		findActiveTypes: func(ctx context.Context) ([]leave.LeaveType, error) {
			return []leave.LeaveType{
				{ID: annual, Name: "Annual", DaysAllowed: 20, IsActive: true},
				{ID: sick, Name: "Sick", DaysAllowed: 10, IsActive: true},
			}, nil
		},
	}
	var seeded []leave.LeaveBalance
	repo.createBalance = func(ctx context.Context, b *leave.LeaveBalance) error {
		seeded = append(seeded, *b)
		return nil
	}
	svc := leave.NewService(nil, repo)

	err := svc.SeedBalances(context.Background(), uuid.NewString(), 2025)

	assert.NoError(t, err)
	assert.Len(t, seeded, 2)
	for _, b := range seeded {
		assert.Equal(t, 2025, b.Year)
		assert.Equal(t, b.TotalDays, b.RemainingDays)
		assert.Equal(t, 0, b.UsedDays)
	}
}
