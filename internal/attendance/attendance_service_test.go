package attendance_test

import (
	"context"
	"testing"
	"time"

	"go-hrm/internal/attendance"
	attendanceerrors "go-hrm/internal/attendance/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeAttendanceRepo struct {
	attendance.Repository

	findByEmployeeAndDate  func(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error)
	create                 func(ctx context.Context, a *attendance.Attendance) error
	update                 func(ctx context.Context, a *attendance.Attendance) error
	findByEmployeeAndMonth func(ctx context.Context, employeeID string, month, year int) ([]attendance.Attendance, error)
}

func (f *fakeAttendanceRepo) FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	return f.findByEmployeeAndDate(ctx, employeeID, date)
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, a *attendance.Attendance) error {
	return f.create(ctx, a)
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, a *attendance.Attendance) error {
	return f.update(ctx, a)
}

func (f *fakeAttendanceRepo) FindByEmployeeAndMonth(ctx context.Context, employeeID string, month, year int) ([]attendance.Attendance, error) {
	return f.findByEmployeeAndMonth(ctx, employeeID, month, year)
}

func TestCheckIn_SecondCallSameDayFails(t *testing.T) {
	employeeID := uuid.NewString()
	existing := &attendance.Attendance{ID: uuid.New(), Status: attendance.StatusPresent}

	repo := &fakeAttendanceRepo{
		findByEmployeeAndDate: func(ctx context.Context, gotID string, date time.Time) (*attendance.Attendance, error) {
			assert.Equal(t, employeeID, gotID)
			return existing, nil
		},
		create: func(ctx context.Context, a *attendance.Attendance) error {
			t.Fatal("create must not run when a row already exists")
			return nil
		},
	}
	svc := attendance.NewService(nil, repo, 8)

	_, err := svc.CheckIn(context.Background(), employeeID, attendance.CheckInRequest{})

	assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedIn)
}

func TestCheckIn_FirstCallCreatesRow(t *testing.T) {
	employeeID := uuid.NewString()

	var created *attendance.Attendance
	repo := &fakeAttendanceRepo{
		findByEmployeeAndDate: func(ctx context.Context, gotID string, date time.Time) (*attendance.Attendance, error) {
			return nil, gorm.ErrRecordNotFound
		},
		create: func(ctx context.Context, a *attendance.Attendance) error {
			created = a
			return nil
		},
	}
	svc := attendance.NewService(nil, repo, 8)

	resp, err := svc.CheckIn(context.Background(), employeeID, attendance.CheckInRequest{Location: "Factory Gate 2"})

	assert.NoError(t, err)
	assert.NotNil(t, created)
	assert.NotNil(t, created.CheckIn)
	assert.Contains(t, []string{attendance.StatusPresent, attendance.StatusLate}, resp.Status)
	assert.Equal(t, "Factory Gate 2", resp.Location)
}

func TestCheckOut_WithoutCheckInFails(t *testing.T) {
	repo := &fakeAttendanceRepo{
		findByEmployeeAndDate: func(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := attendance.NewService(nil, repo, 8)

	_, err := svc.CheckOut(context.Background(), uuid.NewString(), attendance.CheckOutRequest{})

	assert.ErrorIs(t, err, attendanceerrors.ErrNoCheckInFound)
}

func TestCheckOut_TwiceFails(t *testing.T) {
	in := time.Now().UTC().Add(-9 * time.Hour)
	out := time.Now().UTC().Add(-time.Hour)
	repo := &fakeAttendanceRepo{
		findByEmployeeAndDate: func(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
			return &attendance.Attendance{CheckIn: &in, CheckOut: &out}, nil
		},
	}
	svc := attendance.NewService(nil, repo, 8)

	_, err := svc.CheckOut(context.Background(), uuid.NewString(), attendance.CheckOutRequest{})

	assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedOut)
}

func TestManualEntry_HoursAndOvertime(t *testing.T) {
	var created *attendance.Attendance
	repo := &fakeAttendanceRepo{
		create: func(ctx context.Context, a *attendance.Attendance) error {
			created = a
			return nil
		},
	}
	svc := attendance.NewService(nil, repo, 8)

	resp, err := svc.ManualEntry(context.Background(), attendance.ManualEntryRequest{
		EmployeeID: uuid.NewString(),
		Date:       "2025-03-10",
		CheckIn:    "2025-03-10T08:00:00Z",
		CheckOut:   "2025-03-10T17:30:00Z",
		Status:     attendance.StatusPresent,
	})

	assert.NoError(t, err)
	assert.Equal(t, "9.50", resp.TotalHours)
	assert.Equal(t, "1.50", resp.OvertimeHours)
	assert.True(t, created.OvertimeHours.Equal(created.TotalHours.Sub(decimal.NewFromInt(8))))
}

func TestManualEntry_ShortDayHasZeroOvertime(t *testing.T) {
	repo := &fakeAttendanceRepo{
		create: func(ctx context.Context, a *attendance.Attendance) error { return nil },
	}
	svc := attendance.NewService(nil, repo, 8)

	resp, err := svc.ManualEntry(context.Background(), attendance.ManualEntryRequest{
		EmployeeID: uuid.NewString(),
		Date:       "2025-03-11",
		CheckIn:    "2025-03-11T09:00:00Z",
		CheckOut:   "2025-03-11T13:15:00Z",
		Status:     attendance.StatusHalfDay,
	})

	assert.NoError(t, err)
	assert.Equal(t, "4.25", resp.TotalHours)
	assert.Equal(t, "0.00", resp.OvertimeHours)
}

func TestManualEntry_CheckOutBeforeCheckInFails(t *testing.T) {
	svc := attendance.NewService(nil, &fakeAttendanceRepo{}, 8)

	_, err := svc.ManualEntry(context.Background(), attendance.ManualEntryRequest{
		EmployeeID: uuid.NewString(),
		Date:       "2025-03-11",
		CheckIn:    "2025-03-11T17:00:00Z",
		CheckOut:   "2025-03-11T09:00:00Z",
		Status:     attendance.StatusPresent,
	})

	assert.ErrorIs(t, err, attendanceerrors.ErrCheckOutBeforeCheckIn)
}

func TestSummarize_Counts(t *testing.T) {
	rows := []attendance.Attendance{
		{Status: attendance.StatusPresent, TotalHours: decimal.NewFromFloat(8), OvertimeHours: decimal.Zero},
		{Status: attendance.StatusLate, TotalHours: decimal.NewFromFloat(9.5), OvertimeHours: decimal.NewFromFloat(1.5)},
		{Status: attendance.StatusAbsent},
		{Status: attendance.StatusOnLeave},
		{Status: attendance.StatusOnLeave},
		{Status: attendance.StatusHalfDay, TotalHours: decimal.NewFromFloat(4)},
	}

	sum := attendance.Summarize("emp-1", 3, 2025, rows)

	assert.Equal(t, 2, sum.PresentDays)
	assert.Equal(t, 1, sum.AbsentDays)
	assert.Equal(t, 2, sum.LeaveDays)
	assert.Equal(t, 1, sum.HalfDays)
	assert.Equal(t, "21.50", sum.TotalHours.StringFixed(2))
	assert.Equal(t, "1.50", sum.OvertimeHours.StringFixed(2))
}

func TestSummary_InvalidPeriod(t *testing.T) {
	svc := attendance.NewService(nil, &fakeAttendanceRepo{}, 8)

	_, err := svc.Summary(context.Background(), uuid.NewString(), 13, 2025)

	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidPeriod)
}
