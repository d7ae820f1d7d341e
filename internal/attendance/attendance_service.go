package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	attendanceerrors "go-hrm/internal/attendance/errors"
	"go-hrm/internal/authz"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Check-ins after this time are flagged LATE.
var lateCutoff = struct{ hour, minute int }{9, 15}

type Service interface {
	CheckIn(ctx context.Context, employeeID string, req CheckInRequest) (AttendanceResponse, error)
	CheckOut(ctx context.Context, employeeID string, req CheckOutRequest) (AttendanceResponse, error)
	ManualEntry(ctx context.Context, req ManualEntryRequest) (AttendanceResponse, error)
	MyAttendance(ctx context.Context, employeeID string, month, year int) ([]AttendanceResponse, error)
	Summary(ctx context.Context, employeeID string, month, year int) (MonthlySummary, error)
	GetAll(ctx context.Context, scope authz.Scope, from, to string) ([]AttendanceResponse, error)

	CreateHoliday(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	GetHolidays(ctx context.Context, year int) ([]HolidayResponse, error)
	DeleteHoliday(ctx context.Context, id string) error
}

type service struct {
	db            *sql.DB
	repo          Repository
	standardHours int
	logger        *zap.Logger
}

func NewService(db *sql.DB, repo Repository, standardHours int, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	if standardHours <= 0 {
		standardHours = 8
	}
	return &service{db: db, repo: repo, standardHours: standardHours, logger: l}
}

func (s *service) CheckIn(ctx context.Context, employeeID string, req CheckInRequest) (AttendanceResponse, error) {
	now := time.Now().UTC()
	today := truncateToDate(now)

	existing, err := s.repo.FindByEmployeeAndDate(ctx, employeeID, today)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceResponse{}, err
	}
	if existing != nil {
		s.logger.Warn("duplicate check-in rejected",
			zap.String("employee_id", employeeID),
			zap.String("date", today.Format("2006-01-02")),
		)
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedIn
	}

	status := StatusPresent
	if now.Hour() > lateCutoff.hour || (now.Hour() == lateCutoff.hour && now.Minute() > lateCutoff.minute) {
		status = StatusLate
	}

	row := &Attendance{
		ID:             uuid.New(),
		EmployeeID:     uuid.MustParse(employeeID),
		AttendanceDate: today,
		CheckIn:        &now,
		Status:         status,
		Location:       req.Location,
		Notes:          req.Notes,
	}

	if err := s.repo.Create(ctx, row); err != nil {
		// Concurrent first check-in wins; the unique index reports the loser.
		if isUniqueViolation(err) {
			return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedIn
		}
		s.logger.Error("check-in persist failed", zap.String("employee_id", employeeID), zap.Error(err))
		return AttendanceResponse{}, err
	}

	s.logger.Info("check-in recorded",
		zap.String("employee_id", employeeID),
		zap.String("status", status),
	)

	return mapToResponse(*row), nil
}

func (s *service) CheckOut(ctx context.Context, employeeID string, req CheckOutRequest) (AttendanceResponse, error) {
	now := time.Now().UTC()
	today := truncateToDate(now)

	row, err := s.repo.FindByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrNoCheckInFound
		}
		return AttendanceResponse{}, err
	}
	if row.CheckIn == nil {
		return AttendanceResponse{}, attendanceerrors.ErrNoCheckInFound
	}
	if row.CheckOut != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedOut
	}

	row.CheckOut = &now
	row.TotalHours, row.OvertimeHours = s.computeHours(*row.CheckIn, now)
	if req.Location != "" {
		row.Location = req.Location
	}
	if req.Notes != "" {
		row.Notes = req.Notes
	}

	if err := s.repo.Update(ctx, row); err != nil {
		s.logger.Error("check-out persist failed", zap.String("employee_id", employeeID), zap.Error(err))
		return AttendanceResponse{}, err
	}

	s.logger.Info("check-out recorded",
		zap.String("employee_id", employeeID),
		zap.String("total_hours", row.TotalHours.StringFixed(2)),
		zap.String("overtime_hours", row.OvertimeHours.StringFixed(2)),
	)

	return mapToResponse(*row), nil
}

func (s *service) ManualEntry(ctx context.Context, req ManualEntryRequest) (AttendanceResponse, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidDate
	}

	var checkIn, checkOut *time.Time
	if req.CheckIn != "" {
		t, err := time.Parse(time.RFC3339, req.CheckIn)
		if err != nil {
			return AttendanceResponse{}, attendanceerrors.ErrInvalidDate
		}
		checkIn = &t
	}
	if req.CheckOut != "" {
		t, err := time.Parse(time.RFC3339, req.CheckOut)
		if err != nil {
			return AttendanceResponse{}, attendanceerrors.ErrInvalidDate
		}
		checkOut = &t
	}

	row := &Attendance{
		ID:             uuid.New(),
		EmployeeID:     uuid.MustParse(req.EmployeeID),
		AttendanceDate: truncateToDate(date),
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		Status:         req.Status,
		Notes:          req.Notes,
	}

	if checkIn != nil && checkOut != nil {
		if !checkOut.After(*checkIn) {
			return AttendanceResponse{}, attendanceerrors.ErrCheckOutBeforeCheckIn
		}
		row.TotalHours, row.OvertimeHours = s.computeHours(*checkIn, *checkOut)
	}

	if err := s.repo.Create(ctx, row); err != nil {
		if isUniqueViolation(err) {
			return AttendanceResponse{}, attendanceerrors.ErrDuplicateAttendance
		}
		s.logger.Error("manual attendance persist failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	s.logger.Info("manual attendance recorded",
		zap.String("employee_id", req.EmployeeID),
		zap.String("date", req.Date),
		zap.String("status", req.Status),
	)

	return mapToResponse(*row), nil
}

func (s *service) MyAttendance(ctx context.Context, employeeID string, month, year int) ([]AttendanceResponse, error) {
	if month < 1 || month > 12 || year < 2000 {
		return nil, attendanceerrors.ErrInvalidPeriod
	}

	rows, err := s.repo.FindByEmployeeAndMonth(ctx, employeeID, month, year)
	if err != nil {
		return nil, err
	}

	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func (s *service) Summary(ctx context.Context, employeeID string, month, year int) (MonthlySummary, error) {
	if month < 1 || month > 12 || year < 2000 {
		return MonthlySummary{}, attendanceerrors.ErrInvalidPeriod
	}

	rows, err := s.repo.FindByEmployeeAndMonth(ctx, employeeID, month, year)
	if err != nil {
		return MonthlySummary{}, err
	}

	return Summarize(employeeID, month, year, rows), nil
}

// Summarize folds a month of rows into day counts and hour totals. LATE
// counts as a present day.
func Summarize(employeeID string, month, year int, rows []Attendance) MonthlySummary {
	sum := MonthlySummary{
		EmployeeID:    employeeID,
		Month:         month,
		Year:          year,
		TotalHours:    decimal.Zero,
		OvertimeHours: decimal.Zero,
	}

	for _, r := range rows {
		switch r.Status {
		case StatusPresent, StatusLate:
			sum.PresentDays++
		case StatusAbsent:
			sum.AbsentDays++
		case StatusOnLeave:
			sum.LeaveDays++
		case StatusHalfDay:
			sum.HalfDays++
		}
		sum.TotalHours = sum.TotalHours.Add(r.TotalHours)
		sum.OvertimeHours = sum.OvertimeHours.Add(r.OvertimeHours)
	}

	return sum
}

func (s *service) GetAll(ctx context.Context, scope authz.Scope, from, to string) ([]AttendanceResponse, error) {
	var fromDate, toDate time.Time
	var err error
	if from != "" {
		if fromDate, err = time.Parse("2006-01-02", from); err != nil {
			return nil, attendanceerrors.ErrInvalidDate
		}
	}
	if to != "" {
		if toDate, err = time.Parse("2006-01-02", to); err != nil {
			return nil, attendanceerrors.ErrInvalidDate
		}
	}

	rows, err := s.repo.FindAll(ctx, scope, fromDate, toDate)
	if err != nil {
		return nil, err
	}

	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func (s *service) CreateHoliday(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return HolidayResponse{}, attendanceerrors.ErrInvalidDate
	}

	h := &Holiday{
		ID:          uuid.New(),
		Name:        req.Name,
		HolidayDate: truncateToDate(date),
	}
	if err := s.repo.CreateHoliday(ctx, h); err != nil {
		if isUniqueViolation(err) {
			return HolidayResponse{}, attendanceerrors.ErrDuplicateAttendance
		}
		return HolidayResponse{}, err
	}

	return mapHoliday(*h), nil
}

func (s *service) GetHolidays(ctx context.Context, year int) ([]HolidayResponse, error) {
	rows, err := s.repo.FindHolidaysByYear(ctx, year)
	if err != nil {
		return nil, err
	}

	res := make([]HolidayResponse, len(rows))
	for i, h := range rows {
		res[i] = mapHoliday(h)
	}
	return res, nil
}

func (s *service) DeleteHoliday(ctx context.Context, id string) error {
	if err := s.repo.DeleteHoliday(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return attendanceerrors.ErrHolidayNotFound
		}
		return err
	}
	return nil
}

// computeHours derives total worked hours rounded to 2 decimals and the
// overtime above the standard day.
func (s *service) computeHours(in, out time.Time) (total, overtime decimal.Decimal) {
	total = decimal.NewFromFloat(out.Sub(in).Hours()).Round(2)
	overtime = total.Sub(decimal.NewFromInt(int64(s.standardHours)))
	if overtime.IsNegative() {
		overtime = decimal.Zero
	}
	return total, overtime
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:             a.ID.String(),
		EmployeeID:     a.EmployeeID.String(),
		AttendanceDate: a.AttendanceDate.Format("2006-01-02"),
		TotalHours:     a.TotalHours.StringFixed(2),
		OvertimeHours:  a.OvertimeHours.StringFixed(2),
		Status:         a.Status,
		Location:       a.Location,
		Notes:          a.Notes,
	}
	if a.CheckIn != nil {
		resp.CheckIn = a.CheckIn.Format(time.RFC3339)
	}
	if a.CheckOut != nil {
		resp.CheckOut = a.CheckOut.Format(time.RFC3339)
	}
	return resp
}

func mapHoliday(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:   h.ID.String(),
		Name: h.Name,
		Date: h.HolidayDate.Format("2006-01-02"),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
