package leave

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-hrm/internal/authz"
	leaveerrors "go-hrm/internal/leave/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusCancelled = "CANCELLED"
)

type Service interface {
	CreateType(ctx context.Context, req CreateLeaveTypeRequest) (LeaveTypeResponse, error)
	GetTypes(ctx context.Context) ([]LeaveTypeResponse, error)
	UpdateType(ctx context.Context, id string, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error)

	Apply(ctx context.Context, employeeID string, req ApplyLeaveRequest) (LeaveRequestResponse, error)
	MyRequests(ctx context.Context, employeeID string) ([]LeaveRequestResponse, error)
	GetRequest(ctx context.Context, id string) (LeaveRequestResponse, error)
	GetAllRequests(ctx context.Context, scope authz.Scope, status string) ([]LeaveRequestResponse, error)
	Approve(ctx context.Context, id, approverID string) (LeaveRequestResponse, error)
	Reject(ctx context.Context, id, approverID, rejectionReason string) (LeaveRequestResponse, error)
	Cancel(ctx context.Context, id, employeeID string) (LeaveRequestResponse, error)

	MyBalances(ctx context.Context, employeeID string, year int) ([]LeaveBalanceResponse, error)
	SeedBalances(ctx context.Context, employeeID string, year int) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) CreateType(ctx context.Context, req CreateLeaveTypeRequest) (LeaveTypeResponse, error) {
	t := &LeaveType{
		ID:           uuid.New(),
		Name:         req.Name,
		Code:         req.Code,
		DaysAllowed:  req.DaysAllowed,
		IsPaid:       req.IsPaid == nil || *req.IsPaid,
		CarryForward: req.CarryForward,
		IsActive:     true,
	}
	if err := s.repo.CreateType(ctx, t); err != nil {
		if isUniqueViolation(err) {
			return LeaveTypeResponse{}, leaveerrors.ErrDuplicateLeaveType
		}
		s.logger.Error("create leave type failed", zap.String("code", req.Code), zap.Error(err))
		return LeaveTypeResponse{}, err
	}

	s.logger.Info("leave type created", zap.String("code", t.Code))
	return mapType(*t), nil
}

func (s *service) GetTypes(ctx context.Context) ([]LeaveTypeResponse, error) {
	types, err := s.repo.FindAllTypes(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]LeaveTypeResponse, len(types))
	for i, t := range types {
		res[i] = mapType(t)
	}
	return res, nil
}

func (s *service) UpdateType(ctx context.Context, id string, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error) {
	t, err := s.repo.FindTypeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveTypeResponse{}, leaveerrors.ErrLeaveTypeNotFound
		}
		return LeaveTypeResponse{}, err
	}

	t.Name = req.Name
	t.DaysAllowed = req.DaysAllowed
	if req.IsPaid != nil {
		t.IsPaid = *req.IsPaid
	}
	t.CarryForward = req.CarryForward
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}

	if err := s.repo.UpdateType(ctx, t); err != nil {
		return LeaveTypeResponse{}, err
	}
	return mapType(*t), nil
}

func (s *service) Apply(ctx context.Context, employeeID string, req ApplyLeaveRequest) (LeaveRequestResponse, error) {
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrLeaveRequestNotFound
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if startDate.After(endDate) {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidDateRange
	}

	totalDays := CountWeekdays(startDate, endDate)
	if totalDays == 0 {
		return LeaveRequestResponse{}, leaveerrors.ErrNoWorkingDays
	}

	leaveType, err := s.repo.FindTypeByID(ctx, req.LeaveTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaveerrors.ErrLeaveTypeNotFound
		}
		return LeaveRequestResponse{}, err
	}
	if !leaveType.IsActive {
		return LeaveRequestResponse{}, leaveerrors.ErrLeaveTypeNotFound
	}

	overlap, err := s.repo.HasOverlappingRequest(ctx, employeeID, startDate, endDate)
	if err != nil {
		s.logger.Error("leave overlap check failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	if overlap {
		s.logger.Warn("overlapping leave rejected",
			zap.String("employee_id", employeeID),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return LeaveRequestResponse{}, leaveerrors.ErrLeaveOverlap
	}

	l := &LeaveRequest{
		ID:          uuid.New(),
		EmployeeID:  employeeUUID,
		LeaveTypeID: leaveType.ID,
		StartDate:   startDate,
		EndDate:     endDate,
		TotalDays:   totalDays,
		Reason:      req.Reason,
		Status:      StatusPending,
		LeaveType:   leaveType,
	}

	if err := s.repo.CreateRequest(ctx, l); err != nil {
		s.logger.Error("leave request persist failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	s.logger.Info("leave request submitted",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", employeeID),
		zap.Int("total_days", totalDays),
	)
	return mapRequest(*l), nil
}

func (s *service) MyRequests(ctx context.Context, employeeID string) ([]LeaveRequestResponse, error) {
	requests, err := s.repo.FindRequestsByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapRequests(requests), nil
}

func (s *service) GetRequest(ctx context.Context, id string) (LeaveRequestResponse, error) {
	l, err := s.repo.FindRequestByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaveerrors.ErrLeaveRequestNotFound
		}
		return LeaveRequestResponse{}, err
	}
	return mapRequest(*l), nil
}

func (s *service) GetAllRequests(ctx context.Context, scope authz.Scope, status string) ([]LeaveRequestResponse, error) {
	requests, err := s.repo.FindAllRequests(ctx, scope, status)
	if err != nil {
		return nil, err
	}
	return mapRequests(requests), nil
}

// Approve moves a PENDING request to APPROVED and charges the matching
// balance. The request and balance rows are locked so two concurrent
// approvals cannot double-count the same days.
func (s *service) Approve(ctx context.Context, id, approverID string) (LeaveRequestResponse, error) {
	approverUUID, err := uuid.Parse(approverID)
	if err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrLeaveRequestNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("approve leave begin tx failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindRequestForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaveerrors.ErrLeaveRequestNotFound
		}
		return LeaveRequestResponse{}, err
	}
	if l.Status != StatusPending {
		s.logger.Warn("approve refused for non-pending leave",
			zap.String("leave_id", id),
			zap.String("status", l.Status),
		)
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	balance, err := qtx.LockBalance(ctx, l.EmployeeID.String(), l.LeaveTypeID.String(), l.StartDate.Year())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaveerrors.ErrBalanceNotFound
		}
		return LeaveRequestResponse{}, err
	}
	if balance.RemainingDays < l.TotalDays {
		s.logger.Warn("approve refused for insufficient balance",
			zap.String("leave_id", id),
			zap.Int("remaining_days", balance.RemainingDays),
			zap.Int("requested_days", l.TotalDays),
		)
		return LeaveRequestResponse{}, leaveerrors.ErrInsufficientBalance
	}

	balance.UsedDays += l.TotalDays
	balance.RemainingDays = balance.TotalDays - balance.UsedDays
	if err := qtx.UpdateBalanceUsage(ctx, balance); err != nil {
		s.logger.Error("approve leave balance update failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	now := time.Now().UTC()
	l.Status = StatusApproved
	l.ApprovedBy = &approverUUID
	l.ApprovedAt = &now
	l.RejectionReason = nil
	if err := qtx.UpdateRequestStatus(ctx, l); err != nil {
		s.logger.Error("approve leave status update failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("approve leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	s.logger.Info("leave approved",
		zap.String("leave_id", id),
		zap.String("approver_id", approverID),
		zap.Int("days_charged", l.TotalDays),
	)
	return mapRequest(*l), nil
}

func (s *service) Reject(ctx context.Context, id, approverID, rejectionReason string) (LeaveRequestResponse, error) {
	if rejectionReason == "" {
		return LeaveRequestResponse{}, leaveerrors.ErrRejectionReasonRequired
	}
	approverUUID, err := uuid.Parse(approverID)
	if err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrLeaveRequestNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindRequestForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaveerrors.ErrLeaveRequestNotFound
		}
		return LeaveRequestResponse{}, err
	}
	if l.Status != StatusPending {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	now := time.Now().UTC()
	l.Status = StatusRejected
	l.ApprovedBy = &approverUUID
	l.ApprovedAt = &now
	l.RejectionReason = &rejectionReason
	if err := qtx.UpdateRequestStatus(ctx, l); err != nil {
		return LeaveRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return LeaveRequestResponse{}, err
	}

	s.logger.Info("leave rejected",
		zap.String("leave_id", id),
		zap.String("approver_id", approverID),
	)
	return mapRequest(*l), nil
}

func (s *service) Cancel(ctx context.Context, id, employeeID string) (LeaveRequestResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindRequestForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaveerrors.ErrLeaveRequestNotFound
		}
		return LeaveRequestResponse{}, err
	}
	if l.EmployeeID.String() != employeeID {
		return LeaveRequestResponse{}, leaveerrors.ErrNotRequestOwner
	}
	if l.Status != StatusPending {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	l.Status = StatusCancelled
	l.ApprovedBy = nil
	l.ApprovedAt = nil
	l.RejectionReason = nil
	if err := qtx.UpdateRequestStatus(ctx, l); err != nil {
		return LeaveRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return LeaveRequestResponse{}, err
	}

	s.logger.Info("leave cancelled",
		zap.String("leave_id", id),
		zap.String("employee_id", employeeID),
	)
	return mapRequest(*l), nil
}

func (s *service) MyBalances(ctx context.Context, employeeID string, year int) ([]LeaveBalanceResponse, error) {
	if year == 0 {
		year = time.Now().UTC().Year()
	}
	balances, err := s.repo.FindBalances(ctx, employeeID, year)
	if err != nil {
		return nil, err
	}

	res := make([]LeaveBalanceResponse, len(balances))
	for i, b := range balances {
		res[i] = mapBalance(b)
	}
	return res, nil
}

// SeedBalances creates one balance row per active leave type for the
// employee's joining year. Re-delivery of the same event hits the unique
// index on (employee, type, year) and surfaces as a conflict to the caller.
func (s *service) SeedBalances(ctx context.Context, employeeID string, year int) error {
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return leaveerrors.ErrLeaveRequestNotFound
	}

	types, err := s.repo.FindActiveTypes(ctx)
	if err != nil {
		return err
	}

	for _, t := range types {
		b := &LeaveBalance{
			ID:            uuid.New(),
			EmployeeID:    employeeUUID,
			LeaveTypeID:   t.ID,
			Year:          year,
			TotalDays:     t.DaysAllowed,
			UsedDays:      0,
			RemainingDays: t.DaysAllowed,
		}
		if err := s.repo.CreateBalance(ctx, b); err != nil {
			return err
		}
	}

	s.logger.Info("leave balances seeded",
		zap.String("employee_id", employeeID),
		zap.Int("year", year),
		zap.Int("types", len(types)),
	)
	return nil
}

// CountWeekdays returns the number of Monday-to-Friday days in the
// inclusive range.
func CountWeekdays(start, end time.Time) int {
	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			count++
		}
	}
	return count
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapType(t LeaveType) LeaveTypeResponse {
	return LeaveTypeResponse{
		ID:           t.ID.String(),
		Name:         t.Name,
		Code:         t.Code,
		DaysAllowed:  t.DaysAllowed,
		IsPaid:       t.IsPaid,
		CarryForward: t.CarryForward,
		IsActive:     t.IsActive,
	}
}

func mapRequest(l LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:          l.ID.String(),
		EmployeeID:  l.EmployeeID.String(),
		LeaveTypeID: l.LeaveTypeID.String(),
		StartDate:   l.StartDate.Format("2006-01-02"),
		EndDate:     l.EndDate.Format("2006-01-02"),
		TotalDays:   l.TotalDays,
		Reason:      l.Reason,
		Status:      l.Status,
	}
	if l.LeaveType != nil {
		resp.LeaveTypeName = l.LeaveType.Name
	}
	if l.ApprovedBy != nil {
		v := l.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if l.ApprovedAt != nil {
		v := l.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	resp.RejectionReason = l.RejectionReason
	return resp
}

func mapRequests(requests []LeaveRequest) []LeaveRequestResponse {
	resp := make([]LeaveRequestResponse, len(requests))
	for i, l := range requests {
		resp[i] = mapRequest(l)
	}
	return resp
}

func mapBalance(b LeaveBalance) LeaveBalanceResponse {
	resp := LeaveBalanceResponse{
		ID:            b.ID.String(),
		EmployeeID:    b.EmployeeID.String(),
		LeaveTypeID:   b.LeaveTypeID.String(),
		Year:          b.Year,
		TotalDays:     b.TotalDays,
		UsedDays:      b.UsedDays,
		RemainingDays: b.RemainingDays,
	}
	if b.LeaveType != nil {
		resp.LeaveTypeName = b.LeaveType.Name
	}
	return resp
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
