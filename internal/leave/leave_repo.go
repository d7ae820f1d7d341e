package leave

import (
	"context"
	"database/sql"
	"time"

	"go-hrm/internal/authz"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreateType(ctx context.Context, t *LeaveType) error
	FindAllTypes(ctx context.Context) ([]LeaveType, error)
	FindActiveTypes(ctx context.Context) ([]LeaveType, error)
	FindTypeByID(ctx context.Context, id string) (*LeaveType, error)
	UpdateType(ctx context.Context, t *LeaveType) error

	CreateRequest(ctx context.Context, r *LeaveRequest) error
	FindRequestByID(ctx context.Context, id string) (*LeaveRequest, error)
	FindRequestForUpdate(ctx context.Context, id string) (*LeaveRequest, error)
	FindRequestsByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	FindAllRequests(ctx context.Context, scope authz.Scope, status string) ([]LeaveRequest, error)
	HasOverlappingRequest(ctx context.Context, employeeID string, startDate, endDate time.Time) (bool, error)
	UpdateRequestStatus(ctx context.Context, r *LeaveRequest) error

	CreateBalance(ctx context.Context, b *LeaveBalance) error
	FindBalances(ctx context.Context, employeeID string, year int) ([]LeaveBalance, error)
	LockBalance(ctx context.Context, employeeID, leaveTypeID string, year int) (*LeaveBalance, error)
	UpdateBalanceUsage(ctx context.Context, b *LeaveBalance) error
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

func (r *repository) CreateType(ctx context.Context, t *LeaveType) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *repository) FindAllTypes(ctx context.Context) ([]LeaveType, error) {
	var types []LeaveType
	err := r.db.WithContext(ctx).Order("name").Find(&types).Error
	return types, err
}

func (r *repository) FindActiveTypes(ctx context.Context) ([]LeaveType, error) {
	var types []LeaveType
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name").
		Find(&types).Error
	return types, err
}

func (r *repository) FindTypeByID(ctx context.Context, id string) (*LeaveType, error) {
	var t LeaveType
	err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error
	return &t, err
}

func (r *repository) UpdateType(ctx context.Context, t *LeaveType) error {
	return r.db.WithContext(ctx).
		Model(t).
		Select("name", "days_allowed", "is_paid", "carry_forward", "is_active", "updated_at").
		Updates(t).Error
}

func (r *repository) CreateRequest(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindRequestByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("LeaveType").
		First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) FindRequestForUpdate(ctx context.Context, id string) (*LeaveRequest, error) {
	if r.tx != nil {
		l := &LeaveRequest{}
		row := r.tx.QueryRowContext(ctx, `
			SELECT id, employee_id, leave_type_id, start_date, end_date,
			       total_days, reason, status
			FROM leave_requests
			WHERE id = $1 AND deleted_at IS NULL
			FOR UPDATE`, id)
		err := row.Scan(&l.ID, &l.EmployeeID, &l.LeaveTypeID, &l.StartDate, &l.EndDate,
			&l.TotalDays, &l.Reason, &l.Status)
		if err == sql.ErrNoRows {
			return nil, gorm.ErrRecordNotFound
		}
		return l, err
	}

	var l LeaveRequest
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) FindRequestsByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("LeaveType").
		Where("employee_id = ?", employeeID).
		Order("start_date DESC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindAllRequests(ctx context.Context, scope authz.Scope, status string) ([]LeaveRequest, error) {
	db := r.db.WithContext(ctx).
		Preload("LeaveType").
		Scopes(scope.Apply("leave_requests.employee_id"))
	if status != "" {
		db = db.Where("status = ?", status)
	}

	var requests []LeaveRequest
	err := db.Order("start_date DESC").Find(&requests).Error
	return requests, err
}

func (r *repository) HasOverlappingRequest(ctx context.Context, employeeID string, startDate, endDate time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("employee_id = ?", employeeID).
		Where("status IN ?", []string{StatusPending, StatusApproved}).
		Where("NOT (end_date < ? OR start_date > ?)", startDate, endDate).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) UpdateRequestStatus(ctx context.Context, l *LeaveRequest) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			UPDATE leave_requests
			SET status = $1, approved_by = $2, approved_at = $3,
			    rejection_reason = $4, updated_at = NOW()
			WHERE id = $5`,
			l.Status, l.ApprovedBy, l.ApprovedAt, l.RejectionReason, l.ID)
		return err
	}
	return r.db.WithContext(ctx).
		Model(l).
		Select("status", "approved_by", "approved_at", "rejection_reason", "updated_at").
		Updates(l).Error
}

func (r *repository) CreateBalance(ctx context.Context, b *LeaveBalance) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *repository) FindBalances(ctx context.Context, employeeID string, year int) ([]LeaveBalance, error) {
	var balances []LeaveBalance
	err := r.db.WithContext(ctx).
		Preload("LeaveType").
		Where("employee_id = ? AND year = ?", employeeID, year).
		Find(&balances).Error
	return balances, err
}

func (r *repository) LockBalance(ctx context.Context, employeeID, leaveTypeID string, year int) (*LeaveBalance, error) {
	if r.tx != nil {
		b := &LeaveBalance{}
		row := r.tx.QueryRowContext(ctx, `
			SELECT id, employee_id, leave_type_id, year, total_days, used_days, remaining_days
			FROM leave_balances
			WHERE employee_id = $1 AND leave_type_id = $2 AND year = $3
			FOR UPDATE`, employeeID, leaveTypeID, year)
		err := row.Scan(&b.ID, &b.EmployeeID, &b.LeaveTypeID, &b.Year,
			&b.TotalDays, &b.UsedDays, &b.RemainingDays)
		if err == sql.ErrNoRows {
			return nil, gorm.ErrRecordNotFound
		}
		return b, err
	}

	var b LeaveBalance
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("employee_id = ? AND leave_type_id = ? AND year = ?", employeeID, leaveTypeID, year).
		First(&b).Error
	return &b, err
}

func (r *repository) UpdateBalanceUsage(ctx context.Context, b *LeaveBalance) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			UPDATE leave_balances
			SET used_days = $1, remaining_days = $2, updated_at = NOW()
			WHERE id = $3`,
			b.UsedDays, b.RemainingDays, b.ID)
		return err
	}
	return r.db.WithContext(ctx).
		Model(b).
		Select("used_days", "remaining_days", "updated_at").
		Updates(b).Error
}
