package attendance

import (
	"context"
	"database/sql"
	"time"

	"go-hrm/internal/authz"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)
	FindByEmployeeAndMonth(ctx context.Context, employeeID string, month, year int) ([]Attendance, error)
	FindAll(ctx context.Context, scope authz.Scope, from, to time.Time) ([]Attendance, error)
	Update(ctx context.Context, a *Attendance) error

	CreateHoliday(ctx context.Context, h *Holiday) error
	FindHolidaysByYear(ctx context.Context, year int) ([]Holiday, error)
	DeleteHoliday(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			INSERT INTO attendances (
				id, employee_id, attendance_date, check_in, check_out,
				total_hours, overtime_hours, status, location, notes,
				created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		`,
			a.ID, a.EmployeeID, a.AttendanceDate, a.CheckIn, a.CheckOut,
			a.TotalHours, a.OvertimeHours, a.Status, a.Location, a.Notes,
		)
		return err
	}
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("attendance_date = ?", date.Format("2006-01-02")).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindByEmployeeAndMonth(ctx context.Context, employeeID string, month, year int) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("EXTRACT(MONTH FROM attendance_date) = ? AND EXTRACT(YEAR FROM attendance_date) = ?", month, year).
		Order("attendance_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAll(ctx context.Context, scope authz.Scope, from, to time.Time) ([]Attendance, error) {
	q := r.db.WithContext(ctx).
		Scopes(scope.Apply("attendances.employee_id")).
		Order("attendance_date DESC")
	if !from.IsZero() {
		q = q.Where("attendance_date >= ?", from.Format("2006-01-02"))
	}
	if !to.IsZero() {
		q = q.Where("attendance_date <= ?", to.Format("2006-01-02"))
	}

	var rows []Attendance
	err := q.Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, a *Attendance) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			UPDATE attendances SET
				check_in = $2, check_out = $3, total_hours = $4,
				overtime_hours = $5, status = $6, location = $7, notes = $8,
				updated_at = NOW()
			WHERE id = $1 AND deleted_at IS NULL
		`,
			a.ID, a.CheckIn, a.CheckOut, a.TotalHours,
			a.OvertimeHours, a.Status, a.Location, a.Notes,
		)
		return err
	}
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *repository) CreateHoliday(ctx context.Context, h *Holiday) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *repository) FindHolidaysByYear(ctx context.Context, year int) ([]Holiday, error) {
	var rows []Holiday
	err := r.db.WithContext(ctx).
		Where("EXTRACT(YEAR FROM holiday_date) = ?", year).
		Order("holiday_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) DeleteHoliday(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Holiday{}, "id = ?", id).Error
}
