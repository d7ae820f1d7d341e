package employee_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"go-hrm/internal/auth"
	"go-hrm/internal/authz"
	"go-hrm/internal/employee"
	employeeerrors "go-hrm/internal/employee/errors"
	"go-hrm/internal/messaging/kafka"
	"go-hrm/internal/organization"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeCounter struct {
	next int64
	err  error
}

func (f *fakeCounter) GetNextValue(ctx context.Context, scope, counterType string) (int64, error) {
	return f.next, f.err
}

type fakeChainValidator struct {
	err error
}

func (f *fakeChainValidator) ValidateChain(ctx context.Context, chain organization.Chain) error {
	return f.err
}

func newCreateRequest() employee.CreateEmployeeRequest {
	return employee.CreateEmployeeRequest{
		User: employee.UserPayload{
			Name:  "Rahim Uddin",
			Email: "rahim@example.com",
		},
		JoiningDate: "2025-03-01",
	}
}

func setupCreateDeps(t *testing.T) (*sql.DB, sqlmock.Sqlmock, employee.Service) {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	svc := employee.NewService(
		db,
		employee.NewRepository(nil),
		auth.NewRepository(nil),
		&fakeChainValidator{},
		&fakeCounter{next: 42},
		kafka.NewOutboxRepository(db),
		nil,
	)

	return db, mock, svc
}

func TestCreate_AtomicUserEmployeeOutbox(t *testing.T) {
	db, mock, svc := setupCreateDeps(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO users").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO employees").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO outbox_events").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	resp, err := svc.Create(context.Background(), newCreateRequest())

	assert.NoError(t, err)
	assert.Equal(t, "EMP-000042", resp.EmployeeNumber)
	assert.True(t, resp.IsActive)
	assert.Equal(t, "2025-03-01", resp.JoiningDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_EmployeeInsertFailureRollsBackUser(t *testing.T) {
	db, mock, svc := setupCreateDeps(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO users").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO employees").WillReturnError(errors.New("insert failed"))
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), newCreateRequest())

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_InvalidJoiningDateRejectedBeforeTx(t *testing.T) {
	db, mock, svc := setupCreateDeps(t)
	defer db.Close()

	req := newCreateRequest()
	req.JoiningDate = "01-03-2025"

	_, err := svc.Create(context.Background(), req)

	assert.ErrorIs(t, err, employeeerrors.ErrInvalidJoiningDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_BrokenChainRejectedBeforeTx(t *testing.T) {
	db, mock, err := func() (*sql.DB, sqlmock.Sqlmock, error) {
		db, mock, err := sqlmock.New()
		return db, mock, err
	}()
	assert.NoError(t, err)
	defer db.Close()

	chainErr := errors.New("chain mismatch")
	svc := employee.NewService(
		db,
		employee.NewRepository(nil),
		auth.NewRepository(nil),
		&fakeChainValidator{err: chainErr},
		&fakeCounter{next: 1},
		kafka.NewOutboxRepository(db),
		nil,
	)

	_, err = svc.Create(context.Background(), newCreateRequest())

	assert.ErrorIs(t, err, chainErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_ProvidedEmployeeNumberSkipsCounter(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	counter := &fakeCounter{err: errors.New("counter must not be called")}
	svc := employee.NewService(
		db,
		employee.NewRepository(nil),
		auth.NewRepository(nil),
		&fakeChainValidator{},
		counter,
		kafka.NewOutboxRepository(db),
		nil,
	)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO users").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO employees").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO outbox_events").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	req := newCreateRequest()
	req.EmployeeNumber = "EMP-900001"

	resp, err := svc.Create(context.Background(), req)

	assert.NoError(t, err)
	assert.Equal(t, "EMP-900001", resp.EmployeeNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAll_ScopePassedToRepository(t *testing.T) {
	var gotScope authz.Scope
	repo := &fakeEmployeeRepo{
		findAll: func(ctx context.Context, scope authz.Scope) ([]employee.Employee, error) {
			gotScope = scope
			return nil, nil
		},
	}

	svc := employee.NewService(nil, repo, auth.NewRepository(nil), &fakeChainValidator{}, &fakeCounter{}, nil, nil)

	scope := authz.Scope{Kind: authz.ScopeDepartment, DepartmentID: "dep-1"}
	_, err := svc.GetAll(context.Background(), scope)

	assert.NoError(t, err)
	assert.Equal(t, scope, gotScope)
}

type fakeEmployeeRepo struct {
	employee.Repository

	findAll      func(ctx context.Context, scope authz.Scope) ([]employee.Employee, error)
	findByUserID func(ctx context.Context, userID string) (*employee.Employee, error)
}

func (f *fakeEmployeeRepo) FindAll(ctx context.Context, scope authz.Scope) ([]employee.Employee, error) {
	return f.findAll(ctx, scope)
}

func (f *fakeEmployeeRepo) FindByUserID(ctx context.Context, userID string) (*employee.Employee, error) {
	return f.findByUserID(ctx, userID)
}

func TestFindByUserID_NotFoundIsExplicit(t *testing.T) {
	repo := &fakeEmployeeRepo{
		findByUserID: func(ctx context.Context, userID string) (*employee.Employee, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := employee.NewService(nil, repo, auth.NewRepository(nil), &fakeChainValidator{}, &fakeCounter{}, nil, nil)

	lookup, err := svc.FindByUserID(context.Background(), "user-1")

	assert.NoError(t, err)
	assert.False(t, lookup.Found)
}

func TestFindByUserID_StorageFailureIsAnError(t *testing.T) {
	repo := &fakeEmployeeRepo{
		findByUserID: func(ctx context.Context, userID string) (*employee.Employee, error) {
			return nil, errors.New("connection reset")
		},
	}
	svc := employee.NewService(nil, repo, auth.NewRepository(nil), &fakeChainValidator{}, &fakeCounter{}, nil, nil)

	_, err := svc.FindByUserID(context.Background(), "user-1")
	assert.Error(t, err)
}
