package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"go-hrm/internal/auth"
	"go-hrm/internal/authz"
	employeeerrors "go-hrm/internal/employee/errors"
	"go-hrm/internal/events"
	"go-hrm/internal/messaging/kafka"
	"go-hrm/internal/organization"
	"go-hrm/internal/shared/contextutil"
	"go-hrm/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/singleflight"
)

const (
	employeeOptionsKey = "employees:options"

	// Assigned when onboarding omits a password; the user is expected to
	// change it on first login.
	defaultPassword = "temp123"
)

// Lookup is the result of resolving an employee profile for a user. Callers
// branch on Found instead of interpreting an error.
type Lookup struct {
	Found    bool
	Employee EmployeeResponse
}

// ChainValidator checks that the selected hierarchy nodes form a consistent
// parent chain.
type ChainValidator interface {
	ValidateChain(ctx context.Context, chain organization.Chain) error
}

type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, scope authz.Scope) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	FindByUserID(ctx context.Context, userID string) (Lookup, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Deactivate(ctx context.Context, id string, req DeactivateEmployeeRequest) error
}

type service struct {
	db       *sql.DB
	repo     Repository
	userRepo auth.Repository
	chains   ChainValidator
	counter  counter.Repository
	outbox   kafka.OutboxRepository
	rdb      *redis.Client
	sf       *singleflight.Group
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	userRepo auth.Repository,
	chains ChainValidator,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		userRepo: userRepo,
		chains:   chains,
		counter:  counterRepo,
		outbox:   outboxRepo,
		rdb:      rdb,
		sf:       &singleflight.Group{},
		logger:   l,
	}
}

// Create onboards an employee: the User identity, the Employee profile, and
// the employee_created outbox event are written in one transaction so a
// failure can never leave an orphaned identity behind.
func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("email", req.User.Email),
	)

	joiningDate, err := time.Parse("2006-01-02", req.JoiningDate)
	if err != nil {
		s.logger.Warn("create employee invalid joining_date",
			zap.String("joining_date", req.JoiningDate),
			zap.Error(err),
		)
		return EmployeeResponse{}, employeeerrors.ErrInvalidJoiningDate
	}

	var confirmationDate *time.Time
	if req.ConfirmationDate != "" {
		cd, err := time.Parse("2006-01-02", req.ConfirmationDate)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrInvalidJoiningDate
		}
		confirmationDate = &cd
	}

	if err := s.chains.ValidateChain(ctx, req.Chain); err != nil {
		s.logger.Warn("create employee chain validation failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	if req.ReportingManagerID != "" {
		if _, err := s.repo.FindByID(ctx, req.ReportingManagerID); err != nil {
			return EmployeeResponse{}, employeeerrors.ErrReportingManagerNotFound
		}
	}

	password := req.User.Password
	if password == "" {
		password = defaultPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return EmployeeResponse{}, err
	}

	role := req.User.Role
	if role == "" {
		role = authz.RoleEmployee
	}

	if req.EmployeeNumber == "" {
		nextVal, err := s.counter.GetNextValue(ctx, "global", "employee_number")
		if err != nil {
			s.logger.Error("create employee generate number failed", zap.Error(err))
			return EmployeeResponse{}, err
		}
		req.EmployeeNumber = fmt.Sprintf("EMP-%06d", nextVal)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	employeeID := uuid.New()
	user := &auth.User{
		ID:         uuid.New(),
		EmployeeID: &employeeID,
		Name:       req.User.Name,
		Email:      req.User.Email,
		Password:   string(hashed),
		Role:       role,
		IsActive:   true,
	}
	if err := s.userRepo.WithTx(tx).Create(ctx, user); err != nil {
		s.logger.Error("create employee user persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	empl := &Employee{
		ID:                 employeeID,
		UserID:             user.ID,
		EmployeeNumber:     req.EmployeeNumber,
		FullName:           req.User.Name,
		Email:              req.User.Email,
		Phone:              req.Phone,
		GroupID:            uuidPtr(req.Chain.GroupID),
		CompanyUnitID:      uuidPtr(req.Chain.CompanyUnitID),
		DivisionID:         uuidPtr(req.Chain.DivisionID),
		DepartmentID:       uuidPtr(req.Chain.DepartmentID),
		SectionID:          uuidPtr(req.Chain.SectionID),
		SubSectionID:       uuidPtr(req.Chain.SubSectionID),
		FloorID:            uuidPtr(req.Chain.FloorID),
		LineID:             uuidPtr(req.Chain.LineID),
		DesignationID:      uuidPtr(req.DesignationID),
		EmploymentType:     defaultString(req.EmploymentType, EmploymentTypePermanent),
		EmployeeCategory:   defaultString(req.EmployeeCategory, CategoryNonOvertime),
		WorkShift:          req.WorkShift,
		WeekendDay:         req.WeekendDay,
		JoiningDate:        joiningDate,
		ConfirmationDate:   confirmationDate,
		ReportingManagerID: uuidPtr(req.ReportingManagerID),
		BankName:           req.BankName,
		BankAccountNumber:  req.BankAccountNumber,
		IsActive:           true,
	}
	if err := s.repo.WithTx(tx).Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.EmployeeCreatedEvent{
			EventType:      "employee_created",
			RequestID:      rid,
			EmployeeID:     empl.ID.String(),
			EmployeeNumber: empl.EmployeeNumber,
			JoiningYear:    joiningDate.Year(),
			OccurredAt:     time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return EmployeeResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "employee",
			AggregateID:   empl.ID.String(),
			EventType:     event.EventType,
			Topic:         events.EmployeeCreatedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("create employee outbox persist failed",
				zap.String("employee_id", empl.ID.String()),
				zap.Error(err),
			)
			return EmployeeResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptionsCache(ctx)

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
		zap.String("employee_number", empl.EmployeeNumber),
	)

	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context, scope authz.Scope) ([]EmployeeResponse, error) {
	s.logger.Debug("get all employees requested", zap.Stringer("scope", scope.Kind))
	employees, err := s.repo.FindAll(ctx, scope)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(employees), nil
}

func (s *service) GetOptions(ctx context.Context) ([]EmployeeResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, employeeOptionsKey).Result(); err == nil {
			var resp []EmployeeResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(employeeOptionsKey, func() (interface{}, error) {
		employees, err := s.repo.FindOptions(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(employees)

		if s.rdb != nil {
			if data, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, employeeOptionsKey, data, time.Hour)
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]EmployeeResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*empl), nil
}

func (s *service) FindByUserID(ctx context.Context, userID string) (Lookup, error) {
	empl, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if mapped := mapRepositoryError(err); mapped == employeeerrors.ErrEmployeeNotFound {
			return Lookup{Found: false}, nil
		}
		return Lookup{}, err
	}
	return Lookup{Found: true, Employee: mapToResponse(*empl)}, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	s.logger.Debug("update employee requested", zap.String("employee_id", id))

	if err := s.chains.ValidateChain(ctx, req.Chain); err != nil {
		return EmployeeResponse{}, err
	}

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	if req.FullName != "" {
		empl.FullName = req.FullName
	}
	if req.Email != "" {
		empl.Email = req.Email
	}
	empl.Phone = req.Phone
	empl.GroupID = uuidPtr(req.Chain.GroupID)
	empl.CompanyUnitID = uuidPtr(req.Chain.CompanyUnitID)
	empl.DivisionID = uuidPtr(req.Chain.DivisionID)
	empl.DepartmentID = uuidPtr(req.Chain.DepartmentID)
	empl.SectionID = uuidPtr(req.Chain.SectionID)
	empl.SubSectionID = uuidPtr(req.Chain.SubSectionID)
	empl.FloorID = uuidPtr(req.Chain.FloorID)
	empl.LineID = uuidPtr(req.Chain.LineID)
	empl.DesignationID = uuidPtr(req.DesignationID)
	if req.EmploymentType != "" {
		empl.EmploymentType = req.EmploymentType
	}
	if req.EmployeeCategory != "" {
		empl.EmployeeCategory = req.EmployeeCategory
	}
	empl.WorkShift = req.WorkShift
	empl.WeekendDay = req.WeekendDay
	empl.ReportingManagerID = uuidPtr(req.ReportingManagerID)
	empl.BankName = req.BankName
	empl.BankAccountNumber = req.BankAccountNumber
	if req.ConfirmationDate != "" {
		cd, err := time.Parse("2006-01-02", req.ConfirmationDate)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrInvalidJoiningDate
		}
		empl.ConfirmationDate = &cd
	}

	if err := s.repo.WithTx(tx).Update(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	// Name and email live on the linked User too; keep both rows in step.
	if req.FullName != "" || req.Email != "" {
		user, err := s.userRepo.GetByID(ctx, empl.UserID)
		if err == nil {
			if req.FullName != "" {
				user.Name = req.FullName
			}
			if req.Email != "" {
				user.Email = req.Email
			}
			if err := s.userRepo.WithTx(tx).Update(ctx, user); err != nil {
				s.logger.Error("update employee linked user failed", zap.Error(err))
				return EmployeeResponse{}, mapRepositoryError(err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}

	s.invalidateOptionsCache(ctx)

	s.logger.Info("update employee success", zap.String("employee_id", id))

	return mapToResponse(*empl), nil
}

// Deactivate marks the employee as exited. Attendance and payroll rows are
// left untouched.
func (s *service) Deactivate(ctx context.Context, id string, req DeactivateEmployeeRequest) error {
	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	if !empl.IsActive {
		return employeeerrors.ErrEmployeeAlreadyInactive
	}

	exitDate, err := time.Parse("2006-01-02", req.ExitDate)
	if err != nil {
		return employeeerrors.ErrInvalidExitDate
	}

	empl.ExitDate = &exitDate
	empl.ExitReason = req.ExitReason

	if err := s.repo.Deactivate(ctx, empl); err != nil {
		s.logger.Error("deactivate employee failed", zap.String("employee_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	s.invalidateOptionsCache(ctx)

	s.logger.Info("employee deactivated",
		zap.String("employee_id", id),
		zap.String("exit_reason", req.ExitReason),
	)

	return nil
}

func (s *service) invalidateOptionsCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, employeeOptionsKey).Err(); err != nil {
		s.logger.Warn("employee options cache invalidation failed", zap.Error(err))
	}
}

func mapToResponse(empl Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:             empl.ID.String(),
		UserID:         empl.UserID.String(),
		EmployeeNumber: empl.EmployeeNumber,
		FullName:       empl.FullName,
		Email:          empl.Email,
		Phone:          empl.Phone,
		Chain: organization.Chain{
			GroupID:       uuidToString(empl.GroupID),
			CompanyUnitID: uuidToString(empl.CompanyUnitID),
			DivisionID:    uuidToString(empl.DivisionID),
			DepartmentID:  uuidToString(empl.DepartmentID),
			SectionID:     uuidToString(empl.SectionID),
			SubSectionID:  uuidToString(empl.SubSectionID),
			FloorID:       uuidToString(empl.FloorID),
			LineID:        uuidToString(empl.LineID),
		},
		DesignationID:      uuidToString(empl.DesignationID),
		EmploymentType:     empl.EmploymentType,
		EmployeeCategory:   empl.EmployeeCategory,
		WorkShift:          empl.WorkShift,
		WeekendDay:         empl.WeekendDay,
		JoiningDate:        empl.JoiningDate.Format("2006-01-02"),
		ReportingManagerID: uuidToString(empl.ReportingManagerID),
		BankName:           empl.BankName,
		BankAccountNumber:  empl.BankAccountNumber,
		IsActive:           empl.IsActive,
		ExitReason:         empl.ExitReason,
	}
	if empl.ConfirmationDate != nil {
		resp.ConfirmationDate = empl.ConfirmationDate.Format("2006-01-02")
	}
	if empl.ExitDate != nil {
		resp.ExitDate = empl.ExitDate.Format("2006-01-02")
	}
	return resp
}

func mapToListResponse(employees []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		res[i] = mapToResponse(e)
	}
	return res
}

func uuidPtr(v string) *uuid.UUID {
	id, err := uuid.Parse(v)
	if err != nil {
		return nil
	}
	return &id
}

func uuidToString(v *uuid.UUID) string {
	if v == nil {
		return ""
	}
	return v.String()
}

func defaultString(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
