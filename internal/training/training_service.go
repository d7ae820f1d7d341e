package training

import (
	"context"
	"errors"
	"time"

	trainingerrors "go-hrm/internal/training/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusEnrolled  = "ENROLLED"
	StatusCompleted = "COMPLETED"
	StatusDropped   = "DROPPED"
	StatusFailed    = "FAILED"
)

type Service interface {
	CreateProgram(ctx context.Context, req CreateProgramRequest) (ProgramResponse, error)
	GetPrograms(ctx context.Context, activeOnly bool) ([]ProgramResponse, error)
	UpdateProgram(ctx context.Context, id string, req UpdateProgramRequest) (ProgramResponse, error)

	Enroll(ctx context.Context, programID string, req EnrollRequest) (ParticipantResponse, error)
	MyTrainings(ctx context.Context, employeeID string) ([]ParticipantResponse, error)
	ProgramParticipants(ctx context.Context, programID string) ([]ParticipantResponse, error)
	CompleteParticipant(ctx context.Context, participantID string, req CompleteParticipantRequest) (ParticipantResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("training.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("training.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) CreateProgram(ctx context.Context, req CreateProgramRequest) (ProgramResponse, error) {
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return ProgramResponse{}, trainingerrors.ErrInvalidDate
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return ProgramResponse{}, trainingerrors.ErrInvalidDate
	}

	budget := decimal.Zero
	if req.Budget != "" {
		budget, err = decimal.NewFromString(req.Budget)
		if err != nil || budget.IsNegative() {
			return ProgramResponse{}, trainingerrors.ErrInvalidAmount
		}
	}

	maxParticipants := req.MaxParticipants
	if maxParticipants == 0 {
		maxParticipants = 20
	}

	p := &TrainingProgram{
		ID:              uuid.New(),
		Name:            req.Name,
		Code:            req.Code,
		Description:     req.Description,
		TrainerName:     req.TrainerName,
		DurationHours:   req.DurationHours,
		StartDate:       start,
		EndDate:         end,
		Location:        req.Location,
		MaxParticipants: maxParticipants,
		Budget:          budget,
		IsActive:        true,
	}
	if err := s.repo.CreateProgram(ctx, p); err != nil {
		if isUniqueViolation(err) {
			return ProgramResponse{}, trainingerrors.ErrDuplicateProgramCode
		}
		s.logger.Error("program persist failed", zap.String("code", req.Code), zap.Error(err))
		return ProgramResponse{}, err
	}
	return mapProgram(*p), nil
}

func (s *service) GetPrograms(ctx context.Context, activeOnly bool) ([]ProgramResponse, error) {
	programs, err := s.repo.FindPrograms(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	res := make([]ProgramResponse, len(programs))
	for i, p := range programs {
		res[i] = mapProgram(p)
	}
	return res, nil
}

func (s *service) UpdateProgram(ctx context.Context, id string, req UpdateProgramRequest) (ProgramResponse, error) {
	p, err := s.repo.FindProgramByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProgramResponse{}, trainingerrors.ErrProgramNotFound
		}
		return ProgramResponse{}, err
	}

	if req.Name != "" {
		p.Name = req.Name
	}
	if req.Description != "" {
		p.Description = req.Description
	}
	if req.TrainerName != "" {
		p.TrainerName = req.TrainerName
	}
	if req.Location != "" {
		p.Location = req.Location
	}
	if req.MaxParticipants > 0 {
		p.MaxParticipants = req.MaxParticipants
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := s.repo.UpdateProgram(ctx, p); err != nil {
		return ProgramResponse{}, err
	}
	return mapProgram(*p), nil
}

// Enroll admits an employee into a program. The unique (program, employee)
// index backstops the duplicate check under concurrent enrollment.
func (s *service) Enroll(ctx context.Context, programID string, req EnrollRequest) (ParticipantResponse, error) {
	p, err := s.repo.FindProgramByID(ctx, programID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ParticipantResponse{}, trainingerrors.ErrProgramNotFound
		}
		return ParticipantResponse{}, err
	}
	if !p.IsActive {
		return ParticipantResponse{}, trainingerrors.ErrProgramInactive
	}

	count, err := s.repo.CountParticipants(ctx, programID)
	if err != nil {
		return ParticipantResponse{}, err
	}
	if count >= int64(p.MaxParticipants) {
		return ParticipantResponse{}, trainingerrors.ErrProgramFull
	}

	tp := &TrainingParticipant{
		ID:             uuid.New(),
		ProgramID:      p.ID,
		EmployeeID:     uuid.MustParse(req.EmployeeID),
		EnrollmentDate: time.Now().UTC(),
		Status:         StatusEnrolled,
	}
	if err := s.repo.CreateParticipant(ctx, tp); err != nil {
		if isUniqueViolation(err) {
			return ParticipantResponse{}, trainingerrors.ErrAlreadyEnrolled
		}
		s.logger.Error("enrollment persist failed",
			zap.String("program_id", programID),
			zap.String("employee_id", req.EmployeeID),
			zap.Error(err),
		)
		return ParticipantResponse{}, err
	}

	s.logger.Info("training enrollment recorded",
		zap.String("program_code", p.Code),
		zap.String("employee_id", req.EmployeeID),
	)
	return mapParticipant(*tp), nil
}

func (s *service) MyTrainings(ctx context.Context, employeeID string) ([]ParticipantResponse, error) {
	participants, err := s.repo.FindParticipantsByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	res := make([]ParticipantResponse, len(participants))
	for i, tp := range participants {
		res[i] = mapParticipant(tp)
	}
	return res, nil
}

func (s *service) ProgramParticipants(ctx context.Context, programID string) ([]ParticipantResponse, error) {
	participants, err := s.repo.FindParticipantsByProgram(ctx, programID)
	if err != nil {
		return nil, err
	}
	res := make([]ParticipantResponse, len(participants))
	for i, tp := range participants {
		res[i] = mapParticipant(tp)
	}
	return res, nil
}

func (s *service) CompleteParticipant(ctx context.Context, participantID string, req CompleteParticipantRequest) (ParticipantResponse, error) {
	tp, err := s.repo.FindParticipantByID(ctx, participantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ParticipantResponse{}, trainingerrors.ErrParticipantNotFound
		}
		return ParticipantResponse{}, err
	}
	if tp.Status != StatusEnrolled {
		return ParticipantResponse{}, trainingerrors.ErrInvalidStatusTransition
	}

	if req.Score != "" {
		score, err := decimal.NewFromString(req.Score)
		if err != nil || score.IsNegative() {
			return ParticipantResponse{}, trainingerrors.ErrInvalidAmount
		}
		tp.Score = &score
	}

	now := time.Now().UTC()
	tp.Status = req.Status
	tp.CompletionDate = &now
	tp.Feedback = req.Feedback

	if err := s.repo.UpdateParticipant(ctx, tp); err != nil {
		return ParticipantResponse{}, err
	}
	return mapParticipant(*tp), nil
}

func mapProgram(p TrainingProgram) ProgramResponse {
	return ProgramResponse{
		ID:              p.ID.String(),
		Name:            p.Name,
		Code:            p.Code,
		Description:     p.Description,
		TrainerName:     p.TrainerName,
		DurationHours:   p.DurationHours,
		StartDate:       p.StartDate.Format("2006-01-02"),
		EndDate:         p.EndDate.Format("2006-01-02"),
		Location:        p.Location,
		MaxParticipants: p.MaxParticipants,
		Budget:          p.Budget.StringFixed(2),
		IsActive:        p.IsActive,
	}
}

func mapParticipant(tp TrainingParticipant) ParticipantResponse {
	resp := ParticipantResponse{
		ID:             tp.ID.String(),
		ProgramID:      tp.ProgramID.String(),
		EmployeeID:     tp.EmployeeID.String(),
		EnrollmentDate: tp.EnrollmentDate.Format("2006-01-02"),
		Status:         tp.Status,
		Feedback:       tp.Feedback,
	}
	if tp.Program != nil {
		resp.ProgramName = tp.Program.Name
	}
	if tp.Employee != nil {
		resp.EmployeeNumber = tp.Employee.EmployeeNumber
		resp.EmployeeName = tp.Employee.FullName
	}
	if tp.CompletionDate != nil {
		v := tp.CompletionDate.Format("2006-01-02")
		resp.CompletionDate = &v
	}
	if tp.Score != nil {
		v := tp.Score.StringFixed(2)
		resp.Score = &v
	}
	return resp
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
