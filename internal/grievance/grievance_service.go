package grievance

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go-hrm/internal/authz"
	grievanceerrors "go-hrm/internal/grievance/errors"
	"go-hrm/internal/shared/counter"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusSubmitted     = "SUBMITTED"
	StatusAcknowledged  = "ACKNOWLEDGED"
	StatusUnderReview   = "UNDER_REVIEW"
	StatusInvestigating = "INVESTIGATING"
	StatusResolved      = "RESOLVED"
	StatusClosed        = "CLOSED"
	StatusEscalated     = "ESCALATED"
)

var statusTransitions = map[string][]string{
	StatusSubmitted:     {StatusAcknowledged, StatusUnderReview},
	StatusAcknowledged:  {StatusUnderReview, StatusInvestigating, StatusEscalated},
	StatusUnderReview:   {StatusInvestigating, StatusResolved, StatusEscalated},
	StatusInvestigating: {StatusResolved, StatusEscalated},
	StatusEscalated:     {StatusUnderReview, StatusResolved},
	StatusResolved:      {StatusClosed},
}

func isAllowedTransition(from, to string) bool {
	for _, t := range statusTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

type Service interface {
	File(ctx context.Context, employeeID string, req FileGrievanceRequest) (GrievanceResponse, error)
	MyGrievances(ctx context.Context, employeeID string) ([]GrievanceResponse, error)
	GetByID(ctx context.Context, id string) (GrievanceResponse, error)
	GetAll(ctx context.Context, scope authz.Scope, status string) ([]GrievanceResponse, error)
	Assign(ctx context.Context, id string, req AssignGrievanceRequest) (GrievanceResponse, error)
	StartInvestigation(ctx context.Context, id string) (GrievanceResponse, error)
	Resolve(ctx context.Context, id string, req ResolveGrievanceRequest) (GrievanceResponse, error)
	Close(ctx context.Context, id string) (GrievanceResponse, error)
}

type service struct {
	repo    Repository
	counter counter.Repository
	logger  *zap.Logger
}

func NewService(repo Repository, counterRepo counter.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("grievance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("grievance.service")
	}
	return &service{repo: repo, counter: counterRepo, logger: l}
}

func (s *service) File(ctx context.Context, employeeID string, req FileGrievanceRequest) (GrievanceResponse, error) {
	var incidentDate *time.Time
	if req.IncidentDate != "" {
		d, err := time.Parse("2006-01-02", req.IncidentDate)
		if err != nil {
			return GrievanceResponse{}, grievanceerrors.ErrInvalidDate
		}
		incidentDate = &d
	}

	year := time.Now().UTC().Year()
	seq, err := s.counter.GetNextValue(ctx, strconv.Itoa(year), "grievance")
	if err != nil {
		s.logger.Error("grievance sequence failed", zap.Error(err))
		return GrievanceResponse{}, err
	}

	priority := req.Priority
	if priority == "" {
		priority = "MEDIUM"
	}

	g := &Grievance{
		ID:               uuid.New(),
		GrievanceID:      fmt.Sprintf("GRV%d%04d", year, seq),
		EmployeeID:       uuid.MustParse(employeeID),
		Subject:          req.Subject,
		Description:      req.Description,
		AgainstPerson:    req.AgainstPerson,
		IncidentDate:     incidentDate,
		IncidentLocation: req.IncidentLocation,
		Priority:         priority,
		Status:           StatusSubmitted,
		IsAnonymous:      req.IsAnonymous,
	}
	if err := s.repo.Create(ctx, g); err != nil {
		s.logger.Error("grievance persist failed", zap.String("employee_id", employeeID), zap.Error(err))
		return GrievanceResponse{}, err
	}

	s.logger.Info("grievance filed",
		zap.String("grievance_id", g.GrievanceID),
		zap.String("priority", priority),
	)
	return mapGrievance(*g), nil
}

func (s *service) MyGrievances(ctx context.Context, employeeID string) ([]GrievanceResponse, error) {
	grievances, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	res := make([]GrievanceResponse, len(grievances))
	for i, g := range grievances {
		res[i] = mapGrievance(g)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (GrievanceResponse, error) {
	g, err := s.find(ctx, id)
	if err != nil {
		return GrievanceResponse{}, err
	}
	return mapGrievance(*g), nil
}

func (s *service) GetAll(ctx context.Context, scope authz.Scope, status string) ([]GrievanceResponse, error) {
	grievances, err := s.repo.FindAll(ctx, scope, status)
	if err != nil {
		return nil, err
	}
	res := make([]GrievanceResponse, len(grievances))
	for i, g := range grievances {
		res[i] = mapGrievance(g)
	}
	return res, nil
}

// Assign acknowledges a freshly submitted grievance and hands it to the
// assignee for review.
func (s *service) Assign(ctx context.Context, id string, req AssignGrievanceRequest) (GrievanceResponse, error) {
	g, err := s.find(ctx, id)
	if err != nil {
		return GrievanceResponse{}, err
	}

	target := StatusUnderReview
	if g.Status == StatusSubmitted {
		now := time.Now().UTC()
		g.AcknowledgedAt = &now
	}
	if !isAllowedTransition(g.Status, target) && g.Status != StatusUnderReview {
		return GrievanceResponse{}, grievanceerrors.ErrInvalidStatusTransition
	}

	assigneeUUID := uuid.MustParse(req.AssigneeID)
	now := time.Now().UTC()
	g.AssignedTo = &assigneeUUID
	g.AssignedAt = &now
	g.Status = target

	if err := s.repo.Update(ctx, g); err != nil {
		return GrievanceResponse{}, err
	}
	return mapGrievance(*g), nil
}

func (s *service) StartInvestigation(ctx context.Context, id string) (GrievanceResponse, error) {
	return s.transition(ctx, id, StatusInvestigating, func(g *Grievance) {})
}

func (s *service) Resolve(ctx context.Context, id string, req ResolveGrievanceRequest) (GrievanceResponse, error) {
	if req.Resolution == "" {
		return GrievanceResponse{}, grievanceerrors.ErrResolutionRequired
	}
	return s.transition(ctx, id, StatusResolved, func(g *Grievance) {
		now := time.Now().UTC()
		g.InvestigationSummary = req.InvestigationSummary
		g.Resolution = req.Resolution
		g.ActionTaken = req.ActionTaken
		g.ResolvedAt = &now
	})
}

func (s *service) Close(ctx context.Context, id string) (GrievanceResponse, error) {
	return s.transition(ctx, id, StatusClosed, func(g *Grievance) {
		now := time.Now().UTC()
		g.ClosedAt = &now
	})
}

func (s *service) transition(ctx context.Context, id, target string, mutate func(*Grievance)) (GrievanceResponse, error) {
	g, err := s.find(ctx, id)
	if err != nil {
		return GrievanceResponse{}, err
	}
	if !isAllowedTransition(g.Status, target) {
		return GrievanceResponse{}, grievanceerrors.ErrInvalidStatusTransition
	}

	g.Status = target
	mutate(g)

	if err := s.repo.Update(ctx, g); err != nil {
		return GrievanceResponse{}, err
	}

	s.logger.Info("grievance status changed",
		zap.String("grievance_id", g.GrievanceID),
		zap.String("status", target),
	)
	return mapGrievance(*g), nil
}

func (s *service) find(ctx context.Context, id string) (*Grievance, error) {
	g, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, grievanceerrors.ErrGrievanceNotFound
		}
		return nil, err
	}
	return g, nil
}

func mapGrievance(g Grievance) GrievanceResponse {
	resp := GrievanceResponse{
		ID:               g.ID.String(),
		GrievanceID:      g.GrievanceID,
		Subject:          g.Subject,
		Description:      g.Description,
		AgainstPerson:    g.AgainstPerson,
		IncidentLocation: g.IncidentLocation,
		Priority:         g.Priority,
		Status:           g.Status,
		IsAnonymous:      g.IsAnonymous,
		Resolution:       g.Resolution,
		ActionTaken:      g.ActionTaken,
		SubmittedAt:      g.CreatedAt.Format(time.RFC3339),
	}
	// Anonymous grievances hide the complainant in responses.
	if !g.IsAnonymous {
		resp.EmployeeID = g.EmployeeID.String()
		if g.Employee != nil {
			resp.EmployeeNumber = g.Employee.EmployeeNumber
			resp.EmployeeName = g.Employee.FullName
		}
	}
	if g.IncidentDate != nil {
		v := g.IncidentDate.Format("2006-01-02")
		resp.IncidentDate = &v
	}
	if g.AssignedTo != nil {
		v := g.AssignedTo.String()
		resp.AssignedTo = &v
	}
	if g.ResolvedAt != nil {
		v := g.ResolvedAt.Format(time.RFC3339)
		resp.ResolvedAt = &v
	}
	if g.ClosedAt != nil {
		v := g.ClosedAt.Format(time.RFC3339)
		resp.ClosedAt = &v
	}
	return resp
}
