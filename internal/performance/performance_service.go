package performance

import (
	"context"
	"errors"
	"time"

	"go-hrm/internal/authz"
	performanceerrors "go-hrm/internal/performance/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, reviewerID string, req CreateReviewRequest) (ReviewResponse, error)
	GetByID(ctx context.Context, id string) (ReviewResponse, error)
	MyReviews(ctx context.Context, employeeID string) ([]ReviewResponse, error)
	EmployeeReviews(ctx context.Context, employeeID string) ([]ReviewResponse, error)
	GetAll(ctx context.Context, scope authz.Scope, reviewType string) ([]ReviewResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("performance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("performance.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, reviewerID string, req CreateReviewRequest) (ReviewResponse, error) {
	start, err := time.Parse("2006-01-02", req.ReviewPeriodStart)
	if err != nil {
		return ReviewResponse{}, performanceerrors.ErrInvalidDate
	}
	end, err := time.Parse("2006-01-02", req.ReviewPeriodEnd)
	if err != nil {
		return ReviewResponse{}, performanceerrors.ErrInvalidDate
	}
	if end.Before(start) {
		return ReviewResponse{}, performanceerrors.ErrInvalidPeriod
	}

	ratings := []int{
		req.QualityOfWork, req.Productivity, req.Communication,
		req.Teamwork, req.Initiative, req.Punctuality,
	}
	for _, r := range ratings {
		if r < 1 || r > 5 {
			return ReviewResponse{}, performanceerrors.ErrInvalidRating
		}
	}

	review := &PerformanceReview{
		ID:                 uuid.New(),
		EmployeeID:         uuid.MustParse(req.EmployeeID),
		ReviewerID:         uuid.MustParse(reviewerID),
		ReviewType:         req.ReviewType,
		ReviewPeriodStart:  start,
		ReviewPeriodEnd:    end,
		ReviewDate:         time.Now().UTC(),
		QualityOfWork:      req.QualityOfWork,
		Productivity:       req.Productivity,
		Communication:      req.Communication,
		Teamwork:           req.Teamwork,
		Initiative:         req.Initiative,
		Punctuality:        req.Punctuality,
		OverallRating:      Overall(ratings),
		Strengths:          req.Strengths,
		AreasOfImprovement: req.AreasOfImprovement,
		GoalsForNextPeriod: req.GoalsForNextPeriod,
		Comments:           req.Comments,
	}
	if err := s.repo.Create(ctx, review); err != nil {
		s.logger.Error("review persist failed", zap.String("employee_id", req.EmployeeID), zap.Error(err))
		return ReviewResponse{}, err
	}

	s.logger.Info("performance review recorded",
		zap.String("employee_id", req.EmployeeID),
		zap.String("review_type", req.ReviewType),
		zap.String("overall", review.OverallRating.StringFixed(2)),
	)
	return mapReview(*review), nil
}

func (s *service) GetByID(ctx context.Context, id string) (ReviewResponse, error) {
	review, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ReviewResponse{}, performanceerrors.ErrReviewNotFound
		}
		return ReviewResponse{}, err
	}
	return mapReview(*review), nil
}

func (s *service) MyReviews(ctx context.Context, employeeID string) ([]ReviewResponse, error) {
	return s.EmployeeReviews(ctx, employeeID)
}

func (s *service) EmployeeReviews(ctx context.Context, employeeID string) ([]ReviewResponse, error) {
	reviews, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	res := make([]ReviewResponse, len(reviews))
	for i, r := range reviews {
		res[i] = mapReview(r)
	}
	return res, nil
}

func (s *service) GetAll(ctx context.Context, scope authz.Scope, reviewType string) ([]ReviewResponse, error) {
	reviews, err := s.repo.FindAll(ctx, scope, reviewType)
	if err != nil {
		return nil, err
	}
	res := make([]ReviewResponse, len(reviews))
	for i, r := range reviews {
		res[i] = mapReview(r)
	}
	return res, nil
}

// Overall averages the individual ratings and rounds to two places.
func Overall(ratings []int) decimal.Decimal {
	if len(ratings) == 0 {
		return decimal.Zero
	}
	total := 0
	for _, r := range ratings {
		total += r
	}
	return decimal.NewFromInt(int64(total)).
		Div(decimal.NewFromInt(int64(len(ratings)))).
		Round(2)
}

func mapReview(r PerformanceReview) ReviewResponse {
	resp := ReviewResponse{
		ID:                 r.ID.String(),
		EmployeeID:         r.EmployeeID.String(),
		ReviewerID:         r.ReviewerID.String(),
		ReviewType:         r.ReviewType,
		ReviewPeriodStart:  r.ReviewPeriodStart.Format("2006-01-02"),
		ReviewPeriodEnd:    r.ReviewPeriodEnd.Format("2006-01-02"),
		ReviewDate:         r.ReviewDate.Format("2006-01-02"),
		QualityOfWork:      r.QualityOfWork,
		Productivity:       r.Productivity,
		Communication:      r.Communication,
		Teamwork:           r.Teamwork,
		Initiative:         r.Initiative,
		Punctuality:        r.Punctuality,
		OverallRating:      r.OverallRating.StringFixed(2),
		Strengths:          r.Strengths,
		AreasOfImprovement: r.AreasOfImprovement,
		GoalsForNextPeriod: r.GoalsForNextPeriod,
		Comments:           r.Comments,
	}
	if r.Employee != nil {
		resp.EmployeeNumber = r.Employee.EmployeeNumber
		resp.EmployeeName = r.Employee.FullName
	}
	return resp
}
