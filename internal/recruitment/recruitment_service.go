package recruitment

import (
	"context"
	"errors"
	"time"

	recruitmenterrors "go-hrm/internal/recruitment/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	PostingStatusOpen   = "OPEN"
	PostingStatusClosed = "CLOSED"
	PostingStatusOnHold = "ON_HOLD"

	CandidateStatusApplied   = "APPLIED"
	CandidateStatusScreening = "SCREENING"
	CandidateStatusInterview = "INTERVIEW"
	CandidateStatusSelected  = "SELECTED"
	CandidateStatusRejected  = "REJECTED"
	CandidateStatusWithdrawn = "WITHDRAWN"
)

// candidateTransitions is the hiring pipeline. Rejection and withdrawal are
// reachable from every non-terminal stage.
var candidateTransitions = map[string][]string{
	CandidateStatusApplied:   {CandidateStatusScreening, CandidateStatusRejected, CandidateStatusWithdrawn},
	CandidateStatusScreening: {CandidateStatusInterview, CandidateStatusRejected, CandidateStatusWithdrawn},
	CandidateStatusInterview: {CandidateStatusSelected, CandidateStatusRejected, CandidateStatusWithdrawn},
}

func isAllowedTransition(from, to string) bool {
	for _, allowed := range candidateTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

type Service interface {
	CreatePosting(ctx context.Context, postedBy string, req CreateJobPostingRequest) (JobPostingResponse, error)
	GetPostings(ctx context.Context, status string) ([]JobPostingResponse, error)
	GetPostingByID(ctx context.Context, id string) (JobPostingResponse, error)
	UpdatePosting(ctx context.Context, id string, req UpdateJobPostingRequest) (JobPostingResponse, error)

	Apply(ctx context.Context, postingID string, req ApplyCandidateRequest) (CandidateResponse, error)
	GetCandidate(ctx context.Context, id string) (CandidateResponse, error)
	PostingCandidates(ctx context.Context, postingID string, status string) ([]CandidateResponse, error)
	MoveCandidate(ctx context.Context, id string, req MoveCandidateRequest) (CandidateResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("recruitment.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("recruitment.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) CreatePosting(ctx context.Context, postedBy string, req CreateJobPostingRequest) (JobPostingResponse, error) {
	deadline, err := time.Parse("2006-01-02", req.Deadline)
	if err != nil {
		return JobPostingResponse{}, recruitmenterrors.ErrInvalidDate
	}

	minSalary, err := parseAmount(req.SalaryRangeMin)
	if err != nil {
		return JobPostingResponse{}, err
	}
	maxSalary, err := parseAmount(req.SalaryRangeMax)
	if err != nil {
		return JobPostingResponse{}, err
	}
	if minSalary.GreaterThan(maxSalary) {
		return JobPostingResponse{}, recruitmenterrors.ErrInvalidSalaryRange
	}

	vacancies := req.Vacancies
	if vacancies == 0 {
		vacancies = 1
	}

	p := &JobPosting{
		ID:             uuid.New(),
		Title:          req.Title,
		JobCode:        req.JobCode,
		Vacancies:      vacancies,
		Description:    req.Description,
		Requirements:   req.Requirements,
		SalaryRangeMin: minSalary,
		SalaryRangeMax: maxSalary,
		EmploymentType: req.EmploymentType,
		Location:       req.Location,
		Deadline:       deadline,
		Status:         PostingStatusOpen,
	}
	if req.DepartmentID != "" {
		deptID, err := uuid.Parse(req.DepartmentID)
		if err == nil {
			p.DepartmentID = &deptID
		}
	}
	if postedBy != "" {
		posterID, err := uuid.Parse(postedBy)
		if err == nil {
			p.PostedBy = &posterID
		}
	}

	if err := s.repo.CreatePosting(ctx, p); err != nil {
		if isUniqueViolation(err) {
			return JobPostingResponse{}, recruitmenterrors.ErrDuplicateJobCode
		}
		return JobPostingResponse{}, err
	}

	s.logger.Info("job posting created",
		zap.String("job_code", p.JobCode),
		zap.Int("vacancies", p.Vacancies),
	)
	return mapPosting(*p), nil
}

func (s *service) GetPostings(ctx context.Context, status string) ([]JobPostingResponse, error) {
	postings, err := s.repo.FindPostings(ctx, status)
	if err != nil {
		return nil, err
	}
	res := make([]JobPostingResponse, len(postings))
	for i, p := range postings {
		res[i] = mapPosting(p)
	}
	return res, nil
}

func (s *service) GetPostingByID(ctx context.Context, id string) (JobPostingResponse, error) {
	p, err := s.repo.FindPostingByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return JobPostingResponse{}, recruitmenterrors.ErrPostingNotFound
		}
		return JobPostingResponse{}, err
	}
	return mapPosting(*p), nil
}

func (s *service) UpdatePosting(ctx context.Context, id string, req UpdateJobPostingRequest) (JobPostingResponse, error) {
	p, err := s.repo.FindPostingByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return JobPostingResponse{}, recruitmenterrors.ErrPostingNotFound
		}
		return JobPostingResponse{}, err
	}

	if req.Title != "" {
		p.Title = req.Title
	}
	if req.Vacancies > 0 {
		p.Vacancies = req.Vacancies
	}
	if req.Description != "" {
		p.Description = req.Description
	}
	if req.Requirements != "" {
		p.Requirements = req.Requirements
	}
	if req.SalaryRangeMin != "" {
		minSalary, err := parseAmount(req.SalaryRangeMin)
		if err != nil {
			return JobPostingResponse{}, err
		}
		p.SalaryRangeMin = minSalary
	}
	if req.SalaryRangeMax != "" {
		maxSalary, err := parseAmount(req.SalaryRangeMax)
		if err != nil {
			return JobPostingResponse{}, err
		}
		p.SalaryRangeMax = maxSalary
	}
	if p.SalaryRangeMin.GreaterThan(p.SalaryRangeMax) {
		return JobPostingResponse{}, recruitmenterrors.ErrInvalidSalaryRange
	}
	if req.Location != "" {
		p.Location = req.Location
	}
	if req.Deadline != "" {
		deadline, err := time.Parse("2006-01-02", req.Deadline)
		if err != nil {
			return JobPostingResponse{}, recruitmenterrors.ErrInvalidDate
		}
		p.Deadline = deadline
	}
	if req.Status != "" {
		p.Status = req.Status
	}

	if err := s.repo.UpdatePosting(ctx, p); err != nil {
		return JobPostingResponse{}, err
	}
	return mapPosting(*p), nil
}

func (s *service) Apply(ctx context.Context, postingID string, req ApplyCandidateRequest) (CandidateResponse, error) {
	p, err := s.repo.FindPostingByID(ctx, postingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CandidateResponse{}, recruitmenterrors.ErrPostingNotFound
		}
		return CandidateResponse{}, err
	}
	if p.Status != PostingStatusOpen {
		return CandidateResponse{}, recruitmenterrors.ErrPostingNotOpen
	}

	c := &Candidate{
		ID:               uuid.New(),
		JobPostingID:     p.ID,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		Phone:            req.Phone,
		CoverLetter:      req.CoverLetter,
		NoticePeriodDays: req.NoticePeriodDays,
		Status:           CandidateStatusApplied,
		AppliedDate:      time.Now().UTC(),
	}
	if req.CurrentCTC != "" {
		ctc, err := parseAmount(req.CurrentCTC)
		if err != nil {
			return CandidateResponse{}, err
		}
		c.CurrentCTC = &ctc
	}
	if req.ExpectedCTC != "" {
		ctc, err := parseAmount(req.ExpectedCTC)
		if err != nil {
			return CandidateResponse{}, err
		}
		c.ExpectedCTC = &ctc
	}

	if err := s.repo.CreateCandidate(ctx, c); err != nil {
		return CandidateResponse{}, err
	}

	s.logger.Info("candidate applied",
		zap.String("job_code", p.JobCode),
		zap.String("candidate_id", c.ID.String()),
	)
	resp := mapCandidate(*c)
	resp.JobTitle = p.Title
	return resp, nil
}

func (s *service) GetCandidate(ctx context.Context, id string) (CandidateResponse, error) {
	c, err := s.repo.FindCandidateByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CandidateResponse{}, recruitmenterrors.ErrCandidateNotFound
		}
		return CandidateResponse{}, err
	}
	return mapCandidate(*c), nil
}

func (s *service) PostingCandidates(ctx context.Context, postingID string, status string) ([]CandidateResponse, error) {
	candidates, err := s.repo.FindCandidatesByPosting(ctx, postingID, status)
	if err != nil {
		return nil, err
	}
	res := make([]CandidateResponse, len(candidates))
	for i, c := range candidates {
		res[i] = mapCandidate(c)
	}
	return res, nil
}

func (s *service) MoveCandidate(ctx context.Context, id string, req MoveCandidateRequest) (CandidateResponse, error) {
	c, err := s.repo.FindCandidateByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CandidateResponse{}, recruitmenterrors.ErrCandidateNotFound
		}
		return CandidateResponse{}, err
	}

	if !isAllowedTransition(c.Status, req.Status) {
		return CandidateResponse{}, recruitmenterrors.ErrInvalidStatusTransition
	}

	c.Status = req.Status
	if err := s.repo.UpdateCandidate(ctx, c); err != nil {
		return CandidateResponse{}, err
	}

	s.logger.Info("candidate moved",
		zap.String("candidate_id", c.ID.String()),
		zap.String("status", c.Status),
	)
	return mapCandidate(*c), nil
}

func parseAmount(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return decimal.Decimal{}, recruitmenterrors.ErrInvalidAmount
	}
	return d, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func mapPosting(p JobPosting) JobPostingResponse {
	resp := JobPostingResponse{
		ID:             p.ID.String(),
		Title:          p.Title,
		JobCode:        p.JobCode,
		Vacancies:      p.Vacancies,
		Description:    p.Description,
		Requirements:   p.Requirements,
		SalaryRangeMin: p.SalaryRangeMin.StringFixed(2),
		SalaryRangeMax: p.SalaryRangeMax.StringFixed(2),
		EmploymentType: p.EmploymentType,
		Location:       p.Location,
		Deadline:       p.Deadline.Format("2006-01-02"),
		Status:         p.Status,
	}
	if p.DepartmentID != nil {
		v := p.DepartmentID.String()
		resp.DepartmentID = &v
	}
	if p.PostedBy != nil {
		v := p.PostedBy.String()
		resp.PostedBy = &v
	}
	return resp
}

func mapCandidate(c Candidate) CandidateResponse {
	resp := CandidateResponse{
		ID:               c.ID.String(),
		JobPostingID:     c.JobPostingID.String(),
		FirstName:        c.FirstName,
		LastName:         c.LastName,
		Email:            c.Email,
		Phone:            c.Phone,
		CoverLetter:      c.CoverLetter,
		NoticePeriodDays: c.NoticePeriodDays,
		Status:           c.Status,
		AppliedDate:      c.AppliedDate.Format("2006-01-02"),
	}
	if c.JobPosting != nil {
		resp.JobTitle = c.JobPosting.Title
	}
	if c.CurrentCTC != nil {
		v := c.CurrentCTC.StringFixed(2)
		resp.CurrentCTC = &v
	}
	if c.ExpectedCTC != nil {
		v := c.ExpectedCTC.StringFixed(2)
		resp.ExpectedCTC = &v
	}
	return resp
}
