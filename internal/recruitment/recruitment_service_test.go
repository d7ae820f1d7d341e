package recruitment_test

import (
	"context"
	"testing"

	"go-hrm/internal/recruitment"
	recruitmenterrors "go-hrm/internal/recruitment/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecruitmentRepo struct {
	recruitment.Repository

	createPosting     func(ctx context.Context, p *recruitment.JobPosting) error
	findPostingByID   func(ctx context.Context, id string) (*recruitment.JobPosting, error)
	createCandidate   func(ctx context.Context, c *recruitment.Candidate) error
	findCandidateByID func(ctx context.Context, id string) (*recruitment.Candidate, error)
	updateCandidate   func(ctx context.Context, c *recruitment.Candidate) error
}

func (f *fakeRecruitmentRepo) CreatePosting(ctx context.Context, p *recruitment.JobPosting) error {
	return f.createPosting(ctx, p)
}

func (f *fakeRecruitmentRepo) FindPostingByID(ctx context.Context, id string) (*recruitment.JobPosting, error) {
	return f.findPostingByID(ctx, id)
}

func (f *fakeRecruitmentRepo) CreateCandidate(ctx context.Context, c *recruitment.Candidate) error {
	return f.createCandidate(ctx, c)
}

func (f *fakeRecruitmentRepo) FindCandidateByID(ctx context.Context, id string) (*recruitment.Candidate, error) {
	return f.findCandidateByID(ctx, id)
}

func (f *fakeRecruitmentRepo) UpdateCandidate(ctx context.Context, c *recruitment.Candidate) error {
	return f.updateCandidate(ctx, c)
}

func validPosting() recruitment.CreateJobPostingRequest {
	return recruitment.CreateJobPostingRequest{
		Title:          "Line Supervisor",
		JobCode:        "JP-2025-014",
		Vacancies:      2,
		Description:    "Supervise sewing line operations across two floors",
		SalaryRangeMin: "30000",
		SalaryRangeMax: "45000",
		EmploymentType: "PERMANENT",
		Deadline:       "2025-10-31",
	}
}

func TestCreatePosting_OpensWithDefaults(t *testing.T) {
	repo := &fakeRecruitmentRepo{
		createPosting: func(ctx context.Context, p *recruitment.JobPosting) error { return nil },
	}
	svc := recruitment.NewService(repo)

	req := validPosting()
	req.Vacancies = 0
	resp, err := svc.CreatePosting(context.Background(), uuid.NewString(), req)

	require.NoError(t, err)
	assert.Equal(t, recruitment.PostingStatusOpen, resp.Status)
	assert.Equal(t, 1, resp.Vacancies)
	assert.Equal(t, "30000.00", resp.SalaryRangeMin)
}

func TestCreatePosting_InvertedSalaryRangeRefused(t *testing.T) {
	svc := recruitment.NewService(&fakeRecruitmentRepo{})

	req := validPosting()
	req.SalaryRangeMin = "50000"
	_, err := svc.CreatePosting(context.Background(), "", req)

	assert.ErrorIs(t, err, recruitmenterrors.ErrInvalidSalaryRange)
}

func TestApply_ClosedPostingRefused(t *testing.T) {
	repo := &fakeRecruitmentRepo{
		findPostingByID: func(ctx context.Context, id string) (*recruitment.JobPosting, error) {
			return &recruitment.JobPosting{ID: uuid.New(), Status: recruitment.PostingStatusClosed}, nil
		},
	}
	svc := recruitment.NewService(repo)

	_, err := svc.Apply(context.Background(), uuid.NewString(), recruitment.ApplyCandidateRequest{
		FirstName: "Ayesha",
		LastName:  "Rahman",
		Email:     "ayesha@example.com",
		Phone:     "01711111111",
	})

	assert.ErrorIs(t, err, recruitmenterrors.ErrPostingNotOpen)
}

func TestMoveCandidate_FollowsPipeline(t *testing.T) {
	candidate := &recruitment.Candidate{ID: uuid.New(), Status: recruitment.CandidateStatusScreening}
	repo := &fakeRecruitmentRepo{
		findCandidateByID: func(ctx context.Context, id string) (*recruitment.Candidate, error) {
			return candidate, nil
		},
		updateCandidate: func(ctx context.Context, c *recruitment.Candidate) error { return nil },
	}
	svc := recruitment.NewService(repo)

	resp, err := svc.MoveCandidate(context.Background(), candidate.ID.String(), recruitment.MoveCandidateRequest{
		Status: recruitment.CandidateStatusInterview,
	})

	require.NoError(t, err)
	assert.Equal(t, recruitment.CandidateStatusInterview, resp.Status)
}

func TestMoveCandidate_SkippingStageRefused(t *testing.T) {
	repo := &fakeRecruitmentRepo{
		findCandidateByID: func(ctx context.Context, id string) (*recruitment.Candidate, error) {
			return &recruitment.Candidate{ID: uuid.New(), Status: recruitment.CandidateStatusApplied}, nil
		},
	}
	svc := recruitment.NewService(repo)

	_, err := svc.MoveCandidate(context.Background(), uuid.NewString(), recruitment.MoveCandidateRequest{
		Status: recruitment.CandidateStatusSelected,
	})

	assert.ErrorIs(t, err, recruitmenterrors.ErrInvalidStatusTransition)
}

func TestMoveCandidate_TerminalStageFrozen(t *testing.T) {
	repo := &fakeRecruitmentRepo{
		findCandidateByID: func(ctx context.Context, id string) (*recruitment.Candidate, error) {
			return &recruitment.Candidate{ID: uuid.New(), Status: recruitment.CandidateStatusRejected}, nil
		},
	}
	svc := recruitment.NewService(repo)

	_, err := svc.MoveCandidate(context.Background(), uuid.NewString(), recruitment.MoveCandidateRequest{
		Status: recruitment.CandidateStatusScreening,
	})

	assert.ErrorIs(t, err, recruitmenterrors.ErrInvalidStatusTransition)
}
