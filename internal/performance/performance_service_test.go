package performance_test

import (
	"context"
	"testing"

	"go-hrm/internal/performance"
	performanceerrors "go-hrm/internal/performance/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeReviewRepo struct {
	performance.Repository

	create func(ctx context.Context, r *performance.PerformanceReview) error
}

func (f *fakeReviewRepo) Create(ctx context.Context, r *performance.PerformanceReview) error {
	return f.create(ctx, r)
}

func TestOverall_MeanOfRatings(t *testing.T) {
	got := performance.Overall([]int{4, 5, 3, 4, 4, 5})
	assert.Equal(t, "4.17", got.StringFixed(2))
}

func TestOverall_AllEqual(t *testing.T) {
	got := performance.Overall([]int{3, 3, 3, 3, 3, 3})
	assert.Equal(t, "3.00", got.StringFixed(2))
}

func validReview() performance.CreateReviewRequest {
	return performance.CreateReviewRequest{
		EmployeeID:        uuid.NewString(),
		ReviewType:        "ANNUAL",
		ReviewPeriodStart: "2024-01-01",
		ReviewPeriodEnd:   "2024-12-31",
		QualityOfWork:     4,
		Productivity:      5,
		Communication:     3,
		Teamwork:          4,
		Initiative:        4,
		Punctuality:       5,
	}
}

func TestCreate_DerivesOverallRating(t *testing.T) {
	var created *performance.PerformanceReview
	repo := &fakeReviewRepo{
		create: func(ctx context.Context, r *performance.PerformanceReview) error {
			created = r
			return nil
		},
	}
	svc := performance.NewService(repo)

	resp, err := svc.Create(context.Background(), uuid.NewString(), validReview())

	assert.NoError(t, err)
	assert.Equal(t, "4.17", resp.OverallRating)
	assert.Equal(t, "4.17", created.OverallRating.StringFixed(2))
}

func TestCreate_PeriodEndBeforeStartRefused(t *testing.T) {
	svc := performance.NewService(&fakeReviewRepo{})

	req := validReview()
	req.ReviewPeriodStart = "2024-12-31"
	req.ReviewPeriodEnd = "2024-01-01"

	_, err := svc.Create(context.Background(), uuid.NewString(), req)

	assert.ErrorIs(t, err, performanceerrors.ErrInvalidPeriod)
}

func TestCreate_RatingOutOfRangeRefused(t *testing.T) {
	svc := performance.NewService(&fakeReviewRepo{})

	req := validReview()
	req.Teamwork = 6

	_, err := svc.Create(context.Background(), uuid.NewString(), req)

	assert.ErrorIs(t, err, performanceerrors.ErrInvalidRating)
}
