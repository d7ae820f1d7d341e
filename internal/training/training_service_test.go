package training_test

import (
	"context"
	"testing"

	"go-hrm/internal/training"
	trainingerrors "go-hrm/internal/training/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

type fakeTrainingRepo struct {
	training.Repository

	findProgramByID     func(ctx context.Context, id string) (*training.TrainingProgram, error)
	countParticipants   func(ctx context.Context, programID string) (int64, error)
	createParticipant   func(ctx context.Context, tp *training.TrainingParticipant) error
	findParticipantByID func(ctx context.Context, id string) (*training.TrainingParticipant, error)
	updateParticipant   func(ctx context.Context, tp *training.TrainingParticipant) error
}

func (f *fakeTrainingRepo) FindProgramByID(ctx context.Context, id string) (*training.TrainingProgram, error) {
	return f.findProgramByID(ctx, id)
}

func (f *fakeTrainingRepo) CountParticipants(ctx context.Context, programID string) (int64, error) {
	return f.countParticipants(ctx, programID)
}

func (f *fakeTrainingRepo) CreateParticipant(ctx context.Context, tp *training.TrainingParticipant) error {
	return f.createParticipant(ctx, tp)
}

func (f *fakeTrainingRepo) FindParticipantByID(ctx context.Context, id string) (*training.TrainingParticipant, error) {
	return f.findParticipantByID(ctx, id)
}

func (f *fakeTrainingRepo) UpdateParticipant(ctx context.Context, tp *training.TrainingParticipant) error {
	return f.updateParticipant(ctx, tp)
}

func openProgram(capacity int) *training.TrainingProgram {
	return &training.TrainingProgram{
		ID:              uuid.New(),
		Name:            "Forklift Safety",
		Code:            "TRN-001",
		MaxParticipants: capacity,
		IsActive:        true,
	}
}

func TestEnroll_AdmitsIntoOpenProgram(t *testing.T) {
	repo := &fakeTrainingRepo{
		findProgramByID: func(ctx context.Context, id string) (*training.TrainingProgram, error) {
			return openProgram(20), nil
		},
		countParticipants: func(ctx context.Context, programID string) (int64, error) {
			return 5, nil
		},
		createParticipant: func(ctx context.Context, tp *training.TrainingParticipant) error {
			return nil
		},
	}
	svc := training.NewService(repo)

	resp, err := svc.Enroll(context.Background(), uuid.NewString(), training.EnrollRequest{
		EmployeeID: uuid.NewString(),
	})

	assert.NoError(t, err)
	assert.Equal(t, training.StatusEnrolled, resp.Status)
}

func TestEnroll_FullProgramRefused(t *testing.T) {
	repo := &fakeTrainingRepo{
		findProgramByID: func(ctx context.Context, id string) (*training.TrainingProgram, error) {
			return openProgram(5), nil
		},
		countParticipants: func(ctx context.Context, programID string) (int64, error) {
			return 5, nil
		},
	}
	svc := training.NewService(repo)

	_, err := svc.Enroll(context.Background(), uuid.NewString(), training.EnrollRequest{
		EmployeeID: uuid.NewString(),
	})

	assert.ErrorIs(t, err, trainingerrors.ErrProgramFull)
}

func TestEnroll_DuplicateEnrollmentRefused(t *testing.T) {
	repo := &fakeTrainingRepo{
		findProgramByID: func(ctx context.Context, id string) (*training.TrainingProgram, error) {
			return openProgram(20), nil
		},
		countParticipants: func(ctx context.Context, programID string) (int64, error) {
			return 5, nil
		},
		createParticipant: func(ctx context.Context, tp *training.TrainingParticipant) error {
			return &pgconn.PgError{Code: "23505"}
		},
	}
	svc := training.NewService(repo)

	_, err := svc.Enroll(context.Background(), uuid.NewString(), training.EnrollRequest{
		EmployeeID: uuid.NewString(),
	})

	assert.ErrorIs(t, err, trainingerrors.ErrAlreadyEnrolled)
}

func TestCompleteParticipant_SetsCompletionDateAndScore(t *testing.T) {
	var saved *training.TrainingParticipant
	repo := &fakeTrainingRepo{
		findParticipantByID: func(ctx context.Context, id string) (*training.TrainingParticipant, error) {
			return &training.TrainingParticipant{ID: uuid.New(), Status: training.StatusEnrolled}, nil
		},
		updateParticipant: func(ctx context.Context, tp *training.TrainingParticipant) error {
			saved = tp
			return nil
		},
	}
	svc := training.NewService(repo)

	resp, err := svc.CompleteParticipant(context.Background(), uuid.NewString(), training.CompleteParticipantRequest{
		Status: training.StatusCompleted,
		Score:  "87.5",
	})

	assert.NoError(t, err)
	assert.Equal(t, training.StatusCompleted, resp.Status)
	assert.NotNil(t, saved.CompletionDate)
	assert.Equal(t, "87.50", *resp.Score)
}

func TestCompleteParticipant_AlreadyCompletedRefused(t *testing.T) {
	repo := &fakeTrainingRepo{
		findParticipantByID: func(ctx context.Context, id string) (*training.TrainingParticipant, error) {
			return &training.TrainingParticipant{ID: uuid.New(), Status: training.StatusCompleted}, nil
		},
	}
	svc := training.NewService(repo)

	_, err := svc.CompleteParticipant(context.Background(), uuid.NewString(), training.CompleteParticipantRequest{
		Status: training.StatusDropped,
	})

	assert.ErrorIs(t, err, trainingerrors.ErrInvalidStatusTransition)
}
