package grievance_test

import (
	"context"
	"testing"

	"go-hrm/internal/grievance"
	grievanceerrors "go-hrm/internal/grievance/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeGrievanceRepo struct {
	grievance.Repository

	create   func(ctx context.Context, g *grievance.Grievance) error
	findByID func(ctx context.Context, id string) (*grievance.Grievance, error)
	update   func(ctx context.Context, g *grievance.Grievance) error
}

func (f *fakeGrievanceRepo) Create(ctx context.Context, g *grievance.Grievance) error {
	return f.create(ctx, g)
}

func (f *fakeGrievanceRepo) FindByID(ctx context.Context, id string) (*grievance.Grievance, error) {
	return f.findByID(ctx, id)
}

func (f *fakeGrievanceRepo) Update(ctx context.Context, g *grievance.Grievance) error {
	return f.update(ctx, g)
}

type fakeCounter struct {
	next int64
}

func (f *fakeCounter) GetNextValue(ctx context.Context, scope string, counterType string) (int64, error) {
	return f.next, nil
}

func TestFile_AssignsSequentialNumber(t *testing.T) {
	repo := &fakeGrievanceRepo{
		create: func(ctx context.Context, g *grievance.Grievance) error { return nil },
	}
	svc := grievance.NewService(repo, &fakeCounter{next: 7})

	resp, err := svc.File(context.Background(), uuid.NewString(), grievance.FileGrievanceRequest{
		Subject:     "Broken AC on floor 3",
		Description: "The air conditioning has been down for two weeks.",
	})

	assert.NoError(t, err)
	assert.Contains(t, resp.GrievanceID, "GRV")
	assert.Contains(t, resp.GrievanceID, "0007")
	assert.Equal(t, grievance.StatusSubmitted, resp.Status)
	assert.Equal(t, "MEDIUM", resp.Priority)
}

func TestFile_AnonymousHidesComplainant(t *testing.T) {
	repo := &fakeGrievanceRepo{
		create: func(ctx context.Context, g *grievance.Grievance) error { return nil },
	}
	svc := grievance.NewService(repo, &fakeCounter{next: 1})

	resp, err := svc.File(context.Background(), uuid.NewString(), grievance.FileGrievanceRequest{
		Subject:     "Harassment complaint",
		Description: "Details withheld from this test fixture.",
		IsAnonymous: true,
	})

	assert.NoError(t, err)
	assert.Empty(t, resp.EmployeeID)
}

func TestResolve_FromSubmittedRefused(t *testing.T) {
	repo := &fakeGrievanceRepo{
		findByID: func(ctx context.Context, id string) (*grievance.Grievance, error) {
			return &grievance.Grievance{ID: uuid.New(), Status: grievance.StatusSubmitted}, nil
		},
	}
	svc := grievance.NewService(repo, &fakeCounter{})

	_, err := svc.Resolve(context.Background(), uuid.NewString(), grievance.ResolveGrievanceRequest{
		Resolution: "Replaced the unit",
	})

	assert.ErrorIs(t, err, grievanceerrors.ErrInvalidStatusTransition)
}

func TestResolve_FromInvestigating(t *testing.T) {
	var saved *grievance.Grievance
	repo := &fakeGrievanceRepo{
		findByID: func(ctx context.Context, id string) (*grievance.Grievance, error) {
			return &grievance.Grievance{ID: uuid.New(), Status: grievance.StatusInvestigating}, nil
		},
		update: func(ctx context.Context, g *grievance.Grievance) error {
			saved = g
			return nil
		},
	}
	svc := grievance.NewService(repo, &fakeCounter{})

	resp, err := svc.Resolve(context.Background(), uuid.NewString(), grievance.ResolveGrievanceRequest{
		Resolution:  "Replaced the unit",
		ActionTaken: "Maintenance ticket escalated to facilities",
	})

	assert.NoError(t, err)
	assert.Equal(t, grievance.StatusResolved, resp.Status)
	assert.NotNil(t, saved.ResolvedAt)
}

func TestClose_OnlyAfterResolution(t *testing.T) {
	repo := &fakeGrievanceRepo{
		findByID: func(ctx context.Context, id string) (*grievance.Grievance, error) {
			return &grievance.Grievance{ID: uuid.New(), Status: grievance.StatusUnderReview}, nil
		},
	}
	svc := grievance.NewService(repo, &fakeCounter{})

	_, err := svc.Close(context.Background(), uuid.NewString())

	assert.ErrorIs(t, err, grievanceerrors.ErrInvalidStatusTransition)
}
