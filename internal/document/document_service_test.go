package document_test

import (
	"context"
	"testing"
	"time"

	"go-hrm/internal/document"
	documenterrors "go-hrm/internal/document/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDocumentRepo struct {
	document.Repository

	findCategoryByID func(ctx context.Context, id string) (*document.DocumentCategory, error)
	create           func(ctx context.Context, d *document.Document) error
	findByID         func(ctx context.Context, id string) (*document.Document, error)
	update           func(ctx context.Context, d *document.Document) error
}

func (f *fakeDocumentRepo) FindCategoryByID(ctx context.Context, id string) (*document.DocumentCategory, error) {
	return f.findCategoryByID(ctx, id)
}

func (f *fakeDocumentRepo) Create(ctx context.Context, d *document.Document) error {
	return f.create(ctx, d)
}

func (f *fakeDocumentRepo) FindByID(ctx context.Context, id string) (*document.Document, error) {
	return f.findByID(ctx, id)
}

func (f *fakeDocumentRepo) Update(ctx context.Context, d *document.Document) error {
	return f.update(ctx, d)
}

func passportCategory(requiresExpiry bool) *document.DocumentCategory {
	return &document.DocumentCategory{
		ID:             uuid.New(),
		Name:           "Passport",
		Code:           "PASSPORT",
		RequiresExpiry: requiresExpiry,
		IsActive:       true,
	}
}

func TestAdd_StartsPendingVerification(t *testing.T) {
	repo := &fakeDocumentRepo{
		findCategoryByID: func(ctx context.Context, id string) (*document.DocumentCategory, error) {
			return passportCategory(true), nil
		},
		create: func(ctx context.Context, d *document.Document) error { return nil },
	}
	svc := document.NewService(repo)

	resp, err := svc.Add(context.Background(), document.AddDocumentRequest{
		EmployeeID: uuid.NewString(),
		CategoryID: uuid.NewString(),
		Title:      "Passport",
		ExpiryDate: "2030-06-15",
	})

	require.NoError(t, err)
	assert.Equal(t, document.StatusPendingVerification, resp.Status)
	require.NotNil(t, resp.DaysUntilExpiry)
	assert.Greater(t, *resp.DaysUntilExpiry, 0)
}

func TestAdd_MissingExpiryRefusedWhenCategoryRequiresIt(t *testing.T) {
	repo := &fakeDocumentRepo{
		findCategoryByID: func(ctx context.Context, id string) (*document.DocumentCategory, error) {
			return passportCategory(true), nil
		},
	}
	svc := document.NewService(repo)

	_, err := svc.Add(context.Background(), document.AddDocumentRequest{
		EmployeeID: uuid.NewString(),
		CategoryID: uuid.NewString(),
		Title:      "Passport",
	})

	assert.ErrorIs(t, err, documenterrors.ErrExpiryRequired)
}

func TestVerify_ApprovalStampsVerifier(t *testing.T) {
	verifierID := uuid.New()
	var saved *document.Document
	repo := &fakeDocumentRepo{
		findByID: func(ctx context.Context, id string) (*document.Document, error) {
			return &document.Document{ID: uuid.New(), Status: document.StatusPendingVerification}, nil
		},
		update: func(ctx context.Context, d *document.Document) error {
			saved = d
			return nil
		},
	}
	svc := document.NewService(repo)

	resp, err := svc.Verify(context.Background(), uuid.NewString(), verifierID.String(), document.VerifyDocumentRequest{
		Approve: true,
		Notes:   "matches the original",
	})

	require.NoError(t, err)
	assert.Equal(t, document.StatusVerified, resp.Status)
	require.NotNil(t, saved.VerifiedBy)
	assert.Equal(t, verifierID, *saved.VerifiedBy)
	assert.NotNil(t, saved.VerifiedAt)
}

func TestVerify_RejectionRecordsNotes(t *testing.T) {
	var saved *document.Document
	repo := &fakeDocumentRepo{
		findByID: func(ctx context.Context, id string) (*document.Document, error) {
			return &document.Document{ID: uuid.New(), Status: document.StatusPendingVerification}, nil
		},
		update: func(ctx context.Context, d *document.Document) error {
			saved = d
			return nil
		},
	}
	svc := document.NewService(repo)

	resp, err := svc.Verify(context.Background(), uuid.NewString(), "", document.VerifyDocumentRequest{
		Approve: false,
		Notes:   "illegible scan",
	})

	require.NoError(t, err)
	assert.Equal(t, document.StatusRejected, resp.Status)
	assert.Equal(t, "illegible scan", saved.VerificationNotes)
}

func TestVerify_AlreadyVerifiedRefused(t *testing.T) {
	repo := &fakeDocumentRepo{
		findByID: func(ctx context.Context, id string) (*document.Document, error) {
			return &document.Document{ID: uuid.New(), Status: document.StatusVerified}, nil
		},
	}
	svc := document.NewService(repo)

	_, err := svc.Verify(context.Background(), uuid.NewString(), "", document.VerifyDocumentRequest{Approve: true})

	assert.ErrorIs(t, err, documenterrors.ErrDocumentNotPending)
}

func TestMapDocument_PastExpiryShownExpired(t *testing.T) {
	past := time.Now().UTC().AddDate(0, 0, -10)
	repo := &fakeDocumentRepo{
		findByID: func(ctx context.Context, id string) (*document.Document, error) {
			return &document.Document{
				ID:         uuid.New(),
				Status:     document.StatusActive,
				ExpiryDate: &past,
			}, nil
		},
	}
	svc := document.NewService(repo)

	resp, err := svc.GetByID(context.Background(), uuid.NewString())

	require.NoError(t, err)
	assert.Equal(t, document.StatusExpired, resp.Status)
}
