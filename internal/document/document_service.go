package document

import (
	"context"
	"errors"
	"time"

	documenterrors "go-hrm/internal/document/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusActive              = "ACTIVE"
	StatusExpired             = "EXPIRED"
	StatusPendingVerification = "PENDING_VERIFICATION"
	StatusVerified            = "VERIFIED"
	StatusRejected            = "REJECTED"
)

type Service interface {
	CreateCategory(ctx context.Context, req CreateCategoryRequest) (CategoryResponse, error)
	GetCategories(ctx context.Context, activeOnly bool) ([]CategoryResponse, error)
	UpdateCategory(ctx context.Context, id string, req UpdateCategoryRequest) (CategoryResponse, error)

	Add(ctx context.Context, req AddDocumentRequest) (DocumentResponse, error)
	GetByID(ctx context.Context, id string) (DocumentResponse, error)
	EmployeeDocuments(ctx context.Context, employeeID string) ([]DocumentResponse, error)
	Expiring(ctx context.Context, withinDays int) ([]DocumentResponse, error)
	Verify(ctx context.Context, id string, verifierID string, req VerifyDocumentRequest) (DocumentResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("document.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("document.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) CreateCategory(ctx context.Context, req CreateCategoryRequest) (CategoryResponse, error) {
	c := &DocumentCategory{
		ID:             uuid.New(),
		Name:           req.Name,
		Code:           req.Code,
		Description:    req.Description,
		RequiresExpiry: req.RequiresExpiry,
		IsMandatory:    req.IsMandatory,
		IsActive:       true,
	}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		if isUniqueViolation(err) {
			return CategoryResponse{}, documenterrors.ErrDuplicateCategory
		}
		return CategoryResponse{}, err
	}
	return mapCategory(*c), nil
}

func (s *service) GetCategories(ctx context.Context, activeOnly bool) ([]CategoryResponse, error) {
	categories, err := s.repo.FindCategories(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	res := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		res[i] = mapCategory(c)
	}
	return res, nil
}

func (s *service) UpdateCategory(ctx context.Context, id string, req UpdateCategoryRequest) (CategoryResponse, error) {
	c, err := s.repo.FindCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CategoryResponse{}, documenterrors.ErrCategoryNotFound
		}
		return CategoryResponse{}, err
	}

	if req.Name != "" {
		c.Name = req.Name
	}
	if req.Description != "" {
		c.Description = req.Description
	}
	if req.RequiresExpiry != nil {
		c.RequiresExpiry = *req.RequiresExpiry
	}
	if req.IsMandatory != nil {
		c.IsMandatory = *req.IsMandatory
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}

	if err := s.repo.UpdateCategory(ctx, c); err != nil {
		return CategoryResponse{}, err
	}
	return mapCategory(*c), nil
}

func (s *service) Add(ctx context.Context, req AddDocumentRequest) (DocumentResponse, error) {
	category, err := s.repo.FindCategoryByID(ctx, req.CategoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DocumentResponse{}, documenterrors.ErrCategoryNotFound
		}
		return DocumentResponse{}, err
	}
	if category.RequiresExpiry && req.ExpiryDate == "" {
		return DocumentResponse{}, documenterrors.ErrExpiryRequired
	}

	d := &Document{
		ID:               uuid.New(),
		EmployeeID:       uuid.MustParse(req.EmployeeID),
		CategoryID:       category.ID,
		Title:            req.Title,
		DocumentNumber:   req.DocumentNumber,
		Description:      req.Description,
		IssuingAuthority: req.IssuingAuthority,
		Status:           StatusPendingVerification,
		IsConfidential:   req.IsConfidential,
	}
	if req.IssueDate != "" {
		issued, err := time.Parse("2006-01-02", req.IssueDate)
		if err != nil {
			return DocumentResponse{}, documenterrors.ErrInvalidDate
		}
		d.IssueDate = &issued
	}
	if req.ExpiryDate != "" {
		expiry, err := time.Parse("2006-01-02", req.ExpiryDate)
		if err != nil {
			return DocumentResponse{}, documenterrors.ErrInvalidDate
		}
		d.ExpiryDate = &expiry
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return DocumentResponse{}, err
	}

	s.logger.Info("document recorded",
		zap.String("employee_id", req.EmployeeID),
		zap.String("category_code", category.Code),
	)
	resp := mapDocument(*d)
	resp.CategoryName = category.Name
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (DocumentResponse, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DocumentResponse{}, documenterrors.ErrDocumentNotFound
		}
		return DocumentResponse{}, err
	}
	return mapDocument(*d), nil
}

func (s *service) EmployeeDocuments(ctx context.Context, employeeID string) ([]DocumentResponse, error) {
	docs, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	res := make([]DocumentResponse, len(docs))
	for i, d := range docs {
		res[i] = mapDocument(d)
	}
	return res, nil
}

// Expiring lists documents whose expiry date falls within the window,
// for the renewal-chasing report.
func (s *service) Expiring(ctx context.Context, withinDays int) ([]DocumentResponse, error) {
	if withinDays <= 0 {
		withinDays = 30
	}
	cutoff := time.Now().UTC().AddDate(0, 0, withinDays)

	docs, err := s.repo.FindExpiring(ctx, cutoff)
	if err != nil {
		return nil, err
	}
	res := make([]DocumentResponse, len(docs))
	for i, d := range docs {
		res[i] = mapDocument(d)
	}
	return res, nil
}

func (s *service) Verify(ctx context.Context, id string, verifierID string, req VerifyDocumentRequest) (DocumentResponse, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DocumentResponse{}, documenterrors.ErrDocumentNotFound
		}
		return DocumentResponse{}, err
	}
	if d.Status != StatusPendingVerification {
		return DocumentResponse{}, documenterrors.ErrDocumentNotPending
	}

	now := time.Now().UTC()
	if req.Approve {
		d.Status = StatusVerified
	} else {
		d.Status = StatusRejected
	}
	if verifierID != "" {
		vid, err := uuid.Parse(verifierID)
		if err == nil {
			d.VerifiedBy = &vid
		}
	}
	d.VerifiedAt = &now
	d.VerificationNotes = req.Notes

	if err := s.repo.Update(ctx, d); err != nil {
		return DocumentResponse{}, err
	}

	s.logger.Info("document verification recorded",
		zap.String("document_id", d.ID.String()),
		zap.String("status", d.Status),
	)
	return mapDocument(*d), nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func mapCategory(c DocumentCategory) CategoryResponse {
	return CategoryResponse{
		ID:             c.ID.String(),
		Name:           c.Name,
		Code:           c.Code,
		Description:    c.Description,
		RequiresExpiry: c.RequiresExpiry,
		IsMandatory:    c.IsMandatory,
		IsActive:       c.IsActive,
	}
}

func mapDocument(d Document) DocumentResponse {
	resp := DocumentResponse{
		ID:               d.ID.String(),
		EmployeeID:       d.EmployeeID.String(),
		CategoryID:       d.CategoryID.String(),
		Title:            d.Title,
		DocumentNumber:   d.DocumentNumber,
		Description:      d.Description,
		IssuingAuthority: d.IssuingAuthority,
		Status:           d.Status,
		IsConfidential:   d.IsConfidential,
	}
	if d.Employee != nil {
		resp.EmployeeName = d.Employee.FullName
	}
	if d.Category != nil {
		resp.CategoryName = d.Category.Name
	}
	if d.IssueDate != nil {
		v := d.IssueDate.Format("2006-01-02")
		resp.IssueDate = &v
	}
	if d.ExpiryDate != nil {
		v := d.ExpiryDate.Format("2006-01-02")
		resp.ExpiryDate = &v
		days := int(time.Until(*d.ExpiryDate).Hours() / 24)
		resp.DaysUntilExpiry = &days
		if days < 0 && resp.Status == StatusActive {
			resp.Status = StatusExpired
		}
	}
	if d.VerifiedBy != nil {
		v := d.VerifiedBy.String()
		resp.VerifiedBy = &v
	}
	if d.VerifiedAt != nil {
		v := d.VerifiedAt.Format(time.RFC3339)
		resp.VerifiedAt = &v
	}
	return resp
}
