package recruitment

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	CreatePosting(ctx context.Context, p *JobPosting) error
	FindPostingByID(ctx context.Context, id string) (*JobPosting, error)
	FindPostings(ctx context.Context, status string) ([]JobPosting, error)
	UpdatePosting(ctx context.Context, p *JobPosting) error

	CreateCandidate(ctx context.Context, c *Candidate) error
	FindCandidateByID(ctx context.Context, id string) (*Candidate, error)
	FindCandidatesByPosting(ctx context.Context, postingID string, status string) ([]Candidate, error)
	UpdateCandidate(ctx context.Context, c *Candidate) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreatePosting(ctx context.Context, p *JobPosting) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindPostingByID(ctx context.Context, id string) (*JobPosting, error) {
	var p JobPosting
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindPostings(ctx context.Context, status string) ([]JobPosting, error) {
	db := r.db.WithContext(ctx)
	if status != "" {
		db = db.Where("status = ?", status)
	}

	var postings []JobPosting
	if err := db.Order("created_at DESC").Find(&postings).Error; err != nil {
		return nil, err
	}
	return postings, nil
}

func (r *repository) UpdatePosting(ctx context.Context, p *JobPosting) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *repository) CreateCandidate(ctx context.Context, c *Candidate) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) FindCandidateByID(ctx context.Context, id string) (*Candidate, error) {
	var c Candidate
	if err := r.db.WithContext(ctx).
		Preload("JobPosting").
		First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) FindCandidatesByPosting(ctx context.Context, postingID string, status string) ([]Candidate, error) {
	db := r.db.WithContext(ctx).Where("job_posting_id = ?", postingID)
	if status != "" {
		db = db.Where("status = ?", status)
	}

	var candidates []Candidate
	if err := db.Order("applied_date DESC").Find(&candidates).Error; err != nil {
		return nil, err
	}
	return candidates, nil
}

func (r *repository) UpdateCandidate(ctx context.Context, c *Candidate) error {
	return r.db.WithContext(ctx).Save(c).Error
}
