package training

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	CreateProgram(ctx context.Context, p *TrainingProgram) error
	FindPrograms(ctx context.Context, activeOnly bool) ([]TrainingProgram, error)
	FindProgramByID(ctx context.Context, id string) (*TrainingProgram, error)
	UpdateProgram(ctx context.Context, p *TrainingProgram) error

	CreateParticipant(ctx context.Context, tp *TrainingParticipant) error
	FindParticipantByID(ctx context.Context, id string) (*TrainingParticipant, error)
	FindParticipantsByProgram(ctx context.Context, programID string) ([]TrainingParticipant, error)
	FindParticipantsByEmployee(ctx context.Context, employeeID string) ([]TrainingParticipant, error)
	CountParticipants(ctx context.Context, programID string) (int64, error)
	UpdateParticipant(ctx context.Context, tp *TrainingParticipant) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateProgram(ctx context.Context, p *TrainingProgram) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindPrograms(ctx context.Context, activeOnly bool) ([]TrainingProgram, error) {
	db := r.db.WithContext(ctx)
	if activeOnly {
		db = db.Where("is_active = ?", true)
	}

	var programs []TrainingProgram
	err := db.Order("start_date DESC").Find(&programs).Error
	return programs, err
}

func (r *repository) FindProgramByID(ctx context.Context, id string) (*TrainingProgram, error) {
	var p TrainingProgram
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) UpdateProgram(ctx context.Context, p *TrainingProgram) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *repository) CreateParticipant(ctx context.Context, tp *TrainingParticipant) error {
	return r.db.WithContext(ctx).Create(tp).Error
}

func (r *repository) FindParticipantByID(ctx context.Context, id string) (*TrainingParticipant, error) {
	var tp TrainingParticipant
	err := r.db.WithContext(ctx).
		Preload("Program").
		Preload("Employee").
		First(&tp, "id = ?", id).Error
	return &tp, err
}

func (r *repository) FindParticipantsByProgram(ctx context.Context, programID string) ([]TrainingParticipant, error) {
	var participants []TrainingParticipant
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("program_id = ?", programID).
		Order("created_at ASC").
		Find(&participants).Error
	return participants, err
}

func (r *repository) FindParticipantsByEmployee(ctx context.Context, employeeID string) ([]TrainingParticipant, error) {
	var participants []TrainingParticipant
	err := r.db.WithContext(ctx).
		Preload("Program").
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&participants).Error
	return participants, err
}

func (r *repository) CountParticipants(ctx context.Context, programID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&TrainingParticipant{}).
		Where("program_id = ?", programID).
		Count(&count).Error
	return count, err
}

func (r *repository) UpdateParticipant(ctx context.Context, tp *TrainingParticipant) error {
	return r.db.WithContext(ctx).Save(tp).Error
}
