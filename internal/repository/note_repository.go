package repository

import (
	"context"

	"gorm.io/gorm"

	"campusnotes/internal/model"
)

// ResourceFilter narrows note and PYQ listings. Zero values mean "no filter".
type ResourceFilter struct {
	TradeID   uint
	SubjectID uint
	Semester  int
}

// NoteRepository defines persistence operations for notes.
type NoteRepository interface {
	Create(ctx context.Context, note *model.Note) error
	List(ctx context.Context, filter ResourceFilter) ([]model.Note, error)
	FindByID(ctx context.Context, id uint) (*model.Note, error)
	Delete(ctx context.Context, id uint) error
}

type noteRepository struct {
	db *gorm.DB
}

// NewNoteRepository builds a GORM-backed repository.
func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) Create(ctx context.Context, note *model.Note) error {
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *noteRepository) List(ctx context.Context, filter ResourceFilter) ([]model.Note, error) {
	q := r.db.WithContext(ctx).Preload("Trade").Preload("Subject")
	if filter.TradeID != 0 {
		q = q.Where("trade_id = ?", filter.TradeID)
	}
	if filter.SubjectID != 0 {
		q = q.Where("subject_id = ?", filter.SubjectID)
	}
	if filter.Semester != 0 {
		q = q.Where("semester = ?", filter.Semester)
	}

	var notes []model.Note
	if err := q.Order("created_at DESC").Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *noteRepository) FindByID(ctx context.Context, id uint) (*model.Note, error) {
	var note model.Note
	if err := r.db.WithContext(ctx).Preload("Trade").Preload("Subject").First(&note, id).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *noteRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Note{}, id).Error
}
