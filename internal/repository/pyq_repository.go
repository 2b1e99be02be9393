package repository

import (
	"context"

	"gorm.io/gorm"

	"campusnotes/internal/model"
)

// PYQRepository defines persistence operations for previous-year papers.
type PYQRepository interface {
	Create(ctx context.Context, pyq *model.PYQ) error
	List(ctx context.Context, filter ResourceFilter) ([]model.PYQ, error)
	FindByID(ctx context.Context, id uint) (*model.PYQ, error)
	Delete(ctx context.Context, id uint) error
}

type pyqRepository struct {
	db *gorm.DB
}

// NewPYQRepository builds a GORM-backed repository.
func NewPYQRepository(db *gorm.DB) PYQRepository {
	return &pyqRepository{db: db}
}

func (r *pyqRepository) Create(ctx context.Context, pyq *model.PYQ) error {
	return r.db.WithContext(ctx).Create(pyq).Error
}

func (r *pyqRepository) List(ctx context.Context, filter ResourceFilter) ([]model.PYQ, error) {
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

	var pyqs []model.PYQ
	if err := q.Order("year DESC, created_at DESC").Find(&pyqs).Error; err != nil {
		return nil, err
	}
	return pyqs, nil
}

func (r *pyqRepository) FindByID(ctx context.Context, id uint) (*model.PYQ, error) {
	var pyq model.PYQ
	if err := r.db.WithContext(ctx).Preload("Trade").Preload("Subject").First(&pyq, id).Error; err != nil {
		return nil, err
	}
	return &pyq, nil
}

func (r *pyqRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.PYQ{}, id).Error
}
