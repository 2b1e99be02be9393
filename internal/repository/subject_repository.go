package repository

import (
	"context"

	"gorm.io/gorm"

	"campusnotes/internal/model"
)

// SubjectFilter narrows subject listings. Zero values mean "no filter".
type SubjectFilter struct {
	TradeID  uint
	Semester int
}

// SubjectRepository defines persistence operations for subjects.
type SubjectRepository interface {
	Create(ctx context.Context, subject *model.Subject) error
	List(ctx context.Context, filter SubjectFilter) ([]model.Subject, error)
	FindByID(ctx context.Context, id uint) (*model.Subject, error)
}

type subjectRepository struct {
	db *gorm.DB
}

// NewSubjectRepository builds a GORM-backed repository.
func NewSubjectRepository(db *gorm.DB) SubjectRepository {
	return &subjectRepository{db: db}
}

func (r *subjectRepository) Create(ctx context.Context, subject *model.Subject) error {
	// Creating with the Trades association populated also writes the join rows.
	return r.db.WithContext(ctx).Create(subject).Error
}

func (r *subjectRepository) List(ctx context.Context, filter SubjectFilter) ([]model.Subject, error) {
	q := r.db.WithContext(ctx).Model(&model.Subject{}).Preload("Trades")
	if filter.TradeID != 0 {
		q = q.Joins("JOIN subject_trades st ON st.subject_id = subjects.id").
			Where("st.trade_id = ?", filter.TradeID)
	}
	if filter.Semester != 0 {
		q = q.Where("subjects.semester = ?", filter.Semester)
	}

	var subjects []model.Subject
	if err := q.Order("subjects.code").Find(&subjects).Error; err != nil {
		return nil, err
	}
	return subjects, nil
}

func (r *subjectRepository) FindByID(ctx context.Context, id uint) (*model.Subject, error) {
	var subject model.Subject
	if err := r.db.WithContext(ctx).Preload("Trades").First(&subject, id).Error; err != nil {
		return nil, err
	}
	return &subject, nil
}
