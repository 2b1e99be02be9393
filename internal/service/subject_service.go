package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"campusnotes/internal/cache"
	apperrors "campusnotes/internal/errors"
	"campusnotes/internal/model"
	"campusnotes/internal/repository"
)

const (
	subjectCacheKey = "subjects:all"
	subjectCacheTTL = 5 * time.Minute
)

// SubjectService exposes subject operations.
type SubjectService interface {
	List(ctx context.Context, filter repository.SubjectFilter) ([]model.Subject, error)
	Create(ctx context.Context, code, name string, tradeIDs []uint, semester int) (*model.Subject, error)
}

type subjectService struct {
	repo   repository.SubjectRepository
	trades repository.TradeRepository
	cache  *cache.Client
}

// NewSubjectService builds a SubjectService.
func NewSubjectService(repo repository.SubjectRepository, trades repository.TradeRepository, cache *cache.Client) SubjectService {
	return &subjectService{repo: repo, trades: trades, cache: cache}
}

// List returns subjects, optionally narrowed by trade and semester. Only the
// unfiltered listing is cached; filtered queries hit the store directly.
func (s *subjectService) List(ctx context.Context, filter repository.SubjectFilter) ([]model.Subject, error) {
	unfiltered := filter.TradeID == 0 && filter.Semester == 0
	if unfiltered {
		if data, _ := s.cache.Get(ctx, subjectCacheKey); data != nil {
			var cached []model.Subject
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}
	}

	subjects, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	if unfiltered {
		if payload, err := json.Marshal(subjects); err == nil {
			_ = s.cache.Set(ctx, subjectCacheKey, payload, subjectCacheTTL)
		}
	}
	return subjects, nil
}

// Create stores a subject linked to one or more existing trades.
func (s *subjectService) Create(ctx context.Context, code, name string, tradeIDs []uint, semester int) (*model.Subject, error) {
	trades := make([]model.Trade, 0, len(tradeIDs))
	for _, id := range tradeIDs {
		trade, err := s.trades.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrTradeNotFound
			}
			return nil, fmt.Errorf("find trade %d: %w", id, err)
		}
		trades = append(trades, *trade)
	}

	subject := &model.Subject{
		Code:     code,
		Name:     name,
		Semester: semester,
		Trades:   trades,
	}
	if err := s.repo.Create(ctx, subject); err != nil {
		return nil, fmt.Errorf("create subject: %w", err)
	}

	_ = s.cache.Delete(ctx, subjectCacheKey)
	return subject, nil
}
