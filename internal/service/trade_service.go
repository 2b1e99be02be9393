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
	tradeCacheKey = "trades:all"
	tradeCacheTTL = 5 * time.Minute
)

// TradeService exposes trade (branch) operations.
type TradeService interface {
	List(ctx context.Context) ([]model.Trade, error)
	Create(ctx context.Context, code, name string) (*model.Trade, error)
}

type tradeService struct {
	repo  repository.TradeRepository
	cache *cache.Client
}

// NewTradeService builds a TradeService with repository and cache.
func NewTradeService(repo repository.TradeRepository, cache *cache.Client) TradeService {
	return &tradeService{repo: repo, cache: cache}
}

// List returns every trade, cache-aside since the set changes rarely and
// backs every dropdown in the client.
func (s *tradeService) List(ctx context.Context) ([]model.Trade, error) {
	if data, _ := s.cache.Get(ctx, tradeCacheKey); data != nil {
		var cached []model.Trade
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	trades, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(trades); err == nil {
		_ = s.cache.Set(ctx, tradeCacheKey, payload, tradeCacheTTL)
	}
	return trades, nil
}

func (s *tradeService) Create(ctx context.Context, code, name string) (*model.Trade, error) {
	existing, err := s.repo.FindByCode(ctx, code)
	if err == nil && existing != nil {
		return nil, apperrors.ErrTradeExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check trade code: %w", err)
	}

	trade := &model.Trade{TradeCode: code, TradeName: name}
	if err := s.repo.Create(ctx, trade); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrTradeExists
		}
		return nil, fmt.Errorf("create trade: %w", err)
	}

	_ = s.cache.Delete(ctx, tradeCacheKey)
	return trade, nil
}
