package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"campusnotes/internal/model"
)

// TradeRepository defines persistence operations for trades.
type TradeRepository interface {
	Create(ctx context.Context, trade *model.Trade) error
	List(ctx context.Context) ([]model.Trade, error)
	FindByID(ctx context.Context, id uint) (*model.Trade, error)
	FindByCode(ctx context.Context, code string) (*model.Trade, error)
}

type tradeRepository struct {
	db *gorm.DB
}

// NewTradeRepository builds a GORM-backed repository.
func NewTradeRepository(db *gorm.DB) TradeRepository {
	return &tradeRepository{db: db}
}

func (r *tradeRepository) Create(ctx context.Context, trade *model.Trade) error {
	return r.db.WithContext(ctx).Create(trade).Error
}

func (r *tradeRepository) List(ctx context.Context) ([]model.Trade, error) {
	var trades []model.Trade
	if err := r.db.WithContext(ctx).Order("trade_code").Find(&trades).Error; err != nil {
		return nil, err
	}
	return trades, nil
}

func (r *tradeRepository) FindByID(ctx context.Context, id uint) (*model.Trade, error) {
	var trade model.Trade
	if err := r.db.WithContext(ctx).First(&trade, id).Error; err != nil {
		return nil, err
	}
	return &trade, nil
}

func (r *tradeRepository) FindByCode(ctx context.Context, code string) (*model.Trade, error) {
	var trade model.Trade
	code = strings.ToUpper(strings.TrimSpace(code))
	if err := r.db.WithContext(ctx).Where("trade_code = ?", code).First(&trade).Error; err != nil {
		return nil, err
	}
	return &trade, nil
}
