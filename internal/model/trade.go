package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Trade represents an engineering branch (e.g. GCS - Computer Science).
type Trade struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	TradeCode string    `json:"tradeCode" gorm:"uniqueIndex;size:5;not null"`
	TradeName string    `json:"tradeName" gorm:"size:100;not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeSave normalizes the trade code to upper case and trims both fields.
func (t *Trade) BeforeSave(tx *gorm.DB) error {
	t.TradeCode = strings.ToUpper(strings.TrimSpace(t.TradeCode))
	t.TradeName = strings.TrimSpace(t.TradeName)
	return nil
}

// DisplayName is the code-prefixed label used by dropdowns.
func (t *Trade) DisplayName() string {
	return t.TradeCode + " - " + t.TradeName
}
