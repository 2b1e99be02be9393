package main

import (
	"context"
	"fmt"
	"log"

	"gorm.io/gorm"

	"campusnotes/internal/config"
	"campusnotes/internal/db"
	"campusnotes/internal/model"
	"campusnotes/internal/repository"
)

// Institute trades seeded into a fresh database.
var trades = []model.Trade{
	{TradeCode: "GCS", TradeName: "Computer Science Engineering"},
	{TradeCode: "GEE", TradeName: "Electrical Engineering"},
	{TradeCode: "GEC", TradeName: "Electronics Engineering"},
	{TradeCode: "GFT", TradeName: "Food Technology"},
	{TradeCode: "GCT", TradeName: "Chemical Technology"},
	{TradeCode: "GME", TradeName: "Mechanical Engineering"},
	{TradeCode: "GIN", TradeName: "Instrumentation Engineering"},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.Trade{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	tradeRepo := repository.NewTradeRepository(gormDB)
	ctx := context.Background()

	seeded, updated, err := seedTrades(ctx, tradeRepo, gormDB, trades)
	if err != nil {
		log.Fatalf("Failed to seed trades: %v", err)
	}

	log.Printf("Seed completed: %d created, %d updated", seeded, updated)
}

// seedTrades upserts trades by code so reruns are safe.
func seedTrades(ctx context.Context, repo repository.TradeRepository, gormDB *gorm.DB, trades []model.Trade) (seeded, updated int, err error) {
	for _, trade := range trades {
		existing, err := repo.FindByCode(ctx, trade.TradeCode)
		if err != nil && err != gorm.ErrRecordNotFound {
			return seeded, updated, fmt.Errorf("error checking trade %s: %w", trade.TradeCode, err)
		}

		if existing != nil {
			existing.TradeName = trade.TradeName
			if err := gormDB.WithContext(ctx).Save(existing).Error; err != nil {
				return seeded, updated, fmt.Errorf("error updating trade %s: %w", trade.TradeCode, err)
			}
			updated++
		} else {
			if err := repo.Create(ctx, &trade); err != nil {
				return seeded, updated, fmt.Errorf("error creating trade %s: %w", trade.TradeCode, err)
			}
			seeded++
		}
	}

	return seeded, updated, nil
}
