package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/example/ministore/internal/config"
	"github.com/example/ministore/internal/logging"
	"github.com/example/ministore/internal/repository/mongodb"
	"github.com/example/ministore/internal/service"
)

// Seeds a handful of demo products so the storefront has something to
// show on a fresh database.
func main() {
	cfg, err := config.Load("./config")
	if err != nil {
		panic(err)
	}

	logger := logging.Init(true)
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	db, err := mongodb.Init(ctx, &cfg.Mongo)
	if err != nil {
		zap.L().Fatal("failed to init mongo", zap.Error(err))
	}

	productSvc := service.NewProductService(mongodb.NewProductRepository(db))

	demo := []struct {
		name  string
		price float64
	}{
		{"Pen", 10.0},
		{"Notebook", 45.5},
		{"Backpack", 799.0},
		{"Water Bottle", 120.0},
		{"Desk Lamp", 350.0},
	}
	for _, d := range demo {
		p, err := productSvc.Add(ctx, d.name, d.price)
		if err != nil {
			zap.L().Fatal("failed to add product", zap.String("name", d.name), zap.Error(err))
		}
		zap.L().Info("product added",
			zap.String("id", p.ID.Hex()),
			zap.String("name", p.Name),
			zap.Float64("price", p.Price))
	}
}
