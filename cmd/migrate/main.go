package main

import (
	"log"

	"go.uber.org/zap"

	"withdrawal-service/internal/config"
	"withdrawal-service/internal/database"
	"withdrawal-service/internal/logger"
)

func main() {
	config.LoadEnv()
	cfg := config.Load()

	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zl.Sync()

	db, err := database.Connect(cfg.DB, zl)
	if err != nil {
		zl.Fatal("database unavailable", zap.Error(err))
	}

	zl.Info("running database migrations")
	if err := database.Migrate(db); err != nil {
		zl.Fatal("migration failed", zap.Error(err))
	}
	zl.Info("migrations completed")
}
