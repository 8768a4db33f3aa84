package main

import (
	"log"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"withdrawal-service/internal/config"
	"withdrawal-service/internal/consumers"
	"withdrawal-service/internal/database"
	"withdrawal-service/internal/logger"
	"withdrawal-service/internal/services"
	"withdrawal-service/internal/worker"
)

func main() {
	config.LoadEnv(".env", "../.env", "../../.env")
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

	flowService := services.NewTreasuryFlowService(db, cfg.Policy, zl)
	processor := consumers.NewFlowProcessor(flowService, zl)

	redisOpt := asynq.RedisClientOpt{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
	if err := worker.StartWorker(redisOpt, processor, zl); err != nil {
		zl.Fatal("worker stopped", zap.Error(err))
	}
}
