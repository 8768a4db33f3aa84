package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	goredislib "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"withdrawal-service/internal/config"
	"withdrawal-service/internal/database"
	grpcServer "withdrawal-service/internal/grpc"
	"withdrawal-service/internal/handlers"
	"withdrawal-service/internal/lock"
	"withdrawal-service/internal/logger"
	"withdrawal-service/internal/services"
	"withdrawal-service/internal/worker"
)

func main() {
	config.LoadEnv()
	cfg := config.Load()

	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zl.Sync()

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Database
	db, err := database.Connect(cfg.DB, zl)
	if err != nil {
		zl.Fatal("database unavailable", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		zl.Fatal("migration failed", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		zl.Fatal("database handle unavailable", zap.Error(err))
	}

	// Redis: request-number lock and flow sync queue
	redisClient := goredislib.NewClient(&goredislib.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		zl.Warn("redis ping failed, locking and flow sync will retry", zap.Error(err))
	}
	locker := lock.NewRedisLocker(redisClient, lock.DefaultOptions(), zl)

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
	defer asynqClient.Close()

	// Services
	flowService := services.NewTreasuryFlowService(db, cfg.Policy, zl)
	withdrawalService := services.NewWithdrawalService(db, cfg.Policy, flowService, locker, worker.NewEnqueuer(asynqClient), zl)
	reportingService := services.NewReportingService(db)

	reconciler, err := flowService.StartScheduler(cfg.FlowReconcileSchedule)
	if err != nil {
		zl.Fatal("failed to start flow reconciler", zap.Error(err))
	}
	defer reconciler.Stop()

	// gRPC health
	go func() {
		if err := grpcServer.StartGRPCServer(ctx, cfg.GRPCPort, sqlDB, zl); err != nil {
			zl.Error("gRPC server failed", zap.Error(err))
			stop()
		}
	}()

	// HTTP
	r := gin.New()
	r.Use(gin.Recovery(), handlers.RequestLogger(zl))
	handlers.RegisterRoutes(r, handlers.NewWithdrawalHandler(withdrawalService, reportingService, zl))

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		zl.Info("HTTP server starting", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Error("HTTP server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("HTTP shutdown failed", zap.Error(err))
	}
}
