// Package grpc serves the standard health service for the withdrawal service.
// Withdrawal operations themselves are only exposed over REST.
package grpc

import (
	"context"
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"withdrawal-service/internal/logger"
)

// ServiceName is the health-check name other services probe.
const ServiceName = "gmah.withdrawal.v1.WithdrawalService"

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	GRPC   *grpc.Server
	Health *health.Server
	DB     Pinger
	Logger *zap.Logger
}

func NewServer(db Pinger, log *zap.Logger) *Server {
	s := &Server{
		GRPC:   grpc.NewServer(),
		Health: health.NewServer(),
		DB:     db,
		Logger: logger.OrNop(log),
	}
	healthpb.RegisterHealthServer(s.GRPC, s.Health)
	reflection.Register(s.GRPC)

	// Nothing has been checked yet.
	s.setStatus(healthpb.HealthCheckResponse_NOT_SERVING)
	return s
}

func (s *Server) setStatus(status healthpb.HealthCheckResponse_ServingStatus) {
	s.Health.SetServingStatus("", status)
	s.Health.SetServingStatus(ServiceName, status)
}

// CheckOnce pings the database and publishes the result.
func (s *Server) CheckOnce(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := s.DB.PingContext(ctx); err != nil {
		s.Logger.Warn("database ping failed", zap.Error(err))
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	s.setStatus(status)
	return status
}

// Watch re-checks the database every interval until ctx is done.
func (s *Server) Watch(ctx context.Context, interval time.Duration) {
	s.CheckOnce(ctx)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.CheckOnce(ctx)
		}
	}
}

// Serve blocks until lis fails or ctx is cancelled.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	go s.Watch(ctx, 15*time.Second)
	go func() {
		<-ctx.Done()
		s.Health.Shutdown()
		s.GRPC.GracefulStop()
	}()

	s.Logger.Info("gRPC server listening", zap.String("addr", lis.Addr().String()))
	if err := s.GRPC.Serve(lis); err != nil {
		return fmt.Errorf("gRPC server stopped: %w", err)
	}
	return nil
}

// StartGRPCServer listens on port and serves the health service.
func StartGRPCServer(ctx context.Context, port string, db Pinger, log *zap.Logger) error {
	lis, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", port, err)
	}
	return NewServer(db, log).Serve(ctx, lis)
}
