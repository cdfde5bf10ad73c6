// Package health exposes the standard gRPC health service for the storefront so
// orchestrators can check storage reachability without going through HTTP.
package health

import (
	"context"
	"net"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const Service = "storefront"

// Checker reports whether the backing storage is usable.
type Checker func(ctx context.Context) error

type Server struct {
	grpc   *grpc.Server
	status *grpchealth.Server
	check  Checker
	every  time.Duration
	logger *zap.Logger
}

func New(check Checker, every time.Duration, logger *zap.Logger) *Server {
	s := &Server{
		grpc:   grpc.NewServer(),
		status: grpchealth.NewServer(),
		check:  check,
		every:  every,
		logger: logger,
	}
	healthpb.RegisterHealthServer(s.grpc, s.status)
	s.status.SetServingStatus(Service, healthpb.HealthCheckResponse_NOT_SERVING)
	return s
}

// Refresh runs the checker once and publishes the outcome.
func (s *Server) Refresh(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	st := healthpb.HealthCheckResponse_SERVING
	if err := s.check(ctx); err != nil {
		s.logger.Warn("Storage check failed", zap.Error(err))
		st = healthpb.HealthCheckResponse_NOT_SERVING
	}
	s.status.SetServingStatus(Service, st)
	s.status.SetServingStatus("", st)
}

// Serve blocks until ctx is done or the listener fails.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	s.Refresh(ctx)
	go func() {
		t := time.NewTicker(s.every)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				s.status.Shutdown()
				s.grpc.GracefulStop()
				return
			case <-t.C:
				s.Refresh(ctx)
			}
		}
	}()
	return s.grpc.Serve(l)
}
