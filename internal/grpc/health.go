package grpc

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health service name reported for the notes app
const ServiceName = "notekeeper"

// Pinger is anything whose liveness decides whether the app is serving
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthServer reports notes-app readiness over grpc.health.v1
type HealthServer struct {
	health  *health.Server
	pingers map[string]Pinger
	logger  *slog.Logger
}

// NewHealthServer creates a health server that watches the named dependencies
func NewHealthServer(pingers map[string]Pinger, logger *slog.Logger) *HealthServer {
	return &HealthServer{
		health:  health.NewServer(),
		pingers: pingers,
		logger:  logger,
	}
}

// NewServer creates a traced gRPC server with the health service registered
func (h *HealthServer) NewServer() *grpc.Server {
	server := grpc.NewServer(grpc.StatsHandler(otelgrpc.NewServerHandler()))
	grpc_health_v1.RegisterHealthServer(server, h.health)
	return server
}

// Check pings every dependency once and publishes the result for both the
// overall ("") and the named service
func (h *HealthServer) Check(ctx context.Context, timeout time.Duration) grpc_health_v1.HealthCheckResponse_ServingStatus {
	status := grpc_health_v1.HealthCheckResponse_SERVING

	for name, pinger := range h.pingers {
		pingCtx, cancel := context.WithTimeout(ctx, timeout)
		err := pinger.PingContext(pingCtx)
		cancel()
		if err != nil {
			h.logger.Warn("⚠️ [Health] Dependency unavailable", "dependency", name, "error", err)
			status = grpc_health_v1.HealthCheckResponse_NOT_SERVING
		}
	}

	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(ServiceName, status)
	return status
}

// Monitor runs Check every interval until ctx ends, then marks the service
// as shutting down
func (h *HealthServer) Monitor(ctx context.Context, interval time.Duration) {
	h.Check(ctx, interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.health.Shutdown()
			return
		case <-ticker.C:
			h.Check(ctx, interval)
		}
	}
}
