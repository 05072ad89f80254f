package utilities

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// NewHealthServer creates a gRPC server that only serves the standard health
// check service. The returned health server is used to flip the serving status
// on shutdown.
func NewHealthServer() (*grpc.Server, *health.Server) {
	grpcServer := grpc.NewServer()
	healthServer := RegisterHealthServer(grpcServer)

	return grpcServer, healthServer
}

// RegisterHealthServer registers the gRPC health check service.
func RegisterHealthServer(grpcServer *grpc.Server) *health.Server {
	healthServer := health.NewServer()
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)

	return healthServer
}
