package grpchealth

import (
	"errors"
	"fmt"
	"net"
	"time"

	"fulfillment/pkg/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
)

const (
	KeepaliveTime    = 5 * time.Minute
	KeepaliveTimeout = 3 * time.Second

	// ServiceName имя, под которым публикуется статус HTTP api.
	ServiceName = "fulfillment"
)

// Server grpc.health.v1 для проб оркестратора.
type Server struct {
	log    logger.Logger
	srv    *grpc.Server
	health *health.Server
}

func New(log logger.Logger) *Server {
	srv := grpc.NewServer(
		grpc.KeepaliveParams(keepalive.ServerParameters{
			Time:    KeepaliveTime,
			Timeout: KeepaliveTimeout,
		}),
	)

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	return &Server{
		log:    log.With(logger.NewField("component", "grpc-health")),
		srv:    srv,
		health: healthServer,
	}
}

func (s *Server) ListenAndServe(port string) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%s", port))
	if err != nil {
		return fmt.Errorf("listen grpc health: %w", err)
	}
	return s.Serve(lis)
}

func (s *Server) Serve(lis net.Listener) error {
	s.log.Info("grpc health server starting", logger.NewField("addr", lis.Addr().String()))

	if err := s.srv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("serve grpc health: %w", err)
	}
	return nil
}

// SetServing переключает статус без остановки сервера, например на время drain.
func (s *Server) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_SERVING
	if !serving {
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	s.health.SetServingStatus(ServiceName, status)
}

func (s *Server) Shutdown() {
	s.health.Shutdown()
	s.srv.GracefulStop()
	s.log.Info("grpc health server stopped")
}
