package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/Domenick1991/airport/config"
	"github.com/Domenick1991/airport/internal/api/flights_service_api"
	"github.com/Domenick1991/airport/internal/api/interceptors"
	"github.com/Domenick1991/airport/internal/api/orders_service_api"
	"github.com/Domenick1991/airport/internal/auth"
	"github.com/Domenick1991/airport/internal/service/booking"
	"github.com/Domenick1991/airport/internal/service/flights"
	"github.com/gin-gonic/gin"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	httpSwagger "github.com/swaggo/http-swagger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const swaggerSpec = "airport.swagger.json"

type Deps struct {
	Router  *gin.Engine
	Tokens  *auth.Tokens
	Flights flights.FlightUseCase
	Orders  booking.BookingUseCase
}

type Servers struct {
	grpcServer *grpc.Server
	health     *health.Server
	httpServer *http.Server
	healthConn *grpc.ClientConn
}

// Run starts the gRPC and HTTP servers and blocks until ctx is canceled or a
// server fails.
func Run(ctx context.Context, cfg *config.Config, deps Deps) error {
	s, err := newServers(cfg, deps)
	if err != nil {
		return err
	}
	defer s.healthConn.Close()

	errCh := make(chan error, 2)

	lis, err := net.Listen("tcp", cfg.GRPC.Address)
	if err != nil {
		return fmt.Errorf("listen gRPC %s: %w", cfg.GRPC.Address, err)
	}
	go func() { errCh <- s.grpcServer.Serve(lis) }()
	log.Printf("gRPC server listening on %s", cfg.GRPC.Address)

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	log.Printf("HTTP server listening on %s", cfg.HTTP.Address)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Printf("shutting down servers")
		s.health.Shutdown()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		s.grpcServer.GracefulStop()
		return nil
	}
}

func newServers(cfg *config.Config, deps Deps) (*Servers, error) {
	grpcSrv, healthSrv := NewGRPCServer(cfg, deps)

	conn, err := grpc.NewClient(dialTarget(cfg.GRPC.Address), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dial gRPC health: %w", err)
	}
	MountOps(deps.Router, cfg.HTTP, conn)

	return &Servers{
		grpcServer: grpcSrv,
		health:     healthSrv,
		healthConn: conn,
		httpServer: &http.Server{
			Addr:              cfg.HTTP.Address,
			Handler:           deps.Router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// NewGRPCServer registers the orders, flights and health services.
func NewGRPCServer(cfg *config.Config, deps Deps) (*grpc.Server, *health.Server) {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(interceptors.Errors(), interceptors.Auth(deps.Tokens)))

	flights_service_api.RegisterFlightsServiceServer(srv, flights_service_api.NewServer(deps.Flights, cfg.Pagination))
	orders_service_api.RegisterOrdersServiceServer(srv, orders_service_api.NewServer(deps.Orders, cfg.Pagination))

	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(srv, healthSrv)
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthSrv.SetServingStatus(flights_service_api.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthSrv.SetServingStatus(orders_service_api.ServiceName, healthpb.HealthCheckResponse_SERVING)

	return srv, healthSrv
}

// MountOps adds /healthz (proxied to the gRPC health service), the swagger
// UI and the raw API documents to router.
func MountOps(router *gin.Engine, cfg config.HTTPConfig, conn grpc.ClientConnInterface) {
	gateway := runtime.NewServeMux(runtime.WithHealthzEndpoint(healthpb.NewHealthClient(conn)))
	router.GET("/healthz", gin.WrapH(gateway))

	if cfg.SwaggerDir != "" {
		router.Static("/docs", cfg.SwaggerDir)
		router.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/docs/"+swaggerSpec))))
	}
}

func dialTarget(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "localhost" + addr
	}
	return addr
}
