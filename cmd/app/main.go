package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/airport/api"
	"github.com/Domenick1991/airport/config"
	"github.com/Domenick1991/airport/internal/auth"
	"github.com/Domenick1991/airport/internal/bootstrap"
	"github.com/Domenick1991/airport/internal/cache"
	"github.com/Domenick1991/airport/internal/kafka"
	"github.com/Domenick1991/airport/internal/media"
	"github.com/Domenick1991/airport/internal/repository"
	"github.com/Domenick1991/airport/internal/service/booking"
	"github.com/Domenick1991/airport/internal/service/catalog"
	"github.com/Domenick1991/airport/internal/service/flights"
	"github.com/Domenick1991/airport/internal/weather"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.Auth.JWTSecret == "" {
		log.Fatalf("auth.jwt_secret (or AUTH_JWT_SECRET) is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	if err := repository.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}

	redisCache := cache.NewRedisCache(cfg.Redis, cfg.Booking.FlightsCacheTTLDuration(), cfg.Weather.CacheTTL())
	defer redisCache.Close()
	if err := redisCache.Ping(ctx); err != nil {
		log.Printf("WARNING: redis unavailable, caching disabled until it recovers: %v", err)
	}

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()
	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	if err := producer.CheckConnection(checkCtx); err != nil {
		log.Printf("WARNING: kafka unavailable, order events will not be delivered: %v", err)
	}
	cancel()

	flightRepo := repository.NewFlightRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)

	flightService := flights.NewFlightService(flightRepo, redisCache)
	bookingService := booking.NewBookingService(
		orderRepo,
		orderRepo,
		flightRepo,
		booking.NewSeatValidator(cfg.Booking.Cutoff()),
		booking.WithProducer(producer, cfg.Kafka.OrdersTopic, cfg.Kafka.NotificationsTopic),
		booking.WithTransactionTimeout(cfg.Booking.TransactionTimeout()),
	)
	catalogService := catalog.NewCatalogService(catalog.Repositories{
		Airports:  repository.NewAirportRepository(pool),
		Airlines:  repository.NewAirlineRepository(pool),
		Airplanes: repository.NewAirplaneRepository(pool),
		Crew:      repository.NewCrewRepository(pool),
		Routes:    repository.NewRouteRepository(pool),
	}, weather.NewClient(cfg.Weather, redisCache))

	tokens := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	authService := auth.NewService(repository.NewUserRepository(pool), tokens)

	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(cfg.HTTP, tokens, api.Handlers{
		Auth:    api.NewAuthHandler(authService),
		Catalog: api.NewCatalogHandler(catalogService, media.NewStore(cfg.HTTP.MediaDir)),
		Flights: api.NewFlightHandler(flightService, cfg.Pagination),
		Orders:  api.NewOrderHandler(bookingService, cfg.Pagination),
	})

	err = bootstrap.Run(ctx, cfg, bootstrap.Deps{
		Router:  router,
		Tokens:  tokens,
		Flights: flightService,
		Orders:  bookingService,
	})
	if err != nil {
		log.Fatalf("server error: %v", err)
	}
}
