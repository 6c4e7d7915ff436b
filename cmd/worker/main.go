package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/airport/config"
	"github.com/Domenick1991/airport/internal/cache"
	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/email"
	"github.com/Domenick1991/airport/internal/kafka"
	"github.com/Domenick1991/airport/internal/repository"
	"github.com/Domenick1991/airport/internal/weather"
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, cfg.Booking.FlightsCacheTTLDuration(), cfg.Weather.CacheTTL())
	defer redisCache.Close()

	weatherClient := weather.NewClient(cfg.Weather, redisCache)
	airports := repository.NewAirportRepository(pool)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	emailSender := email.NewSender()

	go func() {
		if err := consumer.Consume(ctx, kafka.OrderEventHandler(emailSender.Send)); err != nil {
			log.Printf("consumer stopped: %v", err)
			stop()
		}
	}()

	refreshWeather(ctx, airports, weatherClient)

	ticker := time.NewTicker(time.Duration(cfg.Worker.WeatherRefreshMinutes) * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			refreshWeather(ctx, airports, weatherClient)
		case <-ctx.Done():
			log.Printf("worker shutting down")
			return
		}
	}
}

type airportLister interface {
	List(ctx context.Context) ([]domain.Airport, error)
}

func refreshWeather(ctx context.Context, airports airportLister, client *weather.Client) {
	list, err := airports.List(ctx)
	if err != nil {
		log.Printf("refresh weather: list airports: %v", err)
		return
	}
	seen := make(map[string]bool, len(list))
	cities := make([]string, 0, len(list))
	for _, a := range list {
		if !seen[a.ClosestBigCity] {
			seen[a.ClosestBigCity] = true
			cities = append(cities, a.ClosestBigCity)
		}
	}
	n := client.Refresh(ctx, cities)
	log.Printf("weather refreshed: cities=%d ok=%d", len(cities), n)
}
