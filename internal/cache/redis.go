package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/Domenick1991/airport/config"
	"github.com/Domenick1991/airport/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client     *redis.Client
	flightsTTL time.Duration
	weatherTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, flightsTTL, weatherTTL time.Duration) *RedisCache {
	return NewRedisCacheWithClient(
		redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		flightsTTL,
		weatherTTL,
	)
}

func NewRedisCacheWithClient(client *redis.Client, flightsTTL, weatherTTL time.Duration) *RedisCache {
	return &RedisCache{client: client, flightsTTL: flightsTTL, weatherTTL: weatherTTL}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Flight list pages live in one hash so a single DEL drops them all.
func (c *RedisCache) GetFlightPage(ctx context.Context, key string) (*domain.Page[domain.Flight], error) {
	data, err := c.client.HGet(ctx, flightsKey(), key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var page domain.Page[domain.Flight]
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *RedisCache) SetFlightPage(ctx context.Context, key string, page domain.Page[domain.Flight]) error {
	payload, err := json.Marshal(page)
	if err != nil {
		return err
	}
	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, flightsKey(), key, payload)
	pipe.Expire(ctx, flightsKey(), c.flightsTTL)
	_, err = pipe.Exec(ctx)
	return err
}

func (c *RedisCache) InvalidateFlights(ctx context.Context) error {
	return c.client.Del(ctx, flightsKey()).Err()
}

func (c *RedisCache) GetWeather(ctx context.Context, city string) (string, bool, error) {
	value, err := c.client.Get(ctx, weatherKey(city)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

func (c *RedisCache) SetWeather(ctx context.Context, city, report string) error {
	return c.client.Set(ctx, weatherKey(city), report, c.weatherTTL).Err()
}

func flightsKey() string {
	return "cache:flights"
}

func weatherKey(city string) string {
	return "cache:weather:" + strings.ToLower(strings.TrimSpace(city))
}
