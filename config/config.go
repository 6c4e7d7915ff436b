package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	GRPC       GRPCConfig       `yaml:"grpc"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	Kafka      KafkaConfig      `yaml:"kafka"`
	Booking    BookingConfig    `yaml:"booking"`
	Pagination PaginationConfig `yaml:"pagination"`
	Auth       AuthConfig       `yaml:"auth"`
	Weather    WeatherConfig    `yaml:"weather"`
	Worker     WorkerConfig     `yaml:"worker"`
}

type HTTPConfig struct {
	Address     string   `yaml:"address"`
	SwaggerDir  string   `yaml:"swagger_dir"`
	MediaDir    string   `yaml:"media_dir"`
	CORSOrigins []string `yaml:"cors_origins"`
}

type GRPCConfig struct {
	Address string `yaml:"address"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	OrdersTopic        string   `yaml:"orders_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

type BookingConfig struct {
	CutoffMinutes             int `yaml:"cutoff_minutes"`
	TransactionTimeoutSeconds int `yaml:"transaction_timeout_seconds"`
	FlightsCacheTTL           int `yaml:"flights_cache_ttl_seconds"`
}

func (b BookingConfig) Cutoff() time.Duration {
	return time.Duration(b.CutoffMinutes) * time.Minute
}

func (b BookingConfig) TransactionTimeout() time.Duration {
	return time.Duration(b.TransactionTimeoutSeconds) * time.Second
}

func (b BookingConfig) FlightsCacheTTLDuration() time.Duration {
	return time.Duration(b.FlightsCacheTTL) * time.Second
}

type PaginationConfig struct {
	PageSize    int `yaml:"page_size"`
	MaxPageSize int `yaml:"max_page_size"`
}

type AuthConfig struct {
	JWTSecret       string `yaml:"jwt_secret"`
	TokenTTLMinutes int    `yaml:"token_ttl_minutes"`
}

func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLMinutes) * time.Minute
}

type WeatherConfig struct {
	URL             string `yaml:"url"`
	APIKey          string `yaml:"api_key"`
	TimeoutSeconds  int    `yaml:"timeout_seconds"`
	CacheTTLSeconds int    `yaml:"cache_ttl_seconds"`
}

func (w WeatherConfig) Timeout() time.Duration {
	return time.Duration(w.TimeoutSeconds) * time.Second
}

func (w WeatherConfig) CacheTTL() time.Duration {
	return time.Duration(w.CacheTTLSeconds) * time.Second
}

type WorkerConfig struct {
	WeatherRefreshMinutes int `yaml:"weather_refresh_minutes"`
}

// LoadConfig reads the yaml file at path, then lets a .env file and the
// process environment override secrets.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	cfg.applyEnv()
	cfg.applyDefaults()

	return &cfg, nil
}

func (c *Config) applyEnv() {
	overrides := map[string]*string{
		"DATABASE_PASSWORD": &c.Database.Password,
		"REDIS_PASSWORD":    &c.Redis.Password,
		"AUTH_JWT_SECRET":   &c.Auth.JWTSecret,
		"WEATHER_API_KEY":   &c.Weather.APIKey,
	}
	for key, dst := range overrides {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
}

func (c *Config) applyDefaults() {
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":8080"
	}
	if c.HTTP.MediaDir == "" {
		c.HTTP.MediaDir = "media"
	}
	if c.GRPC.Address == "" {
		c.GRPC.Address = ":9090"
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Booking.CutoffMinutes == 0 {
		c.Booking.CutoffMinutes = 120
	}
	if c.Booking.TransactionTimeoutSeconds == 0 {
		c.Booking.TransactionTimeoutSeconds = 10
	}
	if c.Booking.FlightsCacheTTL == 0 {
		c.Booking.FlightsCacheTTL = 60
	}
	if c.Pagination.PageSize == 0 {
		c.Pagination.PageSize = 5
	}
	if c.Pagination.MaxPageSize == 0 {
		c.Pagination.MaxPageSize = 100
	}
	if c.Auth.TokenTTLMinutes == 0 {
		c.Auth.TokenTTLMinutes = 24 * 60
	}
	if c.Weather.URL == "" {
		c.Weather.URL = "http://api.weatherapi.com/v1/current.json"
	}
	if c.Weather.TimeoutSeconds == 0 {
		c.Weather.TimeoutSeconds = 5
	}
	if c.Weather.CacheTTLSeconds == 0 {
		c.Weather.CacheTTLSeconds = 600
	}
	if c.Worker.WeatherRefreshMinutes == 0 {
		c.Worker.WeatherRefreshMinutes = 15
	}
}
