package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Port          int    `envconfig:"PORT" default:"4001"`
	JWTSecret     string `envconfig:"JWT_SECRET"`
	DatabaseURL   string `envconfig:"DATABASE_URL"`
	EncryptionKey string `envconfig:"ENCRYPTION_KEY"`
	CORSOrigins   string `envconfig:"CORS_ORIGINS" default:"http://localhost:3000,http://localhost:3001"`
	AdminEmail    string `envconfig:"ADMIN_EMAIL" default:"admin@yatra.in"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD" default:"admin123"`

	// GoogleClientID enables POST /api/auth/google when set.
	GoogleClientID string `envconfig:"GOOGLE_CLIENT_ID"`

	MonthlyPrice  float64 `envconfig:"MONTHLY_PRICE" default:"9.99"`
	YearlyPrice   float64 `envconfig:"YEARLY_PRICE" default:"99.99"`
	PricingConfig string  `envconfig:"PRICING_CONFIG"`

	KafkaBrokers      string `envconfig:"KAFKA_BROKERS"`
	KafkaBookingTopic string `envconfig:"KAFKA_BOOKING_TOPIC" default:"booking-events"`

	// RedisAddr enables the destination summary cache when set.
	RedisAddr           string        `envconfig:"REDIS_ADDR"`
	RedisPassword       string        `envconfig:"REDIS_PASSWORD"`
	RedisDB             int           `envconfig:"REDIS_DB" default:"0"`
	DestinationCacheTTL time.Duration `envconfig:"DESTINATION_CACHE_TTL" default:"5m"`

	MetricsUser string `envconfig:"METRICS_USER"`
	MetricsPass string `envconfig:"METRICS_PASS"`
}

// Load reads an optional .env file, then configuration from the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.EncryptionKey == "" {
		return fmt.Errorf("ENCRYPTION_KEY is required (must be exactly 32 bytes)")
	}
	if len(c.EncryptionKey) != 32 {
		return fmt.Errorf("ENCRYPTION_KEY must be exactly 32 bytes, got %d", len(c.EncryptionKey))
	}
	if c.DestinationCacheTTL <= 0 {
		return fmt.Errorf("DESTINATION_CACHE_TTL must be positive")
	}
	if c.MonthlyPrice < 0 || c.YearlyPrice < 0 {
		return fmt.Errorf("plan prices must not be negative")
	}
	return nil
}

// AllowedOrigins splits CORS_ORIGINS into trimmed, non-empty entries.
func (c *Config) AllowedOrigins() []string {
	return splitList(c.CORSOrigins)
}

// Brokers returns the configured Kafka brokers; empty disables event publishing.
func (c *Config) Brokers() []string {
	return splitList(c.KafkaBrokers)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
