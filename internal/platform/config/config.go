package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	JWTSecret      string
	MigrationsPath string
	RateLimit      string // ulule/limiter formatted rate, e.g. "100-M"

	CORSAllowedOrigins []string

	// Redis backs the policy/control-account caches and the revaluation lock.
	RedisURL           string
	CacheTTL           time.Duration
	RevaluationLockTTL time.Duration

	// Outbox relay
	RabbitMQURL        string
	RabbitMQExchange   string
	OutboxPollInterval time.Duration
	OutboxBatchSize    int
	OutboxMaxAttempts  int
	OutboxRetention    time.Duration

	// Exchange-rate store circuit breaker
	RateBreakerMaxFailures uint32
	RateBreakerTimeout     time.Duration

	PosthogAPIKey string
	PosthogHost   string

	// OTLP gRPC collector for the ledger counters; metrics are discarded when empty.
	OtelCollectorEndpoint string
	OtelExportInterval    time.Duration
}

// ErrMissingConfig is returned when a required key has no value.
var ErrMissingConfig = errors.New("missing required configuration")

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", true)
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("CACHE_TTL", "5m")
	viper.SetDefault("REVALUATION_LOCK_TTL", "2m")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("RABBITMQ_EXCHANGE", "finance.events")
	viper.SetDefault("OUTBOX_POLL_INTERVAL", "2s")
	viper.SetDefault("OUTBOX_BATCH_SIZE", 100)
	viper.SetDefault("OUTBOX_MAX_ATTEMPTS", 10)
	viper.SetDefault("OUTBOX_RETENTION", "168h")
	viper.SetDefault("RATE_BREAKER_MAX_FAILURES", 5)
	viper.SetDefault("RATE_BREAKER_TIMEOUT", "30s")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_HOST", "https://eu.i.posthog.com")
	viper.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	viper.SetDefault("OTEL_METRIC_EXPORT_INTERVAL", "60s")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:            viper.GetString("DATABASE_URL"),
		Port:                   viper.GetString("PORT"),
		IsProduction:           viper.GetBool("IS_PRODUCTION"),
		EnableDBCheck:          viper.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:              viper.GetString("JWT_SECRET"),
		MigrationsPath:         viper.GetString("MIGRATIONS_PATH"),
		RateLimit:              viper.GetString("RATE_LIMIT"),
		CORSAllowedOrigins:     splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		RedisURL:               viper.GetString("REDIS_URL"),
		CacheTTL:               durationOr("CACHE_TTL", 5*time.Minute),
		RevaluationLockTTL:     durationOr("REVALUATION_LOCK_TTL", 2*time.Minute),
		RabbitMQURL:            viper.GetString("RABBITMQ_URL"),
		RabbitMQExchange:       viper.GetString("RABBITMQ_EXCHANGE"),
		OutboxPollInterval:     durationOr("OUTBOX_POLL_INTERVAL", 2*time.Second),
		OutboxBatchSize:        viper.GetInt("OUTBOX_BATCH_SIZE"),
		OutboxMaxAttempts:      viper.GetInt("OUTBOX_MAX_ATTEMPTS"),
		OutboxRetention:        durationOr("OUTBOX_RETENTION", 7*24*time.Hour),
		RateBreakerMaxFailures: viper.GetUint32("RATE_BREAKER_MAX_FAILURES"),
		RateBreakerTimeout:     durationOr("RATE_BREAKER_TIMEOUT", 30*time.Second),
		PosthogAPIKey:          viper.GetString("POSTHOG_API_KEY"),
		PosthogHost:            viper.GetString("POSTHOG_HOST"),
		OtelCollectorEndpoint:  viper.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OtelExportInterval:     durationOr("OTEL_METRIC_EXPORT_INTERVAL", time.Minute),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.Join(ErrMissingConfig, errors.New("DATABASE_URL is not set"))
	}
	if cfg.JWTSecret == "" {
		return nil, errors.Join(ErrMissingConfig, errors.New("JWT_SECRET is not set"))
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set. Caching and revaluation locking are disabled.")
	}
	if cfg.RabbitMQURL == "" {
		log.Println("Warning: RABBITMQ_URL not set. Outbox events will accumulate until a relay is configured.")
	}

	return cfg, nil
}

// durationOr parses key as a duration, falling back when it is empty or malformed.
func durationOr(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		}
		return fallback
	}
	return d
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
