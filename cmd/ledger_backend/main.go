package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	cacheredis "github.com/SscSPs/ledger_core/internal/adapters/cache/redis"
	lockredis "github.com/SscSPs/ledger_core/internal/adapters/lock/redis"
	"github.com/SscSPs/ledger_core/internal/adapters/messaging/rabbitmq"
	otelsink "github.com/SscSPs/ledger_core/internal/adapters/metrics/otel"
	"github.com/SscSPs/ledger_core/internal/core/services"
	"github.com/SscSPs/ledger_core/internal/handlers"
	"github.com/SscSPs/ledger_core/internal/middleware"
	"github.com/SscSPs/ledger_core/internal/platform/config"
	"github.com/SscSPs/ledger_core/internal/repositories/database/pgsql"
	"github.com/SscSPs/ledger_core/internal/utils"
	"github.com/SscSPs/ledger_core/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	goredislib "github.com/redis/go-redis/v9"
)

const (
	serviceName       = "ledger_core"
	serviceVersion    = "1.0.0"
	confirmTimeout    = 5 * time.Second
	shutdownGraceTime = 10 * time.Second
)

// @title Ledger Core API
// @version 1.0
// @description General-ledger core: ledgers, periods, journal posting, FX revaluation, dimensions and control accounts.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("Server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return err
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	logger.Info("Running database migrations...", slog.String("path", cfg.MigrationsPath))
	applied, err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath)
	if err != nil {
		return err
	}
	if applied {
		logger.Info("Database migrations applied successfully.")
	} else {
		logger.Info("No new migrations to apply.")
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	var opts []services.ContainerOption
	routeDeps := handlers.RouteDeps{DB: dbPool}

	if cfg.RedisURL != "" {
		redisOpts, err := goredislib.ParseURL(cfg.RedisURL)
		if err != nil {
			return err
		}
		rdb := goredislib.NewClient(redisOpts)
		defer func() {
			if cerr := rdb.Close(); cerr != nil {
				logger.Warn("Error closing redis client", slog.String("error", cerr.Error()))
			}
		}()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("Redis is not reachable yet; caches will fall through to the database", slog.String("error", err.Error()))
		}

		repos.PolicyRepo = cacheredis.NewPolicyRepository(repos.PolicyRepo, rdb, cfg.CacheTTL)
		repos.ControlAccountRepo = cacheredis.NewControlAccountRepository(repos.ControlAccountRepo, rdb, cfg.CacheTTL)
		routeDeps.Locker = lockredis.NewLocker(rdb, cfg.RevaluationLockTTL)
		logger.Info("Redis caching and revaluation locking enabled.", slog.Duration("cache_ttl", cfg.CacheTTL))
	}

	if cfg.OtelCollectorEndpoint != "" {
		provider, err := otelsink.NewMeterProvider(ctx, otelsink.ProviderConfig{
			CollectorEndpoint: cfg.OtelCollectorEndpoint,
			ServiceName:       serviceName,
			ServiceVersion:    serviceVersion,
			Environment:       environment(cfg),
			Interval:          cfg.OtelExportInterval,
		})
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGraceTime)
			defer cancel()
			if err := provider.Shutdown(shutdownCtx); err != nil {
				logger.Warn("Error shutting down meter provider", slog.String("error", err.Error()))
			}
		}()
		sink, err := otelsink.NewSink(provider)
		if err != nil {
			return err
		}
		opts = append(opts, services.WithMetricsSink(sink))
		logger.Info("OpenTelemetry metrics enabled.", slog.String("endpoint", cfg.OtelCollectorEndpoint))
	}

	container := services.NewServiceContainer(cfg, repos, opts...)

	if cfg.RabbitMQURL != "" {
		publisher, conn, err := rabbitmq.Dial(cfg.RabbitMQURL, cfg.RabbitMQExchange, confirmTimeout)
		if err != nil {
			return err
		}
		defer func() {
			_ = publisher.Close()
			_ = conn.Close()
		}()

		relay := rabbitmq.NewRelay(repos.UnitOfWork, repos.OutboxRepo, publisher, rabbitmq.RelayConfig{
			PollInterval: cfg.OutboxPollInterval,
			BatchSize:    cfg.OutboxBatchSize,
			MaxAttempts:  cfg.OutboxMaxAttempts,
			Retention:    cfg.OutboxRetention,
		}, logger.With(slog.String("component", "outbox_relay")))
		go func() {
			if err := relay.Run(ctx); err != nil {
				logger.Error("Outbox relay stopped unexpectedly", slog.String("error", err.Error()))
			}
		}()
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := handlers.RegisterValidators(); err != nil {
		return err
	}

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		return err
	}

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogHost, logger)
	defer posthogClient.Close()

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	if err := r.SetTrustedProxies(nil); err != nil {
		return err
	}

	routeDeps.Extra = []gin.HandlerFunc{
		middleware.RateLimit(rateLimiter),
		middleware.PosthogMiddleware(posthogClient),
	}
	handlers.RegisterRoutes(r, cfg, container, routeDeps)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGraceTime)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func environment(cfg *config.Config) string {
	if cfg.IsProduction {
		return "production"
	}
	return "development"
}
