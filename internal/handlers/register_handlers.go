package handlers

import (
	"context"

	"github.com/SscSPs/ledger_core/cmd/docs"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/middleware"
	"github.com/SscSPs/ledger_core/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RouteDeps are the collaborators the routes need besides the services.
type RouteDeps struct {
	DB     Pinger
	Locker portssvc.Locker   // serializes revaluation runs; runs unguarded when nil
	Extra  []gin.HandlerFunc // applied to /api/v1 after authentication
}

// RegisterRoutes sets up all application routes.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps RouteDeps,
) {
	r.GET("/health", getHealth(deps.DB))

	setupAPIV1Routes(r, cfg, services, deps)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	deps RouteDeps,
) {
	chain := append([]gin.HandlerFunc{middleware.AuthMiddleware(cfg.JWTSecret)}, deps.Extra...)
	v1 := r.Group("/api/v1", chain...)

	locker := deps.Locker
	if locker == nil {
		locker = unguarded{}
	}

	registerLedgerRoutes(v1, service.Ledger)
	registerPeriodRoutes(v1.Group("/ledgers"), service.Period)
	registerJournalRoutes(v1, service.Journal, service.Revaluation, locker)
	registerDimensionRoutes(v1, service.Dimension, service.DimensionPolicy)
	registerControlAccountRoutes(v1, service.ControlAccount)
	registerCurrencyRoutes(v1, service.Currency)
	registerExchangeRateRoutes(v1, service.ExchangeRate)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

type unguarded struct{}

func (unguarded) WithLock(ctx context.Context, _ string, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
