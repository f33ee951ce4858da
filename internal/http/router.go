package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/storefront-service/internal/metrics"
	"github.com/guttosm/storefront-service/internal/middleware"
	"github.com/guttosm/storefront-service/internal/service"
)

// RouterConfig holds router configuration options.
type RouterConfig struct {
	RateLimit      int
	RateWindow     time.Duration
	RequestTimeout time.Duration
	CORSOrigins    []string

	// EnableAuth guards the storefront group with API keys when any are configured.
	EnableAuth bool
	APIKeys    middleware.APIKeyConfig
	// TokenService enables the admin group. AdminRole is the role it requires.
	TokenService service.TokenService
	AdminRole    string

	EnableIdempotency bool
	Idempotency       middleware.IdempotencyConfig

	SwaggerUser    string
	SwaggerPass    string
	LoggingService service.LoggingService
}

// DefaultRouterConfig returns the default router configuration.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RateLimit:         100,
		RateWindow:        time.Minute,
		RequestTimeout:    middleware.DefaultRequestTimeout,
		EnableIdempotency: true,
		Idempotency:       middleware.DefaultIdempotencyConfig(),
		AdminRole:         "admin",
	}
}

// NewRouter creates and configures the Gin router for the storefront service.
func NewRouter(handler *Handler, healthHandler *HealthHandler, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	configureGlobalMiddleware(router, &cfg)
	registerInfrastructureRoutes(router, healthHandler, &cfg)

	if handler == nil {
		return router
	}

	api := router.Group("/api")
	registerAPIRoutes(api, handler, &cfg)

	return router
}

// configureGlobalMiddleware sets up middleware applied to all routes.
func configureGlobalMiddleware(router *gin.Engine, cfg *RouterConfig) {
	router.Use(
		middleware.CORS(cfg.CORSOrigins),
		middleware.RequestID(),
		middleware.Recovery(),
		metrics.PrometheusMiddleware(),
		middleware.Compression(),
		middleware.RequestLogger(cfg.LoggingService),
		middleware.ErrorHandler(),
	)

	if cfg.RequestTimeout > 0 {
		router.Use(middleware.Timeout(cfg.RequestTimeout))
	}

	if cfg.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		router.Use(limiter.RateLimit())
	}
}

// registerInfrastructureRoutes registers health, metrics, and documentation routes.
func registerInfrastructureRoutes(router *gin.Engine, healthHandler *HealthHandler, cfg *RouterConfig) {
	if healthHandler != nil {
		healthHandler.Register(router)
	}
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.SwaggerUser != "" && cfg.SwaggerPass != "" {
		authorized := router.Group("/swagger", gin.BasicAuth(gin.Accounts{
			cfg.SwaggerUser: cfg.SwaggerPass,
		}))
		authorized.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	} else {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}

// registerAPIRoutes mounts the storefront group and, when a token service is
// configured, the admin group. Admin routes authenticate with bearer tokens
// only, so the API key guard sits on the storefront group alone.
func registerAPIRoutes(api *gin.RouterGroup, handler *Handler, cfg *RouterConfig) {
	var idempotency gin.HandlerFunc
	if cfg.EnableIdempotency && cfg.Idempotency.Cache != nil {
		idempotency = middleware.Idempotency(cfg.Idempotency)
	}

	if cfg.TokenService != nil {
		NewAdminRoutes(handler, cfg.TokenService, cfg.AdminRole).RegisterRoutes(api)
	}

	storefront := api.Group("")
	if cfg.EnableAuth {
		storefront.Use(middleware.APIKeyAuth(cfg.APIKeys))
	}
	NewStorefrontRoutes(handler, idempotency).RegisterRoutes(storefront)
}
