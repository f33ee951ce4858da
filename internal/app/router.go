package app

import (
	"github.com/guttosm/storefront-service/config"
	"github.com/guttosm/storefront-service/internal/http"
	"github.com/guttosm/storefront-service/internal/middleware"
	"github.com/guttosm/storefront-service/internal/service"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	Handler       *http.Handler
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
}

// InitializeRouter builds the HTTP handler, health checks and router
// configuration. db and tokens may be nil.
func InitializeRouter(
	cfg config.Config,
	services *ServiceComponents,
	catalog *CatalogComponents,
	db *DatabaseComponents,
	tokens service.TokenService,
) *RouterComponents {
	var loggingService service.LoggingService
	if db != nil {
		loggingService = db.LoggingService
	}

	handlerOpts := []http.HandlerOption{
		http.WithPriceEditors(services.Editors),
		http.WithHighlightDuration(cfg.Pricing.HighlightDuration),
	}
	if loggingService != nil {
		handlerOpts = append(handlerOpts, http.WithLoggingService(loggingService))
	}
	handler := http.NewHandler(services.Pricing, services.Storefront, services.Checkout, handlerOpts...)

	healthHandler := http.NewHealthHandler()
	healthHandler.RegisterCircuitBreaker("catalog_api", catalog.CircuitBreaker)
	if db != nil {
		healthHandler.RegisterChecker("mongodb", db.DB)
		healthHandler.RegisterOptionalCircuitBreaker("mongodb_logs", db.LogsCircuitBreaker)
	}

	routerCfg := http.DefaultRouterConfig()
	routerCfg.RateLimit = cfg.Server.RateLimit
	routerCfg.RateWindow = cfg.Server.RateWindow
	routerCfg.RequestTimeout = cfg.Server.RequestTimeout
	routerCfg.CORSOrigins = cfg.Server.CORSOrigins
	routerCfg.EnableAuth = cfg.Auth.Enabled
	routerCfg.APIKeys = middleware.APIKeyConfig{Keys: cfg.Auth.APIKeys, Hashes: cfg.Auth.APIKeyHashes}
	routerCfg.TokenService = tokens
	if cfg.Auth.AdminRole != "" {
		routerCfg.AdminRole = cfg.Auth.AdminRole
	}
	routerCfg.SwaggerUser = cfg.Server.SwaggerUser
	routerCfg.SwaggerPass = cfg.Server.SwaggerPass
	routerCfg.LoggingService = loggingService

	return &RouterComponents{
		Handler:       handler,
		HealthHandler: healthHandler,
		Config:        routerCfg,
	}
}
