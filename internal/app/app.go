// Package app wires the storefront service together.
package app

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/storefront-service/config"
	"github.com/guttosm/storefront-service/internal/http"
	"github.com/guttosm/storefront-service/internal/middleware"
)

// App is the assembled service: its router plus the resources that must be
// released on shutdown.
type App struct {
	Router *gin.Engine

	closers []func()
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func (a *App) onClose(fn func()) {
	a.closers = append(a.closers, fn)
}

// InitializeApp creates and wires all application dependencies.
func InitializeApp(cfg config.Config) (*App, error) {
	InitializeLogger()

	app := &App{}

	catalog, err := InitializeCatalog(cfg.Catalog)
	if err != nil {
		return nil, err
	}

	tokens, err := InitializeTokens(cfg.Auth)
	if err != nil {
		return nil, err
	}

	services := InitializeServices(cfg, catalog.API)
	app.onClose(services.Stop)

	db := InitializeDatabase(cfg.Database)
	if db != nil {
		middleware.InitAsyncLogger(db.LoggingService, middleware.DefaultAsyncLoggerConfig())
		app.onClose(db.Close)
		app.onClose(middleware.StopAsyncLogger)
	}

	components := InitializeRouter(cfg, services, catalog, db, tokens)
	app.Router = http.NewRouter(components.Handler, components.HealthHandler, components.Config)

	log.Info().
		Str("catalog", cfg.Catalog.BaseURL).
		Bool("mongodb", db != nil).
		Bool("admin_api", tokens != nil).
		Msg("Application initialized")

	return app, nil
}
