// Package main is the entry point for the storefront service.
//
// @title           Storefront Service API
// @version         1.0.0
// @description     Storefront backend: discount pricing, filtered product listings and checkout
// @description     on top of a remote catalog API.
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/guttosm/storefront-service
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
// @description                 Storefront API key. Required when AUTH_ENABLED is true.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 "Bearer <token>" signed with JWT_SECRET_KEY. Required for /api/admin.
//
// @tag.name        Pricing
// @tag.description Discount calculator
//
// @tag.name        Listing
// @tag.description Price-filtered product grid with load more
//
// @tag.name        Products
// @tag.description Catalog lookups
//
// @tag.name        Catalog
// @tag.description Categories, tags and site settings
//
// @tag.name        Orders
// @tag.description Checkout
//
// @tag.name        Admin
// @tag.description Order administration, log queries and live price editors
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"github.com/rs/zerolog/log"

	"github.com/guttosm/storefront-service/config"
	_ "github.com/guttosm/storefront-service/docs"
	"github.com/guttosm/storefront-service/internal/app"
)

func main() {
	cfg := config.Load()

	application, err := app.InitializeApp(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize application")
	}

	server := app.NewServer(application.Router, cfg.Server.Port)
	server.OnShutdown(application.Close)

	if err := server.Run(); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
