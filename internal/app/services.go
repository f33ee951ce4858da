package app

import (
	"github.com/guttosm/storefront-service/config"
	"github.com/guttosm/storefront-service/internal/catalogapi"
	"github.com/guttosm/storefront-service/internal/listing"
	"github.com/guttosm/storefront-service/internal/pricing"
	"github.com/guttosm/storefront-service/internal/schedule"
	"github.com/guttosm/storefront-service/internal/service"
)

// ServiceComponents holds the business services.
type ServiceComponents struct {
	Pricing    *service.PricingServiceImpl
	Sessions   *service.SessionStore
	Storefront *service.StorefrontServiceImpl
	Checkout   *service.CheckoutServiceImpl
	Editors    *service.PriceEditorServiceImpl
}

// InitializeServices builds the pricing, listing, checkout and price editor services.
func InitializeServices(cfg config.Config, catalog catalogapi.API) *ServiceComponents {
	pricingOpts := []service.PricingOption{service.WithCurrencySymbol(cfg.Pricing.CurrencySymbol)}
	if cfg.Cache.Size > 0 {
		pricingOpts = append(pricingOpts, service.WithQuoteCache(cfg.Cache.Size, cfg.Cache.TTL, cfg.Cache.Shards))
	}
	pricingSvc := service.NewPricingService(pricingOpts...)

	sessions := service.NewSessionStore(cfg.Listing.MaxSessions, cfg.Listing.SessionTTL)

	storefront := service.NewStorefrontService(catalog, pricingSvc, sessions,
		service.WithPageSize(cfg.Listing.PageSize),
		service.WithFetchTimeout(cfg.Server.RequestTimeout),
		service.WithSessionOptions(
			listing.WithRevealBatch(cfg.Listing.RevealBatch),
			listing.WithRevealTiming(cfg.Listing.RevealDelay, cfg.Listing.RevealStagger),
		),
	)

	editors := service.NewPriceEditorService(cfg.Pricing.EditorCapacity, cfg.Pricing.EditorTTL, schedule.NewTimer(),
		pricing.WithCurrency(cfg.Pricing.CurrencySymbol),
		pricing.WithHighlightDuration(cfg.Pricing.HighlightDuration),
		pricing.WithClearOnInvalid(cfg.Pricing.ClearStaleOnInvalid),
	)

	return &ServiceComponents{
		Pricing:    pricingSvc,
		Sessions:   sessions,
		Storefront: storefront,
		Checkout:   service.NewCheckoutService(catalog, cfg.Checkout.BumpOfferPrice),
		Editors:    editors,
	}
}

// Stop releases the background janitors of the in-memory caches.
func (s *ServiceComponents) Stop() {
	s.Editors.Stop()
	s.Sessions.Stop()
	s.Pricing.Stop()
}
