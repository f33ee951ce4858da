package app

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/storefront-service/config"
	"github.com/guttosm/storefront-service/internal/catalogapi"
	"github.com/guttosm/storefront-service/internal/circuitbreaker"
	"github.com/guttosm/storefront-service/internal/metrics"
)

// CatalogComponents holds the remote catalog client and its breaker.
type CatalogComponents struct {
	API            catalogapi.API
	CircuitBreaker *circuitbreaker.CircuitBreaker
}

// InitializeCatalog builds the catalog API client behind a circuit breaker
// that only counts outages.
func InitializeCatalog(cfg config.CatalogConfig) (*CatalogComponents, error) {
	client, err := catalogapi.New(cfg.BaseURL, catalogapi.WithTimeout(cfg.Timeout))
	if err != nil {
		return nil, fmt.Errorf("initialize catalog client: %w", err)
	}

	cb := circuitbreaker.New(circuitbreaker.Config{
		Name:             "catalog-api",
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		IsFailure:        catalogapi.IsOutage,
		OnStateChange:    publishBreakerState,
	})
	metrics.SetCircuitBreakerState("catalog-api", int(circuitbreaker.StateClosed))

	log.Info().Str("base_url", cfg.BaseURL).Dur("timeout", cfg.Timeout).Msg("Catalog API client ready")

	return &CatalogComponents{
		API:            catalogapi.NewWithCircuitBreaker(client, cb),
		CircuitBreaker: cb,
	}, nil
}

func publishBreakerState(name string, _, to circuitbreaker.State) {
	metrics.SetCircuitBreakerState(name, int(to))
}
