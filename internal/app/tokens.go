package app

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/storefront-service/config"
	"github.com/guttosm/storefront-service/internal/service"
)

// InitializeTokens builds the bearer token verifier for the admin API.
// Without a secret the admin API stays unmounted and nil is returned.
func InitializeTokens(cfg config.AuthConfig) (service.TokenService, error) {
	if cfg.JWTSecretKey == "" {
		log.Warn().Msg("JWT_SECRET_KEY not set - admin API disabled")
		return nil, nil
	}

	tokens, err := service.NewTokenService(cfg.JWTSecretKey)
	if err != nil {
		return nil, fmt.Errorf("initialize token service: %w", err)
	}
	return tokens, nil
}
