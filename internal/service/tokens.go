package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/guttosm/storefront-service/internal/domain/dto"
)

// ErrInvalidToken covers malformed, expired and wrongly signed tokens.
var ErrInvalidToken = errors.New("invalid token")

const tokenIssuer = "storefront-service"

// TokenService issues and validates HS256 bearer tokens for admin routes.
type TokenService interface {
	Issue(subject string, roles []string, ttl time.Duration) (string, error)
	Validate(tokenString string) (*dto.Claims, error)
}

// TokenServiceImpl signs tokens with a shared secret. Tokens are not stored.
type TokenServiceImpl struct {
	secret []byte
	now    func() time.Time
}

type roleClaims struct {
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// NewTokenService creates a token service. An empty secret is rejected.
func NewTokenService(secret string) (*TokenServiceImpl, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	return &TokenServiceImpl{secret: []byte(secret), now: time.Now}, nil
}

// Issue signs a token for subject. A non-positive ttl issues a token without expiry.
func (s *TokenServiceImpl) Issue(subject string, roles []string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := roleClaims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.NewString(),
			Issuer:   tokenIssuer,
			Subject:  subject,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate parses tokenString and returns its claims.
func (s *TokenServiceImpl) Validate(tokenString string) (*dto.Claims, error) {
	var claims roleClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return &dto.Claims{Subject: claims.Subject, Roles: claims.Roles}, nil
}
