package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/storefront-service/internal/domain/dto"
	"github.com/guttosm/storefront-service/internal/i18n"
	"github.com/guttosm/storefront-service/internal/service"
)

// JWTAuth requires a valid "Bearer" token and stores its claims and subject.
func JWTAuth(tokens service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortWithError(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, i18n.ErrKeyTokenRequired)
			return
		}

		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			abortWithError(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, i18n.ErrKeyInvalidToken)
			return
		}

		claims, err := tokens.Validate(strings.TrimSpace(token))
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, i18n.ErrKeyInvalidToken)
			return
		}

		c.Set(string(ClaimsKey), claims)
		c.Set(string(SubjectKey), claims.Subject)
		c.Next()
	}
}

// RequireRole must follow JWTAuth. It rejects tokens without role.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			abortWithError(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, i18n.ErrKeyUnauthorized)
			return
		}
		if !claims.HasRole(role) {
			abortWithError(c, http.StatusForbidden, dto.ErrCodeForbidden, i18n.ErrKeyForbidden)
			return
		}
		c.Next()
	}
}

// GetClaims returns the token claims stored by JWTAuth.
func GetClaims(c *gin.Context) *dto.Claims {
	v, ok := c.Get(string(ClaimsKey))
	if !ok {
		return nil
	}
	claims, _ := v.(*dto.Claims)
	return claims
}
