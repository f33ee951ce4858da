package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/guttosm/storefront-service/internal/domain/dto"
	"github.com/guttosm/storefront-service/internal/i18n"
)

const (
	APIKeyHeader = "X-API-Key"
	APIKeyQuery  = "api_key"

	apiKeySubject = "api-key"
)

// APIKeyConfig lists accepted keys. Keys holds plain keys; Hashes holds
// bcrypt hashes so deployments need not keep plain keys in the environment.
type APIKeyConfig struct {
	Keys   map[string]bool
	Hashes []string
}

func (cfg APIKeyConfig) empty() bool {
	return len(cfg.Keys) == 0 && len(cfg.Hashes) == 0
}

// apiKeyVerifier checks keys and remembers keys that matched a bcrypt hash,
// keyed by their SHA-256 digest.
type apiKeyVerifier struct {
	cfg      APIKeyConfig
	verified sync.Map
}

func (v *apiKeyVerifier) valid(key string) bool {
	for k := range v.cfg.Keys {
		if subtle.ConstantTimeCompare([]byte(k), []byte(key)) == 1 {
			return true
		}
	}

	digest := sha256.Sum256([]byte(key))
	if _, ok := v.verified.Load(digest); ok {
		return true
	}
	for _, h := range v.cfg.Hashes {
		if bcrypt.CompareHashAndPassword([]byte(h), []byte(key)) == nil {
			v.verified.Store(digest, struct{}{})
			return true
		}
	}
	return false
}

// APIKeyAuth accepts requests carrying a valid key in X-API-Key or the
// api_key query parameter. With no keys configured it lets everything through.
func APIKeyAuth(cfg APIKeyConfig) gin.HandlerFunc {
	if cfg.empty() {
		return func(c *gin.Context) { c.Next() }
	}
	v := &apiKeyVerifier{cfg: cfg}

	return func(c *gin.Context) {
		key := c.GetHeader(APIKeyHeader)
		if key == "" {
			key = c.Query(APIKeyQuery)
		}

		if key == "" {
			abortWithError(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, i18n.ErrKeyAPIKeyRequired)
			return
		}
		if !v.valid(key) {
			abortWithError(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, i18n.ErrKeyInvalidAPIKey)
			return
		}

		if GetSubject(c) == "" {
			c.Set(string(SubjectKey), apiKeySubject)
		}
		c.Next()
	}
}

// HashAPIKey returns the bcrypt hash to put in API_KEY_HASHES.
func HashAPIKey(key string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	return string(h), err
}

// GetSubject returns the authenticated principal, or "" for anonymous requests.
func GetSubject(c *gin.Context) string {
	return c.GetString(string(SubjectKey))
}
