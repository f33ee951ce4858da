package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/storefront-service/internal/domain/dto"
	"github.com/guttosm/storefront-service/internal/i18n"
	"github.com/guttosm/storefront-service/internal/service/cache"
)

const (
	// IdempotencyKeyHeader is the client supplied key.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayedHeader marks a response served from the cache.
	IdempotencyReplayedHeader = "X-Idempotency-Replayed"

	IdempotencyKeyTTL      = 5 * time.Minute
	idempotencyCacheSize   = 10000
	idempotencyCacheMetric = "idempotency"
)

type cachedResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// IdempotencyConfig holds the replay cache. A nil Cache disables the middleware.
type IdempotencyConfig struct {
	Cache   *cache.TTL[string, *cachedResponse]
	Enabled bool
}

// NewIdempotencyConfig creates an enabled config with its own replay cache.
func NewIdempotencyConfig(capacity int, ttl time.Duration) IdempotencyConfig {
	if capacity <= 0 {
		capacity = idempotencyCacheSize
	}
	if ttl <= 0 {
		ttl = IdempotencyKeyTTL
	}
	return IdempotencyConfig{
		Cache: cache.NewTTL(cache.Config[string, *cachedResponse]{
			Name:     idempotencyCacheMetric,
			Capacity: capacity,
			TTL:      ttl,
		}),
		Enabled: true,
	}
}

// DefaultIdempotencyConfig returns NewIdempotencyConfig with default sizing.
func DefaultIdempotencyConfig() IdempotencyConfig {
	return NewIdempotencyConfig(idempotencyCacheSize, IdempotencyKeyTTL)
}

// Idempotency replays the stored 2xx response for a repeated POST, PUT or
// PATCH carrying the same Idempotency-Key, subject, path and body.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	if !cfg.Enabled || cfg.Cache == nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		cacheKey, err := idempotencyCacheKey(key, GetSubject(c), c.Request)
		if err != nil {
			_ = c.Error(err)
			abortWithError(c, http.StatusBadRequest, dto.ErrCodeInvalidRequest, i18n.ErrKeyInvalidRequestBody)
			return
		}

		if resp, ok := cfg.Cache.Get(cacheKey); ok {
			for k, v := range resp.Header {
				c.Writer.Header()[k] = v
			}
			c.Header(IdempotencyReplayedHeader, "true")
			c.Data(resp.StatusCode, resp.Header.Get("Content-Type"), resp.Body)
			c.Abort()
			return
		}

		writer := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = writer

		c.Next()

		status := writer.Status()
		if status < 200 || status >= 300 {
			return
		}
		header := writer.Header().Clone()
		header.Del(RequestIDHeader)
		cfg.Cache.Set(cacheKey, &cachedResponse{
			StatusCode: status,
			Header:     header,
			Body:       writer.body.Bytes(),
		})
	}
}

// idempotencyCacheKey hashes the key with the caller, method, path and body.
// The request body is restored for the handler.
func idempotencyCacheKey(key, subject string, req *http.Request) (string, error) {
	h := sha256.New()
	for _, part := range []string{key, subject, req.Method, req.URL.Path} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}

	if req.Body != nil {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return "", err
		}
		req.Body = io.NopCloser(bytes.NewReader(body))
		h.Write(body)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

type captureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
