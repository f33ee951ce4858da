package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAPIKeyAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte("hashed-key"), bcrypt.MinCost)
	require.NoError(t, err)
	cfg := APIKeyConfig{
		Keys:   map[string]bool{"plain-key": true},
		Hashes: []string{string(hash)},
	}

	tests := []struct {
		name           string
		cfg            APIKeyConfig
		setupRequest   func(*http.Request)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "plain key in header",
			cfg:            cfg,
			setupRequest:   func(req *http.Request) { req.Header.Set(APIKeyHeader, "plain-key") },
			expectedStatus: http.StatusOK,
			expectedBody:   apiKeySubject,
		},
		{
			name:           "hashed key in query",
			cfg:            cfg,
			setupRequest:   func(req *http.Request) { req.URL.RawQuery = "api_key=hashed-key" },
			expectedStatus: http.StatusOK,
			expectedBody:   apiKeySubject,
		},
		{
			name:           "missing key",
			cfg:            cfg,
			setupRequest:   func(*http.Request) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "API key is required",
		},
		{
			name:           "wrong key",
			cfg:            cfg,
			setupRequest:   func(req *http.Request) { req.Header.Set(APIKeyHeader, "nope") },
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "Invalid API key",
		},
		{
			name:           "disabled without keys",
			cfg:            APIKeyConfig{},
			setupRequest:   func(*http.Request) {},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(APIKeyAuth(tt.cfg))
			router.GET("/test", func(c *gin.Context) {
				c.String(http.StatusOK, "subject="+GetSubject(c))
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			tt.setupRequest(req)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
		})
	}
}

func TestAPIKeyVerifier_RemembersHashedKeys(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("k"), bcrypt.MinCost)
	require.NoError(t, err)
	v := &apiKeyVerifier{cfg: APIKeyConfig{Hashes: []string{string(hash)}}}

	assert.True(t, v.valid("k"))
	v.cfg.Hashes = nil
	assert.True(t, v.valid("k"))
	assert.False(t, v.valid("other"))
}

func TestHashAPIKey(t *testing.T) {
	h, err := HashAPIKey("secret")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(h), []byte("secret")))
}
