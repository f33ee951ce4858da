package app

import (
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/storefront-service/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() config.Config {
	cfg := config.Load()
	cfg.Server.RateLimit = 0
	cfg.Catalog.BaseURL = "http://catalog.invalid/api"
	cfg.Database.Enabled = false
	cfg.Auth.Enabled = false
	cfg.Auth.JWTSecretKey = ""
	cfg.Listing.MaxSessions = 10
	cfg.Listing.SessionTTL = time.Minute
	cfg.Pricing.EditorCapacity = 10
	cfg.Pricing.EditorTTL = time.Minute
	return cfg
}

func serve(router http.Handler, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}
