//go:build !integration

package app

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/storefront-service/config"
)

func TestInitializeApp(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*config.Config)
		wantErr     bool
		adminStatus int
	}{
		{
			name:        "defaults without admin API",
			adminStatus: http.StatusNotFound,
		},
		{
			name: "admin API mounted with a JWT secret",
			mutate: func(cfg *config.Config) {
				cfg.Auth.JWTSecretKey = "test-secret"
			},
			adminStatus: http.StatusUnauthorized,
		},
		{
			name: "api keys do not guard the admin API",
			mutate: func(cfg *config.Config) {
				cfg.Auth.Enabled = true
				cfg.Auth.APIKeys = map[string]bool{"key": true}
			},
			adminStatus: http.StatusNotFound,
		},
		{
			name: "invalid catalog url",
			mutate: func(cfg *config.Config) {
				cfg.Catalog.BaseURL = "ftp://catalog"
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			if tt.mutate != nil {
				tt.mutate(&cfg)
			}

			app, err := InitializeApp(cfg)
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, app)
				return
			}
			require.NoError(t, err)
			t.Cleanup(app.Close)

			assert.Equal(t, http.StatusOK, serve(app.Router, http.MethodGet, "/healthz").Code)
			assert.Equal(t, tt.adminStatus, serve(app.Router, http.MethodGet, "/api/admin/orders?email=a@b.c").Code)
		})
	}
}

func TestInitializeApp_PricingIsServedLocally(t *testing.T) {
	app, err := InitializeApp(testConfig())
	require.NoError(t, err)
	t.Cleanup(app.Close)

	w := serve(app.Router, http.MethodPost, "/api/pricing/calculate")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(app.Router, http.MethodGet, "/readyz")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status string         `json:"status"`
		Checks map[string]any `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, map[string]any{"catalog_api_circuit": "closed"}, body.Checks)
}

func TestApp_CloseRunsInReverse(t *testing.T) {
	var order []string
	app := &App{}
	app.onClose(func() { order = append(order, "services") })
	app.onClose(func() { order = append(order, "database") })
	app.onClose(func() { order = append(order, "logger") })

	app.Close()
	app.Close()

	assert.Equal(t, []string{"logger", "database", "services"}, order)
}
