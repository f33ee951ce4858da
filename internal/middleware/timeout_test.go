package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestTimeout(t *testing.T) {
	tests := []struct {
		name       string
		timeout    time.Duration
		handler    gin.HandlerFunc
		wantStatus int
		wantCode   string
	}{
		{
			name:    "completes in time",
			timeout: time.Second,
			handler: func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"ok": true})
			},
			wantStatus: http.StatusOK,
		},
		{
			name:    "deadline passes before anything is written",
			timeout: 20 * time.Millisecond,
			handler: func(c *gin.Context) {
				<-c.Request.Context().Done()
			},
			wantStatus: http.StatusGatewayTimeout,
			wantCode:   `"timeout"`,
		},
		{
			name:    "handler already answered after deadline",
			timeout: 20 * time.Millisecond,
			handler: func(c *gin.Context) {
				<-c.Request.Context().Done()
				c.JSON(http.StatusBadGateway, gin.H{"error": "catalog_unavailable"})
			},
			wantStatus: http.StatusBadGateway,
			wantCode:   `"catalog_unavailable"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			r := gin.New()
			r.Use(Timeout(tt.timeout))
			r.GET("/api/products", tt.handler)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantCode != "" {
				assert.Contains(t, w.Body.String(), tt.wantCode)
			}
		})
	}
}

func TestTimeout_ContextHasDeadline(t *testing.T) {
	tests := []struct {
		name    string
		timeout time.Duration
		want    time.Duration
	}{
		{name: "configured", timeout: time.Second, want: time.Second},
		{name: "zero uses default", timeout: 0, want: DefaultRequestTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			r := gin.New()
			r.Use(Timeout(tt.timeout))

			var remaining time.Duration
			r.GET("/test", func(c *gin.Context) {
				deadline, ok := c.Request.Context().Deadline()
				assert.True(t, ok)
				remaining = time.Until(deadline)
				c.Status(http.StatusOK)
			})

			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", nil))
			assert.InDelta(t, tt.want.Seconds(), remaining.Seconds(), 0.5)
		})
	}
}
