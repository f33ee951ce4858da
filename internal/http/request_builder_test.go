package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/storefront-service/internal/catalogapi"
	"github.com/guttosm/storefront-service/internal/domain/dto"
	"github.com/guttosm/storefront-service/internal/i18n"
	"github.com/guttosm/storefront-service/internal/service"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKey    string
	}{
		{"email", dto.ErrInvalidEmail, http.StatusBadRequest, i18n.ErrKeyValidationEmail},
		{"phone", dto.ErrInvalidPhone, http.StatusBadRequest, i18n.ErrKeyValidationPhone},
		{"quantity", dto.ErrInvalidQuantity, http.StatusBadRequest, i18n.ErrKeyValidationQuantity},
		{"other field", &dto.ValidationError{Field: "name", Message: "bad"}, http.StatusBadRequest, i18n.ErrKeyInvalidRequest},
		{"status", service.ErrInvalidStatus, http.StatusBadRequest, i18n.ErrKeyValidationStatus},
		{"empty status update", service.ErrEmptyStatusUpdate, http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody},
		{"session", service.ErrSessionNotFound, http.StatusNotFound, i18n.ErrKeySessionNotFound},
		{"product unavailable", service.ErrProductUnavailable, http.StatusUnprocessableEntity, i18n.ErrKeyProductUnavailable},
		{"not found wrapped", fmt.Errorf("load: %w", catalogapi.ErrNotFound), http.StatusNotFound, i18n.ErrKeyNotFound},
		{"outage joined", errors.Join(catalogapi.ErrUnavailable, errors.New("eof")), http.StatusBadGateway, i18n.ErrKeyCatalogUnavailable},
		{"deadline", fmt.Errorf("fetch: %w", context.DeadlineExceeded), http.StatusGatewayTimeout, i18n.ErrKeyTimeout},
		{"catalog rejected", &catalogapi.APIError{Status: http.StatusBadRequest}, http.StatusBadRequest, i18n.ErrKeyInvalidRequest},
		{"catalog 5xx", &catalogapi.APIError{Status: http.StatusInternalServerError}, http.StatusBadGateway, i18n.ErrKeyCatalogUnavailable},
		{"catalog 404", &catalogapi.APIError{Status: http.StatusNotFound}, http.StatusNotFound, i18n.ErrKeyNotFound},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, i18n.ErrKeyInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, key := classify(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantKey, key)
		})
	}
}

func TestBuildRequestAndValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
		check   func(*testing.T, *dto.CheckoutRequest)
	}{
		{
			name: "normalizes",
			body: `{"email":" buyer@example.com ","phone":" 123 ","product_id":1}`,
			check: func(t *testing.T, r *dto.CheckoutRequest) {
				assert.Equal(t, "buyer@example.com", r.Email)
				assert.Equal(t, "123", r.Phone)
				assert.Equal(t, 1, r.Quantity)
			},
		},
		{
			name:    "validation runs after binding",
			body:    `{"email":"buyer@example.com","phone":"123","product_id":1,"quantity":500}`,
			wantErr: dto.ErrInvalidQuantity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")

			req, err := BuildRequestAndValidate[dto.CheckoutRequest](c)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, req)
		})
	}
}

func TestBuildRequest_BindingError(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"status":`))
	c.Request.Header.Set("Content-Type", "application/json")

	_, err := BuildRequest[dto.UpdateOrderStatusRequest](c)
	assert.Error(t, err)
}

func TestResponseBuilder(t *testing.T) {
	t.Run("success envelope", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		NewResponseBuilder(c).SuccessCreated(gin.H{"id": 1})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"data":{"id":1}`)
		assert.Contains(t, w.Body.String(), `"timestamp"`)
	})

	t.Run("fail aborts with translated message", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Request.Header.Set(i18n.AcceptLanguageHeader, "nl")

		NewResponseBuilder(c).Fail(service.ErrSessionNotFound)

		assert.True(t, c.IsAborted())
		assert.Equal(t, http.StatusNotFound, w.Code)
		resp := decodeError(t, w)
		assert.Equal(t, dto.ErrCodeNotFound, resp.Error)
		assert.Equal(t, "Deze productlijst is verlopen. Laad de pagina opnieuw.", resp.Message)
		require.Len(t, c.Errors, 1)
	})
}
