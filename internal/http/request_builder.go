package http

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/storefront-service/internal/catalogapi"
	"github.com/guttosm/storefront-service/internal/domain/dto"
	"github.com/guttosm/storefront-service/internal/i18n"
	"github.com/guttosm/storefront-service/internal/middleware"
	"github.com/guttosm/storefront-service/internal/service"
)

var (
	successResponsePool = sync.Pool{
		New: func() any { return &dto.SuccessResponse{} },
	}
	errorResponsePool = sync.Pool{
		New: func() any { return &dto.ErrorResponse{} },
	}
)

func getSuccessResponse() *dto.SuccessResponse {
	if resp, ok := successResponsePool.Get().(*dto.SuccessResponse); ok {
		return resp
	}
	return &dto.SuccessResponse{}
}

func putSuccessResponse(resp *dto.SuccessResponse) {
	*resp = dto.SuccessResponse{}
	successResponsePool.Put(resp)
}

func getErrorResponse() *dto.ErrorResponse {
	if resp, ok := errorResponsePool.Get().(*dto.ErrorResponse); ok {
		return resp
	}
	return &dto.ErrorResponse{}
}

func putErrorResponse(resp *dto.ErrorResponse) {
	*resp = dto.ErrorResponse{}
	errorResponsePool.Put(resp)
}

// Validator is implemented by requests that check themselves after binding.
type Validator interface {
	Validate() error
}

// BuildRequest binds the JSON body into a new T.
func BuildRequest[T any](c *gin.Context) (*T, error) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// BuildRequestAndValidate binds the JSON body and runs Validate when T has one.
func BuildRequestAndValidate[T any](c *gin.Context) (*T, error) {
	req, err := BuildRequest[T](c)
	if err != nil {
		return nil, err
	}
	if v, ok := any(req).(Validator); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}
	return req, nil
}

// ResponseBuilder writes the standard success and error envelopes.
type ResponseBuilder struct {
	c *gin.Context
}

// NewResponseBuilder creates a response builder for c.
func NewResponseBuilder(c *gin.Context) *ResponseBuilder {
	return &ResponseBuilder{c: c}
}

// Success wraps data in a SuccessResponse.
func (b *ResponseBuilder) Success(statusCode int, data any) {
	resp := getSuccessResponse()
	resp.Data = data
	resp.RequestID = middleware.GetRequestID(b.c)
	resp.Timestamp = time.Now()

	// gin serializes synchronously, so the pooled value can go back right after.
	b.c.JSON(statusCode, resp)
	putSuccessResponse(resp)
}

func (b *ResponseBuilder) SuccessOK(data any) {
	b.Success(http.StatusOK, data)
}

func (b *ResponseBuilder) SuccessCreated(data any) {
	b.Success(http.StatusCreated, data)
}

// Error aborts with a translated error. err, when set, is attached for the
// error handler to log.
func (b *ResponseBuilder) Error(statusCode int, messageKey string, err error) {
	b.ErrorWithMessage(statusCode, i18n.Message(b.c, messageKey), err)
}

// ErrorWithMessage aborts with an already rendered message.
func (b *ResponseBuilder) ErrorWithMessage(statusCode int, message string, err error) {
	resp := getErrorResponse()
	resp.Error = dto.ErrCodeFromStatus(statusCode)
	resp.Message = message
	resp.RequestID = middleware.GetRequestID(b.c)
	resp.Timestamp = time.Now()

	if err != nil {
		_ = b.c.Error(err)
	}
	b.c.AbortWithStatusJSON(statusCode, resp)
	putErrorResponse(resp)
}

// Fail renders err with the status and message its kind calls for.
func (b *ResponseBuilder) Fail(err error) {
	status, key := classify(err)
	b.Error(status, key, err)
}

var validationKeys = map[string]string{
	dto.ErrInvalidEmail.Field:    i18n.ErrKeyValidationEmail,
	dto.ErrInvalidPhone.Field:    i18n.ErrKeyValidationPhone,
	dto.ErrInvalidQuantity.Field: i18n.ErrKeyValidationQuantity,
}

// classify maps service and catalog errors onto an HTTP status and message key.
// Catalog outages are reported as 502 so the rest of the page keeps working.
func classify(err error) (int, string) {
	var vErr *dto.ValidationError
	var apiErr *catalogapi.APIError

	switch {
	case errors.As(err, &vErr):
		if key, ok := validationKeys[vErr.Field]; ok {
			return http.StatusBadRequest, key
		}
		return http.StatusBadRequest, i18n.ErrKeyInvalidRequest
	case errors.Is(err, service.ErrInvalidStatus):
		return http.StatusBadRequest, i18n.ErrKeyValidationStatus
	case errors.Is(err, service.ErrEmptyStatusUpdate):
		return http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody
	case errors.Is(err, service.ErrSessionNotFound):
		return http.StatusNotFound, i18n.ErrKeySessionNotFound
	case errors.Is(err, service.ErrEditorNotFound):
		return http.StatusNotFound, i18n.ErrKeyEditorNotFound
	case errors.Is(err, service.ErrProductUnavailable):
		return http.StatusUnprocessableEntity, i18n.ErrKeyProductUnavailable
	case errors.Is(err, catalogapi.ErrNotFound):
		return http.StatusNotFound, i18n.ErrKeyNotFound
	case errors.Is(err, catalogapi.ErrUnavailable):
		return http.StatusBadGateway, i18n.ErrKeyCatalogUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, i18n.ErrKeyTimeout
	case errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500:
		return http.StatusBadRequest, i18n.ErrKeyInvalidRequest
	default:
		return http.StatusInternalServerError, i18n.ErrKeyInternalError
	}
}
