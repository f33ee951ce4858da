package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/storefront-service/internal/domain/dto"
	"github.com/guttosm/storefront-service/internal/i18n"
	"github.com/guttosm/storefront-service/internal/logger"
)

// abortWithError writes the standard error body with a translated message.
func abortWithError(c *gin.Context, status int, code, messageKey string) {
	resp := dto.NewError(code, i18n.Message(c, messageKey)).WithRequestID(GetRequestID(c))
	c.AbortWithStatusJSON(status, resp)
}

// ErrorHandler logs errors attached with c.Error and renders a 500 when the
// handler wrote nothing.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		log := logger.Component("http")
		for _, e := range c.Errors {
			log.Error().
				Err(e.Err).
				Str("request_id", GetRequestID(c)).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Msg("request error")
		}

		if !c.Writer.Written() {
			abortWithError(c, http.StatusInternalServerError, dto.ErrCodeInternal, i18n.ErrKeyInternalError)
		}
	}
}
