package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/storefront-service/internal/domain/model"
	"github.com/guttosm/storefront-service/internal/service"
)

func newContextEntry(c *gin.Context, level, message string) *model.LogEntry {
	return &model.LogEntry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
		RequestID: GetRequestID(c),
		Method:    c.Request.Method,
		Path:      c.Request.URL.Path,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Subject:   GetSubject(c),
	}
}

// AuditLog records a user action such as a checkout or an order status change.
func AuditLog(loggingService service.LoggingService, c *gin.Context, actionType, message string, fields map[string]any) {
	if loggingService == nil {
		return
	}
	entry := newContextEntry(c, "info", message)
	entry.ActionType = actionType
	entry.WithFields(fields)
	persist(loggingService, entry)
}

// AuditLogError records a failed user action.
func AuditLogError(loggingService service.LoggingService, c *gin.Context, actionType, message string, err error, fields map[string]any) {
	if loggingService == nil {
		return
	}
	entry := newContextEntry(c, "error", message)
	entry.ActionType = actionType
	if err != nil {
		entry.Error = err.Error()
	}
	entry.WithFields(fields)
	persist(loggingService, entry)
}
