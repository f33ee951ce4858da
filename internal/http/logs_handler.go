package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/guttosm/storefront-service/internal/domain/dto"
	"github.com/guttosm/storefront-service/internal/domain/model"
	"github.com/guttosm/storefront-service/internal/i18n"
)

const (
	defaultLogsLimit = 50
	maxLogsLimit     = 500
)

var errLogsUnavailable = errors.New("log storage is not configured")

// logQuery parses the filter parameters of the logs endpoint.
func logQuery(c *gin.Context) (model.LogQueryOptions, error) {
	opts := model.LogQueryOptions{
		RequestID:  c.Query("request_id"),
		Level:      c.Query("level"),
		ActionType: c.Query("action_type"),
		Subject:    c.Query("subject"),
		Method:     c.Query("method"),
		Path:       c.Query("path"),
		Limit:      defaultLogsLimit,
	}

	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxLogsLimit {
			return opts, errors.New("limit must be between 1 and 500")
		}
		opts.Limit = n
	}
	if raw := c.Query("skip"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return opts, errors.New("skip must be a non-negative integer")
		}
		opts.Skip = n
	}

	for name, dst := range map[string]**time.Time{"from": &opts.StartTime, "to": &opts.EndTime} {
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return opts, errors.New(name + " must be an RFC3339 timestamp")
		}
		*dst = &t
	}
	if opts.StartTime != nil && opts.EndTime != nil && opts.EndTime.Before(*opts.StartTime) {
		return opts, errors.New("to must not be before from")
	}
	return opts, nil
}

// QueryLogs handles GET /api/admin/logs.
//
// @Summary      Query stored request and audit logs
// @Description  Returns matching log entries, newest first, together with the total match count.
// @Tags         Admin
// @Produce      json
// @Param        request_id  query string false "Request id"
// @Param        level       query string false "Log level"
// @Param        action_type query string false "Audit action, e.g. order_created"
// @Param        subject     query string false "Authenticated principal"
// @Param        method      query string false "HTTP method"
// @Param        path        query string false "Path pattern (case-insensitive regex)"
// @Param        from        query string false "Start of the window (RFC3339)"
// @Param        to          query string false "End of the window (RFC3339)"
// @Param        limit       query int    false "Page size (1-500, default 50)"
// @Param        skip        query int    false "Entries to skip"
// @Success      200 {object} dto.SuccessResponse{data=dto.LogsResponse}
// @Failure      400 {object} dto.ErrorResponse "Invalid filter"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure      403 {object} dto.ErrorResponse "Not an admin"
// @Failure      500 {object} dto.ErrorResponse "Log storage unavailable"
// @Security     BearerAuth
// @Router       /api/admin/logs [get]
func (h *Handler) QueryLogs(c *gin.Context) {
	builder := NewResponseBuilder(c)

	if h.logging == nil {
		builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyInternalError, errLogsUnavailable)
		return
	}

	opts, err := logQuery(c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
		return
	}

	var (
		entries []model.LogEntry
		total   int64
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		entries, err = h.logging.QueryLogs(ctx, opts)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = h.logging.CountLogs(ctx, opts)
		return err
	})
	if err := g.Wait(); err != nil {
		builder.Fail(err)
		return
	}

	if entries == nil {
		entries = []model.LogEntry{}
	}
	builder.SuccessOK(dto.LogsResponse{
		Entries: entries,
		Total:   total,
		Limit:   opts.Limit,
		Skip:    opts.Skip,
	})
}
