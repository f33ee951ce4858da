package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/storefront-service/internal/domain/dto"
	"github.com/guttosm/storefront-service/internal/domain/model"
	"github.com/guttosm/storefront-service/internal/i18n"
	"github.com/guttosm/storefront-service/internal/middleware"
	"github.com/guttosm/storefront-service/internal/service"
)

const maxPageSize = 100

// listingQuery reads the listing query string. An empty price means no
// filter; any other value is matched against price tags verbatim. The
// search term is read from q, with search accepted as an alias.
func listingQuery(c *gin.Context) (service.ListingQuery, bool) {
	q := service.ListingQuery{
		Category: c.Query("category"),
		Search:   c.Query("q"),
	}
	if q.Search == "" {
		q.Search = c.Query("search")
	}
	if price := c.Query("price"); price != "" {
		q.Price = &price
	}
	if raw := c.Query("page_size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxPageSize {
			return q, false
		}
		q.PageSize = n
	}
	return q, true
}

// CreateListing handles GET /api/listing.
//
// @Summary      Partition the product grid
// @Description  Returns the first page of active products, optionally narrowed to one price tag, and a session id for load-more. The price filter compares the published price text exactly: "499" does not match "499.00".
// @Tags         Listing
// @Produce      json
// @Param        price     query string false "Price tag to match exactly"
// @Param        category  query string false "Category slug"
// @Param        q         query string false "Search term (ignored when category is set)"
// @Param        search    query string false "Alias of q"
// @Param        page_size query int    false "Visible items before load-more (default 9, max 100)"
// @Success      200 {object} dto.SuccessResponse{data=dto.ListingResponse}
// @Failure      400 {object} dto.ErrorResponse "Invalid page size"
// @Failure      502 {object} dto.ErrorResponse "Catalog unavailable"
// @Router       /api/listing [get]
func (h *Handler) CreateListing(c *gin.Context) {
	builder := NewResponseBuilder(c)

	q, ok := listingQuery(c)
	if !ok {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, nil)
		return
	}

	l, err := h.storefront.NewListing(c.Request.Context(), q)
	if err != nil {
		builder.Fail(err)
		return
	}

	middleware.AuditLog(h.logging, c, model.ActionListingCreated, "listing created", map[string]any{
		"session_id": l.SessionID,
		"filtered":   q.Price != nil,
		"shown":      len(l.Result.Shown),
		"hidden":     len(l.Result.Hidden),
	})

	builder.SuccessOK(dto.ListingResponse{
		SessionID:     l.SessionID,
		PriceFilter:   l.Query.Price,
		PageSize:      l.Query.PageSize,
		Items:         itemCards(l.Result.Shown),
		HiddenCount:   len(l.Result.Hidden),
		ExcludedCount: len(l.Result.Excluded),
		HasMore:       l.Result.HasMore,
	})
}

// RevealMore handles POST /api/listing/{session}/more.
//
// @Summary      Load more products
// @Description  Reveals the next hidden products of a listing in their original order. Once everything is shown has_more stays false and further calls return no items.
// @Tags         Listing
// @Produce      json
// @Param        session path string true "Listing session id"
// @Success      200 {object} dto.SuccessResponse{data=dto.RevealResponse}
// @Failure      404 {object} dto.ErrorResponse "Unknown or expired session"
// @Router       /api/listing/{session}/more [post]
func (h *Handler) RevealMore(c *gin.Context) {
	builder := NewResponseBuilder(c)

	r, err := h.storefront.RevealMore(c.Param("session"))
	if err != nil {
		builder.Fail(err)
		return
	}

	if len(r.Reveal.Items) > 0 {
		middleware.AuditLog(h.logging, c, model.ActionListingRevealed, "listing revealed", map[string]any{
			"session_id": r.SessionID,
			"revealed":   len(r.Reveal.Items),
		})
	}

	builder.SuccessOK(dto.RevealResponse{
		SessionID:    r.SessionID,
		Items:        revealedCards(r.Reveal.Items),
		VisibleCount: r.VisibleCount,
		HasMore:      r.Reveal.HasMore,
		Inert:        r.Reveal.Inert,
	})
}

// CloseListing handles DELETE /api/listing/{session}.
//
// @Summary      Close a listing session
// @Tags         Listing
// @Param        session path string true "Listing session id"
// @Success      204
// @Failure      404 {object} dto.ErrorResponse "Unknown or expired session"
// @Router       /api/listing/{session} [delete]
func (h *Handler) CloseListing(c *gin.Context) {
	if !h.storefront.CloseListing(c.Param("session")) {
		NewResponseBuilder(c).Fail(service.ErrSessionNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}
