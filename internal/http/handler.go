package http

import (
	"time"

	"github.com/guttosm/storefront-service/internal/domain/dto"
	"github.com/guttosm/storefront-service/internal/domain/model"
	"github.com/guttosm/storefront-service/internal/listing"
	"github.com/guttosm/storefront-service/internal/service"
)

const defaultHighlight = 500 * time.Millisecond

// Handler serves the storefront API.
type Handler struct {
	pricing    service.PricingService
	storefront service.StorefrontService
	checkout   service.CheckoutService
	logging    service.LoggingService
	editors    service.PriceEditorService
	highlight  time.Duration
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithLoggingService enables audit logging.
func WithLoggingService(ls service.LoggingService) HandlerOption {
	return func(h *Handler) {
		h.logging = ls
	}
}

// WithPriceEditors enables the live price editor endpoints.
func WithPriceEditors(editors service.PriceEditorService) HandlerOption {
	return func(h *Handler) {
		h.editors = editors
	}
}

// WithHighlightDuration sets how long the rendering surface keeps a freshly
// computed price highlighted.
func WithHighlightDuration(d time.Duration) HandlerOption {
	return func(h *Handler) {
		if d > 0 {
			h.highlight = d
		}
	}
}

// NewHandler creates a Handler.
func NewHandler(pricing service.PricingService, storefront service.StorefrontService, checkout service.CheckoutService, opts ...HandlerOption) *Handler {
	h := &Handler{
		pricing:    pricing,
		storefront: storefront,
		checkout:   checkout,
		highlight:  defaultHighlight,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) priceQuoteResponse(q service.Quote) dto.PriceQuoteResponse {
	resp := dto.PriceQuoteResponse{
		Applicable:         q.Applicable(),
		Outcome:            q.Outcome.String(),
		OriginalPrice:      q.OriginalPrice.String(),
		DiscountPercentage: q.DiscountPercentage.String(),
		Breakdown:          q.Breakdown,
	}
	if q.Applicable() {
		resp.DiscountedPrice = q.Result.DiscountedPrice.StringFixed(2)
		resp.DiscountAmount = q.Result.DiscountAmount.StringFixed(2)
		resp.HighlightMS = h.highlight.Milliseconds()
	}
	return resp
}

func itemCards(items []listing.Item[model.Product]) []dto.ProductCard {
	cards := make([]dto.ProductCard, len(items))
	for i, it := range items {
		cards[i] = dto.NewProductCard(it.Value)
	}
	return cards
}

func revealedCards(items []listing.Revealed[model.Product]) []dto.RevealedCard {
	cards := make([]dto.RevealedCard, len(items))
	for i, it := range items {
		cards[i] = dto.RevealedCard{
			ProductCard: dto.NewProductCard(it.Item.Value),
			DelayMS:     it.Delay.Milliseconds(),
		}
	}
	return cards
}
