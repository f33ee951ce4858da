package dto

import (
	"net/http"
	"time"

	"github.com/guttosm/storefront-service/internal/domain/model"
)

const (
	ErrCodeInvalidRequest = "invalid_request"
	ErrCodeInternal       = "internal_error"
	ErrCodeUnauthorized   = "unauthorized"
	ErrCodeForbidden      = "forbidden"
	ErrCodeNotFound       = "not_found"
	ErrCodeRateLimit      = "rate_limit_exceeded"
	ErrCodeConflict       = "conflict"
	ErrCodeTimeout        = "timeout"
	// ErrCodeUpstream means the remote catalog API could not be reached or failed.
	ErrCodeUpstream = "catalog_unavailable"
)

// SuccessResponse wraps successful API responses with metadata.
// @Description Successful API response wrapper
type SuccessResponse struct {
	Data      any       `json:"data" swaggertype:"object"`
	RequestID string    `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time `json:"timestamp" example:"2026-01-28T10:00:00Z"`
} // @name SuccessResponse

// ErrorResponse represents a standardized error response for the API.
// @Description Standardized error response
type ErrorResponse struct {
	Error     string            `json:"error" example:"invalid_request"`
	Message   string            `json:"message,omitempty" example:"Invalid request body"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time         `json:"timestamp" example:"2026-01-28T10:00:00Z"`
} // @name ErrorResponse

// NewError creates a new ErrorResponse with the given code and message.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{
		Error:     code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// WithRequestID adds a request ID to the error response.
func (e ErrorResponse) WithRequestID(requestID string) ErrorResponse {
	e.RequestID = requestID
	return e
}

// ErrCodeFromStatus returns the appropriate error code for an HTTP status.
func ErrCodeFromStatus(status int) string {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrCodeInvalidRequest
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusForbidden:
		return ErrCodeForbidden
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	case http.StatusTooManyRequests:
		return ErrCodeRateLimit
	case http.StatusGatewayTimeout, http.StatusRequestTimeout:
		return ErrCodeTimeout
	case http.StatusBadGateway, http.StatusServiceUnavailable:
		return ErrCodeUpstream
	default:
		return ErrCodeInternal
	}
}

// PriceQuoteResponse is the calculator output. Money fields are fixed to two
// decimals; they are empty when Applicable is false.
// @Description Discount calculator output
type PriceQuoteResponse struct {
	Applicable         bool   `json:"applicable" example:"true"`
	Outcome            string `json:"outcome" example:"applied"`
	OriginalPrice      string `json:"original_price" example:"100"`
	DiscountPercentage string `json:"discount_percentage" example:"20"`
	DiscountedPrice    string `json:"discounted_price,omitempty" example:"80.00"`
	DiscountAmount     string `json:"discount_amount,omitempty" example:"20.00"`
	Breakdown          string `json:"breakdown" example:"₹100.00 - (₹100.00 × 20%) = ₹80.00 (Save ₹20.00)"`
	HighlightMS        int64  `json:"highlight_ms" example:"500"`
} // @name PriceQuoteResponse

// PriceEditorResponse is what a product editor's price widget displays.
// @Description Live price editor state
type PriceEditorResponse struct {
	EditorID    string `json:"editor_id" example:"3f0c7a52-8d7e-4a4f-9b1d-2b8f0f3e6c11"`
	Price       string `json:"price" example:"80.00"`
	Info        string `json:"info" example:"₹100.00 - (₹100.00 × 20%) = ₹80.00 (Save ₹20.00)"`
	Highlighted bool   `json:"highlighted" example:"true"`
} // @name PriceEditorResponse

// ProductCard is a product as rendered in the listing grid.
// @Description Product grid card
type ProductCard struct {
	ID                 int64  `json:"id" example:"7"`
	Name               string `json:"name" example:"Notion Budget Planner"`
	Slug               string `json:"slug" example:"notion-budget-planner"`
	ShortDescription   string `json:"short_description,omitempty"`
	PriceTag           string `json:"price_tag" example:"499"`
	Price              string `json:"price" example:"499.00"`
	OriginalPrice      string `json:"original_price,omitempty" example:"999.00"`
	DiscountPercentage string `json:"discount_percentage,omitempty" example:"50"`
	ImageURL           string `json:"image_url,omitempty"`
	BadgeText          string `json:"badge_text,omitempty"`
	Category           string `json:"category,omitempty" example:"templates"`
} // @name ProductCard

// NewProductCard maps a catalog product to its grid card.
func NewProductCard(p model.Product) ProductCard {
	card := ProductCard{
		ID:               p.ID,
		Name:             p.Name,
		Slug:             p.Slug,
		ShortDescription: p.ShortDescription,
		PriceTag:         p.PriceTag(),
		Price:            p.Price.StringFixed(2),
		ImageURL:         p.ImageURL,
		BadgeText:        p.BadgeText,
		Category:         p.CategorySlug(),
	}
	if p.OriginalPrice.Valid {
		card.OriginalPrice = p.OriginalPrice.Decimal.StringFixed(2)
	}
	if p.DiscountPercentage.Valid {
		card.DiscountPercentage = p.DiscountPercentage.Decimal.String()
	}
	return card
}

// NewProductCards maps a slice of products.
func NewProductCards(products []model.Product) []ProductCard {
	cards := make([]ProductCard, len(products))
	for i, p := range products {
		cards[i] = NewProductCard(p)
	}
	return cards
}

// ListingResponse is the first page of a partitioned product grid.
// @Description Partitioned product grid
type ListingResponse struct {
	SessionID     string        `json:"session_id" example:"3f0c7a52-8d7e-4a4f-9b1d-2b8f0f3e6c11"`
	PriceFilter   *string       `json:"price_filter,omitempty" example:"499"`
	PageSize      int           `json:"page_size" example:"9"`
	Items         []ProductCard `json:"items"`
	HiddenCount   int           `json:"hidden_count" example:"3"`
	ExcludedCount int           `json:"excluded_count" example:"1"`
	HasMore       bool          `json:"has_more" example:"true"`
} // @name ListingResponse

// RevealedCard is a card promoted by load-more with its animation offset.
type RevealedCard struct {
	ProductCard
	DelayMS int64 `json:"delay_ms" example:"300"`
} // @name RevealedCard

// RevealResponse is the outcome of one load-more.
// @Description Load-more outcome
type RevealResponse struct {
	SessionID    string         `json:"session_id"`
	Items        []RevealedCard `json:"items"`
	VisibleCount int            `json:"visible_count" example:"12"`
	HasMore      bool           `json:"has_more" example:"false"`
	Inert        bool           `json:"inert" example:"true"`
} // @name RevealResponse

// ProductDetailResponse is a product page.
// @Description Product detail with computed pricing and related products
type ProductDetailResponse struct {
	Product model.Product       `json:"product"`
	Pricing *PriceQuoteResponse `json:"pricing,omitempty"`
	Related []ProductCard       `json:"related"`
} // @name ProductDetailResponse

// CheckoutResponse confirms a created order.
// @Description Created order summary
type CheckoutResponse struct {
	OrderID        int64  `json:"order_id" example:"42"`
	Status         string `json:"status" example:"pending"`
	ProductName    string `json:"product_name" example:"Notion Budget Planner"`
	Quantity       int    `json:"quantity" example:"1"`
	UnitPrice      string `json:"unit_price" example:"499.00"`
	BumpOfferPrice string `json:"bump_offer_price,omitempty" example:"99.00"`
	Total          string `json:"total" example:"598.00"`
} // @name CheckoutResponse

// LogsResponse is one page of stored request and audit logs.
// @Description Log query result
type LogsResponse struct {
	Entries []model.LogEntry `json:"entries"`
	Total   int64            `json:"total" example:"120"`
	Limit   int              `json:"limit" example:"50"`
	Skip    int              `json:"skip" example:"0"`
} // @name LogsResponse
