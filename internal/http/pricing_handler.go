package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/storefront-service/internal/domain/dto"
	"github.com/guttosm/storefront-service/internal/domain/model"
	"github.com/guttosm/storefront-service/internal/i18n"
	"github.com/guttosm/storefront-service/internal/middleware"
)

// CalculatePrice handles POST /api/pricing/calculate.
//
// @Summary      Compute a discounted price
// @Description  Evaluates the discount calculator fields. Both fields are free text; unparsable input counts as zero. Invalid combinations are answered with applicable=false and a hint in breakdown, never with an error.
// @Tags         Pricing
// @Accept       json
// @Produce      json
// @Param        request body dto.CalculatePriceRequest true "Calculator fields"
// @Success      200 {object} dto.SuccessResponse{data=dto.PriceQuoteResponse}
// @Failure      400 {object} dto.ErrorResponse "Malformed JSON"
// @Failure      429 {object} dto.ErrorResponse "Rate limit exceeded"
// @Router       /api/pricing/calculate [post]
func (h *Handler) CalculatePrice(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequest[dto.CalculatePriceRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	q := h.pricing.Quote(req.OriginalPrice, req.DiscountPercentage)
	middleware.AuditLog(h.logging, c, model.ActionPriceCalculated, "price calculated", map[string]any{
		"original_price":      q.OriginalPrice.String(),
		"discount_percentage": q.DiscountPercentage.String(),
		"outcome":             q.Outcome.String(),
	})

	builder.SuccessOK(h.priceQuoteResponse(q))
}
