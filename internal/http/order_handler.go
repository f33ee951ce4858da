package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/storefront-service/internal/domain/dto"
	"github.com/guttosm/storefront-service/internal/domain/model"
	"github.com/guttosm/storefront-service/internal/i18n"
	"github.com/guttosm/storefront-service/internal/middleware"
)

// Checkout handles POST /api/checkout.
//
// @Summary      Place an order
// @Description  Prices the order from the current product price, adds the bump offer when taken, and creates the order in the catalog. Supports idempotency via the Idempotency-Key header.
// @Tags         Orders
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body dto.CheckoutRequest true "Order form"
// @Success      201 {object} dto.SuccessResponse{data=dto.CheckoutResponse}
// @Failure      400 {object} dto.ErrorResponse "Invalid order form"
// @Failure      422 {object} dto.ErrorResponse "Product not available"
// @Failure      502 {object} dto.ErrorResponse "Catalog unavailable"
// @Router       /api/checkout [post]
func (h *Handler) Checkout(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequest[dto.CheckoutRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	summary, err := h.checkout.PlaceOrder(c.Request.Context(), *req)
	if err != nil {
		middleware.AuditLogError(h.logging, c, model.ActionOrderCreated, "order failed", err, map[string]any{
			"product_id": req.ProductID,
			"quantity":   req.Quantity,
		})
		builder.Fail(err)
		return
	}

	middleware.AuditLog(h.logging, c, model.ActionOrderCreated, "order created", map[string]any{
		"order_id":   summary.Order.ID,
		"product_id": summary.Product.ID,
		"quantity":   summary.Quantity,
		"total":      summary.Total.StringFixed(2),
		"bump_offer": req.BumpOfferAdded,
	})

	resp := dto.CheckoutResponse{
		OrderID:     summary.Order.ID,
		Status:      string(summary.Order.Status),
		ProductName: summary.Product.Name,
		Quantity:    summary.Quantity,
		UnitPrice:   summary.UnitPrice.StringFixed(2),
		Total:       summary.Total.StringFixed(2),
	}
	if resp.Status == "" {
		resp.Status = string(model.OrderPending)
	}
	if req.BumpOfferAdded {
		resp.BumpOfferPrice = summary.BumpOfferPrice.StringFixed(2)
	}
	builder.SuccessCreated(resp)
}

// UpdateOrderStatus handles PATCH /api/admin/orders/{id}/status.
//
// @Summary  Change an order's status
// @Tags     Admin
// @Accept   json
// @Produce  json
// @Param    id path int true "Order id"
// @Param    request body dto.UpdateOrderStatusRequest true "New status"
// @Success  200 {object} dto.SuccessResponse{data=model.Order}
// @Failure  400 {object} dto.ErrorResponse "Invalid id or status"
// @Failure  401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure  403 {object} dto.ErrorResponse "Not an admin"
// @Failure  404 {object} dto.ErrorResponse "Order not found"
// @Failure  502 {object} dto.ErrorResponse "Catalog unavailable"
// @Security BearerAuth
// @Router   /api/admin/orders/{id}/status [patch]
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	builder := NewResponseBuilder(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyValidationID, err)
		return
	}

	req, err := BuildRequest[dto.UpdateOrderStatusRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	order, err := h.checkout.UpdateOrderStatus(c.Request.Context(), id, *req)
	if err != nil {
		if status, _ := classify(err); status == http.StatusNotFound {
			builder.Error(http.StatusNotFound, i18n.ErrKeyOrderNotFound, nil)
			return
		}
		builder.Fail(err)
		return
	}

	middleware.AuditLog(h.logging, c, model.ActionOrderUpdated, "order status updated", map[string]any{
		"order_id": id,
		"status":   req.Status,
	})
	builder.SuccessOK(order)
}

// OrdersByEmail handles GET /api/admin/orders.
//
// @Summary  Orders placed with an email address
// @Tags     Admin
// @Produce  json
// @Param    email query string true "Customer email"
// @Success  200 {object} dto.SuccessResponse{data=[]model.Order}
// @Failure  400 {object} dto.ErrorResponse "Missing email"
// @Failure  401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure  403 {object} dto.ErrorResponse "Not an admin"
// @Failure  502 {object} dto.ErrorResponse "Catalog unavailable"
// @Security BearerAuth
// @Router   /api/admin/orders [get]
func (h *Handler) OrdersByEmail(c *gin.Context) {
	builder := NewResponseBuilder(c)

	email := c.Query("email")
	if email == "" {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyValidationEmail, nil)
		return
	}

	orders, err := h.checkout.OrdersByEmail(c.Request.Context(), email)
	if err != nil {
		builder.Fail(err)
		return
	}
	if orders == nil {
		orders = []model.Order{}
	}
	builder.SuccessOK(orders)
}
