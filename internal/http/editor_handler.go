package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/storefront-service/internal/domain/dto"
	"github.com/guttosm/storefront-service/internal/i18n"
	"github.com/guttosm/storefront-service/internal/pricing"
	"github.com/guttosm/storefront-service/internal/service"
)

var editorFields = map[string]pricing.Field{
	"original_price":      pricing.FieldOriginalPrice,
	"discount_percentage": pricing.FieldDiscountPercentage,
}

func editorResponse(id string, s service.EditorState) dto.PriceEditorResponse {
	return dto.PriceEditorResponse{
		EditorID:    id,
		Price:       s.Price,
		Info:        s.Info,
		Highlighted: s.Highlighted,
	}
}

// OpenPriceEditor handles POST /api/admin/pricing/editors.
//
// @Summary      Open a live price editor
// @Description  Mounts a discount calculator for a product form. When both fields already hold text the price is computed right away.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body dto.CalculatePriceRequest true "Initial field values"
// @Success      201 {object} dto.SuccessResponse{data=dto.PriceEditorResponse}
// @Failure      400 {object} dto.ErrorResponse "Malformed JSON"
// @Security     BearerAuth
// @Router       /api/admin/pricing/editors [post]
func (h *Handler) OpenPriceEditor(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequest[dto.CalculatePriceRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	id, state := h.editors.Open(req.OriginalPrice, req.DiscountPercentage)
	builder.SuccessCreated(editorResponse(id, state))
}

// EditPrice handles PATCH /api/admin/pricing/editors/{id}.
//
// @Summary      Change a price editor field
// @Description  Records new text for one field and recomputes. A valid result replaces the price and highlights it; otherwise the info line explains what is missing.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        id path string true "Editor id"
// @Param        request body dto.EditPriceRequest true "Field change"
// @Success      200 {object} dto.SuccessResponse{data=dto.PriceEditorResponse}
// @Failure      400 {object} dto.ErrorResponse "Unknown field"
// @Failure      404 {object} dto.ErrorResponse "Unknown or expired editor"
// @Security     BearerAuth
// @Router       /api/admin/pricing/editors/{id} [patch]
func (h *Handler) EditPrice(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequest[dto.EditPriceRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}
	field, ok := editorFields[req.Field]
	if !ok {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyValidationField, nil)
		return
	}

	id := c.Param("id")
	state, err := h.editors.Edit(id, field, req.Value)
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(editorResponse(id, state))
}

// PriceEditorState handles GET /api/admin/pricing/editors/{id}.
//
// @Summary  Read a price editor
// @Tags     Admin
// @Produce  json
// @Param    id path string true "Editor id"
// @Success  200 {object} dto.SuccessResponse{data=dto.PriceEditorResponse}
// @Failure  404 {object} dto.ErrorResponse "Unknown or expired editor"
// @Security BearerAuth
// @Router   /api/admin/pricing/editors/{id} [get]
func (h *Handler) PriceEditorState(c *gin.Context) {
	id := c.Param("id")
	state, err := h.editors.State(id)
	if err != nil {
		NewResponseBuilder(c).Fail(err)
		return
	}
	NewResponseBuilder(c).SuccessOK(editorResponse(id, state))
}

// ClosePriceEditor handles DELETE /api/admin/pricing/editors/{id}.
//
// @Summary  Close a price editor
// @Tags     Admin
// @Param    id path string true "Editor id"
// @Success  204
// @Failure  404 {object} dto.ErrorResponse "Unknown or expired editor"
// @Security BearerAuth
// @Router   /api/admin/pricing/editors/{id} [delete]
func (h *Handler) ClosePriceEditor(c *gin.Context) {
	if !h.editors.Close(c.Param("id")) {
		NewResponseBuilder(c).Fail(service.ErrEditorNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}
