package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/guttosm/storefront-service/internal/catalogapi"
	"github.com/guttosm/storefront-service/internal/domain/dto"
	"github.com/guttosm/storefront-service/internal/domain/model"
	"github.com/guttosm/storefront-service/internal/i18n"
)

func (h *Handler) respondProducts(c *gin.Context, products []model.Product, err error) {
	builder := NewResponseBuilder(c)
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(dto.NewProductCards(products))
}

// ListProducts handles GET /api/products.
//
// @Summary  List active products
// @Tags     Products
// @Produce  json
// @Success  200 {object} dto.SuccessResponse{data=[]dto.ProductCard}
// @Failure  502 {object} dto.ErrorResponse "Catalog unavailable"
// @Router   /api/products [get]
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.storefront.Products(c.Request.Context())
	h.respondProducts(c, products, err)
}

// FeaturedProducts handles GET /api/products/featured.
//
// @Summary  List featured products
// @Tags     Products
// @Produce  json
// @Success  200 {object} dto.SuccessResponse{data=[]dto.ProductCard}
// @Failure  502 {object} dto.ErrorResponse "Catalog unavailable"
// @Router   /api/products/featured [get]
func (h *Handler) FeaturedProducts(c *gin.Context) {
	products, err := h.storefront.FeaturedProducts(c.Request.Context())
	h.respondProducts(c, products, err)
}

// SearchProducts handles GET /api/products/search.
//
// @Summary  Search products by name
// @Tags     Products
// @Produce  json
// @Param    q query string false "Search term"
// @Success  200 {object} dto.SuccessResponse{data=[]dto.ProductCard}
// @Failure  502 {object} dto.ErrorResponse "Catalog unavailable"
// @Router   /api/products/search [get]
func (h *Handler) SearchProducts(c *gin.Context) {
	products, err := h.storefront.SearchProducts(c.Request.Context(), c.Query("q"))
	h.respondProducts(c, products, err)
}

// parsePriceBound reads an optional non-negative decimal query parameter.
func parsePriceBound(c *gin.Context, name string) (*decimal.Decimal, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return nil, false
	}
	return &d, true
}

// ProductsByPrice handles GET /api/products/by-price.
//
// @Summary  List products in a price range
// @Tags     Products
// @Produce  json
// @Param    min_price query number false "Lower bound, inclusive"
// @Param    max_price query number false "Upper bound, inclusive"
// @Success  200 {object} dto.SuccessResponse{data=[]dto.ProductCard}
// @Failure  400 {object} dto.ErrorResponse "Invalid price range"
// @Failure  502 {object} dto.ErrorResponse "Catalog unavailable"
// @Router   /api/products/by-price [get]
func (h *Handler) ProductsByPrice(c *gin.Context) {
	lo, okLo := parsePriceBound(c, "min_price")
	hi, okHi := parsePriceBound(c, "max_price")
	if !okLo || !okHi || (lo != nil && hi != nil && lo.GreaterThan(*hi)) {
		NewResponseBuilder(c).Error(http.StatusBadRequest, i18n.ErrKeyValidationPriceRange, nil)
		return
	}
	products, err := h.storefront.ProductsByPrice(c.Request.Context(), lo, hi)
	h.respondProducts(c, products, err)
}

// ProductsByCategory handles GET /api/products/by-category.
//
// @Summary  List products of a category
// @Tags     Products
// @Produce  json
// @Param    category query string true "Category slug"
// @Success  200 {object} dto.SuccessResponse{data=[]dto.ProductCard}
// @Failure  400 {object} dto.ErrorResponse "Missing category"
// @Failure  502 {object} dto.ErrorResponse "Catalog unavailable"
// @Router   /api/products/by-category [get]
func (h *Handler) ProductsByCategory(c *gin.Context) {
	slug := c.Query("category")
	if slug == "" {
		NewResponseBuilder(c).Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, nil)
		return
	}
	products, err := h.storefront.ProductsByCategory(c.Request.Context(), slug)
	h.respondProducts(c, products, err)
}

// ProductDetail handles GET /api/products/{slug}.
//
// @Summary      Product page
// @Description  Returns the product, its sale pricing when it is sold below its original price, and up to five related products.
// @Tags         Products
// @Produce      json
// @Param        slug path string true "Product slug"
// @Success      200 {object} dto.SuccessResponse{data=dto.ProductDetailResponse}
// @Failure      404 {object} dto.ErrorResponse "Product not found"
// @Failure      502 {object} dto.ErrorResponse "Catalog unavailable"
// @Router       /api/products/{slug} [get]
func (h *Handler) ProductDetail(c *gin.Context) {
	builder := NewResponseBuilder(c)

	detail, err := h.storefront.ProductDetail(c.Request.Context(), c.Param("slug"))
	if errors.Is(err, catalogapi.ErrNotFound) {
		builder.Error(http.StatusNotFound, i18n.ErrKeyProductNotFound, nil)
		return
	}
	if err != nil {
		builder.Fail(err)
		return
	}

	resp := dto.ProductDetailResponse{
		Product: detail.Product,
		Related: dto.NewProductCards(detail.Related),
	}
	if detail.Quote != nil {
		quote := h.priceQuoteResponse(*detail.Quote)
		resp.Pricing = &quote
	}
	builder.SuccessOK(resp)
}

// ListCategories handles GET /api/categories.
//
// @Summary  List categories
// @Tags     Catalog
// @Produce  json
// @Success  200 {object} dto.SuccessResponse{data=[]model.Category}
// @Failure  502 {object} dto.ErrorResponse "Catalog unavailable"
// @Router   /api/categories [get]
func (h *Handler) ListCategories(c *gin.Context) {
	builder := NewResponseBuilder(c)
	categories, err := h.storefront.Categories(c.Request.Context())
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(categories)
}

// CategoryProducts handles GET /api/categories/{slug}/products.
//
// @Summary  List the products of a category
// @Tags     Catalog
// @Produce  json
// @Param    slug path string true "Category slug"
// @Success  200 {object} dto.SuccessResponse{data=[]dto.ProductCard}
// @Failure  404 {object} dto.ErrorResponse "Category not found"
// @Failure  502 {object} dto.ErrorResponse "Catalog unavailable"
// @Router   /api/categories/{slug}/products [get]
func (h *Handler) CategoryProducts(c *gin.Context) {
	products, err := h.storefront.CategoryProducts(c.Request.Context(), c.Param("slug"))
	h.respondProducts(c, products, err)
}

// ListTags handles GET /api/tags.
//
// @Summary  List tags
// @Tags     Catalog
// @Produce  json
// @Success  200 {object} dto.SuccessResponse{data=[]model.Tag}
// @Failure  502 {object} dto.ErrorResponse "Catalog unavailable"
// @Router   /api/tags [get]
func (h *Handler) ListTags(c *gin.Context) {
	builder := NewResponseBuilder(c)
	tags, err := h.storefront.Tags(c.Request.Context())
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(tags)
}

// TagProducts handles GET /api/tags/{slug}/products.
//
// @Summary  List the products carrying a tag
// @Tags     Catalog
// @Produce  json
// @Param    slug path string true "Tag slug"
// @Success  200 {object} dto.SuccessResponse{data=[]dto.ProductCard}
// @Failure  404 {object} dto.ErrorResponse "Tag not found"
// @Failure  502 {object} dto.ErrorResponse "Catalog unavailable"
// @Router   /api/tags/{slug}/products [get]
func (h *Handler) TagProducts(c *gin.Context) {
	products, err := h.storefront.TagProducts(c.Request.Context(), c.Param("slug"))
	h.respondProducts(c, products, err)
}

// Settings handles GET /api/settings.
//
// @Summary  Site settings
// @Tags     Catalog
// @Produce  json
// @Success  200 {object} dto.SuccessResponse{data=model.SiteSettings}
// @Failure  502 {object} dto.ErrorResponse "Catalog unavailable"
// @Router   /api/settings [get]
func (h *Handler) Settings(c *gin.Context) {
	builder := NewResponseBuilder(c)
	settings, err := h.storefront.Settings(c.Request.Context())
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(settings)
}
