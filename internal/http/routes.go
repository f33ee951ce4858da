package http

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/storefront-service/internal/middleware"
	"github.com/guttosm/storefront-service/internal/service"
)

// RouteGroup is a set of routes mounted under a router group.
type RouteGroup interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// StorefrontRoutes are the shopper-facing catalog, pricing, listing and
// checkout endpoints.
type StorefrontRoutes struct {
	handler     *Handler
	idempotency gin.HandlerFunc
}

// NewStorefrontRoutes creates the storefront routes. idempotency may be nil.
func NewStorefrontRoutes(handler *Handler, idempotency gin.HandlerFunc) *StorefrontRoutes {
	return &StorefrontRoutes{handler: handler, idempotency: idempotency}
}

// RegisterRoutes mounts the storefront routes on rg.
func (r *StorefrontRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	h := r.handler

	rg.POST("/pricing/calculate", h.CalculatePrice)

	rg.GET("/listing", h.CreateListing)
	rg.POST("/listing/:session/more", h.RevealMore)
	rg.DELETE("/listing/:session", h.CloseListing)

	rg.GET("/products", h.ListProducts)
	rg.GET("/products/featured", h.FeaturedProducts)
	rg.GET("/products/search", h.SearchProducts)
	rg.GET("/products/by-price", h.ProductsByPrice)
	rg.GET("/products/by-category", h.ProductsByCategory)
	rg.GET("/products/:slug", h.ProductDetail)

	rg.GET("/categories", h.ListCategories)
	rg.GET("/categories/:slug/products", h.CategoryProducts)
	rg.GET("/tags", h.ListTags)
	rg.GET("/tags/:slug/products", h.TagProducts)
	rg.GET("/settings", h.Settings)

	if r.idempotency != nil {
		rg.POST("/checkout", r.idempotency, h.Checkout)
	} else {
		rg.POST("/checkout", h.Checkout)
	}
}

// AdminRoutes are the bearer-token protected order, log and price editor endpoints.
type AdminRoutes struct {
	handler *Handler
	tokens  service.TokenService
	role    string
}

// NewAdminRoutes creates the admin routes. An empty role accepts any valid token.
func NewAdminRoutes(handler *Handler, tokens service.TokenService, role string) *AdminRoutes {
	return &AdminRoutes{handler: handler, tokens: tokens, role: role}
}

// RegisterRoutes mounts the admin routes on rg under /admin.
func (r *AdminRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin", middleware.JWTAuth(r.tokens))
	if r.role != "" {
		admin.Use(middleware.RequireRole(r.role))
	}

	admin.GET("/orders", r.handler.OrdersByEmail)
	admin.PATCH("/orders/:id/status", r.handler.UpdateOrderStatus)
	admin.GET("/logs", r.handler.QueryLogs)

	if r.handler.editors != nil {
		admin.POST("/pricing/editors", r.handler.OpenPriceEditor)
		admin.GET("/pricing/editors/:id", r.handler.PriceEditorState)
		admin.PATCH("/pricing/editors/:id", r.handler.EditPrice)
		admin.DELETE("/pricing/editors/:id", r.handler.ClosePriceEditor)
	}
}

var (
	_ RouteGroup = (*StorefrontRoutes)(nil)
	_ RouteGroup = (*AdminRoutes)(nil)
)
