package catalogapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/guttosm/storefront-service/internal/domain/model"
)

// API is the catalog and order surface the storefront depends on.
type API interface {
	Products(ctx context.Context) ([]model.Product, error)
	FeaturedProducts(ctx context.Context) ([]model.Product, error)
	SearchProducts(ctx context.Context, term string) ([]model.Product, error)
	ProductsByPrice(ctx context.Context, lo, hi *decimal.Decimal) ([]model.Product, error)
	ProductsByCategory(ctx context.Context, categorySlug string) ([]model.Product, error)
	Product(ctx context.Context, id int64) (model.Product, error)
	ProductBySlug(ctx context.Context, slug string) (model.Product, error)

	Categories(ctx context.Context) ([]model.Category, error)
	CategoryProducts(ctx context.Context, slug string) ([]model.Product, error)
	Tags(ctx context.Context) ([]model.Tag, error)
	TagProducts(ctx context.Context, slug string) ([]model.Product, error)
	Settings(ctx context.Context) (model.SiteSettings, error)

	CreateOrder(ctx context.Context, draft model.OrderDraft) (model.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, update model.StatusUpdate) (model.Order, error)
	OrdersByEmail(ctx context.Context, email string) ([]model.Order, error)
}

var _ API = (*Client)(nil)

// Products lists active products, newest first.
func (c *Client) Products(ctx context.Context) ([]model.Product, error) {
	return getList[model.Product](ctx, c, "list_products", "/products/", nil)
}

// FeaturedProducts lists active featured products.
func (c *Client) FeaturedProducts(ctx context.Context) ([]model.Product, error) {
	return getList[model.Product](ctx, c, "featured_products", "/products/featured/", nil)
}

// SearchProducts matches term against names and descriptions.
func (c *Client) SearchProducts(ctx context.Context, term string) ([]model.Product, error) {
	return getList[model.Product](ctx, c, "search_products", "/products/", url.Values{"search": {term}})
}

// ProductsByPrice lists products priced within [lo, hi]. Nil bounds are open.
func (c *Client) ProductsByPrice(ctx context.Context, lo, hi *decimal.Decimal) ([]model.Product, error) {
	q := url.Values{}
	if lo != nil {
		q.Set("min_price", lo.String())
	}
	if hi != nil {
		q.Set("max_price", hi.String())
	}
	return getList[model.Product](ctx, c, "products_by_price", "/products/by_price/", q)
}

// ProductsByCategory lists products of one category; an empty slug lists all.
func (c *Client) ProductsByCategory(ctx context.Context, categorySlug string) ([]model.Product, error) {
	var q url.Values
	if categorySlug != "" {
		q = url.Values{"category": {categorySlug}}
	}
	return getList[model.Product](ctx, c, "products_by_category", "/products/by_category/", q)
}

// Product fetches the detail view of one product, related products included.
func (c *Client) Product(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := c.do(ctx, "get_product", http.MethodGet, c.resolve("/products/"+strconv.FormatInt(id, 10)+"/", nil), nil, &p)
	return p, err
}

// ProductBySlug finds a product through search and then loads its detail view.
func (c *Client) ProductBySlug(ctx context.Context, slug string) (model.Product, error) {
	found, err := c.SearchProducts(ctx, slug)
	if err != nil {
		return model.Product{}, err
	}
	for _, p := range found {
		if p.Slug == slug {
			return c.Product(ctx, p.ID)
		}
	}
	return model.Product{}, ErrNotFound
}

// Categories lists all categories.
func (c *Client) Categories(ctx context.Context) ([]model.Category, error) {
	return getList[model.Category](ctx, c, "list_categories", "/categories/", nil)
}

// CategoryProducts lists active products of the category with the given slug.
func (c *Client) CategoryProducts(ctx context.Context, slug string) ([]model.Product, error) {
	return getList[model.Product](ctx, c, "category_products", "/categories/"+url.PathEscape(slug)+"/products/", nil)
}

// Tags lists all tags.
func (c *Client) Tags(ctx context.Context) ([]model.Tag, error) {
	return getList[model.Tag](ctx, c, "list_tags", "/tags/", nil)
}

// TagProducts lists active products carrying the tag with the given slug.
func (c *Client) TagProducts(ctx context.Context, slug string) ([]model.Product, error) {
	return getList[model.Product](ctx, c, "tag_products", "/tags/"+url.PathEscape(slug)+"/products/", nil)
}

// Settings fetches the singleton site settings.
func (c *Client) Settings(ctx context.Context) (model.SiteSettings, error) {
	var s model.SiteSettings
	err := c.do(ctx, "get_settings", http.MethodGet, c.resolve("/settings/1/", nil), nil, &s)
	return s, err
}
