package catalogapi

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/guttosm/storefront-service/internal/circuitbreaker"
	"github.com/guttosm/storefront-service/internal/domain/model"
)

// WithCircuitBreaker wraps api so that, after repeated outages, calls fail fast
// with ErrUnavailable instead of waiting on a dead dependency. Only
// unavailability trips the breaker; 4xx answers do not.
type WithCircuitBreaker struct {
	api API
	cb  *circuitbreaker.CircuitBreaker
}

var _ API = (*WithCircuitBreaker)(nil)

// IsOutage is the breaker failure classifier for catalog calls.
func IsOutage(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// NewWithCircuitBreaker wraps api with cb. Configure cb with IsOutage.
func NewWithCircuitBreaker(api API, cb *circuitbreaker.CircuitBreaker) *WithCircuitBreaker {
	return &WithCircuitBreaker{api: api, cb: cb}
}

// CircuitBreaker exposes the breaker for health reporting.
func (w *WithCircuitBreaker) CircuitBreaker() *circuitbreaker.CircuitBreaker {
	return w.cb
}

func guard[T any](ctx context.Context, w *WithCircuitBreaker, fn func(context.Context) (T, error)) (T, error) {
	v, err := circuitbreaker.Call(ctx, w.cb, fn)
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return v, errors.Join(ErrUnavailable, err)
	}
	return v, err
}

func (w *WithCircuitBreaker) Products(ctx context.Context) ([]model.Product, error) {
	return guard(ctx, w, w.api.Products)
}

func (w *WithCircuitBreaker) FeaturedProducts(ctx context.Context) ([]model.Product, error) {
	return guard(ctx, w, w.api.FeaturedProducts)
}

func (w *WithCircuitBreaker) SearchProducts(ctx context.Context, term string) ([]model.Product, error) {
	return guard(ctx, w, func(ctx context.Context) ([]model.Product, error) {
		return w.api.SearchProducts(ctx, term)
	})
}

func (w *WithCircuitBreaker) ProductsByPrice(ctx context.Context, lo, hi *decimal.Decimal) ([]model.Product, error) {
	return guard(ctx, w, func(ctx context.Context) ([]model.Product, error) {
		return w.api.ProductsByPrice(ctx, lo, hi)
	})
}

func (w *WithCircuitBreaker) ProductsByCategory(ctx context.Context, categorySlug string) ([]model.Product, error) {
	return guard(ctx, w, func(ctx context.Context) ([]model.Product, error) {
		return w.api.ProductsByCategory(ctx, categorySlug)
	})
}

func (w *WithCircuitBreaker) Product(ctx context.Context, id int64) (model.Product, error) {
	return guard(ctx, w, func(ctx context.Context) (model.Product, error) {
		return w.api.Product(ctx, id)
	})
}

func (w *WithCircuitBreaker) ProductBySlug(ctx context.Context, slug string) (model.Product, error) {
	return guard(ctx, w, func(ctx context.Context) (model.Product, error) {
		return w.api.ProductBySlug(ctx, slug)
	})
}

func (w *WithCircuitBreaker) Categories(ctx context.Context) ([]model.Category, error) {
	return guard(ctx, w, w.api.Categories)
}

func (w *WithCircuitBreaker) CategoryProducts(ctx context.Context, slug string) ([]model.Product, error) {
	return guard(ctx, w, func(ctx context.Context) ([]model.Product, error) {
		return w.api.CategoryProducts(ctx, slug)
	})
}

func (w *WithCircuitBreaker) Tags(ctx context.Context) ([]model.Tag, error) {
	return guard(ctx, w, w.api.Tags)
}

func (w *WithCircuitBreaker) TagProducts(ctx context.Context, slug string) ([]model.Product, error) {
	return guard(ctx, w, func(ctx context.Context) ([]model.Product, error) {
		return w.api.TagProducts(ctx, slug)
	})
}

func (w *WithCircuitBreaker) Settings(ctx context.Context) (model.SiteSettings, error) {
	return guard(ctx, w, w.api.Settings)
}

func (w *WithCircuitBreaker) CreateOrder(ctx context.Context, draft model.OrderDraft) (model.Order, error) {
	return guard(ctx, w, func(ctx context.Context) (model.Order, error) {
		return w.api.CreateOrder(ctx, draft)
	})
}

func (w *WithCircuitBreaker) UpdateOrderStatus(ctx context.Context, id int64, update model.StatusUpdate) (model.Order, error) {
	return guard(ctx, w, func(ctx context.Context) (model.Order, error) {
		return w.api.UpdateOrderStatus(ctx, id, update)
	})
}

func (w *WithCircuitBreaker) OrdersByEmail(ctx context.Context, email string) ([]model.Order, error) {
	return guard(ctx, w, func(ctx context.Context) ([]model.Order, error) {
		return w.api.OrdersByEmail(ctx, email)
	})
}
