// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/guttosm/storefront-service/internal/domain/model"
)

type MockCatalogAPI struct {
	mock.Mock
}

func (m *MockCatalogAPI) products(args mock.Arguments) ([]model.Product, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockCatalogAPI) product(args mock.Arguments) (model.Product, error) {
	if args.Get(0) == nil {
		return model.Product{}, args.Error(1)
	}
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *MockCatalogAPI) order(args mock.Arguments) (model.Order, error) {
	if args.Get(0) == nil {
		return model.Order{}, args.Error(1)
	}
	return args.Get(0).(model.Order), args.Error(1)
}

func (m *MockCatalogAPI) Products(ctx context.Context) ([]model.Product, error) {
	return m.products(m.Called(ctx))
}

func (m *MockCatalogAPI) FeaturedProducts(ctx context.Context) ([]model.Product, error) {
	return m.products(m.Called(ctx))
}

func (m *MockCatalogAPI) SearchProducts(ctx context.Context, term string) ([]model.Product, error) {
	return m.products(m.Called(ctx, term))
}

func (m *MockCatalogAPI) ProductsByPrice(ctx context.Context, lo, hi *decimal.Decimal) ([]model.Product, error) {
	return m.products(m.Called(ctx, lo, hi))
}

func (m *MockCatalogAPI) ProductsByCategory(ctx context.Context, categorySlug string) ([]model.Product, error) {
	return m.products(m.Called(ctx, categorySlug))
}

func (m *MockCatalogAPI) Product(ctx context.Context, id int64) (model.Product, error) {
	return m.product(m.Called(ctx, id))
}

func (m *MockCatalogAPI) ProductBySlug(ctx context.Context, slug string) (model.Product, error) {
	return m.product(m.Called(ctx, slug))
}

func (m *MockCatalogAPI) Categories(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockCatalogAPI) CategoryProducts(ctx context.Context, slug string) ([]model.Product, error) {
	return m.products(m.Called(ctx, slug))
}

func (m *MockCatalogAPI) Tags(ctx context.Context) ([]model.Tag, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Tag), args.Error(1)
}

func (m *MockCatalogAPI) TagProducts(ctx context.Context, slug string) ([]model.Product, error) {
	return m.products(m.Called(ctx, slug))
}

func (m *MockCatalogAPI) Settings(ctx context.Context) (model.SiteSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return model.SiteSettings{}, args.Error(1)
	}
	return args.Get(0).(model.SiteSettings), args.Error(1)
}

func (m *MockCatalogAPI) CreateOrder(ctx context.Context, draft model.OrderDraft) (model.Order, error) {
	return m.order(m.Called(ctx, draft))
}

func (m *MockCatalogAPI) UpdateOrderStatus(ctx context.Context, id int64, update model.StatusUpdate) (model.Order, error) {
	return m.order(m.Called(ctx, id, update))
}

func (m *MockCatalogAPI) OrdersByEmail(ctx context.Context, email string) ([]model.Order, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}
