package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/guttosm/storefront-service/internal/catalogapi"
	"github.com/guttosm/storefront-service/internal/domain/dto"
	"github.com/guttosm/storefront-service/internal/domain/model"
	"github.com/guttosm/storefront-service/internal/logger"
)

var (
	// ErrProductUnavailable means the catalog does not serve the ordered
	// product. Inactive products are not served.
	ErrProductUnavailable = errors.New("product is not available")
	// ErrInvalidStatus means an order status update names an unknown status.
	ErrInvalidStatus = errors.New("invalid order status")
	// ErrEmptyStatusUpdate means an order status update changes nothing.
	ErrEmptyStatusUpdate = errors.New("empty order status update")
)

// OrderSummary is a placed order with the amounts the storefront charged.
type OrderSummary struct {
	Order          model.Order
	Product        model.Product
	Quantity       int
	UnitPrice      decimal.Decimal
	BumpOfferPrice decimal.Decimal
	Total          decimal.Decimal
}

// CheckoutService places and manages orders.
type CheckoutService interface {
	PlaceOrder(ctx context.Context, req dto.CheckoutRequest) (OrderSummary, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, req dto.UpdateOrderStatusRequest) (model.Order, error)
	OrdersByEmail(ctx context.Context, email string) ([]model.Order, error)
}

// CheckoutServiceImpl implements CheckoutService against the catalog API.
type CheckoutServiceImpl struct {
	catalog        catalogapi.API
	bumpOfferPrice decimal.Decimal
}

var _ CheckoutService = (*CheckoutServiceImpl)(nil)

// NewCheckoutService creates a checkout service charging bumpOfferPrice for the bump offer.
func NewCheckoutService(catalog catalogapi.API, bumpOfferPrice decimal.Decimal) *CheckoutServiceImpl {
	return &CheckoutServiceImpl{catalog: catalog, bumpOfferPrice: bumpOfferPrice}
}

// PlaceOrder validates req, prices it from the current product price and
// creates the order remotely.
func (s *CheckoutServiceImpl) PlaceOrder(ctx context.Context, req dto.CheckoutRequest) (OrderSummary, error) {
	if err := req.Validate(); err != nil {
		return OrderSummary{}, err
	}

	product, err := s.catalog.Product(ctx, req.ProductID)
	if errors.Is(err, catalogapi.ErrNotFound) {
		return OrderSummary{}, ErrProductUnavailable
	}
	if err != nil {
		return OrderSummary{}, fmt.Errorf("load product %d: %w", req.ProductID, err)
	}

	draft := model.OrderDraft{
		Email:          req.Email,
		Phone:          req.Phone,
		CustomerName:   req.CustomerName,
		ProductID:      product.ID,
		Quantity:       req.Quantity,
		BumpOfferAdded: req.BumpOfferAdded,
	}
	bump := decimal.Zero
	if req.BumpOfferAdded {
		bump = s.bumpOfferPrice
		draft.BumpOfferPrice = decimal.NewNullDecimal(bump)
	}

	order, err := s.catalog.CreateOrder(ctx, draft)
	if err != nil {
		return OrderSummary{}, fmt.Errorf("create order: %w", err)
	}

	total := model.OrderTotal(product.Price, req.Quantity, req.BumpOfferAdded, bump)
	if !order.TotalAmount.IsZero() && !order.TotalAmount.Equal(total) {
		log := logger.Component("checkout")
		log.Warn().
			Int64("order_id", order.ID).
			Str("expected_total", total.StringFixed(2)).
			Str("remote_total", order.TotalAmount.StringFixed(2)).
			Msg("order total differs from remote total")
	}

	return OrderSummary{
		Order:          order,
		Product:        product,
		Quantity:       req.Quantity,
		UnitPrice:      product.Price,
		BumpOfferPrice: bump,
		Total:          total,
	}, nil
}

// UpdateOrderStatus forwards a partial update of an order. Status may be
// omitted when only the payment id or download link changes.
func (s *CheckoutServiceImpl) UpdateOrderStatus(ctx context.Context, orderID int64, req dto.UpdateOrderStatusRequest) (model.Order, error) {
	if req.Status == "" && req.PaymentID == "" && req.DownloadLink == "" {
		return model.Order{}, ErrEmptyStatusUpdate
	}
	status := model.OrderStatus(req.Status)
	if req.Status != "" && !status.Valid() {
		return model.Order{}, ErrInvalidStatus
	}
	return s.catalog.UpdateOrderStatus(ctx, orderID, model.StatusUpdate{
		Status:       status,
		PaymentID:    req.PaymentID,
		DownloadLink: req.DownloadLink,
	})
}

// OrdersByEmail lists the orders placed with email.
func (s *CheckoutServiceImpl) OrdersByEmail(ctx context.Context, email string) ([]model.Order, error) {
	return s.catalog.OrdersByEmail(ctx, email)
}
