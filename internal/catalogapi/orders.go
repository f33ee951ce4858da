package catalogapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/guttosm/storefront-service/internal/domain/model"
)

// CreateOrder submits an order. The remote API prices it and returns it with its id.
func (c *Client) CreateOrder(ctx context.Context, draft model.OrderDraft) (model.Order, error) {
	var o model.Order
	err := c.do(ctx, "create_order", http.MethodPost, c.resolve("/orders/", nil), draft, &o)
	return o, err
}

// UpdateOrderStatus patches status, payment id or download link of an order.
func (c *Client) UpdateOrderStatus(ctx context.Context, id int64, update model.StatusUpdate) (model.Order, error) {
	var o model.Order
	path := "/orders/" + strconv.FormatInt(id, 10) + "/update_status/"
	err := c.do(ctx, "update_order_status", http.MethodPatch, c.resolve(path, nil), update, &o)
	return o, err
}

// OrdersByEmail lists the orders placed with email.
func (c *Client) OrdersByEmail(ctx context.Context, email string) ([]model.Order, error) {
	return getList[model.Order](ctx, c, "orders_by_email", "/orders/by_email/", url.Values{"email": {email}})
}
