package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dukerupert/sif/internal/checkout"
	"github.com/dukerupert/sif/internal/domain"
)

// CreateOrder submits a new pending order to the backend.
func (c *Client) CreateOrder(ctx context.Context, params checkout.CreateOrderParams) (*domain.Order, error) {
	payload := struct {
		Items    []domain.CartItem      `json:"items"`
		Summary  domain.CheckoutSummary `json:"summary"`
		Shipping domain.ShippingAddress `json:"shipping_address"`
		Email    string                 `json:"email"`
	}{
		Items:    params.Items,
		Summary:  params.Summary,
		Shipping: params.Shipping,
		Email:    params.Email,
	}

	var order domain.Order
	if err := c.do(ctx, http.MethodPost, "/orders", payload, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ConfirmOrderPayment marks an order paid with the processor's reference.
func (c *Client) ConfirmOrderPayment(ctx context.Context, orderID int64, paymentID string) error {
	payload := struct {
		PaymentID string `json:"payment_id"`
	}{PaymentID: paymentID}

	return c.do(ctx, http.MethodPost, fmt.Sprintf("/orders/%d/confirm", orderID), payload, nil)
}

// GetOrder fetches one of the signed-in user's orders.
func (c *Client) GetOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	var order domain.Order
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/orders/%d", orderID), nil, &order); err != nil {
		if domain.IsCode(err, domain.ENOTFOUND) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// CancelOrder cancels one of the signed-in user's orders. Only orders
// the backend still considers cancellable succeed; anything already
// shipped comes back as ECONFLICT.
func (c *Client) CancelOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	var order domain.Order
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/orders/%d/cancel", orderID), nil, &order); err != nil {
		if domain.IsCode(err, domain.ENOTFOUND) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// ListOrders fetches the signed-in user's order history.
func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
