package domain

import (
	"time"
)

// Order-related domain errors.
var (
	ErrOrderNotFound = &Error{Code: ENOTFOUND, Message: "Order not found"}
)

// Order is a placed order as returned by the backend.
type Order struct {
	ID          int64           `json:"id"`
	OrderNumber string          `json:"order_number"`
	UserID      int64           `json:"user_id,omitempty"`
	Status      OrderStatus     `json:"status"`
	Items       []CartItem      `json:"items"`
	Summary     CheckoutSummary `json:"summary"`
	Shipping    ShippingAddress `json:"shipping_address"`
	PaymentID   string          `json:"payment_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
