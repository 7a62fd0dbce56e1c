package shipping

import (
	"context"
)

// Provider defines the interface for computing shipping cost at checkout.
// Implementations: FlatRateProvider, MockProvider.
type Provider interface {
	// Quote returns the shipping charge for an order.
	Quote(ctx context.Context, params QuoteParams) (*Quote, error)

	// Options lists the shipping methods offered, sorted by cost.
	Options(ctx context.Context) ([]Option, error)
}

// QuoteParams contains parameters for quoting shipping.
type QuoteParams struct {
	// SubtotalCents is the cart subtotal; free-shipping thresholds are
	// evaluated against it.
	SubtotalCents int64
	ItemCount     int
	Country       string
}

// Option is a shipping method shown at checkout.
type Option struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CostCents   int64  `json:"cost_cents"`

	// Delivery estimate in business days.
	EstimatedDaysMin int `json:"estimated_days_min"`
	EstimatedDaysMax int `json:"estimated_days_max"`

	IsDefault bool `json:"is_default"`
}

// Quote represents a shipping charge.
type Quote struct {
	CostCents   int64
	ServiceName string
	// Free reports whether a free-shipping threshold was met.
	Free bool
}
