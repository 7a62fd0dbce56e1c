// Package payment abstracts the payment processor used at checkout.
package payment

import (
	"context"
)

// Provider defines the interface for charging a customer.
// Implementations: RESTProvider, StripeProvider, MockProvider.
type Provider interface {
	// Process charges the customer and returns a payment reference.
	Process(ctx context.Context, params ProcessParams) (*Result, error)
}

// ProcessParams contains everything needed to take a payment.
type ProcessParams struct {
	AmountCents int64
	Currency    string
	Method      string // "card" or "paypal"
	Token       string // Tokenized payment method
	Email       string
	OrderRef    string // Used as the idempotency key
}

// Result is the processor's confirmation of a successful charge.
type Result struct {
	PaymentID string
	Status    string
}
