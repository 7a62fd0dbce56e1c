package payment

import (
	"context"
	"log/slog"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"

	"github.com/dukerupert/sif/internal/domain"
)

// StripeProvider charges cards through Stripe Payment Intents.
type StripeProvider struct {
	logger *slog.Logger
}

// NewStripeProvider configures the Stripe client with the secret key.
func NewStripeProvider(secretKey string, logger *slog.Logger) *StripeProvider {
	stripe.Key = secretKey
	return &StripeProvider{
		logger: logger.With("component", "stripe_provider"),
	}
}

// Process creates and confirms a payment intent for the tokenized
// payment method. The order reference doubles as the idempotency key so
// a retried checkout can't double-charge.
func (p *StripeProvider) Process(ctx context.Context, params ProcessParams) (*Result, error) {
	currency := params.Currency
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}

	piParams := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(params.AmountCents),
		Currency:      stripe.String(currency),
		PaymentMethod: stripe.String(params.Token),
		Confirm:       stripe.Bool(true),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
	}
	if params.Email != "" {
		piParams.ReceiptEmail = stripe.String(params.Email)
	}
	if params.OrderRef != "" {
		piParams.SetIdempotencyKey(params.OrderRef)
	}
	piParams.Context = ctx

	intent, err := paymentintent.New(piParams)
	if err != nil {
		p.logger.Error("payment intent failed", "error", err)
		return nil, domain.WrapError(err, domain.EPAYMENT, "payment.stripe", "Payment could not be processed")
	}

	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		p.logger.Warn("payment intent not succeeded", "status", intent.Status, "intent_id", intent.ID)
		return nil, domain.Errorf(domain.EPAYMENT, "payment.stripe", "payment not completed: %s", intent.Status)
	}

	return &Result{
		PaymentID: intent.ID,
		Status:    string(intent.Status),
	}, nil
}
