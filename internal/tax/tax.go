package tax

import (
	"context"
)

// DefaultRate is the sales tax rate applied when none is configured.
const DefaultRate = 0.16

// Calculator defines the interface for tax calculation.
// Implementations: PercentageCalculator, NoTaxCalculator
type Calculator interface {
	// CalculateTax computes tax for a checkout.
	// Returns tax amount in cents.
	CalculateTax(ctx context.Context, params TaxParams) (*TaxResult, error)
}

// TaxParams contains all information needed for tax calculation.
// SubtotalCents is the cart subtotal after discounts; shipping is not
// taxed.
type TaxParams struct {
	SubtotalCents int64
	Country       string // Optional, for future jurisdiction-based rates
	State         string
}

// TaxResult contains the calculated tax amount.
type TaxResult struct {
	TaxCents int64
	Rate     float64
	Name     string // e.g., "Sales Tax (16%)"
}
