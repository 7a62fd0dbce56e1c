package tax

import (
	"context"
	"fmt"
	"math"
)

// PercentageCalculator calculates tax using a simple percentage rate.
type PercentageCalculator struct {
	rate float64 // e.g., 0.16 for 16%
}

// NewPercentageCalculator creates a new percentage-based tax calculator.
// Returns an error for rates outside [0, 1].
func NewPercentageCalculator(rate float64) (*PercentageCalculator, error) {
	if rate < 0 || rate > 1 {
		return nil, ErrInvalidTaxRate
	}
	return &PercentageCalculator{rate: rate}, nil
}

// CalculateTax computes value-added tax on the given subtotal using the
// configured rate, rounded to the nearest cent.
func (c *PercentageCalculator) CalculateTax(ctx context.Context, params TaxParams) (*TaxResult, error) {
	if params.SubtotalCents < 0 {
		return nil, ErrNegativeSubtotal
	}

	taxCents := int64(math.Round(float64(params.SubtotalCents) * c.rate))

	return &TaxResult{
		TaxCents: taxCents,
		Rate:     c.rate,
		Name:     fmt.Sprintf("Sales Tax (%g%%)", c.rate*100),
	}, nil
}
