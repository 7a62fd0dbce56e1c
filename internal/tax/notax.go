package tax

import "context"

// NoTaxCalculator returns zero tax for all calculations.
// Used for tax-exempt jurisdictions.
type NoTaxCalculator struct{}

// NewNoTaxCalculator creates a new no-tax calculator.
func NewNoTaxCalculator() *NoTaxCalculator {
	return &NoTaxCalculator{}
}

// CalculateTax always returns zero tax.
func (c *NoTaxCalculator) CalculateTax(ctx context.Context, params TaxParams) (*TaxResult, error) {
	return &TaxResult{
		TaxCents: 0,
		Rate:     0,
		Name:     "No Tax",
	}, nil
}
