package tax_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukerupert/sif/internal/tax"
)

// Test_PercentageCalculator_DefaultRate validates the storefront default:
// a $144.98 discounted subtotal at 16% is $23.20 of tax.
func Test_PercentageCalculator_DefaultRate(t *testing.T) {
	calc, err := tax.NewPercentageCalculator(tax.DefaultRate)
	require.NoError(t, err)

	result, err := calc.CalculateTax(context.Background(), tax.TaxParams{
		SubtotalCents: 14498,
	})

	assert.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, int64(2320), result.TaxCents, "round(14498 * 0.16) = 2320 cents")
	assert.Equal(t, 0.16, result.Rate)
	assert.Equal(t, "Sales Tax (16%)", result.Name)
}

// Test_PercentageCalculator_DifferentTaxRates validates calculation accuracy across various rates
func Test_PercentageCalculator_DifferentTaxRates(t *testing.T) {
	tests := []struct {
		name        string
		rate        float64
		subtotal    int64
		expectedTax int64
		explanation string
	}{
		{
			name:        "zero percent rate",
			rate:        0.0,
			subtotal:    10000,
			expectedTax: 0,
			explanation: "10000 * 0.00 = 0",
		},
		{
			name:        "five percent rate",
			rate:        0.05,
			subtotal:    10000,
			expectedTax: 500,
			explanation: "10000 * 0.05 = 500",
		},
		{
			name:        "sixteen percent rate",
			rate:        0.16,
			subtotal:    4999,
			expectedTax: 800,
			explanation: "4999 * 0.16 = 799.84, rounds to 800",
		},
		{
			name:        "rounds half up",
			rate:        0.16,
			subtotal:    3,
			expectedTax: 0,
			explanation: "3 * 0.16 = 0.48, rounds to 0",
		},
		{
			name:        "rounds nearest cent",
			rate:        0.16,
			subtotal:    4,
			expectedTax: 1,
			explanation: "4 * 0.16 = 0.64, rounds to 1",
		},
		{
			name:        "very small rate",
			rate:        0.001,
			subtotal:    100000,
			expectedTax: 100,
			explanation: "100000 * 0.001 = 100",
		},
		{
			name:        "one hundred percent rate edge case",
			rate:        1.0,
			subtotal:    5000,
			expectedTax: 5000,
			explanation: "5000 * 1.0 = 5000 (edge case: tax equals subtotal)",
		},
		{
			name:        "zero subtotal",
			rate:        0.16,
			subtotal:    0,
			expectedTax: 0,
			explanation: "empty cart produces no tax",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc, err := tax.NewPercentageCalculator(tt.rate)
			require.NoError(t, err)

			result, err := calc.CalculateTax(context.Background(), tax.TaxParams{
				SubtotalCents: tt.subtotal,
			})

			assert.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, tt.expectedTax, result.TaxCents, tt.explanation)
		})
	}
}

func Test_PercentageCalculator_InvalidRate(t *testing.T) {
	_, err := tax.NewPercentageCalculator(-0.01)
	assert.ErrorIs(t, err, tax.ErrInvalidTaxRate)

	_, err = tax.NewPercentageCalculator(1.5)
	assert.ErrorIs(t, err, tax.ErrInvalidTaxRate)
}

func Test_PercentageCalculator_NegativeSubtotal(t *testing.T) {
	calc, err := tax.NewPercentageCalculator(0.16)
	require.NoError(t, err)

	_, err = calc.CalculateTax(context.Background(), tax.TaxParams{SubtotalCents: -100})
	assert.ErrorIs(t, err, tax.ErrNegativeSubtotal)
}

func Test_NoTaxCalculator(t *testing.T) {
	calc := tax.NewNoTaxCalculator()

	result, err := calc.CalculateTax(context.Background(), tax.TaxParams{SubtotalCents: 99999})

	assert.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, int64(0), result.TaxCents)
	assert.Equal(t, 0.0, result.Rate)
}
