package tax

import (
	"context"
)

// MockCalculator is a test implementation of Calculator.
type MockCalculator struct {
	CalculateTaxFunc func(ctx context.Context, params TaxParams) (*TaxResult, error)
}

// NewMockCalculator creates a mock that returns zero tax unless a
// function is configured.
func NewMockCalculator() *MockCalculator {
	return &MockCalculator{}
}

// CalculateTax delegates to the configured function or returns a zero result.
func (m *MockCalculator) CalculateTax(ctx context.Context, params TaxParams) (*TaxResult, error) {
	if m.CalculateTaxFunc != nil {
		return m.CalculateTaxFunc(ctx, params)
	}
	return &TaxResult{}, nil
}
