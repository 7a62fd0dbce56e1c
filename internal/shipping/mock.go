package shipping

import (
	"context"
)

// MockProvider is a test implementation of Provider.
type MockProvider struct {
	QuoteFunc   func(ctx context.Context, params QuoteParams) (*Quote, error)
	OptionsFunc func(ctx context.Context) ([]Option, error)
}

// Quote delegates to the configured function or returns a zero quote.
func (m *MockProvider) Quote(ctx context.Context, params QuoteParams) (*Quote, error) {
	if m.QuoteFunc != nil {
		return m.QuoteFunc(ctx, params)
	}
	return &Quote{}, nil
}

// Options delegates to the configured function or returns no methods.
func (m *MockProvider) Options(ctx context.Context) ([]Option, error) {
	if m.OptionsFunc != nil {
		return m.OptionsFunc(ctx)
	}
	return nil, nil
}
