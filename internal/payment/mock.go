package payment

import (
	"context"
	"fmt"
	"sync/atomic"
)

// MockProvider is a test implementation of Provider. Without a configured
// function it approves every charge with a sequential payment ID.
type MockProvider struct {
	ProcessFunc func(ctx context.Context, params ProcessParams) (*Result, error)

	seq int64
}

// Process delegates to the configured function or approves the charge.
func (m *MockProvider) Process(ctx context.Context, params ProcessParams) (*Result, error) {
	if m.ProcessFunc != nil {
		return m.ProcessFunc(ctx, params)
	}
	n := atomic.AddInt64(&m.seq, 1)
	return &Result{
		PaymentID: fmt.Sprintf("mock_pay_%d", n),
		Status:    "succeeded",
	}, nil
}
