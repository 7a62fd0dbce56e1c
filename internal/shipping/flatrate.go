package shipping

import (
	"context"
	"fmt"
)

// FlatRateProvider charges a single flat rate, waived once the order
// subtotal reaches the free-shipping threshold.
type FlatRateProvider struct {
	costCents          int64
	freeThresholdCents int64 // 0 disables free shipping
	serviceName        string
}

// NewFlatRateProvider creates a flat-rate provider.
// freeThresholdCents <= 0 disables the free-shipping threshold.
func NewFlatRateProvider(costCents, freeThresholdCents int64) (*FlatRateProvider, error) {
	if costCents < 0 {
		return nil, ErrNegativeCost
	}
	return &FlatRateProvider{
		costCents:          costCents,
		freeThresholdCents: freeThresholdCents,
		serviceName:        "Standard Shipping",
	}, nil
}

// Quote returns the flat rate, or zero when the subtotal meets the
// free-shipping threshold. An empty cart ships for free because there is
// nothing to ship.
func (p *FlatRateProvider) Quote(ctx context.Context, params QuoteParams) (*Quote, error) {
	if params.SubtotalCents < 0 {
		return nil, ErrNegativeSubtotal
	}

	if params.ItemCount == 0 {
		return &Quote{CostCents: 0, ServiceName: p.serviceName, Free: true}, nil
	}

	if p.freeThresholdCents > 0 && params.SubtotalCents >= p.freeThresholdCents {
		return &Quote{CostCents: 0, ServiceName: p.serviceName, Free: true}, nil
	}

	return &Quote{CostCents: p.costCents, ServiceName: p.serviceName}, nil
}

// Options lists the single flat-rate method, noting the free-shipping
// threshold in the description when one is configured.
func (p *FlatRateProvider) Options(ctx context.Context) ([]Option, error) {
	description := "Delivered in 3-7 business days"
	if p.freeThresholdCents > 0 {
		description = fmt.Sprintf("Delivered in 3-7 business days. Free on orders over $%.2f",
			float64(p.freeThresholdCents)/100)
	}

	return []Option{
		{
			ID:               "standard",
			Name:             p.serviceName,
			Description:      description,
			CostCents:        p.costCents,
			EstimatedDaysMin: 3,
			EstimatedDaysMax: 7,
			IsDefault:        true,
		},
	}, nil
}
