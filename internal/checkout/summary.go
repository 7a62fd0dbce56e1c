// Package checkout implements order pricing and placement: the summary
// calculator that turns cart contents and an optional coupon into a full
// price breakdown, and the service that drives payment and order creation.
package checkout

import (
	"context"
	"math"
	"time"

	"github.com/dukerupert/sif/internal/domain"
	"github.com/dukerupert/sif/internal/shipping"
	"github.com/dukerupert/sif/internal/tax"
)

// Calculator prices a cart. Tax and shipping are delegated so the
// policies can vary by deployment.
type Calculator struct {
	tax      tax.Calculator
	shipping shipping.Provider

	// now is swappable for tests.
	now func() time.Time
}

// NewCalculator creates a summary calculator.
func NewCalculator(taxCalc tax.Calculator, shipProvider shipping.Provider) *Calculator {
	return &Calculator{
		tax:      taxCalc,
		shipping: shipProvider,
		now:      time.Now,
	}
}

// ShippingOptions lists the shipping methods the provider offers.
func (c *Calculator) ShippingOptions(ctx context.Context) ([]shipping.Option, error) {
	options, err := c.shipping.Options(ctx)
	if err != nil {
		return nil, domain.WrapError(err, domain.ErrorCode(err), "checkout.shipping_options", "failed to list shipping options")
	}
	return options, nil
}

// ValidateCoupon checks every eligibility rule for the coupon against
// the given subtotal. Rules are checked in a fixed order so the user
// always sees the most fundamental failure first: active flag, validity
// window, usage limit, then minimum order amount.
func (c *Calculator) ValidateCoupon(coupon *domain.Coupon, subtotalCents int64) error {
	if coupon == nil {
		return domain.ErrCouponNotFound
	}
	if !coupon.IsActive {
		return domain.ErrCouponInactive
	}

	now := c.now()
	if !coupon.ValidFrom.IsZero() && now.Before(coupon.ValidFrom) {
		return domain.ErrCouponNotYet
	}
	if !coupon.ValidUntil.IsZero() && now.After(coupon.ValidUntil) {
		return domain.ErrCouponExpired
	}
	if coupon.UsageLimit > 0 && coupon.UsedCount >= coupon.UsageLimit {
		return domain.ErrCouponExhausted
	}
	if coupon.MinOrderCents > 0 && subtotalCents < coupon.MinOrderCents {
		return domain.ErrCouponMinOrder
	}
	return nil
}

// Discount computes the coupon's discount against the subtotal. The
// result never exceeds the subtotal, and a configured maximum discount
// caps percentage coupons.
func Discount(coupon *domain.Coupon, subtotalCents int64) int64 {
	if coupon == nil || subtotalCents <= 0 {
		return 0
	}

	var discount int64
	switch coupon.Type {
	case domain.CouponPercentage:
		discount = int64(math.Round(float64(subtotalCents) * float64(coupon.Value) / 100))
	case domain.CouponFixed:
		discount = coupon.Value
	default:
		return 0
	}

	if coupon.MaxDiscountCents > 0 && discount > coupon.MaxDiscountCents {
		discount = coupon.MaxDiscountCents
	}
	if discount > subtotalCents {
		discount = subtotalCents
	}
	if discount < 0 {
		discount = 0
	}
	return discount
}

// Summarize prices the cart with an optional coupon. Tax and the
// free-shipping threshold are evaluated against the full subtotal;
// total = subtotal + tax + shipping - discount, never below zero.
// An ineligible coupon yields no discount rather than failing the
// breakdown; the rejection reason is carried in CouponError.
func (c *Calculator) Summarize(ctx context.Context, cart domain.CartSummary, coupon *domain.Coupon) (*domain.CheckoutSummary, error) {
	subtotal := cart.SubtotalCents

	var discount int64
	var couponErr string
	if coupon != nil {
		if err := c.ValidateCoupon(coupon, subtotal); err != nil {
			couponErr = domain.ErrorMessage(err)
			coupon = nil
		} else {
			discount = Discount(coupon, subtotal)
		}
	}

	taxResult, err := c.tax.CalculateTax(ctx, tax.TaxParams{SubtotalCents: subtotal})
	if err != nil {
		return nil, domain.WrapError(err, domain.ErrorCode(err), "checkout.summarize", "failed to calculate tax")
	}

	quote, err := c.shipping.Quote(ctx, shipping.QuoteParams{
		SubtotalCents: subtotal,
		ItemCount:     cart.ItemCount,
	})
	if err != nil {
		return nil, domain.WrapError(err, domain.ErrorCode(err), "checkout.summarize", "failed to quote shipping")
	}

	total := subtotal + taxResult.TaxCents + quote.CostCents - discount
	if total < 0 {
		total = 0
	}

	return &domain.CheckoutSummary{
		SubtotalCents: subtotal,
		DiscountCents: discount,
		TaxCents:      taxResult.TaxCents,
		ShippingCents: quote.CostCents,
		TotalCents:    total,
		ItemCount:     cart.ItemCount,
		AppliedCoupon: coupon,
		CouponError:   couponErr,
	}, nil
}
