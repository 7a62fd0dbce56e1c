package api

import (
	"context"
	"net/http"

	"github.com/dukerupert/sif/internal/domain"
)

// ValidateCoupon asks the backend to validate a coupon code against the
// order total. Coupon validation is an authenticated call; without a
// token it fails fast with ErrNotAuthenticated before any network
// traffic. A code the backend does not know is reported as
// ErrCouponNotFound.
func (c *Client) ValidateCoupon(ctx context.Context, code string, orderTotalCents int64) (*domain.Coupon, error) {
	if c.token() == "" {
		return nil, domain.ErrNotAuthenticated
	}

	payload := struct {
		Code            string `json:"code"`
		OrderTotalCents int64  `json:"order_total_cents"`
	}{Code: code, OrderTotalCents: orderTotalCents}

	var coupon domain.Coupon
	if err := c.do(ctx, http.MethodPost, "/coupons/validate", payload, &coupon); err != nil {
		if domain.IsCode(err, domain.ENOTFOUND) {
			return nil, domain.ErrCouponNotFound
		}
		return nil, err
	}
	return &coupon, nil
}
