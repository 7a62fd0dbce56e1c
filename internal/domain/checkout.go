package domain

import (
	"time"
)

// =============================================================================
// COUPON TYPES
// =============================================================================

// CouponType discriminates how a coupon's value is applied.
type CouponType string

const (
	// CouponPercentage discounts the subtotal by Value percent.
	CouponPercentage CouponType = "percentage"

	// CouponFixed discounts the subtotal by a fixed amount of cents.
	CouponFixed CouponType = "fixed"
)

// Coupon is a discount code as served by the backend. Value is a percent
// for percentage coupons and cents for fixed coupons.
type Coupon struct {
	ID          int64      `json:"id"`
	Code        string     `json:"code"`
	Type        CouponType `json:"type"`
	Value       int64      `json:"value"`
	Description string     `json:"description"`

	// Eligibility constraints. Zero values disable the constraint.
	MinOrderCents    int64  `json:"min_order_cents"`
	MaxDiscountCents int64  `json:"max_discount_cents"`
	UsageLimit       int    `json:"usage_limit"`
	UsedCount        int    `json:"used_count"`
	IsActive         bool   `json:"is_active"`

	ValidFrom  time.Time `json:"valid_from"`
	ValidUntil time.Time `json:"valid_until"`
}

// =============================================================================
// CHECKOUT TYPES
// =============================================================================

// CheckoutSummary is the full price breakdown for a cart at checkout.
// All amounts are cents.
type CheckoutSummary struct {
	SubtotalCents int64 `json:"subtotal_cents"`
	DiscountCents int64 `json:"discount_cents"`
	TaxCents      int64 `json:"tax_cents"`
	ShippingCents int64 `json:"shipping_cents"`
	TotalCents    int64 `json:"total_cents"`

	ItemCount     int     `json:"item_count"`
	AppliedCoupon *Coupon `json:"applied_coupon,omitempty"`

	// CouponError explains why a supplied coupon produced no discount.
	CouponError string `json:"coupon_error,omitempty"`
}

// ShippingAddress is the delivery address collected at checkout.
type ShippingAddress struct {
	FullName   string `json:"full_name" validate:"required"`
	Street     string `json:"street" validate:"required"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
	Country    string `json:"country" validate:"required,iso3166_1_alpha2"`
	Phone      string `json:"phone"`
}

// PaymentDetails carries a tokenized payment method. Raw card numbers
// never enter the system.
type PaymentDetails struct {
	Method string `json:"method" validate:"required,oneof=card paypal"`
	Token  string `json:"token" validate:"required"`
}

// OrderStatus tracks an order through its lifecycle.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// =============================================================================
// DOMAIN ERRORS
// =============================================================================

var (
	ErrCouponNotFound  = &Error{Code: ENOTFOUND, Message: "Coupon code not found"}
	ErrCouponInactive  = &Error{Code: EINVALID, Message: "This coupon is no longer active"}
	ErrCouponExpired   = &Error{Code: EINVALID, Message: "This coupon has expired"}
	ErrCouponNotYet    = &Error{Code: EINVALID, Message: "This coupon is not valid yet"}
	ErrCouponExhausted = &Error{Code: EINVALID, Message: "This coupon has reached its usage limit"}
	ErrCouponMinOrder  = &Error{Code: EINVALID, Message: "Order subtotal is below the coupon minimum"}
	ErrEmptyCart       = &Error{Code: EINVALID, Message: "Cart is empty"}
	ErrPaymentFailed   = &Error{Code: EPAYMENT, Message: "Payment could not be processed"}
)
