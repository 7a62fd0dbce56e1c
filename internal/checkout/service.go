package checkout

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dukerupert/sif/internal/domain"
	"github.com/dukerupert/sif/internal/payment"
	"github.com/dukerupert/sif/internal/shipping"
)

// Cart is the slice of the cart store the checkout flow needs.
type Cart interface {
	Summary() domain.CartSummary
	Clear(ctx context.Context)
}

// CouponAPI validates coupon codes against the backend.
type CouponAPI interface {
	ValidateCoupon(ctx context.Context, code string, orderTotalCents int64) (*domain.Coupon, error)
}

// OrderAPI creates and confirms orders on the backend.
type OrderAPI interface {
	CreateOrder(ctx context.Context, params CreateOrderParams) (*domain.Order, error)
	ConfirmOrderPayment(ctx context.Context, orderID int64, paymentID string) error
}

// CreateOrderParams is the order payload sent to the backend.
type CreateOrderParams struct {
	Items    []domain.CartItem
	Summary  domain.CheckoutSummary
	Shipping domain.ShippingAddress
	Email    string
}

// PlaceOrderRequest carries everything needed to place an order.
type PlaceOrderRequest struct {
	Email      string                 `json:"email" validate:"required,email"`
	Shipping   domain.ShippingAddress `json:"shipping_address" validate:"required"`
	Payment    domain.PaymentDetails  `json:"payment" validate:"required"`
	CouponCode string                 `json:"coupon_code"`
}

// Service drives the checkout flow: pricing, payment, order creation,
// and cart cleanup.
type Service struct {
	cart     Cart
	calc     *Calculator
	coupons  CouponAPI
	orders   OrderAPI
	payments payment.Provider
	validate *validator.Validate
	logger   *slog.Logger
}

// NewService creates a checkout service.
func NewService(cart Cart, calc *Calculator, coupons CouponAPI, orders OrderAPI, payments payment.Provider, logger *slog.Logger) *Service {
	return &Service{
		cart:     cart,
		calc:     calc,
		coupons:  coupons,
		orders:   orders,
		payments: payments,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger.With("component", "checkout_service"),
	}
}

// Summary prices the current cart, applying the coupon code if given.
// A code the backend does not know still yields a breakdown: the coupon
// degrades to a zero discount with the reason in CouponError, the same
// way the calculator treats an ineligible coupon.
func (s *Service) Summary(ctx context.Context, couponCode string) (*domain.CheckoutSummary, error) {
	cart := s.cart.Summary()

	coupon, err := s.lookupCoupon(ctx, couponCode, cart.SubtotalCents)
	if err != nil {
		switch domain.ErrorCode(err) {
		case domain.ENOTFOUND, domain.EINVALID:
			summary, serr := s.calc.Summarize(ctx, cart, nil)
			if serr != nil {
				return nil, serr
			}
			summary.CouponError = domain.ErrorMessage(err)
			return summary, nil
		}
		return nil, err
	}

	return s.calc.Summarize(ctx, cart, coupon)
}

// ShippingOptions lists the shipping methods offered at checkout.
func (s *Service) ShippingOptions(ctx context.Context) ([]shipping.Option, error) {
	return s.calc.ShippingOptions(ctx)
}

// CheckCoupon validates a coupon code against the current cart, first
// with the backend and then against the local eligibility rules. The
// coupon is returned only when both agree it applies.
func (s *Service) CheckCoupon(ctx context.Context, code string) (*domain.Coupon, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domain.Invalid("checkout.coupon", "Coupon code is required")
	}

	cart := s.cart.Summary()
	coupon, err := s.coupons.ValidateCoupon(ctx, code, cart.SubtotalCents)
	if err != nil {
		return nil, err
	}
	if err := s.calc.ValidateCoupon(coupon, cart.SubtotalCents); err != nil {
		return nil, err
	}
	return coupon, nil
}

// PlaceOrder runs the full checkout: validate the request, price the
// cart, create the order, take payment, confirm, and clear the cart.
// The cart is cleared only after payment succeeds, so a declined card
// leaves it intact for another attempt.
func (s *Service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*domain.Order, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError("checkout.place", err)
	}

	cart := s.cart.Summary()
	if cart.ItemCount == 0 {
		return nil, domain.ErrEmptyCart
	}

	coupon, err := s.lookupCoupon(ctx, req.CouponCode, cart.SubtotalCents)
	if err != nil {
		return nil, err
	}
	if coupon != nil {
		// Placing an order with a coupon the customer believes is
		// applied must fail loudly, unlike the summary preview.
		if err := s.calc.ValidateCoupon(coupon, cart.SubtotalCents); err != nil {
			return nil, err
		}
	}

	summary, err := s.calc.Summarize(ctx, cart, coupon)
	if err != nil {
		return nil, err
	}

	order, err := s.orders.CreateOrder(ctx, CreateOrderParams{
		Items:    cart.Items,
		Summary:  *summary,
		Shipping: req.Shipping,
		Email:    req.Email,
	})
	if err != nil {
		return nil, domain.WrapError(err, domain.ErrorCode(err), "checkout.place", "failed to create order")
	}

	result, err := s.payments.Process(ctx, payment.ProcessParams{
		AmountCents: summary.TotalCents,
		Currency:    "usd",
		Method:      req.Payment.Method,
		Token:       req.Payment.Token,
		Email:       req.Email,
		OrderRef:    order.OrderNumber,
	})
	if err != nil {
		s.logger.Warn("payment failed, order left pending",
			"order_number", order.OrderNumber, "error", err)
		return nil, err
	}

	if err := s.orders.ConfirmOrderPayment(ctx, order.ID, result.PaymentID); err != nil {
		// The charge went through; surface the order so support can
		// reconcile instead of the customer paying twice.
		s.logger.Error("payment succeeded but confirmation failed",
			"order_number", order.OrderNumber, "payment_id", result.PaymentID, "error", err)
		return nil, domain.WrapError(err, domain.EINTERNAL, "checkout.place", "order confirmation failed")
	}

	s.cart.Clear(ctx)

	order.Status = domain.OrderStatusPaid
	order.PaymentID = result.PaymentID
	s.logger.Info("order placed",
		"order_number", order.OrderNumber, "total_cents", summary.TotalCents, "items", summary.ItemCount)
	return order, nil
}

func (s *Service) lookupCoupon(ctx context.Context, code string, orderTotalCents int64) (*domain.Coupon, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, nil
	}

	coupon, err := s.coupons.ValidateCoupon(ctx, code, orderTotalCents)
	if err != nil {
		return nil, err
	}
	return coupon, nil
}

// validationError converts validator output into field-level domain errors.
func validationError(op string, err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return domain.Invalid(op, err.Error())
	}

	var out error
	for _, fe := range verrs {
		out = domain.AddFieldError(out, strings.ToLower(fe.Field()), "failed "+fe.Tag()+" validation")
	}
	if ve, ok := out.(*domain.ValidationError); ok {
		ve.Op = op
	}
	return out
}
