package handler

import (
	"context"
	"net/http"

	"github.com/dukerupert/sif/internal/checkout"
	"github.com/dukerupert/sif/internal/domain"
)

// CheckoutHandler serves the checkout summary and order placement endpoints.
type CheckoutHandler struct {
	checkout *checkout.Service
}

func NewCheckoutHandler(svc *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{checkout: svc}
}

type summaryRequest struct {
	CouponCode string `json:"coupon_code"`
}

// Summary handles POST /api/checkout/summary. The current cart is priced
// with the optional coupon applied; an ineligible coupon still yields a
// summary, with the reason surfaced in coupon_error.
func (h *CheckoutHandler) Summary(w http.ResponseWriter, r *http.Request) {
	// An absent body just means no coupon.
	var req summaryRequest
	if err := decodeJSONOptional(r, &req); err != nil {
		RespondError(w, r, err)
		return
	}

	summary, err := h.checkout.Summary(r.Context(), req.CouponCode)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	RespondJSON(w, http.StatusOK, summary)
}

// ShippingOptions handles GET /api/checkout/shipping-options.
func (h *CheckoutHandler) ShippingOptions(w http.ResponseWriter, r *http.Request) {
	options, err := h.checkout.ShippingOptions(r.Context())
	if err != nil {
		RespondError(w, r, err)
		return
	}

	RespondJSON(w, http.StatusOK, map[string]interface{}{"options": options})
}

type couponCheckRequest struct {
	Code string `json:"code"`
}

// CheckCoupon handles POST /api/checkout/coupon. Unlike the summary
// endpoint, an ineligible code is reported as an error.
func (h *CheckoutHandler) CheckCoupon(w http.ResponseWriter, r *http.Request) {
	var req couponCheckRequest
	if err := decodeJSON(r, &req); err != nil {
		RespondError(w, r, err)
		return
	}

	coupon, err := h.checkout.CheckCoupon(r.Context(), req.Code)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	RespondJSON(w, http.StatusOK, coupon)
}

// PlaceOrder handles POST /api/checkout/orders.
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req checkout.PlaceOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		RespondError(w, r, err)
		return
	}

	order, err := h.checkout.PlaceOrder(r.Context(), req)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	RespondJSON(w, http.StatusCreated, order)
}

// OrderAPI is the backend surface the order history endpoints need.
// *api.Client satisfies it.
type OrderAPI interface {
	ListOrders(ctx context.Context) ([]domain.Order, error)
	GetOrder(ctx context.Context, orderID int64) (*domain.Order, error)
	CancelOrder(ctx context.Context, orderID int64) (*domain.Order, error)
}

// OrderHandler serves the signed-in customer's order history.
type OrderHandler struct {
	orders OrderAPI
}

func NewOrderHandler(orders OrderAPI) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// List handles GET /api/orders.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListOrders(r.Context())
	if err != nil {
		RespondError(w, r, err)
		return
	}

	RespondJSON(w, http.StatusOK, map[string]interface{}{
		"orders": orders,
		"total":  len(orders),
	})
}

// Get handles GET /api/orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	order, err := h.orders.GetOrder(r.Context(), id)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	RespondJSON(w, http.StatusOK, order)
}

// Cancel handles POST /api/orders/{id}/cancel.
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	order, err := h.orders.CancelOrder(r.Context(), id)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	RespondJSON(w, http.StatusOK, order)
}
