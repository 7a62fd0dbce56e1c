package handler

import (
	"net/http"

	"github.com/dukerupert/sif/internal/catalog"
	"github.com/dukerupert/sif/internal/domain"
	"github.com/dukerupert/sif/internal/store"
)

// CartHandler serves the shopping cart endpoints. Products are resolved
// through the catalog so the cart never trusts client-supplied prices.
type CartHandler struct {
	cart    *store.CartStore
	catalog *catalog.Service
}

func NewCartHandler(cart *store.CartStore, svc *catalog.Service) *CartHandler {
	return &CartHandler{cart: cart, catalog: svc}
}

type cartItemRequest struct {
	ProductID int64  `json:"product_id"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity"`
}

// View handles GET /api/cart.
func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, h.cart.Summary())
}

// Add handles POST /api/cart/items.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		RespondError(w, r, err)
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), req.ProductID)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	if err := h.cart.Add(r.Context(), *product, req.Size, req.Color, req.Quantity); err != nil {
		RespondError(w, r, err)
		return
	}

	RespondJSON(w, http.StatusCreated, h.cart.Summary())
}

// Update handles PUT /api/cart/items. A quantity of zero or less removes
// the line.
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		RespondError(w, r, err)
		return
	}

	key := domain.CartItemKey{ProductID: req.ProductID, Size: req.Size, Color: req.Color}
	if err := h.cart.UpdateQuantity(r.Context(), key, req.Quantity); err != nil {
		RespondError(w, r, err)
		return
	}

	RespondJSON(w, http.StatusOK, h.cart.Summary())
}

// Remove handles DELETE /api/cart/items/{product_id}. Size and color come
// from query parameters since they are part of the line's identity.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "product_id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	key := domain.CartItemKey{
		ProductID: productID,
		Size:      r.URL.Query().Get("size"),
		Color:     r.URL.Query().Get("color"),
	}
	if err := h.cart.Remove(r.Context(), key); err != nil {
		RespondError(w, r, err)
		return
	}

	RespondJSON(w, http.StatusOK, h.cart.Summary())
}

// Clear handles DELETE /api/cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.cart.Clear(r.Context())
	RespondJSON(w, http.StatusOK, h.cart.Summary())
}
