package handler

import (
	"net/http"

	"github.com/dukerupert/sif/internal/catalog"
	"github.com/dukerupert/sif/internal/store"
)

// WishlistHandler serves the wishlist endpoints.
type WishlistHandler struct {
	wishlist *store.WishlistStore
	catalog  *catalog.Service
	api      store.WishlistAPI
}

func NewWishlistHandler(wishlist *store.WishlistStore, svc *catalog.Service, api store.WishlistAPI) *WishlistHandler {
	return &WishlistHandler{wishlist: wishlist, catalog: svc, api: api}
}

type wishlistRequest struct {
	ProductID int64 `json:"product_id"`
}

// View handles GET /api/wishlist.
func (h *WishlistHandler) View(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, map[string]interface{}{
		"items": h.wishlist.Items(),
		"count": h.wishlist.Count(),
	})
}

// Add handles POST /api/wishlist. Adding a product that is already saved is
// a no-op.
func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req wishlistRequest
	if err := decodeJSON(r, &req); err != nil {
		RespondError(w, r, err)
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), req.ProductID)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	h.wishlist.Add(r.Context(), *product)
	RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"items": h.wishlist.Items(),
		"count": h.wishlist.Count(),
	})
}

// Toggle handles POST /api/wishlist/toggle. The response reports whether the
// product ended up saved.
func (h *WishlistHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var req wishlistRequest
	if err := decodeJSON(r, &req); err != nil {
		RespondError(w, r, err)
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), req.ProductID)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	added := h.wishlist.Toggle(r.Context(), *product)
	RespondJSON(w, http.StatusOK, map[string]interface{}{
		"added": added,
		"count": h.wishlist.Count(),
	})
}

// Remove handles DELETE /api/wishlist/{product_id}. Removing an absent
// product is a no-op.
func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "product_id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	h.wishlist.Remove(r.Context(), productID)
	RespondJSON(w, http.StatusOK, map[string]interface{}{
		"count": h.wishlist.Count(),
	})
}

// Products handles GET /api/wishlist/products. It returns full product
// records for the signed-in customer's server-side wishlist.
func (h *WishlistHandler) Products(w http.ResponseWriter, r *http.Request) {
	products, err := h.wishlist.Products(r.Context(), h.api)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	RespondJSON(w, http.StatusOK, map[string]interface{}{
		"products": products,
		"total":    len(products),
	})
}

// Sync handles POST /api/wishlist/sync. It reconciles the local wishlist
// with the signed-in customer's server-side list.
func (h *WishlistHandler) Sync(w http.ResponseWriter, r *http.Request) {
	if err := h.wishlist.Sync(r.Context(), h.api); err != nil {
		RespondError(w, r, err)
		return
	}

	RespondJSON(w, http.StatusOK, map[string]interface{}{
		"items": h.wishlist.Items(),
		"count": h.wishlist.Count(),
	})
}
