package routes

import (
	"net/http"

	"github.com/dukerupert/sif/internal/handler"
)

// Deps contains the handlers for all storefront API routes.
type Deps struct {
	// Product browsing
	CatalogHandler *handler.CatalogHandler

	// Local cart
	CartHandler *handler.CartHandler

	// Wishlist
	WishlistHandler *handler.WishlistHandler

	// Checkout and order history
	CheckoutHandler *handler.CheckoutHandler
	OrderHandler    *handler.OrderHandler

	// Sessions
	AuthHandler *handler.AuthHandler

	// Product reviews
	ReviewHandler *handler.ReviewHandler

	// Operational endpoints
	MetricsHandler http.Handler
}
