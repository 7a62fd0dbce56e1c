package routes

import (
	"net/http"

	"github.com/dukerupert/sif/internal/middleware"
	"github.com/dukerupert/sif/internal/router"
)

// Register wires all storefront API routes onto the router.
//
// Auth endpoints get a stricter rate limit than the rest of the API since
// they are the usual target for credential stuffing.
func Register(r *router.Router, deps Deps) {
	// Product browsing
	r.Get("/api/products", deps.CatalogHandler.List)
	r.Get("/api/products/filters", deps.CatalogHandler.FilterOptions)
	r.Get("/api/products/new", deps.CatalogHandler.NewArrivals)
	r.Get("/api/products/sale", deps.CatalogHandler.OnSale)
	r.Get("/api/products/featured", deps.CatalogHandler.Featured)
	r.Get("/api/products/{id}", deps.CatalogHandler.Get)
	r.Get("/api/categories", deps.CatalogHandler.Categories)

	// Reviews
	r.Get("/api/products/{id}/reviews", deps.ReviewHandler.List)
	r.Get("/api/products/{id}/reviews/stats", deps.ReviewHandler.Stats)

	// Shopping cart
	r.Get("/api/cart", deps.CartHandler.View)
	r.Post("/api/cart/items", deps.CartHandler.Add)
	r.Put("/api/cart/items", deps.CartHandler.Update)
	r.Delete("/api/cart/items/{product_id}", deps.CartHandler.Remove)
	r.Delete("/api/cart", deps.CartHandler.Clear)

	// Wishlist. Browsing and editing work anonymously against local state;
	// sync needs the signed-in customer's server-side list.
	r.Get("/api/wishlist", deps.WishlistHandler.View)
	r.Post("/api/wishlist", deps.WishlistHandler.Add)
	r.Post("/api/wishlist/toggle", deps.WishlistHandler.Toggle)
	r.Delete("/api/wishlist/{product_id}", deps.WishlistHandler.Remove)
	r.Get("/api/wishlist/products", deps.WishlistHandler.Products, middleware.RequireAuth)
	r.Post("/api/wishlist/sync", deps.WishlistHandler.Sync, middleware.RequireAuth)

	// Checkout
	r.Post("/api/checkout/summary", deps.CheckoutHandler.Summary)
	r.Get("/api/checkout/shipping-options", deps.CheckoutHandler.ShippingOptions)
	r.Post("/api/checkout/coupon", deps.CheckoutHandler.CheckCoupon, middleware.RequireAuth)
	r.Post("/api/checkout/orders", deps.CheckoutHandler.PlaceOrder,
		middleware.RateLimit(middleware.StrictRateLimiterConfig()))

	// Order history (authenticated)
	orders := r.Group(middleware.RequireAuth)
	orders.Get("/api/orders", deps.OrderHandler.List)
	orders.Get("/api/orders/{id}", deps.OrderHandler.Get)
	orders.Post("/api/orders/{id}/cancel", deps.OrderHandler.Cancel)

	// Authentication
	authLimit := middleware.RateLimit(middleware.StrictRateLimiterConfig())
	r.Post("/api/auth/login", deps.AuthHandler.Login, authLimit)
	r.Post("/api/auth/register", deps.AuthHandler.Register, authLimit)
	r.Post("/api/auth/forgot-password", deps.AuthHandler.ForgotPassword, authLimit)
	r.Post("/api/auth/reset-password", deps.AuthHandler.ResetPassword, authLimit)
	r.Post("/api/auth/logout", deps.AuthHandler.Logout)
	r.Get("/api/auth/me", deps.AuthHandler.Me)

	// Review writes (authenticated)
	reviews := r.Group(middleware.RequireAuth)
	reviews.Post("/api/reviews", deps.ReviewHandler.Create)
	reviews.Put("/api/reviews/{id}", deps.ReviewHandler.Update)
	reviews.Delete("/api/reviews/{id}", deps.ReviewHandler.Delete)

	// Operational endpoints
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	if deps.MetricsHandler != nil {
		r.Handle(http.MethodGet, "/metrics", deps.MetricsHandler)
	}
}
