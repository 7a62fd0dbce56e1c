package domain

import (
	"time"
)

// WishlistItem is a saved product with the time it was added.
// Wishlist entries are keyed by product ID alone; variants are chosen
// later when the item moves to the cart.
type WishlistItem struct {
	Product Product   `json:"product"`
	AddedAt time.Time `json:"added_at"`
}

// Wishlist-specific errors.
var (
	ErrWishlistItemNotFound = &Error{Code: ENOTFOUND, Message: "Product is not in the wishlist"}
)
