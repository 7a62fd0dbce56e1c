package domain

// =============================================================================
// CART DOMAIN ERRORS
// =============================================================================

var (
	ErrCartItemNotFound = &Error{Code: ENOTFOUND, Message: "Cart item not found"}
	ErrInvalidQuantity  = &Error{Code: EINVALID, Message: "Quantity must be greater than 0"}
	ErrSizeRequired     = &Error{Code: EINVALID, Message: "A size must be selected"}
	ErrColorRequired    = &Error{Code: EINVALID, Message: "A color must be selected"}
)

// CartItem is one line of the shopping cart. Lines are keyed by the
// (ProductID, Size, Color) triple: adding the same product in the same
// variant merges into the existing line instead of creating a new one.
type CartItem struct {
	Product  Product `json:"product"`
	Size     string  `json:"size"`
	Color    string  `json:"color"`
	Quantity int     `json:"quantity"`
}

// Key returns the merge key identifying this line's variant.
func (i CartItem) Key() CartItemKey {
	return CartItemKey{ProductID: i.Product.ID, Size: i.Size, Color: i.Color}
}

// LineSubtotalCents is quantity times unit price for this line.
func (i CartItem) LineSubtotalCents() int64 {
	return int64(i.Quantity) * i.Product.PriceCents
}

// CartItemKey uniquely identifies a cart line.
type CartItemKey struct {
	ProductID int64  `json:"product_id"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

// CartSummary aggregates the cart's items with its derived totals.
type CartSummary struct {
	Items         []CartItem `json:"items"`
	ItemCount     int        `json:"item_count"`
	SubtotalCents int64      `json:"subtotal_cents"`
}
