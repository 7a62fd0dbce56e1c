package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dukerupert/sif/internal/domain"
)

// ListWishlist fetches the signed-in user's saved products.
func (c *Client) ListWishlist(ctx context.Context) ([]domain.WishlistItem, error) {
	var items []domain.WishlistItem
	if err := c.do(ctx, http.MethodGet, "/wishlist", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// WishlistProducts fetches full product details for the signed-in
// user's saved items.
func (c *Client) WishlistProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.do(ctx, http.MethodGet, "/wishlist/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// AddToWishlist saves a product on the server. Adding a product that is
// already saved is treated as success.
func (c *Client) AddToWishlist(ctx context.Context, productID int64) error {
	payload := struct {
		ProductID int64 `json:"product_id"`
	}{ProductID: productID}

	err := c.do(ctx, http.MethodPost, "/wishlist", payload, nil)
	if err != nil && domain.IsCode(err, domain.ECONFLICT) {
		return nil
	}
	return err
}

// RemoveFromWishlist deletes a saved product on the server. Removing a
// product that is not saved is treated as success.
func (c *Client) RemoveFromWishlist(ctx context.Context, productID int64) error {
	err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/wishlist/%d", productID), nil, nil)
	if err != nil && domain.IsCode(err, domain.ENOTFOUND) {
		return nil
	}
	return err
}
