package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dukerupert/sif/internal/domain"
)

// ListProducts fetches the full product catalog.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ListNewProducts fetches the backend's pre-filtered new-arrivals list.
func (c *Client) ListNewProducts(ctx context.Context) ([]domain.Product, error) {
	return c.listProductsWhere(ctx, "is_new=true")
}

// ListSaleProducts fetches the backend's pre-filtered sale list.
func (c *Client) ListSaleProducts(ctx context.Context) ([]domain.Product, error) {
	return c.listProductsWhere(ctx, "is_sale=true")
}

// ListFeaturedProducts fetches the backend's curated featured list.
func (c *Client) ListFeaturedProducts(ctx context.Context) ([]domain.Product, error) {
	return c.listProductsWhere(ctx, "featured=true")
}

func (c *Client) listProductsWhere(ctx context.Context, query string) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.do(ctx, http.MethodGet, "/products?"+query, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ListCategories fetches the catalog's category list.
func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetProduct fetches a single product by ID.
func (c *Client) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	var product domain.Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, &product); err != nil {
		if domain.IsCode(err, domain.ENOTFOUND) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}
