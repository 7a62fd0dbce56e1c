package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukerupert/sif/internal/catalog"
	"github.com/dukerupert/sif/internal/domain"
	"github.com/dukerupert/sif/internal/router"
	"github.com/dukerupert/sif/internal/storage"
	"github.com/dukerupert/sif/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubProductSource struct {
	products []domain.Product
}

func (s stubProductSource) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.products, nil
}

func (s stubProductSource) ListNewProducts(ctx context.Context) ([]domain.Product, error) {
	return s.filtered(func(p domain.Product) bool { return p.IsNew }), nil
}

func (s stubProductSource) ListSaleProducts(ctx context.Context) ([]domain.Product, error) {
	return s.filtered(func(p domain.Product) bool { return p.IsSale }), nil
}

func (s stubProductSource) ListFeaturedProducts(ctx context.Context) ([]domain.Product, error) {
	return s.filtered(func(p domain.Product) bool { return p.Rating >= 4.5 }), nil
}

func (s stubProductSource) filtered(keep func(domain.Product) bool) []domain.Product {
	var out []domain.Product
	for _, p := range s.products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func (s stubProductSource) ListCategories(ctx context.Context) ([]domain.Category, error) {
	seen := make(map[domain.ProductCategory]bool)
	var out []domain.Category
	for i, p := range s.products {
		if seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, domain.Category{ID: int64(i + 1), Name: string(p.Category), Slug: p.Category})
	}
	return out, nil
}

func (s stubProductSource) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func wrapDress() domain.Product {
	return domain.Product{
		ID:             1,
		Name:           "Wrap Midi Dress",
		Brand:          "Aurelle",
		Category:       domain.CategoryDresses,
		PriceCents:     4999,
		Sizes:          []string{"S", "M", "L"},
		AvailableSizes: []string{"S", "M"},
		Colors:         []string{"red", "navy"},
	}
}

func newCartRouter(t *testing.T) (*router.Router, *store.CartStore) {
	t.Helper()
	ctx := context.Background()

	cart := store.NewCartStore(ctx, storage.NewMemoryStore(), "sess-1", testLogger())
	svc := catalog.NewService(stubProductSource{products: []domain.Product{wrapDress()}}, testLogger())
	h := NewCartHandler(cart, svc)

	r := router.New()
	r.Get("/api/cart", h.View)
	r.Post("/api/cart/items", h.Add)
	r.Put("/api/cart/items", h.Update)
	r.Delete("/api/cart/items/{product_id}", h.Remove)
	r.Delete("/api/cart", h.Clear)
	return r, cart
}

func doJSON(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCartHandler_Add(t *testing.T) {
	t.Run("adds a line and returns the summary", func(t *testing.T) {
		r, _ := newCartRouter(t)

		rec := doJSON(t, r, http.MethodPost, "/api/cart/items",
			`{"product_id":1,"size":"M","color":"red","quantity":2}`)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var summary domain.CartSummary
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
		assert.Equal(t, 2, summary.ItemCount)
		assert.Equal(t, int64(9998), summary.SubtotalCents)
	})

	t.Run("unknown product is 404", func(t *testing.T) {
		r, _ := newCartRouter(t)

		rec := doJSON(t, r, http.MethodPost, "/api/cart/items",
			`{"product_id":99,"size":"M","color":"red","quantity":1}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), domain.ENOTFOUND)
	})

	t.Run("missing size is 400 with field detail", func(t *testing.T) {
		r, _ := newCartRouter(t)

		rec := doJSON(t, r, http.MethodPost, "/api/cart/items",
			`{"product_id":1,"color":"red","quantity":1}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body is 400", func(t *testing.T) {
		r, _ := newCartRouter(t)

		rec := doJSON(t, r, http.MethodPost, "/api/cart/items", `{broken`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCartHandler_Update(t *testing.T) {
	r, cart := newCartRouter(t)
	rec := doJSON(t, r, http.MethodPost, "/api/cart/items",
		`{"product_id":1,"size":"M","color":"red","quantity":2}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	t.Run("changes the quantity", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPut, "/api/cart/items",
			`{"product_id":1,"size":"M","color":"red","quantity":5}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 5, cart.ItemCount())
	})

	t.Run("zero quantity removes the line", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPut, "/api/cart/items",
			`{"product_id":1,"size":"M","color":"red","quantity":0}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Zero(t, cart.ItemCount())
	})
}

func TestCartHandler_Remove(t *testing.T) {
	r, cart := newCartRouter(t)
	rec := doJSON(t, r, http.MethodPost, "/api/cart/items",
		`{"product_id":1,"size":"M","color":"red","quantity":1}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	t.Run("line identity includes size and color", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodDelete, "/api/cart/items/1?size=L&color=red", "")
		require.Equal(t, http.StatusOK, rec.Code, "absent-line removal is a no-op")
		assert.Equal(t, 1, cart.ItemCount(), "different size is a different line")
	})

	t.Run("removes the matching line", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodDelete, "/api/cart/items/1?size=M&color=red", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Zero(t, cart.ItemCount())
	})
}

func TestCartHandler_Clear(t *testing.T) {
	r, cart := newCartRouter(t)
	doJSON(t, r, http.MethodPost, "/api/cart/items",
		`{"product_id":1,"size":"M","color":"red","quantity":3}`)

	rec := doJSON(t, r, http.MethodDelete, "/api/cart", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, cart.ItemCount())
}

func TestCartHandler_View(t *testing.T) {
	r, _ := newCartRouter(t)
	doJSON(t, r, http.MethodPost, "/api/cart/items",
		`{"product_id":1,"size":"S","color":"navy","quantity":1}`)

	rec := doJSON(t, r, http.MethodGet, "/api/cart", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var summary domain.CartSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	require.Len(t, summary.Items, 1)
	assert.Equal(t, "navy", summary.Items[0].Color)
	assert.Equal(t, int64(4999), summary.SubtotalCents)
}
