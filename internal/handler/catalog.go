package handler

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dukerupert/sif/internal/catalog"
	"github.com/dukerupert/sif/internal/domain"
)

// CatalogHandler serves product browsing endpoints.
type CatalogHandler struct {
	catalog *catalog.Service
}

func NewCatalogHandler(svc *catalog.Service) *CatalogHandler {
	return &CatalogHandler{catalog: svc}
}

// List handles GET /api/products. Filter facets come from query parameters;
// repeated values are comma-separated (sizes=S,M).
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r.URL.Query())
	if err != nil {
		RespondError(w, r, err)
		return
	}

	products, err := h.catalog.FilterProducts(r.Context(), filter)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	RespondJSON(w, http.StatusOK, map[string]interface{}{
		"products": products,
		"total":    len(products),
	})
}

// Get handles GET /api/products/{id}.
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	RespondJSON(w, http.StatusOK, product)
}

// NewArrivals handles GET /api/products/new.
func (h *CatalogHandler) NewArrivals(w http.ResponseWriter, r *http.Request) {
	h.respondProductList(w, r, h.catalog.NewArrivals)
}

// OnSale handles GET /api/products/sale.
func (h *CatalogHandler) OnSale(w http.ResponseWriter, r *http.Request) {
	h.respondProductList(w, r, h.catalog.OnSale)
}

// Featured handles GET /api/products/featured.
func (h *CatalogHandler) Featured(w http.ResponseWriter, r *http.Request) {
	h.respondProductList(w, r, h.catalog.Featured)
}

func (h *CatalogHandler) respondProductList(w http.ResponseWriter, r *http.Request, list func(ctx context.Context) ([]domain.Product, error)) {
	products, err := list(r.Context())
	if err != nil {
		RespondError(w, r, err)
		return
	}

	RespondJSON(w, http.StatusOK, map[string]interface{}{
		"products": products,
		"total":    len(products),
	})
}

// Categories handles GET /api/categories.
func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.Categories(r.Context())
	if err != nil {
		RespondError(w, r, err)
		return
	}

	RespondJSON(w, http.StatusOK, map[string]interface{}{
		"categories": categories,
		"total":      len(categories),
	})
}

// FilterOptions handles GET /api/products/filters. It returns the facet
// values present in the catalog so the client can render filter controls.
func (h *CatalogHandler) FilterOptions(w http.ResponseWriter, r *http.Request) {
	options, err := h.catalog.GetFilterOptions(r.Context())
	if err != nil {
		RespondError(w, r, err)
		return
	}

	RespondJSON(w, http.StatusOK, options)
}

// filterFromQuery translates query parameters into a product filter.
func filterFromQuery(q url.Values) (domain.ProductFilter, error) {
	filter := domain.ProductFilter{
		Search:   strings.TrimSpace(q.Get("search")),
		Category: domain.ProductCategory(q.Get("category")),
		Sizes:    splitParam(q.Get("sizes")),
		Colors:   splitParam(q.Get("colors")),
		Brands:   splitParam(q.Get("brands")),
		Sort:     domain.SortOption(q.Get("sort")),
	}

	minRaw, maxRaw := q.Get("min_price"), q.Get("max_price")
	if minRaw != "" || maxRaw != "" {
		pr := &domain.PriceRange{}
		var err error
		if minRaw != "" {
			pr.MinCents, err = strconv.ParseInt(minRaw, 10, 64)
			if err != nil {
				return filter, domain.Invalid("handler.filter", "min_price must be an integer amount in cents")
			}
		}
		if maxRaw != "" {
			pr.MaxCents, err = strconv.ParseInt(maxRaw, 10, 64)
			if err != nil {
				return filter, domain.Invalid("handler.filter", "max_price must be an integer amount in cents")
			}
		}
		filter.PriceRange = pr
	}

	return filter, nil
}

// splitParam splits a comma-separated query value, dropping empty entries.
func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
