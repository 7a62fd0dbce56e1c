package domain

import (
	"context"
	"time"
)

// =============================================================================
// PRODUCT DOMAIN TYPES
// =============================================================================

// ProductCategory identifies a top-level catalog category.
type ProductCategory string

const (
	CategoryDresses     ProductCategory = "dresses"
	CategoryTops        ProductCategory = "tops"
	CategoryBottoms     ProductCategory = "bottoms"
	CategoryOuterwear   ProductCategory = "outerwear"
	CategoryAccessories ProductCategory = "accessories"
	CategoryShoes       ProductCategory = "shoes"
)

// SortOption controls the ordering of filtered product listings.
type SortOption string

const (
	SortPriceAsc  SortOption = "price-asc"
	SortPriceDesc SortOption = "price-desc"
	SortName      SortOption = "name"
	SortRating    SortOption = "rating"
	SortNewest    SortOption = "newest"
)

// ValidSortOption reports whether s is a recognized sort option.
func ValidSortOption(s SortOption) bool {
	switch s {
	case SortPriceAsc, SortPriceDesc, SortName, SortRating, SortNewest:
		return true
	}
	return false
}

// Product represents a catalog item as served by the backend.
// Prices are stored in cents to avoid floating point drift.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Brand       string          `json:"brand"`
	Category    ProductCategory `json:"category"`
	Description string          `json:"description"`
	Material    string          `json:"material"`
	Tags        []string        `json:"tags"`
	ImageURL    string          `json:"image"`

	// Pricing. OriginalPriceCents is non-nil only when the product is
	// discounted; it holds the pre-sale price for strikethrough display.
	PriceCents         int64  `json:"price_cents"`
	OriginalPriceCents *int64 `json:"original_price_cents,omitempty"`

	// Variant axes. Sizes lists every size the product comes in;
	// AvailableSizes lists the subset currently in stock.
	Sizes          []string `json:"sizes"`
	AvailableSizes []string `json:"available_sizes"`
	Colors         []string `json:"colors"`

	// Aggregated review data, denormalized for listing pages.
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`

	// Merchandising flags.
	IsNew  bool `json:"is_new"`
	IsSale bool `json:"is_sale"`

	CreatedAt time.Time `json:"created_at"`
}

// Category is a catalog category as served by the backend. Slug is the
// value products carry in their Category field.
type Category struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Slug     ProductCategory `json:"slug"`
	ImageURL string          `json:"image,omitempty"`
}

// InStock reports whether the product has at least one purchasable size.
func (p *Product) InStock() bool {
	return len(p.AvailableSizes) > 0
}

// SizeAvailable reports whether the given size is currently in stock.
func (p *Product) SizeAvailable(size string) bool {
	for _, s := range p.AvailableSizes {
		if s == size {
			return true
		}
	}
	return false
}

// =============================================================================
// FILTER TYPES
// =============================================================================

// PriceRange bounds a filter query in cents. Max <= 0 means unbounded.
type PriceRange struct {
	MinCents int64 `json:"min_cents"`
	MaxCents int64 `json:"max_cents"`
}

// Contains reports whether cents falls inside the range.
func (r PriceRange) Contains(cents int64) bool {
	if cents < r.MinCents {
		return false
	}
	if r.MaxCents > 0 && cents > r.MaxCents {
		return false
	}
	return true
}

// ProductFilter describes a catalog query. Zero-valued and empty fields are
// ignored, so the zero filter matches everything.
type ProductFilter struct {
	// Search matches case-insensitively against name, brand, description,
	// tags, and the category name.
	Search string `json:"search"`

	Category   ProductCategory `json:"category"`
	PriceRange *PriceRange     `json:"price_range,omitempty"`

	// Facets. An empty slice means the facet is not applied.
	Sizes  []string `json:"sizes"`
	Colors []string `json:"colors"`
	Brands []string `json:"brands"`

	Sort SortOption `json:"sort"`
}

// ProductFilterOptions lists the facet values present in the catalog,
// used to render filter controls.
type ProductFilterOptions struct {
	Categories []ProductCategory `json:"categories"`
	Sizes      []string          `json:"sizes"`
	Colors     []string          `json:"colors"`
	Brands     []string          `json:"brands"`

	// Catalog-wide price bounds in cents.
	MinPriceCents int64 `json:"min_price_cents"`
	MaxPriceCents int64 `json:"max_price_cents"`
}

// =============================================================================
// SERVICE INTERFACE
// =============================================================================

// CatalogService provides read access to the product catalog.
type CatalogService interface {
	// ListProducts returns the full catalog.
	ListProducts(ctx context.Context) ([]Product, error)

	// FilterProducts returns products matching the filter, sorted per
	// filter.Sort. A zero filter returns the full catalog.
	FilterProducts(ctx context.Context, filter ProductFilter) ([]Product, error)

	// GetProduct retrieves a single product by ID.
	GetProduct(ctx context.Context, id int64) (*Product, error)

	// GetFilterOptions returns the facet values available in the catalog.
	GetFilterOptions(ctx context.Context) (*ProductFilterOptions, error)
}

// =============================================================================
// DOMAIN ERRORS
// =============================================================================

// Product-specific errors.
var (
	ErrProductNotFound = &Error{Code: ENOTFOUND, Message: "Product not found"}

	ErrInvalidCategory   = &Error{Code: EINVALID, Message: "Invalid product category"}
	ErrInvalidSortOption = &Error{Code: EINVALID, Message: "Invalid sort option"}
	ErrInvalidPriceRange = &Error{Code: EINVALID, Message: "Price range minimum exceeds maximum"}
)
