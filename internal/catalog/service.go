package catalog

import (
	"context"
	"log/slog"

	"github.com/dukerupert/sif/internal/domain"
)

// ProductSource supplies the raw product feed, the backend's curated
// collections, and the category list, typically the backend API client.
// The service layers filtering and sorting on top of it.
type ProductSource interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListNewProducts(ctx context.Context) ([]domain.Product, error)
	ListSaleProducts(ctx context.Context) ([]domain.Product, error)
	ListFeaturedProducts(ctx context.Context) ([]domain.Product, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
}

// Service implements domain.CatalogService over a ProductSource.
type Service struct {
	source ProductSource
	logger *slog.Logger
}

// NewService creates a catalog service.
func NewService(source ProductSource, logger *slog.Logger) *Service {
	return &Service{
		source: source,
		logger: logger.With("component", "catalog_service"),
	}
}

// ListProducts returns the full catalog.
func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.source.ListProducts(ctx)
	if err != nil {
		return nil, domain.WrapError(err, domain.ErrorCode(err), "catalog.list", "failed to fetch products")
	}
	return products, nil
}

// NewArrivals returns the backend's pre-filtered new-arrivals list.
func (s *Service) NewArrivals(ctx context.Context) ([]domain.Product, error) {
	products, err := s.source.ListNewProducts(ctx)
	if err != nil {
		return nil, domain.WrapError(err, domain.ErrorCode(err), "catalog.new", "failed to fetch new arrivals")
	}
	return products, nil
}

// OnSale returns the backend's pre-filtered sale list.
func (s *Service) OnSale(ctx context.Context) ([]domain.Product, error) {
	products, err := s.source.ListSaleProducts(ctx)
	if err != nil {
		return nil, domain.WrapError(err, domain.ErrorCode(err), "catalog.sale", "failed to fetch sale products")
	}
	return products, nil
}

// Featured returns the backend's curated featured list.
func (s *Service) Featured(ctx context.Context) ([]domain.Product, error) {
	products, err := s.source.ListFeaturedProducts(ctx)
	if err != nil {
		return nil, domain.WrapError(err, domain.ErrorCode(err), "catalog.featured", "failed to fetch featured products")
	}
	return products, nil
}

// Categories returns the catalog's category list.
func (s *Service) Categories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.source.ListCategories(ctx)
	if err != nil {
		return nil, domain.WrapError(err, domain.ErrorCode(err), "catalog.categories", "failed to fetch categories")
	}
	return categories, nil
}

// FilterProducts validates the filter, fetches the feed, and applies the
// filter pipeline.
func (s *Service) FilterProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}

	products, err := s.source.ListProducts(ctx)
	if err != nil {
		return nil, domain.WrapError(err, domain.ErrorCode(err), "catalog.filter", "failed to fetch products")
	}

	result := Filter(products, filter)
	s.logger.Debug("filtered products", "total", len(products), "matched", len(result))
	return result, nil
}

// GetProduct retrieves a single product by ID.
func (s *Service) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.source.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	return product, nil
}

// GetFilterOptions derives the facet values from the current feed.
func (s *Service) GetFilterOptions(ctx context.Context) (*domain.ProductFilterOptions, error) {
	products, err := s.source.ListProducts(ctx)
	if err != nil {
		return nil, domain.WrapError(err, domain.ErrorCode(err), "catalog.options", "failed to fetch products")
	}
	return BuildFilterOptions(products), nil
}

func validateFilter(f domain.ProductFilter) error {
	if f.Sort != "" && !domain.ValidSortOption(f.Sort) {
		return domain.ErrInvalidSortOption
	}
	if f.PriceRange != nil && f.PriceRange.MaxCents > 0 && f.PriceRange.MinCents > f.PriceRange.MaxCents {
		return domain.ErrInvalidPriceRange
	}
	return nil
}
