// Package catalog implements the product filter and sort pipeline and
// the catalog service that applies it to the backend product feed.
package catalog

import (
	"sort"
	"strings"

	"github.com/dukerupert/sif/internal/domain"
)

// Filter applies f to products and returns the matches, sorted per
// f.Sort. The pipeline runs in a fixed order: search, category, price
// range, size, color, brand, then sorting. The input slice is never
// modified; a zero filter returns a sorted copy of the input.
func Filter(products []domain.Product, f domain.ProductFilter) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if matches(p, f) {
			out = append(out, p)
		}
	}

	sortProducts(out, f.Sort)
	return out
}

func matches(p domain.Product, f domain.ProductFilter) bool {
	if f.Search != "" && !matchesSearch(p, f.Search) {
		return false
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.PriceRange != nil && !f.PriceRange.Contains(p.PriceCents) {
		return false
	}
	// Size filtering only considers sizes that are actually in stock.
	if len(f.Sizes) > 0 && !anyAvailable(p, f.Sizes) {
		return false
	}
	if len(f.Colors) > 0 && !intersects(p.Colors, f.Colors) {
		return false
	}
	if len(f.Brands) > 0 && !containsFold(f.Brands, p.Brand) {
		return false
	}
	return true
}

// matchesSearch matches the query case-insensitively against the
// product's name, brand, description, tags, and category name. Any one
// field matching is enough.
func matchesSearch(p domain.Product, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Brand), q) ||
		strings.Contains(strings.ToLower(p.Description), q) ||
		strings.Contains(strings.ToLower(string(p.Category)), q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func anyAvailable(p domain.Product, sizes []string) bool {
	for _, want := range sizes {
		if p.SizeAvailable(want) {
			return true
		}
	}
	return false
}

func intersects(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if strings.EqualFold(h, w) {
				return true
			}
		}
	}
	return false
}

func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}

// sortProducts orders products in place. The sort is stable so products
// that compare equal keep their feed order. An empty or unknown option
// leaves the feed order untouched.
func sortProducts(products []domain.Product, opt domain.SortOption) {
	switch opt {
	case domain.SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].PriceCents < products[j].PriceCents
		})
	case domain.SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].PriceCents > products[j].PriceCents
		})
	case domain.SortName:
		sort.SliceStable(products, func(i, j int) bool {
			return strings.ToLower(products[i].Name) < strings.ToLower(products[j].Name)
		})
	case domain.SortRating:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	case domain.SortNewest:
		// New arrivals first, then most recently added.
		sort.SliceStable(products, func(i, j int) bool {
			if products[i].IsNew != products[j].IsNew {
				return products[i].IsNew
			}
			return products[i].CreatedAt.After(products[j].CreatedAt)
		})
	}
}

// BuildFilterOptions derives the facet values present in the catalog.
// Values are deduplicated and sorted; price bounds span all products.
func BuildFilterOptions(products []domain.Product) *domain.ProductFilterOptions {
	opts := &domain.ProductFilterOptions{}

	categories := make(map[domain.ProductCategory]bool)
	sizes := make(map[string]bool)
	colors := make(map[string]bool)
	brands := make(map[string]bool)

	for i, p := range products {
		categories[p.Category] = true
		for _, s := range p.Sizes {
			sizes[s] = true
		}
		for _, c := range p.Colors {
			colors[c] = true
		}
		if p.Brand != "" {
			brands[p.Brand] = true
		}

		if i == 0 || p.PriceCents < opts.MinPriceCents {
			opts.MinPriceCents = p.PriceCents
		}
		if p.PriceCents > opts.MaxPriceCents {
			opts.MaxPriceCents = p.PriceCents
		}
	}

	for c := range categories {
		opts.Categories = append(opts.Categories, c)
	}
	sort.Slice(opts.Categories, func(i, j int) bool { return opts.Categories[i] < opts.Categories[j] })

	opts.Sizes = sortedKeys(sizes)
	opts.Colors = sortedKeys(colors)
	opts.Brands = sortedKeys(brands)
	return opts
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
