// Package view decides which product collection is active for display given
// the current search text and category selection.
package view

import (
	"context"

	"marketplus/catalog"
	"marketplus/domain"
)

// DefaultListingLimit is the page size of the unfiltered default listing.
const DefaultListingLimit = 100

// ActiveProducts applies the selection precedence: a non-empty search query
// wins outright (the category selection is ignored), then a selected
// category, then the default listing. Search and category never blend.
func ActiveProducts(search, category string, searchResults, categoryResults, all []domain.Product) []domain.Product {
	switch {
	case search != "":
		return searchResults
	case category != "":
		return categoryResults
	default:
		return all
	}
}

// Browser drives the catalog client to produce the active collection. It
// issues only the query the precedence rule selects, so a superseded input
// never triggers a wasted request.
type Browser struct {
	catalog *catalog.Client
}

// NewBrowser constructs a Browser over the given catalog client.
func NewBrowser(c *catalog.Client) *Browser {
	return &Browser{catalog: c}
}

// Products returns the active collection for the given inputs.
func (b *Browser) Products(ctx context.Context, search, category string) ([]domain.Product, error) {
	var searchResults, categoryResults, all []domain.Product
	switch {
	case search != "":
		page, err := b.catalog.SearchProducts(ctx, search)
		if err != nil {
			return nil, err
		}
		searchResults = page.Products
	case category != "":
		page, err := b.catalog.ListProductsByCategory(ctx, category)
		if err != nil {
			return nil, err
		}
		categoryResults = page.Products
	default:
		page, err := b.catalog.ListProducts(ctx, DefaultListingLimit, 0)
		if err != nil {
			return nil, err
		}
		all = page.Products
	}
	return ActiveProducts(search, category, searchResults, categoryResults, all), nil
}

// Categories returns the catalog's category labels for the filter chips.
func (b *Browser) Categories(ctx context.Context) ([]string, error) {
	return b.catalog.ListCategories(ctx)
}
