package query

import (
	"context"
	"fmt"

	"github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/internal/catalog/filter"
)

// GetStatsQuery represents the query to get catalog statistics
type GetStatsQuery struct{}

// CatalogStats summarises the catalog for the filter panel
type CatalogStats struct {
	TotalProducts int64              `json:"total_products"`
	InStock       int64              `json:"in_stock"`
	OutOfStock    int64              `json:"out_of_stock"`
	Categories    map[string]int64   `json:"categories"`
	PriceRange    *filter.PriceRange `json:"price_range,omitempty"`
	AverageRating float64            `json:"average_rating"`
}

// GetStatsHandler handles get stats query
type GetStatsHandler struct {
	repo domain.ProductRepository
}

// NewGetStatsHandler creates a new get stats handler
func NewGetStatsHandler(repo domain.ProductRepository) *GetStatsHandler {
	return &GetStatsHandler{repo: repo}
}

// Handle executes the get stats query
func (h *GetStatsHandler) Handle(ctx context.Context, _ GetStatsQuery) (*CatalogStats, error) {
	products, err := h.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	stats := &CatalogStats{
		TotalProducts: int64(len(products)),
		Categories:    make(map[string]int64),
	}

	var totalRating float64
	for _, p := range products {
		if p.InStock {
			stats.InStock++
		} else {
			stats.OutOfStock++
		}
		if p.Category != "" {
			stats.Categories[p.Category]++
		}
		totalRating += p.Rating

		if stats.PriceRange == nil {
			stats.PriceRange = &filter.PriceRange{Min: p.Price, Max: p.Price}
			continue
		}
		stats.PriceRange.Min = min(stats.PriceRange.Min, p.Price)
		stats.PriceRange.Max = max(stats.PriceRange.Max, p.Price)
	}

	if len(products) > 0 {
		stats.AverageRating = totalRating / float64(len(products))
	}

	return stats, nil
}
