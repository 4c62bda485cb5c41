package query

import (
	"context"
	"fmt"

	"github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/internal/catalog/filter"
)

// ListProductsQuery represents a filtered, sorted catalog listing
type ListProductsQuery struct {
	Filter    filter.Options
	SortKey   filter.SortKey
	Direction filter.Direction
}

// ListProductsHandler handles list products query
type ListProductsHandler struct {
	repo domain.ProductRepository
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(repo domain.ProductRepository) *ListProductsHandler {
	return &ListProductsHandler{repo: repo}
}

// Handle executes the list products query. An empty result is not an error.
func (h *ListProductsHandler) Handle(ctx context.Context, query ListProductsQuery) ([]domain.Product, error) {
	products, err := h.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return filter.Apply(products, query.Filter, query.SortKey, query.Direction), nil
}
