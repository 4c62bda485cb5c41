package query

import (
	"context"
	"fmt"

	"github.com/tair/storefront/internal/catalog/domain"
)

// ListReviewsQuery represents the query for a product's reviews
type ListReviewsQuery struct {
	ProductID string
}

// ProductReviews is a product's reviews with their aggregate
type ProductReviews struct {
	Reviews []domain.Review      `json:"reviews"`
	Summary domain.ReviewSummary `json:"summary"`
}

// ListReviewsHandler handles list reviews query
type ListReviewsHandler struct {
	products domain.ProductRepository
	reviews  domain.ReviewRepository
}

// NewListReviewsHandler creates a new list reviews handler
func NewListReviewsHandler(products domain.ProductRepository, reviews domain.ReviewRepository) *ListReviewsHandler {
	return &ListReviewsHandler{products: products, reviews: reviews}
}

// Handle executes the list reviews query
func (h *ListReviewsHandler) Handle(ctx context.Context, query ListReviewsQuery) (*ProductReviews, error) {
	if _, err := h.products.FindByID(ctx, query.ProductID); err != nil {
		return nil, err
	}

	reviews, err := h.reviews.FindByProductID(ctx, query.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	return &ProductReviews{
		Reviews: reviews,
		Summary: domain.Summarize(reviews),
	}, nil
}
