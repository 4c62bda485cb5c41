package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tair/storefront/internal/catalog/domain"
)

// SubmitReviewCommand represents a new customer review
type SubmitReviewCommand struct {
	ProductID string
	UserName  string
	Rating    int
	Comment   string
	Verified  bool
}

// SubmitReviewHandler handles review submission
type SubmitReviewHandler struct {
	products domain.ProductRepository
	reviews  domain.ReviewRepository
	now      func() time.Time
}

// NewSubmitReviewHandler creates a new submit review handler
func NewSubmitReviewHandler(products domain.ProductRepository, reviews domain.ReviewRepository) *SubmitReviewHandler {
	return &SubmitReviewHandler{products: products, reviews: reviews, now: time.Now}
}

// Handle validates and stores the review
func (h *SubmitReviewHandler) Handle(ctx context.Context, cmd SubmitReviewCommand) (*domain.Review, error) {
	userName := strings.TrimSpace(cmd.UserName)
	comment := strings.TrimSpace(cmd.Comment)

	if userName == "" {
		return nil, fmt.Errorf("user name is required")
	}
	if comment == "" {
		return nil, fmt.Errorf("comment is required")
	}
	if cmd.Rating < 1 || cmd.Rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5")
	}

	if _, err := h.products.FindByID(ctx, cmd.ProductID); err != nil {
		return nil, err
	}

	review := &domain.Review{
		ID:        uuid.NewString(),
		ProductID: cmd.ProductID,
		UserName:  userName,
		Rating:    cmd.Rating,
		Comment:   comment,
		Date:      h.now().Format(domain.ReviewDateLayout),
		Verified:  cmd.Verified,
	}

	if err := h.reviews.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	return review, nil
}
