package command

import (
	"context"
	"fmt"

	"github.com/tair/storefront/internal/catalog/domain"
)

// MarkHelpfulCommand represents a "this review helped me" vote
type MarkHelpfulCommand struct {
	ReviewID string
}

// MarkHelpfulHandler handles helpful votes
type MarkHelpfulHandler struct {
	repo domain.ReviewRepository
}

// NewMarkHelpfulHandler creates a new mark helpful handler
func NewMarkHelpfulHandler(repo domain.ReviewRepository) *MarkHelpfulHandler {
	return &MarkHelpfulHandler{repo: repo}
}

// Handle increments the helpful counter by one
func (h *MarkHelpfulHandler) Handle(ctx context.Context, cmd MarkHelpfulCommand) (*domain.Review, error) {
	if cmd.ReviewID == "" {
		return nil, fmt.Errorf("invalid review id")
	}
	return h.repo.IncrementHelpful(ctx, cmd.ReviewID)
}
