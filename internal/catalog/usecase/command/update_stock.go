package command

import (
	"context"
	"fmt"

	"github.com/tair/storefront/internal/catalog/domain"
)

// UpdateStockCommand represents the command to update product stock
type UpdateStockCommand struct {
	ProductID string
	Stock     int
}

// UpdateStockHandler handles stock update command
type UpdateStockHandler struct {
	repo domain.ProductRepository
}

// NewUpdateStockHandler creates a new update stock handler
func NewUpdateStockHandler(repo domain.ProductRepository) *UpdateStockHandler {
	return &UpdateStockHandler{repo: repo}
}

// Handle sets the tracked stock; InStock follows stock > 0
func (h *UpdateStockHandler) Handle(ctx context.Context, cmd UpdateStockCommand) (*domain.Product, error) {
	if cmd.ProductID == "" {
		return nil, fmt.Errorf("invalid product id")
	}

	if cmd.Stock < 0 {
		return nil, fmt.Errorf("stock cannot be negative")
	}

	if err := h.repo.UpdateStock(ctx, cmd.ProductID, cmd.Stock); err != nil {
		return nil, fmt.Errorf("failed to update stock: %w", err)
	}

	return h.repo.FindByID(ctx, cmd.ProductID)
}
