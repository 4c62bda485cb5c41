package command

import (
	"context"
	"fmt"

	"github.com/tair/storefront/internal/catalog/domain"
)

// UpdateProductCommand replaces every mutable field of a product. The id
// comes from the command, never from the payload.
type UpdateProductCommand struct {
	ID      string
	Product domain.Product
}

// UpdateProductHandler handles product update command
type UpdateProductHandler struct {
	repo domain.ProductRepository
}

// NewUpdateProductHandler creates a new update product handler
func NewUpdateProductHandler(repo domain.ProductRepository) *UpdateProductHandler {
	return &UpdateProductHandler{repo: repo}
}

// Handle executes the update product command
func (h *UpdateProductHandler) Handle(ctx context.Context, cmd UpdateProductCommand) (*domain.Product, error) {
	if cmd.ID == "" {
		return nil, fmt.Errorf("invalid product id")
	}

	p := cmd.Product.Clone()
	if err := validateProduct(&p); err != nil {
		return nil, err
	}

	existing, err := h.repo.FindByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	p.ID = existing.ID
	p.Position = existing.Position

	// Stock and availability never disagree, whichever path wrote them.
	if p.Stock != nil {
		p.SetStock(*p.Stock)
	}

	if err := h.repo.Update(ctx, &p); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return &p, nil
}

func validateProduct(p *domain.Product) error {
	if p.Name == "" {
		return fmt.Errorf("product name is required")
	}
	if p.Price < 0 {
		return fmt.Errorf("price cannot be negative")
	}
	if p.OriginalPrice != nil && *p.OriginalPrice < 0 {
		return fmt.Errorf("original price cannot be negative")
	}
	switch p.Category {
	case domain.CategorySeedlings, domain.CategoryCoffee:
	default:
		return fmt.Errorf("unknown category %q", p.Category)
	}
	if p.Stock != nil && *p.Stock < 0 {
		return fmt.Errorf("stock cannot be negative")
	}
	if p.Rating < 0 || p.Rating > 5 {
		return fmt.Errorf("rating must be between 0 and 5")
	}
	if p.Reviews < 0 {
		return fmt.Errorf("review count cannot be negative")
	}
	if p.Discount != nil && (*p.Discount < 0 || *p.Discount > 100) {
		return fmt.Errorf("discount must be a percentage")
	}
	return nil
}
