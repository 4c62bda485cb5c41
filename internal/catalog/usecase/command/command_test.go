package command

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/internal/catalog/repository"
)

func intPtr(v int) *int { return &v }

func newRepos() (*repository.MemoryProductRepository, *repository.MemoryReviewRepository) {
	products := repository.NewMemoryProductRepository([]domain.Product{
		{ID: "fig", Name: "Fig", Price: 3200, Category: domain.CategorySeedlings, InStock: true, Stock: intPtr(8)},
		{ID: "roast", Name: "Roast", Price: 1400, Category: domain.CategoryCoffee, InStock: false},
	})
	reviews := repository.NewMemoryReviewRepository([]domain.Review{
		{ID: "r1", ProductID: "fig", UserName: "Ana", Rating: 5, Comment: "great", Helpful: 2},
	})
	return products, reviews
}

func TestUpdateStockHandler(t *testing.T) {
	products, _ := newRepos()
	h := NewUpdateStockHandler(products)
	ctx := context.Background()

	p, err := h.Handle(ctx, UpdateStockCommand{ProductID: "fig", Stock: 0})
	require.NoError(t, err)
	assert.False(t, p.InStock)
	assert.Equal(t, 0, *p.Stock)

	p, err = h.Handle(ctx, UpdateStockCommand{ProductID: "roast", Stock: 5})
	require.NoError(t, err)
	assert.True(t, p.InStock)

	_, err = h.Handle(ctx, UpdateStockCommand{ProductID: "fig", Stock: -1})
	assert.ErrorContains(t, err, "negative")

	_, err = h.Handle(ctx, UpdateStockCommand{ProductID: ""})
	assert.Error(t, err)

	_, err = h.Handle(ctx, UpdateStockCommand{ProductID: "missing", Stock: 1})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestUpdateProductHandlerRederivesInStock(t *testing.T) {
	products, _ := newRepos()
	h := NewUpdateProductHandler(products)
	ctx := context.Background()

	updated, err := h.Handle(ctx, UpdateProductCommand{
		ID: "fig",
		Product: domain.Product{
			ID:       "ignored",
			Name:     "Fig Tree",
			Price:    3000,
			Category: domain.CategorySeedlings,
			InStock:  true,
			Stock:    intPtr(0),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "fig", updated.ID)
	assert.False(t, updated.InStock)

	stored, err := products.FindByID(ctx, "fig")
	require.NoError(t, err)
	assert.Equal(t, "Fig Tree", stored.Name)
	assert.EqualValues(t, 3000, stored.Price)
	assert.False(t, stored.InStock)
}

func TestUpdateProductHandlerKeepsUntrackedAvailability(t *testing.T) {
	products, _ := newRepos()
	h := NewUpdateProductHandler(products)

	updated, err := h.Handle(context.Background(), UpdateProductCommand{
		ID:      "roast",
		Product: domain.Product{Name: "Roast", Price: 1400, Category: domain.CategoryCoffee, InStock: true},
	})
	require.NoError(t, err)
	assert.True(t, updated.InStock)
	assert.Nil(t, updated.Stock)
}

func TestUpdateProductHandlerValidation(t *testing.T) {
	products, _ := newRepos()
	h := NewUpdateProductHandler(products)
	ctx := context.Background()
	valid := domain.Product{Name: "X", Price: 1, Category: domain.CategoryCoffee}

	tests := []struct {
		name   string
		id     string
		mutate func(p *domain.Product)
		errMsg string
	}{
		{"missing id", "", func(p *domain.Product) {}, "invalid product id"},
		{"missing name", "fig", func(p *domain.Product) { p.Name = "" }, "name is required"},
		{"negative price", "fig", func(p *domain.Product) { p.Price = -1 }, "price cannot be negative"},
		{"unknown category", "fig", func(p *domain.Product) { p.Category = "tea" }, "unknown category"},
		{"negative stock", "fig", func(p *domain.Product) { p.Stock = intPtr(-2) }, "stock cannot be negative"},
		{"rating out of range", "fig", func(p *domain.Product) { p.Rating = 5.5 }, "rating"},
		{"discount out of range", "fig", func(p *domain.Product) { p.Discount = intPtr(120) }, "discount"},
		{"unknown product", "nope", func(p *domain.Product) {}, "product not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			_, err := h.Handle(ctx, UpdateProductCommand{ID: tt.id, Product: p})
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}
}

func TestSubmitReviewHandler(t *testing.T) {
	products, reviews := newRepos()
	h := NewSubmitReviewHandler(products, reviews)
	h.now = func() time.Time { return time.Date(2024, 7, 3, 10, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	review, err := h.Handle(ctx, SubmitReviewCommand{
		ProductID: "fig",
		UserName:  "  Lena ",
		Rating:    4,
		Comment:   "Healthy roots",
		Verified:  true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, review.ID)
	assert.Equal(t, "Lena", review.UserName)
	assert.Equal(t, "2024-07-03", review.Date)
	assert.Equal(t, 0, review.Helpful)

	stored, err := reviews.FindByProductID(ctx, "fig")
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestSubmitReviewHandlerValidation(t *testing.T) {
	products, reviews := newRepos()
	h := NewSubmitReviewHandler(products, reviews)
	ctx := context.Background()

	_, err := h.Handle(ctx, SubmitReviewCommand{ProductID: "fig", UserName: "", Rating: 3, Comment: "x"})
	assert.ErrorContains(t, err, "user name")

	_, err = h.Handle(ctx, SubmitReviewCommand{ProductID: "fig", UserName: "a", Rating: 3, Comment: " "})
	assert.ErrorContains(t, err, "comment")

	_, err = h.Handle(ctx, SubmitReviewCommand{ProductID: "fig", UserName: "a", Rating: 0, Comment: "x"})
	assert.ErrorContains(t, err, "rating")

	_, err = h.Handle(ctx, SubmitReviewCommand{ProductID: "fig", UserName: "a", Rating: 6, Comment: "x"})
	assert.ErrorContains(t, err, "rating")

	_, err = h.Handle(ctx, SubmitReviewCommand{ProductID: "ghost", UserName: "a", Rating: 3, Comment: "x"})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestMarkHelpfulHandler(t *testing.T) {
	_, reviews := newRepos()
	h := NewMarkHelpfulHandler(reviews)
	ctx := context.Background()

	review, err := h.Handle(ctx, MarkHelpfulCommand{ReviewID: "r1"})
	require.NoError(t, err)
	assert.Equal(t, 3, review.Helpful)

	_, err = h.Handle(ctx, MarkHelpfulCommand{ReviewID: "missing"})
	assert.ErrorIs(t, err, domain.ErrReviewNotFound)

	_, err = h.Handle(ctx, MarkHelpfulCommand{})
	assert.Error(t, err)
}
