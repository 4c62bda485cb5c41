package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/internal/catalog/filter"
	"github.com/tair/storefront/internal/catalog/repository"
	"github.com/tair/storefront/internal/catalog/seed"
)

func seededRepos(t *testing.T) (*repository.MemoryProductRepository, *repository.MemoryReviewRepository) {
	t.Helper()
	products, err := seed.Products()
	require.NoError(t, err)
	reviews, err := seed.Reviews()
	require.NoError(t, err)
	return repository.NewMemoryProductRepository(products), repository.NewMemoryReviewRepository(reviews)
}

func TestGetProductHandler(t *testing.T) {
	products, _ := seededRepos(t)
	h := NewGetProductHandler(products)
	ctx := context.Background()

	p, err := h.Handle(ctx, GetProductQuery{ID: "lavender-seedling"})
	require.NoError(t, err)
	assert.Equal(t, "Lavender Seedling", p.Name)

	_, err = h.Handle(ctx, GetProductQuery{ID: "unknown"})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = h.Handle(ctx, GetProductQuery{})
	assert.Error(t, err)
}

func TestListProductsHandler(t *testing.T) {
	products, _ := seededRepos(t)
	h := NewListProductsHandler(products)
	ctx := context.Background()

	all, err := h.Handle(ctx, ListProductsQuery{Filter: filter.Options{Category: domain.CategoryAll}})
	require.NoError(t, err)
	assert.Len(t, all, 14)

	dark, err := h.Handle(ctx, ListProductsQuery{
		Filter: filter.Options{Category: domain.CategoryCoffee, RoastLevel: []string{domain.RoastDark}},
	})
	require.NoError(t, err)
	names := make([]string, 0, len(dark))
	for _, p := range dark {
		names = append(names, p.ID)
	}
	assert.Equal(t, []string{"sumatra-mandheling", "house-espresso-blend", "french-roast"}, names)

	cheapest, err := h.Handle(ctx, ListProductsQuery{SortKey: filter.SortPrice, Direction: filter.Asc})
	require.NoError(t, err)
	assert.Equal(t, "basil-seedling", cheapest[0].ID)

	none, err := h.Handle(ctx, ListProductsQuery{Filter: filter.Options{PriceRange: &filter.PriceRange{Min: 1, Max: 2}}})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestListReviewsHandler(t *testing.T) {
	products, reviews := seededRepos(t)
	h := NewListReviewsHandler(products, reviews)
	ctx := context.Background()

	res, err := h.Handle(ctx, ListReviewsQuery{ProductID: "ethiopia-yirgacheffe"})
	require.NoError(t, err)
	assert.Len(t, res.Reviews, 2)
	assert.Equal(t, 2, res.Summary.TotalCount)
	assert.InDelta(t, 4.5, res.Summary.AverageRating, 0.0001)

	empty, err := h.Handle(ctx, ListReviewsQuery{ProductID: "fig-tree-seedling"})
	require.NoError(t, err)
	assert.Empty(t, empty.Reviews)
	assert.Zero(t, empty.Summary.TotalCount)

	_, err = h.Handle(ctx, ListReviewsQuery{ProductID: "ghost"})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestGetStatsHandler(t *testing.T) {
	products, _ := seededRepos(t)
	h := NewGetStatsHandler(products)

	stats, err := h.Handle(context.Background(), GetStatsQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 14, stats.TotalProducts)
	assert.EqualValues(t, 11, stats.InStock)
	assert.EqualValues(t, 3, stats.OutOfStock)
	assert.EqualValues(t, 7, stats.Categories[domain.CategorySeedlings])
	assert.EqualValues(t, 7, stats.Categories[domain.CategoryCoffee])
	require.NotNil(t, stats.PriceRange)
	assert.EqualValues(t, 600, stats.PriceRange.Min)
	assert.EqualValues(t, 4800, stats.PriceRange.Max)
	assert.Greater(t, stats.AverageRating, 0.0)
}

func TestGetStatsHandlerEmptyCatalog(t *testing.T) {
	h := NewGetStatsHandler(repository.NewMemoryProductRepository(nil))

	stats, err := h.Handle(context.Background(), GetStatsQuery{})
	require.NoError(t, err)
	assert.Zero(t, stats.TotalProducts)
	assert.Nil(t, stats.PriceRange)
	assert.Zero(t, stats.AverageRating)
}
