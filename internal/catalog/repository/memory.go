package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/tair/storefront/internal/catalog/domain"
)

// MemoryProductRepository keeps the catalog in process memory, in seed order.
// Reads return copies; the stored products only change through Update and UpdateStock.
type MemoryProductRepository struct {
	mu       sync.RWMutex
	products []domain.Product
	index    map[string]int
}

func NewMemoryProductRepository(seed []domain.Product) *MemoryProductRepository {
	r := &MemoryProductRepository{
		products: make([]domain.Product, 0, len(seed)),
		index:    make(map[string]int, len(seed)),
	}
	for _, p := range seed {
		if _, dup := r.index[p.ID]; dup {
			continue
		}
		r.index[p.ID] = len(r.products)
		r.products = append(r.products, p.Clone())
	}
	return r
}

func (r *MemoryProductRepository) FindAll(_ context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Product, len(r.products))
	for i, p := range r.products {
		out[i] = p.Clone()
	}
	return out, nil
}

func (r *MemoryProductRepository) FindByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
	}
	p := r.products[i].Clone()
	return &p, nil
}

func (r *MemoryProductRepository) Update(_ context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[product.ID]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrProductNotFound, product.ID)
	}
	r.products[i] = product.Clone()
	return nil
}

func (r *MemoryProductRepository) UpdateStock(_ context.Context, id string, stock int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[id]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
	}
	r.products[i].SetStock(stock)
	return nil
}

func (r *MemoryProductRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.products)), nil
}

// MemoryReviewRepository keeps reviews in process memory
type MemoryReviewRepository struct {
	mu      sync.RWMutex
	reviews []domain.Review
	index   map[string]int
}

func NewMemoryReviewRepository(seed []domain.Review) *MemoryReviewRepository {
	r := &MemoryReviewRepository{index: make(map[string]int, len(seed))}
	for _, rv := range seed {
		if _, dup := r.index[rv.ID]; dup {
			continue
		}
		r.index[rv.ID] = len(r.reviews)
		r.reviews = append(r.reviews, rv)
	}
	return r
}

func (r *MemoryReviewRepository) Create(_ context.Context, review *domain.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.index[review.ID]; dup {
		return fmt.Errorf("review %s already exists", review.ID)
	}
	r.index[review.ID] = len(r.reviews)
	r.reviews = append(r.reviews, *review)
	return nil
}

func (r *MemoryReviewRepository) FindByID(_ context.Context, id string) (*domain.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrReviewNotFound, id)
	}
	rv := r.reviews[i]
	return &rv, nil
}

func (r *MemoryReviewRepository) FindByProductID(_ context.Context, productID string) ([]domain.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []domain.Review{}
	for _, rv := range r.reviews {
		if rv.ProductID == productID {
			out = append(out, rv)
		}
	}
	domain.SortReviews(out)
	return out, nil
}

func (r *MemoryReviewRepository) IncrementHelpful(_ context.Context, id string) (*domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrReviewNotFound, id)
	}
	r.reviews[i].Helpful++
	rv := r.reviews[i]
	return &rv, nil
}
