// Package seed provides the static catalog loaded once at startup.
package seed

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tair/storefront/internal/catalog/domain"
)

//go:embed products.yaml
var productsYAML []byte

//go:embed reviews.yaml
var reviewsYAML []byte

// Products returns the embedded seed catalog
func Products() ([]domain.Product, error) {
	return ParseProducts(productsYAML)
}

// Reviews returns the embedded seed reviews
func Reviews() ([]domain.Review, error) {
	return ParseReviews(reviewsYAML)
}

// ProductsFromFile reads a seed catalog from disk instead of the embedded one
func ProductsFromFile(path string) ([]domain.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return ParseProducts(data)
}

// ParseProducts decodes a YAML product list. Duplicate ids are rejected and
// InStock is re-derived for every product that tracks stock.
func ParseProducts(data []byte) ([]domain.Product, error) {
	var products []domain.Product
	if err := yaml.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	seen := make(map[string]struct{}, len(products))
	for i := range products {
		p := &products[i]
		if p.ID == "" {
			return nil, fmt.Errorf("product at index %d has no id", i)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %q", p.ID)
		}
		seen[p.ID] = struct{}{}

		if p.Stock != nil {
			p.SetStock(*p.Stock)
		}
	}
	return products, nil
}

// ParseReviews decodes a YAML review list
func ParseReviews(data []byte) ([]domain.Review, error) {
	var reviews []domain.Review
	if err := yaml.Unmarshal(data, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}
