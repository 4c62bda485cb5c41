// Package filter narrows and orders a product list. Everything here is pure:
// inputs are never mutated and the same arguments always give the same result.
package filter

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/tair/storefront/internal/catalog/domain"
)

// SortKey selects the field products are ordered by
type SortKey string

const (
	SortNone   SortKey = ""
	SortName   SortKey = "name"
	SortPrice  SortKey = "price"
	SortRating SortKey = "rating"
)

// Direction is the sort direction
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// PriceRange is an inclusive price bound
type PriceRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// Contains reports whether price lies within the range, bounds included
func (r PriceRange) Contains(price int64) bool {
	return price >= r.Min && price <= r.Max
}

// Options are the filter criteria. Zero values mean "not filtered".
type Options struct {
	Category   string      `json:"category"`
	PriceRange *PriceRange `json:"priceRange,omitempty"`
	Difficulty []string    `json:"difficulty,omitempty"`
	RoastLevel []string    `json:"roastLevel,omitempty"`
	Organic    bool        `json:"organic,omitempty"`
	InStock    bool        `json:"inStock,omitempty"`
	Search     string      `json:"search,omitempty"`
}

// Matches reports whether a single product passes every active criterion
func (o Options) Matches(p domain.Product) bool {
	if o.Category != "" && o.Category != domain.CategoryAll && p.Category != o.Category {
		return false
	}
	if o.PriceRange != nil && !o.PriceRange.Contains(p.Price) {
		return false
	}
	if len(o.Difficulty) > 0 && !slices.Contains(o.Difficulty, p.Difficulty) {
		return false
	}
	if len(o.RoastLevel) > 0 && !slices.Contains(o.RoastLevel, p.RoastLevel) {
		return false
	}
	if o.Organic && !p.Organic {
		return false
	}
	if o.InStock && !p.InStock {
		return false
	}
	if q := strings.TrimSpace(o.Search); q != "" && !matchesSearch(p, strings.ToLower(q)) {
		return false
	}
	return true
}

func matchesSearch(p domain.Product, q string) bool {
	if strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q) ||
		strings.Contains(strings.ToLower(p.Subcategory), q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// Apply returns the products matching opts, ordered by key and dir. The result
// is never nil; an empty slice is a valid outcome. Ties keep input order.
func Apply(products []domain.Product, opts Options, key SortKey, dir Direction) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if opts.Matches(p) {
			out = append(out, p)
		}
	}

	compare := comparator(key)
	if compare == nil {
		return out
	}
	if dir == Desc {
		asc := compare
		compare = func(a, b domain.Product) int { return asc(b, a) }
	}
	slices.SortStableFunc(out, compare)
	return out
}

func comparator(key SortKey) func(a, b domain.Product) int {
	switch key {
	case SortName:
		return func(a, b domain.Product) int {
			return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		}
	case SortPrice:
		return func(a, b domain.Product) int { return cmp.Compare(a.Price, b.Price) }
	case SortRating:
		return func(a, b domain.Product) int { return cmp.Compare(a.Rating, b.Rating) }
	default:
		return nil
	}
}

// ParseSortKey validates a sort key coming from a transport
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortNone, SortName, SortPrice, SortRating:
		return k, nil
	default:
		return SortNone, fmt.Errorf("unknown sort key %q", s)
	}
}

// ParseDirection validates a sort direction; empty means ascending
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(s))); d {
	case "", Asc:
		return Asc, nil
	case Desc:
		return Desc, nil
	default:
		return Asc, fmt.Errorf("unknown sort direction %q", s)
	}
}
