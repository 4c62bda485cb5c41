package state

import (
	"net/url"
	"strings"

	"github.com/tair/storefront/internal/catalog/domain"
)

// Navigation destinations that are not product categories
const (
	CategoryAll       = domain.CategoryAll
	CategoryCart      = "cart"
	CategoryCheckout  = "checkout"
	CategoryFavorites = "favorites"
	CategoryInventory = "inventory"
	CategoryGift      = "gift"
)

// Route describes what navigating to a category implies
type Route struct {
	FilterCategory string
	SeedlingFamily bool
	CoffeeFamily   bool
	ComingSoon     bool
	ScrollToTop    bool
}

var seedlingRoute = Route{FilterCategory: domain.CategorySeedlings, SeedlingFamily: true}
var coffeeRoute = Route{FilterCategory: domain.CategoryCoffee, CoffeeFamily: true}

// routes is the single category lookup table. Anything missing resolves to
// the unfiltered catalog.
var routes = map[string]Route{
	domain.CategorySeedlings: withScroll(seedlingRoute),
	"houseplants":            seedlingRoute,
	"fruit-trees":            seedlingRoute,
	"flowering-trees":        seedlingRoute,

	domain.CategoryCoffee: withScroll(coffeeRoute),
	"single-origin":       coffeeRoute,
	"blends":              coffeeRoute,
	"organic":             coffeeRoute,

	CategoryCart:      {FilterCategory: domain.CategoryAll, ScrollToTop: true},
	CategoryCheckout:  {FilterCategory: domain.CategoryAll, ScrollToTop: true},
	CategoryFavorites: {FilterCategory: domain.CategoryAll, ScrollToTop: true},
	CategoryInventory: {FilterCategory: domain.CategoryAll, ScrollToTop: true},
	CategoryGift:      {FilterCategory: domain.CategoryAll, ScrollToTop: true},

	"blog":      {ComingSoon: true},
	"interview": {ComingSoon: true},
	"wholesale": {ComingSoon: true},
}

func withScroll(r Route) Route {
	r.ScrollToTop = true
	return r
}

// ResolveRoute looks a category up in the route table
func ResolveRoute(category string) Route {
	if r, ok := routes[category]; ok {
		return r
	}
	return Route{FilterCategory: domain.CategoryAll}
}

// Fragment is the URL fragment that represents the state's category
func Fragment(s State) string {
	if s.CurrentCategory == "" || s.CurrentCategory == CategoryAll {
		return ""
	}
	return s.CurrentCategory
}

// ParseFragment turns a raw URL fragment ("#coffee", "coffee", "") into a
// category, defaulting to "all"
func ParseFragment(raw string) string {
	raw = strings.TrimPrefix(strings.TrimSpace(raw), "#")
	if decoded, err := url.PathUnescape(raw); err == nil {
		raw = decoded
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return CategoryAll
	}
	return raw
}

// InitialState derives the load-time state from the URL fragment
func InitialState(fragment string) State {
	s := State{
		CurrentCategory: CategoryAll,
		FilterCategory:  domain.CategoryAll,
		Cart:            []CartItem{},
		Favorites:       []domain.Product{},
	}
	next, _ := Reduce(s, SyncFragment{Fragment: fragment})
	return next
}

func navigate(s State, category string) (State, Result) {
	if category == "" {
		category = CategoryAll
	}

	route := ResolveRoute(category)
	if route.ComingSoon {
		s.ComingSoon = category
		return s, Result{}
	}

	s.CurrentCategory = category
	s.FilterCategory = route.FilterCategory
	s.SelectedProductID = ""
	s.SearchQuery = ""
	s.ComingSoon = ""
	return s, Result{ScrollToTop: route.ScrollToTop}
}

func goBack(s State) (State, Result) {
	s, res := navigate(s, CategoryAll)
	s.ComingSoon = ""
	return s, res
}

func syncFragment(s State, raw string) (State, Result) {
	target := ParseFragment(raw)
	if target == s.CurrentCategory {
		return s, Result{}
	}
	return navigate(s, target)
}
