// Package state holds one shopper's storefront state: cart, favorites and the
// navigation mode. State only changes through Reduce; Store serializes
// dispatches and fans the results out to subscribers.
package state

import (
	"github.com/tair/storefront/internal/catalog/domain"
)

// CartItem is one cart line. A cart never holds two items for the same product.
type CartItem struct {
	Product  domain.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// State is an immutable snapshot; reducers always build a new one
type State struct {
	CurrentCategory   string           `json:"currentCategory"`
	FilterCategory    string           `json:"filterCategory"`
	ComingSoon        string           `json:"comingSoon,omitempty"`
	SelectedProductID string           `json:"selectedProductId,omitempty"`
	SearchQuery       string           `json:"searchQuery,omitempty"`
	Cart              []CartItem       `json:"cart"`
	Favorites         []domain.Product `json:"favorites"`
}

// NotificationKind classifies transient user-facing messages
type NotificationKind string

const (
	CartAdded       NotificationKind = "cart.added"
	CartUpdated     NotificationKind = "cart.updated"
	CartRemoved     NotificationKind = "cart.removed"
	CartCleared     NotificationKind = "cart.cleared"
	FavoriteAdded   NotificationKind = "favorite.added"
	FavoriteRemoved NotificationKind = "favorite.removed"
	OrderPlaced     NotificationKind = "order.placed"
)

// Notification is a transient message produced by a state change
type Notification struct {
	Kind      NotificationKind `json:"kind"`
	ProductID string           `json:"productId,omitempty"`
	Quantity  int              `json:"quantity,omitempty"`
	OrderID   string           `json:"orderId,omitempty"`
	Message   string           `json:"message"`
}

// Result describes the side effects a dispatch asks subscribers to perform
type Result struct {
	Notifications    []Notification `json:"notifications,omitempty"`
	CartChanged      bool           `json:"-"`
	FavoritesChanged bool           `json:"-"`
	ScrollToTop      bool           `json:"scrollToTop,omitempty"`
}

// View holds the page-level visibility flags derived from a state
type View struct {
	ShowCatalog       bool `json:"showCatalog"`
	ShowCart          bool `json:"showCart"`
	ShowCheckout      bool `json:"showCheckout"`
	ShowFavorites     bool `json:"showFavorites"`
	ShowInventory     bool `json:"showInventory"`
	ShowProductDetail bool `json:"showProductDetail"`
	ShowComingSoon    bool `json:"showComingSoon"`
}

// DeriveView computes which page is visible. The coming-soon placeholder and
// the product detail overlay take precedence over the category page.
func DeriveView(s State) View {
	if s.ComingSoon != "" {
		return View{ShowComingSoon: true}
	}
	if s.SelectedProductID != "" {
		return View{ShowProductDetail: true}
	}

	v := View{}
	switch s.CurrentCategory {
	case CategoryCart:
		v.ShowCart = true
	case CategoryCheckout:
		v.ShowCheckout = true
	case CategoryFavorites:
		v.ShowFavorites = true
	case CategoryInventory:
		v.ShowInventory = true
	default:
		v.ShowCatalog = true
	}
	return v
}

// IsFavorite reports whether the product id is in the favorites set
func IsFavorite(s State, productID string) bool {
	return indexOfProduct(s.Favorites, productID) >= 0
}

// CartCount is the total number of units in the cart
func CartCount(s State) int {
	n := 0
	for _, item := range s.Cart {
		n += item.Quantity
	}
	return n
}

func indexOfProduct(products []domain.Product, id string) int {
	for i, p := range products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func indexOfItem(items []CartItem, id string) int {
	for i, item := range items {
		if item.Product.ID == id {
			return i
		}
	}
	return -1
}
