package state

import (
	"strings"

	"github.com/tair/storefront/internal/catalog/domain"
)

// Action is a request to change state. Only the types in this file implement it.
type Action interface {
	Name() string
}

// AddToCart adds Quantity units of Product, merging with an existing line
type AddToCart struct {
	Product  domain.Product
	Quantity int
}

// UpdateQuantity sets a line's quantity exactly; zero or less removes it
type UpdateQuantity struct {
	ProductID string
	Quantity  int
}

// RemoveItem drops a cart line
type RemoveItem struct {
	ProductID string
}

// ClearCart empties the cart; OrderID is set when checkout completed
type ClearCart struct {
	OrderID string
}

// ToggleFavorite adds or removes a product from favorites
type ToggleFavorite struct {
	Product domain.Product
}

// RemoveFavorite removes a product from favorites if present
type RemoveFavorite struct {
	ProductID string
}

// Navigate moves to a category or routing destination
type Navigate struct {
	Category string
}

// SyncFragment reports an external URL fragment change (back/forward)
type SyncFragment struct {
	Fragment string
}

// GoBack leaves the coming-soon placeholder for the home category
type GoBack struct{}

// OpenProduct shows the product detail view
type OpenProduct struct {
	ProductID string
}

// CloseProduct hides the product detail view
type CloseProduct struct{}

// SetSearch replaces the active search query
type SetSearch struct {
	Query string
}

// Restore hydrates cart and favorites from persisted slots
type Restore struct {
	Cart      []CartItem
	Favorites []domain.Product
}

func (AddToCart) Name() string      { return "add_to_cart" }
func (UpdateQuantity) Name() string { return "update_quantity" }
func (RemoveItem) Name() string     { return "remove_item" }
func (ClearCart) Name() string      { return "clear_cart" }
func (ToggleFavorite) Name() string { return "toggle_favorite" }
func (RemoveFavorite) Name() string { return "remove_favorite" }
func (Navigate) Name() string       { return "navigate" }
func (SyncFragment) Name() string   { return "sync_fragment" }
func (GoBack) Name() string         { return "go_back" }
func (OpenProduct) Name() string    { return "open_product" }
func (CloseProduct) Name() string   { return "close_product" }
func (SetSearch) Name() string      { return "set_search" }
func (Restore) Name() string        { return "restore" }

// Reduce applies an action to a state. It is pure: s is never mutated and
// unknown actions return s unchanged.
func Reduce(s State, a Action) (State, Result) {
	switch a := a.(type) {
	case AddToCart:
		return addToCart(s, a)
	case UpdateQuantity:
		return updateQuantity(s, a)
	case RemoveItem:
		return removeItem(s, a)
	case ClearCart:
		return clearCart(s, a)
	case ToggleFavorite:
		return toggleFavorite(s, a)
	case RemoveFavorite:
		return removeFavorite(s, a)
	case Navigate:
		return navigate(s, strings.TrimSpace(a.Category))
	case SyncFragment:
		return syncFragment(s, a.Fragment)
	case GoBack:
		return goBack(s)
	case OpenProduct:
		s.SelectedProductID = a.ProductID
		return s, Result{ScrollToTop: true}
	case CloseProduct:
		s.SelectedProductID = ""
		return s, Result{}
	case SetSearch:
		s.SearchQuery = strings.TrimSpace(a.Query)
		return s, Result{}
	case Restore:
		return restore(s, a)
	default:
		return s, Result{}
	}
}

// restore merges duplicate persisted lines and drops invalid ones, so a
// hand-edited or corrupted slot can't break the one-line-per-product rule.
func restore(s State, a Restore) (State, Result) {
	cart := []CartItem{}
	for _, item := range a.Cart {
		if item.Product.ID == "" || item.Quantity <= 0 {
			continue
		}
		cart = AddItem(cart, item.Product, item.Quantity)
	}

	favorites := []domain.Product{}
	for _, p := range a.Favorites {
		if p.ID == "" || indexOfProduct(favorites, p.ID) >= 0 {
			continue
		}
		favorites = append(favorites, p.Clone())
	}

	s.Cart = cart
	s.Favorites = favorites
	return s, Result{}
}
