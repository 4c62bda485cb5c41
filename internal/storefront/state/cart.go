package state

import (
	"fmt"

	"github.com/tair/storefront/internal/catalog/domain"
)

// ShippingPolicy holds the shipping constants. Orders at or above the
// threshold ship free; everything else pays the flat fee.
type ShippingPolicy struct {
	FreeShippingThreshold int64 `json:"freeShippingThreshold"`
	Fee                   int64 `json:"fee"`
}

// DefaultShippingPolicy is the storefront's standard shipping rule
var DefaultShippingPolicy = ShippingPolicy{FreeShippingThreshold: 5000, Fee: 500}

// Totals is the money summary of a cart
type Totals struct {
	Subtotal    int64 `json:"subtotal"`
	ShippingFee int64 `json:"shippingFee"`
	Total       int64 `json:"total"`
	ItemCount   int   `json:"itemCount"`
}

// ComputeTotals sums the cart and applies the shipping policy. An empty cart
// still carries the fee; checkout refuses empty carts on its own.
func ComputeTotals(items []CartItem, policy ShippingPolicy) Totals {
	var t Totals
	for _, item := range items {
		t.Subtotal += item.Product.Price * int64(item.Quantity)
		t.ItemCount += item.Quantity
	}
	if t.Subtotal < policy.FreeShippingThreshold {
		t.ShippingFee = policy.Fee
	}
	t.Total = t.Subtotal + t.ShippingFee
	return t
}

// MaxItemQuantity caps a single cart line. Merges saturate at it.
const MaxItemQuantity = 999

func clampQuantity(quantity int) int {
	return min(max(quantity, 1), MaxItemQuantity)
}

// AddItem merges quantity into an existing line or appends a new one.
// Quantities are clamped to [1, MaxItemQuantity], including after a merge.
func AddItem(items []CartItem, product domain.Product, quantity int) []CartItem {
	quantity = clampQuantity(quantity)

	out := cloneItems(items)
	if i := indexOfItem(out, product.ID); i >= 0 {
		out[i].Quantity = clampQuantity(out[i].Quantity + quantity)
		return out
	}
	return append(out, CartItem{Product: product.Clone(), Quantity: quantity})
}

// SetItemQuantity sets a line's quantity exactly; zero or less removes it
func SetItemQuantity(items []CartItem, productID string, quantity int) []CartItem {
	if quantity <= 0 {
		return RemoveItemByID(items, productID)
	}

	out := cloneItems(items)
	if i := indexOfItem(out, productID); i >= 0 {
		out[i].Quantity = clampQuantity(quantity)
	}
	return out
}

// RemoveItemByID drops a line; unknown ids leave the cart unchanged
func RemoveItemByID(items []CartItem, productID string) []CartItem {
	out := make([]CartItem, 0, len(items))
	for _, item := range items {
		if item.Product.ID != productID {
			out = append(out, item)
		}
	}
	return out
}

func cloneItems(items []CartItem) []CartItem {
	out := make([]CartItem, len(items))
	copy(out, items)
	return out
}

func addToCart(s State, a AddToCart) (State, Result) {
	qty := clampQuantity(a.Quantity)
	s.Cart = AddItem(s.Cart, a.Product, qty)
	return s, Result{
		CartChanged: true,
		Notifications: []Notification{{
			Kind:      CartAdded,
			ProductID: a.Product.ID,
			Quantity:  qty,
			Message:   fmt.Sprintf("%s added to cart", a.Product.Name),
		}},
	}
}

func updateQuantity(s State, a UpdateQuantity) (State, Result) {
	if indexOfItem(s.Cart, a.ProductID) < 0 {
		return s, Result{}
	}
	if a.Quantity <= 0 {
		return removeItem(s, RemoveItem{ProductID: a.ProductID})
	}

	qty := clampQuantity(a.Quantity)
	s.Cart = SetItemQuantity(s.Cart, a.ProductID, qty)
	return s, Result{
		CartChanged: true,
		Notifications: []Notification{{
			Kind:      CartUpdated,
			ProductID: a.ProductID,
			Quantity:  qty,
			Message:   "Cart updated",
		}},
	}
}

func removeItem(s State, a RemoveItem) (State, Result) {
	i := indexOfItem(s.Cart, a.ProductID)
	if i < 0 {
		return s, Result{}
	}

	name := s.Cart[i].Product.Name
	s.Cart = RemoveItemByID(s.Cart, a.ProductID)
	return s, Result{
		CartChanged: true,
		Notifications: []Notification{{
			Kind:      CartRemoved,
			ProductID: a.ProductID,
			Message:   fmt.Sprintf("%s removed from cart", name),
		}},
	}
}

func clearCart(s State, a ClearCart) (State, Result) {
	s.Cart = []CartItem{}
	n := Notification{Kind: CartCleared, Message: "Cart cleared"}
	if a.OrderID != "" {
		n = Notification{Kind: OrderPlaced, OrderID: a.OrderID, Message: fmt.Sprintf("Order %s placed", a.OrderID)}
	}
	return s, Result{CartChanged: true, Notifications: []Notification{n}}
}
