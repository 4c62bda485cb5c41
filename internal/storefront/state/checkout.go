package state

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	emailPattern      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern      = regexp.MustCompile(`^\+?[0-9\s\-()]{7,20}$`)
	postalCodePattern = regexp.MustCompile(`^[A-Za-z0-9\s\-]{3,10}$`)
)

// Payment methods accepted by the checkout form. None of them charges anything.
var paymentMethods = map[string]bool{
	"card":             true,
	"bank_transfer":    true,
	"cash_on_delivery": true,
}

// CheckoutForm is the shopper's delivery and contact details
type CheckoutForm struct {
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	City          string `json:"city"`
	PostalCode    string `json:"postalCode"`
	PaymentMethod string `json:"paymentMethod"`
	Notes         string `json:"notes,omitempty"`
}

// ValidateCheckout returns a field-keyed error map; an empty map means valid
func ValidateCheckout(f CheckoutForm) map[string]string {
	errs := map[string]string{}

	required := []struct {
		field, value, label string
	}{
		{"fullName", f.FullName, "Full name"},
		{"email", f.Email, "Email"},
		{"phone", f.Phone, "Phone"},
		{"address", f.Address, "Address"},
		{"city", f.City, "City"},
		{"postalCode", f.PostalCode, "Postal code"},
		{"paymentMethod", f.PaymentMethod, "Payment method"},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs[r.field] = r.label + " is required"
		}
	}

	if _, missing := errs["email"]; !missing && !emailPattern.MatchString(strings.TrimSpace(f.Email)) {
		errs["email"] = "Email is invalid"
	}
	if _, missing := errs["phone"]; !missing && !phonePattern.MatchString(strings.TrimSpace(f.Phone)) {
		errs["phone"] = "Phone number is invalid"
	}
	if _, missing := errs["postalCode"]; !missing && !postalCodePattern.MatchString(strings.TrimSpace(f.PostalCode)) {
		errs["postalCode"] = "Postal code is invalid"
	}
	if _, missing := errs["paymentMethod"]; !missing && !paymentMethods[f.PaymentMethod] {
		errs["paymentMethod"] = "Payment method is not supported"
	}

	return errs
}

// OrderConfirmation is what the shopper sees after checkout. Nothing is
// charged or shipped; the confirmation only records what was in the cart.
type OrderConfirmation struct {
	OrderID  string       `json:"orderId"`
	Items    []CartItem   `json:"items"`
	Totals   Totals       `json:"totals"`
	Customer CheckoutForm `json:"customer"`
	PlacedAt time.Time    `json:"placedAt"`
}

// PlaceOrder validates the form against the current cart. On success the
// cart is cleared through the store; on failure nothing changes and the
// field errors are returned.
func PlaceOrder(ctx context.Context, store *Store, form CheckoutForm, policy ShippingPolicy) (*OrderConfirmation, map[string]string) {
	var (
		order *OrderConfirmation
		errs  map[string]string
	)

	store.DispatchWith(ctx, func(current State) Action {
		errs = ValidateCheckout(form)
		if len(current.Cart) == 0 {
			errs["cart"] = "Cart is empty"
		}
		if len(errs) > 0 {
			return nil
		}

		order = &OrderConfirmation{
			OrderID:  fmt.Sprintf("ORD-%s", strings.ToUpper(uuid.NewString()[:8])),
			Items:    current.Cart,
			Totals:   ComputeTotals(current.Cart, policy),
			Customer: form,
			PlacedAt: time.Now().UTC(),
		}
		return ClearCart{OrderID: order.OrderID}
	})

	if order == nil {
		return nil, errs
	}
	return order, nil
}
