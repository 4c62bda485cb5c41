package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/storefront/internal/catalog/repository"
	"github.com/tair/storefront/internal/catalog/seed"
	"github.com/tair/storefront/internal/catalog/usecase/query"
	"github.com/tair/storefront/internal/storefront/persistence"
	"github.com/tair/storefront/internal/storefront/session"
	"github.com/tair/storefront/internal/storefront/state"
	"github.com/tair/storefront/pkg/middleware"
)

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Error   string            `json:"error"`
	Errors  map[string]string `json:"errors"`
}

type client struct {
	t         *testing.T
	router    http.Handler
	sessionID string
}

func newClient(t *testing.T) *client {
	t.Helper()

	products, err := seed.Products()
	require.NoError(t, err)
	repo := repository.NewMemoryProductRepository(products)

	reg := prometheus.NewRegistry()
	h := NewStorefrontHandler(
		session.NewRegistry(persistence.NewMemorySlotStore(), reg),
		query.NewGetProductHandler(repo),
		query.NewListProductsHandler(repo),
		state.DefaultShippingPolicy,
		middleware.NewHTTPMetrics(reg, "storefront"),
	)

	router := mux.NewRouter()
	h.RegisterRoutes(router)
	return &client{t: t, router: router}
}

func (c *client) do(method, target, body string) (int, envelope) {
	c.t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if c.sessionID != "" {
		req.Header.Set(SessionHeader, c.sessionID)
	}
	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)

	c.sessionID = rec.Header().Get(SessionHeader)
	require.NotEmpty(c.t, c.sessionID)

	var env envelope
	require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func (c *client) view(method, target, body string) SessionView {
	c.t.Helper()
	code, env := c.do(method, target, body)
	require.Equal(c.t, http.StatusOK, code, env.Error)

	var v SessionView
	require.NoError(c.t, json.Unmarshal(env.Data, &v))
	return v
}

func TestSessionLifecycle(t *testing.T) {
	c := newClient(t)

	v := c.view(http.MethodGet, "/api/session?fragment=%23coffee", "")
	first := c.sessionID
	assert.Equal(t, "coffee", v.State.CurrentCategory)
	assert.Equal(t, "coffee", v.Fragment)
	assert.True(t, v.View.ShowCatalog)

	c.view(http.MethodGet, "/api/session", "")
	assert.Equal(t, first, c.sessionID, "the echoed id keeps the same session")

	c.sessionID = "not-a-uuid"
	c.view(http.MethodGet, "/api/session", "")
	assert.NotEqual(t, "not-a-uuid", c.sessionID)
}

func TestNavigationEndpoints(t *testing.T) {
	c := newClient(t)

	v := c.view(http.MethodPost, "/api/session/navigate", `{"category":"coffee"}`)
	assert.True(t, v.ScrollToTop)

	v = c.view(http.MethodPost, "/api/session/navigate", `{"category":"blog"}`)
	assert.True(t, v.View.ShowComingSoon)
	assert.Equal(t, "coffee", v.State.CurrentCategory)

	v = c.view(http.MethodPost, "/api/session/back", "")
	assert.Equal(t, "all", v.State.CurrentCategory)
	assert.Equal(t, "", v.Fragment)
	assert.False(t, v.View.ShowComingSoon)

	v = c.view(http.MethodPut, "/api/session/fragment", `{"fragment":"#fruit-trees"}`)
	assert.Equal(t, "seedlings", v.State.FilterCategory)

	v = c.view(http.MethodPost, "/api/session/product", `{"productId":"fig-tree-seedling"}`)
	assert.True(t, v.View.ShowProductDetail)

	code, _ := c.do(http.MethodPost, "/api/session/product", `{"productId":"ghost"}`)
	assert.Equal(t, http.StatusNotFound, code)

	v = c.view(http.MethodDelete, "/api/session/product", "")
	assert.True(t, v.View.ShowCatalog)

	code, _ = c.do(http.MethodPost, "/api/session/navigate", `not json`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestSessionProductsFollowsNavigationAndSearch(t *testing.T) {
	c := newClient(t)

	c.view(http.MethodPost, "/api/session/navigate", `{"category":"blends"}`)
	c.view(http.MethodPut, "/api/session/search", `{"query":"roast"}`)
	c.view(http.MethodPost, "/api/favorites/french-roast/toggle", "")

	code, env := c.do(http.MethodGet, "/api/session/products?sort=price", "")
	require.Equal(t, http.StatusOK, code)

	var payload struct {
		Category string `json:"category"`
		Products []struct {
			ID       string `json:"id"`
			Category string `json:"category"`
		} `json:"products"`
		FavoriteIDs []string `json:"favoriteIds"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &payload))

	assert.Equal(t, "blends", payload.Category)
	assert.Equal(t, []string{"french-roast"}, payload.FavoriteIDs)
	require.NotEmpty(t, payload.Products)
	for _, p := range payload.Products {
		assert.Equal(t, "coffee", p.Category)
	}
}

func TestCartEndpoints(t *testing.T) {
	c := newClient(t)

	v := c.view(http.MethodPost, "/api/cart/items", `{"productId":"house-espresso-blend","quantity":2}`)
	require.Len(t, v.Notifications, 1)
	assert.Equal(t, state.CartAdded, v.Notifications[0].Kind)

	v = c.view(http.MethodPost, "/api/cart/items", `{"productId":"monstera-seedling"}`)
	assert.Equal(t, 3, v.CartCount)
	assert.Equal(t, state.Totals{Subtotal: 5500, ShippingFee: 0, Total: 5500, ItemCount: 3}, v.Totals)

	v = c.view(http.MethodPost, "/api/cart/items", `{"productId":"house-espresso-blend","quantity":1}`)
	require.Len(t, v.State.Cart, 2)
	assert.Equal(t, 3, v.State.Cart[0].Quantity)

	v = c.view(http.MethodPatch, "/api/cart/items/monstera-seedling", `{"quantity":0}`)
	require.Len(t, v.State.Cart, 1)
	assert.Equal(t, state.Totals{Subtotal: 4500, ShippingFee: 500, Total: 5000, ItemCount: 3}, v.Totals)

	code, env := c.do(http.MethodGet, "/api/cart", "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"count":3`)

	v = c.view(http.MethodDelete, "/api/cart/items/house-espresso-blend", "")
	assert.Empty(t, v.State.Cart)

	c.view(http.MethodPost, "/api/cart/items", `{"productId":"basil-seedling"}`)
	v = c.view(http.MethodDelete, "/api/cart", "")
	assert.Empty(t, v.State.Cart)
	assert.Equal(t, state.CartCleared, v.Notifications[0].Kind)
}

func TestAddCartItemRejections(t *testing.T) {
	c := newClient(t)

	code, env := c.do(http.MethodPost, "/api/cart/items", `{"productId":"ghost"}`)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Product not found", env.Error)

	code, _ = c.do(http.MethodPost, "/api/cart/items", `{"productId":"lemon-tree-seedling"}`)
	assert.Equal(t, http.StatusConflict, code)

	code, _ = c.do(http.MethodPost, "/api/cart/items", `{"productId":"breakfast-blend"}`)
	assert.Equal(t, http.StatusConflict, code, "stock 0 overrides the seed's inStock flag")

	code, _ = c.do(http.MethodPatch, "/api/cart/items/basil-seedling", `{}`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestCartQuantityLimit(t *testing.T) {
	c := newClient(t)

	code, env := c.do(http.MethodPost, "/api/cart/items", `{"productId":"basil-seedling","quantity":9223372036854775807}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "quantity must not exceed 999", env.Error)

	v := c.view(http.MethodPost, "/api/cart/items", `{"productId":"basil-seedling","quantity":999}`)
	assert.Equal(t, 999, v.CartCount)

	v = c.view(http.MethodPost, "/api/cart/items", `{"productId":"basil-seedling","quantity":5}`)
	assert.Equal(t, 999, v.CartCount)
	assert.Equal(t, int64(600*999), v.Totals.Subtotal)

	code, _ = c.do(http.MethodPatch, "/api/cart/items/basil-seedling", `{"quantity":1000}`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestMissingCartItemIsNoop(t *testing.T) {
	c := newClient(t)
	c.view(http.MethodPost, "/api/cart/items", `{"productId":"basil-seedling"}`)

	v := c.view(http.MethodDelete, "/api/cart/items/ghost", "")
	assert.Empty(t, v.Notifications)
	assert.Len(t, v.State.Cart, 1)

	v = c.view(http.MethodPatch, "/api/cart/items/ghost", `{"quantity":3}`)
	assert.Empty(t, v.Notifications)
	assert.Equal(t, 1, v.CartCount)
}

func TestFavoriteEndpoints(t *testing.T) {
	c := newClient(t)

	v := c.view(http.MethodPost, "/api/favorites/magnolia-seedling/toggle", "")
	require.Len(t, v.State.Favorites, 1)
	assert.Equal(t, state.FavoriteAdded, v.Notifications[0].Kind)

	// out of stock products can still be favorites
	c.view(http.MethodPost, "/api/favorites/lemon-tree-seedling/toggle", "")

	code, env := c.do(http.MethodGet, "/api/favorites", "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"count":2`)

	v = c.view(http.MethodPost, "/api/favorites/magnolia-seedling/toggle", "")
	require.Len(t, v.State.Favorites, 1)
	assert.Equal(t, state.FavoriteRemoved, v.Notifications[0].Kind)

	v = c.view(http.MethodDelete, "/api/favorites/lemon-tree-seedling", "")
	assert.Empty(t, v.State.Favorites)

	v = c.view(http.MethodDelete, "/api/favorites/lemon-tree-seedling", "")
	assert.Empty(t, v.Notifications)

	code, _ = c.do(http.MethodPost, "/api/favorites/ghost/toggle", "")
	assert.Equal(t, http.StatusNotFound, code)
}

const validForm = `{"fullName":"Ada Lovelace","email":"ada@example.com","phone":"+44 20 7946 0958",
	"address":"12 Analytical Row","city":"London","postalCode":"NW1 6XE","paymentMethod":"card"}`

func TestCheckout(t *testing.T) {
	c := newClient(t)

	code, env := c.do(http.MethodPost, "/api/checkout", validForm)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "Cart is empty", env.Errors["cart"])

	c.view(http.MethodPost, "/api/cart/items", `{"productId":"colombia-huila","quantity":2}`)

	code, env = c.do(http.MethodPost, "/api/checkout", `{"fullName":"Ada","email":"nope"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Contains(t, env.Errors, "email")
	assert.Contains(t, env.Errors, "city")

	code, env = c.do(http.MethodPost, "/api/checkout", validForm)
	require.Equal(t, http.StatusCreated, code, env.Error)

	var order state.OrderConfirmation
	require.NoError(t, json.Unmarshal(env.Data, &order))
	assert.True(t, strings.HasPrefix(order.OrderID, "ORD-"))
	assert.Equal(t, state.Totals{Subtotal: 3200, ShippingFee: 500, Total: 3700, ItemCount: 2}, order.Totals)

	v := c.view(http.MethodGet, "/api/session", "")
	assert.Empty(t, v.State.Cart)
}

func TestValidateCheckoutEndpoint(t *testing.T) {
	c := newClient(t)

	code, env := c.do(http.MethodPost, "/api/checkout/validate", `{"fullName":"Ada"}`)
	require.Equal(t, http.StatusOK, code)

	var result struct {
		Valid  bool              `json:"valid"`
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.False(t, result.Valid)
	assert.NotContains(t, result.Errors, "fullName")
	assert.Contains(t, result.Errors, "paymentMethod")
}

func TestHealthCheck(t *testing.T) {
	router := mux.NewRouter()
	healthy := true
	RegisterHealthCheck(router, map[string]HealthCheck{
		"slots": func(context.Context) error {
			if healthy {
				return nil
			}
			return errors.New("down")
		},
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	healthy = false
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"slots":"unavailable"`)
}
