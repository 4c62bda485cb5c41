package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	cataloghttp "github.com/tair/storefront/internal/catalog/delivery/http"
	"github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/internal/catalog/usecase/query"
	"github.com/tair/storefront/internal/storefront/session"
	"github.com/tair/storefront/internal/storefront/state"
	"github.com/tair/storefront/pkg/logger"
	"github.com/tair/storefront/pkg/middleware"
)

// StorefrontHandler serves the per-shopper state: navigation, cart,
// favorites and checkout
type StorefrontHandler struct {
	registry          *session.Registry
	getProductHandler *query.GetProductHandler
	listHandler       *query.ListProductsHandler
	policy            state.ShippingPolicy
	metrics           *middleware.HTTPMetrics
}

// NewStorefrontHandler creates a storefront handler
func NewStorefrontHandler(
	registry *session.Registry,
	getProductHandler *query.GetProductHandler,
	listHandler *query.ListProductsHandler,
	policy state.ShippingPolicy,
	metrics *middleware.HTTPMetrics,
) *StorefrontHandler {
	return &StorefrontHandler{
		registry:          registry,
		getProductHandler: getProductHandler,
		listHandler:       listHandler,
		policy:            policy,
		metrics:           metrics,
	}
}

type Response struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    interface{}       `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// SessionView is what every state-changing endpoint returns
type SessionView struct {
	SessionID     string               `json:"sessionId"`
	State         state.State          `json:"state"`
	View          state.View           `json:"view"`
	Fragment      string               `json:"fragment"`
	CartCount     int                  `json:"cartCount"`
	Totals        state.Totals         `json:"totals"`
	Notifications []state.Notification `json:"notifications,omitempty"`
	ScrollToTop   bool                 `json:"scrollToTop,omitempty"`
}

func (h *StorefrontHandler) RegisterRoutes(router *mux.Router) {
	route := func(path string, fn http.HandlerFunc, method string) {
		router.HandleFunc(path, h.metrics.Instrument(path, h.withSession(fn))).Methods(method)
	}

	// Navigation
	route("/api/session", h.GetSession, http.MethodGet)
	route("/api/session/navigate", h.Navigate, http.MethodPost)
	route("/api/session/fragment", h.SyncFragment, http.MethodPut)
	route("/api/session/back", h.GoBack, http.MethodPost)
	route("/api/session/product", h.OpenProduct, http.MethodPost)
	route("/api/session/product", h.CloseProduct, http.MethodDelete)
	route("/api/session/search", h.SetSearch, http.MethodPut)
	route("/api/session/products", h.SessionProducts, http.MethodGet)

	// Cart
	route("/api/cart", h.GetCart, http.MethodGet)
	route("/api/cart", h.ClearCart, http.MethodDelete)
	route("/api/cart/items", h.AddCartItem, http.MethodPost)
	route("/api/cart/items/{id}", h.UpdateCartItem, http.MethodPatch)
	route("/api/cart/items/{id}", h.RemoveCartItem, http.MethodDelete)

	// Favorites
	route("/api/favorites", h.GetFavorites, http.MethodGet)
	route("/api/favorites/{id}/toggle", h.ToggleFavorite, http.MethodPost)
	route("/api/favorites/{id}", h.RemoveFavorite, http.MethodDelete)

	// Checkout
	route("/api/checkout/validate", h.ValidateCheckout, http.MethodPost)
	route("/api/checkout", h.Checkout, http.MethodPost)
}

// GetSession handles GET /api/session
func (h *StorefrontHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	s := sessionFrom(r.Context())
	respondJSON(w, http.StatusOK, Response{Success: true, Data: h.view(s, s.Store.State(), state.Result{})})
}

// Navigate handles POST /api/session/navigate
func (h *StorefrontHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Category string `json:"category"`
	}
	if !decode(w, r, &req) {
		return
	}
	h.dispatch(w, r, state.Navigate{Category: req.Category})
}

// SyncFragment handles PUT /api/session/fragment
func (h *StorefrontHandler) SyncFragment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Fragment string `json:"fragment"`
	}
	if !decode(w, r, &req) {
		return
	}
	h.dispatch(w, r, state.SyncFragment{Fragment: req.Fragment})
}

// GoBack handles POST /api/session/back
func (h *StorefrontHandler) GoBack(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, state.GoBack{})
}

// OpenProduct handles POST /api/session/product
func (h *StorefrontHandler) OpenProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string `json:"productId"`
	}
	if !decode(w, r, &req) {
		return
	}
	product, ok := h.lookupProduct(w, r, req.ProductID)
	if !ok {
		return
	}
	h.dispatch(w, r, state.OpenProduct{ProductID: product.ID})
}

// CloseProduct handles DELETE /api/session/product
func (h *StorefrontHandler) CloseProduct(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, state.CloseProduct{})
}

// SetSearch handles PUT /api/session/search
func (h *StorefrontHandler) SetSearch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	if !decode(w, r, &req) {
		return
	}
	h.dispatch(w, r, state.SetSearch{Query: req.Query})
}

// SessionProducts handles GET /api/session/products: the catalog narrowed to
// the session's category and search, plus any explicit filter parameters
func (h *StorefrontHandler) SessionProducts(w http.ResponseWriter, r *http.Request) {
	q, err := cataloghttp.ParseListQuery(r.URL.Query())
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	st := sessionFrom(r.Context()).Store.State()
	if q.Filter.Category == "" {
		q.Filter.Category = st.FilterCategory
	}
	if q.Filter.Search == "" {
		q.Filter.Search = st.SearchQuery
	}

	products, err := h.listHandler.Handle(r.Context(), q)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list products")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list products"})
		return
	}

	favorites := make([]string, 0, len(st.Favorites))
	for _, p := range st.Favorites {
		favorites = append(favorites, p.ID)
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"category":    st.CurrentCategory,
			"filter":      q.Filter,
			"products":    products,
			"total":       len(products),
			"favoriteIds": favorites,
		},
	})
}

// GetCart handles GET /api/cart
func (h *StorefrontHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	st := sessionFrom(r.Context()).Store.State()
	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"items":  st.Cart,
			"count":  state.CartCount(st),
			"totals": state.ComputeTotals(st.Cart, h.policy),
		},
	})
}

// ClearCart handles DELETE /api/cart
func (h *StorefrontHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, state.ClearCart{})
}

// AddCartItem handles POST /api/cart/items
func (h *StorefrontHandler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if !decode(w, r, &req) {
		return
	}
	if !validQuantity(w, req.Quantity) {
		return
	}

	product, ok := h.lookupProduct(w, r, req.ProductID)
	if !ok {
		return
	}
	if !product.IsAvailable() {
		respondJSON(w, http.StatusConflict, Response{Success: false, Error: "Product is out of stock"})
		return
	}

	h.dispatch(w, r, state.AddToCart{Product: *product, Quantity: req.Quantity})
}

// UpdateCartItem handles PATCH /api/cart/items/{id}
func (h *StorefrontHandler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Quantity *int `json:"quantity"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.Quantity == nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "quantity is required"})
		return
	}
	if !validQuantity(w, *req.Quantity) {
		return
	}
	h.dispatch(w, r, state.UpdateQuantity{ProductID: mux.Vars(r)["id"], Quantity: *req.Quantity})
}

// RemoveCartItem handles DELETE /api/cart/items/{id}
func (h *StorefrontHandler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, state.RemoveItem{ProductID: mux.Vars(r)["id"]})
}

// GetFavorites handles GET /api/favorites
func (h *StorefrontHandler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	st := sessionFrom(r.Context()).Store.State()
	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"favorites": st.Favorites,
			"count":     len(st.Favorites),
		},
	})
}

// ToggleFavorite handles POST /api/favorites/{id}/toggle
func (h *StorefrontHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	product, ok := h.lookupProduct(w, r, mux.Vars(r)["id"])
	if !ok {
		return
	}
	h.dispatch(w, r, state.ToggleFavorite{Product: *product})
}

// RemoveFavorite handles DELETE /api/favorites/{id}
func (h *StorefrontHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, state.RemoveFavorite{ProductID: mux.Vars(r)["id"]})
}

// ValidateCheckout handles POST /api/checkout/validate
func (h *StorefrontHandler) ValidateCheckout(w http.ResponseWriter, r *http.Request) {
	var form state.CheckoutForm
	if !decode(w, r, &form) {
		return
	}

	errs := state.ValidateCheckout(form)
	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"valid":  len(errs) == 0,
			"errors": errs,
		},
	})
}

// Checkout handles POST /api/checkout. Nothing is charged; a valid form
// yields a confirmation and an empty cart.
func (h *StorefrontHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var form state.CheckoutForm
	if !decode(w, r, &form) {
		return
	}

	s := sessionFrom(r.Context())
	order, errs := state.PlaceOrder(r.Context(), s.Store, form, h.policy)
	if order == nil {
		respondJSON(w, http.StatusUnprocessableEntity, Response{
			Success: false,
			Error:   "Checkout form is invalid",
			Errors:  errs,
		})
		return
	}

	logger.Info(r.Context()).
		Str("session_id", s.ID).
		Str("order_id", order.OrderID).
		Int64("total", order.Totals.Total).
		Msg("Order placed")

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Order placed successfully",
		Data:    order,
	})
}

func (h *StorefrontHandler) dispatch(w http.ResponseWriter, r *http.Request, action state.Action) {
	s := sessionFrom(r.Context())
	next, res := s.Store.Dispatch(r.Context(), action)
	respondJSON(w, http.StatusOK, Response{Success: true, Data: h.view(s, next, res)})
}

func (h *StorefrontHandler) view(s *session.Session, st state.State, res state.Result) SessionView {
	return SessionView{
		SessionID:     s.ID,
		State:         st,
		View:          state.DeriveView(st),
		Fragment:      state.Fragment(st),
		CartCount:     state.CartCount(st),
		Totals:        state.ComputeTotals(st.Cart, h.policy),
		Notifications: res.Notifications,
		ScrollToTop:   res.ScrollToTop,
	}
}

func (h *StorefrontHandler) lookupProduct(w http.ResponseWriter, r *http.Request, id string) (*domain.Product, bool) {
	product, err := h.getProductHandler.Handle(r.Context(), query.GetProductQuery{ID: id})
	switch {
	case err == nil:
		return product, true
	case errors.Is(err, domain.ErrProductNotFound):
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Product not found"})
	default:
		logger.Warn(r.Context()).Err(err).Str("product_id", id).Msg("Failed to look up product")
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
	}
	return nil, false
}

func validQuantity(w http.ResponseWriter, quantity int) bool {
	if quantity > state.MaxItemQuantity {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   fmt.Sprintf("quantity must not exceed %d", state.MaxItemQuantity),
		})
		return false
	}
	return true
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return false
	}
	return true
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// HealthCheck is one dependency probe for /health
type HealthCheck func(ctx context.Context) error

// RegisterHealthCheck serves /health, failing when any probe fails
func RegisterHealthCheck(router *mux.Router, checks map[string]HealthCheck) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		status := map[string]string{}
		healthy := true
		for name, check := range checks {
			if err := check(r.Context()); err != nil {
				logger.Warn(r.Context()).Err(err).Str("dependency", name).Msg("Health check failed")
				status[name] = "unavailable"
				healthy = false
				continue
			}
			status[name] = "ok"
		}

		if !healthy {
			respondJSON(w, http.StatusServiceUnavailable, Response{
				Success: false,
				Error:   "Dependency unavailable",
				Data:    status,
			})
			return
		}

		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Storefront service is healthy",
			Data:    status,
		})
	}).Methods(http.MethodGet)
}
