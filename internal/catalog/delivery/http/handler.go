package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/internal/catalog/usecase/command"
	"github.com/tair/storefront/internal/catalog/usecase/query"
	"github.com/tair/storefront/pkg/logger"
	"github.com/tair/storefront/pkg/middleware"
)

// CatalogHandler handles HTTP requests for products and reviews using CQRS pattern
type CatalogHandler struct {
	// Command handlers
	updateHandler       *command.UpdateProductHandler
	updateStockHandler  *command.UpdateStockHandler
	submitReviewHandler *command.SubmitReviewHandler
	markHelpfulHandler  *command.MarkHelpfulHandler

	// Query handlers
	getProductHandler  *query.GetProductHandler
	listHandler        *query.ListProductsHandler
	listReviewsHandler *query.ListReviewsHandler
	statsHandler       *query.GetStatsHandler

	metrics         *middleware.HTTPMetrics
	inStockProducts prometheus.Gauge
}

// NewCatalogHandler creates a catalog handler from repositories
func NewCatalogHandler(products domain.ProductRepository, reviews domain.ReviewRepository, metrics *middleware.HTTPMetrics, reg prometheus.Registerer) *CatalogHandler {
	return NewCatalogHandlerWithDI(
		command.NewUpdateProductHandler(products),
		command.NewUpdateStockHandler(products),
		command.NewSubmitReviewHandler(products, reviews),
		command.NewMarkHelpfulHandler(reviews),
		query.NewGetProductHandler(products),
		query.NewListProductsHandler(products),
		query.NewListReviewsHandler(products, reviews),
		query.NewGetStatsHandler(products),
		metrics,
		reg,
	)
}

// NewCatalogHandlerWithDI creates a catalog handler from prebuilt use cases.
// This is used by Wire for automatic dependency injection
func NewCatalogHandlerWithDI(
	updateHandler *command.UpdateProductHandler,
	updateStockHandler *command.UpdateStockHandler,
	submitReviewHandler *command.SubmitReviewHandler,
	markHelpfulHandler *command.MarkHelpfulHandler,
	getProductHandler *query.GetProductHandler,
	listHandler *query.ListProductsHandler,
	listReviewsHandler *query.ListReviewsHandler,
	statsHandler *query.GetStatsHandler,
	metrics *middleware.HTTPMetrics,
	reg prometheus.Registerer,
) *CatalogHandler {
	inStockProducts := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_in_stock_products",
		Help: "Number of catalog products currently in stock",
	})
	reg.MustRegister(inStockProducts)

	return &CatalogHandler{
		updateHandler:       updateHandler,
		updateStockHandler:  updateStockHandler,
		submitReviewHandler: submitReviewHandler,
		markHelpfulHandler:  markHelpfulHandler,
		getProductHandler:   getProductHandler,
		listHandler:         listHandler,
		listReviewsHandler:  listReviewsHandler,
		statsHandler:        statsHandler,
		metrics:             metrics,
		inStockProducts:     inStockProducts,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func (h *CatalogHandler) RegisterRoutes(router *mux.Router) {
	route := func(path string, fn http.HandlerFunc, method string) {
		router.HandleFunc(path, h.metrics.Instrument(path, fn)).Methods(method)
	}

	route("/api/products", h.ListProducts, http.MethodGet)
	route("/api/products/stats", h.GetStats, http.MethodGet)
	route("/api/products/{id}", h.GetProduct, http.MethodGet)
	route("/api/products/{id}/reviews", h.ListReviews, http.MethodGet)
	route("/api/products/{id}/reviews", h.SubmitReview, http.MethodPost)
	route("/api/reviews/{id}/helpful", h.MarkHelpful, http.MethodPost)

	// Inventory management
	route("/api/products/{id}", h.UpdateProduct, http.MethodPut)
	route("/api/products/{id}/stock", h.UpdateStock, http.MethodPatch)
}

// ListProducts handles GET /api/products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q, err := ParseListQuery(r.URL.Query())
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	products, err := h.listHandler.Handle(r.Context(), q)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list products")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list products",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"products": products,
			"total":    len(products),
		},
	})
}

// GetProduct handles GET /api/products/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.getProductHandler.Handle(r.Context(), query.GetProductQuery{ID: mux.Vars(r)["id"]})
	if err != nil {
		h.respondError(w, r, err, "Failed to get product")
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: product})
}

// UpdateProduct handles PUT /api/products/{id}
func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req domain.Product
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	product, err := h.updateHandler.Handle(r.Context(), command.UpdateProductCommand{
		ID:      mux.Vars(r)["id"],
		Product: req,
	})
	if err != nil {
		h.respondError(w, r, err, "Failed to update product")
		return
	}

	h.updateStockMetric(r.Context())
	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Product updated successfully",
		Data:    product,
	})
}

// UpdateStock handles PATCH /api/products/{id}/stock
func (h *CatalogHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Stock *int `json:"stock"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Stock == nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	product, err := h.updateStockHandler.Handle(r.Context(), command.UpdateStockCommand{
		ProductID: mux.Vars(r)["id"],
		Stock:     *req.Stock,
	})
	if err != nil {
		h.respondError(w, r, err, "Failed to update stock")
		return
	}

	h.updateStockMetric(r.Context())
	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Stock updated successfully",
		Data:    product,
	})
}

// GetStats handles GET /api/products/stats
func (h *CatalogHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsHandler.Handle(r.Context(), query.GetStatsQuery{})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to get stats")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to get statistics",
		})
		return
	}

	h.inStockProducts.Set(float64(stats.InStock))
	respondJSON(w, http.StatusOK, Response{Success: true, Data: stats})
}

// ListReviews handles GET /api/products/{id}/reviews
func (h *CatalogHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.listReviewsHandler.Handle(r.Context(), query.ListReviewsQuery{ProductID: mux.Vars(r)["id"]})
	if err != nil {
		h.respondError(w, r, err, "Failed to list reviews")
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: reviews})
}

// SubmitReview handles POST /api/products/{id}/reviews
func (h *CatalogHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserName string `json:"userName"`
		Rating   int    `json:"rating"`
		Comment  string `json:"comment"`
		Verified bool   `json:"verified"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	review, err := h.submitReviewHandler.Handle(r.Context(), command.SubmitReviewCommand{
		ProductID: mux.Vars(r)["id"],
		UserName:  req.UserName,
		Rating:    req.Rating,
		Comment:   req.Comment,
		Verified:  req.Verified,
	})
	if err != nil {
		h.respondError(w, r, err, "Failed to submit review")
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Review submitted successfully",
		Data:    review,
	})
}

// MarkHelpful handles POST /api/reviews/{id}/helpful
func (h *CatalogHandler) MarkHelpful(w http.ResponseWriter, r *http.Request) {
	review, err := h.markHelpfulHandler.Handle(r.Context(), command.MarkHelpfulCommand{ReviewID: mux.Vars(r)["id"]})
	if err != nil {
		h.respondError(w, r, err, "Failed to mark review helpful")
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: review})
}

// respondError maps not-found errors to 404 and everything else to 400
func (h *CatalogHandler) respondError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Product not found"})
	case errors.Is(err, domain.ErrReviewNotFound):
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Review not found"})
	default:
		logger.Warn(r.Context()).Err(err).Msg(msg)
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
	}
}

// ApplyStockUpdate sets a product's stock outside of HTTP, such as from the
// warehouse feed, and keeps the in-stock gauge current.
func (h *CatalogHandler) ApplyStockUpdate(ctx context.Context, productID string, stock int) (*domain.Product, error) {
	product, err := h.updateStockHandler.Handle(ctx, command.UpdateStockCommand{
		ProductID: productID,
		Stock:     stock,
	})
	if err != nil {
		return nil, err
	}
	h.updateStockMetric(ctx)
	return product, nil
}

// updateStockMetric refreshes the in-stock gauge after inventory changes
func (h *CatalogHandler) updateStockMetric(ctx context.Context) {
	stats, err := h.statsHandler.Handle(ctx, query.GetStatsQuery{})
	if err == nil {
		h.inStockProducts.Set(float64(stats.InStock))
	}
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
