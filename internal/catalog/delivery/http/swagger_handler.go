package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
// @Summary Swagger documentation
// @Description Swagger API documentation
// @Tags Swagger
// @Success 200 {string} string "Swagger UI"
// @Router /swagger/ [get]
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// ListProducts godoc
// @Summary List products
// @Description Filter and sort the catalog. Filters combine with AND; an empty result is not an error.
// @Tags Products
// @Produce json
// @Param category query string false "seedlings, coffee or all"
// @Param min_price query int false "Minimum price in cents, inclusive"
// @Param max_price query int false "Maximum price in cents, inclusive"
// @Param difficulty query string false "Comma separated difficulty levels"
// @Param roast_level query string false "Comma separated roast levels"
// @Param organic query bool false "Only organic products"
// @Param in_stock query bool false "Only products in stock"
// @Param q query string false "Free text search"
// @Param sort query string false "name, price or rating"
// @Param order query string false "asc or desc"
// @Success 200 {object} object{success=bool,data=object{products=array,total=int}}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/products [get]
func (h *CatalogHandler) ListProductsDoc() {}

// GetProduct godoc
// @Summary Get product by ID
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} object{success=bool,data=domain.Product}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/products/{id} [get]
func (h *CatalogHandler) GetProductDoc() {}

// GetStats godoc
// @Summary Catalog statistics
// @Description Counts per category and availability, price range and average rating
// @Tags Products
// @Produce json
// @Success 200 {object} object{success=bool,data=query.CatalogStats}
// @Router /api/products/stats [get]
func (h *CatalogHandler) GetStatsDoc() {}

// UpdateProduct godoc
// @Summary Update a product
// @Description Replace every mutable field. The id in the path wins; inStock follows stock when stock is tracked.
// @Tags Inventory
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body domain.Product true "Product data"
// @Success 200 {object} object{success=bool,message=string,data=domain.Product}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/products/{id} [put]
func (h *CatalogHandler) UpdateProductDoc() {}

// UpdateStock godoc
// @Summary Update product stock
// @Tags Inventory
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body object{stock=int} true "New stock level"
// @Success 200 {object} object{success=bool,message=string,data=domain.Product}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/products/{id}/stock [patch]
func (h *CatalogHandler) UpdateStockDoc() {}

// ListReviews godoc
// @Summary List product reviews
// @Tags Reviews
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} object{success=bool,data=query.ProductReviews}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/products/{id}/reviews [get]
func (h *CatalogHandler) ListReviewsDoc() {}

// SubmitReview godoc
// @Summary Submit a review
// @Tags Reviews
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body object{userName=string,rating=int,comment=string,verified=bool} true "Review"
// @Success 201 {object} object{success=bool,message=string,data=domain.Review}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/products/{id}/reviews [post]
func (h *CatalogHandler) SubmitReviewDoc() {}

// MarkHelpful godoc
// @Summary Mark a review helpful
// @Tags Reviews
// @Produce json
// @Param id path string true "Review ID"
// @Success 200 {object} object{success=bool,data=domain.Review}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/reviews/{id}/helpful [post]
func (h *CatalogHandler) MarkHelpfulDoc() {}
