//go:build wireinject
// +build wireinject

package catalog

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/storefront/internal/catalog/delivery/http"
	"github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/internal/catalog/usecase/command"
	"github.com/tair/storefront/internal/catalog/usecase/query"
	"github.com/tair/storefront/pkg/middleware"
)

// Wire sets
var CommandSet = wire.NewSet(
	command.NewUpdateProductHandler,
	command.NewUpdateStockHandler,
	command.NewSubmitReviewHandler,
	command.NewMarkHelpfulHandler,
)

var QuerySet = wire.NewSet(
	query.NewGetProductHandler,
	query.NewListProductsHandler,
	query.NewListReviewsHandler,
	query.NewGetStatsHandler,
)

// InitializeHTTPHandler initializes the catalog HTTP handler with all dependencies
func InitializeHTTPHandler(
	products domain.ProductRepository,
	reviews domain.ReviewRepository,
	metrics *middleware.HTTPMetrics,
	reg prometheus.Registerer,
) (*http.CatalogHandler, error) {
	wire.Build(
		CommandSet,
		QuerySet,
		http.NewCatalogHandlerWithDI,
	)
	return nil, nil
}
