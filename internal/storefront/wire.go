//go:build wireinject
// +build wireinject

package storefront

import (
	"github.com/google/wire"

	"github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/internal/catalog/usecase/query"
	"github.com/tair/storefront/internal/storefront/delivery/http"
	"github.com/tair/storefront/internal/storefront/session"
	"github.com/tair/storefront/internal/storefront/state"
	"github.com/tair/storefront/pkg/middleware"
)

// Wire sets
var CatalogQuerySet = wire.NewSet(
	query.NewGetProductHandler,
	query.NewListProductsHandler,
)

// InitializeHTTPHandler initializes the storefront HTTP handler. The
// storefront only reads the catalog.
func InitializeHTTPHandler(
	products domain.ProductRepository,
	registry *session.Registry,
	policy state.ShippingPolicy,
	metrics *middleware.HTTPMetrics,
) (*http.StorefrontHandler, error) {
	wire.Build(
		CatalogQuerySet,
		http.NewStorefrontHandler,
	)
	return nil, nil
}
