package main

// @title Storefront Service API
// @version 1.0
// @description Seedling and coffee storefront: catalog, per-shopper cart, favorites, navigation and checkout with full observability (logging, tracing, metrics)
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://github.com/tair/storefront
// @contact.email support@example.com

// @license.name MIT
// @license.url https://github.com/tair/storefront/blob/main/LICENSE

// @host localhost:8080
// @BasePath /

// @tag.name Products
// @tag.description Catalog browsing, filtering and statistics

// @tag.name Inventory
// @tag.description Product and stock maintenance

// @tag.name Reviews
// @tag.description Product reviews

// @tag.name Session
// @tag.description Per-shopper navigation state, keyed by the X-Session-ID header

// @tag.name Cart
// @tag.description Shopping cart

// @tag.name Favorites
// @tag.description Saved products

// @tag.name Checkout
// @tag.description Order placement without payment

// @tag.name Swagger
// @tag.description Swagger documentation endpoints
