package http

// GetSession godoc
// @Summary Current session
// @Description Returns the shopper's state, creating a session when X-Session-ID is missing or unknown
// @Tags Session
// @Produce json
// @Param X-Session-ID header string false "Session id returned by a previous call"
// @Param X-Fragment header string false "URL fragment the page was loaded with"
// @Param fragment query string false "Alternative to X-Fragment"
// @Success 200 {object} object{success=bool,data=SessionView}
// @Router /api/session [get]
func (h *StorefrontHandler) GetSessionDoc() {}

// Navigate godoc
// @Summary Navigate to a category
// @Description Coming-soon sections keep the current category and only show a placeholder
// @Tags Session
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Session id"
// @Param request body object{category=string} true "Target category"
// @Success 200 {object} object{success=bool,data=SessionView}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/session/navigate [post]
func (h *StorefrontHandler) NavigateDoc() {}

// SyncFragment godoc
// @Summary Sync with the URL fragment
// @Description Called on hashchange. A fragment equal to the current category is a no-op.
// @Tags Session
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Session id"
// @Param request body object{fragment=string} true "Raw fragment, with or without #"
// @Success 200 {object} object{success=bool,data=SessionView}
// @Router /api/session/fragment [put]
func (h *StorefrontHandler) SyncFragmentDoc() {}

// GoBack godoc
// @Summary Leave a coming-soon page
// @Tags Session
// @Produce json
// @Param X-Session-ID header string false "Session id"
// @Success 200 {object} object{success=bool,data=SessionView}
// @Router /api/session/back [post]
func (h *StorefrontHandler) GoBackDoc() {}

// OpenProduct godoc
// @Summary Open the product detail view
// @Tags Session
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Session id"
// @Param request body object{productId=string} true "Product to show"
// @Success 200 {object} object{success=bool,data=SessionView}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/session/product [post]
func (h *StorefrontHandler) OpenProductDoc() {}

// CloseProduct godoc
// @Summary Close the product detail view
// @Tags Session
// @Produce json
// @Param X-Session-ID header string false "Session id"
// @Success 200 {object} object{success=bool,data=SessionView}
// @Router /api/session/product [delete]
func (h *StorefrontHandler) CloseProductDoc() {}

// SetSearch godoc
// @Summary Set the search query
// @Tags Session
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Session id"
// @Param request body object{query=string} true "Search text"
// @Success 200 {object} object{success=bool,data=SessionView}
// @Router /api/session/search [put]
func (h *StorefrontHandler) SetSearchDoc() {}

// SessionProducts godoc
// @Summary Products for the current page
// @Description The catalog filtered by the session's category and search. Explicit query parameters take precedence.
// @Tags Session
// @Produce json
// @Param X-Session-ID header string false "Session id"
// @Param sort query string false "name, price or rating"
// @Param order query string false "asc or desc"
// @Success 200 {object} object{success=bool,data=object{category=string,products=array,total=int,favoriteIds=[]string}}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/session/products [get]
func (h *StorefrontHandler) SessionProductsDoc() {}

// GetCart godoc
// @Summary Cart contents and totals
// @Tags Cart
// @Produce json
// @Param X-Session-ID header string false "Session id"
// @Success 200 {object} object{success=bool,data=object{items=[]state.CartItem,count=int,totals=state.Totals}}
// @Router /api/cart [get]
func (h *StorefrontHandler) GetCartDoc() {}

// AddCartItem godoc
// @Summary Add a product to the cart
// @Description Adding a product already in the cart increases its quantity up to 999. Quantity defaults to 1.
// @Tags Cart
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Session id"
// @Param request body object{productId=string,quantity=int} true "Item"
// @Success 200 {object} object{success=bool,data=SessionView}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/cart/items [post]
func (h *StorefrontHandler) AddCartItemDoc() {}

// UpdateCartItem godoc
// @Summary Set an item's quantity
// @Description A quantity of zero or less removes the item. At most 999. Unknown items are left alone.
// @Tags Cart
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Session id"
// @Param id path string true "Product ID"
// @Param request body object{quantity=int} true "New quantity"
// @Success 200 {object} object{success=bool,data=SessionView}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/cart/items/{id} [patch]
func (h *StorefrontHandler) UpdateCartItemDoc() {}

// RemoveCartItem godoc
// @Summary Remove an item from the cart
// @Tags Cart
// @Produce json
// @Param X-Session-ID header string false "Session id"
// @Param id path string true "Product ID"
// @Success 200 {object} object{success=bool,data=SessionView}
// @Router /api/cart/items/{id} [delete]
func (h *StorefrontHandler) RemoveCartItemDoc() {}

// ClearCart godoc
// @Summary Empty the cart
// @Tags Cart
// @Produce json
// @Param X-Session-ID header string false "Session id"
// @Success 200 {object} object{success=bool,data=SessionView}
// @Router /api/cart [delete]
func (h *StorefrontHandler) ClearCartDoc() {}

// GetFavorites godoc
// @Summary List favorites
// @Tags Favorites
// @Produce json
// @Param X-Session-ID header string false "Session id"
// @Success 200 {object} object{success=bool,data=object{favorites=[]domain.Product,count=int}}
// @Router /api/favorites [get]
func (h *StorefrontHandler) GetFavoritesDoc() {}

// ToggleFavorite godoc
// @Summary Toggle a favorite
// @Tags Favorites
// @Produce json
// @Param X-Session-ID header string false "Session id"
// @Param id path string true "Product ID"
// @Success 200 {object} object{success=bool,data=SessionView}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/favorites/{id}/toggle [post]
func (h *StorefrontHandler) ToggleFavoriteDoc() {}

// RemoveFavorite godoc
// @Summary Remove a favorite
// @Tags Favorites
// @Produce json
// @Param X-Session-ID header string false "Session id"
// @Param id path string true "Product ID"
// @Success 200 {object} object{success=bool,data=SessionView}
// @Router /api/favorites/{id} [delete]
func (h *StorefrontHandler) RemoveFavoriteDoc() {}

// ValidateCheckout godoc
// @Summary Validate checkout details
// @Tags Checkout
// @Accept json
// @Produce json
// @Param request body state.CheckoutForm true "Checkout form"
// @Success 200 {object} object{success=bool,data=object{valid=bool,errors=object}}
// @Router /api/checkout/validate [post]
func (h *StorefrontHandler) ValidateCheckoutDoc() {}

// Checkout godoc
// @Summary Place an order
// @Description No payment is taken. A valid form returns a confirmation and clears the cart.
// @Tags Checkout
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Session id"
// @Param request body state.CheckoutForm true "Checkout form"
// @Success 201 {object} object{success=bool,message=string,data=state.OrderConfirmation}
// @Failure 422 {object} object{success=bool,error=string,errors=object}
// @Router /api/checkout [post]
func (h *StorefrontHandler) CheckoutDoc() {}
