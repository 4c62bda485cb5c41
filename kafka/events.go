package kafka

import "time"

// StorefrontEvent is published whenever a shopper's cart, favorites or
// order state changes
type StorefrontEvent struct {
	EventID        string    `json:"event_id"`
	EventType      string    `json:"event_type"`
	SessionID      string    `json:"session_id"`
	ProductID      string    `json:"product_id,omitempty"`
	Quantity       int       `json:"quantity,omitempty"`
	OrderID        string    `json:"order_id,omitempty"`
	CartItems      int       `json:"cart_items"`
	CartSubtotal   int64     `json:"cart_subtotal"`
	FavoritesCount int       `json:"favorites_count"`
	Message        string    `json:"message,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// StockUpdatedEvent carries a new stock level from the warehouse feed
type StockUpdatedEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	ProductID string    `json:"product_id"`
	Stock     int       `json:"stock"`
	Timestamp time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeCartUpdated      = "cart.updated"
	EventTypeFavoritesUpdated = "favorites.updated"
	EventTypeOrderCompleted   = "order.completed"
	EventTypeStockUpdated     = "stock.updated"
)

// Default Kafka topics
const (
	TopicStorefrontEvents = "storefront-events"
	TopicStockUpdates     = "stock-updates"
)
