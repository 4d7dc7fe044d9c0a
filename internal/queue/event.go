// Package queue defines message payloads exchanged over the message
// broker and the background consumer that records placed orders.
package queue

import "github.com/iliyamo/telegram-shop-backend/internal/model"

// OrderPlacedEvent is published when an order is submitted. It carries
// enough information for downstream consumers to log or trigger
// analytics without querying the primary database.
type OrderPlacedEvent struct {
	OrderID    string            `json:"order_id"`
	UserID     string            `json:"user_id"`
	TelegramID int64             `json:"telegram_id,omitempty"`
	Items      []model.OrderItem `json:"items"`
	Total      int               `json:"total"`
	PlacedAt   string            `json:"placed_at"`
}
