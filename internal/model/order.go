package model

import "time"

// OrderItem is one line of a submitted order as sent by the
// client: a denormalized snapshot of the product at order time.
type OrderItem struct {
	ProductID string `json:"product_id,omitempty"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Price     int    `json:"price"` // unit price, minor currency unit
}

// Order represents a row in the `orders` table. Placing an order
// persists this record, notifies the shop channel and clears the
// user's cart; notification failures never block completion.
//
// Fields:
//
//	ID        – opaque string identifier (UUID).
//	UserID    – ordering user (users.id).
//	Items     – item snapshots, persisted as a JSON array.
//	Total     – grand total in the minor currency unit.
//	CreatedAt – when the order was placed.
type Order struct {
	ID        string      `json:"id"`         // orders.id
	UserID    string      `json:"user_id"`    // orders.user_id
	Items     []OrderItem `json:"items"`      // orders.items (JSON array)
	Total     int         `json:"total"`      // orders.total
	CreatedAt time.Time   `json:"created_at"` // orders.created_at
}
