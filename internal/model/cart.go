package model

// CartLine represents a row in the `cart` table. Each (user,
// product) pair is unique; adding an existing pair merges by
// incrementing the quantity rather than overwriting it.
//
// Fields:
//
//	UserID    – cart owner (users.id).
//	ProductID – product in the cart (products.id).
//	Quantity  – positive line quantity.
type CartLine struct {
	UserID    string `json:"user_id"`    // cart.user_id
	ProductID string `json:"product_id"` // cart.product_id
	Quantity  int    `json:"quantity"`   // cart.quantity
}

// CartItem is a cart line joined against the product table, the
// shape returned by GET /api/cart/:userID. Products deleted out
// from under a line simply drop out of the join.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// Favorite represents a row in the `favorites` table. The pair is
// unique and insertion is idempotent.
type Favorite struct {
	UserID    string `json:"user_id"`    // favorites.user_id
	ProductID string `json:"product_id"` // favorites.product_id
}
