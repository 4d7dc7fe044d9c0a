package model

// Product represents a row in the `products` table. Prices are
// stored in the minor currency unit as plain integers. Images are
// persisted as a JSON array of URL strings and are never empty:
// creation substitutes a placeholder when no image is supplied.
//
// Fields:
//
//	ID          – opaque string identifier (UUID).
//	Name        – product name.
//	Description – optional free-text description (nullable column).
//	Price       – non-negative price in the minor currency unit.
//	Images      – ordered list of image URLs (non-empty).
//	CategoryID  – optional reference to categories.id.
type Product struct {
	ID          string   `json:"id"`          // products.id
	Name        string   `json:"name"`        // products.name
	Description *string  `json:"description"` // products.description (nullable)
	Price       int      `json:"price"`       // products.price
	Images      []string `json:"images"`      // products.images (JSON array)
	CategoryID  *string  `json:"category_id"` // products.category_id (nullable)
}
