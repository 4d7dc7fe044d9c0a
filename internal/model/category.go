package model

// Category represents a row in the `categories` table. Only the
// storefront API manages this table; the admin bot works from the
// category list in the bot settings file instead.
//
// Fields:
//
//	ID   – opaque string identifier (UUID).
//	Name – display name of the category.
//	Icon – emoji or icon reference shown next to the name.
type Category struct {
	ID   string `json:"id"`   // categories.id
	Name string `json:"name"` // categories.name
	Icon string `json:"icon"` // categories.icon
}
