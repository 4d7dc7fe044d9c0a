// Package router wires HTTP routes to their handlers. The /api prefix
// is purely a routing concern; handlers never branch on it.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/telegram-shop-backend/internal/handler"
	"github.com/iliyamo/telegram-shop-backend/internal/middleware"
)

// Handlers bundles everything the router needs to register.
type Handlers struct {
	Auth      *handler.AuthHandler
	Category  *handler.CategoryHandler
	Product   *handler.ProductHandler
	Favorite  *handler.FavoriteHandler
	Cart      *handler.CartHandler
	Order     *handler.OrderHandler
	JWTSecret string
	// RateLimit is applied to the whole /api group; pass nil to skip.
	RateLimit echo.MiddlewareFunc
}

// Register sets up the health check, the Telegram auth endpoint and
// the storefront API. Catalog writes require an ADMIN token.
func Register(e *echo.Echo, h Handlers) {
	e.GET("/healthz", handler.Health)
	e.POST("/auth/telegram", h.Auth.Telegram)

	api := e.Group("/api")
	if h.RateLimit != nil {
		api.Use(h.RateLimit)
	}

	// Public storefront routes used by the mini-app.
	api.GET("/categories", h.Category.List)
	api.GET("/products", h.Product.List)
	api.GET("/products/search", h.Product.Search)
	api.GET("/products/:id", h.Product.Get)

	api.GET("/favorites/:userID", h.Favorite.List)
	api.POST("/favorites", h.Favorite.Add)
	api.DELETE("/favorites/:userID/:productID", h.Favorite.Remove)

	api.GET("/cart/:userID", h.Cart.Get)
	api.POST("/cart", h.Cart.Add)
	api.PUT("/cart", h.Cart.SetQuantity)
	api.DELETE("/cart/:userID/:productID", h.Cart.Remove)
	api.DELETE("/cart/:userID", h.Cart.Clear)

	api.POST("/orders", h.Order.Place)

	// Catalog management requires an operator token.
	admin := api.Group("")
	admin.Use(middleware.JWTAuth(h.JWTSecret))
	admin.Use(middleware.RequireRole("ADMIN"))
	admin.POST("/categories", h.Category.Create)
	admin.POST("/products", h.Product.Create)
	admin.DELETE("/products/:id", h.Product.Delete)
}
