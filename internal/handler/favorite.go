package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/telegram-shop-backend/internal/model"
)

// FavoriteStore is the slice of the favorites repository the handler needs.
type FavoriteStore interface {
	Add(ctx context.Context, userID, productID string) error
	Remove(ctx context.Context, userID, productID string) error
	ListProducts(ctx context.Context, userID string) ([]model.Product, error)
}

// FavoriteHandler serves the /api/favorites endpoints.
type FavoriteHandler struct {
	Favorites FavoriteStore
}

func NewFavoriteHandler(s FavoriteStore) *FavoriteHandler { return &FavoriteHandler{Favorites: s} }

type favoriteReq struct {
	UserID    string `json:"user_id"`
	ProductID string `json:"product_id"`
}

// List returns the user's favorite products.
func (h *FavoriteHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	products, err := h.Favorites.ListProducts(ctx, c.Param("userID"))
	if err != nil {
		return storeErr(c, err)
	}
	return c.JSON(http.StatusOK, products)
}

// Add marks a product as favorite. Adding the same pair twice is a
// no-op success.
func (h *FavoriteHandler) Add(c echo.Context) error {
	var req favoriteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Favorites.Add(ctx, req.UserID, req.ProductID); err != nil {
		return storeErr(c, err)
	}
	return c.JSON(http.StatusCreated, model.Favorite{UserID: req.UserID, ProductID: req.ProductID})
}

// Remove deletes the pair; removing an absent pair still succeeds.
func (h *FavoriteHandler) Remove(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Favorites.Remove(ctx, c.Param("userID"), c.Param("productID")); err != nil {
		return storeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "removed from favorites"})
}
