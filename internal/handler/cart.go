package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/telegram-shop-backend/internal/model"
)

// CartStore is the slice of the cart repository the handler needs.
type CartStore interface {
	Add(ctx context.Context, userID, productID string, qty int) (model.CartLine, error)
	SetQuantity(ctx context.Context, userID, productID string, qty int) (model.CartLine, error)
	Remove(ctx context.Context, userID, productID string) error
	Clear(ctx context.Context, userID string) error
	Items(ctx context.Context, userID string) ([]model.CartItem, error)
}

// CartHandler serves the /api/cart endpoints.
type CartHandler struct {
	Cart CartStore
}

func NewCartHandler(s CartStore) *CartHandler { return &CartHandler{Cart: s} }

type addToCartReq struct {
	UserID    string `json:"user_id"`
	ProductID string `json:"product_id"`
	Quantity  *int   `json:"quantity"` // defaults to 1 when omitted
}

type setQuantityReq struct {
	UserID    string `json:"user_id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Get returns the cart joined against products.
func (h *CartHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Cart.Items(ctx, c.Param("userID"))
	if err != nil {
		return storeErr(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// Add merges qty into the user's cart line for the product.
func (h *CartHandler) Add(c echo.Context) error {
	var req addToCartReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	line, err := h.Cart.Add(ctx, req.UserID, req.ProductID, qty)
	if err != nil {
		return storeErr(c, err)
	}
	return c.JSON(http.StatusCreated, line)
}

// SetQuantity replaces the line quantity absolutely; 404 when the
// line does not exist.
func (h *CartHandler) SetQuantity(c echo.Context) error {
	var req setQuantityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	line, err := h.Cart.SetQuantity(ctx, req.UserID, req.ProductID, req.Quantity)
	if err != nil {
		return storeErr(c, err)
	}
	return c.JSON(http.StatusOK, line)
}

// Remove deletes one line; absent lines still succeed.
func (h *CartHandler) Remove(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Cart.Remove(ctx, c.Param("userID"), c.Param("productID")); err != nil {
		return storeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "removed from cart"})
}

// Clear empties the whole cart.
func (h *CartHandler) Clear(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Cart.Clear(ctx, c.Param("userID")); err != nil {
		return storeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "cart cleared"})
}
