package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/telegram-shop-backend/internal/model"
)

// CategoryStore is the slice of the category repository the handler needs.
type CategoryStore interface {
	List(ctx context.Context) ([]model.Category, error)
	Create(ctx context.Context, name, icon string) (model.Category, error)
}

// CategoryHandler serves the /api/categories endpoints.
type CategoryHandler struct {
	Categories CategoryStore
}

func NewCategoryHandler(s CategoryStore) *CategoryHandler { return &CategoryHandler{Categories: s} }

type createCategoryReq struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// List returns all categories.
func (h *CategoryHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cats, err := h.Categories.List(ctx)
	if err != nil {
		return storeErr(c, err)
	}
	return c.JSON(http.StatusOK, cats)
}

// Create inserts a new category (admin only).
func (h *CategoryHandler) Create(c echo.Context) error {
	var req createCategoryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cat, err := h.Categories.Create(ctx, req.Name, req.Icon)
	if err != nil {
		return storeErr(c, err)
	}
	return c.JSON(http.StatusCreated, cat)
}
