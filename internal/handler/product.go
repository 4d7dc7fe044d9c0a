package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/telegram-shop-backend/internal/model"
)

// ProductStore is the slice of the product repository the handler needs.
type ProductStore interface {
	List(ctx context.Context, categoryID string) ([]model.Product, error)
	GetByID(ctx context.Context, id string) (model.Product, error)
	SearchByName(ctx context.Context, fragment string) ([]model.Product, error)
	Create(ctx context.Context, name string, price int, images []string, description, categoryID *string) (model.Product, error)
	Delete(ctx context.Context, id string) error
}

// ProductHandler serves the /api/products endpoints.
type ProductHandler struct {
	Products ProductStore
}

func NewProductHandler(s ProductStore) *ProductHandler { return &ProductHandler{Products: s} }

type createProductReq struct {
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Price       *int     `json:"price"`
	Images      []string `json:"images"`
	CategoryID  *string  `json:"category_id"`
}

// List returns all products, or a filtered scan when ?category_id is set.
func (h *ProductHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	products, err := h.Products.List(ctx, c.QueryParam("category_id"))
	if err != nil {
		return storeErr(c, err)
	}
	return c.JSON(http.StatusOK, products)
}

// Get fetches one product by id, 404 when absent.
func (h *ProductHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Products.GetByID(ctx, c.Param("id"))
	if err != nil {
		return storeErr(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// Search matches products by a case-insensitive name fragment (?q=).
func (h *ProductHandler) Search(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "q is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	products, err := h.Products.SearchByName(ctx, q)
	if err != nil {
		return storeErr(c, err)
	}
	return c.JSON(http.StatusOK, products)
}

// Create inserts a new product (admin only). Price and images are
// required; missing required fields fail before any store access.
func (h *ProductHandler) Create(c echo.Context) error {
	var req createProductReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Price == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price is required"})
	}
	if len(req.Images) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "images must contain at least one URL"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Products.Create(ctx, req.Name, *req.Price, req.Images, req.Description, req.CategoryID)
	if err != nil {
		return storeErr(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

// Delete removes a product by id (admin only), 404 when absent.
func (h *ProductHandler) Delete(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Products.Delete(ctx, c.Param("id")); err != nil {
		return storeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "product deleted"})
}
