package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/iliyamo/telegram-shop-backend/internal/model"
)

type ProductRepo struct{ DB *sql.DB }

func NewProductRepo(db *sql.DB) *ProductRepo { return &ProductRepo{DB: db} }

const productCols = "id, name, description, price, images, category_id"

func scanProduct(row interface{ Scan(...any) error }) (model.Product, error) {
	var p model.Product
	var images []byte
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &images, &p.CategoryID); err != nil {
		return model.Product{}, err
	}
	if err := json.Unmarshal(images, &p.Images); err != nil {
		return model.Product{}, fmt.Errorf("decode product images: %w", err)
	}
	return p, nil
}

func (r *ProductRepo) collect(rows *sql.Rows) ([]model.Product, error) {
	defer rows.Close()
	out := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// List returns all products, or only those in the given category
// when categoryID is non-empty.
func (r *ProductRepo) List(ctx context.Context, categoryID string) ([]model.Product, error) {
	if categoryID != "" {
		rows, err := r.DB.QueryContext(ctx,
			"SELECT "+productCols+" FROM products WHERE category_id = ?", categoryID)
		if err != nil {
			return nil, err
		}
		return r.collect(rows)
	}
	rows, err := r.DB.QueryContext(ctx, "SELECT "+productCols+" FROM products")
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

// GetByID fetches one product or ErrNotFound.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (model.Product, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+productCols+" FROM products WHERE id = ? LIMIT 1", id)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return model.Product{}, ErrNotFound
	}
	return p, err
}

// SearchByName returns products whose name contains the fragment,
// case-insensitively.
func (r *ProductRepo) SearchByName(ctx context.Context, fragment string) ([]model.Product, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+productCols+" FROM products WHERE LOWER(name) LIKE CONCAT('%', LOWER(?), '%')",
		fragment)
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

// Create validates required fields before touching the store, then
// inserts the product and returns it with its generated id. Name,
// a non-negative price and at least one image are required;
// description and category are optional.
func (r *ProductRepo) Create(ctx context.Context, name string, price int, images []string, description, categoryID *string) (model.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Product{}, validationf("name is required")
	}
	if price < 0 {
		return model.Product{}, validationf("price must be a non-negative integer")
	}
	if len(images) == 0 {
		return model.Product{}, validationf("images must contain at least one URL")
	}
	imagesJSON, err := json.Marshal(images)
	if err != nil {
		return model.Product{}, fmt.Errorf("encode product images: %w", err)
	}

	p := model.Product{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Price:       price,
		Images:      images,
		CategoryID:  categoryID,
	}
	_, err = r.DB.ExecContext(ctx,
		"INSERT INTO products (id, name, description, price, images, category_id) VALUES (?,?,?,?,?,?)",
		p.ID, p.Name, p.Description, p.Price, imagesJSON, p.CategoryID)
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// Delete removes a product by id. Deleting a missing product
// returns ErrNotFound; cart and favorite lines referencing it are
// removed by the store's cascade.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM products WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
