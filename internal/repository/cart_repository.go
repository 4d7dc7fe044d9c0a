package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/iliyamo/telegram-shop-backend/internal/model"
)

type CartRepo struct{ DB *sql.DB }

func NewCartRepo(db *sql.DB) *CartRepo { return &CartRepo{DB: db} }

// Add puts qty units of a product into the user's cart. When the
// (user, product) pair already exists the quantities merge: the store's
// atomic upsert increments rather than overwrites, so concurrent adds
// need no application-level locking.
func (r *CartRepo) Add(ctx context.Context, userID, productID string, qty int) (model.CartLine, error) {
	if userID == "" || productID == "" {
		return model.CartLine{}, validationf("user_id and product_id are required")
	}
	if qty < 1 {
		return model.CartLine{}, validationf("quantity must be a positive integer")
	}
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO cart (user_id, product_id, quantity) VALUES (?,?,?)
		ON DUPLICATE KEY UPDATE quantity = quantity + VALUES(quantity)`,
		userID, productID, qty)
	if err != nil {
		return model.CartLine{}, err
	}
	return r.getLine(ctx, userID, productID)
}

// SetQuantity replaces the line quantity absolutely. Setting a line
// that does not exist fails with ErrNotFound.
func (r *CartRepo) SetQuantity(ctx context.Context, userID, productID string, qty int) (model.CartLine, error) {
	if qty < 1 {
		return model.CartLine{}, validationf("quantity must be a positive integer")
	}
	res, err := r.DB.ExecContext(ctx,
		"UPDATE cart SET quantity = ? WHERE user_id = ? AND product_id = ?",
		qty, userID, productID)
	if err != nil {
		return model.CartLine{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.CartLine{}, err
	}
	if n == 0 {
		// MySQL also reports zero affected rows when the value is
		// unchanged, so distinguish via a lookup.
		return r.getLine(ctx, userID, productID)
	}
	return model.CartLine{UserID: userID, ProductID: productID, Quantity: qty}, nil
}

func (r *CartRepo) getLine(ctx context.Context, userID, productID string) (model.CartLine, error) {
	var line model.CartLine
	err := r.DB.QueryRowContext(ctx,
		"SELECT user_id, product_id, quantity FROM cart WHERE user_id = ? AND product_id = ? LIMIT 1",
		userID, productID).
		Scan(&line.UserID, &line.ProductID, &line.Quantity)
	if err == sql.ErrNoRows {
		return model.CartLine{}, ErrNotFound
	}
	return line, err
}

// Remove deletes one line. Absent lines delete to zero rows, which is
// still a success.
func (r *CartRepo) Remove(ctx context.Context, userID, productID string) error {
	_, err := r.DB.ExecContext(ctx,
		"DELETE FROM cart WHERE user_id = ? AND product_id = ?", userID, productID)
	return err
}

// Clear empties the user's cart unconditionally.
func (r *CartRepo) Clear(ctx context.Context, userID string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM cart WHERE user_id = ?", userID)
	return err
}

// Items returns the cart joined against the product table; lines whose
// product has been deleted drop out of the result.
func (r *CartRepo) Items(ctx context.Context, userID string) ([]model.CartItem, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT p.id, p.name, p.description, p.price, p.images, p.category_id, c.quantity
		FROM products p
		JOIN cart c ON p.id = c.product_id
		WHERE c.user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.CartItem{}
	for rows.Next() {
		var it model.CartItem
		var images []byte
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.Price, &images, &it.CategoryID, &it.Quantity); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(images, &it.Images); err != nil {
			return nil, fmt.Errorf("decode product images: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
