package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/telegram-shop-backend/internal/model"
)

type FavoriteRepo struct{ DB *sql.DB }

func NewFavoriteRepo(db *sql.DB) *FavoriteRepo { return &FavoriteRepo{DB: db} }

// Add marks a product as a favorite of the user. The pair is unique;
// inserting an existing pair is silently ignored, not an error.
func (r *FavoriteRepo) Add(ctx context.Context, userID, productID string) error {
	if userID == "" || productID == "" {
		return validationf("user_id and product_id are required")
	}
	_, err := r.DB.ExecContext(ctx,
		"INSERT IGNORE INTO favorites (user_id, product_id) VALUES (?,?)",
		userID, productID)
	return err
}

// Remove deletes the pair. Deleting an absent pair is still a success.
func (r *FavoriteRepo) Remove(ctx context.Context, userID, productID string) error {
	_, err := r.DB.ExecContext(ctx,
		"DELETE FROM favorites WHERE user_id = ? AND product_id = ?",
		userID, productID)
	return err
}

// ListProducts returns the user's favorite products via a join; lines
// whose product has been deleted drop out of the result.
func (r *FavoriteRepo) ListProducts(ctx context.Context, userID string) ([]model.Product, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT p.id, p.name, p.description, p.price, p.images, p.category_id
		FROM products p
		JOIN favorites f ON p.id = f.product_id
		WHERE f.user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
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
