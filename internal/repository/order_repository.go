package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/telegram-shop-backend/internal/model"
)

type OrderRepo struct{ DB *sql.DB }

func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{DB: db} }

// Create persists an order record for auditability. Item snapshots
// are stored as a JSON array exactly as submitted by the client.
func (r *OrderRepo) Create(ctx context.Context, userID string, items []model.OrderItem, total int) (model.Order, error) {
	if userID == "" {
		return model.Order{}, validationf("user_id is required")
	}
	if total < 0 {
		return model.Order{}, validationf("total must be a non-negative integer")
	}
	if items == nil {
		items = []model.OrderItem{}
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return model.Order{}, fmt.Errorf("encode order items: %w", err)
	}

	o := model.Order{
		ID:        uuid.NewString(),
		UserID:    userID,
		Items:     items,
		Total:     total,
		CreatedAt: time.Now().UTC(),
	}
	_, err = r.DB.ExecContext(ctx,
		"INSERT INTO orders (id, user_id, items, total, created_at) VALUES (?,?,?,?,?)",
		o.ID, o.UserID, itemsJSON, o.Total, o.CreatedAt)
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

// ListByUser returns a user's orders, newest first.
func (r *OrderRepo) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, user_id, items, total, created_at FROM orders WHERE user_id = ? ORDER BY created_at DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Order{}
	for rows.Next() {
		var o model.Order
		var items []byte
		if err := rows.Scan(&o.ID, &o.UserID, &items, &o.Total, &o.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(items, &o.Items); err != nil {
			return nil, fmt.Errorf("decode order items: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
