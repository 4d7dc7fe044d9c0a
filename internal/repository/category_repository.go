package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/iliyamo/telegram-shop-backend/internal/model"
)

type CategoryRepo struct{ DB *sql.DB }

func NewCategoryRepo(db *sql.DB) *CategoryRepo { return &CategoryRepo{DB: db} }

// List returns every category.
func (r *CategoryRepo) List(ctx context.Context) ([]model.Category, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id, name, icon FROM categories")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Category{}
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Icon); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Create inserts a category and returns it with its generated id.
func (r *CategoryRepo) Create(ctx context.Context, name, icon string) (model.Category, error) {
	name = strings.TrimSpace(name)
	icon = strings.TrimSpace(icon)
	if name == "" {
		return model.Category{}, validationf("name is required")
	}
	if icon == "" {
		return model.Category{}, validationf("icon is required")
	}
	c := model.Category{ID: uuid.NewString(), Name: name, Icon: icon}
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO categories (id, name, icon) VALUES (?,?,?)",
		c.ID, c.Name, c.Icon)
	if err != nil {
		return model.Category{}, err
	}
	return c, nil
}
