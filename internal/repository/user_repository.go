package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/iliyamo/telegram-shop-backend/internal/model"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = "id, telegram_id, username, first_name, last_name"

// GetByID fetches a user by internal id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE id = ? LIMIT 1", id).
		Scan(&u.ID, &u.TelegramID, &u.Username, &u.FirstName, &u.LastName)
	if err == sql.ErrNoRows {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// GetByTelegramID fetches a user by the external Telegram id.
func (r *UserRepo) GetByTelegramID(ctx context.Context, telegramID int64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE telegram_id = ? LIMIT 1", telegramID).
		Scan(&u.ID, &u.TelegramID, &u.Username, &u.FirstName, &u.LastName)
	if err == sql.ErrNoRows {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// Create inserts a user keyed by Telegram id. A concurrent insert of
// the same Telegram id loses the unique-constraint race (MySQL error
// 1062); in that case the existing row is returned instead.
func (r *UserRepo) Create(ctx context.Context, telegramID int64, username, firstName, lastName string) (model.User, error) {
	u := model.User{
		ID:         uuid.NewString(),
		TelegramID: telegramID,
		Username:   username,
		FirstName:  firstName,
		LastName:   lastName,
	}
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (id, telegram_id, username, first_name, last_name) VALUES (?,?,?,?,?)",
		u.ID, u.TelegramID, u.Username, u.FirstName, u.LastName)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return r.GetByTelegramID(ctx, telegramID)
		}
		return model.User{}, err
	}
	return u, nil
}
