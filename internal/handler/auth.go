package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/telegram-shop-backend/internal/model"
	"github.com/iliyamo/telegram-shop-backend/internal/repository"
	"github.com/iliyamo/telegram-shop-backend/internal/utils"
)

// UserStore is the slice of the user repository the handlers need.
type UserStore interface {
	GetByID(ctx context.Context, id string) (model.User, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (model.User, error)
	Create(ctx context.Context, telegramID int64, username, firstName, lastName string) (model.User, error)
}

// AuthHandler implements find-or-create authentication for the
// Telegram mini-app. Operators from the allowlist get the ADMIN role
// in their access token; everyone else is a CUSTOMER.
type AuthHandler struct {
	Users      UserStore
	Secret     string
	TTLMin     int
	IsOperator func(telegramID int64) bool
}

type telegramAuthReq struct {
	TelegramID int64  `json:"telegram_id"`
	Username   string `json:"username"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

type telegramAuthResp struct {
	User   model.User `json:"user"`
	IsNew  bool       `json:"is_new"`
	Access tokenPart  `json:"access"`
}

// Telegram finds or lazily creates a user by the external Telegram id
// and returns the user together with an access token.
func (h *AuthHandler) Telegram(c echo.Context) error {
	var req telegramAuthReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.TelegramID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "telegram_id is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	isNew := false
	u, err := h.Users.GetByTelegramID(ctx, req.TelegramID)
	if errors.Is(err, repository.ErrNotFound) {
		u, err = h.Users.Create(ctx, req.TelegramID, req.Username, req.FirstName, req.LastName)
		isNew = true
	}
	if err != nil {
		return storeErr(c, err)
	}

	role := "CUSTOMER"
	if h.IsOperator != nil && h.IsOperator(u.TelegramID) {
		role = "ADMIN"
	}
	access, err := utils.NewAccessToken(h.Secret, u.ID, u.TelegramID, role, h.TTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}

	status := http.StatusOK
	if isNew {
		status = http.StatusCreated
	}
	return c.JSON(status, telegramAuthResp{
		User:   u,
		IsNew:  isNew,
		Access: tokenPart{Token: access.Token, Expires: access.Exp},
	})
}
