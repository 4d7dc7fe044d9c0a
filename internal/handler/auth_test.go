package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/telegram-shop-backend/internal/model"
	"github.com/iliyamo/telegram-shop-backend/internal/repository"
	"github.com/iliyamo/telegram-shop-backend/internal/utils"
)

// authUsers finds or creates users in memory, keyed by Telegram id.
type authUsers struct {
	byTelegram map[int64]model.User
	created    int
}

func (f *authUsers) GetByID(context.Context, string) (model.User, error) {
	return model.User{}, repository.ErrNotFound
}

func (f *authUsers) GetByTelegramID(_ context.Context, tid int64) (model.User, error) {
	u, ok := f.byTelegram[tid]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (f *authUsers) Create(_ context.Context, tid int64, username, first, last string) (model.User, error) {
	f.created++
	u := model.User{ID: "u-new", TelegramID: tid, Username: username, FirstName: first, LastName: last}
	f.byTelegram[tid] = u
	return u, nil
}

func newAuthHandler(users *authUsers, operators ...int64) *AuthHandler {
	return &AuthHandler{
		Users:  users,
		Secret: "test-secret",
		TTLMin: 60,
		IsOperator: func(tid int64) bool {
			for _, op := range operators {
				if op == tid {
					return true
				}
			}
			return false
		},
	}
}

func TestTelegramAuthCreatesUserOnFirstContact(t *testing.T) {
	users := &authUsers{byTelegram: map[int64]model.User{}}
	h := newAuthHandler(users)

	c, rec := newTestCtx(t, http.MethodPost, "/auth/telegram", `{"telegram_id":42,"username":"alice"}`)
	require.NoError(t, h.Telegram(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, users.created)

	var resp struct {
		User  model.User `json:"user"`
		IsNew bool       `json:"is_new"`
	}
	decodeBody(t, rec, &resp)
	assert.True(t, resp.IsNew)
	assert.Equal(t, int64(42), resp.User.TelegramID)

	// Second call finds the existing user.
	c, rec = newTestCtx(t, http.MethodPost, "/auth/telegram", `{"telegram_id":42,"username":"alice"}`)
	require.NoError(t, h.Telegram(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, users.created)
}

func TestTelegramAuthRequiresID(t *testing.T) {
	h := newAuthHandler(&authUsers{byTelegram: map[int64]model.User{}})

	c, rec := newTestCtx(t, http.MethodPost, "/auth/telegram", `{"username":"alice"}`)
	require.NoError(t, h.Telegram(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTelegramAuthRoles(t *testing.T) {
	users := &authUsers{byTelegram: map[int64]model.User{}}
	h := newAuthHandler(users, 42)

	for _, tc := range []struct {
		body string
		role string
	}{
		{`{"telegram_id":42}`, "ADMIN"},
		{`{"telegram_id":43}`, "CUSTOMER"},
	} {
		c, rec := newTestCtx(t, http.MethodPost, "/auth/telegram", tc.body)
		require.NoError(t, h.Telegram(c))

		var resp struct {
			Access struct {
				Token string `json:"token"`
			} `json:"access"`
		}
		decodeBody(t, rec, &resp)

		claims, err := utils.ParseAccess("test-secret", resp.Access.Token)
		require.NoError(t, err)
		assert.Equal(t, tc.role, claims.Role)
	}
}
