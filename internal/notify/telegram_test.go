package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/telegram-shop-backend/internal/model"
)

func TestFormatOrder(t *testing.T) {
	user := model.User{TelegramID: 42, FirstName: "Alice", LastName: "Smith"}
	items := []model.OrderItem{
		{ProductID: "p1", Name: "Rose", Quantity: 2, Price: 100},
		{ProductID: "p2", Name: "Card", Quantity: 1, Price: 50},
	}
	at := time.Date(2025, 3, 14, 15, 4, 0, 0, time.UTC)

	got := formatOrder(user, items, 250, at)

	assert.Contains(t, got, "🛍 *New order!*")
	assert.Contains(t, got, "👤 *Customer:* Alice Smith")
	assert.Contains(t, got, "🆔 *Telegram ID:* 42")
	assert.Contains(t, got, "📅 *Date:* 14.03.2025 15:04")
	assert.Contains(t, got, "• Rose — 2 x 100 = 200")
	assert.Contains(t, got, "• Card — 1 x 50 = 50")
	assert.Contains(t, got, "💰 *Total:* 250")
}

func TestFormatOrderUnknownCustomer(t *testing.T) {
	got := formatOrder(model.User{TelegramID: 42}, nil, 0, time.Now())
	assert.Contains(t, got, "👤 *Customer:* Unknown")
}

func TestNotifyOrderSendsMessage(t *testing.T) {
	var received sendMessageReq
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bottok-123/sendMessage", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewTelegramNotifier("tok-123", 555)
	n.BaseURL = srv.URL

	user := model.User{TelegramID: 42, FirstName: "Alice"}
	items := []model.OrderItem{{Name: "Rose", Quantity: 1, Price: 100}}
	require.NoError(t, n.NotifyOrder(context.Background(), user, items, 100))

	assert.Equal(t, int64(555), received.ChatID)
	assert.Equal(t, "Markdown", received.ParseMode)
	assert.Contains(t, received.Text, "Rose")
}

func TestNotifyOrderErrors(t *testing.T) {
	// Unconfigured credentials.
	n := NewTelegramNotifier("", 0)
	assert.Error(t, n.NotifyOrder(context.Background(), model.User{}, nil, 0))

	// Non-200 from the API.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	n = NewTelegramNotifier("tok", 1)
	n.BaseURL = srv.URL
	assert.Error(t, n.NotifyOrder(context.Background(), model.User{}, nil, 0))
}
