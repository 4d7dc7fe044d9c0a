// Package notify delivers order notifications to a fixed Telegram
// chat through the Bot API. Callers treat every failure here as
// non-fatal: notifications are best-effort by design.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/iliyamo/telegram-shop-backend/internal/model"
)

// TelegramNotifier sends formatted order messages via the Telegram
// Bot API sendMessage method.
type TelegramNotifier struct {
	BotToken string
	ChatID   int64
	// BaseURL overrides the Bot API endpoint in tests.
	BaseURL string
	Client  *http.Client
}

// NewTelegramNotifier builds a notifier for the given credentials.
// Either credential may be empty; NotifyOrder then reports a
// configuration error that the caller logs and swallows.
func NewTelegramNotifier(botToken string, chatID int64) *TelegramNotifier {
	return &TelegramNotifier{
		BotToken: botToken,
		ChatID:   chatID,
		BaseURL:  "https://api.telegram.org",
		Client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type sendMessageReq struct {
	ChatID    int64  `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// NotifyOrder formats and sends the order notification. A missing
// token or chat id, a transport error or a non-200 status are all
// returned as errors; none of them block order completion upstream.
func (n *TelegramNotifier) NotifyOrder(ctx context.Context, user model.User, items []model.OrderItem, total int) error {
	if n.BotToken == "" || n.ChatID == 0 {
		return fmt.Errorf("telegram credentials not configured")
	}

	payload, err := json.Marshal(sendMessageReq{
		ChatID:    n.ChatID,
		Text:      formatOrder(user, items, total, time.Now()),
		ParseMode: "Markdown",
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", n.BaseURL, n.BotToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram sendMessage: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// formatOrder renders the order as a Markdown message: customer
// identity, itemized lines with quantity, unit price and line total,
// and the grand total.
func formatOrder(user model.User, items []model.OrderItem, total int, at time.Time) string {
	name := user.DisplayName()
	if name == "" {
		name = "Unknown"
	}

	var b strings.Builder
	b.WriteString("🛍 *New order!*\n\n")
	fmt.Fprintf(&b, "👤 *Customer:* %s\n", name)
	fmt.Fprintf(&b, "🆔 *Telegram ID:* %d\n", user.TelegramID)
	fmt.Fprintf(&b, "📅 *Date:* %s\n\n", at.Format("02.01.2006 15:04"))
	b.WriteString("📦 *Items:*\n")
	for _, it := range items {
		fmt.Fprintf(&b, "• %s — %d x %d = %d\n", it.Name, it.Quantity, it.Price, it.Quantity*it.Price)
	}
	fmt.Fprintf(&b, "\n💰 *Total:* %d", total)
	return b.String()
}
