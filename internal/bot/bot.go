// Package bot implements the admin Telegram bot: a per-operator
// conversation engine for managing the product catalog, including
// asynchronous image upload to the media host.
package bot

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/iliyamo/telegram-shop-backend/internal/config"
	"github.com/iliyamo/telegram-shop-backend/internal/model"
)

const (
	maxPhotos        = 9  // photo attachments per product
	maxDeleteButtons = 20 // products offered for deletion at once
	maxListed        = 30 // products printed by the list command
)

// API is the slice of *tgbotapi.BotAPI the engine uses, broken out so
// tests can fake the transport.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFileDirectURL(fileID string) (string, error)
}

// Catalog is the slice of the product repository the bot needs.
type Catalog interface {
	List(ctx context.Context, categoryID string) ([]model.Product, error)
	GetByID(ctx context.Context, id string) (model.Product, error)
	Create(ctx context.Context, name string, price int, images []string, description, categoryID *string) (model.Product, error)
	Delete(ctx context.Context, id string) error
}

// Uploader pushes a binary image to the media host and returns a
// durable URL.
type Uploader interface {
	Upload(ctx context.Context, r io.Reader) (string, error)
}

// Bot drives the admin conversation. One inbound update is processed
// to completion before the next; only photo uploads run concurrently,
// gated by the session store's flow-id check on resume.
type Bot struct {
	api      API
	catalog  Catalog
	uploader Uploader
	settings config.BotSettings
	sessions *SessionStore
	http     *http.Client

	uploads sync.WaitGroup // in-flight photo uploads, awaited in tests
}

func New(api API, catalog Catalog, uploader Uploader, settings config.BotSettings) *Bot {
	return &Bot{
		api:      api,
		catalog:  catalog,
		uploader: uploader,
		settings: settings,
		sessions: NewSessionStore(),
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

// Run consumes the update channel until it closes.
func (b *Bot) Run(updates tgbotapi.UpdatesChannel) {
	log.Printf("bot: ready, %d authorized operators", len(b.settings.AuthorizedUsers))
	for update := range updates {
		b.HandleUpdate(update)
	}
	b.uploads.Wait()
}

// HandleUpdate dispatches one inbound update.
func (b *Bot) HandleUpdate(update tgbotapi.Update) {
	switch {
	case update.Message != nil:
		b.handleMessage(update.Message)
	case update.CallbackQuery != nil:
		b.handleCallback(update.CallbackQuery)
	}
}

func (b *Bot) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("bot: send failed: %v", err)
	}
}

func (b *Bot) sendWithKeyboard(chatID int64, text string, kb interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("bot: send failed: %v", err)
	}
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	operator := msg.From.ID
	chatID := msg.Chat.ID

	if !b.settings.IsAuthorized(operator) {
		if msg.IsCommand() && msg.Command() == "start" {
			b.send(chatID, fmt.Sprintf(
				"⛔ You don't have access to this bot.\nYour ID: %d\n\nAsk an administrator to add your ID to the operator list.",
				operator))
			return
		}
		b.send(chatID, "⛔ Access denied")
		return
	}

	if len(msg.Photo) > 0 {
		b.handlePhoto(msg)
		return
	}

	if msg.IsCommand() {
		if msg.Command() == "start" {
			name := msg.From.UserName
			if name == "" {
				name = msg.From.FirstName
			}
			b.sendWithKeyboard(chatID,
				fmt.Sprintf("👋 Hi, %s!\n\n🛍 Welcome to the catalog management bot.\n\nPick an action from the menu:", name),
				mainMenuKeyboard())
		}
		return
	}

	// Cancel works from any step and discards the draft. With no
	// active flow it has no effect beyond restoring the menu.
	if msg.Text == btnCancel {
		if _, cleared := b.sessions.Clear(operator); cleared {
			b.sendWithKeyboard(chatID, "❌ Operation cancelled.", mainMenuKeyboard())
		} else {
			b.sendWithKeyboard(chatID, "Nothing to cancel.", mainMenuKeyboard())
		}
		return
	}

	if _, active := b.sessions.Get(operator); active {
		b.handleFlowInput(msg)
		return
	}

	switch msg.Text {
	case btnAddProduct:
		b.sessions.Begin(operator)
		b.sendWithKeyboard(chatID, "📝 Enter the product name:", cancelKeyboard())
	case btnDeleteProduct:
		b.sendDeleteMenu(chatID)
	case btnListProducts:
		b.sendProductList(chatID)
	case btnListCategories:
		b.sendCategoryList(chatID)
	default:
		b.send(chatID, "Use the menu buttons")
	}
}

func (b *Bot) sendDeleteMenu(chatID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	products, err := b.catalog.List(ctx, "")
	if err != nil {
		b.send(chatID, "❌ Failed to load products: "+err.Error())
		return
	}
	if len(products) == 0 {
		b.sendWithKeyboard(chatID, "📭 No products in the catalog yet.", mainMenuKeyboard())
		return
	}

	shown := products
	if len(shown) > maxDeleteButtons {
		shown = shown[:maxDeleteButtons]
	}
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(shown))
	for _, p := range shown {
		label := fmt.Sprintf("🗑 %s — %d", p.Name, p.Price)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, "delete:"+p.ID)))
	}

	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("🗑 Pick a product to delete:\n\nTotal products: %d", len(products)))
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("bot: send failed: %v", err)
	}
}

func (b *Bot) sendProductList(chatID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	products, err := b.catalog.List(ctx, "")
	if err != nil {
		b.send(chatID, "❌ Failed to load products: "+err.Error())
		return
	}
	if len(products) == 0 {
		b.send(chatID, "📭 No products in the catalog yet.")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📋 Products (%d):\n\n", len(products))
	for i, p := range products {
		if i == maxListed {
			fmt.Fprintf(&sb, "\n... and %d more", len(products)-maxListed)
			break
		}
		fmt.Fprintf(&sb, "%d. %s\n   💰 %d\n   🆔 %s\n\n", i+1, p.Name, p.Price, p.ID)
	}
	b.send(chatID, sb.String())
}

func (b *Bot) sendCategoryList(chatID int64) {
	if len(b.settings.Categories) == 0 {
		b.send(chatID, "📭 No categories configured.")
		return
	}
	var sb strings.Builder
	sb.WriteString("📁 Product categories:\n\n")
	for _, c := range b.settings.Categories {
		fmt.Fprintf(&sb, "%s\n   🆔 %s\n\n", c.Label(), c.ID)
	}
	b.send(chatID, sb.String())
}

// handleCallback deletes a product selected from the inline keyboard:
// lookup first so the confirmation can echo the deleted details, then
// delete immediately. No confirmation step, no undo.
func (b *Bot) handleCallback(cb *tgbotapi.CallbackQuery) {
	answer := ""
	if !b.settings.IsAuthorized(cb.From.ID) {
		answer = "⛔ Access denied"
	}
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, answer)); err != nil {
		log.Printf("bot: answer callback failed: %v", err)
	}
	if answer != "" {
		return
	}
	// Callbacks from inaccessible messages carry no Message; there is
	// nowhere to report the outcome, so drop them.
	if cb.Message == nil {
		return
	}

	action, arg, _ := strings.Cut(cb.Data, ":")
	if action != "delete" || arg == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	product, err := b.catalog.GetByID(ctx, arg)
	if err != nil {
		b.send(cb.Message.Chat.ID, "❌ Product not found")
		return
	}
	if err := b.catalog.Delete(ctx, arg); err != nil {
		b.send(cb.Message.Chat.ID, "❌ Delete failed: "+err.Error())
		return
	}

	edit := tgbotapi.NewEditMessageText(cb.Message.Chat.ID, cb.Message.MessageID,
		fmt.Sprintf("✅ Product deleted:\n\n📦 %s\n💰 %d\n🆔 %s", product.Name, product.Price, product.ID))
	if _, err := b.api.Send(edit); err != nil {
		log.Printf("bot: edit failed: %v", err)
	}
}
