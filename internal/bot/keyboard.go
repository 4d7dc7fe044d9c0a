package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/iliyamo/telegram-shop-backend/internal/config"
)

// Menu and flow button labels. Operator input is matched against
// these exact strings.
const (
	btnAddProduct     = "➕ Add product"
	btnDeleteProduct  = "🗑 Delete product"
	btnListProducts   = "📋 Products"
	btnListCategories = "📁 Categories"
	btnCancel         = "❌ Cancel"
	btnDone           = "✅ Done"
	btnSkip           = "⏭ Skip (no photos)"
)

// placeholderImage is substituted when a product is created without
// any image so the images list is never empty.
const placeholderImage = "https://via.placeholder.com/400x400?text=No+Image"

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnAddProduct),
			tgbotapi.NewKeyboardButton(btnDeleteProduct),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnListProducts),
			tgbotapi.NewKeyboardButton(btnListCategories),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

func cancelKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnCancel)),
	)
	kb.ResizeKeyboard = true
	return kb
}

// categoryKeyboard offers one button per configured category plus cancel.
func categoryKeyboard(categories []config.BotCategory) tgbotapi.ReplyKeyboardMarkup {
	rows := make([][]tgbotapi.KeyboardButton, 0, len(categories)+1)
	for _, c := range categories {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(c.Label())))
	}
	rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnCancel)))
	kb := tgbotapi.NewReplyKeyboard(rows...)
	kb.ResizeKeyboard = true
	return kb
}

func imagesKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnDone)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnSkip)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnCancel)),
	)
	kb.ResizeKeyboard = true
	return kb
}
