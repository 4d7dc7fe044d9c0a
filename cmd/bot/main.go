package main // Entry point for the admin Telegram bot

import (
	"context"
	"log"
	"os"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"

	"github.com/iliyamo/telegram-shop-backend/internal/bot"
	"github.com/iliyamo/telegram-shop-backend/internal/config"
	"github.com/iliyamo/telegram-shop-backend/internal/database"
	"github.com/iliyamo/telegram-shop-backend/internal/media"
	"github.com/iliyamo/telegram-shop-backend/internal/repository"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if cfg.BotToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN is required")
	}

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("schema: %v", err)
	}
	cancel()

	// Unlike the API, the bot is useless without its settings: no
	// operators means nobody can talk to it.
	settings, err := config.LoadBotSettings(cfg.SettingsPath)
	if err != nil {
		log.Fatalf("settings: %v", err)
	}

	uploader := media.NewCloudinaryUploader(
		os.Getenv("CLOUDINARY_CLOUD_NAME"),
		os.Getenv("CLOUDINARY_UPLOAD_PRESET"),
	)

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatalf("telegram: %v", err)
	}
	log.Printf("authorized as @%s", api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	u.AllowedUpdates = []string{"message", "callback_query"}

	b := bot.New(api, repository.NewProductRepo(db), uploader, settings)
	b.Run(api.GetUpdatesChan(u))
}
