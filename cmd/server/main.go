package main // Entry point for the storefront API server

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/telegram-shop-backend/internal/config"
	"github.com/iliyamo/telegram-shop-backend/internal/database"
	"github.com/iliyamo/telegram-shop-backend/internal/handler"
	"github.com/iliyamo/telegram-shop-backend/internal/middleware"
	"github.com/iliyamo/telegram-shop-backend/internal/notify"
	"github.com/iliyamo/telegram-shop-backend/internal/queue"
	"github.com/iliyamo/telegram-shop-backend/internal/repository"
	"github.com/iliyamo/telegram-shop-backend/internal/router"
	queue_publisher "github.com/iliyamo/telegram-shop-backend/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments use the environment
	cfg := config.Load()

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

	// Operator allowlist and bot categories live in the settings file.
	// The API only needs the allowlist (for ADMIN tokens); a missing
	// file just means nobody gets the ADMIN role.
	settings, err := config.LoadBotSettings(cfg.SettingsPath)
	if err != nil {
		log.Printf("settings: %v; admin role disabled", err)
	}

	users := repository.NewUserRepo(db)
	categories := repository.NewCategoryRepo(db)
	products := repository.NewProductRepo(db)
	favorites := repository.NewFavoriteRepo(db)
	cart := repository.NewCartRepo(db)
	orders := repository.NewOrderRepo(db)

	orderHandler := &handler.OrderHandler{
		Orders: orders,
		Users:  users,
		Cart:   cart,
		Notify: notify.NewTelegramNotifier(cfg.BotToken, cfg.OrderChatID),
	}
	if cfg.AMQPURL != "" {
		orderHandler.Publish = queue_publisher.NewOrderPlacedPublisher(cfg.AMQPURL)
		go queue.StartOrderConsumer(cfg.AMQPURL)
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, rate limiting disabled")
	}

	e := echo.New()
	e.HideBanner = true
	router.Register(e, router.Handlers{
		Auth: &handler.AuthHandler{
			Users:      users,
			Secret:     cfg.JWTSecret,
			TTLMin:     cfg.AccessTTLMin,
			IsOperator: settings.IsAuthorized,
		},
		Category:  handler.NewCategoryHandler(categories),
		Product:   handler.NewProductHandler(products),
		Favorite:  handler.NewFavoriteHandler(favorites),
		Cart:      handler.NewCartHandler(cart),
		Order:     orderHandler,
		JWTSecret: cfg.JWTSecret,
		RateLimit: middleware.NewRateLimiter(config.LoadRateLimitConfig(), rdb),
	})

	// Serve the built mini-app when a static dir is configured; the
	// SPA fallback lets client-side routes deep-link.
	if cfg.StaticDir != "" {
		e.Static("/", cfg.StaticDir)
		e.File("/*", cfg.StaticDir+"/index.html")
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
