package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection. Startup retries
// a few times with a fixed delay so the service survives the database
// coming up slightly later (compose environments).
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	const maxRetries = 3
	retryDelay := 2 * time.Second
	for attempt := 1; ; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = db.PingContext(ctx)
		cancel()
		if err == nil {
			return db, nil
		}
		if attempt == maxRetries {
			return nil, fmt.Errorf("database unreachable after %d attempts: %w", maxRetries, err)
		}
		log.Printf("database: ping failed (attempt %d/%d): %v; retrying in %s", attempt, maxRetries, err, retryDelay)
		time.Sleep(retryDelay)
	}
}

// EnsureSchema creates the application tables when they do not exist
// yet. Statements are idempotent so running it on every start is safe.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS categories (
			id   CHAR(36) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			icon VARCHAR(64)  NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id          CHAR(36) PRIMARY KEY,
			name        VARCHAR(255) NOT NULL,
			description TEXT NULL,
			price       INT  NOT NULL,
			images      JSON NOT NULL,
			category_id CHAR(36) NULL,
			CONSTRAINT fk_products_category FOREIGN KEY (category_id)
				REFERENCES categories (id) ON DELETE SET NULL
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id          CHAR(36) PRIMARY KEY,
			telegram_id BIGINT UNIQUE,
			username    VARCHAR(255) NOT NULL DEFAULT '',
			first_name  VARCHAR(255) NOT NULL DEFAULT '',
			last_name   VARCHAR(255) NOT NULL DEFAULT '',
			password    VARCHAR(255) NULL
		)`,
		`CREATE TABLE IF NOT EXISTS favorites (
			user_id    CHAR(36) NOT NULL,
			product_id CHAR(36) NOT NULL,
			PRIMARY KEY (user_id, product_id),
			CONSTRAINT fk_favorites_user FOREIGN KEY (user_id)
				REFERENCES users (id) ON DELETE CASCADE,
			CONSTRAINT fk_favorites_product FOREIGN KEY (product_id)
				REFERENCES products (id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS cart (
			user_id    CHAR(36) NOT NULL,
			product_id CHAR(36) NOT NULL,
			quantity   INT NOT NULL DEFAULT 1,
			PRIMARY KEY (user_id, product_id),
			CONSTRAINT fk_cart_user FOREIGN KEY (user_id)
				REFERENCES users (id) ON DELETE CASCADE,
			CONSTRAINT fk_cart_product FOREIGN KEY (product_id)
				REFERENCES products (id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id         CHAR(36) PRIMARY KEY,
			user_id    CHAR(36) NOT NULL,
			items      JSON NOT NULL,
			total      INT  NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
