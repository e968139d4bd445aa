package postgres

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"
)

// InitDB opens the Postgres connection and applies the schema.
func InitDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := migrateDB(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	slog.Info("Database connected and migrated")
	return db, nil
}

func migrateDB(db *sql.DB) error {
	// carts.user_id is UNIQUE so find-or-create can rely on an atomic
	// insert-if-absent instead of check-then-act.
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS artists (
			artist_id BIGSERIAL PRIMARY KEY,
			artist_name TEXT NOT NULL UNIQUE
		);

		CREATE TABLE IF NOT EXISTS labels (
			label_id BIGSERIAL PRIMARY KEY,
			label_name TEXT NOT NULL UNIQUE
		);

		CREATE TABLE IF NOT EXISTS products (
			product_id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			artist_id BIGINT NOT NULL REFERENCES artists(artist_id),
			label_id BIGINT NOT NULL REFERENCES labels(label_id),
			format_name TEXT NOT NULL,
			format_type TEXT NOT NULL,
			image_url TEXT NOT NULL DEFAULT '',
			release_year INT NOT NULL DEFAULT 0,
			description TEXT NOT NULL DEFAULT '',
			price BIGINT NOT NULL CHECK (price > 0),
			stock_quantity INT NOT NULL DEFAULT 0 CHECK (stock_quantity >= 0),
			avg_rating DOUBLE PRECISION NOT NULL DEFAULT 0,
			rating_count INT NOT NULL DEFAULT 0,
			is_available BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS users (
			user_id BIGSERIAL PRIMARY KEY,
			rut TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL UNIQUE,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			age INT NOT NULL DEFAULT 0,
			role TEXT NOT NULL DEFAULT 'USER',
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			password_hash TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS orders (
			order_id BIGSERIAL PRIMARY KEY,
			customer_id BIGINT NOT NULL REFERENCES users(user_id),
			product_id TEXT NOT NULL REFERENCES products(product_id),
			artist_id BIGINT NOT NULL REFERENCES artists(artist_id),
			label_id BIGINT NOT NULL REFERENCES labels(label_id),
			responsible_user_id BIGINT REFERENCES users(user_id),
			quantity INT NOT NULL CHECK (quantity > 0),
			total_price BIGINT NOT NULL,
			status TEXT NOT NULL,
			order_date TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);

		CREATE TABLE IF NOT EXISTS carts (
			cart_id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL UNIQUE REFERENCES users(user_id)
		);

		CREATE TABLE IF NOT EXISTS cart_items (
			item_id BIGSERIAL PRIMARY KEY,
			cart_id BIGINT NOT NULL REFERENCES carts(cart_id) ON DELETE CASCADE,
			product_id TEXT NOT NULL,
			quantity INT NOT NULL
		);
	`)
	return err
}
