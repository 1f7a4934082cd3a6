package storage

// The schema is applied statement by statement on open, so it is idempotent
// and works on a fresh database in both dialects.

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            VARCHAR(36)  PRIMARY KEY,
		name          VARCHAR(255) NOT NULL,
		email         VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		is_admin      BOOLEAN      NOT NULL DEFAULT FALSE,
		created_at    VARCHAR(26)  NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id          VARCHAR(36)   PRIMARY KEY,
		name        VARCHAR(255)  NOT NULL,
		description TEXT,
		price       DECIMAL(10,2) NOT NULL,
		image_url   VARCHAR(512),
		category    VARCHAR(255),
		stock       INT           NOT NULL DEFAULT 0,
		created_at  VARCHAR(26)   NOT NULL,
		updated_at  VARCHAR(26)   NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id          VARCHAR(36)   PRIMARY KEY,
		user_id     VARCHAR(36)   NOT NULL,
		total_price DECIMAL(10,2) NOT NULL,
		status      VARCHAR(16)   NOT NULL,
		created_at  VARCHAR(26)   NOT NULL,
		updated_at  VARCHAR(26)   NOT NULL,
		INDEX idx_orders_user (user_id, created_at)
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id         VARCHAR(36)   PRIMARY KEY,
		order_id   VARCHAR(36)   NOT NULL,
		product_id VARCHAR(36)   NOT NULL,
		quantity   INT           NOT NULL,
		price      DECIMAL(10,2) NOT NULL,
		INDEX idx_order_items_order (order_id)
	)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		is_admin      INTEGER NOT NULL DEFAULT 0,
		created_at    TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT,
		price       TEXT NOT NULL,
		image_url   TEXT,
		category    TEXT,
		stock       INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id          TEXT PRIMARY KEY,
		user_id     TEXT NOT NULL,
		total_price TEXT NOT NULL,
		status      TEXT NOT NULL,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id         TEXT PRIMARY KEY,
		order_id   TEXT NOT NULL,
		product_id TEXT NOT NULL,
		quantity   INTEGER NOT NULL,
		price      TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)`,
}
