// Package repo implements the data persistence layer for storefront
// entities, backed by GORM. This file contains database bootstrapping
// helpers for SQLite (pure Go driver) and schema routines.
//
// The database file is shared with the external population bot, which owns
// the users/settings/products tables. This application only guarantees the
// order tables, so besides AutoMigrate (used by tests and fresh installs)
// there is an idempotent EnsureOrderSchema that can run against a live
// bot-managed database without touching the bot's tables.
package repo

import (
	"context"
	"os"
	"path/filepath"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/archivegarage/go-storefront-backend/internal/domain"
)

// Options tunes OpenSQLite behavior.
type Options struct {
	// Tracing attaches the GORM OpenTelemetry plugin so queries show up as
	// spans under the HTTP request trace.
	Tracing bool
}

// OpenSQLite opens (or creates) a SQLite database and applies PRAGMAs.
func OpenSQLite(path string, opts Options) (*gorm.DB, error) {
	// Fail early if parent directory does not exist (instead of sqlite "out of memory (14)" on Windows).
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// PRAGMAs
	db.Exec("PRAGMA journal_mode=WAL;")
	db.Exec("PRAGMA synchronous=NORMAL;")
	db.Exec("PRAGMA foreign_keys=ON;")
	db.Exec("PRAGMA busy_timeout=5000;")

	// Pool
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	if opts.Tracing {
		if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
			return nil, err
		}
	}

	return db, nil
}

// AutoMigrate creates all tables. Intended for tests and fresh installs; a
// production database already has the bot-owned tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Tenant{},
		&domain.Setting{},
		&domain.Product{},
		&domain.Order{},
		&domain.OrderItem{},
	)
}

// EnsureOrderSchema creates the orders/order_items tables and their indexes
// if missing. It is safe to call on every order submission: a database
// provisioned by an older bot version gains the tables on first use.
func EnsureOrderSchema(ctx context.Context, db *gorm.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS orders (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			buyer_telegram TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'NEW',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			order_id INTEGER NOT NULL,
			product_id INTEGER NOT NULL,
			qty INTEGER NOT NULL DEFAULT 1,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user_id_created_at ON orders(user_id, created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id);`,
	}
	for _, s := range stmts {
		if err := db.WithContext(ctx).Exec(s).Error; err != nil {
			return Classify(err)
		}
	}
	return nil
}
