package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// sqliteSchema mirrors migrations/000001_init.up.sql in SQLite types
var sqliteSchema = []string{
	`CREATE TABLE users (
		id TEXT PRIMARY KEY, external_id TEXT NOT NULL UNIQUE, email TEXT, name TEXT,
		role TEXT NOT NULL DEFAULT 'CLIENT', created_at DATETIME NOT NULL, updated_at DATETIME NOT NULL)`,
	`CREATE TABLE businesses (
		id TEXT PRIMARY KEY, name TEXT NOT NULL, description TEXT, address TEXT, phone TEXT, email TEXT,
		logo_url TEXT, category TEXT, owner_id TEXT NOT NULL, plan TEXT NOT NULL DEFAULT 'free',
		is_active BOOLEAN NOT NULL DEFAULT 1, created_at DATETIME NOT NULL, updated_at DATETIME NOT NULL)`,
	`CREATE TABLE white_label_configs (
		id TEXT PRIMARY KEY, business_id TEXT NOT NULL UNIQUE, subdomain TEXT, custom_domain TEXT,
		company_name TEXT, primary_color TEXT, secondary_color TEXT, accent_color TEXT, logo_url TEXT,
		favicon_url TEXT, font_family TEXT, is_active BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL, updated_at DATETIME NOT NULL)`,
	`CREATE UNIQUE INDEX uq_white_label_subdomain ON white_label_configs(LOWER(subdomain))`,
	`CREATE UNIQUE INDEX uq_white_label_custom_domain ON white_label_configs(LOWER(custom_domain))`,
	`CREATE TABLE services (
		id TEXT PRIMARY KEY, business_id TEXT NOT NULL, name TEXT NOT NULL, description TEXT,
		duration INTEGER NOT NULL, price DECIMAL(10,2) NOT NULL, category TEXT,
		is_active BOOLEAN NOT NULL DEFAULT 1, created_at DATETIME NOT NULL, updated_at DATETIME NOT NULL)`,
	`CREATE TABLE service_addons (
		id TEXT PRIMARY KEY, service_id TEXT NOT NULL, business_id TEXT NOT NULL, name TEXT NOT NULL,
		description TEXT, price DECIMAL(10,2) NOT NULL, duration INTEGER NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT 1, created_at DATETIME NOT NULL, updated_at DATETIME NOT NULL)`,
	`CREATE TABLE staff (
		id TEXT PRIMARY KEY, business_id TEXT NOT NULL, user_id TEXT, name TEXT NOT NULL, email TEXT,
		role TEXT NOT NULL, bio TEXT, image_url TEXT, is_active BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL, updated_at DATETIME NOT NULL)`,
	`CREATE TABLE team_invitations (
		id TEXT PRIMARY KEY, business_id TEXT NOT NULL, email TEXT NOT NULL, role TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'PENDING', expires_at DATETIME NOT NULL, invited_by TEXT, completed_by TEXT,
		created_at DATETIME NOT NULL, updated_at DATETIME NOT NULL)`,
	`CREATE TABLE subscriptions (
		id TEXT PRIMARY KEY, business_id TEXT NOT NULL UNIQUE, plan TEXT NOT NULL, status TEXT NOT NULL,
		stripe_customer_id TEXT, stripe_subscription_id TEXT, current_period_end DATETIME,
		cancel_at_period_end BOOLEAN NOT NULL DEFAULT 0, created_at DATETIME NOT NULL, updated_at DATETIME NOT NULL)`,
	`CREATE TABLE payouts (
		id TEXT PRIMARY KEY, business_id TEXT NOT NULL, amount DECIMAL(12,2) NOT NULL, currency TEXT NOT NULL,
		status TEXT NOT NULL, period_start DATETIME NOT NULL, period_end DATETIME NOT NULL, paid_at DATETIME,
		created_at DATETIME NOT NULL, updated_at DATETIME NOT NULL)`,
	`CREATE TABLE support_tickets (
		id TEXT PRIMARY KEY, business_id TEXT, user_id TEXT NOT NULL, subject TEXT NOT NULL, message TEXT NOT NULL,
		status TEXT NOT NULL, priority TEXT NOT NULL, created_at DATETIME NOT NULL, updated_at DATETIME NOT NULL)`,
}

// NewSQLiteDB opens an in-memory SQLite database with the application schema
func NewSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every pooled connection would otherwise get its own empty :memory: database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	for _, stmt := range sqliteSchema {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}
