package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema bootstrap runs at startup and is idempotent. Column notes:
// transactions.category_id is SET NULL on category delete (history survives),
// while rule trigger/destination references cascade with their category.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		first_name TEXT NOT NULL,
		password_hash BYTEA NOT NULL,
		role TEXT NOT NULL DEFAULT 'NORMAL',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS accounts (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		owner_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS memberships (
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		account_id BIGINT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
		alias TEXT,
		joined_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (user_id, account_id)
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		account_id BIGINT REFERENCES accounts(id) ON DELETE CASCADE,
		UNIQUE NULLS NOT DISTINCT (name, account_id)
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id BIGSERIAL PRIMARY KEY,
		account_id BIGINT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
		category_id BIGINT REFERENCES categories(id) ON DELETE SET NULL,
		amount NUMERIC(10,2) NOT NULL CHECK (amount > 0),
		description TEXT NOT NULL DEFAULT '',
		date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		transaction_type TEXT NOT NULL CHECK (transaction_type IN ('INCOME', 'EXPENSE')),
		created_by_rule BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_account_category
		ON transactions (account_id, category_id)`,
	`CREATE TABLE IF NOT EXISTS event_rules (
		id BIGSERIAL PRIMARY KEY,
		account_id BIGINT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		trigger_category_id BIGINT NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
		trigger_transaction_type TEXT NOT NULL CHECK (trigger_transaction_type IN ('INCOME', 'EXPENSE')),
		action_type TEXT NOT NULL CHECK (action_type IN ('FIXED', 'PERCENTAGE')),
		action_destination_category_id BIGINT NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
		action_transaction_type TEXT NOT NULL CHECK (action_transaction_type IN ('INCOME', 'EXPENSE')),
		action_description TEXT NOT NULL DEFAULT '',
		action_fixed_amount NUMERIC(10,2),
		action_percentage NUMERIC(5,2),
		created_by_id BIGINT REFERENCES users(id) ON DELETE SET NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_event_rules_trigger
		ON event_rules (account_id, trigger_category_id, trigger_transaction_type) WHERE is_active`,
	`CREATE TABLE IF NOT EXISTS scheduled_rules (
		id BIGSERIAL PRIMARY KEY,
		account_id BIGINT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		schedule_day_of_month INT NOT NULL CHECK (schedule_day_of_month BETWEEN 1 AND 31),
		source_category_id BIGINT REFERENCES categories(id) ON DELETE SET NULL,
		action_destination_category_id BIGINT NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
		action_type TEXT NOT NULL CHECK (action_type IN ('FIXED', 'PERCENTAGE')),
		action_description TEXT NOT NULL DEFAULT '',
		action_fixed_amount NUMERIC(10,2),
		action_percentage NUMERIC(5,2),
		created_by_id BIGINT REFERENCES users(id) ON DELETE SET NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_scheduled_rules_day
		ON scheduled_rules (schedule_day_of_month) WHERE is_active`,
	`CREATE TABLE IF NOT EXISTS insights (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		message TEXT NOT NULL,
		generated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		is_read BOOLEAN NOT NULL DEFAULT FALSE
	)`,
}

func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("schema bootstrap failed: %w", err)
		}
	}
	return nil
}
