package db

import (
	"context"
	"fmt"
)

// Migrate creates the schema if it does not exist. Statements are idempotent
// so running them on every startup is safe.
func Migrate(ctx context.Context, pool *Pool) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL UNIQUE,
			address TEXT NOT NULL DEFAULT '',
			nid_number VARCHAR(64) NOT NULL DEFAULT '',
			nid_image TEXT NOT NULL DEFAULT '',
			monthly_income NUMERIC(18, 2) NOT NULL DEFAULT 0,
			gender VARCHAR(16) NOT NULL DEFAULT '',
			password_hash VARCHAR(255) NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);`,

		`CREATE TABLE IF NOT EXISTS accounts (
			id UUID PRIMARY KEY,
			owner_id UUID NOT NULL REFERENCES users(id),
			account_number VARCHAR(32) NOT NULL UNIQUE,
			account_type VARCHAR(32) NOT NULL,
			balance NUMERIC(18, 2) NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_accounts_owner_id ON accounts(owner_id);`,

		`CREATE TABLE IF NOT EXISTS transactions (
			id UUID PRIMARY KEY,
			account_id UUID NOT NULL REFERENCES accounts(id),
			kind VARCHAR(16) NOT NULL,
			amount NUMERIC(18, 2) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			timestamp TIMESTAMP NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_transactions_account_id ON transactions(account_id);
		CREATE INDEX IF NOT EXISTS idx_transactions_timestamp ON transactions(timestamp DESC, id DESC);`,

		`CREATE TABLE IF NOT EXISTS loans (
			id UUID PRIMARY KEY,
			owner_id UUID NOT NULL REFERENCES users(id),
			amount NUMERIC(18, 2) NOT NULL,
			interest_rate NUMERIC(6, 2) NOT NULL,
			duration_months INT NOT NULL,
			status VARCHAR(20) NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_loans_owner_id ON loans(owner_id);`,

		`CREATE TABLE IF NOT EXISTS cards (
			id UUID PRIMARY KEY,
			owner_id UUID NOT NULL REFERENCES users(id),
			card_number VARCHAR(32) NOT NULL,
			card_type VARCHAR(32) NOT NULL,
			expiry_date VARCHAR(8) NOT NULL,
			cvv VARCHAR(8) NOT NULL,
			status VARCHAR(20) NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_cards_owner_id ON cards(owner_id);`,

		`CREATE TABLE IF NOT EXISTS kyc (
			id UUID PRIMARY KEY,
			owner_id UUID NOT NULL UNIQUE REFERENCES users(id),
			status VARCHAR(20) NOT NULL,
			documents TEXT[] NOT NULL DEFAULT '{}',
			updated_at TIMESTAMP NOT NULL DEFAULT NOW()
		);`,

		`CREATE TABLE IF NOT EXISTS employees (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			position VARCHAR(255) NOT NULL,
			department VARCHAR(255) NOT NULL,
			image TEXT NOT NULL DEFAULT '',
			email VARCHAR(255) NOT NULL,
			phone VARCHAR(32) NOT NULL
		);`,

		`CREATE TABLE IF NOT EXISTS bank_info (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			branch VARCHAR(255) NOT NULL,
			address TEXT NOT NULL,
			phone VARCHAR(32) NOT NULL,
			email VARCHAR(255) NOT NULL
		);`,
	}

	for _, migration := range migrations {
		if _, err := pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}
	return nil
}
