package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/rafi0167/Bank-App/internal/domain"
)

// AccountRepository implements domain.AccountRepository using PostgreSQL.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{
		pool: pool,
	}
}

// Create persists a new account.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (id, owner_id, account_number, account_type, balance, created_at)
		VALUES ($1, $2, $3, $4, $5::numeric, $6)
	`

	var err error
	if tx := getTx(ctx); tx != nil {
		_, err = tx.Exec(ctx, query,
			account.ID, account.OwnerID, account.AccountNumber,
			account.AccountType, account.Balance.String(), account.CreatedAt,
		)
	} else {
		_, err = r.pool.Exec(ctx, query,
			account.ID, account.OwnerID, account.AccountNumber,
			account.AccountType, account.Balance.String(), account.CreatedAt,
		)
	}
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// GetByID retrieves an account by its unique identifier.
func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	query := `
		SELECT id, owner_id, account_number, account_type, balance::text, created_at
		FROM accounts
		WHERE id = $1
	`
	return r.scanAccount(ctx, query, id)
}

// Lock acquires a pessimistic lock on the account for the duration of the
// surrounding transaction. Uses SELECT ... FOR UPDATE to lock the row, so it
// must run inside a transaction context.
func (r *AccountRepository) Lock(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	query := `
		SELECT id, owner_id, account_number, account_type, balance::text, created_at
		FROM accounts
		WHERE id = $1
		FOR UPDATE
	`
	return r.scanAccount(ctx, query, id)
}

func (r *AccountRepository) scanAccount(ctx context.Context, query string, id uuid.UUID) (*domain.Account, error) {
	var row pgx.Row
	if tx := getTx(ctx); tx != nil {
		row = tx.QueryRow(ctx, query, id)
	} else {
		row = r.pool.QueryRow(ctx, query, id)
	}

	var (
		account domain.Account
		balance string
	)
	err := row.Scan(
		&account.ID,
		&account.OwnerID,
		&account.AccountNumber,
		&account.AccountType,
		&balance,
		&account.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	account.Balance, err = decimal.NewFromString(balance)
	if err != nil {
		return nil, fmt.Errorf("failed to parse account balance: %w", err)
	}
	return &account, nil
}

// ListByOwner returns the owner's accounts in insertion order.
func (r *AccountRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Account, error) {
	query := `
		SELECT id, owner_id, account_number, account_type, balance::text, created_at
		FROM accounts
		WHERE owner_id = $1
		ORDER BY created_at, id
	`

	var (
		rows pgx.Rows
		err  error
	)
	if tx := getTx(ctx); tx != nil {
		rows, err = tx.Query(ctx, query, ownerID)
	} else {
		rows, err = r.pool.Query(ctx, query, ownerID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]*domain.Account, 0)
	for rows.Next() {
		var (
			account domain.Account
			balance string
		)
		if err := rows.Scan(
			&account.ID,
			&account.OwnerID,
			&account.AccountNumber,
			&account.AccountType,
			&balance,
			&account.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		account.Balance, err = decimal.NewFromString(balance)
		if err != nil {
			return nil, fmt.Errorf("failed to parse account balance: %w", err)
		}
		accounts = append(accounts, &account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read accounts: %w", err)
	}
	return accounts, nil
}

// ApplyDelta atomically adds delta to the account balance and returns the new
// balance. The arithmetic happens in the database so concurrent callers never
// race on a read-modify-write.
func (r *AccountRepository) ApplyDelta(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (decimal.Decimal, error) {
	query := `
		UPDATE accounts
		SET balance = balance + $2::numeric
		WHERE id = $1
		RETURNING balance::text
	`

	var row pgx.Row
	if tx := getTx(ctx); tx != nil {
		row = tx.QueryRow(ctx, query, id, delta.String())
	} else {
		row = r.pool.QueryRow(ctx, query, id, delta.String())
	}

	var balance string
	if err := row.Scan(&balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, domain.ErrAccountNotFound
		}
		return decimal.Zero, fmt.Errorf("failed to apply balance delta: %w", err)
	}

	newBalance, err := decimal.NewFromString(balance)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse new balance: %w", err)
	}
	return newBalance, nil
}

var _ domain.AccountRepository = (*AccountRepository)(nil)
