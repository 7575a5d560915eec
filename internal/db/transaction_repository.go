package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/rafi0167/Bank-App/internal/domain"
)

// TransactionRepository implements domain.TransactionRepository using
// PostgreSQL. Ledger entries are append-only; there is no update or delete.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{
		pool: pool,
	}
}

// Create persists a new transaction record.
func (r *TransactionRepository) Create(ctx context.Context, tran *domain.Transaction) error {
	query := `
		INSERT INTO transactions (id, account_id, kind, amount, description, timestamp)
		VALUES ($1, $2, $3, $4::numeric, $5, $6)
	`

	var err error
	if tx := getTx(ctx); tx != nil {
		_, err = tx.Exec(ctx, query,
			tran.ID, tran.AccountID, string(tran.Kind),
			tran.Amount.String(), tran.Description, tran.Timestamp,
		)
	} else {
		_, err = r.pool.Exec(ctx, query,
			tran.ID, tran.AccountID, string(tran.Kind),
			tran.Amount.String(), tran.Description, tran.Timestamp,
		)
	}
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// ListByAccounts returns up to limit transactions across the given accounts,
// newest first, ties broken by id descending.
func (r *TransactionRepository) ListByAccounts(ctx context.Context, accountIDs []uuid.UUID, limit int) ([]*domain.Transaction, error) {
	query := `
		SELECT id, account_id, kind, amount::text, description, timestamp
		FROM transactions
		WHERE account_id = ANY($1)
		ORDER BY timestamp DESC, id DESC
		LIMIT $2
	`

	var (
		rows pgx.Rows
		err  error
	)
	if tx := getTx(ctx); tx != nil {
		rows, err = tx.Query(ctx, query, accountIDs, limit)
	} else {
		rows, err = r.pool.Query(ctx, query, accountIDs, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	transactions := make([]*domain.Transaction, 0)
	for rows.Next() {
		var (
			tran   domain.Transaction
			kind   string
			amount string
		)
		if err := rows.Scan(
			&tran.ID,
			&tran.AccountID,
			&kind,
			&amount,
			&tran.Description,
			&tran.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		tran.Kind = domain.TransactionKind(kind)
		tran.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("failed to parse transaction amount: %w", err)
		}
		transactions = append(transactions, &tran)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}
	return transactions, nil
}

var _ domain.TransactionRepository = (*TransactionRepository)(nil)
