package domain

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// DefaultHistoryLimit caps how many transactions a history read returns.
const DefaultHistoryLimit = 100

// Queries serves read-only projections over committed transactions. Reads
// never mutate state and never take the commit-path lock; a result that is
// stale by milliseconds is acceptable.
type Queries struct {
	accounts     AccountRepository
	transactions TransactionRepository
	maxLimit     int
}

// NewQueries creates a Queries view. maxLimit <= 0 falls back to
// DefaultHistoryLimit.
func NewQueries(accounts AccountRepository, transactions TransactionRepository, maxLimit int) *Queries {
	if maxLimit <= 0 {
		maxLimit = DefaultHistoryLimit
	}
	return &Queries{
		accounts:     accounts,
		transactions: transactions,
		maxLimit:     maxLimit,
	}
}

// ListForOwner returns the most recent transactions across all of the
// owner's accounts, ordered by timestamp descending with ties broken by id
// descending. limit is clamped to the configured maximum; limit <= 0 means
// the maximum.
func (q *Queries) ListForOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]*Transaction, error) {
	if limit <= 0 || limit > q.maxLimit {
		limit = q.maxLimit
	}

	accounts, err := q.accounts.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list accounts for owner: %w", err)
	}
	if len(accounts) == 0 {
		return []*Transaction{}, nil
	}

	ids := make([]uuid.UUID, 0, len(accounts))
	for _, account := range accounts {
		ids = append(ids, account.ID)
	}

	transactions, err := q.transactions.ListByAccounts(ctx, ids, limit)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return transactions, nil
}
