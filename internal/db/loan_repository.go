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

// LoanRepository implements domain.LoanRepository using PostgreSQL.
type LoanRepository struct {
	pool *pgxpool.Pool
}

// NewLoanRepository creates a new LoanRepository.
func NewLoanRepository(pool *pgxpool.Pool) *LoanRepository {
	return &LoanRepository{
		pool: pool,
	}
}

// Create persists a loan application.
func (r *LoanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	query := `
		INSERT INTO loans (id, owner_id, amount, interest_rate, duration_months, status, created_at)
		VALUES ($1, $2, $3::numeric, $4::numeric, $5, $6, $7)
	`

	var err error
	if tx := getTx(ctx); tx != nil {
		_, err = tx.Exec(ctx, query,
			loan.ID, loan.OwnerID, loan.Amount.String(), loan.InterestRate.String(),
			loan.DurationMonths, string(loan.Status), loan.CreatedAt,
		)
	} else {
		_, err = r.pool.Exec(ctx, query,
			loan.ID, loan.OwnerID, loan.Amount.String(), loan.InterestRate.String(),
			loan.DurationMonths, string(loan.Status), loan.CreatedAt,
		)
	}
	if err != nil {
		return fmt.Errorf("failed to create loan: %w", err)
	}
	return nil
}

// ListByOwner returns the owner's loan applications in insertion order.
func (r *LoanRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Loan, error) {
	query := `
		SELECT id, owner_id, amount::text, interest_rate::text, duration_months, status, created_at
		FROM loans
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
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	defer rows.Close()

	loans := make([]*domain.Loan, 0)
	for rows.Next() {
		var (
			loan   domain.Loan
			amount string
			rate   string
			status string
		)
		if err := rows.Scan(
			&loan.ID,
			&loan.OwnerID,
			&amount,
			&rate,
			&loan.DurationMonths,
			&status,
			&loan.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan loan: %w", err)
		}
		loan.Status = domain.LoanStatus(status)
		if loan.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("failed to parse loan amount: %w", err)
		}
		if loan.InterestRate, err = decimal.NewFromString(rate); err != nil {
			return nil, fmt.Errorf("failed to parse interest rate: %w", err)
		}
		loans = append(loans, &loan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read loans: %w", err)
	}
	return loans, nil
}

var _ domain.LoanRepository = (*LoanRepository)(nil)
