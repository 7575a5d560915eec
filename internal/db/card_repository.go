package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rafi0167/Bank-App/internal/domain"
)

// CardRepository implements domain.CardRepository using PostgreSQL.
type CardRepository struct {
	pool *pgxpool.Pool
}

// NewCardRepository creates a new CardRepository.
func NewCardRepository(pool *pgxpool.Pool) *CardRepository {
	return &CardRepository{
		pool: pool,
	}
}

// Create persists an issued card.
func (r *CardRepository) Create(ctx context.Context, card *domain.Card) error {
	query := `
		INSERT INTO cards (id, owner_id, card_number, card_type, expiry_date, cvv, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	var err error
	if tx := getTx(ctx); tx != nil {
		_, err = tx.Exec(ctx, query,
			card.ID, card.OwnerID, card.CardNumber, card.CardType,
			card.ExpiryDate, card.CVV, card.Status, card.CreatedAt,
		)
	} else {
		_, err = r.pool.Exec(ctx, query,
			card.ID, card.OwnerID, card.CardNumber, card.CardType,
			card.ExpiryDate, card.CVV, card.Status, card.CreatedAt,
		)
	}
	if err != nil {
		return fmt.Errorf("failed to create card: %w", err)
	}
	return nil
}

// ListByOwner returns the owner's cards in insertion order.
func (r *CardRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Card, error) {
	query := `
		SELECT id, owner_id, card_number, card_type, expiry_date, cvv, status, created_at
		FROM cards
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
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	defer rows.Close()

	cards := make([]*domain.Card, 0)
	for rows.Next() {
		var card domain.Card
		if err := rows.Scan(
			&card.ID,
			&card.OwnerID,
			&card.CardNumber,
			&card.CardType,
			&card.ExpiryDate,
			&card.CVV,
			&card.Status,
			&card.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, &card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cards: %w", err)
	}
	return cards, nil
}

var _ domain.CardRepository = (*CardRepository)(nil)
