package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rafi0167/Bank-App/internal/domain"
)

// KYCRepository implements domain.KYCRepository using PostgreSQL.
type KYCRepository struct {
	pool *pgxpool.Pool
}

// NewKYCRepository creates a new KYCRepository.
func NewKYCRepository(pool *pgxpool.Pool) *KYCRepository {
	return &KYCRepository{
		pool: pool,
	}
}

// Create persists a verification record.
func (r *KYCRepository) Create(ctx context.Context, kyc *domain.KYC) error {
	query := `
		INSERT INTO kyc (id, owner_id, status, documents, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	documents := kyc.Documents
	if documents == nil {
		documents = []string{}
	}

	var err error
	if tx := getTx(ctx); tx != nil {
		_, err = tx.Exec(ctx, query, kyc.ID, kyc.OwnerID, string(kyc.Status), documents, kyc.UpdatedAt)
	} else {
		_, err = r.pool.Exec(ctx, query, kyc.ID, kyc.OwnerID, string(kyc.Status), documents, kyc.UpdatedAt)
	}
	if err != nil {
		return fmt.Errorf("failed to create kyc record: %w", err)
	}
	return nil
}

// GetByOwner retrieves the user's verification record.
func (r *KYCRepository) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*domain.KYC, error) {
	query := `
		SELECT id, owner_id, status, documents, updated_at
		FROM kyc
		WHERE owner_id = $1
	`

	var row pgx.Row
	if tx := getTx(ctx); tx != nil {
		row = tx.QueryRow(ctx, query, ownerID)
	} else {
		row = r.pool.QueryRow(ctx, query, ownerID)
	}

	var (
		kyc    domain.KYC
		status string
	)
	err := row.Scan(&kyc.ID, &kyc.OwnerID, &status, &kyc.Documents, &kyc.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrKYCNotFound
		}
		return nil, fmt.Errorf("failed to get kyc record: %w", err)
	}
	kyc.Status = domain.KYCStatus(status)
	return &kyc, nil
}

// Update replaces the documents, status, and updated_at of the owner's record.
func (r *KYCRepository) Update(ctx context.Context, kyc *domain.KYC) error {
	query := `
		UPDATE kyc
		SET status = $2, documents = $3, updated_at = $4
		WHERE owner_id = $1
	`

	documents := kyc.Documents
	if documents == nil {
		documents = []string{}
	}

	var (
		tag pgconn.CommandTag
		err error
	)
	if tx := getTx(ctx); tx != nil {
		tag, err = tx.Exec(ctx, query, kyc.OwnerID, string(kyc.Status), documents, kyc.UpdatedAt)
	} else {
		tag, err = r.pool.Exec(ctx, query, kyc.OwnerID, string(kyc.Status), documents, kyc.UpdatedAt)
	}
	if err != nil {
		return fmt.Errorf("failed to update kyc record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrKYCNotFound
	}
	return nil
}

var _ domain.KYCRepository = (*KYCRepository)(nil)
