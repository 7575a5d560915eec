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

// UserRepository implements domain.UserRepository using PostgreSQL.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		pool: pool,
	}
}

const userColumns = `id, name, email, address, nid_number, nid_image, monthly_income::text, gender, password_hash, created_at`

// Create persists a new user.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, name, email, address, nid_number, nid_image, monthly_income, gender, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7::numeric, $8, $9, $10)
	`

	var err error
	if tx := getTx(ctx); tx != nil {
		_, err = tx.Exec(ctx, query,
			user.ID, user.Name, user.Email, user.Address, user.NIDNumber,
			user.NIDImage, user.MonthlyIncome.String(), user.Gender,
			user.PasswordHash, user.CreatedAt,
		)
	} else {
		_, err = r.pool.Exec(ctx, query,
			user.ID, user.Name, user.Email, user.Address, user.NIDNumber,
			user.NIDImage, user.MonthlyIncome.String(), user.Gender,
			user.PasswordHash, user.CreatedAt,
		)
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by id.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(ctx, query, id)
}

// GetByEmail retrieves a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(ctx, query, email)
}

func (r *UserRepository) scanUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	var row pgx.Row
	if tx := getTx(ctx); tx != nil {
		row = tx.QueryRow(ctx, query, arg)
	} else {
		row = r.pool.QueryRow(ctx, query, arg)
	}

	var (
		user   domain.User
		income string
	)
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Address,
		&user.NIDNumber,
		&user.NIDImage,
		&income,
		&user.Gender,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.MonthlyIncome, err = decimal.NewFromString(income)
	if err != nil {
		return nil, fmt.Errorf("failed to parse monthly income: %w", err)
	}
	return &user, nil
}

var _ domain.UserRepository = (*UserRepository)(nil)
