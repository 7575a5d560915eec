package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rafi0167/Bank-App/internal/domain"
)

// DirectoryRepository implements domain.DirectoryRepository using PostgreSQL.
// The directories are public, read-mostly reference data seeded at startup.
type DirectoryRepository struct {
	pool *pgxpool.Pool
}

// NewDirectoryRepository creates a new DirectoryRepository.
func NewDirectoryRepository(pool *pgxpool.Pool) *DirectoryRepository {
	return &DirectoryRepository{
		pool: pool,
	}
}

// Employees returns the employee directory.
func (r *DirectoryRepository) Employees(ctx context.Context) ([]*domain.Employee, error) {
	query := `
		SELECT id, name, position, department, image, email, phone
		FROM employees
		ORDER BY name
	`

	rows, err := r.query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := make([]*domain.Employee, 0)
	for rows.Next() {
		var e domain.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Position, &e.Department, &e.Image, &e.Email, &e.Phone); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read employees: %w", err)
	}
	return employees, nil
}

// BankInfo returns the branch directory.
func (r *DirectoryRepository) BankInfo(ctx context.Context) ([]*domain.BankInfo, error) {
	query := `
		SELECT id, name, branch, address, phone, email
		FROM bank_info
		ORDER BY name
	`

	rows, err := r.query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list bank info: %w", err)
	}
	defer rows.Close()

	info := make([]*domain.BankInfo, 0)
	for rows.Next() {
		var b domain.BankInfo
		if err := rows.Scan(&b.ID, &b.Name, &b.Branch, &b.Address, &b.Phone, &b.Email); err != nil {
			return nil, fmt.Errorf("failed to scan bank info: %w", err)
		}
		info = append(info, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read bank info: %w", err)
	}
	return info, nil
}

// InsertEmployees appends directory entries.
func (r *DirectoryRepository) InsertEmployees(ctx context.Context, employees []*domain.Employee) error {
	query := `
		INSERT INTO employees (id, name, position, department, image, email, phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for _, e := range employees {
		if err := r.exec(ctx, query, e.ID, e.Name, e.Position, e.Department, e.Image, e.Email, e.Phone); err != nil {
			return fmt.Errorf("failed to insert employee: %w", err)
		}
	}
	return nil
}

// InsertBankInfo appends directory entries.
func (r *DirectoryRepository) InsertBankInfo(ctx context.Context, info []*domain.BankInfo) error {
	query := `
		INSERT INTO bank_info (id, name, branch, address, phone, email)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for _, b := range info {
		if err := r.exec(ctx, query, b.ID, b.Name, b.Branch, b.Address, b.Phone, b.Email); err != nil {
			return fmt.Errorf("failed to insert bank info: %w", err)
		}
	}
	return nil
}

func (r *DirectoryRepository) query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	if tx := getTx(ctx); tx != nil {
		return tx.Query(ctx, query, args...)
	}
	return r.pool.Query(ctx, query, args...)
}

func (r *DirectoryRepository) exec(ctx context.Context, query string, args ...any) error {
	var err error
	if tx := getTx(ctx); tx != nil {
		_, err = tx.Exec(ctx, query, args...)
	} else {
		_, err = r.pool.Exec(ctx, query, args...)
	}
	return err
}

var _ domain.DirectoryRepository = (*DirectoryRepository)(nil)
