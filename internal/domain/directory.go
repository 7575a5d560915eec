package domain

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// EnsureSeedData populates the public directories on first startup. Both
// inserts are idempotent at the process level: an already-populated
// directory is left alone.
func EnsureSeedData(ctx context.Context, directory DirectoryRepository) error {
	employees, err := directory.Employees(ctx)
	if err != nil {
		return fmt.Errorf("read employee directory: %w", err)
	}
	if len(employees) == 0 {
		if err := directory.InsertEmployees(ctx, seedEmployees()); err != nil {
			return fmt.Errorf("seed employee directory: %w", err)
		}
	}

	info, err := directory.BankInfo(ctx)
	if err != nil {
		return fmt.Errorf("read bank info directory: %w", err)
	}
	if len(info) == 0 {
		if err := directory.InsertBankInfo(ctx, seedBankInfo()); err != nil {
			return fmt.Errorf("seed bank info directory: %w", err)
		}
	}
	return nil
}

func seedEmployees() []*Employee {
	return []*Employee{
		{
			ID:         uuid.New(),
			Name:       "Sarah Johnson",
			Position:   "Chief Executive Officer",
			Department: "Executive",
			Image:      "https://randomuser.me/api/portraits/women/44.jpg",
			Email:      "sarah.johnson@bank.com",
			Phone:      "+1-555-0101",
		},
		{
			ID:         uuid.New(),
			Name:       "Michael Chen",
			Position:   "Chief Financial Officer",
			Department: "Finance",
			Image:      "https://randomuser.me/api/portraits/men/32.jpg",
			Email:      "michael.chen@bank.com",
			Phone:      "+1-555-0102",
		},
		{
			ID:         uuid.New(),
			Name:       "Emily Rodriguez",
			Position:   "Head of Operations",
			Department: "Operations",
			Image:      "https://randomuser.me/api/portraits/women/68.jpg",
			Email:      "emily.rodriguez@bank.com",
			Phone:      "+1-555-0103",
		},
	}
}

func seedBankInfo() []*BankInfo {
	return []*BankInfo{
		{
			ID:      uuid.New(),
			Name:    "SecureBank Main Branch",
			Branch:  "Downtown",
			Address: "123 Financial District, New York, NY 10004",
			Phone:   "+1-555-BANK-001",
			Email:   "downtown@securebank.com",
		},
		{
			ID:      uuid.New(),
			Name:    "SecureBank Uptown Branch",
			Branch:  "Uptown",
			Address: "456 Madison Avenue, New York, NY 10022",
			Phone:   "+1-555-BANK-002",
			Email:   "uptown@securebank.com",
		},
	}
}
