package domain

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountRepository is the account store. It guarantees atomic balance
// mutation and consistent reads; no business validation lives here.
type AccountRepository interface {
	// Create persists a new account.
	Create(ctx context.Context, account *Account) error

	// GetByID retrieves an account, or ErrAccountNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*Account, error)

	// ListByOwner returns the owner's accounts in insertion order,
	// possibly empty.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Account, error)

	// Lock acquires exclusive access to the account for the duration of the
	// surrounding transaction and returns its current state. Must be called
	// within a TransactionManager transaction.
	Lock(ctx context.Context, id uuid.UUID) (*Account, error)

	// ApplyDelta atomically adds delta to the account balance and returns
	// the new balance, or ErrAccountNotFound. This is the only
	// balance-mutating operation.
	ApplyDelta(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (decimal.Decimal, error)
}

// TransactionRepository stores immutable ledger entries. There are no update
// or delete operations: a committed transaction is permanent.
type TransactionRepository interface {
	// Create persists a new transaction record.
	Create(ctx context.Context, tran *Transaction) error

	// ListByAccounts returns up to limit transactions across the given
	// accounts, ordered by timestamp descending, ties broken by id
	// descending.
	ListByAccounts(ctx context.Context, accountIDs []uuid.UUID, limit int) ([]*Transaction, error)
}

// UserRepository stores account owners.
type UserRepository interface {
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user, or ErrUserNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// GetByEmail retrieves a user by email, or ErrUserNotFound.
	GetByEmail(ctx context.Context, email string) (*User, error)
}

// LoanRepository stores loan applications.
type LoanRepository interface {
	Create(ctx context.Context, loan *Loan) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Loan, error)
}

// CardRepository stores issued cards.
type CardRepository interface {
	Create(ctx context.Context, card *Card) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Card, error)
}

// KYCRepository stores verification records, one per user.
type KYCRepository interface {
	Create(ctx context.Context, kyc *KYC) error

	// GetByOwner retrieves the user's record, or ErrKYCNotFound.
	GetByOwner(ctx context.Context, ownerID uuid.UUID) (*KYC, error)

	// Update replaces the documents and updated_at of the owner's record,
	// or ErrKYCNotFound.
	Update(ctx context.Context, kyc *KYC) error
}

// DirectoryRepository stores the public employee and branch directories.
type DirectoryRepository interface {
	Employees(ctx context.Context) ([]*Employee, error)
	BankInfo(ctx context.Context) ([]*BankInfo, error)
	InsertEmployees(ctx context.Context, employees []*Employee) error
	InsertBankInfo(ctx context.Context, info []*BankInfo) error
}

// TransactionManager executes a function within a storage transaction. If the
// function returns an error the transaction is rolled back, otherwise it is
// committed. Repositories participate in the surrounding transaction through
// the context they receive.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
