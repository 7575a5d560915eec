// Package memory provides an in-memory implementation of the domain
// repositories. It backs the demo storage mode and the unit tests.
//
// A single mutex serializes all state changes, and WithinTx snapshots the
// store before running its function so a failed transaction rolls back to
// exactly the pre-call state. All writes are copy-on-write: stored values are
// replaced, never mutated in place, which keeps snapshots cheap (shallow
// clones of the maps and slices).
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/rafi0167/Bank-App/internal/domain"
)

// txKey marks a context as running inside WithinTx, so repository methods
// do not try to re-acquire the store mutex.
type txKey struct{}

// Store holds all in-memory state. Zero value is not usable; use NewStore.
type Store struct {
	mu sync.Mutex

	users  map[uuid.UUID]*domain.User
	emails map[string]uuid.UUID

	accounts     map[uuid.UUID]*domain.Account
	accountOrder []uuid.UUID

	transactions []*domain.Transaction

	loans map[uuid.UUID][]*domain.Loan
	cards map[uuid.UUID][]*domain.Card
	kyc   map[uuid.UUID]*domain.KYC

	employees []*domain.Employee
	bankInfo  []*domain.BankInfo
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		users:    make(map[uuid.UUID]*domain.User),
		emails:   make(map[string]uuid.UUID),
		accounts: make(map[uuid.UUID]*domain.Account),
		loans:    make(map[uuid.UUID][]*domain.Loan),
		cards:    make(map[uuid.UUID][]*domain.Card),
		kyc:      make(map[uuid.UUID]*domain.KYC),
	}
}

// enter acquires the store mutex unless the context already runs inside a
// WithinTx transaction, which holds it for the whole function. Returns the
// matching release function.
func (s *Store) enter(ctx context.Context) func() {
	if ctx.Value(txKey{}) != nil {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

type snapshot struct {
	users        map[uuid.UUID]*domain.User
	emails       map[string]uuid.UUID
	accounts     map[uuid.UUID]*domain.Account
	accountOrder []uuid.UUID
	transactions []*domain.Transaction
	loans        map[uuid.UUID][]*domain.Loan
	cards        map[uuid.UUID][]*domain.Card
	kyc          map[uuid.UUID]*domain.KYC
	employees    []*domain.Employee
	bankInfo     []*domain.BankInfo
}

// take must be called with the mutex held. Shallow clones are sufficient
// because writes replace stored values rather than mutating them.
func (s *Store) take() snapshot {
	return snapshot{
		users:        maps.Clone(s.users),
		emails:       maps.Clone(s.emails),
		accounts:     maps.Clone(s.accounts),
		accountOrder: slices.Clone(s.accountOrder),
		transactions: slices.Clone(s.transactions),
		loans:        maps.Clone(s.loans),
		cards:        maps.Clone(s.cards),
		kyc:          maps.Clone(s.kyc),
		employees:    slices.Clone(s.employees),
		bankInfo:     slices.Clone(s.bankInfo),
	}
}

// restore must be called with the mutex held.
func (s *Store) restore(snap snapshot) {
	s.users = snap.users
	s.emails = snap.emails
	s.accounts = snap.accounts
	s.accountOrder = snap.accountOrder
	s.transactions = snap.transactions
	s.loans = snap.loans
	s.cards = snap.cards
	s.kyc = snap.kyc
	s.employees = snap.employees
	s.bankInfo = snap.bankInfo
}

// TransactionManager implements domain.TransactionManager over the store
// mutex: the whole function runs in one critical section, and any error
// rolls the store back to the snapshot taken on entry.
type TransactionManager struct {
	store *Store
}

// NewTransactionManager creates a TransactionManager.
func NewTransactionManager(store *Store) *TransactionManager {
	return &TransactionManager{store: store}
}

// WithinTx implements domain.TransactionManager.
func (tm *TransactionManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	tm.store.mu.Lock()
	defer tm.store.mu.Unlock()

	snap := tm.store.take()
	if err := fn(context.WithValue(ctx, txKey{}, struct{}{})); err != nil {
		tm.store.restore(snap)
		return err
	}
	return nil
}

var _ domain.TransactionManager = (*TransactionManager)(nil)
