package memory

import (
	"context"
	"slices"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rafi0167/Bank-App/internal/domain"
)

// AccountRepository implements domain.AccountRepository over a Store.
type AccountRepository struct {
	store *Store
}

// NewAccountRepository creates an AccountRepository.
func NewAccountRepository(store *Store) *AccountRepository {
	return &AccountRepository{store: store}
}

// Create persists a new account and remembers its insertion position.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	defer r.store.enter(ctx)()
	cp := *account
	r.store.accounts[account.ID] = &cp
	r.store.accountOrder = append(r.store.accountOrder, account.ID)
	return nil
}

// GetByID returns a copy of the account, or domain.ErrAccountNotFound.
func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	defer r.store.enter(ctx)()
	account, ok := r.store.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	cp := *account
	return &cp, nil
}

// ListByOwner returns the owner's accounts in insertion order.
func (r *AccountRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Account, error) {
	defer r.store.enter(ctx)()
	out := make([]*domain.Account, 0)
	for _, id := range r.store.accountOrder {
		if account := r.store.accounts[id]; account.OwnerID == ownerID {
			cp := *account
			out = append(out, &cp)
		}
	}
	return out, nil
}

// Lock returns the account's current state. Inside WithinTx the store mutex
// is already held for the whole transaction, which is what makes this an
// exclusive lock.
func (r *AccountRepository) Lock(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	return r.GetByID(ctx, id)
}

// ApplyDelta replaces the stored account with one holding the new balance
// and returns it. Copy-on-write keeps snapshots valid.
func (r *AccountRepository) ApplyDelta(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (decimal.Decimal, error) {
	defer r.store.enter(ctx)()
	account, ok := r.store.accounts[id]
	if !ok {
		return decimal.Zero, domain.ErrAccountNotFound
	}
	cp := *account
	cp.Balance = account.Balance.Add(delta)
	r.store.accounts[id] = &cp
	return cp.Balance, nil
}

var _ domain.AccountRepository = (*AccountRepository)(nil)

// TransactionRepository implements domain.TransactionRepository over a Store.
type TransactionRepository struct {
	store *Store
}

// NewTransactionRepository creates a TransactionRepository.
func NewTransactionRepository(store *Store) *TransactionRepository {
	return &TransactionRepository{store: store}
}

// Create appends an immutable ledger entry.
func (r *TransactionRepository) Create(ctx context.Context, tran *domain.Transaction) error {
	defer r.store.enter(ctx)()
	cp := *tran
	r.store.transactions = append(r.store.transactions, &cp)
	return nil
}

// ListByAccounts returns up to limit transactions across the given accounts,
// ordered by timestamp descending, ties broken by id descending.
func (r *TransactionRepository) ListByAccounts(ctx context.Context, accountIDs []uuid.UUID, limit int) ([]*domain.Transaction, error) {
	defer r.store.enter(ctx)()

	wanted := make(map[uuid.UUID]struct{}, len(accountIDs))
	for _, id := range accountIDs {
		wanted[id] = struct{}{}
	}

	matched := make([]*domain.Transaction, 0)
	for _, tran := range r.store.transactions {
		if _, ok := wanted[tran.AccountID]; ok {
			cp := *tran
			matched = append(matched, &cp)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].Timestamp.Equal(matched[j].Timestamp) {
			return matched[i].Timestamp.After(matched[j].Timestamp)
		}
		return matched[i].ID.String() > matched[j].ID.String()
	})

	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

var _ domain.TransactionRepository = (*TransactionRepository)(nil)

// UserRepository implements domain.UserRepository over a Store.
type UserRepository struct {
	store *Store
}

// NewUserRepository creates a UserRepository.
func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

// Create persists a new user.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	defer r.store.enter(ctx)()
	cp := *user
	r.store.users[user.ID] = &cp
	r.store.emails[user.Email] = user.ID
	return nil
}

// GetByID returns a copy of the user, or domain.ErrUserNotFound.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	defer r.store.enter(ctx)()
	user, ok := r.store.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}

// GetByEmail returns a copy of the user, or domain.ErrUserNotFound.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	defer r.store.enter(ctx)()
	id, ok := r.store.emails[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *r.store.users[id]
	return &cp, nil
}

var _ domain.UserRepository = (*UserRepository)(nil)

// LoanRepository implements domain.LoanRepository over a Store.
type LoanRepository struct {
	store *Store
}

// NewLoanRepository creates a LoanRepository.
func NewLoanRepository(store *Store) *LoanRepository {
	return &LoanRepository{store: store}
}

// Create persists a loan application.
func (r *LoanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	defer r.store.enter(ctx)()
	cp := *loan
	// Clone before append so a WithinTx snapshot never shares a backing array.
	r.store.loans[loan.OwnerID] = append(slices.Clone(r.store.loans[loan.OwnerID]), &cp)
	return nil
}

// ListByOwner returns the owner's loans in insertion order.
func (r *LoanRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Loan, error) {
	defer r.store.enter(ctx)()
	loans := r.store.loans[ownerID]
	out := make([]*domain.Loan, 0, len(loans))
	for _, loan := range loans {
		cp := *loan
		out = append(out, &cp)
	}
	return out, nil
}

var _ domain.LoanRepository = (*LoanRepository)(nil)

// CardRepository implements domain.CardRepository over a Store.
type CardRepository struct {
	store *Store
}

// NewCardRepository creates a CardRepository.
func NewCardRepository(store *Store) *CardRepository {
	return &CardRepository{store: store}
}

// Create persists an issued card.
func (r *CardRepository) Create(ctx context.Context, card *domain.Card) error {
	defer r.store.enter(ctx)()
	cp := *card
	r.store.cards[card.OwnerID] = append(slices.Clone(r.store.cards[card.OwnerID]), &cp)
	return nil
}

// ListByOwner returns the owner's cards in insertion order.
func (r *CardRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Card, error) {
	defer r.store.enter(ctx)()
	cards := r.store.cards[ownerID]
	out := make([]*domain.Card, 0, len(cards))
	for _, card := range cards {
		cp := *card
		out = append(out, &cp)
	}
	return out, nil
}

var _ domain.CardRepository = (*CardRepository)(nil)

// KYCRepository implements domain.KYCRepository over a Store.
type KYCRepository struct {
	store *Store
}

// NewKYCRepository creates a KYCRepository.
func NewKYCRepository(store *Store) *KYCRepository {
	return &KYCRepository{store: store}
}

// Create persists a verification record.
func (r *KYCRepository) Create(ctx context.Context, kyc *domain.KYC) error {
	defer r.store.enter(ctx)()
	cp := *kyc
	r.store.kyc[kyc.OwnerID] = &cp
	return nil
}

// GetByOwner returns a copy of the owner's record, or domain.ErrKYCNotFound.
func (r *KYCRepository) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*domain.KYC, error) {
	defer r.store.enter(ctx)()
	kyc, ok := r.store.kyc[ownerID]
	if !ok {
		return nil, domain.ErrKYCNotFound
	}
	cp := *kyc
	return &cp, nil
}

// Update replaces the owner's record, or domain.ErrKYCNotFound.
func (r *KYCRepository) Update(ctx context.Context, kyc *domain.KYC) error {
	defer r.store.enter(ctx)()
	if _, ok := r.store.kyc[kyc.OwnerID]; !ok {
		return domain.ErrKYCNotFound
	}
	cp := *kyc
	r.store.kyc[kyc.OwnerID] = &cp
	return nil
}

var _ domain.KYCRepository = (*KYCRepository)(nil)

// DirectoryRepository implements domain.DirectoryRepository over a Store.
type DirectoryRepository struct {
	store *Store
}

// NewDirectoryRepository creates a DirectoryRepository.
func NewDirectoryRepository(store *Store) *DirectoryRepository {
	return &DirectoryRepository{store: store}
}

// Employees returns the employee directory.
func (r *DirectoryRepository) Employees(ctx context.Context) ([]*domain.Employee, error) {
	defer r.store.enter(ctx)()
	out := make([]*domain.Employee, 0, len(r.store.employees))
	for _, e := range r.store.employees {
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

// BankInfo returns the branch directory.
func (r *DirectoryRepository) BankInfo(ctx context.Context) ([]*domain.BankInfo, error) {
	defer r.store.enter(ctx)()
	out := make([]*domain.BankInfo, 0, len(r.store.bankInfo))
	for _, b := range r.store.bankInfo {
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

// InsertEmployees appends directory entries.
func (r *DirectoryRepository) InsertEmployees(ctx context.Context, employees []*domain.Employee) error {
	defer r.store.enter(ctx)()
	for _, e := range employees {
		cp := *e
		r.store.employees = append(r.store.employees, &cp)
	}
	return nil
}

// InsertBankInfo appends directory entries.
func (r *DirectoryRepository) InsertBankInfo(ctx context.Context, info []*domain.BankInfo) error {
	defer r.store.enter(ctx)()
	for _, b := range info {
		cp := *b
		r.store.bankInfo = append(r.store.bankInfo, &cp)
	}
	return nil
}

var _ domain.DirectoryRepository = (*DirectoryRepository)(nil)
