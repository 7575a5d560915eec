package domain_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rafi0167/Bank-App/internal/domain"
	"github.com/rafi0167/Bank-App/internal/memory"
)

type queryFixture struct {
	accounts     *memory.AccountRepository
	transactions *memory.TransactionRepository
	queries      *domain.Queries
}

func newQueryFixture(t *testing.T, maxLimit int) *queryFixture {
	t.Helper()
	store := memory.NewStore()
	accounts := memory.NewAccountRepository(store)
	transactions := memory.NewTransactionRepository(store)
	return &queryFixture{
		accounts:     accounts,
		transactions: transactions,
		queries:      domain.NewQueries(accounts, transactions, maxLimit),
	}
}

func (f *queryFixture) seedTransactions(t *testing.T, accountID uuid.UUID, n int, base time.Time) {
	t.Helper()
	for i := 0; i < n; i++ {
		tran := &domain.Transaction{
			ID:          uuid.New(),
			AccountID:   accountID,
			Kind:        domain.KindCredit,
			Amount:      decimal.NewFromInt(1),
			Description: fmt.Sprintf("entry %d", i),
			Timestamp:   base.Add(time.Duration(i) * time.Second),
		}
		if err := f.transactions.Create(context.Background(), tran); err != nil {
			t.Fatalf("failed to seed transaction: %v", err)
		}
	}
}

func TestListForOwner_CapsAtHundredAcrossAccounts(t *testing.T) {
	f := newQueryFixture(t, 0)
	ownerID := uuid.New()
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	first := domain.NewAccount(ownerID, "savings")
	second := domain.NewAccount(ownerID, "checking")
	for _, account := range []*domain.Account{first, second} {
		if err := f.accounts.Create(context.Background(), account); err != nil {
			t.Fatalf("failed to create account: %v", err)
		}
	}

	f.seedTransactions(t, first.ID, 80, base)
	f.seedTransactions(t, second.ID, 70, base.Add(time.Hour))

	got, err := f.queries.ListForOwner(context.Background(), ownerID, 0)
	if err != nil {
		t.Fatalf("ListForOwner failed: %v", err)
	}
	if len(got) != 100 {
		t.Fatalf("result length = %d, want 100", len(got))
	}

	// Newest first, across both accounts.
	for i := 1; i < len(got); i++ {
		if got[i].Timestamp.After(got[i-1].Timestamp) {
			t.Fatalf("result not sorted descending at index %d", i)
		}
	}
	if !got[0].Timestamp.Equal(base.Add(time.Hour + 69*time.Second)) {
		t.Errorf("newest entry timestamp = %s, want the last seeded entry", got[0].Timestamp)
	}
}

func TestListForOwner_LimitClamping(t *testing.T) {
	f := newQueryFixture(t, 0)
	ownerID := uuid.New()
	account := domain.NewAccount(ownerID, "savings")
	if err := f.accounts.Create(context.Background(), account); err != nil {
		t.Fatalf("failed to create account: %v", err)
	}
	f.seedTransactions(t, account.ID, 120, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{name: "zero means maximum", limit: 0, want: 100},
		{name: "negative means maximum", limit: -5, want: 100},
		{name: "above maximum clamps", limit: 500, want: 100},
		{name: "small limit honored", limit: 7, want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.queries.ListForOwner(context.Background(), ownerID, tt.limit)
			if err != nil {
				t.Fatalf("ListForOwner failed: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("result length = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestListForOwner_NoAccounts(t *testing.T) {
	f := newQueryFixture(t, 0)

	got, err := f.queries.ListForOwner(context.Background(), uuid.New(), 0)
	if err != nil {
		t.Fatalf("ListForOwner failed: %v", err)
	}
	if got == nil {
		t.Fatal("result is nil, want empty slice")
	}
	if len(got) != 0 {
		t.Errorf("result length = %d, want 0", len(got))
	}
}

func TestListForOwner_ExcludesForeignAccounts(t *testing.T) {
	f := newQueryFixture(t, 0)
	ownerID := uuid.New()
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	mine := domain.NewAccount(ownerID, "savings")
	theirs := domain.NewAccount(uuid.New(), "savings")
	for _, account := range []*domain.Account{mine, theirs} {
		if err := f.accounts.Create(context.Background(), account); err != nil {
			t.Fatalf("failed to create account: %v", err)
		}
	}
	f.seedTransactions(t, mine.ID, 3, base)
	f.seedTransactions(t, theirs.ID, 5, base)

	got, err := f.queries.ListForOwner(context.Background(), ownerID, 0)
	if err != nil {
		t.Fatalf("ListForOwner failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("result length = %d, want 3", len(got))
	}
	for _, tran := range got {
		if tran.AccountID != mine.ID {
			t.Errorf("result contains foreign transaction for account %s", tran.AccountID)
		}
	}
}

func TestListByAccounts_TimestampTieBrokenByID(t *testing.T) {
	f := newQueryFixture(t, 0)
	accountID := uuid.New()
	ts := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		tran := &domain.Transaction{
			ID:        uuid.New(),
			AccountID: accountID,
			Kind:      domain.KindCredit,
			Amount:    decimal.NewFromInt(1),
			Timestamp: ts,
		}
		if err := f.transactions.Create(context.Background(), tran); err != nil {
			t.Fatalf("failed to seed transaction: %v", err)
		}
	}

	got, err := f.transactions.ListByAccounts(context.Background(), []uuid.UUID{accountID}, 100)
	if err != nil {
		t.Fatalf("ListByAccounts failed: %v", err)
	}
	for i := 1; i < len(got); i++ {
		if got[i].ID.String() > got[i-1].ID.String() {
			t.Fatalf("equal timestamps not ordered by id descending at index %d", i)
		}
	}
}
