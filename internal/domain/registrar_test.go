package domain_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rafi0167/Bank-App/internal/domain"
	"github.com/rafi0167/Bank-App/internal/memory"
)

type registrarFixture struct {
	users     *memory.UserRepository
	accounts  *memory.AccountRepository
	kyc       *memory.KYCRepository
	registrar *domain.Registrar
}

func newRegistrarFixture(t *testing.T) *registrarFixture {
	t.Helper()
	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	accounts := memory.NewAccountRepository(store)
	kyc := memory.NewKYCRepository(store)
	return &registrarFixture{
		users:     users,
		accounts:  accounts,
		kyc:       kyc,
		registrar: domain.NewRegistrar(users, accounts, kyc, memory.NewTransactionManager(store)),
	}
}

func sampleRegistration() domain.Registration {
	return domain.Registration{
		Name:          "Test User",
		Email:         "test@example.com",
		Address:       "1 Test Street",
		NIDNumber:     "1234567890",
		NIDImage:      "https://example.com/nid.jpg",
		MonthlyIncome: decimal.NewFromInt(5000),
		Gender:        "female",
		PasswordHash:  "$2a$10$fakehashforunitesting",
	}
}

func TestRegister_CreatesUserAccountAndKYC(t *testing.T) {
	f := newRegistrarFixture(t)
	ctx := context.Background()

	user, account, err := f.registrar.Register(ctx, sampleRegistration())
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if user.Email != "test@example.com" {
		t.Errorf("user email = %q", user.Email)
	}

	if account.OwnerID != user.ID {
		t.Errorf("account owner = %s, want %s", account.OwnerID, user.ID)
	}
	if account.AccountType != "savings" {
		t.Errorf("account type = %q, want savings", account.AccountType)
	}
	if !account.Balance.IsZero() {
		t.Errorf("initial balance = %s, want 0", account.Balance)
	}
	if !strings.HasPrefix(account.AccountNumber, "ACC") || len(account.AccountNumber) != 11 {
		t.Errorf("account number = %q, want ACC followed by 8 characters", account.AccountNumber)
	}

	kyc, err := f.kyc.GetByOwner(ctx, user.ID)
	if err != nil {
		t.Fatalf("failed to read kyc record: %v", err)
	}
	if kyc.Status != domain.KYCStatusPending {
		t.Errorf("kyc status = %q, want pending", kyc.Status)
	}
	if len(kyc.Documents) != 1 || kyc.Documents[0] != "https://example.com/nid.jpg" {
		t.Errorf("kyc documents = %v, want the NID image", kyc.Documents)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newRegistrarFixture(t)
	ctx := context.Background()

	if _, _, err := f.registrar.Register(ctx, sampleRegistration()); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}

	reg := sampleRegistration()
	reg.Name = "Someone Else"
	_, _, err := f.registrar.Register(ctx, reg)
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("error = %v, want ErrEmailTaken", err)
	}

	// The failed attempt must not leave a second account behind.
	user, err := f.users.GetByEmail(ctx, "test@example.com")
	if err != nil {
		t.Fatalf("failed to read user: %v", err)
	}
	if user.Name != "Test User" {
		t.Errorf("existing user was overwritten: name = %q", user.Name)
	}
	accounts, err := f.accounts.ListByOwner(ctx, user.ID)
	if err != nil {
		t.Fatalf("failed to list accounts: %v", err)
	}
	if len(accounts) != 1 {
		t.Errorf("account count = %d, want 1", len(accounts))
	}
}

func TestRegister_NoDocumentsWithoutNIDImage(t *testing.T) {
	f := newRegistrarFixture(t)

	reg := sampleRegistration()
	reg.NIDImage = ""
	user, _, err := f.registrar.Register(context.Background(), reg)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	kyc, err := f.kyc.GetByOwner(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("failed to read kyc record: %v", err)
	}
	if len(kyc.Documents) != 0 {
		t.Errorf("kyc documents = %v, want none", kyc.Documents)
	}
}
