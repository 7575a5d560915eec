package domain

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account is the core ledger entity. Its balance is the single authoritative
// figure for the account and always equals the sum of the signed amounts of
// all committed transactions, starting from zero at creation.
type Account struct {
	ID            uuid.UUID
	OwnerID       uuid.UUID
	AccountNumber string
	AccountType   string
	Balance       decimal.Decimal
	CreatedAt     time.Time
}

// TransactionKind tags a ledger entry as money in or money out.
type TransactionKind string

const (
	KindCredit TransactionKind = "credit"
	KindDebit  TransactionKind = "debit"
)

// Valid reports whether the kind is one of the two accepted values.
func (k TransactionKind) Valid() bool {
	return k == KindCredit || k == KindDebit
}

// Transaction is an immutable ledger entry. Amount is always positive; the
// sign of the balance movement is implied by Kind.
type Transaction struct {
	ID          uuid.UUID
	AccountID   uuid.UUID
	Kind        TransactionKind
	Amount      decimal.Decimal
	Description string
	Timestamp   time.Time
}

// SignedAmount returns the balance delta this transaction represents:
// +Amount for a credit, -Amount for a debit.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Kind == KindDebit {
		return t.Amount.Neg()
	}
	return t.Amount
}

// User is an account owner. PasswordHash is a bcrypt hash and never leaves
// the service.
type User struct {
	ID            uuid.UUID
	Name          string
	Email         string
	Address       string
	NIDNumber     string
	NIDImage      string
	MonthlyIncome decimal.Decimal
	Gender        string
	PasswordHash  string
	CreatedAt     time.Time
}

// LoanStatus tracks a loan application through review.
type LoanStatus string

const (
	LoanStatusPending  LoanStatus = "pending"
	LoanStatusApproved LoanStatus = "approved"
	LoanStatusRejected LoanStatus = "rejected"
)

// Loan is a loan application record.
type Loan struct {
	ID             uuid.UUID
	OwnerID        uuid.UUID
	Amount         decimal.Decimal
	InterestRate   decimal.Decimal
	DurationMonths int
	Status         LoanStatus
	CreatedAt      time.Time
}

// Card is an issued payment card.
type Card struct {
	ID         uuid.UUID
	OwnerID    uuid.UUID
	CardNumber string
	CardType   string
	ExpiryDate string
	CVV        string
	Status     string
	CreatedAt  time.Time
}

// KYCStatus tracks identity verification.
type KYCStatus string

const (
	KYCStatusPending  KYCStatus = "pending"
	KYCStatusVerified KYCStatus = "verified"
	KYCStatusRejected KYCStatus = "rejected"
)

// KYC is the identity-verification record for a user. One per user.
type KYC struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Status    KYCStatus
	Documents []string
	UpdatedAt time.Time
}

// Employee is a public directory entry.
type Employee struct {
	ID         uuid.UUID
	Name       string
	Position   string
	Department string
	Image      string
	Email      string
	Phone      string
}

// BankInfo is a public branch directory entry.
type BankInfo struct {
	ID      uuid.UUID
	Name    string
	Branch  string
	Address string
	Phone   string
	Email   string
}

// NewAccount creates an account for the given owner with a zero balance and
// a freshly generated human-presentable account number.
func NewAccount(ownerID uuid.UUID, accountType string) *Account {
	return &Account{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		AccountNumber: newAccountNumber(),
		AccountType:   accountType,
		Balance:       decimal.Zero,
		CreatedAt:     time.Now().UTC(),
	}
}

// newAccountNumber builds an "ACC"-prefixed identifier from the first eight
// hex characters of a UUID, uppercased.
func newAccountNumber() string {
	return "ACC" + strings.ToUpper(uuid.NewString()[:8])
}

// NewLoan creates a pending loan application.
func NewLoan(ownerID uuid.UUID, amount, interestRate decimal.Decimal, durationMonths int) *Loan {
	return &Loan{
		ID:             uuid.New(),
		OwnerID:        ownerID,
		Amount:         amount,
		InterestRate:   interestRate,
		DurationMonths: durationMonths,
		Status:         LoanStatusPending,
		CreatedAt:      time.Now().UTC(),
	}
}

// NewCard issues an active card with a generated number and CVV.
func NewCard(ownerID uuid.UUID, cardType, expiryDate string) *Card {
	return &Card{
		ID:         uuid.New(),
		OwnerID:    ownerID,
		CardNumber: randomDigits(16),
		CardType:   cardType,
		ExpiryDate: expiryDate,
		CVV:        randomDigits(3),
		Status:     "active",
		CreatedAt:  time.Now().UTC(),
	}
}

// NewKYC creates a pending verification record seeded with any documents
// supplied at registration.
func NewKYC(ownerID uuid.UUID, documents []string) *KYC {
	return &KYC{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Status:    KYCStatusPending,
		Documents: documents,
		UpdatedAt: time.Now().UTC(),
	}
}

// randomDigits returns n cryptographically random decimal digits.
func randomDigits(n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		d, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			// crypto/rand failing means the platform RNG is broken;
			// nothing sensible to degrade to.
			panic(fmt.Sprintf("read random digit: %v", err))
		}
		b.WriteString(d.String())
	}
	return b.String()
}
