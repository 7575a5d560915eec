package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Registration carries the fields collected at sign-up. PasswordHash is
// produced by the caller; the domain layer never sees a plaintext password.
type Registration struct {
	Name          string
	Email         string
	Address       string
	NIDNumber     string
	NIDImage      string
	MonthlyIncome decimal.Decimal
	Gender        string
	PasswordHash  string
}

// Registrar creates new users together with their default account and
// pending KYC record, atomically.
type Registrar struct {
	users     UserRepository
	accounts  AccountRepository
	kyc       KYCRepository
	txManager TransactionManager
}

// NewRegistrar creates a Registrar.
func NewRegistrar(users UserRepository, accounts AccountRepository, kyc KYCRepository, txManager TransactionManager) *Registrar {
	return &Registrar{
		users:     users,
		accounts:  accounts,
		kyc:       kyc,
		txManager: txManager,
	}
}

// Register creates the user, a default savings account with a zero balance,
// and a pending KYC record in one storage transaction. Fails with
// ErrEmailTaken if the email is already registered.
func (r *Registrar) Register(ctx context.Context, reg Registration) (*User, *Account, error) {
	var (
		user    *User
		account *Account
	)
	err := r.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		_, err := r.users.GetByEmail(txCtx, reg.Email)
		if err == nil {
			return ErrEmailTaken
		}
		if !errors.Is(err, ErrUserNotFound) {
			return fmt.Errorf("check email: %w", err)
		}

		user = &User{
			ID:            uuid.New(),
			Name:          reg.Name,
			Email:         reg.Email,
			Address:       reg.Address,
			NIDNumber:     reg.NIDNumber,
			NIDImage:      reg.NIDImage,
			MonthlyIncome: reg.MonthlyIncome,
			Gender:        reg.Gender,
			PasswordHash:  reg.PasswordHash,
			CreatedAt:     time.Now().UTC(),
		}
		if err := r.users.Create(txCtx, user); err != nil {
			return fmt.Errorf("create user: %w", err)
		}

		account = NewAccount(user.ID, "savings")
		if err := r.accounts.Create(txCtx, account); err != nil {
			return fmt.Errorf("create default account: %w", err)
		}

		var documents []string
		if reg.NIDImage != "" {
			documents = []string{reg.NIDImage}
		}
		if err := r.kyc.Create(txCtx, NewKYC(user.ID, documents)); err != nil {
			return fmt.Errorf("create kyc record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return user, account, nil
}
