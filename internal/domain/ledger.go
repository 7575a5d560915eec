package domain

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FloorPolicy decides how far a debit may take a balance. The default policy
// enforces a floor of zero. AllowNegative disables the check entirely, which
// matches the original system's silent-overdraft behavior.
type FloorPolicy struct {
	Floor         decimal.Decimal
	AllowNegative bool
}

// Violated reports whether applying the debit would leave the balance below
// the floor.
func (p FloorPolicy) Violated(newBalance decimal.Decimal) bool {
	if p.AllowNegative {
		return false
	}
	return newBalance.LessThan(p.Floor)
}

// EventPublisher emits a notification after a transaction has been durably
// committed. Publishing is best-effort: a publish failure never fails the
// commit that already happened.
type EventPublisher interface {
	PublishTransactionCommitted(ctx context.Context, tran *Transaction, newBalance decimal.Decimal) error
}

// CommitRequest carries a validated-on-entry request to record one ledger
// entry. OwnerID is the identity asserted by the authenticated caller and is
// checked against account ownership before anything is written.
type CommitRequest struct {
	AccountID   uuid.UUID
	OwnerID     uuid.UUID
	Kind        TransactionKind
	Amount      decimal.Decimal
	Description string
}

// CommitResult is the outcome of a successful commit.
type CommitResult struct {
	Transaction *Transaction
	NewBalance  decimal.Decimal
}

// Ledger is the authoritative entry point for recording transactions. It is
// the only component that writes to the transaction history or moves a
// balance, and it does both inside a single storage transaction so that no
// observer can ever see one without the other.
type Ledger struct {
	accounts     AccountRepository
	transactions TransactionRepository
	txManager    TransactionManager
	policy       FloorPolicy
	timeout      time.Duration
	events       EventPublisher
}

// NewLedger creates a Ledger. events may be nil if no events should be
// emitted. timeout bounds each commit's storage work; zero means no bound.
func NewLedger(
	accounts AccountRepository,
	transactions TransactionRepository,
	txManager TransactionManager,
	policy FloorPolicy,
	timeout time.Duration,
	events EventPublisher,
) *Ledger {
	return &Ledger{
		accounts:     accounts,
		transactions: transactions,
		txManager:    txManager,
		policy:       policy,
		timeout:      timeout,
		events:       events,
	}
}

// Commit validates and applies one transaction:
//
//  1. Reject non-positive amounts and unknown kinds.
//  2. Lock the account; a missing account or an owner mismatch both fail
//     with ErrAccountDenied, without revealing which.
//  3. Check the floor policy for debits.
//  4. Persist the transaction record and apply the balance delta inside one
//     storage transaction; both happen or neither does.
//
// Commit is intentionally not idempotent: there is no deduplication key, and
// calling it twice with identical arguments records two transactions. A
// caller disconnect does not abandon the commit; once entered, it runs to
// completion.
func (l *Ledger) Commit(ctx context.Context, req CommitRequest) (*CommitResult, error) {
	if !req.Kind.Valid() {
		return nil, ErrInvalidKind
	}
	if !validAmount(req.Amount) {
		return nil, ErrInvalidAmount
	}

	// Detach from caller cancellation so a dropped connection cannot leave
	// the commit half-applied, then bound the storage work ourselves.
	ctx = context.WithoutCancel(ctx)
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	var result CommitResult
	err := l.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		account, err := l.accounts.Lock(txCtx, req.AccountID)
		if err != nil {
			if errors.Is(err, ErrAccountNotFound) {
				return ErrAccountDenied
			}
			return fmt.Errorf("lock account: %w", err)
		}
		if account.OwnerID != req.OwnerID {
			return ErrAccountDenied
		}

		delta := req.Amount
		if req.Kind == KindDebit {
			delta = delta.Neg()
			if l.policy.Violated(account.Balance.Add(delta)) {
				return ErrBalanceFloor
			}
		}

		tran := &Transaction{
			ID:          uuid.New(),
			AccountID:   account.ID,
			Kind:        req.Kind,
			Amount:      req.Amount,
			Description: req.Description,
			Timestamp:   time.Now().UTC(),
		}
		if err := l.transactions.Create(txCtx, tran); err != nil {
			return fmt.Errorf("record transaction: %w", err)
		}

		newBalance, err := l.accounts.ApplyDelta(txCtx, account.ID, delta)
		if err != nil {
			return fmt.Errorf("apply balance delta: %w", err)
		}

		result = CommitResult{Transaction: tran, NewBalance: newBalance}
		return nil
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
		return nil, err
	}

	if l.events != nil {
		// The transaction is already durable; broker trouble must not make
		// it look failed. Fire and log.
		go func(tran *Transaction, balance decimal.Decimal) {
			if err := l.events.PublishTransactionCommitted(context.Background(), tran, balance); err != nil {
				log.Printf("failed to publish transaction committed event for %s: %v", tran.ID, err)
			}
		}(result.Transaction, result.NewBalance)
	}

	return &result, nil
}

// validAmount accepts strictly positive finite decimals. decimal.Decimal
// cannot represent NaN or infinity, so positivity is the whole check.
func validAmount(amount decimal.Decimal) bool {
	return amount.IsPositive()
}
