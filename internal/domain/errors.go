package domain

import "errors"

var (
	// ErrAccountNotFound is the store-level miss for an account lookup.
	// It never crosses the ledger boundary: the commit path folds it into
	// ErrAccountDenied so callers cannot probe for account existence.
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountDenied is returned when an account does not exist or is not
	// owned by the caller. The two cases are deliberately indistinguishable.
	ErrAccountDenied = errors.New("account not found")

	// ErrInvalidAmount is returned for a zero, negative, or non-finite amount.
	ErrInvalidAmount = errors.New("amount must be a positive decimal")

	// ErrInvalidKind is returned for a transaction kind other than credit or debit.
	ErrInvalidKind = errors.New("kind must be credit or debit")

	// ErrBalanceFloor is returned when a debit would drive the balance below
	// the configured floor. The caller may re-read the balance and retry.
	ErrBalanceFloor = errors.New("insufficient balance")

	// ErrStorageUnavailable is returned for transient storage failures such
	// as timeouts. The caller may retry with backoff; no partial state was
	// written.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrEmailTaken is returned when registering with an email that already
	// has a user.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned for a failed login. It does not say
	// whether the email or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserNotFound is returned when a user record does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrKYCNotFound is returned when a user has no verification record.
	ErrKYCNotFound = errors.New("kyc record not found")
)
