package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/rafi0167/Bank-App/internal/domain"
)

// errorResponse is the error envelope shared by all endpoints.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type accountResponse struct {
	ID            string `json:"id"`
	AccountNumber string `json:"account_number"`
	AccountType   string `json:"account_type"`
	Balance       string `json:"balance"`
	CreatedAt     string `json:"created_at"`
}

type transactionResponse struct {
	ID          string `json:"id"`
	AccountID   string `json:"account_id"`
	Kind        string `json:"kind"`
	Amount      string `json:"amount"`
	Description string `json:"description,omitempty"`
	Timestamp   string `json:"timestamp"`
}

type loanResponse struct {
	ID             string `json:"id"`
	Amount         string `json:"amount"`
	InterestRate   string `json:"interest_rate"`
	DurationMonths int    `json:"duration_months"`
	Status         string `json:"status"`
	CreatedAt      string `json:"created_at"`
}

type cardResponse struct {
	ID         string `json:"id"`
	CardNumber string `json:"card_number"`
	CardType   string `json:"card_type"`
	ExpiryDate string `json:"expiry_date"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
}

type kycResponse struct {
	ID        string   `json:"id"`
	Status    string   `json:"status"`
	Documents []string `json:"documents"`
	UpdatedAt string   `json:"updated_at"`
}

type profileResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	NIDNumber     string `json:"nid_number"`
	MonthlyIncome string `json:"monthly_income"`
	Gender        string `json:"gender"`
	CreatedAt     string `json:"created_at"`
}

type employeeResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Position   string `json:"position"`
	Department string `json:"department"`
	Image      string `json:"image"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
}

type bankInfoResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Branch  string `json:"branch"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

func toAccountResponse(a *domain.Account) accountResponse {
	return accountResponse{
		ID:            a.ID.String(),
		AccountNumber: a.AccountNumber,
		AccountType:   a.AccountType,
		Balance:       a.Balance.StringFixed(2),
		CreatedAt:     a.CreatedAt.Format(time.RFC3339),
	}
}

func toTransactionResponse(t *domain.Transaction) transactionResponse {
	return transactionResponse{
		ID:          t.ID.String(),
		AccountID:   t.AccountID.String(),
		Kind:        string(t.Kind),
		Amount:      t.Amount.StringFixed(2),
		Description: t.Description,
		Timestamp:   t.Timestamp.Format(time.RFC3339),
	}
}

func toLoanResponse(l *domain.Loan) loanResponse {
	return loanResponse{
		ID:             l.ID.String(),
		Amount:         l.Amount.StringFixed(2),
		InterestRate:   l.InterestRate.String(),
		DurationMonths: l.DurationMonths,
		Status:         string(l.Status),
		CreatedAt:      l.CreatedAt.Format(time.RFC3339),
	}
}

func toCardResponse(c *domain.Card) cardResponse {
	// CVV is write-only: issued in the creation response, never listed.
	return cardResponse{
		ID:         c.ID.String(),
		CardNumber: c.CardNumber,
		CardType:   c.CardType,
		ExpiryDate: c.ExpiryDate,
		Status:     c.Status,
		CreatedAt:  c.CreatedAt.Format(time.RFC3339),
	}
}

func toKYCResponse(k *domain.KYC) kycResponse {
	documents := k.Documents
	if documents == nil {
		documents = []string{}
	}
	return kycResponse{
		ID:        k.ID.String(),
		Status:    string(k.Status),
		Documents: documents,
		UpdatedAt: k.UpdatedAt.Format(time.RFC3339),
	}
}

func toProfileResponse(u *domain.User) profileResponse {
	return profileResponse{
		ID:            u.ID.String(),
		Name:          u.Name,
		Email:         u.Email,
		Address:       u.Address,
		NIDNumber:     u.NIDNumber,
		MonthlyIncome: u.MonthlyIncome.StringFixed(2),
		Gender:        u.Gender,
		CreatedAt:     u.CreatedAt.Format(time.RFC3339),
	}
}

// writeJSON sends a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// writeError sends an error response in the shared envelope.
func writeError(w http.ResponseWriter, statusCode int, code, message string) {
	writeJSON(w, statusCode, errorResponse{Code: code, Message: message})
}

// writeDomainError maps domain errors to HTTP status codes.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount), errors.Is(err, domain.ErrInvalidKind):
		writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
	case errors.Is(err, domain.ErrAccountDenied):
		// Missing and foreign accounts answer identically.
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, domain.ErrBalanceFloor):
		writeError(w, http.StatusConflict, "CONFLICT", err.Error())
	case errors.Is(err, domain.ErrStorageUnavailable):
		writeError(w, http.StatusServiceUnavailable, "UNAVAILABLE", err.Error())
	case errors.Is(err, domain.ErrEmailTaken):
		writeError(w, http.StatusConflict, "CONFLICT", err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", err.Error())
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrKYCNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	default:
		log.Printf("internal error: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred")
	}
}
