package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rafi0167/Bank-App/internal/domain"
)

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.GetByID(r.Context(), callerID(r.Context()))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileResponse(user))
}

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.accounts.ListByOwner(r.Context(), callerID(r.Context()))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := make([]accountResponse, 0, len(accounts))
	for _, account := range accounts {
		resp = append(resp, toAccountResponse(account))
	}
	writeJSON(w, http.StatusOK, resp)
}

type createTransactionRequest struct {
	AccountID   string `json:"account_id"`
	Kind        string `json:"kind"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
}

type createTransactionResponse struct {
	Transaction transactionResponse `json:"transaction"`
	NewBalance  string              `json:"new_balance"`
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	var req createTransactionRequest
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "failed to parse request body")
		return
	}

	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "account_id must be a valid UUID")
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "amount must be a decimal string")
		return
	}

	result, err := s.ledger.Commit(r.Context(), domain.CommitRequest{
		AccountID:   accountID,
		OwnerID:     callerID(r.Context()),
		Kind:        domain.TransactionKind(req.Kind),
		Amount:      amount,
		Description: req.Description,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, createTransactionResponse{
		Transaction: toTransactionResponse(result.Transaction),
		NewBalance:  result.NewBalance.StringFixed(2),
	})
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	transactions, err := s.queries.ListForOwner(r.Context(), callerID(r.Context()), limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := make([]transactionResponse, 0, len(transactions))
	for _, tran := range transactions {
		resp = append(resp, toTransactionResponse(tran))
	}
	writeJSON(w, http.StatusOK, resp)
}

type createLoanRequest struct {
	Amount         string `json:"amount"`
	InterestRate   string `json:"interest_rate"`
	DurationMonths int    `json:"duration_months"`
}

// defaultInterestRate applies when an application does not name a rate.
var defaultInterestRate = decimal.NewFromFloat(5.5)

func (s *Server) handleCreateLoan(w http.ResponseWriter, r *http.Request) {
	var req createLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "failed to parse request body")
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "amount must be a positive decimal")
		return
	}
	if req.DurationMonths <= 0 {
		writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "duration_months must be positive")
		return
	}

	rate := defaultInterestRate
	if req.InterestRate != "" {
		rate, err = decimal.NewFromString(req.InterestRate)
		if err != nil || rate.IsNegative() {
			writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "interest_rate must be a non-negative decimal")
			return
		}
	}

	loan := domain.NewLoan(callerID(r.Context()), amount, rate, req.DurationMonths)
	if err := s.loans.Create(r.Context(), loan); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toLoanResponse(loan))
}

func (s *Server) handleListLoans(w http.ResponseWriter, r *http.Request) {
	loans, err := s.loans.ListByOwner(r.Context(), callerID(r.Context()))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := make([]loanResponse, 0, len(loans))
	for _, loan := range loans {
		resp = append(resp, toLoanResponse(loan))
	}
	writeJSON(w, http.StatusOK, resp)
}

type createCardRequest struct {
	CardType   string `json:"card_type"`
	ExpiryDate string `json:"expiry_date"`
}

type createCardResponse struct {
	cardResponse
	CVV string `json:"cvv"`
}

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	var req createCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "failed to parse request body")
		return
	}

	if req.CardType == "" {
		req.CardType = "debit"
	}
	if req.ExpiryDate == "" {
		req.ExpiryDate = "12/28"
	}

	card := domain.NewCard(callerID(r.Context()), req.CardType, req.ExpiryDate)
	if err := s.cards.Create(r.Context(), card); err != nil {
		writeDomainError(w, err)
		return
	}

	// The CVV is shown once, on issue.
	writeJSON(w, http.StatusCreated, createCardResponse{
		cardResponse: toCardResponse(card),
		CVV:          card.CVV,
	})
}

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	cards, err := s.cards.ListByOwner(r.Context(), callerID(r.Context()))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := make([]cardResponse, 0, len(cards))
	for _, card := range cards {
		resp = append(resp, toCardResponse(card))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetKYC(w http.ResponseWriter, r *http.Request) {
	kyc, err := s.kyc.GetByOwner(r.Context(), callerID(r.Context()))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toKYCResponse(kyc))
}

type updateKYCRequest struct {
	Documents []string `json:"documents"`
}

func (s *Server) handleUpdateKYC(w http.ResponseWriter, r *http.Request) {
	var req updateKYCRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "failed to parse request body")
		return
	}

	kyc, err := s.kyc.GetByOwner(r.Context(), callerID(r.Context()))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	// New documents restart the review.
	kyc.Documents = req.Documents
	kyc.Status = domain.KYCStatusPending
	kyc.UpdatedAt = time.Now().UTC()
	if err := s.kyc.Update(r.Context(), kyc); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toKYCResponse(kyc))
}

func (s *Server) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := s.directory.Employees(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := make([]employeeResponse, 0, len(employees))
	for _, e := range employees {
		resp = append(resp, employeeResponse{
			ID:         e.ID.String(),
			Name:       e.Name,
			Position:   e.Position,
			Department: e.Department,
			Image:      e.Image,
			Email:      e.Email,
			Phone:      e.Phone,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListBankInfo(w http.ResponseWriter, r *http.Request) {
	info, err := s.directory.BankInfo(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := make([]bankInfoResponse, 0, len(info))
	for _, b := range info {
		resp = append(resp, bankInfoResponse{
			ID:      b.ID.String(),
			Name:    b.Name,
			Branch:  b.Branch,
			Address: b.Address,
			Phone:   b.Phone,
			Email:   b.Email,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
