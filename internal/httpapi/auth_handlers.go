package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rafi0167/Bank-App/internal/auth"
	"github.com/rafi0167/Bank-App/internal/domain"
)

type registerRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	Address       string `json:"address"`
	NIDNumber     string `json:"nid_number"`
	NIDImage      string `json:"nid_image"`
	MonthlyIncome string `json:"monthly_income"`
	Gender        string `json:"gender"`
}

type registerResponse struct {
	Token   string          `json:"token"`
	User    profileResponse `json:"user"`
	Account accountResponse `json:"account"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string          `json:"token"`
	User  profileResponse `json:"user"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "failed to parse request body")
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "name, email, and password are required")
		return
	}

	income := decimal.Zero
	if req.MonthlyIncome != "" {
		var err error
		income, err = decimal.NewFromString(req.MonthlyIncome)
		if err != nil || income.IsNegative() {
			writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "monthly_income must be a non-negative decimal")
			return
		}
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	user, account, err := s.registrar.Register(r.Context(), domain.Registration{
		Name:          req.Name,
		Email:         req.Email,
		Address:       req.Address,
		NIDNumber:     req.NIDNumber,
		NIDImage:      req.NIDImage,
		MonthlyIncome: income,
		Gender:        req.Gender,
		PasswordHash:  hash,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, registerResponse{
		Token:   token,
		User:    toProfileResponse(user),
		Account: toAccountResponse(account),
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "failed to parse request body")
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	user, err := s.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Same answer as a wrong password.
			writeDomainError(w, domain.ErrInvalidCredentials)
			return
		}
		writeDomainError(w, err)
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		writeDomainError(w, domain.ErrInvalidCredentials)
		return
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Token: token,
		User:  toProfileResponse(user),
	})
}
