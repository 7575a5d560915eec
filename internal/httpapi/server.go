// Package httpapi exposes the banking service over REST. All routes live
// under /api; everything except registration, login, health, and the public
// directories requires a bearer token.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rafi0167/Bank-App/internal/auth"
	"github.com/rafi0167/Bank-App/internal/domain"
)

// Server holds the handler dependencies.
type Server struct {
	users     domain.UserRepository
	accounts  domain.AccountRepository
	loans     domain.LoanRepository
	cards     domain.CardRepository
	kyc       domain.KYCRepository
	directory domain.DirectoryRepository
	ledger    *domain.Ledger
	queries   *domain.Queries
	registrar *domain.Registrar
	tokens    *auth.TokenIssuer
}

// NewServer creates a Server.
func NewServer(
	users domain.UserRepository,
	accounts domain.AccountRepository,
	loans domain.LoanRepository,
	cards domain.CardRepository,
	kyc domain.KYCRepository,
	directory domain.DirectoryRepository,
	ledger *domain.Ledger,
	queries *domain.Queries,
	registrar *domain.Registrar,
	tokens *auth.TokenIssuer,
) *Server {
	return &Server{
		users:     users,
		accounts:  accounts,
		loans:     loans,
		cards:     cards,
		kyc:       kyc,
		directory: directory,
		ledger:    ledger,
		queries:   queries,
		registrar: registrar,
		tokens:    tokens,
	}
}

// Router builds the HTTP routing table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)
		r.Get("/employees", s.handleListEmployees)
		r.Get("/bank-info", s.handleListBankInfo)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/user/profile", s.handleProfile)
			r.Get("/accounts", s.handleListAccounts)
			r.Get("/transactions", s.handleListTransactions)
			r.Post("/transactions", s.handleCreateTransaction)
			r.Get("/loans", s.handleListLoans)
			r.Post("/loans", s.handleCreateLoan)
			r.Get("/cards", s.handleListCards)
			r.Post("/cards", s.handleCreateCard)
			r.Get("/kyc", s.handleGetKYC)
			r.Put("/kyc", s.handleUpdateKYC)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
