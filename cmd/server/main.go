package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rafi0167/Bank-App/internal/auth"
	"github.com/rafi0167/Bank-App/internal/config"
	"github.com/rafi0167/Bank-App/internal/db"
	"github.com/rafi0167/Bank-App/internal/domain"
	"github.com/rafi0167/Bank-App/internal/events"
	"github.com/rafi0167/Bank-App/internal/httpapi"
	"github.com/rafi0167/Bank-App/internal/memory"
)

// repositories bundles the storage layer so both backends wire the same way.
type repositories struct {
	users        domain.UserRepository
	accounts     domain.AccountRepository
	transactions domain.TransactionRepository
	loans        domain.LoanRepository
	cards        domain.CardRepository
	kyc          domain.KYCRepository
	directory    domain.DirectoryRepository
	txManager    domain.TransactionManager
}

func main() {
	cfg := config.Load()
	ctx := context.Background()

	var repos repositories
	switch cfg.Storage {
	case "postgres":
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to create database pool: %v", err)
		}
		defer pool.Close()

		if err := db.Migrate(ctx, pool); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
		log.Println("database connection pool initialized")

		repos = repositories{
			users:        db.NewUserRepository(pool.Pool),
			accounts:     db.NewAccountRepository(pool.Pool),
			transactions: db.NewTransactionRepository(pool.Pool),
			loans:        db.NewLoanRepository(pool.Pool),
			cards:        db.NewCardRepository(pool.Pool),
			kyc:          db.NewKYCRepository(pool.Pool),
			directory:    db.NewDirectoryRepository(pool.Pool),
			txManager:    db.NewTransactionManager(pool.Pool),
		}

	case "memory":
		store := memory.NewStore()
		log.Println("using in-memory storage; data will not survive a restart")

		repos = repositories{
			users:        memory.NewUserRepository(store),
			accounts:     memory.NewAccountRepository(store),
			transactions: memory.NewTransactionRepository(store),
			loans:        memory.NewLoanRepository(store),
			cards:        memory.NewCardRepository(store),
			kyc:          memory.NewKYCRepository(store),
			directory:    memory.NewDirectoryRepository(store),
			txManager:    memory.NewTransactionManager(store),
		}

	default:
		log.Fatalf("unknown storage backend: %q", cfg.Storage)
	}

	if err := domain.EnsureSeedData(ctx, repos.directory); err != nil {
		log.Fatalf("failed to seed directories: %v", err)
	}

	// Event publishing is optional; no broker URL means no events.
	var publisher domain.EventPublisher
	if cfg.RabbitMQ.URL != "" {
		rabbitPublisher, err := events.NewRabbitMQPublisher(cfg.RabbitMQ)
		if err != nil {
			log.Fatalf("failed to create event publisher: %v", err)
		}
		defer rabbitPublisher.Close()
		publisher = rabbitPublisher
	}

	policy := domain.FloorPolicy{
		Floor:         cfg.Ledger.BalanceFloor,
		AllowNegative: cfg.Ledger.AllowNegative,
	}
	ledger := domain.NewLedger(repos.accounts, repos.transactions, repos.txManager, policy, cfg.Ledger.CommitTimeout, publisher)
	queries := domain.NewQueries(repos.accounts, repos.transactions, cfg.HistoryLimit)
	registrar := domain.NewRegistrar(repos.users, repos.accounts, repos.kyc, repos.txManager)
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)

	server := httpapi.NewServer(
		repos.users, repos.accounts, repos.loans, repos.cards,
		repos.kyc, repos.directory, ledger, queries, registrar, tokens,
	)
	log.Println("domain services initialized")

	addr := ":" + cfg.HTTPPort
	httpServer := &http.Server{
		Addr:    addr,
		Handler: server.Router(),
	}

	go func() {
		log.Printf("banking service starting on %s (storage=%s)", addr, cfg.Storage)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown: %v", err)
	}
	log.Println("HTTP server stopped")
}
