package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ojutalayomi/BankApp/internal/config"
	"github.com/ojutalayomi/BankApp/internal/domain"
	"github.com/ojutalayomi/BankApp/internal/logging"
	"github.com/ojutalayomi/BankApp/internal/repository"
	"github.com/ojutalayomi/BankApp/internal/service"
	"github.com/ojutalayomi/BankApp/internal/store"
)

// The ledger core boots here; the interactive front-end talking to it lives
// outside this process and is wired against the service API.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Init("bankapp", cfg.LogLevel, cfg.AppEnv)

	ctx := context.Background()

	// The customer/manager directory always lives on the flat-file store;
	// the ledger core can be pointed at postgres instead.
	jsonStore, err := store.Open(cfg.DataDir, store.Options{StrictRead: cfg.StoreStrictRead})
	if err != nil {
		slog.Error("failed to open data dir", "error", err)
		os.Exit(1)
	}
	customers := repository.NewCustomerRepository(jsonStore)
	managers := repository.NewAccountManagerRepository(jsonStore)

	var (
		ledger    *service.LedgerService
		directory *service.DirectoryService
	)

	switch cfg.StorageBackend {
	case "postgres":
		db, err := repository.NewPostgresDB(ctx, cfg.DatabaseURL, repository.PoolConfig{
			MaxOpenConns:     cfg.DBMaxOpenConns,
			MaxIdleConns:     cfg.DBMaxIdleConns,
			ConnMaxLifetimeS: cfg.DBConnMaxLifetimeS,
			ConnMaxIdleTimeS: cfg.DBConnMaxIdleTimeS,
		})
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		accounts := repository.NewPostgresAccountRepository(db)
		seq, err := service.NewNumberSequence(ctx, accounts, cfg.AccountNumberFloor)
		if err != nil {
			slog.Error("failed to seed account number sequence", "error", err)
			os.Exit(1)
		}
		ledger = service.NewLedgerService(accounts, repository.NewPostgresTransactionRepository(db))
		directory = service.NewDirectoryService(customers, managers, accounts, seq)
	default:
		accounts := repository.NewAccountRepository(jsonStore)
		seq, err := service.NewNumberSequence(ctx, accounts, cfg.AccountNumberFloor)
		if err != nil {
			slog.Error("failed to seed account number sequence", "error", err)
			os.Exit(1)
		}
		ledger = service.NewLedgerService(accounts, repository.NewTransactionRepository(jsonStore))
		directory = service.NewDirectoryService(customers, managers, accounts, seq)
	}
	slog.Info("ledger ready", "backend", cfg.StorageBackend, "data_dir", cfg.DataDir)

	// Read-only inspection surface; balance mutations and directory writes
	// go through the service API, not HTTP.
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", handleHealth)
	mux.HandleFunc("GET /accounts/{number}", func(w http.ResponseWriter, r *http.Request) {
		acct, err := ledger.Account(r.Context(), r.PathValue("number"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, acct)
	})
	mux.HandleFunc("GET /accounts/{number}/transactions", func(w http.ResponseWriter, r *http.Request) {
		txns, err := ledger.Transactions(r.Context(), r.PathValue("number"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, txns)
	})
	mux.HandleFunc("GET /customers/{id}", func(w http.ResponseWriter, r *http.Request) {
		customer, err := directory.Customer(r.Context(), r.PathValue("id"))
		if err != nil {
			writeError(w, err)
			return
		}
		customer.PasswordHash = ""
		writeJSON(w, customer)
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server started", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("stopped")
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, domain.ErrAccountNotFound) || errors.Is(err, domain.ErrCustomerNotFound) {
		status = http.StatusNotFound
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encErr := json.NewEncoder(w).Encode(map[string]string{"error": err.Error()}); encErr != nil {
		slog.Error("failed to write error response", "error", encErr)
	}
}
