package repository

import (
	"context"
	"fmt"

	"github.com/ojutalayomi/BankApp/internal/domain"
	"github.com/ojutalayomi/BankApp/internal/store"
)

const transactionsCollection = "transactions"

// TransactionRepository is the append-mostly transaction log, stored as one
// JSON array ordered by insertion.
type TransactionRepository struct {
	store *store.Store
}

func NewTransactionRepository(s *store.Store) *TransactionRepository {
	return &TransactionRepository{store: s}
}

func (r *TransactionRepository) GetAll(ctx context.Context) ([]domain.Transaction, error) {
	txns, err := store.Load[domain.Transaction](r.store, transactionsCollection)
	if err != nil {
		return nil, fmt.Errorf("GetAll: %w", err)
	}
	return txns, nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	txns, err := store.Load[domain.Transaction](r.store, transactionsCollection)
	if err != nil {
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	for i := range txns {
		if txns[i].ID == id {
			return &txns[i], nil
		}
	}
	return nil, fmt.Errorf("GetByID: %w", domain.ErrNotFound)
}

// GetByAccountNumber returns every transaction touching the account, as
// source or destination, in log order.
func (r *TransactionRepository) GetByAccountNumber(ctx context.Context, number string) ([]domain.Transaction, error) {
	txns, err := store.Load[domain.Transaction](r.store, transactionsCollection)
	if err != nil {
		return nil, fmt.Errorf("GetByAccountNumber: %w", err)
	}
	var matched []domain.Transaction
	for i := range txns {
		if txns[i].SourceAccount == number || txns[i].DestinationAccount == number {
			matched = append(matched, txns[i])
		}
	}
	return matched, nil
}

func (r *TransactionRepository) Exists(ctx context.Context, id string) (bool, error) {
	txns, err := store.Load[domain.Transaction](r.store, transactionsCollection)
	if err != nil {
		return false, fmt.Errorf("Exists: %w", err)
	}
	for i := range txns {
		if txns[i].ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (r *TransactionRepository) Add(ctx context.Context, txn *domain.Transaction) error {
	if err := r.AddAll(ctx, []domain.Transaction{*txn}); err != nil {
		return fmt.Errorf("Add: %w", err)
	}
	return nil
}

// AddAll appends several records in one collection rewrite. Both legs of a
// transfer go through here so the log gains them together.
func (r *TransactionRepository) AddAll(ctx context.Context, records []domain.Transaction) error {
	txns, err := store.Load[domain.Transaction](r.store, transactionsCollection)
	if err != nil {
		return fmt.Errorf("AddAll: %w", err)
	}
	txns = append(txns, records...)
	if err := store.Save(r.store, transactionsCollection, txns); err != nil {
		return fmt.Errorf("AddAll: %w", err)
	}
	return nil
}

func (r *TransactionRepository) Update(ctx context.Context, txn *domain.Transaction) error {
	txns, err := store.Load[domain.Transaction](r.store, transactionsCollection)
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	for i := range txns {
		if txns[i].ID == txn.ID {
			txns[i] = *txn
			if err := store.Save(r.store, transactionsCollection, txns); err != nil {
				return fmt.Errorf("Update: %w", err)
			}
			return nil
		}
	}
	return fmt.Errorf("Update: %w", domain.ErrNotFound)
}

// UpdateStatus sets any status on any transaction; legal-transition checking
// is deliberately absent, matching the out-of-band status update contract.
func (r *TransactionRepository) UpdateStatus(ctx context.Context, id string, status domain.TransactionStatus) error {
	txns, err := store.Load[domain.Transaction](r.store, transactionsCollection)
	if err != nil {
		return fmt.Errorf("UpdateStatus: %w", err)
	}
	for i := range txns {
		if txns[i].ID == id {
			txns[i].Status = status
			if err := store.Save(r.store, transactionsCollection, txns); err != nil {
				return fmt.Errorf("UpdateStatus: %w", err)
			}
			return nil
		}
	}
	return fmt.Errorf("UpdateStatus: %w", domain.ErrNotFound)
}

func (r *TransactionRepository) Delete(ctx context.Context, id string) error {
	txns, err := store.Load[domain.Transaction](r.store, transactionsCollection)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	for i := range txns {
		if txns[i].ID == id {
			txns = append(txns[:i], txns[i+1:]...)
			if err := store.Save(r.store, transactionsCollection, txns); err != nil {
				return fmt.Errorf("Delete: %w", err)
			}
			return nil
		}
	}
	return fmt.Errorf("Delete: %w", domain.ErrNotFound)
}
