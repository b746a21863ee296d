package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/ojutalayomi/BankApp/internal/domain"
	"github.com/ojutalayomi/BankApp/internal/store"
)

const accountsCollection = "accounts"

// AccountRepository stores accounts as a flat JSON array. Every mutation is a
// load-mutate-save cycle over the whole collection; concurrent writers race
// last-save-wins.
type AccountRepository struct {
	store *store.Store
}

func NewAccountRepository(s *store.Store) *AccountRepository {
	return &AccountRepository{store: s}
}

func (r *AccountRepository) GetAll(ctx context.Context) ([]domain.Account, error) {
	accounts, err := store.Load[domain.Account](r.store, accountsCollection)
	if err != nil {
		return nil, fmt.Errorf("GetAll: %w", err)
	}
	return accounts, nil
}

func (r *AccountRepository) GetByNumber(ctx context.Context, number string) (*domain.Account, error) {
	accounts, err := store.Load[domain.Account](r.store, accountsCollection)
	if err != nil {
		return nil, fmt.Errorf("GetByNumber: %w", err)
	}
	for i := range accounts {
		if accounts[i].Number == number {
			return &accounts[i], nil
		}
	}
	return nil, fmt.Errorf("GetByNumber: %w", domain.ErrNotFound)
}

func (r *AccountRepository) Exists(ctx context.Context, number string) (bool, error) {
	_, err := r.GetByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("Exists: %w", err)
	}
	return true, nil
}

func (r *AccountRepository) Add(ctx context.Context, account *domain.Account) error {
	accounts, err := store.Load[domain.Account](r.store, accountsCollection)
	if err != nil {
		return fmt.Errorf("Add: %w", err)
	}
	accounts = append(accounts, *account)
	if err := store.Save(r.store, accountsCollection, accounts); err != nil {
		return fmt.Errorf("Add: %w", err)
	}
	return nil
}

func (r *AccountRepository) Update(ctx context.Context, account *domain.Account) error {
	accounts, err := store.Load[domain.Account](r.store, accountsCollection)
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	for i := range accounts {
		if accounts[i].Number == account.Number {
			accounts[i] = *account
			if err := store.Save(r.store, accountsCollection, accounts); err != nil {
				return fmt.Errorf("Update: %w", err)
			}
			return nil
		}
	}
	return fmt.Errorf("Update: %w", domain.ErrNotFound)
}

// Delete removes the account record only. Its transactions and any customer
// link to the number are left behind.
func (r *AccountRepository) Delete(ctx context.Context, number string) error {
	accounts, err := store.Load[domain.Account](r.store, accountsCollection)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	for i := range accounts {
		if accounts[i].Number == number {
			accounts = append(accounts[:i], accounts[i+1:]...)
			if err := store.Save(r.store, accountsCollection, accounts); err != nil {
				return fmt.Errorf("Delete: %w", err)
			}
			return nil
		}
	}
	return fmt.Errorf("Delete: %w", domain.ErrNotFound)
}

// MaxAccountNumber returns the highest numeric account number on record, or 0
// when the collection is empty. Used to seed the number sequence at startup.
func (r *AccountRepository) MaxAccountNumber(ctx context.Context) (int64, error) {
	accounts, err := store.Load[domain.Account](r.store, accountsCollection)
	if err != nil {
		return 0, fmt.Errorf("MaxAccountNumber: %w", err)
	}
	var max int64
	for i := range accounts {
		n, err := strconv.ParseInt(accounts[i].Number, 10, 64)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return max, nil
}
